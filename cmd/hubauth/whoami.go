// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/holomush/hubauth/internal/auth"
	"github.com/holomush/hubauth/pkg/errutil"
)

// newWhoamiCmd creates the whoami subcommand.
func newWhoamiCmd(root *rootConfig, deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWithApp(cmd, root, deps, func(a *app) error {
				return runWhoami(cmd, a)
			})
		},
	}
}

// runWhoami logs in with the cached session and describes the user. A cached
// session the hub rejects leaves the user a guest.
func runWhoami(cmd *cobra.Command, a *app) error {
	ctx := cmd.Context()

	if _, err := a.service.Restore(ctx); err != nil {
		if auth.IsUnreachable(err) {
			return err
		}
		errutil.LogError(a.logger, "cached session rejected", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), auth.Whoami(a.service.State()))
	return nil
}
