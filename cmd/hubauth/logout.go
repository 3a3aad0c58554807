// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/holomush/hubauth/pkg/errutil"
)

// newLogoutCmd creates the logout subcommand.
func newLogoutCmd(root *rootConfig, deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and forget the cached session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWithApp(cmd, root, deps, func(a *app) error {
				return runLogout(cmd, a)
			})
		},
	}
}

// runLogout restores the cached session, if any, so the hub can revoke it.
// Logging out never fails: the local state is reset regardless.
func runLogout(cmd *cobra.Command, a *app) error {
	ctx := cmd.Context()

	if _, err := a.service.Restore(ctx); err != nil {
		errutil.LogError(a.logger, "could not restore session before logout", err)
	}
	a.service.Logout(ctx)

	fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
	return nil
}
