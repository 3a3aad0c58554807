// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/oops"
	"github.com/sethvargo/go-retry"
	"github.com/spf13/cobra"

	"github.com/holomush/hubauth/internal/auth"
)

// newLoginCmd creates the login subcommand.
func newLoginCmd(root *rootConfig, deps *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the hub",
		Long: `Log in to the hub. A cached session is used when present; otherwise a
new session is requested with --email and --password, falling back to --token.
The password and token may also come from HUBAUTH_PASSWORD and HUBAUTH_TOKEN.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWithApp(cmd, root, deps, func(a *app) error {
				return runLogin(cmd, a, deps)
			})
		},
	}

	cmd.Flags().String("email", "", "account email")
	cmd.Flags().String("password", "", "account password (prompted when omitted on a terminal)")
	cmd.Flags().String("token", "", "personal access token")
	cmd.Flags().Bool("keep-session", false, "cache the new session for later runs")
	cmd.Flags().Int("retries", 0, "retry this many times while the hub is unreachable")

	return cmd
}

// runLogin executes the login command.
func runLogin(cmd *cobra.Command, a *app, deps *Deps) error {
	ctx := cmd.Context()
	creds := a.credentials()

	if creds.Email != "" && creds.Password == "" && deps.IsTerminal() {
		cmd.PrintErr("Password: ")
		password, err := deps.PasswordReader()
		cmd.PrintErrln()
		if err != nil {
			return oops.Code("CLI_PROMPT_FAILED").Wrap(err)
		}
		creds.Password = strings.TrimRight(password, "\r\n")
	}

	backoff := retry.WithMaxRetries(uint64(a.cfg.Retries), retry.NewExponential(deps.RetryBase)) //nolint:gosec // validated non-negative

	attempt := 0
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		_, err := a.service.Login(ctx, creds, a.cfg.KeepSession)
		if auth.IsTransient(err) {
			a.logger.InfoContext(ctx, "hub unreachable", "attempt", attempt)
			return retry.RetryableError(err)
		}
		return err
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Logged in.")
	fmt.Fprintln(cmd.OutOrStdout(), auth.Whoami(a.service.State()))
	return nil
}
