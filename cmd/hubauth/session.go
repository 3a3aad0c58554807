// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/holomush/hubauth/internal/auth"
)

// sessionConfig holds configuration for the session command.
type sessionConfig struct {
	jsonOutput bool
	showToken  bool
}

// sessionOutput is the printed form of a session.
type sessionOutput struct {
	UUID        string `json:"uuid"`
	TokenType   string `json:"token_type"`
	AccessToken string `json:"access_token"`
}

// newSessionCmd creates the session subcommand.
func newSessionCmd(root *rootConfig, deps *Deps) *cobra.Command {
	cfg := &sessionConfig{}

	cmd := &cobra.Command{
		Use:   "session",
		Short: "Request a new hub session without logging in",
		Long: `Request a new session from the hub with --email and --password, falling
back to --token, and print it. The cached session and the current user are not
used; --keep-session caches the new session.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWithApp(cmd, root, deps, func(a *app) error {
				return runSession(cmd, a, cfg)
			})
		},
	}

	cmd.Flags().String("email", "", "account email")
	cmd.Flags().String("password", "", "account password")
	cmd.Flags().String("token", "", "personal access token")
	cmd.Flags().Bool("keep-session", false, "cache the new session for later runs")
	cmd.Flags().BoolVar(&cfg.jsonOutput, "json", false, "output the session as JSON")
	cmd.Flags().BoolVar(&cfg.showToken, "show-token", false, "print the access token unmasked")

	return cmd
}

// runSession executes the session command.
func runSession(cmd *cobra.Command, a *app, cfg *sessionConfig) error {
	sess, err := a.service.GetSession(cmd.Context(), a.credentials(), a.cfg.KeepSession)
	if err != nil {
		return err
	}

	out := newSessionOutput(sess, cfg.showToken)
	if cfg.jsonOutput {
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return oops.Code("CLI_ENCODE_FAILED").Wrap(err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "uuid: %s\ntoken_type: %s\naccess_token: %s\n", out.UUID, out.TokenType, out.AccessToken)
	return nil
}

func newSessionOutput(sess auth.Session, showToken bool) sessionOutput {
	token := sess.AccessToken
	if !showToken {
		token = maskToken(token)
	}
	return sessionOutput{UUID: sess.UUID, TokenType: sess.TokenType, AccessToken: token}
}

// maskToken keeps the first four characters of long tokens.
func maskToken(token string) string {
	if len(token) <= 8 {
		return strings.Repeat("*", len(token))
	}
	return token[:4] + strings.Repeat("*", 8)
}
