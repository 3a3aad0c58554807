// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package main is the entry point for the hubauth CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, NewRootCmd())
	stop()
	os.Exit(code)
}

// execute runs cmd and converts a failure into a user-facing message on the
// command's error stream. Returns the process exit code.
func execute(ctx context.Context, cmd *cobra.Command) int {
	cmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)

	if err := cmd.ExecuteContext(ctx); err != nil {
		cmd.PrintErrln(userMessage(err))
		return 1
	}
	return 0
}
