// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"io"
	"log/slog"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/holomush/hubauth/internal/auth"
	"github.com/holomush/hubauth/internal/config"
	"github.com/holomush/hubauth/internal/hub"
)

// defaultRetryBase is the first backoff delay of login retries.
const defaultRetryBase = 500 * time.Millisecond

// Deps contains injectable dependencies for the CLI commands.
// All fields with nil values will use their default implementations.
type Deps struct {
	// BackendFactory builds the hub backend.
	// Default: hub.NewBackendWithLogger over hub.NewClientWithLogger
	BackendFactory func(cfg *config.Config, cache hub.SessionCache, logger *slog.Logger) (auth.Backend, error)

	// PasswordReader reads a password without echoing it.
	// Default: term.ReadPassword on stdin
	PasswordReader func() (string, error)

	// IsTerminal reports whether stdin is interactive.
	// Default: term.IsTerminal on stdin
	IsTerminal func() bool

	// LogWriter receives structured logs.
	// Default: os.Stderr
	LogWriter io.Writer

	// RetryBase is the first login retry delay.
	// Default: 500ms
	RetryBase time.Duration
}

// withDefaults returns a copy of d with every nil field set.
func (d *Deps) withDefaults() *Deps {
	out := Deps{}
	if d != nil {
		out = *d
	}
	if out.BackendFactory == nil {
		out.BackendFactory = newHubBackend
	}
	if out.PasswordReader == nil {
		out.PasswordReader = func() (string, error) {
			b, err := term.ReadPassword(int(os.Stdin.Fd()))
			return string(b), err
		}
	}
	if out.IsTerminal == nil {
		out.IsTerminal = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }
	}
	if out.LogWriter == nil {
		out.LogWriter = os.Stderr
	}
	if out.RetryBase <= 0 {
		out.RetryBase = defaultRetryBase
	}
	return &out
}

func newHubBackend(cfg *config.Config, cache hub.SessionCache, logger *slog.Logger) (auth.Backend, error) {
	client, err := hub.NewClientWithLogger(hub.Config{
		BaseURL:   cfg.HubURL,
		Timeout:   cfg.Timeout,
		UserAgent: "hubauth/" + version,
	}, logger)
	if err != nil {
		return nil, err
	}
	return hub.NewBackendWithLogger(client, cache, logger)
}
