// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/holomush/hubauth/internal/auth"
	"github.com/holomush/hubauth/internal/config"
	"github.com/holomush/hubauth/internal/localstore"
	"github.com/holomush/hubauth/internal/logging"
	"github.com/holomush/hubauth/pkg/errutil"
)

// rootConfig holds flags that are not part of config.Config.
type rootConfig struct {
	configFile string
}

// NewRootCmd creates the root command for the hubauth CLI.
func NewRootCmd() *cobra.Command {
	return newRootCmdWithDeps(nil)
}

func newRootCmdWithDeps(deps *Deps) *cobra.Command {
	deps = deps.withDefaults()
	root := &rootConfig{}

	cmd := &cobra.Command{
		Use:   "hubauth",
		Short: "hubauth - log in to the hub from the terminal",
		Long: `hubauth manages the hub session of the current user: it logs in with
an email and password or a personal access token, caches the session locally
so later runs log in without credentials, and logs out again.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&root.configFile, "config", "", "config file path (default: XDG_CONFIG_HOME/hubauth/config.yaml)")
	flags.String("hub-url", "", "hub API base URL")
	flags.Duration("timeout", config.DefaultTimeout, "timeout for each hub request")
	flags.String("session-file", "", "cached session file (default: XDG_STATE_HOME/hubauth/session.yaml)")
	flags.String("log-format", config.DefaultLogFormat, "log format (json or text)")
	flags.String("log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	flags.String("metrics-textfile", "", "write Prometheus metrics to this file on exit")

	cmd.AddCommand(newLoginCmd(root, deps))
	cmd.AddCommand(newLogoutCmd(root, deps))
	cmd.AddCommand(newWhoamiCmd(root, deps))
	cmd.AddCommand(newSessionCmd(root, deps))

	return cmd
}

// app is the wired object graph for one command invocation.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	store   *localstore.Store
	service *auth.Service
}

// runWithApp builds the app from cmd's flags and runs fn with it. Metrics are
// written afterwards when a textfile is configured, whether or not fn fails.
func runWithApp(cmd *cobra.Command, root *rootConfig, deps *Deps, fn func(*app) error) error {
	a, err := newApp(cmd, root, deps)
	if err != nil {
		return err
	}

	runErr := fn(a)

	if a.cfg.MetricsTextfile != "" {
		if err := prometheus.WriteToTextfile(a.cfg.MetricsTextfile, prometheus.DefaultGatherer); err != nil {
			errutil.LogError(a.logger, "could not write metrics textfile",
				oops.Code("METRICS_WRITE_FAILED").With("path", a.cfg.MetricsTextfile).Wrap(err))
		}
	}
	return runErr
}

func newApp(cmd *cobra.Command, root *rootConfig, deps *Deps) (*app, error) {
	cfg, err := config.Load(config.Options{File: root.configFile, Flags: cmd.Flags()})
	if err != nil {
		return nil, err
	}

	logger, err := logging.Setup("hubauth", version, cfg.LogFormat, cfg.LogLevel, deps.LogWriter)
	if err != nil {
		return nil, err
	}
	logger = logger.With("command", cmd.Name())

	store, err := localstore.New(cfg.SessionFile)
	if err != nil {
		return nil, err
	}

	backend, err := deps.BackendFactory(cfg, store, logger)
	if err != nil {
		return nil, err
	}

	service, err := auth.NewAuthServiceWithLogger(backend, store, auth.NewUserState(), logger)
	if err != nil {
		return nil, err
	}

	return &app{cfg: cfg, logger: logger, store: store, service: service}, nil
}

func (a *app) credentials() auth.Credentials {
	return auth.Credentials{
		Email:    a.cfg.Email,
		Password: a.cfg.Password,
		Token:    a.cfg.Token,
	}
}
