// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package config loads hubauth settings from defaults, a YAML file, HUBAUTH_*
// environment variables and command-line flags, in increasing precedence.
package config

import (
	"errors"
	"io/fs"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"

	"github.com/holomush/hubauth/internal/xdg"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "HUBAUTH_"

// Default values.
const (
	DefaultTimeout   = 15 * time.Second
	DefaultLogFormat = "text"
	DefaultLogLevel  = "warn"
)

// Config holds the resolved settings for one invocation.
type Config struct {
	HubURL          string        `koanf:"hub_url"`
	Timeout         time.Duration `koanf:"timeout"`
	SessionFile     string        `koanf:"session_file"`
	LogFormat       string        `koanf:"log_format"`
	LogLevel        string        `koanf:"log_level"`
	MetricsTextfile string        `koanf:"metrics_textfile"`

	// Login inputs. Usually given as flags or environment variables rather
	// than in the config file.
	Email       string `koanf:"email"`
	Password    string `koanf:"password"`
	Token       string `koanf:"token"`
	KeepSession bool   `koanf:"keep_session"`
	Retries     int    `koanf:"retries"`
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.HubURL == "" {
		return oops.Code("CONFIG_INVALID").
			Hint("set hub_url in the config file, HUBAUTH_HUB_URL or --hub-url").
			Errorf("hub_url is required")
	}
	u, err := url.Parse(c.HubURL)
	if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return oops.Code("CONFIG_INVALID").
			With("hub_url", c.HubURL).
			Errorf("hub_url must be an absolute http or https URL")
	}
	if c.Timeout <= 0 {
		return oops.Code("CONFIG_INVALID").
			With("timeout", c.Timeout.String()).
			Errorf("timeout must be positive")
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		return oops.Code("CONFIG_INVALID").
			With("log_format", c.LogFormat).
			Errorf("log_format must be 'json' or 'text', got %q", c.LogFormat)
	}
	if c.Retries < 0 {
		return oops.Code("CONFIG_INVALID").
			With("retries", c.Retries).
			Errorf("retries must not be negative")
	}
	return nil
}

// Options controls where Load looks for settings.
type Options struct {
	// File is an explicit config file. When empty the XDG config file is
	// used if it exists.
	File string

	// Flags are parsed command-line flags. Flag names map to keys by
	// replacing '-' with '_'.
	Flags *pflag.FlagSet
}

// Load resolves the configuration and validates it.
func Load(opts Options) (*Config, error) {
	k := koanf.New(".")

	if err := loadFile(k, opts.File); err != nil {
		return nil, err
	}
	if err := loadEnv(k); err != nil {
		return nil, err
	}
	if opts.Flags != nil {
		// Unchanged flags only fill keys no other source set.
		provider := posflag.ProviderWithFlag(opts.Flags, ".", k, func(f *pflag.Flag) (string, any) {
			return flagKey(f.Name), posflag.FlagVal(opts.Flags, f)
		})
		if err := k.Load(provider, nil); err != nil {
			return nil, oops.Code("CONFIG_LOAD_FAILED").With("source", "flags").Wrap(err)
		}
	}

	cfg := &Config{
		Timeout:   DefaultTimeout,
		LogFormat: DefaultLogFormat,
		LogLevel:  DefaultLogLevel,
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, oops.Code("CONFIG_LOAD_FAILED").With("source", "unmarshal").Wrap(err)
	}

	if cfg.SessionFile == "" {
		path, err := xdg.SessionFile()
		if err != nil {
			return nil, err
		}
		cfg.SessionFile = path
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(k *koanf.Koanf, path string) error {
	explicit := path != ""
	if !explicit {
		def, err := xdg.ConfigFile()
		if err != nil {
			// No home directory: nothing to load implicitly.
			return nil //nolint:nilerr // implicit config file is optional
		}
		path = def
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return nil
		}
		return oops.Code("CONFIG_LOAD_FAILED").With("source", "file").With("path", path).Wrap(err)
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return oops.Code("CONFIG_LOAD_FAILED").With("source", "file").With("path", path).Wrap(err)
	}
	return nil
}

func loadEnv(k *koanf.Koanf) error {
	provider := env.Provider(EnvPrefix, ".", envKey)
	if err := k.Load(provider, nil); err != nil {
		return oops.Code("CONFIG_LOAD_FAILED").With("source", "env").Wrap(err)
	}
	return nil
}

func envKey(name string) string {
	return strings.ToLower(strings.TrimPrefix(name, EnvPrefix))
}

func flagKey(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}
