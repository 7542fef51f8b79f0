// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/bureau-foundation/paseto/cmd/paseto/cli"
	"github.com/bureau-foundation/paseto/lib/config"
	"github.com/bureau-foundation/paseto/lib/keyring"
	"github.com/bureau-foundation/paseto/lib/secret"
	"github.com/bureau-foundation/paseto/lib/tokenmetrics"
)

// Streams are the standard streams commands read and write.
type Streams struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// DefaultStreams returns the process streams.
func DefaultStreams() Streams {
	return Streams{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// globalParams are the flags every keyring command accepts.
type globalParams struct {
	Config   string `json:"-" flag:"config,c" desc:"configuration file (default: $PASETO_CONFIG)"`
	Keyring  string `json:"-" flag:"keyring" desc:"keyring directory (overrides keyring.dir)"`
	Identity string `json:"-" flag:"identity,i" desc:"age identity file for sealed keys (overrides keyring.identity)"`
}

// environment is the per-invocation state shared by commands.
type environment struct {
	config   *config.Config
	streams  Streams
	logger   *slog.Logger
	registry *prometheus.Registry
	metrics  *tokenmetrics.Metrics
}

// newEnvironment loads configuration, applies the global flag
// overrides, and builds the logger and metrics registry.
func newEnvironment(global globalParams, streams Streams, command string) (*environment, error) {
	cfg, err := loadConfig(global.Config)
	if err != nil {
		return nil, err
	}
	if global.Keyring != "" {
		cfg.Keyring.Dir = global.Keyring
	}
	if global.Identity != "" {
		cfg.Keyring.Identity = global.Identity
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration:\n%w", err)
	}

	logger, err := cli.NewLogger(streams.Stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	metrics, err := tokenmetrics.New(registry)
	if err != nil {
		return nil, err
	}

	return &environment{
		config:   cfg,
		streams:  streams,
		logger:   logger.With("command", command),
		registry: registry,
		metrics:  metrics,
	}, nil
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	if os.Getenv(config.EnvironmentVariable) != "" {
		return config.Load()
	}
	return config.Default(), nil
}

// openKeyring opens the configured keyring, reading the age identity
// first when one is configured.
func (e *environment) openKeyring() (*keyring.Keyring, error) {
	var identity *secret.Buffer
	if e.config.Keyring.Identity != "" {
		var err error
		identity, err = secret.ReadFromPath(e.config.Keyring.Identity)
		if err != nil {
			return nil, err
		}
		defer identity.Close()
	}

	keys, err := keyring.Open(e.config.Keyring.Dir, keyring.Options{Identity: identity, Logger: e.logger})
	if err != nil {
		if errors.Is(err, keyring.ErrIdentityRequired) {
			return nil, fmt.Errorf("%w (pass --identity or set keyring.identity)", err)
		}
		return nil, err
	}
	e.logger.Debug("opened keyring", "dir", keys.Dir(), "keys", len(keys.Entries()))
	return keys, nil
}

// finish writes the metrics textfile when one is configured.
func (e *environment) finish() error {
	path := e.config.Metrics.Textfile
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, e.registry); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	e.logger.Debug("wrote metrics textfile", "path", path)
	return nil
}

// readArgument returns args[0], reading stdin when it is "-". what
// names the argument in errors.
func readArgument(streams Streams, args []string, what string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("expected exactly one %s argument (use - for stdin), got %d", what, len(args))
	}
	if args[0] != "-" {
		return args[0], nil
	}
	data, err := io.ReadAll(streams.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading %s from stdin: %w", what, err)
	}
	value := strings.TrimSpace(string(data))
	if value == "" {
		return "", fmt.Errorf("empty %s on stdin", what)
	}
	return value, nil
}
