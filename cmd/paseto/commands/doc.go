// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the paseto command tree.
//
// Every command that touches keys or tokens loads the configuration
// (--config, then PASETO_CONFIG, then built-in defaults), builds a
// logger from its log section, and opens the keyring it names. Token
// counters go to a private Prometheus registry that is written to
// metrics.textfile, when configured, as the command finishes.
package commands
