// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads the YAML configuration of the paseto CLI.
//
// Configuration comes from a single file named by the PASETO_CONFIG
// environment variable (via [Load]) or a --config flag (via
// [LoadFile]). There is no search path and no per-field environment
// override; the file is the whole truth, layered over [Default].
//
// The file may carry development, staging, and production sections
// that override base values when [Config].Environment matches.
// Production is stricter without any section: secret key files must
// be sealed and tokens must expire.
//
// ${HOME}, ${PASETO_HOME}, and ${VAR:-default} are expanded in path
// fields after loading.
package config
