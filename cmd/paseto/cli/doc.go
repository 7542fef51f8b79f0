// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli is the command tree behind the paseto binary.
//
// A [Command] has a name, help text, a lazily built pflag set, and
// either subcommands or a Run function. [Command.Execute] dispatches
// positional arguments through the tree, parses flags, and reports
// unknown commands or flags with a closest-match suggestion.
//
// Flags are usually declared through a tagged params struct and
// [FlagsFromParams] rather than by hand. Handlers that want a specific
// exit status without an extra error line return an [ExitError].
package cli
