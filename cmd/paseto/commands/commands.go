// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"github.com/bureau-foundation/paseto/cmd/paseto/cli"
)

// Root returns the paseto command tree wired to streams.
func Root(streams Streams) *cli.Command {
	return &cli.Command{
		Name:    "paseto",
		Summary: "Build and check PASETO tokens",
		Description: `paseto builds and checks Platform-Agnostic Security Tokens.

Keys live in a keyring directory (keyring.dir) with a keyring.yaml
manifest. Local tokens are encrypted with a shared key; public tokens are
signed. Both carry claims as JSON (or CBOR, by agreement) and a footer
naming the key.`,
		HelpOutput: streams.Stderr,
		Subcommands: []*cli.Command{
			keygenCommand(streams),
			keysCommand(streams),
			encryptCommand(streams),
			decryptCommand(streams),
			signCommand(streams),
			verifyCommand(streams),
			inspectCommand(streams),
			versionCommand(streams),
		},
		Examples: []cli.Example{
			{
				Description: "Create a local key and round-trip a token",
				Command:     "paseto keygen --id primary && paseto encrypt --key primary --subject alice | paseto decrypt -",
			},
		},
	}
}
