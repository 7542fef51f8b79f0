// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/paseto/cmd/paseto/cli"
	"github.com/bureau-foundation/paseto/lib/claims"
	"github.com/bureau-foundation/paseto/lib/wire"
)

type openParams struct {
	globalParams
	Key      string `json:"key"      flag:"key,k" desc:"key id for tokens whose footer names none"`
	Issuer   string `json:"issuer"   flag:"issuer" desc:"required iss (default: tokens.issuer)"`
	Audience string `json:"audience" flag:"audience" desc:"required aud (default: tokens.audience)"`
	Subject  string `json:"subject"  flag:"subject" desc:"required sub"`
	Encoding string `json:"encoding" flag:"encoding" desc:"payload encoding, json or cbor (default: tokens.encoding)"`
	Quiet    bool   `json:"quiet"    flag:"quiet,q" desc:"print nothing; report the result in the exit status"`
}

func decryptCommand(streams Streams) *cli.Command {
	return openCommand(streams, wire.Local, "decrypt", "Decrypt and validate a local token")
}

func verifyCommand(streams Streams) *cli.Command {
	return openCommand(streams, wire.Public, "verify", "Verify and validate a public token")
}

func openCommand(streams Streams, purpose wire.Purpose, name, summary string) *cli.Command {
	var params openParams
	return &cli.Command{
		Name:    name,
		Summary: summary,
		Description: summary + `.

The key is chosen by the kid in the token's footer, falling back to --key.
exp, nbf and iat are checked with tokens.clock_skew of tolerance. On
success the claims are printed as JSON. A rejected token prints the
reason on stderr and exits with status 1.`,
		Usage: "paseto " + name + " <token|-> [flags]",
		Examples: []cli.Example{
			{
				Description: "Check a token and require an audience",
				Command:     "paseto " + name + " --audience billing v2." + purpose.String() + ".AAAA...",
			},
			{
				Description: "Read the token from stdin",
				Command:     "paseto " + name + " - < token.txt",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams(name, &params)
		},
		Run: func(args []string) error {
			token, err := readArgument(streams, args, "token")
			if err != nil {
				return err
			}
			env, err := newEnvironment(params.globalParams, streams, name)
			if err != nil {
				return err
			}
			return runOpen(env, purpose, token, params)
		},
	}
}

func runOpen(env *environment, purpose wire.Purpose, token string, params openParams) error {
	// Only the header is needed to pick the engine; the engine itself
	// rejects a purpose mismatch.
	parsed, err := wire.Parse(token)
	if err != nil {
		return rejected(env, params, err)
	}

	keys, err := env.openKeyring()
	if err != nil {
		return err
	}
	defer keys.Close()

	service, err := env.newService(purpose, keys, serviceSettings{
		version:  parsed.Version,
		keyID:    params.Key,
		encoding: params.Encoding,
		rules:    env.decodeRules(params.Issuer, params.Audience, params.Subject),
	})
	if err != nil {
		return err
	}

	var document claims.Generic
	if _, err := service.Decode(token, &document); err != nil {
		return rejected(env, params, err)
	}
	if err := env.finish(); err != nil {
		return err
	}
	if params.Quiet {
		return nil
	}
	return cli.WriteJSON(env.streams.Stdout, document)
}

// rejected reports a token failure and returns exit status 1. Metrics
// are still written.
func rejected(env *environment, params openParams, cause error) error {
	env.logger.Debug("token rejected", "error", cause)
	if !params.Quiet {
		fmt.Fprintf(env.streams.Stderr, "token rejected: %v\n", cause)
	}
	if err := env.finish(); err != nil {
		return err
	}
	return &cli.ExitError{Code: 1}
}
