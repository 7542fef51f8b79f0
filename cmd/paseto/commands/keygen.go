// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/paseto/cmd/paseto/cli"
	"github.com/bureau-foundation/paseto/lib/keyring"
	"github.com/bureau-foundation/paseto/lib/wire"
)

type keygenParams struct {
	globalParams
	cli.JSONOutput
	Version string   `json:"version" flag:"version" desc:"protocol version, v1 or v2 (default: tokens.version)"`
	Purpose string   `json:"purpose" flag:"purpose,p" desc:"local or public" default:"local"`
	ID      string   `json:"id"      flag:"id" desc:"key id (default: derived from the key)"`
	SealTo  []string `json:"seal_to" flag:"seal-to" desc:"age recipient to seal the secret to (repeatable; default: keyring.seal_to)"`
	Plain   bool     `json:"plain"   flag:"plain" desc:"write the secret unsealed even when keyring.seal_to is set"`
}

func keygenCommand(streams Streams) *cli.Command {
	var params keygenParams
	return &cli.Command{
		Name:    "keygen",
		Summary: "Generate a key into the keyring",
		Description: `Generate a new key and record it in the keyring manifest.

Local keys are 32 random bytes. Public keys are Ed25519 pairs for v2 and
2048-bit RSA pairs for v1. The secret half is sealed with age when
recipients are given (--seal-to or keyring.seal_to); the public half of
a pair is always written in the clear.`,
		Usage: "paseto keygen [flags]",
		Examples: []cli.Example{
			{Description: "Create a v2 local key", Command: "paseto keygen --purpose local"},
			{Description: "Create a signing key sealed to an age recipient", Command: "paseto keygen --purpose public --seal-to age1..."},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("keygen", &params)
		},
		Run: func(args []string) error {
			if len(args) != 0 {
				return fmt.Errorf("unexpected arguments: %v", args)
			}
			env, err := newEnvironment(params.globalParams, streams, "keygen")
			if err != nil {
				return err
			}
			return runKeygen(env, params)
		},
	}
}

func runKeygen(env *environment, params keygenParams) error {
	versionName := params.Version
	if versionName == "" {
		versionName = env.config.Tokens.Version
	}
	version, err := wire.ParseVersion(versionName)
	if err != nil {
		return err
	}
	purpose, err := wire.ParsePurpose(params.Purpose)
	if err != nil {
		return err
	}

	sealTo := params.SealTo
	if len(sealTo) == 0 && !params.Plain {
		sealTo = env.config.Keyring.SealTo
	}
	if params.Plain && len(params.SealTo) > 0 {
		return errors.New("--plain and --seal-to are mutually exclusive")
	}
	if len(sealTo) == 0 && env.config.Keyring.RequireSealed {
		return errors.New("keyring.require_sealed is set: refusing to write an unsealed secret key")
	}

	entry, err := keyring.Generate(env.config.Keyring.Dir, keyring.GenerateRequest{
		Version: version,
		Purpose: purpose,
		ID:      params.ID,
		SealTo:  sealTo,
	})
	if err != nil {
		return err
	}
	env.logger.Info("generated key", "id", entry.ID, "version", entry.Version, "purpose", entry.Purpose, "sealed", entry.Sealed)

	if params.OutputJSON {
		if err := cli.WriteJSON(env.streams.Stdout, entry); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(env.streams.Stdout, entry.ID)
	}
	return env.finish()
}
