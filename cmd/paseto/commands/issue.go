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

type issueParams struct {
	globalParams
	Key      string `json:"key"      flag:"key,k" desc:"key id to build the token with (required)"`
	Claims   string `json:"claims"   flag:"claims" desc:"JSON claims file, comments allowed (- for stdin)"`
	Subject  string `json:"subject"  flag:"subject" desc:"sub claim (overrides the claims file)"`
	Audience string `json:"audience" flag:"audience" desc:"aud claim (overrides the claims file)"`
	TokenID  string `json:"token_id" flag:"token-id" desc:"jti claim (overrides the claims file)"`
	TTL      string `json:"ttl"      flag:"ttl" desc:"lifetime for tokens without exp (default: tokens.validity; 0 for none)"`
	Encoding string `json:"encoding" flag:"encoding" desc:"payload encoding, json or cbor (default: tokens.encoding)"`
}

func encryptCommand(streams Streams) *cli.Command {
	return issueCommand(streams, wire.Local, "encrypt", "Encrypt claims into a local token")
}

func signCommand(streams Streams) *cli.Command {
	return issueCommand(streams, wire.Public, "sign", "Sign claims into a public token")
}

func issueCommand(streams Streams, purpose wire.Purpose, name, summary string) *cli.Command {
	var params issueParams
	return &cli.Command{
		Name:    name,
		Summary: summary,
		Description: summary + `.

The token version follows the key's version. iat is set to now, exp to
now plus --ttl unless the claims already carry one, iss to tokens.issuer
when configured, and the footer names the key so decoders can find it.`,
		Usage: "paseto " + name + " --key ID [flags]",
		Examples: []cli.Example{
			{
				Description: "Issue a token for a subject",
				Command:     "paseto " + name + " --key primary --subject alice --audience billing",
			},
			{
				Description: "Issue a token from a claims file with a short lifetime",
				Command:     "paseto " + name + " --key primary --claims claims.jsonc --ttl 5m",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams(name, &params)
		},
		Run: func(args []string) error {
			if len(args) != 0 {
				return fmt.Errorf("unexpected arguments: %v", args)
			}
			if params.Key == "" {
				return fmt.Errorf("--key is required")
			}
			env, err := newEnvironment(params.globalParams, streams, name)
			if err != nil {
				return err
			}
			return runIssue(env, purpose, params)
		},
	}
}

func runIssue(env *environment, purpose wire.Purpose, params issueParams) error {
	document, err := env.readClaims(params.Claims)
	if err != nil {
		return err
	}
	setIfPresent(&document.Subject, params.Subject)
	setIfPresent(&document.Audience, params.Audience)
	setIfPresent(&document.TokenID, params.TokenID)
	if document.Issuer == "" {
		document.Issuer = env.config.Tokens.Issuer
	}

	keys, err := env.openKeyring()
	if err != nil {
		return err
	}
	defer keys.Close()

	entry, ok := keys.Entry(params.Key)
	if !ok {
		return fmt.Errorf("key %q is not in %s", params.Key, keys.Dir())
	}
	if entry.Purpose != purpose.String() {
		return fmt.Errorf("key %q is a %s key; %s needs a %s key", entry.ID, entry.Purpose, commandFor(purpose), purpose)
	}
	version, err := wire.ParseVersion(entry.Version)
	if err != nil {
		return err
	}

	service, err := env.newService(purpose, keys, serviceSettings{
		version:  version,
		keyID:    entry.ID,
		encoding: params.Encoding,
		validity: params.TTL,
	})
	if err != nil {
		return err
	}
	token, err := service.Encode(document, &claims.Footer{KeyID: entry.ID})
	if err != nil {
		return err
	}
	env.logger.Debug("issued token", "kid", entry.ID, "version", entry.Version, "purpose", entry.Purpose)

	fmt.Fprintln(env.streams.Stdout, token)
	return env.finish()
}

func setIfPresent(target *string, value string) {
	if value != "" {
		*target = value
	}
}

func commandFor(purpose wire.Purpose) string {
	if purpose == wire.Public {
		return "sign"
	}
	return "encrypt"
}
