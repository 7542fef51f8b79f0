// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/paseto/cmd/paseto/cli"
	"github.com/bureau-foundation/paseto/lib/keyring"
)

type keysParams struct {
	globalParams
	cli.JSONOutput
}

// keysCommand lists the manifest. It never reads key material, so it
// works without the age identity.
func keysCommand(streams Streams) *cli.Command {
	var params keysParams
	return &cli.Command{
		Name:    "keys",
		Summary: "List the keys in the keyring",
		Usage:   "paseto keys [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("keys", &params)
		},
		Run: func(args []string) error {
			if len(args) != 0 {
				return fmt.Errorf("unexpected arguments: %v", args)
			}
			env, err := newEnvironment(params.globalParams, streams, "keys")
			if err != nil {
				return err
			}
			manifest, err := keyring.LoadManifest(env.config.Keyring.Dir)
			if err != nil {
				return err
			}

			if params.OutputJSON {
				entries := manifest.Keys
				if entries == nil {
					entries = []keyring.Entry{}
				}
				return cli.WriteJSON(env.streams.Stdout, entries)
			}
			if len(manifest.Keys) == 0 {
				fmt.Fprintf(env.streams.Stderr, "no keys in %s\n", env.config.Keyring.Dir)
				return nil
			}
			writer := tabwriter.NewWriter(env.streams.Stdout, 2, 0, 3, ' ', 0)
			fmt.Fprintln(writer, "ID\tVERSION\tPURPOSE\tSEALED")
			for _, entry := range manifest.Keys {
				fmt.Fprintf(writer, "%s\t%s\t%s\t%t\n", entry.ID, entry.Version, entry.Purpose, entry.Sealed)
			}
			return writer.Flush()
		},
	}
}
