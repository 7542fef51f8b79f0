// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/paseto/cmd/paseto/cli"
	"github.com/bureau-foundation/paseto/lib/version"
)

type versionParams struct {
	cli.JSONOutput
	Short bool `json:"-" flag:"short" desc:"print only the version number"`
}

func versionCommand(streams Streams) *cli.Command {
	var params versionParams
	return &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("version", &params)
		},
		Run: func(args []string) error {
			switch {
			case params.OutputJSON:
				return cli.WriteJSON(streams.Stdout, map[string]string{
					"version":  version.Short(),
					"build":    version.Info(),
					"go":       runtime.Version(),
					"platform": runtime.GOOS + "/" + runtime.GOARCH,
				})
			case params.Short:
				fmt.Fprintln(streams.Stdout, version.Short())
			default:
				fmt.Fprintf(streams.Stdout, "paseto %s\n", version.Full())
			}
			return nil
		},
	}
}
