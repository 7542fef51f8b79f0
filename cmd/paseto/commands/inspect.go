// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/paseto/cmd/paseto/cli"
	"github.com/bureau-foundation/paseto/lib/claims"
	"github.com/bureau-foundation/paseto/lib/codec"
	"github.com/bureau-foundation/paseto/lib/cryptoprovider"
	"github.com/bureau-foundation/paseto/lib/wire"
)

type inspectParams struct {
	cli.JSONOutput
}

// inspection is what can be learned from a token without a key.
// Nothing in it is authenticated.
type inspection struct {
	Version      string `json:"version"`
	Purpose      string `json:"purpose"`
	PayloadBytes int    `json:"payload_bytes"`
	Footer       string `json:"footer,omitempty"`
	KeyID        string `json:"kid,omitempty"`

	// Public tokens carry their message in the clear. Claims holds it
	// when it is JSON; Diagnostic holds CBOR diagnostic notation.
	Claims     json.RawMessage `json:"claims,omitempty"`
	Diagnostic string          `json:"cbor_diagnostic,omitempty"`
}

func inspectCommand(streams Streams) *cli.Command {
	var params inspectParams
	return &cli.Command{
		Name:    "inspect",
		Summary: "Show a token's header, footer, and unverified claims",
		Description: `Decode a token without any key. Prints the version, purpose, payload
size, and footer. For public tokens the signed message is readable and is
shown too, as JSON or as CBOR diagnostic notation.

None of this output is verified. Use decrypt or verify before trusting it.`,
		Usage: "paseto inspect <token|-> [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("inspect", &params)
		},
		Run: func(args []string) error {
			token, err := readArgument(streams, args, "token")
			if err != nil {
				return err
			}
			result, err := inspect(token)
			if err != nil {
				return err
			}
			if params.OutputJSON {
				return cli.WriteJSON(streams.Stdout, result)
			}
			return printInspection(streams, result)
		},
	}
}

func inspect(token string) (*inspection, error) {
	parsed, err := wire.Parse(token)
	if err != nil {
		return nil, err
	}
	result := &inspection{
		Version:      parsed.Version.String(),
		Purpose:      parsed.Purpose.String(),
		PayloadBytes: len(parsed.Payload),
	}

	if len(parsed.Footer) > 0 {
		if utf8.Valid(parsed.Footer) {
			result.Footer = string(parsed.Footer)
		} else {
			result.Footer = fmt.Sprintf("%x", parsed.Footer)
		}
		if footer, err := claims.ParseFooter(parsed.Footer); err == nil {
			result.KeyID = footer.KeyID
		}
	}

	if parsed.Purpose == wire.Public {
		signatureSize := cryptoprovider.V2Ed25519SignatureSize
		if parsed.Version == wire.V1 {
			signatureSize = cryptoprovider.V1RsaSignatureSize
		}
		if len(parsed.Payload) < signatureSize {
			return nil, fmt.Errorf("%w: %d-byte payload is shorter than a %s signature", wire.ErrMalformedToken, len(parsed.Payload), parsed.Version)
		}
		message := parsed.Payload[:len(parsed.Payload)-signatureSize]
		switch {
		case json.Valid(message):
			result.Claims = json.RawMessage(message)
		case codec.Valid(message) == nil:
			notation, err := codec.Diagnose(message)
			if err != nil {
				return nil, err
			}
			result.Diagnostic = notation
		}
	}
	return result, nil
}

func printInspection(streams Streams, result *inspection) error {
	writer := tabwriter.NewWriter(streams.Stdout, 2, 0, 2, ' ', 0)
	fmt.Fprintf(writer, "version:\t%s\n", result.Version)
	fmt.Fprintf(writer, "purpose:\t%s\n", result.Purpose)
	fmt.Fprintf(writer, "payload:\t%d bytes\n", result.PayloadBytes)
	if result.Footer != "" {
		fmt.Fprintf(writer, "footer:\t%s\n", result.Footer)
	}
	if result.KeyID != "" {
		fmt.Fprintf(writer, "kid:\t%s\n", result.KeyID)
	}
	if len(result.Claims) > 0 {
		fmt.Fprintf(writer, "claims (unverified):\t%s\n", result.Claims)
	}
	if result.Diagnostic != "" {
		fmt.Fprintf(writer, "claims (unverified, cbor):\t%s\n", result.Diagnostic)
	}
	return writer.Flush()
}
