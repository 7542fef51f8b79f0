// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package paseto

import (
	"crypto/subtle"
	"fmt"
	"log/slog"

	"github.com/bureau-foundation/paseto/lib/cryptoprovider"
	"github.com/bureau-foundation/paseto/lib/wire"
)

// Result is an authenticated token payload and its footer. Footer is
// nil when the token has none.
type Result struct {
	Payload []byte
	Footer  []byte
}

// engine holds what Local and Public share: the bound version, the
// provider for it, and the logger.
type engine struct {
	version wire.Version
	purpose wire.Purpose
	v1      cryptoprovider.V1
	v2      cryptoprovider.V2
	logger  *slog.Logger
}

func newEngine(version wire.Version, purpose wire.Purpose, v1 cryptoprovider.V1, v2 cryptoprovider.V2, logger *slog.Logger) (engine, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	switch version {
	case wire.V1:
		if v1 == nil {
			return engine{}, fmt.Errorf("%w %s", ErrMissingProvider, version)
		}
	case wire.V2:
		if v2 == nil {
			return engine{}, fmt.Errorf("%w %s", ErrMissingProvider, version)
		}
	default:
		return engine{}, fmt.Errorf("%w: %s", wire.ErrUnknownVersion, version)
	}
	return engine{
		version: version,
		purpose: purpose,
		v1:      v1,
		v2:      v2,
		logger:  logger.With("version", version.String(), "purpose", purpose.String()),
	}, nil
}

// Version returns the version the engine builds and accepts.
func (e *engine) Version() wire.Version {
	return e.version
}

// header returns the PAE header piece.
func (e *engine) header() []byte {
	return []byte(wire.Header(e.version, e.purpose))
}

// parse decodes a token and requires it to match the engine.
func (e *engine) parse(token string) (wire.Token, error) {
	parsed, err := wire.Parse(token)
	if err != nil {
		return wire.Token{}, err
	}
	if parsed.Version != e.version {
		return wire.Token{}, fmt.Errorf("%w: got %s, engine is %s", ErrWrongVersion, parsed.Version, e.version)
	}
	if parsed.Purpose != e.purpose {
		return wire.Token{}, fmt.Errorf("%w: got %s, engine is %s", ErrWrongPurpose, parsed.Purpose, e.purpose)
	}
	return parsed, nil
}

// parseWithFooter is parse plus a constant-time footer comparison.
// Nil and empty footers compare equal.
func (e *engine) parseWithFooter(token string, footer []byte) (wire.Token, error) {
	parsed, err := e.parse(token)
	if err != nil {
		return wire.Token{}, err
	}
	if subtle.ConstantTimeCompare(parsed.Footer, footer) != 1 {
		return wire.Token{}, ErrFooterMismatch
	}
	return parsed, nil
}

func checkKey(key []byte) error {
	return cryptoprovider.CheckNotNil(cryptoprovider.Arg{Name: "key", Value: key})
}

func checkPayload(payload []byte) error {
	return cryptoprovider.CheckNotNil(cryptoprovider.Arg{Name: "payload", Value: payload})
}
