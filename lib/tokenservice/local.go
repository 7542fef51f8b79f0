// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tokenservice

import (
	"log/slog"
	"time"

	"github.com/bureau-foundation/paseto/lib/claims"
	"github.com/bureau-foundation/paseto/lib/clock"
	"github.com/bureau-foundation/paseto/lib/encoding"
	"github.com/bureau-foundation/paseto/lib/keyprovider"
	"github.com/bureau-foundation/paseto/lib/paseto"
	"github.com/bureau-foundation/paseto/lib/tokenmetrics"
	"github.com/bureau-foundation/paseto/lib/wire"
)

// LocalConfig configures a [Local] service. Engine and Keys are
// required.
type LocalConfig struct {
	Engine *paseto.Local
	Keys   keyprovider.Symmetric

	// Encoding serializes claims. Nil selects JSON.
	Encoding encoding.Provider

	// KeyID names the key Encode uses when the caller's footer does
	// not, and the key Decode uses for tokens without a kid footer.
	// Empty is a valid key ID.
	KeyID string

	// DefaultValidity sets exp = iat + DefaultValidity on tokens that
	// have no exp. Zero leaves exp unset.
	DefaultValidity time.Duration

	// ClockSkew is passed to every rule.
	ClockSkew time.Duration

	// Clock defaults to the wall clock.
	Clock clock.Clock

	// Rules applied on Decode. Nil selects [claims.DefaultRules]; an
	// empty non-nil slice disables validation.
	Rules []claims.Rule

	Metrics *tokenmetrics.Metrics
	Logger  *slog.Logger
}

// Local encrypts claims into local tokens.
type Local struct {
	service
	engine *paseto.Local
	keys   keyprovider.Symmetric
}

// NewLocal returns a service for config.
func NewLocal(config LocalConfig) (*Local, error) {
	if config.Engine == nil {
		return nil, ErrMissingEngine
	}
	if config.Keys == nil {
		return nil, ErrMissingKeys
	}
	return &Local{
		service: newService(config.Engine.Version(), wire.Local, options{
			Encoding:        config.Encoding,
			KeyID:           config.KeyID,
			DefaultValidity: config.DefaultValidity,
			ClockSkew:       config.ClockSkew,
			Clock:           config.Clock,
			Rules:           config.Rules,
			Metrics:         config.Metrics,
			Logger:          config.Logger,
		}),
		engine: config.Engine,
		keys:   config.Keys,
	}, nil
}

// Encode builds a local token from value. A non-empty footer.KeyID
// overrides the configured key ID. value's iat and exp may be filled
// in.
func (l *Local) Encode(value claims.Carrier, footer *claims.Footer) (string, error) {
	return l.encode(value, footer, l.keys.SymmetricKey, l.engine.Encrypt)
}

// Decode decrypts and validates token and decodes its payload into
// value. value may be nil when only the registered claims are needed.
func (l *Local) Decode(token string, value claims.Carrier) (*claims.Registered, error) {
	return l.decode(token, value, l.keys.SymmetricKey, l.engine.DecryptWithFooter)
}
