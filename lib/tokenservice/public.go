// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tokenservice

import (
	"fmt"
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

// PublicConfig configures a [Public] service. Engine and at least one
// of SigningKeys and VerifyingKeys are required. The remaining fields
// mean what they mean in [LocalConfig].
type PublicConfig struct {
	Engine        *paseto.Public
	SigningKeys   keyprovider.Signing
	VerifyingKeys keyprovider.Verifying

	Encoding        encoding.Provider
	KeyID           string
	DefaultValidity time.Duration
	ClockSkew       time.Duration
	Clock           clock.Clock
	Rules           []claims.Rule
	Metrics         *tokenmetrics.Metrics
	Logger          *slog.Logger
}

// Public signs claims into public tokens and verifies them. A verifier
// holding only public keys configures VerifyingKeys alone.
type Public struct {
	service
	engine    *paseto.Public
	signing   keyprovider.Signing
	verifying keyprovider.Verifying
}

// NewPublic returns a service for config.
func NewPublic(config PublicConfig) (*Public, error) {
	if config.Engine == nil {
		return nil, ErrMissingEngine
	}
	if config.SigningKeys == nil && config.VerifyingKeys == nil {
		return nil, ErrMissingKeys
	}
	return &Public{
		service: newService(config.Engine.Version(), wire.Public, options{
			Encoding:        config.Encoding,
			KeyID:           config.KeyID,
			DefaultValidity: config.DefaultValidity,
			ClockSkew:       config.ClockSkew,
			Clock:           config.Clock,
			Rules:           config.Rules,
			Metrics:         config.Metrics,
			Logger:          config.Logger,
		}),
		engine:    config.Engine,
		signing:   config.SigningKeys,
		verifying: config.VerifyingKeys,
	}, nil
}

// Encode signs value into a public token.
func (p *Public) Encode(value claims.Carrier, footer *claims.Footer) (string, error) {
	return p.encode(value, footer, p.secretKey, p.engine.Sign)
}

// Decode verifies and validates token and decodes its payload into
// value.
func (p *Public) Decode(token string, value claims.Carrier) (*claims.Registered, error) {
	return p.decode(token, value, p.publicKey, p.engine.VerifyWithFooter)
}

func (p *Public) secretKey(keyID string) ([]byte, error) {
	if p.signing == nil {
		return nil, fmt.Errorf("%w: service has no signing keys", ErrMissingKeys)
	}
	return p.signing.SecretKey(keyID)
}

func (p *Public) publicKey(keyID string) ([]byte, error) {
	if p.verifying == nil {
		return nil, fmt.Errorf("%w: service has no verifying keys", ErrMissingKeys)
	}
	return p.verifying.PublicKey(keyID)
}
