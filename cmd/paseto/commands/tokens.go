// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"os"

	"github.com/tidwall/jsonc"

	"github.com/bureau-foundation/paseto/lib/claims"
	"github.com/bureau-foundation/paseto/lib/cryptoprovider/gocrypto"
	"github.com/bureau-foundation/paseto/lib/encoding"
	"github.com/bureau-foundation/paseto/lib/keyring"
	"github.com/bureau-foundation/paseto/lib/paseto"
	"github.com/bureau-foundation/paseto/lib/tokenservice"
	"github.com/bureau-foundation/paseto/lib/wire"
)

// serviceSettings are the per-command token service inputs. Zero
// values fall back to the tokens section of the configuration.
type serviceSettings struct {
	version  wire.Version
	keyID    string
	encoding string
	validity string
	rules    []claims.Rule
}

// tokenService is the part of the local and public services the
// commands use.
type tokenService interface {
	Encode(value claims.Carrier, footer *claims.Footer) (string, error)
	Decode(token string, value claims.Carrier) (*claims.Registered, error)
}

func (e *environment) newService(purpose wire.Purpose, keys *keyring.Keyring, settings serviceSettings) (tokenService, error) {
	tokens := e.config.Tokens

	encodingName := settings.encoding
	if encodingName == "" {
		encodingName = tokens.Encoding
	}
	provider, err := encoding.ByName(encodingName)
	if err != nil {
		return nil, err
	}

	if settings.validity != "" {
		tokens.Validity = settings.validity
	}
	validity, err := tokens.ValidityDuration()
	if err != nil {
		return nil, err
	}
	skew, err := tokens.ClockSkewDuration()
	if err != nil {
		return nil, err
	}

	logger := e.logger.With("kid", settings.keyID)
	view := keys.ForVersion(settings.version)
	switch purpose {
	case wire.Local:
		engine, err := paseto.NewLocal(paseto.LocalConfig{
			Version: settings.version,
			V1:      gocrypto.NewV1(),
			V2:      gocrypto.NewV2(),
			Logger:  logger,
		})
		if err != nil {
			return nil, err
		}
		return tokenservice.NewLocal(tokenservice.LocalConfig{
			Engine:          engine,
			Keys:            view,
			Encoding:        provider,
			KeyID:           settings.keyID,
			DefaultValidity: validity,
			ClockSkew:       skew,
			Rules:           settings.rules,
			Metrics:         e.metrics,
			Logger:          logger,
		})
	case wire.Public:
		engine, err := paseto.NewPublic(paseto.PublicConfig{
			Version: settings.version,
			V1:      gocrypto.NewV1(),
			V2:      gocrypto.NewV2(),
			Logger:  logger,
		})
		if err != nil {
			return nil, err
		}
		return tokenservice.NewPublic(tokenservice.PublicConfig{
			Engine:          engine,
			SigningKeys:     view,
			VerifyingKeys:   view,
			Encoding:        provider,
			KeyID:           settings.keyID,
			DefaultValidity: validity,
			ClockSkew:       skew,
			Rules:           settings.rules,
			Metrics:         e.metrics,
			Logger:          logger,
		})
	default:
		return nil, fmt.Errorf("%w: %s", wire.ErrUnknownPurpose, purpose)
	}
}

// decodeRules returns the validation rules for decrypt and verify:
// the time checks plus whatever the configuration and flags require.
// Flag values replace the configured issuer and audience.
func (e *environment) decodeRules(issuer, audience, subject string) []claims.Rule {
	rules := claims.DefaultRules()
	if e.config.Tokens.RequireExpiry {
		rules = append(rules, claims.RequireExpiry())
	}
	if issuer == "" {
		issuer = e.config.Tokens.Issuer
	}
	if issuer != "" {
		rules = append(rules, claims.IssuedBy(issuer))
	}
	if audience == "" {
		audience = e.config.Tokens.Audience
	}
	if audience != "" {
		rules = append(rules, claims.ForAudience(audience))
	}
	if subject != "" {
		rules = append(rules, claims.WithSubject(subject))
	}
	return rules
}

// readClaims loads a JSON claims file. Comments and trailing commas
// are allowed. "-" reads stdin; an empty path yields no claims.
func (e *environment) readClaims(path string) (*claims.Generic, error) {
	document := &claims.Generic{}
	if path == "" {
		return document, nil
	}

	var data []byte
	if path == "-" {
		text, err := readArgument(e.streams, []string{"-"}, "claims document")
		if err != nil {
			return nil, err
		}
		data = []byte(text)
	} else {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading claims: %w", err)
		}
	}

	if err := document.UnmarshalJSON(jsonc.ToJSON(data)); err != nil {
		return nil, fmt.Errorf("parsing claims %s: %w", path, err)
	}
	return document, nil
}
