// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tokenservice

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bureau-foundation/paseto/lib/claims"
	"github.com/bureau-foundation/paseto/lib/clock"
	"github.com/bureau-foundation/paseto/lib/cryptoprovider"
	"github.com/bureau-foundation/paseto/lib/encoding"
	"github.com/bureau-foundation/paseto/lib/keyprovider"
	"github.com/bureau-foundation/paseto/lib/paseto"
	"github.com/bureau-foundation/paseto/lib/tokenmetrics"
	"github.com/bureau-foundation/paseto/lib/wire"
)

var (
	// ErrMissingEngine means the config has no protocol engine.
	ErrMissingEngine = errors.New("tokenservice: no engine configured")

	// ErrMissingKeys means the config has no key provider for the
	// requested operation.
	ErrMissingKeys = errors.New("tokenservice: no key provider configured")

	// ErrPayload wraps payload encoding and decoding failures.
	ErrPayload = errors.New("tokenservice: payload encoding failed")
)

// options are the settings Local and Public share.
type options struct {
	Encoding        encoding.Provider
	KeyID           string
	DefaultValidity time.Duration
	ClockSkew       time.Duration
	Clock           clock.Clock
	Rules           []claims.Rule
	Metrics         *tokenmetrics.Metrics
	Logger          *slog.Logger
}

// buildFunc and openFunc adapt the engine of one purpose.
type (
	buildFunc func(key, payload, footer []byte) (string, error)
	openFunc  func(key []byte, token string, footer []byte) ([]byte, error)
	keyFunc   func(keyID string) ([]byte, error)
)

// service is the purpose-independent pipeline.
type service struct {
	version  wire.Version
	purpose  wire.Purpose
	encoding encoding.Provider
	keyID    string
	validity time.Duration
	skew     time.Duration
	clock    clock.Clock
	rules    []claims.Rule
	metrics  *tokenmetrics.Metrics
	logger   *slog.Logger
}

func newService(version wire.Version, purpose wire.Purpose, opts options) service {
	if opts.Encoding == nil {
		opts.Encoding = encoding.JSON()
	}
	if opts.Clock == nil {
		opts.Clock = clock.Real()
	}
	if opts.Rules == nil {
		opts.Rules = claims.DefaultRules()
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	return service{
		version:  version,
		purpose:  purpose,
		encoding: opts.Encoding,
		keyID:    opts.KeyID,
		validity: opts.DefaultValidity,
		skew:     opts.ClockSkew,
		clock:    opts.Clock,
		rules:    opts.Rules,
		metrics:  opts.Metrics,
		logger: opts.Logger.With(
			"version", version.String(),
			"purpose", purpose.String(),
			"encoding", opts.Encoding.Name(),
		),
	}
}

func (s *service) encode(value claims.Carrier, footer *claims.Footer, keys keyFunc, build buildFunc) (string, error) {
	token, err := s.encodeToken(value, footer, keys, build)
	if err != nil {
		reason := failureReason(err)
		s.metrics.Failed(tokenmetrics.OperationBuild, reason)
		s.logger.Debug("token build failed", "reason", reason, "error", err)
		return "", err
	}
	s.metrics.Built(s.version.String(), s.purpose.String())
	return token, nil
}

func (s *service) encodeToken(value claims.Carrier, footer *claims.Footer, keys keyFunc, build buildFunc) (token string, err error) {
	registered := value.RegisteredClaims()
	// The filled-in times only stick when a token is produced.
	issuedAt, expiresAt := registered.IssuedAt, registered.ExpiresAt
	defer func() {
		if err != nil {
			registered.IssuedAt, registered.ExpiresAt = issuedAt, expiresAt
		}
	}()
	now := s.clock.Now().UTC().Truncate(time.Second)
	if registered.IssuedAt == nil {
		registered.IssuedAt = &now
	}
	if registered.ExpiresAt == nil && s.validity > 0 {
		expires := registered.IssuedAt.Add(s.validity)
		registered.ExpiresAt = &expires
	}

	keyID := s.keyID
	if footer != nil && footer.KeyID != "" {
		keyID = footer.KeyID
	}
	footerBytes, err := (&claims.Footer{KeyID: keyID}).Encode()
	if err != nil {
		return "", err
	}

	payload, err := s.encoding.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrPayload, err)
	}
	key, err := keys(keyID)
	if err != nil {
		return "", err
	}
	return build(key, payload, footerBytes)
}

func (s *service) decode(token string, value claims.Carrier, keys keyFunc, open openFunc) (*claims.Registered, error) {
	registered, err := s.decodeToken(token, value, keys, open)
	if err != nil {
		reason := failureReason(err)
		s.metrics.Failed(tokenmetrics.OperationParse, reason)
		s.logger.Debug("token rejected", "reason", reason, "error", err)
		return nil, err
	}
	s.metrics.Parsed(s.version.String(), s.purpose.String())
	return registered, nil
}

func (s *service) decodeToken(token string, value claims.Carrier, keys keyFunc, open openFunc) (*claims.Registered, error) {
	footerBytes, err := wire.ExtractFooter(token)
	if err != nil {
		return nil, err
	}
	keyID := s.keyID
	// A footer that is not a kid object is still authenticated below;
	// it just does not name a key.
	if footer, err := claims.ParseFooter(footerBytes); err == nil && footer.KeyID != "" {
		keyID = footer.KeyID
	}

	key, err := keys(keyID)
	if err != nil {
		return nil, err
	}
	payload, err := open(key, token, footerBytes)
	if err != nil {
		return nil, err
	}

	var registered claims.Registered
	if err := s.encoding.Unmarshal(payload, &registered); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPayload, err)
	}
	if err := claims.Validate(&registered, s.clock.Now(), s.skew, s.rules...); err != nil {
		return nil, err
	}
	if value != nil {
		if err := s.encoding.Unmarshal(payload, value); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrPayload, err)
		}
	}
	return &registered, nil
}

// failureReason maps an error to a bounded metrics label.
func failureReason(err error) string {
	switch {
	case errors.Is(err, keyprovider.ErrKeyNotFound), errors.Is(err, ErrMissingKeys):
		return "key"
	case errors.Is(err, paseto.ErrAuthenticationFailed):
		return "authentication"
	case errors.Is(err, paseto.ErrVerificationFailed):
		return "signature"
	case errors.Is(err, paseto.ErrWrongVersion), errors.Is(err, paseto.ErrWrongPurpose),
		errors.Is(err, wire.ErrUnknownVersion), errors.Is(err, wire.ErrUnknownPurpose):
		return "header"
	case errors.Is(err, wire.ErrMalformedToken):
		return "malformed"
	case errors.Is(err, paseto.ErrFooterMismatch):
		return "footer"
	case errors.Is(err, claims.ErrExpired):
		return "expired"
	case errors.Is(err, claims.ErrNotYetValid):
		return "not_yet_valid"
	case errors.Is(err, claims.ErrIssuedInFuture):
		return "issued_in_future"
	case errors.Is(err, claims.ErrClaimsInvalid):
		return "claims"
	case errors.Is(err, ErrPayload):
		return "payload"
	case errors.Is(err, cryptoprovider.ErrNilArgument), errors.Is(err, cryptoprovider.ErrLength),
		errors.Is(err, cryptoprovider.ErrInvalidKey):
		return "argument"
	default:
		return "other"
	}
}
