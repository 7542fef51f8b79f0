// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package paseto

import (
	"fmt"
	"log/slog"

	"github.com/bureau-foundation/paseto/lib/cryptoprovider"
	"github.com/bureau-foundation/paseto/lib/pae"
	"github.com/bureau-foundation/paseto/lib/wire"
)

// PublicConfig configures a [Public] engine. Only the provider for
// Version is required.
type PublicConfig struct {
	Version wire.Version
	V1      cryptoprovider.V1
	V2      cryptoprovider.V2

	// Logger receives debug events for rejected tokens. Nil discards.
	Logger *slog.Logger
}

// Public signs and verifies public (asymmetric) tokens for one
// version. v1 keys are DER-encoded 2048-bit RSA keys; v2 keys are
// 64-byte Ed25519 secret keys and 32-byte public keys.
type Public struct {
	engine
}

// NewPublic returns a public-token engine for config.Version.
func NewPublic(config PublicConfig) (*Public, error) {
	base, err := newEngine(config.Version, wire.Public, config.V1, config.V2, config.Logger)
	if err != nil {
		return nil, err
	}
	return &Public{engine: base}, nil
}

func (p *Public) signatureSize() int {
	if p.version == wire.V1 {
		return cryptoprovider.V1RsaSignatureSize
	}
	return cryptoprovider.V2Ed25519SignatureSize
}

// Sign signs payload and footer with secretKey. The payload travels in
// cleartext.
func (p *Public) Sign(secretKey, payload, footer []byte) (string, error) {
	if err := cryptoprovider.First(checkKey(secretKey), checkPayload(payload)); err != nil {
		return "", err
	}

	message := pae.Encode(p.header(), payload, footer)
	signature := make([]byte, p.signatureSize())
	var err error
	if p.version == wire.V1 {
		err = p.v1.RsaSign(signature, message, secretKey)
	} else {
		err = p.v2.Ed25519Sign(signature, message, secretKey)
	}
	if err != nil {
		return "", err
	}

	signed := make([]byte, 0, len(payload)+len(signature))
	signed = append(signed, payload...)
	signed = append(signed, signature...)
	return wire.Serialize(wire.Token{
		Version: p.version,
		Purpose: wire.Public,
		Payload: signed,
		Footer:  footer,
	}), nil
}

// Verify checks the token's signature with publicKey and returns the
// signed payload and footer.
func (p *Public) Verify(publicKey []byte, token string) (*Result, error) {
	if err := checkKey(publicKey); err != nil {
		return nil, err
	}
	parsed, err := p.parse(token)
	if err != nil {
		return nil, err
	}
	return p.verify(publicKey, parsed)
}

// VerifyWithFooter is Verify, but first requires the token's footer
// to equal footer (compared in constant time).
func (p *Public) VerifyWithFooter(publicKey []byte, token string, footer []byte) ([]byte, error) {
	if err := checkKey(publicKey); err != nil {
		return nil, err
	}
	parsed, err := p.parseWithFooter(token, footer)
	if err != nil {
		return nil, err
	}
	result, err := p.verify(publicKey, parsed)
	if err != nil {
		return nil, err
	}
	return result.Payload, nil
}

func (p *Public) verify(publicKey []byte, token wire.Token) (*Result, error) {
	size := p.signatureSize()
	if len(token.Payload) < size {
		return nil, fmt.Errorf("%w: %s.%s payload is %d bytes, shorter than the %d-byte signature",
			ErrMalformedToken, p.version, p.purpose, len(token.Payload), size)
	}
	split := len(token.Payload) - size
	payload := token.Payload[:split]
	signature := token.Payload[split:]

	message := pae.Encode(p.header(), payload, token.Footer)
	var valid bool
	var err error
	if p.version == wire.V1 {
		valid, err = p.v1.RsaVerify(signature, message, publicKey)
	} else {
		valid, err = p.v2.Ed25519Verify(signature, message, publicKey)
	}
	if err != nil {
		return nil, err
	}
	if !valid {
		p.logger.Debug("public token rejected", "reason", "signature")
		return nil, ErrVerificationFailed
	}
	return &Result{Payload: payload, Footer: token.Footer}, nil
}
