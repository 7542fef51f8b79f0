// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cryptotest provides deterministic crypto providers for tests
// that check local-token construction against reference vectors.
//
// The wrappers replace only the NonceGenerator of an underlying
// provider; every primitive still runs for real. A fixed nonce makes
// local tokens reproducible and, for the same key and message, reuses
// the nonce. Nothing outside _test.go files should import this package.
package cryptotest

import (
	"bytes"

	"github.com/bureau-foundation/paseto/lib/cryptoprovider"
)

// FixedNonce returns a copy of itself on every call.
type FixedNonce []byte

var _ cryptoprovider.NonceGenerator = FixedNonce(nil)

// GenerateNonce returns the fixed nonce.
func (n FixedNonce) GenerateNonce() ([]byte, error) {
	return bytes.Clone(n), nil
}

// V1 is a v1 provider whose nonce draws are fixed.
type V1 struct {
	cryptoprovider.V1
	Nonce FixedNonce
}

// NonceGenerator returns the fixed nonce.
func (p V1) NonceGenerator() cryptoprovider.NonceGenerator {
	return p.Nonce
}

// V2 is a v2 provider whose nonce draws are fixed.
type V2 struct {
	cryptoprovider.V2
	Nonce FixedNonce
}

// NonceGenerator returns the fixed nonce.
func (p V2) NonceGenerator() cryptoprovider.NonceGenerator {
	return p.Nonce
}
