// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package gocrypto

import (
	"crypto/rand"
	"fmt"

	"github.com/bureau-foundation/paseto/lib/cryptoprovider"
)

func randomBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("gocrypto: negative random byte count %d", n)
	}
	output := make([]byte, n)
	if _, err := rand.Read(output); err != nil {
		return nil, fmt.Errorf("gocrypto: reading random bytes: %w", err)
	}
	return output, nil
}

// randomNonceGenerator draws nonces of a fixed size from crypto/rand.
type randomNonceGenerator struct {
	size int
}

var _ cryptoprovider.NonceGenerator = randomNonceGenerator{}

func (g randomNonceGenerator) GenerateNonce() ([]byte, error) {
	return randomBytes(g.size)
}
