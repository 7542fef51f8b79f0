// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package gocrypto implements the cryptoprovider capability sets on
// the Go standard crypto packages and golang.org/x/crypto.
//
// [NewV1] binds crypto/aes (CTR mode), crypto/hmac with SHA-384,
// x/crypto/hkdf, and crypto/rsa (RSASSA-PSS). [NewV2] binds
// x/crypto/blake2b, x/crypto/chacha20poly1305 (the XChaCha20 variant),
// and crypto/ed25519. Randomness comes from crypto/rand, which is
// safe for concurrent use; providers hold no other state.
//
// Argument checks follow the rules documented in lib/cryptoprovider.
// Plaintexts may be empty; additional data, signed messages and keys
// may not.
package gocrypto
