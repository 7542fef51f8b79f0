// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cryptoprovider defines the primitive capability sets the
// PASETO protocol engines consume, one per format version.
//
// [V1] covers the classical suite (HMAC-SHA384, HKDF-SHA384,
// AES-256-CTR, RSASSA-PSS). [V2] covers the modern suite (BLAKE2b,
// XChaCha20-Poly1305, Ed25519). The set is closed on purpose: a
// version is a fixed table of primitives and sizes, not a registry.
//
// # Boundary checks
//
// Every provider method validates its arguments before touching a
// primitive. All nil checks run first, in argument order, and fail with
// an [*ArgumentError]. Length checks then run in argument order and
// fail with a [*LengthError] (exact requirement) or [*RangeError]
// (bounded requirement). Both length errors match [ErrLength] under
// errors.Is and carry the argument name, the observed length, and the
// required bound, so a caller can report precisely what was wrong.
//
// The check helpers ([CheckNotNil], [CheckExact], [CheckMin],
// [CheckRange]) are exported so that every implementation reports
// violations identically.
//
// Implementations live in sub-packages; lib/cryptoprovider/gocrypto
// builds both versions on the Go crypto packages and
// golang.org/x/crypto.
package cryptoprovider
