// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package paseto

import (
	"errors"

	"github.com/bureau-foundation/paseto/lib/wire"
)

var (
	// ErrMalformedToken is the wire codec's malformed-token error. It
	// also covers payloads too short for the version's layout.
	ErrMalformedToken = wire.ErrMalformedToken

	// ErrWrongVersion means the token's version differs from the
	// engine's.
	ErrWrongVersion = errors.New("paseto: token version does not match engine")

	// ErrWrongPurpose means a public token was given to a Local
	// engine or the reverse.
	ErrWrongPurpose = errors.New("paseto: token purpose does not match engine")

	// ErrFooterMismatch means the token's footer differs from the
	// footer the caller expected.
	ErrFooterMismatch = errors.New("paseto: token footer does not match")

	// ErrAuthenticationFailed means a local token did not
	// authenticate under the key. No plaintext is returned.
	ErrAuthenticationFailed = errors.New("paseto: token authentication failed")

	// ErrVerificationFailed means a public token's signature did not
	// verify. The unauthenticated message is not returned.
	ErrVerificationFailed = errors.New("paseto: token signature verification failed")

	// ErrMissingProvider means the engine configuration has no crypto
	// provider for the selected version.
	ErrMissingProvider = errors.New("paseto: no crypto provider for version")
)
