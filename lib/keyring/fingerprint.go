// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package keyring

import (
	"encoding/hex"

	"github.com/zeebo/blake3"

	"github.com/bureau-foundation/paseto/lib/wire"
)

// fingerprintKey is the BLAKE3 key for key-ID derivation: the ASCII
// domain name zero-padded to 32 bytes.
var fingerprintKey = [32]byte{
	'p', 'a', 's', 'e', 't', 'o', '.', 'k', 'e', 'y', 'r', 'i', 'n', 'g', '.', 'k',
	'i', 'd', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// Fingerprint derives a key ID from key material: the public key for
// public keys, the symmetric key for local keys. The header is hashed
// in, so the same bytes used for two purposes get different IDs. The
// output reveals nothing usable about a symmetric key.
func Fingerprint(version wire.Version, purpose wire.Purpose, material []byte) string {
	hasher, err := blake3.NewKeyed(fingerprintKey[:])
	if err != nil {
		panic("keyring: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write([]byte(wire.Header(version, purpose)))
	hasher.Write(material)
	sum := hasher.Sum(nil)
	return version.String() + "-" + purpose.String() + "-" + hex.EncodeToString(sum[:8])
}
