// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package sealed encrypts secret key files with age so a keyring can
// live on disk without exposing its keys.
//
// [Seal] encrypts to one or more age x25519 recipients (age1...) and
// returns ASCII-armored ciphertext suitable for a key file. [Open]
// decrypts with an identity held in a [secret.Buffer] and returns the
// plaintext in another buffer. [IsSealed] tells a sealed file from a
// plain one by its armor header.
//
// Identities may be given as a bare AGE-SECRET-KEY-1... string or as
// the contents of an age-keygen identity file, comments included.
package sealed
