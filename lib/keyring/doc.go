// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package keyring is an on-disk key provider.
//
// A keyring is a directory holding a keyring.yaml manifest and one or
// two files per key:
//
//	keys:
//	  - id: v2-local-3f9a0c1d2e4b5a69
//	    version: v2
//	    purpose: local
//	    secret: v2-local-3f9a0c1d2e4b5a69.key
//	    sealed: true
//	  - id: issuer-1
//	    version: v2
//	    purpose: public
//	    secret: issuer-1.key
//	    public: issuer-1.pub
//
// Key files hold base64url text. A sealed secret file instead holds
// age-armored ciphertext of the raw key bytes, opened with the identity
// passed to [Open]. Relative paths resolve against the keyring
// directory.
//
// [Open] loads every secret into a [secret.Buffer]; [Keyring.Close]
// zeroes them. A Keyring implements the keyprovider Symmetric, Signing,
// and Verifying interfaces. Returned key slices are borrowed and valid
// until Close.
//
// [Generate] creates a key, writes its files, and appends it to the
// manifest. Key IDs default to [Fingerprint].
package keyring
