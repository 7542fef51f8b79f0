// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package paseto builds and parses PASETO v1 and v2 tokens.
//
// A [Local] engine encrypts payloads with a symmetric key; a [Public]
// engine signs payloads in cleartext with an asymmetric key. Each
// engine is bound to one version at construction and rejects tokens of
// any other version or purpose. Engines hold only their crypto provider
// and logger, so one engine may be shared by any number of goroutines.
//
// # Constructions
//
// Every construction binds the header ("v2.local." etc.) and the
// footer through PAE (lib/pae), so a token cannot be moved to another
// version or purpose and its footer cannot be stripped or replaced.
//
//	v1.local   n = HMAC-SHA384(b, m)[:32]
//	           Ek, Ak = HKDF-SHA384(k, salt=n[:16])
//	           c = AES-256-CTR(Ek, iv=n[16:], m)
//	           t = HMAC-SHA384(Ak, PAE(h, n, c, f))
//	           payload = n || c || t
//	v2.local   n = BLAKE2b-192(key=b, m)
//	           c = XChaCha20-Poly1305(k, n, m, ad=PAE(h, n, f))
//	           payload = n || c
//	v1.public  payload = m || RSASSA-PSS-SHA384(sk, PAE(h, m, f))
//	v2.public  payload = m || Ed25519(sk, PAE(h, m, f))
//
// b is the random draw from the provider's NonceGenerator. Deriving
// the nonce from b and the message means a repeated draw still yields
// distinct nonces for distinct messages.
//
// # Failure ordering
//
// Decrypt and Verify never return payload bytes unless authentication
// succeeded. v1.local compares the HMAC tag in constant time before
// AES-CTR runs; v2.local relies on the AEAD, which opens nothing on a
// bad tag; public tokens verify the signature before the message is
// handed back. Parse errors ([ErrMalformedToken], [ErrWrongVersion],
// [ErrWrongPurpose], [ErrFooterMismatch]) are reported before any key
// material is used.
//
// Keys are borrowed for the duration of a call and never retained.
// Derived v1 subkeys are zeroed before the call returns.
package paseto
