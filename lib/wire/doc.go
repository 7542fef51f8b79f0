// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package wire serializes and parses the PASETO token string.
//
// # Wire format
//
//	v{1|2}.{local|public}.{base64url(payload)}[.{base64url(footer)}]
//
// The string is ASCII with no surrounding whitespace. Version and
// purpose literals are case-sensitive. Base64url uses the URL-safe
// alphabet without padding (RFC 4648 §5); padded or standard-alphabet
// input is rejected rather than tolerated.
//
// The footer is optional. An absent fourth field, a present but empty
// fourth field, and a nil footer all mean "no footer" and are treated
// identically by every construction, including PAE. Serialize never
// emits an empty fourth field.
//
// Parsing fails closed: any field count other than three or four, any
// unknown version or purpose, and any decoding error reject the whole
// token before key material is touched. The payload's interpretation
// (ciphertext or signed message) belongs to lib/paseto.
package wire
