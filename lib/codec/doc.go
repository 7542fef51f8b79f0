// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the deterministic CBOR configuration used for
// compact token payloads.
//
// JSON is the interoperable PASETO payload format. CBOR is offered as
// an alternative for tokens exchanged between programs that both use
// this module, where a smaller payload matters more than readability.
// The encoder uses Core Deterministic Encoding (RFC 8949 §4.2): sorted
// map keys, smallest integer encoding, no indefinite-length items.
// The same claims always produce identical payload bytes, so signed
// CBOR tokens are reproducible.
//
//	data, err := codec.Marshal(claims)
//	err = codec.Unmarshal(data, &claims)
//
// Times encode as integer Unix seconds (RFC 8949 §3.4.2 numeric
// dates, untagged). Sub-second precision is dropped.
//
// # Struct Tag Rules
//
// Claim types carry `json` tags only. fxamacker/cbor v2 reads `json`
// tags as a fallback when `cbor` tags are absent, so one tag controls
// field naming and omitempty for both payload encodings. Never put both
// tags on one field.
package codec
