// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package encoding converts structured claims to and from the opaque
// payload bytes the token engines protect.
//
// [JSON] is the interoperable PASETO payload format. [CBOR] produces
// smaller deterministic payloads via lib/codec for peers that agree on
// it out of band; the token format does not record which encoding a
// payload uses.
package encoding
