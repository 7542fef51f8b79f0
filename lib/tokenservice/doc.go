// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package tokenservice turns claims into tokens and back.
//
// A [Local] or [Public] service wraps one protocol engine with the
// pieces an application needs around it: a key provider, a payload
// encoding, a clock and validity window, claim rules, metrics, and a
// logger. Services are assembled from a config struct and are safe for
// concurrent use.
//
// Encode fills in iat (and exp, when a default validity is configured)
// on the value's registered claims, encodes it, and builds the token.
// If a key ID is in play it travels in the footer as {"kid": ...}.
//
// Decode reads the unverified footer only to choose a key. The footer
// is then bound into authentication, the registered claims are
// validated against the configured rules, and only an accepted payload
// is decoded into the caller's value.
package tokenservice
