// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable source of the current time.
//
// Claim validation compares exp, nbf and iat against "now". Production
// code passes Real(); tests pass Fake() and move time explicitly, so
// expiry behavior is checked without sleeping:
//
//	c := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	service := tokenservice.NewLocal(tokenservice.LocalConfig{Clock: c, ...})
//	token, _ := service.Encode(claims, nil)
//	c.Advance(2 * time.Hour) // past the token's expiry
package clock
