// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package claims defines the registered PASETO claims and the rules
// that validate them after a token has been authenticated.
//
// Application claim types embed [Registered]:
//
//	type Session struct {
//	    claims.Registered
//	    Roles []string `json:"roles"`
//	}
//
// The embedded struct promotes RegisteredClaims, so *Session satisfies
// [Carrier] and token services can fill in and check iat/exp without
// knowing the application type. [Generic] carries registered claims
// plus arbitrary extra claims for tools that do not know the schema.
//
// Times are ISO 8601 (RFC 3339) strings in JSON payloads, as PASETO
// prescribes, and Unix seconds in CBOR payloads.
//
// Validation runs only on authenticated payloads. A failed rule returns
// a [*ValidationError] naming the rule; every such error matches
// [ErrClaimsInvalid] and one of the more specific sentinels.
package claims
