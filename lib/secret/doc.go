// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package secret holds key material outside the Go heap.
//
// A [Buffer] is an anonymous mmap region that is locked into RAM
// (mlock), excluded from core dumps (MADV_DONTDUMP), and zeroed and
// unmapped on Close. The garbage collector never sees the region, so
// it cannot leave copies of a key behind when it moves objects.
//
// Constructors:
//
//   - [New] allocates a zero-filled buffer
//   - [NewFromBytes] moves bytes into a buffer and zeroes the source
//   - [DecodeBase64] decodes base64url key text straight into a buffer
//   - [ReadKeyFile] and [ReadFromPath] load secrets from disk or stdin
//
// After Close every accessor panics. Close is idempotent.
package secret
