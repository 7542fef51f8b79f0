// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package keyprovider defines how token services obtain key bytes.
//
// A provider is asked once per operation for one key, identified by a
// key ID that is usually carried in the token footer. The empty key ID
// means the caller uses a single unnamed key. Returned slices are
// borrowed: callers must not modify them or keep them past the
// operation, and providers may hand out views of locked memory.
//
// [Static] is an in-memory provider for tests and for programs that
// load their keys at startup. lib/keyring provides an on-disk provider.
package keyprovider
