// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers.
//
// [RequireReceive] encapsulates the timeout safety valve pattern
// (select with a time.After fallback) so concurrency tests do not
// hang when a goroutine never reports. [WriteFile] writes fixture
// files such as configs, claims documents, and identities into a
// test's temporary directory.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
package testutil
