// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package version reports build information for the paseto CLI.
//
// [GitCommit], [GitDirty], [BuildTime], and [Version] are injected
// with -ldflags -X:
//
//	go build -ldflags "-X github.com/bureau-foundation/paseto/lib/version.GitCommit=$(git rev-parse --short HEAD)"
//
// When they are not injected, as under go install, the values are
// filled from the VCS stamps in the binary's embedded build info.
package version
