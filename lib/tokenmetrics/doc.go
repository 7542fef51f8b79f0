// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package tokenmetrics counts token service outcomes in Prometheus.
//
// A nil *Metrics is valid and records nothing, so services take one
// unconditionally and callers that do not export metrics pass nil.
package tokenmetrics
