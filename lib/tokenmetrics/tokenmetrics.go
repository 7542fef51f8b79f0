// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tokenmetrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Operations recorded in the failure counter's "operation" label.
const (
	OperationBuild = "build"
	OperationParse = "parse"
)

// Metrics holds the token counters. Create with [New].
type Metrics struct {
	built    *prometheus.CounterVec
	parsed   *prometheus.CounterVec
	failures *prometheus.CounterVec
}

// New creates the counters and registers them with registerer. A nil
// registerer leaves them unregistered, which tests use to read values
// without global state.
func New(registerer prometheus.Registerer) (*Metrics, error) {
	metrics := &Metrics{
		built: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "paseto_tokens_built_total",
			Help: "Tokens successfully encrypted or signed.",
		}, []string{"version", "purpose"}),
		parsed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "paseto_tokens_parsed_total",
			Help: "Tokens successfully decrypted or verified and validated.",
		}, []string{"version", "purpose"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "paseto_token_failures_total",
			Help: "Token operations that failed, by operation and reason.",
		}, []string{"operation", "reason"}),
	}
	if registerer == nil {
		return metrics, nil
	}
	for _, collector := range []prometheus.Collector{metrics.built, metrics.parsed, metrics.failures} {
		if err := registerer.Register(collector); err != nil {
			return nil, fmt.Errorf("tokenmetrics: registering collector: %w", err)
		}
	}
	return metrics, nil
}

// Built records a token produced for version and purpose.
func (m *Metrics) Built(version, purpose string) {
	if m == nil {
		return
	}
	m.built.WithLabelValues(version, purpose).Inc()
}

// Parsed records a token accepted for version and purpose.
func (m *Metrics) Parsed(version, purpose string) {
	if m == nil {
		return
	}
	m.parsed.WithLabelValues(version, purpose).Inc()
}

// Failed records a failed operation. reason is a short, bounded label
// such as "expired" or "authentication"; never a free-form message.
func (m *Metrics) Failed(operation, reason string) {
	if m == nil {
		return
	}
	m.failures.WithLabelValues(operation, reason).Inc()
}
