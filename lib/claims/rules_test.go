// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package claims

import (
	"errors"
	"testing"
	"time"
)

var now = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func at(offset time.Duration) *time.Time {
	moment := now.Add(offset)
	return &moment
}

func TestTimeRules(t *testing.T) {
	tests := []struct {
		name    string
		claims  Registered
		skew    time.Duration
		wantErr error
	}{
		{name: "no times", claims: Registered{}},
		{name: "valid window", claims: Registered{IssuedAt: at(-time.Minute), NotBefore: at(-time.Minute), ExpiresAt: at(time.Hour)}},
		{name: "expired", claims: Registered{ExpiresAt: at(-time.Second)}, wantErr: ErrExpired},
		{name: "expired within skew", claims: Registered{ExpiresAt: at(-time.Second)}, skew: time.Minute},
		{name: "expiring exactly now", claims: Registered{ExpiresAt: at(0)}},
		{name: "not yet valid", claims: Registered{NotBefore: at(time.Hour)}, wantErr: ErrNotYetValid},
		{name: "not yet valid within skew", claims: Registered{NotBefore: at(30 * time.Second)}, skew: time.Minute},
		{name: "issued in future", claims: Registered{IssuedAt: at(time.Hour)}, wantErr: ErrIssuedInFuture},
		{name: "issued in future within skew", claims: Registered{IssuedAt: at(10 * time.Second)}, skew: time.Minute},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := Validate(&test.claims, now, test.skew, DefaultRules()...)
			if test.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, test.wantErr) {
				t.Fatalf("Validate = %v, want %v", err, test.wantErr)
			}
			if !errors.Is(err, ErrClaimsInvalid) {
				t.Error("error does not match ErrClaimsInvalid")
			}
		})
	}
}

func TestRequireExpiry(t *testing.T) {
	if err := Validate(&Registered{}, now, 0, RequireExpiry()); !errors.Is(err, ErrMissingClaim) {
		t.Errorf("Validate = %v, want ErrMissingClaim", err)
	}
	if err := Validate(&Registered{ExpiresAt: at(time.Hour)}, now, 0, RequireExpiry()); err != nil {
		t.Errorf("Validate = %v, want nil", err)
	}
}

func TestMatchRules(t *testing.T) {
	claims := Registered{Issuer: "auth", Audience: "billing", Subject: "alice", TokenID: "t-1"}
	tests := []struct {
		name    string
		rule    Rule
		wantErr error
	}{
		{"issuer", IssuedBy("auth"), nil},
		{"issuer mismatch", IssuedBy("other"), ErrClaimMismatch},
		{"audience", ForAudience("billing"), nil},
		{"audience mismatch", ForAudience("search"), ErrClaimMismatch},
		{"subject", WithSubject("alice"), nil},
		{"subject mismatch", WithSubject("bob"), ErrClaimMismatch},
		{"token id", IdentifiedBy("t-1"), nil},
		{"token id mismatch", IdentifiedBy("t-2"), ErrClaimMismatch},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := Validate(&claims, now, 0, test.rule)
			if test.wantErr == nil && err != nil {
				t.Fatalf("Validate = %v, want nil", err)
			}
			if test.wantErr != nil && !errors.Is(err, test.wantErr) {
				t.Fatalf("Validate = %v, want %v", err, test.wantErr)
			}
		})
	}

	if err := Validate(&Registered{}, now, 0, IssuedBy("auth")); !errors.Is(err, ErrMissingClaim) {
		t.Errorf("missing iss: Validate = %v, want ErrMissingClaim", err)
	}
}

func TestValidateStopsAtFirstFailure(t *testing.T) {
	claims := Registered{ExpiresAt: at(-time.Hour), Issuer: "other"}
	err := Validate(&claims, now, 0, IssuedBy("auth"), NotExpired())

	var validationError *ValidationError
	if !errors.As(err, &validationError) {
		t.Fatalf("Validate = %v, want *ValidationError", err)
	}
	if validationError.Rule != "iss" {
		t.Errorf("Rule = %q, want iss", validationError.Rule)
	}
}
