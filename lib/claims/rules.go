// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package claims

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrClaimsInvalid is matched by every [*ValidationError].
	ErrClaimsInvalid = errors.New("claims: validation failed")

	ErrExpired        = errors.New("claims: token expired")
	ErrNotYetValid    = errors.New("claims: token not yet valid")
	ErrIssuedInFuture = errors.New("claims: token issued in the future")
	ErrMissingClaim   = errors.New("claims: required claim missing")
	ErrClaimMismatch  = errors.New("claims: claim does not match")

	// ErrInvalidFooter is returned by ParseFooter.
	ErrInvalidFooter = errors.New("claims: footer is not a JSON object")
)

// ValidationError reports the first rule a token failed.
type ValidationError struct {
	Rule   string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("claims: %s: %s", e.Rule, e.Reason)
}

// Unwrap exposes ErrClaimsInvalid and the specific sentinel.
func (e *ValidationError) Unwrap() []error {
	return []error{ErrClaimsInvalid, e.Err}
}

// Rule checks one property of authenticated claims. skew is the
// tolerated clock difference between issuer and verifier.
type Rule func(claims *Registered, now time.Time, skew time.Duration) error

// Validate applies rules in order and returns the first failure.
func Validate(claims *Registered, now time.Time, skew time.Duration, rules ...Rule) error {
	for _, rule := range rules {
		if err := rule(claims, now, skew); err != nil {
			return err
		}
	}
	return nil
}

// DefaultRules are the time checks every token service applies.
func DefaultRules() []Rule {
	return []Rule{NotExpired(), ValidNotBefore(), IssuedInPast()}
}

// NotExpired rejects tokens whose exp is before now-skew. Tokens
// without exp pass; combine with [RequireExpiry] to forbid them.
func NotExpired() Rule {
	return func(claims *Registered, now time.Time, skew time.Duration) error {
		if claims.ExpiresAt != nil && now.Add(-skew).After(*claims.ExpiresAt) {
			return &ValidationError{
				Rule:   "exp",
				Reason: fmt.Sprintf("expired at %s", claims.ExpiresAt.UTC().Format(time.RFC3339)),
				Err:    ErrExpired,
			}
		}
		return nil
	}
}

// ValidNotBefore rejects tokens used before nbf+skew.
func ValidNotBefore() Rule {
	return func(claims *Registered, now time.Time, skew time.Duration) error {
		if claims.NotBefore != nil && now.Add(skew).Before(*claims.NotBefore) {
			return &ValidationError{
				Rule:   "nbf",
				Reason: fmt.Sprintf("not valid before %s", claims.NotBefore.UTC().Format(time.RFC3339)),
				Err:    ErrNotYetValid,
			}
		}
		return nil
	}
}

// IssuedInPast rejects tokens whose iat is after now+skew.
func IssuedInPast() Rule {
	return func(claims *Registered, now time.Time, skew time.Duration) error {
		if claims.IssuedAt != nil && now.Add(skew).Before(*claims.IssuedAt) {
			return &ValidationError{
				Rule:   "iat",
				Reason: fmt.Sprintf("issued at %s, in the future", claims.IssuedAt.UTC().Format(time.RFC3339)),
				Err:    ErrIssuedInFuture,
			}
		}
		return nil
	}
}

// RequireExpiry rejects tokens without exp.
func RequireExpiry() Rule {
	return func(claims *Registered, _ time.Time, _ time.Duration) error {
		if claims.ExpiresAt == nil {
			return &ValidationError{Rule: "exp", Reason: "missing", Err: ErrMissingClaim}
		}
		return nil
	}
}

// IssuedBy requires iss to equal issuer.
func IssuedBy(issuer string) Rule {
	return matchString("iss", issuer, func(claims *Registered) string { return claims.Issuer })
}

// ForAudience requires aud to equal audience.
func ForAudience(audience string) Rule {
	return matchString("aud", audience, func(claims *Registered) string { return claims.Audience })
}

// WithSubject requires sub to equal subject.
func WithSubject(subject string) Rule {
	return matchString("sub", subject, func(claims *Registered) string { return claims.Subject })
}

// IdentifiedBy requires jti to equal tokenID.
func IdentifiedBy(tokenID string) Rule {
	return matchString("jti", tokenID, func(claims *Registered) string { return claims.TokenID })
}

func matchString(name, want string, field func(*Registered) string) Rule {
	return func(claims *Registered, _ time.Time, _ time.Duration) error {
		got := field(claims)
		if got == "" {
			return &ValidationError{Rule: name, Reason: "missing", Err: ErrMissingClaim}
		}
		if got != want {
			return &ValidationError{Rule: name, Reason: fmt.Sprintf("got %q, want %q", got, want), Err: ErrClaimMismatch}
		}
		return nil
	}
}
