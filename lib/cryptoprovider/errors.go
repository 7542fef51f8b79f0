// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cryptoprovider

import (
	"errors"
	"fmt"
)

var (
	// ErrNilArgument is matched by every [*ArgumentError].
	ErrNilArgument = errors.New("cryptoprovider: nil argument")

	// ErrLength is matched by every [*LengthError] and [*RangeError].
	ErrLength = errors.New("cryptoprovider: invalid length")

	// ErrAuthentication is returned by AEAD decryption when the tag
	// does not verify.
	ErrAuthentication = errors.New("cryptoprovider: message authentication failed")

	// ErrInvalidKey is returned when key bytes have a valid length but
	// do not decode to a usable key.
	ErrInvalidKey = errors.New("cryptoprovider: invalid key")
)

// ArgumentError reports a required byte string that was nil.
type ArgumentError struct {
	Arg string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("cryptoprovider: %s is nil", e.Arg)
}

// Is matches ErrNilArgument.
func (e *ArgumentError) Is(target error) bool {
	return target == ErrNilArgument
}

// LengthError reports a byte string whose length violates a
// requirement. Exact distinguishes "must be Required bytes" from "must
// be at least Required bytes".
type LengthError struct {
	Arg      string
	Len      int
	Required int
	Exact    bool
}

func (e *LengthError) Error() string {
	if e.Exact {
		return fmt.Sprintf("cryptoprovider: %s is %d bytes, want exactly %d", e.Arg, e.Len, e.Required)
	}
	return fmt.Sprintf("cryptoprovider: %s is %d bytes, want at least %d", e.Arg, e.Len, e.Required)
}

// Is matches ErrLength.
func (e *LengthError) Is(target error) bool {
	return target == ErrLength
}

// RangeError reports a byte string whose length is outside [Min, Max].
type RangeError struct {
	Arg string
	Len int
	Min int
	Max int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("cryptoprovider: %s is %d bytes, want between %d and %d", e.Arg, e.Len, e.Min, e.Max)
}

// Is matches ErrLength.
func (e *RangeError) Is(target error) bool {
	return target == ErrLength
}
