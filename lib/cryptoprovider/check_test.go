// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cryptoprovider

import (
	"errors"
	"testing"
)

func TestCheckNotNil(t *testing.T) {
	err := CheckNotNil(
		Arg{"out", []byte{}},
		Arg{"in", nil},
		Arg{"key", nil},
	)
	var argumentError *ArgumentError
	if !errors.As(err, &argumentError) {
		t.Fatalf("CheckNotNil = %v, want *ArgumentError", err)
	}
	if argumentError.Arg != "in" {
		t.Errorf("Arg = %q, want in (first nil argument)", argumentError.Arg)
	}
	if !errors.Is(err, ErrNilArgument) {
		t.Error("ArgumentError does not match ErrNilArgument")
	}
	if errors.Is(err, ErrLength) {
		t.Error("ArgumentError matches ErrLength")
	}

	// An empty slice is present, not nil.
	if err := CheckNotNil(Arg{"in", []byte{}}); err != nil {
		t.Errorf("CheckNotNil(empty) = %v, want nil", err)
	}
}

func TestCheckExact(t *testing.T) {
	if err := CheckExact("key", make([]byte, 32), 32); err != nil {
		t.Fatalf("CheckExact(32, 32) = %v", err)
	}
	for _, length := range []int{31, 33} {
		err := CheckExact("key", make([]byte, length), 32)
		var lengthError *LengthError
		if !errors.As(err, &lengthError) {
			t.Fatalf("CheckExact(%d) = %v, want *LengthError", length, err)
		}
		if lengthError.Arg != "key" || lengthError.Len != length || lengthError.Required != 32 || !lengthError.Exact {
			t.Errorf("CheckExact(%d) = %+v", length, *lengthError)
		}
		if !errors.Is(err, ErrLength) {
			t.Error("LengthError does not match ErrLength")
		}
	}
}

func TestCheckMin(t *testing.T) {
	if err := CheckMin("m", []byte{1}, 1); err != nil {
		t.Fatalf("CheckMin(1, 1) = %v", err)
	}
	err := CheckMin("m", []byte{}, 1)
	var lengthError *LengthError
	if !errors.As(err, &lengthError) {
		t.Fatalf("CheckMin(0, 1) = %v, want *LengthError", err)
	}
	if lengthError.Exact {
		t.Error("CheckMin reported an exact requirement")
	}
	if lengthError.Required != 1 || lengthError.Len != 0 {
		t.Errorf("CheckMin = %+v", *lengthError)
	}
}

func TestCheckRange(t *testing.T) {
	tests := []struct {
		length int
		ok     bool
	}{
		{15, false},
		{16, true},
		{40, true},
		{64, true},
		{65, false},
	}
	for _, test := range tests {
		err := CheckRange("out", make([]byte, test.length), 16, 64)
		if test.ok {
			if err != nil {
				t.Errorf("CheckRange(%d) = %v, want nil", test.length, err)
			}
			continue
		}
		var rangeError *RangeError
		if !errors.As(err, &rangeError) {
			t.Fatalf("CheckRange(%d) = %v, want *RangeError", test.length, err)
		}
		if rangeError.Min != 16 || rangeError.Max != 64 || rangeError.Len != test.length {
			t.Errorf("CheckRange(%d) = %+v", test.length, *rangeError)
		}
		if !errors.Is(err, ErrLength) {
			t.Error("RangeError does not match ErrLength")
		}
	}
}

func TestFirst(t *testing.T) {
	first := errors.New("first")
	second := errors.New("second")
	if err := First(nil, first, second); err != first {
		t.Errorf("First = %v, want first", err)
	}
	if err := First(nil, nil); err != nil {
		t.Errorf("First(nil, nil) = %v", err)
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&ArgumentError{Arg: "nonce"}, "cryptoprovider: nonce is nil"},
		{&LengthError{Arg: "nonce", Len: 23, Required: 24, Exact: true}, "cryptoprovider: nonce is 23 bytes, want exactly 24"},
		{&LengthError{Arg: "in", Len: 16, Required: 17}, "cryptoprovider: in is 16 bytes, want at least 17"},
		{&RangeError{Arg: "out", Len: 65, Min: 16, Max: 64}, "cryptoprovider: out is 65 bytes, want between 16 and 64"},
	}
	for _, test := range tests {
		if got := test.err.Error(); got != test.want {
			t.Errorf("Error() = %q, want %q", got, test.want)
		}
	}
}
