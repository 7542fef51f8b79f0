// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package gocrypto

import (
	"encoding/hex"
	"errors"
	"testing"

	"github.com/bureau-foundation/paseto/lib/cryptoprovider"
)

// boundaryCase is one argument-validation expectation. Exactly one of
// the want* shapes applies: nil argument (wantNil), exact or minimum
// length (wantRequired with wantExact), or range (wantMin/wantMax).
type boundaryCase struct {
	name         string
	call         func() error
	wantArg      string
	wantNil      bool
	wantLen      int
	wantRequired int
	wantExact    bool
	wantRange    bool
	wantMin      int
	wantMax      int
}

func runBoundaryCases(t *testing.T, cases []boundaryCase) {
	t.Helper()
	for _, test := range cases {
		t.Run(test.name, func(t *testing.T) {
			err := test.call()
			if err == nil {
				t.Fatal("expected an error")
			}

			if test.wantNil {
				var argumentError *cryptoprovider.ArgumentError
				if !errors.As(err, &argumentError) {
					t.Fatalf("error = %v, want *ArgumentError", err)
				}
				if argumentError.Arg != test.wantArg {
					t.Errorf("Arg = %q, want %q", argumentError.Arg, test.wantArg)
				}
				if !errors.Is(err, cryptoprovider.ErrNilArgument) {
					t.Error("error does not match ErrNilArgument")
				}
				return
			}

			if !errors.Is(err, cryptoprovider.ErrLength) {
				t.Fatalf("error = %v, want ErrLength", err)
			}
			if test.wantRange {
				var rangeError *cryptoprovider.RangeError
				if !errors.As(err, &rangeError) {
					t.Fatalf("error = %v, want *RangeError", err)
				}
				want := cryptoprovider.RangeError{Arg: test.wantArg, Len: test.wantLen, Min: test.wantMin, Max: test.wantMax}
				if *rangeError != want {
					t.Errorf("error = %+v, want %+v", *rangeError, want)
				}
				return
			}

			var lengthError *cryptoprovider.LengthError
			if !errors.As(err, &lengthError) {
				t.Fatalf("error = %v, want *LengthError", err)
			}
			want := cryptoprovider.LengthError{Arg: test.wantArg, Len: test.wantLen, Required: test.wantRequired, Exact: test.wantExact}
			if *lengthError != want {
				t.Errorf("error = %+v, want %+v", *lengthError, want)
			}
		})
	}
}

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	decoded, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("decoding hex %q: %v", s, err)
	}
	return decoded
}
