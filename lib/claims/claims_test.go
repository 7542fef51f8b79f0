// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package claims

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/bureau-foundation/paseto/lib/codec"
)

type session struct {
	Registered
	Roles []string `json:"roles,omitempty"`
}

func TestEmbeddedRegisteredIsCarrier(t *testing.T) {
	value := &session{Registered: Registered{Subject: "alice"}}
	var carrier Carrier = value
	carrier.RegisteredClaims().Issuer = "auth"
	if value.Issuer != "auth" {
		t.Error("RegisteredClaims does not alias the embedded claims")
	}
}

func TestRegisteredJSONNames(t *testing.T) {
	expires := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	data, err := json.Marshal(session{
		Registered: Registered{Issuer: "auth", Subject: "alice", ExpiresAt: &expires},
		Roles:      []string{"admin"},
	})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"iss":"auth","sub":"alice","exp":"2030-01-01T00:00:00Z","roles":["admin"]}`
	if string(data) != want {
		t.Errorf("JSON = %s, want %s", data, want)
	}
}

func TestGenericJSON(t *testing.T) {
	input := `{"sub":"alice","exp":"2030-01-01T00:00:00Z","scope":"read","n":3}`
	var document Generic
	if err := json.Unmarshal([]byte(input), &document); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if document.Subject != "alice" || document.ExpiresAt == nil {
		t.Errorf("Registered = %+v", document.Registered)
	}
	if document.Custom["scope"] != "read" || document.Custom["n"] != float64(3) {
		t.Errorf("Custom = %v", document.Custom)
	}
	if _, ok := document.Custom["sub"]; ok {
		t.Error("registered claim leaked into Custom")
	}

	output, err := json.Marshal(document)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var roundTrip map[string]any
	if err := json.Unmarshal(output, &roundTrip); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if roundTrip["sub"] != "alice" || roundTrip["scope"] != "read" || roundTrip["exp"] != "2030-01-01T00:00:00Z" {
		t.Errorf("round trip = %v", roundTrip)
	}
}

func TestGenericRegisteredWins(t *testing.T) {
	document := Generic{
		Registered: Registered{Subject: "alice"},
		Custom:     map[string]any{"sub": "mallory", "iss": "spoofed"},
	}
	output, err := json.Marshal(document)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(output) != `{"sub":"alice"}` {
		t.Errorf("JSON = %s", output)
	}
}

func TestGenericCBOR(t *testing.T) {
	issued := time.Date(2029, 3, 4, 5, 6, 7, 0, time.UTC)
	document := Generic{
		Registered: Registered{Subject: "alice", IssuedAt: &issued},
		Custom:     map[string]any{"scope": "write"},
	}
	data, err := codec.Marshal(document)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var decoded Generic
	if err := codec.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded.Subject != "alice" || decoded.IssuedAt == nil || !decoded.IssuedAt.Equal(issued) {
		t.Errorf("Registered = %+v", decoded.Registered)
	}
	if decoded.Custom["scope"] != "write" {
		t.Errorf("Custom = %v", decoded.Custom)
	}
}

func TestFooter(t *testing.T) {
	encoded, err := (&Footer{KeyID: "k1"}).Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if string(encoded) != `{"kid":"k1"}` {
		t.Errorf("Encode = %s", encoded)
	}

	for _, empty := range []*Footer{nil, {}} {
		encoded, err := empty.Encode()
		if err != nil || encoded != nil {
			t.Errorf("Encode(%v) = %q, %v; want nil, nil", empty, encoded, err)
		}
	}

	footer, err := ParseFooter(nil)
	if err != nil || footer.KeyID != "" {
		t.Errorf("ParseFooter(nil) = %+v, %v", footer, err)
	}
	footer, err = ParseFooter([]byte(`{"kid":"k2","other":1}`))
	if err != nil || footer.KeyID != "k2" {
		t.Errorf("ParseFooter = %+v, %v", footer, err)
	}
	if _, err := ParseFooter([]byte("Cuon Alpinus")); !errors.Is(err, ErrInvalidFooter) {
		t.Errorf("ParseFooter(text) = %v, want ErrInvalidFooter", err)
	}
}
