// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestSerialize(t *testing.T) {
	tests := []struct {
		name  string
		token Token
		want  string
	}{
		{
			name:  "local without footer",
			token: Token{Version: V2, Purpose: Local, Payload: []byte{0xfb, 0xff, 0x00}},
			want:  "v2.local.-_8A",
		},
		{
			name:  "public with footer",
			token: Token{Version: V1, Purpose: Public, Payload: []byte("hi"), Footer: []byte("kid")},
			want:  "v1.public.aGk.a2lk",
		},
		{
			name:  "empty footer omitted",
			token: Token{Version: V2, Purpose: Public, Payload: []byte("hi"), Footer: []byte{}},
			want:  "v2.public.aGk",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Serialize(tt.token); got != tt.want {
				t.Errorf("Serialize() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParse_RoundTrip(t *testing.T) {
	tokens := []Token{
		{Version: V1, Purpose: Local, Payload: []byte("ciphertext")},
		{Version: V1, Purpose: Public, Payload: []byte("message"), Footer: []byte(`{"kid":"a"}`)},
		{Version: V2, Purpose: Local, Payload: bytes.Repeat([]byte{0xff}, 97), Footer: []byte{0x00}},
		{Version: V2, Purpose: Public, Payload: []byte{}},
	}

	for _, token := range tokens {
		t.Run(Header(token.Version, token.Purpose), func(t *testing.T) {
			parsed, err := Parse(Serialize(token))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if parsed.Version != token.Version || parsed.Purpose != token.Purpose {
				t.Errorf("header = %s, want %s", Header(parsed.Version, parsed.Purpose), Header(token.Version, token.Purpose))
			}
			if !bytes.Equal(parsed.Payload, token.Payload) {
				t.Errorf("Payload = %x, want %x", parsed.Payload, token.Payload)
			}
			if !bytes.Equal(parsed.Footer, token.Footer) {
				t.Errorf("Footer = %x, want %x", parsed.Footer, token.Footer)
			}
		})
	}
}

func TestParse_EmptyFooterIsAbsent(t *testing.T) {
	absent, err := Parse("v2.local.aGk")
	if err != nil {
		t.Fatalf("Parse(absent) error = %v", err)
	}
	empty, err := Parse("v2.local.aGk.")
	if err != nil {
		t.Fatalf("Parse(empty) error = %v", err)
	}
	if absent.Footer != nil || empty.Footer != nil {
		t.Errorf("footers = %v, %v; want both nil", absent.Footer, empty.Footer)
	}
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
		want    error
	}{
		{"empty string", "", ErrMalformedToken},
		{"two fields", "v2.local", ErrMalformedToken},
		{"five fields", "v2.local.aGk.aGk.aGk", ErrMalformedToken},
		{"unknown version", "v3.local.aGk", ErrUnknownVersion},
		{"uppercase version", "V2.local.aGk", ErrUnknownVersion},
		{"unknown purpose", "v2.secret.aGk", ErrUnknownPurpose},
		{"uppercase purpose", "v2.Local.aGk", ErrUnknownPurpose},
		{"padding", "v2.local.aGk=", ErrMalformedToken},
		{"standard alphabet", "v2.local.+/8A", ErrMalformedToken},
		{"bad footer", "v2.local.aGk.a*k", ErrMalformedToken},
		{"newline in payload", "v2.local.aG\nk", ErrMalformedToken},
		{"leading space", " v2.local.aGk", ErrUnknownVersion},
		{"trailing space", "v2.local.aGk ", ErrMalformedToken},
		{"non-canonical trailing bits", "v2.local.aGl", ErrMalformedToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.encoded)
			if !errors.Is(err, tt.want) {
				t.Errorf("Parse(%q) error = %v, want %v", tt.encoded, err, tt.want)
			}
		})
	}
}

func TestExtractFooter(t *testing.T) {
	footer, err := ExtractFooter("v2.public.aGk.eyJraWQiOiJhIn0")
	if err != nil {
		t.Fatalf("ExtractFooter() error = %v", err)
	}
	if string(footer) != `{"kid":"a"}` {
		t.Errorf("footer = %q, want {\"kid\":\"a\"}", footer)
	}

	if _, err := ExtractFooter("not a token"); !errors.Is(err, ErrMalformedToken) {
		t.Errorf("ExtractFooter(garbage) error = %v, want ErrMalformedToken", err)
	}
}

func TestHeader(t *testing.T) {
	want := map[string]string{
		Header(V1, Local):  "v1.local.",
		Header(V1, Public): "v1.public.",
		Header(V2, Local):  "v2.local.",
		Header(V2, Public): "v2.public.",
	}
	for got, expected := range want {
		if got != expected {
			t.Errorf("Header = %q, want %q", got, expected)
		}
	}
	if !strings.HasPrefix(Serialize(Token{Version: V2, Purpose: Local}), "v2.local.") {
		t.Error("Serialize does not start with Header")
	}
}
