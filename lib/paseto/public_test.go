// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package paseto

import (
	"bytes"
	"encoding/base64"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/bureau-foundation/paseto/lib/cryptoprovider"
	"github.com/bureau-foundation/paseto/lib/cryptoprovider/gocrypto"
	"github.com/bureau-foundation/paseto/lib/wire"
)

func newPublic(t *testing.T, version wire.Version) *Public {
	t.Helper()
	engine, err := NewPublic(PublicConfig{Version: version, V1: gocrypto.NewV1(), V2: gocrypto.NewV2()})
	if err != nil {
		t.Fatalf("NewPublic(%s): %v", version, err)
	}
	return engine
}

var (
	rsaOnce sync.Once
	rsaKeys cryptoprovider.KeyPair
	rsaErr  error
)

// testKeyPair returns a key pair for version. The RSA pair is generated
// once per test binary.
func testKeyPair(t *testing.T, version wire.Version) cryptoprovider.KeyPair {
	t.Helper()
	if version == wire.V2 {
		pair, err := gocrypto.NewV2().Ed25519Generate()
		if err != nil {
			t.Fatalf("Ed25519Generate: %v", err)
		}
		return pair
	}
	rsaOnce.Do(func() {
		rsaKeys, rsaErr = gocrypto.NewV1().RsaGenerate()
	})
	if rsaErr != nil {
		t.Fatalf("RsaGenerate: %v", rsaErr)
	}
	return rsaKeys
}

func TestPublicRoundTrip(t *testing.T) {
	payloads := [][]byte{{}, []byte(`{"sub":"alice"}`), bytes.Repeat([]byte("z"), 2048)}
	footers := [][]byte{nil, []byte(`{"kid":"k1"}`)}
	for _, version := range versions {
		engine := newPublic(t, version)
		pair := testKeyPair(t, version)
		for _, payload := range payloads {
			for _, footer := range footers {
				token, err := engine.Sign(pair.SecretKey, payload, footer)
				if err != nil {
					t.Fatalf("%s Sign: %v", version, err)
				}
				if !strings.HasPrefix(token, version.String()+".public.") {
					t.Errorf("token %q lacks %s.public. header", token, version)
				}
				result, err := engine.Verify(pair.PublicKey, token)
				if err != nil {
					t.Fatalf("%s Verify: %v", version, err)
				}
				if !bytes.Equal(result.Payload, payload) {
					t.Errorf("%s Payload = %q, want %q", version, result.Payload, payload)
				}
				if !bytes.Equal(result.Footer, footer) {
					t.Errorf("%s Footer = %q, want %q", version, result.Footer, footer)
				}
			}
		}
	}
}

func TestPublicPayloadLayout(t *testing.T) {
	for _, version := range versions {
		engine := newPublic(t, version)
		pair := testKeyPair(t, version)
		token, err := engine.Sign(pair.SecretKey, []byte("cleartext"), nil)
		if err != nil {
			t.Fatalf("Sign: %v", err)
		}
		parsed, err := wire.Parse(token)
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}
		want := len("cleartext") + engine.signatureSize()
		if len(parsed.Payload) != want {
			t.Errorf("%s payload = %d bytes, want %d", version, len(parsed.Payload), want)
		}
		if !bytes.HasPrefix(parsed.Payload, []byte("cleartext")) {
			t.Errorf("%s payload does not start with the message", version)
		}
	}
}

func TestPublicTamperedTokens(t *testing.T) {
	for _, version := range versions {
		t.Run(version.String(), func(t *testing.T) {
			engine := newPublic(t, version)
			pair := testKeyPair(t, version)
			token, err := engine.Sign(pair.SecretKey, []byte("signed"), []byte("kid"))
			if err != nil {
				t.Fatalf("Sign: %v", err)
			}
			parsed, err := wire.Parse(token)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}

			// Flip every bit of the message and a sample of the
			// signature (RSA verification is slow enough that every
			// bit of 256 bytes is wasteful).
			positions := []int{}
			for i := range len("signed") * 8 {
				positions = append(positions, i)
			}
			for i := len("signed") * 8; i < len(parsed.Payload)*8; i += 13 {
				positions = append(positions, i)
			}
			for _, i := range positions {
				mutated := parsed
				mutated.Payload = bytes.Clone(parsed.Payload)
				mutated.Payload[i/8] ^= 1 << (i % 8)
				result, err := engine.Verify(pair.PublicKey, wire.Serialize(mutated))
				if !errors.Is(err, ErrVerificationFailed) {
					t.Fatalf("payload bit %d flipped: Verify = %v, want ErrVerificationFailed", i, err)
				}
				if result != nil {
					t.Fatalf("payload bit %d flipped: Verify returned a result", i)
				}
			}

			for i := range len(parsed.Footer) * 8 {
				mutated := parsed
				mutated.Footer = bytes.Clone(parsed.Footer)
				mutated.Footer[i/8] ^= 1 << (i % 8)
				if _, err := engine.Verify(pair.PublicKey, wire.Serialize(mutated)); !errors.Is(err, ErrVerificationFailed) {
					t.Fatalf("footer bit %d flipped: Verify = %v, want ErrVerificationFailed", i, err)
				}
			}

			stripped := parsed
			stripped.Footer = nil
			if _, err := engine.Verify(pair.PublicKey, wire.Serialize(stripped)); !errors.Is(err, ErrVerificationFailed) {
				t.Errorf("footer stripped: Verify = %v, want ErrVerificationFailed", err)
			}

			other := testKeyPair(t, wire.V2)
			if version == wire.V2 {
				if _, err := engine.Verify(other.PublicKey, token); !errors.Is(err, ErrVerificationFailed) {
					t.Errorf("wrong key: Verify = %v, want ErrVerificationFailed", err)
				}
			}
		})
	}
}

func TestPublicFooterBinding(t *testing.T) {
	engine := newPublic(t, wire.V2)
	pair := testKeyPair(t, wire.V2)
	tokenA, _ := engine.Sign(pair.SecretKey, []byte("same"), []byte("footer-a"))
	tokenB, _ := engine.Sign(pair.SecretKey, []byte("same"), []byte("footer-b"))

	parsedA, _ := wire.Parse(tokenA)
	parsedB, _ := wire.Parse(tokenB)
	parsedA.Footer = parsedB.Footer
	if _, err := engine.Verify(pair.PublicKey, wire.Serialize(parsedA)); !errors.Is(err, ErrVerificationFailed) {
		t.Errorf("grafted footer: Verify = %v, want ErrVerificationFailed", err)
	}

	if _, err := engine.VerifyWithFooter(pair.PublicKey, tokenA, []byte("footer-b")); !errors.Is(err, ErrFooterMismatch) {
		t.Errorf("VerifyWithFooter(wrong) = %v, want ErrFooterMismatch", err)
	}
	payload, err := engine.VerifyWithFooter(pair.PublicKey, tokenA, []byte("footer-a"))
	if err != nil {
		t.Fatalf("VerifyWithFooter: %v", err)
	}
	if string(payload) != "same" {
		t.Errorf("payload = %q", payload)
	}
}

func TestPublicRejectsOtherHeaders(t *testing.T) {
	engine := newPublic(t, wire.V2)
	pair := testKeyPair(t, wire.V2)
	token, err := engine.Sign(pair.SecretKey, []byte("payload"), nil)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	if _, err := engine.Verify(pair.PublicKey, strings.Replace(token, ".public.", ".local.", 1)); !errors.Is(err, ErrWrongPurpose) {
		t.Errorf("local header: Verify = %v, want ErrWrongPurpose", err)
	}
	if _, err := engine.Verify(pair.PublicKey, "v1"+token[2:]); !errors.Is(err, ErrWrongVersion) {
		t.Errorf("v1 header: Verify = %v, want ErrWrongVersion", err)
	}

	local := newLocal(t, wire.V2)
	if _, err := local.Decrypt(make([]byte, 32), token); !errors.Is(err, ErrWrongPurpose) {
		t.Errorf("public token given to Local: Decrypt = %v, want ErrWrongPurpose", err)
	}
}

func TestPublicShortPayload(t *testing.T) {
	tests := []struct {
		version wire.Version
		size    int
	}{
		{wire.V1, 255},
		{wire.V2, 63},
	}
	for _, test := range tests {
		pair := testKeyPair(t, test.version)
		token := test.version.String() + ".public." + base64.RawURLEncoding.EncodeToString(make([]byte, test.size))
		if _, err := newPublic(t, test.version).Verify(pair.PublicKey, token); !errors.Is(err, ErrMalformedToken) {
			t.Errorf("%s short payload: Verify = %v, want ErrMalformedToken", test.version, err)
		}
	}
}

func TestPublicArguments(t *testing.T) {
	engine := newPublic(t, wire.V2)
	pair := testKeyPair(t, wire.V2)

	if _, err := engine.Sign(nil, []byte("p"), nil); !errors.Is(err, cryptoprovider.ErrNilArgument) {
		t.Errorf("Sign(nil key) = %v, want ErrNilArgument", err)
	}
	if _, err := engine.Sign(pair.SecretKey, nil, nil); !errors.Is(err, cryptoprovider.ErrNilArgument) {
		t.Errorf("Sign(nil payload) = %v, want ErrNilArgument", err)
	}
	if _, err := engine.Sign(pair.SecretKey[:63], []byte("p"), nil); !errors.Is(err, cryptoprovider.ErrLength) {
		t.Errorf("Sign(63-byte key) = %v, want ErrLength", err)
	}

	token, err := engine.Sign(pair.SecretKey, []byte("p"), nil)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if _, err := engine.Verify(nil, token); !errors.Is(err, cryptoprovider.ErrNilArgument) {
		t.Errorf("Verify(nil key) = %v, want ErrNilArgument", err)
	}
	if _, err := engine.Verify(pair.PublicKey[:31], token); !errors.Is(err, cryptoprovider.ErrLength) {
		t.Errorf("Verify(31-byte key) = %v, want ErrLength", err)
	}
	// A secret key where a public key belongs is a length error, not a
	// verification failure.
	if _, err := engine.Verify(pair.SecretKey, token); !errors.Is(err, cryptoprovider.ErrLength) {
		t.Errorf("Verify(secret key) = %v, want ErrLength", err)
	}
}
