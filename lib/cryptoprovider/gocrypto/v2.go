// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package gocrypto

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/chacha20poly1305"

	"github.com/bureau-foundation/paseto/lib/cryptoprovider"
)

// V2 implements [cryptoprovider.V2].
type V2 struct{}

var _ cryptoprovider.V2 = V2{}

// NewV2 returns the v2 provider.
func NewV2() V2 {
	return V2{}
}

// RandomBytes returns n bytes from crypto/rand.
func (V2) RandomBytes(n int) ([]byte, error) {
	return randomBytes(n)
}

// NonceGenerator returns a generator of 24-byte random draws.
func (V2) NonceGenerator() cryptoprovider.NonceGenerator {
	return randomNonceGenerator{size: cryptoprovider.V2NonceSize}
}

// Blake2b writes the keyed BLAKE2b-{len(out)*8} digest of in to out.
func (V2) Blake2b(out, in, key []byte) error {
	if err := cryptoprovider.CheckNotNil(cryptoprovider.Arg{Name: "out", Value: out}, cryptoprovider.Arg{Name: "in", Value: in}, cryptoprovider.Arg{Name: "key", Value: key}); err != nil {
		return err
	}
	if err := cryptoprovider.First(
		cryptoprovider.CheckRange("out", out, cryptoprovider.V2Blake2bMinSize, cryptoprovider.V2Blake2bMaxSize),
		cryptoprovider.CheckRange("key", key, cryptoprovider.V2Blake2bKeyMinSize, cryptoprovider.V2Blake2bKeyMaxSize),
	); err != nil {
		return err
	}

	hash, err := blake2b.New(len(out), key)
	if err != nil {
		return fmt.Errorf("gocrypto: blake2b: %w", err)
	}
	hash.Write(in)
	copy(out, hash.Sum(nil))
	return nil
}

// AeadXChaCha20Poly1305Encrypt seals in under key and nonce with
// additional data ad, writing ciphertext||tag to out.
func (V2) AeadXChaCha20Poly1305Encrypt(out, in, ad, nonce, key []byte) error {
	if err := checkAeadNil(out, in, ad, nonce, key); err != nil {
		return err
	}
	if err := cryptoprovider.First(
		cryptoprovider.CheckExact("out", out, len(in)+cryptoprovider.V2AeadTagSize),
		cryptoprovider.CheckMin("ad", ad, 1),
		cryptoprovider.CheckExact("nonce", nonce, chacha20poly1305.NonceSizeX),
		cryptoprovider.CheckExact("key", key, chacha20poly1305.KeySize),
	); err != nil {
		return err
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return fmt.Errorf("gocrypto: xchacha20poly1305: %w", err)
	}
	aead.Seal(out[:0], nonce, in, ad)
	return nil
}

// AeadXChaCha20Poly1305Decrypt opens in (ciphertext||tag). On a tag
// mismatch it returns [cryptoprovider.ErrAuthentication] and leaves out untouched.
func (V2) AeadXChaCha20Poly1305Decrypt(out, in, ad, nonce, key []byte) error {
	if err := checkAeadNil(out, in, ad, nonce, key); err != nil {
		return err
	}
	if err := cryptoprovider.CheckMin("in", in, cryptoprovider.V2AeadTagSize); err != nil {
		return err
	}
	if err := cryptoprovider.First(
		cryptoprovider.CheckExact("out", out, len(in)-cryptoprovider.V2AeadTagSize),
		cryptoprovider.CheckMin("ad", ad, 1),
		cryptoprovider.CheckExact("nonce", nonce, chacha20poly1305.NonceSizeX),
		cryptoprovider.CheckExact("key", key, chacha20poly1305.KeySize),
	); err != nil {
		return err
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return fmt.Errorf("gocrypto: xchacha20poly1305: %w", err)
	}
	// Open into a scratch buffer so a failed tag check cannot leave
	// partial plaintext in the caller's buffer.
	plaintext, err := aead.Open(nil, nonce, in, ad)
	if err != nil {
		return cryptoprovider.ErrAuthentication
	}
	copy(out, plaintext)
	return nil
}

func checkAeadNil(out, in, ad, nonce, key []byte) error {
	return cryptoprovider.CheckNotNil(
		cryptoprovider.Arg{Name: "out", Value: out},
		cryptoprovider.Arg{Name: "in", Value: in},
		cryptoprovider.Arg{Name: "ad", Value: ad},
		cryptoprovider.Arg{Name: "nonce", Value: nonce},
		cryptoprovider.Arg{Name: "key", Value: key},
	)
}

// Ed25519Sign writes the Ed25519 signature of m to sig. The secret key
// is seed||public key; a public half that does not match the seed is
// rejected with [cryptoprovider.ErrInvalidKey].
func (V2) Ed25519Sign(sig, m, secretKey []byte) error {
	if err := cryptoprovider.CheckNotNil(cryptoprovider.Arg{Name: "sig", Value: sig}, cryptoprovider.Arg{Name: "m", Value: m}, cryptoprovider.Arg{Name: "sk", Value: secretKey}); err != nil {
		return err
	}
	if err := cryptoprovider.First(
		cryptoprovider.CheckExact("sig", sig, cryptoprovider.V2Ed25519SignatureSize),
		cryptoprovider.CheckMin("m", m, 1),
		cryptoprovider.CheckExact("sk", secretKey, cryptoprovider.V2Ed25519SecretKeySize),
	); err != nil {
		return err
	}

	private, err := ed25519Key(secretKey)
	if err != nil {
		return err
	}
	copy(sig, ed25519.Sign(private, m))
	return nil
}

// Ed25519Verify reports whether sig is a valid signature of m.
func (V2) Ed25519Verify(sig, m, publicKey []byte) (bool, error) {
	if err := cryptoprovider.CheckNotNil(cryptoprovider.Arg{Name: "sig", Value: sig}, cryptoprovider.Arg{Name: "m", Value: m}, cryptoprovider.Arg{Name: "pk", Value: publicKey}); err != nil {
		return false, err
	}
	if err := cryptoprovider.First(
		cryptoprovider.CheckExact("sig", sig, cryptoprovider.V2Ed25519SignatureSize),
		cryptoprovider.CheckMin("m", m, 1),
		cryptoprovider.CheckExact("pk", publicKey, cryptoprovider.V2Ed25519PublicKeySize),
	); err != nil {
		return false, err
	}
	return ed25519.Verify(ed25519.PublicKey(publicKey), m, sig), nil
}

// Ed25519SecretKeyToPublicKey returns a copy of the public half of a
// secret key after checking it against the seed.
func (V2) Ed25519SecretKeyToPublicKey(secretKey []byte) ([]byte, error) {
	if err := cryptoprovider.CheckNotNil(cryptoprovider.Arg{Name: "sk", Value: secretKey}); err != nil {
		return nil, err
	}
	if err := cryptoprovider.CheckExact("sk", secretKey, cryptoprovider.V2Ed25519SecretKeySize); err != nil {
		return nil, err
	}

	private, err := ed25519Key(secretKey)
	if err != nil {
		return nil, err
	}
	return bytes.Clone(private.Public().(ed25519.PublicKey)), nil
}

// Ed25519Generate creates a fresh key pair.
func (V2) Ed25519Generate() (cryptoprovider.KeyPair, error) {
	public, private, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return cryptoprovider.KeyPair{}, fmt.Errorf("gocrypto: generating Ed25519 key pair: %w", err)
	}
	return cryptoprovider.KeyPair{SecretKey: private, PublicKey: public}, nil
}

// ed25519Key rebuilds the private key from its seed and requires the
// stored public half to agree. crypto/ed25519 panics on mismatched
// keys; this turns that into an error.
func ed25519Key(secretKey []byte) (ed25519.PrivateKey, error) {
	private := ed25519.NewKeyFromSeed(secretKey[:ed25519.SeedSize])
	if !bytes.Equal(private[ed25519.SeedSize:], secretKey[ed25519.SeedSize:]) {
		return nil, fmt.Errorf("%w: Ed25519 public half does not match seed", cryptoprovider.ErrInvalidKey)
	}
	return private, nil
}
