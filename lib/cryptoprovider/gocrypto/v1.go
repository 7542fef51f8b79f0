// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package gocrypto

import (
	"crypto"
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha512"
	"crypto/x509"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	"github.com/bureau-foundation/paseto/lib/cryptoprovider"
)

// V1 implements [cryptoprovider.V1].
type V1 struct{}

var _ cryptoprovider.V1 = V1{}

// NewV1 returns the v1 provider.
func NewV1() V1 {
	return V1{}
}

var pssOptions = &rsa.PSSOptions{
	SaltLength: 48,
	Hash:       crypto.SHA384,
}

// RandomBytes returns n bytes from crypto/rand.
func (V1) RandomBytes(n int) ([]byte, error) {
	return randomBytes(n)
}

// NonceGenerator returns a generator of 32-byte random draws.
func (V1) NonceGenerator() cryptoprovider.NonceGenerator {
	return randomNonceGenerator{size: cryptoprovider.V1NonceSize}
}

// HmacSha384 writes HMAC-SHA384(key, in) to out.
func (V1) HmacSha384(out, in, key []byte) error {
	if err := cryptoprovider.CheckNotNil(cryptoprovider.Arg{Name: "out", Value: out}, cryptoprovider.Arg{Name: "in", Value: in}, cryptoprovider.Arg{Name: "key", Value: key}); err != nil {
		return err
	}
	if err := cryptoprovider.First(
		cryptoprovider.CheckExact("out", out, cryptoprovider.V1HmacSize),
		cryptoprovider.CheckMin("key", key, 1),
	); err != nil {
		return err
	}

	mac := hmac.New(sha512.New384, key)
	mac.Write(in)
	copy(out, mac.Sum(nil))
	return nil
}

// HkdfSha384 fills out with HKDF-SHA384 output. Salt and info may be
// nil.
func (V1) HkdfSha384(out, ikm, salt, info []byte) error {
	if err := cryptoprovider.CheckNotNil(cryptoprovider.Arg{Name: "out", Value: out}, cryptoprovider.Arg{Name: "ikm", Value: ikm}); err != nil {
		return err
	}
	if err := cryptoprovider.First(
		cryptoprovider.CheckRange("out", out, 1, cryptoprovider.V1HkdfMaxSize),
		cryptoprovider.CheckMin("ikm", ikm, 1),
	); err != nil {
		return err
	}

	reader := hkdf.New(sha512.New384, ikm, salt, info)
	if _, err := io.ReadFull(reader, out); err != nil {
		return fmt.Errorf("gocrypto: hkdf: %w", err)
	}
	return nil
}

// Aes256CtrEncrypt writes AES-256-CTR(key, iv, in) to out.
func (V1) Aes256CtrEncrypt(out, in, key, iv []byte) error {
	return aes256Ctr(out, in, key, iv)
}

// Aes256CtrDecrypt is identical to encryption in CTR mode.
func (V1) Aes256CtrDecrypt(out, in, key, iv []byte) error {
	return aes256Ctr(out, in, key, iv)
}

func aes256Ctr(out, in, key, iv []byte) error {
	if err := cryptoprovider.CheckNotNil(
		cryptoprovider.Arg{Name: "out", Value: out},
		cryptoprovider.Arg{Name: "in", Value: in},
		cryptoprovider.Arg{Name: "key", Value: key},
		cryptoprovider.Arg{Name: "iv", Value: iv},
	); err != nil {
		return err
	}
	if err := cryptoprovider.First(
		cryptoprovider.CheckExact("out", out, len(in)),
		cryptoprovider.CheckExact("key", key, cryptoprovider.V1Aes256KeySize),
		cryptoprovider.CheckExact("iv", iv, cryptoprovider.V1Aes256IVSize),
	); err != nil {
		return err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return fmt.Errorf("gocrypto: aes: %w", err)
	}
	cipher.NewCTR(block, iv).XORKeyStream(out, in)
	return nil
}

// RsaSign writes an RSASSA-PSS signature of m to sig.
func (V1) RsaSign(sig, m, secretKey []byte) error {
	if err := cryptoprovider.CheckNotNil(cryptoprovider.Arg{Name: "sig", Value: sig}, cryptoprovider.Arg{Name: "m", Value: m}, cryptoprovider.Arg{Name: "sk", Value: secretKey}); err != nil {
		return err
	}
	if err := cryptoprovider.First(
		cryptoprovider.CheckExact("sig", sig, cryptoprovider.V1RsaSignatureSize),
		cryptoprovider.CheckMin("m", m, 1),
		cryptoprovider.CheckMin("sk", secretKey, 1),
	); err != nil {
		return err
	}

	private, err := parseRsaSecretKey(secretKey)
	if err != nil {
		return err
	}
	digest := sha512.Sum384(m)
	signature, err := rsa.SignPSS(rand.Reader, private, crypto.SHA384, digest[:], pssOptions)
	if err != nil {
		return fmt.Errorf("gocrypto: rsa-pss sign: %w", err)
	}
	copy(sig, signature)
	return nil
}

// RsaVerify reports whether sig is a valid RSASSA-PSS signature of m.
func (V1) RsaVerify(sig, m, publicKey []byte) (bool, error) {
	if err := cryptoprovider.CheckNotNil(cryptoprovider.Arg{Name: "sig", Value: sig}, cryptoprovider.Arg{Name: "m", Value: m}, cryptoprovider.Arg{Name: "pk", Value: publicKey}); err != nil {
		return false, err
	}
	if err := cryptoprovider.First(
		cryptoprovider.CheckExact("sig", sig, cryptoprovider.V1RsaSignatureSize),
		cryptoprovider.CheckMin("m", m, 1),
		cryptoprovider.CheckMin("pk", publicKey, 1),
	); err != nil {
		return false, err
	}

	public, err := parseRsaPublicKey(publicKey)
	if err != nil {
		return false, err
	}
	digest := sha512.Sum384(m)
	if err := rsa.VerifyPSS(public, crypto.SHA384, digest[:], sig, pssOptions); err != nil {
		return false, nil
	}
	return true, nil
}

// RsaSecretKeyToPublicKey returns the PKIX encoding of the public key.
func (V1) RsaSecretKeyToPublicKey(secretKey []byte) ([]byte, error) {
	if err := cryptoprovider.CheckNotNil(cryptoprovider.Arg{Name: "sk", Value: secretKey}); err != nil {
		return nil, err
	}
	if err := cryptoprovider.CheckMin("sk", secretKey, 1); err != nil {
		return nil, err
	}

	private, err := parseRsaSecretKey(secretKey)
	if err != nil {
		return nil, err
	}
	public, err := x509.MarshalPKIXPublicKey(&private.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("gocrypto: encoding RSA public key: %w", err)
	}
	return public, nil
}

// RsaGenerate creates a 2048-bit key pair (e = 65537), encoded as
// PKCS#8 and PKIX.
func (V1) RsaGenerate() (cryptoprovider.KeyPair, error) {
	private, err := rsa.GenerateKey(rand.Reader, cryptoprovider.V1RsaModulusBits)
	if err != nil {
		return cryptoprovider.KeyPair{}, fmt.Errorf("gocrypto: generating RSA key: %w", err)
	}
	secretKey, err := x509.MarshalPKCS8PrivateKey(private)
	if err != nil {
		return cryptoprovider.KeyPair{}, fmt.Errorf("gocrypto: encoding RSA secret key: %w", err)
	}
	publicKey, err := x509.MarshalPKIXPublicKey(&private.PublicKey)
	if err != nil {
		return cryptoprovider.KeyPair{}, fmt.Errorf("gocrypto: encoding RSA public key: %w", err)
	}
	return cryptoprovider.KeyPair{SecretKey: secretKey, PublicKey: publicKey}, nil
}

// parseRsaSecretKey accepts PKCS#1 or PKCS#8 DER holding a 2048-bit
// RSA key.
func parseRsaSecretKey(der []byte) (*rsa.PrivateKey, error) {
	if private, err := x509.ParsePKCS1PrivateKey(der); err == nil {
		return checkRsaModulus(private)
	}
	parsed, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		return nil, fmt.Errorf("%w: RSA secret key is neither PKCS#1 nor PKCS#8", cryptoprovider.ErrInvalidKey)
	}
	private, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("%w: PKCS#8 key is %T, want RSA", cryptoprovider.ErrInvalidKey, parsed)
	}
	return checkRsaModulus(private)
}

// parseRsaPublicKey accepts PKIX or PKCS#1 DER holding a 2048-bit RSA
// key.
func parseRsaPublicKey(der []byte) (*rsa.PublicKey, error) {
	if parsed, err := x509.ParsePKIXPublicKey(der); err == nil {
		public, ok := parsed.(*rsa.PublicKey)
		if !ok {
			return nil, fmt.Errorf("%w: PKIX key is %T, want RSA", cryptoprovider.ErrInvalidKey, parsed)
		}
		return checkRsaPublicModulus(public)
	}
	public, err := x509.ParsePKCS1PublicKey(der)
	if err != nil {
		return nil, fmt.Errorf("%w: RSA public key is neither PKIX nor PKCS#1", cryptoprovider.ErrInvalidKey)
	}
	return checkRsaPublicModulus(public)
}

var errRsaModulus = errors.New("RSA modulus is not 2048 bits")

func checkRsaModulus(private *rsa.PrivateKey) (*rsa.PrivateKey, error) {
	if _, err := checkRsaPublicModulus(&private.PublicKey); err != nil {
		return nil, err
	}
	return private, nil
}

func checkRsaPublicModulus(public *rsa.PublicKey) (*rsa.PublicKey, error) {
	if public.N.BitLen() != cryptoprovider.V1RsaModulusBits {
		return nil, fmt.Errorf("%w: %w (%d bits)", cryptoprovider.ErrInvalidKey, errRsaModulus, public.N.BitLen())
	}
	return public, nil
}
