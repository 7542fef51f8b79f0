// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cryptoprovider

// Size constants for the v1 suite.
const (
	V1NonceSize        = 32
	V1SymmetricKeySize = 32
	V1HmacSize         = 48
	V1Aes256KeySize    = 32
	V1Aes256IVSize     = 16
	V1RsaModulusBits   = 2048
	V1RsaSignatureSize = V1RsaModulusBits / 8
	// V1HkdfMaxSize is the HKDF output limit, 255 hash blocks.
	V1HkdfMaxSize = 255 * V1HmacSize
)

// Size constants for the v2 suite.
const (
	V2NonceSize            = 24
	V2SymmetricKeySize     = 32
	V2AeadTagSize          = 16
	V2Blake2bMinSize       = 16
	V2Blake2bMaxSize       = 64
	V2Blake2bKeyMinSize    = 16
	V2Blake2bKeyMaxSize    = 64
	V2Ed25519SecretKeySize = 64
	V2Ed25519PublicKeySize = 32
	V2Ed25519SignatureSize = 64
)

// NonceGenerator produces the random draw a local token build starts
// from. Implementations must be safe for concurrent use.
type NonceGenerator interface {
	// GenerateNonce returns a fresh nonce of the version's size.
	GenerateNonce() ([]byte, error)
}

// KeyPair is a generated asymmetric key pair in the provider's
// serialized form.
type KeyPair struct {
	SecretKey []byte
	PublicKey []byte
}

// V1 is the primitive set of PASETO version 1.
//
// Output buffers are caller-allocated and must have the exact length
// the primitive produces. RSA keys are DER: secret keys PKCS#1 or
// PKCS#8, public keys PKIX or PKCS#1.
type V1 interface {
	// RandomBytes returns n bytes from a CSPRNG.
	RandomBytes(n int) ([]byte, error)
	// NonceGenerator returns a generator of V1NonceSize draws.
	NonceGenerator() NonceGenerator

	// HmacSha384 writes HMAC-SHA384(key, in) to out (48 bytes).
	HmacSha384(out, in, key []byte) error
	// HkdfSha384 fills out with HKDF-SHA384(ikm, salt, info).
	HkdfSha384(out, ikm, salt, info []byte) error
	// Aes256CtrEncrypt writes AES-256-CTR(key, iv, in) to out.
	Aes256CtrEncrypt(out, in, key, iv []byte) error
	// Aes256CtrDecrypt is the inverse of Aes256CtrEncrypt.
	Aes256CtrDecrypt(out, in, key, iv []byte) error

	// RsaSign writes an RSASSA-PSS (SHA-384, MGF1-SHA-384, 48-byte
	// salt) signature of m to sig.
	RsaSign(sig, m, secretKey []byte) error
	// RsaVerify reports whether sig is a valid signature of m. A
	// false result with a nil error means the signature did not verify.
	RsaVerify(sig, m, publicKey []byte) (bool, error)
	// RsaSecretKeyToPublicKey derives the PKIX public key.
	RsaSecretKeyToPublicKey(secretKey []byte) ([]byte, error)
	// RsaGenerate creates a 2048-bit key pair with e = 65537.
	RsaGenerate() (KeyPair, error)
}

// V2 is the primitive set of PASETO version 2.
type V2 interface {
	// RandomBytes returns n bytes from a CSPRNG.
	RandomBytes(n int) ([]byte, error)
	// NonceGenerator returns a generator of V2NonceSize draws.
	NonceGenerator() NonceGenerator

	// Blake2b writes the keyed BLAKE2b hash of in to out. The digest
	// size is len(out).
	Blake2b(out, in, key []byte) error

	// AeadXChaCha20Poly1305Encrypt writes ciphertext||tag to out,
	// which must be len(in)+16 bytes.
	AeadXChaCha20Poly1305Encrypt(out, in, ad, nonce, key []byte) error
	// AeadXChaCha20Poly1305Decrypt authenticates in (ciphertext||tag)
	// and writes the plaintext to out, which must be len(in)-16 bytes.
	// Nothing is written to out unless the tag verifies.
	AeadXChaCha20Poly1305Decrypt(out, in, ad, nonce, key []byte) error

	// Ed25519Sign writes the signature of m to sig.
	Ed25519Sign(sig, m, secretKey []byte) error
	// Ed25519Verify reports whether sig is a valid signature of m.
	Ed25519Verify(sig, m, publicKey []byte) (bool, error)
	// Ed25519SecretKeyToPublicKey returns the 32-byte public key of a
	// 64-byte secret key.
	Ed25519SecretKeyToPublicKey(secretKey []byte) ([]byte, error)
	// Ed25519Generate creates a fresh key pair.
	Ed25519Generate() (KeyPair, error)
}
