// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package paseto

import (
	"crypto/hmac"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bureau-foundation/paseto/lib/cryptoprovider"
	"github.com/bureau-foundation/paseto/lib/pae"
	"github.com/bureau-foundation/paseto/lib/wire"
)

// HKDF info strings for the v1.local subkeys.
var (
	v1EncryptionKeyInfo = []byte("paseto-encryption-key")
	v1AuthKeyInfo       = []byte("paseto-auth-key-for-aead")
)

// LocalConfig configures a [Local] engine. Only the provider for
// Version is required.
type LocalConfig struct {
	Version wire.Version
	V1      cryptoprovider.V1
	V2      cryptoprovider.V2

	// Logger receives debug events for rejected tokens. Nil discards.
	Logger *slog.Logger
}

// Local builds and opens local (symmetric) tokens for one version.
type Local struct {
	engine
}

// NewLocal returns a local-token engine for config.Version.
func NewLocal(config LocalConfig) (*Local, error) {
	base, err := newEngine(config.Version, wire.Local, config.V1, config.V2, config.Logger)
	if err != nil {
		return nil, err
	}
	return &Local{engine: base}, nil
}

// Encrypt encrypts payload under key and returns the token string. The
// footer is authenticated but not encrypted; nil means no footer.
func (l *Local) Encrypt(key, payload, footer []byte) (string, error) {
	if err := cryptoprovider.First(checkKey(key), checkPayload(payload), l.checkKeySize(key)); err != nil {
		return "", err
	}

	var nonces cryptoprovider.NonceGenerator
	size := cryptoprovider.V2NonceSize
	if l.version == wire.V1 {
		nonces = l.v1.NonceGenerator()
		size = cryptoprovider.V1NonceSize
	} else {
		nonces = l.v2.NonceGenerator()
	}
	draw, err := nonces.GenerateNonce()
	if err != nil {
		return "", fmt.Errorf("paseto: drawing nonce: %w", err)
	}
	if err := cryptoprovider.CheckExact("nonce", draw, size); err != nil {
		return "", err
	}

	var sealed []byte
	if l.version == wire.V1 {
		sealed, err = l.sealV1(key, payload, footer, draw)
	} else {
		sealed, err = l.sealV2(key, payload, footer, draw)
	}
	if err != nil {
		return "", err
	}

	return wire.Serialize(wire.Token{
		Version: l.version,
		Purpose: wire.Local,
		Payload: sealed,
		Footer:  footer,
	}), nil
}

// Decrypt authenticates and decrypts token. The returned footer is the
// token's own; use [Local.DecryptWithFooter] to require a specific one.
func (l *Local) Decrypt(key []byte, token string) (*Result, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	parsed, err := l.parse(token)
	if err != nil {
		return nil, err
	}
	return l.open(key, parsed)
}

// DecryptWithFooter is Decrypt, but first requires the token's footer
// to equal footer (compared in constant time). A mismatch fails with
// [ErrFooterMismatch] before the key is used.
func (l *Local) DecryptWithFooter(key []byte, token string, footer []byte) ([]byte, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	parsed, err := l.parseWithFooter(token, footer)
	if err != nil {
		return nil, err
	}
	result, err := l.open(key, parsed)
	if err != nil {
		return nil, err
	}
	return result.Payload, nil
}

func (l *Local) open(key []byte, token wire.Token) (*Result, error) {
	if err := l.checkKeySize(key); err != nil {
		return nil, err
	}

	var plaintext []byte
	var err error
	if l.version == wire.V1 {
		plaintext, err = l.openV1(key, token.Payload, token.Footer)
	} else {
		plaintext, err = l.openV2(key, token.Payload, token.Footer)
	}
	if err != nil {
		if errors.Is(err, ErrAuthenticationFailed) {
			l.logger.Debug("local token rejected", "reason", "authentication")
		}
		return nil, err
	}
	return &Result{Payload: plaintext, Footer: token.Footer}, nil
}

// checkKeySize enforces the 32-byte symmetric key of both versions.
func (l *Local) checkKeySize(key []byte) error {
	size := cryptoprovider.V2SymmetricKeySize
	if l.version == wire.V1 {
		size = cryptoprovider.V1SymmetricKeySize
	}
	return cryptoprovider.CheckExact("key", key, size)
}

func (l *Local) sealV2(key, payload, footer, draw []byte) ([]byte, error) {
	nonce := make([]byte, cryptoprovider.V2NonceSize)
	if err := l.v2.Blake2b(nonce, payload, draw); err != nil {
		return nil, fmt.Errorf("paseto: deriving nonce: %w", err)
	}

	additionalData := pae.Encode(l.header(), nonce, footer)
	ciphertext := make([]byte, len(payload)+cryptoprovider.V2AeadTagSize)
	if err := l.v2.AeadXChaCha20Poly1305Encrypt(ciphertext, payload, additionalData, nonce, key); err != nil {
		return nil, err
	}
	return append(nonce, ciphertext...), nil
}

func (l *Local) openV2(key, sealed, footer []byte) ([]byte, error) {
	if len(sealed) < cryptoprovider.V2NonceSize+cryptoprovider.V2AeadTagSize {
		return nil, fmt.Errorf("%w: v2.local payload is %d bytes, want at least %d",
			ErrMalformedToken, len(sealed), cryptoprovider.V2NonceSize+cryptoprovider.V2AeadTagSize)
	}
	nonce := sealed[:cryptoprovider.V2NonceSize]
	ciphertext := sealed[cryptoprovider.V2NonceSize:]

	additionalData := pae.Encode(l.header(), nonce, footer)
	plaintext := make([]byte, len(ciphertext)-cryptoprovider.V2AeadTagSize)
	err := l.v2.AeadXChaCha20Poly1305Decrypt(plaintext, ciphertext, additionalData, nonce, key)
	if errors.Is(err, cryptoprovider.ErrAuthentication) {
		return nil, ErrAuthenticationFailed
	}
	if err != nil {
		return nil, err
	}
	return plaintext, nil
}

func (l *Local) sealV1(key, payload, footer, draw []byte) ([]byte, error) {
	digest := make([]byte, cryptoprovider.V1HmacSize)
	if err := l.v1.HmacSha384(digest, payload, draw); err != nil {
		return nil, fmt.Errorf("paseto: deriving nonce: %w", err)
	}
	nonce := digest[:cryptoprovider.V1NonceSize]

	encryptionKey, authKey, err := l.v1Subkeys(key, nonce)
	if err != nil {
		return nil, err
	}
	defer clear(encryptionKey)
	defer clear(authKey)

	ciphertext := make([]byte, len(payload))
	if err := l.v1.Aes256CtrEncrypt(ciphertext, payload, encryptionKey, nonce[16:]); err != nil {
		return nil, err
	}

	tag := make([]byte, cryptoprovider.V1HmacSize)
	if err := l.v1.HmacSha384(tag, pae.Encode(l.header(), nonce, ciphertext, footer), authKey); err != nil {
		return nil, err
	}

	sealed := make([]byte, 0, len(nonce)+len(ciphertext)+len(tag))
	sealed = append(sealed, nonce...)
	sealed = append(sealed, ciphertext...)
	return append(sealed, tag...), nil
}

func (l *Local) openV1(key, sealed, footer []byte) ([]byte, error) {
	if len(sealed) < cryptoprovider.V1NonceSize+cryptoprovider.V1HmacSize {
		return nil, fmt.Errorf("%w: v1.local payload is %d bytes, want at least %d",
			ErrMalformedToken, len(sealed), cryptoprovider.V1NonceSize+cryptoprovider.V1HmacSize)
	}
	nonce := sealed[:cryptoprovider.V1NonceSize]
	ciphertext := sealed[cryptoprovider.V1NonceSize : len(sealed)-cryptoprovider.V1HmacSize]
	tag := sealed[len(sealed)-cryptoprovider.V1HmacSize:]

	encryptionKey, authKey, err := l.v1Subkeys(key, nonce)
	if err != nil {
		return nil, err
	}
	defer clear(encryptionKey)
	defer clear(authKey)

	expected := make([]byte, cryptoprovider.V1HmacSize)
	if err := l.v1.HmacSha384(expected, pae.Encode(l.header(), nonce, ciphertext, footer), authKey); err != nil {
		return nil, err
	}
	if !hmac.Equal(tag, expected) {
		return nil, ErrAuthenticationFailed
	}

	plaintext := make([]byte, len(ciphertext))
	if err := l.v1.Aes256CtrDecrypt(plaintext, ciphertext, encryptionKey, nonce[16:]); err != nil {
		return nil, err
	}
	return plaintext, nil
}

// v1Subkeys splits key into the encryption and authentication keys
// for one nonce. The salt is the first half of the nonce.
func (l *Local) v1Subkeys(key, nonce []byte) (encryptionKey, authKey []byte, err error) {
	salt := nonce[:16]
	encryptionKey = make([]byte, cryptoprovider.V1Aes256KeySize)
	if err := l.v1.HkdfSha384(encryptionKey, key, salt, v1EncryptionKeyInfo); err != nil {
		return nil, nil, fmt.Errorf("paseto: deriving encryption key: %w", err)
	}
	authKey = make([]byte, cryptoprovider.V1Aes256KeySize)
	if err := l.v1.HkdfSha384(authKey, key, salt, v1AuthKeyInfo); err != nil {
		clear(encryptionKey)
		return nil, nil, fmt.Errorf("paseto: deriving authentication key: %w", err)
	}
	return encryptionKey, authKey, nil
}
