// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sealed

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"filippo.io/age"
	"filippo.io/age/armor"

	"github.com/bureau-foundation/paseto/lib/secret"
)

// ErrNoRecipients is returned by Seal when no recipient is given.
var ErrNoRecipients = errors.New("sealed: at least one recipient is required")

// Identity is an age x25519 key pair. Close releases the secret half.
type Identity struct {
	// Secret is the AGE-SECRET-KEY-1... string. Never log it.
	Secret *secret.Buffer

	// Recipient is the age1... public key to seal to.
	Recipient string
}

// Close zeroes and releases the secret key.
func (i *Identity) Close() error {
	if i.Secret != nil {
		return i.Secret.Close()
	}
	return nil
}

// GenerateIdentity creates a new age x25519 identity.
func GenerateIdentity() (*Identity, error) {
	identity, err := age.GenerateX25519Identity()
	if err != nil {
		return nil, fmt.Errorf("sealed: generating identity: %w", err)
	}
	// The age library only hands out the key as a string, so one heap
	// copy is unavoidable.
	buffer, err := secret.NewFromBytes([]byte(identity.String()))
	if err != nil {
		return nil, fmt.Errorf("sealed: protecting identity: %w", err)
	}
	return &Identity{Secret: buffer, Recipient: identity.Recipient().String()}, nil
}

// Seal encrypts plaintext to recipients and returns armored ciphertext.
func Seal(plaintext []byte, recipients []string) ([]byte, error) {
	if len(recipients) == 0 {
		return nil, ErrNoRecipients
	}
	parsed := make([]age.Recipient, 0, len(recipients))
	for _, recipient := range recipients {
		value, err := age.ParseX25519Recipient(recipient)
		if err != nil {
			return nil, fmt.Errorf("sealed: recipient %q: %w", recipient, err)
		}
		parsed = append(parsed, value)
	}

	var output bytes.Buffer
	armored := armor.NewWriter(&output)
	writer, err := age.Encrypt(armored, parsed...)
	if err != nil {
		return nil, fmt.Errorf("sealed: creating encryptor: %w", err)
	}
	if _, err := writer.Write(plaintext); err != nil {
		return nil, fmt.Errorf("sealed: encrypting: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("sealed: finishing encryption: %w", err)
	}
	if err := armored.Close(); err != nil {
		return nil, fmt.Errorf("sealed: finishing armor: %w", err)
	}
	return output.Bytes(), nil
}

// Open decrypts armored ciphertext produced by Seal. identity is
// borrowed and not closed. The caller must Close the returned buffer.
func Open(ciphertext []byte, identity *secret.Buffer) (*secret.Buffer, error) {
	identities, err := parseIdentities(identity)
	if err != nil {
		return nil, err
	}
	reader, err := age.Decrypt(armor.NewReader(bytes.NewReader(ciphertext)), identities...)
	if err != nil {
		return nil, fmt.Errorf("sealed: decrypting: %w", err)
	}
	plaintext, err := io.ReadAll(reader)
	if err != nil {
		secret.Zero(plaintext)
		return nil, fmt.Errorf("sealed: reading plaintext: %w", err)
	}
	if len(plaintext) == 0 {
		return nil, errors.New("sealed: sealed file is empty")
	}
	return secret.NewFromBytes(plaintext)
}

// IsSealed reports whether data starts with the age armor header.
func IsSealed(data []byte) bool {
	return bytes.HasPrefix(bytes.TrimSpace(data), []byte(armor.Header))
}

// ParseRecipient validates an age1... public key.
func ParseRecipient(recipient string) error {
	if _, err := age.ParseX25519Recipient(recipient); err != nil {
		return fmt.Errorf("sealed: invalid recipient: %w", err)
	}
	return nil
}

// ValidateIdentity checks that identity holds at least one age
// identity.
func ValidateIdentity(identity *secret.Buffer) error {
	_, err := parseIdentities(identity)
	return err
}

func parseIdentities(identity *secret.Buffer) ([]age.Identity, error) {
	if identity == nil {
		return nil, errors.New("sealed: no identity")
	}
	identities, err := age.ParseIdentities(bytes.NewReader(identity.Bytes()))
	if err != nil {
		return nil, fmt.Errorf("sealed: invalid identity: %w", err)
	}
	return identities, nil
}
