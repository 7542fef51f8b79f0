// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package keyring

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"github.com/bureau-foundation/paseto/lib/cryptoprovider"
	"github.com/bureau-foundation/paseto/lib/cryptoprovider/gocrypto"
	"github.com/bureau-foundation/paseto/lib/sealed"
	"github.com/bureau-foundation/paseto/lib/wire"
)

// ErrDuplicateKey means Generate was asked for an ID already present.
var ErrDuplicateKey = errors.New("keyring: key id already exists")

// validID keeps key IDs usable as file names.
var validID = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,127}$`)

// GenerateRequest describes a key to create.
type GenerateRequest struct {
	Version wire.Version
	Purpose wire.Purpose

	// ID defaults to Fingerprint of the new key.
	ID string

	// SealTo lists age recipients. When non-empty the secret file is
	// sealed to them.
	SealTo []string

	// V1 and V2 default to the gocrypto providers.
	V1 cryptoprovider.V1
	V2 cryptoprovider.V2
}

// Generate creates a key in dir, writes its files, and records it in
// the manifest. dir is created if needed.
func Generate(dir string, request GenerateRequest) (Entry, error) {
	if !request.Version.Valid() {
		return Entry{}, fmt.Errorf("keyring: %w: %s", wire.ErrUnknownVersion, request.Version)
	}
	if !request.Purpose.Valid() {
		return Entry{}, fmt.Errorf("keyring: %w: %s", wire.ErrUnknownPurpose, request.Purpose)
	}
	for _, recipient := range request.SealTo {
		if err := sealed.ParseRecipient(recipient); err != nil {
			return Entry{}, err
		}
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return Entry{}, fmt.Errorf("keyring: creating %s: %w", dir, err)
	}
	manifest, err := LoadManifest(dir)
	if err != nil {
		return Entry{}, err
	}

	secretKey, publicKey, err := generateMaterial(request)
	if err != nil {
		return Entry{}, err
	}
	defer clear(secretKey)

	id := request.ID
	if id == "" {
		material := publicKey
		if request.Purpose == wire.Local {
			material = secretKey
		}
		id = Fingerprint(request.Version, request.Purpose, material)
	}
	if !validID.MatchString(id) {
		return Entry{}, fmt.Errorf("keyring: invalid key id %q", id)
	}
	if manifest.find(id) != nil {
		return Entry{}, fmt.Errorf("%w: %q", ErrDuplicateKey, id)
	}

	entry := Entry{
		ID:      id,
		Version: request.Version.String(),
		Purpose: request.Purpose.String(),
		Secret:  id + ".key",
		Sealed:  len(request.SealTo) > 0,
	}
	var secretFile []byte
	if entry.Sealed {
		secretFile, err = sealed.Seal(secretKey, request.SealTo)
		if err != nil {
			return Entry{}, err
		}
	} else {
		secretFile = encodeKeyText(secretKey)
		defer clear(secretFile)
	}
	if err := writeNew(filepath.Join(dir, entry.Secret), secretFile, 0o600); err != nil {
		return Entry{}, err
	}
	if publicKey != nil {
		entry.Public = id + ".pub"
		if err := writeNew(filepath.Join(dir, entry.Public), encodeKeyText(publicKey), 0o644); err != nil {
			return Entry{}, err
		}
	}

	manifest.Keys = append(manifest.Keys, entry)
	if err := manifest.Save(dir); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

func generateMaterial(request GenerateRequest) (secretKey, publicKey []byte, err error) {
	v1, v2 := request.V1, request.V2
	if v1 == nil {
		v1 = gocrypto.NewV1()
	}
	if v2 == nil {
		v2 = gocrypto.NewV2()
	}

	var pair cryptoprovider.KeyPair
	switch {
	case request.Purpose == wire.Local && request.Version == wire.V1:
		secretKey, err = v1.RandomBytes(cryptoprovider.V1SymmetricKeySize)
	case request.Purpose == wire.Local:
		secretKey, err = v2.RandomBytes(cryptoprovider.V2SymmetricKeySize)
	case request.Version == wire.V1:
		pair, err = v1.RsaGenerate()
		secretKey, publicKey = pair.SecretKey, pair.PublicKey
	default:
		pair, err = v2.Ed25519Generate()
		secretKey, publicKey = pair.SecretKey, pair.PublicKey
	}
	if err != nil {
		return nil, nil, fmt.Errorf("keyring: generating %s.%s key: %w", request.Version, request.Purpose, err)
	}
	return secretKey, publicKey, nil
}

func encodeKeyText(key []byte) []byte {
	text := make([]byte, base64.RawURLEncoding.EncodedLen(len(key))+1)
	base64.RawURLEncoding.Encode(text, key)
	text[len(text)-1] = '\n'
	return text
}

// writeNew writes a key file that must not already exist.
func writeNew(path string, data []byte, perm os.FileMode) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("keyring: %s already exists", path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("keyring: %w", err)
	}
	return writeAtomic(path, data, perm)
}
