// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package keyring

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/bureau-foundation/paseto/lib/cryptoprovider"
	"github.com/bureau-foundation/paseto/lib/keyprovider"
	"github.com/bureau-foundation/paseto/lib/sealed"
	"github.com/bureau-foundation/paseto/lib/secret"
	"github.com/bureau-foundation/paseto/lib/wire"
)

var (
	// ErrIdentityRequired means the keyring has sealed secrets and no
	// age identity was supplied.
	ErrIdentityRequired = errors.New("keyring: sealed key requires an age identity")

	// ErrInvalidManifest means a manifest entry is inconsistent.
	ErrInvalidManifest = errors.New("keyring: invalid manifest")

	// ErrClosed is returned by lookups after Close.
	ErrClosed = errors.New("keyring: closed")
)

// Options configures Open.
type Options struct {
	// Identity opens sealed secret files. It is borrowed; the caller
	// closes it.
	Identity *secret.Buffer

	Logger *slog.Logger
}

// Keyring serves keys loaded from a keyring directory.
type Keyring struct {
	mu     sync.RWMutex
	dir    string
	keys   map[string]*loadedKey
	order  []string
	closed bool
}

type loadedKey struct {
	entry   Entry
	version wire.Version
	purpose wire.Purpose
	secret  *secret.Buffer
	public  []byte
}

var (
	_ keyprovider.Symmetric = (*Keyring)(nil)
	_ keyprovider.Signing   = (*Keyring)(nil)
	_ keyprovider.Verifying = (*Keyring)(nil)
)

// Open loads the keyring in dir. The caller must Close it.
func Open(dir string, options Options) (*Keyring, error) {
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	manifest, err := LoadManifest(dir)
	if err != nil {
		return nil, err
	}

	keyring := &Keyring{dir: dir, keys: make(map[string]*loadedKey, len(manifest.Keys))}
	for _, entry := range manifest.Keys {
		if _, exists := keyring.keys[entry.ID]; exists {
			keyring.Close()
			return nil, fmt.Errorf("%w: duplicate key id %q", ErrInvalidManifest, entry.ID)
		}
		key, err := loadKey(dir, entry, options.Identity)
		if err != nil {
			keyring.Close()
			return nil, err
		}
		keyring.keys[entry.ID] = key
		keyring.order = append(keyring.order, entry.ID)
		logger.Debug("loaded key", "id", entry.ID, "version", entry.Version, "purpose", entry.Purpose, "sealed", entry.Sealed)
	}
	return keyring, nil
}

func loadKey(dir string, entry Entry, identity *secret.Buffer) (*loadedKey, error) {
	version, err := wire.ParseVersion(entry.Version)
	if err != nil {
		return nil, fmt.Errorf("%w: key %q: %w", ErrInvalidManifest, entry.ID, err)
	}
	purpose, err := wire.ParsePurpose(entry.Purpose)
	if err != nil {
		return nil, fmt.Errorf("%w: key %q: %w", ErrInvalidManifest, entry.ID, err)
	}
	switch {
	case purpose == wire.Local && entry.Secret == "":
		return nil, fmt.Errorf("%w: local key %q has no secret file", ErrInvalidManifest, entry.ID)
	case purpose == wire.Local && entry.Public != "":
		return nil, fmt.Errorf("%w: local key %q has a public file", ErrInvalidManifest, entry.ID)
	case entry.Secret == "" && entry.Public == "":
		return nil, fmt.Errorf("%w: key %q has no key files", ErrInvalidManifest, entry.ID)
	case entry.Sealed && entry.Secret == "":
		return nil, fmt.Errorf("%w: key %q is sealed but has no secret file", ErrInvalidManifest, entry.ID)
	}

	key := &loadedKey{entry: entry, version: version, purpose: purpose}
	if entry.Secret != "" {
		key.secret, err = readSecret(resolve(dir, entry.Secret), entry.Sealed, identity)
		if err != nil {
			return nil, fmt.Errorf("keyring: key %q: %w", entry.ID, err)
		}
	}
	if entry.Public != "" {
		key.public, err = readPublic(resolve(dir, entry.Public))
		if err != nil {
			key.close()
			return nil, fmt.Errorf("keyring: key %q: %w", entry.ID, err)
		}
	}
	if err := key.checkSizes(); err != nil {
		key.close()
		return nil, err
	}
	return key, nil
}

func resolve(dir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

func readSecret(path string, isSealed bool, identity *secret.Buffer) (*secret.Buffer, error) {
	if !isSealed {
		return secret.ReadKeyFile(path)
	}
	if identity == nil {
		return nil, ErrIdentityRequired
	}
	ciphertext, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !sealed.IsSealed(ciphertext) {
		return nil, fmt.Errorf("%s is marked sealed but is not age-armored", path)
	}
	return sealed.Open(ciphertext, identity)
}

func readPublic(path string) ([]byte, error) {
	text, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	key, err := base64.RawURLEncoding.Strict().DecodeString(string(bytes.TrimSpace(text)))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	if len(key) == 0 {
		return nil, fmt.Errorf("%s is empty", path)
	}
	return key, nil
}

// checkSizes rejects keys of the wrong size for their version and
// purpose. RSA keys are only checked for presence; the provider
// validates their encoding.
func (k *loadedKey) checkSizes() error {
	check := func(name string, length, want int) error {
		if want > 0 && length != want {
			return fmt.Errorf("keyring: key %q: %s key is %d bytes, want %d", k.entry.ID, name, length, want)
		}
		return nil
	}
	secretSize, publicSize := 0, 0
	switch {
	case k.purpose == wire.Local:
		secretSize = cryptoprovider.V2SymmetricKeySize
		if k.version == wire.V1 {
			secretSize = cryptoprovider.V1SymmetricKeySize
		}
	case k.version == wire.V2:
		secretSize = cryptoprovider.V2Ed25519SecretKeySize
		publicSize = cryptoprovider.V2Ed25519PublicKeySize
	}
	if k.secret != nil {
		if err := check("secret", k.secret.Len(), secretSize); err != nil {
			return err
		}
	}
	if k.public != nil {
		if err := check("public", len(k.public), publicSize); err != nil {
			return err
		}
	}
	return nil
}

func (k *loadedKey) close() error {
	if k.secret != nil {
		return k.secret.Close()
	}
	return nil
}

// Dir returns the keyring directory.
func (k *Keyring) Dir() string {
	return k.dir
}

// Entries returns the manifest entries in manifest order.
func (k *Keyring) Entries() []Entry {
	k.mu.RLock()
	defer k.mu.RUnlock()
	entries := make([]Entry, 0, len(k.order))
	for _, id := range k.order {
		entries = append(entries, k.keys[id].entry)
	}
	return entries
}

// Entry returns the manifest entry for id.
func (k *Keyring) Entry(id string) (Entry, bool) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	key, ok := k.keys[id]
	if !ok {
		return Entry{}, false
	}
	return key.entry, true
}

// SymmetricKey implements keyprovider.Symmetric. It serves keys of
// any version; engines should be given a [Keyring.ForVersion] view.
func (k *Keyring) SymmetricKey(keyID string) ([]byte, error) {
	return k.lookup(keyID, anyVersion, wire.Local, secretHalf)
}

// SecretKey implements keyprovider.Signing for keys of any version.
func (k *Keyring) SecretKey(keyID string) ([]byte, error) {
	return k.lookup(keyID, anyVersion, wire.Public, secretHalf)
}

// PublicKey implements keyprovider.Verifying for keys of any version.
func (k *Keyring) PublicKey(keyID string) ([]byte, error) {
	return k.lookup(keyID, anyVersion, wire.Public, publicHalf)
}

// ForVersion returns a view that serves only keys whose manifest
// version is version. A key never crosses versions, so a token header
// naming v2 cannot pull v1 key material into the v2 suite.
func (k *Keyring) ForVersion(version wire.Version) *View {
	return &View{keyring: k, version: version}
}

// View is a version-restricted key provider over a Keyring. It shares
// the keyring's keys and lifetime.
type View struct {
	keyring *Keyring
	version wire.Version
}

var (
	_ keyprovider.Symmetric = (*View)(nil)
	_ keyprovider.Signing   = (*View)(nil)
	_ keyprovider.Verifying = (*View)(nil)
)

// Version returns the version the view serves.
func (v *View) Version() wire.Version {
	return v.version
}

// SymmetricKey implements keyprovider.Symmetric.
func (v *View) SymmetricKey(keyID string) ([]byte, error) {
	return v.keyring.lookup(keyID, v.version, wire.Local, secretHalf)
}

// SecretKey implements keyprovider.Signing.
func (v *View) SecretKey(keyID string) ([]byte, error) {
	return v.keyring.lookup(keyID, v.version, wire.Public, secretHalf)
}

// PublicKey implements keyprovider.Verifying.
func (v *View) PublicKey(keyID string) ([]byte, error) {
	return v.keyring.lookup(keyID, v.version, wire.Public, publicHalf)
}

// anyVersion disables the version match in lookup.
const anyVersion wire.Version = 0

func secretHalf(key *loadedKey) []byte {
	if key.secret == nil {
		return nil
	}
	return key.secret.Bytes()
}

func publicHalf(key *loadedKey) []byte {
	return key.public
}

func (k *Keyring) lookup(keyID string, version wire.Version, purpose wire.Purpose, material func(*loadedKey) []byte) ([]byte, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	if k.closed {
		return nil, ErrClosed
	}
	key, ok := k.keys[keyID]
	if !ok || key.purpose != purpose {
		return nil, fmt.Errorf("%w: no %s key %q in %s", keyprovider.ErrKeyNotFound, purpose, keyID, k.dir)
	}
	if version != anyVersion && key.version != version {
		return nil, fmt.Errorf("%w: key %q is %s.%s, not %s.%s", keyprovider.ErrKeyNotFound, keyID, key.version, purpose, version, purpose)
	}
	value := material(key)
	if value == nil {
		return nil, fmt.Errorf("%w: key %q has no such half", keyprovider.ErrKeyNotFound, keyID)
	}
	return value, nil
}

// Close zeroes every secret. Lookups fail afterwards.
func (k *Keyring) Close() error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.closed {
		return nil
	}
	k.closed = true
	var errs []error
	for _, id := range k.order {
		if err := k.keys[id].close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
