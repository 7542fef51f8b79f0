// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package keyring

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bureau-foundation/paseto/lib/cryptoprovider/gocrypto"
	"github.com/bureau-foundation/paseto/lib/keyprovider"
	"github.com/bureau-foundation/paseto/lib/paseto"
	"github.com/bureau-foundation/paseto/lib/sealed"
	"github.com/bureau-foundation/paseto/lib/wire"
)

func generate(t *testing.T, dir string, request GenerateRequest) Entry {
	t.Helper()
	entry, err := Generate(dir, request)
	if err != nil {
		t.Fatalf("Generate(%s.%s): %v", request.Version, request.Purpose, err)
	}
	return entry
}

func open(t *testing.T, dir string, options Options) *Keyring {
	t.Helper()
	keyring, err := Open(dir, options)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { keyring.Close() })
	return keyring
}

func writeManifest(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, ManifestName), []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestOpenEmpty(t *testing.T) {
	keyring := open(t, t.TempDir(), Options{})
	if len(keyring.Entries()) != 0 {
		t.Errorf("Entries = %v, want none", keyring.Entries())
	}
	if _, err := keyring.SymmetricKey(""); !errors.Is(err, keyprovider.ErrKeyNotFound) {
		t.Errorf("SymmetricKey = %v, want ErrKeyNotFound", err)
	}
}

func TestGenerateAndOpen(t *testing.T) {
	dir := t.TempDir()
	local := generate(t, dir, GenerateRequest{Version: wire.V2, Purpose: wire.Local})
	public := generate(t, dir, GenerateRequest{Version: wire.V2, Purpose: wire.Public, ID: "issuer-1"})
	legacy := generate(t, dir, GenerateRequest{Version: wire.V1, Purpose: wire.Local})

	if !strings.HasPrefix(local.ID, "v2-local-") || len(local.ID) != len("v2-local-")+16 {
		t.Errorf("local ID = %q, want a v2-local fingerprint", local.ID)
	}
	if public.ID != "issuer-1" || public.Public != "issuer-1.pub" {
		t.Errorf("public entry = %+v", public)
	}
	if local.Public != "" || local.Sealed {
		t.Errorf("local entry = %+v", local)
	}

	info, err := os.Stat(filepath.Join(dir, local.Secret))
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("secret file mode = %v, want 0600", info.Mode().Perm())
	}

	keyring := open(t, dir, Options{})
	entries := keyring.Entries()
	if len(entries) != 3 || entries[0].ID != local.ID || entries[2].ID != legacy.ID {
		t.Fatalf("Entries = %+v", entries)
	}

	symmetric, err := keyring.SymmetricKey(local.ID)
	if err != nil || len(symmetric) != 32 {
		t.Errorf("SymmetricKey = %d bytes, %v", len(symmetric), err)
	}
	if Fingerprint(wire.V2, wire.Local, symmetric) != local.ID {
		t.Error("local ID is not the fingerprint of its key")
	}
	secretKey, err := keyring.SecretKey("issuer-1")
	if err != nil || len(secretKey) != 64 {
		t.Errorf("SecretKey = %d bytes, %v", len(secretKey), err)
	}
	publicKey, err := keyring.PublicKey("issuer-1")
	if err != nil || len(publicKey) != 32 {
		t.Errorf("PublicKey = %d bytes, %v", len(publicKey), err)
	}
	derived, err := gocrypto.NewV2().Ed25519SecretKeyToPublicKey(secretKey)
	if err != nil || string(derived) != string(publicKey) {
		t.Error("stored public key does not match the secret key")
	}

	if _, err := keyring.SymmetricKey("issuer-1"); !errors.Is(err, keyprovider.ErrKeyNotFound) {
		t.Errorf("SymmetricKey(public key) = %v, want ErrKeyNotFound", err)
	}
	if _, err := keyring.PublicKey(local.ID); !errors.Is(err, keyprovider.ErrKeyNotFound) {
		t.Errorf("PublicKey(local key) = %v, want ErrKeyNotFound", err)
	}
}

func TestKeysWorkWithEngines(t *testing.T) {
	dir := t.TempDir()
	local := generate(t, dir, GenerateRequest{Version: wire.V1, Purpose: wire.Local})
	generate(t, dir, GenerateRequest{Version: wire.V2, Purpose: wire.Public, ID: "signer"})
	keyring := open(t, dir, Options{})

	localEngine, err := paseto.NewLocal(paseto.LocalConfig{Version: wire.V1, V1: gocrypto.NewV1()})
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}
	key, err := keyring.SymmetricKey(local.ID)
	if err != nil {
		t.Fatalf("SymmetricKey: %v", err)
	}
	token, err := localEngine.Encrypt(key, []byte("payload"), nil)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if _, err := localEngine.Decrypt(key, token); err != nil {
		t.Errorf("Decrypt: %v", err)
	}

	publicEngine, err := paseto.NewPublic(paseto.PublicConfig{Version: wire.V2, V2: gocrypto.NewV2()})
	if err != nil {
		t.Fatalf("NewPublic: %v", err)
	}
	secretKey, _ := keyring.SecretKey("signer")
	publicKey, _ := keyring.PublicKey("signer")
	signed, err := publicEngine.Sign(secretKey, []byte("payload"), nil)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if _, err := publicEngine.Verify(publicKey, signed); err != nil {
		t.Errorf("Verify: %v", err)
	}
}

func TestSealedKeys(t *testing.T) {
	identity, err := sealed.GenerateIdentity()
	if err != nil {
		t.Fatalf("GenerateIdentity: %v", err)
	}
	defer identity.Close()

	dir := t.TempDir()
	entry := generate(t, dir, GenerateRequest{Version: wire.V2, Purpose: wire.Local, ID: "sealed", SealTo: []string{identity.Recipient}})
	if !entry.Sealed {
		t.Fatal("entry not marked sealed")
	}
	data, err := os.ReadFile(filepath.Join(dir, entry.Secret))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !sealed.IsSealed(data) {
		t.Error("secret file is not age-armored")
	}

	if _, err := Open(dir, Options{}); !errors.Is(err, ErrIdentityRequired) {
		t.Errorf("Open without identity = %v, want ErrIdentityRequired", err)
	}

	keyring := open(t, dir, Options{Identity: identity.Secret})
	key, err := keyring.SymmetricKey("sealed")
	if err != nil || len(key) != 32 {
		t.Errorf("SymmetricKey = %d bytes, %v", len(key), err)
	}

	stranger, err := sealed.GenerateIdentity()
	if err != nil {
		t.Fatalf("GenerateIdentity: %v", err)
	}
	defer stranger.Close()
	if _, err := Open(dir, Options{Identity: stranger.Secret}); err == nil {
		t.Error("Open succeeded with the wrong identity")
	}
}

func TestGenerateErrors(t *testing.T) {
	dir := t.TempDir()
	generate(t, dir, GenerateRequest{Version: wire.V2, Purpose: wire.Local, ID: "k"})

	tests := []struct {
		name    string
		request GenerateRequest
	}{
		{"duplicate", GenerateRequest{Version: wire.V2, Purpose: wire.Local, ID: "k"}},
		{"path id", GenerateRequest{Version: wire.V2, Purpose: wire.Local, ID: "../escape"}},
		{"hidden id", GenerateRequest{Version: wire.V2, Purpose: wire.Local, ID: ".k"}},
		{"bad version", GenerateRequest{Version: 9, Purpose: wire.Local}},
		{"bad recipient", GenerateRequest{Version: wire.V2, Purpose: wire.Local, SealTo: []string{"age1nope"}}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := Generate(dir, test.request); err == nil {
				t.Error("Generate succeeded")
			}
		})
	}
	if _, err := Generate(dir, GenerateRequest{Version: wire.V2, Purpose: wire.Local, ID: "k"}); !errors.Is(err, ErrDuplicateKey) {
		t.Errorf("duplicate Generate = %v, want ErrDuplicateKey", err)
	}

	manifest, err := LoadManifest(dir)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if len(manifest.Keys) != 1 {
		t.Errorf("failed generations changed the manifest: %+v", manifest.Keys)
	}
}

func TestInvalidManifests(t *testing.T) {
	keyText := "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA\n" // 32 zero bytes
	shortText := "AAAA\n"

	tests := []struct {
		name     string
		manifest string
	}{
		{"unknown field", "keys:\n  - id: a\n    version: v2\n    purpose: local\n    secret: a.key\n    colour: red\n"},
		{"bad version", "keys:\n  - id: a\n    version: v3\n    purpose: local\n    secret: a.key\n"},
		{"bad purpose", "keys:\n  - id: a\n    version: v2\n    purpose: private\n    secret: a.key\n"},
		{"local without secret", "keys:\n  - id: a\n    version: v2\n    purpose: local\n"},
		{"public without files", "keys:\n  - id: a\n    version: v2\n    purpose: public\n"},
		{"duplicate id", "keys:\n  - id: a\n    version: v2\n    purpose: local\n    secret: a.key\n  - id: a\n    version: v2\n    purpose: local\n    secret: a.key\n"},
		{"short key", "keys:\n  - id: a\n    version: v2\n    purpose: local\n    secret: short.key\n"},
		{"missing file", "keys:\n  - id: a\n    version: v2\n    purpose: local\n    secret: gone.key\n"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			dir := t.TempDir()
			if err := os.WriteFile(filepath.Join(dir, "a.key"), []byte(keyText), 0o600); err != nil {
				t.Fatal(err)
			}
			if err := os.WriteFile(filepath.Join(dir, "short.key"), []byte(shortText), 0o600); err != nil {
				t.Fatal(err)
			}
			writeManifest(t, dir, test.manifest)
			if keyring, err := Open(dir, Options{}); err == nil {
				keyring.Close()
				t.Error("Open succeeded")
			}
		})
	}

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.key"), []byte(keyText), 0o600); err != nil {
		t.Fatal(err)
	}
	writeManifest(t, dir, "keys:\n  - id: a\n    version: v2\n    purpose: local\n    secret: a.key\n")
	keyring := open(t, dir, Options{})
	key, err := keyring.SymmetricKey("a")
	if err != nil || len(key) != 32 {
		t.Errorf("hand-written manifest: SymmetricKey = %d bytes, %v", len(key), err)
	}
}

func TestClose(t *testing.T) {
	dir := t.TempDir()
	entry := generate(t, dir, GenerateRequest{Version: wire.V2, Purpose: wire.Local})
	keyring, err := Open(dir, Options{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := keyring.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := keyring.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if _, err := keyring.SymmetricKey(entry.ID); !errors.Is(err, ErrClosed) {
		t.Errorf("SymmetricKey after Close = %v, want ErrClosed", err)
	}
}

func TestFingerprint(t *testing.T) {
	material := []byte("0123456789abcdef0123456789abcdef")
	first := Fingerprint(wire.V2, wire.Local, material)
	if first != Fingerprint(wire.V2, wire.Local, material) {
		t.Error("Fingerprint is not deterministic")
	}
	if first == Fingerprint(wire.V1, wire.Local, material) {
		t.Error("Fingerprint ignores the version")
	}
	if first == Fingerprint(wire.V2, wire.Local, append(material[:31:31], 'g')) {
		t.Error("Fingerprint ignores the material")
	}
	if strings.Contains(first, string(material)) {
		t.Error("Fingerprint contains the key")
	}
}

func TestForVersionSeparatesVersions(t *testing.T) {
	dir := t.TempDir()
	generate(t, dir, GenerateRequest{Version: wire.V1, Purpose: wire.Local, ID: "legacy"})
	generate(t, dir, GenerateRequest{Version: wire.V2, Purpose: wire.Local, ID: "current"})
	generate(t, dir, GenerateRequest{Version: wire.V2, Purpose: wire.Public, ID: "signer"})
	keyring := open(t, dir, Options{})

	v1 := keyring.ForVersion(wire.V1)
	v2 := keyring.ForVersion(wire.V2)
	if v2.Version() != wire.V2 {
		t.Errorf("Version() = %s, want v2", v2.Version())
	}

	if key, err := v1.SymmetricKey("legacy"); err != nil || len(key) != 32 {
		t.Errorf("v1 SymmetricKey(legacy) = %d bytes, %v", len(key), err)
	}
	if _, err := v2.SymmetricKey("legacy"); !errors.Is(err, keyprovider.ErrKeyNotFound) {
		t.Errorf("v2 SymmetricKey(legacy) = %v, want ErrKeyNotFound", err)
	}
	if _, err := v1.SymmetricKey("current"); !errors.Is(err, keyprovider.ErrKeyNotFound) {
		t.Errorf("v1 SymmetricKey(current) = %v, want ErrKeyNotFound", err)
	}
	if _, err := v2.SecretKey("signer"); err != nil {
		t.Errorf("v2 SecretKey(signer) = %v", err)
	}
	if _, err := v1.PublicKey("signer"); !errors.Is(err, keyprovider.ErrKeyNotFound) {
		t.Errorf("v1 PublicKey(signer) = %v, want ErrKeyNotFound", err)
	}
	if _, err := v1.SecretKey("signer"); !errors.Is(err, keyprovider.ErrKeyNotFound) {
		t.Errorf("v1 SecretKey(signer) = %v, want ErrKeyNotFound", err)
	}

	keyring.Close()
	if _, err := v2.SymmetricKey("current"); !errors.Is(err, ErrClosed) {
		t.Errorf("view lookup after Close = %v, want ErrClosed", err)
	}
}
