// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package keyring

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ManifestName is the manifest file inside a keyring directory.
const ManifestName = "keyring.yaml"

// Manifest lists a keyring's keys.
type Manifest struct {
	Keys []Entry `yaml:"keys"`
}

// Entry describes one key. Secret and Public are file paths.
type Entry struct {
	ID      string `yaml:"id"                json:"id"`
	Version string `yaml:"version"           json:"version"`
	Purpose string `yaml:"purpose"           json:"purpose"`
	Secret  string `yaml:"secret,omitempty"  json:"secret,omitempty"`
	Public  string `yaml:"public,omitempty"  json:"public,omitempty"`
	Sealed  bool   `yaml:"sealed,omitempty"  json:"sealed"`
}

// LoadManifest reads the manifest in dir. A missing manifest is an
// empty keyring.
func LoadManifest(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestName))
	if errors.Is(err, fs.ErrNotExist) {
		return &Manifest{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("keyring: reading manifest: %w", err)
	}

	var manifest Manifest
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&manifest); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("keyring: parsing %s: %w", ManifestName, err)
	}
	return &manifest, nil
}

// Save writes the manifest to dir atomically.
func (m *Manifest) Save(dir string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("keyring: encoding manifest: %w", err)
	}
	return writeAtomic(filepath.Join(dir, ManifestName), data, 0o644)
}

// find returns the entry with id, or nil.
func (m *Manifest) find(id string) *Entry {
	for index := range m.Keys {
		if m.Keys[index].ID == id {
			return &m.Keys[index]
		}
	}
	return nil
}

// writeAtomic writes data to a temporary file beside path, syncs it,
// and renames it into place.
func writeAtomic(path string, data []byte, perm os.FileMode) error {
	temporaryPath := path + ".tmp"
	file, err := os.OpenFile(temporaryPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf("keyring: creating %s: %w", temporaryPath, err)
	}
	if _, err := file.Write(data); err != nil {
		file.Close()
		os.Remove(temporaryPath)
		return fmt.Errorf("keyring: writing %s: %w", temporaryPath, err)
	}
	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(temporaryPath)
		return fmt.Errorf("keyring: syncing %s: %w", temporaryPath, err)
	}
	if err := file.Close(); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("keyring: closing %s: %w", temporaryPath, err)
	}
	if err := os.Rename(temporaryPath, path); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("keyring: renaming into %s: %w", path, err)
	}
	return nil
}
