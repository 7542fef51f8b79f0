// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package keyprovider

import (
	"errors"
	"fmt"
	"sync"
)

// ErrKeyNotFound is returned when a provider has no key for an ID.
var ErrKeyNotFound = errors.New("keyprovider: key not found")

// Symmetric supplies keys for local tokens.
type Symmetric interface {
	SymmetricKey(keyID string) ([]byte, error)
}

// Signing supplies secret keys for building public tokens.
type Signing interface {
	SecretKey(keyID string) ([]byte, error)
}

// Verifying supplies public keys for verifying public tokens.
type Verifying interface {
	PublicKey(keyID string) ([]byte, error)
}

// Static is a map-backed provider implementing all three interfaces.
// The zero value is empty and ready to use. Static copies keys on Add
// and holds them in ordinary heap memory.
type Static struct {
	mu        sync.RWMutex
	symmetric map[string][]byte
	secret    map[string][]byte
	public    map[string][]byte
}

var (
	_ Symmetric = (*Static)(nil)
	_ Signing   = (*Static)(nil)
	_ Verifying = (*Static)(nil)
)

// AddSymmetric registers a local-token key under keyID.
func (s *Static) AddSymmetric(keyID string, key []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.symmetric == nil {
		s.symmetric = make(map[string][]byte)
	}
	s.symmetric[keyID] = append([]byte(nil), key...)
}

// AddKeyPair registers a public-token key pair under keyID. Either key
// may be nil for a provider that only signs or only verifies.
func (s *Static) AddKeyPair(keyID string, secretKey, publicKey []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if secretKey != nil {
		if s.secret == nil {
			s.secret = make(map[string][]byte)
		}
		s.secret[keyID] = append([]byte(nil), secretKey...)
	}
	if publicKey != nil {
		if s.public == nil {
			s.public = make(map[string][]byte)
		}
		s.public[keyID] = append([]byte(nil), publicKey...)
	}
}

// SymmetricKey implements [Symmetric].
func (s *Static) SymmetricKey(keyID string) ([]byte, error) {
	return s.lookup("symmetric", keyID)
}

// SecretKey implements [Signing].
func (s *Static) SecretKey(keyID string) ([]byte, error) {
	return s.lookup("secret", keyID)
}

// PublicKey implements [Verifying].
func (s *Static) PublicKey(keyID string) ([]byte, error) {
	return s.lookup("public", keyID)
}

func (s *Static) lookup(kind, keyID string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var keys map[string][]byte
	switch kind {
	case "symmetric":
		keys = s.symmetric
	case "secret":
		keys = s.secret
	case "public":
		keys = s.public
	}
	key, ok := keys[keyID]
	if !ok {
		return nil, fmt.Errorf("%w: no %s key %q", ErrKeyNotFound, kind, keyID)
	}
	return key, nil
}
