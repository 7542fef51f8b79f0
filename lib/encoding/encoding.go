// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package encoding

import (
	"encoding/json"
	"fmt"

	"github.com/bureau-foundation/paseto/lib/codec"
)

// Provider encodes claim values to payload bytes.
type Provider interface {
	Marshal(value any) ([]byte, error)
	Unmarshal(data []byte, value any) error
	// Name identifies the encoding in configuration and logs.
	Name() string
}

// JSON returns the JSON provider.
func JSON() Provider {
	return jsonProvider{}
}

// CBOR returns the Core Deterministic CBOR provider.
func CBOR() Provider {
	return cborProvider{}
}

// ByName returns the provider for "json" or "cbor".
func ByName(name string) (Provider, error) {
	switch name {
	case "json", "":
		return JSON(), nil
	case "cbor":
		return CBOR(), nil
	default:
		return nil, fmt.Errorf("encoding: unknown payload encoding %q (want json or cbor)", name)
	}
}

type jsonProvider struct{}

func (jsonProvider) Name() string { return "json" }

func (jsonProvider) Marshal(value any) ([]byte, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("encoding: json: %w", err)
	}
	return data, nil
}

func (jsonProvider) Unmarshal(data []byte, value any) error {
	if err := json.Unmarshal(data, value); err != nil {
		return fmt.Errorf("encoding: json: %w", err)
	}
	return nil
}

type cborProvider struct{}

func (cborProvider) Name() string { return "cbor" }

func (cborProvider) Marshal(value any) ([]byte, error) {
	data, err := codec.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("encoding: cbor: %w", err)
	}
	return data, nil
}

func (cborProvider) Unmarshal(data []byte, value any) error {
	if err := codec.Unmarshal(data, value); err != nil {
		return fmt.Errorf("encoding: cbor: %w", err)
	}
	return nil
}
