// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// ReadKeyFile loads a key file holding base64url text, with optional
// surrounding whitespace, into a buffer.
func ReadKeyFile(path string) (*Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("secret: %w", err)
	}
	defer Zero(data)

	buffer, err := DecodeBase64(bytes.TrimSpace(data))
	if err != nil {
		return nil, fmt.Errorf("%w (in %s)", err, path)
	}
	return buffer, nil
}

// ReadFromPath reads a text secret, such as an age identity file, from
// path or from stdin when path is "-". Surrounding whitespace is
// trimmed; an empty secret is an error.
func ReadFromPath(path string) (*Buffer, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("secret: reading %s: %w", path, err)
	}
	defer Zero(data)

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("secret: %s is empty", path)
	}
	return NewFromBytes(trimmed)
}
