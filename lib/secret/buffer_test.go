// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"bytes"
	"encoding/base64"
	"testing"
)

func TestNew(t *testing.T) {
	buffer, err := New(32)
	if err != nil {
		t.Fatalf("New(32): %v", err)
	}
	defer buffer.Close()

	if buffer.Len() != 32 || len(buffer.Bytes()) != 32 {
		t.Errorf("Len = %d, len(Bytes) = %d, want 32", buffer.Len(), len(buffer.Bytes()))
	}
	if !bytes.Equal(buffer.Bytes(), make([]byte, 32)) {
		t.Error("new buffer is not zero-filled")
	}

	for _, size := range []int{0, -1} {
		if _, err := New(size); err == nil {
			t.Errorf("New(%d) succeeded", size)
		}
	}
}

func TestNewFromBytesZeroesSource(t *testing.T) {
	source := []byte("0123456789abcdef0123456789abcdef")
	want := bytes.Clone(source)

	buffer, err := NewFromBytes(source)
	if err != nil {
		t.Fatalf("NewFromBytes: %v", err)
	}
	defer buffer.Close()

	if !buffer.Equal(want) {
		t.Errorf("buffer = %q, want %q", buffer.Bytes(), want)
	}
	if !bytes.Equal(source, make([]byte, len(source))) {
		t.Error("source was not zeroed")
	}
	if _, err := NewFromBytes(nil); err == nil {
		t.Error("NewFromBytes(nil) succeeded")
	}
}

func TestDecodeBase64(t *testing.T) {
	key := bytes.Repeat([]byte{0xA5}, 32)
	text := []byte(base64.RawURLEncoding.EncodeToString(key))

	buffer, err := DecodeBase64(text)
	if err != nil {
		t.Fatalf("DecodeBase64: %v", err)
	}
	defer buffer.Close()
	if buffer.Len() != 32 || !buffer.Equal(key) {
		t.Errorf("decoded %x, want %x", buffer.Bytes(), key)
	}

	for _, bad := range []string{"", "AAAA=", "a+b/", "A"} {
		if buffer, err := DecodeBase64([]byte(bad)); err == nil {
			buffer.Close()
			t.Errorf("DecodeBase64(%q) succeeded", bad)
		}
	}
}

func TestEqual(t *testing.T) {
	buffer, err := NewFromBytes([]byte("key"))
	if err != nil {
		t.Fatalf("NewFromBytes: %v", err)
	}
	defer buffer.Close()
	if !buffer.Equal([]byte("key")) || buffer.Equal([]byte("kez")) || buffer.Equal([]byte("key2")) {
		t.Error("Equal gave a wrong answer")
	}
}

func TestClose(t *testing.T) {
	buffer, err := NewFromBytes([]byte("sensitive"))
	if err != nil {
		t.Fatalf("NewFromBytes: %v", err)
	}
	if err := buffer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if buffer.data != nil {
		t.Error("data retained after Close")
	}
	if err := buffer.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Error("Bytes after Close did not panic")
		}
	}()
	buffer.Bytes()
}
