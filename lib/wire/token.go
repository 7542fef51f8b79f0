// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// Version is a PASETO format version. The set is closed: each version
// fixes one cipher suite.
type Version int

const (
	// V1 uses AES-256-CTR + HMAC-SHA384 (local) and RSASSA-PSS (public).
	V1 Version = 1
	// V2 uses XChaCha20-Poly1305 (local) and Ed25519 (public).
	V2 Version = 2
)

// String returns the header literal, "v1" or "v2".
func (v Version) String() string {
	switch v {
	case V1:
		return "v1"
	case V2:
		return "v2"
	default:
		return fmt.Sprintf("Version(%d)", int(v))
	}
}

// Valid reports whether v is a supported version.
func (v Version) Valid() bool {
	return v == V1 || v == V2
}

// ParseVersion maps a header literal to a Version.
func ParseVersion(literal string) (Version, error) {
	switch literal {
	case "v1":
		return V1, nil
	case "v2":
		return V2, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownVersion, literal)
	}
}

// Purpose is a PASETO token purpose.
type Purpose int

const (
	// Local tokens are encrypted and authenticated with a symmetric key.
	Local Purpose = 1
	// Public tokens are signed in cleartext with an asymmetric key.
	Public Purpose = 2
)

// String returns the header literal, "local" or "public".
func (p Purpose) String() string {
	switch p {
	case Local:
		return "local"
	case Public:
		return "public"
	default:
		return fmt.Sprintf("Purpose(%d)", int(p))
	}
}

// Valid reports whether p is a supported purpose.
func (p Purpose) Valid() bool {
	return p == Local || p == Public
}

// ParsePurpose maps a header literal to a Purpose.
func ParsePurpose(literal string) (Purpose, error) {
	switch literal {
	case "local":
		return Local, nil
	case "public":
		return Public, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownPurpose, literal)
	}
}

// Errors returned by Parse and ExtractFooter.
var (
	ErrMalformedToken = errors.New("wire: malformed token")
	ErrUnknownVersion = errors.New("wire: unknown token version")
	ErrUnknownPurpose = errors.New("wire: unknown token purpose")
)

// Token is the logical content of a token string. Payload is
// ciphertext with nonce and tag for local tokens, and message with
// signature for public tokens. A nil or empty Footer means no footer.
type Token struct {
	Version Version
	Purpose Purpose
	Payload []byte
	Footer  []byte
}

// Header returns the "v{N}.{purpose}." prefix. The same bytes are the
// first PAE piece of every construction.
func Header(version Version, purpose Purpose) string {
	return version.String() + "." + purpose.String() + "."
}

// Serialize renders token in canonical wire form. An empty footer is
// omitted entirely. Serialize does not validate Version or Purpose;
// callers construct tokens from the closed constants.
func Serialize(token Token) string {
	var builder strings.Builder
	encodedPayloadLength := base64.RawURLEncoding.EncodedLen(len(token.Payload))
	builder.Grow(len(Header(token.Version, token.Purpose)) + encodedPayloadLength + 1 +
		base64.RawURLEncoding.EncodedLen(len(token.Footer)))

	builder.WriteString(Header(token.Version, token.Purpose))
	builder.WriteString(base64.RawURLEncoding.EncodeToString(token.Payload))
	if len(token.Footer) > 0 {
		builder.WriteByte('.')
		builder.WriteString(base64.RawURLEncoding.EncodeToString(token.Footer))
	}
	return builder.String()
}

// Parse splits and decodes a token string. The returned Footer is nil
// when the token carries no footer.
func Parse(encoded string) (Token, error) {
	fields := strings.Split(encoded, ".")
	if len(fields) != 3 && len(fields) != 4 {
		return Token{}, fmt.Errorf("%w: %d dot-separated fields, want 3 or 4", ErrMalformedToken, len(fields))
	}

	version, err := ParseVersion(fields[0])
	if err != nil {
		return Token{}, err
	}
	purpose, err := ParsePurpose(fields[1])
	if err != nil {
		return Token{}, err
	}

	payload, err := decodeField(fields[2])
	if err != nil {
		return Token{}, fmt.Errorf("%w: payload: %v", ErrMalformedToken, err)
	}

	var footer []byte
	if len(fields) == 4 {
		footer, err = decodeField(fields[3])
		if err != nil {
			return Token{}, fmt.Errorf("%w: footer: %v", ErrMalformedToken, err)
		}
		if len(footer) == 0 {
			footer = nil
		}
	}

	return Token{
		Version: version,
		Purpose: purpose,
		Payload: payload,
		Footer:  footer,
	}, nil
}

// ExtractFooter returns the footer of a token without any
// cryptographic check. Use it only to choose a key (for example by a
// key identifier); the footer is authenticated later by Decrypt or
// Verify.
func ExtractFooter(encoded string) ([]byte, error) {
	token, err := Parse(encoded)
	if err != nil {
		return nil, err
	}
	return token.Footer, nil
}

// decodeField decodes one base64url field. RawURLEncoding already
// rejects '=' and the standard alphabet; Strict additionally rejects
// non-canonical trailing bits so every token has one spelling. The
// decoder silently skips CR and LF, so those are rejected up front.
func decodeField(field string) ([]byte, error) {
	if strings.ContainsAny(field, "\r\n") {
		return nil, errors.New("line break in base64url field")
	}
	return base64.RawURLEncoding.Strict().DecodeString(field)
}
