// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// encMode is the CBOR encoder configured with Core Deterministic
// Encoding (RFC 8949 §4.2). Same logical data always produces
// identical bytes.
var encMode cbor.EncMode

// decMode is the CBOR decoder. Unknown fields are ignored so that
// tokens carrying extra claims still decode into narrower structs.
var decMode cbor.DecMode

func init() {
	var err error

	encOptions := cbor.CoreDetEncOptions()
	encOptions.Time = cbor.TimeUnix
	encOptions.TimeTag = cbor.EncTagNone
	encMode, err = encOptions.EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		// Custom claims decoded into map[string]any must come out
		// with string keys so they can be re-encoded as JSON (for
		// example by `paseto decrypt`). The CBOR default,
		// map[interface{}]interface{}, cannot be.
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
		// Token payloads never need more nesting than this; a
		// maliciously deep payload fails fast instead.
		MaxNestedLevels: 16,
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

// Marshal encodes v to CBOR using Core Deterministic Encoding.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes CBOR data into v.
func Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}

// Valid reports whether data is exactly one well-formed CBOR item.
func Valid(data []byte) error {
	return decMode.Wellformed(data)
}

// Diagnose returns the CBOR diagnostic notation (RFC 8949 §8) for the
// entire contents of data. `paseto inspect` uses it to show CBOR
// payloads of public tokens.
func Diagnose(data []byte) (string, error) {
	return cbor.Diagnose(data)
}
