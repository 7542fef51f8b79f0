// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pae

import "encoding/binary"

// lengthSize is the width of every length prefix.
const lengthSize = 8

// Encode returns the pre-authentication encoding of pieces. Encode is
// pure and total: a nil piece encodes exactly like an empty one.
func Encode(pieces ...[]byte) []byte {
	size := lengthSize
	for _, piece := range pieces {
		size += lengthSize + len(piece)
	}

	output := make([]byte, 0, size)
	output = appendLE64(output, len(pieces))
	for _, piece := range pieces {
		output = appendLE64(output, len(piece))
		output = append(output, piece...)
	}
	return output
}

// appendLE64 appends n as a little-endian uint64 with the top bit
// cleared.
func appendLE64(output []byte, n int) []byte {
	value := uint64(n) &^ (1 << 63)
	return binary.LittleEndian.AppendUint64(output, value)
}
