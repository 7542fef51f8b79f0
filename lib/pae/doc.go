// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package pae implements PASETO Pre-Authentication Encoding.
//
// PAE turns an ordered list of byte strings into a single byte string
// that is injective over the list: no two distinct lists encode to the
// same bytes. Every token construction authenticates
// PAE(header, protected, footer) rather than a plain concatenation, so
// moving bytes between the header, the protected content and the
// footer always changes the authenticated message.
//
// # Encoding
//
//	LE64(len(pieces)) || LE64(len(pieces[0])) || pieces[0] || ...
//
// LE64 is an unsigned 64-bit little-endian integer with the most
// significant bit cleared, as required by the PASETO format for
// interoperability with languages lacking unsigned integers.
//
// This package has no dependencies beyond the standard library.
package pae
