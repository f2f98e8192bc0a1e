// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec bridges Bencode values and CBOR.
//
// Bencode and CBOR share a data model closely enough that the mapping
// is almost one to one: integers, strings, arrays, and maps. The
// differences are in the edges. CBOR distinguishes text strings from
// byte strings, has floats, booleans, null, and tags, and allows
// integers beyond int64. Bencode has none of these.
//
// [FromBencode] always succeeds for a valid value. It uses Core
// Deterministic Encoding (RFC 8949 §4.2): sorted map keys, smallest
// integer encoding, no indefinite-length items. Same Bencode value,
// same CBOR bytes.
//
//	data, err := codec.FromBencode(value)
//
// [ToBencode] rejects CBOR items with no Bencode counterpart with
// [ErrUnsupported], naming the path to the first offending item:
//
//	value, err := codec.ToBencode(data)
//
// [Diagnose] renders CBOR in diagnostic notation for inspection.
package codec
