// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package bencode implements the Bencode serialization format used by
// BitTorrent metainfo files and tracker responses.
//
// Bencode has four kinds of value: integers, byte strings, lists, and
// dictionaries. This package models them as a single immutable [Value]
// type whose [Kind] reports which variant it holds. Typed accessors
// ([Value.Int], [Value.Str], [Value.List], [Value.Dict]) fail with
// [ErrTypeMismatch] when the variant does not match; there is no
// implicit coercion.
//
// Decoding is strict. [Decode] requires the entire input to be exactly
// one well-formed value and reports the first violation with its byte
// offset:
//
//	value, err := bencode.Decode(data)
//	if errors.Is(err, bencode.ErrTruncatedInput) {
//	    // declared length or nesting ran past the end of data
//	}
//
// Encoding is canonical. Dictionaries hold their entries sorted by raw
// key bytes from the moment they are built, so [Encode] always emits
// keys in ascending order and the same logical value always produces
// identical bytes:
//
//	data := bencode.Encode(value)
//
// For any canonical input b that decodes successfully,
// Encode(Decode(b)) reproduces b byte for byte. This is the property
// BitTorrent info hashes depend on.
//
// [Value.String] and [Value.MarshalJSON] are display projections for
// inspection. Neither round-trips.
package bencode
