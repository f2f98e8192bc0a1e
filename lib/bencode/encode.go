// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bencode

import (
	"io"
	"strconv"
)

// Encode returns the canonical encoding of v.
//
// Encode panics if v, or any value nested inside it, is the zero
// Value. Every Value produced by this package's constructors or by the
// decoder is valid.
func Encode(v Value) []byte {
	return Append(nil, v)
}

// Append appends the canonical encoding of v to dst and returns the
// extended slice.
func Append(dst []byte, v Value) []byte {
	switch v.kind {
	case KindInteger:
		dst = append(dst, 'i')
		dst = strconv.AppendInt(dst, v.integer, 10)
		return append(dst, 'e')

	case KindString:
		return appendString(dst, v.text)

	case KindList:
		dst = append(dst, 'l')
		for _, item := range v.items {
			dst = Append(dst, item)
		}
		return append(dst, 'e')

	case KindDict:
		// Entries are sorted and unique from construction (NewDict and
		// the decoder both guarantee it), so emitting them in storage
		// order is emitting them in ascending key order.
		dst = append(dst, 'd')
		for _, entry := range v.entries {
			dst = appendString(dst, entry.Key)
			dst = Append(dst, entry.Value)
		}
		return append(dst, 'e')

	default:
		panic("bencode: cannot encode " + v.kind.String() + " value")
	}
}

// appendString writes the length prefix in bytes, not runes.
func appendString(dst []byte, s string) []byte {
	dst = strconv.AppendInt(dst, int64(len(s)), 10)
	dst = append(dst, ':')
	return append(dst, s...)
}

// Encoder writes canonical encodings to an output stream.
type Encoder struct {
	writer io.Writer
	buffer []byte
}

// NewEncoder returns an encoder that writes to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{writer: w}
}

// Encode writes the canonical encoding of v. Successive calls produce a
// sequence of concatenated values, readable with [DecodeFirst].
func (e *Encoder) Encode(v Value) error {
	e.buffer = Append(e.buffer[:0], v)
	_, err := e.writer.Write(e.buffer)
	return err
}
