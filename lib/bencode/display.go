// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bencode

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

// String returns a compact, human-readable rendering of v: integers in
// decimal, byte strings as their raw contents, lists as [a, b] and
// dictionaries as {key: value}. The rendering is for display only; it
// is ambiguous (a string "3" and an integer 3 look the same) and is
// not meant to be parsed back.
func (v Value) String() string {
	var builder strings.Builder
	writeDisplay(&builder, v)
	return builder.String()
}

func writeDisplay(builder *strings.Builder, v Value) {
	switch v.kind {
	case KindInteger:
		builder.WriteString(strconv.FormatInt(v.integer, 10))
	case KindString:
		builder.WriteString(v.text)
	case KindList:
		builder.WriteByte('[')
		for index, item := range v.items {
			if index > 0 {
				builder.WriteString(", ")
			}
			writeDisplay(builder, item)
		}
		builder.WriteByte(']')
	case KindDict:
		builder.WriteByte('{')
		for index, entry := range v.entries {
			if index > 0 {
				builder.WriteString(", ")
			}
			builder.WriteString(entry.Key)
			builder.WriteString(": ")
			writeDisplay(builder, entry.Value)
		}
		builder.WriteByte('}')
	default:
		builder.WriteString("<invalid>")
	}
}

// MarshalJSON renders v as JSON: integers as numbers, byte strings as
// JSON strings, lists as arrays, and dictionaries as objects with keys
// in ascending order. Byte strings that are not valid UTF-8 have their
// invalid bytes replaced with U+FFFD, so the projection is lossy for
// binary payloads such as the "pieces" field of a metainfo file.
func (v Value) MarshalJSON() ([]byte, error) {
	var buffer bytes.Buffer
	if err := writeJSON(&buffer, v); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func writeJSON(buffer *bytes.Buffer, v Value) error {
	switch v.kind {
	case KindInteger:
		buffer.WriteString(strconv.FormatInt(v.integer, 10))
	case KindString:
		return writeJSONString(buffer, v.text)
	case KindList:
		buffer.WriteByte('[')
		for index, item := range v.items {
			if index > 0 {
				buffer.WriteByte(',')
			}
			if err := writeJSON(buffer, item); err != nil {
				return err
			}
		}
		buffer.WriteByte(']')
	case KindDict:
		buffer.WriteByte('{')
		for index, entry := range v.entries {
			if index > 0 {
				buffer.WriteByte(',')
			}
			if err := writeJSONString(buffer, entry.Key); err != nil {
				return err
			}
			buffer.WriteByte(':')
			if err := writeJSON(buffer, entry.Value); err != nil {
				return err
			}
		}
		buffer.WriteByte('}')
	default:
		return errors.New("bencode: cannot marshal invalid Value to JSON")
	}
	return nil
}

func writeJSONString(buffer *bytes.Buffer, s string) error {
	encoded, err := json.Marshal(s)
	if err != nil {
		return err
	}
	buffer.Write(encoded)
	return nil
}
