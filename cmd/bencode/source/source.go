// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package source resolves the input document for bencode subcommands:
// a file named by the trailing argument, a literal bencoded value
// given as the argument itself, or stdin. Optional hex decoding and
// automatic decompression are applied after reading.
package source

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/bureau-foundation/bencode/lib/compression"
)

// Names reported in [Input].Source for non-file inputs.
const (
	Stdin    = "stdin"
	Argument = "argument"
)

// ErrEmpty is returned when the resolved input holds no bytes.
var ErrEmpty = errors.New("empty input")

// Options controls how [Read] resolves and transforms input.
type Options struct {
	// Hex treats the input as hex text. Whitespace is ignored.
	Hex bool

	// Literal lets a trailing argument that does not name a file be
	// used as the document itself, for quick checks such as
	// `bencode decode i42e`.
	Literal bool

	// Decompress removes a zstd, lz4, or gzip wrapper when one is
	// detected.
	Decompress bool

	// Stdin is read when no argument supplies the input. Nil means
	// os.Stdin.
	Stdin io.Reader
}

// Input is a resolved input document.
type Input struct {
	// Data is the document after hex decoding and decompression.
	Data []byte

	// Source is the file path, [Argument], or [Stdin].
	Source string

	// Compression is the wrapper removed from the data, or
	// compression.None.
	Compression compression.Format

	// Args holds the positional arguments left after the one
	// consumed as input, if any.
	Args []string
}

// Read resolves input from args according to options.
//
// The last argument is consumed when it names a regular file. When it
// does not and options.Literal is set, it is consumed as the document
// itself if it has the outline of a bencoded value and reported as a missing
// file otherwise. Without options.Literal, stdin is read and args are
// returned unchanged.
func Read(args []string, options Options) (*Input, error) {
	input := &Input{Args: args}

	if length := len(args); length > 0 {
		candidate := args[length-1]
		info, err := os.Stat(candidate)
		switch {
		case err == nil && !info.IsDir():
			data, err := os.ReadFile(candidate)
			if err != nil {
				return nil, fmt.Errorf("read %s: %w", candidate, err)
			}
			input.Data, input.Source, input.Args = data, candidate, args[:length-1]
		case options.Literal && looksLikeBencode(candidate):
			input.Data, input.Source, input.Args = []byte(candidate), Argument, args[:length-1]
		case options.Literal:
			if err == nil {
				err = fmt.Errorf("%s is a directory", candidate)
			}
			return nil, fmt.Errorf("read input: %w", err)
		}
	}

	if input.Source == "" {
		reader := options.Stdin
		if reader == nil {
			reader = os.Stdin
		}
		data, err := io.ReadAll(reader)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		input.Data, input.Source = data, Stdin
	}

	if options.Hex {
		decoded, err := DecodeHex(input.Data)
		if err != nil {
			return nil, err
		}
		input.Data = decoded
	}

	if options.Decompress {
		data, format, err := compression.Decompress(input.Data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", input.Source, err)
		}
		input.Data, input.Compression = data, format
	}

	if len(input.Data) == 0 {
		return nil, ErrEmpty
	}
	return input, nil
}

// looksLikeBencode reports whether argument has the outline of a
// bencoded value, so a mistyped file name is reported as missing rather
// than as a malformed value.
func looksLikeBencode(argument string) bool {
	if argument == "" {
		return false
	}
	switch first := argument[0]; {
	case first == 'i', first == 'l', first == 'd':
		return argument[len(argument)-1] == 'e'
	case first >= '0' && first <= '9':
		return strings.IndexByte(argument, ':') > 0
	default:
		return false
	}
}

// DecodeHex strips whitespace from hex-encoded input and decodes it to
// binary bytes. Whitespace between hex digit pairs is allowed (e.g.,
// "69 34 32 65" or "69343265").
func DecodeHex(data []byte) ([]byte, error) {
	cleaned := bytes.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, data)

	if len(cleaned) == 0 {
		return nil, fmt.Errorf("empty input after stripping whitespace from hex")
	}

	decoded := make([]byte, hex.DecodedLen(len(cleaned)))
	count, err := hex.Decode(decoded, cleaned)
	if err != nil {
		return nil, fmt.Errorf("decode hex: %w", err)
	}
	return decoded[:count], nil
}
