// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package compression

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Format identifies a compression wrapper.
type Format uint8

const (
	// None indicates data with no recognized compression wrapper.
	None Format = iota

	// Zstd indicates a zstd frame (RFC 8878). Best ratio for the
	// text-heavy parts of metainfo files; the default for output.
	Zstd

	// LZ4 indicates an LZ4 frame. Faster than zstd with a lower
	// ratio. Block-mode LZ4 has no magic number and is not supported.
	LZ4

	// Gzip indicates a gzip member (RFC 1952), the format HTTP
	// trackers and web servers most often serve.
	Gzip
)

// MaxDecompressedSize bounds the output of [Decompress]. A small
// compressed input can expand without limit; anything past this size
// fails with [ErrTooLarge] instead of exhausting memory.
const MaxDecompressedSize = 1 << 30

// ErrTooLarge is returned by [Decompress] when the decompressed data
// exceeds [MaxDecompressedSize].
var ErrTooLarge = errors.New("compression: decompressed data exceeds size limit")

var (
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
	gzipMagic = []byte{0x1f, 0x8b}
)

// String returns the name of a format as accepted by [ParseFormat].
func (format Format) String() string {
	switch format {
	case None:
		return "none"
	case Zstd:
		return "zstd"
	case LZ4:
		return "lz4"
	case Gzip:
		return "gzip"
	default:
		return fmt.Sprintf("unknown(%d)", format)
	}
}

// ParseFormat parses a format from its string representation.
func ParseFormat(name string) (Format, error) {
	switch name {
	case "none":
		return None, nil
	case "zstd":
		return Zstd, nil
	case "lz4":
		return LZ4, nil
	case "gzip":
		return Gzip, nil
	default:
		return 0, fmt.Errorf("unknown compression format %q (expected none, zstd, lz4, or gzip)", name)
	}
}

// Detect reports the compression format of data from its magic
// number. Data that matches none of them is [None].
func Detect(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, zstdMagic):
		return Zstd
	case bytes.HasPrefix(data, lz4Magic):
		return LZ4
	case bytes.HasPrefix(data, gzipMagic):
		return Gzip
	default:
		return None
	}
}

// zstdEncoder and zstdDecoder are reused across calls to avoid
// repeated initialization overhead. Both are safe for concurrent use
// through EncodeAll and DecodeAll.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedDefault),
	)
	if err != nil {
		panic("compression: zstd encoder initialization failed: " + err.Error())
	}

	zstdDecoder, err = zstd.NewReader(nil,
		zstd.WithDecoderMaxMemory(MaxDecompressedSize),
	)
	if err != nil {
		panic("compression: zstd decoder initialization failed: " + err.Error())
	}
}

// Compress wraps data in the given format. [None] returns data
// unchanged (no copy).
func Compress(data []byte, format Format) ([]byte, error) {
	switch format {
	case None:
		return data, nil

	case Zstd:
		return zstdEncoder.EncodeAll(data, nil), nil

	case LZ4:
		var buffer bytes.Buffer
		writer := lz4.NewWriter(&buffer)
		if _, err := writer.Write(data); err != nil {
			return nil, fmt.Errorf("lz4 compress: %w", err)
		}
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("lz4 compress: %w", err)
		}
		return buffer.Bytes(), nil

	case Gzip:
		var buffer bytes.Buffer
		writer := gzip.NewWriter(&buffer)
		if _, err := writer.Write(data); err != nil {
			return nil, fmt.Errorf("gzip compress: %w", err)
		}
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("gzip compress: %w", err)
		}
		return buffer.Bytes(), nil

	default:
		return nil, fmt.Errorf("unsupported compression format: %d", format)
	}
}

// Decompress detects the format of data and removes the wrapper. Data
// with no recognized wrapper is returned unchanged with [None].
func Decompress(data []byte) ([]byte, Format, error) {
	format := Detect(data)
	switch format {
	case None:
		return data, None, nil

	case Zstd:
		result, err := zstdDecoder.DecodeAll(data, nil)
		if err != nil {
			if errors.Is(err, zstd.ErrDecoderSizeExceeded) {
				return nil, format, ErrTooLarge
			}
			return nil, format, fmt.Errorf("zstd decompress: %w", err)
		}
		return result, format, nil

	case LZ4:
		result, err := readLimited(lz4.NewReader(bytes.NewReader(data)))
		if err != nil {
			return nil, format, wrapReadError("lz4", err)
		}
		return result, format, nil

	case Gzip:
		reader, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, format, fmt.Errorf("gzip decompress: %w", err)
		}
		defer reader.Close()
		result, err := readLimited(reader)
		if err != nil {
			return nil, format, wrapReadError("gzip", err)
		}
		return result, format, nil

	default:
		return nil, format, fmt.Errorf("unsupported compression format: %d", format)
	}
}

// readLimited reads reader to the end, failing with ErrTooLarge once
// more than MaxDecompressedSize bytes have been produced.
func readLimited(reader io.Reader) ([]byte, error) {
	result, err := io.ReadAll(io.LimitReader(reader, MaxDecompressedSize+1))
	if err != nil {
		return nil, err
	}
	if len(result) > MaxDecompressedSize {
		return nil, ErrTooLarge
	}
	return result, nil
}

func wrapReadError(name string, err error) error {
	if errors.Is(err, ErrTooLarge) {
		return err
	}
	return fmt.Errorf("%s decompress: %w", name, err)
}
