// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package compression

import (
	"bytes"
	"crypto/rand"
	"errors"
	"strings"
	"testing"
)

// sampleDocument is a bencoded dictionary with enough repetition to
// compress well.
var sampleDocument = []byte("d8:announce31:http://tracker.example/announce4:infod5:filesl" +
	strings.Repeat("d6:lengthi1024e4:pathl8:file.bineee", 40) +
	"e4:name7:datasetee")

func TestFormatString(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{None, "none"},
		{Zstd, "zstd"},
		{LZ4, "lz4"},
		{Gzip, "gzip"},
		{Format(99), "unknown(99)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.format.String(); got != tt.want {
				t.Errorf("Format(%d).String() = %q, want %q", tt.format, got, tt.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	for _, name := range []string{"none", "zstd", "lz4", "gzip"} {
		t.Run(name, func(t *testing.T) {
			format, err := ParseFormat(name)
			if err != nil {
				t.Fatalf("ParseFormat(%q) failed: %v", name, err)
			}
			if format.String() != name {
				t.Errorf("roundtrip: ParseFormat(%q).String() = %q", name, format.String())
			}
		})
	}

	t.Run("unknown", func(t *testing.T) {
		if _, err := ParseFormat("brotli"); err == nil {
			t.Error("ParseFormat(\"brotli\") should fail")
		}
	})
}

func TestCompressDecompressRoundtrip(t *testing.T) {
	for _, format := range []Format{Zstd, LZ4, Gzip} {
		t.Run(format.String(), func(t *testing.T) {
			compressed, err := Compress(sampleDocument, format)
			if err != nil {
				t.Fatalf("Compress: %v", err)
			}
			if len(compressed) >= len(sampleDocument) {
				t.Errorf("compressed size %d not smaller than input %d", len(compressed), len(sampleDocument))
			}
			if detected := Detect(compressed); detected != format {
				t.Errorf("Detect = %v, want %v", detected, format)
			}

			restored, detected, err := Decompress(compressed)
			if err != nil {
				t.Fatalf("Decompress: %v", err)
			}
			if detected != format {
				t.Errorf("Decompress format = %v, want %v", detected, format)
			}
			if !bytes.Equal(restored, sampleDocument) {
				t.Error("decompressed data does not match original")
			}
		})
	}
}

func TestCompressNonePassesThrough(t *testing.T) {
	compressed, err := Compress(sampleDocument, None)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	if &compressed[0] != &sampleDocument[0] {
		t.Error("Compress(None) should return the input slice without copying")
	}
}

func TestCompressUnknownFormat(t *testing.T) {
	if _, err := Compress(sampleDocument, Format(42)); err == nil {
		t.Error("Compress with an unknown format should fail")
	}
}

func TestDetectPlainBencode(t *testing.T) {
	// Every Bencode value starts with i, l, d, or a digit.
	for _, input := range []string{"i42e", "le", "de", "0:", "4:spam", "9:123456789"} {
		if format := Detect([]byte(input)); format != None {
			t.Errorf("Detect(%q) = %v, want none", input, format)
		}
	}
}

func TestDecompressPlainReturnsInput(t *testing.T) {
	restored, format, err := Decompress(sampleDocument)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if format != None {
		t.Errorf("format = %v, want none", format)
	}
	if !bytes.Equal(restored, sampleDocument) {
		t.Error("plain data was modified")
	}
}

func TestDecompressIncompressibleData(t *testing.T) {
	random := make([]byte, 4096)
	rand.Read(random)

	for _, format := range []Format{Zstd, LZ4, Gzip} {
		t.Run(format.String(), func(t *testing.T) {
			compressed, err := Compress(random, format)
			if err != nil {
				t.Fatalf("Compress: %v", err)
			}
			restored, _, err := Decompress(compressed)
			if err != nil {
				t.Fatalf("Decompress: %v", err)
			}
			if !bytes.Equal(restored, random) {
				t.Error("random data did not survive the roundtrip")
			}
		})
	}
}

func TestDecompressCorrupted(t *testing.T) {
	for _, format := range []Format{Zstd, LZ4, Gzip} {
		t.Run(format.String(), func(t *testing.T) {
			compressed, err := Compress(sampleDocument, format)
			if err != nil {
				t.Fatalf("Compress: %v", err)
			}
			// Keep the magic number so detection still fires, then
			// cut the stream short.
			truncated := compressed[:len(compressed)/2]
			_, detected, err := Decompress(truncated)
			if err == nil {
				t.Error("Decompress of a truncated stream should fail")
			}
			if detected != format {
				t.Errorf("format = %v, want %v", detected, format)
			}
			if errors.Is(err, ErrTooLarge) {
				t.Errorf("truncation reported as ErrTooLarge: %v", err)
			}
		})
	}
}

func BenchmarkDecompressZstd(b *testing.B) {
	compressed, err := Compress(sampleDocument, Zstd)
	if err != nil {
		b.Fatal(err)
	}
	b.SetBytes(int64(len(sampleDocument)))
	b.ReportAllocs()
	for b.Loop() {
		Decompress(compressed)
	}
}
