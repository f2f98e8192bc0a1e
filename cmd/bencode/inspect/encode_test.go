// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package inspect

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/bureau-foundation/bencode/cmd/bencode/cli"
	"github.com/bureau-foundation/bencode/lib/bencode"
	"github.com/bureau-foundation/bencode/lib/compression"
)

func TestEncodeJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "object keys sorted",
			input: `{"spam": ["a", "b"], "cow": "moo"}`,
			want:  "d3:cow3:moo4:spaml1:a1:bee",
		},
		{
			name:  "negative integer",
			input: `-7`,
			want:  "i-7e",
		},
		{
			name:  "integer beyond float precision",
			input: `9007199254740993`,
			want:  "i9007199254740993e",
		},
		{
			name:  "empty containers",
			input: `{"list": [], "dict": {}}`,
			want:  "d4:dictde4:listlee",
		},
		{
			name: "jsonc comments and trailing commas",
			input: `{
				// tracker
				"announce": "http://tracker.example/announce", /* inline */
				"length": 42,
			}`,
			want: "d8:announce31:http://tracker.example/announce6:lengthi42ee",
		},
		{
			name:  "unicode",
			input: `"日本"`,
			want:  "6:日本",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var output bytes.Buffer
			if err := encodeJSON([]byte(tt.input), &output, compression.None, false); err != nil {
				t.Fatalf("encodeJSON: %v", err)
			}
			if output.String() != tt.want {
				t.Errorf("output = %q, want %q", output.String(), tt.want)
			}
		})
	}
}

func TestEncodeJSONErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "boolean", input: `{"private": true}`, want: "$.private"},
		{name: "null", input: `[1, null]`, want: "$[1]"},
		{name: "fraction", input: `{"ratio": 1.5}`, want: "$.ratio"},
		{name: "invalid JSON", input: `{"a":`, want: "decode JSON"},
		{name: "trailing document", input: `{} {}`, want: "unexpected data"},
		{name: "whitespace only", input: "  \n", want: "empty input"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := encodeJSON([]byte(tt.input), &bytes.Buffer{}, compression.None, false)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to contain %q", err, tt.want)
			}
			var toolError *cli.ToolError
			if !errors.As(err, &toolError) {
				t.Errorf("error %v is not a ToolError", err)
			}
		})
	}
}

func TestEncodeJSONUnsupportedWrapsSentinel(t *testing.T) {
	err := encodeJSON([]byte(`true`), &bytes.Buffer{}, compression.None, false)
	if !errors.Is(err, bencode.ErrUnsupportedType) {
		t.Errorf("error = %v, want ErrUnsupportedType in chain", err)
	}
}

func TestEncodeJSONCompressed(t *testing.T) {
	for _, format := range []compression.Format{compression.Zstd, compression.LZ4, compression.Gzip} {
		t.Run(format.String(), func(t *testing.T) {
			var output bytes.Buffer
			if err := encodeJSON([]byte(`{"count": 42}`), &output, format, false); err != nil {
				t.Fatalf("encodeJSON: %v", err)
			}
			data, detected, err := compression.Decompress(output.Bytes())
			if err != nil {
				t.Fatalf("Decompress: %v", err)
			}
			if detected != format {
				t.Errorf("detected %v, want %v", detected, format)
			}
			if string(data) != "d5:counti42ee" {
				t.Errorf("decompressed = %q", data)
			}
		})
	}
}

func TestEncodeJSONHexOutput(t *testing.T) {
	var output bytes.Buffer
	if err := encodeJSON([]byte(`42`), &output, compression.None, true); err != nil {
		t.Fatalf("encodeJSON: %v", err)
	}
	if output.String() != "69343265\n" {
		t.Errorf("output = %q, want %q", output.String(), "69343265\n")
	}
}
