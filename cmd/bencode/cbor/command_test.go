// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cbor

import (
	"bytes"
	"errors"
	"testing"

	"github.com/bureau-foundation/bencode/lib/bencode"
	"github.com/bureau-foundation/bencode/lib/codec"
	"github.com/bureau-foundation/bencode/lib/config"
)

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		"i42e",
		"i-9223372036854775808e",
		"0:",
		"3:\x00\xff\x10",
		"le",
		"d3:cow3:moo4:spaml1:a1:bee",
		"d4:infod6:lengthi1e4:name1:x12:piece lengthi1e6:pieces0:ee",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			value, err := bencode.Decode([]byte(input))
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}

			var cborData bytes.Buffer
			if err := writeCBOR(&cborData, value, false, false); err != nil {
				t.Fatalf("writeCBOR: %v", err)
			}

			var output bytes.Buffer
			if err := writeBencode(&output, cborData.Bytes(), false); err != nil {
				t.Fatalf("writeBencode: %v", err)
			}
			if output.String() != input {
				t.Errorf("round trip = %q, want %q", output.String(), input)
			}
		})
	}
}

func TestWriteCBORDiag(t *testing.T) {
	value := bencode.List(bencode.Int(1), bencode.Bytes([]byte{0x00, 0xff}), bencode.String("a"))

	var output bytes.Buffer
	if err := writeCBOR(&output, value, true, false); err != nil {
		t.Fatalf("writeCBOR: %v", err)
	}
	want := `[1, h'00ff', "a"]` + "\n"
	if output.String() != want {
		t.Errorf("output = %q, want %q", output.String(), want)
	}
}

func TestWriteCBORHex(t *testing.T) {
	var output bytes.Buffer
	if err := writeCBOR(&output, bencode.Int(1), false, true); err != nil {
		t.Fatalf("writeCBOR: %v", err)
	}
	if output.String() != "01\n" {
		t.Errorf("output = %q, want %q", output.String(), "01\n")
	}
}

func TestWriteBencode(t *testing.T) {
	tests := []struct {
		name      string
		input     []byte
		hexOutput bool
		want      string
	}{
		{name: "text string", input: []byte{0x63, 'm', 'o', 'o'}, want: "3:moo"},
		{name: "negative integer", input: []byte{0x20}, want: "i-1e"},
		{name: "integral float", input: []byte{0xf9, 0x3c, 0x00}, want: "i1e"},
		{name: "map sorted by bencode rules", input: []byte{0xa2, 0x61, 'n', 0x01, 0x63, 'c', 'o', 'w', 0x02}, want: "d3:cowi2e1:ni1ee"},
		{name: "hex output", input: []byte{0x80}, hexOutput: true, want: "6c65\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var output bytes.Buffer
			if err := writeBencode(&output, tt.input, tt.hexOutput); err != nil {
				t.Fatalf("writeBencode: %v", err)
			}
			if output.String() != tt.want {
				t.Errorf("output = %q, want %q", output.String(), tt.want)
			}
		})
	}
}

func TestWriteBencodeErrors(t *testing.T) {
	tests := []struct {
		name        string
		input       []byte
		unsupported bool
	}{
		{name: "boolean", input: []byte{0xf5}, unsupported: true},
		{name: "null", input: []byte{0xf6}, unsupported: true},
		{name: "fractional float", input: []byte{0xf9, 0x3e, 0x00}, unsupported: true},
		{name: "break outside container", input: []byte{0xff}},
		{name: "truncated", input: []byte{0x63, 'm'}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := writeBencode(&bytes.Buffer{}, tt.input, false)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.Is(err, codec.ErrUnsupported); got != tt.unsupported {
				t.Errorf("errors.Is(ErrUnsupported) = %v, want %v (error: %v)", got, tt.unsupported, err)
			}
		})
	}
}

func TestCommandTree(t *testing.T) {
	command := Command(config.Default())
	var names []string
	for _, sub := range command.Subcommands {
		names = append(names, sub.Name)
		if sub.Params == nil || sub.Run == nil {
			t.Errorf("subcommand %q missing Params or Run", sub.Name)
		}
	}
	if len(names) != 2 || names[0] != "to" || names[1] != "from" {
		t.Errorf("subcommands = %v, want [to from]", names)
	}
}
