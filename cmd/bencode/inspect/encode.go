// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package inspect

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/tidwall/jsonc"

	"github.com/bureau-foundation/bencode/cmd/bencode/cli"
	"github.com/bureau-foundation/bencode/cmd/bencode/source"
	"github.com/bureau-foundation/bencode/lib/bencode"
	"github.com/bureau-foundation/bencode/lib/compression"
)

// encodeParams holds the parameters for the "bencode encode" command.
type encodeParams struct {
	Compress  string `json:"compress"   flag:"compress"   desc:"compress output: zstd, lz4, gzip"`
	HexOutput bool   `json:"hex_output" flag:"hex-output" desc:"write hex text instead of binary"`
}

func encodeCommand() *cli.Command {
	var params encodeParams

	return &cli.Command{
		Name:    "encode",
		Summary: "Convert JSON to bencode",
		Description: `Read JSON from stdin (or a file argument) and write the canonical
bencoding to stdout. Comments and trailing commas (JSONC) are accepted.

Numbers must be integers in the signed 64-bit range. Strings become
byte strings, arrays become lists, and objects become dictionaries
with keys sorted by their bytes. Booleans, null, and fractional
numbers have no bencode form and are rejected with the path of the
offending element.

The output is binary unless --hex-output is given. With --compress,
the output is wrapped in a zstd, lz4, or gzip frame that "bencode
decode" detects and removes.`,
		Usage: "bencode encode [--compress FORMAT] [--hex-output] [file]",
		Examples: []cli.Example{
			{
				Description: "Encode JSON to bencode",
				Command:     "echo '{\"spam\":[\"a\",\"b\"]}' | bencode encode",
			},
			{
				Description: "Encode a JSONC file with zstd compression",
				Command:     "bencode encode --compress zstd settings.jsonc > settings.bencode.zst",
			},
			{
				Description: "Round-trip: encode then decode",
				Command:     "echo '{\"count\":42}' | bencode encode | bencode decode",
			},
		},
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			format := compression.None
			if params.Compress != "" {
				parsed, err := compression.ParseFormat(params.Compress)
				if err != nil {
					return cli.Validation("--compress: %w", err)
				}
				format = parsed
			}

			input, err := source.Read(args, source.Options{})
			if err != nil {
				return err
			}
			if len(input.Args) > 0 {
				return cli.Validation("encode takes no positional arguments besides an optional file path, got %q", input.Args[0])
			}
			logger.Debug("encoding", "source", input.Source, "bytes", len(input.Data), "compression", format.String())

			return encodeJSON(input.Data, os.Stdout, format, params.HexOutput)
		},
	}
}

// encodeJSON converts JSON or JSONC data to canonical bencode and
// writes it to w, compressed with format.
func encodeJSON(data []byte, w io.Writer, format compression.Format, hexOutput bool) error {
	value, err := parseJSON(data)
	if err != nil {
		return err
	}

	encoded, err := compression.Compress(bencode.Encode(value), format)
	if err != nil {
		return cli.Internal("compress output: %w", err)
	}

	if hexOutput {
		_, err = fmt.Fprintln(w, hex.EncodeToString(encoded))
		return err
	}
	_, err = w.Write(encoded)
	return err
}

// parseJSON decodes a single JSON or JSONC document into a Value.
// Numbers are decoded as json.Number so integers beyond 2^53 keep
// their exact value.
func parseJSON(data []byte) (bencode.Value, error) {
	decoder := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
	decoder.UseNumber()

	var document any
	if err := decoder.Decode(&document); err != nil {
		if errors.Is(err, io.EOF) {
			return bencode.Value{}, cli.Validation("empty input: expected JSON data")
		}
		return bencode.Value{}, cli.Internal("decode JSON: %w", err)
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return bencode.Value{}, cli.Internal("decode JSON: unexpected data after the first document")
	}

	value, err := bencode.FromGo(document)
	if err != nil {
		return bencode.Value{}, cli.Internal("convert JSON: %w", err)
	}
	return value, nil
}
