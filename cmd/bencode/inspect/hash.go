// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package inspect

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/bureau-foundation/bencode/cmd/bencode/cli"
	"github.com/bureau-foundation/bencode/cmd/bencode/source"
	"github.com/bureau-foundation/bencode/lib/bencode"
	"github.com/bureau-foundation/bencode/lib/config"
	"github.com/bureau-foundation/bencode/lib/digest"
)

// hashParams holds the parameters for the "bencode hash" command.
type hashParams struct {
	source.Flags
	Algorithm string `json:"algorithm" flag:"algorithm,a" desc:"digest algorithm: sha1, sha256, blake3, blake2b (default from config)"`
	Key       string `json:"key"       flag:"key,k"       desc:"hash the value under this top-level dictionary key"`
}

func hashCommand(cfg *config.Config) *cli.Command {
	var params hashParams

	return &cli.Command{
		Name:    "hash",
		Summary: "Digest the canonical encoding of a value",
		Description: `Decode a bencoded value, re-encode it canonically, and print the
digest of the canonical bytes as hex.

With --key, the digest covers only the value stored under that key of
the top-level dictionary. For a torrent file, "--key info" with the
default sha1 algorithm prints the BitTorrent v1 info hash.

Because the digest is taken over the canonical encoding, two inputs
that differ only in dictionary key order hash the same.`,
		Usage: "bencode hash [-a ALGORITHM] [-k KEY] [-x] [file]",
		Examples: []cli.Example{
			{
				Description: "Print the info hash of a torrent",
				Command:     "bencode hash --key info ubuntu.torrent",
			},
			{
				Description: "BLAKE3 digest of a document",
				Command:     "bencode hash -a blake3 state.bencode",
			},
		},
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			algorithm := cfg.HashAlgorithm()
			if params.Algorithm != "" {
				parsed, err := digest.ParseAlgorithm(params.Algorithm)
				if err != nil {
					return cli.Validation("--algorithm: %w", err)
				}
				algorithm = parsed
			}

			input, err := source.Read(args, params.Options(cfg, false))
			if err != nil {
				return err
			}
			if len(input.Args) > 0 {
				return cli.Validation("hash takes no positional arguments besides an optional file path, got %q", input.Args[0])
			}
			logger.Debug("hashing",
				"source", input.Source,
				"bytes", len(input.Data),
				"algorithm", algorithm.String(),
				"key", params.Key,
			)

			return hashBencode(input.Data, os.Stdout, params.DecodeOptions(cfg), algorithm, params.Key)
		},
	}
}

// hashBencode writes the digest of the canonical encoding of the value
// in data, or of the value under key when key is not empty.
func hashBencode(data []byte, w io.Writer, options bencode.DecodeOptions, algorithm digest.Algorithm, key string) error {
	value, err := options.Decode(data)
	if err != nil {
		return fmt.Errorf("decode bencode: %w", err)
	}

	if key != "" {
		dict, err := value.Dict()
		if err != nil {
			return cli.Validation("--key %q: top-level value is not a dictionary: %w", key, err)
		}
		element, ok := dict.Get(key)
		if !ok {
			return cli.NotFound("key %q not found in top-level dictionary", key)
		}
		value = element
	}

	sum := digest.Sum(algorithm, bencode.Encode(value))
	_, err = fmt.Fprintln(w, sum.String())
	return err
}
