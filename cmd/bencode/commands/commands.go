// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the complete bencode CLI command tree.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	cborcmd "github.com/bureau-foundation/bencode/cmd/bencode/cbor"
	"github.com/bureau-foundation/bencode/cmd/bencode/cli"
	"github.com/bureau-foundation/bencode/cmd/bencode/inspect"
	"github.com/bureau-foundation/bencode/cmd/bencode/torrent"
	"github.com/bureau-foundation/bencode/lib/config"
	"github.com/bureau-foundation/bencode/lib/version"
)

// Root builds and returns the complete bencode CLI command tree,
// configured by cfg.
func Root(cfg *config.Config) *cli.Command {
	subcommands := inspect.Commands(cfg)
	subcommands = append(subcommands,
		torrent.InfoCommand(cfg),
		cborcmd.Command(cfg),
		versionCommand(),
	)

	return &cli.Command{
		Name: "bencode",
		Description: `bencode: encode, decode, and inspect Bencode data.

Bencode is the serialization format of BitTorrent metainfo files and
tracker responses. These commands convert it to and from JSON and
CBOR, check that it is canonical, hash it, and summarize torrents.

Configuration is read from the YAML file named by $BENCODE_CONFIG or
--config. Flags override the file.`,
		Subcommands: subcommands,
		Examples: []cli.Example{
			{
				Description: "Decode a torrent file to JSON",
				Command:     "bencode decode ubuntu.torrent",
			},
			{
				Description: "Browse a torrent's structure",
				Command:     "bencode show ubuntu.torrent",
			},
			{
				Description: "Print the info hash",
				Command:     "bencode info ubuntu.torrent",
			},
			{
				Description: "Encode JSON and check the result is canonical",
				Command:     "echo '{\"b\":1,\"a\":2}' | bencode encode | bencode validate",
			},
		},
	}
}

// versionParams holds the parameters for the "bencode version" command.
type versionParams struct {
	cli.JSONOutput
}

func versionCommand() *cli.Command {
	var params versionParams

	return &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Usage:   "bencode version [--json]",
		Params:  func() any { return &params },
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("version takes no arguments, got %q", args[0])
			}
			return writeVersion(os.Stdout, &params)
		},
	}
}

func writeVersion(w io.Writer, params *versionParams) error {
	if done, err := params.EmitJSON(w, version.Current()); done {
		return err
	}
	_, err := fmt.Fprintf(w, "bencode %s\n", version.Full())
	return err
}
