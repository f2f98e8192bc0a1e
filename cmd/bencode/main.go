// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/bureau-foundation/bencode/cmd/bencode/cli"
	"github.com/bureau-foundation/bencode/cmd/bencode/commands"
	"github.com/bureau-foundation/bencode/lib/config"
)

func main() {
	err := run()
	// Commands that print their own output (like validate) return an
	// ExitError with the desired exit code. Don't print a redundant
	// "error:" line for those.
	code, printMessage := cli.ExitCodeFor(err)
	if printMessage {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	os.Exit(code)
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	configPath, args, err := extractConfigFlag(os.Args[1:])
	if err != nil {
		return cli.Validation("%w", err)
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	logger := cli.NewCommandLogger(cfg.LogLevel())
	return commands.Root(cfg).Execute(ctx, args, logger)
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

// extractConfigFlag removes a global --config flag from args and
// returns its value. The flag may appear anywhere before a "--"
// terminator, as "--config PATH" or "--config=PATH".
func extractConfigFlag(args []string) (string, []string, error) {
	var path string
	remaining := make([]string, 0, len(args))

	for index := 0; index < len(args); index++ {
		arg := args[index]
		switch {
		case arg == "--":
			remaining = append(remaining, args[index:]...)
			return path, remaining, nil
		case arg == "--config":
			if index+1 >= len(args) {
				return "", nil, fmt.Errorf("flag needs an argument: --config")
			}
			index++
			path = args[index]
		case strings.HasPrefix(arg, "--config="):
			path = strings.TrimPrefix(arg, "--config=")
			if path == "" {
				return "", nil, fmt.Errorf("flag needs an argument: --config")
			}
		default:
			remaining = append(remaining, arg)
		}
	}
	return path, remaining, nil
}
