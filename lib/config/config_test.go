// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bureau-foundation/bencode/lib/bencode"
	"github.com/bureau-foundation/bencode/lib/digest"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "bencode.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return configPath
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Decode.MaxDepth != bencode.DefaultMaxDepth {
		t.Errorf("expected max_depth=%d, got %d", bencode.DefaultMaxDepth, cfg.Decode.MaxDepth)
	}
	if !cfg.Decode.Decompress {
		t.Error("expected decompress=true")
	}
	if cfg.Output.Color != ColorAuto {
		t.Errorf("expected color=auto, got %s", cfg.Output.Color)
	}
	if cfg.HashAlgorithm() != digest.SHA1 {
		t.Errorf("expected hash algorithm sha1, got %v", cfg.HashAlgorithm())
	}
	if cfg.LogLevel() != slog.LevelWarn {
		t.Errorf("expected log level warn, got %v", cfg.LogLevel())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config does not validate: %v", err)
	}
}

func TestLoad_WithoutEnvironmentReturnsDefault(t *testing.T) {
	t.Setenv(EnvironmentVariable, "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Output.Color != ColorAuto || cfg.Decode.MaxDepth != bencode.DefaultMaxDepth {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoad_WithEnvironment(t *testing.T) {
	configPath := writeConfig(t, `
decode:
  max_depth: 64
output:
  compact: true
  color: never
hash:
  algorithm: blake3
log:
  level: debug
`)
	t.Setenv(EnvironmentVariable, configPath)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.DecodeOptions().MaxDepth != 64 {
		t.Errorf("expected max_depth=64, got %d", cfg.DecodeOptions().MaxDepth)
	}
	if !cfg.Output.Compact {
		t.Error("expected compact=true")
	}
	if cfg.Output.Color != ColorNever {
		t.Errorf("expected color=never, got %s", cfg.Output.Color)
	}
	if cfg.HashAlgorithm() != digest.BLAKE3 {
		t.Errorf("expected hash algorithm blake3, got %v", cfg.HashAlgorithm())
	}
	if cfg.LogLevel() != slog.LevelDebug {
		t.Errorf("expected log level debug, got %v", cfg.LogLevel())
	}
}

func TestLoadFile_PartialMergesOverDefaults(t *testing.T) {
	configPath := writeConfig(t, "output:\n  color: always\n")

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}
	if cfg.Output.Color != ColorAlways {
		t.Errorf("expected color=always, got %s", cfg.Output.Color)
	}
	// Untouched sections keep their defaults.
	if cfg.Decode.MaxDepth != bencode.DefaultMaxDepth || !cfg.Decode.Decompress {
		t.Errorf("decode section lost its defaults: %+v", cfg.Decode)
	}
	if cfg.Hash.Algorithm != "sha1" {
		t.Errorf("expected hash algorithm sha1, got %s", cfg.Hash.Algorithm)
	}
}

func TestLoadFile_Empty(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("LoadFile() of an empty file failed: %v", err)
	}
	if cfg.Output.Color != ColorAuto {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}
}

func TestParse_RejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte("output:\n  colour: never\n"))
	if err == nil {
		t.Fatal("expected error for unknown field, got nil")
	}
	if !strings.Contains(err.Error(), "colour") {
		t.Errorf("error %q does not name the unknown field", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantError string
	}{
		{"zero depth", "decode:\n  max_depth: 0\n", "decode.max_depth must be positive"},
		{"bad color", "output:\n  color: sometimes\n", "output.color must be one of"},
		{"bad algorithm", "hash:\n  algorithm: md5\n", "hash.algorithm"},
		{"bad level", "log:\n  level: loud\n", "log.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.content))
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantError) {
				t.Errorf("error %q does not contain %q", err, tt.wantError)
			}
		})
	}
}

func TestValidate_ReportsAllErrors(t *testing.T) {
	cfg := Default()
	cfg.Decode.MaxDepth = -1
	cfg.Output.Color = "rainbow"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	message := err.Error()
	if !strings.Contains(message, "max_depth") || !strings.Contains(message, "output.color") {
		t.Errorf("expected both errors reported, got %q", message)
	}
}
