// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/bencode/lib/bencode"
	"github.com/bureau-foundation/bencode/lib/digest"
)

// EnvironmentVariable names the variable [Load] reads the config file
// path from.
const EnvironmentVariable = "BENCODE_CONFIG"

// Color modes for [OutputConfig].Color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config is the configuration for the bencode command.
type Config struct {
	// Decode configures input parsing.
	Decode DecodeConfig `yaml:"decode"`

	// Output configures rendering.
	Output OutputConfig `yaml:"output"`

	// Hash configures the hash command.
	Hash HashConfig `yaml:"hash"`

	// Log configures the command logger.
	Log LogConfig `yaml:"log"`
}

// DecodeConfig configures input parsing.
type DecodeConfig struct {
	// MaxDepth bounds container nesting.
	// Default: 512
	MaxDepth int `yaml:"max_depth"`

	// Decompress enables automatic removal of zstd, lz4, and gzip
	// wrappers on input.
	// Default: true
	Decompress bool `yaml:"decompress"`
}

// OutputConfig configures rendering.
type OutputConfig struct {
	// Compact emits JSON on a single line.
	// Default: false
	Compact bool `yaml:"compact"`

	// Color selects styled output.
	// Values: "auto" (when stdout is a terminal), "always", "never"
	// Default: auto
	Color string `yaml:"color"`
}

// HashConfig configures the hash command.
type HashConfig struct {
	// Algorithm is the default digest algorithm.
	// Values: sha1, sha256, blake3, blake2b
	// Default: sha1
	Algorithm string `yaml:"algorithm"`
}

// LogConfig configures the command logger.
type LogConfig struct {
	// Level is the minimum level logged to stderr.
	// Values: debug, info, warn, error
	// Default: warn
	Level string `yaml:"level"`
}

// Default returns the default configuration. File values are merged
// over these, so a config file only needs the fields it changes.
func Default() *Config {
	return &Config{
		Decode: DecodeConfig{
			MaxDepth:   bencode.DefaultMaxDepth,
			Decompress: true,
		},
		Output: OutputConfig{
			Compact: false,
			Color:   ColorAuto,
		},
		Hash: HashConfig{
			Algorithm: digest.SHA1.String(),
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Load loads configuration from the file named by BENCODE_CONFIG.
// When the variable is unset, Load returns [Default]: there is no
// discovery of config files in home or working directories.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return Default(), nil
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path and
// validates it.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse parses YAML configuration merged over [Default] and validates
// the result. Unknown fields are rejected so typos surface instead of
// being silently ignored.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Decode.MaxDepth <= 0 {
		errs = append(errs, fmt.Errorf("decode.max_depth must be positive, got %d", c.Decode.MaxDepth))
	}

	colorValues := []string{ColorAuto, ColorAlways, ColorNever}
	if !slices.Contains(colorValues, c.Output.Color) {
		errs = append(errs, fmt.Errorf("output.color must be one of: %v", colorValues))
	}

	if _, err := digest.ParseAlgorithm(c.Hash.Algorithm); err != nil {
		errs = append(errs, fmt.Errorf("hash.algorithm: %w", err))
	}

	if _, err := parseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// DecodeOptions returns the decoder options this configuration selects.
func (c *Config) DecodeOptions() bencode.DecodeOptions {
	return bencode.DecodeOptions{MaxDepth: c.Decode.MaxDepth}
}

// HashAlgorithm returns the configured digest algorithm. Validate has
// already accepted the name, so an unknown value falls back to SHA-1.
func (c *Config) HashAlgorithm() digest.Algorithm {
	algorithm, err := digest.ParseAlgorithm(c.Hash.Algorithm)
	if err != nil {
		return digest.SHA1
	}
	return algorithm
}

// LogLevel returns the configured slog level.
func (c *Config) LogLevel() slog.Level {
	level, err := parseLevel(c.Log.Level)
	if err != nil {
		return slog.LevelWarn
	}
	return level
}

func parseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("unknown level %q (expected debug, info, warn, or error)", name)
	}
	return level, nil
}
