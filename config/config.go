// Package config loads ecmakit CLI defaults from a YAML document.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lattice-substrate/ecmakit/ecmaerr"
	"github.com/lattice-substrate/ecmakit/radix"
)

// DefaultMaxInputBytes bounds the bytes a command reads from its input.
const DefaultMaxInputBytes = 64 * 1024 * 1024

// MaxCount bounds the numbers one random invocation may draw.
const MaxCount = 1_000_000

// Config holds CLI defaults. Flags override every field.
type Config struct {
	Radix         int    `yaml:"radix"`
	JSON          bool   `yaml:"json"`
	MaxInputBytes int    `yaml:"max_input_bytes"`
	Seed          uint64 `yaml:"seed"`
	Count         int    `yaml:"count"`
	LogLevel      string `yaml:"log_level"`
}

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{
		Radix:         10,
		MaxInputBytes: DefaultMaxInputBytes,
		Count:         1,
		LogLevel:      "warn",
	}
}

// Load reads, decodes and validates a config document. Keys missing from the
// document keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ecmaerr.Wrap(ecmaerr.InvalidConfig, -1, "read config", err)
	}
	return Parse(data)
}

// Parse decodes and validates a config document held in memory.
func Parse(data []byte) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, ecmaerr.Wrap(ecmaerr.InvalidConfig, -1, "decode config yaml", err)
	}
	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, ecmaerr.New(ecmaerr.InvalidConfig, -1, "decode config yaml: multiple documents")
	}
	if err := Validate(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks every field against its allowed range.
func Validate(c *Config) error {
	if c == nil {
		return ecmaerr.New(ecmaerr.InvalidConfig, -1, "config is nil")
	}
	if _, err := radix.New(c.Radix); err != nil {
		return ecmaerr.Wrap(ecmaerr.InvalidConfig, -1, "radix", err)
	}
	if c.MaxInputBytes <= 0 {
		return ecmaerr.Newf(ecmaerr.InvalidConfig, -1, "max_input_bytes must be positive, got %d", c.MaxInputBytes)
	}
	if c.Count < 1 || c.Count > MaxCount {
		return ecmaerr.Newf(ecmaerr.InvalidConfig, -1, "count must be in [1, %d], got %d", MaxCount, c.Count)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return ecmaerr.New(ecmaerr.InvalidConfig, -1, fmt.Sprintf("unknown log_level %q", c.LogLevel))
	}
	return nil
}
