// Package config defines the CLI configuration structure.
package config

import (
	"fmt"
	"time"

	"github.com/yndnr/keyman/internal/storage/keyfile"
	"github.com/yndnr/keyman/pkg/token"
)

// Config is the configuration for keyman.
type Config struct {
	// Keyfile is the JSON file holding the keys.
	Keyfile string `koanf:"keyfile"`

	// Output is the listing format: table, json or yaml.
	Output string `koanf:"output"`

	Token TokenConfig `koanf:"token"`
	Lock  LockConfig  `koanf:"lock"`
	Log   LogConfig   `koanf:"log"`
}

// TokenConfig controls secret generation.
type TokenConfig struct {
	Bytes int `koanf:"bytes"`
}

// LockConfig controls the keyfile lock.
type LockConfig struct {
	Timeout time.Duration `koanf:"timeout"`
}

// LogConfig controls diagnostics on stderr.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Default returns the default CLI configuration.
func Default() *Config {
	return &Config{
		Keyfile: keyfile.DefaultPath,
		Output:  "table",
		Token:   TokenConfig{Bytes: token.DefaultLength},
		Lock:    LockConfig{Timeout: 5 * time.Second},
		Log:     LogConfig{Level: "warn", Format: "text"},
	}
}

// Validate checks the configuration for values the CLI cannot work with.
func (c *Config) Validate() error {
	if c.Keyfile == "" {
		return fmt.Errorf("config: keyfile must not be empty")
	}
	switch c.Output {
	case "table", "json", "yaml":
	default:
		return fmt.Errorf("config: unknown output format %q (want table, json or yaml)", c.Output)
	}
	if c.Token.Bytes < token.MinLength {
		return fmt.Errorf("config: token.bytes must be at least %d, got %d", token.MinLength, c.Token.Bytes)
	}
	if c.Lock.Timeout <= 0 {
		return fmt.Errorf("config: lock.timeout must be positive, got %s", c.Lock.Timeout)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("config: unknown log format %q (want text or json)", c.Log.Format)
	}
	return nil
}
