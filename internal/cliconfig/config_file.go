package cliconfig

import (
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/bft-labs/fixpi/internal/domain"
)

// FileConfig is the TOML form of Config.
type FileConfig struct {
	DataSize      int    `toml:"data_size"`
	ProgressEvery int    `toml:"progress_every"`
	Digest        *bool  `toml:"digest"`
	LogLevel      string `toml:"log_level"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, fmt.Errorf("%w: %s: %w", domain.ErrInvalidConfig, path, err)
	}
	return fc, nil
}

// DefaultConfigPath returns ~/.fixpi/config.toml, or "" without a home directory.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".fixpi", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) {
	s := newConfigSetter(changed)

	s.setInt("data-size", fc.DataSize, &cfg.DataSize)
	s.setInt("progress-every", fc.ProgressEvery, &cfg.ProgressEvery)
	s.setBool("digest", fc.Digest, &cfg.Digest)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
