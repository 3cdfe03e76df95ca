package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (FIXPI_*).
// Environment values override the config file; explicitly set flags win.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	if err := s.setIntFromString("data-size", os.Getenv("FIXPI_DATA_SIZE"), &cfg.DataSize); err != nil {
		return err
	}
	if err := s.setIntFromString("progress-every", os.Getenv("FIXPI_PROGRESS_EVERY"), &cfg.ProgressEvery); err != nil {
		return err
	}
	s.setBoolFromString("digest", os.Getenv("FIXPI_DIGEST"), &cfg.Digest)
	s.setString("log-level", os.Getenv("FIXPI_LOG_LEVEL"), &cfg.LogLevel)

	return nil
}
