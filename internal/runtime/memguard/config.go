package memguard

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config is the operator-facing tuning surface, loaded from a TOML
// file at bootstrap:
//
//	verbose = false
//	strategy = "auto"          # auto | sigcontext | siginfo | minimal
//	history_size = 256
//	debug_http_addr = ""       # e.g. "127.0.0.1:6070"; empty disables
type Config struct {
	Verbose       bool   `toml:"verbose"`
	Strategy      string `toml:"strategy"`
	HistorySize   int    `toml:"history_size"`
	DebugHTTPAddr string `toml:"debug_http_addr"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Strategy:    "auto",
		HistorySize: 256,
	}
}

// LoadConfig reads and validates path. Missing keys keep their
// defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("memguard: load config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field values without touching the host.
func (c Config) Validate() error {
	if _, err := ParseStrategy(c.Strategy); err != nil {
		return err
	}
	if c.HistorySize < 0 {
		return fmt.Errorf("memguard: negative history_size %d", c.HistorySize)
	}
	return nil
}
