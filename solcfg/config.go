package solcfg

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/ledgerkit/solcore/solerr"
)

// Config holds cmd/solcli's configuration, loaded from the environment (and
// an optional .env file).
type Config struct {
	MnemonicFile string `envconfig:"SOLCLI_MNEMONIC_FILE"`
	AccountIndex uint32 `envconfig:"SOLCLI_ACCOUNT_INDEX" default:"0"`
	LogLevel     string `envconfig:"SOLCLI_LOG_LEVEL" default:"info"`
	LogDir       string `envconfig:"SOLCLI_LOG_DIR" default:"./logs"`
}

// Load reads a .env file if present, then environment variables (which take
// precedence over .env values), into a Config.
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			slog.Warn("failed to load .env file", "error", err)
		} else {
			slog.Info("loaded .env file")
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("solcfg: process environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks configuration values for correctness.
func (c *Config) Validate() error {
	if c.MnemonicFile == "" {
		return fmt.Errorf("SOLCLI_MNEMONIC_FILE is required: %w", solerr.ErrInvalidConfig)
	}
	return nil
}
