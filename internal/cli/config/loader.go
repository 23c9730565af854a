// Package config defines the client configuration structure.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/yndnr/betlink-go/internal/infra/confloader"
)

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".betlink", "config.yaml")
}

// Load loads the client configuration. Values from the YAML file are
// overridden by BETLINK_* environment variables. A missing file is not
// an error; defaults plus environment apply.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigPath()
	}

	cfg := Default()

	opts := []confloader.Option{}
	if _, err := os.Stat(path); err == nil {
		opts = append(opts, confloader.WithConfigFile(path))
	}

	loader := confloader.NewLoader(opts...)
	if err := loader.Load(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if err := Verify(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}
