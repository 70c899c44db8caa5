// Package config loads the app's YAML configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds everything the binary needs to wire itself up.
type Config struct {
	// DataPath is the SQLite database file. Defaults to
	// ~/.restock/restock.db.
	DataPath string `yaml:"data_path"`

	// RelayURL is the outbound-email relay base URL.
	RelayURL string `yaml:"relay_url"`

	// DirectoryURL is the organization directory base URL.
	DirectoryURL string `yaml:"directory_url"`
}

// Default returns the built-in configuration.
func Default() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		DataPath:     filepath.Join(home, ".restock", "restock.db"),
		RelayURL:     "https://relay.restock.app",
		DirectoryURL: "https://directory.restock.app",
	}
}

// Load reads the YAML file at path, layered over Default. A missing file
// is not an error - the defaults apply; a malformed file is.
func Load(path string) (Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.DataPath == "" {
		return Config{}, fmt.Errorf("config %s: data_path must not be empty", path)
	}
	return cfg, nil
}
