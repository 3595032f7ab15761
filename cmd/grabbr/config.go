package main

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fwojciec/grabbr"
	"github.com/fwojciec/grabbr/extract"
	"gopkg.in/yaml.v3"
)

// Config is the optional YAML configuration file. Unset fields keep their
// defaults; command-line flags override both.
type Config struct {
	Mode        grabbr.Mode            `yaml:"mode"`
	Browser     bool                   `yaml:"browser"`
	Timeout     time.Duration          `yaml:"timeout"`
	SettleDelay time.Duration          `yaml:"settle_delay"`
	Database    string                 `yaml:"database"`
	Study       bool                   `yaml:"study"`
	Options     grabbr.OptionsOverride `yaml:"options"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Mode:        grabbr.ModeFull,
		Timeout:     30 * time.Second,
		SettleDelay: extract.DefaultSettleDelay,
	}
}

// LoadConfig reads the YAML file at path over DefaultConfig. A missing file
// is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, grabbr.Errorf(grabbr.EINVALID, "invalid config %s: %v", path, err)
	}
	if cfg.Mode == "" {
		cfg.Mode = grabbr.ModeFull
	}
	if !cfg.Mode.Known() {
		return cfg, grabbr.Errorf(grabbr.EINVALID, "invalid config %s: unknown mode %q", path, cfg.Mode)
	}
	if err := grabbr.DefaultOptions().With(cfg.Options).Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func defaultConfigPath() string {
	if path := os.Getenv("GRABBR_CONFIG"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "grabbr.yaml"
	}
	return filepath.Join(home, ".grabbr", "config.yaml")
}

// dbPath picks the database file: $GRABBR_DB, then the configured path,
// then ~/.grabbr/grabbr.db.
func dbPath(configured string) string {
	if path := os.Getenv("GRABBR_DB"); path != "" {
		return path
	}
	if configured != "" {
		return configured
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "grabbr.db"
	}
	dir := filepath.Join(home, ".grabbr")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "grabbr.db")
}
