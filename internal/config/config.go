// Package config resolves snip settings from defaults, an optional YAML file
// and SNIP_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables overriding file settings.
const (
	EnvStorageDriver   = "SNIP_STORAGE_DRIVER"
	EnvFilePath        = "SNIP_FILE_PATH"
	EnvSQLitePath      = "SNIP_SQLITE_PATH"
	EnvMetricsTextfile = "SNIP_METRICS_TEXTFILE"
)

// DefaultFileName is the config file looked up under <user config dir>/snip.
const DefaultFileName = "config.yaml"

// Config is the resolved snip configuration.
type Config struct {
	Storage         Storage `yaml:"storage"`
	MetricsTextfile string  `yaml:"metrics_textfile"`

	// Source is the config file that was read, empty when none was found.
	Source string `yaml:"-"`
}

// Storage selects the persistence adapter.
type Storage struct {
	Driver     string `yaml:"driver"`
	FilePath   string `yaml:"file_path"`
	SQLitePath string `yaml:"sqlite_path"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{Storage: Storage{Driver: "file"}}
}

// Load reads the config file at path, then applies environment overrides.
// An explicit path must exist; with an empty path the default location is
// used only when present.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		def, err := DefaultPath()
		if err == nil {
			path = def
		}
	}
	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			if explicit || !errors.Is(err, fs.ErrNotExist) {
				return Config{}, err
			}
		} else {
			cfg.Source = path
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

// DefaultPath resolves <user config dir>/snip/config.yaml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "snip", DefaultFileName), nil
}

func loadFile(path string, cfg *Config) error {
	b, err := os.ReadFile(path) // #nosec G304: path supplied by the user
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if len(strings.TrimSpace(string(b))) == 0 {
		return nil
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvStorageDriver); v != "" {
		cfg.Storage.Driver = v
	}
	if v := os.Getenv(EnvFilePath); v != "" {
		cfg.Storage.FilePath = v
	}
	if v := os.Getenv(EnvSQLitePath); v != "" {
		cfg.Storage.SQLitePath = v
	}
	if v := os.Getenv(EnvMetricsTextfile); v != "" {
		cfg.MetricsTextfile = v
	}
}
