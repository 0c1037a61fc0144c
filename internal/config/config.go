package config

import (
	"errors"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	"lifeboard/internal/store"
)

const DefaultConfigFileName = "config.toml"

// Config is the application-level configuration, separate from the user
// preferences that live in the state document.
type Config struct {
	DBPath    string `toml:"db_path"`
	Currency  string `toml:"currency"`
	BackupDir string `toml:"backup_dir"`
}

// LoadOrCreate reads the TOML config at path, writing one with defaults on
// first run.
func LoadOrCreate(path string) (Config, error) {
	cfg, err := defaultConfig()
	if err != nil {
		return cfg, err
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.DBPath == "" {
		cfg.DBPath, err = store.DefaultDBPath()
		if err != nil {
			return cfg, err
		}
	}
	if cfg.Currency == "" {
		cfg.Currency = "£"
	}
	return cfg, nil
}

// DefaultConfigPath returns ~/.config/lifeboard/config.toml
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "lifeboard", DefaultConfigFileName), nil
}

func write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultConfig() (Config, error) {
	dbPath, err := store.DefaultDBPath()
	if err != nil {
		return Config{}, err
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, err
	}
	return Config{
		DBPath:    dbPath,
		Currency:  "£",
		BackupDir: home,
	}, nil
}
