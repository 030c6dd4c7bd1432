// Package config loads the per-library settings file .arda/config.json.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/natefinch/atomic"
	"github.com/tailscale/hujson"
)

// Directory and file names inside a library root.
const (
	DirName       = ".arda"
	FileName      = "config.json"
	DefaultDBName = "arda.db"
)

// Environment overrides. They may also be set in <root>/.env.
const (
	EnvDBPath  = "ARDA_DB_PATH"
	EnvLogMode = "ARDA_LOG_MODE"
	EnvBibDir  = "ARDA_BIB_DIR"
)

// Config represents the library configuration
type Config struct {
	Version string `json:"version"`
	DBPath  string `json:"db_path"`
	// BibDir is where relative export paths land.
	BibDir  string `json:"bib_dir,omitempty"`
	LogMode string `json:"log_mode,omitempty"` // "dev" or "prod"
	// DuplicateFields are compared by duplicate detection when the caller
	// names none.
	DuplicateFields     []string `json:"duplicate_fields,omitempty"`
	DefaultExportFields []string `json:"default_export_fields,omitempty"`
}

// Default returns the configuration of a fresh library rooted at dir.
func Default(dir string) *Config {
	return &Config{
		Version:         "1",
		DBPath:          filepath.Join(dir, DirName, DefaultDBName),
		LogMode:         "dev",
		DuplicateFields: []string{"title"},
	}
}

// LoadConfig reads <dir>/.arda/config.json, which may carry comments and
// trailing commas. A missing file yields the defaults. Values from the
// environment, then from <dir>/.env, override the file. Relative paths
// resolve against dir.
func LoadConfig(dir string) (*Config, error) {
	cfg := Default(dir)

	path := filepath.Join(dir, DirName, FileName)
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := parse(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := applyEnv(dir, cfg); err != nil {
		return nil, err
	}

	cfg.DBPath = absolute(dir, cfg.DBPath)
	if cfg.BibDir != "" {
		cfg.BibDir = absolute(dir, cfg.BibDir)
	}
	return cfg, nil
}

func parse(data []byte, cfg *Config) error {
	std, err := hujson.Standardize(data)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(std))
	dec.DisallowUnknownFields()
	return dec.Decode(cfg)
}

// applyEnv layers process environment over .env values over the file.
func applyEnv(dir string, cfg *Config) error {
	dotenv, err := godotenv.Read(filepath.Join(dir, ".env"))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to read .env: %w", err)
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}

	if v, ok := lookup(EnvDBPath); ok && v != "" {
		cfg.DBPath = v
	}
	if v, ok := lookup(EnvLogMode); ok && v != "" {
		cfg.LogMode = strings.ToLower(v)
	}
	if v, ok := lookup(EnvBibDir); ok && v != "" {
		cfg.BibDir = v
	}
	return nil
}

func absolute(dir, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

// SaveConfig writes config.json to directory
func SaveConfig(dir string, cfg *Config) error {
	ardaDir := filepath.Join(dir, DirName)
	if err := os.MkdirAll(ardaDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s dir: %w", DirName, err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(ardaDir, FileName)
	if err := atomic.WriteFile(path, bytes.NewReader(append(data, '\n'))); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
