// Package config loads catalog settings with precedence:
// 1. Command-line flags (highest priority, applied by the CLI).
// 2. Environment variables.
// 3. YAML config file.
// 4. Default values (lowest priority).
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultFile is read when no config path is given and it exists in the
// working directory.
const DefaultFile = "shelf.yaml"

// Environment variables consulted by ApplyEnv.
const (
	EnvDatabase      = "SHELF_DB"
	EnvLogLevel      = "SHELF_LOG_LEVEL"
	EnvExportDir     = "SHELF_EXPORT_DIR"
	EnvConfirmDelete = "SHELF_CONFIRM_DELETE"
)

// Config holds catalog settings.
type Config struct {
	// Database is the SQLite file holding the catalog.
	Database string `yaml:"database"`

	// ExportDir is the directory suggested for CSV exports.
	ExportDir string `yaml:"export_dir"`

	// ConfirmDelete asks before a selected row is deleted.
	ConfirmDelete bool `yaml:"confirm_delete"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// Default returns the settings used when nothing else is configured.
func Default() Config {
	return Config{
		Database:  "katalog.db",
		ExportDir: ".",
		LogLevel:  "info",
	}
}

// Load reads settings from path on top of Default. An empty path reads
// DefaultFile if present and otherwise returns the defaults; an explicit
// path that does not exist is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	if err := decode(bytes.NewReader(data), &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// decode overlays YAML onto cfg. Unknown keys are rejected so a typo does
// not silently fall back to a default.
func decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// ApplyEnv overrides settings from environment variables that are set.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv(EnvDatabase); v != "" {
		c.Database = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := getenv(EnvExportDir); v != "" {
		c.ExportDir = v
	}
	if v := getenv(EnvConfirmDelete); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvConfirmDelete, v, err)
		}
		c.ConfirmDelete = b
	}
	return nil
}

// Validate checks that all required values are present and valid.
func (c Config) Validate() error {
	if c.Database == "" {
		return errors.New("database path is required")
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", s)
}
