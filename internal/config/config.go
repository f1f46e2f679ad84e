// Package config handles the XDG configuration directory, the optional
// config.toml file, and environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

const (
	// AppName is the application directory name.
	AppName = "taskman"

	// ConfigFile is the optional TOML config filename.
	ConfigFile = "config.toml"

	// DefaultDatabase is the SQLite database filename.
	DefaultDatabase = "tasks.db"

	// DefaultExportFile is the export target when none is given.
	DefaultExportFile = "tasks-backup.json"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string `toml:"-"`

	// Debug enables debug logging.
	Debug bool `toml:"-"`

	// Quiet suppresses informational output.
	Quiet bool `toml:"-"`

	// Database is the SQLite file. Relative paths resolve against Dir.
	Database string `toml:"database" env:"TASKMAN_DATABASE"`

	// DefaultFilter and DefaultSort seed the list view.
	DefaultFilter string `toml:"default_filter" env:"TASKMAN_DEFAULT_FILTER"`
	DefaultSort   string `toml:"default_sort" env:"TASKMAN_DEFAULT_SORT"`

	// ExportFile is the default export target.
	ExportFile string `toml:"export_file" env:"TASKMAN_EXPORT_FILE"`

	// LogLevel is the minimum level logged to stderr.
	LogLevel string `toml:"log_level" env:"TASKMAN_LOG_LEVEL"`
}

// New creates a Config for the default or specified config directory,
// applying config.toml from that directory (if present) and then
// environment overrides.
// If configDir is empty, uses XDG_CONFIG_HOME/taskman or $HOME/.config/taskman.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{
		Dir:           dir,
		Database:      DefaultDatabase,
		DefaultFilter: "all",
		DefaultSort:   "manual",
		ExportFile:    DefaultExportFile,
		LogLevel:      "warn",
	}

	if err := cfg.loadFile(); err != nil {
		return nil, err
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// loadFile decodes config.toml over cfg. A missing file is not an error;
// unknown keys are.
func (c *Config) loadFile() error {
	md, err := toml.DecodeFile(c.FilePath(), c)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("invalid %s: %w", ConfigFile, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return fmt.Errorf("invalid %s: unknown keys: %s", ConfigFile, strings.Join(keys, ", "))
	}
	return nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// FilePath returns the path to config.toml.
func (c *Config) FilePath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// DatabasePath returns the resolved SQLite database path.
func (c *Config) DatabasePath() string {
	db := c.Database
	if db == "" {
		db = DefaultDatabase
	}
	if filepath.IsAbs(db) {
		return db
	}
	return filepath.Join(c.Dir, db)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}
