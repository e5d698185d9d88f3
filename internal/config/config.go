// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/storehours/internal/logging"
)

// Storage drivers.
const (
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// Batch error policies.
const (
	OnErrorSkip    = "skip"    // drop a malformed line and keep going
	OnErrorAbort   = "abort"   // stop the batch at the first malformed line
	OnErrorPartial = "partial" // keep the good clauses of a malformed line
)

// Config holds the application configuration.
type Config struct {
	Input   InputConfig   `toml:"input"`
	Batch   BatchConfig   `toml:"batch"`
	Storage StorageConfig `toml:"storage"`
	Log     LogConfig     `toml:"log"`
}

// InputConfig holds the source file settings.
type InputConfig struct {
	Path string `toml:"path"` // "-" reads stdin
}

// BatchConfig holds parsing and loading settings.
type BatchConfig struct {
	Workers   int    `toml:"workers"`
	OnError   string `toml:"on_error"`   // "skip", "abort", "partial"
	LargeFile bool   `toml:"large_file"` // spool to disk and bulk-load
	SpoolPath string `toml:"spool_path"`
}

// StorageConfig holds database settings.
type StorageConfig struct {
	Driver string `toml:"driver"` // "sqlite", "mysql", "postgres"
	DSN    string `toml:"dsn"`    // file path for sqlite
	Table  string `toml:"table"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `toml:"level"`  // zerolog level name
	Format string `toml:"format"` // "console" or "json"
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Input: InputConfig{
			Path: "store_hours.txt",
		},
		Batch: BatchConfig{
			Workers:   4,
			OnError:   OnErrorSkip,
			LargeFile: false,
			SpoolPath: "temp.txt",
		},
		Storage: StorageConfig{
			Driver: DriverSQLite,
			DSN:    defaultDBPath(),
			Table:  "store_hours",
		},
		Log: LogConfig{
			Level:  "info",
			Format: logging.FormatConsole,
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "storehours.db"
	}
	return filepath.Join(home, ".local", "share", "storehours", "storehours.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "storehours", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	// Try to load from file (not an error if it doesn't exist)
	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Input.Path = expandPath(cfg.Input.Path)
	cfg.Batch.SpoolPath = expandPath(cfg.Batch.SpoolPath)
	if cfg.Storage.Driver == DriverSQLite {
		cfg.Storage.DSN = expandPath(cfg.Storage.DSN)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("STOREHOURS_INPUT"); v != "" {
		cfg.Input.Path = v
	}

	// Batch overrides
	if v := os.Getenv("STOREHOURS_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("STOREHOURS_WORKERS: %w", err)
		}
		cfg.Batch.Workers = n
	}
	if v := os.Getenv("STOREHOURS_ON_ERROR"); v != "" {
		cfg.Batch.OnError = v
	}
	if v := os.Getenv("STOREHOURS_LARGE_FILE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("STOREHOURS_LARGE_FILE: %w", err)
		}
		cfg.Batch.LargeFile = b
	}
	if v := os.Getenv("STOREHOURS_SPOOL_PATH"); v != "" {
		cfg.Batch.SpoolPath = v
	}

	// Storage overrides
	if v := os.Getenv("STOREHOURS_DB_DRIVER"); v != "" {
		cfg.Storage.Driver = v
	}
	if v := os.Getenv("STOREHOURS_DB_DSN"); v != "" {
		cfg.Storage.DSN = v
	}
	if v := os.Getenv("STOREHOURS_DB_TABLE"); v != "" {
		cfg.Storage.Table = v
	}

	// Log overrides
	if v := os.Getenv("STOREHOURS_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("STOREHOURS_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}

	return nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Input.Path == "" {
		return errors.New("input path must be set")
	}

	if c.Batch.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Batch.Workers)
	}
	if !isValidOnError(c.Batch.OnError) {
		return fmt.Errorf("on_error must be one of skip, abort, partial, got %q", c.Batch.OnError)
	}
	if c.Batch.LargeFile && c.Batch.SpoolPath == "" {
		return errors.New("spool_path must be set when large_file is enabled")
	}

	switch c.Storage.Driver {
	case DriverSQLite, DriverMySQL, DriverPostgres:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Storage.DSN == "" {
		return errors.New("dsn must be set")
	}
	if !tableName.MatchString(c.Storage.Table) {
		return fmt.Errorf("invalid table name %q", c.Storage.Table)
	}

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case logging.FormatConsole, logging.FormatJSON:
	default:
		return fmt.Errorf("log format must be console or json, got %q", c.Log.Format)
	}

	return nil
}

func isValidOnError(policy string) bool {
	switch policy {
	case OnErrorSkip, OnErrorAbort, OnErrorPartial:
		return true
	default:
		return false
	}
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
