package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDialect      = "sqlite"
	DefaultDSN          = "./pressroom.db"
	DefaultMaxOpenConns = 10
	DefaultMaxIdleConns = 5
	DefaultLogLevel     = "info"
	DefaultMaxSizeMB    = 50
	DefaultMaxBackups   = 5
	DefaultMaxAgeDays   = 30
)

// Environment variables that override the config file.
const (
	EnvDialect  = "PRESSROOM_DIALECT"
	EnvDSN      = "PRESSROOM_DSN"
	EnvLogLevel = "PRESSROOM_LOG_LEVEL"
)

// Config is the runtime configuration of the pressroom binary.
type Config struct {
	Database Database
	Log      Log
}

// Database selects the engine and connection pool limits.
type Database struct {
	Dialect      string
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
}

// Log controls verbosity and the optional rotating log file.
type Log struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Queries    bool
}

// Default returns a Config pointing at a local SQLite file.
func Default() Config {
	return Config{
		Database: Database{
			Dialect:      DefaultDialect,
			DSN:          DefaultDSN,
			MaxOpenConns: DefaultMaxOpenConns,
			MaxIdleConns: DefaultMaxIdleConns,
		},
		Log: Log{
			Level:      DefaultLogLevel,
			MaxSizeMB:  DefaultMaxSizeMB,
			MaxBackups: DefaultMaxBackups,
			MaxAgeDays: DefaultMaxAgeDays,
		},
	}
}

// Load reads the YAML file at path (skipped when path is empty), applies it
// on top of the defaults, then applies environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		var y yamlConfig
		if err := yaml.Unmarshal(b, &y); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
		y.apply(&cfg)
	}

	applyEnv(&cfg)
	return cfg, nil
}

// Validate reports the first setting that cannot be used to open a store.
func (c Config) Validate() error {
	switch strings.ToLower(c.Database.Dialect) {
	case "sqlite", "mysql", "postgres":
	default:
		return fmt.Errorf("unsupported database dialect %q (use sqlite, mysql or postgres)", c.Database.Dialect)
	}
	if c.Database.DSN == "" {
		return errors.New("database dsn is required")
	}
	if c.Database.MaxOpenConns < 0 || c.Database.MaxIdleConns < 0 {
		return errors.New("connection pool limits must not be negative")
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvDialect); v != "" {
		cfg.Database.Dialect = v
	}
	if v := os.Getenv(EnvDSN); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
}

type yamlConfig struct {
	Database struct {
		Dialect      string `yaml:"dialect"`
		DSN          string `yaml:"dsn"`
		MaxOpenConns *int   `yaml:"max_open_conns"`
		MaxIdleConns *int   `yaml:"max_idle_conns"`
	} `yaml:"database"`

	Log struct {
		Level      string `yaml:"level"`
		File       string `yaml:"file"`
		MaxSizeMB  *int   `yaml:"max_size_mb"`
		MaxBackups *int   `yaml:"max_backups"`
		MaxAgeDays *int   `yaml:"max_age_days"`
		Queries    *bool  `yaml:"queries"`
	} `yaml:"log"`
}

func (y yamlConfig) apply(cfg *Config) {
	if y.Database.Dialect != "" {
		cfg.Database.Dialect = y.Database.Dialect
	}
	if y.Database.DSN != "" {
		cfg.Database.DSN = y.Database.DSN
	}
	if y.Database.MaxOpenConns != nil {
		cfg.Database.MaxOpenConns = *y.Database.MaxOpenConns
	}
	if y.Database.MaxIdleConns != nil {
		cfg.Database.MaxIdleConns = *y.Database.MaxIdleConns
	}

	if y.Log.Level != "" {
		cfg.Log.Level = y.Log.Level
	}
	if y.Log.File != "" {
		cfg.Log.File = y.Log.File
	}
	if y.Log.MaxSizeMB != nil {
		cfg.Log.MaxSizeMB = *y.Log.MaxSizeMB
	}
	if y.Log.MaxBackups != nil {
		cfg.Log.MaxBackups = *y.Log.MaxBackups
	}
	if y.Log.MaxAgeDays != nil {
		cfg.Log.MaxAgeDays = *y.Log.MaxAgeDays
	}
	if y.Log.Queries != nil {
		cfg.Log.Queries = *y.Log.Queries
	}
}
