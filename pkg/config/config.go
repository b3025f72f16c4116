// Package config provides configuration management for gnmatch.
//
// The package does no I/O. Validation functions write user-facing
// warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
//   - Default config (from New()) is always valid.
//   - All mutations go through Option functions.
//   - Invalid options are rejected with gn.Warn(), config stays valid.
//   - ToOptions() converts persistent fields (those in config.yaml).
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Database: host, port, user, password, database, ssl_mode,
//     data_source_id
//   - Match: max_candidates, fuzzy_prefix, cache_size, verbose, strict
//   - Log: level, format, destination
//   - General: jobs_number, batch_size
//
// Runtime-only fields (CLI flags only):
//   - Format, DatasetKeys (per-command)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use GNMATCH_ prefix with underscores for nesting:
//
//	GNMATCH_DATABASE_HOST=localhost
//	GNMATCH_MATCH_MAX_CANDIDATES=50
//	GNMATCH_LOG_LEVEL=info
//	GNMATCH_JOBS_NUMBER=8
package config

import (
	"runtime"
)

// Config represents the complete gnmatch configuration.
type Config struct {
	// Database contains settings of a gnverifier PostgreSQL database that
	// can serve as a backbone source.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Match contains settings of the matching engine.
	Match MatchConfig `mapstructure:"match" yaml:"match"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers for join index builds
	// and batch matching. Default is the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// BatchSize is the number of records a worker gets at once.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`

	// Format of matching output: "compact" (JSON), "pretty" (indented JSON),
	// "csv" or "tsv". Runtime-only.
	Format string

	// DatasetKeys limits join datasets to the given keys. Empty means all
	// datasets from datasets.yaml. Runtime-only.
	DatasetKeys []string

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// DataSourceID is the gnverifier data source used as the backbone.
	// Default is 1 (Catalogue of Life).
	DataSourceID int `mapstructure:"data_source_id" yaml:"data_source_id"`
}

// MatchConfig contains settings of the matching engine.
type MatchConfig struct {
	// MaxCandidates limits the number of index hits per name.
	MaxCandidates int `mapstructure:"max_candidates" yaml:"max_candidates"`

	// FuzzyPrefix is the number of leading characters that have to be
	// equal for a fuzzy hit.
	FuzzyPrefix int `mapstructure:"fuzzy_prefix" yaml:"fuzzy_prefix"`

	// CacheSize is the number of parsed names kept in memory.
	CacheSize int `mapstructure:"cache_size" yaml:"cache_size"`

	// Verbose adds scoring notes and alternatives to results.
	Verbose bool `mapstructure:"verbose" yaml:"verbose"`

	// Strict disables fuzzy matching and higher rank fallbacks.
	Strict bool `mapstructure:"strict" yaml:"strict"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with default values.
func New() *Config {
	res := &Config{
		Database: DatabaseConfig{
			Host:         "localhost",
			Port:         5432,
			User:         "postgres",
			Password:     "postgres",
			Database:     "gnames",
			SSLMode:      "disable",
			DataSourceID: 1,
		},
		Match: MatchConfig{
			MaxCandidates: 50,
			FuzzyPrefix:   1,
			CacheSize:     10_000,
		},
		Log: LogConfig{
			Format:      "json",
			Level:       "info",
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(),
		BatchSize:  10_000,
		Format:     "compact",
	}

	return res
}
