package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptDatabaseHost sets the PostgreSQL server hostname or IP address.
func OptDatabaseHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Host", s) {
			c.Database.Host = s
		}
	}
}

// OptDatabasePort sets the PostgreSQL server port number.
func OptDatabasePort(i int) Option {
	return func(c *Config) {
		if isValidInt("Database Port", i) {
			c.Database.Port = i
		}
	}
}

// OptDatabaseUser sets the PostgreSQL database username.
func OptDatabaseUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database User", s) {
			c.Database.User = s
		}
	}
}

// OptDatabasePassword sets the PostgreSQL database password.
func OptDatabasePassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Password", s) {
			c.Database.Password = s
		}
	}
}

// OptDatabaseDatabase sets the PostgreSQL database name to connect to.
func OptDatabaseDatabase(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Name", s) {
			c.Database.Database = s
		}
	}
}

// OptDatabaseSSLMode sets the SSL connection mode.
// Valid values: "disable", "require", "verify-ca", "verify-full".
func OptDatabaseSSLMode(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidEnum("Database.SSLMode", s) {
			c.Database.SSLMode = s
		}
	}
}

// OptDatabaseDataSourceID sets the gnverifier data source that provides
// the backbone.
func OptDatabaseDataSourceID(i int) Option {
	return func(c *Config) {
		if isValidInt("Data Source ID", i) {
			c.Database.DataSourceID = i
		}
	}
}

// OptMatchMaxCandidates sets the number of index hits kept per name.
func OptMatchMaxCandidates(i int) Option {
	return func(c *Config) {
		if isValidInt("Max Candidates", i) {
			c.Match.MaxCandidates = i
		}
	}
}

// OptMatchFuzzyPrefix sets the number of leading characters that must
// be equal for fuzzy hits. The first character is always compared.
func OptMatchFuzzyPrefix(i int) Option {
	return func(c *Config) {
		if isValidInt("Fuzzy Prefix", i) {
			c.Match.FuzzyPrefix = i
		}
	}
}

// OptMatchCacheSize sets the size of the cache of parsed names.
func OptMatchCacheSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Cache Size", i) {
			c.Match.CacheSize = i
		}
	}
}

// OptMatchVerbose adds alternatives and scoring notes to results.
func OptMatchVerbose(b bool) Option {
	return func(c *Config) {
		c.Match.Verbose = b
	}
}

// OptMatchStrict disables fuzzy matching and higher rank fallbacks.
func OptMatchStrict(b bool) Option {
	return func(c *Config) {
		c.Match.Strict = b
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of concurrent workers.
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptBatchSize sets the number of records a worker gets at once.
func OptBatchSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Batch Size", i) {
			c.BatchSize = i
		}
	}
}

// OptFormat sets the output format of matching results.
// Valid values: "compact", "pretty", "csv", "tsv".
// Runtime-only field - not in ToOptions().
func OptFormat(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidEnum("Format", s) {
			c.Format = s
		}
	}
}

// OptDatasetKeys limits join datasets to the given keys.
// Runtime-only field - not in ToOptions().
func OptDatasetKeys(ss []string) Option {
	var keys []string
	for _, v := range ss {
		if v = strings.TrimSpace(v); v != "" {
			keys = append(keys, v)
		}
	}
	return func(c *Config) {
		if len(keys) > 0 {
			c.DatasetKeys = keys
		}
	}
}

// OptHomeDir sets the home directory for config, cache, and log locations.
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
