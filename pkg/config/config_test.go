package config_test

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/gnames/gnmatch/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirs(t *testing.T) {
	home := "/home/user"

	tests := []struct {
		msg string
		fn  func(string) string
		res string
	}{
		{"config dir", config.ConfigDir,
			filepath.Join(home, ".config", "gnmatch")},
		{"cache dir", config.CacheDir,
			filepath.Join(home, ".cache", "gnmatch")},
		{"sfga dir", config.SFGADir,
			filepath.Join(home, ".cache", "gnmatch", "sfga")},
		{"store dir", config.StoreDir,
			filepath.Join(home, ".cache", "gnmatch", "store")},
		{"log dir", config.LogDir,
			filepath.Join(home, ".local", "share", "gnmatch", "logs")},
		{"config file", config.ConfigFilePath,
			filepath.Join(home, ".config", "gnmatch", "config.yaml")},
		{"datasets file", config.DatasetsFilePath,
			filepath.Join(home, ".config", "gnmatch", "datasets.yaml")},
	}

	for _, v := range tests {
		assert.Equal(t, v.res, v.fn(home), v.msg)
	}
}

func TestNew(t *testing.T) {
	cfg := config.New()
	require.NotNil(t, cfg)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "gnames", cfg.Database.Database)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 1, cfg.Database.DataSourceID)

	assert.Equal(t, 50, cfg.Match.MaxCandidates)
	assert.Equal(t, 1, cfg.Match.FuzzyPrefix)
	assert.Equal(t, 10_000, cfg.Match.CacheSize)
	assert.False(t, cfg.Match.Verbose)
	assert.False(t, cfg.Match.Strict)

	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "file", cfg.Log.Destination)

	assert.Equal(t, runtime.NumCPU(), cfg.JobsNumber)
	assert.Equal(t, 10_000, cfg.BatchSize)
	assert.Equal(t, "compact", cfg.Format)
	assert.Empty(t, cfg.HomeDir)
}

func TestOptionStrings(t *testing.T) {
	tests := []struct {
		msg   string
		opt   config.Option
		field func(*config.Config) string
		res   string
	}{
		{"host", config.OptDatabaseHost("  db.example.com "),
			func(c *config.Config) string { return c.Database.Host },
			"db.example.com"},
		{"empty host", config.OptDatabaseHost("  "),
			func(c *config.Config) string { return c.Database.Host },
			"localhost"},
		{"ssl mode", config.OptDatabaseSSLMode("REQUIRE"),
			func(c *config.Config) string { return c.Database.SSLMode },
			"require"},
		{"bad ssl mode", config.OptDatabaseSSLMode("invalid"),
			func(c *config.Config) string { return c.Database.SSLMode },
			"disable"},
		{"log level", config.OptLogLevel("Debug"),
			func(c *config.Config) string { return c.Log.Level }, "debug"},
		{"bad log level", config.OptLogLevel("trace"),
			func(c *config.Config) string { return c.Log.Level }, "info"},
		{"log format", config.OptLogFormat("tint"),
			func(c *config.Config) string { return c.Log.Format }, "tint"},
		{"bad log format", config.OptLogFormat("xml"),
			func(c *config.Config) string { return c.Log.Format }, "json"},
		{"log destination", config.OptLogDestination("stderr"),
			func(c *config.Config) string { return c.Log.Destination },
			"stderr"},
		{"bad log destination", config.OptLogDestination("stdin"),
			func(c *config.Config) string { return c.Log.Destination },
			"file"},
		{"format", config.OptFormat("TSV"),
			func(c *config.Config) string { return c.Format }, "tsv"},
		{"bad format", config.OptFormat("xml"),
			func(c *config.Config) string { return c.Format }, "compact"},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{v.opt})
			assert.Equal(t, v.res, v.field(cfg))
		})
	}
}

func TestOptionInts(t *testing.T) {
	tests := []struct {
		msg   string
		opt   config.Option
		field func(*config.Config) int
		res   int
	}{
		{"port", config.OptDatabasePort(3306),
			func(c *config.Config) int { return c.Database.Port }, 3306},
		{"zero port", config.OptDatabasePort(0),
			func(c *config.Config) int { return c.Database.Port }, 5432},
		{"data source", config.OptDatabaseDataSourceID(11),
			func(c *config.Config) int { return c.Database.DataSourceID }, 11},
		{"max candidates", config.OptMatchMaxCandidates(10),
			func(c *config.Config) int { return c.Match.MaxCandidates }, 10},
		{"negative max candidates", config.OptMatchMaxCandidates(-1),
			func(c *config.Config) int { return c.Match.MaxCandidates }, 50},
		{"fuzzy prefix", config.OptMatchFuzzyPrefix(3),
			func(c *config.Config) int { return c.Match.FuzzyPrefix }, 3},
		{"zero fuzzy prefix", config.OptMatchFuzzyPrefix(0),
			func(c *config.Config) int { return c.Match.FuzzyPrefix }, 1},
		{"negative fuzzy prefix", config.OptMatchFuzzyPrefix(-3),
			func(c *config.Config) int { return c.Match.FuzzyPrefix }, 1},
		{"cache size", config.OptMatchCacheSize(5),
			func(c *config.Config) int { return c.Match.CacheSize }, 5},
		{"jobs", config.OptJobsNumber(8),
			func(c *config.Config) int { return c.JobsNumber }, 8},
		{"zero jobs", config.OptJobsNumber(0),
			func(c *config.Config) int { return c.JobsNumber }, runtime.NumCPU()},
		{"batch size", config.OptBatchSize(500),
			func(c *config.Config) int { return c.BatchSize }, 500},
		{"negative batch size", config.OptBatchSize(-500),
			func(c *config.Config) int { return c.BatchSize }, 10_000},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{v.opt})
			assert.Equal(t, v.res, v.field(cfg))
		})
	}
}

func TestOptionDatasetKeys(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{config.OptDatasetKeys([]string{" 2011 ", "", "9880"})})
	assert.Equal(t, []string{"2011", "9880"}, cfg.DatasetKeys)

	cfg = config.New()
	cfg.Update([]config.Option{config.OptDatasetKeys([]string{" "})})
	assert.Nil(t, cfg.DatasetKeys)
}

func TestMultipleOptions(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptDatabaseHost("first.host.com"),
		config.OptMatchVerbose(true),
		config.OptDatabaseHost("second.host.com"),
	})

	assert.Equal(t, "second.host.com", cfg.Database.Host)
	assert.True(t, cfg.Match.Verbose)
	assert.Equal(t, "postgres", cfg.Database.Password)
}

func TestToOptions(t *testing.T) {
	t.Run("round trip of persistent fields", func(t *testing.T) {
		original := config.New()
		original.Update([]config.Option{
			config.OptDatabaseHost("test.host.com"),
			config.OptDatabasePort(3306),
			config.OptDatabaseUser("testuser"),
			config.OptDatabasePassword("testpass"),
			config.OptDatabaseDatabase("testdb"),
			config.OptDatabaseSSLMode("require"),
			config.OptDatabaseDataSourceID(3),
			config.OptMatchMaxCandidates(7),
			config.OptMatchFuzzyPrefix(2),
			config.OptMatchCacheSize(100),
			config.OptMatchVerbose(true),
			config.OptMatchStrict(true),
			config.OptLogLevel("debug"),
			config.OptLogFormat("text"),
			config.OptLogDestination("stdout"),
			config.OptJobsNumber(8),
			config.OptBatchSize(20),
		})

		newCfg := config.New()
		newCfg.Update(original.ToOptions())

		assert.Equal(t, original.Database, newCfg.Database)
		assert.Equal(t, original.Match, newCfg.Match)
		assert.Equal(t, original.Log, newCfg.Log)
		assert.Equal(t, original.JobsNumber, newCfg.JobsNumber)
		assert.Equal(t, original.BatchSize, newCfg.BatchSize)
	})

	t.Run("excludes runtime-only fields", func(t *testing.T) {
		cfg := config.New()
		cfg.Update([]config.Option{
			config.OptHomeDir("/custom/home"),
			config.OptFormat("csv"),
			config.OptDatasetKeys([]string{"2011"}),
		})

		newCfg := config.New()
		newCfg.Update(cfg.ToOptions())

		assert.Empty(t, newCfg.HomeDir)
		assert.Equal(t, "compact", newCfg.Format)
		assert.Nil(t, newCfg.DatasetKeys)
	})
}
