// Package iotesting provides shared utilities for integration tests.
package iotesting

import (
	"os"
	"strconv"

	"github.com/gnames/gnmatch/pkg/config"
)

// TestDatabaseName is the database used by all integration tests, so
// tests never touch a production database.
const TestDatabaseName = "gnmatch_test"

// GetTestDatabaseConfig returns default database settings overridden by
// GNMATCH_DATABASE_* environment variables. The database name is always
// TestDatabaseName.
func GetTestDatabaseConfig() *config.DatabaseConfig {
	cfg := config.New()

	var opts []config.Option
	if s := os.Getenv("GNMATCH_DATABASE_HOST"); s != "" {
		opts = append(opts, config.OptDatabaseHost(s))
	}
	if s := os.Getenv("GNMATCH_DATABASE_PORT"); s != "" {
		if port, err := strconv.Atoi(s); err == nil {
			opts = append(opts, config.OptDatabasePort(port))
		}
	}
	if s := os.Getenv("GNMATCH_DATABASE_USER"); s != "" {
		opts = append(opts, config.OptDatabaseUser(s))
	}
	if s := os.Getenv("GNMATCH_DATABASE_PASSWORD"); s != "" {
		opts = append(opts, config.OptDatabasePassword(s))
	}
	opts = append(opts, config.OptDatabaseDatabase(TestDatabaseName))
	cfg.Update(opts)
	return &cfg.Database
}
