/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gnmatch/internal/iofs"
	"github.com/gnames/gnmatch/internal/iologger"
	app "github.com/gnames/gnmatch/pkg"
	"github.com/gnames/gnmatch/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir   string
	cfg       *config.Config
	logCloser io.Closer
)

// getRootCmd returns the root command with all subcommands attached.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
		Use:     "gnmatch",
		Short:   "GNmatch matches scientific names against a taxonomic backbone",
		Long: `GNmatch finds the best usage of a taxonomic backbone for a
scientific name. Candidates are scored by name similarity, authorship, rank
and classification, ambiguous names fall back to a higher rank.

Workflow:
  - index: build the main index from an SFGA archive or a GNverifier
    database
  - join:  map identifiers of datasets from datasets.yaml to the main index
  - match: match a name, a file of names or standard input

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (GNMATCH_*)
  3. Config file (~/.config/gnmatch/config.yaml)
  4. Built-in defaults

Environment Variables:
  Nested fields use underscores (match.max_candidates becomes
  GNMATCH_MATCH_MAX_CANDIDATES).

  See 'go doc github.com/gnames/gnmatch/pkg/config' for complete list.`,
		PersistentPreRunE: bootstrap,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	// Remove the automatic "gnmatch version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V (consistent with other gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for gnmatch")

	rootCmd.AddCommand(getIndexCmd(), getJoinCmd(), getMatchCmd())
	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.New().Log
	logCloser, err = iologger.Init(config.LogDir(homeDir), defaultLog, false)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	if err = iofs.EnsureDatasetsFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	cfg.Update(cfgViper.ToOptions())

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	// Reconfigure logging with user's settings
	if err = reconfigureLogging(cfg); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir),
		"command", cmd.Name(),
	)
	return nil
}

// reconfigureLogging reinitializes the logger with the loaded
// configuration. The log file started by bootstrap is appended to.
func reconfigureLogging(cfg *config.Config) error {
	if logCloser != nil {
		logCloser.Close()
	}
	var err error
	logCloser, err = iologger.Init(config.LogDir(cfg.HomeDir), cfg.Log, true)
	return err
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to happen
// once.
func Execute() {
	err := getRootCmd().Execute()
	if logCloser != nil {
		logCloser.Close()
	}
	if err != nil {
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables are
	// allowed. These match the fields included in config.ToOptions() - i.e.,
	// persistent configuration that can be stored in config.yaml.
	v.SetEnvPrefix("GNMATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Database configuration
	v.BindEnv("database.host", "GNMATCH_DATABASE_HOST")
	v.BindEnv("database.port", "GNMATCH_DATABASE_PORT")
	v.BindEnv("database.user", "GNMATCH_DATABASE_USER")
	v.BindEnv("database.password", "GNMATCH_DATABASE_PASSWORD")
	v.BindEnv("database.database", "GNMATCH_DATABASE_DATABASE")
	v.BindEnv("database.ssl_mode", "GNMATCH_DATABASE_SSL_MODE")
	v.BindEnv("database.data_source_id", "GNMATCH_DATABASE_DATA_SOURCE_ID")

	// Match configuration
	v.BindEnv("match.max_candidates", "GNMATCH_MATCH_MAX_CANDIDATES")
	v.BindEnv("match.fuzzy_prefix", "GNMATCH_MATCH_FUZZY_PREFIX")
	v.BindEnv("match.cache_size", "GNMATCH_MATCH_CACHE_SIZE")
	v.BindEnv("match.verbose", "GNMATCH_MATCH_VERBOSE")
	v.BindEnv("match.strict", "GNMATCH_MATCH_STRICT")

	// Log configuration
	v.BindEnv("log.level", "GNMATCH_LOG_LEVEL")
	v.BindEnv("log.format", "GNMATCH_LOG_FORMAT")
	v.BindEnv("log.destination", "GNMATCH_LOG_DESTINATION")

	// General configuration
	v.BindEnv("jobs_number", "GNMATCH_JOBS_NUMBER")
	v.BindEnv("batch_size", "GNMATCH_BATCH_SIZE")

	v.AutomaticEnv()
}
