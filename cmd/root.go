/*
Copyright © 2025 pilipandr770

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
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/pilipandr770/sekretar-sub004/internal/iofs"
	"github.com/pilipandr770/sekretar-sub004/internal/iologger"
	app "github.com/pilipandr770/sekretar-sub004/pkg"
	"github.com/pilipandr770/sekretar-sub004/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	cfg     *config.Config
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
	Use:     "sekretardb",
	Short:   "sekretardb provisions and verifies the sekretar database",
	Long: `sekretardb manages the lifecycle of the sekretar backend database.

It brings a SQLite or PostgreSQL database from any state to a ready one:
creates missing tables and indexes, seeds the baseline records (system
tenant, roles, admin account) and grades the result with health checks.
Every operation is idempotent, so running it again is always safe.

Subcommands:
  init    run the full initialization pipeline
  status  report schema, migration and seeding state
  health  run the health check battery
  repair  fix missing tables, indexes and seeds
  reset   drop everything and re-initialize (not in production)

Configuration precedence (highest to lowest):
  1. Environment variables (SEKRETAR_*)
  2. Config file (~/.config/sekretar/config.yaml)
  3. Built-in defaults

Environment variables use the SEKRETAR_ prefix with underscores for
nesting (database.url becomes SEKRETAR_DATABASE_URL):

  SEKRETAR_DATABASE_URL         connection URL (sqlite:// or postgresql://)
  SEKRETAR_ENVIRONMENT          development, testing or production
  SEKRETAR_TESTING              mark a test run
  SEKRETAR_ABORT_ON_DB_FAILURE  override the environment policy
  SEKRETAR_SEED_ADMIN_EMAIL     administrative account email
  SEKRETAR_SEED_ADMIN_PASSWORD  initial administrator password
  SEKRETAR_LOG_LEVEL            debug, info, warn or error`,
	PersistentPreRunE: bootstrap,
	SilenceErrors:     true,
	SilenceUsage:      true,
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

	// Logging starts with hardcoded defaults and is reconfigured once
	// the user's settings are known.
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if err = iologger.Init(config.LogDir(homeDir), defaultLog, true); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
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
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	if err = iologger.Init(config.LogDir(homeDir), cfg.Log, true); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// The connection URL resolves to derived fields exactly once.
	dc, err := config.ParseDatabaseURL(cfg.Database.URL)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	if cfg.Database.ConnectTimeout > 0 {
		dc.ConnectTimeout = cfg.Database.ConnectTimeout
	}
	cfg.Database = dc

	if vr := cfg.Database.Validate(); !vr.Valid {
		for _, issue := range vr.Issues {
			gn.Warn("Configuration problem: %s", issue)
		}
	}

	slog.Info("configuration loaded",
		"config_file", config.ConfigFilePath(homeDir),
		"dialect", string(cfg.Database.Dialect),
		"environment", cfg.Environment)

	return nil
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.Flags().BoolP("version", "V", false, "version for sekretardb")

	rootCmd.AddCommand(getInitCmd())
	rootCmd.AddCommand(getStatusCmd())
	rootCmd.AddCommand(getHealthCmd())
	rootCmd.AddCommand(getRepairCmd())
	rootCmd.AddCommand(getResetCmd())
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
	// Environment variables are bound manually so the allowed set stays
	// explicit and matches the fields of config.ToOptions().
	v.SetEnvPrefix("SEKRETAR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("database.url", "SEKRETAR_DATABASE_URL")
	v.BindEnv("database.connect_timeout", "SEKRETAR_DATABASE_CONNECT_TIMEOUT")

	v.BindEnv("seed.tenant_name", "SEKRETAR_SEED_TENANT_NAME")
	v.BindEnv("seed.admin_email", "SEKRETAR_SEED_ADMIN_EMAIL")
	v.BindEnv("seed.admin_password", "SEKRETAR_SEED_ADMIN_PASSWORD")

	v.BindEnv("log.level", "SEKRETAR_LOG_LEVEL")
	v.BindEnv("log.format", "SEKRETAR_LOG_FORMAT")
	v.BindEnv("log.destination", "SEKRETAR_LOG_DESTINATION")

	v.BindEnv("environment", "SEKRETAR_ENVIRONMENT")
	v.BindEnv("testing", "SEKRETAR_TESTING")
	v.BindEnv("abort_on_db_failure", "SEKRETAR_ABORT_ON_DB_FAILURE")

	v.AutomaticEnv()
}
