package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"weighttracker/internal/adapter/memory"
	"weighttracker/internal/adapter/postgres"
	"weighttracker/internal/adapter/sqlite"
	"weighttracker/internal/config"
	"weighttracker/internal/domain"
	"weighttracker/internal/logger"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	// configFile is set by the --config flag.
	configFile string

	// cfg is loaded by PersistentPreRunE for every command except version.
	cfg *config.Config
)

// store is a PreferenceStore that holds resources until closed.
type store interface {
	domain.PreferenceStore
	Close() error
}

var rootCmd = &cobra.Command{
	Use:           "weighttracker",
	Short:         "Daily weight log with recent-change tracking",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == versionCmd.Name() {
			return nil
		}

		c, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := c.Validate(); err != nil {
			return err
		}
		if err := logger.Init(c.LogLevel, c.LogPretty); err != nil {
			return err
		}
		cfg = c
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: ./weighttracker.yaml)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(accountCmd)
}

// openStore opens the preference store selected by c.Backend.
func openStore(c *config.Config) (store, error) {
	switch c.Backend {
	case config.BackendMemory:
		return memory.New(), nil
	case config.BackendSQLite:
		db, err := sqlite.Open(c.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		return db, nil
	case config.BackendPostgres:
		db, err := postgres.Open(c.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unknown backend %q", c.Backend)
	}
}
