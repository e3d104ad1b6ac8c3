package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sakif/workoutify/internal/config"
	"github.com/sakif/workoutify/internal/output"
	sqliteRepo "github.com/sakif/workoutify/internal/repository/sqlite"
)

// app carries the state shared by every subcommand. It is rebuilt for each
// command tree so tests can run commands side by side.
type app struct {
	flagConfig string
	flagDB     string
	flagJSON   bool

	cfg    config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "workoutify",
		Short:         "Admin tools for the Workoutify database",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.flagConfig)
			if err != nil {
				return err
			}
			if a.flagDB != "" {
				cfg.DBPath = a.flagDB
			}
			a.cfg = cfg
			a.logger = cfg.NewLogger(cmd.ErrOrStderr())
			return nil
		},
	}

	root.PersistentFlags().StringVar(&a.flagConfig, "config", "", "config file (default: ./workoutify.yaml if present)")
	root.PersistentFlags().StringVar(&a.flagDB, "db", "", "SQLite database path (overrides config)")
	root.PersistentFlags().BoolVar(&a.flagJSON, "json", false, "output as JSON")

	root.AddCommand(
		a.newSeedCmd(),
		a.newTablesCmd(),
		a.newRowsCmd(),
		a.newRowCmd(),
		a.newDeleteCmd(),
		a.newInspectCmd(),
		a.newSummaryCmd(),
		a.newFoodsCmd(),
		newVersionCmd(),
	)
	return root
}

// openDB opens (and migrates) the configured database, creating its
// directory first. The caller must Close it.
func (a *app) openDB() (*sqliteRepo.DB, error) {
	if a.cfg.DBPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(a.cfg.DBPath), 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}
	db, err := sqliteRepo.New(a.cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return db, nil
}

func (a *app) printer(cmd *cobra.Command) *output.Printer {
	return output.New(cmd.OutOrStdout(), a.flagJSON)
}
