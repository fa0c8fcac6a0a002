package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/delivery/internal/cli/config"
	"github.com/leapstack-labs/delivery/internal/cli/output"
	"github.com/leapstack-labs/delivery/internal/seed"
	"github.com/leapstack-labs/delivery/internal/state"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Store    *state.SQLiteStore
	Renderer *output.Renderer
}

// NewCommandContext opens the catalog store and ensures its schema.
// Returns the context and a cleanup function that must be called (typically via defer).
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	cc := NewCommandContextWithoutStore(cmd)

	store, err := openStore(cmd, cc.Cfg, cc.Logger)
	if err != nil {
		return nil, nil, err
	}
	cc.Store = store

	cleanup := func() {
		if err := store.Close(); err != nil {
			cc.Logger.Warn("failed to close catalog database", slog.String("error", err.Error()))
		}
	}

	return cc, cleanup, nil
}

// NewCommandContextWithoutStore creates a CommandContext without a store.
// Useful for commands that don't need database access.
func NewCommandContextWithoutStore(cmd *cobra.Command) *CommandContext {
	cfg := config.GetConfig(cmd.Context())
	logger := config.GetLogger(cmd.Context())
	r := output.NewRenderer(cmd.OutOrStdout(), output.Mode(cfg.OutputFormat))

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

func openStore(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) (*state.SQLiteStore, error) {
	if cfg.DatabasePath != ":memory:" {
		dir := filepath.Dir(cfg.DatabasePath)
		if dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
	}

	store := state.NewSQLiteStore(logger)
	if err := store.Open(cfg.DatabasePath); err != nil {
		return nil, err
	}
	if err := store.EnsureSchema(cmd.Context()); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}

// seedCatalog returns the catalog to seed: the configured seed file, or the baseline.
func seedCatalog(cfg *config.Config) (*seed.Catalog, error) {
	if cfg.SeedFile == "" {
		return seed.Baseline(), nil
	}
	return seed.LoadFile(cfg.SeedFile)
}

// runSeeder ensures the configured catalog exists in the store.
func runSeeder(cmd *cobra.Command, cc *CommandContext) (*seed.Result, error) {
	catalog, err := seedCatalog(cc.Cfg)
	if err != nil {
		return nil, err
	}
	return seed.New(cc.Store, cc.Logger).Seed(cmd.Context(), catalog)
}
