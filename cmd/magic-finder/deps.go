package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/magic-finder/magic-finder/internal/application/handlers"
	"github.com/magic-finder/magic-finder/internal/domain/services"
	"github.com/magic-finder/magic-finder/internal/infrastructure/config"
	"github.com/magic-finder/magic-finder/internal/infrastructure/relationaldb/sqlite"
	"github.com/magic-finder/magic-finder/internal/log"
)

// Deps holds high-level dependencies for commands.
type Deps struct {
	Config          *config.Config
	Logger          *slog.Logger
	SearchHandler   *handlers.SearchHandler
	UpdateHandler   *handlers.UpdateHandler
	CompleteHandler *handlers.CompleteHandler
}

// internalDeps holds all dependencies including low-level components.
type internalDeps struct {
	Deps
	store    *sqlite.Repository
	resolver *services.ResolverService
	display  *services.DisplayService
}

// withConfig loads .env, the config file and the logger, then calls fn.
func withConfig(fn func(*config.Config, *slog.Logger) error) error {
	if err := config.LoadDotEnv(".env"); err != nil {
		return fmt.Errorf("loading .env: %w", err)
	}

	cfg, err := config.Load(globalConfigPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	return fn(cfg, log.NewLogger(cfg.Log, os.Stderr))
}

// withDeps loads config and builds dependencies, then calls the provided function.
// It handles cleanup automatically.
func withDeps(fn func(*Deps) error) error {
	return withInternalDeps(func(d *internalDeps) error {
		return fn(&d.Deps)
	})
}

// withInternalDeps provides access to all dependencies including low-level components.
func withInternalDeps(fn func(*internalDeps) error) error {
	return withConfig(func(cfg *config.Config, logger *slog.Logger) error {
		store, err := sqlite.NewRepository(config.SQLiteConfig{Path: cfg.DatabasePath()})
		if err != nil {
			return fmt.Errorf("creating sqlite repository: %w", err)
		}
		defer store.Close()

		resolver := services.NewResolverService(store, services.NewRankerService(cfg.Cache.SuggestionSize), logger)
		display := services.NewDisplayService(store)
		normalizer := services.NewNormalizerService(logger)

		deps := &internalDeps{
			Deps: Deps{
				Config:          cfg,
				Logger:          logger,
				SearchHandler:   handlers.NewSearchHandler(store, resolver, display),
				UpdateHandler:   handlers.NewUpdateHandler(normalizer, store, resolver, logger),
				CompleteHandler: handlers.NewCompleteHandler(store),
			},
			store:    store,
			resolver: resolver,
			display:  display,
		}

		return fn(deps)
	})
}
