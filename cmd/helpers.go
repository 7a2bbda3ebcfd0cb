package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/inovacc/curatr/internal/model"
	"github.com/inovacc/curatr/internal/params"
	"github.com/inovacc/curatr/internal/registry"
	"github.com/inovacc/curatr/internal/settings"
)

// openStore opens the settings store selected by the --sqlite flag. The
// caller owns the returned store and must close it.
func openStore() (settings.Store, error) {
	if sqliteFlag {
		return settings.NewSQLite(filepath.Join(params.AppdataDir, "curatr.db"))
	}

	return settings.NewBolt(filepath.Join(params.AppdataDir, "curatr.bolt"))
}

// newRegistryClient creates the registry API client from the stored
// configuration.
func newRegistryClient(ctx context.Context, store settings.Store) (*registry.Client, *model.Config, error) {
	cfg, err := store.GetConfig()
	if err != nil {
		return nil, nil, err
	}

	if cfg.RegistryURL == "" {
		return nil, nil, fmt.Errorf("no registry configured, run: curatr configure")
	}

	client, err := registry.NewClient(ctx, cfg.RegistryURL, cfg.Token, registry.ClientOptions{
		Logger: slog.Default(),
	})
	if err != nil {
		return nil, nil, err
	}

	return client, cfg, nil
}

// currentUser derives the acting console user from the configuration.
func currentUser(cfg *model.Config) model.User {
	return model.User{Username: cfg.Username, Admin: cfg.Admin}
}

// pollInterval returns the configured page refresh cadence.
func pollInterval(cfg *model.Config) time.Duration {
	if cfg.PollInterval <= 0 {
		return 5 * time.Second
	}

	return time.Duration(cfg.PollInterval) * time.Second
}
