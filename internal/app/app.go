package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tallybook/tally/internal/config"
	"github.com/tallybook/tally/internal/service"
	"github.com/tallybook/tally/internal/store"
	"github.com/tallybook/tally/migrations"
)

// App is the explicit context object tying config, store and services
// together. The CLI builds one at startup; tests and bulk jobs build their
// own scoped instances against a private database.
type App struct {
	Config  *config.Config
	Service *service.Service
	Store   store.Repository
}

// New initializes the database and core services and returns the App plus
// a cleanup func that releases the database handle.
func New(cfg *config.Config) (*App, func(), error) {
	dbPath := cfg.Database.Path
	if dbPath == "" {
		appDir, err := DataDir()
		if err != nil {
			return nil, nil, err
		}
		dbPath = filepath.Join(appDir, "tally.db")
	}

	dbStore, err := store.Open(dbPath, migrations.FS)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	svc := service.NewService(dbStore, cfg)

	cleanup := func() {
		if err := dbStore.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error closing DB: %v\n", err)
		}
	}

	return &App{Config: cfg, Service: svc, Store: dbStore}, cleanup, nil
}

// ExportBaseDir resolves the directory under which exports/ and backups/
// are created.
func (a *App) ExportBaseDir() (string, error) {
	if a.Config.Export.Dir != "" {
		return a.Config.Export.Dir, nil
	}
	return DataDir()
}

// DataDir returns the per-user application data directory.
func DataDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("unable to determine user home directory: %w", err)
		}
		return filepath.Join(home, ".tally"), nil
	}
	return filepath.Join(configDir, "tally"), nil
}
