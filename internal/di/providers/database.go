package providers

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/readingtracker/readingtracker-server/internal/config"
	"github.com/readingtracker/readingtracker-server/internal/logger"
	"github.com/readingtracker/readingtracker-server/internal/store/sqlite"
)

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	*sqlite.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore opens the SQLite database and applies the schema.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	dbPath := cfg.Storage.DatabasePath
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sqlite.Open(dbPath, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Database initialized", "path", dbPath)

	return &StoreHandle{Store: db}, nil
}
