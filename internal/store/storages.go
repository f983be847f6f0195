package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-pim-sync/internal/config"
	"github.com/MKhiriev/go-pim-sync/internal/logger"
	"github.com/MKhiriev/go-pim-sync/internal/utils"
)

// ClientStorages groups the repositories of the sync client. All of them
// share one SQLite connection.
type ClientStorages struct {
	// Items is the local address book.
	Items ItemStore

	// ItemStates is the change tracking table.
	ItemStates ItemStateRepository

	// SessionLogs keeps anchors and counters per sync source.
	SessionLogs SessionLogRepository

	db *DB
}

// NewClientStorages opens the SQLite database named by cfg.DB.DSN (creating
// the file if needed), applies pending migrations and wires the
// repositories.
func NewClientStorages(cfg config.Storage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(context.Background(), cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return newClientStorages(db, logger), nil
}

func newClientStorages(db *DB, logger *logger.Logger) *ClientStorages {
	return &ClientStorages{
		Items:       NewContactRepository(db, utils.NewUUIDGenerator(), logger),
		ItemStates:  NewItemStateRepository(db, logger),
		SessionLogs: NewSessionLogRepository(db, logger),
		db:          db,
	}
}

// Close releases the database connection.
func (s *ClientStorages) Close() error {
	return s.db.Close()
}
