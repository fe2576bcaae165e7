package store

import (
	"context"
	"time"

	"github.com/photark/albumsync/internal/logger"
)

// Storages aggregates every persistence-facing component of the engine: the
// read-only metadata repositories and the progress record store.
type Storages struct {
	Albums   AlbumRepository
	Users    UserRepository
	Progress ProgressStore
}

// NewStorages probes the metadata schema once and wires all repositories to
// the detected variant.
func NewStorages(ctx context.Context, db *DB, progressPath string, progressInterval time.Duration, logger *logger.Logger) (*Storages, error) {
	schema, err := detectSchema(ctx, db, logger)
	if err != nil {
		return nil, err
	}

	return &Storages{
		Albums:   NewAlbumRepository(db, schema, logger),
		Users:    NewUserRepository(db, schema.usersTable, logger),
		Progress: NewFileProgressStore(progressPath, progressInterval, logger),
	}, nil
}
