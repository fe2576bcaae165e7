package service

import (
	"context"

	"github.com/photark/albumsync/internal/logger"
	"github.com/photark/albumsync/internal/store"
	"github.com/photark/albumsync/models"
)

type progressService struct {
	progress store.ProgressStore

	logger *logger.Logger
}

// NewProgressService exposes the persisted progress record to readers
// outside the run loop.
func NewProgressService(progress store.ProgressStore, logger *logger.Logger) ProgressService {
	return &progressService{
		progress: progress,
		logger:   logger,
	}
}

// Current returns the most recently persisted run record. When no run was
// ever recorded it returns an idle state together with
// [store.ErrNoProgressRecord].
func (s *progressService) Current(ctx context.Context) (models.RunState, error) {
	return s.progress.Load()
}
