package service

import (
	"github.com/photark/albumsync/internal/adapter"
	"github.com/photark/albumsync/internal/config"
	"github.com/photark/albumsync/internal/logger"
	"github.com/photark/albumsync/internal/resolver"
	"github.com/photark/albumsync/internal/runlock"
	"github.com/photark/albumsync/internal/store"
)

// Services aggregates the engine's business logic components.
type Services struct {
	Coordinator    RunCoordinator
	Progress       ProgressService
	AppInfoService AppInfoService
}

// NewServices wires planner, executor, resolver, lock, and coordinator
// from the merged configuration.
func NewServices(pinger Pinger, storages *store.Storages, lock runlock.Locker, notifier adapter.ProgressNotifier, cfg config.Sync, version string, logger *logger.Logger) *Services {
	res := resolver.New(cfg.LibraryRoot)
	planner := NewSyncPlanner(res, cfg.ExportRoot, logger)
	executor := NewSyncExecutor(cfg.ExportRoot, logger)

	return &Services{
		Coordinator:    NewRunCoordinator(pinger, storages, planner, executor, res, lock, notifier, cfg, logger),
		Progress:       NewProgressService(storages.Progress, logger),
		AppInfoService: NewAppInfoService(version, logger),
	}
}
