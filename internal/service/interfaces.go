package service

import (
	"context"

	"github.com/photark/albumsync/models"
)

// SyncPlanner compares the desired asset set of an album against the
// destination directory and produces the per-asset decision list. Planning
// performs no writes.
type SyncPlanner interface {
	// PlanAlbum resolves every asset of album and classifies it as copy,
	// update, skip, or missing-source against the destination directory
	// dirName under the export root.
	PlanAlbum(ctx context.Context, album models.Album, dirName string) (models.AlbumPlan, error)

	// SnapshotExport lists every media file currently present under the
	// export root. The coordinator subtracts each plan's destination
	// paths; whatever remains is the run's set of deletion candidates.
	SnapshotExport() (map[string]struct{}, error)
}

// SyncExecutor performs the filesystem actions implied by a plan. Per-item
// failures are absorbed into the result counters and never abort sibling
// work; repeated execution of an unchanged plan is idempotent.
type SyncExecutor interface {
	// ExecutePlan applies every decision of the plan and returns the
	// per-album tally.
	ExecutePlan(ctx context.Context, plan models.AlbumPlan) models.AlbumResult

	// DeleteStale removes the given stale files and prunes emptied album
	// directories. Returns (deleted, failed). Only called when the
	// deletion guard allowed cleanup for this run.
	DeleteStale(ctx context.Context, candidates []string) (int, int)
}

// RunCoordinator drives a complete synchronization pass under the exclusive
// run lock. Both the HTTP trigger and the schedule worker funnel through
// the same lock acquisition, so at most one run is ever active.
type RunCoordinator interface {
	// Run executes a full pass synchronously and returns the final run
	// state. Returns [ErrAlreadyRunning] without side effects when the
	// lock is held.
	Run(ctx context.Context) (models.RunState, error)

	// TriggerRun acquires the lock synchronously and, on success, executes
	// the pass in the background. Returns [ErrAlreadyRunning] immediately
	// when the lock is held, leaving the active run untouched.
	TriggerRun(ctx context.Context) error
}

// Pinger re-checks metadata store reachability at run start.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ProgressService reads the persisted record of the latest run for
// external consumers such as the HTTP surface.
type ProgressService interface {
	// Current returns the latest persisted run state, or an idle state
	// plus [store.ErrNoProgressRecord] when nothing was ever recorded.
	Current(ctx context.Context) (models.RunState, error)
}

// AppInfoService exposes build metadata.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
