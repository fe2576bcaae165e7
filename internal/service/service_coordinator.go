package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/photark/albumsync/internal/adapter"
	"github.com/photark/albumsync/internal/config"
	"github.com/photark/albumsync/internal/logger"
	"github.com/photark/albumsync/internal/resolver"
	"github.com/photark/albumsync/internal/runlock"
	"github.com/photark/albumsync/internal/store"
	"github.com/photark/albumsync/models"
)

// runCoordinator is the default [RunCoordinator]. It owns the run state
// value for the duration of a pass: counters are mutated locally and only
// published as snapshots through the progress store, never shared live.
type runCoordinator struct {
	pinger   Pinger
	albums   store.AlbumRepository
	users    store.UserRepository
	progress store.ProgressStore

	planner  SyncPlanner
	executor SyncExecutor
	resolver *resolver.Resolver
	lock     runlock.Locker
	notifier adapter.ProgressNotifier

	cfg    config.Sync
	logger *logger.Logger
}

// NewRunCoordinator wires a [RunCoordinator] from its collaborators.
func NewRunCoordinator(
	pinger Pinger,
	storages *store.Storages,
	planner SyncPlanner,
	executor SyncExecutor,
	res *resolver.Resolver,
	lock runlock.Locker,
	notifier adapter.ProgressNotifier,
	cfg config.Sync,
	logger *logger.Logger,
) RunCoordinator {
	return &runCoordinator{
		pinger:   pinger,
		albums:   storages.Albums,
		users:    storages.Users,
		progress: storages.Progress,
		planner:  planner,
		executor: executor,
		resolver: res,
		lock:     lock,
		notifier: notifier,
		cfg:      cfg,
		logger:   logger,
	}
}

// Run implements [RunCoordinator]. The lock is held for the entire pass and
// released on every exit path.
func (c *runCoordinator) Run(ctx context.Context) (models.RunState, error) {
	locked, err := c.lock.TryLock()
	if err != nil {
		return models.RunState{}, err
	}
	if !locked {
		return models.RunState{}, ErrAlreadyRunning
	}
	defer c.lock.Unlock()

	return c.run(ctx)
}

// TriggerRun implements [RunCoordinator]. Lock acquisition happens on the
// caller's goroutine so an AlreadyRunning rejection is synchronous; the
// pass itself runs detached from the trigger's context cancellation.
func (c *runCoordinator) TriggerRun(ctx context.Context) error {
	locked, err := c.lock.TryLock()
	if err != nil {
		return err
	}
	if !locked {
		return ErrAlreadyRunning
	}

	go func() {
		defer c.lock.Unlock()

		if _, err := c.run(context.WithoutCancel(ctx)); err != nil {
			c.logger.Err(err).Msg("background synchronization run failed")
		}
	}()

	return nil
}

// run executes one full pass. Per-item and per-album failures are absorbed
// into counters; only metadata-level conditions end the run in StatusError.
func (c *runCoordinator) run(ctx context.Context) (models.RunState, error) {
	ctx = c.logger.WithContext(ctx)
	log := c.logger

	state := models.RunState{
		RunID:     uuid.NewString(),
		Status:    models.StatusRunning,
		StartedAt: time.Now(),
	}
	c.publish(ctx, state, true)

	log.Info().Str("run_id", state.RunID).Msg("synchronization run started")

	if err := c.pinger.Ping(ctx); err != nil {
		return c.fail(ctx, state, err)
	}

	ownerID := c.resolveOwnerFilter(ctx)

	albums, malformed, err := c.albums.ListAlbums(ctx, ownerID)
	if err != nil {
		return c.fail(ctx, state, err)
	}

	state.MalformedRows = malformed
	for _, album := range albums {
		state.Total += len(album.Assets)
	}
	c.publish(ctx, state, true)

	log.Info().
		Int("albums", len(albums)).
		Int("assets", state.Total).
		Int("malformed_rows", malformed).
		Msg("metadata snapshot loaded")

	stale, err := c.planner.SnapshotExport()
	if err != nil {
		// without a snapshot there can be no deletion candidates; the
		// copy pass still proceeds
		log.Err(err).Msg("failed to snapshot export root; skipping cleanup this run")
		stale = nil
	}

	dirNames := AlbumDirNames(albums)

	var found int
	cancelled := false

	for _, album := range albums {
		// cancellation is cooperative at album boundaries: the in-flight
		// album always completes
		if ctx.Err() != nil {
			cancelled = true
			break
		}

		plan, planErr := c.planner.PlanAlbum(ctx, album, dirNames[album.ID])
		if planErr != nil {
			state.Failed += len(album.Assets)
			log.Err(planErr).Str("album", album.Name).Msg("failed to plan album; all its assets counted as failed")
			continue
		}

		for _, decision := range plan.Decisions {
			delete(stale, decision.DestPath)
		}

		result := c.executor.ExecutePlan(ctx, plan)
		state.Copied += result.Copied
		state.Skipped += result.Skipped
		state.Failed += result.Failed
		state.MissingSources += result.MissingSources
		found += plan.Found

		c.publish(ctx, state, false)
	}

	if cancelled {
		state.Guard = models.GuardOutcome{Allowed: false, Reason: "run cancelled before cleanup"}
		return c.fail(ctx, state, fmt.Errorf("%w: %w", ErrRunCancelled, ctx.Err()))
	}

	state.Guard = EvaluateDeletionGuard(
		c.resolver.RootAvailable(),
		found,
		state.Total,
		GuardThresholds{MinFoundAbs: c.cfg.MinFoundAbs, MinFoundFraction: c.cfg.MinFoundFraction},
	)

	if state.Guard.Allowed {
		state.Deleted, state.DeleteFailed = c.executor.DeleteStale(ctx, sortedPaths(stale))
	} else {
		log.Warn().Str("reason", state.Guard.Reason).Int("candidates", len(stale)).Msg("deletion guard denied cleanup")
	}

	state.Status = models.StatusDone
	state.FinishedAt = time.Now()
	c.publish(ctx, state, true)

	log.Info().
		Str("run_id", state.RunID).
		Int("copied", state.Copied).
		Int("skipped", state.Skipped).
		Int("failed", state.Failed).
		Int("deleted", state.Deleted).
		Bool("cleanup_allowed", state.Guard.Allowed).
		Msg("synchronization run finished")

	return state, nil
}

// fail moves the run to StatusError, publishes the final record, and
// returns the fatal error. Counters accumulated so far stay visible to
// external readers.
func (c *runCoordinator) fail(ctx context.Context, state models.RunState, err error) (models.RunState, error) {
	state.Status = models.StatusError
	state.LastError = err.Error()
	state.FinishedAt = time.Now()
	c.publish(ctx, state, true)

	c.logger.Err(err).Str("run_id", state.RunID).Msg("synchronization run failed")

	return state, err
}

// resolveOwnerFilter maps the configured user filter to a store user ID.
// A filter that cannot be resolved (unknown user, schema without an e-mail
// column) is used verbatim: it may well be a raw ID, and a too-narrow
// filter only yields an empty album list, never data loss.
func (c *runCoordinator) resolveOwnerFilter(ctx context.Context) string {
	if c.cfg.UserFilter == "" {
		return ""
	}

	ownerID, err := c.users.FindUserID(ctx, c.cfg.UserFilter)
	if err != nil {
		if !errors.Is(err, store.ErrNoUserWasFound) {
			c.logger.Err(err).Str("filter", c.cfg.UserFilter).Msg("owner filter lookup failed; using it verbatim")
		} else {
			c.logger.Warn().Str("filter", c.cfg.UserFilter).Msg("owner filter matched no user; using it verbatim")
		}
		return c.cfg.UserFilter
	}

	return ownerID
}

// publish persists a snapshot of the run state and, when it actually
// reached disk, mirrors it to the webhook. Neither failure interrupts the
// run.
func (c *runCoordinator) publish(ctx context.Context, state models.RunState, force bool) {
	wrote, err := c.progress.Write(state, force)
	if err != nil {
		c.logger.Err(err).Msg("failed to persist progress record")
		return
	}

	if wrote {
		if err := c.notifier.Notify(ctx, state); err != nil {
			c.logger.Err(err).Msg("failed to push progress snapshot")
		}
	}
}

func sortedPaths(set map[string]struct{}) []string {
	paths := make([]string, 0, len(set))
	for p := range set {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	return paths
}
