package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/photark/albumsync/internal/adapter"
	"github.com/photark/albumsync/internal/config"
	"github.com/photark/albumsync/internal/logger"
	"github.com/photark/albumsync/internal/resolver"
	"github.com/photark/albumsync/internal/store"
	"github.com/photark/albumsync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct {
	err error
}

func (p *fakePinger) Ping(ctx context.Context) error { return p.err }

type fakeAlbumRepository struct {
	albums    []models.Album
	malformed int
	err       error
}

func (r *fakeAlbumRepository) ListAlbums(ctx context.Context, ownerID string) ([]models.Album, int, error) {
	return r.albums, r.malformed, r.err
}

type fakeUserRepository struct {
	id  string
	err error
}

func (r *fakeUserRepository) FindUserID(ctx context.Context, filter string) (string, error) {
	return r.id, r.err
}

type fakeProgressStore struct {
	mu     sync.Mutex
	states []models.RunState
}

func (s *fakeProgressStore) Write(state models.RunState, force bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states = append(s.states, state)
	return true, nil
}

func (s *fakeProgressStore) Load() (models.RunState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.states) == 0 {
		return models.RunState{Status: models.StatusIdle}, store.ErrNoProgressRecord
	}
	return s.states[len(s.states)-1], nil
}

func (s *fakeProgressStore) last(t *testing.T) models.RunState {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	require.NotEmpty(t, s.states)
	return s.states[len(s.states)-1]
}

type fakeLock struct {
	mu   sync.Mutex
	held bool
}

func (l *fakeLock) TryLock() (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held {
		return false, nil
	}
	l.held = true
	return true, nil
}

func (l *fakeLock) Unlock() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.held = false
	return nil
}

type recordingNotifier struct {
	mu     sync.Mutex
	states []models.RunState
}

func (n *recordingNotifier) Notify(ctx context.Context, state models.RunState) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.states = append(n.states, state)
	return nil
}

var _ adapter.ProgressNotifier = (*recordingNotifier)(nil)

type coordinatorFixture struct {
	coordinator RunCoordinator
	progress    *fakeProgressStore
	notifier    *recordingNotifier
	lock        *fakeLock
	library     string
	export      string
}

func newCoordinatorFixture(t *testing.T, albums []models.Album, cfg config.Sync) *coordinatorFixture {
	t.Helper()

	library := t.TempDir()
	export := t.TempDir()
	if cfg.LibraryRoot == "" {
		cfg.LibraryRoot = library
	}
	cfg.ExportRoot = export

	res := resolver.New(cfg.LibraryRoot)
	progress := &fakeProgressStore{}
	notifier := &recordingNotifier{}
	lock := &fakeLock{}

	storages := &store.Storages{
		Albums:   &fakeAlbumRepository{albums: albums},
		Users:    &fakeUserRepository{},
		Progress: progress,
	}

	coordinator := NewRunCoordinator(
		&fakePinger{},
		storages,
		NewSyncPlanner(res, export, logger.Nop()),
		NewSyncExecutor(export, logger.Nop()),
		res,
		lock,
		notifier,
		cfg,
		logger.Nop(),
	)

	return &coordinatorFixture{
		coordinator: coordinator,
		progress:    progress,
		notifier:    notifier,
		lock:        lock,
		library:     library,
		export:      export,
	}
}

func TestRunCoordinator_Run_FullPass(t *testing.T) {
	albums := []models.Album{
		{
			ID:   "a1",
			Name: "Holidays 2024",
			Assets: []models.Asset{
				{ID: "s1", InternalPath: "new.jpg"},
				{ID: "s2", InternalPath: "same.jpg"},
			},
		},
	}

	fx := newCoordinatorFixture(t, albums, config.Sync{MinFoundAbs: 100, MinFoundFraction: 0.05})

	writeFile(t, filepath.Join(fx.library, "new.jpg"), []byte("new-photo"))
	writeFile(t, filepath.Join(fx.library, "same.jpg"), []byte("same-photo"))
	writeFile(t, filepath.Join(fx.export, "Holidays 2024", "same.jpg"), []byte("same-photo"))
	writeFile(t, filepath.Join(fx.export, "Stale Album", "stale.jpg"), []byte("x"))

	state, err := fx.coordinator.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, models.StatusDone, state.Status)
	assert.Equal(t, 2, state.Total)
	assert.Equal(t, 1, state.Copied)
	assert.Equal(t, 1, state.Skipped)
	assert.Equal(t, 0, state.Failed)
	assert.Equal(t, 1, state.Deleted)
	assert.True(t, state.Guard.Allowed)
	assert.NotEmpty(t, state.RunID)
	assert.False(t, state.FinishedAt.IsZero())

	// stale file removed, its emptied directory pruned, synced files kept
	_, statErr := os.Stat(filepath.Join(fx.export, "Stale Album"))
	assert.True(t, os.IsNotExist(statErr))
	_, statErr = os.Stat(filepath.Join(fx.export, "Holidays 2024", "new.jpg"))
	assert.NoError(t, statErr)

	// the lock was released: a second run can start
	state, err = fx.coordinator.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, state.Copied)
	assert.Equal(t, 2, state.Skipped)

	final := fx.progress.last(t)
	assert.Equal(t, models.StatusDone, final.Status)
	assert.InDelta(t, 1.0, final.Progress(), 1e-9)
}

func TestRunCoordinator_Run_AlreadyRunning(t *testing.T) {
	fx := newCoordinatorFixture(t, nil, config.Sync{})

	locked, err := fx.lock.TryLock()
	require.NoError(t, err)
	require.True(t, locked)

	_, err = fx.coordinator.Run(context.Background())
	assert.ErrorIs(t, err, ErrAlreadyRunning)

	// the rejected request left no trace in the progress store
	assert.Empty(t, fx.progress.states)
}

func TestRunCoordinator_Run_GuardDeniesOnUnreachableRoot(t *testing.T) {
	albums := []models.Album{
		{ID: "a1", Name: "Album", Assets: []models.Asset{{ID: "s1", InternalPath: "pic.jpg"}}},
	}

	fx := newCoordinatorFixture(t, albums, config.Sync{
		LibraryRoot:      filepath.Join(t.TempDir(), "not-mounted"),
		MinFoundAbs:      100,
		MinFoundFraction: 0.05,
	})

	stale := filepath.Join(fx.export, "Old", "stale.jpg")
	writeFile(t, stale, []byte("x"))

	state, err := fx.coordinator.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, models.StatusDone, state.Status)
	assert.False(t, state.Guard.Allowed)
	assert.Equal(t, 0, state.Deleted)
	assert.Equal(t, 1, state.Failed)
	assert.Equal(t, 1, state.MissingSources)

	// denied cleanup leaves every candidate in place
	_, statErr := os.Stat(stale)
	assert.NoError(t, statErr)
}

func TestRunCoordinator_Run_MetadataFailure(t *testing.T) {
	fx := newCoordinatorFixture(t, nil, config.Sync{})

	metadataErr := errors.New("connection refused")
	fx.coordinator.(*runCoordinator).albums = &fakeAlbumRepository{err: metadataErr}

	state, err := fx.coordinator.Run(context.Background())
	assert.ErrorIs(t, err, metadataErr)
	assert.Equal(t, models.StatusError, state.Status)
	assert.Contains(t, state.LastError, "connection refused")

	final := fx.progress.last(t)
	assert.Equal(t, models.StatusError, final.Status)

	// the failed run released the lock
	locked, lockErr := fx.lock.TryLock()
	require.NoError(t, lockErr)
	assert.True(t, locked)
}

func TestRunCoordinator_Run_CancelledBeforeCleanup(t *testing.T) {
	albums := []models.Album{
		{ID: "a1", Name: "Album", Assets: []models.Asset{{ID: "s1", InternalPath: "pic.jpg"}}},
	}

	fx := newCoordinatorFixture(t, albums, config.Sync{MinFoundAbs: 100, MinFoundFraction: 0.05})
	writeFile(t, filepath.Join(fx.library, "pic.jpg"), []byte("x"))

	stale := filepath.Join(fx.export, "Old", "stale.jpg")
	writeFile(t, stale, []byte("x"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	state, err := fx.coordinator.Run(ctx)
	assert.ErrorIs(t, err, ErrRunCancelled)
	assert.Equal(t, models.StatusError, state.Status)
	assert.False(t, state.Guard.Allowed)

	// a cancelled run never deletes
	_, statErr := os.Stat(stale)
	assert.NoError(t, statErr)
}

func TestRunCoordinator_Run_CountersNeverExceedTotal(t *testing.T) {
	albums := []models.Album{
		{
			ID:   "a1",
			Name: "Mixed",
			Assets: []models.Asset{
				{ID: "s1", InternalPath: "here.jpg"},
				{ID: "s2", InternalPath: "missing-1.jpg"},
				{ID: "s3", InternalPath: "missing-2.jpg"},
			},
		},
	}

	fx := newCoordinatorFixture(t, albums, config.Sync{MinFoundAbs: 100, MinFoundFraction: 0.05})
	writeFile(t, filepath.Join(fx.library, "here.jpg"), []byte("x"))

	state, err := fx.coordinator.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, state.Total)
	assert.Equal(t, 1, state.Copied)
	assert.Equal(t, 2, state.Failed)
	assert.Equal(t, 2, state.MissingSources)
	assert.LessOrEqual(t, state.Copied+state.Skipped+state.Failed, state.Total)
	assert.InDelta(t, 1.0, state.Progress(), 1e-9)
}
