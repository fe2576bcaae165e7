package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/photark/albumsync/internal/logger"
	"github.com/photark/albumsync/models"
)

// fileProgressStore persists the run snapshot as a JSON file next to the
// exported albums. External observers (UI, telemetry) read the same file,
// possibly mid-run, so two properties matter here:
//
//   - writes are atomic (temp file + rename), so a reader never observes a
//     half-written record;
//   - writes are rate-limited, so per-item progress updates do not hammer
//     the filesystem. A status change always writes immediately.
type fileProgressStore struct {
	path     string
	interval time.Duration
	logger   *logger.Logger

	mu         sync.Mutex
	lastWrite  time.Time
	lastStatus models.RunStatus
}

// NewFileProgressStore constructs a [ProgressStore] writing to path.
// A non-positive interval disables rate limiting.
func NewFileProgressStore(path string, interval time.Duration, logger *logger.Logger) ProgressStore {
	logger.Debug().Str("path", path).Dur("interval", interval).Msg("creating file progress store")
	return &fileProgressStore{
		path:     path,
		interval: interval,
		logger:   logger,
	}
}

// Write persists state unless rate limiting drops it. Writes go to a
// temporary file in the same directory, then rename into place, so a
// concurrent reader sees either the previous or the new record, never a
// partial one.
func (p *fileProgressStore) Write(state models.RunState, force bool) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	statusChanged := state.Status != p.lastStatus
	if !force && !statusChanged && p.interval > 0 && time.Since(p.lastWrite) < p.interval {
		return false, nil
	}

	data, err := json.MarshalIndent(progressRecord(state), "", "  ")
	if err != nil {
		return false, fmt.Errorf("failed to marshal progress record: %w", err)
	}

	dir := filepath.Dir(p.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, fmt.Errorf("failed to create progress directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".progress-*.json")
	if err != nil {
		return false, fmt.Errorf("failed to create temp progress file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return false, fmt.Errorf("failed to write progress record: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return false, fmt.Errorf("failed to close temp progress file: %w", err)
	}

	if err := os.Rename(tmp.Name(), p.path); err != nil {
		os.Remove(tmp.Name())
		return false, fmt.Errorf("failed to replace progress record: %w", err)
	}

	p.lastWrite = time.Now()
	p.lastStatus = state.Status

	return true, nil
}

// Load reads the last persisted snapshot. Missing, empty, and malformed
// records all degrade to [ErrNoProgressRecord].
func (p *fileProgressStore) Load() (models.RunState, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return models.RunState{Status: models.StatusIdle}, ErrNoProgressRecord
		}
		return models.RunState{Status: models.StatusIdle}, fmt.Errorf("failed to read progress record: %w", err)
	}

	var record progressJSON
	if len(data) == 0 || json.Unmarshal(data, &record) != nil {
		p.logger.Warn().Str("path", p.path).Msg("progress record is empty or malformed")
		return models.RunState{Status: models.StatusIdle}, ErrNoProgressRecord
	}

	return record.RunState, nil
}

// progressJSON is the on-disk shape: the run state plus the derived overall
// percentage, so pull-based consumers need no arithmetic of their own.
type progressJSON struct {
	models.RunState
	Percent float64 `json:"percent"`
}

func progressRecord(state models.RunState) progressJSON {
	return progressJSON{
		RunState: state,
		Percent:  state.Progress() * 100,
	}
}
