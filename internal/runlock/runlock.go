// Package runlock provides the exclusive run lock guarding the
// synchronization engine. Exactly one run may be active at a time; every
// trigger path (HTTP, schedule) funnels through the same lock.
//
// The lock is a filesystem advisory lock (flock). The kernel releases it
// when the holding process exits for any reason, so a crashed run can never
// wedge the lock permanently — the bounded-lifetime guarantee the engine
// requires.
package runlock

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"
)

// Locker is the mutual-exclusion contract of the run coordinator.
type Locker interface {
	// TryLock attempts to acquire the lock without blocking. The boolean
	// reports acquisition; a held lock is (false, nil), not an error.
	TryLock() (bool, error)

	// Unlock releases a previously acquired lock.
	Unlock() error
}

type fileLock struct {
	// flock only excludes other processes: TryLock on an instance that
	// already holds the lock succeeds again. held guards against
	// re-acquisition within this process, where every trigger path shares
	// one Locker.
	mu   sync.Mutex
	held bool

	fl *flock.Flock
}

// New constructs a [Locker] backed by an advisory lock on the given file.
// The file is created on first acquisition and intentionally left behind;
// only the kernel lock state matters.
func New(path string) Locker {
	return &fileLock{fl: flock.New(path)}
}

func (l *fileLock) TryLock() (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.held {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(l.fl.Path()), 0o755); err != nil {
		return false, fmt.Errorf("creating lock directory: %w", err)
	}

	locked, err := l.fl.TryLock()
	if err != nil {
		return false, fmt.Errorf("acquiring run lock: %w", err)
	}

	l.held = locked
	return locked, nil
}

func (l *fileLock) Unlock() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.fl.Unlock(); err != nil {
		return err
	}

	l.held = false
	return nil
}
