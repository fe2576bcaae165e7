package workers

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/photark/albumsync/internal/logger"
	"github.com/photark/albumsync/internal/service"
)

// scheduleWorker triggers a synchronization run on a fixed interval. It
// goes through the same coordinator entry point as the HTTP trigger, so a
// scheduled tick that lands while a run is active is simply dropped.
type scheduleWorker struct {
	coordinator service.RunCoordinator
	interval    time.Duration
	logger      *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewScheduleWorker creates a scheduleWorker firing every interval. A zero
// or negative interval disables the schedule: Run becomes a no-op and runs
// happen only via the HTTP trigger.
func NewScheduleWorker(coordinator service.RunCoordinator, interval time.Duration, logger *logger.Logger) Worker {
	return &scheduleWorker{
		coordinator: coordinator,
		interval:    interval,
		logger:      logger,
	}
}

// Run implements [Worker]. It stops any previously running schedule, fires
// one run immediately, then keeps firing every interval until Stop is
// called.
func (w *scheduleWorker) Run() {
	if w.interval <= 0 {
		w.logger.Info().Msg("scheduled runs disabled; waiting for HTTP triggers only")
		return
	}

	w.Stop()

	w.mu.Lock()
	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel
	w.wg.Add(1)
	w.mu.Unlock()

	w.logger.Info().Dur("interval", w.interval).Msg("schedule worker started")

	go func() {
		defer w.wg.Done()
		t := time.NewTicker(w.interval)
		defer t.Stop()

		w.trigger(ctx)

		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				w.trigger(ctx)
			}
		}
	}()
}

// Stop implements [Worker]. It cancels the schedule goroutine and blocks
// until it has fully exited. Safe to call when the worker is not running.
func (w *scheduleWorker) Stop() {
	w.mu.Lock()
	cancel := w.cancel
	w.cancel = nil
	w.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	w.wg.Wait()
}

func (w *scheduleWorker) trigger(ctx context.Context) {
	err := w.coordinator.TriggerRun(ctx)
	switch {
	case err == nil:
		w.logger.Info().Msg("scheduled synchronization run started")
	case errors.Is(err, service.ErrAlreadyRunning):
		w.logger.Debug().Msg("scheduled tick skipped; a run is already active")
	default:
		w.logger.Err(err).Msg("scheduled synchronization run failed to start")
	}
}
