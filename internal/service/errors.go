package service

import "errors"

var (
	// ErrAlreadyRunning is returned when a run trigger arrives while the
	// exclusive run lock is held. Fatal to the request only; the run in
	// progress is untouched.
	ErrAlreadyRunning = errors.New("synchronization run already in progress")

	// ErrRunCancelled is returned when the caller's context is cancelled
	// between albums. The in-flight album is always finished first.
	ErrRunCancelled = errors.New("synchronization run cancelled")
)
