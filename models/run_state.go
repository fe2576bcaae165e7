package models

import "time"

// RunStatus is the lifecycle state of a synchronization run.
type RunStatus string

// Run lifecycle states. A run moves idle → running → {done, error};
// the next run supersedes (not merges) the previous record.
const (
	StatusIdle    RunStatus = "idle"
	StatusRunning RunStatus = "running"
	StatusDone    RunStatus = "done"
	StatusError   RunStatus = "error"
)

// Counters accumulates the per-item outcomes of a run.
//
// Failed includes both true copy failures and assets whose source path
// could not be resolved; the latter are additionally broken out in
// MissingSources so external consumers can tell the two apart.
type Counters struct {
	Copied  int `json:"copied"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
	Deleted int `json:"deleted"`
	Total   int `json:"total"`

	// MissingSources is the subset of Failed caused by path resolution
	// failures rather than I/O errors.
	MissingSources int `json:"missing_sources"`

	// DeleteFailed counts stale files that could not be removed during an
	// allowed cleanup pass. Not part of Failed: it never relates to an
	// expected asset, so it must not distort the progress percentage.
	DeleteFailed int `json:"delete_failed"`

	// MalformedRows counts metadata rows skipped for null paths or
	// negative sizes.
	MalformedRows int `json:"malformed_rows"`
}

// GuardOutcome records the deletion guard's decision for a run. It is
// written regardless of allow/deny so external consumers always know why
// cleanup did or did not happen.
type GuardOutcome struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason"`
}

// RunState is the externally visible snapshot of one synchronization run.
// The coordinator owns the live value and publishes copies through the
// progress store; readers never see the mutable structure.
type RunState struct {
	RunID  string    `json:"run_id"`
	Status RunStatus `json:"status"`

	Counters

	Guard GuardOutcome `json:"guard"`

	// LastError is the message of the fatal condition that moved the run
	// to StatusError, or empty.
	LastError string `json:"last_error,omitempty"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at,omitzero"`
}

// Progress returns the overall completion fraction
// (copied + skipped + failed) / total, clamped to [0, 1].
// A zero total reports 0.
func (s RunState) Progress() float64 {
	if s.Total <= 0 {
		return 0
	}

	p := float64(s.Copied+s.Skipped+s.Failed) / float64(s.Total)
	if p > 1 {
		return 1
	}

	return p
}
