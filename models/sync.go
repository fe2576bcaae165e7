package models

// SyncAction classifies the planner's per-asset decision.
type SyncAction int

const (
	// ActionCopy means the destination file is absent and the source must
	// be copied.
	ActionCopy SyncAction = iota

	// ActionUpdate means the destination exists but its size differs from
	// the source, so the source is copied over it. Size is the only
	// comparison performed; a content change that preserves size goes
	// undetected (documented limitation).
	ActionUpdate

	// ActionSkip means the destination exists with a matching size and no
	// filesystem work is needed.
	ActionSkip

	// ActionMissingSource means no prefix rewrite of the internal path
	// produced an existing file under the library root. Counted as a
	// failure, distinguished from a true copy failure.
	ActionMissingSource
)

// String returns the action name used in logs and failure reasons.
func (a SyncAction) String() string {
	switch a {
	case ActionCopy:
		return "copy"
	case ActionUpdate:
		return "update"
	case ActionSkip:
		return "skip"
	case ActionMissingSource:
		return "missing-source"
	default:
		return "unknown"
	}
}

// SyncDecision is one planned filesystem action for one asset of one album.
// Decisions are stateless: they are recomputed from fresh metadata on every
// run and never persisted.
type SyncDecision struct {
	Action SyncAction
	Asset  Asset

	// SourcePath is the resolved absolute path under the library root.
	// Empty when Action is ActionMissingSource.
	SourcePath string

	// DestPath is the absolute destination path under the export root.
	DestPath string
}

// AlbumPlan is the planner's output for a single album: the ordered
// decision list plus the resolution tally feeding the deletion guard.
type AlbumPlan struct {
	AlbumID   string
	AlbumName string

	// DirName is the sanitized, collision-disambiguated directory name
	// under the export root.
	DirName string

	Decisions []SyncDecision

	// Found is the number of assets whose source path resolved to an
	// existing file. The guard consumes the pre-copy resolved count, not
	// the post-copy success count.
	Found int
}

// AlbumResult accumulates the executor's outcome for one album plan.
type AlbumResult struct {
	Copied         int
	Skipped        int
	Failed         int
	MissingSources int
}
