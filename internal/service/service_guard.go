package service

import (
	"fmt"

	"github.com/photark/albumsync/models"
)

// GuardThresholds configures the deletion guard.
type GuardThresholds struct {
	// MinFoundAbs is the absolute found-count threshold.
	MinFoundAbs int

	// MinFoundFraction is the relative threshold compared against
	// found/expected, in [0, 1].
	MinFoundFraction float64
}

// EvaluateDeletionGuard decides, once per run and before any deletion,
// whether the cleanup pass may remove stale files.
//
// Deny when any of the following holds:
//   - the library root is unreachable or empty;
//   - not a single asset resolved (found == 0);
//   - found is at or below MinFoundAbs AND found/expected is below
//     MinFoundFraction.
//
// The two threshold checks are AND-ed: clearing either one is enough to
// allow cleanup. This exact combination is the safety contract protecting
// the export tree from mass deletion during a transient mount failure;
// found counts successfully resolved assets, not successfully copied ones.
//
// The outcome carries a human-readable reason for both allow and deny, and
// is recorded in the run state either way.
func EvaluateDeletionGuard(rootAvailable bool, found, expected int, thresholds GuardThresholds) models.GuardOutcome {
	if !rootAvailable {
		return models.GuardOutcome{
			Allowed: false,
			Reason:  "library root unreachable or empty",
		}
	}

	if found == 0 {
		return models.GuardOutcome{
			Allowed: false,
			Reason:  "no source files found",
		}
	}

	fraction := float64(found) / float64(max(1, expected))
	if found <= thresholds.MinFoundAbs && fraction < thresholds.MinFoundFraction {
		return models.GuardOutcome{
			Allowed: false,
			Reason: fmt.Sprintf("too few sources found (%d <= %d and %.2f%% < %.2f%%)",
				found, thresholds.MinFoundAbs, fraction*100, thresholds.MinFoundFraction*100),
		}
	}

	return models.GuardOutcome{
		Allowed: true,
		Reason:  fmt.Sprintf("cleanup allowed (found %d of %d)", found, expected),
	}
}
