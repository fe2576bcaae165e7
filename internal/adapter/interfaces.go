package adapter

import (
	"context"

	"github.com/photark/albumsync/models"
)

// ProgressNotifier pushes run snapshots to an external telemetry consumer.
// Implementations must never fail the run: a push error is reported to the
// caller for logging and otherwise ignored.
type ProgressNotifier interface {
	Notify(ctx context.Context, state models.RunState) error
}
