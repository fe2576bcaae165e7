package store

import (
	"context"

	"github.com/photark/albumsync/models"
)

// AlbumRepository reads the album/asset metadata consumed by a run. The
// implementation is read-only and autocommit: no transaction ever spans the
// read sequence.
type AlbumRepository interface {
	// ListAlbums returns every album with its member assets, optionally
	// narrowed to albums owned by ownerID. The second return value counts
	// malformed rows (null path, negative size) that were skipped.
	//
	// Unreachable store → [ErrMetadataUnavailable]; a relation that
	// disappeared after detection → [ErrSchemaUndetectable]. Both are
	// fatal for the run.
	ListAlbums(ctx context.Context, ownerID string) ([]models.Album, int, error)
}

// UserRepository resolves the configured owner filter against the store.
type UserRepository interface {
	// FindUserID maps a user identifier or e-mail address to the store's
	// user ID. Returns [ErrNoUserWasFound] when nothing matches.
	FindUserID(ctx context.Context, filter string) (string, error)
}

// ProgressStore persists the externally readable run snapshot.
type ProgressStore interface {
	// Write persists the snapshot. Unless force is set, writes are
	// rate-limited: a snapshot with an unchanged status arriving before
	// the configured interval has elapsed is dropped. The first return
	// value reports whether the snapshot actually reached disk.
	Write(state models.RunState, force bool) (bool, error)

	// Load reads the last persisted snapshot. A missing, empty, or
	// malformed record yields [ErrNoProgressRecord]; readers treat that
	// as "no run has completed yet".
	Load() (models.RunState, error)
}
