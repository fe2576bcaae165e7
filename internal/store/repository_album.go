package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgerrcode"

	"github.com/photark/albumsync/internal/logger"
	"github.com/photark/albumsync/models"
)

// albumRepository is the PostgreSQL-backed implementation of
// [AlbumRepository]. The membership schema variant is detected once at
// construction and reused for every query.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, run-level tracing of database interactions.
type albumRepository struct {
	db     *DB
	schema librarySchema
	logger *logger.Logger
}

// NewAlbumRepository constructs an [AlbumRepository] bound to the detected
// schema variant.
func NewAlbumRepository(db *DB, schema librarySchema, logger *logger.Logger) AlbumRepository {
	return &albumRepository{
		db:     db,
		schema: schema,
		logger: logger,
	}
}

// ListAlbums reads every (album, asset) membership pair in one query and
// groups the rows into albums, preserving store order (album name, then
// asset path).
//
// Per-row malformed data — a null or empty asset path, a negative size —
// is skipped and counted, never fatal. A relation that disappeared between
// detection and this call maps to [ErrSchemaUndetectable].
func (r *albumRepository) ListAlbums(ctx context.Context, ownerID string) ([]models.Album, int, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildAlbumAssetsQuery(r.schema, ownerID)
	if err != nil {
		log.Err(err).Str("func", "*albumRepository.ListAlbums").Msg("failed to build album assets query")
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*albumRepository.ListAlbums").Msg("failed to execute album assets query")

		switch postgresError(err) {
		case pgerrcode.UndefinedTable, pgerrcode.UndefinedColumn:
			return nil, 0, fmt.Errorf("%w: %w", ErrSchemaUndetectable, err)
		default:
			return nil, 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
	}
	defer rows.Close()

	var (
		albums    []models.Album
		index     = make(map[string]int)
		malformed int
	)

	for rows.Next() {
		var (
			albumID    string
			albumName  sql.NullString
			albumOwner sql.NullString
			assetID    string
			assetOwner sql.NullString
			assetPath  sql.NullString
			assetSize  sql.NullInt64
		)

		if scanErr := rows.Scan(&albumID, &albumName, &albumOwner, &assetID, &assetOwner, &assetPath, &assetSize); scanErr != nil {
			log.Err(scanErr).Str("func", "*albumRepository.ListAlbums").Msg("failed to scan album asset row")
			return nil, malformed, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		if !assetPath.Valid || assetPath.String == "" || (assetSize.Valid && assetSize.Int64 < 0) {
			malformed++
			log.Warn().
				Str("func", "*albumRepository.ListAlbums").
				Str("album_id", albumID).
				Str("asset_id", assetID).
				Msg("skipping malformed metadata row")
			continue
		}

		i, ok := index[albumID]
		if !ok {
			albums = append(albums, models.Album{
				ID:      albumID,
				Name:    albumName.String,
				OwnerID: albumOwner.String,
			})
			i = len(albums) - 1
			index[albumID] = i
		}

		albums[i].Assets = append(albums[i].Assets, models.Asset{
			ID:           assetID,
			OwnerID:      assetOwner.String,
			InternalPath: assetPath.String,
			Size:         assetSize.Int64,
		})
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "*albumRepository.ListAlbums").Msg("error occurred during rows iteration")
		return nil, malformed, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return albums, malformed, nil
}
