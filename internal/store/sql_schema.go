package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/photark/albumsync/internal/logger"
)

// MembershipVariant tags the album-membership join layout found in the
// metadata store. The store renamed its relations at some point (plural
// tables with "albumsId"/"assetsId" foreign keys became singular tables
// with "albumId"/"assetId"), so both layouts must be supported. The variant
// is detected once at repository initialization and then used as an
// explicit parameter for all queries; it is never re-probed per call.
type MembershipVariant int

const (
	// MembershipAlbumsAssets is the legacy layout: plural table names and
	// plural-suffixed foreign key columns (albumsId, assetsId).
	MembershipAlbumsAssets MembershipVariant = iota

	// MembershipAlbumAsset is the current layout: singular table names and
	// singular foreign key columns (albumId, assetId).
	MembershipAlbumAsset
)

// String returns the variant name used in logs.
func (v MembershipVariant) String() string {
	if v == MembershipAlbumsAssets {
		return "albums-assets (legacy)"
	}
	return "album-asset (current)"
}

// librarySchema is the resolved shape of the metadata store: which relations
// hold albums, assets, and their membership, and which columns carry the
// fields the engine needs. Resolved once per repository, then immutable.
type librarySchema struct {
	variant MembershipVariant

	albumTable string
	assetTable string
	joinTable  string
	usersTable string

	albumFK string
	assetFK string

	albumNameCol  string
	albumOwnerCol string
	assetPathCol  string
	assetOwnerCol string
	assetSizeCol  string
}

// Probe queries. to_regclass returns NULL for relations that do not exist,
// which keeps detection to a single round trip per candidate.
const (
	probeTableQuery = `SELECT to_regclass($1)`

	probeColumnsQuery = `SELECT column_name FROM information_schema.columns WHERE table_schema = 'public' AND table_name = $1`

	scanJoinTablesQuery = `SELECT table_name FROM information_schema.tables WHERE table_schema = 'public' AND table_name ILIKE '%album%' AND table_name ILIKE '%asset%'`
)

// Candidate names tried, in priority order, during schema detection.
var (
	albumTableCandidates = []string{"albums", "album"}
	assetTableCandidates = []string{"assets", "asset"}
	joinTableCandidates  = []string{"albums_assets_assets", "album_assets_assets", "album_asset", "album_assets", "albums_assets"}
	usersTableCandidates = []string{"users", "user"}

	albumFKCandidates = []string{"albumsId", "albumId"}
	assetFKCandidates = []string{"assetsId", "assetId"}

	albumNameCandidates = []string{"albumName", "name", "title"}
	assetPathCandidates = []string{"originalPath", "original_path", "originalFilePath", "fileOriginalPath"}
	assetSizeCandidates = []string{"fileSizeInByte", "file_size_in_byte", "size"}
)

// detectSchema probes the store once and returns the resolved schema.
// Any relation or foreign key that cannot be located is fatal
// ([ErrSchemaUndetectable]); missing optional columns (owner, size) are not.
func detectSchema(ctx context.Context, db *DB, log *logger.Logger) (librarySchema, error) {
	var s librarySchema

	albumTable, err := firstExistingTable(ctx, db, albumTableCandidates)
	if err != nil {
		return s, err
	}
	assetTable, err := firstExistingTable(ctx, db, assetTableCandidates)
	if err != nil {
		return s, err
	}
	if albumTable == "" || assetTable == "" {
		return s, fmt.Errorf("%w: album/asset tables not found in schema 'public'", ErrSchemaUndetectable)
	}

	joinTable, err := firstExistingTable(ctx, db, joinTableCandidates)
	if err != nil {
		return s, err
	}
	if joinTable == "" {
		// last resort: scan for any relation mentioning both entities
		joinTable, err = scanForJoinTable(ctx, db)
		if err != nil {
			return s, err
		}
	}
	if joinTable == "" {
		return s, fmt.Errorf("%w: album-asset join table not found in schema 'public'", ErrSchemaUndetectable)
	}

	joinCols, err := columnsForTable(ctx, db, joinTable)
	if err != nil {
		return s, err
	}
	albumFK := firstIn(albumFKCandidates, joinCols)
	assetFK := firstIn(assetFKCandidates, joinCols)
	if albumFK == "" || assetFK == "" {
		return s, fmt.Errorf("%w: join table %q missing album/asset FK columns", ErrSchemaUndetectable, joinTable)
	}

	albumCols, err := columnsForTable(ctx, db, albumTable)
	if err != nil {
		return s, err
	}
	assetCols, err := columnsForTable(ctx, db, assetTable)
	if err != nil {
		return s, err
	}

	s = librarySchema{
		variant:       MembershipAlbumAsset,
		albumTable:    albumTable,
		assetTable:    assetTable,
		joinTable:     joinTable,
		albumFK:       albumFK,
		assetFK:       assetFK,
		albumNameCol:  firstIn(albumNameCandidates, albumCols),
		albumOwnerCol: firstIn([]string{"ownerId"}, albumCols),
		assetPathCol:  firstIn(assetPathCandidates, assetCols),
		assetOwnerCol: firstIn([]string{"ownerId"}, assetCols),
		assetSizeCol:  firstIn(assetSizeCandidates, assetCols),
	}
	if albumFK == "albumsId" {
		s.variant = MembershipAlbumsAssets
	}
	if s.albumNameCol == "" {
		s.albumNameCol = "name"
	}
	if s.assetPathCol == "" {
		s.assetPathCol = "originalPath"
	}

	// users table is optional; the owner filter falls back to raw IDs
	usersTable, err := firstExistingTable(ctx, db, usersTableCandidates)
	if err != nil {
		return s, err
	}
	s.usersTable = usersTable

	log.Info().
		Str("variant", s.variant.String()).
		Str("album_table", s.albumTable).
		Str("asset_table", s.assetTable).
		Str("join_table", s.joinTable).
		Str("album_fk", s.albumFK).
		Str("asset_fk", s.assetFK).
		Msg("metadata schema detected")

	return s, nil
}

// firstExistingTable returns the first candidate relation that exists in
// schema 'public', or "" when none do.
func firstExistingTable(ctx context.Context, db *DB, candidates []string) (string, error) {
	for _, name := range candidates {
		var regclass sql.NullString

		row := db.QueryRowContext(ctx, probeTableQuery, "public."+name)
		if err := row.Scan(&regclass); err != nil {
			return "", fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}

		if regclass.Valid && regclass.String != "" {
			return name, nil
		}
	}

	return "", nil
}

// columnsForTable returns the set of column names of the given relation.
func columnsForTable(ctx context.Context, db *DB, tableName string) (map[string]struct{}, error) {
	rows, err := db.QueryContext(ctx, probeColumnsQuery, tableName)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	cols := make(map[string]struct{})
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		cols[name] = struct{}{}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return cols, nil
}

// scanForJoinTable is the detection fallback: any relation whose name
// mentions both albums and assets. The first match in catalog order wins.
func scanForJoinTable(ctx context.Context, db *DB) (string, error) {
	rows, err := db.QueryContext(ctx, scanJoinTablesQuery)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var first string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return "", fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		if first == "" {
			first = name
		}
	}

	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return first, nil
}

func firstIn(options []string, available map[string]struct{}) string {
	for _, o := range options {
		if _, ok := available[o]; ok {
			return o
		}
	}

	return ""
}
