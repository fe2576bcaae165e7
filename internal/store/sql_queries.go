package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// psql is the shared builder for all metadata queries: Postgres placeholder
// format, read-only SELECTs.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// quoteIdent double-quotes a detected identifier. The metadata store uses
// camelCase column names ("albumName", "originalPath"), which are folded to
// lowercase by Postgres unless quoted.
func quoteIdent(name string) string {
	return `"` + name + `"`
}

// buildAlbumAssetsQuery builds the one big read of the run: every
// (album, asset) membership pair, with album name, asset path and size,
// ordered by album name then asset path. Table and column identifiers come
// from the detected [librarySchema]; an optional ownerID narrows the result
// to albums owned by that user.
//
// Columns that the detected schema does not provide (owner, size) are
// replaced by constant expressions so the scan shape stays fixed.
func buildAlbumAssetsQuery(s librarySchema, ownerID string) (string, []any, error) {
	ownerCol := "'' AS album_owner"
	if s.albumOwnerCol != "" {
		ownerCol = "a." + quoteIdent(s.albumOwnerCol) + " AS album_owner"
	}

	assetOwnerCol := "'' AS asset_owner"
	if s.assetOwnerCol != "" {
		assetOwnerCol = "ast." + quoteIdent(s.assetOwnerCol) + " AS asset_owner"
	}

	sizeCol := "0 AS asset_size"
	if s.assetSizeCol != "" {
		sizeCol = "ast." + quoteIdent(s.assetSizeCol) + " AS asset_size"
	}

	builder := psql.
		Select(
			"a.id AS album_id",
			"a."+quoteIdent(s.albumNameCol)+" AS album_name",
			ownerCol,
			"ast.id AS asset_id",
			assetOwnerCol,
			"ast."+quoteIdent(s.assetPathCol)+" AS asset_path",
			sizeCol,
		).
		From(quoteIdent(s.albumTable) + " a").
		Join(quoteIdent(s.joinTable) + " aa ON a.id = aa." + quoteIdent(s.albumFK)).
		Join(quoteIdent(s.assetTable) + " ast ON aa." + quoteIdent(s.assetFK) + " = ast.id").
		OrderBy("a."+quoteIdent(s.albumNameCol), "ast."+quoteIdent(s.assetPathCol))

	if ownerID != "" && s.albumOwnerCol != "" {
		builder = builder.Where(sq.Expr("a."+quoteIdent(s.albumOwnerCol)+"::text = ?", ownerID))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildFindUserQuery resolves an owner filter (opaque ID or e-mail address)
// to a user identifier.
func buildFindUserQuery(usersTable, filter string) (string, []any, error) {
	query, args, err := psql.
		Select("u.id").
		From(quoteIdent(usersTable) + " u").
		Where(sq.Or{
			sq.Expr("u.id::text = ?", filter),
			sq.Expr("u.email = ?", filter),
		}).
		Limit(1).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}
