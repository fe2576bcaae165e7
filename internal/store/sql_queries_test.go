// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func legacySchema() librarySchema {
	return librarySchema{
		variant:       MembershipAlbumsAssets,
		albumTable:    "albums",
		assetTable:    "assets",
		joinTable:     "albums_assets_assets",
		usersTable:    "users",
		albumFK:       "albumsId",
		assetFK:       "assetsId",
		albumNameCol:  "albumName",
		albumOwnerCol: "ownerId",
		assetPathCol:  "originalPath",
		assetOwnerCol: "ownerId",
		assetSizeCol:  "fileSizeInByte",
	}
}

func currentSchema() librarySchema {
	s := legacySchema()
	s.variant = MembershipAlbumAsset
	s.joinTable = "album_asset"
	s.albumFK = "albumId"
	s.assetFK = "assetId"
	s.albumNameCol = "name"
	return s
}

func Test_buildAlbumAssetsQuery_LegacyVariant(t *testing.T) {
	query, args, err := buildAlbumAssetsQuery(legacySchema(), "")
	require.NoError(t, err)
	require.Empty(t, args)

	require.Contains(t, query, `FROM "albums" a`)
	require.Contains(t, query, `JOIN "albums_assets_assets" aa ON a.id = aa."albumsId"`)
	require.Contains(t, query, `JOIN "assets" ast ON aa."assetsId" = ast.id`)
	require.Contains(t, query, `a."albumName" AS album_name`)
	require.Contains(t, query, `ast."originalPath" AS asset_path`)
	require.Contains(t, query, `ast."fileSizeInByte" AS asset_size`)
	require.Contains(t, query, `ORDER BY a."albumName", ast."originalPath"`)

	// read-only query, no owner filter requested
	assert.NotContains(t, strings.ToUpper(query), "WHERE")
}

func Test_buildAlbumAssetsQuery_CurrentVariant(t *testing.T) {
	query, _, err := buildAlbumAssetsQuery(currentSchema(), "")
	require.NoError(t, err)

	require.Contains(t, query, `JOIN "album_asset" aa ON a.id = aa."albumId"`)
	require.Contains(t, query, `JOIN "assets" ast ON aa."assetId" = ast.id`)
	require.Contains(t, query, `a."name" AS album_name`)
}

func Test_buildAlbumAssetsQuery_OwnerFilter(t *testing.T) {
	query, args, err := buildAlbumAssetsQuery(currentSchema(), "user-7")
	require.NoError(t, err)

	require.Len(t, args, 1)
	require.Equal(t, "user-7", args[0])
	require.Contains(t, query, `a."ownerId"::text = $1`)
}

func Test_buildAlbumAssetsQuery_OwnerFilterIgnoredWithoutOwnerColumn(t *testing.T) {
	s := currentSchema()
	s.albumOwnerCol = ""

	query, args, err := buildAlbumAssetsQuery(s, "user-7")
	require.NoError(t, err)

	// no owner column to filter on: the filter cannot narrow anything
	require.Empty(t, args)
	require.Contains(t, query, `'' AS album_owner`)
	assert.NotContains(t, strings.ToUpper(query), "WHERE")
}

func Test_buildAlbumAssetsQuery_MissingOptionalColumns(t *testing.T) {
	s := currentSchema()
	s.assetSizeCol = ""
	s.assetOwnerCol = ""

	query, _, err := buildAlbumAssetsQuery(s, "")
	require.NoError(t, err)

	// constant expressions keep the scan shape fixed
	require.Contains(t, query, `0 AS asset_size`)
	require.Contains(t, query, `'' AS asset_owner`)
}

func Test_buildFindUserQuery(t *testing.T) {
	query, args, err := buildFindUserQuery("users", "alice@example.com")
	require.NoError(t, err)

	require.Len(t, args, 2)
	require.Equal(t, "alice@example.com", args[0])
	require.Equal(t, "alice@example.com", args[1])

	require.Contains(t, query, `FROM "users" u`)
	require.Contains(t, query, `u.id::text = $1`)
	require.Contains(t, query, `u.email = $2`)
	require.Contains(t, query, "LIMIT 1")
}
