package service

import (
	"strings"
	"unicode"

	"github.com/photark/albumsync/models"
)

// sanitizeAlbumName strips every character that is not a letter, digit,
// space, underscore, or hyphen, and trims surrounding whitespace. The
// result is safe as a directory name on POSIX and SMB-exported filesystems.
func sanitizeAlbumName(name string) string {
	var b strings.Builder
	for _, c := range name {
		if unicode.IsLetter(c) || unicode.IsDigit(c) || c == ' ' || c == '_' || c == '-' {
			b.WriteRune(c)
		}
	}

	return strings.TrimSpace(b.String())
}

// AlbumDirNames derives the destination directory name for every album.
//
// Two differently named albums can sanitize to the same string
// ("Trip/2024" and "Trip:2024" both become "Trip2024"); silently merging
// their exports would interleave unrelated files. Disambiguation is
// deterministic: every album in a colliding group gets the album ID
// appended, regardless of input order. An album whose name sanitizes to
// nothing is exported as "album-<ID>".
func AlbumDirNames(albums []models.Album) map[string]string {
	sanitized := make(map[string]string, len(albums))
	counts := make(map[string]int, len(albums))

	for _, album := range albums {
		name := sanitizeAlbumName(album.Name)
		sanitized[album.ID] = name
		counts[name]++
	}

	dirNames := make(map[string]string, len(albums))
	for _, album := range albums {
		name := sanitized[album.ID]

		switch {
		case name == "":
			dirNames[album.ID] = "album-" + album.ID
		case counts[name] > 1:
			dirNames[album.ID] = name + "-" + album.ID
		default:
			dirNames[album.ID] = name
		}
	}

	return dirNames
}
