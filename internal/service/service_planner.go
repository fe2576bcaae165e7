package service

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"context"

	"github.com/photark/albumsync/internal/logger"
	"github.com/photark/albumsync/internal/resolver"
	"github.com/photark/albumsync/models"
)

// mediaExtensions whitelists the file types the engine manages under the
// export root. Only these are ever considered deletion candidates, so
// foreign files a user drops into an album directory survive cleanup.
var mediaExtensions = map[string]struct{}{
	".jpg": {}, ".jpeg": {}, ".png": {}, ".gif": {}, ".bmp": {}, ".tiff": {}, ".webp": {},
	".raw": {}, ".dng": {}, ".cr2": {}, ".nef": {}, ".arw": {}, ".orf": {}, ".rw2": {},
	".pef": {}, ".x3f": {}, ".srw": {}, ".raf": {}, ".3fr": {}, ".fff": {}, ".iiq": {},
	".k25": {}, ".kdc": {}, ".mos": {}, ".mef": {}, ".nrw": {}, ".ptx": {}, ".pxn": {},
	".r3d": {}, ".rwl": {}, ".rwz": {}, ".mp4": {}, ".mov": {}, ".avi": {},
	".mkv": {}, ".m4v": {}, ".3gp": {}, ".webm": {},
}

// ignoredNames are never treated as managed files, whatever their location.
var ignoredNames = map[string]struct{}{
	"progress.json": {},
	".DS_Store":     {},
	"Thumbs.db":     {},
}

// syncPlanner is the default [SyncPlanner]: it resolves each asset through
// the path resolver and compares on-disk sizes against the destination.
// Size is the only comparison made — a content change that preserves size
// is reported as already synchronized. This is a deliberate cost trade-off,
// not a defect; see the resolver and executor documentation.
type syncPlanner struct {
	resolver   *resolver.Resolver
	exportRoot string
	logger     *logger.Logger
}

// NewSyncPlanner constructs a [SyncPlanner] resolving against res and
// planning into exportRoot.
func NewSyncPlanner(res *resolver.Resolver, exportRoot string, logger *logger.Logger) SyncPlanner {
	return &syncPlanner{
		resolver:   res,
		exportRoot: exportRoot,
		logger:     logger,
	}
}

// PlanAlbum produces the ordered decision list for one album. Decisions are
// derived fresh from current metadata and the current filesystem state;
// nothing persists between runs.
func (p *syncPlanner) PlanAlbum(ctx context.Context, album models.Album, dirName string) (models.AlbumPlan, error) {
	log := logger.FromContext(ctx)

	plan := models.AlbumPlan{
		AlbumID:   album.ID,
		AlbumName: album.Name,
		DirName:   dirName,
		Decisions: make([]models.SyncDecision, 0, len(album.Assets)),
	}
	destDir := filepath.Join(p.exportRoot, dirName)

	for _, asset := range album.Assets {
		source, ok := p.resolver.Resolve(asset.InternalPath)
		if !ok {
			plan.Decisions = append(plan.Decisions, models.SyncDecision{
				Action:   models.ActionMissingSource,
				Asset:    asset,
				DestPath: filepath.Join(destDir, internalBaseName(asset.InternalPath)),
			})
			continue
		}

		sourceInfo, err := os.Stat(source)
		if err != nil {
			// resolved a moment ago but gone now: the mount is flapping
			log.Warn().Str("source", source).Msg("resolved source vanished before stat")
			plan.Decisions = append(plan.Decisions, models.SyncDecision{
				Action:   models.ActionMissingSource,
				Asset:    asset,
				DestPath: filepath.Join(destDir, internalBaseName(asset.InternalPath)),
			})
			continue
		}

		plan.Found++
		dest := filepath.Join(destDir, filepath.Base(source))

		decision := models.SyncDecision{
			Asset:      asset,
			SourcePath: source,
			DestPath:   dest,
		}

		destInfo, err := os.Stat(dest)
		switch {
		case err != nil:
			decision.Action = models.ActionCopy
		case destInfo.Size() != sourceInfo.Size():
			decision.Action = models.ActionUpdate
		default:
			decision.Action = models.ActionSkip
		}

		plan.Decisions = append(plan.Decisions, decision)
	}

	return plan, nil
}

// SnapshotExport walks the export root and returns every managed media
// file. Missing export root is not an error: the run simply starts with an
// empty destination.
func (p *syncPlanner) SnapshotExport() (map[string]struct{}, error) {
	files := make(map[string]struct{})

	err := filepath.WalkDir(p.exportRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			return nil
		}

		name := d.Name()
		if _, ignored := ignoredNames[name]; ignored {
			return nil
		}
		if strings.HasPrefix(name, ".") {
			return nil
		}
		if _, ok := mediaExtensions[strings.ToLower(filepath.Ext(name))]; !ok {
			return nil
		}

		files[path] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

// internalBaseName derives the destination file name for an asset whose
// source never resolved, so deletion candidate matching still works for it.
func internalBaseName(internalPath string) string {
	return filepath.Base(strings.ReplaceAll(internalPath, `\`, "/"))
}
