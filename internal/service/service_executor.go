package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/photark/albumsync/internal/logger"
	"github.com/photark/albumsync/models"
)

// syncExecutor is the default [SyncExecutor]. Every action is idempotent:
// re-running an unchanged plan performs no copies and leaves the
// destination tree byte-identical.
type syncExecutor struct {
	exportRoot string
	logger     *logger.Logger
}

// NewSyncExecutor constructs a [SyncExecutor] writing under exportRoot.
func NewSyncExecutor(exportRoot string, logger *logger.Logger) SyncExecutor {
	return &syncExecutor{
		exportRoot: exportRoot,
		logger:     logger,
	}
}

// ExecutePlan applies the plan's decisions in order. The album directory is
// created up front; "already exists" is success, any other creation failure
// marks the whole album's decisions as failed and is otherwise non-fatal to
// the run.
func (e *syncExecutor) ExecutePlan(ctx context.Context, plan models.AlbumPlan) models.AlbumResult {
	log := logger.FromContext(ctx)
	var result models.AlbumResult

	destDir := filepath.Join(e.exportRoot, plan.DirName)
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		log.Err(err).
			Str("album", plan.AlbumName).
			Str("dir", destDir).
			Msg("failed to create album directory")

		result.Failed = len(plan.Decisions)
		for _, d := range plan.Decisions {
			if d.Action == models.ActionMissingSource {
				result.MissingSources++
			}
		}
		return result
	}

	for _, decision := range plan.Decisions {
		switch decision.Action {
		case models.ActionSkip:
			result.Skipped++

		case models.ActionMissingSource:
			result.Failed++
			result.MissingSources++
			log.Warn().
				Str("album", plan.AlbumName).
				Str("asset_id", decision.Asset.ID).
				Str("internal_path", decision.Asset.InternalPath).
				Msg("source path did not resolve; asset not exported")

		case models.ActionCopy, models.ActionUpdate:
			if err := copyFile(decision.SourcePath, decision.DestPath); err != nil {
				result.Failed++
				log.Err(err).
					Str("album", plan.AlbumName).
					Str("source", decision.SourcePath).
					Str("dest", decision.DestPath).
					Str("action", decision.Action.String()).
					Msg("copy failed")
				continue
			}

			result.Copied++
			log.Debug().
				Str("source", decision.SourcePath).
				Str("dest", decision.DestPath).
				Str("action", decision.Action.String()).
				Msg("asset exported")
		}
	}

	return result
}

// DeleteStale removes stale files and prunes album directories the
// deletions emptied. Every failure is logged and counted; none aborts the
// remaining deletions.
func (e *syncExecutor) DeleteStale(ctx context.Context, candidates []string) (int, int) {
	log := logger.FromContext(ctx)

	var deleted, failed int
	for _, path := range candidates {
		if err := os.Remove(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			failed++
			log.Err(err).Str("path", path).Msg("failed to delete stale file")
			continue
		}

		deleted++
		log.Info().Str("path", path).Msg("deleted stale file")
		e.removeDirIfEmpty(filepath.Dir(path))
	}

	return deleted, failed
}

// removeDirIfEmpty prunes an album directory after its last file was
// deleted. The export root itself is never removed.
func (e *syncExecutor) removeDirIfEmpty(dir string) {
	if dir == e.exportRoot || dir == filepath.Clean(e.exportRoot) {
		return
	}

	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) > 0 {
		return
	}

	if err := os.Remove(dir); err == nil {
		e.logger.Info().Str("dir", dir).Msg("removed empty album directory")
	}
}

// copyFile copies src to dst, truncating any existing dst, and carries the
// source modification time over so mtime-based tools see a faithful mirror.
func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening source: %w", err)
	}
	defer srcFile.Close()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("creating destination: %w", err)
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		dstFile.Close()
		return fmt.Errorf("copying bytes: %w", err)
	}
	if err := dstFile.Close(); err != nil {
		return fmt.Errorf("closing destination: %w", err)
	}

	// best effort; a failed Chtimes does not fail the copy
	_ = os.Chtimes(dst, time.Now(), srcInfo.ModTime())

	return nil
}
