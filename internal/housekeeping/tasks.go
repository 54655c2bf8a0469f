// filepath: internal/housekeeping/tasks.go
package housekeeping

import (
	"blog/internal/logging"
	"blog/internal/models"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/dustin/go-humanize"
)

// MinOrphanAge keeps fresh uploads whose post insert may still be in flight.
const MinOrphanAge = time.Hour

// Dependencies defines the required services for the housekeeping tasks.
type Dependencies struct {
	Sessions SessionSweeper
	Posts    PostImages
	Uploads  UploadStore
	Clock    func() time.Time
}

func (d Dependencies) now() time.Time {
	if d.Clock == nil {
		return time.Now()
	}
	return d.Clock()
}

// RunAll sweeps expired sessions and deletes uploads no post references.
// A failing task is logged and the remaining tasks still run; the first error is returned.
func RunAll(ctx context.Context, deps Dependencies) (*models.HousekeepingReport, error) {
	start := deps.now()
	report := &models.HousekeepingReport{StartedAt: start}
	var firstErr error

	// 1. Expired sessions
	removed, err := deps.Sessions.CleanupExpired(ctx)
	if err != nil {
		logging.Log.Errorf("Housekeeping session sweep failed: %v", err)
		firstErr = fmt.Errorf("session sweep: %w", err)
	}
	report.ExpiredSessions = removed

	// 2. Orphaned uploads
	if err := cleanupOrphanedUploads(ctx, deps, report); err != nil {
		logging.Log.Errorf("Housekeeping upload cleanup failed: %v", err)
		if firstErr == nil {
			firstErr = fmt.Errorf("upload cleanup: %w", err)
		}
	}

	report.Duration = deps.now().Sub(start).String()
	logging.Log.Infof("Housekeeping complete. %d expired sessions removed, %d orphaned uploads deleted, freeing %s.",
		report.ExpiredSessions, report.OrphanedUploads, humanize.IBytes(uint64(report.ReclaimedBytes)))
	return report, firstErr
}

// cleanupOrphanedUploads deletes stored objects older than MinOrphanAge that no post points at.
func cleanupOrphanedUploads(ctx context.Context, deps Dependencies, report *models.HousekeepingReport) error {
	paths, err := deps.Posts.GetImagePaths(ctx)
	if err != nil {
		return fmt.Errorf("could not list referenced images: %w", err)
	}
	referenced := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		referenced[path.Base(p)] = struct{}{}
	}

	objects, err := deps.Uploads.List(ctx)
	if err != nil {
		return fmt.Errorf("could not list uploads: %w", err)
	}

	cutoff := deps.now().Add(-MinOrphanAge)
	for _, obj := range objects {
		if _, ok := referenced[obj.Name]; ok {
			continue
		}
		if obj.ModTime.After(cutoff) {
			logging.Log.Debugf("Housekeeping: keeping recent unreferenced upload '%s'", obj.Name)
			continue
		}
		if err := deps.Uploads.Delete(ctx, obj.Name); err != nil {
			logging.Log.Warnf("Housekeeping: Failed to delete upload '%s': %v", obj.Name, err)
			report.UploadErrors = append(report.UploadErrors, fmt.Sprintf("%s: %v", obj.Name, err))
			continue
		}
		report.OrphanedUploads++
		report.ReclaimedBytes += obj.Size
	}
	return nil
}
