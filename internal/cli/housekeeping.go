// filepath: internal/cli/housekeeping.go
package cli

import (
	"blog/internal/housekeeping"
	"blog/internal/logging"
	"blog/internal/models"
	"blog/internal/session"
	"blog/internal/storage"
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newHousekeepingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "housekeeping",
		Short: "Remove expired sessions and unreferenced uploads, then exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHousekeeping(cmd.Context())
		},
	}
}

func runHousekeeping(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	repo, err := openRepository(cfg)
	if err != nil {
		return err
	}
	defer repo.Close()

	store, err := session.New(cfg, repo, time.Now)
	if err != nil {
		return fmt.Errorf("failed to initialize session store: %w", err)
	}
	defer store.Close()

	uploads, err := storage.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize upload storage: %w", err)
	}

	report, runErr := housekeeping.NewService(housekeeping.Dependencies{
		Sessions: store,
		Posts:    repo,
		Uploads:  uploads,
		Clock:    time.Now,
	}).Run(ctx)
	if report != nil {
		logReport(report)
	}
	if runErr != nil {
		return fmt.Errorf("housekeeping finished with errors: %w", runErr)
	}
	return nil
}

func logReport(report *models.HousekeepingReport) {
	logging.Log.WithFields(logrus.Fields{
		"expired_sessions": report.ExpiredSessions,
		"orphaned_uploads": report.OrphanedUploads,
		"reclaimed_bytes":  report.ReclaimedBytes,
		"duration":         report.Duration,
	}).Info("Housekeeping complete")
	for _, msg := range report.UploadErrors {
		logging.Log.Warn(msg)
	}
}
