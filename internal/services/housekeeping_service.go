// filepath: internal/services/housekeeping_service.go
package services

import (
	"blog/internal/housekeeping"
	"blog/internal/logging"
	"blog/internal/models"
	"context"
)

var _ HousekeepingService = (*housekeepingService)(nil)

// housekeepingService exposes manual housekeeping runs to handlers and the CLI.
type housekeepingService struct {
	worker *housekeeping.Service
}

// NewHousekeepingService creates a new HousekeepingService.
func NewHousekeepingService(deps housekeeping.Dependencies) *housekeepingService {
	return &housekeepingService{worker: housekeeping.NewService(deps)}
}

// TriggerHousekeeping runs the cleanup tasks once.
func (s *housekeepingService) TriggerHousekeeping(ctx context.Context) (*models.HousekeepingReport, error) {
	report, err := s.worker.Run(ctx)
	if err != nil {
		logging.Log.Errorf("Manual housekeeping finished with errors: %v", err)
		return report, err
	}
	return report, nil
}
