// filepath: internal/housekeeping/service.go
package housekeeping

import (
	"blog/internal/logging"
	"blog/internal/models"
	"context"
	"sync"
)

// Service runs housekeeping on demand. There is no schedule; an admin or the
// CLI triggers each run. Overlapping triggers are serialized.
type Service struct {
	Deps Dependencies
	mu   sync.Mutex
}

// NewService creates a new housekeeping service instance.
func NewService(deps Dependencies) *Service {
	return &Service{Deps: deps}
}

// Run executes one housekeeping pass.
func (s *Service) Run(ctx context.Context) (*models.HousekeepingReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	logging.Log.Info("Housekeeping run started.")
	return RunAll(ctx, s.Deps)
}
