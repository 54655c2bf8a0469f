// filepath: internal/services/info_service.go
package services

import (
	"blog/internal/models"
	"time"
)

var _ InfoService = (*infoService)(nil)

type infoService struct {
	Version        string
	StartTime      time.Time
	SessionBackend string
	StorageBackend string
}

// NewInfoService creates a new InfoService.
func NewInfoService(version string, startTime time.Time, sessionBackend, storageBackend string) *infoService {
	return &infoService{
		Version:        version,
		StartTime:      startTime,
		SessionBackend: sessionBackend,
		StorageBackend: storageBackend,
	}
}

// GetInfo retrieves the application information.
func (s *infoService) GetInfo() models.Info {
	return models.Info{
		ServiceName:    "Blog",
		Version:        s.Version,
		UptimeSince:    s.StartTime,
		SessionBackend: s.SessionBackend,
		StorageBackend: s.StorageBackend,
	}
}
