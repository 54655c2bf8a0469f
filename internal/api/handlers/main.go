// filepath: internal/api/handlers/main.go
package handlers

import (
	"blog/internal/config"
	"blog/internal/services"
	"blog/internal/services/auth"
	"blog/internal/web"
	"net/http"
	"time"
)

// Renderer renders a named HTML page.
type Renderer interface {
	Render(w http.ResponseWriter, status int, name string, page web.Page)
}

// Handlers provides a struct to hold shared dependencies for the HTTP handlers.
type Handlers struct {
	Info         services.InfoService
	User         services.UserService
	Post         services.PostService
	Housekeeping services.HousekeepingService
	Sessions     auth.Sessions
	Auditor      services.Auditor
	Views        Renderer

	Cfg       *config.Config
	Version   string
	StartTime time.Time
}

// NewHandlers creates a new instance of Handlers with its dependencies.
func NewHandlers(
	info services.InfoService,
	user services.UserService,
	post services.PostService,
	housekeeping services.HousekeepingService,
	sessions auth.Sessions,
	auditor services.Auditor,
	views Renderer,
	cfg *config.Config,
) *Handlers {
	h := &Handlers{
		Info:         info,
		User:         user,
		Post:         post,
		Housekeeping: housekeeping,
		Sessions:     sessions,
		Auditor:      auditor,
		Views:        views,
		Cfg:          cfg,
	}
	if info != nil {
		h.Version = info.GetInfo().Version
		h.StartTime = info.GetInfo().UptimeSince
	}
	return h
}
