// filepath: internal/api/handlers/analytics_handler.go
package handlers

import (
	"blog/internal/models"
	"blog/internal/services"
	"errors"
	"fmt"
	"net/http"
)

type analyticsView struct {
	Items []models.PostWithAnalytics
}

type postAnalyticsView struct {
	Item *models.PostWithAnalytics
}

// UserAnalytics lists the current user's posts with their analytics.
func (h *Handlers) UserAnalytics(w http.ResponseWriter, r *http.Request) {
	items, err := h.Post.GetUserAnalytics(r.Context(), getUserFromContext(r))
	if err != nil {
		h.internalError(w, r, "UserAnalytics: GetUserAnalytics failed", err)
		return
	}
	h.render(w, r, http.StatusOK, "analytics.html", "Analytics", analyticsView{Items: items})
}

// PostAnalytics shows views, likes, comments and likers of one post to its author.
func (h *Handlers) PostAnalytics(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		h.RenderError(w, r, http.StatusForbidden, "Access denied")
		return
	}

	item, err := h.Post.GetPostAnalytics(r.Context(), id, getUserFromContext(r))
	if err != nil {
		if errors.Is(err, services.ErrForbidden) {
			h.RenderError(w, r, http.StatusForbidden, "Access denied")
			return
		}
		h.internalError(w, r, fmt.Sprintf("PostAnalytics: post %d", id), err)
		return
	}
	h.render(w, r, http.StatusOK, "post_analytics.html", "Analytics", postAnalyticsView{Item: item})
}
