// filepath: internal/api/handlers/api_handler.go
package handlers

import (
	"blog/internal/logging"
	"blog/internal/services"
	"errors"
	"net/http"
)

// @Summary List posts
// @Description Retrieves all posts, newest first, with their like counts.
// @Tags Posts
// @Produce  json
// @Success 200 {array} models.Post
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /posts [get]
func (h *Handlers) GetPostsAPI(w http.ResponseWriter, r *http.Request) {
	posts, err := h.Post.ListPosts(r.Context())
	if err != nil {
		logging.Log.Errorf("GetPostsAPI: ListPosts failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to list posts.")
		return
	}
	respondWithJSON(w, http.StatusOK, posts)
}

// @Summary Get a post
// @Description Retrieves one post with its like count and comments. Unlike the HTML page, this does not record a view.
// @Tags Posts
// @Produce  json
// @Param   id  path  int  true  "Post ID"
// @Success 200 {object} models.Post
// @Failure 400 {object} ErrorResponse "Invalid ID"
// @Failure 404 {object} ErrorResponse "Post not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /posts/{id} [get]
func (h *Handlers) GetPostAPI(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid ID format.")
		return
	}

	post, err := h.Post.GetPost(r.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Post not found.")
			return
		}
		logging.Log.Errorf("GetPostAPI: post %d: %v", id, err)
		respondWithError(w, http.StatusInternalServerError, "Failed to get post.")
		return
	}
	respondWithJSON(w, http.StatusOK, post)
}
