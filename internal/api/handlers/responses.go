// internal/api/handlers/responses.go
package handlers

import (
	"blog/internal/logging"
	"blog/internal/services/auth"
	"blog/internal/web"
	"encoding/json"
	"net/http"
)

// ErrorResponse is a standard format for API error messages.
type ErrorResponse struct {
	Error string `json:"error"`
}

// errorView is the data of the error page.
type errorView struct {
	Code    int
	Message string
}

// respondWithError sends a JSON error response.
func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, ErrorResponse{Error: message})
}

// respondWithJSON sends a JSON response.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, `{"error":"Failed to marshal JSON response"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// newPage builds the common page data for the requesting user.
func newPage(r *http.Request, title string, data any) web.Page {
	username, _ := auth.UserFromContext(r.Context())
	return web.Page{
		Title:   title,
		User:    username,
		IsAdmin: auth.IsAdmin(username),
		Data:    data,
	}
}

// render writes a full HTML page.
func (h *Handlers) render(w http.ResponseWriter, r *http.Request, status int, name, title string, data any) {
	h.Views.Render(w, status, name, newPage(r, title, data))
}

// RenderError writes the HTML error page. It matches auth.ErrorWriter so the
// middleware reports errors the same way the handlers do.
func (h *Handlers) RenderError(w http.ResponseWriter, r *http.Request, code int, message string) {
	h.render(w, r, code, "error.html", http.StatusText(code), errorView{Code: code, Message: message})
}

// internalError logs err and answers with the 500 page.
func (h *Handlers) internalError(w http.ResponseWriter, r *http.Request, op string, err error) {
	logging.Log.Errorf("%s: %v", op, err)
	h.RenderError(w, r, http.StatusInternalServerError, "Something went wrong. Please try again later.")
}
