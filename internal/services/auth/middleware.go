// filepath: internal/services/auth/middleware.go
package auth

import (
	"blog/internal/logging"
	"net/http"
)

// ErrorWriter renders an error response. Handlers supply an HTML renderer; the
// default writes plain text.
type ErrorWriter func(w http.ResponseWriter, r *http.Request, code int, message string)

func plainError(w http.ResponseWriter, _ *http.Request, code int, message string) {
	http.Error(w, message, code)
}

// Middleware provides authentication and authorization middleware.
type Middleware struct {
	Sessions Sessions
	Error    ErrorWriter
}

// NewMiddleware creates a new instance of Middleware.
func NewMiddleware(sessions Sessions, errorWriter ErrorWriter) *Middleware {
	if errorWriter == nil {
		errorWriter = plainError
	}
	return &Middleware{Sessions: sessions, Error: errorWriter}
}

// WithSession resolves the session cookie and stores the username in the request context.
// Anonymous requests pass through unchanged.
func (m *Middleware) WithSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, ok, err := m.Sessions.CurrentUser(r.Context(), r)
		if err != nil {
			logging.Log.Errorf("WithSession: session lookup failed for %s: %v", r.URL.Path, err)
			m.Error(w, r, http.StatusInternalServerError, "Internal server error")
			return
		}
		if ok {
			r = r.WithContext(WithUser(r.Context(), username))
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAuth redirects anonymous requests to the login page.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserFromContext(r.Context()); !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin redirects anonymous requests to the login page and rejects
// authenticated non-admins with 403.
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, ok := UserFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		if !IsAdmin(username) {
			logging.Log.Warnf("RequireAdmin: Access DENIED for user '%s' on %s", username, r.URL.Path)
			m.Error(w, r, http.StatusForbidden, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
