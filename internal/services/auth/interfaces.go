// filepath: internal/services/auth/interfaces.go
package auth

import (
	"context"
	"net/http"
)

// Sessions defines the contract for cookie-backed login state.
type Sessions interface {
	// Login verifies the credentials and, on success, stores a session and sets the cookie.
	Login(ctx context.Context, w http.ResponseWriter, username, password string, remember bool) (bool, error)
	// Logout deletes the session named by the request cookie and clears the cookie.
	Logout(ctx context.Context, w http.ResponseWriter, r *http.Request) error
	// CurrentUser resolves the request cookie to a username.
	CurrentUser(ctx context.Context, r *http.Request) (string, bool, error)
}
