// filepath: internal/services/auth/context.go
package auth

import "context"

type contextKey string

const userContextKey contextKey = "user"

// WithUser returns a copy of ctx carrying the authenticated username.
func WithUser(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, userContextKey, username)
}

// UserFromContext returns the authenticated username, if any.
func UserFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(userContextKey).(string)
	return username, ok && username != ""
}
