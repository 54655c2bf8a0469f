// filepath: internal/services/auth/roles.go
package auth

import "blog/internal/repository"

// IsAdmin reports whether username holds the admin role. There is exactly one
// admin account and it is identified by name.
func IsAdmin(username string) bool {
	return username == repository.AdminUsername
}
