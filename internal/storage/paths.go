// filepath: internal/storage/paths.go
package storage

import (
	"blog/internal/shared"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// objectNameRegex matches the names produced for uploads: a ULID plus an optional extension.
var objectNameRegex = regexp.MustCompile(`^[0-9A-Za-z]{1,64}(\.[0-9A-Za-z]{1,10})?$`)

// ValidObjectName reports whether name is safe to use as a flat upload name.
func ValidObjectName(name string) bool {
	return objectNameRegex.MatchString(name)
}

// resolvePath joins name to root and rejects anything that escapes root.
func resolvePath(root, name string) (string, error) {
	if !ValidObjectName(name) {
		return "", fmt.Errorf("%w: %q", shared.ErrInvalidName, name)
	}

	cleanedRoot := filepath.Clean(root)
	cleanedPath := filepath.Clean(filepath.Join(cleanedRoot, name))

	// --- SECURITY: Prevent Path Traversal ---
	if !strings.HasPrefix(cleanedPath, cleanedRoot+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: potential path traversal", shared.ErrInvalidName)
	}
	return cleanedPath, nil
}
