package util

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath resolves a leading ~ against the user's home directory.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

// WithinDir reports whether path, resolved against base, stays inside
// base. A COPY source with enough ".." segments to escape its build
// context makes this false.
func WithinDir(base, path string) bool {
	rel, err := filepath.Rel(base, filepath.Join(base, path))
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
