package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "proj"), ExpandPath("~/proj"))
	assert.Equal(t, home, ExpandPath("~"))
	assert.Equal(t, "/etc/nginx.conf", ExpandPath("/etc/nginx.conf"))
	assert.Equal(t, "relative/path", ExpandPath("relative/path"))
	assert.Equal(t, "~user/proj", ExpandPath("~user/proj"))
}

func TestWithinDir(t *testing.T) {
	tests := []struct {
		name string
		base string
		path string
		want bool
	}{
		{"plain file", "frontend", "src/app.js", true},
		{"dot", "frontend", ".", true},
		{"up and back", "frontend", "src/../package.json", true},
		{"escapes one level", "frontend", "../nginx.conf", false},
		{"escapes via subdir", "frontend", "src/../../secrets", false},
		{"parent only", "frontend", "..", false},
		{"sibling with dotdot prefix name", "frontend", "..data/file", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WithinDir(tt.base, tt.path))
		})
	}
}
