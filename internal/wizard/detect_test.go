package wizard

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// mockDetector implements Detector for testing.
type mockDetector struct {
	files map[string]bool
	globs map[string][]string
}

type fakeFileInfo struct {
	name string
}

func (f fakeFileInfo) Name() string       { return f.name }
func (f fakeFileInfo) Size() int64        { return 0 }
func (f fakeFileInfo) Mode() os.FileMode  { return 0644 }
func (f fakeFileInfo) ModTime() time.Time { return time.Time{} }
func (f fakeFileInfo) IsDir() bool        { return false }
func (f fakeFileInfo) Sys() interface{}   { return nil }

func (m *mockDetector) Stat(path string) (os.FileInfo, error) {
	if m.files[path] {
		return fakeFileInfo{name: path}, nil
	}
	return nil, os.ErrNotExist
}

func (m *mockDetector) Glob(pattern string) ([]string, error) {
	return m.globs[pattern], nil
}

func TestDetectCompose(t *testing.T) {
	d := &mockDetector{files: map[string]bool{
		filepath.Join(".", "docker-compose.yml"): true,
	}}
	result := Detect(d, ".")
	assert.Equal(t, filepath.Join(".", "docker-compose.yml"), result.ComposeFile)
}

func TestDetectComposePreference(t *testing.T) {
	// both spellings present: the .yml spelling wins
	d := &mockDetector{files: map[string]bool{
		filepath.Join(".", "docker-compose.yml"):  true,
		filepath.Join(".", "docker-compose.yaml"): true,
	}}
	result := Detect(d, ".")
	assert.Equal(t, filepath.Join(".", "docker-compose.yml"), result.ComposeFile)
}

func TestDetectProxyInSubdir(t *testing.T) {
	d := &mockDetector{files: map[string]bool{
		filepath.Join(".", "nginx", "nginx.conf"): true,
	}}
	result := Detect(d, ".")
	assert.Equal(t, filepath.Join(".", "nginx", "nginx.conf"), result.ProxyFile)
}

func TestDetectEnvExample(t *testing.T) {
	d := &mockDetector{files: map[string]bool{
		filepath.Join(".", ".env.sample"): true,
	}}
	result := Detect(d, ".")
	assert.Equal(t, filepath.Join(".", ".env.sample"), result.EnvExample)
}

func TestDetectDockerfiles(t *testing.T) {
	d := &mockDetector{globs: map[string][]string{
		filepath.Join(".", "*/Dockerfile"): {"frontend/Dockerfile", "backend/Dockerfile"},
	}}
	result := Detect(d, ".")
	assert.Equal(t, []string{"frontend/Dockerfile", "backend/Dockerfile"}, result.Dockerfiles)
}

func TestDetectNothing(t *testing.T) {
	d := &mockDetector{}
	result := Detect(d, ".")
	assert.Empty(t, result.ComposeFile)
	assert.Empty(t, result.ProxyFile)
	assert.Empty(t, result.EnvExample)
	assert.Empty(t, result.Dockerfiles)
}

func TestDetectCustomRoot(t *testing.T) {
	d := &mockDetector{files: map[string]bool{
		filepath.Join("proj", "compose.yaml"): true,
	}}
	result := Detect(d, "proj")
	assert.Equal(t, filepath.Join("proj", "compose.yaml"), result.ComposeFile)
}
