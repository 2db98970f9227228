package wizard

import (
	"os"
	"path/filepath"
)

// DetectionResult holds the deployment artifacts found in the project.
type DetectionResult struct {
	ComposeFile string
	ProxyFile   string
	EnvExample  string
	Dockerfiles []string
}

// Detector abstracts filesystem lookups for testing.
type Detector interface {
	Stat(path string) (os.FileInfo, error)
	Glob(pattern string) ([]string, error)
}

// OSDetector uses the real OS for detection.
type OSDetector struct{}

func (OSDetector) Stat(path string) (os.FileInfo, error) { return os.Stat(path) }
func (OSDetector) Glob(pattern string) ([]string, error) { return filepath.Glob(pattern) }

// Detect scans a project root for the artifacts the checker consumes.
func Detect(d Detector, root string) DetectionResult {
	if d == nil {
		d = OSDetector{}
	}
	if root == "" {
		root = "."
	}

	result := DetectionResult{}

	composeNames := []string{
		"docker-compose.yml",
		"docker-compose.yaml",
		"compose.yml",
		"compose.yaml",
	}
	for _, name := range composeNames {
		p := filepath.Join(root, name)
		if _, err := d.Stat(p); err == nil {
			result.ComposeFile = p
			break
		}
	}

	proxyNames := []string{
		"nginx.conf",
		filepath.Join("nginx", "nginx.conf"),
		filepath.Join("docker", "nginx.conf"),
		filepath.Join("nginx", "default.conf"),
	}
	for _, name := range proxyNames {
		p := filepath.Join(root, name)
		if _, err := d.Stat(p); err == nil {
			result.ProxyFile = p
			break
		}
	}

	for _, name := range []string{".env.example", ".env.sample", ".env.template"} {
		p := filepath.Join(root, name)
		if _, err := d.Stat(p); err == nil {
			result.EnvExample = p
			break
		}
	}

	for _, pattern := range []string{"Dockerfile", "*/Dockerfile"} {
		if matches, err := d.Glob(filepath.Join(root, pattern)); err == nil {
			result.Dockerfiles = append(result.Dockerfiles, matches...)
		}
	}

	return result
}
