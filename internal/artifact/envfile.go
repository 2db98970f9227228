package artifact

import (
	"encoding/json"
	"os"

	"github.com/NotDannyCrawford/aws-deploy-skill/internal/model"
	"github.com/joho/godotenv"
)

// ParseEnvFile parses a name=value env file (typically .env.example)
// via godotenv.
func ParseEnvFile(path string) (*model.EnvFile, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return &model.EnvFile{Path: path, Values: values}, nil
}

// manifestJSON mirrors the package.json fields the checker reads.
type manifestJSON struct {
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
	Scripts         map[string]string `json:"scripts"`
}

// ParseManifest parses a project dependency manifest (package.json).
func ParseManifest(path string) (*model.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	var m manifestJSON
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return &model.Manifest{
		Path:            path,
		Dependencies:    m.Dependencies,
		DevDependencies: m.DevDependencies,
		Scripts:         m.Scripts,
	}, nil
}
