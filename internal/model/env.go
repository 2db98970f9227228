package model

// EnvFile is a parsed name=value env declaration file, typically the
// documented .env.example.
type EnvFile struct {
	Path   string
	Values map[string]string
}

// EnvUsage is one reference to an environment variable found in
// application source text.
type EnvUsage struct {
	Name       string
	File       string
	Line       int
	Recognizer string // which recognizer matched
}

// Manifest is the subset of a project dependency manifest the checker
// cares about: which packages are runtime vs dev-only, and the
// declared scripts.
type Manifest struct {
	Path            string
	Dependencies    map[string]string
	DevDependencies map[string]string
	Scripts         map[string]string
}

// DevOnly reports whether a package is listed exclusively under dev
// dependencies.
func (m *Manifest) DevOnly(pkg string) bool {
	if m == nil {
		return false
	}
	if _, runtime := m.Dependencies[pkg]; runtime {
		return false
	}
	_, dev := m.DevDependencies[pkg]
	return dev
}
