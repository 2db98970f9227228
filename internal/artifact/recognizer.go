package artifact

import "regexp"

// Recognizer matches environment-variable references in one ecosystem's
// source text. The first capture group of Pattern is the variable name.
type Recognizer struct {
	Name       string   // internal key, e.g. "node-process-env"
	Ecosystem  string   // human-readable, e.g. "Node.js"
	Extensions []string // file extensions this recognizer applies to
	Pattern    *regexp.Regexp
	Ignore     []string // variable names to drop, e.g. ambient shell vars
}

// Matches reports whether the recognizer applies to a file extension.
func (r Recognizer) Matches(ext string) bool {
	for _, e := range r.Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Ignores reports whether a matched name is on the recognizer's ignore
// list.
func (r Recognizer) Ignores(name string) bool {
	for _, n := range r.Ignore {
		if n == name {
			return true
		}
	}
	return false
}

var recognizerRegistry []Recognizer

// RegisterRecognizer adds a recognizer to the global registry. Built-in
// recognizers call this in init(); config-defined patterns are passed
// to ScanSource directly instead.
func RegisterRecognizer(r Recognizer) {
	recognizerRegistry = append(recognizerRegistry, r)
}

// Recognizers returns a copy of the registered recognizers.
func Recognizers() []Recognizer {
	out := make([]Recognizer, len(recognizerRegistry))
	copy(out, recognizerRegistry)
	return out
}

func init() {
	RegisterRecognizer(Recognizer{
		Name:       "node-process-env",
		Ecosystem:  "Node.js",
		Extensions: []string{".js", ".jsx", ".ts", ".tsx", ".mjs", ".cjs", ".vue", ".svelte"},
		Pattern:    regexp.MustCompile(`process\.env(?:\.([A-Z][A-Z0-9_]*)|\[['"]([A-Z][A-Z0-9_]*)['"]\])`),
	})
	RegisterRecognizer(Recognizer{
		Name:       "vite-import-meta",
		Ecosystem:  "Vite",
		Extensions: []string{".js", ".jsx", ".ts", ".tsx", ".mjs", ".vue", ".svelte"},
		Pattern:    regexp.MustCompile(`import\.meta\.env\.([A-Z][A-Z0-9_]*)`),
	})
	RegisterRecognizer(Recognizer{
		Name:       "python-os-environ",
		Ecosystem:  "Python",
		Extensions: []string{".py"},
		Pattern:    regexp.MustCompile(`os\.(?:environ(?:\.get\(|\[)|getenv\()['"]([A-Z][A-Z0-9_]*)['"]`),
	})
	RegisterRecognizer(Recognizer{
		Name:       "go-os-getenv",
		Ecosystem:  "Go",
		Extensions: []string{".go"},
		Pattern:    regexp.MustCompile(`os\.(?:Getenv|LookupEnv)\("([A-Z][A-Z0-9_]*)"\)`),
	})
	RegisterRecognizer(Recognizer{
		Name:       "ruby-env",
		Ecosystem:  "Ruby",
		Extensions: []string{".rb"},
		Pattern:    regexp.MustCompile(`ENV\[['"]([A-Z][A-Z0-9_]*)['"]\]`),
	})
	RegisterRecognizer(Recognizer{
		Name:       "shell-var",
		Ecosystem:  "Shell",
		Extensions: []string{".sh", ".bash"},
		Pattern:    regexp.MustCompile(`\$\{?([A-Z][A-Z0-9_]{2,})\}?`),
		// variables any shell provides, not deployment configuration
		Ignore: []string{
			"HOME", "PATH", "PWD", "OLDPWD", "USER", "SHELL", "TERM",
			"HOSTNAME", "LANG", "IFS", "SHLVL", "UID", "EUID",
			"RANDOM", "SECONDS", "LINENO",
		},
	})
}
