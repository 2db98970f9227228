package model

// Severity ranks a finding. Critical findings fail the run.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// Rank returns the sort weight of a severity: lower sorts first.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityWarning:
		return 1
	default:
		return 2
	}
}

// Category identifies the consistency check a finding came from.
type Category string

const (
	CategoryBuildContext    Category = "build-context"
	CategoryBuildDeps       Category = "build-deps"
	CategoryEnvCoverage     Category = "env-coverage"
	CategoryPortConsistency Category = "port-consistency"
	CategorySyntax          Category = "syntax"
)

// Finding is one reported consistency problem (or pass note) with an
// optional suggested fix. Findings are advisory: the checker never
// applies a suggestion itself.
type Finding struct {
	Severity   Severity `json:"severity"`
	Category   Category `json:"category"`
	Message    string   `json:"message"`
	Suggestion string   `json:"suggestion,omitempty"`
	File       string   `json:"file,omitempty"`
	Line       int      `json:"line,omitempty"`
}

// Critical builds a critical finding.
func Critical(cat Category, message, suggestion string) Finding {
	return Finding{Severity: SeverityCritical, Category: cat, Message: message, Suggestion: suggestion}
}

// Warning builds a warning finding.
func Warning(cat Category, message, suggestion string) Finding {
	return Finding{Severity: SeverityWarning, Category: cat, Message: message, Suggestion: suggestion}
}

// Info builds an informational (pass) finding.
func Info(cat Category, message string) Finding {
	return Finding{Severity: SeverityInfo, Category: cat, Message: message}
}

// At attaches file/line context.
func (f Finding) At(file string, line int) Finding {
	f.File = file
	f.Line = line
	return f
}
