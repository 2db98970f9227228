package analyze

import "github.com/NotDannyCrawford/aws-deploy-skill/internal/model"

// Rule is one independent consistency check over the fact bundle.
// Rules never mutate the bundle and never depend on another rule's
// output.
type Rule interface {
	Metadata() RuleMetadata
	Evaluate(b *FactBundle) []model.Finding
}

// RuleMetadata describes a rule for discovery and documentation.
type RuleMetadata struct {
	Name        string // internal key, e.g. "build-context"
	DisplayName string // human-readable, e.g. "Build context"
	Description string // one-line description
	Category    model.Category
}

var registry []func() Rule

// Register adds a rule factory to the global registry. Each rule calls
// this in its init().
func Register(factory func() Rule) {
	registry = append(registry, factory)
}

// All returns fresh instances of every registered rule.
func All() []Rule {
	out := make([]Rule, len(registry))
	for i, f := range registry {
		out[i] = f()
	}
	return out
}

// Evaluate runs every registered rule over the bundle, in registration
// order, and concatenates their findings.
func Evaluate(b *FactBundle) []model.Finding {
	var findings []model.Finding
	for _, r := range All() {
		findings = append(findings, r.Evaluate(b)...)
	}
	return findings
}
