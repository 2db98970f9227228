package analyze

import (
	"fmt"

	"github.com/NotDannyCrawford/aws-deploy-skill/internal/model"
)

func init() {
	Register(func() Rule { return &SyntaxRule{} })
}

// SyntaxRule surfaces parse failures collected during the load phase
// and unparsable port declarations left in otherwise valid services.
type SyntaxRule struct{}

func (r *SyntaxRule) Metadata() RuleMetadata {
	return RuleMetadata{
		Name:        "syntax",
		DisplayName: "Artifact syntax",
		Description: "every artifact must parse",
		Category:    model.CategorySyntax,
	}
}

func (r *SyntaxRule) Evaluate(b *FactBundle) []model.Finding {
	findings := append([]model.Finding(nil), b.ParseFailures...)

	if b.Composition != nil {
		for _, name := range b.Composition.ServiceNames() {
			svc := b.Composition.Services[name]
			for _, raw := range svc.InvalidPorts {
				findings = append(findings, model.Critical(
					model.CategorySyntax,
					fmt.Sprintf("service %q: unparsable port mapping %q", name, raw),
					"use HOST:CONTAINER with numeric ports, e.g. \"8080:80\"",
				).At(b.Composition.Path, 0))
			}
		}
	}

	if len(findings) == 0 {
		findings = append(findings, model.Info(model.CategorySyntax, "all artifacts parsed cleanly"))
	}
	return findings
}
