package analyze

import (
	"fmt"

	"github.com/NotDannyCrawford/aws-deploy-skill/internal/model"
)

func init() {
	Register(func() Rule { return &EnvCoverageRule{} })
}

// EnvCoverageRule compares environment variables referenced in source
// text against the ones declared in the composition file, service
// env_files, and the documented example file. A referenced but
// undeclared variable is a warning; a declared but never referenced
// one is informational.
type EnvCoverageRule struct{}

func (r *EnvCoverageRule) Metadata() RuleMetadata {
	return RuleMetadata{
		Name:        "env-coverage",
		DisplayName: "Environment coverage",
		Description: "every referenced env variable should be declared somewhere",
		Category:    model.CategoryEnvCoverage,
	}
}

func (r *EnvCoverageRule) Evaluate(b *FactBundle) []model.Finding {
	refs := ReferencedEnv(b.Usages)

	// Union of everything any service declares plus the example file.
	declared := map[string]bool{}
	if b.Composition != nil {
		for _, name := range b.Composition.ServiceNames() {
			for k, v := range b.DeclaredEnv(b.Composition.Services[name]) {
				declared[k] = declared[k] || v
			}
		}
	} else if b.EnvExample != nil {
		for name := range b.EnvExample.Values {
			declared[name] = true
		}
	}

	var findings []model.Finding
	missing := 0

	for _, name := range SortedNames(refs) {
		if declared[name] {
			continue
		}
		missing++
		u := refs[name]
		findings = append(findings, model.Warning(
			model.CategoryEnvCoverage,
			fmt.Sprintf("env variable %q is referenced but never declared", name),
			fmt.Sprintf("add %s to the composition file's environment entries or to the documented example file", name),
		).At(u.File, u.Line))
	}

	if missing == 0 {
		findings = append(findings, model.Info(model.CategoryEnvCoverage,
			fmt.Sprintf("all %d referenced env variables are declared", len(refs))))
	}

	// Converse: declared but never referenced is informational only;
	// infrastructure variables are often consumed outside the scanned
	// source.
	for _, name := range SortedNames(declared) {
		if _, referenced := refs[name]; !referenced {
			findings = append(findings, model.Info(model.CategoryEnvCoverage,
				fmt.Sprintf("env variable %q is declared but never referenced in scanned source", name)))
		}
	}

	return findings
}
