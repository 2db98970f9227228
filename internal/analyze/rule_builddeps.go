package analyze

import (
	"fmt"
	"strings"

	"github.com/NotDannyCrawford/aws-deploy-skill/internal/model"
)

func init() {
	Register(func() Rule { return &BuildDepsRule{} })
}

// BuildDepsRule flags recipes that install dependencies with a
// production-only flag and then run a build step in the same stage
// while the manifest keeps the build tooling dev-only. The build step
// will not find its tools.
type BuildDepsRule struct{}

func (r *BuildDepsRule) Metadata() RuleMetadata {
	return RuleMetadata{
		Name:        "build-deps",
		DisplayName: "Build dependencies",
		Description: "production-only installs must not precede build steps that need dev tooling",
		Category:    model.CategoryBuildDeps,
	}
}

func (r *BuildDepsRule) Evaluate(b *FactBundle) []model.Finding {
	if b.Composition == nil {
		return nil
	}

	var findings []model.Finding
	clean := true

	for _, name := range b.Composition.ServiceNames() {
		recipe := b.Recipes[name]
		if recipe == nil {
			continue
		}
		tools := devOnlyBuildTools(b.Manifests[name])
		if len(tools) == 0 {
			continue
		}

		for _, sf := range StageFacts(recipe) {
			if !sf.ProdOnlyInstall || !sf.BuildAfterInstall {
				continue
			}
			clean = false
			findings = append(findings, model.Warning(
				model.CategoryBuildDeps,
				fmt.Sprintf("service %q: stage %s installs with a production-only flag (line %d) but runs a build step (line %d) that needs dev-only tooling (%s)",
					name, stageLabel(sf), sf.InstallLine, sf.BuildLine, strings.Join(tools, ", ")),
				"drop the production-only flag for that install step, then prune dev dependencies after the build (or build in a separate stage)",
			).At(recipe.Path, sf.InstallLine))
		}
	}

	if clean {
		findings = append(findings, model.Info(model.CategoryBuildDeps, "no production-only install precedes a build step"))
	}
	return findings
}

func stageLabel(sf StageFact) string {
	if sf.Name != "" {
		return fmt.Sprintf("%q", sf.Name)
	}
	return fmt.Sprintf("%d", sf.Stage)
}
