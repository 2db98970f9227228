package analyze

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/NotDannyCrawford/aws-deploy-skill/internal/model"
	"github.com/NotDannyCrawford/aws-deploy-skill/internal/util"
)

func init() {
	Register(func() Rule { return &BuildContextRule{} })
}

// BuildContextRule verifies that every COPY/ADD source in a service's
// recipe resolves to a real path under that service's declared build
// context.
type BuildContextRule struct{}

func (r *BuildContextRule) Metadata() RuleMetadata {
	return RuleMetadata{
		Name:        "build-context",
		DisplayName: "Build context",
		Description: "COPY/ADD sources must resolve under the service's build context",
		Category:    model.CategoryBuildContext,
	}
}

func (r *BuildContextRule) Evaluate(b *FactBundle) []model.Finding {
	if b.Composition == nil {
		return nil
	}

	var findings []model.Finding
	clean := true

	for _, name := range b.Composition.ServiceNames() {
		svc := b.Composition.Services[name]
		if !svc.HasBuild() {
			continue
		}

		// the context itself is the reportable fact, recipe or not
		ctx := svc.BuildContext
		if info, err := os.Stat(ctx); err != nil || !info.IsDir() {
			clean = false
			findings = append(findings, model.Critical(
				model.CategoryBuildContext,
				fmt.Sprintf("service %q: build context %q does not exist", name, ctx),
				"fix the build context path in the composition file",
			).At(b.Composition.Path, 0))
			continue
		}

		recipe := b.Recipes[name]
		if recipe == nil {
			continue
		}

		for _, src := range CopySources(recipe) {
			if !util.WithinDir(ctx, src.Path) {
				clean = false
				findings = append(findings, model.Critical(
					model.CategoryBuildContext,
					fmt.Sprintf("service %q: %s source %q escapes build context %q", name, src.Kind, src.Path, ctx),
					"switch the build context to the project root and rewrite COPY paths relative to it",
				).At(recipe.Path, src.Line))
				continue
			}
			if !sourceExists(ctx, src.Path) {
				clean = false
				findings = append(findings, model.Critical(
					model.CategoryBuildContext,
					fmt.Sprintf("service %q: %s source %q not found under build context %q", name, src.Kind, src.Path, ctx),
					"switch the build context to the common ancestor (typically the project root) and rewrite COPY paths accordingly",
				).At(recipe.Path, src.Line))
			}
		}
	}

	if clean {
		findings = append(findings, model.Info(model.CategoryBuildContext, "all COPY/ADD sources resolve under their build contexts"))
	}
	return findings
}

// sourceExists resolves a COPY source against the context, honoring
// glob patterns.
func sourceExists(ctx, src string) bool {
	full := filepath.Join(ctx, src)
	if _, err := os.Stat(full); err == nil {
		return true
	}
	matches, err := filepath.Glob(full)
	return err == nil && len(matches) > 0
}
