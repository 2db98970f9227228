package analyze

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/NotDannyCrawford/aws-deploy-skill/internal/config"
	"github.com/NotDannyCrawford/aws-deploy-skill/internal/model"
	"github.com/NotDannyCrawford/aws-deploy-skill/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func projectConfig() *config.Config {
	cfg := &config.Config{
		Root:       "../../testdata/project",
		EnvExample: ".env.example",
	}
	cfg.Report.Format = "text"
	return cfg
}

func TestLoadProject(t *testing.T) {
	bundle, results := Load(projectConfig())

	for _, r := range results {
		assert.NoError(t, r.Err, r.Name)
	}

	require.NotNil(t, bundle.Composition)
	assert.Len(t, bundle.Composition.Services, 2)
	assert.Len(t, bundle.Recipes, 2)
	require.NotNil(t, bundle.Proxy)
	assert.Len(t, bundle.Proxy.Routes, 2)
	require.NotNil(t, bundle.EnvExample)
	assert.Len(t, bundle.EnvExample.Values, 2)
	assert.Contains(t, bundle.Manifests, "frontend")
	assert.NotEmpty(t, bundle.Usages)
	assert.Empty(t, bundle.ParseFailures)
}

func TestConsistentProjectPasses(t *testing.T) {
	bundle, _ := Load(projectConfig())

	rep := report.Build(Evaluate(bundle))

	assert.Equal(t, report.StatusPass, rep.Status)
	assert.Zero(t, rep.Counts[model.SeverityCritical])
	assert.Zero(t, rep.Counts[model.SeverityWarning])
	assert.NotZero(t, rep.Counts[model.SeverityInfo])
}

func TestServiceOrderDoesNotChangeFindings(t *testing.T) {
	original, _ := Load(projectConfig())

	reordered := projectConfig()
	reordered.Compose = "../../testdata/project/docker-compose.reordered.yml"
	swapped, _ := Load(reordered)

	repA := report.Build(Evaluate(original))
	repB := report.Build(Evaluate(swapped))

	assert.ElementsMatch(t, repA.Findings, repB.Findings)
	assert.Equal(t, repA.Status, repB.Status)
	assert.Equal(t, repA.Counts, repB.Counts)
}

func TestFixingDeclarationClearsFinding(t *testing.T) {
	cfg := &config.Config{Root: "../../testdata/envgap", EnvExample: ".env.example"}
	bundle, _ := Load(cfg)
	rep := report.Build(Evaluate(bundle))

	require.Equal(t, report.StatusWarn, rep.Status)
	var missing []model.Finding
	for _, f := range rep.Findings {
		if f.Severity == model.SeverityWarning && f.Category == model.CategoryEnvCoverage {
			missing = append(missing, f)
		}
	}
	require.Len(t, missing, 1)
	assert.Contains(t, missing[0].Message, "API_TOKEN")

	// declaring the variable clears the warning with nothing of equal
	// or higher severity replacing it
	fixed := &config.Config{
		Root:       "../../testdata/envgap",
		Compose:    "../../testdata/envgap/docker-compose.fixed.yml",
		EnvExample: ".env.example",
	}
	bundle, _ = Load(fixed)
	rep = report.Build(Evaluate(bundle))

	assert.Equal(t, report.StatusPass, rep.Status)
	for _, f := range rep.Findings {
		if f.Severity != model.SeverityInfo {
			t.Errorf("unexpected %s finding: %s", f.Severity, f.Message)
		}
	}
}

func TestMissingBuildContextCategory(t *testing.T) {
	cfg := &config.Config{Root: "../../testdata/missingctx", EnvExample: ".env.example"}
	bundle, results := Load(cfg)

	recipeFailed := false
	for _, r := range results {
		if r.Err != nil {
			recipeFailed = true
		}
	}
	assert.True(t, recipeFailed, "missing context should be reported in the status lines")
	assert.Empty(t, bundle.ParseFailures, "a missing context is not a syntax problem")

	findings := Evaluate(bundle)
	var criticals []model.Finding
	for _, f := range findings {
		if f.Severity == model.SeverityCritical {
			criticals = append(criticals, f)
		}
	}
	require.Len(t, criticals, 1)
	assert.Equal(t, model.CategoryBuildContext, criticals[0].Category)
	assert.Contains(t, criticals[0].Message, "nope")
}

func TestLoadAbsoluteEnvExamplePath(t *testing.T) {
	abs, err := filepath.Abs("../../testdata/env/.env.example")
	require.NoError(t, err)

	cfg := &config.Config{Root: "../../testdata/envgap", EnvExample: abs}
	bundle, _ := Load(cfg)

	require.NotNil(t, bundle.EnvExample)
	assert.Len(t, bundle.EnvExample.Values, 3)
}

func TestCheckerIsIdempotent(t *testing.T) {
	first, _ := Load(projectConfig())
	second, _ := Load(projectConfig())

	assert.Equal(t, report.Build(Evaluate(first)), report.Build(Evaluate(second)))
}

func TestCheckerDoesNotMutateArtifacts(t *testing.T) {
	path := "../../testdata/project/docker-compose.yml"
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	bundle, _ := Load(projectConfig())
	_ = Evaluate(bundle)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestLoadMissingCompose(t *testing.T) {
	cfg := &config.Config{Root: "../../testdata/dockerfiles", EnvExample: ".env.example"}

	bundle, results := Load(cfg)

	assert.Nil(t, bundle.Composition)
	require.NotEmpty(t, bundle.ParseFailures)
	assert.Equal(t, model.SeverityCritical, bundle.ParseFailures[0].Severity)

	failed := false
	for _, r := range results {
		if r.Err != nil {
			failed = true
		}
	}
	assert.True(t, failed, "missing compose file should be reported")

	// the run still completes and produces a failing report
	rep := report.Build(Evaluate(bundle))
	assert.Equal(t, report.StatusFail, rep.Status)
}

func TestLoadBrokenRecipeContinues(t *testing.T) {
	cfg := &config.Config{Root: "../../testdata/badrecipe", EnvExample: ".env.example"}

	bundle, _ := Load(cfg)

	// the composition itself parsed; the broken recipe became a finding
	require.NotNil(t, bundle.Composition)
	assert.Empty(t, bundle.Recipes)
	require.NotEmpty(t, bundle.ParseFailures)
	assert.Contains(t, bundle.ParseFailures[0].Message, "RUNN")
}

func TestRuleRegistry(t *testing.T) {
	rules := All()
	require.Len(t, rules, 5)

	seen := map[string]bool{}
	for _, r := range rules {
		seen[r.Metadata().Name] = true
	}
	for _, name := range []string{"build-context", "build-deps", "env-coverage", "port-consistency", "syntax"} {
		assert.True(t, seen[name], name)
	}
}

func TestCompilePatternsBadRegex(t *testing.T) {
	_, findings := compilePatterns([]config.PatternConfig{
		{Name: "broken", Pattern: "(unclosed"},
	})
	require.Len(t, findings, 1)
	assert.Equal(t, model.SeverityCritical, findings[0].Severity)
	assert.Equal(t, model.CategorySyntax, findings[0].Category)
}
