package analyze

import (
	"testing"

	"github.com/NotDannyCrawford/aws-deploy-skill/internal/artifact"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NotDannyCrawford/aws-deploy-skill/internal/model"
)

func TestBuildDepsRuleProdInstallBeforeBuild(t *testing.T) {
	b := loadBundle(t, "../../testdata/proddeps")
	m, err := artifact.ParseManifest("../../testdata/proddeps/app/package.json")
	require.NoError(t, err)
	b.Manifests["app"] = m

	findings := (&BuildDepsRule{}).Evaluate(b)

	warnings := findingsOf(findings, model.SeverityWarning, model.CategoryBuildDeps)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].Message, "production-only flag")
	assert.Contains(t, warnings[0].Message, "typescript")
	assert.Contains(t, warnings[0].Suggestion, "drop the production-only flag")
	assert.Equal(t, 4, warnings[0].Line)
}

func TestBuildDepsRuleNoManifest(t *testing.T) {
	// without a manifest the tooling cannot be classified, so no warning
	b := loadBundle(t, "../../testdata/proddeps")

	findings := (&BuildDepsRule{}).Evaluate(b)
	assert.Empty(t, findingsOf(findings, model.SeverityWarning, model.CategoryBuildDeps))
}

func TestBuildDepsRuleClean(t *testing.T) {
	b := loadBundle(t, "../../testdata/project")
	m, err := artifact.ParseManifest("../../testdata/project/frontend/package.json")
	require.NoError(t, err)
	b.Manifests["frontend"] = m

	findings := (&BuildDepsRule{}).Evaluate(b)

	assert.Empty(t, findingsOf(findings, model.SeverityWarning, model.CategoryBuildDeps))
	assert.Len(t, findingsOf(findings, model.SeverityInfo, model.CategoryBuildDeps), 1)
}
