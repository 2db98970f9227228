package artifact

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseComposition(t *testing.T) {
	comp, err := ParseComposition("../../testdata/project/docker-compose.yml")
	require.NoError(t, err)

	assert.Equal(t, []string{"backend", "frontend"}, comp.ServiceNames())

	frontend := comp.Services["frontend"]
	require.NotNil(t, frontend)
	assert.True(t, frontend.HasBuild())
	assert.Equal(t, "frontend", filepath.Base(frontend.BuildContext))
	assert.Equal(t, "Dockerfile", filepath.Base(frontend.RecipePath))
	require.Len(t, frontend.Ports, 1)
	assert.Equal(t, 8080, frontend.Ports[0].HostPort)
	assert.Equal(t, 3000, frontend.Ports[0].ContainerPort)
	assert.Equal(t, []string{"backend"}, frontend.DependsOn)
	require.Contains(t, frontend.Environment, "VITE_API_URL")

	backend := comp.Services["backend"]
	require.NotNil(t, backend)
	assert.True(t, backend.HasBuild())
	assert.Contains(t, backend.Environment, "FLASK_ENV")
	assert.Contains(t, backend.Environment, "GEMINI_API_KEY")
	require.Len(t, backend.EnvFiles, 1)
	assert.Equal(t, ".env.example", filepath.Base(backend.EnvFiles[0]))
}

func TestParseCompositionFallback(t *testing.T) {
	comp, err := parseCompositionFallback("../../testdata/compose/fallback.yml")
	require.NoError(t, err)

	require.Len(t, comp.Services, 2)

	web := comp.Services["web"]
	require.NotNil(t, web)
	assert.Equal(t, "nginx:1.27-alpine", web.Image)
	assert.False(t, web.HasBuild())
	require.Len(t, web.Ports, 1)
	assert.Equal(t, 80, web.Ports[0].ContainerPort)
	assert.Equal(t, []string{"not-a-port"}, web.InvalidPorts)

	mode, ok := web.Environment["APP_MODE"]
	require.True(t, ok)
	require.NotNil(t, mode)
	assert.Equal(t, "production", *mode)
	secret, ok := web.Environment["APP_SECRET"]
	require.True(t, ok)
	assert.Nil(t, secret)

	db := comp.Services["db"]
	require.NotNil(t, db)
	assert.Contains(t, db.Environment, "POSTGRES_PASSWORD")
}

func TestParseCompositionMissingFile(t *testing.T) {
	_, err := ParseComposition("../../testdata/compose/does-not-exist.yml")
	require.Error(t, err)
}
