package artifact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProxyConfig(t *testing.T) {
	cfg, err := ParseProxyConfig("../../testdata/nginx/routes.conf")
	require.NoError(t, err)

	require.Len(t, cfg.Routes, 2)

	api := cfg.Routes[0]
	assert.Equal(t, 443, api.ListenPort)
	assert.Equal(t, "example.com", api.ServerName)
	assert.Equal(t, "/api/", api.Path)
	assert.Equal(t, "backend", api.TargetService, "upstream name resolves to its server entry")
	assert.Equal(t, 5000, api.TargetPort)

	root := cfg.Routes[1]
	assert.Equal(t, "/", root.Path)
	assert.Equal(t, "frontend", root.TargetService)
	assert.Equal(t, 3000, root.TargetPort)
}

func TestParseProxyConfigFullFile(t *testing.T) {
	cfg, err := ParseProxyConfig("../../testdata/project/nginx/nginx.conf")
	require.NoError(t, err)

	require.Len(t, cfg.Routes, 2)
	for _, r := range cfg.Routes {
		assert.Equal(t, 80, r.ListenPort)
	}

	targets := map[string]int{}
	for _, r := range cfg.Routes {
		targets[r.TargetService] = r.TargetPort
	}
	assert.Equal(t, map[string]int{"backend": 5000, "frontend": 3000}, targets)
}

func TestParseProxyConfigUnbalanced(t *testing.T) {
	_, err := ParseProxyConfig("../../testdata/nginx/unbalanced.conf")
	require.Error(t, err)

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Contains(t, pe.Error(), "unclosed")
}

func TestRoutesTo(t *testing.T) {
	cfg, err := ParseProxyConfig("../../testdata/nginx/routes.conf")
	require.NoError(t, err)

	assert.Len(t, cfg.RoutesTo("backend"), 1)
	assert.Len(t, cfg.RoutesTo("frontend"), 1)
	assert.Empty(t, cfg.RoutesTo("worker"))
}
