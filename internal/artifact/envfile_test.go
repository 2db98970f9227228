package artifact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnvFile(t *testing.T) {
	ef, err := ParseEnvFile("../../testdata/env/.env.example")
	require.NoError(t, err)

	assert.Len(t, ef.Values, 3)
	assert.Equal(t, "postgres://localhost:5432/app", ef.Values["DATABASE_URL"])
	assert.Equal(t, "", ef.Values["GEMINI_API_KEY"])
	assert.Equal(t, "dev-only", ef.Values["SESSION_SECRET"])
}

func TestParseEnvFileMissing(t *testing.T) {
	_, err := ParseEnvFile("../../testdata/env/.env.nope")
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
}

func TestParseManifest(t *testing.T) {
	m, err := ParseManifest("../../testdata/proddeps/app/package.json")
	require.NoError(t, err)

	assert.True(t, m.DevOnly("typescript"))
	assert.False(t, m.DevOnly("express"))
	assert.False(t, m.DevOnly("left-pad"))
	assert.Contains(t, m.Scripts, "build")
}

func TestParseManifestMalformed(t *testing.T) {
	_, err := ParseManifest("../../testdata/project/frontend/index.html")
	require.Error(t, err)
}
