package analyze

import "github.com/NotDannyCrawford/aws-deploy-skill/internal/model"

// devTools lists manifest packages that are build-time tooling. When
// one of these is dev-only and the recipe builds after a
// production-only install, the build step cannot find it.
var devTools = []string{
	"typescript",
	"tsc",
	"vite",
	"webpack",
	"webpack-cli",
	"esbuild",
	"rollup",
	"parcel",
	"tsup",
	"@swc/cli",
	"@swc/core",
	"babel-cli",
	"@babel/cli",
}

// devOnlyBuildTools returns the dev-only build tooling declared in a
// manifest.
func devOnlyBuildTools(m *model.Manifest) []string {
	var out []string
	for _, tool := range devTools {
		if m.DevOnly(tool) {
			out = append(out, tool)
		}
	}
	return out
}
