package analyze

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/NotDannyCrawford/aws-deploy-skill/internal/artifact"
	"github.com/NotDannyCrawford/aws-deploy-skill/internal/config"
	"github.com/NotDannyCrawford/aws-deploy-skill/internal/model"
	"github.com/NotDannyCrawford/aws-deploy-skill/internal/util"
)

// ArtifactResult reports how loading one artifact went, for status
// output. A load failure is never fatal to the run: it also lands in
// the bundle as a syntax finding and the remaining artifacts still
// load.
type ArtifactResult struct {
	Name    string
	Skipped bool
	Detail  string
	Err     error
}

// composeNames are the default composition file names, tried in order.
var composeNames = []string{
	"docker-compose.yml",
	"docker-compose.yaml",
	"compose.yml",
	"compose.yaml",
}

// Load parses every configured artifact and assembles the fact bundle.
// Parse and read failures become CRITICAL syntax findings; the bundle
// is always returned.
func Load(cfg *config.Config) (*FactBundle, []ArtifactResult) {
	root := util.ExpandPath(cfg.Root)
	if root == "" {
		root = "."
	}

	b := &FactBundle{
		Root:      root,
		Recipes:   map[string]*model.BuildRecipe{},
		Manifests: map[string]*model.Manifest{},
		EnvFiles:  map[string]*model.EnvFile{},
	}
	var results []ArtifactResult

	fail := func(name, path string, err error) {
		results = append(results, ArtifactResult{Name: name, Err: err})
		f := model.Critical(model.CategorySyntax, fmt.Sprintf("%s: %v", name, err), "")
		if pe, ok := err.(*artifact.ParseError); ok {
			f = f.At(pe.Path, pe.Line)
		} else {
			f = f.At(path, 0)
		}
		b.ParseFailures = append(b.ParseFailures, f)
	}

	// Composition file
	composePath := cfg.Compose
	if composePath == "" {
		composePath = detectFile(root, composeNames)
	} else {
		composePath = util.ExpandPath(composePath)
	}
	if composePath == "" {
		fail("composition file", root, fmt.Errorf("no compose file found under %s", root))
	} else if comp, err := artifact.ParseComposition(composePath); err != nil {
		fail("composition file", composePath, err)
	} else {
		b.Composition = comp
		results = append(results, ArtifactResult{
			Name:   "composition file",
			Detail: fmt.Sprintf("%d services", len(comp.Services)),
		})
	}

	// Per-service recipes, manifests, env files
	if b.Composition != nil {
		for _, name := range b.Composition.ServiceNames() {
			svc := b.Composition.Services[name]
			if svc.HasBuild() {
				// a missing context is the build-context rule's finding;
				// don't bury it under a recipe open error
				if info, err := os.Stat(svc.BuildContext); err != nil || !info.IsDir() {
					results = append(results, ArtifactResult{
						Name: fmt.Sprintf("build recipe (%s)", name),
						Err:  fmt.Errorf("build context %s not found", svc.BuildContext),
					})
				} else if recipe, err := artifact.ParseRecipe(filepath.Join(svc.BuildContext, svc.RecipePath)); err != nil {
					fail(fmt.Sprintf("build recipe (%s)", name), filepath.Join(svc.BuildContext, svc.RecipePath), err)
				} else {
					b.Recipes[name] = recipe
					results = append(results, ArtifactResult{
						Name:   fmt.Sprintf("build recipe (%s)", name),
						Detail: fmt.Sprintf("%d stages", len(recipe.Stages)),
					})
				}

				manifestPath := filepath.Join(svc.BuildContext, "package.json")
				if _, err := os.Stat(manifestPath); err == nil {
					if m, err := artifact.ParseManifest(manifestPath); err != nil {
						fail(fmt.Sprintf("manifest (%s)", name), manifestPath, err)
					} else {
						b.Manifests[name] = m
					}
				}
			}

			for _, efPath := range svc.EnvFiles {
				if _, done := b.EnvFiles[efPath]; done {
					continue
				}
				if ef, err := artifact.ParseEnvFile(efPath); err != nil {
					fail("env file", efPath, err)
				} else {
					b.EnvFiles[efPath] = ef
				}
			}
		}
	}

	// Proxy config
	proxyPath := cfg.Proxy
	if proxyPath == "" {
		proxyPath = detectFile(root, []string{
			"nginx.conf",
			filepath.Join("nginx", "nginx.conf"),
			filepath.Join("docker", "nginx.conf"),
			filepath.Join("nginx", "default.conf"),
		})
	} else {
		proxyPath = util.ExpandPath(proxyPath)
	}
	if proxyPath == "" {
		results = append(results, ArtifactResult{Name: "proxy config", Skipped: true})
	} else if proxy, err := artifact.ParseProxyConfig(proxyPath); err != nil {
		fail("proxy config", proxyPath, err)
	} else {
		b.Proxy = proxy
		results = append(results, ArtifactResult{
			Name:   "proxy config",
			Detail: fmt.Sprintf("%d routes", len(proxy.Routes)),
		})
	}

	// Documented env example file (optional)
	examplePath := util.ExpandPath(cfg.EnvExample)
	if examplePath != "" && !filepath.IsAbs(examplePath) {
		examplePath = filepath.Join(root, examplePath)
	}
	if cfg.EnvExample == "" {
		results = append(results, ArtifactResult{Name: "env example", Skipped: true})
	} else if _, err := os.Stat(examplePath); err != nil {
		results = append(results, ArtifactResult{Name: "env example", Skipped: true})
	} else if ef, err := artifact.ParseEnvFile(examplePath); err != nil {
		fail("env example", examplePath, err)
	} else {
		b.EnvExample = ef
		results = append(results, ArtifactResult{
			Name:   "env example",
			Detail: fmt.Sprintf("%d variables", len(ef.Values)),
		})
	}

	// Source scan
	dirs := cfg.Source.Dirs
	if len(dirs) == 0 {
		dirs = []string{root}
	} else {
		for i, d := range dirs {
			dirs[i] = util.ExpandPath(d)
		}
	}
	extra, patternFindings := compilePatterns(cfg.Source.Patterns)
	b.ParseFailures = append(b.ParseFailures, patternFindings...)

	if usages, err := artifact.ScanSource(dirs, extra); err != nil {
		fail("source scan", root, err)
	} else {
		b.Usages = usages
		results = append(results, ArtifactResult{
			Name:   "source scan",
			Detail: fmt.Sprintf("%d env references", len(usages)),
		})
	}

	return b, results
}

// detectFile returns the first candidate that exists under root.
func detectFile(root string, candidates []string) string {
	for _, c := range candidates {
		p := filepath.Join(root, c)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// compilePatterns turns config-declared recognizer patterns into
// recognizers. A pattern that does not compile becomes a syntax
// finding, not an aborted run.
func compilePatterns(patterns []config.PatternConfig) ([]artifact.Recognizer, []model.Finding) {
	var out []artifact.Recognizer
	var findings []model.Finding
	for _, p := range patterns {
		re, err := regexp.Compile(p.Pattern)
		if err != nil {
			findings = append(findings, model.Critical(
				model.CategorySyntax,
				fmt.Sprintf("source pattern %q: %v", p.Name, err),
				"fix the pattern regex in the config file",
			))
			continue
		}
		out = append(out, artifact.Recognizer{
			Name:       p.Name,
			Ecosystem:  p.Ecosystem,
			Extensions: p.Extensions,
			Pattern:    re,
		})
	}
	return out, findings
}
