package analyze

import (
	"sort"
	"strconv"
	"strings"

	"github.com/NotDannyCrawford/aws-deploy-skill/internal/model"
)

// FactBundle is the normalized data derived from all parsed artifacts.
// Rules treat it as read-only.
type FactBundle struct {
	Root        string
	Composition *model.ServiceComposition     // nil when missing or unparsable
	Recipes     map[string]*model.BuildRecipe // by service name
	Manifests   map[string]*model.Manifest    // by service name
	EnvFiles    map[string]*model.EnvFile     // by path, from compose env_file entries
	Proxy       *model.ProxyConfig
	EnvExample  *model.EnvFile
	Usages      []model.EnvUsage

	// ParseFailures collects syntax findings from the load phase so the
	// syntax rule can surface them alongside rule output.
	ParseFailures []model.Finding
}

// CopySource is one COPY/ADD source path in a recipe, relative to the
// build context.
type CopySource struct {
	Path  string
	Kind  model.InstructionKind
	Stage int
	Line  int
}

// CopySources extracts the file-copy sources of a recipe. Sources
// copied from an earlier stage (--from) or fetched from a URL are not
// resolved against the build context and are excluded.
func CopySources(recipe *model.BuildRecipe) []CopySource {
	var out []CopySource
	for _, ins := range recipe.Instructions {
		if ins.Kind != model.KindCopy && ins.Kind != model.KindAdd {
			continue
		}
		if _, fromStage := ins.Flag("from"); fromStage {
			continue
		}
		if len(ins.Args) < 2 {
			continue
		}
		// last arg is the destination
		for _, src := range ins.Args[:len(ins.Args)-1] {
			if strings.Contains(src, "://") {
				continue
			}
			out = append(out, CopySource{Path: src, Kind: ins.Kind, Stage: ins.Stage, Line: ins.Line})
		}
	}
	return out
}

// StageFact summarizes dependency-install and build behavior of one
// recipe stage.
type StageFact struct {
	Stage             int
	Name              string
	ProdOnlyInstall   bool
	InstallLine       int
	BuildAfterInstall bool
	BuildLine         int
}

// StageFacts derives install/build facts per stage, in stage order.
func StageFacts(recipe *model.BuildRecipe) []StageFact {
	facts := make([]StageFact, len(recipe.Stages))
	for i, s := range recipe.Stages {
		facts[i] = StageFact{Stage: s.Index, Name: s.Name}
	}
	for _, ins := range recipe.Instructions {
		if ins.Kind != model.KindRun || ins.Stage >= len(facts) {
			continue
		}
		cmd := strings.Join(ins.Args, " ")
		f := &facts[ins.Stage]
		if isProdOnlyInstall(cmd) && !f.ProdOnlyInstall {
			f.ProdOnlyInstall = true
			f.InstallLine = ins.Line
		}
		if f.ProdOnlyInstall && isBuildStep(cmd) {
			f.BuildAfterInstall = true
			f.BuildLine = ins.Line
		}
	}
	return facts
}

var prodOnlyMarkers = []string{
	"--omit=dev",
	"--only=production",
	"--only=prod",
	"--production",
	"--prod",
	"--no-dev",
}

func isProdOnlyInstall(cmd string) bool {
	if !strings.Contains(cmd, "install") && !strings.Contains(cmd, " ci") {
		return false
	}
	for _, m := range prodOnlyMarkers {
		if strings.Contains(cmd, m) {
			return true
		}
	}
	return false
}

var buildStepMarkers = []string{
	"npm run build",
	"yarn build",
	"yarn run build",
	"pnpm build",
	"pnpm run build",
	"vite build",
	"next build",
	"tsc",
	"webpack",
	"esbuild",
}

func isBuildStep(cmd string) bool {
	for _, m := range buildStepMarkers {
		if strings.Contains(cmd, m) {
			return true
		}
	}
	return false
}

// PortSource names where a listening port declaration came from.
type PortSource string

const (
	PortFromExpose  PortSource = "EXPOSE instruction"
	PortFromCommand PortSource = "run-command flag"
	PortFromMapping PortSource = "compose port mapping"
)

// ListeningPort derives the port a service listens on: the first of an
// EXPOSE instruction, an explicit port flag in the run command, or the
// container side of a compose port mapping. ok is false when nothing
// declares a port (unknown, not an error).
func ListeningPort(recipe *model.BuildRecipe, svc *model.ServiceSpec) (int, PortSource, bool) {
	if recipe != nil {
		for _, ins := range recipe.Instructions {
			if ins.Kind != model.KindExpose || len(ins.Args) == 0 {
				continue
			}
			spec := ins.Args[0]
			if idx := strings.Index(spec, "/"); idx != -1 {
				spec = spec[:idx]
			}
			if n, err := strconv.Atoi(spec); err == nil && n > 0 {
				return n, PortFromExpose, true
			}
		}
		for _, ins := range recipe.Instructions {
			if ins.Kind != model.KindCmd && ins.Kind != model.KindEntrypoint {
				continue
			}
			if n, ok := commandPortFlag(ins.Args); ok {
				return n, PortFromCommand, true
			}
		}
	}
	if svc != nil {
		if n, ok := commandPortFlag(svc.Command); ok {
			return n, PortFromCommand, true
		}
		for _, p := range svc.Ports {
			if p.ContainerPort > 0 {
				return p.ContainerPort, PortFromMapping, true
			}
		}
	}
	return 0, "", false
}

// commandPortFlag looks for --port 3000, --port=3000 or -p 3000 in a
// run command.
func commandPortFlag(args []string) (int, bool) {
	for i, a := range args {
		switch {
		case strings.HasPrefix(a, "--port="):
			if n, err := strconv.Atoi(a[len("--port="):]); err == nil && n > 0 {
				return n, true
			}
		case a == "--port" || a == "-p":
			if i+1 < len(args) {
				if n, err := strconv.Atoi(args[i+1]); err == nil && n > 0 {
					return n, true
				}
			}
		}
	}
	return 0, false
}

// DeclaredEnv returns the environment variable names declared for a
// service: compose environment entries, its env_file contents, and the
// documented example file.
func (b *FactBundle) DeclaredEnv(svc *model.ServiceSpec) map[string]bool {
	declared := map[string]bool{}
	if svc != nil {
		for name := range svc.Environment {
			declared[name] = true
		}
		for _, path := range svc.EnvFiles {
			if ef, ok := b.EnvFiles[path]; ok {
				for name := range ef.Values {
					declared[name] = true
				}
			}
		}
	}
	if b.EnvExample != nil {
		for name := range b.EnvExample.Values {
			declared[name] = true
		}
	}
	return declared
}

// ReferencedEnv deduplicates scanned usages by variable name, keeping
// the first occurrence of each.
func ReferencedEnv(usages []model.EnvUsage) map[string]model.EnvUsage {
	refs := map[string]model.EnvUsage{}
	for _, u := range usages {
		if _, seen := refs[u.Name]; !seen {
			refs[u.Name] = u
		}
	}
	return refs
}

// SortedNames returns map keys in sorted order, for deterministic
// finding output.
func SortedNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
