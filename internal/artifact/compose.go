package artifact

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/NotDannyCrawford/aws-deploy-skill/internal/model"
	"github.com/compose-spec/compose-go/v2/cli"
	composetypes "github.com/compose-spec/compose-go/v2/types"
	yamlv3 "gopkg.in/yaml.v3"
)

// ParseComposition parses a docker-compose file into a
// ServiceComposition. It tries the compose-go loader first and falls
// back to raw YAML when the file does not satisfy the full compose
// spec (older files, minor schema drift).
func ParseComposition(path string) (*model.ServiceComposition, error) {
	ctx := context.Background()

	opts, err := cli.NewProjectOptions(
		[]string{path},
		cli.WithDotEnv,
		cli.WithInterpolation(false),
	)
	if err != nil {
		return nil, &ParseError{Path: path, Err: fmt.Errorf("project options: %w", err)}
	}

	project, err := cli.ProjectFromOptions(ctx, opts)
	if err != nil {
		return parseCompositionFallback(path)
	}

	return projectToComposition(project, path), nil
}

func projectToComposition(project *composetypes.Project, path string) *model.ServiceComposition {
	comp := model.NewServiceComposition(path)
	base := filepath.Dir(path)

	for _, svc := range project.Services {
		spec := &model.ServiceSpec{
			Name:        svc.Name,
			Image:       svc.Image,
			Environment: map[string]*string{},
			Command:     svc.Command,
		}

		if svc.Build != nil {
			spec.BuildContext = resolveRel(base, svc.Build.Context)
			spec.RecipePath = svc.Build.Dockerfile
			if spec.RecipePath == "" {
				spec.RecipePath = "Dockerfile"
			}
		}

		for _, p := range svc.Ports {
			hostPort, _ := strconv.Atoi(p.Published)
			spec.Ports = append(spec.Ports, model.PortMapping{
				Raw:           p.Published + ":" + strconv.Itoa(int(p.Target)),
				HostIP:        p.HostIP,
				HostPort:      hostPort,
				ContainerPort: int(p.Target),
				Protocol:      p.Protocol,
			})
		}

		for name, value := range svc.Environment {
			spec.Environment[name] = value
		}

		for _, ef := range svc.EnvFiles {
			spec.EnvFiles = append(spec.EnvFiles, resolveRel(base, ef.Path))
		}

		for depName := range svc.DependsOn {
			spec.DependsOn = append(spec.DependsOn, depName)
		}
		sort.Strings(spec.DependsOn)

		comp.Services[svc.Name] = spec
	}

	return comp
}

// parseCompositionFallback uses raw YAML parsing when compose-go
// rejects the file.
func parseCompositionFallback(path string) (*model.ServiceComposition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	var raw map[string]any
	if err := yamlv3.Unmarshal(data, &raw); err != nil {
		return nil, &ParseError{Path: path, Line: yamlLine(err), Err: fmt.Errorf("yaml parse: %w", err)}
	}

	comp := model.NewServiceComposition(path)
	base := filepath.Dir(path)

	servicesRaw, ok := raw["services"]
	if !ok {
		return nil, parseErrorf(path, 0, "no services declared")
	}
	servicesMap, ok := servicesRaw.(map[string]any)
	if !ok {
		return nil, parseErrorf(path, 0, "services is not a mapping")
	}

	for name, svcData := range servicesMap {
		svcMap, ok := svcData.(map[string]any)
		if !ok {
			return nil, parseErrorf(path, 0, "service %q is not a mapping", name)
		}

		spec := &model.ServiceSpec{
			Name:        name,
			Image:       toString(svcMap["image"]),
			Environment: map[string]*string{},
		}

		parseBuildSection(spec, svcMap["build"], base)

		if portsRaw, ok := svcMap["ports"]; ok {
			parseRawPorts(spec, portsRaw)
		}
		if envRaw, ok := svcMap["environment"]; ok {
			parseRawEnvironment(spec, envRaw)
		}
		if efRaw, ok := svcMap["env_file"]; ok {
			for _, ef := range toStringSlice(efRaw) {
				spec.EnvFiles = append(spec.EnvFiles, resolveRel(base, ef))
			}
		}
		if depsRaw, ok := svcMap["depends_on"]; ok {
			spec.DependsOn = toStringSlice(depsRaw)
			sort.Strings(spec.DependsOn)
		}
		if cmdRaw, ok := svcMap["command"]; ok {
			spec.Command = toCommand(cmdRaw)
		}

		comp.Services[name] = spec
	}

	return comp, nil
}

func parseBuildSection(spec *model.ServiceSpec, raw any, base string) {
	switch v := raw.(type) {
	case string:
		spec.BuildContext = resolveRel(base, v)
		spec.RecipePath = "Dockerfile"
	case map[string]any:
		ctx := toString(v["context"])
		if ctx == "" {
			ctx = "."
		}
		spec.BuildContext = resolveRel(base, ctx)
		spec.RecipePath = toString(v["dockerfile"])
		if spec.RecipePath == "" {
			spec.RecipePath = "Dockerfile"
		}
	}
}

func parseRawPorts(spec *model.ServiceSpec, raw any) {
	list, ok := raw.([]any)
	if !ok {
		spec.InvalidPorts = append(spec.InvalidPorts, fmt.Sprintf("%v", raw))
		return
	}
	for _, p := range list {
		s := fmt.Sprintf("%v", p)
		pm, err := model.ParsePortMapping(s)
		if err != nil {
			spec.InvalidPorts = append(spec.InvalidPorts, s)
			continue
		}
		spec.Ports = append(spec.Ports, pm)
	}
}

func parseRawEnvironment(spec *model.ServiceSpec, raw any) {
	switch v := raw.(type) {
	case map[string]any:
		for name, val := range v {
			if val == nil {
				spec.Environment[name] = nil
				continue
			}
			s := fmt.Sprintf("%v", val)
			spec.Environment[name] = &s
		}
	case []any:
		for _, item := range v {
			s := fmt.Sprintf("%v", item)
			name, value, found := strings.Cut(s, "=")
			if found {
				val := value
				spec.Environment[name] = &val
			} else {
				spec.Environment[name] = nil
			}
		}
	}
}

func resolveRel(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func toStringSlice(raw any) []string {
	switch v := raw.(type) {
	case string:
		return []string{v}
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprintf("%v", item))
		}
		return out
	case map[string]any:
		out := make([]string, 0, len(v))
		for name := range v {
			out = append(out, name)
		}
		sort.Strings(out)
		return out
	}
	return nil
}

func toCommand(raw any) []string {
	switch v := raw.(type) {
	case string:
		return strings.Fields(v)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprintf("%v", item))
		}
		return out
	}
	return nil
}

// yamlLine pulls a line number out of a yaml.v3 error message when one
// is present, e.g. "yaml: line 12: ...".
func yamlLine(err error) int {
	msg := err.Error()
	idx := strings.Index(msg, "line ")
	if idx == -1 {
		return 0
	}
	rest := msg[idx+len("line "):]
	end := strings.IndexFunc(rest, func(r rune) bool { return r < '0' || r > '9' })
	if end == -1 {
		end = len(rest)
	}
	n, _ := strconv.Atoi(rest[:end])
	return n
}
