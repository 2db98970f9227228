package model

import "sort"

// ServiceSpec is one service declared in the composition file.
type ServiceSpec struct {
	Name         string
	Image        string
	BuildContext string // empty when the service only pulls an image
	RecipePath   string // Dockerfile path relative to the context
	Ports        []PortMapping
	InvalidPorts []string           // raw port strings that failed to parse
	Environment  map[string]*string // nil value means declared without default
	EnvFiles     []string
	DependsOn    []string
	Command      []string
}

// HasBuild reports whether the service is built from a recipe rather
// than pulled as an image.
func (s *ServiceSpec) HasBuild() bool {
	return s.BuildContext != ""
}

// PublishedPorts returns mappings that bind a host port.
func (s *ServiceSpec) PublishedPorts() []PortMapping {
	var out []PortMapping
	for _, p := range s.Ports {
		if p.HostPort > 0 {
			out = append(out, p)
		}
	}
	return out
}

// ServiceComposition is the parsed multi-service deployment
// declaration. Immutable after parse.
type ServiceComposition struct {
	Path     string
	Services map[string]*ServiceSpec
}

// NewServiceComposition creates an initialized composition.
func NewServiceComposition(path string) *ServiceComposition {
	return &ServiceComposition{Path: path, Services: make(map[string]*ServiceSpec)}
}

// ServiceNames returns service names in sorted order so that reports
// stay deterministic regardless of declaration order.
func (c *ServiceComposition) ServiceNames() []string {
	names := make([]string, 0, len(c.Services))
	for name := range c.Services {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
