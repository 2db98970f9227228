package analyze

import (
	"fmt"

	"github.com/NotDannyCrawford/aws-deploy-skill/internal/model"
)

func init() {
	Register(func() Rule { return &PortConsistencyRule{} })
}

// PortConsistencyRule compares each service's declared listening port
// against the proxy route blocks that target it. A mismatched target
// port is critical; a published service no route reaches is a warning.
type PortConsistencyRule struct{}

func (r *PortConsistencyRule) Metadata() RuleMetadata {
	return RuleMetadata{
		Name:        "port-consistency",
		DisplayName: "Port consistency",
		Description: "proxy route targets must match service listening ports",
		Category:    model.CategoryPortConsistency,
	}
}

func (r *PortConsistencyRule) Evaluate(b *FactBundle) []model.Finding {
	if b.Composition == nil {
		return nil
	}

	var findings []model.Finding
	clean := true

	for _, name := range b.Composition.ServiceNames() {
		svc := b.Composition.Services[name]
		port, source, known := ListeningPort(b.Recipes[name], svc)

		var routes []model.RouteBlock
		if b.Proxy != nil {
			routes = b.Proxy.RoutesTo(name)
		}

		if len(routes) == 0 {
			// A service that publishes a host port is meant to be
			// reachable; with a proxy config present but no route, it
			// is not.
			if b.Proxy != nil && len(svc.PublishedPorts()) > 0 {
				clean = false
				findings = append(findings, model.Warning(
					model.CategoryPortConsistency,
					fmt.Sprintf("service %q publishes ports but no proxy route targets it", name),
					fmt.Sprintf("add a route block for %s or drop its published ports", name),
				).At(b.Proxy.Path, 0))
			}
			continue
		}

		if !known {
			continue // unknown listening port, nothing to compare
		}

		for _, route := range routes {
			if route.TargetPort == port {
				continue
			}
			clean = false
			findings = append(findings, model.Critical(
				model.CategoryPortConsistency,
				fmt.Sprintf("service %q listens on port %q (%s) but the proxy route at line %d targets port %q",
					name, fmt.Sprint(port), source, route.Line, fmt.Sprint(route.TargetPort)),
				fmt.Sprintf("point the route at %s:%d or change the service's listening port", name, port),
			).At(b.Proxy.Path, route.Line))
		}
	}

	if clean {
		findings = append(findings, model.Info(model.CategoryPortConsistency, "proxy routes and service ports are consistent"))
	}
	return findings
}
