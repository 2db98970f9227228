package model

// RouteBlock maps an incoming match to a backend service and port.
type RouteBlock struct {
	ListenPort    int
	ServerName    string
	Path          string // location match, "/" when unspecified
	TargetService string
	TargetPort    int
	Line          int
}

// ProxyConfig is the parsed reverse-proxy routing declaration.
type ProxyConfig struct {
	Path   string
	Routes []RouteBlock
}

// RoutesTo returns the route blocks targeting the named service.
func (p *ProxyConfig) RoutesTo(service string) []RouteBlock {
	var out []RouteBlock
	for _, r := range p.Routes {
		if r.TargetService == service {
			out = append(out, r)
		}
	}
	return out
}
