package artifact

import (
	"bufio"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/NotDannyCrawford/aws-deploy-skill/internal/model"
)

// ParseProxyConfig parses an nginx-style reverse-proxy configuration
// into route blocks. It understands server blocks with listen,
// server_name, and location directives, proxy_pass targets, and
// upstream blocks. Anything else is ignored; unbalanced braces are a
// ParseError.
func ParseProxyConfig(path string) (*model.ProxyConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	defer f.Close()

	cfg := &model.ProxyConfig{Path: path}
	upstreams := map[string]upstream{}

	type serverCtx struct {
		listenPort int
		serverName string
	}
	type locationCtx struct {
		path string
		line int
	}

	var (
		stack    []string // block names, innermost last
		server   serverCtx
		location locationCtx
		pending  []model.RouteBlock // routes awaiting the server's listen port
		curUp    string
		lineNo   int
	)

	inBlock := func(name string) bool {
		for _, b := range stack {
			if b == name {
				return true
			}
		}
		return false
	}

	flushServer := func() {
		for _, r := range pending {
			r.ListenPort = server.listenPort
			r.ServerName = server.serverName
			cfg.Routes = append(cfg.Routes, r)
		}
		pending = nil
		server = serverCtx{}
	}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if idx := strings.Index(line, "#"); idx != -1 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		// One directive or block header per line is all nginx configs
		// written by hand use; split trailing brace off block headers.
		if strings.HasSuffix(line, "{") {
			header := strings.TrimSpace(strings.TrimSuffix(line, "{"))
			fields := strings.Fields(header)
			name := ""
			if len(fields) > 0 {
				name = fields[0]
			}
			stack = append(stack, name)
			switch name {
			case "location":
				location = locationCtx{path: "/", line: lineNo}
				if len(fields) > 1 {
					location.path = fields[len(fields)-1]
				}
			case "upstream":
				if len(fields) > 1 {
					curUp = fields[1]
				}
			}
			continue
		}

		if line == "}" {
			if len(stack) == 0 {
				return nil, parseErrorf(path, lineNo, "unexpected closing brace")
			}
			closed := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			switch closed {
			case "server":
				flushServer()
			case "upstream":
				curUp = ""
			}
			continue
		}

		directive, args := splitDirective(line)
		switch {
		case directive == "listen" && inBlock("server"):
			server.listenPort = parseListenPort(args)
		case directive == "server_name" && inBlock("server"):
			if len(args) > 0 {
				server.serverName = args[0]
			}
		case directive == "server" && curUp != "":
			if len(args) > 0 {
				host, port := splitHostPort(args[0])
				upstreams[curUp] = upstream{host: host, port: port}
			}
		case directive == "proxy_pass" && inBlock("location"):
			if len(args) == 0 {
				return nil, parseErrorf(path, lineNo, "proxy_pass requires a target")
			}
			host, port, err := parseProxyTarget(args[0])
			if err != nil {
				return nil, parseErrorf(path, lineNo, "proxy_pass %s: %v", args[0], err)
			}
			pending = append(pending, model.RouteBlock{
				Path:          location.path,
				TargetService: host,
				TargetPort:    port,
				Line:          lineNo,
			})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if len(stack) > 0 {
		return nil, parseErrorf(path, lineNo, "unclosed block %q", stack[len(stack)-1])
	}

	// Resolve upstream names to their first server entry.
	for i, r := range cfg.Routes {
		if up, ok := upstreams[r.TargetService]; ok {
			cfg.Routes[i].TargetService = up.host
			if up.port > 0 {
				cfg.Routes[i].TargetPort = up.port
			}
		}
	}

	return cfg, nil
}

type upstream struct {
	host string
	port int
}

func splitDirective(line string) (string, []string) {
	line = strings.TrimSuffix(line, ";")
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	return fields[0], fields[1:]
}

// parseListenPort handles "80", "443 ssl", "[::]:80", "0.0.0.0:8080".
func parseListenPort(args []string) int {
	if len(args) == 0 {
		return 0
	}
	spec := args[0]
	if idx := strings.LastIndex(spec, ":"); idx != -1 {
		spec = spec[idx+1:]
	}
	n, err := strconv.Atoi(spec)
	if err != nil {
		return 0
	}
	return n
}

// parseProxyTarget extracts host and port from a proxy_pass URL like
// http://backend:5000/api. A missing port defaults by scheme.
func parseProxyTarget(target string) (string, int, error) {
	u, err := url.Parse(target)
	if err != nil {
		return "", 0, err
	}
	host := u.Hostname()
	port := 0
	if p := u.Port(); p != "" {
		port, err = strconv.Atoi(p)
		if err != nil {
			return "", 0, err
		}
	} else if u.Scheme == "https" {
		port = 443
	} else {
		port = 80
	}
	return host, port, nil
}

func splitHostPort(s string) (string, int) {
	host, portStr, found := strings.Cut(s, ":")
	if !found {
		return s, 0
	}
	port, _ := strconv.Atoi(portStr)
	return host, port
}
