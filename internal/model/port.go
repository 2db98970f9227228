package model

import (
	"fmt"
	"strconv"
	"strings"
)

// PortMapping represents a published port binding.
type PortMapping struct {
	Raw           string
	HostIP        string
	HostPort      int
	ContainerPort int
	Protocol      string // tcp or udp
}

// String returns a human-readable port mapping.
func (p PortMapping) String() string {
	proto := p.Protocol
	if proto == "" || proto == "tcp" {
		proto = ""
	} else {
		proto = "/" + proto
	}
	if p.HostPort == p.ContainerPort || p.HostPort == 0 {
		return fmt.Sprintf("%d%s", p.ContainerPort, proto)
	}
	return fmt.Sprintf("%d:%d%s", p.HostPort, p.ContainerPort, proto)
}

// ParsePortMapping parses a Docker port string like "8080:80" or
// "127.0.0.1:8080:80/tcp". An unparsable or out-of-range port returns
// an error so the caller can surface a syntax finding instead of
// silently dropping the mapping.
func ParsePortMapping(s string) (PortMapping, error) {
	pm := PortMapping{Raw: s, Protocol: "tcp"}

	rest := s
	if idx := strings.Index(rest, "/"); idx != -1 {
		pm.Protocol = rest[idx+1:]
		rest = rest[:idx]
	}

	parts := strings.Split(rest, ":")
	var err error
	switch len(parts) {
	case 1:
		pm.ContainerPort, err = parsePort(parts[0])
		pm.HostPort = pm.ContainerPort
	case 2:
		if pm.HostPort, err = parsePort(parts[0]); err == nil {
			pm.ContainerPort, err = parsePort(parts[1])
		}
	case 3:
		pm.HostIP = parts[0]
		if pm.HostPort, err = parsePort(parts[1]); err == nil {
			pm.ContainerPort, err = parsePort(parts[2])
		}
	default:
		err = fmt.Errorf("too many colon-separated fields")
	}
	if err != nil {
		return PortMapping{Raw: s}, fmt.Errorf("port mapping %q: %w", s, err)
	}
	return pm, nil
}

func parsePort(s string) (int, error) {
	// Ranges like 3000-3005 are collapsed to their first port; the
	// checker only cares about the primary listening port.
	if idx := strings.Index(s, "-"); idx > 0 {
		s = s[:idx]
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	if n < 0 || n > 65535 {
		return 0, fmt.Errorf("out of range: %d", n)
	}
	return n, nil
}
