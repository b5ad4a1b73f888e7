package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

// MediaNode describes one media server the allocator may hand out.
// Capacity 0 means unlimited.
type MediaNode struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Region   string `json:"region"`
	Capacity int    `json:"capacity"`
}

// MediaNodes is the configured pool. In flags and environment variables it is
// written as a comma separated list of host:port[/region[/capacity]].
type MediaNodes []MediaNode

// String implements flag.Value.
func (m *MediaNodes) String() string {
	if m == nil {
		return ""
	}
	parts := make([]string, 0, len(*m))
	for _, n := range *m {
		s := net.JoinHostPort(n.Host, strconv.Itoa(n.Port))
		if n.Region != "" || n.Capacity > 0 {
			s += "/" + n.Region
		}
		if n.Capacity > 0 {
			s += "/" + strconv.Itoa(n.Capacity)
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ",")
}

// Set implements flag.Value.
func (m *MediaNodes) Set(value string) error {
	var nodes MediaNodes
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		node, err := parseMediaNode(item)
		if err != nil {
			return err
		}
		nodes = append(nodes, node)
	}
	if len(nodes) == 0 {
		return fmt.Errorf("empty media node list")
	}
	*m = nodes
	return nil
}

// Decode implements envconfig.Decoder.
func (m *MediaNodes) Decode(value string) error {
	return m.Set(value)
}

func parseMediaNode(s string) (MediaNode, error) {
	fields := strings.Split(s, "/")
	if len(fields) > 3 {
		return MediaNode{}, fmt.Errorf("media node %q: too many fields", s)
	}

	host, portStr, err := net.SplitHostPort(fields[0])
	if err != nil {
		return MediaNode{}, fmt.Errorf("media node %q: %w", s, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return MediaNode{}, fmt.Errorf("media node %q: bad port", s)
	}

	node := MediaNode{Host: host, Port: port}
	if len(fields) > 1 {
		node.Region = fields[1]
	}
	if len(fields) > 2 {
		capacity, err := strconv.Atoi(fields[2])
		if err != nil {
			return MediaNode{}, fmt.Errorf("media node %q: bad capacity", s)
		}
		node.Capacity = capacity
	}
	if err := node.Validate(); err != nil {
		return MediaNode{}, fmt.Errorf("media node %q: %w", s, err)
	}
	return node, nil
}

// Validate checks the node the same way whether it came from JSON, the
// environment or flags.
func (n MediaNode) Validate() error {
	if n.Host == "" {
		return fmt.Errorf("empty host")
	}
	if n.Port <= 0 || n.Port > 65535 {
		return fmt.Errorf("bad port %d", n.Port)
	}
	if n.Capacity < 0 {
		return fmt.Errorf("bad capacity %d", n.Capacity)
	}
	return nil
}
