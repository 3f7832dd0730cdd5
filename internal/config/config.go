// Package config loads the resolver's static startup configuration:
// the root server hint list. The format is a small, fixed JSON shape,
// so encoding/json is used directly rather than reaching for a
// general-purpose config library (see DESIGN.md).
package config

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
)

// RootHints is the on-disk shape of root_servers.json.
type RootHints struct {
	Servers []string `json:"servers"`
}

// LoadRootHints reads and parses path, returning the root servers as
// resolved UDP addresses on port 53. A missing or malformed file is a
// fatal startup condition, per spec.md §6.
func LoadRootHints(path string) ([]*net.UDPAddr, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading root hints %q: %w", path, err)
	}

	var hints RootHints
	if err := json.Unmarshal(data, &hints); err != nil {
		return nil, fmt.Errorf("config: parsing root hints %q: %w", path, err)
	}
	if len(hints.Servers) == 0 {
		return nil, fmt.Errorf("config: root hints %q contains no servers", path)
	}

	addrs := make([]*net.UDPAddr, 0, len(hints.Servers))
	for _, ip := range hints.Servers {
		addr, err := net.ResolveUDPAddr("udp", net.JoinHostPort(ip, "53"))
		if err != nil {
			return nil, fmt.Errorf("config: invalid root server %q: %w", ip, err)
		}
		addrs = append(addrs, addr)
	}
	return addrs, nil
}
