// Package manifest loads the gateway's flow manifest: the set of client/flow
// labels it will host, with their trusted origins and known variants.
package manifest

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Flow describes one hostable flow.
type Flow struct {
	Client   string   `yaml:"client"`
	Flow     string   `yaml:"flow"`
	Origin   string   `yaml:"origin,omitempty"`
	Variants []string `yaml:"variants,omitempty"`
}

// Manifest is the full set of hostable flows.
type Manifest struct {
	Flows []Flow `yaml:"flows"`
}

// Parse decodes a manifest from YAML.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("manifest: parse: %w", err)
	}
	for i, f := range m.Flows {
		if f.Client == "" || f.Flow == "" {
			return nil, fmt.Errorf("manifest: entry %d missing client or flow label", i)
		}
	}
	return &m, nil
}

// Load reads and parses a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: read %s: %w", path, err)
	}
	return Parse(data)
}

// Lookup finds the entry for a client/flow pair.
func (m *Manifest) Lookup(client, flow string) (*Flow, bool) {
	for i := range m.Flows {
		if m.Flows[i].Client == client && m.Flows[i].Flow == flow {
			return &m.Flows[i], true
		}
	}
	return nil, false
}

// HasVariant reports whether the flow declares the variant. An empty variant
// is always acceptable; a flow with no declared variants accepts any.
func (f *Flow) HasVariant(variant string) bool {
	if variant == "" || len(f.Variants) == 0 {
		return true
	}
	for _, v := range f.Variants {
		if v == variant {
			return true
		}
	}
	return false
}
