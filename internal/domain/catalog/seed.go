package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var seedYAML []byte

type seedFile struct {
	Products []Product `yaml:"products"`
}

// LoadSeed returns the launch collection
func LoadSeed() ([]Product, error) {
	return ParseSeed(seedYAML)
}

// ParseSeed decodes a YAML product list and validates every entry
func ParseSeed(data []byte) ([]Product, error) {
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed catalog: %w", err)
	}

	seen := make(map[string]bool, len(f.Products))
	for i, p := range f.Products {
		if p.ID == "" {
			return nil, fmt.Errorf("seed product %d: missing id", i)
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("seed product %d: duplicate id %q", i, p.ID)
		}
		seen[p.ID] = true
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("seed product %q: %w", p.ID, err)
		}
	}
	return f.Products, nil
}
