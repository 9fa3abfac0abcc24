package rules

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadRules reads a YAML rules file. Keys absent from the file keep their
// defaults.
func LoadRules(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules: %w", err)
	}
	return ParseRules(data)
}

// ParseRules decodes YAML over the default rule set.
func ParseRules(data []byte) (*Rules, error) {
	r := Default()
	if err := yaml.Unmarshal(data, r); err != nil {
		return nil, fmt.Errorf("failed to parse rules: %w", err)
	}
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rules: %w", err)
	}
	return r, nil
}

// Clone returns a deep copy.
func (r *Rules) Clone() *Rules {
	c := *r
	c.ResearchBaseCosts = append([]int(nil), r.ResearchBaseCosts...)
	return &c
}
