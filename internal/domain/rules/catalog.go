package rules

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// TechCatalog is the static tech table. It is immutable after construction and
// safe for concurrent reads.
type TechCatalog struct {
	techs  []*Tech
	byName map[string]*Tech
}

// NewTechCatalog validates every tech and indexes it by name.
func NewTechCatalog(techs []*Tech) (*TechCatalog, error) {
	c := &TechCatalog{
		techs:  make([]*Tech, 0, len(techs)),
		byName: make(map[string]*Tech, len(techs)),
	}
	for _, t := range techs {
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("invalid tech: %w", err)
		}
		if _, exists := c.byName[t.Name]; exists {
			return nil, fmt.Errorf("duplicate tech %q", t.Name)
		}
		c.byName[t.Name] = t
		c.techs = append(c.techs, t)
	}
	return c, nil
}

type techFile struct {
	Techs []*Tech `yaml:"techs"`
}

// LoadTechCatalog reads a YAML tech table. Techs in the file replace defaults of
// the same name; the rest of the default table is kept.
func LoadTechCatalog(path string) (*TechCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tech catalog: %w", err)
	}

	var file techFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse tech catalog %s: %w", path, err)
	}

	overrides := make(map[string]*Tech, len(file.Techs))
	for _, t := range file.Techs {
		overrides[t.Name] = t
	}

	defaults := defaultTechs()
	merged := make([]*Tech, 0, len(defaults)+len(file.Techs))
	for _, t := range defaults {
		if o, ok := overrides[t.Name]; ok {
			merged = append(merged, o)
			delete(overrides, t.Name)
			continue
		}
		merged = append(merged, t)
	}
	for _, t := range file.Techs {
		if _, pending := overrides[t.Name]; pending {
			merged = append(merged, t)
		}
	}
	return NewTechCatalog(merged)
}

// DefaultTechCatalog returns the built-in tech table.
func DefaultTechCatalog() *TechCatalog {
	c, err := NewTechCatalog(defaultTechs())
	if err != nil {
		panic(fmt.Sprintf("default tech catalog is invalid: %v", err))
	}
	return c
}

// Tech looks a tech up by name.
func (c *TechCatalog) Tech(name string) (*Tech, bool) {
	t, ok := c.byName[name]
	return t, ok
}

// Hull looks up a hull by name.
func (c *TechCatalog) Hull(name string) (*Tech, bool) {
	t, ok := c.byName[name]
	if !ok || t.Kind != TechKindHull {
		return nil, false
	}
	return t, true
}

// Component looks up a hull component by name.
func (c *TechCatalog) Component(name string) (*Tech, bool) {
	t, ok := c.byName[name]
	if !ok || t.Kind != TechKindHullComponent {
		return nil, false
	}
	return t, true
}

// All returns every tech in table order.
func (c *TechCatalog) All() []*Tech {
	return append([]*Tech(nil), c.techs...)
}

// ByKind returns techs of one kind in table order.
func (c *TechCatalog) ByKind(kind TechKind) []*Tech {
	var out []*Tech
	for _, t := range c.techs {
		if t.Kind == kind {
			out = append(out, t)
		}
	}
	return out
}

// best picks the highest ranked tech the level allows, ties broken by name.
func (c *TechCatalog) best(level TechLevel, match func(*Tech) bool) *Tech {
	var candidates []*Tech
	for _, t := range c.techs {
		if match(t) && level.Meets(t.Requirements) {
			candidates = append(candidates, t)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Ranking != candidates[j].Ranking {
			return candidates[i].Ranking > candidates[j].Ranking
		}
		return candidates[i].Name < candidates[j].Name
	})
	return candidates[0]
}

// BestPlanetaryScanner returns nil when no scanner is available.
func (c *TechCatalog) BestPlanetaryScanner(level TechLevel) *Tech {
	return c.best(level, func(t *Tech) bool { return t.Kind == TechKindPlanetaryScanner })
}

// BestDefense returns nil when no defense is available.
func (c *TechCatalog) BestDefense(level TechLevel) *Tech {
	return c.best(level, func(t *Tech) bool { return t.Kind == TechKindDefense })
}

// BestComponent returns the best component for a slot type, or nil.
func (c *TechCatalog) BestComponent(level TechLevel, slot HullSlotType, match func(*ComponentSpec) bool) *Tech {
	return c.best(level, func(t *Tech) bool {
		return t.Kind == TechKindHullComponent && t.Component.Slot == slot && (match == nil || match(t.Component))
	})
}

// TerraformAbility is the largest number of clicks a player can terraform the
// given axis away from its original value.
func (c *TechCatalog) TerraformAbility(level TechLevel, hab HabType) int {
	ability := 0
	for _, t := range c.techs {
		if t.Kind != TechKindTerraform || !level.Meets(t.Requirements) {
			continue
		}
		if t.Terraform.HabType == hab || t.Terraform.HabType == HabAll {
			ability = max(ability, t.Terraform.Ability)
		}
	}
	return ability
}

// Available lists techs the level meets, in table order.
func (c *TechCatalog) Available(level TechLevel) []*Tech {
	var out []*Tech
	for _, t := range c.techs {
		if level.Meets(t.Requirements) {
			out = append(out, t)
		}
	}
	return out
}
