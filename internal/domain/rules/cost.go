package rules

import (
	"fmt"
	"math"

	"github.com/andrescamacho/stars-go/internal/domain/shared"
)

// Cost is a price in minerals (kT) and resources.
type Cost struct {
	Ironium   int `json:"ironium" yaml:"ironium,omitempty"`
	Boranium  int `json:"boranium" yaml:"boranium,omitempty"`
	Germanium int `json:"germanium" yaml:"germanium,omitempty"`
	Resources int `json:"resources" yaml:"resources,omitempty"`
}

func (c Cost) Add(o Cost) Cost {
	return Cost{
		Ironium:   c.Ironium + o.Ironium,
		Boranium:  c.Boranium + o.Boranium,
		Germanium: c.Germanium + o.Germanium,
		Resources: c.Resources + o.Resources,
	}
}

func (c Cost) Subtract(o Cost) Cost {
	return Cost{
		Ironium:   c.Ironium - o.Ironium,
		Boranium:  c.Boranium - o.Boranium,
		Germanium: c.Germanium - o.Germanium,
		Resources: c.Resources - o.Resources,
	}
}

func (c Cost) Multiply(n int) Cost {
	return Cost{
		Ironium:   c.Ironium * n,
		Boranium:  c.Boranium * n,
		Germanium: c.Germanium * n,
		Resources: c.Resources * n,
	}
}

// Scale multiplies every amount by f, rounding up.
func (c Cost) Scale(f float64) Cost {
	scale := func(v int) int {
		return int(math.Ceil(float64(v)*f - 1e-9))
	}
	return Cost{
		Ironium:   scale(c.Ironium),
		Boranium:  scale(c.Boranium),
		Germanium: scale(c.Germanium),
		Resources: scale(c.Resources),
	}
}

// Min takes the per-component minimum.
func (c Cost) Min(o Cost) Cost {
	return Cost{
		Ironium:   min(c.Ironium, o.Ironium),
		Boranium:  min(c.Boranium, o.Boranium),
		Germanium: min(c.Germanium, o.Germanium),
		Resources: min(c.Resources, o.Resources),
	}
}

// ClampZero raises negative components to zero.
func (c Cost) ClampZero() Cost {
	return Cost{
		Ironium:   max(c.Ironium, 0),
		Boranium:  max(c.Boranium, 0),
		Germanium: max(c.Germanium, 0),
		Resources: max(c.Resources, 0),
	}
}

// Covers reports whether c has at least o of every component.
func (c Cost) Covers(o Cost) bool {
	return c.Ironium >= o.Ironium && c.Boranium >= o.Boranium &&
		c.Germanium >= o.Germanium && c.Resources >= o.Resources
}

func (c Cost) IsZero() bool {
	return c == Cost{}
}

// Minerals converts the mineral part to cargo.
func (c Cost) Minerals() shared.Cargo {
	return shared.Cargo{Ironium: c.Ironium, Boranium: c.Boranium, Germanium: c.Germanium}
}

// CostFromCargo builds a cost from cargo minerals and a resource amount.
func CostFromCargo(cargo shared.Cargo, resources int) Cost {
	return Cost{Ironium: cargo.Ironium, Boranium: cargo.Boranium, Germanium: cargo.Germanium, Resources: resources}
}

func (c Cost) String() string {
	return fmt.Sprintf("%dI %dB %dG %dR", c.Ironium, c.Boranium, c.Germanium, c.Resources)
}
