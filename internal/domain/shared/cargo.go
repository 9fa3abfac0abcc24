package shared

import "fmt"

// CargoType identifies one of the four things a hold or planet surface carries.
type CargoType int

const (
	Ironium CargoType = iota
	Boranium
	Germanium
	Colonists
)

// MineralTypes lists the three minerals in canonical order.
var MineralTypes = []CargoType{Ironium, Boranium, Germanium}

// CargoTypes lists all cargo types in canonical order.
var CargoTypes = []CargoType{Ironium, Boranium, Germanium, Colonists}

func (t CargoType) String() string {
	switch t {
	case Ironium:
		return "Ironium"
	case Boranium:
		return "Boranium"
	case Germanium:
		return "Germanium"
	case Colonists:
		return "Colonists"
	}
	return fmt.Sprintf("CargoType(%d)", int(t))
}

// Cargo holds minerals in kT and colonists in units of 100 people.
type Cargo struct {
	Ironium   int `json:"ironium"`
	Boranium  int `json:"boranium"`
	Germanium int `json:"germanium"`
	Colonists int `json:"colonists"`
}

// NewCargo creates cargo, rejecting negative amounts.
func NewCargo(ironium, boranium, germanium, colonists int) (Cargo, error) {
	c := Cargo{Ironium: ironium, Boranium: boranium, Germanium: germanium, Colonists: colonists}
	if c.HasNegative() {
		return Cargo{}, NewValidationError("cargo", "amounts cannot be negative")
	}
	return c, nil
}

func (c Cargo) Get(t CargoType) int {
	switch t {
	case Ironium:
		return c.Ironium
	case Boranium:
		return c.Boranium
	case Germanium:
		return c.Germanium
	case Colonists:
		return c.Colonists
	}
	return 0
}

func (c *Cargo) Set(t CargoType, amount int) {
	switch t {
	case Ironium:
		c.Ironium = amount
	case Boranium:
		c.Boranium = amount
	case Germanium:
		c.Germanium = amount
	case Colonists:
		c.Colonists = amount
	}
}

func (c Cargo) Add(o Cargo) Cargo {
	return Cargo{
		Ironium:   c.Ironium + o.Ironium,
		Boranium:  c.Boranium + o.Boranium,
		Germanium: c.Germanium + o.Germanium,
		Colonists: c.Colonists + o.Colonists,
	}
}

func (c Cargo) Subtract(o Cargo) Cargo {
	return Cargo{
		Ironium:   c.Ironium - o.Ironium,
		Boranium:  c.Boranium - o.Boranium,
		Germanium: c.Germanium - o.Germanium,
		Colonists: c.Colonists - o.Colonists,
	}
}

// Total is the cargo mass in kT. One colonist unit weighs 1kT.
func (c Cargo) Total() int {
	return c.Ironium + c.Boranium + c.Germanium + c.Colonists
}

// MineralTotal excludes colonists.
func (c Cargo) MineralTotal() int {
	return c.Ironium + c.Boranium + c.Germanium
}

func (c Cargo) HasNegative() bool {
	return c.Ironium < 0 || c.Boranium < 0 || c.Germanium < 0 || c.Colonists < 0
}

// CanSubtract reports whether o can be removed without going negative.
func (c Cargo) CanSubtract(o Cargo) bool {
	return !c.Subtract(o).HasNegative()
}

// Minerals returns a copy without colonists.
func (c Cargo) Minerals() Cargo {
	return Cargo{Ironium: c.Ironium, Boranium: c.Boranium, Germanium: c.Germanium}
}

func (c Cargo) IsZero() bool {
	return c == Cargo{}
}

// Scale multiplies each amount by f, rounding down.
func (c Cargo) Scale(f float64) Cargo {
	return Cargo{
		Ironium:   int(float64(c.Ironium) * f),
		Boranium:  int(float64(c.Boranium) * f),
		Germanium: int(float64(c.Germanium) * f),
		Colonists: int(float64(c.Colonists) * f),
	}
}

func (c Cargo) String() string {
	return fmt.Sprintf("I:%d B:%d G:%d C:%d", c.Ironium, c.Boranium, c.Germanium, c.Colonists)
}
