package game

import (
	"fmt"

	"github.com/andrescamacho/stars-go/internal/domain/rules"
	"github.com/andrescamacho/stars-go/internal/domain/shared"
)

// ShipDesignSlot fills one hull slot with a quantity of one component.
type ShipDesignSlot struct {
	HullSlot  int    `json:"hullSlot"`
	Component string `json:"component"`
	Quantity  int    `json:"quantity"`
}

// ShipDesign is a player's hull plus components. Once any token references a
// design its slots never change; only the derived Spec is recomputed.
type ShipDesign struct {
	Num          int              `json:"num"`
	PlayerNum    int              `json:"playerNum"`
	Name         string           `json:"name"`
	Hull         string           `json:"hull"`
	Slots        []ShipDesignSlot `json:"slots"`
	CannotDelete bool             `json:"cannotDelete,omitempty"`
	Deleted      bool             `json:"deleted,omitempty"`

	Spec ShipDesignSpec `json:"-"`
}

// WeaponSlot is one stack of identical weapons on a design.
type WeaponSlot struct {
	Name       string           `json:"name"`
	Type       rules.WeaponType `json:"type"`
	Power      int              `json:"power"`
	Range      int              `json:"range"`
	Accuracy   int              `json:"accuracy"`
	Initiative int              `json:"initiative"`
	Quantity   int              `json:"quantity"`
}

// BombSlot is one stack of identical bombs.
type BombSlot struct {
	KillRate      float64 `json:"killRate"`
	MinKill       int     `json:"minKill"`
	StructureKill int     `json:"structureKill"`
	Smart         bool    `json:"smart"`
	Quantity      int     `json:"quantity"`
}

// ShipDesignSpec is derived from hull, components, tech levels and race.
// It is a cache; ComputeSpec is the source of truth.
type ShipDesignSpec struct {
	Computed  bool            `json:"computed"`
	TechLevel rules.TechLevel `json:"techLevel"`

	Cost          rules.Cost `json:"cost"`
	Mass          int        `json:"mass"`
	Armor         int        `json:"armor"`
	Shield        int        `json:"shield"`
	FuelCapacity  int        `json:"fuelCapacity"`
	CargoCapacity int        `json:"cargoCapacity"`

	Engine     string `json:"engine"`
	NumEngines int    `json:"numEngines"`
	IdealSpeed int    `json:"idealSpeed"`
	FuelUsage  []int  `json:"fuelUsage"`

	ScanRange    int `json:"scanRange"`    // -1 without a scanner
	PenScanRange int `json:"penScanRange"` // -1 without a penetrating scanner
	Cloak        int `json:"cloak"`
	Initiative   int `json:"initiative"`
	Movement     int `json:"movement"`

	Weapons     []WeaponSlot `json:"weapons,omitempty"`
	PowerRating int          `json:"powerRating"`
	Bombs       []BombSlot   `json:"bombs,omitempty"`

	MineLayingRate [3]int `json:"mineLayingRate"` // indexed by rules.MineFieldType
	MineSweep      int    `json:"mineSweep"`
	MiningRate     int    `json:"miningRate"`
	TerraformRate  int    `json:"terraformRate"`

	Colonizer     bool `json:"colonizer"`
	Starbase      bool `json:"starbase"`
	SpaceDock     int  `json:"spaceDock"`
	PacketSpeed   int  `json:"packetSpeed"`
	GateSafeMass  int  `json:"gateSafeMass"`
	GateSafeRange int  `json:"gateSafeRange"`
}

// Armed reports whether the design carries any weapon.
func (s *ShipDesignSpec) Armed() bool {
	return len(s.Weapons) > 0
}

// Bomber reports whether the design carries bombs.
func (s *ShipDesignSpec) Bomber() bool {
	return len(s.Bombs) > 0
}

// MaxWeaponRange is the longest weapon range, -1 when unarmed.
func (s *ShipDesignSpec) MaxWeaponRange() int {
	r := -1
	for _, w := range s.Weapons {
		r = max(r, w.Range)
	}
	return r
}

// FuelUsageAt returns the per-warp fuel usage of the engine.
func (s *ShipDesignSpec) FuelUsageAt(warp int) int {
	if warp < 0 || warp >= len(s.FuelUsage) {
		return 0
	}
	return s.FuelUsage[warp]
}

// ComputeSpec derives the aggregate stats of a design for a player. The
// player's tech levels drive miniaturization and its race modifies costs.
func ComputeSpec(d *ShipDesign, rs *rules.Rules, techs *rules.TechCatalog, race *Race, level rules.TechLevel) (ShipDesignSpec, error) {
	hull, ok := techs.Hull(d.Hull)
	if !ok {
		return ShipDesignSpec{}, shared.NewMissingReferenceError("hull", d.Hull)
	}

	perLevel := rs.MiniaturizationPerLevel * race.MiniaturizationBonus()
	miniaturize := func(t *rules.Tech) rules.Cost {
		above := level.LevelsAbove(t.Requirements)
		return t.Cost.Scale(1 - min(rs.MiniaturizationMax, perLevel*float64(above)))
	}

	spec := ShipDesignSpec{
		Computed:      true,
		TechLevel:     level,
		Cost:          miniaturize(hull),
		Mass:          hull.Hull.Mass,
		Armor:         hull.Hull.Armor,
		FuelCapacity:  hull.Hull.FuelCapacity,
		CargoCapacity: hull.Hull.CargoCapacity,
		Initiative:    hull.Hull.Initiative,
		Starbase:      hull.Hull.Starbase,
		SpaceDock:     hull.Hull.SpaceDock,
		ScanRange:     -1,
		PenScanRange:  -1,
	}

	cloakUnits := 0
	for _, slot := range d.Slots {
		if slot.Quantity <= 0 {
			continue
		}
		if slot.HullSlot < 0 || slot.HullSlot >= len(hull.Hull.Slots) {
			return ShipDesignSpec{}, shared.NewValidationError("slots", fmt.Sprintf("hull %s has no slot %d", d.Hull, slot.HullSlot))
		}
		hullSlot := hull.Hull.Slots[slot.HullSlot]
		tech, ok := techs.Component(slot.Component)
		if !ok {
			return ShipDesignSpec{}, shared.NewMissingReferenceError("component", slot.Component)
		}
		c := tech.Component
		if !hullSlot.Type.Accepts(c.Slot) {
			return ShipDesignSpec{}, shared.NewValidationError("slots", fmt.Sprintf("%s does not fit a %s slot", tech.Name, hullSlot.Type))
		}
		if slot.Quantity > hullSlot.Capacity {
			return ShipDesignSpec{}, shared.NewValidationError("slots", fmt.Sprintf("slot %d holds at most %d", slot.HullSlot, hullSlot.Capacity))
		}
		qty := slot.Quantity

		cost := miniaturize(tech)
		if c.Slot == rules.SlotEngine {
			cost = cost.Scale(race.EngineCostFactor())
		}
		spec.Cost = spec.Cost.Add(cost.Multiply(qty))
		spec.Mass += c.Mass * qty
		spec.Armor += c.Armor * qty
		spec.Shield += c.Shield * qty
		spec.FuelCapacity += c.FuelBonus * qty
		spec.CargoCapacity += c.CargoBonus * qty
		spec.Initiative += c.Initiative * qty
		cloakUnits += c.Cloak * qty

		switch c.Slot {
		case rules.SlotEngine:
			spec.Engine = tech.Name
			spec.NumEngines += qty
			spec.IdealSpeed = c.IdealSpeed
			spec.FuelUsage = append([]int(nil), c.FuelUsage...)
		case rules.SlotScanner:
			spec.ScanRange = max(spec.ScanRange, c.ScanRange)
			if c.PenScanRange > 0 && race.PenScanAllowed() {
				spec.PenScanRange = max(spec.PenScanRange, c.PenScanRange)
			}
		case rules.SlotWeapon:
			spec.Weapons = append(spec.Weapons, WeaponSlot{
				Name:       tech.Name,
				Type:       c.Weapon,
				Power:      c.Power,
				Range:      c.Range,
				Accuracy:   c.Accuracy,
				Initiative: c.Initiative + hull.Hull.Initiative,
				Quantity:   qty,
			})
			spec.PowerRating += c.Power * qty * (c.Range + 1)
			if c.Weapon == rules.WeaponBeam {
				spec.MineSweep += c.Power * qty * (c.Range + 1) * (c.Range + 1) * rs.MineSweepPerPower
			}
		case rules.SlotBomb:
			spec.Bombs = append(spec.Bombs, BombSlot{
				KillRate: c.KillRate, MinKill: c.MinKill, StructureKill: c.StructureKill, Smart: c.Smart, Quantity: qty,
			})
		case rules.SlotMineLayer:
			spec.MineLayingRate[c.MineFieldType] += c.MineLayingRate * qty
		case rules.SlotMining:
			spec.MiningRate += c.MiningRate * qty
		case rules.SlotOrbital:
			spec.PacketSpeed = max(spec.PacketSpeed, c.PacketSpeed)
			spec.GateSafeMass = max(spec.GateSafeMass, c.GateSafeMass)
			spec.GateSafeRange = max(spec.GateSafeRange, c.GateSafeRange)
		}
		if c.ColonizationModule {
			spec.Colonizer = true
		}
		spec.TerraformRate += c.TerraformRate * qty
	}

	if spec.Starbase {
		spec.Cost = spec.Cost.Scale(race.StarbaseCostFactor())
	}
	spec.Armor = int(float64(spec.Armor) * race.ArmorFactor())
	spec.Shield = int(float64(spec.Shield) * race.ShieldFactor())
	if spec.Mass > 0 {
		spec.Cloak = min(95, cloakUnits*100/max(spec.Mass, 100))
		if race.PRT == PRTSuperStealth {
			spec.Cloak = min(95, spec.Cloak+20)
		}
	}
	spec.Movement = battleMovement(spec)
	return spec, nil
}

// battleMovement is squares per round on the battle board.
func battleMovement(spec ShipDesignSpec) int {
	if spec.Starbase || spec.NumEngines == 0 {
		return 0
	}
	movement := spec.IdealSpeed/2 - spec.Mass/(150*spec.NumEngines)
	return max(1, min(4, movement))
}

// IsCapitalShip counts armed designs with real punch toward capital ship victory.
func (d *ShipDesign) IsCapitalShip() bool {
	return d.Spec.Armed() && d.Spec.PowerRating >= 100 && !d.Spec.Starbase
}

// Requirements is the field-wise maximum of the hull and component
// requirements. Unknown parts are ignored.
func (d *ShipDesign) Requirements(techs *rules.TechCatalog) rules.TechLevel {
	var req rules.TechLevel
	raise := func(t *rules.Tech) {
		for _, f := range rules.TechFields {
			req.Set(f, max(req.Get(f), t.Requirements.Get(f)))
		}
	}
	if hull, ok := techs.Hull(d.Hull); ok {
		raise(hull)
	}
	for _, slot := range d.Slots {
		if c, ok := techs.Component(slot.Component); ok {
			raise(c)
		}
	}
	return req
}
