package game

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/andrescamacho/stars-go/internal/domain/rules"
	"github.com/andrescamacho/stars-go/internal/domain/shared"
	"github.com/andrescamacho/stars-go/pkg/utils"
)

// ShipToken is a stack of identical ships in a fleet. Damage is the armor
// lost per damaged ship; QuantityDamaged ships carry it.
type ShipToken struct {
	DesignNum       int         `json:"designNum"`
	Design          *ShipDesign `json:"-"`
	Quantity        int         `json:"quantity"`
	Damage          float64     `json:"damage"`
	QuantityDamaged int         `json:"quantityDamaged"`
}

// Fleet is one or more ship tokens travelling together. A starbase is a
// single-token fleet that never moves.
//
// Invariants:
//   - Waypoints[0] is the fleet's current position
//   - a fleet with no tokens does not survive fleet aging
type Fleet struct {
	ID               uuid.UUID     `json:"id"`
	Num              int           `json:"num"`
	Name             string        `json:"name"`
	PlayerNum        int           `json:"playerNum"`
	Position         shared.Vector `json:"position"`
	PreviousPosition shared.Vector `json:"previousPosition"`
	Heading          shared.Vector `json:"heading"`
	WarpSpeed        int           `json:"warpSpeed"`
	Tokens           []*ShipToken  `json:"tokens"`
	Waypoints        []*Waypoint   `json:"waypoints"`
	Fuel             int           `json:"fuel"`
	Cargo            shared.Cargo  `json:"cargo"`
	BattlePlanNum    int           `json:"battlePlanNum"`
	Starbase         bool          `json:"starbase"`
	Age              int           `json:"age"`
	RepeatOrders     bool          `json:"repeatOrders,omitempty"`

	Orbiting *Planet `json:"-"`
	Delete   bool    `json:"-"`
}

// FleetSpec aggregates the designs of every token.
type FleetSpec struct {
	Mass           int
	BaseMass       int
	Armor          int
	Shield         int
	FuelCapacity   int
	CargoCapacity  int
	IdealSpeed     int
	ScanRange      int
	PenScanRange   int
	Cloak          int
	MiningRate     int
	TerraformRate  int
	MineSweep      int
	MineLayingRate [3]int
	Colonizer      bool
	Armed          bool
	Bomber         bool
	TotalShips     int
	Cost           rules.Cost
	PacketSpeed    int
	GateSafeMass   int
	GateSafeRange  int
	SpaceDock      int
	Bombs          []BombSlot
}

// Spec sums token designs. Designs must have their specs computed.
func (f *Fleet) Spec() FleetSpec {
	spec := FleetSpec{ScanRange: -1, PenScanRange: -1, IdealSpeed: math.MaxInt, SpaceDock: 0}
	cloakMass := 0
	for _, t := range f.Tokens {
		if t.Design == nil || t.Quantity <= 0 {
			continue
		}
		d := &t.Design.Spec
		spec.BaseMass += d.Mass * t.Quantity
		spec.Armor += d.Armor * t.Quantity
		spec.Shield += d.Shield * t.Quantity
		spec.FuelCapacity += d.FuelCapacity * t.Quantity
		spec.CargoCapacity += d.CargoCapacity * t.Quantity
		spec.MiningRate += d.MiningRate * t.Quantity
		spec.TerraformRate += d.TerraformRate * t.Quantity
		spec.MineSweep += d.MineSweep * t.Quantity
		for i := range spec.MineLayingRate {
			spec.MineLayingRate[i] += d.MineLayingRate[i] * t.Quantity
		}
		spec.TotalShips += t.Quantity
		spec.Cost = spec.Cost.Add(d.Cost.Multiply(t.Quantity))
		spec.ScanRange = max(spec.ScanRange, d.ScanRange)
		spec.PenScanRange = max(spec.PenScanRange, d.PenScanRange)
		spec.Colonizer = spec.Colonizer || d.Colonizer
		spec.Armed = spec.Armed || d.Armed()
		spec.Bomber = spec.Bomber || d.Bomber()
		for _, b := range d.Bombs {
			b.Quantity *= t.Quantity
			spec.Bombs = append(spec.Bombs, b)
		}
		if d.NumEngines > 0 {
			spec.IdealSpeed = min(spec.IdealSpeed, d.IdealSpeed)
		}
		cloakMass += d.Cloak * d.Mass * t.Quantity
		spec.PacketSpeed = max(spec.PacketSpeed, d.PacketSpeed)
		spec.GateSafeMass = max(spec.GateSafeMass, d.GateSafeMass)
		spec.GateSafeRange = max(spec.GateSafeRange, d.GateSafeRange)
		if d.Starbase {
			spec.SpaceDock = d.SpaceDock
		}
	}
	if spec.IdealSpeed == math.MaxInt {
		spec.IdealSpeed = 0
	}
	spec.Mass = spec.BaseMass + f.Cargo.Total()
	if spec.BaseMass > 0 {
		spec.Cloak = cloakMass / spec.Mass
	}
	return spec
}

// TotalShips counts ships across tokens.
func (f *Fleet) TotalShips() int {
	n := 0
	for _, t := range f.Tokens {
		n += t.Quantity
	}
	return n
}

// HasTokens reports whether any token still has ships.
func (f *Fleet) HasTokens() bool {
	return f.TotalShips() > 0
}

// RemoveEmptyTokens drops stacks destroyed down to zero.
func (f *Fleet) RemoveEmptyTokens() {
	kept := f.Tokens[:0]
	for _, t := range f.Tokens {
		if t.Quantity > 0 {
			kept = append(kept, t)
		}
	}
	f.Tokens = kept
}

// Destination is the next waypoint, nil when the fleet has nowhere to go.
func (f *Fleet) Destination() *Waypoint {
	if len(f.Waypoints) < 2 {
		return nil
	}
	return f.Waypoints[1]
}

// CurrentWaypoint is Waypoints[0], creating it when missing.
func (f *Fleet) CurrentWaypoint() *Waypoint {
	if len(f.Waypoints) == 0 {
		f.Waypoints = []*Waypoint{NewPositionWaypoint(f.Position, 0)}
	}
	return f.Waypoints[0]
}

// AvailableCargoSpace is free capacity in kT.
func (f *Fleet) AvailableCargoSpace() int {
	return utils.Max(0, f.Spec().CargoCapacity-f.Cargo.Total())
}

// FuelCost is the fuel burned travelling dist light-years at warp.
func (f *Fleet) FuelCost(race *Race, rs *rules.Rules, warp int, dist float64) int {
	if warp <= 0 || dist <= 0 {
		return 0
	}
	total := 0.0
	cargoMass := float64(f.Cargo.Total())
	baseMass := 0
	for _, t := range f.Tokens {
		if t.Design != nil {
			baseMass += t.Design.Spec.Mass * t.Quantity
		}
	}
	for _, t := range f.Tokens {
		if t.Design == nil || t.Quantity <= 0 {
			continue
		}
		mass := float64(t.Design.Spec.Mass * t.Quantity)
		if baseMass > 0 {
			mass += cargoMass * mass / float64(baseMass)
		}
		total += mass * float64(t.Design.Spec.FuelUsageAt(warp)) * dist / float64(rs.FuelPerMassLightYear)
	}
	return int(math.Ceil(total*race.FuelEfficiency() - 1e-9))
}

// Owner returns the owning player.
func (f *Fleet) Owner(w *World) *Player {
	return w.Player(f.PlayerNum)
}

// StarbaseDesign returns the single design of a starbase fleet.
func (f *Fleet) StarbaseDesign() *ShipDesign {
	if !f.Starbase || len(f.Tokens) == 0 {
		return nil
	}
	return f.Tokens[0].Design
}

// ApplyArmorDamage removes ships from a token given armor damage spread
// across the stack. It returns ships destroyed.
func (t *ShipToken) ApplyArmorDamage(damage float64) int {
	if t.Design == nil || t.Quantity <= 0 || damage <= 0 {
		return 0
	}
	armor := float64(t.Design.Spec.Armor)
	if armor <= 0 {
		destroyed := t.Quantity
		t.Quantity = 0
		return destroyed
	}
	totalDamage := t.Damage*float64(t.QuantityDamaged) + damage
	destroyed := utils.Min(t.Quantity, int(totalDamage/armor))
	t.Quantity -= destroyed
	remaining := totalDamage - float64(destroyed)*armor
	if t.Quantity == 0 {
		t.Damage = 0
		t.QuantityDamaged = 0
		return destroyed
	}
	if remaining > 0 {
		t.QuantityDamaged = t.Quantity
		t.Damage = remaining / float64(t.Quantity)
	} else {
		t.QuantityDamaged = 0
		t.Damage = 0
	}
	return destroyed
}

// RepairArmor restores percent of max armor on every damaged ship.
func (t *ShipToken) RepairArmor(percent int) {
	if t.Design == nil || t.QuantityDamaged == 0 {
		return
	}
	t.Damage -= float64(t.Design.Spec.Armor*percent) / 100
	if t.Damage <= 0 {
		t.Damage = 0
		t.QuantityDamaged = 0
	}
}

func (f *Fleet) String() string {
	return fmt.Sprintf("Fleet(%s #%d p%d)", f.Name, f.Num, f.PlayerNum)
}
