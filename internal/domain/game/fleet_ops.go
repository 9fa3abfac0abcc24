package game

import (
	"maps"

	"github.com/google/uuid"

	"github.com/andrescamacho/stars-go/internal/domain/shared"
	"github.com/andrescamacho/stars-go/pkg/utils"
)

// Absorb moves every ship, cargo and fuel of other into f and marks other
// for deletion. Tokens of the same design stack.
func (f *Fleet) Absorb(other *Fleet) {
	for _, t := range other.Tokens {
		f.addToken(t)
	}
	other.Tokens = nil
	f.Cargo = f.Cargo.Add(other.Cargo)
	f.Fuel += other.Fuel
	other.Cargo = shared.Cargo{}
	other.Fuel = 0
	other.Delete = true
}

func (f *Fleet) addToken(t *ShipToken) {
	for _, mine := range f.Tokens {
		if mine.DesignNum != t.DesignNum {
			continue
		}
		damage := mine.Damage*float64(mine.QuantityDamaged) + t.Damage*float64(t.QuantityDamaged)
		mine.Quantity += t.Quantity
		mine.QuantityDamaged += t.QuantityDamaged
		if mine.QuantityDamaged > 0 {
			mine.Damage = damage / float64(mine.QuantityDamaged)
		}
		return
	}
	f.Tokens = append(f.Tokens, &ShipToken{
		DesignNum:       t.DesignNum,
		Design:          t.Design,
		Quantity:        t.Quantity,
		Damage:          t.Damage,
		QuantityDamaged: t.QuantityDamaged,
	})
}

// SplitOff moves quantities of ships, keyed by design number, into a new
// fleet at the same position. Fuel follows fuel capacity and cargo the new
// fleet cannot hold stays behind. The new fleet has no number yet.
func (f *Fleet) SplitOff(id uuid.UUID, quantities map[int]int) *Fleet {
	before := f.Spec()
	split := &Fleet{
		ID:            id,
		PlayerNum:     f.PlayerNum,
		Position:      f.Position,
		Heading:       f.Heading,
		BattlePlanNum: f.BattlePlanNum,
		Orbiting:      f.Orbiting,
		Waypoints:     []*Waypoint{NewPositionWaypoint(f.Position, 0)},
	}
	if f.Orbiting != nil {
		split.Waypoints[0] = NewPlanetWaypoint(f.Orbiting, 0)
	}
	remaining := maps.Clone(quantities)
	for _, t := range f.Tokens {
		want := utils.Min(remaining[t.DesignNum], t.Quantity)
		if want <= 0 {
			continue
		}
		remaining[t.DesignNum] -= want
		damaged := t.QuantityDamaged * want / t.Quantity
		split.Tokens = append(split.Tokens, &ShipToken{
			DesignNum:       t.DesignNum,
			Design:          t.Design,
			Quantity:        want,
			Damage:          t.Damage,
			QuantityDamaged: damaged,
		})
		t.Quantity -= want
		t.QuantityDamaged -= damaged
		if t.QuantityDamaged == 0 {
			t.Damage = 0
		}
	}
	f.RemoveEmptyTokens()

	splitSpec := split.Spec()
	if before.FuelCapacity > 0 {
		moved := f.Fuel * splitSpec.FuelCapacity / before.FuelCapacity
		split.Fuel = moved
		f.Fuel -= moved
	}
	overflow := f.Cargo.Total() - f.Spec().CargoCapacity
	for _, c := range shared.CargoTypes {
		if overflow <= 0 {
			break
		}
		move := utils.Min(overflow, f.Cargo.Get(c))
		move = utils.Min(move, splitSpec.CargoCapacity-split.Cargo.Total())
		f.Cargo.Set(c, f.Cargo.Get(c)-move)
		split.Cargo.Set(c, split.Cargo.Get(c)+move)
		overflow -= move
	}
	return split
}

// TransferCargo moves up to want from one hold to another, limited by what
// from holds and the space to has. It returns what actually moved.
func TransferCargo(from, to *shared.Cargo, want shared.Cargo, space int) shared.Cargo {
	var moved shared.Cargo
	for _, c := range shared.CargoTypes {
		n := utils.Min(want.Get(c), from.Get(c))
		n = utils.Max(0, utils.Min(n, space))
		from.Set(c, from.Get(c)-n)
		to.Set(c, to.Get(c)+n)
		moved.Set(c, n)
		space -= n
	}
	return moved
}
