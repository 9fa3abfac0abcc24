package orders

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/andrescamacho/stars-go/internal/domain/game"
	"github.com/andrescamacho/stars-go/internal/domain/shared"
)

// immediate carries out a checked merge, split or cargo transfer. Transfers
// that cannot move the full amount are clamped and reported.
func (a *Applier) immediate(c *checker, o *ImmediateOrder) *Rejection {
	w := c.world
	f := w.Fleet(o.FleetID)
	switch o.Kind {
	case ImmediateMerge:
		f.Absorb(w.Fleet(o.TargetFleetID))
	case ImmediateSplit:
		quantities := make(map[int]int, len(o.Tokens))
		for _, ts := range o.Tokens {
			quantities[ts.DesignNum] += ts.Quantity
		}
		w.AddFleet(f.SplitOff(a.random.GUID(), quantities))
	case ImmediateLoad, ImmediateUnload:
		moved, r := a.transfer(c, f, o)
		if r != nil {
			return r
		}
		if moved != o.Cargo {
			return c.rejectp(fmt.Sprintf("%s fleet", o.Kind), fmt.Sprintf("%s moved only %s of %s", f.Name, moved, o.Cargo))
		}
	}
	return nil
}

func (a *Applier) transfer(c *checker, f *game.Fleet, o *ImmediateOrder) (shared.Cargo, *Rejection) {
	w := c.world
	if o.TargetPlanetID == uuid.Nil {
		target := w.Fleet(o.TargetFleetID)
		if o.Kind == ImmediateLoad {
			return game.TransferCargo(&target.Cargo, &f.Cargo, o.Cargo, f.AvailableCargoSpace()), nil
		}
		return game.TransferCargo(&f.Cargo, &target.Cargo, o.Cargo, target.AvailableCargoSpace()), nil
	}

	p := w.Planet(o.TargetPlanetID)
	if o.Kind == ImmediateUnload && o.Cargo.Colonists > 0 && !p.OwnedBy(c.player.Num) {
		return shared.Cargo{}, c.rejectp("unload fleet", fmt.Sprintf("colonists can only be unloaded at your own planets, not %s", p.Name))
	}
	// planets keep people as population, holds carry them in units of 100
	surface := p.Cargo
	surface.Colonists = p.Population / 100
	var moved shared.Cargo
	if o.Kind == ImmediateLoad {
		moved = game.TransferCargo(&surface, &f.Cargo, o.Cargo, f.AvailableCargoSpace())
	} else {
		moved = game.TransferCargo(&f.Cargo, &surface, o.Cargo, math.MaxInt)
	}
	p.Population = surface.Colonists*100 + p.Population%100
	surface.Colonists = 0
	p.Cargo = surface
	if p.Owned() && p.Population == 0 {
		p.Abandon()
	}
	return moved, nil
}
