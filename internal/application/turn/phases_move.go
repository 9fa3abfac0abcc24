package turn

import (
	"fmt"
	"math"

	"github.com/andrescamacho/stars-go/internal/domain/game"
	"github.com/andrescamacho/stars-go/internal/domain/shared"
	"github.com/andrescamacho/stars-go/pkg/utils"
)

// fleetMove moves every fleet with somewhere to go. Fleets held by an
// unfinished wait-for-percent load stay put.
func (t *turn) fleetMove() {
	for _, f := range t.liveFleets() {
		if f.Starbase {
			continue
		}
		dest := f.Destination()
		if dest == nil || !f.CurrentWaypoint().TaskComplete {
			f.WarpSpeed = 0
			continue
		}
		owner := t.player(f.PlayerNum, f.Name)
		if owner == nil {
			continue
		}
		t.chase(f, dest)
		if dest.WarpSpeed >= t.rules.StargateWarp {
			t.gate(f, owner, dest)
			continue
		}
		t.move(f, owner, dest)
	}
}

// chase follows a target fleet or wormhole to where it is now. A target
// that is gone leaves the waypoint where it was last seen.
func (t *turn) chase(f *game.Fleet, dest *game.Waypoint) {
	switch dest.TargetType {
	case game.MapObjectFleet:
		target := t.world.Fleet(dest.TargetID)
		if target == nil || target.Delete {
			dest.TargetType = game.MapObjectNone
			return
		}
		dest.Position = target.Position
	case game.MapObjectWormhole:
		wh := t.world.Wormhole(dest.TargetID)
		if wh == nil || wh.Delete {
			dest.TargetType = game.MapObjectNone
			return
		}
		dest.Position = wh.Position
	}
}

func (t *turn) move(f *game.Fleet, owner *game.Player, dest *game.Waypoint) {
	race := &owner.Race
	remaining := f.Position.DistanceTo(dest.Position)
	warp := dest.WarpSpeed
	if warp <= 0 {
		warp = utils.Max(1, f.Spec().IdealSpeed)
	}

	dist := math.Min(game.TravelDistance(warp), remaining)
	fuel := f.FuelCost(race, t.rules, warp, dist)
	for fuel > f.Fuel && warp > 1 {
		warp--
		dist = math.Min(game.TravelDistance(warp), remaining)
		fuel = f.FuelCost(race, t.rules, warp, dist)
	}
	if fuel > f.Fuel {
		warp = t.rules.NoFuelWarp
		dist = math.Min(game.TravelDistance(warp), remaining)
		fuel = 0
		t.message(f.PlayerNum, game.NewFleetMessage(game.MessageFuelLow, f,
			fmt.Sprintf("%s is out of fuel and drifting at warp %d.", f.Name, warp)))
	} else if warp < dest.WarpSpeed {
		t.message(f.PlayerNum, game.NewFleetMessage(game.MessageFuelLow, f,
			fmt.Sprintf("%s is low on fuel and slowed to warp %d.", f.Name, warp)))
	}

	from := f.Position
	to := from.MoveToward(dest.Position, dist)
	if stop, hit := t.mineFieldCheck(f, owner, from, to, warp); hit {
		to = stop
		dist = from.DistanceTo(stop)
		fuel = utils.Min(fuel, f.FuelCost(race, t.rules, warp, dist))
	}

	f.Fuel -= fuel
	f.PreviousPosition = from
	f.Position = to
	f.Heading = dest.Position.Subtract(from).Normalized()
	f.WarpSpeed = warp
	f.Orbiting = nil
	t.moved[f] = true

	if f.Delete {
		return
	}
	if to == dest.Position {
		t.arrive(f, dest)
	}
}

// arrive makes the reached waypoint current. Repeating routes move the
// waypoint just left to the end.
func (t *turn) arrive(f *game.Fleet, dest *game.Waypoint) {
	if dest.TargetType == game.MapObjectWormhole {
		t.wormholeJump(f, dest)
	}
	left := f.Waypoints[0]
	f.Waypoints = f.Waypoints[1:]
	if f.RepeatOrders {
		f.Waypoints = append(f.Waypoints, left)
	}
	f.Waypoints[0].ResetForArrival()
	f.Orbiting = t.world.PlanetAt(f.Position)
	t.arrived[f] = true
	t.message(f.PlayerNum, game.NewFleetMessage(game.MessageFleetArrived, f,
		fmt.Sprintf("%s has arrived at %s.", f.Name, describe(dest))))
}

// wormholeJump carries a fleet to the companion endpoint.
func (t *turn) wormholeJump(f *game.Fleet, dest *game.Waypoint) {
	wh := t.world.Wormhole(dest.TargetID)
	if wh == nil {
		return
	}
	other := t.world.Wormhole(wh.DestinationID)
	if other == nil {
		t.log.Warn().Str("wormhole", wh.ID.String()).Msg("wormhole has no companion")
		return
	}
	f.Position = other.Position
	dest.Position = other.Position
	dest.TargetID = other.ID
	t.message(f.PlayerNum, game.NewFleetMessage(game.MessageWormholeJump, f,
		fmt.Sprintf("%s passed through a wormhole to %s.", f.Name, other.Position)))
}

func describe(wp *game.Waypoint) string {
	if wp.TargetName != "" {
		return wp.TargetName
	}
	return wp.Position.String()
}

// gate jumps a fleet between two owned stargates. Fleets beyond a gate's
// safe mass or range lose ships in proportion to the overload.
func (t *turn) gate(f *game.Fleet, owner *game.Player, dest *game.Waypoint) {
	source := f.Orbiting
	target := t.world.PlanetAt(dest.Position)
	fail := func(reason string) {
		t.message(f.PlayerNum, game.NewFleetMessage(game.MessageStargate, f,
			fmt.Sprintf("%s could not use a stargate: %s.", f.Name, reason)))
		f.WarpSpeed = 0
	}
	if source == nil || target == nil {
		fail("stargates only link planets")
		return
	}
	if !t.hasGate(source, owner) || !t.hasGate(target, owner) {
		fail("both ends need a friendly stargate")
		return
	}

	spec := source.Starbase.Spec()
	dist := source.Position.DistanceTo(target.Position)
	mass := f.Spec().Mass
	overload := 0.0
	if spec.GateSafeMass > 0 && mass > spec.GateSafeMass {
		overload = math.Max(overload, float64(mass)/float64(spec.GateSafeMass)-1)
	}
	if spec.GateSafeRange > 0 && dist > float64(spec.GateSafeRange) {
		overload = math.Max(overload, dist/float64(spec.GateSafeRange)-1)
	}
	lost := 0
	if overload > 0 {
		fraction := math.Min(1, overload)
		for _, token := range f.Tokens {
			n := int(math.Ceil(float64(token.Quantity) * fraction))
			token.Quantity -= n
			lost += n
		}
		f.RemoveEmptyTokens()
		if !f.HasTokens() {
			f.Delete = true
		}
	}

	f.PreviousPosition = f.Position
	f.Position = target.Position
	f.Heading = target.Position.Subtract(source.Position).Normalized()
	f.WarpSpeed = dest.WarpSpeed
	t.moved[f] = true
	text := fmt.Sprintf("%s jumped from %s to %s.", f.Name, source.Name, target.Name)
	if lost > 0 {
		text = fmt.Sprintf("%s jumped from %s to %s, losing %d ships to the overload.", f.Name, source.Name, target.Name, lost)
	}
	t.message(f.PlayerNum, game.NewFleetMessage(game.MessageStargate, f, text))
	if !f.Delete {
		t.arrive(f, dest)
	}
}

func (t *turn) hasGate(p *game.Planet, owner *game.Player) bool {
	if p.Starbase == nil || p.Starbase.Delete {
		return false
	}
	if p.PlayerNum != owner.Num && owner.RelationTo(p.PlayerNum) != game.RelationFriend {
		return false
	}
	spec := p.Starbase.Spec()
	return spec.GateSafeMass != 0 || spec.GateSafeRange != 0
}

// mineFieldCheck walks the path a light-year at a time through every
// hostile field the fleet crosses above the field's safe speed. A hit stops
// the fleet where it happened.
func (t *turn) mineFieldCheck(f *game.Fleet, owner *game.Player, from, to shared.Vector, warp int) (shared.Vector, bool) {
	length := from.DistanceTo(to)
	if length == 0 {
		return to, false
	}
	for _, field := range t.world.MineFields {
		if field.Delete || !owner.IsEnemy(field.PlayerNum) || warp <= field.SafeWarp(t.rules) {
			continue
		}
		chance := t.rules.MineHitChancePerWarp * float64(warp)
		for d := 0.0; d <= length; d++ {
			point := from.MoveToward(to, d)
			if !field.Contains(point) {
				continue
			}
			if !t.random.Chance(chance) {
				continue
			}
			t.mineHit(f, field)
			return point, true
		}
	}
	return to, false
}

func (t *turn) mineHit(f *game.Fleet, field *game.MineField) {
	lost := t.damageFleet(f, t.rules.MineDamagePerShip)
	reduce := utils.Max(1, field.NumMines*t.rules.MineFieldHitReductionPercent/100)
	field.NumMines -= reduce
	if field.NumMines <= 0 {
		field.Delete = true
	}
	text := fmt.Sprintf("%s struck a minefield and lost %d ships.", f.Name, lost)
	t.message(f.PlayerNum, game.NewFleetMessage(game.MessageMineFieldHit, f, text))
	t.message(field.PlayerNum, game.NewMessage(game.MessageMineFieldHit, text))
}
