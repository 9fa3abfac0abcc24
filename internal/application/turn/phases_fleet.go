package turn

import (
	"fmt"
	"slices"

	"github.com/andrescamacho/stars-go/internal/domain/game"
	"github.com/andrescamacho/stars-go/pkg/utils"
)

// fleetBattle fights every battle site and keeps the records for reports.
func (t *turn) fleetBattle() {
	records := t.battleEngine().ResolveAll(t.world)
	for _, r := range records {
		t.world.AddBattleRecord(r)
	}
	if len(records) > 0 {
		t.log.Debug().Int("battles", len(records)).Msg("battles resolved")
	}
}

// fleetBomb lets bombers orbiting enemy worlds without a starbase drop
// their bombs, all attackers of a planet together.
func (t *turn) fleetBomb() {
	for _, p := range t.ownedPlanets() {
		if p.Starbase != nil && !p.Starbase.Delete {
			continue
		}
		var bombs []game.BombSlot
		var attackers []*game.Fleet
		for _, f := range t.liveFleets() {
			if f.Orbiting != p || f.PlayerNum == p.PlayerNum {
				continue
			}
			owner := t.world.Player(f.PlayerNum)
			spec := f.Spec()
			if owner == nil || !spec.Bomber || !owner.IsEnemy(p.PlayerNum) {
				continue
			}
			bombs = append(bombs, spec.Bombs...)
			attackers = append(attackers, f)
		}
		if len(bombs) == 0 {
			continue
		}
		defender := t.world.Player(p.PlayerNum)
		coverage := p.DefenseCoverage(t.techs.BestDefense(defender.TechLevels))
		result := p.Bomb(bombs, coverage)
		text := fmt.Sprintf("%s was bombed: %d colonists killed, %d defenses, %d mines and %d factories destroyed.",
			p.Name, result.Killed, result.DefensesDestroyed, result.MinesDestroyed, result.FactoriesDestroyed)
		t.message(defender.Num, game.NewPlanetMessage(game.MessageBombed, p, text))
		informed := map[int]bool{}
		for _, f := range attackers {
			if !informed[f.PlayerNum] {
				informed[f.PlayerNum] = true
				t.message(f.PlayerNum, game.NewPlanetMessage(game.MessageBombed, p, text))
			}
		}
	}
}

// fleetTransfer hands fleets to other players. The receiver gets copies of
// the designs involved.
func (t *turn) fleetTransfer() {
	for _, f := range t.liveFleets() {
		wp := f.CurrentWaypoint()
		if f.Starbase || wp.Task != game.TaskTransferFleet {
			continue
		}
		wp.Task = game.TaskNone
		giver := t.world.Player(f.PlayerNum)
		receiver := t.world.Player(wp.TransferToPlayer)
		if giver == nil || receiver == nil || receiver == giver {
			continue
		}
		for _, token := range f.Tokens {
			d := t.receiveDesign(receiver, token.Design)
			token.Design = d
			token.DesignNum = d.Num
		}
		name := f.Name
		f.PlayerNum = receiver.Num
		f.Num = t.world.NextFleetNum(receiver.Num)
		f.BattlePlanNum = 0
		f.RepeatOrders = false
		f.Waypoints = []*game.Waypoint{game.NewPositionWaypoint(f.Position, 0)}
		f.Waypoints[0].Processed = true
		giver.AddMessage(game.NewFleetMessage(game.MessageFleetTransferred, f,
			fmt.Sprintf("%s has been given to %s.", name, receiver.Name)))
		receiver.AddMessage(game.NewFleetMessage(game.MessageFleetTransferred, f,
			fmt.Sprintf("%s has given you %s.", giver.Name, name)))
	}
}

// receiveDesign finds the receiver's copy of a design or adds one.
func (t *turn) receiveDesign(receiver *game.Player, d *game.ShipDesign) *game.ShipDesign {
	for _, own := range receiver.Designs {
		if !own.Deleted && own.Hull == d.Hull && own.Name == d.Name && slices.Equal(own.Slots, d.Slots) {
			return own
		}
	}
	copied := &game.ShipDesign{
		Num:       receiver.NextDesignNum(),
		PlayerNum: receiver.Num,
		Name:      d.Name,
		Hull:      d.Hull,
		Slots:     slices.Clone(d.Slots),
		Spec:      d.Spec,
	}
	if spec, err := game.ComputeSpec(copied, t.rules, t.techs, &receiver.Race, receiver.TechLevels); err == nil {
		copied.Spec = spec
	} else {
		t.log.Warn().Err(err).Str("design", d.Name).Msg("keeping donor spec for transferred design")
	}
	receiver.Designs = append(receiver.Designs, copied)
	return copied
}

// fleetMerge folds fleets into the fleet their waypoint names.
func (t *turn) fleetMerge() {
	for _, f := range t.liveFleets() {
		wp := f.CurrentWaypoint()
		if f.Delete || wp.Task != game.TaskMergeWithFleet {
			continue
		}
		wp.Task = game.TaskNone
		target := t.world.Fleet(wp.TargetID)
		if target == nil || target.Delete || target == f || target.Starbase ||
			target.PlayerNum != f.PlayerNum || target.Position != f.Position {
			t.message(f.PlayerNum, game.NewFleetMessage(game.MessageFleetMerged, f,
				fmt.Sprintf("%s could not find the fleet it was ordered to merge with.", f.Name)))
			continue
		}
		target.Absorb(f)
		t.message(f.PlayerNum, game.NewFleetMessage(game.MessageFleetMerged, target,
			fmt.Sprintf("%s has merged into %s.", f.Name, target.Name)))
	}
}

// fleetRepair mends armor. Starbases repair fastest, then fleets at a
// friendly starbase, at an own planet, holding still, and moving.
func (t *turn) fleetRepair() {
	rates := t.rules.RepairPercent
	for _, f := range t.liveFleets() {
		p := f.Orbiting
		var rate int
		switch {
		case f.Starbase:
			rate = rates.StarbaseSelf
		case p != nil && p.OwnedBy(f.PlayerNum) && p.Starbase != nil:
			rate = rates.Starbase
		case p != nil && p.OwnedBy(f.PlayerNum):
			rate = rates.OwnPlanet
		case t.moved[f]:
			rate = rates.Moving
		default:
			rate = rates.Stationary
		}
		for _, token := range f.Tokens {
			token.RepairArmor(rate)
		}
	}
}

// playerScan rebuilds every player's view of the world.
func (t *turn) playerScan() {
	t.discoverer.Discover(t.world)
}

// fleetPatrol sends idle patrolling fleets after the nearest visible enemy
// fleet within range.
func (t *turn) fleetPatrol() {
	for _, f := range t.liveFleets() {
		wp := f.CurrentWaypoint()
		if f.Starbase || wp.Task != game.TaskPatrol || f.Destination() != nil {
			continue
		}
		owner := t.world.Player(f.PlayerNum)
		if owner == nil {
			continue
		}
		reach := float64(wp.PatrolRange)
		if reach <= 0 {
			reach = float64(t.rules.PatrolRange)
		}
		var best *game.Fleet
		bestDist := 0.0
		for _, seen := range owner.Intel.Fleets {
			if seen.PlayerNum == owner.Num || !owner.IsEnemy(seen.PlayerNum) {
				continue
			}
			d := f.Position.DistanceTo(seen.Position)
			if d > reach || (best != nil && d >= bestDist) {
				continue
			}
			if target := t.world.Fleet(seen.ID); target != nil && !target.Delete {
				best, bestDist = target, d
			}
		}
		if best == nil {
			continue
		}
		warp := wp.PatrolWarp
		if warp <= 0 {
			warp = utils.Max(1, f.Spec().IdealSpeed)
		}
		f.Waypoints = append(f.Waypoints, &game.Waypoint{
			Position:     best.Position,
			TargetType:   game.MapObjectFleet,
			TargetID:     best.ID,
			TargetName:   best.Name,
			WarpSpeed:    warp,
			TaskComplete: true,
		})
		owner.AddMessage(game.NewFleetMessage(game.MessagePatrol, f,
			fmt.Sprintf("%s is intercepting %s.", f.Name, best.Name)))
	}
}

// idleFleetReport tells players about fleets that arrived with nothing
// left to do.
func (t *turn) idleFleetReport() {
	for _, f := range t.liveFleets() {
		if f.Starbase || !t.arrived[f] || f.Destination() != nil || f.CurrentWaypoint().Task != game.TaskNone {
			continue
		}
		t.message(f.PlayerNum, game.NewFleetMessage(game.MessageIdleFleet, f,
			fmt.Sprintf("%s has arrived and is waiting for orders.", f.Name)))
	}
}

func (t *turn) calculateScores() {
	game.ComputeScores(t.world)
}

func (t *turn) updatePlayerReports() {
	t.discoverer.UpdateScores(t.world)
}

// checkVictory declares winners once and tells everyone.
func (t *turn) checkVictory() {
	for _, victor := range game.CheckVictory(t.world) {
		t.log.Info().Int("player_num", victor.Num).Str("player", victor.Name).Msg("victor declared")
		for _, p := range t.world.Players {
			p.AddMessage(game.NewMessage(game.MessageVictory,
				fmt.Sprintf("%s has won the game.", victor.Name)))
		}
	}
}
