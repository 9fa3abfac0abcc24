package turn

import (
	"context"

	"github.com/andrescamacho/stars-go/internal/domain/game"
)

// phase is one named step of a turn. Every phase finishes over the whole
// world before the next starts.
type phase struct {
	name string
	run  func(ctx context.Context, t *turn) error
}

// step adapts a phase that cannot fail.
func step(fn func(t *turn)) func(context.Context, *turn) error {
	return func(_ context.Context, t *turn) error {
		fn(t)
		return nil
	}
}

// Phase names, in the order they run.
const (
	PhaseFleetAge            = "fleetAge"
	PhaseFleetScrap          = "fleetScrap"
	PhaseFleetUnload0        = "fleetUnload0"
	PhaseFleetColonize0      = "fleetColonize0"
	PhaseFleetLoad0          = "fleetLoad0"
	PhaseFleetOtherTasks     = "fleetOtherTasks"
	PhaseMysteryTraderMove   = "mysteryTraderMove"
	PhasePacketMove          = "packetMove"
	PhasePacketDecay         = "packetDecay"
	PhasePacketTerraform     = "packetTerraform"
	PhasePacketDamage        = "packetDamage"
	PhaseWormholeJiggle      = "wormholeJiggle"
	PhaseFleetMove           = "fleetMove"
	PhaseFleetGrow           = "fleetGrow"
	PhaseSalvageDecay        = "salvageDecay"
	PhaseWormholeDegrade     = "wormholeDegrade"
	PhaseMineFieldDetonate   = "mineFieldDetonate"
	PhasePlanetMine          = "planetMine"
	PhaseRemoteMine          = "remoteMine"
	PhasePlanetProduction    = "planetProduction"
	PhaseResearch            = "research"
	PhaseStealResearch       = "stealResearch"
	PhasePermaform           = "permaform"
	PhasePopGrowth           = "popGrowth"
	PhasePacketMove2         = "packetMove2"
	PhaseFleetRefuel         = "fleetRefuel"
	PhaseRandomEvents        = "randomEvents"
	PhaseFleetBattle         = "fleetBattle"
	PhaseFleetBomb           = "fleetBomb"
	PhaseMysteryTraderMeet   = "mysteryTraderMeet"
	PhaseFleetUnload1        = "fleetUnload1"
	PhaseFleetColonize1      = "fleetColonize1"
	PhaseFleetLoad1          = "fleetLoad1"
	PhaseMineLaying          = "mineLaying"
	PhaseFleetTransfer       = "fleetTransfer"
	PhaseFleetMerge          = "fleetMerge"
	PhaseInstaform           = "instaform"
	PhaseMineSweep           = "mineSweep"
	PhaseFleetRepair         = "fleetRepair"
	PhaseRemoteTerraform     = "remoteTerraform"
	PhasePlayerScan          = "playerScan"
	PhaseFleetPatrol         = "fleetPatrol"
	PhaseIdleFleetReport     = "idleFleetReport"
	PhaseCalculateScores     = "calculateScores"
	PhaseUpdatePlayerReports = "updatePlayerReports"
	PhaseCheckVictory        = "checkVictory"
)

var phases = []phase{
	{PhaseFleetAge, step((*turn).fleetAge)},
	{PhaseFleetScrap, step((*turn).fleetScrap)},

	{PhaseFleetUnload0, step(func(t *turn) { t.fleetUnload(t.currentTasks()) })},
	{PhaseFleetColonize0, step(func(t *turn) { t.fleetColonize(t.currentTasks()) })},
	{PhaseFleetLoad0, step(func(t *turn) { t.fleetLoad(t.currentTasks(), false) })},
	{PhaseFleetOtherTasks, step((*turn).fleetOtherTasks)},

	{PhaseMysteryTraderMove, step((*turn).mysteryTraderMove)},
	{PhasePacketMove, step(func(t *turn) { t.packetMove(false) })},
	{PhasePacketDecay, step((*turn).packetDecay)},
	{PhasePacketTerraform, step((*turn).packetTerraform)},

	{PhasePacketDamage, step((*turn).packetDamage)},
	{PhaseWormholeJiggle, step((*turn).wormholeJiggle)},
	{PhaseFleetMove, step((*turn).fleetMove)},

	{PhaseFleetGrow, step((*turn).fleetGrow)},
	{PhaseSalvageDecay, step((*turn).salvageDecay)},
	{PhaseWormholeDegrade, step((*turn).wormholeDegrade)},

	{PhaseMineFieldDetonate, step((*turn).mineFieldDetonate)},

	{PhasePlanetMine, func(ctx context.Context, t *turn) error { return t.planetMine(ctx) }},
	{PhaseRemoteMine, step((*turn).remoteMine)},

	{PhasePlanetProduction, step((*turn).planetProduction)},

	{PhaseResearch, step((*turn).researchPhase)},
	{PhaseStealResearch, step((*turn).stealResearch)},

	{PhasePermaform, step((*turn).permaform)},
	{PhasePopGrowth, func(ctx context.Context, t *turn) error { return t.popGrowth(ctx) }},
	{PhasePacketMove2, step(func(t *turn) { t.packetMove(true) })},
	{PhaseFleetRefuel, step((*turn).fleetRefuel)},

	{PhaseRandomEvents, step((*turn).randomEvents)},

	{PhaseFleetBattle, step((*turn).fleetBattle)},

	{PhaseFleetBomb, step((*turn).fleetBomb)},
	{PhaseMysteryTraderMeet, step((*turn).mysteryTraderMeet)},

	{PhaseFleetUnload1, step(func(t *turn) { t.fleetUnload(t.arrivedTasks()) })},
	{PhaseFleetColonize1, step(func(t *turn) { t.fleetColonize(t.arrivedTasks()) })},
	{PhaseFleetLoad1, step(func(t *turn) { t.fleetLoad(t.arrivedTasks(), true) })},

	{PhaseMineLaying, step((*turn).mineLaying)},
	{PhaseFleetTransfer, step((*turn).fleetTransfer)},
	{PhaseFleetMerge, step((*turn).fleetMerge)},
	{PhaseInstaform, step((*turn).instaform)},
	{PhaseMineSweep, step((*turn).mineSweep)},
	{PhaseFleetRepair, step((*turn).fleetRepair)},
	{PhaseRemoteTerraform, step((*turn).remoteTerraform)},

	{PhasePlayerScan, step((*turn).playerScan)},
	{PhaseFleetPatrol, step((*turn).fleetPatrol)},
	{PhaseIdleFleetReport, step((*turn).idleFleetReport)},

	{PhaseCalculateScores, step((*turn).calculateScores)},
	{PhaseUpdatePlayerReports, step((*turn).updatePlayerReports)},
	{PhaseCheckVictory, step((*turn).checkVictory)},
}

// PhaseNames lists every phase in run order.
func PhaseNames() []string {
	names := make([]string, len(phases))
	for i, p := range phases {
		names[i] = p.name
	}
	return names
}

// message delivers to a player, ignoring unknown player numbers.
func (t *turn) message(playerNum int, m game.Message) {
	if p := t.world.Player(playerNum); p != nil {
		p.AddMessage(m)
	}
}

// player returns the owner of something, logging when it is missing.
func (t *turn) player(num int, what string) *game.Player {
	p := t.world.Player(num)
	if p == nil {
		t.log.Warn().Int("player_num", num).Str("object", what).Msg("skipping object with unknown owner")
	}
	return p
}

// liveFleets is a snapshot of fleets not yet marked for deletion.
func (t *turn) liveFleets() []*game.Fleet {
	out := make([]*game.Fleet, 0, len(t.world.Fleets))
	for _, f := range t.world.Fleets {
		if !f.Delete {
			out = append(out, f)
		}
	}
	return out
}
