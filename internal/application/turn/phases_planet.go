package turn

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/andrescamacho/stars-go/internal/domain/game"
	"github.com/andrescamacho/stars-go/internal/domain/rules"
	"github.com/andrescamacho/stars-go/internal/domain/shared"
	"github.com/andrescamacho/stars-go/pkg/utils"
)

func (t *turn) ownedPlanets() []*game.Planet {
	var out []*game.Planet
	for _, p := range t.world.Planets {
		if p.Owned() && t.world.Player(p.PlayerNum) != nil {
			out = append(out, p)
		}
	}
	return out
}

// eachPlanet runs fn over planets on up to t.workers goroutines. fn may
// write only the planet it is given and slot i of any shared slice.
func (t *turn) eachPlanet(ctx context.Context, planets []*game.Planet, fn func(i int, p *game.Planet)) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(t.workers)
	for i, p := range planets {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			fn(i, p)
			return nil
		})
	}
	return g.Wait()
}

// planetMine extracts minerals on every inhabited planet.
func (t *turn) planetMine(ctx context.Context) error {
	return t.eachPlanet(ctx, t.ownedPlanets(), func(_ int, p *game.Planet) {
		p.Mine(t.rules, p.OperableMines(t.rules))
	})
}

// remoteMine works unowned planets with fleets ordered to mine them. The
// minerals stay on the planet's surface.
func (t *turn) remoteMine() {
	for _, f := range t.liveFleets() {
		p := f.Orbiting
		if f.CurrentWaypoint().Task != game.TaskRemoteMining || p == nil || p.Owned() {
			continue
		}
		owner := t.world.Player(f.PlayerNum)
		rate := f.Spec().MiningRate
		if owner == nil || rate == 0 {
			continue
		}
		mines := int(float64(rate) * owner.Race.RemoteMiningFactor())
		extracted := p.Mine(t.rules, mines)
		t.message(f.PlayerNum, game.NewFleetMessage(game.MessageRemoteMined, f,
			fmt.Sprintf("%s mined %s from %s.", f.Name, extracted, p.Name)))
	}
}

// planetProduction runs every planet's queue and registers what it built.
func (t *turn) planetProduction() {
	for _, p := range t.ownedPlanets() {
		player := t.world.Player(p.PlayerNum)
		producer := &game.Producer{Rules: t.rules, Techs: t.techs, Player: player}
		result := producer.Produce(p)

		t.research[player.Num] += result.ResearchResources
		for _, err := range result.MissingReferences {
			t.log.Warn().Err(err).Str("planet", p.Name).Msg("skipping production item")
		}
		for _, m := range result.Messages {
			player.AddMessage(m)
		}
		for _, batch := range result.Ships {
			t.launchShips(p, player, batch)
		}
		if result.Starbase != nil {
			t.world.AddFleet(&game.Fleet{
				ID:        t.random.GUID(),
				Name:      fmt.Sprintf("%s Starbase", p.Name),
				PlayerNum: player.Num,
				Position:  p.Position,
				Tokens:    []*game.ShipToken{{DesignNum: result.Starbase.Num, Design: result.Starbase, Quantity: 1}},
				Fuel:      result.Starbase.Spec.FuelCapacity,
				Starbase:  true,
				Orbiting:  p,
			})
			player.AddMessage(game.NewPlanetMessage(game.MessageBuiltStarbase, p,
				fmt.Sprintf("%s has built a new %s.", p.Name, result.Starbase.Name)))
		}
		for _, cargo := range result.Packets {
			t.launchPacket(p, player, cargo)
		}
		if summary := builtSummary(result.Built); summary != "" {
			player.AddMessage(game.NewPlanetMessage(game.MessageBuiltBuildings, p,
				fmt.Sprintf("%s has built %s.", p.Name, summary)))
		}
	}
}

func builtSummary(built map[game.QueueItemType]int) string {
	var parts []string
	for _, kind := range []game.QueueItemType{
		game.QueueItemMine, game.QueueItemFactory, game.QueueItemDefense,
		game.QueueItemTerraform, game.QueueItemAlchemy, game.QueueItemScanner,
	} {
		if n := built[kind]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, kind))
		}
	}
	return strings.Join(parts, ", ")
}

func (t *turn) launchShips(p *game.Planet, player *game.Player, batch game.BuiltShips) {
	num := t.world.NextFleetNum(player.Num)
	f := &game.Fleet{
		ID:        t.random.GUID(),
		Num:       num,
		Name:      fmt.Sprintf("%s #%d", batch.Design.Name, num),
		PlayerNum: player.Num,
		Position:  p.Position,
		Tokens:    []*game.ShipToken{{DesignNum: batch.Design.Num, Design: batch.Design, Quantity: batch.Quantity}},
		Fuel:      batch.Design.Spec.FuelCapacity * batch.Quantity,
		Orbiting:  p,
		Waypoints: []*game.Waypoint{game.NewPlanetWaypoint(p, 0)},
	}
	f.Waypoints[0].Processed = true
	t.world.AddFleet(f)
	player.AddMessage(game.NewFleetMessage(game.MessageBuiltFleet, f,
		fmt.Sprintf("%s has built %d %s.", p.Name, batch.Quantity, batch.Design.Name)))
}

// launchPacket flings a packet at the planet's packet target. Without a
// target the minerals go back on the surface.
func (t *turn) launchPacket(p *game.Planet, player *game.Player, cargo shared.Cargo) {
	target := t.world.Planet(p.PacketTargetID)
	if target == nil || p.Starbase == nil {
		p.Cargo = p.Cargo.Add(cargo)
		player.AddMessage(game.NewPlanetMessage(game.MessageProductionItemSkipped, p,
			fmt.Sprintf("%s has no packet destination; the minerals were returned.", p.Name)))
		return
	}
	driver := p.Starbase.Spec().PacketSpeed
	warp := p.PacketSpeed
	if warp <= 0 {
		warp = driver
	}
	t.world.AddMineralPacket(&game.MineralPacket{
		ID:             t.random.GUID(),
		PlayerNum:      player.Num,
		Position:       p.Position,
		Cargo:          cargo,
		WarpSpeed:      warp,
		SafeWarpSpeed:  driver,
		TargetPlanetID: target.ID,
	})
	player.AddMessage(game.NewPlanetMessage(game.MessagePacketLaunched, p,
		fmt.Sprintf("%s launched a packet of %s at %s.", p.Name, cargo, target.Name)))
}

// researchPhase spends each player's research resources for the year.
func (t *turn) researchPhase() {
	for _, player := range t.world.Players {
		gained := player.Research(t.rules, t.research[player.Num])
		if len(gained) == 0 {
			continue
		}
		player.ComputeDesignSpecs(t.rules, t.techs)
		for _, field := range gained {
			player.AddMessage(game.NewMessage(game.MessageTechLevelResearched,
				fmt.Sprintf("Your scientists reached %s level %d.", field, player.TechLevels.Get(field))))
		}
	}
}

// stealResearch gives research thieves a share of what others spent this
// year in fields where anyone is ahead of them. Amounts are worked out
// before any are paid so thieves do not steal from each other's loot.
func (t *turn) stealResearch() {
	type loot struct {
		player *game.Player
		amount rules.TechLevel
	}
	var pending []loot
	for _, thief := range t.world.Players {
		if !thief.Race.StealsResearch() || len(t.world.Players) < 2 {
			continue
		}
		var amount rules.TechLevel
		for _, field := range rules.TechFields {
			spent, ahead := 0, false
			for _, other := range t.world.Players {
				if other == thief {
					continue
				}
				spent += other.ResearchSpent.Get(field)
				ahead = ahead || other.TechLevels.Get(field) > thief.TechLevels.Get(field)
			}
			if ahead {
				average := spent / (len(t.world.Players) - 1)
				amount.Set(field, average*t.rules.StealResearchPercent/100)
			}
		}
		pending = append(pending, loot{player: thief, amount: amount})
	}
	for _, l := range pending {
		var gained []rules.TechField
		for _, field := range rules.TechFields {
			if n := l.amount.Get(field); n > 0 {
				gained = append(gained, l.player.AddResearch(t.rules, field, n)...)
			}
		}
		if l.amount.Sum() > 0 {
			l.player.AddMessage(game.NewMessage(game.MessageResearchStolen,
				fmt.Sprintf("Your spies stole %d research resources.", l.amount.Sum())))
		}
		if len(gained) > 0 {
			l.player.ComputeDesignSpecs(t.rules, t.techs)
		}
	}
}

// permaform lets races that reshape worlds permanently move a base hab one
// step toward their ideal, more likely on populous planets.
func (t *turn) permaform() {
	for _, p := range t.ownedPlanets() {
		player := t.world.Player(p.PlayerNum)
		if !player.Race.Permaforms() {
			continue
		}
		chance := t.rules.PermaformChance
		if t.rules.PermaformPopulation > 0 {
			chance *= utils.ClampFloat(float64(p.Population)/float64(t.rules.PermaformPopulation), 0, 1)
		}
		if !t.random.Chance(chance) {
			continue
		}
		hab := rules.HabTypes[t.random.Intn(len(rules.HabTypes))]
		center := player.Race.HabCenter().Get(hab)
		base := p.BaseHab.Get(hab)
		if player.Race.Immune(hab) || base == center {
			continue
		}
		delta := 1
		if base > center {
			delta = -1
		}
		p.BaseHab.Set(hab, base+delta)
		p.Hab.Set(hab, p.Hab.Get(hab)+delta)
		player.AddMessage(game.NewPlanetMessage(game.MessagePermaform, p,
			fmt.Sprintf("Your people have permanently improved the %s of %s.", hab, p.Name)))
	}
}

// popGrowth grows every colony. Abandonments are reported in planet order
// after the fan-out.
func (t *turn) popGrowth(ctx context.Context) error {
	planets := t.ownedPlanets()
	owners := make([]*game.Player, len(planets))
	for i, p := range planets {
		owners[i] = t.world.Player(p.PlayerNum)
	}
	abandoned := make([]bool, len(planets))
	err := t.eachPlanet(ctx, planets, func(i int, p *game.Planet) {
		p.GrowPopulation(&owners[i].Race, t.rules)
		abandoned[i] = !p.Owned()
	})
	if err != nil {
		return err
	}
	for i, p := range planets {
		if abandoned[i] {
			owners[i].AddMessage(game.NewPlanetMessage(game.MessagePlanetAbandoned, p,
				fmt.Sprintf("The last of your colonists on %s have died out.", p.Name)))
		}
	}
	return nil
}

// fleetGrow grows colonists carried by races that breed in cargo holds.
func (t *turn) fleetGrow() {
	for _, f := range t.liveFleets() {
		owner := t.world.Player(f.PlayerNum)
		if owner == nil || !owner.Race.GrowsInCargo() || f.Cargo.Colonists <= 0 {
			continue
		}
		growth := f.Cargo.Colonists * owner.Race.GrowthRate / 200
		f.Cargo.Colonists += utils.Min(growth, f.AvailableCargoSpace())
	}
}

// fleetRefuel tops up fleets orbiting a planet of their own with a
// starbase.
func (t *turn) fleetRefuel() {
	for _, f := range t.liveFleets() {
		p := f.Orbiting
		if f.Starbase || p == nil || p.Starbase == nil || !p.OwnedBy(f.PlayerNum) {
			continue
		}
		capacity := f.Spec().FuelCapacity
		if t.rules.StarbaseRefuelAmount < 0 {
			f.Fuel = capacity
			continue
		}
		f.Fuel = utils.Min(capacity, f.Fuel+t.rules.StarbaseRefuelAmount)
	}
}

// instaform sets the hab of worlds owned by instaforming races as close to
// ideal as their terraforming tech reaches.
func (t *turn) instaform() {
	for _, p := range t.ownedPlanets() {
		player := t.world.Player(p.PlayerNum)
		if !player.Race.Instaforms() {
			continue
		}
		ability := func(h rules.HabType) int { return t.techs.TerraformAbility(player.TechLevels, h) }
		steps := 0
		for {
			if _, ok := p.TerraformOneStep(&player.Race, ability); !ok {
				break
			}
			steps++
		}
		if steps > 0 {
			player.AddMessage(game.NewPlanetMessage(game.MessageTerraformed, p,
				fmt.Sprintf("%s was instantly terraformed by %d.", p.Name, steps)))
		}
	}
}

// remoteTerraform lets terraforming fleets improve friendly planets toward
// the planet owner's ideal, limited by the fleet owner's tech.
func (t *turn) remoteTerraform() {
	for _, f := range t.liveFleets() {
		p := f.Orbiting
		rate := f.Spec().TerraformRate
		if p == nil || rate <= 0 || !p.Owned() {
			continue
		}
		fleetOwner := t.world.Player(f.PlayerNum)
		planetOwner := t.world.Player(p.PlayerNum)
		if fleetOwner == nil || planetOwner == nil || fleetOwner.RelationTo(p.PlayerNum) != game.RelationFriend {
			continue
		}
		ability := func(h rules.HabType) int { return t.techs.TerraformAbility(fleetOwner.TechLevels, h) }
		steps := 0
		for i := 0; i < rate; i++ {
			if _, ok := p.TerraformOneStep(&planetOwner.Race, ability); !ok {
				break
			}
			steps++
		}
		if steps > 0 {
			t.message(f.PlayerNum, game.NewFleetMessage(game.MessageTerraformed, f,
				fmt.Sprintf("%s terraformed %s by %d.", f.Name, p.Name, steps)))
		}
	}
}
