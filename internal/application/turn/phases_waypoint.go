package turn

import (
	"fmt"
	"math"

	"github.com/andrescamacho/stars-go/internal/domain/game"
	"github.com/andrescamacho/stars-go/internal/domain/shared"
	"github.com/andrescamacho/stars-go/pkg/utils"
)

// invasion is colonists dropped on an enemy planet, fought out in the
// colonize phase.
type invasion struct {
	fleet     *game.Fleet
	planet    *game.Planet
	colonists int // people
}

// currentTasks are fleets whose current waypoint still has work to do.
func (t *turn) currentTasks() []*game.Fleet {
	var out []*game.Fleet
	for _, f := range t.liveFleets() {
		if f.Starbase {
			continue
		}
		wp := f.CurrentWaypoint()
		if !wp.Processed || !wp.TaskComplete {
			out = append(out, f)
		}
	}
	return out
}

// arrivedTasks are fleets that reached a new waypoint this year.
func (t *turn) arrivedTasks() []*game.Fleet {
	var out []*game.Fleet
	for _, f := range t.liveFleets() {
		if t.arrived[f] && !f.CurrentWaypoint().Processed {
			out = append(out, f)
		}
	}
	return out
}

// cargoSite is whatever a transport task exchanges cargo with.
type cargoSite struct {
	planet  *game.Planet
	fleet   *game.Fleet
	salvage *game.Salvage
}

func (s cargoSite) available(c shared.CargoType) int {
	switch {
	case s.planet != nil:
		if c == shared.Colonists {
			return s.planet.Population / 100
		}
		return s.planet.Cargo.Get(c)
	case s.fleet != nil:
		return s.fleet.Cargo.Get(c)
	case s.salvage != nil:
		return s.salvage.Cargo.Get(c)
	}
	return 0
}

func (s cargoSite) space() int {
	if s.fleet != nil {
		return s.fleet.AvailableCargoSpace()
	}
	return math.MaxInt32
}

func (s cargoSite) add(c shared.CargoType, n int) {
	switch {
	case s.planet != nil:
		if c == shared.Colonists {
			s.planet.Population += n * 100
			return
		}
		s.planet.Cargo.Set(c, s.planet.Cargo.Get(c)+n)
	case s.fleet != nil:
		s.fleet.Cargo.Set(c, s.fleet.Cargo.Get(c)+n)
	case s.salvage != nil:
		s.salvage.Cargo.Set(c, s.salvage.Cargo.Get(c)+n)
	}
}

// transportSite resolves what a fleet's current waypoint trades with.
func (t *turn) transportSite(f *game.Fleet, wp *game.Waypoint) (cargoSite, bool) {
	switch wp.TargetType {
	case game.MapObjectFleet:
		other := t.world.Fleet(wp.TargetID)
		if other == nil || other.Delete || other == f || other.Position != f.Position {
			return cargoSite{}, false
		}
		return cargoSite{fleet: other}, true
	case game.MapObjectSalvage:
		for _, s := range t.world.Salvages {
			if s.ID == wp.TargetID && !s.Delete && s.Position == f.Position {
				return cargoSite{salvage: s}, true
			}
		}
		return cargoSite{}, false
	}
	if f.Orbiting != nil {
		return cargoSite{planet: f.Orbiting}, true
	}
	return cargoSite{}, false
}

// fleetUnload runs unload tasks for every fleet before anyone colonizes.
// Colonists dropped on enemy worlds become invasions.
func (t *turn) fleetUnload(fleets []*game.Fleet) {
	for _, f := range fleets {
		wp := f.CurrentWaypoint()
		if wp.Task != game.TaskTransport {
			continue
		}
		site, ok := t.transportSite(f, wp)
		if !ok {
			continue
		}
		for _, c := range shared.CargoTypes {
			task := wp.TransportTasks.Get(c)
			amount := task.UnloadAmount(f.Cargo.Get(c), site.available(c))
			if amount <= 0 {
				continue
			}
			amount = utils.Min(amount, site.space())
			if !t.canUnload(f, site, c, amount) {
				continue
			}
			f.Cargo.Set(c, f.Cargo.Get(c)-amount)
			site.add(c, amount)
		}
	}
}

// canUnload checks who may receive cargo. Colonists for an enemy planet
// are queued as an invasion and reported as not delivered.
func (t *turn) canUnload(f *game.Fleet, site cargoSite, c shared.CargoType, amount int) bool {
	switch {
	case site.salvage != nil:
		return false
	case site.fleet != nil:
		return site.fleet.PlayerNum == f.PlayerNum
	}
	p := site.planet
	if c != shared.Colonists || p.OwnedBy(f.PlayerNum) {
		return true
	}
	owner := t.world.Player(f.PlayerNum)
	if !p.Owned() {
		t.message(f.PlayerNum, game.NewFleetMessage(game.MessageColonizeFailed, f,
			fmt.Sprintf("%s cannot drop colonists on %s without a colonize order.", f.Name, p.Name)))
		return false
	}
	if owner == nil || !owner.IsEnemy(p.PlayerNum) {
		t.message(f.PlayerNum, game.NewFleetMessage(game.MessageInvasion, f,
			fmt.Sprintf("%s will not invade %s, which is not an enemy.", f.Name, p.Name)))
		return false
	}
	f.Cargo.Colonists -= amount
	t.invasions = append(t.invasions, invasion{fleet: f, planet: p, colonists: amount * 100})
	return false
}

// fleetColonize resolves queued invasions, then settles colonize orders.
func (t *turn) fleetColonize(fleets []*game.Fleet) {
	t.resolveInvasions()
	for _, f := range fleets {
		wp := f.CurrentWaypoint()
		if wp.Task == game.TaskColonize {
			t.colonize(f)
		}
	}
}

func (t *turn) resolveInvasions() {
	invasions := t.invasions
	t.invasions = nil
	for _, inv := range invasions {
		p := inv.planet
		attacker := t.world.Player(inv.fleet.PlayerNum)
		if attacker == nil {
			continue
		}
		if p.OwnedBy(attacker.Num) {
			p.Population += inv.colonists
			continue
		}
		if !p.Owned() {
			p.PlayerNum = attacker.Num
			p.Population = inv.colonists
			t.message(attacker.Num, game.NewPlanetMessage(game.MessagePlanetCaptured, p,
				fmt.Sprintf("Your colonists have settled the abandoned world %s.", p.Name)))
			continue
		}
		defender := t.world.Player(p.PlayerNum)
		if defender == nil {
			continue
		}
		coverage := p.DefenseCoverage(t.techs.BestDefense(defender.TechLevels))
		result := p.Invade(attacker, defender, inv.colonists, coverage)
		if result.Captured {
			t.message(attacker.Num, game.NewPlanetMessage(game.MessagePlanetCaptured, p,
				fmt.Sprintf("Your %d troops captured %s; %d survived.", result.Attackers, p.Name, result.AttackersLeft)))
			t.message(defender.Num, game.NewPlanetMessage(game.MessagePlanetCaptured, p,
				fmt.Sprintf("%s has fallen to the %s.", p.Name, attacker.Race.PluralName)))
			t.captureTech(attacker, defender, p)
			continue
		}
		t.message(attacker.Num, game.NewPlanetMessage(game.MessageInvasion, p,
			fmt.Sprintf("Your %d troops failed to take %s.", result.Attackers, p.Name)))
		t.message(defender.Num, game.NewPlanetMessage(game.MessageInvasion, p,
			fmt.Sprintf("%s repelled an invasion; %d defenders survived.", p.Name, result.DefendersLeft)))
	}
}

// captureTech gives the conqueror a chance at one field the loser led in.
func (t *turn) captureTech(attacker, defender *game.Player, p *game.Planet) {
	field, ok := attacker.TechLevels.FirstFieldBelow(defender.TechLevels)
	if !ok || !t.random.Chance(t.rules.TechGainChance) {
		return
	}
	attacker.TechLevels.Add(field, 1)
	attacker.ComputeDesignSpecs(t.rules, t.techs)
	t.message(attacker.Num, game.NewPlanetMessage(game.MessageTechGained, p,
		fmt.Sprintf("Capturing %s taught your scientists a level in %s.", p.Name, field)))
}

// colonize settles an unowned planet with the fleet's colonists and
// scraps the fleet into the new colony.
func (t *turn) colonize(f *game.Fleet) {
	wp := f.CurrentWaypoint()
	p := f.Orbiting
	fail := func(reason string) {
		t.message(f.PlayerNum, game.NewFleetMessage(game.MessageColonizeFailed, f,
			fmt.Sprintf("%s could not colonize: %s.", f.Name, reason)))
		wp.Task = game.TaskNone
	}
	switch {
	case p == nil:
		fail("it is not orbiting a planet")
		return
	case p.Owned():
		fail(fmt.Sprintf("%s is already inhabited", p.Name))
		return
	case !f.Spec().Colonizer:
		fail("it has no colonization module")
		return
	case f.Cargo.Colonists <= 0:
		fail("it carries no colonists")
		return
	}
	owner := t.world.Player(f.PlayerNum)
	if owner == nil {
		return
	}
	p.PlayerNum = f.PlayerNum
	p.Population = f.Cargo.Colonists * 100
	p.Cargo = p.Cargo.Add(f.Cargo.Minerals())
	scrap := f.Spec().Cost.Minerals().Scale(float64(owner.Race.ScrapMineralPercent(t.rules, false)) / 100)
	p.Cargo = p.Cargo.Add(scrap)
	p.ProductionQueue = []*game.ProductionQueueItem{
		{Type: game.QueueItemAutoMines, Quantity: 5},
		{Type: game.QueueItemAutoFactories, Quantity: 5},
	}
	f.Cargo = shared.Cargo{}
	f.Delete = true
	t.message(f.PlayerNum, game.NewPlanetMessage(game.MessageColonized, p,
		fmt.Sprintf("Your colonists have founded a colony on %s.", p.Name)))
}

// fleetLoad runs load tasks. Wait-for-percent tasks hold the fleet at the
// waypoint until satisfied.
func (t *turn) fleetLoad(fleets []*game.Fleet, markProcessed bool) {
	for _, f := range fleets {
		t.load(f)
		if markProcessed {
			f.CurrentWaypoint().Processed = true
		}
	}
}

func (t *turn) load(f *game.Fleet) {
	wp := f.CurrentWaypoint()
	if wp.Task != game.TaskTransport {
		return
	}
	site, ok := t.transportSite(f, wp)
	if !ok || !t.canLoadFrom(f, site) {
		return
	}
	capacity := f.Spec().CargoCapacity
	satisfied := true
	for _, c := range shared.CargoTypes {
		task := wp.TransportTasks.Get(c)
		held := f.Cargo.Get(c)
		amount := task.LoadAmount(held, site.available(c), f.AvailableCargoSpace(), capacity)
		if amount > 0 {
			site.add(c, -amount)
			f.Cargo.Set(c, held+amount)
		}
		satisfied = satisfied && task.Satisfied(f.Cargo.Get(c), capacity)
	}
	wp.TaskComplete = satisfied
	if p := site.planet; p != nil && p.Owned() && p.Population <= 0 {
		p.Abandon()
		t.message(f.PlayerNum, game.NewPlanetMessage(game.MessagePlanetAbandoned, p,
			fmt.Sprintf("%s was abandoned when %s loaded its last colonists.", p.Name, f.Name)))
	}
}

func (t *turn) canLoadFrom(f *game.Fleet, site cargoSite) bool {
	switch {
	case site.planet != nil:
		return site.planet.OwnedBy(f.PlayerNum)
	case site.fleet != nil:
		return site.fleet.PlayerNum == f.PlayerNum
	}
	return site.salvage != nil
}

// fleetOtherTasks checks the standing tasks that later phases carry out and
// closes the current waypoint's arrival processing.
func (t *turn) fleetOtherTasks() {
	for _, f := range t.currentTasks() {
		wp := f.CurrentWaypoint()
		spec := f.Spec()
		switch wp.Task {
		case game.TaskRemoteMining:
			switch {
			case f.Orbiting == nil:
				t.dropTask(f, "remote mining needs a planet")
			case f.Orbiting.Owned():
				t.dropTask(f, fmt.Sprintf("%s is inhabited and cannot be remote mined", f.Orbiting.Name))
			case spec.MiningRate == 0:
				t.dropTask(f, "it has no mining robots")
			}
		case game.TaskLayMineField:
			if spec.MineLayingRate == [3]int{} {
				t.dropTask(f, "it has no mine layers")
			}
		case game.TaskTransferFleet:
			if t.world.Player(wp.TransferToPlayer) == nil || wp.TransferToPlayer == f.PlayerNum {
				t.dropTask(f, fmt.Sprintf("player %d cannot receive it", wp.TransferToPlayer))
			}
		case game.TaskMergeWithFleet:
			if target := t.world.Fleet(wp.TargetID); target == nil || target.PlayerNum != f.PlayerNum {
				t.dropTask(f, "the fleet to merge with is gone")
			}
		}
		wp.Processed = true
	}
}

func (t *turn) dropTask(f *game.Fleet, reason string) {
	wp := f.CurrentWaypoint()
	t.message(f.PlayerNum, game.NewFleetMessage(game.MessageOrderRejected, f,
		fmt.Sprintf("%s cannot %s: %s.", f.Name, wp.Task, reason)))
	wp.Task = game.TaskNone
}

// fleetAge ages every fleet and removes ones left without ships.
func (t *turn) fleetAge() {
	for _, f := range t.world.Fleets {
		f.RemoveEmptyTokens()
		if !f.HasTokens() {
			t.log.Warn().Str("fleet", f.Name).Int("player_num", f.PlayerNum).Msg("removing fleet without ships")
			f.Delete = true
			continue
		}
		f.Age++
	}
}

// fleetScrap breaks up fleets ordered to scrap. Minerals go to the planet
// orbited, or into salvage in deep space. Scrapping at an owned planet may
// teach its owner something from the wreck.
func (t *turn) fleetScrap() {
	for _, f := range t.liveFleets() {
		wp := f.CurrentWaypoint()
		if f.Starbase || wp.Task != game.TaskScrapFleet {
			continue
		}
		owner := t.player(f.PlayerNum, f.Name)
		if owner == nil {
			continue
		}
		p := f.Orbiting
		atStarbase := p != nil && p.Starbase != nil && p.OwnedBy(f.PlayerNum)
		percent := owner.Race.ScrapMineralPercent(t.rules, atStarbase)
		minerals := f.Spec().Cost.Minerals().Scale(float64(percent) / 100).Add(f.Cargo.Minerals())

		if p != nil {
			p.Cargo = p.Cargo.Add(minerals)
			if p.OwnedBy(f.PlayerNum) {
				p.Population += f.Cargo.Colonists * 100
			}
			if p.Owned() {
				t.scrapTech(f, p)
			}
		} else {
			t.world.AddSalvage(&game.Salvage{
				ID:        t.random.GUID(),
				PlayerNum: f.PlayerNum,
				Position:  f.Position,
				Cargo:     minerals,
			})
		}
		f.Delete = true
		t.message(f.PlayerNum, game.NewFleetMessage(game.MessageFleetScrapped, f,
			fmt.Sprintf("%s has been scrapped, recovering %s.", f.Name, minerals)))
	}
}

func (t *turn) scrapTech(f *game.Fleet, p *game.Planet) {
	owner := t.world.Player(p.PlayerNum)
	if owner == nil {
		return
	}
	for _, token := range f.Tokens {
		if token.Design == nil {
			continue
		}
		field, ok := owner.TechLevels.FirstFieldBelow(token.Design.Requirements(t.techs))
		if !ok {
			continue
		}
		if t.random.Chance(t.rules.TechGainChance) {
			owner.TechLevels.Add(field, 1)
			owner.ComputeDesignSpecs(t.rules, t.techs)
			t.message(owner.Num, game.NewPlanetMessage(game.MessageTechGained, p,
				fmt.Sprintf("Studying the scrapped %s at %s gained a level in %s.", token.Design.Name, p.Name, field)))
		}
		return
	}
}
