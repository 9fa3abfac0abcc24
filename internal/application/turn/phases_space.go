package turn

import (
	"fmt"
	"math"

	"github.com/andrescamacho/stars-go/internal/domain/game"
	"github.com/andrescamacho/stars-go/internal/domain/rules"
	"github.com/andrescamacho/stars-go/internal/domain/shared"
	"github.com/andrescamacho/stars-go/pkg/utils"
)

// bounds is the far corner of the map, taken from the outermost planet.
func (t *turn) bounds() shared.Vector {
	var corner shared.Vector
	for _, p := range t.world.Planets {
		corner.X = math.Max(corner.X, p.Position.X)
		corner.Y = math.Max(corner.Y, p.Position.Y)
	}
	return corner
}

func (t *turn) randomPosition() shared.Vector {
	corner := t.bounds()
	return shared.NewVector(
		float64(t.random.IntRange(0, int(corner.X))),
		float64(t.random.IntRange(0, int(corner.Y))),
	)
}

// mysteryTraderMove flies each trader toward its destination and picks a
// new planet to visit once it gets there.
func (t *turn) mysteryTraderMove() {
	for _, trader := range t.world.MysteryTraders {
		if trader.WarpSpeed == 0 {
			trader.WarpSpeed = t.rules.MysteryTraderWarp
		}
		from := trader.Position
		trader.Position = from.MoveToward(trader.Destination, game.TravelDistance(trader.WarpSpeed))
		trader.Heading = trader.Destination.Subtract(from).Normalized()
		if trader.Position == trader.Destination && len(t.world.Planets) > 0 {
			trader.Destination = t.world.Planets[t.random.Intn(len(t.world.Planets))].Position
		}
	}
}

// packetMove flies packets toward their targets. The second pass moves
// only packets launched after the first.
func (t *turn) packetMove(secondPass bool) {
	for _, packet := range t.world.MineralPackets {
		if packet.Delete || packet.Arrived || (secondPass && packet.MovedThisYear) {
			continue
		}
		target := t.world.Planet(packet.TargetPlanetID)
		if target == nil {
			t.log.Warn().Str("packet", packet.ID.String()).Msg("packet target is missing")
			packet.Delete = true
			continue
		}
		from := packet.Position
		packet.Position = from.MoveToward(target.Position, game.TravelDistance(packet.WarpSpeed))
		packet.Heading = target.Position.Subtract(from).Normalized()
		packet.MovedThisYear = true
		if packet.Position == target.Position {
			packet.Arrived = true
		}
	}
}

// packetDecay wears down packets flying faster than their driver's rated
// speed.
func (t *turn) packetDecay() {
	for _, packet := range t.world.MineralPackets {
		over := packet.WarpSpeed - packet.SafeWarpSpeed
		if packet.Delete || packet.Arrived || over <= 0 {
			continue
		}
		keep := 1 - float64(utils.Min(100, over*t.rules.PacketDecayPercentPerWarp))/100
		packet.Cargo = packet.Cargo.Scale(keep)
		if packet.Cargo.MineralTotal() == 0 {
			packet.Delete = true
		}
	}
}

// packetTerraform lets arriving packets of packet-physics races nudge the
// target toward their own ideal.
func (t *turn) packetTerraform() {
	for _, packet := range t.world.MineralPackets {
		if packet.Delete || !packet.Arrived {
			continue
		}
		sender := t.world.Player(packet.PlayerNum)
		target := t.world.Planet(packet.TargetPlanetID)
		if sender == nil || target == nil || !sender.Race.PacketTerraform() {
			continue
		}
		clicks := packet.Cargo.MineralTotal() / utils.Max(1, t.rules.PacketTerraformMass)
		unbounded := func(rules.HabType) int { return 100 }
		changed := 0
		for i := 0; i < clicks; i++ {
			if !t.random.Chance(0.5) {
				continue
			}
			if _, ok := target.TerraformOneStep(&sender.Race, unbounded); ok {
				changed++
			}
		}
		if changed > 0 {
			t.message(sender.Num, game.NewPlanetMessage(game.MessageTerraformed, target,
				fmt.Sprintf("Your mineral packet terraformed %s by %d.", target.Name, changed)))
		}
	}
}

// packetDamage lands arrived packets. A mass driver at least as fast as the
// packet catches it whole; otherwise the uncaught part hits the planet.
func (t *turn) packetDamage() {
	for _, packet := range t.world.MineralPackets {
		if packet.Delete || !packet.Arrived {
			continue
		}
		packet.Delete = true
		target := t.world.Planet(packet.TargetPlanetID)
		if target == nil {
			continue
		}
		target.Cargo = target.Cargo.Add(packet.Cargo.Minerals())

		catchSpeed := 0
		if target.Starbase != nil {
			catchSpeed = target.Starbase.Spec().PacketSpeed
		}
		if !target.Owned() || catchSpeed >= packet.WarpSpeed {
			if target.Owned() {
				t.message(target.PlayerNum, game.NewPlanetMessage(game.MessagePacketCaught, target,
					fmt.Sprintf("%s caught a packet of %s.", target.Name, packet.Cargo)))
			}
			continue
		}

		speed := packet.WarpSpeed * packet.WarpSpeed
		caught := catchSpeed * catchSpeed
		raw := float64((speed-caught)*packet.Cargo.MineralTotal()) / float64(t.rules.PacketDamageDivisor)
		owner := t.world.Player(target.PlayerNum)
		coverage := 0.0
		if owner != nil {
			coverage = target.DefenseCoverage(t.techs.BestDefense(owner.TechLevels))
		}
		damage := raw * (1 - coverage)
		killed := utils.Min(target.Population, utils.RoundToNearest100(damage*100))
		defenses := utils.Min(target.Defenses, int(raw/20))
		target.Population -= killed
		target.Defenses -= defenses
		text := fmt.Sprintf("A mineral packet struck %s, killing %d colonists and destroying %d defenses.",
			target.Name, killed, defenses)
		t.message(target.PlayerNum, game.NewPlanetMessage(game.MessagePacketDamage, target, text))
		if packet.PlayerNum != target.PlayerNum {
			t.message(packet.PlayerNum, game.NewPlanetMessage(game.MessagePacketDamage, target, text))
		}
		if target.Population <= 0 {
			target.Abandon()
		}
	}
}

// wormholeJiggle shifts each endpoint a little every year.
func (t *turn) wormholeJiggle() {
	jitter := t.rules.WormholeJitter
	for _, wh := range t.world.Wormholes {
		dx := t.random.IntRange(-jitter, jitter)
		dy := t.random.IntRange(-jitter, jitter)
		wh.Position = wh.Position.Add(shared.NewVector(float64(dx), float64(dy)))
	}
}

// wormholeDegrade loses stability; an endpoint that runs out jumps to a new
// random spot and restabilizes.
func (t *turn) wormholeDegrade() {
	for _, wh := range t.world.Wormholes {
		wh.YearsAtPos++
		wh.Stability -= t.rules.WormholeStabilityDecay
		if wh.Stability > 0 {
			continue
		}
		wh.Position = t.randomPosition()
		wh.Stability = t.rules.WormholeMaxStability
		wh.YearsAtPos = 0
	}
}

// salvageDecay erodes debris until it is gone.
func (t *turn) salvageDecay() {
	for _, s := range t.world.Salvages {
		for _, m := range shared.MineralTypes {
			amount := s.Cargo.Get(m)
			loss := utils.Max(t.rules.SalvageDecayMin, amount*t.rules.SalvageDecayPercent/100)
			s.Cargo.Set(m, utils.Max(0, amount-loss))
		}
		if s.Cargo.MineralTotal() == 0 {
			s.Delete = true
		}
	}
}

// mineFieldDetonate sets off fields of races that can detonate mines,
// damaging every hostile fleet inside.
func (t *turn) mineFieldDetonate() {
	for _, field := range t.world.MineFields {
		owner := t.world.Player(field.PlayerNum)
		if field.Delete || !field.Detonate || owner == nil || !owner.Race.DetonatesMines() {
			continue
		}
		for _, f := range t.liveFleets() {
			if !owner.IsEnemy(f.PlayerNum) || !field.Contains(f.Position) {
				continue
			}
			lost := t.damageFleet(f, t.rules.MineDamagePerShip)
			text := fmt.Sprintf("A detonating minefield destroyed %d ships of %s.", lost, f.Name)
			t.message(f.PlayerNum, game.NewFleetMessage(game.MessageMineFieldHit, f, text))
			t.message(owner.Num, game.NewFleetMessage(game.MessageMineFieldHit, f, text))
		}
	}
}

// damageFleet deals perShip armor damage to every ship and returns ships
// lost. A fleet with nothing left is marked deleted.
func (t *turn) damageFleet(f *game.Fleet, perShip int) int {
	lost := 0
	for _, token := range f.Tokens {
		lost += token.ApplyArmorDamage(float64(perShip * token.Quantity))
	}
	f.RemoveEmptyTokens()
	if !f.HasTokens() {
		f.Delete = true
	}
	return lost
}

// mysteryTraderMeet pays fleets that bring the trader enough minerals with
// a level in the player's weakest field. Each player is paid once.
func (t *turn) mysteryTraderMeet() {
	for _, trader := range t.world.MysteryTraders {
		for _, f := range t.liveFleets() {
			if f.Starbase || trader.Rewarded(f.PlayerNum) {
				continue
			}
			if !f.Position.InRange(trader.Position, game.TravelDistance(trader.WarpSpeed)) {
				continue
			}
			if f.Cargo.MineralTotal() < t.rules.MysteryTraderMinMinerals {
				continue
			}
			player := t.world.Player(f.PlayerNum)
			if player == nil {
				continue
			}
			field := player.TechLevels.Lowest()
			if player.TechLevels.Get(field) >= rules.MaxTechLevel {
				continue
			}
			f.Cargo = shared.Cargo{Colonists: f.Cargo.Colonists}
			player.TechLevels.Add(field, 1)
			player.ComputeDesignSpecs(t.rules, t.techs)
			trader.RewardedPlayers = append(trader.RewardedPlayers, player.Num)
			t.message(player.Num, game.NewFleetMessage(game.MessageMysteryTrader, f,
				fmt.Sprintf("The mystery trader took the cargo of %s and taught you a level in %s.", f.Name, field)))
		}
	}
}

// mineLaying decays existing fields, then lets stationary layers add mines.
// A layer inside its own field of the same type grows that field.
func (t *turn) mineLaying() {
	for _, field := range t.world.MineFields {
		decay := utils.Max(t.rules.MineFieldMinDecay, field.NumMines*t.rules.MineFieldDecayPercent/100)
		field.NumMines -= decay
		if field.NumMines <= 0 {
			field.Delete = true
		}
	}

	for _, f := range t.liveFleets() {
		wp := f.CurrentWaypoint()
		if wp.Task != game.TaskLayMineField || t.moved[f] {
			continue
		}
		rates := f.Spec().MineLayingRate
		for kind, rate := range rates {
			if rate <= 0 {
				continue
			}
			t.layMines(f, rules.MineFieldType(kind), rate)
		}
		if wp.LayMineFieldYears > 0 {
			wp.LayMineFieldYears--
			if wp.LayMineFieldYears == 0 {
				wp.Task = game.TaskNone
			}
		}
	}
}

func (t *turn) layMines(f *game.Fleet, kind rules.MineFieldType, mines int) {
	for _, field := range t.world.MineFieldsNear(f.Position) {
		if field.Delete || field.PlayerNum != f.PlayerNum || field.Type != kind {
			continue
		}
		field.NumMines += mines
		if field.Position != f.Position {
			// the field's center drifts toward the layer
			field.Position = field.Position.MoveToward(f.Position, field.Position.DistanceTo(f.Position)/2)
		}
		return
	}
	field := &game.MineField{
		ID:        t.random.GUID(),
		PlayerNum: f.PlayerNum,
		Position:  f.Position,
		Type:      kind,
		NumMines:  mines,
	}
	t.world.AddMineField(field)
	t.message(f.PlayerNum, game.NewFleetMessage(game.MessageMineFieldLaid, f,
		fmt.Sprintf("%s has laid a %s minefield of %d mines.", f.Name, kind, mines)))
}

// mineSweep lets armed fleets clear enemy fields they sit in.
func (t *turn) mineSweep() {
	for _, f := range t.liveFleets() {
		sweep := f.Spec().MineSweep
		if sweep <= 0 {
			continue
		}
		player := t.world.Player(f.PlayerNum)
		if player == nil {
			continue
		}
		for _, field := range t.world.MineFieldsNear(f.Position) {
			if field.Delete || !player.IsEnemy(field.PlayerNum) {
				continue
			}
			swept := utils.Min(sweep, field.NumMines)
			field.NumMines -= swept
			if field.NumMines <= 0 {
				field.Delete = true
			}
			text := fmt.Sprintf("%s swept %d mines.", f.Name, swept)
			t.message(f.PlayerNum, game.NewFleetMessage(game.MessageMineFieldSwept, f, text))
			t.message(field.PlayerNum, game.NewMessage(game.MessageMineFieldSwept, text))
		}
	}
}

// randomEvents rolls comets, mineral deposits and planetary changes once per
// planet in planet order.
func (t *turn) randomEvents() {
	chances := t.rules.RandomEvents
	for _, p := range t.world.Planets {
		if t.random.Chance(chances.Comet) {
			t.comet(p)
		}
		if !p.Owned() {
			continue
		}
		if t.random.Chance(chances.MineralDeposit) {
			mineral := shared.MineralTypes[t.random.Intn(len(shared.MineralTypes))]
			amount := t.random.IntRange(100, 500)
			p.Cargo.Set(mineral, p.Cargo.Get(mineral)+amount)
			t.message(p.PlayerNum, game.NewPlanetMessage(game.MessageRandomEvent, p,
				fmt.Sprintf("Geologists found a surface deposit of %dkT %s on %s.", amount, mineral, p.Name)))
		}
		if t.random.Chance(chances.PlanetaryChange) {
			hab := rules.HabTypes[t.random.Intn(len(rules.HabTypes))]
			delta := t.random.IntRange(-3, 3)
			p.BaseHab.Set(hab, utils.Clamp(p.BaseHab.Get(hab)+delta, 1, 99))
			p.Hab.Set(hab, utils.Clamp(p.Hab.Get(hab)+delta, 1, 99))
			t.message(p.PlayerNum, game.NewPlanetMessage(game.MessageRandomEvent, p,
				fmt.Sprintf("The %s of %s has shifted by %d.", hab, p.Name, delta)))
		}
	}
}

// comet adds minerals and raises one concentration. A concentration
// already above the starting cap is left alone.
func (t *turn) comet(p *game.Planet) {
	mineral := shared.MineralTypes[t.random.Intn(len(shared.MineralTypes))]
	amount := t.random.IntRange(50, 200)
	p.Cargo.Set(mineral, p.Cargo.Get(mineral)+amount)
	base := p.BaseConcentration.Get(mineral)
	raised := utils.Min(t.rules.MaxStartingConcentration, base+t.random.IntRange(10, 30))
	p.BaseConcentration.Set(mineral, utils.Max(base, raised))
	p.RecomputeConcentration(t.rules)
	if p.Owned() {
		t.message(p.PlayerNum, game.NewPlanetMessage(game.MessageRandomEvent, p,
			fmt.Sprintf("A comet struck %s, leaving %dkT of %s.", p.Name, amount, mineral)))
	}
}
