// Package gametest holds fixture builders for worlds used across test suites.
package gametest

import (
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"

	"github.com/andrescamacho/stars-go/internal/domain/game"
	"github.com/andrescamacho/stars-go/internal/domain/rules"
	"github.com/andrescamacho/stars-go/internal/domain/shared"
)

// WorldBuilder assembles small worlds with predictable IDs.
type WorldBuilder struct {
	world  *game.World
	nextID uint64
}

// NewWorld starts a world on default rules and the default tech catalog.
func NewWorld() *WorldBuilder {
	rs := rules.Default()
	rs.Seed = 42
	return &WorldBuilder{
		world: &game.World{
			GameID: "test-game",
			Name:   "Test Game",
			Year:   rs.StartingYear,
			State:  game.GameStateWaitingForPlayers,
			Rules:  rs,
			Techs:  rules.DefaultTechCatalog(),
		},
	}
}

// ID returns the next sequential GUID.
func (b *WorldBuilder) ID() uuid.UUID {
	b.nextID++
	var id uuid.UUID
	binary.BigEndian.PutUint64(id[8:], b.nextID)
	return id
}

// Rules exposes the rules for tweaking before Build.
func (b *WorldBuilder) Rules() *rules.Rules {
	return b.world.Rules
}

// WithYear sets the current year.
func (b *WorldBuilder) WithYear(year int) *WorldBuilder {
	b.world.Year = year
	return b
}

// AddPlayer adds a default-race player with starter designs and tech.
func (b *WorldBuilder) AddPlayer(name string) *game.Player {
	num := len(b.world.Players) + 1
	race := game.DefaultRace()
	p := &game.Player{
		Num:            num,
		Name:           name,
		Race:           race,
		TechLevels:     race.StartingTechLevels(),
		Researching:    rules.Energy,
		ResearchAmount: 15,
		Designs:        game.StarterDesigns(num),
		BattlePlans:    []game.BattlePlan{game.DefaultBattlePlan()},
	}
	if errs := p.ComputeDesignSpecs(b.world.Rules, b.world.Techs); len(errs) > 0 {
		panic(fmt.Sprintf("gametest: starter designs invalid: %v", errs))
	}
	b.world.Players = append(b.world.Players, p)
	return p
}

// AddDesign adds and computes a custom design for a player.
func (b *WorldBuilder) AddDesign(player *game.Player, design *game.ShipDesign) *game.ShipDesign {
	design.PlayerNum = player.Num
	if design.Num == 0 {
		design.Num = player.NextDesignNum()
	}
	spec, err := game.ComputeSpec(design, b.world.Rules, b.world.Techs, &player.Race, player.TechLevels)
	if err != nil {
		panic(fmt.Sprintf("gametest: design %s invalid: %v", design.Name, err))
	}
	design.Spec = spec
	player.Designs = append(player.Designs, design)
	return design
}

// AddPlanet adds an unowned planet with ideal hab for the default race.
func (b *WorldBuilder) AddPlanet(name string, x, y float64) *game.Planet {
	hab := game.Hab{Grav: 50, Temp: 50, Rad: 50}
	conc := shared.Cargo{Ironium: 50, Boranium: 50, Germanium: 50}
	p := &game.Planet{
		ID:                   b.ID(),
		Num:                  len(b.world.Planets) + 1,
		Name:                 name,
		Position:             shared.Vector{X: x, Y: y},
		Hab:                  hab,
		BaseHab:              hab,
		BaseConcentration:    conc,
		MineralConcentration: conc,
	}
	b.world.Planets = append(b.world.Planets, p)
	return p
}

// AddColony gives a planet to a player with population and buildings.
func (b *WorldBuilder) AddColony(player *game.Player, name string, x, y float64, population int) *game.Planet {
	p := b.AddPlanet(name, x, y)
	p.PlayerNum = player.Num
	p.Population = population
	p.Mines = population / 1000
	p.Factories = population / 1000
	return p
}

// AddFleet adds a fleet of one token of the named design, fully fuelled.
func (b *WorldBuilder) AddFleet(player *game.Player, designName string, quantity int, x, y float64) *game.Fleet {
	design := player.DesignByName(designName)
	if design == nil {
		panic("gametest: unknown design " + designName)
	}
	pos := shared.Vector{X: x, Y: y}
	num := b.world.NextFleetNum(player.Num)
	f := &game.Fleet{
		ID:            b.ID(),
		Num:           num,
		Name:          fmt.Sprintf("%s #%d", designName, num),
		PlayerNum:     player.Num,
		Position:      pos,
		Tokens:        []*game.ShipToken{{DesignNum: design.Num, Design: design, Quantity: quantity}},
		Waypoints:     []*game.Waypoint{game.NewPositionWaypoint(pos, 0)},
		BattlePlanNum: 0,
		Starbase:      design.Spec.Starbase,
	}
	f.Fuel = f.Spec().FuelCapacity
	if planet := b.world.PlanetAt(pos); planet != nil {
		f.Waypoints[0] = game.NewPlanetWaypoint(planet, 0)
	}
	b.world.AddFleet(f)
	return f
}

// AddStarbase puts the starter starbase over a planet.
func (b *WorldBuilder) AddStarbase(player *game.Player, planet *game.Planet) *game.Fleet {
	return b.AddFleet(player, game.DesignStarbase, 1, planet.Position.X, planet.Position.Y)
}

// AddWormholePair links two fully stable wormhole ends.
func (b *WorldBuilder) AddWormholePair(from, to shared.Vector) (*game.Wormhole, *game.Wormhole) {
	stability := b.world.Rules.WormholeMaxStability
	num := len(b.world.Wormholes)
	a := &game.Wormhole{ID: b.ID(), Num: num + 1, Position: from, Stability: stability}
	c := &game.Wormhole{ID: b.ID(), Num: num + 2, Position: to, Stability: stability}
	a.DestinationID = c.ID
	c.DestinationID = a.ID
	b.world.Wormholes = append(b.world.Wormholes, a, c)
	return a, c
}

// AddMineField adds a standard minefield centred on a point.
func (b *WorldBuilder) AddMineField(player *game.Player, x, y float64, mines int) *game.MineField {
	m := &game.MineField{
		ID:        b.ID(),
		PlayerNum: player.Num,
		Position:  shared.Vector{X: x, Y: y},
		Type:      rules.MineFieldStandard,
		NumMines:  mines,
	}
	b.world.AddMineField(m)
	return m
}

// AddPacket launches a packet at a planet from a point. The packet flies at
// its driver's safe speed.
func (b *WorldBuilder) AddPacket(player *game.Player, target *game.Planet, x, y float64, warp int, cargo shared.Cargo) *game.MineralPacket {
	p := &game.MineralPacket{
		ID:             b.ID(),
		PlayerNum:      player.Num,
		Position:       shared.Vector{X: x, Y: y},
		Cargo:          cargo,
		WarpSpeed:      warp,
		SafeWarpSpeed:  warp,
		TargetPlanetID: target.ID,
	}
	b.world.AddMineralPacket(p)
	return p
}

// Build links references and returns the world.
func (b *WorldBuilder) Build() *game.World {
	if errs := b.world.Link(); len(errs) > 0 {
		panic(fmt.Sprintf("gametest: world does not link: %v", errs))
	}
	return b.world
}
