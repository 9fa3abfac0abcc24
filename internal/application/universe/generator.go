// Package universe creates new game worlds.
package universe

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/andrescamacho/stars-go/internal/application/common"
	"github.com/andrescamacho/stars-go/internal/application/intel"
	"github.com/andrescamacho/stars-go/internal/domain/game"
	"github.com/andrescamacho/stars-go/internal/domain/rules"
	"github.com/andrescamacho/stars-go/internal/domain/shared"
	"github.com/andrescamacho/stars-go/pkg/utils"
)

// placementAttempts bounds the rejection sampling for one planet.
const placementAttempts = 200

// Generator builds worlds from settings. The result depends only on the
// settings and their rules seed.
type Generator struct {
	validate   *validator.Validate
	discoverer *intel.Discoverer
}

func NewGenerator() *Generator {
	return &Generator{validate: validator.New(), discoverer: intel.NewDiscoverer()}
}

// Generate lays out planets, seats every player on a homeworld with starting
// fleets, and adds wormholes and mystery traders.
func (g *Generator) Generate(ctx context.Context, s Settings) (*game.World, error) {
	if err := g.validate.Struct(s); err != nil {
		return nil, formatValidationError(err)
	}
	if s.Rules == nil {
		s.Rules = rules.Default()
	}
	if s.Techs == nil {
		s.Techs = rules.DefaultTechCatalog()
	}
	log := common.LoggerFromContext(ctx).With().Str("game_id", s.GameID).Logger()

	w := &game.World{
		GameID: s.GameID,
		Name:   s.Name,
		Year:   s.Rules.StartingYear,
		State:  game.GameStateSetup,
		Rules:  s.Rules,
		Techs:  s.Techs,
	}
	b := &builder{
		world:    w,
		settings: s,
		random:   shared.NewRandom(s.Rules.Seed, 0),
		width:    s.Size.Width(),
	}

	b.placePlanets()
	if len(w.Planets) < len(s.Players) {
		return nil, shared.NewValidationError("players",
			fmt.Sprintf("%d players do not fit in a %s %s universe", len(s.Players), s.Size, s.Density))
	}
	if err := b.seatPlayers(); err != nil {
		return nil, err
	}
	b.placeWormholes()
	b.placeMysteryTraders()

	if errs := w.Link(); len(errs) > 0 {
		return nil, fmt.Errorf("linking new world: %w", errs[0])
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	g.discoverer.Discover(w)
	game.ComputeScores(w)
	g.discoverer.UpdateScores(w)
	w.State = game.GameStateWaitingForPlayers

	log.Info().
		Int("planets", len(w.Planets)).
		Int("players", len(w.Players)).
		Int("wormholes", len(w.Wormholes)).
		Msg("universe generated")
	return w, nil
}

func formatValidationError(err error) error {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	messages := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		messages = append(messages, fmt.Sprintf("field '%s' failed validation: %s (value: '%v')",
			e.Namespace(), e.Tag(), e.Value()))
	}
	return shared.NewValidationError("settings", strings.Join(messages, "\n  "))
}

// builder is the state of one generation run.
type builder struct {
	world    *game.World
	settings Settings
	random   *shared.Random
	width    float64
}

func (b *builder) rules() *rules.Rules {
	return b.world.Rules
}

// placePlanets scatters planets by rejection sampling, keeping every pair at
// least the minimum distance apart. Crowded universes end up with fewer
// planets than asked for.
func (b *builder) placePlanets() {
	rs := b.rules()
	want := b.settings.PlanetCount()
	planetNames := names(b.random, rs.Seed, want)
	minDist := float64(rs.PlanetMinDistance)

	for i := 0; i < want; i++ {
		pos, ok := b.freePosition(minDist)
		if !ok {
			break
		}
		p := &game.Planet{
			ID:       b.random.GUID(),
			Num:      len(b.world.Planets) + 1,
			Name:     planetNames[i],
			Position: pos,
		}
		p.BaseHab = game.Hab{
			Grav: b.random.IntRange(1, 99),
			Temp: b.random.IntRange(1, 99),
			Rad:  b.random.IntRange(1, 99),
		}
		p.Hab = p.BaseHab
		for _, mineral := range shared.MineralTypes {
			p.BaseConcentration.Set(mineral, b.concentration())
		}
		p.RecomputeConcentration(rs)
		b.world.Planets = append(b.world.Planets, p)
	}
}

// concentration favours poor deposits; one in ten is rich.
func (b *builder) concentration() int {
	limit := b.rules().MaxStartingConcentration
	if b.random.Chance(0.1) {
		return b.random.IntRange(limit/2, limit)
	}
	return b.random.IntRange(1, utils.Max(1, limit/2))
}

func (b *builder) freePosition(minDist float64) (shared.Vector, bool) {
	for attempt := 0; attempt < placementAttempts; attempt++ {
		pos := shared.NewVector(
			float64(b.random.IntRange(0, int(b.width))),
			float64(b.random.IntRange(0, int(b.width))),
		)
		free := true
		for _, other := range b.world.Planets {
			if other.Position.DistanceTo(pos) < minDist {
				free = false
				break
			}
		}
		if free {
			return pos, true
		}
	}
	return shared.Vector{}, false
}

// seatPlayers picks homeworlds farthest-first and equips each player.
func (b *builder) seatPlayers() error {
	homes := b.pickHomeworlds(len(b.settings.Players))
	for i, setup := range b.settings.Players {
		player := b.newPlayer(i+1, setup)
		b.world.Players = append(b.world.Players, player)
		b.settleHomeworld(player, homes[i])
		if err := b.launchStartingFleets(player, homes[i]); err != nil {
			return err
		}
	}
	return nil
}

// pickHomeworlds starts from a random planet and repeatedly takes the planet
// farthest from every homeworld chosen so far.
func (b *builder) pickHomeworlds(n int) []*game.Planet {
	planets := b.world.Planets
	homes := []*game.Planet{planets[b.random.Intn(len(planets))]}
	taken := map[*game.Planet]bool{homes[0]: true}
	for len(homes) < n {
		var best *game.Planet
		bestDist := -1.0
		for _, p := range planets {
			if taken[p] {
				continue
			}
			nearest := math.Inf(1)
			for _, h := range homes {
				nearest = math.Min(nearest, p.Position.DistanceTo(h.Position))
			}
			if nearest > bestDist {
				best, bestDist = p, nearest
			}
		}
		homes = append(homes, best)
		taken[best] = true
	}
	return homes
}

func (b *builder) newPlayer(num int, setup PlayerSetup) *game.Player {
	race := setup.Race
	if race.Name == "" {
		race = game.DefaultRace()
	}
	p := &game.Player{
		Num:            num,
		Name:           setup.Name,
		Race:           race,
		AIControlled:   setup.AIControlled,
		AIProcessor:    setup.AIProcessor,
		TechLevels:     race.StartingTechLevels(),
		Researching:    rules.Energy,
		ResearchAmount: 15,
		Designs:        game.StarterDesigns(num),
		BattlePlans:    []game.BattlePlan{game.DefaultBattlePlan()},
		Relations:      make([]game.PlayerRelation, len(b.settings.Players)),
	}
	if p.AIControlled && p.AIProcessor == "" {
		p.AIProcessor = "housekeeper"
	}
	p.ComputeDesignSpecs(b.rules(), b.world.Techs)
	return p
}

func (b *builder) settleHomeworld(player *game.Player, p *game.Planet) {
	rs := b.rules()
	race := &player.Race
	p.PlayerNum = player.Num
	p.Homeworld = true
	p.BaseHab = race.HabCenter()
	p.Hab = p.BaseHab
	for _, mineral := range shared.MineralTypes {
		p.BaseConcentration.Set(mineral, utils.Max(p.BaseConcentration.Get(mineral), rs.MinHomeworldMineralConcentration))
		p.Cargo.Set(mineral, rs.StartingSurfaceMinerals)
	}
	p.RecomputeConcentration(rs)
	p.Population = race.StartingPopulation(rs)
	p.Mines = rs.StartingMines
	p.Factories = rs.StartingFactories
	p.Defenses = rs.StartingDefenses
	p.Scanner = true
	p.ProductionQueue = []*game.ProductionQueueItem{
		{Type: game.QueueItemAutoMines, Quantity: 10},
		{Type: game.QueueItemAutoFactories, Quantity: 10},
	}
}

// launchStartingFleets gives each player a starbase, a scout and a loaded
// colony ship at home.
func (b *builder) launchStartingFleets(player *game.Player, home *game.Planet) error {
	starting := []struct {
		design string
		name   string
	}{
		{game.DesignStarbase, home.Name + " Starbase"},
		{game.DesignScout, ""},
		{game.DesignColonyShip, ""},
	}
	for _, s := range starting {
		design := player.DesignByName(s.design)
		if design == nil {
			return shared.NewMissingReferenceError("design", s.design)
		}
		f := &game.Fleet{
			ID:        b.random.GUID(),
			PlayerNum: player.Num,
			Name:      s.name,
			Position:  home.Position,
			Tokens:    []*game.ShipToken{{DesignNum: design.Num, Design: design, Quantity: 1}},
			Starbase:  design.Spec.Starbase,
		}
		f.Num = b.world.NextFleetNum(player.Num)
		if f.Name == "" {
			f.Name = fmt.Sprintf("%s #%d", design.Name, f.Num)
		}
		f.Waypoints = []*game.Waypoint{game.NewPlanetWaypoint(home, 0)}
		spec := f.Spec()
		f.Fuel = spec.FuelCapacity
		if spec.Colonizer {
			f.Cargo.Colonists = spec.CargoCapacity
		}
		b.world.AddFleet(f)
	}
	return nil
}

// placeWormholes adds linked pairs. A negative count scales with size.
func (b *builder) placeWormholes() {
	pairs := b.settings.WormholePairs
	if pairs < 0 {
		pairs = int(b.settings.Size) + 1
	}
	for i := 0; i < pairs; i++ {
		a := b.newWormhole()
		z := b.newWormhole()
		a.DestinationID, z.DestinationID = z.ID, a.ID
	}
}

func (b *builder) newWormhole() *game.Wormhole {
	rs := b.rules()
	pos, _ := b.freePosition(float64(rs.PlanetMinDistance))
	wh := &game.Wormhole{
		ID:        b.random.GUID(),
		Num:       len(b.world.Wormholes) + 1,
		Position:  pos,
		Stability: b.random.IntRange(rs.WormholeMaxStability/2, rs.WormholeMaxStability),
	}
	b.world.Wormholes = append(b.world.Wormholes, wh)
	return wh
}

// placeMysteryTraders starts traders on the universe edge heading for a
// random planet.
func (b *builder) placeMysteryTraders() {
	for i := 0; i < b.settings.MysteryTraders; i++ {
		start := shared.NewVector(0, float64(b.random.IntRange(0, int(b.width))))
		if b.random.Chance(0.5) {
			start = shared.NewVector(b.width, start.Y)
		}
		target := b.world.Planets[b.random.Intn(len(b.world.Planets))]
		b.world.MysteryTraders = append(b.world.MysteryTraders, &game.MysteryTrader{
			ID:          b.random.GUID(),
			Num:         i + 1,
			Position:    start,
			Destination: target.Position,
			Heading:     target.Position.Subtract(start).Normalized(),
			WarpSpeed:   b.rules().MysteryTraderWarp,
		})
	}
}
