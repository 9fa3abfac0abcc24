package intel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/stars-go/internal/application/intel"
	"github.com/andrescamacho/stars-go/internal/domain/game"
	"github.com/andrescamacho/stars-go/internal/domain/game/gametest"
	"github.com/andrescamacho/stars-go/internal/domain/shared"
)

type scenario struct {
	world  *game.World
	alice  *game.Player
	scout  *game.Fleet
	home   *game.Planet
	bobs   *game.Planet
	far    *game.Planet
	bobsSB *game.Fleet
}

// alice has a scout next to bob's homeworld and a far planet nobody sees
func newScenario() scenario {
	b := gametest.NewWorld()
	alice := b.AddPlayer("Alice")
	bob := b.AddPlayer("Bob")
	home := b.AddColony(alice, "Home", 0, 0, 80_000)
	bobs := b.AddColony(bob, "Bobland", 30, 0, 50_000)
	far := b.AddPlanet("Faraway", 500, 500)
	scout := b.AddFleet(alice, game.DesignScout, 1, 0, 0)
	sb := b.AddStarbase(bob, bobs)
	return scenario{world: b.Build(), alice: alice, scout: scout, home: home, bobs: bobs, far: far, bobsSB: sb}
}

func TestDiscover_OwnedPlanetsAreExact(t *testing.T) {
	// Arrange
	s := newScenario()

	// Act
	intel.NewDiscoverer().Discover(s.world)

	// Assert
	report := s.alice.Intel.PlanetIntelByID(s.home.ID)
	require.NotNil(t, report)
	assert.True(t, report.Owned)
	assert.Equal(t, 80_000, report.Population)
	assert.Equal(t, s.world.Year, report.ReportedYear)
	assert.Zero(t, report.ReportAge)
	assert.Len(t, s.alice.Intel.Planets, len(s.world.Planets))
}

func TestDiscover_ForeignPlanetInScannerRange(t *testing.T) {
	s := newScenario()

	intel.NewDiscoverer().Discover(s.world)

	report := s.alice.Intel.PlanetIntelByID(s.bobs.ID)
	require.NotNil(t, report)
	assert.False(t, report.Owned)
	assert.Equal(t, 2, report.PlayerNum)
	assert.Equal(t, game.DesignStarbase, report.StarbaseDesign)
	assert.Equal(t, s.world.Year, report.ReportedYear)
	assert.InDelta(t, 50_000, report.Population, 50_000*s.world.Rules.PopulationReportError+50)
	assert.Equal(t, 0, report.Population%100)

	far := s.alice.Intel.PlanetIntelByID(s.far.ID)
	require.NotNil(t, far)
	assert.False(t, far.Explored())
	assert.Equal(t, "Faraway", far.Name)
	assert.Zero(t, far.PlayerNum)
}

func TestDiscover_OutOfRangePlanetsKeepLastReport(t *testing.T) {
	s := newScenario()
	d := intel.NewDiscoverer()
	d.Discover(s.world)
	firstYear := s.world.Year

	s.scout.Position = shared.Vector{X: -400, Y: -400}
	s.scout.Orbiting = nil
	s.world.Year += 2
	d.Discover(s.world)

	report := s.alice.Intel.PlanetIntelByID(s.bobs.ID)
	require.NotNil(t, report)
	assert.Equal(t, firstYear, report.ReportedYear)
	assert.Equal(t, 2, report.ReportAge)
}

func TestDiscover_WormholesOutOfRangeKeepLastReport(t *testing.T) {
	// Arrange
	b := gametest.NewWorld()
	alice := b.AddPlayer("Alice")
	scout := b.AddFleet(alice, game.DesignScout, 1, 0, 0)
	near, far := b.AddWormholePair(shared.Vector{X: 20, Y: 0}, shared.Vector{X: 800, Y: 800})
	w := b.Build()
	d := intel.NewDiscoverer()
	d.Discover(w)
	firstYear := w.Year
	require.Len(t, alice.Intel.Wormholes, 1)

	// Act
	scout.Position = shared.Vector{X: 790, Y: 800}
	near.Position = shared.Vector{X: 25, Y: 5}
	w.Year += 3
	d.Discover(w)

	// Assert
	require.Len(t, alice.Intel.Wormholes, 2)
	old := alice.Intel.Wormholes[0]
	assert.Equal(t, near.ID, old.ID)
	assert.Equal(t, shared.Vector{X: 20, Y: 0}, old.Position)
	assert.Equal(t, firstYear, old.ReportedYear)
	assert.Equal(t, 3, old.ReportAge)
	assert.Equal(t, far.ID, old.DestinationID)
	fresh := alice.Intel.Wormholes[1]
	assert.Equal(t, far.ID, fresh.ID)
	assert.Zero(t, fresh.ReportAge)
	assert.Equal(t, near.ID, fresh.DestinationID)
}

func TestDiscover_IsIdempotent(t *testing.T) {
	s := newScenario()
	d := intel.NewDiscoverer()

	d.Discover(s.world)
	first := s.alice.Intel
	d.Discover(s.world)

	assert.Equal(t, first, s.alice.Intel)
}

func TestDiscover_ForeignFleetsRevealDesigns(t *testing.T) {
	s := newScenario()

	intel.NewDiscoverer().Discover(s.world)

	var seen *game.FleetIntel
	for i := range s.alice.Intel.Fleets {
		if s.alice.Intel.Fleets[i].ID == s.bobsSB.ID {
			seen = &s.alice.Intel.Fleets[i]
		}
	}
	require.NotNil(t, seen)
	assert.True(t, seen.Starbase)
	assert.True(t, seen.DetailsRevealed)
	assert.Equal(t, s.bobs.ID, seen.OrbitingPlanet)
	require.Len(t, s.alice.Intel.Designs, 1)
	assert.Equal(t, 2, s.alice.Intel.Designs[0].PlayerNum)
	assert.Equal(t, game.DesignStarbase, s.alice.Intel.Designs[0].Name)
}

func TestDiscover_BlindPlayerSeesOnlyOwnThings(t *testing.T) {
	s := newScenario()
	bob := s.world.Player(2)

	intel.NewDiscoverer().Discover(s.world)

	// bob's starbase has no scanner so only its own position is visible
	for _, f := range bob.Intel.Fleets {
		assert.Equal(t, 2, f.PlayerNum)
	}
	assert.False(t, bob.Intel.PlanetIntelByID(s.home.ID).Explored())
	require.Len(t, bob.Intel.Scores, 2)
}

func TestEstimatePopulation_IsStable(t *testing.T) {
	s := newScenario()

	first := intel.EstimatePopulation(s.world, 1, s.bobs)
	second := intel.EstimatePopulation(s.world, 1, s.bobs)

	assert.Equal(t, first, second)
}
