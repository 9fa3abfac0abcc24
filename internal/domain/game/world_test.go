package game_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/stars-go/internal/domain/game"
	"github.com/andrescamacho/stars-go/internal/domain/game/gametest"
	"github.com/andrescamacho/stars-go/internal/domain/rules"
)

func TestWorld_LinkResolvesReferences(t *testing.T) {
	// Arrange
	b := gametest.NewWorld()
	alice := b.AddPlayer("Alice")
	home := b.AddColony(alice, "Home", 100, 100, 50_000)
	starbase := b.AddStarbase(alice, home)
	scout := b.AddFleet(alice, game.DesignScout, 1, 100, 100)

	// Act
	w := b.Build()

	// Assert
	assert.Same(t, home, w.Planet(home.ID))
	assert.Same(t, starbase, home.Starbase)
	assert.Same(t, home, scout.Orbiting)
	assert.Same(t, alice.DesignByName(game.DesignScout), scout.Tokens[0].Design)
	assert.NoError(t, w.Validate())
}

func TestWorld_LinkReportsMissingDesign(t *testing.T) {
	b := gametest.NewWorld()
	alice := b.AddPlayer("Alice")
	f := b.AddFleet(alice, game.DesignScout, 1, 10, 10)
	w := b.Build()
	f.Tokens[0].DesignNum = 77

	errs := w.Link()

	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "design")
}

func TestWorld_AddFleetAssignsNumbers(t *testing.T) {
	b := gametest.NewWorld()
	alice := b.AddPlayer("Alice")
	b.AddFleet(alice, game.DesignScout, 1, 10, 10)
	w := b.Build()

	f := &game.Fleet{ID: b.ID(), PlayerNum: alice.Num}
	w.AddFleet(f)

	assert.Equal(t, 2, f.Num)
	assert.Equal(t, "Fleet #2", f.Name)
	assert.Same(t, f, w.Fleet(f.ID))
	require.Len(t, f.Waypoints, 1)
}

func TestWorld_RemoveDeletedDetachesStarbases(t *testing.T) {
	// Arrange
	b := gametest.NewWorld()
	alice := b.AddPlayer("Alice")
	home := b.AddColony(alice, "Home", 100, 100, 50_000)
	starbase := b.AddStarbase(alice, home)
	w := b.Build()
	starbase.Delete = true

	// Act
	w.RemoveDeleted()

	// Assert
	assert.Nil(t, home.Starbase)
	assert.Empty(t, w.Fleets)
	assert.Nil(t, w.Fleet(starbase.ID))
}

func TestWorld_InvadedPlanetLosesStarbase(t *testing.T) {
	// Arrange
	b := gametest.NewWorld()
	alice := b.AddPlayer("Alice")
	bob := b.AddPlayer("Bob")
	outpost := b.AddColony(bob, "Outpost", 100, 100, 1_000)
	starbase := b.AddStarbase(bob, outpost)
	w := b.Build()

	// Act
	result := outpost.Invade(alice, bob, 5_000, 0)
	w.RemoveDeleted()

	// Assert
	require.True(t, result.Captured)
	assert.True(t, outpost.OwnedBy(alice.Num))
	assert.True(t, starbase.Delete)
	assert.Nil(t, outpost.Starbase)
	assert.Nil(t, w.Fleet(starbase.ID))
	assert.Empty(t, w.FleetsOwnedBy(bob.Num))
}

func TestWorld_DepopulatedPlanetLosesStarbase(t *testing.T) {
	b := gametest.NewWorld()
	alice := b.AddPlayer("Alice")
	home := b.AddColony(alice, "Home", 100, 100, 50_000)
	b.AddStarbase(alice, home)
	w := b.Build()

	home.Abandon()
	w.RemoveDeleted()

	assert.False(t, home.Owned())
	assert.Nil(t, home.Starbase)
	assert.Empty(t, w.Fleets)
}

func TestWorld_ValidateRejectsUnknownOwner(t *testing.T) {
	b := gametest.NewWorld()
	b.AddPlayer("Alice")
	p := b.AddPlanet("Lost", 5, 5)
	p.PlayerNum = 9
	w := b.Build()

	assert.Error(t, w.Validate())
}

func TestComputeScores_RanksPlayers(t *testing.T) {
	// Arrange
	b := gametest.NewWorld()
	alice := b.AddPlayer("Alice")
	bob := b.AddPlayer("Bob")
	b.AddColony(alice, "A1", 10, 10, 90_000)
	b.AddColony(alice, "A2", 50, 10, 90_000)
	home := b.AddColony(bob, "B1", 200, 200, 30_000)
	b.AddStarbase(bob, home)
	b.AddFleet(bob, game.DesignScout, 2, 200, 200)
	w := b.Build()

	// Act
	scores := game.ComputeScores(w)

	// Assert
	require.Len(t, scores, 2)
	assert.Equal(t, 2, scores[0].Planets)
	assert.Equal(t, 1, scores[1].Starbases)
	assert.Equal(t, 2, scores[1].UnarmedShips)
	assert.Equal(t, 1, alice.Score.Rank)
	assert.Equal(t, 2, bob.Score.Rank)
	assert.Len(t, alice.ScoreHistory, 1)
}

func TestCheckVictory_DeclaresOnce(t *testing.T) {
	// Arrange
	b := gametest.NewWorld()
	b.Rules().Victory = rules.VictoryConditions{
		Conditions:          rules.VictoryOwnPlanets,
		NumCriteriaRequired: 1,
		YearsPassed:         1,
		OwnPlanetsPercent:   60,
	}
	alice := b.AddPlayer("Alice")
	b.AddPlayer("Bob")
	b.AddColony(alice, "A1", 10, 10, 10_000)
	b.AddColony(alice, "A2", 50, 10, 10_000)
	b.AddPlanet("Free", 90, 90)
	w := b.WithYear(b.Rules().StartingYear + 1).Build()
	game.ComputeScores(w)

	// Act
	victors := game.CheckVictory(w)
	again := game.CheckVictory(w)

	// Assert
	require.Len(t, victors, 1)
	assert.Same(t, alice, victors[0])
	assert.True(t, alice.Victor)
	assert.True(t, w.VictorDeclared)
	assert.Equal(t, game.GameStateFinished, w.State)
	assert.Empty(t, again)
}

func TestCheckVictory_WaitsForMinimumYears(t *testing.T) {
	b := gametest.NewWorld()
	b.Rules().Victory.Conditions = rules.VictoryOwnPlanets
	b.Rules().Victory.YearsPassed = 10
	b.Rules().Victory.OwnPlanetsPercent = 10
	alice := b.AddPlayer("Alice")
	b.AddColony(alice, "A1", 10, 10, 10_000)
	w := b.Build()
	game.ComputeScores(w)

	victors := game.CheckVictory(w)

	assert.Empty(t, victors)
	assert.NotZero(t, alice.AchievedVictoryConditions&rules.VictoryOwnPlanets)
}
