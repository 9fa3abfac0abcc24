package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/stars-go/internal/domain/combat"
	"github.com/andrescamacho/stars-go/internal/domain/game"
	"github.com/andrescamacho/stars-go/internal/domain/game/gametest"
	"github.com/andrescamacho/stars-go/internal/domain/rules"
	"github.com/andrescamacho/stars-go/internal/domain/shared"
)

func newEngine(w *game.World) *combat.Engine {
	return combat.NewEngine(w.Rules, w.Techs, shared.NewRandom(w.Rules.Seed, w.Year))
}

func TestFindSites(t *testing.T) {
	t.Run("armed enemies at the same position meet", func(t *testing.T) {
		b := gametest.NewWorld()
		alice, bob := b.AddPlayer("Alice"), b.AddPlayer("Bob")
		b.AddFleet(alice, game.DesignArmedProbe, 1, 50, 50)
		b.AddFleet(bob, game.DesignScout, 1, 50, 50)
		b.AddFleet(bob, game.DesignScout, 1, 80, 80)
		w := b.Build()

		sites := combat.FindSites(w)

		require.Len(t, sites, 1)
		assert.Equal(t, shared.Vector{X: 50, Y: 50}, sites[0].Position)
		assert.Equal(t, []int{1, 2}, sites[0].Players())
	})

	t.Run("unarmed fleets never start a battle", func(t *testing.T) {
		b := gametest.NewWorld()
		alice, bob := b.AddPlayer("Alice"), b.AddPlayer("Bob")
		b.AddFleet(alice, game.DesignScout, 1, 50, 50)
		b.AddFleet(bob, game.DesignScout, 1, 50, 50)

		assert.Empty(t, combat.FindSites(b.Build()))
	})

	t.Run("friends do not fight", func(t *testing.T) {
		b := gametest.NewWorld()
		alice, bob := b.AddPlayer("Alice"), b.AddPlayer("Bob")
		alice.Relations = []game.PlayerRelation{game.RelationFriend, game.RelationFriend}
		bob.Relations = []game.PlayerRelation{game.RelationFriend, game.RelationFriend}
		b.AddFleet(alice, game.DesignArmedProbe, 1, 50, 50)
		b.AddFleet(bob, game.DesignArmedProbe, 1, 50, 50)

		assert.Empty(t, combat.FindSites(b.Build()))
	})
}

func TestResolve_ArmedFleetDestroysFleeingScout(t *testing.T) {
	// Arrange
	b := gametest.NewWorld()
	alice, bob := b.AddPlayer("Alice"), b.AddPlayer("Bob")
	b.AddFleet(alice, game.DesignArmedProbe, 3, 50, 50)
	scout := b.AddFleet(bob, game.DesignScout, 1, 50, 50)
	w := b.Build()

	// Act
	records := newEngine(w).ResolveAll(w)

	// Assert
	require.Len(t, records, 1)
	record := records[0]
	assert.True(t, scout.Delete)
	assert.Equal(t, 1, record.Stats.ShipsDestroyedByPlayer[bob.Num])
	assert.Zero(t, record.Stats.ShipsDestroyedByPlayer[alice.Num])

	var destroyed []game.BattleRecordAction
	for _, a := range record.Actions {
		if a.Kind == game.BattleActionDestroyed {
			destroyed = append(destroyed, a)
		}
	}
	require.Len(t, destroyed, 1)
	assert.Equal(t, 2, destroyed[0].TokenNum)

	require.Len(t, w.Salvages, 1, "wreckage in deep space becomes salvage")
	assert.False(t, w.Salvages[0].Cargo.IsZero())

	require.NotEmpty(t, bob.Messages)
	assert.Equal(t, record.ID, bob.Messages[0].BattleID)
	assert.Equal(t, game.MessageBattle, alice.Messages[0].Type)
}

func TestResolve_RecordKeepsInitialTokens(t *testing.T) {
	b := gametest.NewWorld()
	alice, bob := b.AddPlayer("Alice"), b.AddPlayer("Bob")
	b.AddFleet(alice, game.DesignArmedProbe, 3, 50, 50)
	b.AddFleet(bob, game.DesignScout, 2, 50, 50)
	w := b.Build()

	records := newEngine(w).ResolveAll(w)

	require.Len(t, records, 1)
	require.Len(t, records[0].Tokens, 2)
	assert.Equal(t, 3, records[0].Tokens[0].Quantity)
	assert.Equal(t, 2, records[0].Tokens[1].Quantity)
	assert.NotEqual(t, records[0].Tokens[0].Position, records[0].Tokens[1].Position)
}

func torpedoBoat() *game.ShipDesign {
	return &game.ShipDesign{
		Name: "Torpedo Boat",
		Hull: rules.HullDestroyer,
		Slots: []game.ShipDesignSlot{
			{HullSlot: 0, Component: rules.EngineQuickJump5, Quantity: 1},
			{HullSlot: 1, Component: rules.TorpedoAlpha, Quantity: 1},
			{HullSlot: 2, Component: rules.TorpedoAlpha, Quantity: 1},
			{HullSlot: 4, Component: rules.ArmorTritanium, Quantity: 2},
		},
	}
}

func buildDuel() *game.World {
	b := gametest.NewWorld()
	alice, bob := b.AddPlayer("Alice"), b.AddPlayer("Bob")
	b.AddDesign(alice, torpedoBoat())
	b.AddFleet(alice, "Torpedo Boat", 4, 50, 50)
	b.AddFleet(bob, game.DesignArmedProbe, 4, 50, 50)
	return b.Build()
}

func TestResolve_IsDeterministicForSeedAndYear(t *testing.T) {
	// Arrange
	first, second := buildDuel(), buildDuel()

	// Act
	r1 := newEngine(first).ResolveAll(first)
	r2 := newEngine(second).ResolveAll(second)

	// Assert
	require.Len(t, r1, 1)
	require.Len(t, r2, 1)
	assert.Equal(t, r1[0].ID, r2[0].ID)
	assert.Equal(t, r1[0].Actions, r2[0].Actions)
	assert.Equal(t, r1[0].Stats, r2[0].Stats)
}

func TestResolve_StarbaseLossDetachesFromPlanet(t *testing.T) {
	// Arrange
	b := gametest.NewWorld()
	alice, bob := b.AddPlayer("Alice"), b.AddPlayer("Bob")
	home := b.AddColony(bob, "Home", 50, 50, 10_000)
	starbase := b.AddStarbase(bob, home)
	starbase.Tokens[0].Damage = float64(starbase.Tokens[0].Design.Spec.Armor) - 1
	starbase.Tokens[0].QuantityDamaged = 1
	b.AddFleet(alice, game.DesignArmedProbe, 10, 50, 50)
	w := b.Build()

	// Act
	records := newEngine(w).ResolveAll(w)
	w.RemoveDeleted()

	// Assert
	require.Len(t, records, 1)
	assert.Equal(t, home.ID, records[0].PlanetID)
	assert.True(t, starbase.Delete)
	assert.Nil(t, home.Starbase)
	assert.False(t, home.Cargo.IsZero(), "wreckage over a planet falls to its surface")
}
