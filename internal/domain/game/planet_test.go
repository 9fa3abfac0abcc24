package game_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/stars-go/internal/domain/game"
	"github.com/andrescamacho/stars-go/internal/domain/rules"
)

func TestHabitability(t *testing.T) {
	race := game.DefaultRace()

	tests := []struct {
		name string
		hab  game.Hab
		want int
	}{
		{"ideal planet", game.Hab{Grav: 50, Temp: 50, Rad: 50}, 100},
		{"edge of range on one axis", game.Hab{Grav: 85, Temp: 50, Rad: 50}, 41},
		{"far outside range caps red penalty", game.Hab{Grav: 0, Temp: 50, Rad: 50}, -15},
		{"two axes out of range add up", game.Hab{Grav: 10, Temp: 95, Rad: 50}, -15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, race.Habitability(tt.hab))
		})
	}
}

func TestHabitability_ImmuneAxisCountsAsIdeal(t *testing.T) {
	race := game.DefaultRace()
	race.ImmuneGrav = true

	assert.Equal(t, 100, race.Habitability(game.Hab{Grav: 0, Temp: 50, Rad: 50}))
}

func TestMaxPopulation_ScalesWithHabAndFloor(t *testing.T) {
	rs := rules.Default()
	race := game.DefaultRace()

	assert.Equal(t, 1_200_000, game.MaxPopulationForHab(&race, rs, 100))
	assert.Equal(t, 492_000, game.MaxPopulationForHab(&race, rs, 41))
	assert.Equal(t, 60_000, game.MaxPopulationForHab(&race, rs, -10), "hostile planets keep the minimum percent")
}

func TestGrowPopulation(t *testing.T) {
	rs := rules.Default()
	race := game.DefaultRace()

	t.Run("uncrowded planet grows by growth rate times hab", func(t *testing.T) {
		// Arrange
		p := &game.Planet{PlayerNum: 1, Population: 100_000, Hab: game.Hab{Grav: 50, Temp: 50, Rad: 50}}

		// Act
		delta := p.GrowPopulation(&race, rs)

		// Assert
		assert.Equal(t, 15_000, delta)
		assert.Equal(t, 115_000, p.Population)
	})

	t.Run("overfull planet never exceeds max population", func(t *testing.T) {
		p := &game.Planet{PlayerNum: 1, Population: 1_500_000, Hab: game.Hab{Grav: 50, Temp: 50, Rad: 50}}

		p.GrowPopulation(&race, rs)

		assert.Equal(t, p.MaxPopulation(&race, rs), p.Population)
	})

	t.Run("population is always a multiple of 100", func(t *testing.T) {
		p := &game.Planet{PlayerNum: 1, Population: 12_345, Hab: game.Hab{Grav: 60, Temp: 40, Rad: 70}}

		p.GrowPopulation(&race, rs)

		assert.Zero(t, p.Population%100)
	})

	t.Run("dying colony is abandoned but keeps its buildings", func(t *testing.T) {
		// Arrange
		p := &game.Planet{
			PlayerNum:       1,
			Population:      100,
			Mines:           4,
			Factories:       2,
			Hab:             game.Hab{Grav: 0, Temp: 50, Rad: 50},
			ProductionQueue: []*game.ProductionQueueItem{{Type: game.QueueItemMine, Quantity: 1}},
		}

		// Act
		p.GrowPopulation(&race, rs)

		// Assert
		assert.Equal(t, 0, p.Population)
		assert.False(t, p.Owned())
		assert.Empty(t, p.ProductionQueue)
		assert.Equal(t, 4, p.Mines)
		assert.Equal(t, 2, p.Factories)
	})
}

func TestResourcesPerYear_UsesOperableFactories(t *testing.T) {
	rs := rules.Default()
	p := &game.Planet{PlayerNum: 1, Population: 20_000, Factories: 100}

	// 20 from people, only 20 of 100 factories can be worked
	assert.Equal(t, 20+20, p.ResourcesPerYear(rs))
}

func TestTerraformOneStep_MovesWorstAxisTowardIdeal(t *testing.T) {
	race := game.DefaultRace()
	hab := game.Hab{Grav: 40, Temp: 56, Rad: 50}
	p := &game.Planet{Hab: hab, BaseHab: hab}
	ability := func(rules.HabType) int { return 3 }

	field, ok := p.TerraformOneStep(&race, ability)

	require.True(t, ok)
	assert.Equal(t, rules.HabGravity, field)
	assert.Equal(t, 41, p.Hab.Grav)
	assert.Equal(t, game.Hab{Grav: 1}, p.TerraformedAmount)
}

func TestTerraformOneStep_StopsAtAbility(t *testing.T) {
	race := game.DefaultRace()
	p := &game.Planet{Hab: game.Hab{Grav: 43, Temp: 50, Rad: 50}, BaseHab: game.Hab{Grav: 40, Temp: 50, Rad: 50}}

	_, ok := p.TerraformOneStep(&race, func(rules.HabType) int { return 3 })

	assert.False(t, ok)
}

func TestDefenseCoverage(t *testing.T) {
	sdi, ok := rules.DefaultTechCatalog().Tech(rules.DefenseSDI)
	require.True(t, ok)

	p := &game.Planet{Defenses: 10}

	assert.InDelta(t, 1-math.Pow(0.9901, 10), p.DefenseCoverage(sdi), 1e-9)
	assert.Zero(t, (&game.Planet{}).DefenseCoverage(sdi))
}
