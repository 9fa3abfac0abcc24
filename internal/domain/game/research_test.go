package game_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/stars-go/internal/domain/game"
	"github.com/andrescamacho/stars-go/internal/domain/game/gametest"
	"github.com/andrescamacho/stars-go/internal/domain/rules"
)

func TestResearch_LevelsUpAndCarriesRemainder(t *testing.T) {
	// Arrange
	b := gametest.NewWorld()
	alice := b.AddPlayer("Alice")
	rs := b.Rules()
	// JoaT starts at 3 everywhere: level 4 costs 210 + 10*18
	assert.Equal(t, 390, alice.ResearchCost(rs, rules.Energy))

	// Act
	gained := alice.Research(rs, 400)

	// Assert
	assert.Equal(t, []rules.TechField{rules.Energy}, gained)
	assert.Equal(t, 4, alice.TechLevels.Energy)
	assert.Equal(t, 10, alice.TechLevelsSpent.Energy)
	assert.Equal(t, 400, alice.ResearchSpent.Energy)
}

func TestResearch_NextFieldLowest(t *testing.T) {
	b := gametest.NewWorld()
	alice := b.AddPlayer("Alice")
	alice.TechLevels = rules.TechLevel{Energy: 3, Weapons: 3, Propulsion: 3, Construction: 3, Electronics: 3, Biotechnology: 1}
	alice.NextResearchField = game.NextResearchLowestField

	gained := alice.Research(b.Rules(), alice.ResearchCost(b.Rules(), rules.Energy))

	assert.Equal(t, []rules.TechField{rules.Energy}, gained)
	assert.Equal(t, rules.Biotechnology, alice.Researching)
}

func TestResearch_PartialSpendAccumulates(t *testing.T) {
	b := gametest.NewWorld()
	alice := b.AddPlayer("Alice")
	rs := b.Rules()

	alice.Research(rs, 200)
	gained := alice.Research(rs, 190)

	assert.Equal(t, []rules.TechField{rules.Energy}, gained)
	assert.Equal(t, 4, alice.TechLevels.Energy)
	assert.Zero(t, alice.TechLevelsSpent.Energy)
}

func TestAddResearch_LeavesChoicesAlone(t *testing.T) {
	b := gametest.NewWorld()
	alice := b.AddPlayer("Alice")

	// 390 for level 4, 530 for level 5, 80 toward level 6
	gained := alice.AddResearch(b.Rules(), rules.Weapons, 1000)

	assert.Equal(t, []rules.TechField{rules.Weapons, rules.Weapons}, gained)
	assert.Equal(t, 5, alice.TechLevels.Weapons)
	assert.Equal(t, 80, alice.TechLevelsSpent.Weapons)
	assert.Equal(t, rules.Energy, alice.Researching)
}

func TestInvade(t *testing.T) {
	tests := []struct {
		name      string
		colonists int
		defenders int
		coverage  float64
		captured  bool
		left      int
	}{
		{name: "attackers win", colonists: 5000, defenders: 2000, captured: true, left: 3000},
		{name: "defenders hold", colonists: 2000, defenders: 5000, left: 3000},
		{name: "coverage helps defenders", colonists: 3000, defenders: 2000, coverage: 0.5, left: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := gametest.NewWorld()
			alice := b.AddPlayer("Alice")
			bob := b.AddPlayer("Bob")
			target := b.AddColony(bob, "Target", 0, 0, tt.defenders)

			result := target.Invade(alice, bob, tt.colonists, tt.coverage)

			assert.Equal(t, tt.captured, result.Captured)
			if tt.captured {
				assert.Equal(t, alice.Num, target.PlayerNum)
				assert.Equal(t, tt.left, target.Population)
			} else {
				assert.Equal(t, tt.left, result.DefendersLeft)
			}
		})
	}
}

func TestBomb_KillsAndDestroysBuildings(t *testing.T) {
	b := gametest.NewWorld()
	bob := b.AddPlayer("Bob")
	target := b.AddColony(bob, "Target", 0, 0, 100_000)
	target.Defenses = 2

	result := target.Bomb([]game.BombSlot{{KillRate: 0.6, MinKill: 300, StructureKill: 2, Quantity: 10}}, 0)

	assert.Equal(t, 6000, result.Killed)
	assert.Equal(t, 94_000, target.Population)
	assert.Equal(t, 2, result.DefensesDestroyed)
	assert.Equal(t, 9, result.MinesDestroyed)
	assert.Equal(t, 9, result.FactoriesDestroyed)
}

func TestTransportTask_Amounts(t *testing.T) {
	assert.Equal(t, 30, game.TransportTask{Action: game.TransportLoadAll}.LoadAmount(0, 30, 70, 70))
	assert.Equal(t, 70, game.TransportTask{Action: game.TransportLoadAll}.LoadAmount(0, 500, 70, 70))
	assert.Equal(t, 35, game.TransportTask{Action: game.TransportFillPercent, Amount: 50}.LoadAmount(0, 500, 70, 70))
	assert.Equal(t, 5, game.TransportTask{Action: game.TransportSetAmountTo, Amount: 25}.LoadAmount(20, 500, 50, 70))
	assert.Equal(t, 10, game.TransportTask{Action: game.TransportUnloadAmount, Amount: 10}.UnloadAmount(40, 0))
	assert.Equal(t, 15, game.TransportTask{Action: game.TransportSetWaypointTo, Amount: 20}.UnloadAmount(40, 5))
	assert.False(t, game.TransportTask{Action: game.TransportWaitForPercent, Amount: 100}.Satisfied(60, 70))
}
