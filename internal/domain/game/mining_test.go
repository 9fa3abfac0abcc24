package game_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/stars-go/internal/domain/game"
	"github.com/andrescamacho/stars-go/internal/domain/rules"
	"github.com/andrescamacho/stars-go/internal/domain/shared"
)

func TestMine_ExtractsAtCurrentConcentration(t *testing.T) {
	// Arrange
	rs := rules.Default()
	conc := shared.Cargo{Ironium: 100, Boranium: 100, Germanium: 100}
	p := &game.Planet{PlayerNum: 1, BaseConcentration: conc, MineralConcentration: conc}

	// Act
	extracted := p.Mine(rs, 10)

	// Assert
	assert.Equal(t, shared.Cargo{Ironium: 10, Boranium: 10, Germanium: 10}, extracted)
	assert.Equal(t, shared.Cargo{Ironium: 10, Boranium: 10, Germanium: 10}, p.Cargo)
	assert.Equal(t, shared.Cargo{Ironium: 10, Boranium: 10, Germanium: 10}, p.MineYears)
	assert.Equal(t, conc, p.MineralConcentration, "10 mine-years is below the first decay threshold")
}

func TestDecayedConcentration(t *testing.T) {
	const factor = 1_500_000

	tests := []struct {
		name      string
		base      int
		mineYears int
		floor     int
		want      int
	}{
		{"untouched", 100, 0, 1, 100},
		{"just below first threshold", 100, 149, 1, 100},
		{"first threshold crossed", 100, 150, 1, 99},
		{"exhausted deposit stops at floor", 10, 10_000_000, 1, 1},
		{"homeworld floor", 40, 10_000_000, 30, 30},
		{"base below floor is raised", 5, 0, 30, 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, game.DecayedConcentration(tt.base, tt.mineYears, tt.floor, factor))
		})
	}
}

func TestDecayedConcentration_NeverIncreasesWithMining(t *testing.T) {
	prev := game.DecayedConcentration(80, 0, 1, 1_500_000)
	for years := 0; years <= 200_000; years += 997 {
		c := game.DecayedConcentration(80, years, 1, 1_500_000)
		assert.LessOrEqual(t, c, prev)
		assert.GreaterOrEqual(t, c, 1)
		prev = c
	}
}

func TestRecomputeConcentration_IsIdempotent(t *testing.T) {
	rs := rules.Default()
	p := &game.Planet{
		BaseConcentration: shared.Cargo{Ironium: 90, Boranium: 40, Germanium: 12},
		MineYears:         shared.Cargo{Ironium: 5000, Boranium: 20_000, Germanium: 60_000},
	}

	p.RecomputeConcentration(rs)
	first := p.MineralConcentration
	p.RecomputeConcentration(rs)

	assert.Equal(t, first, p.MineralConcentration)
}

func TestMine_HomeworldKeepsHomeworldFloor(t *testing.T) {
	rs := rules.Default()
	p := &game.Planet{
		Homeworld:         true,
		BaseConcentration: shared.Cargo{Ironium: 31, Boranium: 31, Germanium: 31},
		MineYears:         shared.Cargo{Ironium: 1_000_000, Boranium: 1_000_000, Germanium: 1_000_000},
	}

	for i := 0; i < 5; i++ {
		p.Mine(rs, 500)
	}

	assert.Equal(t, rs.MinHomeworldMineralConcentration, p.MineralConcentration.Ironium)
}
