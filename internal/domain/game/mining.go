package game

import (
	"github.com/andrescamacho/stars-go/internal/domain/rules"
	"github.com/andrescamacho/stars-go/internal/domain/shared"
)

// DecayedConcentration derives the concentration of one mineral from its
// starting value and the mine-years worked against it. Each point of
// concentration costs decayFactor/c² mine-years to lose, so rich deposits
// drain slowly at first and poor ones faster. The result never drops below
// floor and depends only on its inputs.
func DecayedConcentration(base, mineYears, floor, decayFactor int) int {
	c := base
	remaining := mineYears
	for c > floor {
		threshold := decayFactor / (c * c)
		if threshold < 1 {
			threshold = 1
		}
		if remaining < threshold {
			break
		}
		remaining -= threshold
		c--
	}
	if c < floor {
		return floor
	}
	return c
}

// MineralOutput is the kT one mineral yields per year from mines at a
// concentration.
func MineralOutput(concentration, mines, mineOutput int) int {
	return int(float64(concentration)/100*float64(mines)/10*float64(mineOutput) + 0.5)
}

// ConcentrationFloor is the lowest concentration a planet can reach.
func (p *Planet) ConcentrationFloor(rs *rules.Rules) int {
	if p.Homeworld {
		return rs.MinHomeworldMineralConcentration
	}
	return rs.MinMineralConcentration
}

// Mine extracts one year of minerals with mines mines, then advances the
// mine-years accumulator and re-derives concentration. Extraction uses the
// concentration in effect at the start of the year.
func (p *Planet) Mine(rs *rules.Rules, mines int) shared.Cargo {
	var extracted shared.Cargo
	for _, mineral := range shared.MineralTypes {
		extracted.Set(mineral, MineralOutput(p.MineralConcentration.Get(mineral), mines, rs.MineOutput))
		p.MineYears.Set(mineral, p.MineYears.Get(mineral)+mines)
	}
	p.Cargo = p.Cargo.Add(extracted)
	p.RecomputeConcentration(rs)
	return extracted
}

// RecomputeConcentration re-derives every concentration from base values and
// mine-years. Running it any number of times gives the same answer.
func (p *Planet) RecomputeConcentration(rs *rules.Rules) {
	floor := p.ConcentrationFloor(rs)
	for _, mineral := range shared.MineralTypes {
		p.MineralConcentration.Set(mineral, DecayedConcentration(
			p.BaseConcentration.Get(mineral),
			p.MineYears.Get(mineral),
			floor,
			rs.MineralDecayFactor,
		))
	}
}
