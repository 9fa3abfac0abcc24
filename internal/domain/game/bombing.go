package game

import (
	"math"

	"github.com/andrescamacho/stars-go/pkg/utils"
)

// BombingResult reports one year of orbital bombardment.
type BombingResult struct {
	Killed             int
	DefensesDestroyed  int
	MinesDestroyed     int
	FactoriesDestroyed int
}

// Bomb drops bombs on the planet. coverage is the planet's defence coverage;
// smart bombs face only half of it and never hit buildings.
func (p *Planet) Bomb(bombs []BombSlot, coverage float64) BombingResult {
	var killRate, minKill, structures, smartRate float64
	for _, b := range bombs {
		if b.Smart {
			smartRate += b.KillRate * float64(b.Quantity)
			continue
		}
		killRate += b.KillRate * float64(b.Quantity)
		minKill += float64(b.MinKill * b.Quantity)
		structures += float64(b.StructureKill * b.Quantity)
	}

	pop := float64(p.Population)
	killed := math.Max(pop*killRate/100, minKill) * (1 - coverage)
	killed += pop * smartRate / 100 * (1 - coverage/2)
	var result BombingResult
	result.Killed = utils.Min(p.Population, utils.RoundToNearest100(killed))
	p.Population -= result.Killed

	destroy := int(structures * (1 - coverage))
	result.DefensesDestroyed = utils.Min(destroy, p.Defenses)
	p.Defenses -= result.DefensesDestroyed
	destroy -= result.DefensesDestroyed
	result.MinesDestroyed = utils.Min((destroy+1)/2, p.Mines)
	result.FactoriesDestroyed = utils.Min(destroy-result.MinesDestroyed, p.Factories)
	p.Mines -= result.MinesDestroyed
	p.Factories -= result.FactoriesDestroyed

	if p.Population == 0 && p.Owned() {
		p.Abandon()
	}
	return result
}
