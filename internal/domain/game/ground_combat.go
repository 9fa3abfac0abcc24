package game

import (
	"github.com/andrescamacho/stars-go/pkg/utils"
)

// InvasionResult reports a ground assault.
type InvasionResult struct {
	Captured      bool
	Attackers     int
	Defenders     int
	AttackersLeft int
	DefendersLeft int
}

// Invade lands colonists on an enemy planet. Attack strength is colonists
// times the attacker's ground factor; defence is population times the
// defender's ground factor, raised by planetary defence coverage. The
// stronger side keeps its surplus, rounded down to whole hundreds.
func (p *Planet) Invade(attacker, defender *Player, colonists int, coverage float64) InvasionResult {
	result := InvasionResult{Attackers: colonists, Defenders: p.Population}
	attackFactor := attacker.Race.GroundAttackFactor()
	defenseFactor := defender.Race.GroundDefenseFactor() * (1 + coverage)
	attack := float64(colonists) * attackFactor
	defense := float64(p.Population) * defenseFactor

	if attack > defense {
		left := int((attack-defense)/attackFactor) / 100 * 100
		result.AttackersLeft = left
		p.Abandon()
		if left > 0 {
			p.PlayerNum = attacker.Num
			p.Population = left
			result.Captured = true
		}
		return result
	}

	left := int((defense-attack)/defenseFactor) / 100 * 100
	result.DefendersLeft = utils.Min(left, p.Population)
	p.Population = result.DefendersLeft
	if p.Population == 0 {
		p.Abandon()
	}
	return result
}
