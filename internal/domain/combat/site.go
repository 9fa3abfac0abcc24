package combat

import (
	"sort"

	"github.com/andrescamacho/stars-go/internal/domain/game"
	"github.com/andrescamacho/stars-go/internal/domain/shared"
)

// Site is one location where fleets of different players meet.
type Site struct {
	Position shared.Vector
	Planet   *game.Planet // nil in deep space
	Fleets   []*game.Fleet
}

// Players returns the distinct owners present, ascending.
func (s Site) Players() []int {
	seen := map[int]bool{}
	var players []int
	for _, f := range s.Fleets {
		if !seen[f.PlayerNum] {
			seen[f.PlayerNum] = true
			players = append(players, f.PlayerNum)
		}
	}
	sort.Ints(players)
	return players
}

// FindSites groups live fleets by position and keeps the locations where a
// battle would start. Sites are ordered by position so resolution order is
// stable.
func FindSites(w *game.World) []Site {
	byPos := map[shared.Vector][]*game.Fleet{}
	var positions []shared.Vector
	for _, f := range w.Fleets {
		if f.Delete || !f.HasTokens() {
			continue
		}
		if _, ok := byPos[f.Position]; !ok {
			positions = append(positions, f.Position)
		}
		byPos[f.Position] = append(byPos[f.Position], f)
	}
	sort.Slice(positions, func(i, j int) bool {
		if positions[i].X != positions[j].X {
			return positions[i].X < positions[j].X
		}
		return positions[i].Y < positions[j].Y
	})

	var sites []Site
	for _, pos := range positions {
		site := Site{Position: pos, Planet: w.PlanetAt(pos), Fleets: byPos[pos]}
		if len(site.Players()) < 2 {
			continue
		}
		if hostile(w, site.Fleets) {
			sites = append(sites, site)
		}
	}
	return sites
}

// hostile reports whether any armed fleet wants to attack another fleet present.
func hostile(w *game.World, fleets []*game.Fleet) bool {
	for _, attacker := range fleets {
		if !attacker.Spec().Armed {
			continue
		}
		owner := w.Player(attacker.PlayerNum)
		if owner == nil {
			continue
		}
		plan := owner.BattlePlan(attacker.BattlePlanNum)
		for _, target := range fleets {
			if target.PlayerNum != attacker.PlayerNum && owner.WillAttack(plan, target.PlayerNum) {
				return true
			}
		}
	}
	return false
}
