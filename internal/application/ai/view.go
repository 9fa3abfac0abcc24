package ai

import (
	"github.com/andrescamacho/stars-go/internal/domain/game"
)

// PlayerView is everything a computer player looks at: its own planets and
// fleets plus its intel about the rest of the universe.
type PlayerView struct {
	Year    int
	Player  *game.Player
	Planets []*game.Planet
	Fleets  []*game.Fleet
}

func NewPlayerView(w *game.World, player *game.Player) PlayerView {
	return PlayerView{
		Year:    w.Year,
		Player:  player,
		Planets: w.PlanetsOwnedBy(player.Num),
		Fleets:  w.FleetsOwnedBy(player.Num),
	}
}

// Intel is shorthand for the player's intel.
func (v PlayerView) Intel() *game.PlayerIntel {
	return &v.Player.Intel
}
