package combat

import (
	"github.com/andrescamacho/stars-go/internal/domain/game"
	"github.com/andrescamacho/stars-go/pkg/utils"
)

// battleToken is one ship stack on the board.
type battleToken struct {
	num       int
	playerNum int
	fleet     *game.Fleet
	ship      *game.ShipToken
	design    *game.ShipDesign
	plan      game.BattlePlan
	owner     *game.Player

	pos        game.BattleVector
	shields    float64 // stack shield pool, regenerates each battle
	initiative int
	movement   int

	startQuantity  int
	destroyed      bool
	ranAway        bool
	challenged     bool // has been fired upon
	roundsSurvived int
	damageTaken    float64
}

func (t *battleToken) alive() bool {
	return !t.destroyed && !t.ranAway && t.ship.Quantity > 0
}

func (t *battleToken) armed() bool {
	return t.design.Spec.Armed()
}

// wantsToRun reports whether the token tries to leave the board.
func (t *battleToken) wantsToRun() bool {
	if !t.armed() {
		return true
	}
	switch t.plan.Tactic {
	case game.TacticDisengage:
		return true
	case game.TacticDisengageIfChallenged:
		return t.challenged
	}
	return false
}

// willAttack reports whether t shoots at other.
func (t *battleToken) willAttack(other *battleToken) bool {
	return other.playerNum != t.playerNum && t.owner.WillAttack(t.plan, other.playerNum)
}

// matches reports whether the token falls in a target class.
func (t *battleToken) matches(target game.BattleTarget) bool {
	spec := &t.design.Spec
	switch target {
	case game.TargetAny:
		return true
	case game.TargetStarbase:
		return spec.Starbase
	case game.TargetArmedShips:
		return spec.Armed()
	case game.TargetBombersFreighters:
		return spec.Bomber() || spec.CargoCapacity > 0
	case game.TargetUnarmedShips:
		return !spec.Armed()
	case game.TargetFuelTransports:
		return !spec.Armed() && spec.CargoCapacity == 0 && !spec.Starbase
	case game.TargetFreighters:
		return spec.CargoCapacity > 0
	}
	return false
}

// attractiveness is cost per point of defense; cheap-to-kill expensive
// ships come first.
func (t *battleToken) attractiveness() float64 {
	spec := &t.design.Spec
	cost := spec.Cost.Resources + spec.Cost.Ironium + spec.Cost.Boranium + spec.Cost.Germanium
	defense := utils.Max(1, spec.Armor+spec.Shield)
	return float64(cost) / float64(defense)
}

// boardDistance is the number of king moves between two squares.
func boardDistance(a, b game.BattleVector) int {
	return utils.Max(utils.Abs(a.X-b.X), utils.Abs(a.Y-b.Y))
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// stepToward moves one square closer to target.
func stepToward(from, to game.BattleVector) game.BattleVector {
	return game.BattleVector{X: from.X + sign(to.X-from.X), Y: from.Y + sign(to.Y-from.Y)}
}

// stepAway moves one square away from threat, staying on the board.
func stepAway(from, threat game.BattleVector, size int) game.BattleVector {
	dx, dy := sign(from.X-threat.X), sign(from.Y-threat.Y)
	if dx == 0 && dy == 0 {
		dx = 1
	}
	return game.BattleVector{
		X: utils.Clamp(from.X+dx, 0, size-1),
		Y: utils.Clamp(from.Y+dy, 0, size-1),
	}
}

// startPosition is the square side i of n starts on. The first two sides
// face each other across the middle row; later ones take the remaining
// edges and corners.
func startPosition(i, size int) game.BattleVector {
	far, mid := size-2, size/2
	slots := []game.BattleVector{
		{X: 1, Y: mid},
		{X: far, Y: mid},
		{X: mid, Y: 1},
		{X: mid, Y: far},
		{X: 1, Y: 1},
		{X: far, Y: far},
		{X: 1, Y: far},
		{X: far, Y: 1},
	}
	return slots[i%len(slots)]
}
