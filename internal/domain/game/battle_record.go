package game

import (
	"github.com/google/uuid"

	"github.com/andrescamacho/stars-go/internal/domain/shared"
)

// BattleVector is a square on the battle board.
type BattleVector struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// BattleRecordToken is a token's state at the start of a battle.
type BattleRecordToken struct {
	Num        int          `json:"num"`
	PlayerNum  int          `json:"playerNum"`
	FleetID    uuid.UUID    `json:"fleetId"`
	DesignNum  int          `json:"designNum"`
	DesignName string       `json:"designName"`
	Quantity   int          `json:"quantity"`
	Armor      int          `json:"armor"`
	Shields    int          `json:"shields"`
	Damage     float64      `json:"damage"`
	Initiative int          `json:"initiative"`
	Movement   int          `json:"movement"`
	Tactic     BattleTactic `json:"tactic"`
	Position   BattleVector `json:"position"`
}

// BattleActionKind is what a token did in one action.
type BattleActionKind int

const (
	BattleActionMove BattleActionKind = iota
	BattleActionFire
	BattleActionDestroyed
	BattleActionRanAway
)

func (k BattleActionKind) String() string {
	switch k {
	case BattleActionMove:
		return "Move"
	case BattleActionFire:
		return "Fire"
	case BattleActionDestroyed:
		return "Destroyed"
	case BattleActionRanAway:
		return "RanAway"
	}
	return "Unknown"
}

// BattleRecordAction is one entry of the battle log.
type BattleRecordAction struct {
	Round           int              `json:"round"`
	TokenNum        int              `json:"tokenNum"`
	Kind            BattleActionKind `json:"kind"`
	From            BattleVector     `json:"from"`
	To              BattleVector     `json:"to"`
	TargetNum       int              `json:"targetNum,omitempty"`
	Weapon          string           `json:"weapon,omitempty"`
	DamageToShields int              `json:"damageToShields,omitempty"`
	DamageToArmor   int              `json:"damageToArmor,omitempty"`
	TokensDestroyed int              `json:"tokensDestroyed,omitempty"`
	Missed          bool             `json:"missed,omitempty"`
}

// BattleStats summarises a battle per player.
type BattleStats struct {
	NumRounds              int         `json:"numRounds"`
	ShipsByPlayer          map[int]int `json:"shipsByPlayer"`
	ShipsDestroyedByPlayer map[int]int `json:"shipsDestroyedByPlayer"`
	DamageTakenByPlayer    map[int]int `json:"damageTakenByPlayer"`
	RanAwayByPlayer        map[int]int `json:"ranAwayByPlayer"`
}

// BattleRecord is produced once per battle and never changed afterwards.
type BattleRecord struct {
	ID       uuid.UUID            `json:"id"`
	Year     int                  `json:"year"`
	Position shared.Vector        `json:"position"`
	PlanetID uuid.UUID            `json:"planetId"`
	Players  []int                `json:"players"`
	Tokens   []BattleRecordToken  `json:"tokens"`
	Actions  []BattleRecordAction `json:"actions"`
	Stats    BattleStats          `json:"stats"`
}

// Involves reports whether a player fought in the battle.
func (r *BattleRecord) Involves(playerNum int) bool {
	for _, p := range r.Players {
		if p == playerNum {
			return true
		}
	}
	return false
}

// TokensFor returns the initial tokens of one player.
func (r *BattleRecord) TokensFor(playerNum int) []BattleRecordToken {
	var out []BattleRecordToken
	for _, t := range r.Tokens {
		if t.PlayerNum == playerNum {
			out = append(out, t)
		}
	}
	return out
}
