package game

import (
	"math"

	"github.com/google/uuid"

	"github.com/andrescamacho/stars-go/internal/domain/rules"
	"github.com/andrescamacho/stars-go/internal/domain/shared"
)

// MineralPacket is a mass-driven bundle of minerals flying at a planet.
type MineralPacket struct {
	ID             uuid.UUID     `json:"id"`
	Num            int           `json:"num"`
	PlayerNum      int           `json:"playerNum"`
	Position       shared.Vector `json:"position"`
	Heading        shared.Vector `json:"heading"`
	Cargo          shared.Cargo  `json:"cargo"`
	WarpSpeed      int           `json:"warpSpeed"`
	SafeWarpSpeed  int           `json:"safeWarpSpeed"`
	TargetPlanetID uuid.UUID     `json:"targetPlanetId"`
	// MovedThisYear stops the second packet pass moving a packet twice.
	MovedThisYear bool `json:"movedThisYear"`
	// Arrived is set once the packet reaches its target; damage and catch
	// resolve in the next packet damage pass.
	Arrived bool `json:"arrived"`
	Delete  bool `json:"-"`
}

// MineField is a circle of mines around a point.
type MineField struct {
	ID        uuid.UUID           `json:"id"`
	Num       int                 `json:"num"`
	PlayerNum int                 `json:"playerNum"`
	Position  shared.Vector       `json:"position"`
	Type      rules.MineFieldType `json:"type"`
	NumMines  int                 `json:"numMines"`
	Detonate  bool                `json:"detonate"`
	Delete    bool                `json:"-"`
}

// Radius is sqrt(mines) light-years.
func (m *MineField) Radius() float64 {
	return math.Sqrt(float64(m.NumMines))
}

// Contains reports whether a point lies inside the field.
func (m *MineField) Contains(pos shared.Vector) bool {
	return m.Position.InRange(pos, m.Radius())
}

// SafeWarp is the fastest speed that never triggers a hit.
func (m *MineField) SafeWarp(rs *rules.Rules) int {
	switch m.Type {
	case rules.MineFieldHeavy:
		return rs.MineFieldSafeWarp + 2
	case rules.MineFieldSpeedBump:
		return rs.MineFieldSafeWarp + 1
	}
	return rs.MineFieldSafeWarp
}

// Wormhole is one end of a pair. Stability falls each year; when it reaches
// zero the endpoint jumps elsewhere and restabilises.
type Wormhole struct {
	ID            uuid.UUID     `json:"id"`
	Num           int           `json:"num"`
	Position      shared.Vector `json:"position"`
	DestinationID uuid.UUID     `json:"destinationId"`
	Stability     int           `json:"stability"`
	YearsAtPos    int           `json:"yearsAtPosition"`
	Delete        bool          `json:"-"`
}

// Salvage is debris left by battles and scrapping.
type Salvage struct {
	ID        uuid.UUID     `json:"id"`
	Num       int           `json:"num"`
	PlayerNum int           `json:"playerNum"`
	Position  shared.Vector `json:"position"`
	Cargo     shared.Cargo  `json:"cargo"`
	Delete    bool          `json:"-"`
}

// MysteryTrader roams the universe and rewards fleets that meet it with
// enough minerals.
type MysteryTrader struct {
	ID              uuid.UUID     `json:"id"`
	Num             int           `json:"num"`
	Position        shared.Vector `json:"position"`
	Destination     shared.Vector `json:"destination"`
	Heading         shared.Vector `json:"heading"`
	WarpSpeed       int           `json:"warpSpeed"`
	RewardedPlayers []int         `json:"rewardedPlayers,omitempty"`
	Delete          bool          `json:"-"`
}

// Rewarded reports whether the trader already paid a player.
func (t *MysteryTrader) Rewarded(playerNum int) bool {
	for _, p := range t.RewardedPlayers {
		if p == playerNum {
			return true
		}
	}
	return false
}

// TravelDistance is how far something at warp goes in a year.
func TravelDistance(warp int) float64 {
	return float64(warp * warp)
}
