package game

import (
	"github.com/google/uuid"

	"github.com/andrescamacho/stars-go/internal/domain/shared"
)

// NeverReported marks intel the player has never actually scanned.
const NeverReported = -1

// PlanetIntel is a player's last-observed view of a planet.
type PlanetIntel struct {
	ID                   uuid.UUID     `json:"id"`
	Num                  int           `json:"num"`
	Name                 string        `json:"name"`
	Position             shared.Vector `json:"position"`
	ReportedYear         int           `json:"reportedYear"`
	ReportAge            int           `json:"reportAge"`
	PlayerNum            int           `json:"playerNum"`
	Hab                  Hab           `json:"hab"`
	HabValue             int           `json:"habValue"`
	MineralConcentration shared.Cargo  `json:"mineralConcentration"`
	Population           int           `json:"population"`
	Surface              shared.Cargo  `json:"surface"`
	StarbaseDesign       string        `json:"starbaseDesign,omitempty"`
	Homeworld            bool          `json:"homeworld"`
	Owned                bool          `json:"owned"` // belongs to the viewing player
}

// Explored reports whether the planet was ever scanned.
func (p *PlanetIntel) Explored() bool {
	return p.ReportedYear != NeverReported
}

// TokenIntel is a foreign token; DesignName is empty when hidden.
type TokenIntel struct {
	DesignNum  int    `json:"designNum"`
	DesignName string `json:"designName,omitempty"`
	Quantity   int    `json:"quantity"`
}

// FleetIntel is a fleet seen this year.
type FleetIntel struct {
	ID              uuid.UUID     `json:"id"`
	Num             int           `json:"num"`
	Name            string        `json:"name"`
	PlayerNum       int           `json:"playerNum"`
	Position        shared.Vector `json:"position"`
	Heading         shared.Vector `json:"heading"`
	WarpSpeed       int           `json:"warpSpeed"`
	Mass            int           `json:"mass"`
	TotalShips      int           `json:"totalShips"`
	Tokens          []TokenIntel  `json:"tokens"`
	OrbitingPlanet  uuid.UUID     `json:"orbitingPlanet"`
	Starbase        bool          `json:"starbase"`
	ReportedYear    int           `json:"reportedYear"`
	DetailsRevealed bool          `json:"detailsRevealed"`
}

// DesignIntel is a foreign design the player has seen details of.
type DesignIntel struct {
	PlayerNum int              `json:"playerNum"`
	Num       int              `json:"num"`
	Name      string           `json:"name"`
	Hull      string           `json:"hull"`
	Slots     []ShipDesignSlot `json:"slots"`
}

type MineFieldIntel struct {
	ID           uuid.UUID     `json:"id"`
	PlayerNum    int           `json:"playerNum"`
	Position     shared.Vector `json:"position"`
	NumMines     int           `json:"numMines"`
	ReportedYear int           `json:"reportedYear"`
}

type MineralPacketIntel struct {
	ID           uuid.UUID     `json:"id"`
	PlayerNum    int           `json:"playerNum"`
	Position     shared.Vector `json:"position"`
	Heading      shared.Vector `json:"heading"`
	WarpSpeed    int           `json:"warpSpeed"`
	Cargo        shared.Cargo  `json:"cargo"`
	ReportedYear int           `json:"reportedYear"`
}

type WormholeIntel struct {
	ID            uuid.UUID     `json:"id"`
	Position      shared.Vector `json:"position"`
	DestinationID uuid.UUID     `json:"destinationId"` // Nil until both ends are seen
	Stability     int           `json:"stability"`
	ReportedYear  int           `json:"reportedYear"`
	ReportAge     int           `json:"reportAge"`
}

type SalvageIntel struct {
	ID           uuid.UUID     `json:"id"`
	Position     shared.Vector `json:"position"`
	Cargo        shared.Cargo  `json:"cargo"`
	ReportedYear int           `json:"reportedYear"`
}

type MysteryTraderIntel struct {
	ID           uuid.UUID     `json:"id"`
	Position     shared.Vector `json:"position"`
	Heading      shared.Vector `json:"heading"`
	WarpSpeed    int           `json:"warpSpeed"`
	ReportedYear int           `json:"reportedYear"`
}

// PlayerScoreIntel is the public part of another player's score.
type PlayerScoreIntel struct {
	PlayerNum int    `json:"playerNum"`
	Name      string `json:"name"`
	Score     int    `json:"score"`
	Rank      int    `json:"rank"`
}

// PlayerIntel is a player's fog-of-war view of the world. It is rebuilt every
// turn from the authoritative world; planets keep their last observation.
type PlayerIntel struct {
	Planets        []PlanetIntel        `json:"planets"`
	Fleets         []FleetIntel         `json:"fleets"`
	Designs        []DesignIntel        `json:"designs"`
	MineFields     []MineFieldIntel     `json:"mineFields"`
	MineralPackets []MineralPacketIntel `json:"mineralPackets"`
	Wormholes      []WormholeIntel      `json:"wormholes"`
	Salvages       []SalvageIntel       `json:"salvages"`
	MysteryTraders []MysteryTraderIntel `json:"mysteryTraders"`
	Scores         []PlayerScoreIntel   `json:"scores"`
}

// PlanetIntelByID finds a planet report.
func (pi *PlayerIntel) PlanetIntelByID(id uuid.UUID) *PlanetIntel {
	for i := range pi.Planets {
		if pi.Planets[i].ID == id {
			return &pi.Planets[i]
		}
	}
	return nil
}
