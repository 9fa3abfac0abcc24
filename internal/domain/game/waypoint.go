package game

import (
	"github.com/google/uuid"

	"github.com/andrescamacho/stars-go/internal/domain/shared"
)

// MapObjectType tags what a waypoint or message points at.
type MapObjectType int

const (
	MapObjectNone MapObjectType = iota
	MapObjectPlanet
	MapObjectFleet
	MapObjectMineralPacket
	MapObjectMineField
	MapObjectWormhole
	MapObjectSalvage
	MapObjectMysteryTrader
	MapObjectBattle
)

// WaypointTask is what a fleet does on reaching a waypoint.
type WaypointTask int

const (
	TaskNone WaypointTask = iota
	TaskTransport
	TaskColonize
	TaskRemoteMining
	TaskMergeWithFleet
	TaskScrapFleet
	TaskLayMineField
	TaskPatrol
	TaskRoute
	TaskTransferFleet
)

var waypointTaskNames = []string{
	"None", "Transport", "Colonize", "RemoteMining", "MergeWithFleet",
	"ScrapFleet", "LayMineField", "Patrol", "Route", "TransferFleet",
}

func (t WaypointTask) String() string {
	if int(t) >= 0 && int(t) < len(waypointTaskNames) {
		return waypointTaskNames[t]
	}
	return "Unknown"
}

// TransportAction is the per-cargo-type instruction of a transport task.
type TransportAction int

const (
	TransportNone TransportAction = iota
	TransportLoadAll
	TransportUnloadAll
	TransportLoadAmount
	TransportUnloadAmount
	TransportFillPercent
	TransportWaitForPercent
	TransportSetAmountTo
	TransportSetWaypointTo
)

// IsLoad reports whether the action moves cargo into the fleet.
func (a TransportAction) IsLoad() bool {
	switch a {
	case TransportLoadAll, TransportLoadAmount, TransportFillPercent, TransportWaitForPercent, TransportSetAmountTo:
		return true
	}
	return false
}

// IsUnload reports whether the action moves cargo out of the fleet.
func (a TransportAction) IsUnload() bool {
	switch a {
	case TransportUnloadAll, TransportUnloadAmount, TransportSetWaypointTo:
		return true
	}
	return false
}

type TransportTask struct {
	Action TransportAction `json:"action"`
	Amount int             `json:"amount"`
}

// TransportTasks holds one task per cargo type.
type TransportTasks struct {
	Ironium   TransportTask `json:"ironium"`
	Boranium  TransportTask `json:"boranium"`
	Germanium TransportTask `json:"germanium"`
	Colonists TransportTask `json:"colonists"`
}

func (t TransportTasks) Get(c shared.CargoType) TransportTask {
	switch c {
	case shared.Ironium:
		return t.Ironium
	case shared.Boranium:
		return t.Boranium
	case shared.Germanium:
		return t.Germanium
	case shared.Colonists:
		return t.Colonists
	}
	return TransportTask{}
}

func (t *TransportTasks) Set(c shared.CargoType, task TransportTask) {
	switch c {
	case shared.Ironium:
		t.Ironium = task
	case shared.Boranium:
		t.Boranium = task
	case shared.Germanium:
		t.Germanium = task
	case shared.Colonists:
		t.Colonists = task
	}
}

func (t TransportTasks) IsZero() bool {
	return t == TransportTasks{}
}

// Waypoint is one stop of a fleet's itinerary. Waypoints[0] is always where
// the fleet is now.
type Waypoint struct {
	Position       shared.Vector  `json:"position"`
	TargetType     MapObjectType  `json:"targetType"`
	TargetID       uuid.UUID      `json:"targetId"`
	TargetName     string         `json:"targetName,omitempty"`
	WarpSpeed      int            `json:"warpSpeed"`
	Task           WaypointTask   `json:"task"`
	TransportTasks TransportTasks `json:"transportTasks"`

	LayMineFieldYears int `json:"layMineFieldYears,omitempty"` // 0 lays forever
	PatrolRange       int `json:"patrolRange,omitempty"`
	PatrolWarp        int `json:"patrolWarp,omitempty"`
	TransferToPlayer  int `json:"transferToPlayer,omitempty"`

	// Processed marks that arrival tasks already ran for this visit.
	Processed bool `json:"processed"`
	// TaskComplete is false while a wait-for-percent load holds the fleet.
	TaskComplete bool `json:"taskComplete"`
}

// NewPositionWaypoint targets empty space.
func NewPositionWaypoint(pos shared.Vector, warp int) *Waypoint {
	return &Waypoint{Position: pos, WarpSpeed: warp, TaskComplete: true}
}

// NewPlanetWaypoint targets a planet.
func NewPlanetWaypoint(p *Planet, warp int) *Waypoint {
	return &Waypoint{
		Position:     p.Position,
		TargetType:   MapObjectPlanet,
		TargetID:     p.ID,
		TargetName:   p.Name,
		WarpSpeed:    warp,
		TaskComplete: true,
	}
}

// HasTarget reports whether the waypoint targets a map object.
func (w *Waypoint) HasTarget() bool {
	return w.TargetType != MapObjectNone && w.TargetID != uuid.Nil
}

// ResetForArrival clears per-visit flags when a fleet reaches the waypoint.
func (w *Waypoint) ResetForArrival() {
	w.Processed = false
	w.TaskComplete = true
}
