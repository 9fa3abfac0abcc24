// Package orders stages, validates and applies player orders.
package orders

import (
	"github.com/google/uuid"

	"github.com/andrescamacho/stars-go/internal/domain/game"
	"github.com/andrescamacho/stars-go/internal/domain/rules"
	"github.com/andrescamacho/stars-go/internal/domain/shared"
)

// Orders is everything one player submits for one year.
type Orders struct {
	PlayerNum   int               `json:"playerNum" validate:"required,min=1"`
	Year        int               `json:"year" validate:"required"`
	Research    *ResearchOrder    `json:"research,omitempty"`
	Fleets      []FleetOrder      `json:"fleets,omitempty" validate:"dive"`
	Planets     []PlanetOrder     `json:"planets,omitempty" validate:"dive"`
	Designs     []DesignOrder     `json:"designs,omitempty" validate:"dive"`
	BattlePlans []BattlePlanOrder `json:"battlePlans,omitempty" validate:"dive"`
	Immediate   []ImmediateOrder  `json:"immediate,omitempty" validate:"dive"`
	Relations   []RelationOrder   `json:"relations,omitempty" validate:"dive"`
}

type ResearchOrder struct {
	Researching    rules.TechField        `json:"researching" validate:"min=0,max=5"`
	NextField      game.NextResearchField `json:"nextField" validate:"min=0,max=7"`
	ResearchAmount int                    `json:"researchAmount" validate:"min=0,max=100"`
}

// FleetOrder replaces a fleet's route. Waypoints[0] only updates the task at
// the fleet's current position; the rest become the new route.
type FleetOrder struct {
	FleetID       uuid.UUID       `json:"fleetId" validate:"required"`
	Name          string          `json:"name,omitempty" validate:"max=32"`
	BattlePlanNum int             `json:"battlePlanNum" validate:"min=0"`
	RepeatOrders  bool            `json:"repeatOrders"`
	Waypoints     []WaypointOrder `json:"waypoints" validate:"dive"`
}

type WaypointOrder struct {
	TargetType        game.MapObjectType  `json:"targetType"`
	TargetID          uuid.UUID           `json:"targetId"`
	Position          shared.Vector       `json:"position"`
	WarpSpeed         int                 `json:"warpSpeed" validate:"min=0,max=11"`
	Task              game.WaypointTask   `json:"task" validate:"min=0,max=9"`
	TransportTasks    game.TransportTasks `json:"transportTasks"`
	LayMineFieldYears int                 `json:"layMineFieldYears" validate:"min=0"`
	PatrolRange       int                 `json:"patrolRange" validate:"min=0"`
	PatrolWarp        int                 `json:"patrolWarp" validate:"min=0,max=10"`
	TransferToPlayer  int                 `json:"transferToPlayer" validate:"min=0"`
}

type QueueItemOrder struct {
	Type      game.QueueItemType `json:"type"`
	Quantity  int                `json:"quantity" validate:"min=1,max=5000"`
	DesignNum int                `json:"designNum,omitempty" validate:"min=0"`
}

type PlanetOrder struct {
	PlanetID                          uuid.UUID        `json:"planetId" validate:"required"`
	ProductionQueue                   []QueueItemOrder `json:"productionQueue" validate:"dive"`
	ContributesOnlyLeftoverToResearch bool             `json:"contributesOnlyLeftoverToResearch"`
	PacketTargetID                    uuid.UUID        `json:"packetTargetId"`
	PacketSpeed                       int              `json:"packetSpeed" validate:"min=0,max=16"`
}

// DesignAction is what a design order does.
type DesignAction string

const (
	DesignCreate DesignAction = "create"
	DesignUpdate DesignAction = "update"
	DesignDelete DesignAction = "delete"
)

type DesignOrder struct {
	Action DesignAction          `json:"action" validate:"required,oneof=create update delete"`
	Num    int                   `json:"num" validate:"min=0"`
	Name   string                `json:"name" validate:"required_unless=Action delete,max=32"`
	Hull   string                `json:"hull" validate:"required_unless=Action delete"`
	Slots  []game.ShipDesignSlot `json:"slots"`
}

type BattlePlanOrder struct {
	Num             int                  `json:"num" validate:"min=0,max=15"`
	Name            string               `json:"name" validate:"required,max=32"`
	PrimaryTarget   game.BattleTarget    `json:"primaryTarget" validate:"min=0,max=7"`
	SecondaryTarget game.BattleTarget    `json:"secondaryTarget" validate:"min=0,max=7"`
	Tactic          game.BattleTactic    `json:"tactic" validate:"min=0,max=5"`
	AttackWho       game.BattleAttackWho `json:"attackWho" validate:"min=0,max=2"`
}

// ImmediateKind is an order that takes effect before the turn runs.
type ImmediateKind string

const (
	ImmediateMerge  ImmediateKind = "merge"
	ImmediateSplit  ImmediateKind = "split"
	ImmediateLoad   ImmediateKind = "load"
	ImmediateUnload ImmediateKind = "unload"
)

type TokenSplit struct {
	DesignNum int `json:"designNum" validate:"min=1"`
	Quantity  int `json:"quantity" validate:"min=1"`
}

// ImmediateOrder merges, splits or moves cargo between objects at the same
// position. Load and unload move Cargo from the target into the fleet or
// from the fleet into the target.
type ImmediateOrder struct {
	Kind           ImmediateKind `json:"kind" validate:"required,oneof=merge split load unload"`
	FleetID        uuid.UUID     `json:"fleetId" validate:"required"`
	TargetFleetID  uuid.UUID     `json:"targetFleetId"`
	TargetPlanetID uuid.UUID     `json:"targetPlanetId"`
	Tokens         []TokenSplit  `json:"tokens,omitempty" validate:"dive"`
	Cargo          shared.Cargo  `json:"cargo"`
}

type RelationOrder struct {
	PlayerNum int                 `json:"playerNum" validate:"min=1"`
	Relation  game.PlayerRelation `json:"relation" validate:"min=0,max=2"`
}

// Rejection is an order that was dropped or clamped.
type Rejection struct {
	PlayerNum int
	Order     string
	Reason    string
}

func (r Rejection) Error() string {
	return shared.NewOrderError(r.PlayerNum, r.Order, r.Reason).Error()
}

// Message turns the rejection into a player message.
func (r Rejection) Message() game.Message {
	return game.NewMessage(game.MessageOrderRejected, r.Order+": "+r.Reason)
}
