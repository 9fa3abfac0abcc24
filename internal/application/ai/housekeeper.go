package ai

import (
	"math"

	"github.com/google/uuid"

	"github.com/andrescamacho/stars-go/internal/application/orders"
	"github.com/andrescamacho/stars-go/internal/domain/game"
	"github.com/andrescamacho/stars-go/internal/domain/rules"
)

// autoItems are kept at the end of every queue the housekeeper manages.
var autoItems = []orders.QueueItemOrder{
	{Type: game.QueueItemAutoMines, Quantity: 10},
	{Type: game.QueueItemAutoFactories, Quantity: 10},
	{Type: game.QueueItemAutoDefenses, Quantity: 5},
}

// Housekeeper keeps planets building, researches the weakest field, scouts
// unexplored planets and sends colony ships to the best habitable one.
func Housekeeper(view PlayerView, rs *rules.Rules) orders.Orders {
	o := orders.Orders{
		Research: &orders.ResearchOrder{
			Researching:    view.Player.TechLevels.Lowest(),
			NextField:      view.Player.NextResearchField,
			ResearchAmount: view.Player.ResearchAmount,
		},
	}
	for _, p := range view.Planets {
		o.Planets = append(o.Planets, planetOrder(p))
	}

	claimed := map[uuid.UUID]bool{}
	for _, f := range view.Fleets {
		if f.Starbase || f.Destination() != nil || f.CurrentWaypoint().Task != game.TaskNone {
			continue
		}
		spec := f.Spec()
		switch {
		case spec.Colonizer && f.Cargo.Colonists > 0:
			if target := bestColony(view, f, claimed); target != nil {
				o.Fleets = append(o.Fleets, sendTo(f, target, speed(spec), game.TaskColonize))
			}
		case isScout(spec):
			if target := nearestUnexplored(view, f, claimed); target != nil {
				o.Fleets = append(o.Fleets, sendTo(f, target, speed(spec), game.TaskNone))
			}
		}
	}
	return o
}

// planetOrder keeps the queue's hand-placed items and appends any missing
// auto items.
func planetOrder(p *game.Planet) orders.PlanetOrder {
	po := orders.PlanetOrder{
		PlanetID:                          p.ID,
		PacketTargetID:                    p.PacketTargetID,
		PacketSpeed:                       p.PacketSpeed,
		ContributesOnlyLeftoverToResearch: p.ContributesOnlyLeftoverToResearch,
	}
	present := map[game.QueueItemType]bool{}
	for _, item := range p.ProductionQueue {
		present[item.Type] = true
		po.ProductionQueue = append(po.ProductionQueue, orders.QueueItemOrder{
			Type:      item.Type,
			Quantity:  item.Quantity,
			DesignNum: item.DesignNum,
		})
	}
	for _, item := range autoItems {
		if !present[item.Type] {
			po.ProductionQueue = append(po.ProductionQueue, item)
		}
	}
	return po
}

func isScout(spec game.FleetSpec) bool {
	return !spec.Armed && !spec.Colonizer && spec.CargoCapacity == 0 && spec.ScanRange > 0
}

func speed(spec game.FleetSpec) int {
	if spec.IdealSpeed <= 0 || spec.IdealSpeed > 10 {
		return 5
	}
	return spec.IdealSpeed
}

func sendTo(f *game.Fleet, target *game.PlanetIntel, warp int, task game.WaypointTask) orders.FleetOrder {
	return orders.FleetOrder{
		FleetID:       f.ID,
		BattlePlanNum: f.BattlePlanNum,
		Waypoints: []orders.WaypointOrder{
			{Task: game.TaskNone},
			{
				TargetType: game.MapObjectPlanet,
				TargetID:   target.ID,
				Position:   target.Position,
				WarpSpeed:  warp,
				Task:       task,
			},
		},
	}
}

func nearestUnexplored(view PlayerView, f *game.Fleet, claimed map[uuid.UUID]bool) *game.PlanetIntel {
	return nearest(view, f, claimed, func(p *game.PlanetIntel) bool {
		return !p.Explored()
	})
}

// bestColony prefers higher habitability, then distance.
func bestColony(view PlayerView, f *game.Fleet, claimed map[uuid.UUID]bool) *game.PlanetIntel {
	intel := view.Intel()
	var best *game.PlanetIntel
	bestScore := math.Inf(-1)
	for i := range intel.Planets {
		p := &intel.Planets[i]
		if claimed[p.ID] || !p.Explored() || p.PlayerNum != game.Unowned || p.HabValue <= 0 {
			continue
		}
		score := float64(p.HabValue) - f.Position.DistanceTo(p.Position)/100
		if score > bestScore {
			best, bestScore = p, score
		}
	}
	if best != nil {
		claimed[best.ID] = true
	}
	return best
}

func nearest(view PlayerView, f *game.Fleet, claimed map[uuid.UUID]bool, want func(*game.PlanetIntel) bool) *game.PlanetIntel {
	intel := view.Intel()
	var best *game.PlanetIntel
	bestDist := math.Inf(1)
	for i := range intel.Planets {
		p := &intel.Planets[i]
		if claimed[p.ID] || !want(p) {
			continue
		}
		if d := f.Position.DistanceTo(p.Position); d < bestDist {
			best, bestDist = p, d
		}
	}
	if best != nil {
		claimed[best.ID] = true
	}
	return best
}
