package orders

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/andrescamacho/stars-go/internal/domain/game"
	"github.com/andrescamacho/stars-go/internal/domain/shared"
)

// Applier writes orders into the world at the start of a turn. A player's
// orders that fail the shape check are rejected whole, whatever their source.
type Applier struct {
	random    *shared.Random
	validator *Validator
}

// NewApplier uses random for the ids of fleets created by splits.
func NewApplier(random *shared.Random) *Applier {
	return &Applier{random: random, validator: NewValidator()}
}

// Apply runs every player's orders in ascending player order. Within a
// player, immediate orders go first, then designs, battle plans, relations,
// research, fleet routes and production queues. Orders that fail their
// checks are dropped and reported back to the player.
func (a *Applier) Apply(w *game.World, byPlayer map[int]*Orders) []game.Message {
	var messages []game.Message
	for _, num := range PlayerNums(byPlayer) {
		o := byPlayer[num]
		if o == nil {
			continue
		}
		player := w.Player(num)
		if player == nil {
			continue
		}
		for _, r := range a.applyPlayer(w, player, o) {
			m := r.Message()
			player.AddMessage(m)
			messages = append(messages, m)
		}
		player.SubmittedTurn = true
	}
	w.RemoveDeleted()
	return messages
}

func (a *Applier) applyPlayer(w *game.World, player *game.Player, o *Orders) []Rejection {
	c := checker{world: w, player: player, orders: o}
	if err := a.validator.Validate(o); err != nil {
		reason := err.Error()
		var invalid *shared.ValidationError
		if errors.As(err, &invalid) {
			reason = invalid.Message
		}
		return []Rejection{c.reject("orders", reason)}
	}
	if o.PlayerNum != player.Num || o.Year != w.Year {
		return []Rejection{c.reject("orders", fmt.Sprintf("orders are for %d but the game is in %d", o.Year, w.Year))}
	}

	var rejected []Rejection
	keep := func(r *Rejection) bool {
		if r != nil {
			rejected = append(rejected, *r)
			return false
		}
		return true
	}

	for i := range o.Immediate {
		if keep(c.immediate(&o.Immediate[i])) {
			if r := a.immediate(&c, &o.Immediate[i]); r != nil {
				rejected = append(rejected, *r)
			}
		}
	}
	for i := range o.Designs {
		if keep(c.design(&o.Designs[i])) {
			a.design(w, player, &o.Designs[i])
		}
	}
	for _, plan := range o.BattlePlans {
		setBattlePlan(player, plan)
	}
	for i := range o.Relations {
		if keep(c.relation(&o.Relations[i])) {
			setRelation(w, player, o.Relations[i])
		}
	}
	if o.Research != nil {
		player.Researching = o.Research.Researching
		player.NextResearchField = o.Research.NextField
		player.ResearchAmount = o.Research.ResearchAmount
	}
	for i := range o.Fleets {
		if keep(c.fleet(&o.Fleets[i])) {
			a.route(&c, &o.Fleets[i])
		}
	}
	for i := range o.Planets {
		rejected = append(rejected, a.planet(&c, &o.Planets[i])...)
	}
	return rejected
}

func (a *Applier) design(w *game.World, player *game.Player, o *DesignOrder) {
	switch o.Action {
	case DesignDelete:
		player.Design(o.Num).Deleted = true
		return
	case DesignUpdate:
		d := player.Design(o.Num)
		d.Name = o.Name
		d.Hull = o.Hull
		d.Slots = append([]game.ShipDesignSlot(nil), o.Slots...)
		d.Spec, _ = game.ComputeSpec(d, w.Rules, w.Techs, &player.Race, player.TechLevels)
		return
	}
	num := o.Num
	if num == 0 {
		num = player.NextDesignNum()
	}
	d := &game.ShipDesign{
		Num:       num,
		PlayerNum: player.Num,
		Name:      o.Name,
		Hull:      o.Hull,
		Slots:     append([]game.ShipDesignSlot(nil), o.Slots...),
	}
	d.Spec, _ = game.ComputeSpec(d, w.Rules, w.Techs, &player.Race, player.TechLevels)
	player.Designs = append(player.Designs, d)
}

func setBattlePlan(player *game.Player, o BattlePlanOrder) {
	plan := game.BattlePlan{
		Num:             o.Num,
		Name:            o.Name,
		PrimaryTarget:   o.PrimaryTarget,
		SecondaryTarget: o.SecondaryTarget,
		Tactic:          o.Tactic,
		AttackWho:       o.AttackWho,
	}
	for i := range player.BattlePlans {
		if player.BattlePlans[i].Num == o.Num {
			player.BattlePlans[i] = plan
			return
		}
	}
	player.BattlePlans = append(player.BattlePlans, plan)
}

func setRelation(w *game.World, player *game.Player, o RelationOrder) {
	for len(player.Relations) < len(w.Players) {
		player.Relations = append(player.Relations, game.RelationEnemy)
	}
	player.Relations[o.PlayerNum-1] = o.Relation
}

// route replaces a fleet's itinerary. Waypoints[0] stays where the fleet is
// and only takes the new task.
func (a *Applier) route(c *checker, o *FleetOrder) {
	f := c.world.Fleet(o.FleetID)
	if o.Name != "" {
		f.Name = o.Name
	}
	f.BattlePlanNum = o.BattlePlanNum
	f.RepeatOrders = o.RepeatOrders

	current := f.CurrentWaypoint()
	route := []*game.Waypoint{current}
	for i, wo := range o.Waypoints {
		if i == 0 {
			if current.Task != wo.Task || current.TransportTasks != wo.TransportTasks {
				current.Processed = false
				current.TaskComplete = true
			}
			setTask(current, wo)
			continue
		}
		wp := &game.Waypoint{
			Position:     wo.Position,
			TargetType:   wo.TargetType,
			TargetID:     wo.TargetID,
			WarpSpeed:    wo.WarpSpeed,
			TaskComplete: true,
		}
		if wo.TargetType != game.MapObjectNone {
			wp.Position = *c.targetPosition(wo.TargetType, wo.TargetID)
			wp.TargetName = c.targetName(wo.TargetType, wo.TargetID)
		}
		setTask(wp, wo)
		route = append(route, wp)
	}
	f.Waypoints = route
}

func setTask(wp *game.Waypoint, o WaypointOrder) {
	wp.Task = o.Task
	wp.TransportTasks = o.TransportTasks
	wp.LayMineFieldYears = o.LayMineFieldYears
	wp.PatrolRange = o.PatrolRange
	wp.PatrolWarp = o.PatrolWarp
	wp.TransferToPlayer = o.TransferToPlayer
}

func (c *checker) targetName(t game.MapObjectType, id uuid.UUID) string {
	switch t {
	case game.MapObjectPlanet:
		return c.world.Planet(id).Name
	case game.MapObjectFleet:
		return c.world.Fleet(id).Name
	}
	return ""
}

// planet replaces the production queue with the items that pass their
// checks. Spend already allocated to an item carries over to the first new
// item of the same kind.
func (a *Applier) planet(c *checker, o *PlanetOrder) []Rejection {
	p := c.world.Planet(o.PlanetID)
	if p == nil || !p.OwnedBy(c.player.Num) {
		return c.planet(o)
	}
	var rejected []Rejection
	if o.PacketTargetID != uuid.Nil && c.world.Planet(o.PacketTargetID) == nil {
		rejected = append(rejected, c.reject("orders for "+p.Name, "packet target is not a planet"))
	} else {
		p.PacketTargetID = o.PacketTargetID
		p.PacketSpeed = o.PacketSpeed
	}
	p.ContributesOnlyLeftoverToResearch = o.ContributesOnlyLeftoverToResearch

	previous := p.ProductionQueue
	used := make([]bool, len(previous))
	queue := make([]*game.ProductionQueueItem, 0, len(o.ProductionQueue))
	for i, item := range o.ProductionQueue {
		if reason := c.queueItem(item); reason != "" {
			rejected = append(rejected, c.reject("orders for "+p.Name, fmt.Sprintf("queue item %d: %s", i, reason)))
			continue
		}
		next := &game.ProductionQueueItem{Type: item.Type, Quantity: item.Quantity, DesignNum: item.DesignNum}
		for j, old := range previous {
			if !used[j] && old.Type == item.Type && old.DesignNum == item.DesignNum {
				next.Allocated = old.Allocated
				used[j] = true
				break
			}
		}
		queue = append(queue, next)
	}
	p.ProductionQueue = queue
	return rejected
}
