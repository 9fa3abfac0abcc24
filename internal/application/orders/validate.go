package orders

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/andrescamacho/stars-go/internal/domain/game"
	"github.com/andrescamacho/stars-go/internal/domain/shared"
)

// Validator checks the shape of orders: enum ranges, counts and required
// fields.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

// Validate checks struct tags only. World checks happen in Validate.
func (v *Validator) Validate(o *Orders) error {
	if err := v.validate.Struct(o); err != nil {
		return formatValidationError(err)
	}
	return nil
}

func formatValidationError(err error) error {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	messages := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		messages = append(messages, fmt.Sprintf(
			"field '%s' failed validation: %s (value: '%v')",
			e.Namespace(),
			e.Tag(),
			e.Value(),
		))
	}
	return shared.NewValidationError("orders", strings.Join(messages, "\n  "))
}

// Validate checks orders against the world without mutating it. Orders that
// depend on earlier immediate orders (a split fleet, a merged target) are
// checked against the world as it stands.
func Validate(w *game.World, o *Orders) []Rejection {
	c := checker{world: w, orders: o}
	player := w.Player(o.PlayerNum)
	if player == nil {
		return []Rejection{c.reject("orders", fmt.Sprintf("no player %d", o.PlayerNum))}
	}
	c.player = player
	if o.Year != w.Year {
		return []Rejection{c.reject("orders", fmt.Sprintf("orders are for %d but the game is in %d", o.Year, w.Year))}
	}

	var out []Rejection
	for i := range o.Immediate {
		if r := c.immediate(&o.Immediate[i]); r != nil {
			out = append(out, *r)
		}
	}
	for i := range o.Designs {
		if r := c.design(&o.Designs[i]); r != nil {
			out = append(out, *r)
		}
	}
	for i := range o.Relations {
		if r := c.relation(&o.Relations[i]); r != nil {
			out = append(out, *r)
		}
	}
	for i := range o.Fleets {
		if r := c.fleet(&o.Fleets[i]); r != nil {
			out = append(out, *r)
		}
	}
	for i := range o.Planets {
		out = append(out, c.planet(&o.Planets[i])...)
	}
	return out
}

// checker holds the per-player checks shared by Validate and Applier.
type checker struct {
	world  *game.World
	player *game.Player
	orders *Orders
}

func (c *checker) reject(order, reason string) Rejection {
	return Rejection{PlayerNum: c.orders.PlayerNum, Order: order, Reason: reason}
}

func (c *checker) rejectp(order, reason string) *Rejection {
	r := c.reject(order, reason)
	return &r
}

func (c *checker) ownFleet(order string, id uuid.UUID) (*game.Fleet, *Rejection) {
	f := c.world.Fleet(id)
	if f == nil || f.Delete {
		return nil, c.rejectp(order, fmt.Sprintf("no fleet %s", shortID(id)))
	}
	if f.PlayerNum != c.player.Num {
		return nil, c.rejectp(order, fmt.Sprintf("%s is not yours", f.Name))
	}
	return f, nil
}

func (c *checker) immediate(o *ImmediateOrder) *Rejection {
	order := fmt.Sprintf("%s fleet", o.Kind)
	f, r := c.ownFleet(order, o.FleetID)
	if r != nil {
		return r
	}
	if f.Starbase {
		return c.rejectp(order, "starbases cannot merge, split or transfer cargo")
	}
	switch o.Kind {
	case ImmediateMerge:
		target, r := c.ownFleet(order, o.TargetFleetID)
		if r != nil {
			return r
		}
		if target == f {
			return c.rejectp(order, "a fleet cannot merge with itself")
		}
		if target.Starbase {
			return c.rejectp(order, "cannot merge into a starbase")
		}
		if target.Position != f.Position {
			return c.rejectp(order, fmt.Sprintf("%s and %s are not at the same position", f.Name, target.Name))
		}
	case ImmediateSplit:
		if len(o.Tokens) == 0 {
			return c.rejectp(order, "nothing to split off")
		}
		split := 0
		for _, ts := range o.Tokens {
			have := 0
			for _, t := range f.Tokens {
				if t.DesignNum == ts.DesignNum {
					have += t.Quantity
				}
			}
			if ts.Quantity > have {
				return c.rejectp(order, fmt.Sprintf("%s has only %d ships of design %d", f.Name, have, ts.DesignNum))
			}
			split += ts.Quantity
		}
		if split >= f.TotalShips() {
			return c.rejectp(order, "a split must leave ships behind")
		}
	case ImmediateLoad, ImmediateUnload:
		if o.Cargo.HasNegative() || o.Cargo.IsZero() {
			return c.rejectp(order, "cargo amounts must be positive")
		}
		if o.TargetPlanetID != uuid.Nil {
			p := c.world.Planet(o.TargetPlanetID)
			if p == nil {
				return c.rejectp(order, "no such planet")
			}
			if p.Position != f.Position {
				return c.rejectp(order, fmt.Sprintf("%s is not at %s", f.Name, p.Name))
			}
			if o.Kind == ImmediateLoad && !p.OwnedBy(c.player.Num) {
				return c.rejectp(order, fmt.Sprintf("cannot load from %s", p.Name))
			}
			return nil
		}
		target, r := c.ownFleet(order, o.TargetFleetID)
		if r != nil {
			return r
		}
		if target.Position != f.Position {
			return c.rejectp(order, fmt.Sprintf("%s and %s are not at the same position", f.Name, target.Name))
		}
	}
	return nil
}

func (c *checker) design(o *DesignOrder) *Rejection {
	order := fmt.Sprintf("%s design", o.Action)
	if o.Action == DesignCreate && o.Num != 0 && c.player.Design(o.Num) != nil {
		return c.rejectp(order, fmt.Sprintf("design %d already exists", o.Num))
	}
	if o.Action != DesignCreate {
		existing := c.player.Design(o.Num)
		if existing == nil || existing.Deleted {
			return c.rejectp(order, fmt.Sprintf("no design %d", o.Num))
		}
		if existing.CannotDelete && o.Action == DesignDelete {
			return c.rejectp(order, fmt.Sprintf("%s cannot be deleted", existing.Name))
		}
		if c.designInUse(o.Num) {
			return c.rejectp(order, fmt.Sprintf("%s is in use", existing.Name))
		}
		if o.Action == DesignDelete {
			return nil
		}
	}
	if other := c.player.DesignByName(o.Name); other != nil && !other.Deleted && other.Num != o.Num {
		return c.rejectp(order, fmt.Sprintf("a design named %s already exists", o.Name))
	}
	d := &game.ShipDesign{Num: o.Num, PlayerNum: c.player.Num, Name: o.Name, Hull: o.Hull, Slots: o.Slots}
	if _, err := game.ComputeSpec(d, c.world.Rules, c.world.Techs, &c.player.Race, c.player.TechLevels); err != nil {
		return c.rejectp(order, err.Error())
	}
	if !c.player.TechLevels.Meets(d.Requirements(c.world.Techs)) {
		return c.rejectp(order, fmt.Sprintf("%s needs more advanced technology", o.Name))
	}
	return nil
}

// designInUse reports whether any fleet or queue references a design.
func (c *checker) designInUse(num int) bool {
	for _, f := range c.world.FleetsOwnedBy(c.player.Num) {
		for _, t := range f.Tokens {
			if t.DesignNum == num {
				return true
			}
		}
	}
	for _, p := range c.world.PlanetsOwnedBy(c.player.Num) {
		for _, item := range p.ProductionQueue {
			if item.DesignNum == num && (item.Type == game.QueueItemShipToken || item.Type == game.QueueItemStarbase) {
				return true
			}
		}
	}
	return false
}

func (c *checker) relation(o *RelationOrder) *Rejection {
	if o.PlayerNum == c.player.Num {
		return c.rejectp("relation", "cannot set a relation with yourself")
	}
	if c.world.Player(o.PlayerNum) == nil {
		return c.rejectp("relation", fmt.Sprintf("no player %d", o.PlayerNum))
	}
	return nil
}

func (c *checker) fleet(o *FleetOrder) *Rejection {
	f, r := c.ownFleet("fleet orders", o.FleetID)
	if r != nil {
		return r
	}
	order := fmt.Sprintf("orders for %s", f.Name)
	if f.Starbase && len(o.Waypoints) > 1 {
		return c.rejectp(order, "starbases cannot move")
	}
	if o.BattlePlanNum != 0 && !c.hasBattlePlan(o.BattlePlanNum) {
		return c.rejectp(order, fmt.Sprintf("no battle plan %d", o.BattlePlanNum))
	}
	for i, wp := range o.Waypoints {
		if wp.TargetType != game.MapObjectNone && c.targetPosition(wp.TargetType, wp.TargetID) == nil {
			return c.rejectp(order, fmt.Sprintf("waypoint %d targets an unknown object", i))
		}
		if wp.Task == game.TaskTransferFleet && c.world.Player(wp.TransferToPlayer) == nil {
			return c.rejectp(order, fmt.Sprintf("waypoint %d transfers to an unknown player", i))
		}
	}
	return nil
}

func (c *checker) hasBattlePlan(num int) bool {
	for _, plan := range c.player.BattlePlans {
		if plan.Num == num {
			return true
		}
	}
	for _, plan := range c.orders.BattlePlans {
		if plan.Num == num {
			return true
		}
	}
	return false
}

// targetPosition resolves a waypoint target. Fleet targets chase, so their
// current position is only a starting point.
func (c *checker) targetPosition(t game.MapObjectType, id uuid.UUID) *shared.Vector {
	switch t {
	case game.MapObjectPlanet:
		if p := c.world.Planet(id); p != nil {
			return &p.Position
		}
	case game.MapObjectFleet:
		if f := c.world.Fleet(id); f != nil {
			return &f.Position
		}
	case game.MapObjectMineralPacket:
		if p := c.world.MineralPacket(id); p != nil {
			return &p.Position
		}
	case game.MapObjectWormhole:
		if wh := c.world.Wormhole(id); wh != nil {
			return &wh.Position
		}
	case game.MapObjectMineField:
		if m := c.world.MineField(id); m != nil {
			return &m.Position
		}
	}
	return nil
}

func (c *checker) planet(o *PlanetOrder) []Rejection {
	p := c.world.Planet(o.PlanetID)
	if p == nil {
		return []Rejection{c.reject("planet orders", fmt.Sprintf("no planet %s", shortID(o.PlanetID)))}
	}
	order := fmt.Sprintf("orders for %s", p.Name)
	if !p.OwnedBy(c.player.Num) {
		return []Rejection{c.reject(order, "the planet is not yours")}
	}
	var out []Rejection
	if o.PacketTargetID != uuid.Nil && c.world.Planet(o.PacketTargetID) == nil {
		out = append(out, c.reject(order, "packet target is not a planet"))
	}
	for i, item := range o.ProductionQueue {
		if reason := c.queueItem(item); reason != "" {
			out = append(out, c.reject(order, fmt.Sprintf("queue item %d: %s", i, reason)))
		}
	}
	return out
}

func (c *checker) queueItem(item QueueItemOrder) string {
	if item.Type < game.QueueItemMine || item.Type > game.QueueItemAutoAlchemy {
		return fmt.Sprintf("unknown item type %d", int(item.Type))
	}
	if item.Type != game.QueueItemShipToken && item.Type != game.QueueItemStarbase {
		return ""
	}
	d := c.player.Design(item.DesignNum)
	if d == nil || d.Deleted {
		if c.createsDesign(item.DesignNum) {
			return ""
		}
		return fmt.Sprintf("no design %d", item.DesignNum)
	}
	if item.Type == game.QueueItemStarbase && !d.Spec.Starbase {
		return fmt.Sprintf("%s is not a starbase", d.Name)
	}
	if item.Type == game.QueueItemShipToken && d.Spec.Starbase {
		return fmt.Sprintf("%s is a starbase", d.Name)
	}
	return ""
}

func (c *checker) createsDesign(num int) bool {
	for _, d := range c.orders.Designs {
		if d.Action == DesignCreate && d.Num == num {
			return true
		}
	}
	return false
}

func shortID(id uuid.UUID) string {
	return fmt.Sprintf("%x", id[:4])
}
