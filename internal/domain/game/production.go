package game

import (
	"fmt"

	"github.com/andrescamacho/stars-go/internal/domain/rules"
	"github.com/andrescamacho/stars-go/internal/domain/shared"
)

// QueueItemType is the kind of thing a production queue item builds.
type QueueItemType int

const (
	QueueItemMine QueueItemType = iota
	QueueItemFactory
	QueueItemDefense
	QueueItemTerraform
	QueueItemAlchemy
	QueueItemScanner
	QueueItemMixedPacket
	QueueItemIroniumPacket
	QueueItemBoraniumPacket
	QueueItemGermaniumPacket
	QueueItemShipToken
	QueueItemStarbase
	QueueItemAutoMines
	QueueItemAutoFactories
	QueueItemAutoDefenses
	QueueItemAutoAlchemy
)

var queueItemNames = []string{
	"Mine", "Factory", "Defense", "Terraform", "Alchemy", "Scanner",
	"MixedPacket", "IroniumPacket", "BoraniumPacket", "GermaniumPacket",
	"ShipToken", "Starbase", "AutoMines", "AutoFactories", "AutoDefenses", "AutoAlchemy",
}

func (t QueueItemType) String() string {
	if int(t) >= 0 && int(t) < len(queueItemNames) {
		return queueItemNames[t]
	}
	return fmt.Sprintf("QueueItemType(%d)", int(t))
}

// ParseQueueItemType maps a name to its type.
func ParseQueueItemType(s string) (QueueItemType, error) {
	for i, name := range queueItemNames {
		if name == s {
			return QueueItemType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown production item %q", s)
}

// IsAuto items never block the queue: they take what they can and pass the
// rest down.
func (t QueueItemType) IsAuto() bool {
	return t >= QueueItemAutoMines
}

// IsPacket reports mineral packet items.
func (t QueueItemType) IsPacket() bool {
	return t >= QueueItemMixedPacket && t <= QueueItemGermaniumPacket
}

// concrete maps an auto item to the item it builds.
func (t QueueItemType) concrete() QueueItemType {
	switch t {
	case QueueItemAutoMines:
		return QueueItemMine
	case QueueItemAutoFactories:
		return QueueItemFactory
	case QueueItemAutoDefenses:
		return QueueItemDefense
	case QueueItemAutoAlchemy:
		return QueueItemAlchemy
	}
	return t
}

// ProductionQueueItem is one line of a planet's queue. Allocated is spend
// carried over from earlier years toward the next unit.
type ProductionQueueItem struct {
	Type      QueueItemType `json:"type"`
	Quantity  int           `json:"quantity"`
	DesignNum int           `json:"designNum,omitempty"`
	Allocated rules.Cost    `json:"allocated"`
}

// BuiltShips is a batch of ships finished this year at one planet.
type BuiltShips struct {
	Design   *ShipDesign
	Quantity int
}

// ProductionResult carries the effects of one planet's production that need
// the world to apply: new fleets, starbases and packets.
type ProductionResult struct {
	Ships             []BuiltShips
	Starbase          *ShipDesign
	Packets           []shared.Cargo
	LeftoverResources int
	ResearchResources int
	Messages          []Message
	MissingReferences []error
	Built             map[QueueItemType]int
}

// Producer holds what production reads besides the planet itself.
type Producer struct {
	Rules  *rules.Rules
	Techs  *rules.TechCatalog
	Player *Player
}

// UnitCost is the price of one unit of an item for this producer.
func (pr *Producer) UnitCost(p *Planet, item *ProductionQueueItem) (rules.Cost, error) {
	costs := pr.Rules.Costs
	race := &pr.Player.Race
	switch item.Type.concrete() {
	case QueueItemMine:
		return costs.Mine, nil
	case QueueItemFactory:
		return costs.Factory, nil
	case QueueItemDefense:
		return costs.Defense, nil
	case QueueItemTerraform:
		return costs.Terraform.Scale(race.TerraformCostFactor()), nil
	case QueueItemAlchemy:
		return race.AlchemyCost(pr.Rules), nil
	case QueueItemScanner:
		return costs.Scanner, nil
	case QueueItemMixedPacket:
		third := pr.Rules.MineralPacketSize / 3
		return costs.MineralPacket.Add(rules.Cost{Ironium: third, Boranium: third, Germanium: third}), nil
	case QueueItemIroniumPacket:
		return costs.MineralPacket.Add(rules.Cost{Ironium: pr.Rules.MineralPacketSize}), nil
	case QueueItemBoraniumPacket:
		return costs.MineralPacket.Add(rules.Cost{Boranium: pr.Rules.MineralPacketSize}), nil
	case QueueItemGermaniumPacket:
		return costs.MineralPacket.Add(rules.Cost{Germanium: pr.Rules.MineralPacketSize}), nil
	case QueueItemShipToken, QueueItemStarbase:
		design := pr.Player.Design(item.DesignNum)
		if design == nil {
			return rules.Cost{}, shared.NewMissingReferenceError("design", fmt.Sprintf("%d/%d", pr.Player.Num, item.DesignNum))
		}
		return design.Spec.Cost, nil
	}
	return rules.Cost{}, fmt.Errorf("unhandled production item %s", item.Type)
}

// canBuild reports whether one more unit is allowed on this planet.
func (pr *Producer) canBuild(p *Planet, item *ProductionQueueItem, defense *rules.Tech) (bool, string) {
	race := &pr.Player.Race
	switch item.Type.concrete() {
	case QueueItemMine:
		return p.Mines < p.MaxMines(race, pr.Rules), "mines are at capacity"
	case QueueItemFactory:
		return p.Factories < p.MaxFactories(race, pr.Rules), "factories are at capacity"
	case QueueItemDefense:
		if defense == nil {
			return false, "no planetary defense technology"
		}
		return p.Defenses < p.MaxDefenses(pr.Rules), "defenses are at capacity"
	case QueueItemScanner:
		return !p.Scanner, "the planet already has a scanner"
	case QueueItemTerraform:
		probe := *p
		_, ok := probe.TerraformOneStep(race, pr.terraformAbility())
		return ok, "nothing left to terraform"
	case QueueItemMixedPacket, QueueItemIroniumPacket, QueueItemBoraniumPacket, QueueItemGermaniumPacket:
		if p.Starbase == nil || p.Starbase.Spec().PacketSpeed == 0 {
			return false, "the planet has no mass driver"
		}
		return true, ""
	case QueueItemShipToken:
		design := pr.Player.Design(item.DesignNum)
		if p.Starbase == nil {
			return false, "the planet has no starbase to build ships"
		}
		dock := p.Starbase.Spec().SpaceDock
		if dock == 0 || (dock > 0 && design.Spec.Mass > dock) {
			return false, fmt.Sprintf("the starbase dock cannot build %s", design.Name)
		}
		return true, ""
	}
	return true, ""
}

func (pr *Producer) terraformAbility() func(rules.HabType) int {
	return func(h rules.HabType) int {
		return pr.Techs.TerraformAbility(pr.Player.TechLevels, h)
	}
}

// complete applies one finished unit to the planet, or records it for the
// world to apply.
func (pr *Producer) complete(p *Planet, item *ProductionQueueItem, result *ProductionResult) {
	result.Built[item.Type.concrete()]++
	switch item.Type.concrete() {
	case QueueItemMine:
		p.Mines++
	case QueueItemFactory:
		p.Factories++
	case QueueItemDefense:
		p.Defenses++
	case QueueItemScanner:
		p.Scanner = true
	case QueueItemAlchemy:
		p.Cargo = p.Cargo.Add(shared.Cargo{Ironium: 1, Boranium: 1, Germanium: 1})
	case QueueItemTerraform:
		p.TerraformOneStep(&pr.Player.Race, pr.terraformAbility())
	case QueueItemMixedPacket, QueueItemIroniumPacket, QueueItemBoraniumPacket, QueueItemGermaniumPacket:
		cost, _ := pr.UnitCost(p, item)
		result.Packets = append(result.Packets, cost.Minerals())
	case QueueItemShipToken:
		design := pr.Player.Design(item.DesignNum)
		if n := len(result.Ships); n > 0 && result.Ships[n-1].Design == design {
			result.Ships[n-1].Quantity++
		} else {
			result.Ships = append(result.Ships, BuiltShips{Design: design, Quantity: 1})
		}
	case QueueItemStarbase:
		result.Starbase = pr.Player.Design(item.DesignNum)
	}
}

// Produce runs one year of the planet's queue, front to back. A non-auto item
// that cannot be finished keeps what it was given and stops the queue; auto
// items take what they can and let the queue continue. Whatever resources
// are left over go to research.
func (pr *Producer) Produce(p *Planet) ProductionResult {
	result := ProductionResult{Built: map[QueueItemType]int{}}
	if !p.OwnedBy(pr.Player.Num) {
		return result
	}

	resources := p.ResourcesPerYear(pr.Rules)
	if !p.ContributesOnlyLeftoverToResearch {
		result.ResearchResources = resources * pr.Player.ResearchAmount / 100
		resources -= result.ResearchResources
	}
	available := rules.CostFromCargo(p.Cargo, resources)
	defense := pr.Techs.BestDefense(pr.Player.TechLevels)

	var remaining []*ProductionQueueItem
	blocked := false
	for i, item := range p.ProductionQueue {
		if blocked {
			remaining = append(remaining, p.ProductionQueue[i:]...)
			break
		}
		keep, stop := pr.processItem(p, item, &available, defense, &result)
		if keep {
			remaining = append(remaining, item)
		}
		blocked = stop
	}
	p.ProductionQueue = remaining

	p.Cargo = shared.Cargo{
		Ironium:   available.Ironium,
		Boranium:  available.Boranium,
		Germanium: available.Germanium,
	}
	result.LeftoverResources = available.Resources
	result.ResearchResources += available.Resources
	return result
}

// processItem builds as many units of item as available allows. It returns
// whether the item stays queued and whether it blocks later items. Auto
// items build up to Quantity units a year, never take partial funding and
// stay queued.
func (pr *Producer) processItem(p *Planet, item *ProductionQueueItem, available *rules.Cost, defense *rules.Tech, result *ProductionResult) (keep, stop bool) {
	unitCost, err := pr.UnitCost(p, item)
	if err != nil {
		result.MissingReferences = append(result.MissingReferences, err)
		result.Messages = append(result.Messages, NewPlanetMessage(MessageProductionItemSkipped, p,
			fmt.Sprintf("%s skipped %s: %v", p.Name, item.Type, err)))
		return false, false
	}

	auto := item.Type.IsAuto()
	built := 0
	for (auto && built < item.Quantity) || (!auto && item.Quantity > 0) {
		if ok, reason := pr.canBuild(p, item, defense); !ok {
			if auto {
				return true, false
			}
			result.Messages = append(result.Messages, NewPlanetMessage(MessageProductionItemSkipped, p,
				fmt.Sprintf("%s removed %s from its queue: %s", p.Name, item.Type, reason)))
			return false, false
		}

		need := unitCost.Subtract(item.Allocated).ClampZero()
		if available.Covers(need) {
			*available = available.Subtract(need)
			item.Allocated = rules.Cost{}
			pr.complete(p, item, result)
			built++
			if !auto {
				item.Quantity--
			}
			continue
		}

		if auto {
			return true, false
		}
		take := available.Min(need).ClampZero()
		item.Allocated = item.Allocated.Add(take)
		*available = available.Subtract(take)
		return true, true
	}
	return auto, false
}
