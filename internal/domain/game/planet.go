package game

import (
	"math"

	"github.com/google/uuid"

	"github.com/andrescamacho/stars-go/internal/domain/rules"
	"github.com/andrescamacho/stars-go/internal/domain/shared"
	"github.com/andrescamacho/stars-go/pkg/utils"
)

// Unowned is the PlayerNum of planets and objects nobody owns.
const Unowned = 0

// Planet is a star system's single colonisable world.
//
// Invariants:
//   - 0 <= Population <= MaxPopulation after every growth phase
//   - MineralConcentration >= ConcentrationFloor after every mining phase
//   - Mines, Factories and Defenses never exceed their population-derived maxima
type Planet struct {
	ID        uuid.UUID     `json:"id"`
	Num       int           `json:"num"`
	Name      string        `json:"name"`
	Position  shared.Vector `json:"position"`
	PlayerNum int           `json:"playerNum"`
	Homeworld bool          `json:"homeworld"`

	Hab               Hab `json:"hab"`
	BaseHab           Hab `json:"baseHab"`
	TerraformedAmount Hab `json:"terraformedAmount"`

	// Concentrations and mine-years are per mineral; the Colonists slot is unused.
	BaseConcentration    shared.Cargo `json:"baseConcentration"`
	MineralConcentration shared.Cargo `json:"mineralConcentration"`
	MineYears            shared.Cargo `json:"mineYears"`

	// Cargo holds surface minerals only; people live in Population.
	Cargo      shared.Cargo `json:"cargo"`
	Population int          `json:"population"`

	Mines     int  `json:"mines"`
	Factories int  `json:"factories"`
	Defenses  int  `json:"defenses"`
	Scanner   bool `json:"scanner"`

	ProductionQueue                   []*ProductionQueueItem `json:"productionQueue,omitempty"`
	ContributesOnlyLeftoverToResearch bool                   `json:"contributesOnlyLeftoverToResearch"`

	PacketSpeed    int       `json:"packetSpeed,omitempty"`
	PacketTargetID uuid.UUID `json:"packetTargetId,omitempty"`

	Starbase *Fleet `json:"-"`
}

func (p *Planet) Owned() bool {
	return p.PlayerNum != Unowned
}

func (p *Planet) OwnedBy(playerNum int) bool {
	return p.Owned() && p.PlayerNum == playerNum
}

// HabFor is the planet's habitability for a race.
func (p *Planet) HabFor(race *Race) int {
	return race.Habitability(p.Hab)
}

func (p *Planet) MaxPopulation(race *Race, rs *rules.Rules) int {
	return MaxPopulationForHab(race, rs, p.HabFor(race))
}

func (p *Planet) MaxMines(race *Race, rs *rules.Rules) int {
	return p.MaxPopulation(race, rs) * rs.MinesPer10kColonists / 10000
}

func (p *Planet) MaxFactories(race *Race, rs *rules.Rules) int {
	return p.MaxPopulation(race, rs) * rs.FactoriesPer10kColonists / 10000
}

func (p *Planet) MaxDefenses(rs *rules.Rules) int {
	if p.Population <= 0 {
		return 0
	}
	return rs.MaxDefenses
}

// OperableMines is how many mines the current population can work.
func (p *Planet) OperableMines(rs *rules.Rules) int {
	return utils.Min(p.Mines, p.Population*rs.MinesPer10kColonists/10000)
}

func (p *Planet) OperableFactories(rs *rules.Rules) int {
	return utils.Min(p.Factories, p.Population*rs.FactoriesPer10kColonists/10000)
}

// ResourcesPerYear is population plus factory output.
func (p *Planet) ResourcesPerYear(rs *rules.Rules) int {
	if !p.Owned() || p.Population <= 0 {
		return 0
	}
	return p.Population/rs.PopulationPerResource + p.OperableFactories(rs)*rs.FactoryOutput/10
}

// DefenseCoverage is the fraction of bombs blocked.
func (p *Planet) DefenseCoverage(defense *rules.Tech) float64 {
	if defense == nil || p.Defenses <= 0 {
		return 0
	}
	return 1 - math.Pow(1-defense.Defense.Coverage, float64(p.Defenses))
}

// PopulationGrowth is next year's change before rounding and clamping.
// Crowded planets grow slower; hostile ones shrink.
func (p *Planet) PopulationGrowth(race *Race, rs *rules.Rules) int {
	if p.Population <= 0 {
		return 0
	}
	maxPop := p.MaxPopulation(race, rs)
	hab := p.HabFor(race)
	pop := float64(p.Population)

	if hab <= 0 {
		// hostile colonies lose at least one unit a year so they die out
		return utils.Min(-100, int(pop*float64(hab)/1000))
	}

	capacity := pop / float64(maxPop)
	growth := pop * float64(race.GrowthRate) / 100 * float64(hab) / 100
	if capacity > 0.25 {
		crowding := 1 - capacity
		growth *= 16.0 / 9.0 * crowding * crowding
		if capacity > 1 {
			growth = -growth
		}
	}
	return int(growth)
}

// GrowPopulation advances population by one year and returns the change.
// A planet whose population dies out is abandoned.
func (p *Planet) GrowPopulation(race *Race, rs *rules.Rules) int {
	before := p.Population
	grown := utils.RoundToNearest100Int(p.Population + p.PopulationGrowth(race, rs))
	p.Population = utils.Clamp(grown, 0, p.MaxPopulation(race, rs))
	if p.Population == 0 && p.Owned() {
		p.Abandon()
	}
	return p.Population - before
}

// Abandon clears ownership. Buildings stay for whoever comes next; the
// starbase goes with the old owner and is detached on the next sweep.
func (p *Planet) Abandon() {
	if p.Starbase != nil {
		p.Starbase.Delete = true
	}
	p.PlayerNum = Unowned
	p.Population = 0
	p.ProductionQueue = nil
	p.ContributesOnlyLeftoverToResearch = false
	p.PacketTargetID = uuid.Nil
	p.Homeworld = false
}

// TerraformOneStep moves the axis furthest from the race ideal one click
// toward it, within ability clicks of the original hab. It returns false
// when nothing can be improved.
func (p *Planet) TerraformOneStep(race *Race, ability func(rules.HabType) int) (rules.HabType, bool) {
	center := race.HabCenter()
	best := rules.HabType(-1)
	bestDistance := 0
	for _, h := range rules.HabTypes {
		if race.Immune(h) {
			continue
		}
		distance := utils.Abs(p.Hab.Get(h) - center.Get(h))
		if distance == 0 {
			continue
		}
		step := 1
		if p.Hab.Get(h) > center.Get(h) {
			step = -1
		}
		if utils.Abs(p.Hab.Get(h)+step-p.BaseHab.Get(h)) > ability(h) {
			continue
		}
		if distance > bestDistance {
			best = h
			bestDistance = distance
		}
	}
	if best < 0 {
		return best, false
	}
	step := 1
	if p.Hab.Get(best) > center.Get(best) {
		step = -1
	}
	p.Hab.Set(best, p.Hab.Get(best)+step)
	p.TerraformedAmount = p.Hab.Add(Hab{Grav: -p.BaseHab.Grav, Temp: -p.BaseHab.Temp, Rad: -p.BaseHab.Rad})
	return best, true
}
