package rules

import (
	"fmt"
	"math"
	"strings"
)

// ResearchCostLevel is a race's research price modifier for one field.
type ResearchCostLevel int

const (
	ResearchCostNormal ResearchCostLevel = iota
	ResearchCostCheap
	ResearchCostExpensive
)

func (l ResearchCostLevel) String() string {
	switch l {
	case ResearchCostCheap:
		return "Cheap"
	case ResearchCostExpensive:
		return "Expensive"
	}
	return "Normal"
}

func (l ResearchCostLevel) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

func (l *ResearchCostLevel) UnmarshalText(text []byte) error {
	for _, candidate := range []ResearchCostLevel{ResearchCostNormal, ResearchCostCheap, ResearchCostExpensive} {
		if strings.EqualFold(candidate.String(), string(text)) {
			*l = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown research cost level %q", string(text))
}

// ResearchCost holds a cost level per field.
type ResearchCost struct {
	Energy        ResearchCostLevel `json:"energy"`
	Weapons       ResearchCostLevel `json:"weapons"`
	Propulsion    ResearchCostLevel `json:"propulsion"`
	Construction  ResearchCostLevel `json:"construction"`
	Electronics   ResearchCostLevel `json:"electronics"`
	Biotechnology ResearchCostLevel `json:"biotechnology"`
}

func (c ResearchCost) Get(f TechField) ResearchCostLevel {
	switch f {
	case Energy:
		return c.Energy
	case Weapons:
		return c.Weapons
	case Propulsion:
		return c.Propulsion
	case Construction:
		return c.Construction
	case Electronics:
		return c.Electronics
	case Biotechnology:
		return c.Biotechnology
	}
	return ResearchCostNormal
}

func (r *Rules) researchFactor(level ResearchCostLevel) float64 {
	switch level {
	case ResearchCostCheap:
		return r.ResearchFactorCheap
	case ResearchCostExpensive:
		return r.ResearchFactorExpensive
	}
	return 1
}

// ResearchCostForLevel is the resource price of reaching level in a field:
// the base table entry scaled by the race modifier, plus 10 per level the
// player already has in total. Level past the cap returns -1.
func (r *Rules) ResearchCostForLevel(level int, costLevel ResearchCostLevel, totalLevels int) int {
	if level <= 0 {
		return 0
	}
	if level > MaxTechLevel || level >= len(r.ResearchBaseCosts) {
		return -1
	}
	base := float64(r.ResearchBaseCosts[level]) * r.researchFactor(costLevel)
	return int(math.Ceil(base)) + 10*totalLevels
}
