package game

import (
	"fmt"
	"strings"

	"github.com/andrescamacho/stars-go/internal/domain/rules"
)

// PRT is a race's primary racial trait.
type PRT int

const (
	PRTJackOfAllTrades PRT = iota
	PRTHyperExpansion
	PRTSuperStealth
	PRTWarMonger
	PRTClaimAdjuster
	PRTInnerStrength
	PRTSpaceDemolition
	PRTPacketPhysics
	PRTInterstellarTraveler
	PRTAlternateReality
)

var prtNames = map[PRT]string{
	PRTJackOfAllTrades:      "JoaT",
	PRTHyperExpansion:       "HE",
	PRTSuperStealth:         "SS",
	PRTWarMonger:            "WM",
	PRTClaimAdjuster:        "CA",
	PRTInnerStrength:        "IS",
	PRTSpaceDemolition:      "SD",
	PRTPacketPhysics:        "PP",
	PRTInterstellarTraveler: "IT",
	PRTAlternateReality:     "AR",
}

func (p PRT) String() string {
	if name, ok := prtNames[p]; ok {
		return name
	}
	return fmt.Sprintf("PRT(%d)", int(p))
}

func (p PRT) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *PRT) UnmarshalText(text []byte) error {
	for prt, name := range prtNames {
		if strings.EqualFold(name, string(text)) {
			*p = prt
			return nil
		}
	}
	return fmt.Errorf("unknown PRT %q", string(text))
}

// LRT is a bit set of lesser racial traits.
type LRT int

const (
	LRTImprovedFuelEfficiency LRT = 1 << iota
	LRTTotalTerraforming
	LRTAdvancedRemoteMining
	LRTImprovedStarbases
	LRTGeneralizedResearch
	LRTUltimateRecycling
	LRTMineralAlchemy
	LRTNoRamScoopEngines
	LRTCheapEngines
	LRTOnlyBasicRemoteMining
	LRTNoAdvancedScanners
	LRTLowStartingPopulation
	LRTBleedingEdgeTechnology
	LRTRegeneratingShields
)

var lrtNames = []struct {
	lrt  LRT
	name string
}{
	{LRTImprovedFuelEfficiency, "IFE"},
	{LRTTotalTerraforming, "TT"},
	{LRTAdvancedRemoteMining, "ARM"},
	{LRTImprovedStarbases, "ISB"},
	{LRTGeneralizedResearch, "GR"},
	{LRTUltimateRecycling, "UR"},
	{LRTMineralAlchemy, "MA"},
	{LRTNoRamScoopEngines, "NRSE"},
	{LRTCheapEngines, "CE"},
	{LRTOnlyBasicRemoteMining, "OBRM"},
	{LRTNoAdvancedScanners, "NAS"},
	{LRTLowStartingPopulation, "LSP"},
	{LRTBleedingEdgeTechnology, "BET"},
	{LRTRegeneratingShields, "RS"},
}

func (l LRT) String() string {
	var parts []string
	for _, n := range lrtNames {
		if l&n.lrt != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, ",")
}

// ParseLRTs parses a comma separated list such as "IFE,TT".
func ParseLRTs(s string) (LRT, error) {
	var result LRT
	if strings.TrimSpace(s) == "" {
		return 0, nil
	}
	for _, part := range strings.Split(s, ",") {
		found := false
		for _, n := range lrtNames {
			if strings.EqualFold(strings.TrimSpace(part), n.name) {
				result |= n.lrt
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("unknown LRT %q", part)
		}
	}
	return result, nil
}

func (l LRT) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

func (l *LRT) UnmarshalText(text []byte) error {
	parsed, err := ParseLRTs(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// Race holds the traits that feed every race-dependent formula.
type Race struct {
	Name         string             `json:"name"`
	PluralName   string             `json:"pluralName"`
	PRT          PRT                `json:"prt"`
	LRTs         LRT                `json:"lrts"`
	HabLow       Hab                `json:"habLow"`
	HabHigh      Hab                `json:"habHigh"`
	ImmuneGrav   bool               `json:"immuneGrav,omitempty"`
	ImmuneTemp   bool               `json:"immuneTemp,omitempty"`
	ImmuneRad    bool               `json:"immuneRad,omitempty"`
	GrowthRate   int                `json:"growthRate"` // percent per year
	ResearchCost rules.ResearchCost `json:"researchCost"`
}

// DefaultRace is a balanced humanoid race.
func DefaultRace() Race {
	return Race{
		Name:       "Humanoid",
		PluralName: "Humanoids",
		PRT:        PRTJackOfAllTrades,
		HabLow:     Hab{Grav: 15, Temp: 15, Rad: 15},
		HabHigh:    Hab{Grav: 85, Temp: 85, Rad: 85},
		GrowthRate: 15,
	}
}

func (r *Race) HasLRT(l LRT) bool {
	return r.LRTs&l != 0
}

// Immune reports immunity on one axis.
func (r *Race) Immune(h rules.HabType) bool {
	switch h {
	case rules.HabGravity:
		return r.ImmuneGrav
	case rules.HabTemperature:
		return r.ImmuneTemp
	case rules.HabRadiation:
		return r.ImmuneRad
	}
	return false
}

// HabCenter is the ideal value on every axis.
func (r *Race) HabCenter() Hab {
	return Hab{
		Grav: (r.HabLow.Grav + r.HabHigh.Grav) / 2,
		Temp: (r.HabLow.Temp + r.HabHigh.Temp) / 2,
		Rad:  (r.HabLow.Rad + r.HabHigh.Rad) / 2,
	}
}

// MaxPopulationFactor scales the rules' max population.
func (r *Race) MaxPopulationFactor() float64 {
	factor := 1.0
	switch r.PRT {
	case PRTHyperExpansion:
		factor = 0.5
	case PRTJackOfAllTrades:
		factor = 1.2
	}
	if r.HasLRT(LRTOnlyBasicRemoteMining) {
		factor *= 1.1
	}
	return factor
}

func (r *Race) StealsResearch() bool { return r.PRT == PRTSuperStealth }
func (r *Race) GrowsInCargo() bool { return r.PRT == PRTInnerStrength }
func (r *Race) Instaforms() bool { return r.PRT == PRTClaimAdjuster }
func (r *Race) Permaforms() bool { return r.PRT == PRTClaimAdjuster }
func (r *Race) PacketTerraform() bool { return r.PRT == PRTPacketPhysics }
func (r *Race) DetonatesMines() bool { return r.PRT == PRTSpaceDemolition }

// GroundAttackFactor multiplies invading colonists.
func (r *Race) GroundAttackFactor() float64 {
	if r.PRT == PRTWarMonger {
		return 1.5
	}
	return 1
}

// GroundDefenseFactor multiplies defending colonists.
func (r *Race) GroundDefenseFactor() float64 {
	if r.PRT == PRTInnerStrength {
		return 2
	}
	return 1
}

// FuelEfficiency multiplies fuel burned.
func (r *Race) FuelEfficiency() float64 {
	if r.HasLRT(LRTImprovedFuelEfficiency) {
		return 0.85
	}
	return 1
}

// TerraformCostFactor multiplies terraform item cost.
func (r *Race) TerraformCostFactor() float64 {
	if r.HasLRT(LRTTotalTerraforming) {
		return 0.7
	}
	return 1
}

// StarbaseCostFactor multiplies starbase design cost.
func (r *Race) StarbaseCostFactor() float64 {
	if r.HasLRT(LRTImprovedStarbases) {
		return 0.8
	}
	return 1
}

// EngineCostFactor multiplies engine component cost.
func (r *Race) EngineCostFactor() float64 {
	if r.HasLRT(LRTCheapEngines) {
		return 0.5
	}
	return 1
}

// ShieldFactor and ArmorFactor apply regenerating shields.
func (r *Race) ShieldFactor() float64 {
	if r.HasLRT(LRTRegeneratingShields) {
		return 1.4
	}
	return 1
}

func (r *Race) ArmorFactor() float64 {
	if r.HasLRT(LRTRegeneratingShields) {
		return 0.5
	}
	return 1
}

// ScrapMineralPercent is the share of a scrapped fleet's minerals recovered.
func (r *Race) ScrapMineralPercent(rs *rules.Rules, atStarbase bool) int {
	percent := rs.ScrapMineralPercent
	if atStarbase {
		percent = rs.ScrapMineralPercentStarbase
	}
	if r.HasLRT(LRTUltimateRecycling) {
		percent += 12
	}
	return percent
}

// AlchemyCost overrides the rules' alchemy price for mineral alchemists.
func (r *Race) AlchemyCost(rs *rules.Rules) rules.Cost {
	if r.HasLRT(LRTMineralAlchemy) {
		return rules.Cost{Resources: 25}
	}
	return rs.Costs.Alchemy
}

// StartingPopulation applies the low-starting-population trait.
func (r *Race) StartingPopulation(rs *rules.Rules) int {
	if r.HasLRT(LRTLowStartingPopulation) {
		return rs.StartingPopulation * 7 / 10
	}
	return rs.StartingPopulation
}

// MiniaturizationBonus doubles the per-level discount for bleeding edge races.
func (r *Race) MiniaturizationBonus() float64 {
	if r.HasLRT(LRTBleedingEdgeTechnology) {
		return 2
	}
	return 1
}

// PenScanAllowed is false for races without advanced scanners.
func (r *Race) PenScanAllowed() bool {
	return !r.HasLRT(LRTNoAdvancedScanners)
}

// RemoteMiningFactor multiplies remote mining output.
func (r *Race) RemoteMiningFactor() float64 {
	if r.HasLRT(LRTAdvancedRemoteMining) {
		return 1.5
	}
	return 1
}

// StartingTechLevels are the tech levels a new player begins with.
func (r *Race) StartingTechLevels() rules.TechLevel {
	var level rules.TechLevel
	switch r.PRT {
	case PRTJackOfAllTrades:
		level = rules.TechLevel{Energy: 3, Weapons: 3, Propulsion: 3, Construction: 3, Electronics: 3, Biotechnology: 3}
	case PRTSuperStealth:
		level.Electronics = 5
	case PRTWarMonger:
		level = rules.TechLevel{Energy: 1, Weapons: 6, Propulsion: 1}
	case PRTClaimAdjuster:
		level = rules.TechLevel{Energy: 1, Weapons: 1, Propulsion: 1, Construction: 2, Biotechnology: 6}
	case PRTSpaceDemolition:
		level = rules.TechLevel{Propulsion: 2, Biotechnology: 2}
	case PRTPacketPhysics:
		level.Energy = 4
	case PRTInterstellarTraveler:
		level = rules.TechLevel{Propulsion: 5, Construction: 5}
	case PRTAlternateReality:
		level.Energy = 1
	}
	if r.HasLRT(LRTImprovedFuelEfficiency) {
		level.Propulsion++
	}
	if r.HasLRT(LRTCheapEngines) {
		level.Propulsion++
	}
	return level
}
