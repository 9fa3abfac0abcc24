package rules

import (
	"fmt"

	"github.com/andrescamacho/stars-go/internal/domain/shared"
)

// MaxTechLevel is the highest level any field can reach.
const MaxTechLevel = 26

// Rules holds every game constant the engine reads. A game's Rules never
// change after creation.
type Rules struct {
	Seed         int64 `yaml:"seed"`
	StartingYear int   `yaml:"starting_year"`

	MineralDecayFactor               int `yaml:"mineral_decay_factor"`
	MinMineralConcentration          int `yaml:"min_mineral_concentration"`
	MinHomeworldMineralConcentration int `yaml:"min_homeworld_mineral_concentration"`
	MaxStartingConcentration         int `yaml:"max_starting_concentration"`

	MaxPopulation            int `yaml:"max_population"`
	MinMaxPopulationPercent  int `yaml:"min_max_population_percent"`
	PopulationPerResource    int `yaml:"population_per_resource"`
	FactoryOutput            int `yaml:"factory_output"`
	MineOutput               int `yaml:"mine_output"`
	MinesPer10kColonists     int `yaml:"mines_per_10k_colonists"`
	FactoriesPer10kColonists int `yaml:"factories_per_10k_colonists"`
	MaxDefenses              int `yaml:"max_defenses"`
	StartingPopulation       int `yaml:"starting_population"`
	StartingMines            int `yaml:"starting_mines"`
	StartingFactories        int `yaml:"starting_factories"`
	StartingDefenses         int `yaml:"starting_defenses"`
	StartingSurfaceMinerals  int `yaml:"starting_surface_minerals"`

	NumBattleRounds          int     `yaml:"num_battle_rounds"`
	BattleGridSize           int     `yaml:"battle_grid_size"`
	BeamRangeDropoff         float64 `yaml:"beam_range_dropoff"`
	TorpedoSplashDamage      float64 `yaml:"torpedo_splash_damage"`
	RunAwayAfterRounds       int     `yaml:"run_away_after_rounds"`
	SalvageFromBattlePercent int     `yaml:"salvage_from_battle_percent"`
	SalvageDecayPercent      int     `yaml:"salvage_decay_percent"`
	SalvageDecayMin          int     `yaml:"salvage_decay_min"`

	ScrapMineralPercent         int     `yaml:"scrap_mineral_percent"`
	ScrapMineralPercentStarbase int     `yaml:"scrap_mineral_percent_starbase"`
	TechGainChance              float64 `yaml:"tech_gain_chance"`
	StealResearchPercent        int     `yaml:"steal_research_percent"`

	FuelPerMassLightYear int `yaml:"fuel_per_mass_light_year"`
	NoFuelWarp           int `yaml:"no_fuel_warp"`
	StargateWarp         int `yaml:"stargate_warp"`
	StarbaseRefuelAmount int `yaml:"starbase_refuel_amount"`

	MineHitChancePerWarp         float64 `yaml:"mine_hit_chance_per_warp"`
	MineFieldSafeWarp            int     `yaml:"mine_field_safe_warp"`
	MineDamagePerShip            int     `yaml:"mine_damage_per_ship"`
	MineFieldHitReductionPercent int     `yaml:"mine_field_hit_reduction_percent"`
	MineFieldDecayPercent        int     `yaml:"mine_field_decay_percent"`
	MineFieldMinDecay            int     `yaml:"mine_field_min_decay"`
	MineSweepPerPower            int     `yaml:"mine_sweep_per_power"`

	MineralPacketSize         int `yaml:"mineral_packet_size"`
	PacketDecayPercentPerWarp int `yaml:"packet_decay_percent_per_warp"`
	PacketDamageDivisor       int `yaml:"packet_damage_divisor"`
	PacketTerraformMass       int `yaml:"packet_terraform_mass"`

	WormholeJitter         int `yaml:"wormhole_jitter"`
	WormholeStabilityDecay int `yaml:"wormhole_stability_decay"`
	WormholeMaxStability   int `yaml:"wormhole_max_stability"`

	PermaformChance     float64 `yaml:"permaform_chance"`
	PermaformPopulation int     `yaml:"permaform_population"`

	RandomEvents RandomEventChances `yaml:"random_events"`

	PopulationReportError float64 `yaml:"population_report_error"`
	PatrolRange           int     `yaml:"patrol_range"`

	MysteryTraderMinMinerals int `yaml:"mystery_trader_min_minerals"`
	MysteryTraderWarp        int `yaml:"mystery_trader_warp"`

	RepairPercent RepairRates `yaml:"repair_percent"`

	ResearchBaseCosts       []int   `yaml:"research_base_costs"`
	ResearchFactorCheap     float64 `yaml:"research_factor_cheap"`
	ResearchFactorExpensive float64 `yaml:"research_factor_expensive"`
	MiniaturizationPerLevel float64 `yaml:"miniaturization_per_level"`
	MiniaturizationMax      float64 `yaml:"miniaturization_max"`

	Costs ProductionCosts `yaml:"costs"`

	PlanetMinDistance    int `yaml:"planet_min_distance"`
	HomeworldMinDistance int `yaml:"homeworld_min_distance"`

	Victory VictoryConditions `yaml:"victory"`
}

type RandomEventChances struct {
	Comet           float64 `yaml:"comet"`
	MineralDeposit  float64 `yaml:"mineral_deposit"`
	PlanetaryChange float64 `yaml:"planetary_change"`
}

// RepairRates are percent of max armor repaired per year.
type RepairRates struct {
	Moving       int `yaml:"moving"`
	Stationary   int `yaml:"stationary"`
	OwnPlanet    int `yaml:"own_planet"`
	Starbase     int `yaml:"starbase"`
	StarbaseSelf int `yaml:"starbase_self"`
}

type ProductionCosts struct {
	Mine          Cost `yaml:"mine"`
	Factory       Cost `yaml:"factory"`
	Defense       Cost `yaml:"defense"`
	Terraform     Cost `yaml:"terraform"`
	Alchemy       Cost `yaml:"alchemy"`
	Scanner       Cost `yaml:"scanner"`
	MineralPacket Cost `yaml:"mineral_packet"` // resource part only, minerals come from the packet itself
}

// VictoryCondition is a bit flag set of enabled conditions.
type VictoryCondition int

const (
	VictoryOwnPlanets VictoryCondition = 1 << iota
	VictoryAttainTechLevels
	VictoryExceedsScore
	VictoryExceedsSecondPlaceScore
	VictoryProductionCapacity
	VictoryOwnCapitalShips
	VictoryHighestScoreAfterYears
)

// VictoryConditionsAll lists conditions in evaluation order.
var VictoryConditionsAll = []VictoryCondition{
	VictoryOwnPlanets,
	VictoryAttainTechLevels,
	VictoryExceedsScore,
	VictoryExceedsSecondPlaceScore,
	VictoryProductionCapacity,
	VictoryOwnCapitalShips,
	VictoryHighestScoreAfterYears,
}

type VictoryConditions struct {
	Conditions                     VictoryCondition `yaml:"conditions"`
	NumCriteriaRequired            int              `yaml:"num_criteria_required"`
	YearsPassed                    int              `yaml:"years_passed"`
	OwnPlanetsPercent              int              `yaml:"own_planets_percent"`
	AttainTechLevel                int              `yaml:"attain_tech_level"`
	AttainTechLevelNumFields       int              `yaml:"attain_tech_level_num_fields"`
	ExceedsScore                   int              `yaml:"exceeds_score"`
	ExceedsSecondPlaceScorePercent int              `yaml:"exceeds_second_place_score_percent"`
	ProductionCapacity             int              `yaml:"production_capacity"` // thousands of resources
	OwnCapitalShips                int              `yaml:"own_capital_ships"`
	HighestScoreAfterYears         int              `yaml:"highest_score_after_years"`
}

// Default returns the standard rule set.
func Default() *Rules {
	return &Rules{
		Seed:         0,
		StartingYear: 2400,

		MineralDecayFactor:               1_500_000,
		MinMineralConcentration:          1,
		MinHomeworldMineralConcentration: 30,
		MaxStartingConcentration:         100,

		MaxPopulation:            1_000_000,
		MinMaxPopulationPercent:  5,
		PopulationPerResource:    1000,
		FactoryOutput:            10,
		MineOutput:               10,
		MinesPer10kColonists:     10,
		FactoriesPer10kColonists: 10,
		MaxDefenses:              100,
		StartingPopulation:       25000,
		StartingMines:            10,
		StartingFactories:        10,
		StartingDefenses:         10,
		StartingSurfaceMinerals:  300,

		NumBattleRounds:          16,
		BattleGridSize:           10,
		BeamRangeDropoff:         0.10,
		TorpedoSplashDamage:      0.125,
		RunAwayAfterRounds:       7,
		SalvageFromBattlePercent: 33,
		SalvageDecayPercent:      10,
		SalvageDecayMin:          10,

		ScrapMineralPercent:         33,
		ScrapMineralPercentStarbase: 45,
		TechGainChance:              0.5,
		StealResearchPercent:        50,

		FuelPerMassLightYear: 20000,
		NoFuelWarp:           1,
		StargateWarp:         11,
		StarbaseRefuelAmount: -1,

		MineHitChancePerWarp:         0.003,
		MineFieldSafeWarp:            4,
		MineDamagePerShip:            100,
		MineFieldHitReductionPercent: 10,
		MineFieldDecayPercent:        2,
		MineFieldMinDecay:            10,
		MineSweepPerPower:            1,

		MineralPacketSize:         100,
		PacketDecayPercentPerWarp: 10,
		PacketDamageDivisor:       160,
		PacketTerraformMass:       100,

		WormholeJitter:         10,
		WormholeStabilityDecay: 5,
		WormholeMaxStability:   100,

		PermaformChance:     0.1,
		PermaformPopulation: 100_000,

		RandomEvents: RandomEventChances{Comet: 0.01, MineralDeposit: 0.01, PlanetaryChange: 0.01},

		PopulationReportError: 0.20,
		PatrolRange:           50,

		MysteryTraderMinMinerals: 5000,
		MysteryTraderWarp:        6,

		RepairPercent: RepairRates{Moving: 1, Stationary: 2, OwnPlanet: 5, Starbase: 10, StarbaseSelf: 10},

		ResearchBaseCosts: []int{
			0, 50, 80, 130, 210, 340, 550, 890, 1440, 2330, 3770, 6100, 9870,
			13850, 18040, 22440, 27050, 31870, 36900, 42140, 47590, 53250,
			59120, 65200, 71490, 77990, 84710,
		},
		ResearchFactorCheap:     0.5,
		ResearchFactorExpensive: 1.75,
		MiniaturizationPerLevel: 0.04,
		MiniaturizationMax:      0.75,

		Costs: ProductionCosts{
			Mine:          Cost{Resources: 5},
			Factory:       Cost{Germanium: 4, Resources: 10},
			Defense:       Cost{Ironium: 5, Boranium: 5, Germanium: 5, Resources: 15},
			Terraform:     Cost{Resources: 100},
			Alchemy:       Cost{Resources: 100},
			Scanner:       Cost{Germanium: 10, Resources: 100},
			MineralPacket: Cost{Resources: 10},
		},

		PlanetMinDistance:    15,
		HomeworldMinDistance: 200,

		Victory: VictoryConditions{
			Conditions:                     VictoryOwnPlanets | VictoryAttainTechLevels | VictoryExceedsSecondPlaceScore,
			NumCriteriaRequired:            1,
			YearsPassed:                    50,
			OwnPlanetsPercent:              60,
			AttainTechLevel:                22,
			AttainTechLevelNumFields:       4,
			ExceedsScore:                   11000,
			ExceedsSecondPlaceScorePercent: 100,
			ProductionCapacity:             100,
			OwnCapitalShips:                100,
			HighestScoreAfterYears:         100,
		},
	}
}

// Validate rejects rule sets the engine cannot run with.
func (r *Rules) Validate() error {
	checks := []struct {
		field string
		ok    bool
		msg   string
	}{
		{"mineral_decay_factor", r.MineralDecayFactor > 0, "must be positive"},
		{"min_mineral_concentration", r.MinMineralConcentration >= 0, "cannot be negative"},
		{"min_homeworld_mineral_concentration", r.MinHomeworldMineralConcentration >= r.MinMineralConcentration, "must be at least min_mineral_concentration"},
		{"max_population", r.MaxPopulation > 0, "must be positive"},
		{"population_per_resource", r.PopulationPerResource > 0, "must be positive"},
		{"num_battle_rounds", r.NumBattleRounds > 0, "must be positive"},
		{"battle_grid_size", r.BattleGridSize >= 2, "must be at least 2"},
		{"fuel_per_mass_light_year", r.FuelPerMassLightYear > 0, "must be positive"},
		{"research_base_costs", len(r.ResearchBaseCosts) == MaxTechLevel+1, fmt.Sprintf("must have %d entries", MaxTechLevel+1)},
		{"miniaturization_max", r.MiniaturizationMax >= 0 && r.MiniaturizationMax < 1, "must be in [0, 1)"},
		{"mineral_packet_size", r.MineralPacketSize > 0, "must be positive"},
		{"packet_damage_divisor", r.PacketDamageDivisor > 0, "must be positive"},
	}
	for _, c := range checks {
		if !c.ok {
			return shared.NewValidationError(c.field, c.msg)
		}
	}
	return nil
}
