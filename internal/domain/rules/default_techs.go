package rules

// Names of techs the engine and starter designs refer to directly.
const (
	HullScout          = "Scout"
	HullColonyShip     = "Colony Ship"
	HullSmallFreighter = "Small Freighter"
	HullDestroyer      = "Destroyer"
	HullCruiser        = "Cruiser"
	HullMiniMiner      = "Mini-Miner"
	HullMiniMineLayer  = "Mini Mine Layer"
	HullOrbitalFort    = "Orbital Fort"
	HullSpaceStation   = "Space Station"

	EngineQuickJump5  = "Quick Jump 5"
	EngineLongHump6   = "Long Hump 6"
	EngineFuelMizer   = "Fuel Mizer"
	EngineAlphaDrive8 = "Alpha Drive 8"

	ScannerBat   = "Bat Scanner"
	ScannerRhino = "Rhino Scanner"
	ScannerMole  = "Mole Scanner"

	ArmorTritanium = "Tritanium"
	ShieldMoleSkin = "Mole-skin Shield"

	BeamLaser         = "Laser"
	BeamXRayLaser     = "X-Ray Laser"
	TorpedoAlpha      = "Alpha Torpedo"
	BombLadyFinger    = "Lady Finger Bomb"
	ColonizationMod   = "Colonization Module"
	FuelTank          = "Fuel Tank"
	CargoPod          = "Cargo Pod"
	RoboMidgetMiner   = "Robo-Midget Miner"
	MineDispenser40   = "Mine Dispenser 40"
	MassDriver5       = "Mass Driver 5"
	StargateSmall     = "Stargate 100-250"
	OrbitalAdjuster   = "Orbital Adjuster"
	PlanetaryViewer50 = "Viewer 50"
	DefenseSDI        = "SDI"
)

func hull(name string, ranking int, cost Cost, req TechLevel, spec HullSpec) *Tech {
	return &Tech{Name: name, Kind: TechKindHull, Cost: cost, Requirements: req, Ranking: ranking, Hull: &spec}
}

func component(name string, ranking int, cost Cost, req TechLevel, spec ComponentSpec) *Tech {
	return &Tech{Name: name, Kind: TechKindHullComponent, Cost: cost, Requirements: req, Ranking: ranking, Component: &spec}
}

func defense(name string, ranking int, cost Cost, req TechLevel, coverage float64) *Tech {
	return &Tech{Name: name, Kind: TechKindDefense, Cost: cost, Requirements: req, Ranking: ranking,
		Defense: &DefenseSpec{Coverage: coverage}}
}

func terraform(name string, ranking int, cost Cost, req TechLevel, ability int, hab HabType) *Tech {
	return &Tech{Name: name, Kind: TechKindTerraform, Cost: cost, Requirements: req, Ranking: ranking,
		Terraform: &TerraformSpec{Ability: ability, HabType: hab}}
}

func planetaryScanner(name string, ranking int, cost Cost, req TechLevel, scan, pen int) *Tech {
	return &Tech{Name: name, Kind: TechKindPlanetaryScanner, Cost: cost, Requirements: req, Ranking: ranking,
		Scanner: &PlanetaryScannerSpec{ScanRange: scan, PenScanRange: pen}}
}

// defaultTechs builds a fresh copy of the built-in table each call so callers
// can never alias each other's specs.
func defaultTechs() []*Tech {
	return []*Tech{
		// Hulls
		hull(HullScout, 10, Cost{Ironium: 4, Boranium: 2, Germanium: 4, Resources: 10}, TechLevel{}, HullSpec{
			Mass: 8, Armor: 20, FuelCapacity: 50, Initiative: 1,
			Slots: []HullSlot{
				{Type: SlotEngine, Capacity: 1, Required: true},
				{Type: SlotGeneral, Capacity: 1},
				{Type: SlotScanner, Capacity: 1},
			},
		}),
		hull(HullColonyShip, 10, Cost{Ironium: 9, Germanium: 13, Resources: 18}, TechLevel{}, HullSpec{
			Mass: 20, Armor: 20, FuelCapacity: 200, CargoCapacity: 25,
			Slots: []HullSlot{
				{Type: SlotEngine, Capacity: 1, Required: true},
				{Type: SlotMechanical, Capacity: 1},
			},
		}),
		hull(HullSmallFreighter, 10, Cost{Ironium: 12, Germanium: 17, Resources: 20}, TechLevel{}, HullSpec{
			Mass: 25, Armor: 25, FuelCapacity: 130, CargoCapacity: 70,
			Slots: []HullSlot{
				{Type: SlotEngine, Capacity: 1, Required: true},
				{Type: SlotShieldArmor, Capacity: 1},
				{Type: SlotScannerElectricalMechanical, Capacity: 1},
			},
		}),
		hull(HullDestroyer, 20, Cost{Ironium: 15, Boranium: 3, Germanium: 5, Resources: 35}, TechLevel{Construction: 3}, HullSpec{
			Mass: 30, Armor: 200, FuelCapacity: 280, Initiative: 3,
			Slots: []HullSlot{
				{Type: SlotEngine, Capacity: 1, Required: true},
				{Type: SlotWeapon, Capacity: 1},
				{Type: SlotWeapon, Capacity: 1},
				{Type: SlotGeneral, Capacity: 1},
				{Type: SlotArmor, Capacity: 2},
				{Type: SlotMechanical, Capacity: 1},
				{Type: SlotElectrical, Capacity: 1},
			},
		}),
		hull(HullCruiser, 30, Cost{Ironium: 40, Boranium: 5, Germanium: 8, Resources: 85}, TechLevel{Construction: 9}, HullSpec{
			Mass: 90, Armor: 700, FuelCapacity: 600, Initiative: 5,
			Slots: []HullSlot{
				{Type: SlotEngine, Capacity: 2, Required: true},
				{Type: SlotWeapon, Capacity: 2},
				{Type: SlotWeapon, Capacity: 2},
				{Type: SlotGeneral, Capacity: 2},
				{Type: SlotShieldArmor, Capacity: 2},
				{Type: SlotElectrical, Capacity: 2},
			},
		}),
		hull(HullMiniMiner, 10, Cost{Ironium: 25, Germanium: 6, Resources: 50}, TechLevel{Construction: 2}, HullSpec{
			Mass: 80, Armor: 130, FuelCapacity: 210,
			Slots: []HullSlot{
				{Type: SlotEngine, Capacity: 1, Required: true},
				{Type: SlotMining, Capacity: 2},
				{Type: SlotMining, Capacity: 2},
			},
		}),
		hull(HullMiniMineLayer, 10, Cost{Ironium: 8, Boranium: 2, Germanium: 5, Resources: 20}, TechLevel{Construction: 1}, HullSpec{
			Mass: 10, Armor: 60, FuelCapacity: 400,
			Slots: []HullSlot{
				{Type: SlotEngine, Capacity: 1, Required: true},
				{Type: SlotMineLayer, Capacity: 2},
				{Type: SlotMineLayer, Capacity: 2},
				{Type: SlotScannerElectricalMechanical, Capacity: 1},
			},
		}),
		hull(HullOrbitalFort, 10, Cost{Ironium: 24, Germanium: 34, Resources: 80}, TechLevel{}, HullSpec{
			Armor: 100, Initiative: 10, Starbase: true, SpaceDock: 0,
			Slots: []HullSlot{
				{Type: SlotOrbitalElectrical, Capacity: 1},
				{Type: SlotWeapon, Capacity: 12},
				{Type: SlotShieldArmor, Capacity: 12},
				{Type: SlotWeapon, Capacity: 12},
				{Type: SlotShieldArmor, Capacity: 12},
			},
		}),
		hull(HullSpaceStation, 20, Cost{Ironium: 120, Boranium: 80, Germanium: 250, Resources: 600}, TechLevel{Construction: 6}, HullSpec{
			Armor: 500, Initiative: 14, Starbase: true, SpaceDock: -1,
			Slots: []HullSlot{
				{Type: SlotOrbitalElectrical, Capacity: 1},
				{Type: SlotWeapon, Capacity: 16},
				{Type: SlotShield, Capacity: 16},
				{Type: SlotWeaponShield, Capacity: 16},
				{Type: SlotArmor, Capacity: 16},
				{Type: SlotOrbitalElectrical, Capacity: 1},
				{Type: SlotElectrical, Capacity: 3},
			},
		}),

		// Engines
		component(EngineQuickJump5, 10, Cost{Ironium: 3, Germanium: 1, Resources: 3}, TechLevel{}, ComponentSpec{
			Slot: SlotEngine, Mass: 4, IdealSpeed: 5,
			FuelUsage: []int{0, 0, 25, 100, 100, 100, 180, 500, 800, 900, 1080},
		}),
		component(EngineFuelMizer, 20, Cost{Ironium: 8, Resources: 11}, TechLevel{Propulsion: 2}, ComponentSpec{
			Slot: SlotEngine, Mass: 6, IdealSpeed: 6,
			FuelUsage: []int{0, 0, 0, 0, 0, 0, 35, 120, 175, 235, 360},
		}),
		component(EngineLongHump6, 30, Cost{Ironium: 5, Germanium: 1, Resources: 6}, TechLevel{Propulsion: 3}, ComponentSpec{
			Slot: SlotEngine, Mass: 9, IdealSpeed: 6,
			FuelUsage: []int{0, 0, 20, 60, 100, 100, 105, 450, 750, 900, 1080},
		}),
		component(EngineAlphaDrive8, 40, Cost{Ironium: 16, Germanium: 3, Resources: 28}, TechLevel{Propulsion: 7}, ComponentSpec{
			Slot: SlotEngine, Mass: 17, IdealSpeed: 8,
			FuelUsage: []int{0, 0, 15, 50, 60, 70, 100, 100, 115, 700, 840},
		}),

		// Scanners
		component(ScannerBat, 10, Cost{Ironium: 1, Germanium: 1, Resources: 1}, TechLevel{}, ComponentSpec{
			Slot: SlotScanner, Mass: 2, ScanRange: 0,
		}),
		component(ScannerRhino, 20, Cost{Ironium: 3, Germanium: 2, Resources: 3}, TechLevel{Electronics: 1}, ComponentSpec{
			Slot: SlotScanner, Mass: 5, ScanRange: 50,
		}),
		component(ScannerMole, 30, Cost{Ironium: 2, Germanium: 2, Resources: 9}, TechLevel{Electronics: 4}, ComponentSpec{
			Slot: SlotScanner, Mass: 2, ScanRange: 100,
		}),
		component("Ferret Scanner", 40, Cost{Ironium: 2, Germanium: 8, Resources: 36}, TechLevel{Energy: 3, Electronics: 7, Biotechnology: 2}, ComponentSpec{
			Slot: SlotScanner, Mass: 2, ScanRange: 185, PenScanRange: 50,
		}),

		// Armor and shields
		component(ArmorTritanium, 10, Cost{Ironium: 10, Resources: 10}, TechLevel{}, ComponentSpec{
			Slot: SlotArmor, Mass: 60, Armor: 50,
		}),
		component("Crobmnium", 20, Cost{Ironium: 12, Resources: 13}, TechLevel{Construction: 3}, ComponentSpec{
			Slot: SlotArmor, Mass: 56, Armor: 75,
		}),
		component("Carbonic Armor", 30, Cost{Boranium: 5, Resources: 15}, TechLevel{Biotechnology: 4}, ComponentSpec{
			Slot: SlotArmor, Mass: 25, Armor: 100,
		}),
		component(ShieldMoleSkin, 10, Cost{Ironium: 1, Germanium: 1, Resources: 4}, TechLevel{}, ComponentSpec{
			Slot: SlotShield, Mass: 1, Shield: 25,
		}),
		component("Cow-hide Shield", 20, Cost{Ironium: 2, Germanium: 2, Resources: 5}, TechLevel{Energy: 3}, ComponentSpec{
			Slot: SlotShield, Mass: 1, Shield: 40,
		}),
		component("Wolverine Diffuse Shield", 30, Cost{Ironium: 3, Germanium: 3, Resources: 6}, TechLevel{Energy: 6}, ComponentSpec{
			Slot: SlotShield, Mass: 1, Shield: 60,
		}),

		// Weapons
		component(BeamLaser, 10, Cost{Boranium: 6, Resources: 5}, TechLevel{}, ComponentSpec{
			Slot: SlotWeapon, Mass: 1, Weapon: WeaponBeam, Power: 10, Range: 1, Initiative: 9,
		}),
		component(BeamXRayLaser, 20, Cost{Boranium: 6, Resources: 6}, TechLevel{Weapons: 3}, ComponentSpec{
			Slot: SlotWeapon, Mass: 1, Weapon: WeaponBeam, Power: 16, Range: 1, Initiative: 9,
		}),
		component("Yakimora Light Phaser", 30, Cost{Boranium: 8, Resources: 7}, TechLevel{Weapons: 6}, ComponentSpec{
			Slot: SlotWeapon, Mass: 1, Weapon: WeaponBeam, Power: 26, Range: 1, Initiative: 9,
		}),
		component("Pulsed Sapper", 35, Cost{Germanium: 4, Resources: 12}, TechLevel{Energy: 5, Weapons: 9}, ComponentSpec{
			Slot: SlotWeapon, Mass: 1, Weapon: WeaponBeam, Power: 82, Range: 3, Initiative: 14,
		}),
		component(TorpedoAlpha, 10, Cost{Ironium: 8, Boranium: 3, Germanium: 3, Resources: 4}, TechLevel{}, ComponentSpec{
			Slot: SlotWeapon, Mass: 25, Weapon: WeaponTorpedo, Power: 5, Range: 4, Accuracy: 35,
		}),
		component("Beta Torpedo", 20, Cost{Ironium: 18, Boranium: 6, Germanium: 4, Resources: 6}, TechLevel{Weapons: 5, Propulsion: 1}, ComponentSpec{
			Slot: SlotWeapon, Mass: 25, Weapon: WeaponTorpedo, Power: 12, Range: 4, Initiative: 1, Accuracy: 45,
		}),
		component("Delta Torpedo", 30, Cost{Ironium: 22, Boranium: 8, Germanium: 5, Resources: 8}, TechLevel{Weapons: 10, Propulsion: 2}, ComponentSpec{
			Slot: SlotWeapon, Mass: 25, Weapon: WeaponTorpedo, Power: 26, Range: 4, Initiative: 1, Accuracy: 60,
		}),

		// Bombs
		component(BombLadyFinger, 10, Cost{Ironium: 1, Boranium: 20, Resources: 5}, TechLevel{Weapons: 2}, ComponentSpec{
			Slot: SlotBomb, Mass: 40, KillRate: 0.6, MinKill: 300, StructureKill: 2,
		}),
		component("Black Cat Bomb", 20, Cost{Ironium: 1, Boranium: 22, Resources: 7}, TechLevel{Weapons: 5}, ComponentSpec{
			Slot: SlotBomb, Mass: 45, KillRate: 0.9, MinKill: 300, StructureKill: 4,
		}),
		component("Smoky Smart Bomb", 30, Cost{Ironium: 1, Boranium: 22, Germanium: 3, Resources: 27}, TechLevel{Weapons: 4, Biotechnology: 3}, ComponentSpec{
			Slot: SlotBomb, Mass: 50, KillRate: 1.3, Smart: true,
		}),

		// Mechanical
		component(ColonizationMod, 10, Cost{Ironium: 12, Boranium: 10, Germanium: 10, Resources: 10}, TechLevel{}, ComponentSpec{
			Slot: SlotMechanical, Mass: 32, ColonizationModule: true,
		}),
		component(FuelTank, 10, Cost{Ironium: 6, Resources: 4}, TechLevel{}, ComponentSpec{
			Slot: SlotMechanical, Mass: 3, FuelBonus: 250,
		}),
		component(CargoPod, 10, Cost{Ironium: 5, Germanium: 2, Resources: 10}, TechLevel{Construction: 3}, ComponentSpec{
			Slot: SlotMechanical, Mass: 5, CargoBonus: 50,
		}),

		// Mining, mine laying, electrical, orbital
		component(RoboMidgetMiner, 10, Cost{Ironium: 14, Germanium: 4, Resources: 50}, TechLevel{}, ComponentSpec{
			Slot: SlotMining, Mass: 80, MiningRate: 5,
		}),
		component("Robo-Miner", 20, Cost{Ironium: 30, Germanium: 7, Resources: 100}, TechLevel{Construction: 4, Electronics: 2}, ComponentSpec{
			Slot: SlotMining, Mass: 240, MiningRate: 12,
		}),
		component(MineDispenser40, 10, Cost{Boranium: 2, Germanium: 9, Resources: 40}, TechLevel{}, ComponentSpec{
			Slot: SlotMineLayer, Mass: 25, MineLayingRate: 40, MineFieldType: MineFieldStandard,
		}),
		component("Heavy Dispenser 50", 20, Cost{Boranium: 2, Germanium: 20, Resources: 50}, TechLevel{Energy: 5, Biotechnology: 3}, ComponentSpec{
			Slot: SlotMineLayer, Mass: 10, MineLayingRate: 50, MineFieldType: MineFieldHeavy,
		}),
		component("Speed Trap 20", 20, Cost{Boranium: 30, Germanium: 12, Resources: 60}, TechLevel{Propulsion: 2, Biotechnology: 2}, ComponentSpec{
			Slot: SlotMineLayer, Mass: 100, MineLayingRate: 20, MineFieldType: MineFieldSpeedBump,
		}),
		component("Stealth Cloak", 10, Cost{Ironium: 2, Germanium: 2, Resources: 5}, TechLevel{Energy: 2, Electronics: 5}, ComponentSpec{
			Slot: SlotElectrical, Mass: 2, Cloak: 35,
		}),
		component("Battle Computer", 10, Cost{Germanium: 13, Resources: 6}, TechLevel{}, ComponentSpec{
			Slot: SlotElectrical, Mass: 1, Initiative: 1,
		}),
		component(MassDriver5, 10, Cost{Ironium: 24, Germanium: 20, Resources: 140}, TechLevel{Energy: 4}, ComponentSpec{
			Slot: SlotOrbital, PacketSpeed: 5,
		}),
		component("Mass Driver 7", 20, Cost{Ironium: 100, Germanium: 100, Resources: 200}, TechLevel{Energy: 9}, ComponentSpec{
			Slot: SlotOrbital, PacketSpeed: 7,
		}),
		component(StargateSmall, 10, Cost{Ironium: 50, Boranium: 20, Germanium: 20, Resources: 200}, TechLevel{Propulsion: 5, Construction: 5}, ComponentSpec{
			Slot: SlotOrbital, GateSafeMass: 100, GateSafeRange: 250,
		}),
		component(OrbitalAdjuster, 10, Cost{Ironium: 25, Boranium: 25, Germanium: 25, Resources: 50}, TechLevel{Biotechnology: 6}, ComponentSpec{
			Slot: SlotMechanical, Mass: 80, Cloak: 25, TerraformRate: 1,
		}),

		// Planetary defenses
		defense(DefenseSDI, 10, Cost{Ironium: 5, Boranium: 5, Germanium: 5, Resources: 15}, TechLevel{}, 0.0099),
		defense("Missile Battery", 20, Cost{Ironium: 5, Boranium: 5, Germanium: 5, Resources: 15}, TechLevel{Energy: 5}, 0.0199),
		defense("Laser Battery", 30, Cost{Ironium: 5, Boranium: 5, Germanium: 5, Resources: 15}, TechLevel{Energy: 10}, 0.0239),
		defense("Planetary Shield", 40, Cost{Ironium: 5, Boranium: 5, Germanium: 5, Resources: 15}, TechLevel{Energy: 16}, 0.0299),

		// Planetary scanners
		planetaryScanner(PlanetaryViewer50, 10, Cost{Resources: 100, Germanium: 10}, TechLevel{}, 50, 0),
		planetaryScanner("Viewer 90", 20, Cost{Resources: 100, Germanium: 10}, TechLevel{Electronics: 1}, 90, 0),
		planetaryScanner("Scoper 150", 30, Cost{Resources: 100, Germanium: 10}, TechLevel{Electronics: 3}, 150, 0),
		planetaryScanner("Scoper 220", 40, Cost{Resources: 100, Germanium: 10}, TechLevel{Electronics: 6}, 220, 0),
		planetaryScanner("Snooper 320X", 50, Cost{Resources: 100, Germanium: 10}, TechLevel{Energy: 10, Electronics: 10, Biotechnology: 3}, 320, 160),

		// Terraforming
		terraform("Gravity Terraform ±3", 10, Cost{Resources: 100}, TechLevel{Propulsion: 1, Biotechnology: 1}, 3, HabGravity),
		terraform("Temp Terraform ±3", 10, Cost{Resources: 100}, TechLevel{Energy: 1, Biotechnology: 1}, 3, HabTemperature),
		terraform("Radiation Terraform ±3", 10, Cost{Resources: 100}, TechLevel{Weapons: 1, Biotechnology: 1}, 3, HabRadiation),
		terraform("Total Terraform ±5", 20, Cost{Resources: 70}, TechLevel{Biotechnology: 3}, 5, HabAll),
		terraform("Total Terraform ±10", 30, Cost{Resources: 70}, TechLevel{Biotechnology: 6}, 10, HabAll),
		terraform("Total Terraform ±15", 40, Cost{Resources: 70}, TechLevel{Biotechnology: 10}, 15, HabAll),
	}
}
