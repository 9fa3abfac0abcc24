package game

import "github.com/andrescamacho/stars-go/internal/domain/rules"

// Names of the designs every player starts with.
const (
	DesignScout          = "Scout"
	DesignColonyShip     = "Colony Ship"
	DesignArmedProbe     = "Armed Probe"
	DesignSmallFreighter = "Small Freighter"
	DesignStarbase       = "Starbase"
)

// StarterDesigns returns fresh copies of the starting designs for a player.
// The starbase design can never be deleted.
func StarterDesigns(playerNum int) []*ShipDesign {
	return []*ShipDesign{
		{
			Num: 1, PlayerNum: playerNum, Name: DesignScout, Hull: rules.HullScout,
			Slots: []ShipDesignSlot{
				{HullSlot: 0, Component: rules.EngineQuickJump5, Quantity: 1},
				{HullSlot: 1, Component: rules.FuelTank, Quantity: 1},
				{HullSlot: 2, Component: rules.ScannerRhino, Quantity: 1},
			},
		},
		{
			Num: 2, PlayerNum: playerNum, Name: DesignColonyShip, Hull: rules.HullColonyShip,
			Slots: []ShipDesignSlot{
				{HullSlot: 0, Component: rules.EngineQuickJump5, Quantity: 1},
				{HullSlot: 1, Component: rules.ColonizationMod, Quantity: 1},
			},
		},
		{
			Num: 3, PlayerNum: playerNum, Name: DesignArmedProbe, Hull: rules.HullDestroyer,
			Slots: []ShipDesignSlot{
				{HullSlot: 0, Component: rules.EngineQuickJump5, Quantity: 1},
				{HullSlot: 1, Component: rules.BeamLaser, Quantity: 1},
				{HullSlot: 2, Component: rules.BeamLaser, Quantity: 1},
				{HullSlot: 3, Component: rules.ScannerRhino, Quantity: 1},
				{HullSlot: 4, Component: rules.ArmorTritanium, Quantity: 2},
			},
		},
		{
			Num: 4, PlayerNum: playerNum, Name: DesignSmallFreighter, Hull: rules.HullSmallFreighter,
			Slots: []ShipDesignSlot{
				{HullSlot: 0, Component: rules.EngineQuickJump5, Quantity: 1},
				{HullSlot: 1, Component: rules.ArmorTritanium, Quantity: 1},
			},
		},
		{
			Num: 5, PlayerNum: playerNum, Name: DesignStarbase, Hull: rules.HullSpaceStation, CannotDelete: true,
			Slots: []ShipDesignSlot{
				{HullSlot: 1, Component: rules.BeamLaser, Quantity: 8},
				{HullSlot: 2, Component: rules.ShieldMoleSkin, Quantity: 8},
				{HullSlot: 3, Component: rules.BeamLaser, Quantity: 8},
				{HullSlot: 4, Component: rules.ArmorTritanium, Quantity: 4},
			},
		},
	}
}
