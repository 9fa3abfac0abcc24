package rules

import (
	"fmt"
	"strings"

	"github.com/andrescamacho/stars-go/internal/domain/shared"
)

// TechKind is the closed set of tech variants.
type TechKind int

const (
	TechKindHull TechKind = iota
	TechKindHullComponent
	TechKindDefense
	TechKindTerraform
	TechKindPlanetaryScanner
)

var techKindNames = map[TechKind]string{
	TechKindHull:             "Hull",
	TechKindHullComponent:    "HullComponent",
	TechKindDefense:          "Defense",
	TechKindTerraform:        "Terraform",
	TechKindPlanetaryScanner: "PlanetaryScanner",
}

func (k TechKind) String() string {
	if name, ok := techKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("TechKind(%d)", int(k))
}

func (k TechKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *TechKind) UnmarshalText(text []byte) error {
	for kind, name := range techKindNames {
		if strings.EqualFold(name, string(text)) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown tech kind %q", string(text))
}

// Tech is a researchable item. Exactly one of the kind-specific payloads is set
// and it matches Kind.
type Tech struct {
	Name         string    `yaml:"name"`
	Kind         TechKind  `yaml:"kind"`
	Cost         Cost      `yaml:"cost"`
	Requirements TechLevel `yaml:"requirements"`
	// Ranking orders techs of the same purpose, higher is better.
	Ranking int `yaml:"ranking"`

	Hull      *HullSpec             `yaml:"hull,omitempty"`
	Component *ComponentSpec        `yaml:"component,omitempty"`
	Defense   *DefenseSpec          `yaml:"defense,omitempty"`
	Terraform *TerraformSpec        `yaml:"terraform,omitempty"`
	Scanner   *PlanetaryScannerSpec `yaml:"scanner,omitempty"`
}

// Validate enforces the tagged-variant shape.
func (t *Tech) Validate() error {
	if t.Name == "" {
		return shared.NewValidationError("name", "tech name is required")
	}
	payloads := []struct {
		kind TechKind
		set  bool
	}{
		{TechKindHull, t.Hull != nil},
		{TechKindHullComponent, t.Component != nil},
		{TechKindDefense, t.Defense != nil},
		{TechKindTerraform, t.Terraform != nil},
		{TechKindPlanetaryScanner, t.Scanner != nil},
	}
	for _, p := range payloads {
		if p.kind == t.Kind && !p.set {
			return shared.NewValidationError(t.Name, fmt.Sprintf("%s tech is missing its %s payload", t.Kind, t.Kind))
		}
	}
	for _, p := range payloads {
		if p.kind != t.Kind && p.set {
			return shared.NewValidationError(t.Name, fmt.Sprintf("%s tech carries a %s payload", t.Kind, p.kind))
		}
	}
	if t.Kind == TechKindHull && len(t.Hull.Slots) == 0 {
		return shared.NewValidationError(t.Name, "hull has no slots")
	}
	if t.Kind == TechKindHullComponent && t.Component.Slot == 0 {
		return shared.NewValidationError(t.Name, "component has no slot type")
	}
	return nil
}

// HullSlotType is a bitmask of what a hull slot accepts. A component carries
// exactly one bit.
type HullSlotType int

const (
	SlotEngine HullSlotType = 1 << iota
	SlotScanner
	SlotMechanical
	SlotBomb
	SlotMining
	SlotElectrical
	SlotShield
	SlotArmor
	SlotWeapon
	SlotMineLayer
	SlotOrbital
)

const (
	SlotShieldArmor                 = SlotShield | SlotArmor
	SlotScannerElectricalMechanical = SlotScanner | SlotElectrical | SlotMechanical
	SlotOrbitalElectrical           = SlotOrbital | SlotElectrical
	SlotWeaponShield                = SlotWeapon | SlotShield
	SlotGeneral                     = SlotScanner | SlotMechanical | SlotElectrical | SlotShield |
		SlotArmor | SlotWeapon | SlotBomb | SlotMining | SlotMineLayer
)

var slotNames = []struct {
	slot HullSlotType
	name string
}{
	{SlotEngine, "Engine"},
	{SlotScanner, "Scanner"},
	{SlotMechanical, "Mechanical"},
	{SlotBomb, "Bomb"},
	{SlotMining, "Mining"},
	{SlotElectrical, "Electrical"},
	{SlotShield, "Shield"},
	{SlotArmor, "Armor"},
	{SlotWeapon, "Weapon"},
	{SlotMineLayer, "MineLayer"},
	{SlotOrbital, "Orbital"},
}

// Accepts reports whether a component of type c fits this slot.
func (s HullSlotType) Accepts(c HullSlotType) bool {
	return s&c != 0
}

func (s HullSlotType) String() string {
	if s == SlotGeneral {
		return "General"
	}
	var parts []string
	for _, n := range slotNames {
		if s&n.slot != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

func (s HullSlotType) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses "General" or names joined by '|'.
func (s *HullSlotType) UnmarshalText(text []byte) error {
	if strings.EqualFold(string(text), "General") {
		*s = SlotGeneral
		return nil
	}
	var result HullSlotType
	for _, part := range strings.Split(string(text), "|") {
		found := false
		for _, n := range slotNames {
			if strings.EqualFold(strings.TrimSpace(part), n.name) {
				result |= n.slot
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("unknown hull slot type %q", part)
		}
	}
	*s = result
	return nil
}

// HullSlot is one slot on a hull.
type HullSlot struct {
	Type     HullSlotType `yaml:"type"`
	Capacity int          `yaml:"capacity"`
	Required bool         `yaml:"required,omitempty"`
}

type HullSpec struct {
	Mass          int        `yaml:"mass"`
	Armor         int        `yaml:"armor"`
	FuelCapacity  int        `yaml:"fuel_capacity,omitempty"`
	CargoCapacity int        `yaml:"cargo_capacity,omitempty"`
	Initiative    int        `yaml:"initiative,omitempty"`
	Starbase      bool       `yaml:"starbase,omitempty"`
	SpaceDock     int        `yaml:"space_dock,omitempty"` // max hull mass buildable, -1 unlimited
	Slots         []HullSlot `yaml:"slots"`
}

// WeaponType separates beams from torpedoes.
type WeaponType int

const (
	WeaponNone WeaponType = iota
	WeaponBeam
	WeaponTorpedo
)

// MineFieldType is the kind of mines a dispenser lays.
type MineFieldType int

const (
	MineFieldStandard MineFieldType = iota
	MineFieldHeavy
	MineFieldSpeedBump
)

func (t MineFieldType) String() string {
	switch t {
	case MineFieldHeavy:
		return "Heavy"
	case MineFieldSpeedBump:
		return "SpeedBump"
	}
	return "Standard"
}

// ComponentSpec covers every hull component. Fields that do not apply to a
// component stay zero.
type ComponentSpec struct {
	Slot       HullSlotType `yaml:"slot"`
	Mass       int          `yaml:"mass"`
	Armor      int          `yaml:"armor,omitempty"`
	Shield     int          `yaml:"shield,omitempty"`
	Cloak      int          `yaml:"cloak,omitempty"` // percent
	Initiative int          `yaml:"initiative,omitempty"`

	IdealSpeed int   `yaml:"ideal_speed,omitempty"`
	FuelUsage  []int `yaml:"fuel_usage,omitempty"` // indexed by warp 0..10

	FuelBonus          int  `yaml:"fuel_bonus,omitempty"`
	CargoBonus         int  `yaml:"cargo_bonus,omitempty"`
	ColonizationModule bool `yaml:"colonization_module,omitempty"`

	ScanRange    int `yaml:"scan_range,omitempty"`
	PenScanRange int `yaml:"pen_scan_range,omitempty"`

	Weapon   WeaponType `yaml:"weapon,omitempty"`
	Power    int        `yaml:"power,omitempty"`
	Range    int        `yaml:"range,omitempty"`
	Accuracy int        `yaml:"accuracy,omitempty"` // torpedo hit percent

	KillRate      float64 `yaml:"kill_rate,omitempty"` // percent of population per bomb
	MinKill       int     `yaml:"min_kill,omitempty"`
	StructureKill int     `yaml:"structure_kill,omitempty"`
	Smart         bool    `yaml:"smart,omitempty"`

	MineLayingRate int           `yaml:"mine_laying_rate,omitempty"`
	MineFieldType  MineFieldType `yaml:"mine_field_type,omitempty"`
	MiningRate     int           `yaml:"mining_rate,omitempty"`
	TerraformRate  int           `yaml:"terraform_rate,omitempty"`

	PacketSpeed   int `yaml:"packet_speed,omitempty"`
	GateSafeMass  int `yaml:"gate_safe_mass,omitempty"`
	GateSafeRange int `yaml:"gate_safe_range,omitempty"`
}

type DefenseSpec struct {
	Coverage float64 `yaml:"coverage"` // fraction blocked per defense
}

// HabType names a habitability axis. HabAll applies to every axis.
type HabType int

const (
	HabGravity HabType = iota
	HabTemperature
	HabRadiation
	HabAll
)

var HabTypes = []HabType{HabGravity, HabTemperature, HabRadiation}

func (h HabType) String() string {
	switch h {
	case HabGravity:
		return "Gravity"
	case HabTemperature:
		return "Temperature"
	case HabRadiation:
		return "Radiation"
	}
	return "All"
}

func (h HabType) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

func (h *HabType) UnmarshalText(text []byte) error {
	for _, candidate := range []HabType{HabGravity, HabTemperature, HabRadiation, HabAll} {
		if strings.EqualFold(candidate.String(), string(text)) {
			*h = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown hab type %q", string(text))
}

type TerraformSpec struct {
	Ability int     `yaml:"ability"`
	HabType HabType `yaml:"hab_type"`
}

type PlanetaryScannerSpec struct {
	ScanRange    int `yaml:"scan_range"`
	PenScanRange int `yaml:"pen_scan_range,omitempty"`
}
