package universe

import (
	"fmt"
	"strings"

	"github.com/andrescamacho/stars-go/internal/domain/game"
	"github.com/andrescamacho/stars-go/internal/domain/rules"
)

// Size is the width of the square universe.
type Size int

const (
	SizeTiny Size = iota
	SizeSmall
	SizeMedium
	SizeLarge
	SizeHuge
)

var sizeNames = []string{"tiny", "small", "medium", "large", "huge"}

// Width in light-years.
func (s Size) Width() float64 {
	return float64(400 * (int(s) + 1))
}

func (s Size) String() string {
	if int(s) >= 0 && int(s) < len(sizeNames) {
		return sizeNames[s]
	}
	return fmt.Sprintf("Size(%d)", int(s))
}

// ParseSize accepts the lower-case names.
func ParseSize(s string) (Size, error) {
	for i, name := range sizeNames {
		if strings.EqualFold(name, s) {
			return Size(i), nil
		}
	}
	return 0, fmt.Errorf("unknown universe size %q", s)
}

// Density scales how many planets a universe of a given size holds.
type Density int

const (
	DensitySparse Density = iota
	DensityNormal
	DensityDense
	DensityPacked
)

var densityNames = []string{"sparse", "normal", "dense", "packed"}

// planetsPerArea is planets per square light-year at normal density.
const planetsPerArea = 1.0 / 5000

func (d Density) factor() float64 {
	switch d {
	case DensitySparse:
		return 0.75
	case DensityDense:
		return 1.25
	case DensityPacked:
		return 1.5
	}
	return 1
}

func (d Density) String() string {
	if int(d) >= 0 && int(d) < len(densityNames) {
		return densityNames[d]
	}
	return fmt.Sprintf("Density(%d)", int(d))
}

func ParseDensity(s string) (Density, error) {
	for i, name := range densityNames {
		if strings.EqualFold(name, s) {
			return Density(i), nil
		}
	}
	return 0, fmt.Errorf("unknown universe density %q", s)
}

// PlayerSetup is one seat at game creation.
type PlayerSetup struct {
	Name         string `validate:"required,max=32"`
	Race         game.Race
	AIControlled bool
	AIProcessor  string
}

// Settings describe a universe to generate. Rules and Techs default to the
// standard sets when nil.
type Settings struct {
	GameID         string        `validate:"required"`
	Name           string        `validate:"required,max=64"`
	Size           Size          `validate:"min=0,max=4"`
	Density        Density       `validate:"min=0,max=3"`
	Players        []PlayerSetup `validate:"min=1,max=16,dive"`
	WormholePairs  int           `validate:"min=-1"` // -1 picks a count from the size
	MysteryTraders int           `validate:"min=0"`
	Rules          *rules.Rules
	Techs          *rules.TechCatalog
}

// PlanetCount is how many planets the settings ask for.
func (s Settings) PlanetCount() int {
	width := s.Size.Width()
	return int(width * width * planetsPerArea * s.Density.factor())
}
