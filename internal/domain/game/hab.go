package game

import (
	"math"

	"github.com/andrescamacho/stars-go/internal/domain/rules"
	"github.com/andrescamacho/stars-go/pkg/utils"
)

// Hab is a gravity/temperature/radiation triple on the 0..100 click scale.
type Hab struct {
	Grav int `json:"grav"`
	Temp int `json:"temp"`
	Rad  int `json:"rad"`
}

func (h Hab) Get(t rules.HabType) int {
	switch t {
	case rules.HabGravity:
		return h.Grav
	case rules.HabTemperature:
		return h.Temp
	case rules.HabRadiation:
		return h.Rad
	}
	return 0
}

func (h *Hab) Set(t rules.HabType, v int) {
	v = utils.Clamp(v, 0, 100)
	switch t {
	case rules.HabGravity:
		h.Grav = v
	case rules.HabTemperature:
		h.Temp = v
	case rules.HabRadiation:
		h.Rad = v
	}
}

func (h Hab) Add(o Hab) Hab {
	return Hab{Grav: h.Grav + o.Grav, Temp: h.Temp + o.Temp, Rad: h.Rad + o.Rad}
}

// Habitability scores a hab triple for a race. Positive values are the
// percent of ideal. Any axis outside the race's range makes the result
// negative, one point per click out of range, capped at 15 per axis.
func (r *Race) Habitability(h Hab) int {
	planetValuePoints := 0
	redValue := 0
	idealityCorrection := 100
	center := r.HabCenter()

	for _, habType := range rules.HabTypes {
		if r.Immune(habType) {
			planetValuePoints += 10000
			continue
		}

		value := h.Get(habType)
		lower := r.HabLow.Get(habType)
		upper := r.HabHigh.Get(habType)
		habCenter := center.Get(habType)

		if value < lower || value > upper {
			red := lower - value
			if value > upper {
				red = value - upper
			}
			redValue += utils.Min(red, 15)
			continue
		}

		var radius, offset int
		if habCenter > value {
			radius = habCenter - lower
			offset = habCenter - value
		} else {
			radius = upper - habCenter
			offset = value - habCenter
		}
		if radius == 0 {
			planetValuePoints += 10000
			continue
		}

		fromIdeal := 100 - offset*100/radius
		planetValuePoints += fromIdeal * fromIdeal

		if poorPlanetMod := offset*2 - radius; poorPlanetMod > 0 {
			idealityCorrection *= radius*2 - poorPlanetMod
			idealityCorrection /= radius * 2
		}
	}

	if redValue != 0 {
		return -redValue
	}

	value := int(math.Sqrt(float64(planetValuePoints)/3) + 0.9)
	return value * idealityCorrection / 100
}

// MaxPopulationForHab is the population cap of a planet with the given
// habitability for a race. Hostile planets still hold a small fraction.
func MaxPopulationForHab(race *Race, rs *rules.Rules, hab int) int {
	percent := utils.Max(hab, rs.MinMaxPopulationPercent)
	return utils.RoundToNearest100(race.MaxPopulationFactor() * float64(rs.MaxPopulation) * float64(percent) / 100)
}
