package intel

import (
	"encoding/binary"
	"strconv"

	"lukechampine.com/blake3"

	"github.com/andrescamacho/stars-go/internal/domain/game"
)

// EstimatePopulation is what a foreign player reads on a planet's census.
// The error is derived from the game, year, viewer and planet, so the same
// report is produced however often intel is regenerated.
func EstimatePopulation(w *game.World, viewer int, p *game.Planet) int {
	h := blake3.New(32, nil)
	h.Write([]byte(w.GameID))
	h.Write([]byte(strconv.Itoa(w.Year)))
	h.Write([]byte(strconv.Itoa(viewer)))
	h.Write(p.ID[:])
	sum := h.Sum(nil)

	u := float64(binary.BigEndian.Uint64(sum[:8])>>11) / (1 << 53)
	errorFactor := (2*u - 1) * w.Rules.PopulationReportError
	estimate := roundToHundred(float64(p.Population) * (1 + errorFactor))
	return max(100, estimate)
}
