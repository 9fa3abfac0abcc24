// Package intel rebuilds each player's fog-of-war view of the world.
package intel

import (
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/andrescamacho/stars-go/internal/domain/game"
	"github.com/andrescamacho/stars-go/internal/domain/shared"
)

// scanner is one source of sight for a player.
type scanner struct {
	position shared.Vector
	scan     float64
	pen      float64
}

// Discoverer regenerates player intel from the authoritative world. It reads
// the world and writes only Player.Intel, so running it twice in one year
// yields the same reports.
type Discoverer struct{}

func NewDiscoverer() *Discoverer {
	return &Discoverer{}
}

// Discover rebuilds intel for every player.
func (d *Discoverer) Discover(w *game.World) {
	for _, player := range w.Players {
		d.DiscoverFor(w, player)
	}
}

// UpdateScores refreshes the public score table in every player's intel.
func (d *Discoverer) UpdateScores(w *game.World) {
	table := scores(w)
	for _, player := range w.Players {
		player.Intel.Scores = append([]game.PlayerScoreIntel(nil), table...)
	}
}

// DiscoverFor rebuilds one player's intel.
func (d *Discoverer) DiscoverFor(w *game.World, player *game.Player) {
	scanners := scannersFor(w, player)
	previous := player.Intel
	player.Intel = game.PlayerIntel{
		Planets:        discoverPlanets(w, player, scanners, &previous),
		Designs:        append([]game.DesignIntel(nil), previous.Designs...),
		MineFields:     discoverMineFields(w, player, scanners),
		MineralPackets: discoverPackets(w, player, scanners),
		Wormholes:      discoverWormholes(w, scanners, &previous),
		Salvages:       discoverSalvage(w, scanners),
		MysteryTraders: discoverTraders(w, scanners),
		Scores:         scores(w),
	}
	discoverFleets(w, player, scanners, &player.Intel)
}

func scannersFor(w *game.World, player *game.Player) []scanner {
	var out []scanner
	pen := player.Race.PenScanAllowed()
	if best := w.Techs.BestPlanetaryScanner(player.TechLevels); best != nil {
		for _, p := range w.PlanetsOwnedBy(player.Num) {
			if !p.Scanner {
				continue
			}
			s := scanner{position: p.Position, scan: float64(best.Scanner.ScanRange)}
			if pen {
				s.pen = float64(best.Scanner.PenScanRange)
			}
			out = append(out, s)
		}
	}
	for _, f := range w.FleetsOwnedBy(player.Num) {
		spec := f.Spec()
		if spec.ScanRange < 0 {
			// every fleet sees what shares its position
			out = append(out, scanner{position: f.Position})
			continue
		}
		s := scanner{position: f.Position, scan: float64(spec.ScanRange)}
		if pen && spec.PenScanRange > 0 {
			s.pen = float64(spec.PenScanRange)
		}
		out = append(out, s)
	}
	return out
}

// inRange reports whether any scanner reaches pos, with radius added for
// objects that have extent.
func inRange(scanners []scanner, pos shared.Vector, radius float64) bool {
	for _, s := range scanners {
		if s.position.InRange(pos, s.scan+radius) {
			return true
		}
	}
	return false
}

func inPenRange(scanners []scanner, pos shared.Vector) bool {
	for _, s := range scanners {
		if s.pen > 0 && s.position.InRange(pos, s.pen) {
			return true
		}
	}
	return false
}

func discoverPlanets(w *game.World, player *game.Player, scanners []scanner, previous *game.PlayerIntel) []game.PlanetIntel {
	orbited := make(map[uuid.UUID]bool)
	for _, f := range w.FleetsOwnedBy(player.Num) {
		if f.Orbiting != nil {
			orbited[f.Orbiting.ID] = true
		}
	}

	out := make([]game.PlanetIntel, 0, len(w.Planets))
	for _, p := range w.Planets {
		switch {
		case p.OwnedBy(player.Num):
			out = append(out, planetReport(w, player, p, true))
		case orbited[p.ID] || inRange(scanners, p.Position, 0):
			out = append(out, planetReport(w, player, p, false))
		default:
			report := game.PlanetIntel{
				ID:           p.ID,
				Num:          p.Num,
				Name:         p.Name,
				Position:     p.Position,
				ReportedYear: game.NeverReported,
			}
			if old := previous.PlanetIntelByID(p.ID); old != nil && old.Explored() {
				report = *old
				report.Owned = false
				report.ReportAge = w.Year - old.ReportedYear
			}
			out = append(out, report)
		}
	}
	return out
}

func planetReport(w *game.World, player *game.Player, p *game.Planet, owned bool) game.PlanetIntel {
	report := game.PlanetIntel{
		ID:                   p.ID,
		Num:                  p.Num,
		Name:                 p.Name,
		Position:             p.Position,
		ReportedYear:         w.Year,
		PlayerNum:            p.PlayerNum,
		Hab:                  p.Hab,
		HabValue:             player.Race.Habitability(p.Hab),
		MineralConcentration: p.MineralConcentration,
		Homeworld:            p.Homeworld,
		Owned:                owned,
	}
	if p.Starbase != nil && !p.Starbase.Delete {
		if d := p.Starbase.StarbaseDesign(); d != nil {
			report.StarbaseDesign = d.Name
		}
	}
	if owned {
		report.Population = p.Population
		report.Surface = p.Cargo
	} else if p.Owned() {
		report.Population = EstimatePopulation(w, player.Num, p)
	}
	return report
}

func discoverFleets(w *game.World, player *game.Player, scanners []scanner, intel *game.PlayerIntel) {
	for _, f := range w.Fleets {
		if f.Delete {
			continue
		}
		own := f.PlayerNum == player.Num
		spec := f.Spec()
		revealed := own
		if !own {
			cloakFactor := 1 - float64(spec.Cloak)/100
			seen := false
			for _, s := range scanners {
				if s.position.InRange(f.Position, s.scan*cloakFactor) {
					seen = true
					break
				}
			}
			pen := inPenRange(scanners, f.Position)
			if !seen && !pen {
				continue
			}
			revealed = spec.Cloak == 0 || pen
		}
		report := game.FleetIntel{
			ID:              f.ID,
			Num:             f.Num,
			Name:            f.Name,
			PlayerNum:       f.PlayerNum,
			Position:        f.Position,
			Heading:         f.Heading,
			WarpSpeed:       f.WarpSpeed,
			Mass:            spec.Mass,
			TotalShips:      spec.TotalShips,
			Starbase:        f.Starbase,
			ReportedYear:    w.Year,
			DetailsRevealed: revealed,
		}
		if f.Orbiting != nil {
			report.OrbitingPlanet = f.Orbiting.ID
		}
		for _, t := range f.Tokens {
			token := game.TokenIntel{DesignNum: t.DesignNum, Quantity: t.Quantity}
			if revealed && t.Design != nil {
				token.DesignName = t.Design.Name
				if !own {
					learnDesign(intel, t.Design)
				}
			}
			report.Tokens = append(report.Tokens, token)
		}
		intel.Fleets = append(intel.Fleets, report)
	}
	sort.SliceStable(intel.Designs, func(i, j int) bool {
		a, b := intel.Designs[i], intel.Designs[j]
		if a.PlayerNum != b.PlayerNum {
			return a.PlayerNum < b.PlayerNum
		}
		return a.Num < b.Num
	})
}

// learnDesign records or refreshes a foreign design.
func learnDesign(intel *game.PlayerIntel, d *game.ShipDesign) {
	report := game.DesignIntel{
		PlayerNum: d.PlayerNum,
		Num:       d.Num,
		Name:      d.Name,
		Hull:      d.Hull,
		Slots:     append([]game.ShipDesignSlot(nil), d.Slots...),
	}
	for i := range intel.Designs {
		if intel.Designs[i].PlayerNum == d.PlayerNum && intel.Designs[i].Num == d.Num {
			intel.Designs[i] = report
			return
		}
	}
	intel.Designs = append(intel.Designs, report)
}

func discoverMineFields(w *game.World, player *game.Player, scanners []scanner) []game.MineFieldIntel {
	var out []game.MineFieldIntel
	for _, m := range w.MineFields {
		if m.Delete {
			continue
		}
		if m.PlayerNum != player.Num && !inRange(scanners, m.Position, m.Radius()) {
			continue
		}
		out = append(out, game.MineFieldIntel{
			ID: m.ID, PlayerNum: m.PlayerNum, Position: m.Position, NumMines: m.NumMines, ReportedYear: w.Year,
		})
	}
	return out
}

func discoverPackets(w *game.World, player *game.Player, scanners []scanner) []game.MineralPacketIntel {
	var out []game.MineralPacketIntel
	for _, p := range w.MineralPackets {
		if p.Delete {
			continue
		}
		if p.PlayerNum != player.Num && !inRange(scanners, p.Position, 0) {
			continue
		}
		out = append(out, game.MineralPacketIntel{
			ID: p.ID, PlayerNum: p.PlayerNum, Position: p.Position, Heading: p.Heading,
			WarpSpeed: p.WarpSpeed, Cargo: p.Cargo, ReportedYear: w.Year,
		})
	}
	return out
}

// discoverWormholes reveals a wormhole's destination once both ends have
// been seen, this year or before. Ends out of range keep their last report.
func discoverWormholes(w *game.World, scanners []scanner, previous *game.PlayerIntel) []game.WormholeIntel {
	old := make(map[uuid.UUID]game.WormholeIntel, len(previous.Wormholes))
	for _, wh := range previous.Wormholes {
		old[wh.ID] = wh
	}
	seen := make(map[uuid.UUID]bool)
	for _, wh := range w.Wormholes {
		if !wh.Delete && inRange(scanners, wh.Position, 0) {
			seen[wh.ID] = true
		}
	}

	var out []game.WormholeIntel
	for _, wh := range w.Wormholes {
		if wh.Delete {
			continue
		}
		prior, known := old[wh.ID]
		var report game.WormholeIntel
		switch {
		case seen[wh.ID]:
			report = game.WormholeIntel{ID: wh.ID, Position: wh.Position, Stability: wh.Stability, ReportedYear: w.Year}
		case known:
			report = prior
			report.ReportAge = w.Year - prior.ReportedYear
		default:
			continue
		}
		if _, ok := old[wh.DestinationID]; ok || seen[wh.DestinationID] {
			report.DestinationID = wh.DestinationID
		}
		out = append(out, report)
	}
	return out
}

func discoverSalvage(w *game.World, scanners []scanner) []game.SalvageIntel {
	var out []game.SalvageIntel
	for _, s := range w.Salvages {
		if s.Delete || !inRange(scanners, s.Position, 0) {
			continue
		}
		out = append(out, game.SalvageIntel{ID: s.ID, Position: s.Position, Cargo: s.Cargo, ReportedYear: w.Year})
	}
	return out
}

func discoverTraders(w *game.World, scanners []scanner) []game.MysteryTraderIntel {
	var out []game.MysteryTraderIntel
	for _, t := range w.MysteryTraders {
		if t.Delete || !inRange(scanners, t.Position, 0) {
			continue
		}
		out = append(out, game.MysteryTraderIntel{
			ID: t.ID, Position: t.Position, Heading: t.Heading, WarpSpeed: t.WarpSpeed, ReportedYear: w.Year,
		})
	}
	return out
}

// scores are public.
func scores(w *game.World) []game.PlayerScoreIntel {
	out := make([]game.PlayerScoreIntel, 0, len(w.Players))
	for _, p := range w.Players {
		out = append(out, game.PlayerScoreIntel{PlayerNum: p.Num, Name: p.Name, Score: p.Score.Score, Rank: p.Score.Rank})
	}
	return out
}

// roundToHundred rounds half away from zero.
func roundToHundred(v float64) int {
	return int(math.Round(v/100)) * 100
}
