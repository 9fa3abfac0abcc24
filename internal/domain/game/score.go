package game

import (
	"sort"

	"github.com/andrescamacho/stars-go/internal/domain/rules"
)

// PlayerScore is a yearly snapshot of one player's standing.
type PlayerScore struct {
	Year              int `json:"year"`
	Planets           int `json:"planets"`
	Starbases         int `json:"starbases"`
	UnarmedShips      int `json:"unarmedShips"`
	EscortShips       int `json:"escortShips"`
	CapitalShips      int `json:"capitalShips"`
	TechLevels        int `json:"techLevels"`
	Resources         int `json:"resources"`
	Score             int `json:"score"`
	Rank              int `json:"rank"`
	AchievedVictories int `json:"achievedVictories"`
}

// techScore awards 1..4 points per field by level band.
func techScore(level rules.TechLevel) int {
	score := 0
	for _, f := range rules.TechFields {
		switch l := level.Get(f); {
		case l >= 10:
			score += 4
		case l >= 7:
			score += 3
		case l >= 4:
			score += 2
		case l >= 1:
			score += 1
		}
	}
	return score
}

// ScoreFor computes a player's score from the current world.
func ScoreFor(w *World, player *Player) PlayerScore {
	s := PlayerScore{Year: w.Year, TechLevels: player.TechLevels.Sum()}
	for _, p := range w.PlanetsOwnedBy(player.Num) {
		s.Planets++
		s.Resources += p.ResourcesPerYear(w.Rules)
	}
	for _, f := range w.FleetsOwnedBy(player.Num) {
		for _, t := range f.Tokens {
			if t.Design == nil {
				continue
			}
			switch {
			case t.Design.Spec.Starbase:
				s.Starbases += t.Quantity
			case t.Design.IsCapitalShip():
				s.CapitalShips += t.Quantity
			case t.Design.Spec.Armed():
				s.EscortShips += t.Quantity
			default:
				s.UnarmedShips += t.Quantity
			}
		}
	}
	s.Score = s.Planets + 3*s.Starbases + s.UnarmedShips/2 + s.EscortShips + 2*s.CapitalShips +
		techScore(player.TechLevels) + s.Resources/30
	return s
}

// ComputeScores scores and ranks every player and appends to history.
// Ties share rank order by player number.
func ComputeScores(w *World) []PlayerScore {
	scores := make([]PlayerScore, len(w.Players))
	for i, p := range w.Players {
		scores[i] = ScoreFor(w, p)
	}
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]].Score > scores[order[b]].Score
	})
	for rank, i := range order {
		scores[i].Rank = rank + 1
	}
	for i, p := range w.Players {
		p.Score = scores[i]
		p.ScoreHistory = append(p.ScoreHistory, scores[i])
	}
	return scores
}

// achievedConditions evaluates every enabled victory condition for a player.
func achievedConditions(w *World, player *Player, totalPlanets int, secondBest int) rules.VictoryCondition {
	vc := w.Rules.Victory
	score := player.Score
	var achieved rules.VictoryCondition
	enabled := func(c rules.VictoryCondition) bool { return vc.Conditions&c != 0 }

	if enabled(rules.VictoryOwnPlanets) && totalPlanets > 0 &&
		score.Planets*100 >= totalPlanets*vc.OwnPlanetsPercent {
		achieved |= rules.VictoryOwnPlanets
	}
	if enabled(rules.VictoryAttainTechLevels) {
		fields := 0
		for _, f := range rules.TechFields {
			if player.TechLevels.Get(f) >= vc.AttainTechLevel {
				fields++
			}
		}
		if fields >= vc.AttainTechLevelNumFields {
			achieved |= rules.VictoryAttainTechLevels
		}
	}
	if enabled(rules.VictoryExceedsScore) && score.Score >= vc.ExceedsScore {
		achieved |= rules.VictoryExceedsScore
	}
	if enabled(rules.VictoryExceedsSecondPlaceScore) && score.Rank == 1 && len(w.Players) > 1 &&
		score.Score*100 >= secondBest*(100+vc.ExceedsSecondPlaceScorePercent) && score.Score > secondBest {
		achieved |= rules.VictoryExceedsSecondPlaceScore
	}
	if enabled(rules.VictoryProductionCapacity) && score.Resources >= vc.ProductionCapacity*1000 {
		achieved |= rules.VictoryProductionCapacity
	}
	if enabled(rules.VictoryOwnCapitalShips) && score.CapitalShips >= vc.OwnCapitalShips {
		achieved |= rules.VictoryOwnCapitalShips
	}
	if enabled(rules.VictoryHighestScoreAfterYears) && score.Rank == 1 &&
		w.Year-w.Rules.StartingYear >= vc.HighestScoreAfterYears {
		achieved |= rules.VictoryHighestScoreAfterYears
	}
	return achieved
}

func countConditions(c rules.VictoryCondition) int {
	n := 0
	for _, v := range rules.VictoryConditionsAll {
		if c&v != 0 {
			n++
		}
	}
	return n
}

// CheckVictory records achieved conditions and declares victors once the
// minimum years have passed. It returns the newly declared victors. A game
// declares victors only once; afterwards the world state is Finished.
func CheckVictory(w *World) []*Player {
	if w.VictorDeclared {
		return nil
	}
	totalPlanets := len(w.Planets)
	secondBest := 0
	for _, p := range w.Players {
		if p.Score.Rank == 2 {
			secondBest = p.Score.Score
		}
	}
	var victors []*Player
	yearsPassed := w.Year - w.Rules.StartingYear
	for _, p := range w.Players {
		p.AchievedVictoryConditions = achievedConditions(w, p, totalPlanets, secondBest)
		p.Score.AchievedVictories = countConditions(p.AchievedVictoryConditions)
		if yearsPassed < w.Rules.Victory.YearsPassed {
			continue
		}
		if p.Score.AchievedVictories >= w.Rules.Victory.NumCriteriaRequired {
			victors = append(victors, p)
		}
	}
	if len(victors) > 0 {
		for _, p := range victors {
			p.Victor = true
		}
		w.VictorDeclared = true
		w.State = GameStateFinished
	}
	return victors
}
