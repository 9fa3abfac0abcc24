package turn_test

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/stars-go/internal/application/turn"
	"github.com/andrescamacho/stars-go/internal/domain/game"
)

type turnScenario struct {
	fx        fixture
	startYear int
	result    *turn.Result
	digests   []string
	err       error
}

func (s *turnScenario) reset() {
	*s = turnScenario{}
}

func (s *turnScenario) phaseIsScheduled(name string) error {
	if !slices.Contains(turn.PhaseNames(), name) {
		return fmt.Errorf("phase %q is not scheduled", name)
	}
	return nil
}

func (s *turnScenario) phaseRunsBefore(first, second string) error {
	names := turn.PhaseNames()
	i, j := slices.Index(names, first), slices.Index(names, second)
	if i < 0 || j < 0 {
		return fmt.Errorf("unknown phase in %q, %q", first, second)
	}
	if i >= j {
		return fmt.Errorf("%s runs at %d, after %s at %d", first, i, second, j)
	}
	return nil
}

func (s *turnScenario) phaseRunsLast(name string) error {
	names := turn.PhaseNames()
	if names[len(names)-1] != name {
		return fmt.Errorf("last phase is %s", names[len(names)-1])
	}
	return nil
}

func (s *turnScenario) galaxyWithColonyShip(_ string) error {
	s.fx = newFixture()
	s.startYear = s.fx.world.Year
	return nil
}

func (s *turnScenario) gameIsFinished() error {
	s.fx.world.State = game.GameStateFinished
	return nil
}

func (s *turnScenario) turnIsGenerated() error {
	s.result, s.err = turn.NewGenerator().Generate(context.Background(), s.fx.world, nil)
	return nil
}

func (s *turnScenario) sameTurnTwice() error {
	for range 2 {
		fx := newFixture()
		result, err := turn.NewGenerator().Generate(context.Background(), fx.world, nil)
		if err != nil {
			return err
		}
		s.digests = append(s.digests, result.Digest)
	}
	return nil
}

func (s *turnScenario) planet(name string) (*game.Planet, error) {
	for _, p := range s.fx.world.Planets {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, fmt.Errorf("no planet named %s", name)
}

func (s *turnScenario) planetBelongsTo(planetName, playerName string) error {
	if s.err != nil {
		return s.err
	}
	p, err := s.planet(planetName)
	if err != nil {
		return err
	}
	owner := s.fx.world.Player(p.PlayerNum)
	if owner == nil || owner.Name != playerName {
		return fmt.Errorf("%s is owned by player %d", planetName, p.PlayerNum)
	}
	return nil
}

func (s *turnScenario) planetHasAtLeast(planetName string, colonists int) error {
	p, err := s.planet(planetName)
	if err != nil {
		return err
	}
	if p.Population < colonists {
		return fmt.Errorf("%s has %d colonists", planetName, p.Population)
	}
	return nil
}

func (s *turnScenario) yearAdvancedBy(n int) error {
	if got := s.fx.world.Year - s.startYear; got != n {
		return fmt.Errorf("year advanced by %d", got)
	}
	return nil
}

func (s *turnScenario) sameDigest() error {
	if len(s.digests) != 2 || s.digests[0] != s.digests[1] {
		return fmt.Errorf("digests differ: %v", s.digests)
	}
	return nil
}

func (s *turnScenario) generationFailsWith(text string) error {
	if s.err == nil {
		return fmt.Errorf("expected an error containing %q", text)
	}
	if !strings.Contains(s.err.Error(), text) {
		return fmt.Errorf("error %q does not mention %q", s.err, text)
	}
	return nil
}

func initializeTurnScenario(sc *godog.ScenarioContext) {
	s := &turnScenario{}
	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		s.reset()
		return ctx, nil
	})

	sc.Step(`^the phase "([^"]*)" is scheduled$`, s.phaseIsScheduled)
	sc.Step(`^the phase "([^"]*)" runs before "([^"]*)"$`, s.phaseRunsBefore)
	sc.Step(`^the phase "([^"]*)" runs last$`, s.phaseRunsLast)
	sc.Step(`^a galaxy where Alice has a freighter with 20 colonists beside her colony ship over "([^"]*)"$`, s.galaxyWithColonyShip)
	sc.Step(`^the game is finished$`, s.gameIsFinished)
	sc.Step(`^the turn is generated$`, s.turnIsGenerated)
	sc.Step(`^the same turn is generated twice$`, s.sameTurnTwice)
	sc.Step(`^"([^"]*)" belongs to "([^"]*)"$`, s.planetBelongsTo)
	sc.Step(`^"([^"]*)" has at least (\d+) colonists$`, s.planetHasAtLeast)
	sc.Step(`^the year has advanced by (\d+)$`, s.yearAdvancedBy)
	sc.Step(`^both runs produce the same digest$`, s.sameDigest)
	sc.Step(`^turn generation fails with "([^"]*)"$`, s.generationFailsWith)
}

func TestTurnFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: initializeTurnScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run turn feature tests")
	}
}
