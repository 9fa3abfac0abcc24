package turn_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/stars-go/internal/application/orders"
	"github.com/andrescamacho/stars-go/internal/application/turn"
	"github.com/andrescamacho/stars-go/internal/domain/game"
	"github.com/andrescamacho/stars-go/internal/domain/game/gametest"
	"github.com/andrescamacho/stars-go/internal/domain/shared"
)

type fixture struct {
	world  *game.World
	alice  *game.Player
	bob    *game.Player
	home   *game.Planet
	target *game.Planet
	scout  *game.Fleet
	colony *game.Fleet
	ferry  *game.Fleet
}

// newFixture builds the same small two-player world every time.
func newFixture() fixture {
	b := gametest.NewWorld()
	alice := b.AddPlayer("Alice")
	bob := b.AddPlayer("Bob")
	home := b.AddColony(alice, "Home", 0, 0, 50000)
	home.Homeworld = true
	home.Cargo = shared.Cargo{Ironium: 500, Boranium: 500, Germanium: 500}
	b.AddStarbase(alice, home)
	b.AddColony(bob, "Bobland", 400, 400, 50000)
	target := b.AddPlanet("Target", 100, 100)

	scout := b.AddFleet(alice, game.DesignScout, 1, 0, 0)
	scout.Waypoints = append(scout.Waypoints, game.NewPositionWaypoint(shared.Vector{X: 100, Y: 0}, 5))

	colony := b.AddFleet(alice, game.DesignColonyShip, 1, 100, 100)
	colony.CurrentWaypoint().Task = game.TaskColonize

	ferry := b.AddFleet(alice, game.DesignSmallFreighter, 1, 100, 100)
	ferry.Cargo = shared.Cargo{Colonists: 20}
	wp := ferry.CurrentWaypoint()
	wp.Task = game.TaskTransport
	wp.TargetType = game.MapObjectFleet
	wp.TargetID = colony.ID
	wp.TransportTasks.Colonists = game.TransportTask{Action: game.TransportUnloadAll}

	return fixture{
		world: b.Build(), alice: alice, bob: bob, home: home, target: target,
		scout: scout, colony: colony, ferry: ferry,
	}
}

func TestGenerate_AdvancesYearAndResetsReports(t *testing.T) {
	// Arrange
	fx := newFixture()
	fx.alice.AddMessage(game.NewMessage(game.MessageInfo, "old news"))
	startYear := fx.world.Year

	// Act
	result, err := turn.NewGenerator().Generate(context.Background(), fx.world, nil)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, startYear+1, result.World.Year)
	assert.Equal(t, game.GameStateWaitingForPlayers, result.World.State)
	for _, m := range fx.alice.Messages {
		assert.NotEqual(t, "old news", m.Text)
	}
	assert.Len(t, result.Scores, 2)
	assert.NotEmpty(t, result.Digest)
}

func TestGenerate_IsDeterministic(t *testing.T) {
	// Arrange
	first := newFixture()
	second := newFixture()

	// Act
	a, errA := turn.NewGenerator().Generate(context.Background(), first.world, nil)
	b, errB := turn.NewGenerator().Generate(context.Background(), second.world, nil)

	// Assert
	require.NoError(t, errA)
	require.NoError(t, errB)
	assert.Equal(t, a.Digest, b.Digest)
	assert.Equal(t, a.Messages, b.Messages)
}

func TestGenerate_DifferentSeedsDiverge(t *testing.T) {
	// Arrange
	first := newFixture()
	second := newFixture()
	second.world.Rules.Seed = 7

	// Act
	a, errA := turn.NewGenerator().Generate(context.Background(), first.world, nil)
	b, errB := turn.NewGenerator().Generate(context.Background(), second.world, nil)

	// Assert
	require.NoError(t, errA)
	require.NoError(t, errB)
	assert.NotEqual(t, a.Digest, b.Digest)
}

func TestGenerate_UnloadHappensBeforeColonize(t *testing.T) {
	// Arrange
	fx := newFixture()

	// Act
	_, err := turn.NewGenerator().Generate(context.Background(), fx.world, nil)

	// Assert
	require.NoError(t, err)
	assert.True(t, fx.target.OwnedBy(fx.alice.Num), "colonists unloaded in the same year must colonize")
	assert.GreaterOrEqual(t, fx.target.Population, 2000)
	assert.Nil(t, fx.world.Fleet(fx.colony.ID), "the colony ship is used up")
	assert.Zero(t, fx.ferry.Cargo.Colonists)
}

func TestGenerate_MovesFleetsAndBurnsFuel(t *testing.T) {
	// Arrange
	fx := newFixture()
	fuel := fx.scout.Fuel

	// Act
	_, err := turn.NewGenerator().Generate(context.Background(), fx.world, nil)

	// Assert
	require.NoError(t, err)
	assert.InDelta(t, 25, fx.scout.Position.X, 1e-9)
	assert.InDelta(t, 0, fx.scout.Position.Y, 1e-9)
	assert.Less(t, fx.scout.Fuel, fuel)
	assert.Nil(t, fx.scout.Orbiting)
}

func TestGenerate_MinesAndGrowsHomeworld(t *testing.T) {
	// Arrange
	fx := newFixture()
	ironium := fx.home.Cargo.Ironium
	population := fx.home.Population

	// Act
	_, err := turn.NewGenerator().Generate(context.Background(), fx.world, nil)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 50, fx.home.MineYears.Ironium)
	assert.Greater(t, fx.home.Population, population)
	assert.Zero(t, fx.home.Population%100)
	assert.NotEqual(t, ironium, fx.home.Cargo.Ironium)
}

func TestGenerate_AppliesSubmittedOrders(t *testing.T) {
	// Arrange
	fx := newFixture()
	byPlayer := map[int]*orders.Orders{
		fx.alice.Num: {
			PlayerNum: fx.alice.Num,
			Year:      fx.world.Year,
			Research:  &orders.ResearchOrder{Researching: fx.alice.Researching, ResearchAmount: 50},
		},
		fx.bob.Num: {PlayerNum: fx.bob.Num, Year: fx.world.Year - 1},
	}

	// Act
	result, err := turn.NewGenerator().Generate(context.Background(), fx.world, byPlayer)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 50, fx.alice.ResearchAmount)
	rejected := game.FilterMessages(result.Messages[fx.bob.Num], game.MaskOf(game.MessageOrderRejected))
	assert.Len(t, rejected, 1)
}

func TestGenerate_RejectsMalformedOrders(t *testing.T) {
	// Arrange
	fx := newFixture()
	byPlayer := map[int]*orders.Orders{
		fx.alice.Num: {
			PlayerNum: fx.alice.Num,
			Year:      fx.world.Year,
			Research:  &orders.ResearchOrder{Researching: fx.alice.Researching, ResearchAmount: 150},
			Fleets: []orders.FleetOrder{{
				FleetID:   fx.scout.ID,
				Waypoints: []orders.WaypointOrder{{Position: fx.scout.Position, Task: game.WaypointTask(42)}},
			}},
		},
	}

	// Act
	result, err := turn.NewGenerator().Generate(context.Background(), fx.world, byPlayer)

	// Assert
	require.NoError(t, err)
	rejected := game.FilterMessages(result.Messages[fx.alice.Num], game.MaskOf(game.MessageOrderRejected))
	require.NotEmpty(t, rejected)
	assert.Contains(t, rejected[0].Text, "ResearchAmount")
	assert.Equal(t, 15, fx.alice.ResearchAmount)
	require.Len(t, fx.scout.Waypoints, 2)
	assert.Equal(t, game.TaskNone, fx.scout.Waypoints[0].Task)
}

type recordingObserver struct {
	mu       sync.Mutex
	phases   []string
	finished int
	failed   int
}

func (o *recordingObserver) PhaseCompleted(phase string, _ *game.World, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.phases = append(o.phases, phase)
}

func (o *recordingObserver) TurnCompleted(*turn.Result, time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.finished++
}

func (o *recordingObserver) TurnFailed(string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.failed++
}

func TestGenerate_ReportsEveryPhaseInOrder(t *testing.T) {
	// Arrange
	fx := newFixture()
	observer := &recordingObserver{}
	generator := turn.NewGenerator(turn.WithObserver(observer))

	// Act
	_, err := generator.Generate(context.Background(), fx.world, nil)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, turn.PhaseNames(), observer.phases)
	assert.Equal(t, 1, observer.finished)
	assert.Zero(t, observer.failed)
}

func TestGenerate_CancelledContextFailsTheTurn(t *testing.T) {
	// Arrange
	fx := newFixture()
	observer := &recordingObserver{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Act
	result, err := turn.NewGenerator(turn.WithObserver(observer)).Generate(ctx, fx.world, nil)

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, result)
	assert.Equal(t, 1, observer.failed)
}

func TestGenerate_RejectsFinishedGame(t *testing.T) {
	// Arrange
	fx := newFixture()
	fx.world.State = game.GameStateFinished

	// Act
	_, err := turn.NewGenerator().Generate(context.Background(), fx.world, nil)

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "finished")
}

func TestGenerateAsync_DeliversOutcome(t *testing.T) {
	// Arrange
	fx := newFixture()

	// Act
	outcome := <-turn.NewGenerator().GenerateAsync(context.Background(), fx.world, nil)

	// Assert
	require.NoError(t, outcome.Err)
	require.NotNil(t, outcome.Result)
	assert.Equal(t, fx.world.Year, outcome.Result.World.Year)
}

type fixedAI struct {
	orders map[int]*orders.Orders
}

func (a fixedAI) OrdersFor(*game.World) map[int]*orders.Orders {
	return a.orders
}

func TestGenerate_SubmittedOrdersWinOverAI(t *testing.T) {
	// Arrange
	fx := newFixture()
	year := fx.world.Year
	ai := fixedAI{orders: map[int]*orders.Orders{
		fx.alice.Num: {PlayerNum: fx.alice.Num, Year: year, Research: &orders.ResearchOrder{ResearchAmount: 90}},
		fx.bob.Num:   {PlayerNum: fx.bob.Num, Year: year, Research: &orders.ResearchOrder{ResearchAmount: 40}},
	}}
	submitted := map[int]*orders.Orders{
		fx.alice.Num: {PlayerNum: fx.alice.Num, Year: year, Research: &orders.ResearchOrder{ResearchAmount: 10}},
	}

	// Act
	_, err := turn.NewGenerator(turn.WithAI(ai)).Generate(context.Background(), fx.world, submitted)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 10, fx.alice.ResearchAmount)
	assert.Equal(t, 40, fx.bob.ResearchAmount)
}

func TestDigest_ChangesWithState(t *testing.T) {
	// Arrange
	fx := newFixture()
	before, err := turn.Digest(fx.world)
	require.NoError(t, err)

	// Act
	fx.home.Population += 100
	after, err := turn.Digest(fx.world)

	// Assert
	require.NoError(t, err)
	assert.NotEqual(t, before, after)
	assert.Len(t, before, 64)
}
