package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/stars-go/internal/application/game/commands"
	"github.com/andrescamacho/stars-go/internal/application/orders"
	"github.com/andrescamacho/stars-go/internal/application/turn"
	"github.com/andrescamacho/stars-go/internal/application/universe"
	"github.com/andrescamacho/stars-go/internal/domain/game"
	"github.com/andrescamacho/stars-go/internal/domain/shared"
)

type harness struct {
	games   *memoryGames
	orders  *memoryOrders
	stagers *orders.Stagers
	locker  *countingLocker
	create  *commands.CreateGameHandler
	submit  *commands.SubmitOrdersHandler
	turn    *commands.GenerateTurnHandler
}

func newHarness() *harness {
	h := &harness{
		games:   newMemoryGames(),
		orders:  newMemoryOrders(),
		stagers: orders.NewStagers(100, 10),
		locker:  &countingLocker{},
	}
	clock := shared.NewMockClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), time.Second)
	h.create = commands.NewCreateGameHandler(h.games, universe.NewGenerator(), clock)
	h.submit = commands.NewSubmitOrdersHandler(h.games, h.orders, h.stagers)
	h.turn = commands.NewGenerateTurnHandler(h.games, h.orders, h.stagers, turn.NewGenerator(), h.locker)
	return h
}

func (h *harness) createGame(t *testing.T, players ...universe.PlayerSetup) *game.World {
	t.Helper()
	resp, err := h.create.Handle(context.Background(), &commands.CreateGameCommand{
		Name:          "Test",
		Players:       players,
		Size:          universe.SizeTiny,
		Density:       universe.DensityNormal,
		Seed:          11,
		WormholePairs: -1,
	})
	require.NoError(t, err)
	return resp.(*commands.CreateGameResponse).World
}

func TestCreateGame_StoresFirstYear(t *testing.T) {
	// Arrange
	h := newHarness()

	// Act
	w := h.createGame(t, universe.PlayerSetup{Name: "Alice"}, universe.PlayerSetup{Name: "Bob"})

	// Assert
	stored, err := h.games.LoadLatest(context.Background(), w.GameID)
	require.NoError(t, err)
	assert.Same(t, w, stored)
	assert.NotEmpty(t, w.GameID)
	assert.Equal(t, int64(11), w.Rules.Seed)
	assert.Len(t, w.Players, 2)
}

func TestCreateGame_SeedsFromClockWhenZero(t *testing.T) {
	// Arrange
	h := newHarness()

	// Act
	resp, err := h.create.Handle(context.Background(), &commands.CreateGameCommand{
		Name:          "Clocked",
		Players:       []universe.PlayerSetup{{Name: "Alice"}},
		Size:          universe.SizeTiny,
		WormholePairs: 0,
	})

	// Assert
	require.NoError(t, err)
	assert.NotZero(t, resp.(*commands.CreateGameResponse).World.Rules.Seed)
}

func TestCreateGame_RejectsWrongRequestType(t *testing.T) {
	// Arrange
	h := newHarness()

	// Act
	_, err := h.create.Handle(context.Background(), &commands.GenerateTurnCommand{})

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid request type")
}

func TestSubmitOrders_TracksWhoHasSubmitted(t *testing.T) {
	// Arrange
	h := newHarness()
	w := h.createGame(t, universe.PlayerSetup{Name: "Alice"}, universe.PlayerSetup{Name: "Bob"})

	// Act
	first, errFirst := h.submit.Handle(context.Background(), &commands.SubmitOrdersCommand{
		GameID: w.GameID,
		Orders: &orders.Orders{PlayerNum: 1},
	})
	second, errSecond := h.submit.Handle(context.Background(), &commands.SubmitOrdersCommand{
		GameID: w.GameID,
		Orders: &orders.Orders{PlayerNum: 2, Year: w.Year},
	})

	// Assert
	require.NoError(t, errFirst)
	require.NoError(t, errSecond)
	assert.Equal(t, w.Year, first.(*commands.SubmitOrdersResponse).Year)
	assert.False(t, first.(*commands.SubmitOrdersResponse).AllSubmitted)
	assert.True(t, second.(*commands.SubmitOrdersResponse).AllSubmitted)
}

func TestSubmitOrders_IgnoresComputerPlayersForAllSubmitted(t *testing.T) {
	// Arrange
	h := newHarness()
	w := h.createGame(t, universe.PlayerSetup{Name: "Alice"}, universe.PlayerSetup{Name: "Hal", AIControlled: true})

	// Act
	resp, err := h.submit.Handle(context.Background(), &commands.SubmitOrdersCommand{
		GameID: w.GameID,
		Orders: &orders.Orders{PlayerNum: 1},
	})

	// Assert
	require.NoError(t, err)
	assert.True(t, resp.(*commands.SubmitOrdersResponse).AllSubmitted)
}

func TestSubmitOrders_RejectsLockedGame(t *testing.T) {
	// Arrange
	h := newHarness()
	w := h.createGame(t, universe.PlayerSetup{Name: "Alice"})
	w.State = game.GameStateGeneratingTurn

	// Act
	_, err := h.submit.Handle(context.Background(), &commands.SubmitOrdersCommand{
		GameID: w.GameID,
		Orders: &orders.Orders{PlayerNum: 1},
	})

	// Assert
	var locked *shared.GameLockedError
	assert.ErrorAs(t, err, &locked)
}

func TestSubmitOrders_RejectsUnknownPlayer(t *testing.T) {
	// Arrange
	h := newHarness()
	w := h.createGame(t, universe.PlayerSetup{Name: "Alice"})

	// Act
	_, err := h.submit.Handle(context.Background(), &commands.SubmitOrdersCommand{
		GameID: w.GameID,
		Orders: &orders.Orders{PlayerNum: 5},
	})

	// Assert
	var missing *shared.NotFoundError
	assert.ErrorAs(t, err, &missing)
}

func TestSubmitOrders_ReturnsWorldRejections(t *testing.T) {
	// Arrange
	h := newHarness()
	w := h.createGame(t, universe.PlayerSetup{Name: "Alice"}, universe.PlayerSetup{Name: "Bob"})
	bobFleet := w.FleetsOwnedBy(2)[0]

	// Act
	resp, err := h.submit.Handle(context.Background(), &commands.SubmitOrdersCommand{
		GameID: w.GameID,
		Orders: &orders.Orders{PlayerNum: 1, Fleets: []orders.FleetOrder{{FleetID: bobFleet.ID}}},
	})

	// Assert
	require.NoError(t, err)
	assert.NotEmpty(t, resp.(*commands.SubmitOrdersResponse).Rejections)
}

func TestGenerateTurn_AdvancesAndPersists(t *testing.T) {
	// Arrange
	h := newHarness()
	w := h.createGame(t, universe.PlayerSetup{Name: "Alice"}, universe.PlayerSetup{Name: "Bob"})
	year := w.Year
	_, err := h.submit.Handle(context.Background(), &commands.SubmitOrdersCommand{
		GameID: w.GameID,
		Orders: &orders.Orders{PlayerNum: 1, Research: &orders.ResearchOrder{ResearchAmount: 30}},
	})
	require.NoError(t, err)

	// Act
	resp, err := h.turn.Handle(context.Background(), &commands.GenerateTurnCommand{GameID: w.GameID})

	// Assert
	require.NoError(t, err)
	out := resp.(*commands.GenerateTurnResponse)
	assert.Equal(t, year+1, out.Year)
	assert.Len(t, out.Digest, 64)
	assert.Equal(t, 1, h.games.saved)
	assert.Equal(t, []game.GameState{game.GameStateGeneratingTurn}, h.games.states)
	assert.Equal(t, 1, h.locker.acquired)
	assert.Equal(t, 1, h.locker.released)

	stored, err := h.games.LoadLatest(context.Background(), w.GameID)
	require.NoError(t, err)
	assert.Equal(t, 30, stored.Player(1).ResearchAmount)
	assert.Equal(t, year+1, h.stagers.For(w.GameID, year+1).Year())
	assert.False(t, h.stagers.For(w.GameID, year+1).Locked())
}

func TestGenerateTurn_RefusesWhileLocked(t *testing.T) {
	// Arrange
	h := newHarness()
	w := h.createGame(t, universe.PlayerSetup{Name: "Alice"})
	release, err := h.locker.Acquire(w.GameID)
	require.NoError(t, err)
	defer func() { _ = release() }()

	// Act
	_, err = h.turn.Handle(context.Background(), &commands.GenerateTurnCommand{GameID: w.GameID})

	// Assert
	require.Error(t, err)
	assert.Zero(t, h.games.saved)
}

func TestGenerateTurn_FailedTurnReopensGame(t *testing.T) {
	// Arrange
	h := newHarness()
	w := h.createGame(t, universe.PlayerSetup{Name: "Alice"})
	year := w.Year
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Act
	_, err := h.turn.Handle(ctx, &commands.GenerateTurnCommand{GameID: w.GameID})

	// Assert
	require.Error(t, err)
	assert.Zero(t, h.games.saved)
	assert.Equal(t, []game.GameState{game.GameStateGeneratingTurn, game.GameStateWaitingForPlayers}, h.games.states)
	assert.Equal(t, 1, h.locker.released)
	stager := h.stagers.For(w.GameID, year)
	assert.False(t, stager.Locked())
	assert.Equal(t, year, stager.Year())
}

func TestAllHumansSubmitted(t *testing.T) {
	// Arrange
	w := &game.World{Players: []*game.Player{{Num: 1}, {Num: 2, AIControlled: true}, {Num: 3}}}

	// Act + Assert
	assert.False(t, commands.AllHumansSubmitted(w, []int{1}))
	assert.True(t, commands.AllHumansSubmitted(w, []int{1, 3}))
}
