package queries_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/stars-go/internal/application/game/queries"
	"github.com/andrescamacho/stars-go/internal/domain/game"
	"github.com/andrescamacho/stars-go/internal/domain/game/gametest"
	"github.com/andrescamacho/stars-go/internal/domain/shared"
)

type worldRepo struct {
	game.GameRepository
	world *game.World
}

func (r worldRepo) LoadLatest(_ context.Context, gameID string) (*game.World, error) {
	if r.world == nil || r.world.GameID != gameID {
		return nil, shared.NewNotFoundError("game", gameID)
	}
	return r.world, nil
}

func (r worldRepo) ListInProgress(context.Context) ([]game.GameSummary, error) {
	return []game.GameSummary{{GameID: r.world.GameID, Name: r.world.Name, Year: r.world.Year, State: r.world.State}}, nil
}

type battleRepo struct {
	game.BattleRecordRepository
	record *game.BattleRecord
}

func (r battleRepo) FindByID(_ context.Context, _ string, id uuid.UUID) (*game.BattleRecord, error) {
	if r.record == nil || r.record.ID != id {
		return nil, shared.NewNotFoundError("battle", id.String())
	}
	return r.record, nil
}

func newReportWorld() (*game.World, *game.Player) {
	b := gametest.NewWorld()
	alice := b.AddPlayer("Alice")
	b.AddPlayer("Bob")
	b.AddColony(alice, "Home", 0, 0, 25000)
	alice.AddMessage(game.NewMessage(game.MessageInfo, "welcome"))
	alice.AddMessage(game.NewMessage(game.MessageBattle, "a battle"))
	return b.Build(), alice
}

func TestGetReport_FiltersMessagesByMask(t *testing.T) {
	// Arrange
	w, alice := newReportWorld()
	handler := queries.NewGetReportHandler(worldRepo{world: w})

	// Act
	resp, err := handler.Handle(context.Background(), &queries.GetReportQuery{
		GameID:    w.GameID,
		PlayerNum: alice.Num,
		Mask:      game.MaskOf(game.MessageBattle),
	})

	// Assert
	require.NoError(t, err)
	report := resp.(*queries.GetReportResponse)
	assert.Equal(t, "Alice", report.Player)
	assert.Equal(t, w.Year, report.Year)
	require.Len(t, report.Messages, 1)
	assert.Equal(t, game.MessageBattle, report.Messages[0].Type)
}

func TestGetReport_ZeroMaskReturnsEverything(t *testing.T) {
	// Arrange
	w, alice := newReportWorld()
	handler := queries.NewGetReportHandler(worldRepo{world: w})

	// Act
	resp, err := handler.Handle(context.Background(), &queries.GetReportQuery{GameID: w.GameID, PlayerNum: alice.Num})

	// Assert
	require.NoError(t, err)
	assert.Len(t, resp.(*queries.GetReportResponse).Messages, 2)
}

func TestGetReport_UnknownPlayer(t *testing.T) {
	// Arrange
	w, _ := newReportWorld()
	handler := queries.NewGetReportHandler(worldRepo{world: w})

	// Act
	_, err := handler.Handle(context.Background(), &queries.GetReportQuery{GameID: w.GameID, PlayerNum: 9})

	// Assert
	var notFound *shared.NotFoundError
	assert.True(t, errors.As(err, &notFound))
}

func TestGetBattle_OnlyParticipantsSeeRecords(t *testing.T) {
	// Arrange
	record := &game.BattleRecord{ID: uuid.New(), Year: 2401, Players: []int{1, 2}}
	handler := queries.NewGetBattleHandler(battleRepo{record: record})

	// Act
	resp, err := handler.Handle(context.Background(), &queries.GetBattleQuery{GameID: "g", BattleID: record.ID, PlayerNum: 2})
	_, hiddenErr := handler.Handle(context.Background(), &queries.GetBattleQuery{GameID: "g", BattleID: record.ID, PlayerNum: 3})

	// Assert
	require.NoError(t, err)
	assert.Same(t, record, resp.(*queries.GetBattleResponse).Record)
	var notFound *shared.NotFoundError
	assert.True(t, errors.As(hiddenErr, &notFound))
}

func TestListGames_ReturnsSummaries(t *testing.T) {
	// Arrange
	w, _ := newReportWorld()
	handler := queries.NewListGamesHandler(worldRepo{world: w})

	// Act
	resp, err := handler.Handle(context.Background(), &queries.ListGamesQuery{})

	// Assert
	require.NoError(t, err)
	games := resp.(*queries.ListGamesResponse).Games
	require.Len(t, games, 1)
	assert.Equal(t, w.GameID, games[0].GameID)
}

func TestHandlers_RejectWrongRequestType(t *testing.T) {
	// Arrange
	handler := queries.NewGetReportHandler(worldRepo{})

	// Act
	_, err := handler.Handle(context.Background(), &queries.ListGamesQuery{})

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid request type")
}
