package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/andrescamacho/stars-go/internal/adapters/persistence"
	"github.com/andrescamacho/stars-go/internal/adapters/snapshot"
	"github.com/andrescamacho/stars-go/internal/application/orders"
	"github.com/andrescamacho/stars-go/internal/application/turn"
	"github.com/andrescamacho/stars-go/internal/domain/game"
	"github.com/andrescamacho/stars-go/internal/domain/game/gametest"
	"github.com/andrescamacho/stars-go/internal/domain/shared"
	"github.com/andrescamacho/stars-go/internal/infrastructure/database"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewTestConnection()
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func newGameRepo(t *testing.T, db *gorm.DB) *persistence.GormGameRepository {
	t.Helper()
	codec, err := snapshot.NewCodec(snapshot.CompressionZstd)
	require.NoError(t, err)
	clock := shared.NewMockClock(time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), time.Second)
	return persistence.NewGormGameRepository(db, codec, clock)
}

func smallWorld() *game.World {
	b := gametest.NewWorld()
	alice := b.AddPlayer("Alice")
	b.AddPlayer("Bob")
	home := b.AddColony(alice, "Home", 0, 0, 25000)
	b.AddStarbase(alice, home)
	b.AddFleet(alice, game.DesignScout, 1, 0, 0)
	return b.Build()
}

func TestGameRepository_CreateAndLoadLatest(t *testing.T) {
	// Arrange
	db := newTestDB(t)
	repo := newGameRepo(t, db)
	w := smallWorld()
	want, err := turn.Digest(w)
	require.NoError(t, err)

	// Act
	require.NoError(t, repo.Create(context.Background(), w))
	loaded, err := repo.LoadLatest(context.Background(), w.GameID)

	// Assert
	require.NoError(t, err)
	got, err := turn.Digest(loaded)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.NotNil(t, loaded.PlanetsOwnedBy(1)[0].Starbase)
}

func TestGameRepository_SaveTurnKeepsNewestYear(t *testing.T) {
	// Arrange
	db := newTestDB(t)
	repo := newGameRepo(t, db)
	w := smallWorld()
	require.NoError(t, repo.Create(context.Background(), w))
	result, err := turn.NewGenerator().Generate(context.Background(), w, nil)
	require.NoError(t, err)
	record := &game.BattleRecord{ID: uuid.New(), Year: result.World.Year, Players: []int{1, 2}}

	// Act
	err = repo.SaveTurn(context.Background(), result.World, []*game.BattleRecord{record})

	// Assert
	require.NoError(t, err)
	loaded, err := repo.LoadLatest(context.Background(), w.GameID)
	require.NoError(t, err)
	assert.Equal(t, result.World.Year, loaded.Year)

	battles := persistence.NewGormBattleRecordRepository(db)
	found, err := battles.FindByID(context.Background(), w.GameID, record.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, found.Players)
}

func TestGameRepository_SaveTurnTwiceForYearFails(t *testing.T) {
	// Arrange
	db := newTestDB(t)
	repo := newGameRepo(t, db)
	w := smallWorld()
	require.NoError(t, repo.Create(context.Background(), w))

	// Act
	err := repo.SaveTurn(context.Background(), w, nil)

	// Assert
	require.Error(t, err)
}

func TestGameRepository_SetStateAndList(t *testing.T) {
	// Arrange
	db := newTestDB(t)
	repo := newGameRepo(t, db)
	running := smallWorld()
	finished := smallWorld()
	finished.GameID = "done-game"
	require.NoError(t, repo.Create(context.Background(), running))
	require.NoError(t, repo.Create(context.Background(), finished))

	// Act
	require.NoError(t, repo.SetState(context.Background(), finished.GameID, game.GameStateFinished))
	require.NoError(t, repo.SetState(context.Background(), running.GameID, game.GameStateGeneratingTurn))
	games, err := repo.ListInProgress(context.Background())

	// Assert
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, running.GameID, games[0].GameID)
	assert.Equal(t, game.GameStateGeneratingTurn, games[0].State)
	assert.Equal(t, 2, games[0].Players)

	loaded, err := repo.LoadLatest(context.Background(), running.GameID)
	require.NoError(t, err)
	assert.Equal(t, game.GameStateGeneratingTurn, loaded.State)
}

func TestGameRepository_NotFound(t *testing.T) {
	// Arrange
	db := newTestDB(t)
	repo := newGameRepo(t, db)

	// Act
	_, loadErr := repo.LoadLatest(context.Background(), "missing")
	stateErr := repo.SetState(context.Background(), "missing", game.GameStateFinished)

	// Assert
	var notFound *shared.NotFoundError
	assert.ErrorAs(t, loadErr, &notFound)
	assert.ErrorAs(t, stateErr, &notFound)
}

func TestOrderRepository_SaveReplacesAndLists(t *testing.T) {
	// Arrange
	db := newTestDB(t)
	repo := persistence.NewGormOrderRepository(db, nil)
	ctx := context.Background()
	first := &orders.Orders{PlayerNum: 2, Year: 2400, Research: &orders.ResearchOrder{ResearchAmount: 10}}
	second := &orders.Orders{PlayerNum: 2, Year: 2400, Research: &orders.ResearchOrder{ResearchAmount: 25}}
	other := &orders.Orders{PlayerNum: 1, Year: 2400}
	nextYear := &orders.Orders{PlayerNum: 3, Year: 2401}

	// Act
	require.NoError(t, repo.Save(ctx, "g", first))
	require.NoError(t, repo.Save(ctx, "g", second))
	require.NoError(t, repo.Save(ctx, "g", other))
	require.NoError(t, repo.Save(ctx, "g", nextYear))
	byPlayer, err := repo.ListForYear(ctx, "g", 2400)
	require.NoError(t, err)
	submitted, err := repo.SubmittedPlayers(ctx, "g", 2400)

	// Assert
	require.NoError(t, err)
	require.Len(t, byPlayer, 2)
	assert.Equal(t, 25, byPlayer[2].Research.ResearchAmount)
	assert.Equal(t, []int{1, 2}, submitted)
}

func TestBattleRecordRepository_ScopedToGame(t *testing.T) {
	// Arrange
	db := newTestDB(t)
	repo := newGameRepo(t, db)
	w := smallWorld()
	require.NoError(t, repo.Create(context.Background(), w))
	w.Year++
	records := []*game.BattleRecord{
		{ID: uuid.New(), Year: w.Year, Players: []int{1, 2}},
		{ID: uuid.New(), Year: w.Year, Players: []int{2, 1}},
	}
	require.NoError(t, repo.SaveTurn(context.Background(), w, records))
	battles := persistence.NewGormBattleRecordRepository(db)

	// Act
	_, wrongGame := battles.FindByID(context.Background(), "other-game", records[0].ID)
	listed, err := battles.ListForYear(context.Background(), w.GameID, w.Year)

	// Assert
	var notFound *shared.NotFoundError
	assert.ErrorAs(t, wrongGame, &notFound)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, records[0].ID, listed[0].ID)
	assert.Equal(t, records[1].ID, listed[1].ID)
}
