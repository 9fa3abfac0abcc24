package game

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// GameSummary is the lightweight row listing a stored game.
type GameSummary struct {
	GameID    string
	Name      string
	Year      int
	State     GameState
	Players   int
	UpdatedAt time.Time
}

// GameRepository defines persistence operations for worlds
type GameRepository interface {
	// Create stores a freshly generated world as its first snapshot
	Create(ctx context.Context, world *World) error

	// SaveTurn stores the post-turn world and its battle records atomically.
	// It is only called after a turn generated successfully.
	SaveTurn(ctx context.Context, world *World, records []*BattleRecord) error

	// LoadLatest returns the most recent snapshot of a game
	LoadLatest(ctx context.Context, gameID string) (*World, error)

	// ListInProgress returns games that are not finished
	ListInProgress(ctx context.Context) ([]GameSummary, error)

	// SetState updates the lifecycle state without writing a snapshot
	SetState(ctx context.Context, gameID string, state GameState) error
}

// BattleRecordRepository reads stored battle records
type BattleRecordRepository interface {
	FindByID(ctx context.Context, gameID string, id uuid.UUID) (*BattleRecord, error)
	ListForYear(ctx context.Context, gameID string, year int) ([]*BattleRecord, error)
}
