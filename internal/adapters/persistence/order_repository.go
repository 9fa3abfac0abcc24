package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/andrescamacho/stars-go/internal/application/orders"
	"github.com/andrescamacho/stars-go/internal/domain/shared"
)

// GormOrderRepository implements orders.Repository using GORM
type GormOrderRepository struct {
	db    *gorm.DB
	clock shared.Clock
}

// NewGormOrderRepository creates a new GORM order repository
func NewGormOrderRepository(db *gorm.DB, clock shared.Clock) *GormOrderRepository {
	if clock == nil {
		clock = shared.RealClock{}
	}
	return &GormOrderRepository{db: db, clock: clock}
}

// Save upserts a player's orders for the year
func (r *GormOrderRepository) Save(ctx context.Context, gameID string, o *orders.Orders) error {
	payload, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("failed to marshal orders: %w", err)
	}
	model := &TurnOrderModel{
		GameID:      gameID,
		Year:        o.Year,
		PlayerNum:   o.PlayerNum,
		Payload:     string(payload),
		SubmittedAt: r.clock.Now(),
	}

	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "game_id"}, {Name: "year"}, {Name: "player_num"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "submitted_at"}),
	}).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save orders: %w", err)
	}
	return nil
}

// ListForYear loads every player's orders for the year
func (r *GormOrderRepository) ListForYear(ctx context.Context, gameID string, year int) (map[int]*orders.Orders, error) {
	var models []TurnOrderModel
	err := r.db.WithContext(ctx).
		Where("game_id = ? AND year = ?", gameID, year).
		Order("player_num ASC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	byPlayer := make(map[int]*orders.Orders, len(models))
	for _, m := range models {
		var o orders.Orders
		if err := json.Unmarshal([]byte(m.Payload), &o); err != nil {
			return nil, fmt.Errorf("failed to unmarshal orders of player %d: %w", m.PlayerNum, err)
		}
		byPlayer[m.PlayerNum] = &o
	}
	return byPlayer, nil
}

// SubmittedPlayers lists who has orders in for the year
func (r *GormOrderRepository) SubmittedPlayers(ctx context.Context, gameID string, year int) ([]int, error) {
	var nums []int
	err := r.db.WithContext(ctx).
		Model(&TurnOrderModel{}).
		Where("game_id = ? AND year = ?", gameID, year).
		Order("player_num ASC").
		Pluck("player_num", &nums).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list submitted players: %w", err)
	}
	return nums, nil
}
