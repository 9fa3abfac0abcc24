package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/andrescamacho/stars-go/internal/domain/game"
	"github.com/andrescamacho/stars-go/internal/domain/shared"
)

// GormBattleRecordRepository implements game.BattleRecordRepository using GORM
type GormBattleRecordRepository struct {
	db *gorm.DB
}

// NewGormBattleRecordRepository creates a new GORM battle record repository
func NewGormBattleRecordRepository(db *gorm.DB) *GormBattleRecordRepository {
	return &GormBattleRecordRepository{db: db}
}

// FindByID retrieves one battle of a game
func (r *GormBattleRecordRepository) FindByID(ctx context.Context, gameID string, id uuid.UUID) (*game.BattleRecord, error) {
	var model BattleRecordModel
	err := r.db.WithContext(ctx).Where("id = ? AND game_id = ?", id.String(), gameID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("battle", id.String())
		}
		return nil, fmt.Errorf("failed to find battle: %w", err)
	}
	return modelToBattleRecord(&model)
}

// ListForYear retrieves a year's battles in the order they were fought
func (r *GormBattleRecordRepository) ListForYear(ctx context.Context, gameID string, year int) ([]*game.BattleRecord, error) {
	var models []BattleRecordModel
	err := r.db.WithContext(ctx).
		Where("game_id = ? AND year = ?", gameID, year).
		Order("seq ASC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list battles: %w", err)
	}

	records := make([]*game.BattleRecord, 0, len(models))
	for i := range models {
		rec, err := modelToBattleRecord(&models[i])
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func modelToBattleRecord(model *BattleRecordModel) (*game.BattleRecord, error) {
	var rec game.BattleRecord
	if err := json.Unmarshal([]byte(model.Payload), &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal battle %s: %w", model.ID, err)
	}
	return &rec, nil
}
