package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/stars-go/internal/adapters/snapshot"
	"github.com/andrescamacho/stars-go/internal/application/turn"
	"github.com/andrescamacho/stars-go/internal/domain/game"
	"github.com/andrescamacho/stars-go/internal/domain/shared"
)

// GormGameRepository implements game.GameRepository using GORM. Every
// generated year is kept as a compressed snapshot.
type GormGameRepository struct {
	db    *gorm.DB
	codec *snapshot.Codec
	clock shared.Clock
}

// NewGormGameRepository creates a new GORM game repository
func NewGormGameRepository(db *gorm.DB, codec *snapshot.Codec, clock shared.Clock) *GormGameRepository {
	if clock == nil {
		clock = shared.RealClock{}
	}
	return &GormGameRepository{db: db, codec: codec, clock: clock}
}

// Create persists a new game and its first snapshot
func (r *GormGameRepository) Create(ctx context.Context, w *game.World) error {
	snap, err := r.snapshotModel(w)
	if err != nil {
		return err
	}
	now := r.clock.Now()
	model := &GameModel{
		ID:        w.GameID,
		Name:      w.Name,
		Year:      w.Year,
		State:     string(w.State),
		Players:   len(w.Players),
		Seed:      w.Rules.Seed,
		CreatedAt: now,
		UpdatedAt: now,
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model).Error; err != nil {
			return fmt.Errorf("failed to create game: %w", err)
		}
		if err := tx.Create(snap).Error; err != nil {
			return fmt.Errorf("failed to create snapshot: %w", err)
		}
		return nil
	})
}

// SaveTurn stores the new year's snapshot, its battle records and the game
// row in one transaction
func (r *GormGameRepository) SaveTurn(ctx context.Context, w *game.World, records []*game.BattleRecord) error {
	snap, err := r.snapshotModel(w)
	if err != nil {
		return err
	}
	battles := make([]*BattleRecordModel, 0, len(records))
	for i, rec := range records {
		model, err := battleRecordToModel(w.GameID, i, rec)
		if err != nil {
			return err
		}
		battles = append(battles, model)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(snap).Error; err != nil {
			return fmt.Errorf("failed to save snapshot for %d: %w", w.Year, err)
		}
		if len(battles) > 0 {
			if err := tx.Create(&battles).Error; err != nil {
				return fmt.Errorf("failed to save battle records: %w", err)
			}
		}
		result := tx.Model(&GameModel{}).Where("id = ?", w.GameID).Updates(map[string]interface{}{
			"year":       w.Year,
			"state":      string(w.State),
			"updated_at": r.clock.Now(),
		})
		if result.Error != nil {
			return fmt.Errorf("failed to update game: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return shared.NewNotFoundError("game", w.GameID)
		}
		return nil
	})
}

// LoadLatest decodes the newest snapshot. The game row's state wins over the
// state stored in the snapshot.
func (r *GormGameRepository) LoadLatest(ctx context.Context, gameID string) (*game.World, error) {
	var model GameModel
	if err := r.db.WithContext(ctx).Where("id = ?", gameID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("game", gameID)
		}
		return nil, fmt.Errorf("failed to find game: %w", err)
	}

	var snap GameSnapshotModel
	err := r.db.WithContext(ctx).
		Where("game_id = ?", gameID).
		Order("year DESC").
		First(&snap).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("snapshot", gameID)
		}
		return nil, fmt.Errorf("failed to find snapshot: %w", err)
	}

	w, err := r.codec.Decode(snap.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s/%d: %w", gameID, snap.Year, err)
	}
	w.State = game.GameState(model.State)
	return w, nil
}

// ListInProgress returns every game that has not finished, oldest first
func (r *GormGameRepository) ListInProgress(ctx context.Context) ([]game.GameSummary, error) {
	var models []GameModel
	err := r.db.WithContext(ctx).
		Where("state <> ?", string(game.GameStateFinished)).
		Order("created_at ASC, id ASC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}

	summaries := make([]game.GameSummary, 0, len(models))
	for _, m := range models {
		summaries = append(summaries, game.GameSummary{
			GameID:    m.ID,
			Name:      m.Name,
			Year:      m.Year,
			State:     game.GameState(m.State),
			Players:   m.Players,
			UpdatedAt: m.UpdatedAt,
		})
	}
	return summaries, nil
}

// SetState moves a game through its lifecycle
func (r *GormGameRepository) SetState(ctx context.Context, gameID string, state game.GameState) error {
	result := r.db.WithContext(ctx).Model(&GameModel{}).Where("id = ?", gameID).Updates(map[string]interface{}{
		"state":      string(state),
		"updated_at": r.clock.Now(),
	})
	if result.Error != nil {
		return fmt.Errorf("failed to set game state: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("game", gameID)
	}
	return nil
}

func (r *GormGameRepository) snapshotModel(w *game.World) (*GameSnapshotModel, error) {
	data, err := r.codec.Encode(w)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s/%d: %w", w.GameID, w.Year, err)
	}
	digest, err := turn.Digest(w)
	if err != nil {
		return nil, err
	}
	return &GameSnapshotModel{
		GameID:      w.GameID,
		Year:        w.Year,
		Compression: string(r.codec.Compression()),
		Digest:      digest,
		Data:        data,
		CreatedAt:   r.clock.Now(),
	}, nil
}

func battleRecordToModel(gameID string, seq int, rec *game.BattleRecord) (*BattleRecordModel, error) {
	payload, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal battle record: %w", err)
	}
	players, err := json.Marshal(rec.Players)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal battle players: %w", err)
	}
	return &BattleRecordModel{
		ID:      rec.ID.String(),
		GameID:  gameID,
		Year:    rec.Year,
		Seq:     seq,
		Players: string(players),
		Payload: string(payload),
	}, nil
}
