package queries

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/andrescamacho/stars-go/internal/application/mediator"
	"github.com/andrescamacho/stars-go/internal/domain/game"
	"github.com/andrescamacho/stars-go/internal/domain/shared"
)

// GetBattleQuery fetches a battle record a player took part in.
type GetBattleQuery struct {
	GameID    string    `validate:"required"`
	BattleID  uuid.UUID `validate:"required"`
	PlayerNum int       `validate:"min=1"`
}

type GetBattleResponse struct {
	Record *game.BattleRecord
}

// GetBattleHandler handles the GetBattle query
type GetBattleHandler struct {
	battles game.BattleRecordRepository
}

func NewGetBattleHandler(battles game.BattleRecordRepository) *GetBattleHandler {
	return &GetBattleHandler{battles: battles}
}

func (h *GetBattleHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetBattleQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetBattleQuery")
	}

	record, err := h.battles.FindByID(ctx, query.GameID, query.BattleID)
	if err != nil {
		return nil, err
	}
	// Players only see battles they fought in.
	if !record.Involves(query.PlayerNum) {
		return nil, shared.NewNotFoundError("battle", query.BattleID.String())
	}
	return &GetBattleResponse{Record: record}, nil
}
