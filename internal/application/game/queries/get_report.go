package queries

import (
	"context"
	"fmt"
	"strconv"

	"github.com/andrescamacho/stars-go/internal/application/mediator"
	"github.com/andrescamacho/stars-go/internal/domain/game"
	"github.com/andrescamacho/stars-go/internal/domain/shared"
)

// GetReportQuery returns one player's view of the latest year.
type GetReportQuery struct {
	GameID    string `validate:"required"`
	PlayerNum int    `validate:"min=1"`
	// Mask selects message types; zero means all.
	Mask game.MessageMask
}

type GetReportResponse struct {
	GameID   string
	Year     int
	State    game.GameState
	Player   string
	Score    game.PlayerScore
	Intel    game.PlayerIntel
	Messages []game.Message
}

// GetReportHandler handles the GetReport query
type GetReportHandler struct {
	games game.GameRepository
}

func NewGetReportHandler(games game.GameRepository) *GetReportHandler {
	return &GetReportHandler{games: games}
}

func (h *GetReportHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetReportQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetReportQuery")
	}

	w, err := h.games.LoadLatest(ctx, query.GameID)
	if err != nil {
		return nil, fmt.Errorf("failed to load game: %w", err)
	}
	player := w.Player(query.PlayerNum)
	if player == nil {
		return nil, shared.NewNotFoundError("player", strconv.Itoa(query.PlayerNum))
	}

	mask := query.Mask
	if mask == 0 {
		mask = game.MessageMaskAll
	}
	return &GetReportResponse{
		GameID:   w.GameID,
		Year:     w.Year,
		State:    w.State,
		Player:   player.Name,
		Score:    player.Score,
		Intel:    player.Intel,
		Messages: game.FilterMessages(player.Messages, mask),
	}, nil
}
