package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/stars-go/internal/application/mediator"
	"github.com/andrescamacho/stars-go/internal/domain/game"
)

type ListGamesQuery struct{}

type ListGamesResponse struct {
	Games []game.GameSummary
}

// ListGamesHandler handles the ListGames query
type ListGamesHandler struct {
	games game.GameRepository
}

func NewListGamesHandler(games game.GameRepository) *ListGamesHandler {
	return &ListGamesHandler{games: games}
}

func (h *ListGamesHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*ListGamesQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListGamesQuery")
	}

	games, err := h.games.ListInProgress(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	return &ListGamesResponse{Games: games}, nil
}
