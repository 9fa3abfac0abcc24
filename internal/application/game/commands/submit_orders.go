package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/andrescamacho/stars-go/internal/application/mediator"
	"github.com/andrescamacho/stars-go/internal/application/orders"
	"github.com/andrescamacho/stars-go/internal/domain/game"
	"github.com/andrescamacho/stars-go/internal/domain/shared"
)

// SubmitOrdersCommand stages and stores one player's orders for the current
// year. Orders that fail world checks are still stored; the turn drops them
// and tells the player.
type SubmitOrdersCommand struct {
	GameID string         `validate:"required"`
	Orders *orders.Orders `validate:"required"`
}

type SubmitOrdersResponse struct {
	Year       int
	Rejections []orders.Rejection
	// AllSubmitted is true once every human player has orders in.
	AllSubmitted bool
}

// SubmitOrdersHandler handles the SubmitOrders command
type SubmitOrdersHandler struct {
	games   game.GameRepository
	orders  orders.Repository
	stagers *orders.Stagers
}

func NewSubmitOrdersHandler(games game.GameRepository, repo orders.Repository, stagers *orders.Stagers) *SubmitOrdersHandler {
	return &SubmitOrdersHandler{games: games, orders: repo, stagers: stagers}
}

func (h *SubmitOrdersHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*SubmitOrdersCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *SubmitOrdersCommand")
	}

	w, err := h.games.LoadLatest(ctx, cmd.GameID)
	if err != nil {
		return nil, fmt.Errorf("failed to load game: %w", err)
	}
	if w.State == game.GameStateGeneratingTurn || w.State == game.GameStateFinished {
		return nil, shared.NewGameLockedError(cmd.GameID)
	}
	o := cmd.Orders
	if w.Player(o.PlayerNum) == nil {
		return nil, shared.NewNotFoundError("player", strconv.Itoa(o.PlayerNum))
	}
	if o.Year == 0 {
		o.Year = w.Year
	}

	if err := h.stagers.For(cmd.GameID, w.Year).Submit(ctx, o); err != nil {
		return nil, err
	}
	rejections := orders.Validate(w, o)
	if err := h.orders.Save(ctx, cmd.GameID, o); err != nil {
		return nil, fmt.Errorf("failed to save orders: %w", err)
	}

	submitted, err := h.orders.SubmittedPlayers(ctx, cmd.GameID, w.Year)
	if err != nil {
		return nil, fmt.Errorf("failed to list submitted players: %w", err)
	}
	return &SubmitOrdersResponse{
		Year:         w.Year,
		Rejections:   rejections,
		AllSubmitted: AllHumansSubmitted(w, submitted),
	}, nil
}

// AllHumansSubmitted reports whether every non-computer player is in the
// submitted list.
func AllHumansSubmitted(w *game.World, submitted []int) bool {
	in := make(map[int]bool, len(submitted))
	for _, num := range submitted {
		in[num] = true
	}
	for _, p := range w.Players {
		if !p.AIControlled && !in[p.Num] {
			return false
		}
	}
	return true
}
