package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/stars-go/internal/application/common"
	"github.com/andrescamacho/stars-go/internal/application/mediator"
	"github.com/andrescamacho/stars-go/internal/application/orders"
	"github.com/andrescamacho/stars-go/internal/application/turn"
	"github.com/andrescamacho/stars-go/internal/domain/game"
	"github.com/andrescamacho/stars-go/internal/domain/shared"
)

// GenerateTurnCommand advances a game one year.
type GenerateTurnCommand struct {
	GameID string `validate:"required"`
}

type GenerateTurnResponse struct {
	Year    int
	Digest  string
	Battles int
	Victors []int
}

// GenerateTurnHandler runs a turn under the game's lock and persists the
// result only when every phase succeeded.
type GenerateTurnHandler struct {
	games     game.GameRepository
	orders    orders.Repository
	stagers   *orders.Stagers
	generator *turn.Generator
	locker    TurnLocker
}

func NewGenerateTurnHandler(
	games game.GameRepository,
	repo orders.Repository,
	stagers *orders.Stagers,
	generator *turn.Generator,
	locker TurnLocker,
) *GenerateTurnHandler {
	return &GenerateTurnHandler{
		games:     games,
		orders:    repo,
		stagers:   stagers,
		generator: generator,
		locker:    locker,
	}
}

func (h *GenerateTurnHandler) Handle(ctx context.Context, request mediator.Request) (response mediator.Response, err error) {
	cmd, ok := request.(*GenerateTurnCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GenerateTurnCommand")
	}

	release, err := h.locker.Acquire(cmd.GameID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock game %s: %w", cmd.GameID, err)
	}
	defer func() {
		if releaseErr := release(); releaseErr != nil && err == nil {
			err = fmt.Errorf("failed to release game lock: %w", releaseErr)
		}
	}()

	w, err := h.games.LoadLatest(ctx, cmd.GameID)
	if err != nil {
		return nil, fmt.Errorf("failed to load game: %w", err)
	}
	if w.State == game.GameStateFinished {
		return nil, shared.NewDomainError(fmt.Sprintf("game %s is finished", cmd.GameID))
	}
	year := w.Year

	stager := h.stagers.For(cmd.GameID, year)
	stager.Lock()
	staged := stager.Drain()
	byPlayer, err := h.orders.ListForYear(ctx, cmd.GameID, year)
	if err != nil {
		stager.Unlock(year)
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}
	for num, o := range staged {
		byPlayer[num] = o
	}

	if err := h.games.SetState(ctx, cmd.GameID, game.GameStateGeneratingTurn); err != nil {
		stager.Unlock(year)
		return nil, fmt.Errorf("failed to mark game generating: %w", err)
	}

	result, err := h.generator.Generate(ctx, w, byPlayer)
	if err != nil {
		h.reopen(ctx, stager, cmd.GameID, year)
		return nil, fmt.Errorf("turn %d failed: %w", year, err)
	}

	if err := h.games.SaveTurn(ctx, result.World, result.BattleRecords); err != nil {
		h.reopen(ctx, stager, cmd.GameID, year)
		return nil, fmt.Errorf("failed to save turn: %w", err)
	}
	stager.Unlock(result.World.Year)

	return &GenerateTurnResponse{
		Year:    result.World.Year,
		Digest:  result.Digest,
		Battles: len(result.BattleRecords),
		Victors: result.Victors,
	}, nil
}

// reopen puts a game whose turn failed back to waiting on year. The state
// write outlives a cancelled ctx.
func (h *GenerateTurnHandler) reopen(ctx context.Context, stager *orders.Stager, gameID string, year int) {
	stager.Unlock(year)
	if err := h.games.SetState(context.WithoutCancel(ctx), gameID, game.GameStateWaitingForPlayers); err != nil {
		logger := common.LoggerFromContext(ctx)
		logger.Error().Err(err).Str("game_id", gameID).Msg("failed to reopen game")
	}
}
