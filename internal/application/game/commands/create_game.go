package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/stars-go/internal/application/common"
	"github.com/andrescamacho/stars-go/internal/application/mediator"
	"github.com/andrescamacho/stars-go/internal/application/universe"
	"github.com/andrescamacho/stars-go/internal/domain/game"
	"github.com/andrescamacho/stars-go/internal/domain/rules"
	"github.com/andrescamacho/stars-go/internal/domain/shared"
	"github.com/andrescamacho/stars-go/pkg/utils"
)

// CreateGameCommand generates a universe and stores it as year one.
type CreateGameCommand struct {
	Name           string                 `validate:"required,max=64"`
	Players        []universe.PlayerSetup `validate:"min=1,max=16,dive"`
	Size           universe.Size          `validate:"min=0,max=4"`
	Density        universe.Density       `validate:"min=0,max=3"`
	Seed           int64                  // 0 seeds from the clock
	WormholePairs  int                    `validate:"min=-1"`
	MysteryTraders int                    `validate:"min=0"`
	Rules          *rules.Rules
	Techs          *rules.TechCatalog
}

type CreateGameResponse struct {
	World *game.World
}

// CreateGameHandler handles the CreateGame command
type CreateGameHandler struct {
	games     game.GameRepository
	generator *universe.Generator
	clock     shared.Clock
}

func NewCreateGameHandler(games game.GameRepository, generator *universe.Generator, clock shared.Clock) *CreateGameHandler {
	if clock == nil {
		clock = shared.RealClock{}
	}
	return &CreateGameHandler{games: games, generator: generator, clock: clock}
}

func (h *CreateGameHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*CreateGameCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *CreateGameCommand")
	}

	rs := cmd.Rules
	if rs == nil {
		rs = rules.Default()
	}
	copied := *rs
	copied.Seed = cmd.Seed
	if copied.Seed == 0 {
		copied.Seed = h.clock.Now().UnixNano()
	}

	w, err := h.generator.Generate(ctx, universe.Settings{
		GameID:         utils.GenerateGameID(cmd.Name),
		Name:           cmd.Name,
		Size:           cmd.Size,
		Density:        cmd.Density,
		Players:        cmd.Players,
		WormholePairs:  cmd.WormholePairs,
		MysteryTraders: cmd.MysteryTraders,
		Rules:          &copied,
		Techs:          cmd.Techs,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate universe: %w", err)
	}

	if err := h.games.Create(ctx, w); err != nil {
		return nil, fmt.Errorf("failed to save game: %w", err)
	}
	logger := common.LoggerFromContext(ctx)
	logger.Info().
		Str("game_id", w.GameID).
		Int64("seed", copied.Seed).
		Msg("game created")

	return &CreateGameResponse{World: w}, nil
}
