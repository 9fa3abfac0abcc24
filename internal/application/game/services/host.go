package services

import (
	"context"
	"time"

	"github.com/andrescamacho/stars-go/internal/application/common"
	"github.com/andrescamacho/stars-go/internal/application/game/commands"
	"github.com/andrescamacho/stars-go/internal/application/mediator"
	"github.com/andrescamacho/stars-go/internal/application/orders"
	"github.com/andrescamacho/stars-go/internal/domain/game"
	"github.com/andrescamacho/stars-go/internal/domain/shared"
)

// HostSettings tune when the host generates.
type HostSettings struct {
	PollInterval time.Duration
	// Deadline generates a waiting year once it is this old; zero waits for
	// everyone.
	Deadline time.Duration
	// AlwaysGenerate skips the submission check entirely.
	AlwaysGenerate bool
}

// Host polls running games and generates a turn once every human player has
// submitted, or once the turn deadline has passed.
type Host struct {
	mediator mediator.Mediator
	games    game.GameRepository
	orders   orders.Repository
	clock    shared.Clock
	settings HostSettings
}

func NewHost(
	m mediator.Mediator,
	games game.GameRepository,
	orderRepo orders.Repository,
	clock shared.Clock,
	settings HostSettings,
) *Host {
	if clock == nil {
		clock = shared.RealClock{}
	}
	if settings.PollInterval <= 0 {
		settings.PollInterval = 10 * time.Second
	}
	return &Host{
		mediator: m,
		games:    games,
		orders:   orderRepo,
		clock:    clock,
		settings: settings,
	}
}

// Run polls until ctx is cancelled.
func (h *Host) Run(ctx context.Context) {
	logger := common.LoggerFromContext(ctx)
	ticker := time.NewTicker(h.settings.PollInterval)
	defer ticker.Stop()

	logger.Info().
		Dur("poll_interval", h.settings.PollInterval).
		Dur("deadline", h.settings.Deadline).
		Bool("always_generate", h.settings.AlwaysGenerate).
		Msg("host started")
	for {
		h.Poll(ctx)
		select {
		case <-ticker.C:
		case <-ctx.Done():
			logger.Info().Msg("host stopped")
			return
		}
	}
}

// Poll makes one pass over the running games and returns how many turns it
// generated.
func (h *Host) Poll(ctx context.Context) int {
	logger := common.LoggerFromContext(ctx)
	summaries, err := h.games.ListInProgress(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to list games")
		return 0
	}

	generated := 0
	for _, s := range summaries {
		if ctx.Err() != nil {
			return generated
		}
		if s.State != game.GameStateWaitingForPlayers {
			continue
		}
		ready, err := h.ready(ctx, s)
		if err != nil {
			logger.Warn().Err(err).Str("game_id", s.GameID).Msg("failed to check game")
			continue
		}
		if !ready {
			continue
		}
		resp, err := h.mediator.Send(common.WithGame(ctx, s.GameID), &commands.GenerateTurnCommand{GameID: s.GameID})
		if err != nil {
			logger.Error().Err(err).Str("game_id", s.GameID).Msg("turn generation failed")
			continue
		}
		out := resp.(*commands.GenerateTurnResponse)
		logger.Info().Str("game_id", s.GameID).Int("year", out.Year).Str("digest", out.Digest).Msg("turn generated")
		generated++
	}
	return generated
}

func (h *Host) ready(ctx context.Context, s game.GameSummary) (bool, error) {
	if h.settings.AlwaysGenerate {
		return true, nil
	}
	if h.settings.Deadline > 0 && h.clock.Now().Sub(s.UpdatedAt) >= h.settings.Deadline {
		return true, nil
	}
	w, err := h.games.LoadLatest(ctx, s.GameID)
	if err != nil {
		return false, err
	}
	submitted, err := h.orders.SubmittedPlayers(ctx, s.GameID, w.Year)
	if err != nil {
		return false, err
	}
	return commands.AllHumansSubmitted(w, submitted), nil
}
