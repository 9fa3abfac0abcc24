package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/stars-go/internal/application/game/commands"
	"github.com/andrescamacho/stars-go/internal/application/game/services"
	"github.com/andrescamacho/stars-go/internal/application/mediator"
	"github.com/andrescamacho/stars-go/internal/application/orders"
	"github.com/andrescamacho/stars-go/internal/domain/game"
	"github.com/andrescamacho/stars-go/internal/domain/shared"
)

type stubGames struct {
	game.GameRepository
	summaries []game.GameSummary
	worlds    map[string]*game.World
}

func (s *stubGames) ListInProgress(context.Context) ([]game.GameSummary, error) {
	return s.summaries, nil
}

func (s *stubGames) LoadLatest(_ context.Context, gameID string) (*game.World, error) {
	return s.worlds[gameID], nil
}

type stubOrders struct {
	orders.Repository
	submitted map[string][]int
}

func (s *stubOrders) SubmittedPlayers(_ context.Context, gameID string, _ int) ([]int, error) {
	return s.submitted[gameID], nil
}

type turnRecorder struct {
	games []string
}

func (r *turnRecorder) Handle(_ context.Context, request mediator.Request) (mediator.Response, error) {
	cmd := request.(*commands.GenerateTurnCommand)
	r.games = append(r.games, cmd.GameID)
	return &commands.GenerateTurnResponse{Year: 2401}, nil
}

func newHost(t *testing.T, games *stubGames, submitted map[string][]int, now time.Time, settings services.HostSettings) (*services.Host, *turnRecorder) {
	t.Helper()
	recorder := &turnRecorder{}
	m := mediator.NewMediator()
	require.NoError(t, mediator.RegisterHandler[*commands.GenerateTurnCommand](m, recorder))
	clock := shared.NewMockClock(now, 0)
	return services.NewHost(m, games, &stubOrders{submitted: submitted}, clock, settings), recorder
}

func twoHumans() *game.World {
	return &game.World{Year: 2400, Players: []*game.Player{{Num: 1}, {Num: 2}}}
}

func TestPoll_GeneratesWhenEveryoneSubmitted(t *testing.T) {
	// Arrange
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	games := &stubGames{
		summaries: []game.GameSummary{
			{GameID: "ready", State: game.GameStateWaitingForPlayers, UpdatedAt: now},
			{GameID: "waiting", State: game.GameStateWaitingForPlayers, UpdatedAt: now},
			{GameID: "busy", State: game.GameStateGeneratingTurn, UpdatedAt: now},
		},
		worlds: map[string]*game.World{"ready": twoHumans(), "waiting": twoHumans(), "busy": twoHumans()},
	}
	host, recorder := newHost(t, games, map[string][]int{"ready": {1, 2}, "waiting": {1}, "busy": {1, 2}}, now, services.HostSettings{})

	// Act
	generated := host.Poll(context.Background())

	// Assert
	assert.Equal(t, 1, generated)
	assert.Equal(t, []string{"ready"}, recorder.games)
}

func TestPoll_GeneratesAfterDeadline(t *testing.T) {
	// Arrange
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	games := &stubGames{
		summaries: []game.GameSummary{
			{GameID: "stale", State: game.GameStateWaitingForPlayers, UpdatedAt: now.Add(-2 * time.Hour)},
			{GameID: "fresh", State: game.GameStateWaitingForPlayers, UpdatedAt: now.Add(-time.Minute)},
		},
		worlds: map[string]*game.World{"stale": twoHumans(), "fresh": twoHumans()},
	}
	host, recorder := newHost(t, games, nil, now, services.HostSettings{Deadline: time.Hour})

	// Act
	generated := host.Poll(context.Background())

	// Assert
	assert.Equal(t, 1, generated)
	assert.Equal(t, []string{"stale"}, recorder.games)
}

func TestRun_StopsWithContext(t *testing.T) {
	// Arrange
	games := &stubGames{}
	host, _ := newHost(t, games, nil, time.Now(), services.HostSettings{PollInterval: time.Millisecond})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	// Act
	go func() {
		host.Run(ctx)
		close(done)
	}()
	cancel()

	// Assert
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("host did not stop")
	}
}

func TestPoll_AlwaysGenerateSkipsSubmissionCheck(t *testing.T) {
	// Arrange
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	games := &stubGames{
		summaries: []game.GameSummary{{GameID: "quiet", State: game.GameStateWaitingForPlayers, UpdatedAt: now}},
		worlds:    map[string]*game.World{"quiet": twoHumans()},
	}
	host, recorder := newHost(t, games, nil, now, services.HostSettings{AlwaysGenerate: true})

	// Act
	generated := host.Poll(context.Background())

	// Assert
	assert.Equal(t, 1, generated)
	assert.Equal(t, []string{"quiet"}, recorder.games)
}
