package metrics_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/stars-go/internal/adapters/metrics"
	"github.com/andrescamacho/stars-go/internal/application/mediator"
	"github.com/andrescamacho/stars-go/internal/application/turn"
	"github.com/andrescamacho/stars-go/internal/domain/game/gametest"
	"github.com/andrescamacho/stars-go/internal/domain/shared"
)

func TestTurnMetricsCollector_ObservesTurns(t *testing.T) {
	// Arrange
	metrics.InitRegistry()
	collector := metrics.NewTurnMetricsCollector()
	require.NoError(t, collector.Register())
	b := gametest.NewWorld()
	alice := b.AddPlayer("Alice")
	b.AddColony(alice, "Home", 0, 0, 25000)
	w := b.Build()

	// Act
	_, err := turn.NewGenerator(turn.WithObserver(collector)).Generate(context.Background(), w, nil)
	require.NoError(t, err)
	collector.TurnFailed(w.GameID, errors.New("boom"))

	// Assert
	families, err := metrics.GetRegistry().Gather()
	require.NoError(t, err)
	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["stars_turn_generation_duration_seconds"])
	assert.True(t, names["stars_turn_phase_duration_seconds"])
	assert.True(t, names["stars_turns_total"])
	assert.True(t, names["stars_game_year"])
	count, err := testutil.GatherAndCount(metrics.GetRegistry(), "stars_turns_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestPrometheusMiddleware_RecordsCommands(t *testing.T) {
	// Arrange
	metrics.InitRegistry()
	collector := metrics.NewCommandMetricsCollector()
	require.NoError(t, collector.Register())
	middleware := metrics.PrometheusMiddleware(collector)
	ok := func(context.Context, mediator.Request) (mediator.Response, error) { return "done", nil }

	// Act
	resp, err := middleware(context.Background(), &struct{ Name string }{Name: "x"}, ok)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "done", resp)
	count, err := testutil.GatherAndCount(metrics.GetRegistry(), "stars_host_commands_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestPrometheusMiddleware_LabelsOutcomes(t *testing.T) {
	// Arrange
	metrics.InitRegistry()
	collector := metrics.NewCommandMetricsCollector()
	require.NoError(t, collector.Register())
	middleware := metrics.PrometheusMiddleware(collector)
	failWith := func(err error) mediator.HandlerFunc {
		return func(context.Context, mediator.Request) (mediator.Response, error) { return nil, err }
	}

	// Act
	_, _ = middleware(context.Background(), &struct{}{}, failWith(shared.NewGameLockedError("g")))
	_, _ = middleware(context.Background(), &struct{}{}, failWith(fmt.Errorf("wrapped: %w", shared.NewNotFoundError("game", "g"))))
	_, _ = middleware(context.Background(), &struct{}{}, failWith(errors.New("boom")))

	// Assert
	expected := `
# HELP stars_host_commands_total Commands and queries handled by outcome
# TYPE stars_host_commands_total counter
stars_host_commands_total{command="struct {}",status="error"} 1
stars_host_commands_total{command="struct {}",status="locked"} 1
stars_host_commands_total{command="struct {}",status="not_found"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(metrics.GetRegistry(), strings.NewReader(expected), "stars_host_commands_total"))
}

func TestServe_RequiresRegistry(t *testing.T) {
	// Arrange
	metrics.Registry = nil
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	// Act
	err := metrics.Serve(ctx, "localhost", 0, "/metrics")

	// Assert
	require.Error(t, err)
}
