package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/stars-go/internal/application/turn"
	"github.com/andrescamacho/stars-go/internal/domain/game"
)

// TurnMetricsCollector observes the turn generator.
type TurnMetricsCollector struct {
	turnDuration  prometheus.Histogram
	phaseDuration *prometheus.HistogramVec
	turnsTotal    *prometheus.CounterVec
	battlesTotal  prometheus.Counter
	messagesTotal *prometheus.CounterVec
	gameYear      *prometheus.GaugeVec
}

var _ turn.Observer = (*TurnMetricsCollector)(nil)

// NewTurnMetricsCollector creates a new turn metrics collector
func NewTurnMetricsCollector() *TurnMetricsCollector {
	return &TurnMetricsCollector{
		turnDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "turn_generation_duration_seconds",
			Help:      "Wall time to generate one turn",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 14),
		}),
		phaseDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "turn_phase_duration_seconds",
			Help:      "Wall time spent in each turn phase",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"phase"}),
		turnsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "turns_total",
			Help:      "Turns generated by outcome",
		}, []string{"status"}),
		battlesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "battles_total",
			Help:      "Battles fought across all games",
		}),
		messagesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_total",
			Help:      "Player messages produced by type",
		}, []string{"type"}),
		gameYear: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "game_year",
			Help:      "Current year of each hosted game",
		}, []string{"game_id"}),
	}
}

// Register registers all turn metrics with the Prometheus registry
func (c *TurnMetricsCollector) Register() error {
	return register(c.turnDuration, c.phaseDuration, c.turnsTotal, c.battlesTotal, c.messagesTotal, c.gameYear)
}

func (c *TurnMetricsCollector) PhaseCompleted(phase string, _ *game.World, elapsed time.Duration) {
	c.phaseDuration.WithLabelValues(phase).Observe(elapsed.Seconds())
}

func (c *TurnMetricsCollector) TurnCompleted(result *turn.Result, elapsed time.Duration) {
	c.turnDuration.Observe(elapsed.Seconds())
	c.turnsTotal.WithLabelValues("success").Inc()
	c.battlesTotal.Add(float64(len(result.BattleRecords)))
	for _, messages := range result.Messages {
		for _, m := range messages {
			c.messagesTotal.WithLabelValues(m.Type.String()).Inc()
		}
	}
	c.gameYear.WithLabelValues(result.World.GameID).Set(float64(result.World.Year))
}

func (c *TurnMetricsCollector) TurnFailed(string, error) {
	c.turnsTotal.WithLabelValues("error").Inc()
}
