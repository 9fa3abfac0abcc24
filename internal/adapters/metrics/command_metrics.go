package metrics

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/stars-go/internal/application/mediator"
	"github.com/andrescamacho/stars-go/internal/domain/shared"
)

// Command outcome labels.
const (
	statusSuccess  = "success"
	statusInvalid  = "invalid"
	statusNotFound = "not_found"
	statusLocked   = "locked"
	statusError    = "error"
)

// CommandMetricsCollector times every command and query sent through the
// mediator.
type CommandMetricsCollector struct {
	commandDuration *prometheus.HistogramVec
	commandsTotal   *prometheus.CounterVec
}

func NewCommandMetricsCollector() *CommandMetricsCollector {
	return &CommandMetricsCollector{
		commandDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "command_duration_seconds",
				Help:      "Command and query handling time",
				Buckets:   []float64{0.005, 0.025, 0.1, 0.5, 1, 2.5, 5, 15, 60},
			},
			[]string{"command", "status"},
		),
		commandsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "commands_total",
				Help:      "Commands and queries handled by outcome",
			},
			[]string{"command", "status"},
		),
	}
}

func (c *CommandMetricsCollector) Register() error {
	return register(c.commandDuration, c.commandsTotal)
}

// RecordCommand counts one handled request under the outcome its error maps to.
func (c *CommandMetricsCollector) RecordCommand(command string, elapsed time.Duration, err error) {
	status := commandStatus(err)
	c.commandDuration.WithLabelValues(command, status).Observe(elapsed.Seconds())
	c.commandsTotal.WithLabelValues(command, status).Inc()
}

func commandStatus(err error) string {
	var (
		validation *shared.ValidationError
		notFound   *shared.NotFoundError
		locked     *shared.GameLockedError
	)
	switch {
	case err == nil:
		return statusSuccess
	case errors.As(err, &validation):
		return statusInvalid
	case errors.As(err, &notFound):
		return statusNotFound
	case errors.As(err, &locked):
		return statusLocked
	default:
		return statusError
	}
}

// PrometheusMiddleware records every request the mediator handles. A nil
// collector turns it into a pass-through.
func PrometheusMiddleware(collector *CommandMetricsCollector) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		if collector == nil {
			return next(ctx, request)
		}
		start := time.Now()
		response, err := next(ctx, request)
		collector.RecordCommand(commandName(request), time.Since(start), err)
		return response, err
	}
}

// commandName turns "*commands.GenerateTurnCommand" into "GenerateTurnCommand".
func commandName(request mediator.Request) string {
	if request == nil {
		return "unknown"
	}
	name := strings.TrimPrefix(reflect.TypeOf(request).String(), "*")
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i+1:]
	}
	return name
}
