package common

import (
	"context"

	"github.com/rs/zerolog"
)

type contextKey int

const (
	loggerKey contextKey = iota
)

// WithLogger adds a logger to the context
func WithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// LoggerFromContext extracts the logger from context, or returns a disabled
// logger if none was set
func LoggerFromContext(ctx context.Context) zerolog.Logger {
	if logger, ok := ctx.Value(loggerKey).(zerolog.Logger); ok {
		return logger
	}
	return zerolog.Nop()
}

// WithGame scopes the context logger to one game so every line logged while
// handling it carries the game id.
func WithGame(ctx context.Context, gameID string) context.Context {
	logger := LoggerFromContext(ctx).With().Str("game_id", gameID).Logger()
	return WithLogger(ctx, logger)
}
