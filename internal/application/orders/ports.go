package orders

import "context"

// Repository persists submitted orders so a restarted host can regenerate
// the turn with the same inputs.
type Repository interface {
	// Save stores a player's orders for a year, replacing earlier ones
	Save(ctx context.Context, gameID string, o *Orders) error

	// ListForYear returns every player's orders for a year, keyed by player number
	ListForYear(ctx context.Context, gameID string, year int) (map[int]*Orders, error)

	// SubmittedPlayers lists players with saved orders for a year, ascending
	SubmittedPlayers(ctx context.Context, gameID string, year int) ([]int, error)
}
