package commands

// TurnLocker serialises turn generation per game across processes.
type TurnLocker interface {
	// Acquire takes the game's lock or fails if another process holds it.
	Acquire(gameID string) (release func() error, err error)
}
