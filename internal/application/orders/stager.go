package orders

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/time/rate"

	"github.com/andrescamacho/stars-go/internal/domain/shared"
)

// Stager holds the latest orders each player submitted for the current year.
// Submissions are throttled per player and refused while a turn generates.
type Stager struct {
	gameID    string
	validator *Validator
	limit     rate.Limit
	burst     int

	mu       sync.Mutex
	year     int
	locked   bool
	staged   map[int]*Orders
	limiters map[int]*rate.Limiter
}

// NewStager creates a stager for one game. perSecond <= 0 disables throttling.
func NewStager(gameID string, year int, perSecond float64, burst int) *Stager {
	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}
	if burst < 1 {
		burst = 1
	}
	return &Stager{
		gameID:    gameID,
		validator: NewValidator(),
		limit:     limit,
		burst:     burst,
		year:      year,
		staged:    make(map[int]*Orders),
		limiters:  make(map[int]*rate.Limiter),
	}
}

// Submit stages orders, replacing anything the player staged earlier this
// year. It blocks while the player is over their rate.
func (s *Stager) Submit(ctx context.Context, o *Orders) error {
	if err := s.validator.Validate(o); err != nil {
		return err
	}
	if err := s.limiter(o.PlayerNum).Wait(ctx); err != nil {
		return fmt.Errorf("waiting to submit orders: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locked {
		return shared.NewGameLockedError(s.gameID)
	}
	if o.Year != s.year {
		return shared.NewOrderError(o.PlayerNum, "orders", fmt.Sprintf("orders are for %d but the game is in %d", o.Year, s.year))
	}
	s.staged[o.PlayerNum] = o
	return nil
}

func (s *Stager) limiter(playerNum int) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.limiters[playerNum]
	if !ok {
		l = rate.NewLimiter(s.limit, s.burst)
		s.limiters[playerNum] = l
	}
	return l
}

// Lock refuses further submissions until Unlock.
func (s *Stager) Lock() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locked = true
}

// Unlock reopens submissions for the next year.
func (s *Stager) Unlock(year int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locked = false
	s.year = year
}

func (s *Stager) Locked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locked
}

func (s *Stager) Year() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.year
}

// Drain hands over everything staged and starts an empty batch.
func (s *Stager) Drain() map[int]*Orders {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.staged
	s.staged = make(map[int]*Orders)
	return out
}

// Submitted lists the players with staged orders, ascending.
func (s *Stager) Submitted() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return PlayerNums(s.staged)
}

// PlayerNums returns the keys of an orders map in ascending order.
func PlayerNums(byPlayer map[int]*Orders) []int {
	nums := make([]int, 0, len(byPlayer))
	for num := range byPlayer {
		nums = append(nums, num)
	}
	sort.Ints(nums)
	return nums
}

// Stagers keeps one Stager per game, created on first use.
type Stagers struct {
	perSecond float64
	burst     int

	mu     sync.Mutex
	byGame map[string]*Stager
}

func NewStagers(perSecond float64, burst int) *Stagers {
	return &Stagers{perSecond: perSecond, burst: burst, byGame: make(map[string]*Stager)}
}

// For returns the game's stager, moved on to year if it was behind.
func (s *Stagers) For(gameID string, year int) *Stager {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.byGame[gameID]
	if !ok {
		st = NewStager(gameID, year, s.perSecond, s.burst)
		s.byGame[gameID] = st
		return st
	}
	if !st.Locked() && st.Year() < year {
		st.Drain()
		st.Unlock(year)
	}
	return st
}
