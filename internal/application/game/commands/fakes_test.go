package commands_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/andrescamacho/stars-go/internal/application/orders"
	"github.com/andrescamacho/stars-go/internal/domain/game"
	"github.com/andrescamacho/stars-go/internal/domain/shared"
)

type memoryGames struct {
	mu      sync.Mutex
	worlds  map[string]*game.World
	states  []game.GameState
	saved   int
	records []*game.BattleRecord
}

func newMemoryGames() *memoryGames {
	return &memoryGames{worlds: make(map[string]*game.World)}
}

func (m *memoryGames) Create(_ context.Context, w *game.World) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.worlds[w.GameID]; ok {
		return errors.New("game exists")
	}
	m.worlds[w.GameID] = w
	return nil
}

func (m *memoryGames) SaveTurn(_ context.Context, w *game.World, records []*game.BattleRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.worlds[w.GameID] = w
	m.saved++
	m.records = append(m.records, records...)
	return nil
}

func (m *memoryGames) LoadLatest(_ context.Context, gameID string) (*game.World, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.worlds[gameID]
	if !ok {
		return nil, shared.NewNotFoundError("game", gameID)
	}
	return w, nil
}

func (m *memoryGames) ListInProgress(context.Context) ([]game.GameSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []game.GameSummary
	for _, w := range m.worlds {
		if w.State == game.GameStateFinished {
			continue
		}
		out = append(out, game.GameSummary{GameID: w.GameID, Name: w.Name, Year: w.Year, State: w.State, Players: len(w.Players), UpdatedAt: time.Time{}})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GameID < out[j].GameID })
	return out, nil
}

func (m *memoryGames) SetState(_ context.Context, gameID string, state game.GameState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.worlds[gameID]
	if !ok {
		return shared.NewNotFoundError("game", gameID)
	}
	w.State = state
	m.states = append(m.states, state)
	return nil
}

type memoryOrders struct {
	mu     sync.Mutex
	byYear map[int]map[int]*orders.Orders
}

func newMemoryOrders() *memoryOrders {
	return &memoryOrders{byYear: make(map[int]map[int]*orders.Orders)}
}

func (m *memoryOrders) Save(_ context.Context, _ string, o *orders.Orders) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.byYear[o.Year] == nil {
		m.byYear[o.Year] = make(map[int]*orders.Orders)
	}
	m.byYear[o.Year][o.PlayerNum] = o
	return nil
}

func (m *memoryOrders) ListForYear(_ context.Context, _ string, year int) (map[int]*orders.Orders, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[int]*orders.Orders)
	for num, o := range m.byYear[year] {
		out[num] = o
	}
	return out, nil
}

func (m *memoryOrders) SubmittedPlayers(ctx context.Context, gameID string, year int) ([]int, error) {
	byPlayer, _ := m.ListForYear(ctx, gameID, year)
	return orders.PlayerNums(byPlayer), nil
}

type countingLocker struct {
	mu       sync.Mutex
	held     bool
	acquired int
	released int
}

func (l *countingLocker) Acquire(string) (func() error, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held {
		return nil, errors.New("already held")
	}
	l.held = true
	l.acquired++
	return func() error {
		l.mu.Lock()
		defer l.mu.Unlock()
		l.held = false
		l.released++
		return nil
	}, nil
}
