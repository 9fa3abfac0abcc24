// Package ai produces orders for computer-controlled players.
package ai

import (
	"sort"
	"sync"

	"github.com/andrescamacho/stars-go/internal/application/orders"
	"github.com/andrescamacho/stars-go/internal/domain/game"
	"github.com/andrescamacho/stars-go/internal/domain/rules"
)

// DefaultProcessor runs players that name no processor.
const DefaultProcessor = "housekeeper"

// Processor decides one player's orders from what that player can see. It
// must not modify the view.
type Processor func(view PlayerView, rs *rules.Rules) orders.Orders

// Registry maps processor names to processors.
type Registry struct {
	mu         sync.RWMutex
	processors map[string]Processor
}

// NewRegistry returns a registry holding the built-in processors.
func NewRegistry() *Registry {
	r := &Registry{processors: make(map[string]Processor)}
	r.Register(DefaultProcessor, Housekeeper)
	return r
}

func (r *Registry) Register(name string, p Processor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.processors[name] = p
}

func (r *Registry) Get(name string) (Processor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.processors[name]
	return p, ok
}

// Names lists registered processors alphabetically.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.processors))
	for name := range r.processors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// OrdersFor runs the processor of every computer player. Players whose
// processor is not registered get no orders.
func (r *Registry) OrdersFor(w *game.World) map[int]*orders.Orders {
	out := make(map[int]*orders.Orders)
	for _, player := range w.Players {
		if !player.AIControlled {
			continue
		}
		name := player.AIProcessor
		if name == "" {
			name = DefaultProcessor
		}
		process, ok := r.Get(name)
		if !ok {
			continue
		}
		o := process(NewPlayerView(w, player), w.Rules)
		o.PlayerNum = player.Num
		o.Year = w.Year
		out[player.Num] = &o
	}
	return out
}
