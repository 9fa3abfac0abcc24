// Package turn advances a world by one year.
//
// A turn runs a fixed list of phases, each over the whole world, before the
// next begins. Phases share one seeded random stream so the same world and
// orders always produce the same result.
package turn

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/andrescamacho/stars-go/internal/application/common"
	"github.com/andrescamacho/stars-go/internal/application/intel"
	"github.com/andrescamacho/stars-go/internal/application/orders"
	"github.com/andrescamacho/stars-go/internal/domain/combat"
	"github.com/andrescamacho/stars-go/internal/domain/game"
	"github.com/andrescamacho/stars-go/internal/domain/rules"
	"github.com/andrescamacho/stars-go/internal/domain/shared"
)

// Observer is told about every finished phase and turn.
type Observer interface {
	PhaseCompleted(phase string, w *game.World, elapsed time.Duration)
	TurnCompleted(result *Result, elapsed time.Duration)
	TurnFailed(gameID string, err error)
}

// OrderSource produces orders for computer players.
type OrderSource interface {
	OrdersFor(w *game.World) map[int]*orders.Orders
}

// Result is everything a generated turn hands back to its caller.
type Result struct {
	World         *game.World
	BattleRecords []*game.BattleRecord
	Messages      map[int][]game.Message
	Scores        map[int]game.PlayerScore
	Victors       []int
	Digest        string
}

// Outcome is the value delivered by GenerateAsync.
type Outcome struct {
	Result *Result
	Err    error
}

// Generator runs turns. It holds no per-turn state and is safe to share
// across games.
type Generator struct {
	observers  []Observer
	ai         OrderSource
	discoverer *intel.Discoverer
	workers    int
}

// Option configures a Generator.
type Option func(*Generator)

func WithObserver(o Observer) Option {
	return func(g *Generator) { g.observers = append(g.observers, o) }
}

func WithAI(source OrderSource) Option {
	return func(g *Generator) { g.ai = source }
}

// WithWorkers bounds the goroutines used inside parallel phases.
func WithWorkers(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.workers = n
		}
	}
}

func NewGenerator(opts ...Option) *Generator {
	g := &Generator{discoverer: intel.NewDiscoverer(), workers: 4}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate applies orders and advances the world one year in place. On error
// the world is left part-way through the turn and must be discarded; the
// caller's last persisted snapshot stays authoritative.
func (g *Generator) Generate(ctx context.Context, w *game.World, byPlayer map[int]*orders.Orders) (result *Result, err error) {
	start := time.Now()
	log := common.LoggerFromContext(ctx).With().Str("game_id", w.GameID).Int("year", w.Year).Logger()
	defer func() {
		if err != nil {
			log.Error().Err(err).Msg("turn generation failed")
			for _, o := range g.observers {
				o.TurnFailed(w.GameID, err)
			}
		}
	}()

	if w.State == game.GameStateFinished {
		return nil, shared.NewDomainError(fmt.Sprintf("game %s is finished", w.GameID))
	}
	if err := w.Validate(); err != nil {
		return nil, fmt.Errorf("world is not valid: %w", err)
	}
	if w.Techs == nil {
		return nil, shared.NewInvalidWorldError("tech catalog missing")
	}
	w.State = game.GameStateGeneratingTurn
	for _, err := range w.Link() {
		log.Warn().Err(err).Msg("skipping missing reference")
	}
	for _, p := range w.Players {
		for _, err := range p.ComputeDesignSpecs(w.Rules, w.Techs) {
			log.Warn().Err(err).Int("player_num", p.Num).Msg("design spec could not be computed")
		}
	}

	t := &turn{
		world:      w,
		rules:      w.Rules,
		techs:      w.Techs,
		random:     shared.NewRandom(w.Rules.Seed, w.Year),
		log:        log,
		workers:    g.workers,
		discoverer: g.discoverer,
		research:   make(map[int]int),
		arrived:    make(map[*game.Fleet]bool),
		moved:      make(map[*game.Fleet]bool),
	}
	t.startTurn(g.mergeOrders(w, byPlayer))

	for _, p := range phases {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("turn cancelled before %s: %w", p.name, err)
		}
		phaseStart := time.Now()
		if err := t.run(ctx, p); err != nil {
			return nil, err
		}
		elapsed := time.Since(phaseStart)
		log.Debug().Str("phase", p.name).Dur("elapsed", elapsed).Msg("phase completed")
		for _, o := range g.observers {
			o.PhaseCompleted(p.name, w, elapsed)
		}
	}

	result, err = t.finish()
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(start)
	log.Info().
		Int("battles", len(result.BattleRecords)).
		Str("digest", result.Digest).
		Dur("elapsed", elapsed).
		Msg("turn generated")
	for _, o := range g.observers {
		o.TurnCompleted(result, elapsed)
	}
	return result, nil
}

// GenerateAsync runs Generate on its own goroutine.
func (g *Generator) GenerateAsync(ctx context.Context, w *game.World, byPlayer map[int]*orders.Orders) <-chan Outcome {
	out := make(chan Outcome, 1)
	go func() {
		defer close(out)
		result, err := g.Generate(ctx, w, byPlayer)
		out <- Outcome{Result: result, Err: err}
	}()
	return out
}

// mergeOrders adds computer players' orders. Submitted orders win.
func (g *Generator) mergeOrders(w *game.World, byPlayer map[int]*orders.Orders) map[int]*orders.Orders {
	merged := make(map[int]*orders.Orders, len(w.Players))
	for num, o := range byPlayer {
		merged[num] = o
	}
	if g.ai == nil {
		return merged
	}
	for num, o := range g.ai.OrdersFor(w) {
		if _, ok := merged[num]; !ok {
			merged[num] = o
		}
	}
	return merged
}

// turn is the state of one generation run.
type turn struct {
	world      *game.World
	rules      *rules.Rules
	techs      *rules.TechCatalog
	random     *shared.Random
	log        zerolog.Logger
	workers    int
	discoverer *intel.Discoverer

	research  map[int]int // research resources produced this year, by player
	arrived   map[*game.Fleet]bool
	moved     map[*game.Fleet]bool
	invasions []invasion
}

// run executes one phase, turning a panic into a turn-fatal error.
func (t *turn) run(ctx context.Context, p phase) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("phase %s panicked: %v", p.name, r)
		}
	}()
	if err := p.run(ctx, t); err != nil {
		return fmt.Errorf("phase %s: %w", p.name, err)
	}
	t.world.RemoveDeleted()
	return nil
}

// startTurn clears last year's reports, applies orders and moves the
// calendar on.
func (t *turn) startTurn(byPlayer map[int]*orders.Orders) {
	w := t.world
	w.BattleRecords = nil
	for _, p := range w.Players {
		p.Messages = nil
		p.ResearchSpent = rules.TechLevel{}
	}
	for _, packet := range w.MineralPackets {
		packet.MovedThisYear = false
	}
	rejected := orders.NewApplier(t.random).Apply(w, byPlayer)
	if len(rejected) > 0 {
		t.log.Warn().Int("count", len(rejected)).Msg("orders rejected")
	}
	w.Year++
}

func (t *turn) finish() (*Result, error) {
	w := t.world
	w.State = game.GameStateWaitingForPlayers
	if w.VictorDeclared {
		w.State = game.GameStateFinished
	}
	result := &Result{
		World:         w,
		BattleRecords: w.BattleRecords,
		Messages:      make(map[int][]game.Message, len(w.Players)),
		Scores:        make(map[int]game.PlayerScore, len(w.Players)),
	}
	for _, p := range w.Players {
		p.SubmittedTurn = false
		result.Messages[p.Num] = p.Messages
		result.Scores[p.Num] = p.Score
		if p.Victor {
			result.Victors = append(result.Victors, p.Num)
		}
	}
	digest, err := Digest(w)
	if err != nil {
		return nil, fmt.Errorf("computing digest: %w", err)
	}
	result.Digest = digest
	return result, nil
}

// battleEngine is built per turn so battles draw from the turn's stream.
func (t *turn) battleEngine() *combat.Engine {
	return combat.NewEngine(t.rules, t.techs, t.random)
}
