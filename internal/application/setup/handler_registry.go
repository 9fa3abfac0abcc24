package setup

import (
	"reflect"

	"github.com/andrescamacho/stars-go/internal/application/game/commands"
	"github.com/andrescamacho/stars-go/internal/application/game/queries"
	"github.com/andrescamacho/stars-go/internal/application/mediator"
	"github.com/andrescamacho/stars-go/internal/application/orders"
	"github.com/andrescamacho/stars-go/internal/application/turn"
	"github.com/andrescamacho/stars-go/internal/application/universe"
	"github.com/andrescamacho/stars-go/internal/domain/game"
	"github.com/andrescamacho/stars-go/internal/domain/shared"
)

// HandlerRegistry holds all application dependencies for handler creation
type HandlerRegistry struct {
	games    game.GameRepository
	battles  game.BattleRecordRepository
	orders   orders.Repository
	stagers  *orders.Stagers
	universe *universe.Generator
	turns    *turn.Generator
	locker   commands.TurnLocker
	clock    shared.Clock
}

// NewHandlerRegistry creates a new handler registry with required dependencies
func NewHandlerRegistry(
	games game.GameRepository,
	battles game.BattleRecordRepository,
	orderRepo orders.Repository,
	stagers *orders.Stagers,
	universeGenerator *universe.Generator,
	turnGenerator *turn.Generator,
	locker commands.TurnLocker,
	clock shared.Clock,
) *HandlerRegistry {
	if clock == nil {
		clock = shared.RealClock{}
	}

	return &HandlerRegistry{
		games:    games,
		battles:  battles,
		orders:   orderRepo,
		stagers:  stagers,
		universe: universeGenerator,
		turns:    turnGenerator,
		locker:   locker,
		clock:    clock,
	}
}

// RegisterGameHandlers registers the game commands and report queries.
func (r *HandlerRegistry) RegisterGameHandlers(m mediator.Mediator) error {
	handlers := map[reflect.Type]mediator.RequestHandler{
		reflect.TypeOf(&commands.CreateGameCommand{}):   commands.NewCreateGameHandler(r.games, r.universe, r.clock),
		reflect.TypeOf(&commands.SubmitOrdersCommand{}): commands.NewSubmitOrdersHandler(r.games, r.orders, r.stagers),
		reflect.TypeOf(&commands.GenerateTurnCommand{}): commands.NewGenerateTurnHandler(r.games, r.orders, r.stagers, r.turns, r.locker),
		reflect.TypeOf(&queries.GetReportQuery{}):       queries.NewGetReportHandler(r.games),
		reflect.TypeOf(&queries.GetBattleQuery{}):       queries.NewGetBattleHandler(r.battles),
		reflect.TypeOf(&queries.ListGamesQuery{}):       queries.NewListGamesHandler(r.games),
	}
	for requestType, handler := range handlers {
		if err := m.Register(requestType, handler); err != nil {
			return err
		}
	}
	return nil
}
