package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/andrescamacho/stars-go/internal/adapters/metrics"
	"github.com/andrescamacho/stars-go/internal/adapters/persistence"
	"github.com/andrescamacho/stars-go/internal/adapters/snapshot"
	"github.com/andrescamacho/stars-go/internal/application/ai"
	"github.com/andrescamacho/stars-go/internal/application/common"
	"github.com/andrescamacho/stars-go/internal/application/mediator"
	"github.com/andrescamacho/stars-go/internal/application/orders"
	"github.com/andrescamacho/stars-go/internal/application/setup"
	"github.com/andrescamacho/stars-go/internal/application/turn"
	"github.com/andrescamacho/stars-go/internal/application/universe"
	"github.com/andrescamacho/stars-go/internal/domain/rules"
	"github.com/andrescamacho/stars-go/internal/domain/shared"
	"github.com/andrescamacho/stars-go/internal/infrastructure/config"
	"github.com/andrescamacho/stars-go/internal/infrastructure/database"
	"github.com/andrescamacho/stars-go/internal/infrastructure/logging"
	"github.com/andrescamacho/stars-go/internal/infrastructure/pidfile"
)

// app is the wired process: config, logger, database and the mediator
// with every game handler registered.
type app struct {
	cfg      *config.Config
	logger   zerolog.Logger
	db       *gorm.DB
	mediator mediator.Mediator
	games    *persistence.GormGameRepository
	orders   *persistence.GormOrderRepository
	rules    *rules.Rules
	techs    *rules.TechCatalog
	closers  []io.Closer
}

func newApp() (a *app, err error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	logger, logCloser, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, err
	}
	built := &app{cfg: cfg, logger: logger, closers: []io.Closer{logCloser}}
	defer func() {
		if err != nil {
			built.Close()
		}
	}()
	a = built

	a.rules = rules.Default()
	if cfg.Game.RulesPath != "" {
		if a.rules, err = rules.LoadRules(cfg.Game.RulesPath); err != nil {
			return nil, err
		}
	}
	a.techs = rules.DefaultTechCatalog()
	if cfg.Game.TechsPath != "" {
		if a.techs, err = rules.LoadTechCatalog(cfg.Game.TechsPath); err != nil {
			return nil, err
		}
	}

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	a.db = db

	codec, err := snapshot.NewCodec(snapshot.Compression(cfg.Game.SnapshotCompression))
	if err != nil {
		return nil, err
	}
	clock := shared.RealClock{}
	a.games = persistence.NewGormGameRepository(db, codec, clock)
	a.orders = persistence.NewGormOrderRepository(db, clock)
	battles := persistence.NewGormBattleRecordRepository(db)

	locks, err := pidfile.NewLocks(cfg.Game.LockDir)
	if err != nil {
		return nil, err
	}

	turnOpts := []turn.Option{
		turn.WithAI(ai.NewRegistry()),
		turn.WithWorkers(cfg.Game.Workers),
	}
	var commandMetrics *metrics.CommandMetricsCollector
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		turnMetrics := metrics.NewTurnMetricsCollector()
		commandMetrics = metrics.NewCommandMetricsCollector()
		if err := turnMetrics.Register(); err != nil {
			return nil, fmt.Errorf("failed to register turn metrics: %w", err)
		}
		if err := commandMetrics.Register(); err != nil {
			return nil, fmt.Errorf("failed to register command metrics: %w", err)
		}
		turnOpts = append(turnOpts, turn.WithObserver(turnMetrics))
	}

	registry := setup.NewHandlerRegistry(
		a.games,
		battles,
		a.orders,
		orders.NewStagers(cfg.Orders.SubmitRate, cfg.Orders.SubmitBurst),
		universe.NewGenerator(),
		turn.NewGenerator(turnOpts...),
		locks,
		clock,
	)
	m := mediator.NewMediator()
	m.Use(mediator.LoggingMiddleware(), metrics.PrometheusMiddleware(commandMetrics), mediator.ValidationMiddleware())
	if err := registry.RegisterGameHandlers(m); err != nil {
		return nil, fmt.Errorf("failed to register handlers: %w", err)
	}
	a.mediator = m
	return a, nil
}

// context carries the app logger for handlers.
func (a *app) context(parent context.Context) context.Context {
	return common.WithLogger(parent, a.logger)
}

func (a *app) Close() {
	if a.db != nil {
		_ = database.Close(a.db)
	}
	for _, c := range a.closers {
		_ = c.Close()
	}
}

// withApp wires the app for one command run and tears it down after.
func withApp(ctx context.Context, run func(ctx context.Context, a *app) error) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()
	return run(a.context(ctx), a)
}
