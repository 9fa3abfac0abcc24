package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/andrescamacho/stars-go/internal/adapters/metrics"
	"github.com/andrescamacho/stars-go/internal/application/common"
	"github.com/andrescamacho/stars-go/internal/application/game/services"
	"github.com/andrescamacho/stars-go/internal/domain/shared"
	"github.com/andrescamacho/stars-go/internal/infrastructure/pidfile"
)

// NewHostCommand creates the host command
func NewHostCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "host",
		Short: "Run the turn host",
		Long: `Run the host process in the foreground.

The host polls every game in progress and generates a turn once every human
player has submitted orders, or once the configured turn deadline passes.
Only one host runs per PID file. Metrics are served when enabled.

Example:
  stars host
  STARS_HOST_TURN_DEADLINE=24h stars host`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return withApp(ctx, func(ctx context.Context, a *app) error {
				logger := common.LoggerFromContext(ctx)

				pid := pidfile.New(a.cfg.Host.PIDFile)
				if err := pid.Acquire(); err != nil {
					return fmt.Errorf("host already running: %w", err)
				}
				defer pid.Release()

				host := services.NewHost(a.mediator, a.games, a.orders, shared.RealClock{}, services.HostSettings{
					PollInterval:   a.cfg.Host.PollInterval,
					Deadline:       a.cfg.Host.TurnDeadline,
					AlwaysGenerate: a.cfg.Host.AlwaysGenerate,
				})

				logger.Info().
					Str("pid_file", pid.Path()).
					Dur("poll_interval", a.cfg.Host.PollInterval).
					Dur("turn_deadline", a.cfg.Host.TurnDeadline).
					Msg("host started")

				g, ctx := errgroup.WithContext(ctx)
				if a.cfg.Metrics.Enabled {
					g.Go(func() error {
						return metrics.Serve(ctx, a.cfg.Metrics.Host, a.cfg.Metrics.Port, a.cfg.Metrics.Path)
					})
				}
				g.Go(func() error {
					host.Run(ctx)
					return nil
				})
				err := g.Wait()
				logger.Info().Msg("host stopped")
				return err
			})
		},
	}
}
