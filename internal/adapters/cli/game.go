package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/stars-go/internal/application/ai"
	"github.com/andrescamacho/stars-go/internal/application/game/commands"
	"github.com/andrescamacho/stars-go/internal/application/game/queries"
	"github.com/andrescamacho/stars-go/internal/application/universe"
)

// NewGameCommand creates the game command with subcommands
func NewGameCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Create and list games",
		Long: `Create new games and list the games in progress.

Examples:
  stars game create --name "Andromeda" --players Alice,Bob
  stars game create --name "Solo" --players Alice --ai Hal,Deep --size medium --seed 42
  stars game list`,
	}

	cmd.AddCommand(newGameCreateCommand())
	cmd.AddCommand(newGameListCommand())

	return cmd
}

func newGameCreateCommand() *cobra.Command {
	var (
		name           string
		humans         string
		computers      string
		size           string
		density        string
		seed           int64
		wormholePairs  int
		mysteryTraders int
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Generate a universe and start a game",
		Long: `Generate a new universe for the given players and store it as year one.

Human players are listed with --players, computer players with --ai. A zero
seed is taken from the clock; pass an explicit seed to reproduce a universe.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sz, err := universe.ParseSize(size)
			if err != nil {
				return err
			}
			dn, err := universe.ParseDensity(density)
			if err != nil {
				return err
			}
			var seats []universe.PlayerSetup
			for _, n := range splitList(humans) {
				seats = append(seats, universe.PlayerSetup{Name: n})
			}
			for _, n := range splitList(computers) {
				seats = append(seats, universe.PlayerSetup{Name: n, AIControlled: true, AIProcessor: ai.DefaultProcessor})
			}
			if len(seats) == 0 {
				return fmt.Errorf("at least one player is required")
			}

			return withApp(cmd.Context(), func(ctx context.Context, a *app) error {
				resp, err := a.mediator.Send(ctx, &commands.CreateGameCommand{
					Name:           name,
					Players:        seats,
					Size:           sz,
					Density:        dn,
					Seed:           seed,
					WormholePairs:  wormholePairs,
					MysteryTraders: mysteryTraders,
					Rules:          a.rules,
					Techs:          a.techs,
				})
				if err != nil {
					return fmt.Errorf("failed to create game: %w", err)
				}
				created := resp.(*commands.CreateGameResponse)
				w := created.World
				if jsonOutput {
					return printJSON(map[string]interface{}{
						"gameId":  w.GameID,
						"year":    w.Year,
						"seed":    w.Rules.Seed,
						"planets": len(w.Planets),
						"players": len(w.Players),
					})
				}

				fmt.Printf("✓ Game created: %s\n", w.GameID)
				fmt.Printf("  Name:    %s\n", w.Name)
				fmt.Printf("  Year:    %d\n", w.Year)
				fmt.Printf("  Seed:    %d\n", w.Rules.Seed)
				fmt.Printf("  Planets: %d\n", len(w.Planets))
				fmt.Println("  Players:")
				for _, p := range w.Players {
					kind := "human"
					if p.AIControlled {
						kind = "ai"
					}
					fmt.Printf("    %d. %s (%s)\n", p.Num, p.Name, kind)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Game name (required)")
	cmd.Flags().StringVar(&humans, "players", "", "Comma separated human player names")
	cmd.Flags().StringVar(&computers, "ai", "", "Comma separated computer player names")
	cmd.Flags().StringVar(&size, "size", universe.SizeSmall.String(), "Universe size (tiny, small, medium, large, huge)")
	cmd.Flags().StringVar(&density, "density", universe.DensityNormal.String(), "Planet density (sparse, normal, dense, packed)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed (0 uses the clock)")
	cmd.Flags().IntVar(&wormholePairs, "wormholes", -1, "Wormhole pairs (-1 picks from the size)")
	cmd.Flags().IntVar(&mysteryTraders, "mystery-traders", 0, "Mystery traders roaming the universe")
	cmd.MarkFlagRequired("name")

	return cmd
}

func newGameListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List games in progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(ctx context.Context, a *app) error {
				resp, err := a.mediator.Send(ctx, &queries.ListGamesQuery{})
				if err != nil {
					return fmt.Errorf("failed to list games: %w", err)
				}
				games := resp.(*queries.ListGamesResponse).Games
				if jsonOutput {
					return printJSON(games)
				}
				if len(games) == 0 {
					fmt.Println("No games in progress")
					return nil
				}

				w := newTable()
				fmt.Fprintln(w, "ID\tNAME\tYEAR\tSTATE\tPLAYERS\tUPDATED")
				for _, g := range games {
					fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%d\t%s\n",
						g.GameID, g.Name, g.Year, g.State, g.Players, g.UpdatedAt.Format("2006-01-02 15:04"))
				}
				return w.Flush()
			})
		},
	}
}
