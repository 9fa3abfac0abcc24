package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/stars-go/internal/application/game/commands"
)

// NewTurnCommand creates the turn command with subcommands
func NewTurnCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "turn",
		Short: "Generate turns",
		Long: `Generate the next year of a game from the orders submitted so far.

Computer players get their orders during generation. Players that did not
submit keep their standing orders.

Examples:
  stars turn generate --game <id>`,
	}

	cmd.AddCommand(newTurnGenerateCommand())
	return cmd
}

func newTurnGenerateCommand() *cobra.Command {
	var gameID string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the next turn now",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(ctx context.Context, a *app) error {
				resp, err := a.mediator.Send(ctx, &commands.GenerateTurnCommand{GameID: gameID})
				if err != nil {
					return fmt.Errorf("failed to generate turn: %w", err)
				}
				result := resp.(*commands.GenerateTurnResponse)
				if jsonOutput {
					return printJSON(result)
				}

				fmt.Printf("✓ Year %d generated\n", result.Year)
				fmt.Printf("  Digest:  %s\n", result.Digest)
				fmt.Printf("  Battles: %d\n", result.Battles)
				if len(result.Victors) > 0 {
					fmt.Printf("  Victors: %v\n", result.Victors)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&gameID, "game", "", "Game ID (required)")
	cmd.MarkFlagRequired("game")

	return cmd
}
