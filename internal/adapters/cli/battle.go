package cli

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/andrescamacho/stars-go/internal/application/game/queries"
)

// NewBattleCommand creates the battle command with subcommands
func NewBattleCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "battle",
		Short: "Inspect battle records",
		Long: `Show the record of a battle a player took part in.

Battle IDs appear in the player's report next to battle messages.

Examples:
  stars battle show --game <id> --player 1 --id <battle-id>`,
	}

	cmd.AddCommand(newBattleShowCommand())
	return cmd
}

func newBattleShowCommand() *cobra.Command {
	var (
		gameID    string
		battleID  string
		playerNum int
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show one battle record",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(battleID)
			if err != nil {
				return fmt.Errorf("invalid battle id: %w", err)
			}

			return withApp(cmd.Context(), func(ctx context.Context, a *app) error {
				resp, err := a.mediator.Send(ctx, &queries.GetBattleQuery{
					GameID:    gameID,
					BattleID:  id,
					PlayerNum: playerNum,
				})
				if err != nil {
					return fmt.Errorf("failed to get battle: %w", err)
				}
				record := resp.(*queries.GetBattleResponse).Record
				if jsonOutput {
					return printJSON(record)
				}

				fmt.Printf("Battle %s (year %d) at %s\n", record.ID, record.Year, record.Position)
				fmt.Printf("Players: %v\n", record.Players)
				fmt.Printf("Tokens: %d  Actions: %d\n", len(record.Tokens), len(record.Actions))
				fmt.Printf("Stats:\n%s\n", prettyPrint(record.Stats))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&gameID, "game", "", "Game ID (required)")
	cmd.Flags().StringVar(&battleID, "id", "", "Battle ID (required)")
	cmd.Flags().IntVar(&playerNum, "player", 0, "Player number (required)")
	cmd.MarkFlagRequired("game")
	cmd.MarkFlagRequired("id")
	cmd.MarkFlagRequired("player")

	return cmd
}
