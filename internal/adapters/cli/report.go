package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/stars-go/internal/application/game/queries"
	"github.com/andrescamacho/stars-go/internal/domain/game"
)

// NewReportCommand creates the report command
func NewReportCommand() *cobra.Command {
	var (
		gameID    string
		playerNum int
		messages  string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show a player's turn report",
		Long: `Show what a player knows after the latest turn: score, known planets
and fleets, and the year's messages.

Messages can be limited to some types with a comma separated list.

Examples:
  stars report --game <id> --player 1
  stars report --game <id> --player 1 --messages Battle,Bombed,Colonized
  stars report --game <id> --player 1 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			mask, err := parseMessageMask(messages)
			if err != nil {
				return err
			}

			return withApp(cmd.Context(), func(ctx context.Context, a *app) error {
				resp, err := a.mediator.Send(ctx, &queries.GetReportQuery{
					GameID:    gameID,
					PlayerNum: playerNum,
					Mask:      mask,
				})
				if err != nil {
					return fmt.Errorf("failed to get report: %w", err)
				}
				report := resp.(*queries.GetReportResponse)
				if jsonOutput {
					return printJSON(report)
				}
				printReport(report)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&gameID, "game", "", "Game ID (required)")
	cmd.Flags().IntVar(&playerNum, "player", 0, "Player number (required)")
	cmd.Flags().StringVar(&messages, "messages", "", "Comma separated message types to show")
	cmd.MarkFlagRequired("game")
	cmd.MarkFlagRequired("player")

	return cmd
}

func printReport(r *queries.GetReportResponse) {
	fmt.Printf("%s - year %d (%s)\n", r.Player, r.Year, r.State)
	fmt.Printf("Score: %d (rank %d)\n", r.Score.Score, r.Score.Rank)
	fmt.Printf("  Planets: %d  Starbases: %d  Tech levels: %d  Resources: %d\n",
		r.Score.Planets, r.Score.Starbases, r.Score.TechLevels, r.Score.Resources)
	fmt.Printf("  Ships: %d unarmed, %d escort, %d capital\n",
		r.Score.UnarmedShips, r.Score.EscortShips, r.Score.CapitalShips)
	fmt.Printf("Known planets: %d  Known fleets: %d\n", len(r.Intel.Planets), len(r.Intel.Fleets))

	fmt.Println()
	if len(r.Messages) == 0 {
		fmt.Println("No messages")
		return
	}
	w := newTable()
	fmt.Fprintln(w, "TYPE\tMESSAGE")
	for _, m := range r.Messages {
		text := m.Text
		if m.Type == game.MessageBattle {
			text = fmt.Sprintf("%s (battle %s)", text, m.BattleID)
		}
		fmt.Fprintf(w, "%s\t%s\n", m.Type, text)
	}
	w.Flush()
}
