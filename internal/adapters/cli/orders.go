package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/stars-go/internal/application/game/commands"
	"github.com/andrescamacho/stars-go/internal/application/game/queries"
	"github.com/andrescamacho/stars-go/internal/application/orders"
)

// NewOrdersCommand creates the orders command with subcommands
func NewOrdersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Submit player orders",
		Long: `Submit a player's orders for the current year.

Orders are read as JSON from a file or from stdin with "--file -". A player
may resubmit until the turn is generated; the last submission wins.

Examples:
  stars orders submit --game <id> --player 1 --file orders.json
  cat orders.json | stars orders submit --game <id> --player 2 --file -`,
	}

	cmd.AddCommand(newOrdersSubmitCommand())
	return cmd
}

func newOrdersSubmitCommand() *cobra.Command {
	var (
		gameID    string
		playerNum int
		file      string
	)

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit orders for the current year",
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := readOrders(file)
			if err != nil {
				return err
			}
			o.PlayerNum = playerNum

			return withApp(cmd.Context(), func(ctx context.Context, a *app) error {
				if o.Year == 0 {
					report, err := a.mediator.Send(ctx, &queries.GetReportQuery{GameID: gameID, PlayerNum: playerNum})
					if err != nil {
						return fmt.Errorf("failed to look up current year: %w", err)
					}
					o.Year = report.(*queries.GetReportResponse).Year
				}

				resp, err := a.mediator.Send(ctx, &commands.SubmitOrdersCommand{GameID: gameID, Orders: o})
				if err != nil {
					return fmt.Errorf("failed to submit orders: %w", err)
				}
				result := resp.(*commands.SubmitOrdersResponse)
				if jsonOutput {
					return printJSON(result)
				}

				fmt.Printf("✓ Orders stored for year %d\n", result.Year)
				for _, r := range result.Rejections {
					fmt.Printf("  ! %s: %s\n", r.Order, r.Reason)
				}
				if result.AllSubmitted {
					fmt.Println("  All players have submitted")
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&gameID, "game", "", "Game ID (required)")
	cmd.Flags().IntVar(&playerNum, "player", 0, "Player number (required)")
	cmd.Flags().StringVar(&file, "file", "-", "Orders JSON file, - for stdin")
	cmd.MarkFlagRequired("game")
	cmd.MarkFlagRequired("player")

	return cmd
}

func readOrders(file string) (*orders.Orders, error) {
	var r io.Reader = os.Stdin
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("failed to open orders: %w", err)
		}
		defer f.Close()
		r = f
	}
	var o orders.Orders
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&o); err != nil {
		return nil, fmt.Errorf("failed to parse orders: %w", err)
	}
	return &o, nil
}
