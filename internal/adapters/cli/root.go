package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	verbose    bool
	jsonOutput bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "stars",
		Short: "stars - host and play turn-based 4X games",
		Long: `stars creates games, stages player orders and generates turns.

Every command works against the configured database, so several hosts and
players can share one installation.

Examples:
  stars game create --name "Andromeda" --players Alice,Bob --ai Hal --size small
  stars orders submit --game <id> --player 1 --file orders.json
  stars turn generate --game <id>
  stars report --game <id> --player 1 --messages Battle,Colonized
  stars battle show --game <id> --player 1 --id <battle-id>
  stars host`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: ./config.yaml or ./configs/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false,
		"Print results as JSON")

	// Add command groups
	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewGameCommand())
	rootCmd.AddCommand(NewOrdersCommand())
	rootCmd.AddCommand(NewTurnCommand())
	rootCmd.AddCommand(NewReportCommand())
	rootCmd.AddCommand(NewBattleCommand())
	rootCmd.AddCommand(NewHostCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
