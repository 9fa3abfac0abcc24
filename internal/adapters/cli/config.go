package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/stars-go/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration settings",
		Long: `Inspect the effective configuration.

Configuration is loaded from multiple sources with priority:
1. Environment variables (STARS_* prefix)
2. Config file (config.yaml)
3. Default values

Examples:
  stars config show
  stars config show --config ./deploy/config.yaml`,
	}

	cmd.AddCommand(newConfigShowCommand())

	return cmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				fmt.Printf("Warning: Failed to load config: %v\n", err)
				fmt.Println("Using default configuration.")
				cfg = config.Default()
			}
			if jsonOutput {
				masked := *cfg
				masked.Database.Password = "****"
				masked.Database.URL = maskPassword(cfg.Database.URL)
				return printJSON(masked)
			}

			fmt.Println("Stars Configuration")
			fmt.Println("===================")

			fmt.Println("\nDatabase:")
			fmt.Printf("  Type:             %s\n", cfg.Database.Type)
			switch {
			case cfg.Database.URL != "":
				fmt.Printf("  URL:              %s\n", maskPassword(cfg.Database.URL))
			case cfg.Database.Type == "sqlite":
				fmt.Printf("  Path:             %s\n", cfg.Database.Path)
			default:
				fmt.Printf("  Host:             %s\n", cfg.Database.Host)
				fmt.Printf("  Port:             %d\n", cfg.Database.Port)
				fmt.Printf("  Database:         %s\n", cfg.Database.Name)
				fmt.Printf("  User:             %s\n", cfg.Database.User)
			}
			fmt.Printf("  Max Connections:  %d\n", cfg.Database.Pool.MaxOpen)

			fmt.Println("\nGame:")
			fmt.Printf("  Rules:            %s\n", orDefault(cfg.Game.RulesPath))
			fmt.Printf("  Techs:            %s\n", orDefault(cfg.Game.TechsPath))
			fmt.Printf("  Compression:      %s\n", cfg.Game.SnapshotCompression)
			fmt.Printf("  Workers:          %d\n", cfg.Game.Workers)
			fmt.Printf("  Lock Dir:         %s\n", cfg.Game.LockDir)

			fmt.Println("\nOrders:")
			fmt.Printf("  Submit Rate:      %g/s (burst: %d)\n", cfg.Orders.SubmitRate, cfg.Orders.SubmitBurst)

			fmt.Println("\nHost:")
			fmt.Printf("  Poll Interval:    %s\n", cfg.Host.PollInterval)
			fmt.Printf("  Turn Deadline:    %s\n", cfg.Host.TurnDeadline)
			fmt.Printf("  Always Generate:  %t\n", cfg.Host.AlwaysGenerate)
			fmt.Printf("  PID File:         %s\n", cfg.Host.PIDFile)

			fmt.Println("\nMetrics:")
			fmt.Printf("  Enabled:          %t\n", cfg.Metrics.Enabled)
			fmt.Printf("  Endpoint:         %s:%d%s\n", cfg.Metrics.Host, cfg.Metrics.Port, cfg.Metrics.Path)

			fmt.Println("\nLogging:")
			fmt.Printf("  Level:            %s\n", cfg.Logging.Level)
			fmt.Printf("  Format:           %s\n", cfg.Logging.Format)
			fmt.Printf("  Output:           %s\n", cfg.Logging.Output)

			return nil
		},
	}
}

func orDefault(path string) string {
	if path == "" {
		return "(built-in)"
	}
	return path
}

// prettyPrint formats JSON for display
func prettyPrint(v interface{}) string {
	bytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(bytes)
}
