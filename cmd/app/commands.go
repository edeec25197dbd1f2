package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"MarketIntel/internal/di"
	"MarketIntel/internal/usecase"
	"MarketIntel/pkg/config"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "marketintel",
		Short:         "Competitor and market analysis service",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configPath)
		},
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config/config.yaml", "config file path")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configPath)
		},
	})
	rootCmd.AddCommand(newTrendsCmd(&configPath))
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "marketintel %s\n", cfg.Version)
			return nil
		},
	})

	return rootCmd
}

func runServe(configPath string) error {
	cfg, err := config.LoadWithEnv(configPath)
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}

	app, err := di.InitializeApp(cfg)
	if err != nil {
		return fmt.Errorf("app initialization failed: %w", err)
	}
	return app.Run()
}

func newTrendsCmd(configPath *string) *cobra.Command {
	trendsCmd := &cobra.Command{
		Use:   "trends",
		Short: "Manage market trends",
	}

	trendsCmd.AddCommand(&cobra.Command{
		Use:   "import [FILE]",
		Short: "Load market trends from a YAML file",
		Long: `Load market trends from a YAML file into the trend store.
Trends with an existing name are replaced.

  trends:
    - trend_name: ai-assistants
      impact_score: 0.7
      description: Assistants bundled into SaaS suites
      date_identified: 2024-05-01T00:00:00Z
      sources: [analyst-report]`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadWithEnv(*configPath)
			if err != nil {
				return fmt.Errorf("config load failed: %w", err)
			}
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			tool, err := di.InitializeTrendTool(cfg)
			if err != nil {
				return err
			}
			defer tool.Redis.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			n, err := usecase.ImportTrends(ctx, tool.Store, f)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d trends\n", n)
			return nil
		},
	})

	return trendsCmd
}
