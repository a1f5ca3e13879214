package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/meridian-advisory/dealmatch/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "dealmatch",
	Short: "Investment matching engine for relationship-managed deal flow",
	Long:  "Matches capital partners, teams, sponsors, agents, and counsel against saved investment strategies: tri-state preference filters, ticket-size overlap, and country constraints.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
