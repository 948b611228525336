package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/betimvpp/NlwSpacetimeServer/internal/config"
	"github.com/betimvpp/NlwSpacetimeServer/internal/database"
	"github.com/betimvpp/NlwSpacetimeServer/internal/logger"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			log := logger.NewLogger(cfg.Observability)

			return database.Migrate(cmd.Context(), &log, cfg)
		},
	}
}
