package cmd

import (
	"internport-backend/internal/repository/postgres"
	"internport-backend/internal/usecase"
	"internport-backend/pkg/logger"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create demo admin, student and company accounts",
	Long:  `Create the demo accounts. Accounts whose email already exists are skipped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := bootstrap()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		pool, err := connectDB(ctx, cfg)
		if err != nil {
			return err
		}
		defer pool.Close()

		created, err := usecase.SeedDemoData(ctx, postgres.NewUserRepository(pool))
		if err != nil {
			return err
		}
		logger.Log.Info("seed complete", "created", created)
		return nil
	},
}
