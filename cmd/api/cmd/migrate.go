package cmd

import (
	"fmt"

	"internport-backend/internal/repository/postgres"
	"internport-backend/pkg/logger"

	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/riverqueue/river/rivermigrate"
	"github.com/spf13/cobra"
)

var (
	migrationsPath string
	downSteps      int
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage database migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply application and River migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := bootstrap()
		if err != nil {
			return err
		}
		path := migrationsPath
		if path == "" {
			path = cfg.MigrationsPath
		}

		if err := postgres.MigrateUp(cfg.DBUrl, path); err != nil {
			return err
		}
		logger.Log.Info("application migrations applied", "path", path)

		ctx := cmd.Context()
		pool, err := connectDB(ctx, cfg)
		if err != nil {
			return err
		}
		defer pool.Close()

		migrator, err := rivermigrate.New(riverpgxv5.New(pool), nil)
		if err != nil {
			return fmt.Errorf("river migrator: %w", err)
		}
		res, err := migrator.Migrate(ctx, rivermigrate.DirectionUp, &rivermigrate.MigrateOpts{})
		if err != nil {
			return fmt.Errorf("river migrate: %w", err)
		}
		logger.Log.Info("river migrations applied", "versions", len(res.Versions))
		return nil
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back application migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := bootstrap()
		if err != nil {
			return err
		}
		path := migrationsPath
		if path == "" {
			path = cfg.MigrationsPath
		}
		if err := postgres.MigrateDown(cfg.DBUrl, path, downSteps); err != nil {
			return err
		}
		logger.Log.Info("application migrations rolled back", "steps", downSteps)
		return nil
	},
}

func init() {
	migrateCmd.PersistentFlags().StringVar(&migrationsPath, "path", "", "migrations directory; overrides MIGRATIONS_PATH")
	migrateDownCmd.Flags().IntVar(&downSteps, "steps", 1, "number of migrations to roll back")

	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
}
