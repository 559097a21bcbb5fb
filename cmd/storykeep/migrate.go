package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"storykeep/internal/database"
)

func newMigrateCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate up|down",
		Short:     "Apply or roll back the database schema",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(database.Up), string(database.Down)},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap(root)
			if err != nil {
				return err
			}
			defer log.Sync()

			dir := database.Direction(args[0])
			if err := database.Migrate(cfg.Database(), dir, log); err != nil {
				return fmt.Errorf("migration %s failed: %w", dir, err)
			}
			log.Info("Migrations finished", zap.String("direction", string(dir)))
			return nil
		},
	}
}
