package main

import (
	"github.com/spf13/cobra"

	"github.com/ledgerly/ledgerly/pkg/config"
	"github.com/ledgerly/ledgerly/pkg/logger"
	"github.com/ledgerly/ledgerly/pkg/pg"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Long:  "migrate creates or upgrades the plans, usage and subscriptions tables in the database named by PG_CONN_URL and seeds the built-in plans.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			var app config.App
			if err := config.Parse(&app); err != nil {
				return err
			}
			log := logger.New(logger.WithEnvironment(app.Env, app.Name), logger.WithOutput(cmd.ErrOrStderr()))

			var cfg pg.Config
			if err := config.Load(&cfg); err != nil {
				return err
			}
			pool, err := pg.Connect(ctx, cfg)
			if err != nil {
				return err
			}
			defer pool.Close()

			return pg.Migrate(ctx, pool, cfg, log)
		},
	}
}
