package main

import (
	"github.com/spf13/cobra"

	"github.com/ledgerly/ledgerly/pkg/config"
	"github.com/ledgerly/ledgerly/pkg/httpserver"
	"github.com/ledgerly/ledgerly/pkg/logger"
	"github.com/ledgerly/ledgerly/svc/api"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the billing HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := wireApp(ctx, wireOptions{payments: true})
			if err != nil {
				return err
			}
			defer a.Close()
			logger.SetAsDefault(a.log)

			var cfg httpserver.Config
			if err := config.Parse(&cfg); err != nil {
				return err
			}
			if a.cfg.HTTPAddr != "" {
				cfg.Addr = a.cfg.HTTPAddr
			}

			router := api.NewRouter(api.Deps{
				Billing:       a.resolver,
				Gate:          a.gate,
				Plans:         a.catalog,
				Subscriptions: a.subs,
				Checks:        a.checks,
				Logger:        a.log,
			})
			return httpserver.New(cfg, router, httpserver.WithLogger(a.log)).Run(ctx)
		},
	}
}
