// Package pg bootstraps the PostgreSQL layer: a pgx connection pool with
// retry, goose migrations for the billing schema, a health probe and a couple
// of error classifiers.
//
// The schema ships inside the binary (see Migrations). It creates the plans
// table read by the plan catalog, the usage tables counted by the usage
// aggregator (transactions, debts, recurring_transactions, categories) and the
// subscriptions table behind the subscription store. The built-in plans are
// seeded on first run.
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, slog.Default()); err != nil {
//		return err
//	}
package pg
