package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ledgerly/ledgerly/pkg/billing"
	"github.com/ledgerly/ledgerly/pkg/config"
	"github.com/ledgerly/ledgerly/pkg/gate"
	"github.com/ledgerly/ledgerly/pkg/httpserver"
	"github.com/ledgerly/ledgerly/pkg/identity"
	"github.com/ledgerly/ledgerly/pkg/logger"
	"github.com/ledgerly/ledgerly/pkg/mongo"
	"github.com/ledgerly/ledgerly/pkg/pg"
	"github.com/ledgerly/ledgerly/pkg/plan"
	"github.com/ledgerly/ledgerly/pkg/redis"
	"github.com/ledgerly/ledgerly/pkg/subscription"
	"github.com/ledgerly/ledgerly/pkg/usage"
)

type app struct {
	cfg      config.App
	log      *slog.Logger
	catalog  *plan.Catalog
	usage    *usage.Aggregator
	subs     *subscription.Service
	resolver *billing.Resolver
	gate     *gate.Gate
	checks   []httpserver.Check
	closers  []func()
}

// wireOptions selects the optional parts of the app.
type wireOptions struct {
	logOutput io.Writer
	payments  bool
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func wireApp(ctx context.Context, opts wireOptions) (_ *app, err error) {
	a := &app{}
	defer func() {
		if err != nil {
			a.Close()
		}
	}()

	if err := config.Parse(&a.cfg); err != nil {
		return nil, err
	}
	var billingCfg billing.Config
	if err := config.Parse(&billingCfg); err != nil {
		return nil, err
	}
	var sourceCfg plan.SourceConfig
	if err := config.Parse(&sourceCfg); err != nil {
		return nil, err
	}

	logOpts := []logger.Option{
		logger.WithEnvironment(a.cfg.Env, a.cfg.Name),
		logger.WithContextExtractors(identity.LoggerExtractors()...),
	}
	if opts.logOutput != nil {
		logOpts = append(logOpts, logger.WithOutput(opts.logOutput))
	}
	a.log = logger.New(logOpts...)

	var pool *pgxpool.Pool
	if a.cfg.NeedsPostgres() || sourceCfg.Kind == plan.SourcePostgres {
		if pool, err = a.connectPostgres(ctx); err != nil {
			return nil, err
		}
	}

	src, err := planSource(ctx, sourceCfg, pool)
	if err != nil {
		return nil, err
	}
	if a.catalog, err = plan.NewCatalog(ctx, src, plan.WithFreePlanID(billingCfg.FreePlanID)); err != nil {
		return nil, err
	}
	a.log.InfoContext(ctx, "plan catalog loaded",
		slog.String("source", sourceCfg.Kind),
		slog.Int("plans", a.catalog.Len()),
		slog.String("free_plan_id", a.catalog.Free().ID),
	)

	usageStore, err := a.usageStore(ctx, pool)
	if err != nil {
		return nil, err
	}
	aggOpts, err := billingCfg.AggregatorOptions()
	if err != nil {
		return nil, err
	}
	a.usage = usage.NewAggregator(usageStore, aggOpts...)

	subStore, err := a.subscriptionStore(ctx, pool)
	if err != nil {
		return nil, err
	}
	provider, err := a.billingProvider(ctx, opts.payments)
	if err != nil {
		return nil, err
	}
	a.subs = subscription.NewService(a.catalog, provider, subStore,
		subscription.WithLogger(a.log.With(logger.Component("subscription"))),
	)

	a.resolver = billing.NewResolver(a.catalog, a.subs.PlanID, a.usage,
		billing.WithLogger(a.log.With(logger.Component("billing"))),
	)
	a.gate = gate.New(a.resolver, gate.WithLogger(a.log.With(logger.Component("gate"))))
	return a, nil
}

func (a *app) connectPostgres(ctx context.Context) (*pgxpool.Pool, error) {
	var cfg pg.Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}
	pool, err := pg.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, pool.Close)
	a.checks = append(a.checks, httpserver.Check{Name: "postgres", Probe: pg.Healthcheck(pool)})
	return pool, nil
}

func planSource(ctx context.Context, cfg plan.SourceConfig, pool *pgxpool.Pool) (plan.Source, error) {
	switch cfg.Kind {
	case plan.SourceFile:
		return plan.NewFileSource(cfg.File), nil
	case plan.SourceS3:
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		return plan.NewS3Source(s3.NewFromConfig(awsCfg), cfg.S3Bucket, cfg.S3Key), nil
	case plan.SourcePostgres:
		return plan.NewPostgresSource(pool), nil
	}
	return plan.NewMemorySource(plan.DefaultPlans()...), nil
}

func (a *app) usageStore(ctx context.Context, pool *pgxpool.Pool) (usage.Store, error) {
	switch a.cfg.UsageBackend {
	case config.BackendPostgres:
		return usage.NewPostgresStore(pool), nil
	case config.BackendMongo:
		var cfg mongo.Config
		if err := config.Load(&cfg); err != nil {
			return nil, err
		}
		db, err := mongo.NewWithDatabase(ctx, cfg)
		if err != nil {
			return nil, err
		}
		client := db.Client()
		a.closers = append(a.closers, func() { _ = client.Disconnect(context.Background()) })
		a.checks = append(a.checks, httpserver.Check{Name: "mongo", Probe: mongo.Healthcheck(client)})
		return usage.NewMongoStore(db), nil
	}
	a.log.WarnContext(ctx, "usage backend is in memory, counts start at zero")
	return usage.NewMemoryStore(), nil
}

func (a *app) subscriptionStore(ctx context.Context, pool *pgxpool.Pool) (subscription.Store, error) {
	switch a.cfg.SubscriptionBackend {
	case config.BackendPostgres:
		return subscription.NewPostgresStore(pool), nil
	case config.BackendRedis:
		var cfg redis.Config
		if err := config.Load(&cfg); err != nil {
			return nil, err
		}
		client, err := redis.Connect(ctx, cfg)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() { _ = client.Close() })
		a.checks = append(a.checks, httpserver.Check{Name: "redis", Probe: redis.Healthcheck(client)})
		return subscription.NewRedisStore(redis.NewStorage(client, cfg.KeyPrefix)), nil
	}
	return subscription.NewMemoryStore(), nil
}

// billingProvider returns Paddle when payments are wanted and configured.
// A server without PADDLE_API_KEY still starts; checkout and webhooks then
// answer 503.
func (a *app) billingProvider(ctx context.Context, payments bool) (subscription.BillingProvider, error) {
	if !payments {
		return subscription.UnavailableProvider(), nil
	}
	var cfg subscription.PaddleConfig
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}
	provider, err := subscription.NewPaddleProvider(cfg)
	if errors.Is(err, subscription.ErrMissingAPIKey) {
		a.log.WarnContext(ctx, "PADDLE_API_KEY is not set, payments are disabled")
		return subscription.UnavailableProvider(), nil
	}
	if err != nil {
		return nil, err
	}
	return provider, nil
}
