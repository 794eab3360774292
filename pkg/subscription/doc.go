// Package subscription tracks which plan each user is assigned to and keeps
// that assignment in sync with the payment provider.
//
// The assignment is the single source of truth for the plan id consumed by the
// billing resolver. It only changes through provider webhooks: creating a
// checkout link never flips the plan, so a user who abandons checkout stays on
// the plan they had.
//
// # Usage
//
//	provider, err := subscription.NewPaddleProvider(cfg)
//	if err != nil {
//	    return err
//	}
//	svc := subscription.NewService(catalog, provider, subscription.NewPostgresStore(pool),
//	    subscription.WithLogger(log),
//	)
//
//	planID, err := svc.PlanID(ctx, userID)
//	if errors.Is(err, subscription.ErrNoActivePlan) {
//	    // fall back to the free tier
//	}
//
// # Stores
//
// Three Store implementations are provided: MemoryStore for tests and local
// runs, PostgresStore over the subscriptions table, and RedisStore over any
// KV such as *redis.Storage.
//
// # Statuses
//
// Active, trialing and past-due users keep their plan. Cancelled and expired
// assignments, and trials past TrialEndsAt, resolve to ErrNoActivePlan.
package subscription
