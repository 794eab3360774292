// Package redis connects to Redis through go-redis and exposes a prefixed
// key-value Storage.
//
// Storage backs the Redis subscription store when SUBSCRIPTION_BACKEND=redis:
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	kv := redis.NewStorage(client, cfg.KeyPrefix)
//	store := subscription.NewRedisStore(kv)
//
// Missing keys read as nil with no error.
package redis
