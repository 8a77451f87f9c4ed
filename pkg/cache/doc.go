// Package cache provides a generic Cache interface with in-memory and Redis
// implementations, and the named cache pool owned by the console bootstrap.
//
// TTL semantics for Set:
//   - Positive duration: item expires after this duration
//   - Zero: use the cache's configured default TTL (1 hour by default)
//   - Negative: item never expires
//
// # Pool
//
// The bootstrap creates the default cache after the database pool. It is
// Redis-backed when cache.redis.url is configured and in-memory otherwise:
//
//	pool := cache.NewPool()
//	_ = pool.Create(cache.DefaultName, cache.NewMemory[string](cache.WithDefaultTTL(ttl)))
//
//	c, err := pool.Get()
//
// # Redis Cache
//
// [NewRedis] takes a client from [github.com/dmitrymomot/console/pkg/redis]:
//
//	client, err := redis.Open(ctx, redis.Config{URL: os.Getenv("REDIS_URL")})
//	c := cache.NewRedis[string](client, nil, cache.WithPrefix("console"))
//
// # Cache Stampede Prevention
//
// [GetOrSet] computes a missing value once, even under concurrent misses:
//
//	val, err := cache.GetOrSet(ctx, c, "settings:1000000009", func(ctx context.Context) (string, time.Duration, error) {
//	    v, err := load(ctx)
//	    return v, 5 * time.Minute, err
//	})
package cache
