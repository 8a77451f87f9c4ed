// Package redis opens the optional Redis client behind the console cache pool.
//
//	client, err := redis.Open(ctx, redis.Config{URL: "redis://localhost:6379/0"})
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
// [Healthcheck] adapts the client to the system module's health report.
package redis
