// Package redis connects to Redis with retries and exposes a readiness probe.
// The client backs the shared rate limit store when several instances run
// behind a load balancer.
//
//	client, err := redis.Connect(ctx, cfg.Redis)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	checks = append(checks, httpserver.Check{Name: "redis", Fn: redis.Healthcheck(client)})
//
// Connection problems are reported as ErrRedisNotReady joined with the last
// driver error.
package redis
