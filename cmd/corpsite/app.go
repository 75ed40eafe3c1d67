package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/corpsite/modules/site"
	"github.com/dmitrymomot/corpsite/pkg/environment"
	"github.com/dmitrymomot/corpsite/pkg/httpserver"
	"github.com/dmitrymomot/corpsite/pkg/jwt"
	"github.com/dmitrymomot/corpsite/pkg/ratelimiter"
	"github.com/dmitrymomot/corpsite/pkg/redis"
	"github.com/dmitrymomot/corpsite/svc/accessgate"
	"github.com/dmitrymomot/corpsite/svc/dispatch"
)

// app is the wired HTTP surface plus the resources it holds.
type app struct {
	handler http.Handler
	closers []func() error
}

func (a *app) Close() error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func newApp(ctx context.Context, cfg appConfig, log *slog.Logger) (*app, error) {
	a := &app{}

	store, checks, err := a.limiterStore(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	limiter, err := ratelimiter.NewBucket(store, ratelimiter.Config{
		Capacity:       cfg.RateLimit.Burst,
		RefillRate:     cfg.RateLimit.Burst,
		RefillInterval: cfg.RateLimit.Interval,
	})
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	gateOpts := []accessgate.Option{accessgate.WithLogger(log)}
	if cfg.Token.Secret != "" {
		signer, err := jwt.New(cfg.Token.Secret)
		if err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("access tokens: %w", err)
		}
		gateOpts = append(gateOpts, accessgate.WithTokens(signer, cfg.Token.TTL))
	}
	gate := accessgate.New(accessgate.EnvSource(), gateOpts...)

	var mailOpts []site.MailOption
	if gate.TokensEnabled() {
		mailOpts = append(mailOpts, site.WithAuthorizer(gate.Authorize))
	}

	dispatcher := dispatch.New(dispatch.EnvSource(), dispatch.WithLogger(log))
	errs := site.NewErrorHandler(log)

	a.handler = site.Router(site.RouterOptions{
		Access: site.NewAccessService(gate, errs, site.WithLimiter(limiter)),
		Mail:   site.NewMailService(dispatcher, errs, mailOpts...),
		Env:    environment.Parse(cfg.Env),
		Logger: log,
		Checks: checks,
	})
	return a, nil
}

func (a *app) limiterStore(ctx context.Context, cfg appConfig, log *slog.Logger) (ratelimiter.Store, []httpserver.Check, error) {
	if cfg.RateLimit.Store != storeRedis {
		mem := ratelimiter.NewMemoryStore()
		a.closers = append(a.closers, mem.Close)
		return mem, nil, nil
	}

	client, err := redis.Connect(ctx, cfg.Redis)
	if err != nil {
		return nil, nil, err
	}
	a.closers = append(a.closers, client.Close)
	log.InfoContext(ctx, "rate limit store connected", slog.String("store", storeRedis))

	checks := []httpserver.Check{{Name: "redis", Fn: redis.Healthcheck(client)}}
	return ratelimiter.NewRedisStore(client, cfg.Redis.KeyPrefix), checks, nil
}
