package main

import (
	"fmt"
	"time"

	"github.com/dmitrymomot/corpsite/pkg/config"
	"github.com/dmitrymomot/corpsite/pkg/httpserver"
	"github.com/dmitrymomot/corpsite/pkg/redis"
	"github.com/dmitrymomot/corpsite/svc/accessgate"
)

const (
	storeMemory = "memory"
	storeRedis  = "redis"
)

// appConfig is the process configuration, parsed once at startup. Secrets
// used per request (access password, mail credentials) are not part of it.
type appConfig struct {
	Env       string `env:"APP_ENV" envDefault:"development"`
	Name      string `env:"APP_NAME" envDefault:"corpsite"`
	HTTP      httpserver.Config
	Token     accessgate.TokenConfig
	RateLimit rateLimitConfig
	Redis     redis.Config
}

type rateLimitConfig struct {
	Burst    int           `env:"ACCESS_RATE_LIMIT_BURST" envDefault:"3"`
	Interval time.Duration `env:"ACCESS_RATE_LIMIT_INTERVAL" envDefault:"30s"`
	Store    string        `env:"RATE_LIMIT_STORE" envDefault:"memory"`
}

func loadConfig() (appConfig, error) {
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return appConfig{}, err
	}
	switch cfg.RateLimit.Store {
	case storeMemory, storeRedis:
	default:
		return appConfig{}, fmt.Errorf("unknown RATE_LIMIT_STORE %q, want %q or %q", cfg.RateLimit.Store, storeMemory, storeRedis)
	}
	return cfg, nil
}
