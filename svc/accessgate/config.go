package accessgate

import (
	"context"
	"time"

	"github.com/dmitrymomot/corpsite/pkg/config"
)

// Config is read on every verification so password rotation takes effect
// without a restart.
type Config struct {
	Password string `env:"ACCESS_PASSWORD"`
}

// TokenConfig enables access tokens when Secret is set.
type TokenConfig struct {
	Secret string        `env:"ACCESS_TOKEN_SECRET"`
	TTL    time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"10m"`
}

// Source returns the current Config.
type Source func(ctx context.Context) (Config, error)

// EnvSource reads Config from the environment on every call.
func EnvSource() Source {
	return func(context.Context) (Config, error) {
		return config.Read[Config]()
	}
}

// StaticSource always returns cfg.
func StaticSource(cfg Config) Source {
	return func(context.Context) (Config, error) {
		return cfg, nil
	}
}
