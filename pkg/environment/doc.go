// Package environment propagates the application environment (development,
// staging, production) through context.Context and structured logs.
//
// Parse normalizes the APP_ENV value, Middleware stores it on every request
// and LogExtractor exposes it to pkg/logger:
//
//	env := environment.Parse(cfg.Env)
//	r.Use(environment.Middleware(env))
//
//	if environment.IsProduction(ctx) {
//	    // production-only behaviour
//	}
package environment
