package environment

import (
	"context"
	"log/slog"
)

// LogExtractor returns a logger.ContextExtractor that adds the "env" attribute.
func LogExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if env := FromContext(ctx); env != "" {
			return slog.String("env", string(env)), true
		}
		return slog.Attr{}, false
	}
}
