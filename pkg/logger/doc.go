// Package logger builds *slog.Logger instances with functional options,
// consistent attribute helpers and attributes injected from context.Context.
//
// New picks slog.NewTextHandler or slog.NewJSONHandler based on the
// configured Format and wraps it in LogHandlerDecorator, which runs every
// registered ContextExtractor before delegating.
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, cfg.AppName),
//	    logger.WithContextExtractors(requestid.LogExtractor(), clientip.LogExtractor()),
//	)
//	logger.SetAsDefault(log)
//
//	log.InfoContext(ctx, "mail dispatched",
//	    logger.Transport("SMTP"),
//	    logger.MessageID(id),
//	)
//
// Error, RequestID and MessageID return an empty attribute for zero values so
// they can be passed without nil checks.
package logger
