// Package httpserver runs an http.Handler with configurable timeouts and
// context driven graceful shutdown, and provides liveness and readiness
// handlers.
//
//	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
//	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
//	defer stop()
//	if err := srv.Run(ctx, router); err != nil {
//	    return err
//	}
//
// Run returns once the context is cancelled and in-flight requests have
// drained, or the shutdown timeout elapsed. Start failures wrap ErrStart and
// drain failures wrap ErrShutdown.
package httpserver
