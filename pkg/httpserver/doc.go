// Package httpserver runs an http.Handler with graceful shutdown.
//
// Run blocks until the context is cancelled, SIGINT/SIGTERM is received or the
// listener fails. Shutdown callbacks registered with WithOnShutdown run as soon
// as shutdown begins, which lets long-lived responses such as SSE streams end
// before the shutdown timeout elapses.
//
//	srv := httpserver.NewFromConfig(cfg.HTTP,
//		httpserver.WithLogger(log),
//		httpserver.WithOnShutdown(func() { _ = engine.Close() }),
//	)
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server failed", logger.Error(err))
//	}
package httpserver
