// Package httpserver runs an http.Handler with configured timeouts and
// graceful shutdown, and provides liveness and readiness probe handlers.
//
// Run blocks until its context is cancelled. Wire it to process signals with
// signal.NotifyContext:
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//
//	srv := httpserver.New(cfg.HTTP, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server failed", logger.Error(err))
//	}
//
// Errors are wrapped with ErrStart or ErrShutdown for errors.Is checks.
package httpserver
