// Package logger builds slog loggers from functional options and provides
// attribute helpers so keys stay consistent across packages.
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, "querybind-demo"),
//	    logger.WithContextExtractors(requestIDExtractor),
//	)
//	logger.SetAsDefault(log)
//
//	log.Warn("query model field skipped",
//	    logger.Component("binder"),
//	    logger.Field("Filter"),
//	)
package logger
