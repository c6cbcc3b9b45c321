// Package logger builds *slog.Logger values from functional options and
// provides attribute helpers so log keys stay consistent across the module.
//
// New selects a text or JSON handler, applies static attributes and wraps the
// result in LogHandlerDecorator, which injects attributes pulled from the
// context (for example a request id) on every record.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment(os.Getenv("APP_ENV"), "regform"),
//	    logger.WithContextValue("request_id", middleware.RequestIDKey),
//	)
//	log.InfoContext(ctx, "Form submitted", logger.Component("submission"))
package logger
