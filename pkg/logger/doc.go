// Package logger builds *slog.Logger values with functional options and
// provides attribute constructors that keep key names consistent across the
// mapper, the adapters and the arctl command.
//
// New picks a text or JSON handler, applies static attributes, then wraps the
// handler with LogHandlerDecorator so that ContextExtractor callbacks can add
// request scoped values on every record.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment(os.Getenv("AR_ENV"), "arctl"),
//	    logger.WithLevelName(os.Getenv("AR_LOG_LEVEL")),
//	)
//	log.DebugContext(ctx, "scope resolved",
//	    logger.Table("products"),
//	    logger.Operation("select"),
//	    logger.Rows(3),
//	)
//
// Error and RecordID return an empty Attr for nil input, so they can be passed
// unconditionally.
package logger
