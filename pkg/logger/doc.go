// Package logger builds *slog.Logger instances with functional options and
// injects values stored in context.Context into every record.
//
// New picks a text or JSON handler, applies static attributes and wraps the
// result in LogHandlerDecorator, which runs the registered ContextExtractor
// callbacks on each Handle call.
//
// # Usage
//
//	import "github.com/dmitrymomot/graphkit/pkg/logger"
//
//	log := logger.New(
//	    logger.WithDevelopment("graph-worker"),
//	    logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	logger.SetAsDefault(log)
//
//	log.InfoContext(ctx, "posted to feed",
//	    logger.ObjectID(postID),
//	    logger.Duration(time.Since(start)),
//	)
//
// # Attributes
//
// Helpers such as Error, Method, Path, StatusCode and ErrorCode keep attribute
// names consistent. Error, UserID, ObjectID and RequestID return an empty
// Attr for nil or empty input, so they can be passed unconditionally.
package logger
