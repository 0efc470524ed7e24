package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/querybind/pkg/logger"
)

// NewErrorHandler creates an error handler that logs the error and renders
// it with JSONError. Client errors log at warn level, server errors at error
// level. Binding errors carry their per-field messages into the log record.
func NewErrorHandler(log *slog.Logger) ErrorHandler {
	if log == nil {
		log = slog.Default()
	}

	return func(ctx Context, err error) {
		r := ctx.Request()
		status, _ := errorToDetail(err)

		level := slog.LevelError
		if status < http.StatusInternalServerError {
			level = slog.LevelWarn
		}

		attrs := []slog.Attr{
			logger.RequestID(middleware.GetReqID(r.Context())),
			logger.Error(err),
			slog.Int("status_code", status),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			logger.Component("error_handler"),
		}
		if bindErr, ok := isBindingError(err); ok {
			attrs = append(attrs, logger.FieldErrors(bindErr.Fields))
		}
		log.LogAttrs(r.Context(), level, "request error", attrs...)

		if renderErr := JSONError(err).Render(ctx.ResponseWriter(), r); renderErr != nil {
			log.LogAttrs(r.Context(), slog.LevelError, "failed to render error response",
				logger.Error(renderErr),
				logger.Component("error_handler"),
			)
		}
	}
}
