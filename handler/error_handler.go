package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ledgerly/ledgerly/pkg/binder"
	"github.com/ledgerly/ledgerly/pkg/identity"
	"github.com/ledgerly/ledgerly/pkg/logger"
)

// classify maps binding failures to 400 and keeps HTTPError as is.
func classify(err error) HTTPError {
	var httpErr HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr
	case errors.Is(err, binder.ErrUnsupportedMediaType):
		return HTTPError{Code: http.StatusUnsupportedMediaType, Key: "unsupported_media_type"}
	case errors.Is(err, binder.ErrFailedToParseJSON),
		errors.Is(err, binder.ErrFailedToParseQuery),
		errors.Is(err, binder.ErrFailedToParsePath):
		return ErrBadRequest.WithMessage(err.Error())
	}
	return ErrInternalServerError
}

// NewErrorHandler logs err at warn for 4xx and error for 5xx, then writes
// the JSON error envelope.
func NewErrorHandler(log *slog.Logger) ErrorHandler {
	if log == nil {
		log = logger.Discard()
	}
	return func(ctx Context, err error) {
		httpErr := classify(err)
		r := ctx.Request()

		level := slog.LevelError
		if httpErr.Code < http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		log.LogAttrs(r.Context(), level, "request error",
			logger.RequestID(identity.RequestID(r.Context())),
			logger.Error(err),
			slog.Int("status_code", httpErr.Code),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)

		if renderErr := JSONError(httpErr).Render(ctx.ResponseWriter(), r); renderErr != nil {
			log.ErrorContext(r.Context(), "failed to render error response", logger.Error(renderErr))
		}
	}
}
