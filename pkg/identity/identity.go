// Package identity carries the authenticated user id and the request id
// through request contexts.
//
// Authentication itself happens upstream. The gateway in front of the service
// forwards the user id in the X-User-ID header; RequireUser rejects requests
// without a valid one. A missing identity is never treated as a user.
package identity

import (
	"context"
	"log/slog"
	"net/http"
	"regexp"

	"github.com/google/uuid"

	"github.com/ledgerly/ledgerly/pkg/logger"
)

const (
	UserHeader    = "X-User-ID"
	RequestHeader = "X-Request-ID"

	maxRequestIDLength = 128
)

var validRequestID = regexp.MustCompile("^[a-zA-Z0-9_-]+$")

type (
	userKey    struct{}
	requestKey struct{}
)

// WithUserID stores the authenticated user id in ctx.
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, userKey{}, id)
}

// UserID returns the authenticated user id, or uuid.Nil.
func UserID(ctx context.Context) uuid.UUID {
	id, _ := ctx.Value(userKey{}).(uuid.UUID)
	return id
}

// WithRequestID stores the request id in ctx.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestKey{}, id)
}

// RequestID returns the request id, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestKey{}).(string)
	return id
}

// RequestIDMiddleware propagates X-Request-ID, generating one when the header
// is missing or malformed.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestHeader)
		if len(id) == 0 || len(id) > maxRequestIDLength || !validRequestID.MatchString(id) {
			id = uuid.NewString()
		}
		w.Header().Set(RequestHeader, id)
		next.ServeHTTP(w, r.WithContext(WithRequestID(r.Context(), id)))
	})
}

// RequireUser parses X-User-ID into the context. Requests without a valid,
// non-nil uuid are passed to unauthorized instead of next.
func RequireUser(unauthorized http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := uuid.Parse(r.Header.Get(UserHeader))
			if err != nil || id == uuid.Nil {
				unauthorized.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), id)))
		})
	}
}

// LoggerExtractors adds the request id and the user id to log records.
func LoggerExtractors() []logger.ContextExtractor {
	return []logger.ContextExtractor{
		func(ctx context.Context) (slog.Attr, bool) {
			if id := RequestID(ctx); id != "" {
				return slog.String("request_id", id), true
			}
			return slog.Attr{}, false
		},
		func(ctx context.Context) (slog.Attr, bool) {
			if id := UserID(ctx); id != uuid.Nil {
				return slog.String("user_id", id.String()), true
			}
			return slog.Attr{}, false
		},
	}
}
