package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ledgerly/ledgerly/handler"
	"github.com/ledgerly/ledgerly/pkg/billing"
	"github.com/ledgerly/ledgerly/pkg/gate"
	"github.com/ledgerly/ledgerly/pkg/logger"
	"github.com/ledgerly/ledgerly/pkg/plan"
	"github.com/ledgerly/ledgerly/pkg/subscription"
	"github.com/ledgerly/ledgerly/pkg/usage"
)

var errUnverified = handler.HTTPError{
	Code:    handler.ErrServiceUnavailable.Code,
	Key:     "limits_unverified",
	Message: gate.MsgUnverified,
}

// httpError maps domain errors to responses. The original error stays
// joined so the error handler logs the cause.
func httpError(err error) error {
	var mapped handler.HTTPError
	switch {
	case errors.Is(err, billing.ErrUnauthenticated),
		errors.Is(err, subscription.ErrInvalidUserID):
		mapped = handler.ErrUnauthorized
	case errors.Is(err, billing.ErrUsageUnavailable),
		errors.Is(err, usage.ErrQueryFailed):
		mapped = errUnverified
	case errors.Is(err, subscription.ErrPlanNotFound),
		errors.Is(err, plan.ErrPlanNotFound):
		mapped = handler.ErrNotFound.WithMessage("plan not found")
	case errors.Is(err, subscription.ErrSubscriptionNotFound),
		errors.Is(err, subscription.ErrMissingProviderCustomerID):
		mapped = handler.ErrNotFound.WithMessage("no paid subscription")
	case errors.Is(err, subscription.ErrCheckoutNotRequired):
		mapped = handler.ErrConflict.WithMessage("the free plan needs no checkout")
	case errors.Is(err, subscription.ErrWebhookVerificationFailed):
		mapped = handler.ErrUnauthorized.WithMessage("invalid webhook signature")
	case errors.Is(err, subscription.ErrInvalidWebhookPayload):
		mapped = handler.ErrBadRequest.WithMessage("invalid webhook payload")
	case errors.Is(err, subscription.ErrProviderError),
		errors.Is(err, subscription.ErrNoCheckoutURL),
		errors.Is(err, subscription.ErrNoPortalURL):
		mapped = handler.ErrBadGateway
	case errors.Is(err, subscription.ErrProviderUnavailable):
		mapped = handler.ErrServiceUnavailable.WithMessage("payments are not configured")
	case errors.Is(err, context.DeadlineExceeded):
		mapped = handler.ErrServiceUnavailable
	default:
		return err
	}
	return errors.Join(mapped, err)
}

// fail logs err and renders its mapped response.
func (s *server) fail(ctx handler.Context, err error) handler.Response {
	err = httpError(err)

	level := slog.LevelError
	var httpErr handler.HTTPError
	if errors.As(err, &httpErr) && httpErr.Code < http.StatusInternalServerError {
		level = slog.LevelWarn
	}
	r := ctx.Request()
	s.Logger.LogAttrs(ctx, level, "request failed",
		logger.Error(err),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
	)
	return handler.JSONError(err)
}
