package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/ledgerly/ledgerly/handler"
	"github.com/ledgerly/ledgerly/pkg/binder"
	"github.com/ledgerly/ledgerly/pkg/identity"
	"github.com/ledgerly/ledgerly/pkg/logger"
	"github.com/ledgerly/ledgerly/pkg/subscription"
)

// maxWebhookSize bounds webhook bodies read into memory.
const maxWebhookSize = 1 << 20

type checkoutRequest struct {
	PlanID     string `json:"plan_id"`
	Email      string `json:"email"`
	SuccessURL string `json:"success_url"`
	CancelURL  string `json:"cancel_url"`
}

func (s *server) checkout() http.HandlerFunc {
	return handler.Wrap(func(ctx handler.Context, req checkoutRequest) handler.Response {
		if req.PlanID == "" {
			return handler.JSONError(handler.ErrUnprocessableEntity.WithMessage("plan_id is required"))
		}
		link, err := s.Subscriptions.CreateCheckoutLink(ctx, identity.UserID(ctx), req.PlanID, subscription.CheckoutOptions{
			Email:      req.Email,
			SuccessURL: req.SuccessURL,
			CancelURL:  req.CancelURL,
		})
		if err != nil {
			return s.fail(ctx, err)
		}
		return handler.JSON(link, handler.WithJSONStatus(http.StatusCreated))
	},
		handler.WithBinders[checkoutRequest](binder.JSON()),
		handler.WithErrorHandler[checkoutRequest](s.errs),
	)
}

func (s *server) portal() http.HandlerFunc {
	return handler.Wrap(func(ctx handler.Context, _ struct{}) handler.Response {
		link, err := s.Subscriptions.GetCustomerPortalLink(ctx, identity.UserID(ctx))
		if err != nil {
			return s.fail(ctx, err)
		}
		return handler.JSON(link)
	}, handler.WithErrorHandler[struct{}](s.errs))
}

// webhook needs the raw body for signature verification, so it reads the
// request itself instead of using a binder.
func (s *server) webhook() http.HandlerFunc {
	return handler.Wrap(func(ctx handler.Context, _ struct{}) handler.Response {
		payload, err := io.ReadAll(io.LimitReader(ctx.Request().Body, maxWebhookSize))
		if err != nil {
			return s.fail(ctx, errors.Join(handler.ErrBadRequest, err))
		}
		err = s.Subscriptions.HandleWebhook(ctx, payload, ctx.Request().Header.Get("Paddle-Signature"))
		switch {
		case err == nil:
		case errors.Is(err, subscription.ErrInvalidUserID):
			s.Logger.WarnContext(ctx, "webhook without a valid user id", logger.Error(err))
			return handler.JSONError(handler.ErrBadRequest.WithMessage("webhook carries no valid user id"))
		default:
			return s.fail(ctx, err)
		}
		return handler.JSON(map[string]bool{"received": true})
	}, handler.WithErrorHandler[struct{}](s.errs))
}
