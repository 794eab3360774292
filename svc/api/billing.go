package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/ledgerly/ledgerly/handler"
	"github.com/ledgerly/ledgerly/pkg/billing"
	"github.com/ledgerly/ledgerly/pkg/binder"
	"github.com/ledgerly/ledgerly/pkg/identity"
	"github.com/ledgerly/ledgerly/pkg/limits"
	"github.com/ledgerly/ledgerly/pkg/logger"
	"github.com/ledgerly/ledgerly/pkg/plan"
	"github.com/ledgerly/ledgerly/pkg/prompt"
)

type billingResponse struct {
	Plan           plan.Plan                `json:"plan"`
	MonthlyPrice   string                   `json:"monthly_price"`
	Limits         limits.Limits            `json:"limits"`
	IsFree         bool                     `json:"is_free"`
	PlanDefaulted  bool                     `json:"plan_defaulted"`
	UsageAvailable bool                     `json:"usage_available"`
	Usage          *limits.Usage            `json:"usage,omitempty"`
	Percentages    map[limits.LimitType]int `json:"percentages,omitempty"`
	ResolvedAt     *time.Time               `json:"resolved_at,omitempty"`
}

// getBilling degrades to plan and limits when usage cannot be counted.
func (s *server) getBilling() http.HandlerFunc {
	return handler.Wrap(func(ctx handler.Context, _ struct{}) handler.Response {
		userID := identity.UserID(ctx)

		info, err := s.Billing.Resolve(ctx, userID)
		if err == nil {
			return handler.JSON(billingResponse{
				Plan:           info.Plan,
				MonthlyPrice:   info.Plan.MonthlyPrice(),
				Limits:         info.Limits,
				IsFree:         info.IsFree,
				PlanDefaulted:  info.PlanDefaulted,
				UsageAvailable: true,
				Usage:          &info.Usage,
				Percentages:    info.Percentages(),
				ResolvedAt:     &info.ResolvedAt,
			})
		}
		if !errors.Is(err, billing.ErrUsageUnavailable) {
			return s.fail(ctx, err)
		}

		s.Logger.WarnContext(ctx, "usage unavailable, serving plan only", logger.Error(err))
		p, defaulted, err := s.Billing.ResolvePlan(ctx, userID)
		if err != nil {
			return s.fail(ctx, err)
		}
		return handler.JSON(billingResponse{
			Plan:          p,
			MonthlyPrice:  p.MonthlyPrice(),
			Limits:        p.Limits,
			IsFree:        p.IsFree(),
			PlanDefaulted: defaulted,
		})
	}, handler.WithErrorHandler[struct{}](s.errs))
}

type checkRequest struct {
	LimitType string `path:"limitType"`
}

type checkResponse struct {
	Allowed  bool              `json:"allowed"`
	Decision limits.Decision   `json:"decision"`
	Prompt   *prompt.ViewModel `json:"prompt,omitempty"`
}

// checkLimit answers whether one more record of the given type fits the
// caller's plan. Exhausted quotas come back as 200 with the opened prompt;
// checks that could not be verified fail closed with 503.
func (s *server) checkLimit() http.HandlerFunc {
	return handler.Wrap(func(ctx handler.Context, req checkRequest) handler.Response {
		lt, err := limits.ParseLimitType(req.LimitType)
		if err != nil {
			return handler.JSONError(handler.ErrBadRequest.WithMessage("unknown limit type " + req.LimitType))
		}
		userID := identity.UserID(ctx)

		p := prompt.New()
		d := s.Gate.Check(ctx, userID, lt, p)
		if d.Reason == limits.ReasonUnverified {
			return handler.JSONError(errUnverified)
		}

		resp := checkResponse{Allowed: d.Allowed, Decision: d}
		if p.Status() == prompt.StatusOpen {
			current, _, err := s.Billing.ResolvePlan(ctx, userID)
			if err != nil {
				return s.fail(ctx, err)
			}
			vm := prompt.View(p.State(), current, s.Plans)
			resp.Prompt = &vm
		}
		return handler.JSON(resp)
	},
		handler.WithBinders[checkRequest](binder.Path()),
		handler.WithErrorHandler[checkRequest](s.errs),
	)
}
