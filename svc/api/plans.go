package api

import (
	"net/http"

	"github.com/ledgerly/ledgerly/handler"
	"github.com/ledgerly/ledgerly/pkg/binder"
	"github.com/ledgerly/ledgerly/pkg/plan"
	"github.com/ledgerly/ledgerly/pkg/prompt"
)

type plansRequest struct {
	Current string `query:"current"`
}

func (s *server) listPlans() http.HandlerFunc {
	return handler.Wrap(func(ctx handler.Context, req plansRequest) handler.Response {
		var current *plan.Plan
		if req.Current != "" {
			p, err := s.Plans.Get(req.Current)
			if err != nil {
				return s.fail(ctx, err)
			}
			current = &p
		}
		return handler.JSON(prompt.PlanOptions(s.Plans.Active(), current, ""))
	},
		handler.WithBinders[plansRequest](binder.Query()),
		handler.WithErrorHandler[plansRequest](s.errs),
	)
}
