package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/ledgerly/ledgerly/handler"
	"github.com/ledgerly/ledgerly/pkg/billing"
	"github.com/ledgerly/ledgerly/pkg/gate"
	"github.com/ledgerly/ledgerly/pkg/httpserver"
	"github.com/ledgerly/ledgerly/pkg/identity"
	"github.com/ledgerly/ledgerly/pkg/limits"
	"github.com/ledgerly/ledgerly/pkg/logger"
	"github.com/ledgerly/ledgerly/pkg/plan"
	"github.com/ledgerly/ledgerly/pkg/subscription"
)

// BillingResolver is implemented by *billing.Resolver.
type BillingResolver interface {
	Resolve(ctx context.Context, userID uuid.UUID) (*billing.Info, error)
	ResolvePlan(ctx context.Context, userID uuid.UUID) (plan.Plan, bool, error)
}

// LimitChecker is implemented by *gate.Gate.
type LimitChecker interface {
	Check(ctx context.Context, userID uuid.UUID, lt limits.LimitType, opener gate.PromptOpener) limits.Decision
}

// PlanCatalog is implemented by *plan.Catalog.
type PlanCatalog interface {
	Get(id string) (plan.Plan, error)
	Active() []plan.Plan
	Upgrades(current plan.Plan, lt limits.LimitType) []plan.Plan
}

// Subscriptions is implemented by *subscription.Service.
type Subscriptions interface {
	CreateCheckoutLink(ctx context.Context, userID uuid.UUID, planID string, opts subscription.CheckoutOptions) (*subscription.CheckoutLink, error)
	GetCustomerPortalLink(ctx context.Context, userID uuid.UUID) (*subscription.PortalLink, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}

// Deps are the services behind the routes.
type Deps struct {
	Billing       BillingResolver
	Gate          LimitChecker
	Plans         PlanCatalog
	Subscriptions Subscriptions
	Checks        []httpserver.Check
	Logger        *slog.Logger
}

type server struct {
	Deps
	errs handler.ErrorHandler
}

// NewRouter builds the HTTP handler.
func NewRouter(d Deps) http.Handler {
	if d.Billing == nil || d.Gate == nil || d.Plans == nil || d.Subscriptions == nil {
		panic("api: billing, gate, plans and subscriptions are required")
	}
	if d.Logger == nil {
		d.Logger = logger.Discard()
	}
	s := &server{Deps: d, errs: handler.NewErrorHandler(d.Logger)}

	r := chi.NewRouter()
	r.Use(identity.RequestIDMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(d.Logger))

	r.Get("/healthz", httpserver.HealthHandler(d.Logger, 2*time.Second, d.Checks...))

	r.Route("/v1", func(r chi.Router) {
		r.Get("/plans", s.listPlans())
		r.Post("/billing/webhook", s.webhook())

		r.Group(func(r chi.Router) {
			r.Use(identity.RequireUser(http.HandlerFunc(s.unauthorized)))
			r.Get("/billing", s.getBilling())
			r.Post("/billing/check/{limitType}", s.checkLimit())
			r.Post("/billing/checkout", s.checkout())
			r.Get("/billing/portal", s.portal())
		})
	})

	return r
}

func (s *server) unauthorized(w http.ResponseWriter, r *http.Request) {
	s.errs(handler.NewContext(w, r), handler.ErrUnauthorized.WithMessage("missing or invalid "+identity.UserHeader+" header"))
}

// requestLogger logs one line per request with status and duration.
func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			log.LogAttrs(r.Context(), slog.LevelInfo, "http request",
				logger.RequestID(identity.RequestID(r.Context())),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Int("bytes", ww.BytesWritten()),
				logger.Duration(time.Since(start)),
			)
		})
	}
}
