package httpserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/ledgerly/ledgerly/pkg/logger"
)

// Check is a named dependency probe.
type Check struct {
	Name  string
	Probe func(context.Context) error
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// HealthHandler answers 200 {"status":"ok"} when every probe passes and 503
// otherwise. Each probe gets timeout.
func HealthHandler(log *slog.Logger, timeout time.Duration, checks ...Check) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := healthResponse{Status: "ok"}
		code := http.StatusOK

		if len(checks) > 0 {
			resp.Checks = make(map[string]string, len(checks))
		}
		for _, c := range checks {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			err := c.Probe(ctx)
			cancel()
			if err != nil {
				log.WarnContext(r.Context(), "health check failed", slog.String("check", c.Name), logger.Error(err))
				resp.Checks[c.Name] = "unavailable"
				resp.Status = "degraded"
				code = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[c.Name] = "ok"
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(resp)
	}
}
