package httpserver_test

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerly/ledgerly/pkg/httpserver"
	"github.com/ledgerly/ledgerly/pkg/logger"
)

func testConfig() httpserver.Config {
	return httpserver.Config{
		ReadHeaderTimeout: time.Second,
		ShutdownTimeout:   time.Second,
	}
}

func TestServer_RunAndShutdown(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := httpserver.New(testConfig(), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}), httpserver.WithListener(ln))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	resp, err := http.Get("http://" + ln.Addr().String())
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, http.StatusTeapot, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		require.Fail(t, "server did not stop")
	}
}

func TestServer_ListenFailure(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	cfg := testConfig()
	cfg.Addr = ln.Addr().String()
	err = httpserver.New(cfg, nil).Run(context.Background())
	assert.ErrorIs(t, err, httpserver.ErrStart)
}

func TestHealthHandler(t *testing.T) {
	t.Parallel()

	t.Run("no checks", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		httpserver.HealthHandler(logger.Discard(), time.Second)(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	})

	t.Run("failing dependency", func(t *testing.T) {
		t.Parallel()
		h := httpserver.HealthHandler(logger.Discard(), time.Second,
			httpserver.Check{Name: "postgres", Probe: func(context.Context) error { return nil }},
			httpserver.Check{Name: "redis", Probe: func(context.Context) error { return errors.New("down") }},
		)
		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.JSONEq(t, `{"status":"degraded","checks":{"postgres":"ok","redis":"unavailable"}}`, rec.Body.String())
	})
}
