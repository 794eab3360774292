package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerly/ledgerly/pkg/logger"
)

type ctxKey struct{}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("json by default", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf))

		log.Info("hello", logger.PlanID("plus"))

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "INFO", entry["level"])
		assert.Equal(t, "hello", entry["msg"])
		assert.Equal(t, "plus", entry["plan_id"])
	})

	t.Run("debug is filtered at info", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		logger.New(logger.WithOutput(buf)).Debug("hidden")
		assert.Empty(t, buf.String())
	})

	t.Run("invalid format panics", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() { logger.New(logger.WithFormat("xml")) })
	})

	t.Run("context extractors", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(
			logger.WithOutput(buf),
			logger.WithContextValue("tenant", ctxKey{}),
			logger.WithContextExtractors(nil, func(ctx context.Context) (slog.Attr, bool) {
				return slog.String("static", "yes"), true
			}),
		)

		ctx := context.WithValue(context.Background(), ctxKey{}, "acme")
		log.With(slog.String("component", "gate")).InfoContext(ctx, "checked")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "acme", entry["tenant"])
		assert.Equal(t, "yes", entry["static"])
		assert.Equal(t, "gate", entry["component"])
	})
}

func TestWithEnvironment(t *testing.T) {
	t.Parallel()

	t.Run("development", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithEnvironment("", "ledgerly"), logger.WithOutput(buf))

		log.Debug("msg")

		out := buf.String()
		assert.Contains(t, out, "level=DEBUG")
		assert.Contains(t, out, "service=ledgerly")
		assert.Contains(t, out, "env=development")
	})

	t.Run("production", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithEnvironment("prod", "ledgerly"), logger.WithOutput(buf))

		log.Debug("hidden")
		log.Info("msg")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "production", entry["env"])
		assert.Equal(t, "ledgerly", entry["service"])
	})
}

func TestAttrs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.Attr{}, logger.Error(nil))
	assert.Equal(t, "error", logger.Error(errors.New("x")).Key)
	assert.Equal(t, slog.Attr{}, logger.Errors(nil, nil))
	assert.Equal(t, "errors", logger.Errors(nil, errors.New("x")).Key)
	assert.Equal(t, "user_id", logger.UserID("u").Key)
	assert.Equal(t, "request_id", logger.RequestID("r").Key)
}
