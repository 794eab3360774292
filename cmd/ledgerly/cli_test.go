package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryEnv(t *testing.T) {
	t.Helper()
	t.Setenv("APP_ENV", "development")
	t.Setenv("USAGE_BACKEND", "memory")
	t.Setenv("SUBSCRIPTION_BACKEND", "memory")
	t.Setenv("PLANS_SOURCE", "builtin")
	t.Setenv("BILLING_TIMEZONE", "UTC")
	t.Setenv("BILLING_FREE_PLAN_ID", "")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestPlansCommand(t *testing.T) {
	memoryEnv(t)

	out, err := run(t, "plans")
	require.NoError(t, err)
	assert.Contains(t, out, "free")
	assert.Contains(t, out, "premium")
	assert.Contains(t, out, "unlimited")

	out, err = run(t, "plans", "--json")
	require.NoError(t, err)
	var plans []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &plans))
	assert.Len(t, plans, 3)
}

func TestPlansCommand_FileSource(t *testing.T) {
	memoryEnv(t)

	path := filepath.Join(t.TempDir(), "plans.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`plans:
  - id: basic
    name: basic
    display_name: Basic
    price_monthly: 0
    currency: USD
    limits:
      monthly_transactions: 20
      active_debts: 5
      recurring_transactions: 3
      categories: 10
    features: []
    is_active: true
`), 0o600))
	t.Setenv("PLANS_SOURCE", "file")
	t.Setenv("PLANS_FILE", path)

	out, err := run(t, "plans")
	require.NoError(t, err)
	assert.Contains(t, out, "basic")
	assert.NotContains(t, out, "premium")
}

func TestUsageCommand(t *testing.T) {
	memoryEnv(t)

	out, err := run(t, "usage", uuid.NewString())
	require.NoError(t, err)
	assert.Contains(t, out, "plan: Free (free)")
	assert.Contains(t, out, "transactions")

	_, err = run(t, "usage", "nobody")
	assert.Error(t, err)
}

func TestWireApp_InvalidBackend(t *testing.T) {
	memoryEnv(t)
	t.Setenv("USAGE_BACKEND", "sqlite")

	_, err := wireApp(context.Background(), wireOptions{logOutput: &bytes.Buffer{}})
	assert.Error(t, err)
}
