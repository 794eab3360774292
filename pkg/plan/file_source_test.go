package plan_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerly/ledgerly/pkg/limits"
	"github.com/ledgerly/ledgerly/pkg/plan"
)

const yamlPlans = `
plans:
  - id: free
    name: free
    display_name: Free
    price_monthly: 0
    currency: EUR
    is_active: true
    limits:
      monthly_transactions: 10
      active_debts: 3
      recurring_transactions: 2
      categories: 5
  - id: pro
    name: pro
    display_name: Pro
    price_monthly: 799
    price_yearly: 7990
    currency: EUR
    is_active: true
    features: [reports, export]
    limits:
      monthly_transactions: 999999
      active_debts: 999999
      recurring_transactions: 100
      categories: 100
`

const tomlPlans = `
[[plans]]
id = "free"
name = "free"
display_name = "Free"
price_monthly = 0
currency = "EUR"
is_active = true

[plans.limits]
monthly_transactions = 10
active_debts = 3
recurring_transactions = 2
categories = 5

[[plans]]
id = "pro"
name = "pro"
display_name = "Pro"
price_monthly = 799
price_yearly = 7990
currency = "EUR"
is_active = true
features = ["reports", "export"]

[plans.limits]
monthly_transactions = 999999
active_debts = 999999
recurring_transactions = 100
categories = 100
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func assertDecodedPlans(t *testing.T, plans []plan.Plan) {
	t.Helper()
	require.Len(t, plans, 2)

	assert.Equal(t, "free", plans[0].ID)
	assert.Equal(t, int64(10), plans[0].Limits.MonthlyTransactions)
	assert.Nil(t, plans[0].PriceYearly)

	pro := plans[1]
	assert.Equal(t, "Pro", pro.DisplayName)
	require.NotNil(t, pro.PriceYearly)
	assert.Equal(t, int64(7990), *pro.PriceYearly)
	assert.Equal(t, limits.Unlimited, pro.Limits.ActiveDebts)
	assert.Equal(t, []plan.Feature{plan.FeatureReports, plan.FeatureExport}, pro.Features)
}

func TestFileSource(t *testing.T) {
	t.Parallel()

	t.Run("yaml", func(t *testing.T) {
		t.Parallel()

		plans, err := plan.NewFileSource(writeFile(t, "plans.yaml", yamlPlans)).Load(context.Background())

		require.NoError(t, err)
		assertDecodedPlans(t, plans)
	})

	t.Run("toml", func(t *testing.T) {
		t.Parallel()

		plans, err := plan.NewFileSource(writeFile(t, "plans.toml", tomlPlans)).Load(context.Background())

		require.NoError(t, err)
		assertDecodedPlans(t, plans)
	})

	t.Run("file feeds a catalog", func(t *testing.T) {
		t.Parallel()

		c, err := plan.NewCatalog(context.Background(), plan.NewFileSource(writeFile(t, "plans.yml", yamlPlans)))

		require.NoError(t, err)
		assert.Equal(t, "free", c.Free().ID)
	})

	t.Run("unknown yaml key", func(t *testing.T) {
		t.Parallel()

		_, err := plan.NewFileSource(writeFile(t, "plans.yaml", "plans:\n  - id: free\n    colour: red\n")).Load(context.Background())

		assert.Error(t, err)
	})

	t.Run("unknown toml key", func(t *testing.T) {
		t.Parallel()

		_, err := plan.NewFileSource(writeFile(t, "plans.toml", "[[plans]]\nid = \"free\"\ncolour = \"red\"\n")).Load(context.Background())

		assert.Error(t, err)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		t.Parallel()

		_, err := plan.NewFileSource(writeFile(t, "plans.json", "{}")).Load(context.Background())

		assert.ErrorIs(t, err, plan.ErrUnsupportedFormat)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := plan.NewFileSource(filepath.Join(t.TempDir(), "nope.yaml")).Load(context.Background())

		assert.ErrorIs(t, err, plan.ErrSourceNotFound)
	})
}
