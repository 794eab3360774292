package prompt_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerly/ledgerly/pkg/limits"
	"github.com/ledgerly/ledgerly/pkg/plan"
	"github.com/ledgerly/ledgerly/pkg/prompt"
)

func TestView(t *testing.T) {
	t.Parallel()

	catalog, err := plan.NewCatalog(context.Background(), plan.NewMemorySource(plan.DefaultPlans()...))
	require.NoError(t, err)
	free := catalog.Free()

	t.Run("denial headline and recommendation", func(t *testing.T) {
		t.Parallel()
		p := prompt.New()
		p.OpenForLimit(limits.Transactions, 10, 10)

		vm := prompt.View(p.State(), free, catalog)

		assert.Equal(t, "10/10 transactions used", vm.Headline)
		assert.Equal(t, 100, vm.Percentage)
		require.Len(t, vm.Plans, 3)

		assert.Equal(t, "free", vm.Plans[0].ID)
		assert.True(t, vm.Plans[0].Current)
		assert.Nil(t, vm.Plans[0].Comparison)

		assert.Equal(t, "plus", vm.Plans[1].ID)
		assert.True(t, vm.Plans[1].Recommended)
		require.NotNil(t, vm.Plans[1].Comparison)
		assert.True(t, vm.Plans[1].Comparison.IsUpgrade())

		assert.False(t, vm.Plans[2].Recommended)
		assert.Equal(t, 14, vm.Plans[2].TrialDays)
	})

	t.Run("debt denial uses its label", func(t *testing.T) {
		t.Parallel()
		p := prompt.New()
		p.OpenForLimit(limits.Debts, 3, 3)

		assert.Equal(t, "3/3 active debts used", prompt.View(p.State(), free, catalog).Headline)
	})

	t.Run("opened from plans page", func(t *testing.T) {
		t.Parallel()
		p := prompt.New()
		require.NoError(t, p.ViewPlans())

		vm := prompt.View(p.State(), free, catalog)

		assert.Equal(t, "Choose a plan", vm.Headline)
		assert.Zero(t, vm.Percentage)
		for _, opt := range vm.Plans {
			assert.False(t, opt.Recommended)
		}
	})
}

func TestPlanOptions_WithoutCurrent(t *testing.T) {
	t.Parallel()

	opts := prompt.PlanOptions(plan.DefaultPlans(), nil, "")

	require.Len(t, opts, 3)
	for _, opt := range opts {
		assert.False(t, opt.Current)
		assert.Nil(t, opt.Comparison)
	}
	assert.Contains(t, opts[1].MonthlyPrice, "4.99")
}
