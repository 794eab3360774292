package plan_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ledgerly/ledgerly/pkg/limits"
	"github.com/ledgerly/ledgerly/pkg/plan"
)

func TestCompare(t *testing.T) {
	t.Parallel()

	plans := plan.DefaultPlans()
	free, plus, premium := plans[0], plans[1], plans[2]

	t.Run("upgrade raises every limit", func(t *testing.T) {
		t.Parallel()

		c := plan.Compare(free, plus)

		assert.True(t, c.IsUpgrade())
		assert.False(t, c.HasDecreases())
		assert.Len(t, c.IncreasedLimits, 4)
		assert.Equal(t, plan.LimitChange{From: 10, To: 500}, c.IncreasedLimits[limits.Transactions])
		assert.ElementsMatch(t, []plan.Feature{plan.FeatureReminders, plan.FeatureReports}, c.NewFeatures)
		assert.Empty(t, c.LostFeatures)
		assert.Equal(t, int64(499), c.PriceDelta)
	})

	t.Run("downgrade lowers limits and drops features", func(t *testing.T) {
		t.Parallel()

		c := plan.Compare(premium, free)

		assert.False(t, c.IsUpgrade())
		assert.True(t, c.HasDecreases())
		assert.Equal(t, plan.LimitChange{From: limits.Unlimited, To: 3}, c.DecreasedLimits[limits.Debts])
		assert.Contains(t, c.LostFeatures, plan.FeatureExport)
		assert.Equal(t, int64(-999), c.PriceDelta)
	})

	t.Run("values above the sentinel are unlimited", func(t *testing.T) {
		t.Parallel()

		bigger := premium
		bigger.Limits.Categories = limits.Unlimited * 10

		c := plan.Compare(premium, bigger)

		assert.Empty(t, c.IncreasedLimits)
		assert.Empty(t, c.DecreasedLimits)
	})

	t.Run("same plan has no changes", func(t *testing.T) {
		t.Parallel()

		c := plan.Compare(plus, plus)

		assert.False(t, c.IsUpgrade())
		assert.False(t, c.HasDecreases())
		assert.Zero(t, c.PriceDelta)
	})
}

func TestPlan_HasFeature(t *testing.T) {
	t.Parallel()

	plans := plan.DefaultPlans()
	free, plus := plans[0], plans[1]

	assert.True(t, free.HasFeature(plan.FeatureContacts))
	assert.False(t, free.HasFeature(plan.FeatureReports))
	assert.True(t, plus.HasFeature(plan.FeatureReports))
	assert.False(t, plan.Plan{}.HasFeature(plan.FeatureExport))
}
