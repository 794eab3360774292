package limits_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerly/ledgerly/pkg/limits"
)

func freeLimits() limits.Limits {
	return limits.Limits{
		MonthlyTransactions:   10,
		ActiveDebts:           3,
		RecurringTransactions: 2,
		Categories:            5,
	}
}

func TestCheck(t *testing.T) {
	t.Parallel()

	t.Run("one below the limit is allowed", func(t *testing.T) {
		t.Parallel()

		d, err := limits.Check(limits.Transactions, limits.Usage{MonthlyTransactions: 9}, freeLimits())

		require.NoError(t, err)
		assert.True(t, d.Allowed)
		assert.Equal(t, limits.ReasonWithinLimit, d.Reason)
		assert.Equal(t, int64(9), d.CurrentUsage)
		assert.Equal(t, int64(10), d.Limit)
	})

	t.Run("reaching the limit is denied", func(t *testing.T) {
		t.Parallel()

		d, err := limits.Check(limits.Transactions, limits.Usage{MonthlyTransactions: 10}, freeLimits())

		require.NoError(t, err)
		assert.False(t, d.Allowed)
		assert.True(t, d.Exceeded())
		assert.Equal(t, limits.ReasonLimitExceeded, d.Reason)
	})

	t.Run("over the limit is denied", func(t *testing.T) {
		t.Parallel()

		d, err := limits.Check(limits.Debts, limits.Usage{ActiveDebts: 7}, freeLimits())

		require.NoError(t, err)
		assert.False(t, d.Allowed)
	})

	t.Run("every dimension reads its own field", func(t *testing.T) {
		t.Parallel()

		usage := limits.Usage{MonthlyTransactions: 1, ActiveDebts: 3, RecurringTransactions: 1, Categories: 5}
		want := map[limits.LimitType]bool{
			limits.Transactions:          true,
			limits.Debts:                 false,
			limits.RecurringTransactions: true,
			limits.Categories:            false,
		}

		for _, lt := range limits.All() {
			d, err := limits.Check(lt, usage, freeLimits())
			require.NoError(t, err)
			assert.Equal(t, want[lt], d.Allowed, lt)
			assert.Equal(t, lt, d.LimitType)
		}
	})

	t.Run("unlimited sentinel never denies realistic usage", func(t *testing.T) {
		t.Parallel()

		lim := limits.Limits{
			MonthlyTransactions:   limits.Unlimited,
			ActiveDebts:           limits.Unlimited,
			RecurringTransactions: limits.Unlimited,
			Categories:            limits.Unlimited,
		}
		for _, used := range []int64{0, 1, 500, 99999} {
			for _, lt := range limits.All() {
				var usage limits.Usage
				require.NoError(t, usage.Set(lt, used))

				d, err := limits.Check(lt, usage, lim)
				require.NoError(t, err)
				assert.True(t, d.Allowed, "%s at %d", lt, used)
			}
		}
	})

	t.Run("unknown limit type fails closed", func(t *testing.T) {
		t.Parallel()

		d, err := limits.Check(limits.LimitType("storage"), limits.Usage{}, freeLimits())

		assert.ErrorIs(t, err, limits.ErrUnknownLimitType)
		assert.False(t, d.Allowed)
		assert.Equal(t, limits.ReasonUnverified, d.Reason)
		assert.False(t, d.Exceeded())
	})

	t.Run("same input gives the same decision", func(t *testing.T) {
		t.Parallel()

		usage := limits.Usage{Categories: 4}
		first, err := limits.Check(limits.Categories, usage, freeLimits())
		require.NoError(t, err)
		second, err := limits.Check(limits.Categories, usage, freeLimits())
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})
}

func TestAllowed_Boundary(t *testing.T) {
	t.Parallel()

	for limit := int64(0); limit < 50; limit++ {
		for used := int64(0); used < 60; used++ {
			assert.Equal(t, used < limit, limits.Allowed(used, limit), "used=%d limit=%d", used, limit)
		}
	}
}

func TestPercentage(t *testing.T) {
	t.Parallel()

	t.Run("rounds to nearest", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, 0, limits.Percentage(0, 10))
		assert.Equal(t, 50, limits.Percentage(5, 10))
		assert.Equal(t, 33, limits.Percentage(1, 3))
		assert.Equal(t, 67, limits.Percentage(2, 3))
		assert.Equal(t, 90, limits.Percentage(9, 10))
	})

	t.Run("caps at 100", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, 100, limits.Percentage(10, 10))
		assert.Equal(t, 100, limits.Percentage(25, 10))
	})

	t.Run("zero limit is full", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, 100, limits.Percentage(0, 0))
		assert.Equal(t, 100, limits.Percentage(3, 0))
	})

	t.Run("unlimited stays near zero", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, 0, limits.Percentage(500, limits.Unlimited))
	})

	t.Run("monotonic in usage", func(t *testing.T) {
		t.Parallel()

		for _, limit := range []int64{0, 1, 3, 7, 10, 100, limits.Unlimited} {
			prev := -1
			for used := int64(0); used <= 250; used++ {
				p := limits.Percentage(used, limit)
				assert.GreaterOrEqual(t, p, prev)
				assert.LessOrEqual(t, p, 100)
				prev = p
			}
		}
	})
}

func TestRemaining(t *testing.T) {
	t.Parallel()

	assert.Equal(t, int64(3), limits.Remaining(7, 10))
	assert.Equal(t, int64(0), limits.Remaining(12, 10))
	assert.Equal(t, limits.Unlimited, limits.Remaining(12, limits.Unlimited))
}
