package usage_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerly/ledgerly/pkg/usage"
)

func TestMonthWindow(t *testing.T) {
	t.Parallel()

	t.Run("utc", func(t *testing.T) {
		t.Parallel()

		start, end := usage.MonthWindow(time.Date(2024, 2, 15, 13, 4, 5, 0, time.UTC), time.UTC)

		assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), start)
		assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), end)
	})

	t.Run("december rolls into next year", func(t *testing.T) {
		t.Parallel()

		start, end := usage.MonthWindow(time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC), nil)

		assert.Equal(t, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), start)
		assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), end)
	})

	t.Run("reference is read in the configured zone", func(t *testing.T) {
		t.Parallel()

		loc, err := time.LoadLocation("America/New_York")
		require.NoError(t, err)

		// 03:00 UTC on March 1st is still February 29th in New York
		start, end := usage.MonthWindow(time.Date(2024, 3, 1, 3, 0, 0, 0, time.UTC), loc)

		assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, loc), start)
		assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, loc), end)
		assert.True(t, start.Equal(time.Date(2024, 2, 1, 5, 0, 0, 0, time.UTC)))
	})
}
