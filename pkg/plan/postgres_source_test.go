package plan_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerly/ledgerly/pkg/limits"
	"github.com/ledgerly/ledgerly/pkg/plan"
)

// staticRows yields fixed rows; each row holds one value per scanned column.
type staticRows struct {
	rows   [][]any
	pos    int
	closed bool
}

func (r *staticRows) Close()                                       { r.closed = true }
func (r *staticRows) Err() error                                   { return nil }
func (r *staticRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *staticRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *staticRows) RawValues() [][]byte                          { return nil }
func (r *staticRows) Conn() *pgx.Conn                              { return nil }

func (r *staticRows) Next() bool {
	if r.closed || r.pos >= len(r.rows) {
		return false
	}
	r.pos++
	return true
}

func (r *staticRows) Scan(dest ...any) error {
	row := r.rows[r.pos-1]
	if len(dest) != len(row) {
		return errors.New("column count mismatch")
	}
	for i, d := range dest {
		reflect.ValueOf(d).Elem().Set(reflect.ValueOf(row[i]))
	}
	return nil
}

func (r *staticRows) Values() ([]any, error) { return r.rows[r.pos-1], nil }

type plansQuerier struct {
	rows *staticRows
	err  error
	sql  string
}

func (q *plansQuerier) Query(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
	q.sql = sql
	if q.err != nil {
		return nil, q.err
	}
	return q.rows, nil
}

func TestPostgresSource_Load(t *testing.T) {
	t.Parallel()

	t.Run("maps rows to plans", func(t *testing.T) {
		t.Parallel()
		yearly := int64(4990)
		q := &plansQuerier{rows: &staticRows{rows: [][]any{
			{"free", "Free", "Free", int64(0), (*int64)(nil), "USD",
				int64(10), int64(3), int64(2), int64(5),
				[]string{"contacts"}, true, 0},
			{"plus", "Plus", "Plus", int64(499), &yearly, "USD",
				int64(500), int64(20), int64(10), int64(25),
				[]string{"contacts", "reports"}, false, 7},
		}}}

		plans, err := plan.NewPostgresSource(q).Load(context.Background())
		require.NoError(t, err)

		assert.Contains(t, q.sql, "FROM plans")
		assert.True(t, q.rows.closed)
		require.Len(t, plans, 2)

		assert.Equal(t, "free", plans[0].ID)
		assert.Nil(t, plans[0].PriceYearly)
		assert.True(t, plans[0].IsActive)
		assert.Equal(t, limits.Limits{MonthlyTransactions: 10, ActiveDebts: 3, RecurringTransactions: 2, Categories: 5}, plans[0].Limits)
		assert.Equal(t, []plan.Feature{plan.FeatureContacts}, plans[0].Features)

		assert.Equal(t, int64(499), plans[1].PriceMonthly)
		require.NotNil(t, plans[1].PriceYearly)
		assert.Equal(t, int64(4990), *plans[1].PriceYearly)
		assert.False(t, plans[1].IsActive)
		assert.Equal(t, 7, plans[1].TrialDays)
		assert.True(t, plans[1].HasFeature(plan.FeatureReports))
	})

	t.Run("query error", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("relation \"plans\" does not exist")

		_, err := plan.NewPostgresSource(&plansQuerier{err: boom}).Load(context.Background())
		assert.ErrorIs(t, err, boom)
	})

	t.Run("requires a querier", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() { plan.NewPostgresSource(nil) })
	})
}
