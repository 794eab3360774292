package plan

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ledgerly/ledgerly/pkg/limits"
)

// Querier is the subset of pgxpool.Pool used by the Postgres source.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type postgresSource struct {
	db Querier
}

// NewPostgresSource returns a Source reading the plans table.
func NewPostgresSource(db Querier) Source {
	if db == nil {
		panic("plan: postgres querier is required")
	}
	return &postgresSource{db: db}
}

const selectPlans = `
SELECT id, name, display_name, price_monthly, price_yearly, currency,
       limit_monthly_transactions, limit_active_debts,
       limit_recurring_transactions, limit_categories,
       features, is_active, trial_days
FROM plans
ORDER BY price_monthly, id`

func (s *postgresSource) Load(ctx context.Context) ([]Plan, error) {
	rows, err := s.db.Query(ctx, selectPlans)
	if err != nil {
		return nil, fmt.Errorf("query plans: %w", err)
	}

	plans, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Plan, error) {
		var (
			p        Plan
			lim      limits.Limits
			features []string
		)
		err := row.Scan(
			&p.ID, &p.Name, &p.DisplayName, &p.PriceMonthly, &p.PriceYearly, &p.Currency,
			&lim.MonthlyTransactions, &lim.ActiveDebts,
			&lim.RecurringTransactions, &lim.Categories,
			&features, &p.IsActive, &p.TrialDays,
		)
		if err != nil {
			return Plan{}, err
		}
		p.Limits = lim
		for _, f := range features {
			p.Features = append(p.Features, Feature(f))
		}
		return p, nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan plans: %w", err)
	}
	return plans, nil
}
