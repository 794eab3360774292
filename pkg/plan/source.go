package plan

import (
	"context"
	"sync"

	"github.com/ledgerly/ledgerly/pkg/limits"
)

// Source loads plan definitions.
type Source interface {
	Load(ctx context.Context) ([]Plan, error)
}

type memorySource struct {
	mu    sync.RWMutex
	plans []Plan
}

// NewMemorySource returns a Source backed by a deep copy of plans.
func NewMemorySource(plans ...Plan) Source {
	return &memorySource{plans: clonePlans(plans)}
}

// Load returns a deep copy of the stored plans.
func (s *memorySource) Load(ctx context.Context) ([]Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clonePlans(s.plans), nil
}

// DefaultPlans returns the built-in catalog.
func DefaultPlans() []Plan {
	plusYearly := int64(4990)
	premiumYearly := int64(9990)

	return []Plan{
		{
			ID:           "free",
			Name:         "free",
			DisplayName:  "Free",
			PriceMonthly: 0,
			Currency:     "USD",
			Limits: limits.Limits{
				MonthlyTransactions:   10,
				ActiveDebts:           3,
				RecurringTransactions: 2,
				Categories:            5,
			},
			Features: []Feature{FeatureContacts},
			IsActive: true,
		},
		{
			ID:           "plus",
			Name:         "plus",
			DisplayName:  "Plus",
			PriceMonthly: 499,
			PriceYearly:  &plusYearly,
			Currency:     "USD",
			Limits: limits.Limits{
				MonthlyTransactions:   500,
				ActiveDebts:           50,
				RecurringTransactions: 25,
				Categories:            50,
			},
			Features: []Feature{FeatureContacts, FeatureReminders, FeatureReports},
			IsActive: true,
		},
		{
			ID:           "premium",
			Name:         "premium",
			DisplayName:  "Premium",
			PriceMonthly: 999,
			PriceYearly:  &premiumYearly,
			Currency:     "USD",
			Limits: limits.Limits{
				MonthlyTransactions:   limits.Unlimited,
				ActiveDebts:           limits.Unlimited,
				RecurringTransactions: limits.Unlimited,
				Categories:            limits.Unlimited,
			},
			Features: []Feature{
				FeatureContacts,
				FeatureReminders,
				FeatureReports,
				FeatureExport,
				FeatureMultiCurrency,
				FeaturePrioritySupport,
			},
			IsActive:  true,
			TrialDays: 14,
		},
	}
}
