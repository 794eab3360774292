package plan

import (
	"github.com/ledgerly/ledgerly/pkg/limits"
)

// LimitChange is a change of one quota between two plans.
type LimitChange struct {
	From int64 `json:"from"`
	To   int64 `json:"to"`
}

// Comparison contains the differences between two plans.
type Comparison struct {
	NewFeatures     []Feature                        `json:"new_features"`
	LostFeatures    []Feature                        `json:"lost_features"`
	IncreasedLimits map[limits.LimitType]LimitChange `json:"increased_limits"`
	DecreasedLimits map[limits.LimitType]LimitChange `json:"decreased_limits"`
	PriceDelta      int64                            `json:"price_delta"`
}

// IsUpgrade reports whether the target raises some limit or adds a feature
// without lowering anything.
func (c *Comparison) IsUpgrade() bool {
	gains := len(c.IncreasedLimits) > 0 || len(c.NewFeatures) > 0
	return gains && !c.HasDecreases()
}

// HasDecreases reports whether the target lowers a limit or drops a feature.
func (c *Comparison) HasDecreases() bool {
	return len(c.DecreasedLimits) > 0 || len(c.LostFeatures) > 0
}

// Compare returns the differences between the current and the target plan.
// Any value at or above limits.Unlimited counts as unlimited, so moving between
// two "unlimited" spellings is not a change.
func Compare(current, target Plan) *Comparison {
	c := &Comparison{
		NewFeatures:     make([]Feature, 0),
		LostFeatures:    make([]Feature, 0),
		IncreasedLimits: make(map[limits.LimitType]LimitChange),
		DecreasedLimits: make(map[limits.LimitType]LimitChange),
		PriceDelta:      target.PriceMonthly - current.PriceMonthly,
	}

	for _, f := range target.Features {
		if !current.HasFeature(f) {
			c.NewFeatures = append(c.NewFeatures, f)
		}
	}
	for _, f := range current.Features {
		if !target.HasFeature(f) {
			c.LostFeatures = append(c.LostFeatures, f)
		}
	}

	for _, lt := range limits.All() {
		from, _ := current.Limits.Get(lt)
		to, _ := target.Limits.Get(lt)
		from, to = min(from, limits.Unlimited), min(to, limits.Unlimited)

		switch {
		case to > from:
			c.IncreasedLimits[lt] = LimitChange{From: from, To: to}
		case to < from:
			c.DecreasedLimits[lt] = LimitChange{From: from, To: to}
		}
	}

	return c
}
