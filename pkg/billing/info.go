package billing

import (
	"time"

	"github.com/ledgerly/ledgerly/pkg/limits"
	"github.com/ledgerly/ledgerly/pkg/plan"
)

// Info is the billing state of one user at ResolvedAt.
type Info struct {
	Plan          plan.Plan     `json:"plan"`
	Usage         limits.Usage  `json:"usage"`
	Limits        limits.Limits `json:"limits"`
	IsFree        bool          `json:"is_free"`
	ResolvedAt    time.Time     `json:"resolved_at"`
	PlanDefaulted bool          `json:"plan_defaulted"` // true when the free plan was used as a fallback
}

// UsageOf returns the used and allowed amounts for lt.
func (i *Info) UsageOf(lt limits.LimitType) (used, limit int64, err error) {
	if used, err = i.Usage.Get(lt); err != nil {
		return 0, 0, err
	}
	if limit, err = i.Limits.Get(lt); err != nil {
		return 0, 0, err
	}
	return used, limit, nil
}

// Percentages maps every limit type to its usage percentage.
func (i *Info) Percentages() map[limits.LimitType]int {
	out := make(map[limits.LimitType]int, len(limits.All()))
	for _, lt := range limits.All() {
		used, limit, err := i.UsageOf(lt)
		if err != nil {
			continue
		}
		out[lt] = limits.Percentage(used, limit)
	}
	return out
}
