package prompt

import (
	"fmt"

	"github.com/ledgerly/ledgerly/pkg/limits"
	"github.com/ledgerly/ledgerly/pkg/plan"
)

// Catalog is the part of *plan.Catalog the view needs.
type Catalog interface {
	Active() []plan.Plan
	Upgrades(current plan.Plan, lt limits.LimitType) []plan.Plan
}

// PlanOption is one entry of the plan comparison list.
type PlanOption struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	MonthlyPrice string           `json:"monthly_price"`
	YearlyPrice  string           `json:"yearly_price,omitempty"`
	Limits       limits.Limits    `json:"limits"`
	Features     []plan.Feature   `json:"features"`
	TrialDays    int              `json:"trial_days,omitempty"`
	Current      bool             `json:"current"`
	Recommended  bool             `json:"recommended"`
	Comparison   *plan.Comparison `json:"comparison,omitempty"`
}

// ViewModel is what a UI needs to render the prompt.
type ViewModel struct {
	State      State        `json:"state"`
	Headline   string       `json:"headline"`
	Percentage int          `json:"percentage"`
	Plans      []PlanOption `json:"plans"`
}

// Headline describes the denial, e.g. "10/10 transactions used".
func Headline(s State) string {
	if s.LimitType == nil {
		return "Choose a plan"
	}
	return fmt.Sprintf("%d/%d %s used", s.CurrentUsage, s.Limit, s.LimitType.Label())
}

// View builds the display model for s. The recommended plan is the cheapest
// active plan that raises the denied limit.
func View(s State, current plan.Plan, catalog Catalog) ViewModel {
	vm := ViewModel{
		State:    s.copy(),
		Headline: Headline(s),
	}

	var recommended string
	if s.LimitType != nil {
		vm.Percentage = limits.Percentage(s.CurrentUsage, s.Limit)
		if ups := catalog.Upgrades(current, *s.LimitType); len(ups) > 0 {
			recommended = ups[0].ID
		}
	}

	vm.Plans = PlanOptions(catalog.Active(), &current, recommended)
	return vm
}

// PlanOptions lists plans for display. When current is set, every other plan
// carries its comparison against it.
func PlanOptions(plans []plan.Plan, current *plan.Plan, recommended string) []PlanOption {
	opts := make([]PlanOption, 0, len(plans))
	for _, p := range plans {
		opt := PlanOption{
			ID:           p.ID,
			Name:         p.Title(),
			MonthlyPrice: p.MonthlyPrice(),
			YearlyPrice:  p.YearlyPrice(),
			Limits:       p.Limits,
			Features:     p.Features,
			TrialDays:    p.TrialDays,
			Recommended:  p.ID == recommended,
		}
		if current != nil {
			opt.Current = p.ID == current.ID
			if !opt.Current {
				opt.Comparison = plan.Compare(*current, p)
			}
		}
		opts = append(opts, opt)
	}
	return opts
}
