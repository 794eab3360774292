package plan

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/ledgerly/ledgerly/pkg/limits"
)

// Feature is a plan capability flag shown in the plan comparison.
type Feature string

const (
	FeatureReports         Feature = "reports"
	FeatureExport          Feature = "export"
	FeatureReminders       Feature = "reminders"
	FeatureContacts        Feature = "contacts"
	FeatureMultiCurrency   Feature = "multi_currency"
	FeaturePrioritySupport Feature = "priority_support"
)

// Plan describes a subscription tier.
// Prices are in the smallest currency unit, e.g. 499 is 4.99 USD.
type Plan struct {
	ID           string        `json:"id" yaml:"id" toml:"id"`
	Name         string        `json:"name" yaml:"name" toml:"name"`
	DisplayName  string        `json:"display_name" yaml:"display_name" toml:"display_name"`
	PriceMonthly int64         `json:"price_monthly" yaml:"price_monthly" toml:"price_monthly"`
	PriceYearly  *int64        `json:"price_yearly,omitempty" yaml:"price_yearly,omitempty" toml:"price_yearly,omitempty"`
	Currency     string        `json:"currency" yaml:"currency" toml:"currency"`
	Limits       limits.Limits `json:"limits" yaml:"limits" toml:"limits"`
	Features     []Feature     `json:"features" yaml:"features" toml:"features"`
	IsActive     bool          `json:"is_active" yaml:"is_active" toml:"is_active"`
	TrialDays    int           `json:"trial_days,omitempty" yaml:"trial_days,omitempty" toml:"trial_days,omitempty"`
}

// IsFree reports whether the plan costs nothing per month.
func (p Plan) IsFree() bool {
	return p.PriceMonthly == 0
}

// HasFeature reports whether f is enabled for the plan.
func (p Plan) HasFeature(f Feature) bool {
	return slices.Contains(p.Features, f)
}

// Title returns DisplayName, falling back to Name and then ID.
func (p Plan) Title() string {
	switch {
	case p.DisplayName != "":
		return p.DisplayName
	case p.Name != "":
		return p.Name
	}
	return p.ID
}

// TrialEndsAt returns when a trial started at startedAt ends.
// Returns startedAt unchanged if the plan has no trial.
func (p Plan) TrialEndsAt(startedAt time.Time) time.Time {
	if p.TrialDays <= 0 {
		return startedAt
	}
	return startedAt.AddDate(0, 0, p.TrialDays).UTC()
}

// Validate checks the plan invariants.
func (p Plan) Validate() error {
	var errs []error
	if strings.TrimSpace(p.ID) == "" {
		errs = append(errs, errors.New("plan id is empty"))
	}
	if p.PriceMonthly < 0 {
		errs = append(errs, fmt.Errorf("plan %s has negative monthly price: %d", p.ID, p.PriceMonthly))
	}
	if p.PriceYearly != nil && *p.PriceYearly < 0 {
		errs = append(errs, fmt.Errorf("plan %s has negative yearly price: %d", p.ID, *p.PriceYearly))
	}
	if len(p.Currency) != 3 {
		errs = append(errs, fmt.Errorf("plan %s has invalid currency %q", p.ID, p.Currency))
	}
	if err := p.Limits.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("plan %s: %w", p.ID, err))
	}
	if p.TrialDays < 0 {
		errs = append(errs, fmt.Errorf("plan %s has negative trial days: %d", p.ID, p.TrialDays))
	}
	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidPlanConfiguration}, errs...)...)
	}
	return nil
}

// clone returns a deep copy so callers cannot mutate catalog state.
func (p Plan) clone() Plan {
	c := p
	c.Features = slices.Clone(p.Features)
	if p.PriceYearly != nil {
		v := *p.PriceYearly
		c.PriceYearly = &v
	}
	return c
}

func clonePlans(plans []Plan) []Plan {
	out := make([]Plan, 0, len(plans))
	for _, p := range plans {
		out = append(out, p.clone())
	}
	return out
}

// byID indexes plans and reports duplicates.
func byID(plans []Plan) (map[string]Plan, error) {
	m := make(map[string]Plan, len(plans))
	for _, p := range plans {
		if _, exists := m[p.ID]; exists {
			return nil, errors.Join(ErrDuplicatePlanID, fmt.Errorf("plan id %q", p.ID))
		}
		m[p.ID] = p
	}
	return m, nil
}
