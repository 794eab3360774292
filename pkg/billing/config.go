package billing

import (
	"errors"
	"fmt"
	"time"

	"github.com/ledgerly/ledgerly/pkg/usage"
)

// Config is the explicit billing configuration passed to the resolver.
type Config struct {
	Timezone        string `env:"BILLING_TIMEZONE" envDefault:"UTC"`         // IANA zone that defines calendar months
	FreePlanID      string `env:"BILLING_FREE_PLAN_ID"`                      // pins the free-tier fallback plan
	RecurringPolicy string `env:"BILLING_RECURRING_POLICY" envDefault:"all"` // "all" or "active"
}

// Location parses Timezone. Empty means UTC.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, errors.Join(ErrInvalidTimezone, fmt.Errorf("timezone %q: %w", c.Timezone, err))
	}
	return loc, nil
}

// AggregatorOptions converts the config into usage.Aggregator options.
func (c Config) AggregatorOptions() ([]usage.Option, error) {
	loc, err := c.Location()
	if err != nil {
		return nil, errors.Join(ErrInvalidBillingConf, err)
	}
	policy, err := usage.ParseRecurringPolicy(c.RecurringPolicy)
	if err != nil {
		return nil, errors.Join(ErrInvalidBillingConf, err)
	}
	return []usage.Option{
		usage.WithLocation(loc),
		usage.WithRecurringPolicy(policy),
	}, nil
}
