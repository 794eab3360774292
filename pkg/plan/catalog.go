package plan

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/ledgerly/ledgerly/pkg/limits"
)

// CatalogOption configures a Catalog.
type CatalogOption func(*catalogConfig)

type catalogConfig struct {
	freePlanID string
}

// WithFreePlanID pins the plan used as the free-tier fallback.
// Empty ids are ignored and the cheapest active free plan is picked instead.
func WithFreePlanID(id string) CatalogOption {
	return func(c *catalogConfig) {
		if id != "" {
			c.freePlanID = id
		}
	}
}

// Catalog is the validated, read-only set of plans.
type Catalog struct {
	plans  map[string]Plan
	order  []string // active plans, cheapest first
	freeID string
}

// NewCatalog loads plans from src and validates them.
func NewCatalog(ctx context.Context, src Source, opts ...CatalogOption) (*Catalog, error) {
	if src == nil {
		panic("plan: Source is required")
	}

	cfg := &catalogConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	loaded, err := src.Load(ctx)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadPlans, err)
	}

	for _, p := range loaded {
		if err := p.Validate(); err != nil {
			return nil, err
		}
	}

	plans, err := byID(clonePlans(loaded))
	if err != nil {
		return nil, err
	}

	freeID, err := pickFree(plans, cfg.freePlanID)
	if err != nil {
		return nil, err
	}

	active := make([]Plan, 0, len(plans))
	for _, p := range plans {
		if p.IsActive {
			active = append(active, p)
		}
	}
	slices.SortFunc(active, func(a, b Plan) int {
		return cmp.Or(cmp.Compare(a.PriceMonthly, b.PriceMonthly), cmp.Compare(a.ID, b.ID))
	})
	order := make([]string, 0, len(active))
	for _, p := range active {
		order = append(order, p.ID)
	}

	return &Catalog{plans: plans, order: order, freeID: freeID}, nil
}

// Get returns the plan with the given id, active or not.
func (c *Catalog) Get(id string) (Plan, error) {
	p, ok := c.plans[id]
	if !ok {
		return Plan{}, ErrPlanNotFound
	}
	return p.clone(), nil
}

// Free returns the free-tier plan users fall back to.
func (c *Catalog) Free() Plan {
	return c.plans[c.freeID].clone()
}

// Active returns the active plans ordered by monthly price.
func (c *Catalog) Active() []Plan {
	out := make([]Plan, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.plans[id].clone())
	}
	return out
}

// Upgrades returns the active plans that raise the given limit above the
// current plan's value, cheapest first.
func (c *Catalog) Upgrades(current Plan, lt limits.LimitType) []Plan {
	have, err := current.Limits.Get(lt)
	if err != nil {
		return nil
	}
	var out []Plan
	for _, p := range c.Active() {
		if p.ID == current.ID {
			continue
		}
		if v, _ := p.Limits.Get(lt); v > have {
			out = append(out, p)
		}
	}
	return out
}

// Len returns the number of plans, including inactive ones.
func (c *Catalog) Len() int {
	return len(c.plans)
}

func pickFree(plans map[string]Plan, pinned string) (string, error) {
	if pinned != "" {
		p, ok := plans[pinned]
		if !ok {
			return "", errors.Join(ErrNoFreePlan, fmt.Errorf("configured free plan %q: %w", pinned, ErrPlanNotFound))
		}
		if !p.IsActive || !p.IsFree() {
			return "", errors.Join(ErrNoFreePlan, fmt.Errorf("configured free plan %q must be active and free", pinned))
		}
		return pinned, nil
	}

	var best *Plan
	for _, p := range plans {
		if !p.IsActive || !p.IsFree() {
			continue
		}
		if best == nil || lessTier(p, *best) {
			candidate := p
			best = &candidate
		}
	}
	if best == nil {
		return "", ErrNoFreePlan
	}
	return best.ID, nil
}

// lessTier orders plans by total quota, then id.
func lessTier(a, b Plan) bool {
	ta, tb := tier(a), tier(b)
	if ta != tb {
		return ta < tb
	}
	return a.ID < b.ID
}

func tier(p Plan) int64 {
	var total int64
	for _, lt := range limits.All() {
		v, _ := p.Limits.Get(lt)
		total += min(v, limits.Unlimited)
	}
	return total
}
