package prompt

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/ledgerly/ledgerly/pkg/limits"
	"github.com/ledgerly/ledgerly/pkg/statemachine"
)

// Status is the state of the prompt machine.
type Status string

func (s Status) Name() string { return string(s) }

const (
	StatusClosed Status = "closed"
	StatusOpen   Status = "open"
)

// Event drives the prompt machine.
type Event string

func (e Event) Name() string { return string(e) }

const (
	EventLimitDenied Event = "limit_denied"
	EventViewPlans   Event = "view_plans"
	EventDismiss     Event = "dismiss"
	EventClose       Event = "close"
	EventUpgrade     Event = "upgrade"
)

// State is the observable prompt state. LimitType is nil when the prompt is
// closed or was opened without a denial.
type State struct {
	IsOpen       bool              `json:"is_open"`
	LimitType    *limits.LimitType `json:"limit_type"`
	CurrentUsage int64             `json:"current_usage"`
	Limit        int64             `json:"limit"`
}

// Checkout is the handoff produced by Upgrade.
type Checkout struct {
	PlanID string `json:"plan_id"`
	From   State  `json:"from"` // prompt state the upgrade was chosen from
}

type subscriber struct {
	fn     func(State)
	active atomic.Bool
}

// Prompt is the upgrade prompt machine. Safe for concurrent use.
type Prompt struct {
	mu    sync.RWMutex // guards state; held across every Fire
	sm    statemachine.StateMachine
	state State

	subMu  sync.Mutex
	subs   map[uint64]*subscriber
	nextID uint64
}

// denial is the data carried by EventLimitDenied.
type denial struct {
	limitType    limits.LimitType
	currentUsage int64
	limit        int64
}

// New returns a closed Prompt.
func New() *Prompt {
	p := &Prompt{subs: make(map[uint64]*subscriber)}
	open := statemachine.WithAction(p.openForDenial)
	reset := statemachine.WithAction(p.reset)
	p.sm = statemachine.MustNew(StatusClosed,
		statemachine.WithTransition(StatusClosed, StatusOpen, EventLimitDenied, open),
		statemachine.WithTransition(StatusClosed, StatusOpen, EventViewPlans, statemachine.WithAction(p.openEmpty)),
		statemachine.WithTransition(StatusOpen, StatusOpen, EventLimitDenied, open),
		statemachine.WithTransition(StatusOpen, StatusClosed, EventDismiss, reset),
		statemachine.WithTransition(StatusOpen, StatusClosed, EventClose, reset),
		statemachine.WithTransition(StatusOpen, StatusOpen, EventUpgrade),
	)
	return p
}

// Status returns the current status.
func (p *Prompt) Status() Status {
	return p.sm.Current().(Status)
}

// Can reports whether ev is accepted in the current status.
func (p *Prompt) Can(ev Event) bool {
	return p.sm.CanFire(ev)
}

// State returns a copy of the current state.
func (p *Prompt) State() State {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state.copy()
}

// OpenForLimit opens the prompt for a quota denial, replacing any previous
// denial context.
func (p *Prompt) OpenForLimit(lt limits.LimitType, currentUsage, limit int64) {
	_, _ = p.fire(EventLimitDenied, denial{limitType: lt, currentUsage: currentUsage, limit: limit})
}

// ViewPlans opens the prompt without a denial context.
func (p *Prompt) ViewPlans() error {
	_, err := p.fire(EventViewPlans, nil)
	return err
}

// Dismiss closes the prompt and resets its context.
func (p *Prompt) Dismiss() error {
	_, err := p.fire(EventDismiss, nil)
	return err
}

// Close closes the prompt and resets its context.
func (p *Prompt) Close() error {
	_, err := p.fire(EventClose, nil)
	return err
}

// Upgrade records the user's plan choice and returns the checkout handoff.
// The prompt stays open.
func (p *Prompt) Upgrade(planID string) (Checkout, error) {
	if planID == "" {
		return Checkout{}, ErrPlanRequired
	}
	from, err := p.fire(EventUpgrade, nil)
	if err != nil {
		return Checkout{}, err
	}
	return Checkout{PlanID: planID, From: from}, nil
}

// Subscribe registers fn to be called with the new state after every
// transition. Calling the returned func stops further calls; it is idempotent.
func (p *Prompt) Subscribe(fn func(State)) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}

	sub := &subscriber{fn: fn}
	sub.active.Store(true)

	p.subMu.Lock()
	id := p.nextID
	p.nextID++
	p.subs[id] = sub
	p.subMu.Unlock()

	return func() {
		sub.active.Store(false)
		p.subMu.Lock()
		delete(p.subs, id)
		p.subMu.Unlock()
	}
}

// fire applies ev and notifies subscribers once the lock is released. It
// returns the state as it was before the transition.
func (p *Prompt) fire(ev Event, data any) (State, error) {
	p.mu.Lock()
	before := p.state.copy()
	if err := p.sm.Fire(context.Background(), ev, data); err != nil {
		p.mu.Unlock()
		return State{}, err
	}
	after := p.state.copy()
	p.mu.Unlock()

	p.notify(after)
	return before, nil
}

// Actions run inside fire, with p.mu held.

func (p *Prompt) openForDenial(_ context.Context, _, _ statemachine.State, _ statemachine.Event, data any) error {
	d, ok := data.(denial)
	if !ok {
		return ErrInvalidDenial
	}
	lt := d.limitType
	p.state = State{IsOpen: true, LimitType: &lt, CurrentUsage: d.currentUsage, Limit: d.limit}
	return nil
}

func (p *Prompt) openEmpty(context.Context, statemachine.State, statemachine.State, statemachine.Event, any) error {
	p.state = State{IsOpen: true}
	return nil
}

func (p *Prompt) reset(context.Context, statemachine.State, statemachine.State, statemachine.Event, any) error {
	p.state = State{}
	return nil
}

func (p *Prompt) notify(s State) {
	p.subMu.Lock()
	subs := make([]*subscriber, 0, len(p.subs))
	for _, sub := range p.subs {
		subs = append(subs, sub)
	}
	p.subMu.Unlock()

	for _, sub := range subs {
		if sub.active.Load() {
			sub.fn(s.copy())
		}
	}
}

func (s State) copy() State {
	if s.LimitType != nil {
		lt := *s.LimitType
		s.LimitType = &lt
	}
	return s
}
