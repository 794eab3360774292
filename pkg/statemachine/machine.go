package statemachine

import (
	"context"
	"fmt"
	"sync"
)

// machine keeps transitions as [fromState][event]Transition.
type machine struct {
	current     State
	transitions map[string]map[string]Transition
	mu          sync.RWMutex
}

func newMachine(initial State) *machine {
	return &machine{
		current:     initial,
		transitions: make(map[string]map[string]Transition),
	}
}

func (m *machine) Current() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

func (m *machine) add(t Transition) error {
	if t.From == nil || t.To == nil || t.Event == nil {
		return ErrInvalidTransition
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	from, event := t.From.Name(), t.Event.Name()
	if _, ok := m.transitions[from]; !ok {
		m.transitions[from] = make(map[string]Transition)
	}
	if _, ok := m.transitions[from][event]; ok {
		return fmt.Errorf("%w: %s on %s", ErrDuplicateTransition, from, event)
	}
	m.transitions[from][event] = t
	return nil
}

func (m *machine) Fire(ctx context.Context, event Event, data any) error {
	if event == nil {
		return ErrInvalidEvent
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.transitions[m.current.Name()][event.Name()]
	if !ok {
		return NewErrNoTransitionAvailable(m.current.Name(), event.Name())
	}

	for _, action := range t.Actions {
		if err := action(ctx, m.current, t.To, event, data); err != nil {
			return fmt.Errorf("action failed: %w", err)
		}
	}

	m.current = t.To
	return nil
}

func (m *machine) CanFire(event Event) bool {
	if event == nil {
		return false
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.transitions[m.current.Name()][event.Name()]
	return ok
}
