package statemachine_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerly/ledgerly/pkg/statemachine"
)

type state string

func (s state) Name() string { return string(s) }

type event string

func (e event) Name() string { return string(e) }

const (
	hidden  = state("hidden")
	visible = state("visible")

	show = event("show")
	hide = event("hide")
)

func TestStateMachine_Fire(t *testing.T) {
	t.Parallel()

	t.Run("follows defined transitions", func(t *testing.T) {
		t.Parallel()
		sm := statemachine.MustNew(hidden,
			statemachine.WithTransition(hidden, visible, show),
			statemachine.WithTransition(visible, hidden, hide),
		)
		ctx := context.Background()

		assert.Equal(t, hidden, sm.Current())
		assert.True(t, sm.CanFire(show))
		assert.False(t, sm.CanFire(hide))

		require.NoError(t, sm.Fire(ctx, show, nil))
		assert.Equal(t, visible, sm.Current())

		require.NoError(t, sm.Fire(ctx, hide, nil))
		assert.Equal(t, hidden, sm.Current())
	})

	t.Run("rejects undefined transitions", func(t *testing.T) {
		t.Parallel()
		sm := statemachine.MustNew(hidden,
			statemachine.WithTransition(hidden, visible, show),
		)

		err := sm.Fire(context.Background(), hide, nil)
		require.Error(t, err)
		assert.True(t, statemachine.IsNoTransitionAvailableError(err))

		var noTransition *statemachine.ErrNoTransitionAvailable
		require.ErrorAs(t, err, &noTransition)
		assert.Equal(t, "hidden", noTransition.StateName)
		assert.Equal(t, "hide", noTransition.EventName)
		assert.Equal(t, hidden, sm.Current())
	})

	t.Run("nil event", func(t *testing.T) {
		t.Parallel()
		sm := statemachine.MustNew(hidden)

		assert.ErrorIs(t, sm.Fire(context.Background(), nil, nil), statemachine.ErrInvalidEvent)
		assert.False(t, sm.CanFire(nil))
	})
}

func TestStateMachine_Actions(t *testing.T) {
	t.Parallel()

	t.Run("run in order with transition data", func(t *testing.T) {
		t.Parallel()
		var calls []string
		record := func(tag string) statemachine.Action {
			return func(_ context.Context, from, to statemachine.State, ev statemachine.Event, data any) error {
				calls = append(calls, tag+":"+from.Name()+">"+to.Name()+":"+ev.Name()+":"+data.(string))
				return nil
			}
		}
		sm := statemachine.MustNew(hidden,
			statemachine.WithTransition(hidden, visible, show,
				statemachine.WithAction(record("a")),
				statemachine.WithAction(nil),
				statemachine.WithAction(record("b")),
			),
		)

		require.NoError(t, sm.Fire(context.Background(), show, "x"))
		assert.Equal(t, []string{"a:hidden>visible:show:x", "b:hidden>visible:show:x"}, calls)
	})

	t.Run("failing action keeps the state", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		sm := statemachine.MustNew(hidden,
			statemachine.WithTransition(hidden, visible, show,
				statemachine.WithAction(func(context.Context, statemachine.State, statemachine.State, statemachine.Event, any) error {
					return boom
				}),
			),
		)

		err := sm.Fire(context.Background(), show, nil)
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, hidden, sm.Current())
	})
}

func TestNew_InvalidDefinitions(t *testing.T) {
	t.Parallel()

	_, err := statemachine.New(nil)
	assert.ErrorIs(t, err, statemachine.ErrInvalidInitialState)

	_, err = statemachine.New(hidden, statemachine.WithTransition(hidden, nil, show))
	assert.ErrorIs(t, err, statemachine.ErrInvalidTransition)

	_, err = statemachine.New(hidden,
		statemachine.WithTransition(hidden, visible, show),
		statemachine.WithTransition(hidden, hidden, show),
	)
	assert.ErrorIs(t, err, statemachine.ErrDuplicateTransition)

	assert.Panics(t, func() { statemachine.MustNew(nil) })
}

func TestStateMachine_Concurrent(t *testing.T) {
	t.Parallel()
	sm := statemachine.MustNew(hidden,
		statemachine.WithTransition(hidden, visible, show),
		statemachine.WithTransition(visible, visible, show),
	)

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = sm.Fire(context.Background(), show, nil)
			_ = sm.Current()
			_ = sm.CanFire(hide)
		}()
	}
	wg.Wait()

	assert.Equal(t, visible, sm.Current())
}
