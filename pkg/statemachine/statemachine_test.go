package statemachine_test

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrymomot/regform/pkg/statemachine"
)

const (
	Hidden  = statemachine.StringState("hidden")
	Visible = statemachine.StringState("visible")

	Show    = statemachine.StringEvent("show")
	Dismiss = statemachine.StringEvent("dismiss")
	Expire  = statemachine.StringEvent("expire")
)

func TestStateMachine(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("Basic Transitions", func(t *testing.T) {
		t.Parallel()
		sm := statemachine.MustNew(Hidden,
			statemachine.WithTransition(Hidden, Visible, Show),
			statemachine.WithTransition(Visible, Visible, Show),
			statemachine.WithTransition(Visible, Hidden, Dismiss),
		)

		if !sm.Is(Hidden) {
			t.Fatalf("Expected initial state to be %s, got %s", Hidden, sm.Current())
		}
		if err := sm.Fire(ctx, Dismiss, nil); err == nil {
			t.Fatal("Expected Dismiss to fail in Hidden state")
		}
		if !sm.Is(Hidden) {
			t.Fatalf("Expected a failed Fire to keep %s, got %s", Hidden, sm.Current())
		}
		if err := sm.Fire(ctx, Show, nil); err != nil {
			t.Fatalf("Failed to fire Show: %v", err)
		}
		if err := sm.Fire(ctx, Show, nil); err != nil {
			t.Fatalf("Failed to fire Show again: %v", err)
		}
		if !sm.Is(Visible) {
			t.Fatalf("Expected state to be %s, got %s", Visible, sm.Current())
		}
		if err := sm.Fire(ctx, Dismiss, nil); err != nil {
			t.Fatalf("Failed to fire Dismiss: %v", err)
		}
		if !sm.Is(Hidden) {
			t.Fatalf("Expected state to be %s, got %s", Hidden, sm.Current())
		}
	})

	t.Run("Guards", func(t *testing.T) {
		t.Parallel()
		current := "a"
		sm := statemachine.MustNew(Visible,
			statemachine.WithTransition(Visible, Hidden, Expire,
				statemachine.WithGuard(func(_ context.Context, _ statemachine.State, _ statemachine.Event, data any) bool {
					id, _ := data.(string)
					return id == current
				}),
			),
		)

		err := sm.Fire(ctx, Expire, "stale")
		if !statemachine.IsTransitionRejectedError(err) {
			t.Fatalf("Expected guard rejection, got %v", err)
		}
		if !sm.Is(Visible) {
			t.Fatalf("Expected a rejected Fire to keep %s, got %s", Visible, sm.Current())
		}
		if err := sm.Fire(ctx, Expire, "a"); err != nil {
			t.Fatalf("Failed to fire Expire: %v", err)
		}
		if !sm.Is(Hidden) {
			t.Fatalf("Expected state to be %s, got %s", Hidden, sm.Current())
		}
	})

	t.Run("First Passing Transition Wins", func(t *testing.T) {
		t.Parallel()
		deny := func(context.Context, statemachine.State, statemachine.Event, any) bool { return false }
		sm := statemachine.MustNew(Hidden,
			statemachine.WithTransition(Hidden, Hidden, Show, statemachine.WithGuard(deny)),
			statemachine.WithTransition(Hidden, Visible, Show),
		)
		if err := sm.Fire(ctx, Show, nil); err != nil {
			t.Fatalf("Failed to fire Show: %v", err)
		}
		if !sm.Is(Visible) {
			t.Fatalf("Expected state to be %s, got %s", Visible, sm.Current())
		}
	})

	t.Run("Actions", func(t *testing.T) {
		t.Parallel()
		var calls []string
		record := func(name string) statemachine.Action {
			return func(_ context.Context, from, to statemachine.State, _ statemachine.Event, _ any) error {
				calls = append(calls, name+":"+from.Name()+"->"+to.Name())
				return nil
			}
		}
		fail := func(context.Context, statemachine.State, statemachine.State, statemachine.Event, any) error {
			return errors.New("boom")
		}

		sm := statemachine.MustNew(Hidden,
			statemachine.WithTransition(Hidden, Visible, Show,
				statemachine.WithAction(record("first")),
				statemachine.WithAction(nil),
				statemachine.WithAction(record("second")),
			),
			statemachine.WithTransition(Visible, Hidden, Dismiss, statemachine.WithAction(fail)),
		)

		if err := sm.Fire(ctx, Show, nil); err != nil {
			t.Fatalf("Failed to fire Show: %v", err)
		}
		if len(calls) != 2 || calls[0] != "first:hidden->visible" || calls[1] != "second:hidden->visible" {
			t.Fatalf("Unexpected action calls: %v", calls)
		}

		err := sm.Fire(ctx, Dismiss, nil)
		if err == nil || err.Error() != "action failed: boom" {
			t.Fatalf("Expected action failure, got %v", err)
		}
		if !sm.Is(Visible) {
			t.Fatalf("Failed action must keep state %s, got %s", Visible, sm.Current())
		}
	})

	t.Run("Error Handling", func(t *testing.T) {
		t.Parallel()
		sm := statemachine.MustNew(Hidden)

		err := sm.Fire(ctx, Dismiss, nil)
		if !statemachine.IsNoTransitionAvailableError(err) {
			t.Fatalf("Expected no-transition error, got %v", err)
		}
		if err.Error() != "no transition available from state 'hidden' for event 'dismiss'" {
			t.Fatalf("Unexpected message: %s", err)
		}
		if err := sm.Fire(ctx, nil, nil); !errors.Is(err, statemachine.ErrInvalidEvent) {
			t.Fatalf("Expected ErrInvalidEvent, got %v", err)
		}
		if err := sm.AddTransition(nil, Visible, Show, nil, nil); !errors.Is(err, statemachine.ErrInvalidTransition) {
			t.Fatalf("Expected ErrInvalidTransition, got %v", err)
		}
		if _, err := statemachine.New(nil); !errors.Is(err, statemachine.ErrNilInitialState) {
			t.Fatalf("Expected ErrNilInitialState, got %v", err)
		}
	})

	t.Run("MustNew Panic", func(t *testing.T) {
		t.Parallel()
		defer func() {
			if recover() == nil {
				t.Fatal("Expected MustNew to panic")
			}
		}()
		statemachine.MustNew(Hidden, statemachine.WithTransition(Hidden, nil, Show))
	})
}
