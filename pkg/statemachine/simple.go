package statemachine

import (
	"context"
	"fmt"
	"sync"
)

// SimpleStateMachine is an in-memory state machine.
// Transitions are indexed as [fromState][event][]Transition.
type SimpleStateMachine struct {
	currentState State
	transitions  map[string]map[string][]Transition
	mu           sync.RWMutex
}

func newSimpleStateMachine(initialState State) *SimpleStateMachine {
	return &SimpleStateMachine{
		currentState: initialState,
		transitions:  make(map[string]map[string][]Transition),
	}
}

func (sm *SimpleStateMachine) Current() State {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.currentState
}

// Is reports whether the machine is currently in state.
func (sm *SimpleStateMachine) Is(state State) bool {
	if state == nil {
		return false
	}
	return sm.Current().Name() == state.Name()
}

func (sm *SimpleStateMachine) AddTransition(from, to State, event Event, guards []Guard, actions []Action) error {
	if from == nil || to == nil || event == nil {
		return ErrInvalidTransition
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()

	byEvent, ok := sm.transitions[from.Name()]
	if !ok {
		byEvent = make(map[string][]Transition)
		sm.transitions[from.Name()] = byEvent
	}

	byEvent[event.Name()] = append(byEvent[event.Name()], Transition{
		From:    from,
		To:      to,
		Event:   event,
		Guards:  guards,
		Actions: actions,
	})
	return nil
}

func (sm *SimpleStateMachine) Fire(ctx context.Context, event Event, data any) error {
	if event == nil {
		return ErrInvalidEvent
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()

	t, err := sm.selectLocked(ctx, event, data)
	if err != nil {
		return err
	}

	for _, action := range t.Actions {
		if action == nil {
			continue
		}
		if err := action(ctx, sm.currentState, t.To, event, data); err != nil {
			return fmt.Errorf("action failed: %w", err)
		}
	}

	sm.currentState = t.To
	return nil
}

// selectLocked returns the first transition for event whose guards all pass.
func (sm *SimpleStateMachine) selectLocked(ctx context.Context, event Event, data any) (*Transition, error) {
	stateName := sm.currentState.Name()
	eventName := event.Name()

	candidates := sm.transitions[stateName][eventName]
	if len(candidates) == 0 {
		return nil, &ErrNoTransitionAvailable{StateName: stateName, EventName: eventName}
	}

	for i := range candidates {
		if sm.guardsPass(ctx, candidates[i], event, data) {
			return &candidates[i], nil
		}
	}
	return nil, &ErrTransitionRejected{StateName: stateName, EventName: eventName}
}

func (sm *SimpleStateMachine) guardsPass(ctx context.Context, t Transition, event Event, data any) bool {
	for _, guard := range t.Guards {
		if guard != nil && !guard(ctx, sm.currentState, event, data) {
			return false
		}
	}
	return true
}
