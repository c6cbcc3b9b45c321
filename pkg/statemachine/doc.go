// Package statemachine is a small finite-state machine used to drive
// lifecycle state such as the visibility of a notification.
//
// States and events are plain interfaces (StringState and StringEvent cover
// most cases). Each transition may carry guards, which must all pass for the
// transition to be taken, and actions, which run in order before the state
// changes; a failing action aborts the transition. Several transitions may be
// registered for the same state and event: the first whose guards pass wins.
//
// # Usage
//
//	sm := statemachine.MustNew(Hidden,
//	    statemachine.WithTransition(Hidden, Visible, Show),
//	    statemachine.WithTransition(Visible, Hidden, Expire,
//	        statemachine.WithGuard(isCurrent),
//	        statemachine.WithAction(clearTimer),
//	    ),
//	)
//	if err := sm.Fire(ctx, Expire, id); statemachine.IsTransitionRejectedError(err) {
//	    // stale event
//	}
//
// SimpleStateMachine is safe for concurrent use. Guards and actions run while
// the machine's lock is held and must not call back into the same machine.
package statemachine
