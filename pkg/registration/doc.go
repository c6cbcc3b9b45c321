// Package registration wires the form manager, the submission controller and
// the notification toast into a single event-driven engine.
//
// A UI layer feeds it three events (field change, submit requested,
// notification dismissed) and renders the Snapshot it publishes after every
// transition, including timer-driven expiry of the notification.
package registration
