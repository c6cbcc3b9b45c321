// Package broadcast fans typed messages out to many subscribers without ever
// blocking the publisher.
//
// Subscribers are expected to render the latest state rather than replay
// history: when a subscriber's buffer is full the oldest buffered message is
// discarded to make room for the new one. A subscription ends when its
// context is cancelled, when Close is called on it, or when the broadcaster
// is closed.
package broadcast
