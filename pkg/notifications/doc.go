// Package notifications models transient user-facing notifications and the
// auto-dismissing toast that displays them.
//
// A Toast shows at most one Notification at a time. Show replaces whatever is
// visible and restarts the countdown; Dismiss hides immediately and cancels
// it; when the countdown elapses the notification hides on its own. A ttl of
// zero shows a sticky notification that only Dismiss removes.
//
// The visible/hidden lifecycle is a statemachine. Every countdown carries the
// id of the notification it belongs to and a guard on the expire transition
// drops callbacks for notifications that were already replaced, so a late
// timer can never hide a newer notification.
//
// Time is read through a github.com/benbjohnson/clock Clock. The real clock
// is the default; a clock.Mock lets tests advance time deterministically.
// The mock runs expiry callbacks on their own goroutine, so the hide is
// observed shortly after Add returns.
package notifications
