package notifications

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"

	"github.com/dmitrymomot/regform/pkg/logger"
	"github.com/dmitrymomot/regform/pkg/statemachine"
)

const (
	stateHidden  = statemachine.StringState("hidden")
	stateVisible = statemachine.StringState("visible")

	eventShow    = statemachine.StringEvent("show")
	eventDismiss = statemachine.StringEvent("dismiss")
	eventExpire  = statemachine.StringEvent("expire")
)

// Toast owns the single visible notification and its countdown.
type Toast struct {
	clock  clock.Clock
	logger *slog.Logger
	hooks  []func(State)

	// mu guards everything below and is held while the state machine runs
	// its guards and actions.
	mu      sync.Mutex
	sm      statemachine.StateMachine
	current *Notification
	timer   *clock.Timer
}

// ToastOption configures a Toast.
type ToastOption func(*Toast)

// WithClock replaces the system clock, e.g. with clock.NewMock() in tests.
func WithClock(c clock.Clock) ToastOption {
	return func(t *Toast) {
		if c != nil {
			t.clock = c
		}
	}
}

// WithLogger sets the logger for the Toast.
func WithLogger(l *slog.Logger) ToastOption {
	return func(t *Toast) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithChangeHook registers fn to receive the state after every transition,
// including expiry. Hooks run without the toast lock held.
func WithChangeHook(fn func(State)) ToastOption {
	return func(t *Toast) {
		if fn != nil {
			t.hooks = append(t.hooks, fn)
		}
	}
}

type showRequest struct {
	notification Notification
	ttl          time.Duration
}

// NewToast creates a hidden toast.
func NewToast(opts ...ToastOption) *Toast {
	t := &Toast{
		clock:  clock.New(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}

	t.sm = statemachine.MustNew(stateHidden,
		statemachine.WithTransition(stateHidden, stateVisible, eventShow, statemachine.WithAction(t.arm)),
		statemachine.WithTransition(stateVisible, stateVisible, eventShow, statemachine.WithAction(t.arm)),
		statemachine.WithTransition(stateVisible, stateHidden, eventDismiss, statemachine.WithAction(t.disarm)),
		statemachine.WithTransition(stateVisible, stateHidden, eventExpire,
			statemachine.WithGuard(t.isCurrent),
			statemachine.WithAction(t.disarm),
		),
	)
	return t
}

// Show makes n visible, replacing any visible notification and cancelling its
// countdown. With ttl > 0 the notification hides itself after ttl.
// The returned copy carries the assigned ID and timestamps.
func (t *Toast) Show(ctx context.Context, n Notification, ttl time.Duration) Notification {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.Type == "" {
		n.Type = TypeInfo
	}

	t.mu.Lock()
	n.CreatedAt = t.clock.Now()
	n.ExpiresAt = nil
	if ttl > 0 {
		expiresAt := n.CreatedAt.Add(ttl)
		n.ExpiresAt = &expiresAt
	}
	err := t.sm.Fire(ctx, eventShow, &showRequest{notification: n, ttl: ttl})
	st := t.stateLocked()
	t.mu.Unlock()

	if err != nil {
		// Show is defined from every state; reaching this means the machine is misconfigured.
		t.logger.ErrorContext(ctx, "Failed to show notification", logger.NotificationID(n.ID), logger.Error(err))
		return n
	}

	t.logger.DebugContext(ctx, "Notification shown",
		logger.NotificationID(n.ID),
		slog.String("type", string(n.Type)),
		slog.Duration("ttl", ttl),
	)
	t.notify(st)
	return n
}

// Dismiss hides the visible notification and cancels its countdown.
// It reports whether anything was visible.
func (t *Toast) Dismiss(ctx context.Context) bool {
	t.mu.Lock()
	var id string
	if t.current != nil {
		id = t.current.ID
	}
	if err := t.sm.Fire(ctx, eventDismiss, nil); err != nil {
		t.mu.Unlock()
		return false
	}
	st := t.stateLocked()
	t.mu.Unlock()

	t.logger.DebugContext(ctx, "Notification dismissed", logger.NotificationID(id))
	t.notify(st)
	return true
}

// State returns the current visibility and a copy of the visible notification.
func (t *Toast) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stateLocked()
}

func (t *Toast) expire(id string) {
	ctx := context.Background()

	t.mu.Lock()
	if err := t.sm.Fire(ctx, eventExpire, id); err != nil {
		t.mu.Unlock()
		t.logger.DebugContext(ctx, "Ignoring stale notification expiry", logger.NotificationID(id))
		return
	}
	st := t.stateLocked()
	t.mu.Unlock()

	t.logger.DebugContext(ctx, "Notification expired", logger.NotificationID(id))
	t.notify(st)
}

func (t *Toast) arm(_ context.Context, _, _ statemachine.State, _ statemachine.Event, data any) error {
	req := data.(*showRequest)
	t.stopTimerLocked()

	n := req.notification
	t.current = &n
	if req.ttl > 0 {
		id := n.ID
		t.timer = t.clock.AfterFunc(req.ttl, func() { t.expire(id) })
	}
	return nil
}

func (t *Toast) disarm(context.Context, statemachine.State, statemachine.State, statemachine.Event, any) error {
	t.stopTimerLocked()
	t.current = nil
	return nil
}

func (t *Toast) isCurrent(_ context.Context, _ statemachine.State, _ statemachine.Event, data any) bool {
	id, _ := data.(string)
	return t.current != nil && t.current.ID == id
}

func (t *Toast) stopTimerLocked() {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

func (t *Toast) stateLocked() State {
	if t.current == nil || !t.sm.Is(stateVisible) {
		return State{}
	}
	n := *t.current
	return State{Visible: true, Notification: &n}
}

func (t *Toast) notify(st State) {
	for _, hook := range t.hooks {
		hook(st)
	}
}
