package registration

import (
	"context"
	"log/slog"
	"sync"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrymomot/regform/pkg/broadcast"
	"github.com/dmitrymomot/regform/pkg/form"
	"github.com/dmitrymomot/regform/pkg/logger"
	"github.com/dmitrymomot/regform/pkg/notifications"
	"github.com/dmitrymomot/regform/pkg/submission"
)

// Snapshot is everything a consumer needs to render the form.
type Snapshot struct {
	Form         form.State          `json:"form"`
	Notification notifications.State `json:"notification"`
}

// Engine is the registration form state machine. All methods are safe for concurrent use.
type Engine struct {
	cfg       Config
	logger    *slog.Logger
	clock     clock.Clock
	registry  *form.Registry
	deliverer submission.Deliverer
	metrics   *submission.Metrics

	form   *form.Manager
	toast  *notifications.Toast
	ctrl   *submission.Controller
	events *broadcast.MemoryBroadcaster[Snapshot]

	// publishMu orders broadcasts so the last snapshot sent reflects the latest state.
	publishMu sync.Mutex
}

// Option configures an Engine.
type Option func(*Engine)

// WithConfig replaces DefaultConfig.
func WithConfig(cfg Config) Option {
	return func(e *Engine) {
		e.cfg = cfg
	}
}

// WithLogger sets the logger for the engine and its components.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithClock replaces the system clock used by the notification countdown.
func WithClock(c clock.Clock) Option {
	return func(e *Engine) {
		if c != nil {
			e.clock = c
		}
	}
}

// WithRegistry replaces the default registration rules.
func WithRegistry(r *form.Registry) Option {
	return func(e *Engine) {
		if r != nil {
			e.registry = r
		}
	}
}

// WithDeliverer sets where valid submissions go. Defaults to a LogDeliverer.
func WithDeliverer(d submission.Deliverer) Option {
	return func(e *Engine) {
		if d != nil {
			e.deliverer = d
		}
	}
}

// WithMetrics registers submission metrics with reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(e *Engine) {
		if reg != nil {
			e.metrics = submission.NewMetrics(reg)
		}
	}
}

// New creates an engine with an empty form and no visible notification.
func New(opts ...Option) *Engine {
	e := &Engine{
		cfg:    DefaultConfig(),
		logger: slog.Default(),
		clock:  clock.New(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With(logger.Component("registration"))
	if e.cfg.NotificationDuration <= 0 {
		e.cfg.NotificationDuration = submission.DefaultSuccessTTL
	}
	e.events = broadcast.NewMemoryBroadcaster[Snapshot](e.cfg.EventBuffer)

	if e.deliverer == nil {
		e.deliverer = submission.NewLogDeliverer(e.logger, e.cfg.PasswordHashCost)
	}

	e.form = form.NewManager(
		form.WithRegistry(e.registry),
		form.WithLogger(e.logger),
		form.WithChangeHook(func(form.State) { e.publish() }),
	)
	e.toast = notifications.NewToast(
		notifications.WithClock(e.clock),
		notifications.WithLogger(e.logger),
		notifications.WithChangeHook(func(notifications.State) { e.publish() }),
	)
	e.ctrl = submission.NewController(e.form, e.toast,
		submission.WithDeliverer(e.deliverer),
		submission.WithLogger(e.logger),
		submission.WithMetrics(e.metrics),
		submission.WithSuccessNotification(e.cfg.SuccessMessage, e.cfg.NotificationDuration),
		submission.WithFailureNotification(e.cfg.FailureMessage, e.cfg.FailureNotificationDuration),
	)
	return e
}

// Registry returns the rules the form validates against.
func (e *Engine) Registry() *form.Registry {
	return e.form.Registry()
}

// OnFieldChange records a new value for field and revalidates.
func (e *Engine) OnFieldChange(field form.FieldName, value form.Value) {
	e.form.SetValue(field, value)
}

// OnSubmitRequested submits the form. See submission.Controller.Submit.
func (e *Engine) OnSubmitRequested(ctx context.Context) (submission.Outcome, error) {
	return e.ctrl.Submit(ctx)
}

// OnNotificationDismissed hides the visible notification.
// It reports whether anything was visible.
func (e *Engine) OnNotificationDismissed(ctx context.Context) bool {
	return e.toast.Dismiss(ctx)
}

// Snapshot returns the current form and notification state.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{Form: e.form.State(), Notification: e.toast.State()}
}

// Subscribe returns a subscription receiving a snapshot after every transition.
// It ends when ctx is cancelled or the engine is closed.
func (e *Engine) Subscribe(ctx context.Context) broadcast.Subscriber[Snapshot] {
	return e.events.Subscribe(ctx)
}

// Close ends all subscriptions and hides the notification.
func (e *Engine) Close() error {
	e.toast.Dismiss(context.Background())
	return e.events.Close()
}

// publish reads the snapshot under publishMu, so a hook delayed behind a newer
// transition resends current state instead of its own stale one.
func (e *Engine) publish() {
	e.publishMu.Lock()
	defer e.publishMu.Unlock()
	_ = e.events.Broadcast(context.Background(), broadcast.Message[Snapshot]{Data: e.Snapshot()})
}
