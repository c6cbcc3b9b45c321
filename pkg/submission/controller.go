package submission

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrymomot/regform/pkg/form"
	"github.com/dmitrymomot/regform/pkg/logger"
	"github.com/dmitrymomot/regform/pkg/notifications"
)

const (
	DefaultSuccessTitle   = "Success"
	DefaultSuccessMessage = "Registration successfully submitted"
	DefaultFailureTitle   = "Error"
	DefaultFailureMessage = "Registration could not be submitted. Please try again."
	DefaultSuccessTTL     = 3 * time.Second
)

// Status is the result of a submit attempt.
type Status string

const (
	StatusSubmitted Status = "submitted"
	StatusRejected  Status = "rejected"
	StatusFailed    Status = "failed"
)

// Outcome describes what Submit did. Notification is set when one was shown.
type Outcome struct {
	Status       Status                      `json:"status"`
	Notification *notifications.Notification `json:"notification,omitempty"`
}

// Controller serialises submits against a form manager and a toast.
type Controller struct {
	form      *form.Manager
	toast     *notifications.Toast
	deliverer Deliverer
	logger    *slog.Logger
	metrics   *Metrics

	successTitle   string
	successMessage string
	successTTL     time.Duration
	failureTitle   string
	failureMessage string
	failureTTL     time.Duration

	mu sync.Mutex
}

// Option configures a Controller.
type Option func(*Controller)

// WithDeliverer sets where valid submissions go. Defaults to a LogDeliverer.
func WithDeliverer(d Deliverer) Option {
	return func(c *Controller) {
		if d != nil {
			c.deliverer = d
		}
	}
}

// WithLogger sets the logger for the Controller.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics enables submission metrics.
func WithMetrics(m *Metrics) Option {
	return func(c *Controller) {
		c.metrics = m
	}
}

// WithSuccessNotification overrides the message and display duration of the
// success notification. An empty message keeps the default.
func WithSuccessNotification(message string, ttl time.Duration) Option {
	return func(c *Controller) {
		if message != "" {
			c.successMessage = message
		}
		c.successTTL = ttl
	}
}

// WithFailureNotification overrides the message and display duration of the
// delivery failure notification. A zero ttl keeps it until dismissed.
func WithFailureNotification(message string, ttl time.Duration) Option {
	return func(c *Controller) {
		if message != "" {
			c.failureMessage = message
		}
		c.failureTTL = ttl
	}
}

// NewController creates a Controller submitting f and reporting through toast.
func NewController(f *form.Manager, toast *notifications.Toast, opts ...Option) *Controller {
	c := &Controller{
		form:           f,
		toast:          toast,
		logger:         slog.Default(),
		successTitle:   DefaultSuccessTitle,
		successMessage: DefaultSuccessMessage,
		successTTL:     DefaultSuccessTTL,
		failureTitle:   DefaultFailureTitle,
		failureMessage: DefaultFailureMessage,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.deliverer == nil {
		c.deliverer = NewLogDeliverer(c.logger, 0)
	}
	return c
}

// Submit delivers the current values if the form is valid.
//
// An invalid form yields StatusRejected and an error wrapping ErrFormInvalid and
// the per-field validator.ValidationErrors, with no side effects.
// A delivery error keeps the values, shows the failure notification and
// yields StatusFailed with an error wrapping ErrDeliveryFailed. Otherwise the
// success notification is shown and the form reset, unless it was edited
// while delivery ran.
func (c *Controller) Submit(ctx context.Context) (Outcome, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := c.form.State()
	if !st.IsValid {
		c.metrics.IncrementOutcome(StatusRejected)
		c.logger.DebugContext(ctx, "Submission rejected", logger.Outcome(string(StatusRejected)))
		return Outcome{Status: StatusRejected}, fmt.Errorf("%w: %w", ErrFormInvalid, c.form.Registry().ValidateForm(st.Values))
	}

	start := time.Now()
	err := c.deliverer.Deliver(ctx, st.Values)
	elapsed := time.Since(start)
	c.metrics.ObserveDelivery(elapsed)

	if err != nil {
		n := c.toast.Show(ctx, notifications.Failure(c.failureTitle, c.failureMessage), c.failureTTL)
		c.metrics.IncrementOutcome(StatusFailed)
		c.logger.ErrorContext(ctx, "Submission delivery failed",
			logger.Outcome(string(StatusFailed)),
			logger.Duration(elapsed),
			logger.Error(err),
		)
		return Outcome{Status: StatusFailed, Notification: &n}, fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
	}

	if !c.form.ResetIfUnchanged(st.Values) {
		c.logger.InfoContext(ctx, "Form edited during delivery, keeping new values")
	}
	n := c.toast.Show(ctx, notifications.Success(c.successTitle, c.successMessage), c.successTTL)
	c.metrics.IncrementOutcome(StatusSubmitted)
	c.logger.InfoContext(ctx, "Submission delivered",
		logger.Outcome(string(StatusSubmitted)),
		logger.Duration(elapsed),
		logger.NotificationID(n.ID),
	)
	return Outcome{Status: StatusSubmitted, Notification: &n}, nil
}
