package notifications_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/regform/pkg/logger"
	"github.com/dmitrymomot/regform/pkg/notifications"
)

const ttl = 3000 * time.Millisecond

var epoch = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

type recorder struct {
	mu     sync.Mutex
	states []notifications.State
}

func (r *recorder) hook(st notifications.State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, st)
}

func (r *recorder) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.states)
}

func newMock() *clock.Mock {
	mock := clock.NewMock()
	mock.Set(epoch)
	return mock
}

// hidden waits for the expiry callback, which the mock runs on its own goroutine.
func hidden(toast *notifications.Toast) func() bool {
	return func() bool { return !toast.State().Visible }
}

func newToast(clk clock.Clock, rec *recorder) *notifications.Toast {
	opts := []notifications.ToastOption{
		notifications.WithClock(clk),
		notifications.WithLogger(logger.Discard()),
	}
	if rec != nil {
		opts = append(opts, notifications.WithChangeHook(rec.hook))
	}
	return notifications.NewToast(opts...)
}

func TestToast_AutoHidesAfterDuration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mock := newMock()
	rec := &recorder{}
	toast := newToast(mock, rec)

	assert.False(t, toast.State().Visible)

	shown := toast.Show(ctx, notifications.Success("Success", "Registration successfully submitted"), ttl)
	require.NotEmpty(t, shown.ID)
	assert.Equal(t, epoch, shown.CreatedAt)
	require.NotNil(t, shown.ExpiresAt)
	assert.Equal(t, epoch.Add(ttl), *shown.ExpiresAt)

	st := toast.State()
	assert.True(t, st.Visible)
	require.NotNil(t, st.Notification)
	assert.Equal(t, shown.ID, st.Notification.ID)
	createdAt, ok := st.CreatedAt()
	assert.True(t, ok)
	assert.Equal(t, epoch, createdAt)

	mock.Add(2999 * time.Millisecond)
	assert.True(t, toast.State().Visible)

	mock.Add(time.Millisecond)
	require.Eventually(t, hidden(toast), time.Second, time.Millisecond)
	st = toast.State()
	assert.Nil(t, st.Notification)
	_, ok = st.CreatedAt()
	assert.False(t, ok)

	assert.Eventually(t, func() bool { return rec.len() == 2 }, time.Second, time.Millisecond)
}

func TestToast_DismissCancelsCountdown(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mock := newMock()
	rec := &recorder{}
	toast := newToast(mock, rec)

	toast.Show(ctx, notifications.Success("Success", "done"), ttl)
	mock.Add(500 * time.Millisecond)

	assert.True(t, toast.Dismiss(ctx))
	assert.False(t, toast.State().Visible)

	mock.Add(10 * time.Second)
	assert.False(t, toast.State().Visible)
	assert.Never(t, func() bool { return rec.len() != 2 }, 50*time.Millisecond, 5*time.Millisecond,
		"no expiry must fire after dismissal")
}

func TestToast_DismissWhenHidden(t *testing.T) {
	t.Parallel()
	rec := &recorder{}
	toast := newToast(newMock(), rec)

	assert.False(t, toast.Dismiss(context.Background()))
	assert.Zero(t, rec.len())
}

func TestToast_ShowRestartsCountdown(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mock := newMock()
	rec := &recorder{}
	toast := newToast(mock, rec)

	first := toast.Show(ctx, notifications.Success("Success", "first"), ttl)
	mock.Add(2 * time.Second)
	second := toast.Show(ctx, notifications.Success("Success", "second"), ttl)
	assert.NotEqual(t, first.ID, second.ID)

	// The first countdown's deadline passes here; only the second may hide the toast.
	mock.Add(2 * time.Second)
	assert.Never(t, hidden(toast), 50*time.Millisecond, 5*time.Millisecond)
	st := toast.State()
	require.True(t, st.Visible)
	assert.Equal(t, "second", st.Notification.Message)
	assert.Equal(t, 2, rec.len())

	mock.Add(time.Second)
	assert.Eventually(t, hidden(toast), time.Second, time.Millisecond)
}

func TestToast_StickyNotification(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mock := newMock()
	toast := newToast(mock, nil)

	n := toast.Show(ctx, notifications.Failure("Error", "delivery failed"), 0)
	assert.Nil(t, n.ExpiresAt)
	assert.Equal(t, notifications.TypeError, n.Type)

	mock.Add(time.Hour)
	assert.Never(t, hidden(toast), 50*time.Millisecond, 5*time.Millisecond)

	assert.True(t, toast.Dismiss(ctx))
	assert.False(t, toast.State().Visible)
}

func TestToast_ReplacingStickyWithTimed(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mock := newMock()
	toast := newToast(mock, nil)

	toast.Show(ctx, notifications.Failure("Error", "delivery failed"), 0)
	toast.Show(ctx, notifications.Success("Success", "done"), ttl)

	mock.Add(ttl)
	assert.Eventually(t, hidden(toast), time.Second, time.Millisecond)
}

func TestToast_DefaultsAndCallerID(t *testing.T) {
	t.Parallel()
	toast := newToast(newMock(), nil)

	n := toast.Show(context.Background(), notifications.Notification{ID: "fixed", Message: "hi"}, ttl)
	assert.Equal(t, "fixed", n.ID)
	assert.Equal(t, notifications.TypeInfo, n.Type)
}

func TestToast_StateIsACopy(t *testing.T) {
	t.Parallel()
	toast := newToast(newMock(), nil)
	toast.Show(context.Background(), notifications.Success("Success", "done"), ttl)

	st := toast.State()
	st.Notification.Message = "mutated"
	assert.Equal(t, "done", toast.State().Notification.Message)
}

func TestToast_SystemClock(t *testing.T) {
	t.Parallel()
	toast := newToast(clock.New(), nil)

	toast.Show(context.Background(), notifications.Success("Success", "done"), 20*time.Millisecond)
	assert.True(t, toast.State().Visible)
	assert.Eventually(t, hidden(toast), time.Second, 5*time.Millisecond)
}
