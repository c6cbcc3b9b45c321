package notifications_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/regform/pkg/notifications"
)

func TestNotification_IsExpired(t *testing.T) {
	t.Parallel()
	now := time.Now()

	n := notifications.Success("Success", "done")
	assert.Equal(t, notifications.TypeSuccess, n.Type)
	assert.False(t, n.IsExpired(now), "no expiry means never expired")

	expiresAt := now.Add(time.Second)
	n.ExpiresAt = &expiresAt
	assert.False(t, n.IsExpired(now))
	assert.True(t, n.IsExpired(expiresAt))
	assert.True(t, n.IsExpired(expiresAt.Add(time.Millisecond)))
}
