package broadcast_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/regform/pkg/broadcast"
)

func receive[T any](t *testing.T, sub broadcast.Subscriber[T]) broadcast.Message[T] {
	t.Helper()
	select {
	case msg, ok := <-sub.Receive(context.Background()):
		require.True(t, ok, "channel closed")
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
	}
	return broadcast.Message[T]{}
}

func TestMemoryBroadcaster_Subscribe(t *testing.T) {
	t.Run("subscribe creates active subscriber", func(t *testing.T) {
		b := broadcast.NewMemoryBroadcaster[string](10)
		defer b.Close()

		sub := b.Subscribe(context.Background())
		require.NotNil(t, sub)
		assert.Equal(t, 1, b.Subscribers())
	})

	t.Run("subscribe after close returns closed subscriber", func(t *testing.T) {
		b := broadcast.NewMemoryBroadcaster[string](10)
		require.NoError(t, b.Close())

		sub := b.Subscribe(context.Background())
		_, ok := <-sub.Receive(context.Background())
		assert.False(t, ok)
	})

	t.Run("context cancellation unsubscribes", func(t *testing.T) {
		b := broadcast.NewMemoryBroadcaster[string](10)
		defer b.Close()

		ctx, cancel := context.WithCancel(context.Background())
		sub := b.Subscribe(ctx)
		cancel()

		assert.Eventually(t, func() bool { return b.Subscribers() == 0 }, time.Second, 5*time.Millisecond)
		_, ok := <-sub.Receive(context.Background())
		assert.False(t, ok)
	})

	t.Run("closing a subscriber unsubscribes it", func(t *testing.T) {
		b := broadcast.NewMemoryBroadcaster[string](10)
		defer b.Close()

		sub := b.Subscribe(context.Background())
		require.NoError(t, sub.Close())
		require.NoError(t, sub.Close())
		assert.Equal(t, 0, b.Subscribers())
	})
}

func TestMemoryBroadcaster_Broadcast(t *testing.T) {
	t.Run("broadcast to multiple subscribers", func(t *testing.T) {
		b := broadcast.NewMemoryBroadcaster[string](10)
		defer b.Close()

		ctx := context.Background()
		first := b.Subscribe(ctx)
		second := b.Subscribe(ctx)

		require.NoError(t, b.Broadcast(ctx, broadcast.Message[string]{Data: "hello"}))
		assert.Equal(t, "hello", receive(t, first).Data)
		assert.Equal(t, "hello", receive(t, second).Data)
	})

	t.Run("broadcast after close is safe", func(t *testing.T) {
		b := broadcast.NewMemoryBroadcaster[string](10)
		require.NoError(t, b.Close())
		assert.NoError(t, b.Broadcast(context.Background(), broadcast.Message[string]{Data: "x"}))
	})

	t.Run("full buffer keeps the newest messages", func(t *testing.T) {
		b := broadcast.NewMemoryBroadcaster[int](2)
		defer b.Close()

		ctx := context.Background()
		sub := b.Subscribe(ctx)
		for i := 1; i <= 5; i++ {
			require.NoError(t, b.Broadcast(ctx, broadcast.Message[int]{Data: i}))
		}

		assert.Equal(t, 4, receive(t, sub).Data)
		assert.Equal(t, 5, receive(t, sub).Data)
		assert.Equal(t, 1, b.Subscribers(), "slow subscriber stays subscribed")
	})
}

func TestMemoryBroadcaster_Close(t *testing.T) {
	b := broadcast.NewMemoryBroadcaster[string](1)
	sub := b.Subscribe(context.Background())

	require.NoError(t, b.Close())
	require.NoError(t, b.Close())

	_, ok := <-sub.Receive(context.Background())
	assert.False(t, ok)
	assert.Equal(t, 0, b.Subscribers())
}

func TestMemoryBroadcaster_Concurrent(t *testing.T) {
	b := broadcast.NewMemoryBroadcaster[int](4)
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			sub := b.Subscribe(ctx)
			_ = sub.Close()
		}()
		go func(i int) {
			defer wg.Done()
			_ = b.Broadcast(ctx, broadcast.Message[int]{Data: i})
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 0, b.Subscribers())
}
