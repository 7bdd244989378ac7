package stream_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/modelkit/pkg/stream"
)

func TestSubscribe(t *testing.T) {
	t.Parallel()

	t.Run("listener receives emitted events", func(t *testing.T) {
		t.Parallel()

		hub := stream.NewHub[string](4)
		defer hub.Close()

		listener := hub.Subscribe(context.Background())
		defer listener.Close()

		hub.Emit("first")
		hub.Emit("second")

		assert.Equal(t, "first", <-listener.Events())
		assert.Equal(t, "second", <-listener.Events())
	})

	t.Run("multiple listeners each receive the event", func(t *testing.T) {
		t.Parallel()

		hub := stream.NewHub[int](4)
		defer hub.Close()

		a := hub.Subscribe(context.Background())
		b := hub.Subscribe(context.Background())
		defer a.Close()
		defer b.Close()

		hub.Emit(42)

		assert.Equal(t, 42, <-a.Events())
		assert.Equal(t, 42, <-b.Events())
	})

	t.Run("context cancellation detaches listener", func(t *testing.T) {
		t.Parallel()

		hub := stream.NewHub[string](4)
		defer hub.Close()

		ctx, cancel := context.WithCancel(context.Background())
		listener := hub.Subscribe(ctx)
		require.Equal(t, 1, hub.Len())

		cancel()

		require.Eventually(t, func() bool {
			return hub.Len() == 0
		}, time.Second, 10*time.Millisecond)

		// Channel is closed after detach.
		for range listener.Events() {
		}
	})

	t.Run("subscribe after close returns closed listener", func(t *testing.T) {
		t.Parallel()

		hub := stream.NewHub[string](4)
		hub.Close()

		listener := hub.Subscribe(context.Background())
		_, open := <-listener.Events()
		assert.False(t, open)
	})
}

func TestEmit(t *testing.T) {
	t.Parallel()

	t.Run("never blocks on a full listener", func(t *testing.T) {
		t.Parallel()

		hub := stream.NewHub[int](1)
		defer hub.Close()

		listener := hub.Subscribe(context.Background())
		defer listener.Close()

		done := make(chan struct{})
		go func() {
			defer close(done)
			for i := 0; i < 100; i++ {
				hub.Emit(i)
			}
		}()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("Emit blocked on a slow listener")
		}
	})

	t.Run("full listener is detached", func(t *testing.T) {
		t.Parallel()

		hub := stream.NewHub[int](1)
		defer hub.Close()

		listener := hub.Subscribe(context.Background())
		defer listener.Close()

		hub.Emit(1) // fills the buffer
		hub.Emit(2) // dropped, listener marked for detach

		require.Eventually(t, func() bool {
			return hub.Len() == 0
		}, time.Second, 10*time.Millisecond)
	})

	t.Run("emit after close is a no-op", func(t *testing.T) {
		t.Parallel()

		hub := stream.NewHub[int](1)
		hub.Close()
		hub.Emit(1)
	})
}

func TestClose(t *testing.T) {
	t.Parallel()

	t.Run("closes all listeners", func(t *testing.T) {
		t.Parallel()

		hub := stream.NewHub[string](4)
		a := hub.Subscribe(context.Background())
		b := hub.Subscribe(context.Background())

		hub.Close()

		_, open := <-a.Events()
		assert.False(t, open)
		_, open = <-b.Events()
		assert.False(t, open)
		assert.Equal(t, 0, hub.Len())
	})

	t.Run("idempotent", func(t *testing.T) {
		t.Parallel()

		hub := stream.NewHub[string](4)
		hub.Close()
		hub.Close()
	})

	t.Run("listener close is idempotent", func(t *testing.T) {
		t.Parallel()

		hub := stream.NewHub[string](4)
		defer hub.Close()

		listener := hub.Subscribe(context.Background())
		listener.Close()
		listener.Close()
	})
}

func TestConcurrentEmit(t *testing.T) {
	t.Parallel()

	hub := stream.NewHub[int](256)
	defer hub.Close()

	listener := hub.Subscribe(context.Background())
	defer listener.Close()

	var g errgroup.Group
	for _i := 0; _i < 4; _i++ {
		g.Go(func() error {
			for i := 0; i < 32; i++ {
				hub.Emit(i)
			}
			return nil
		})
	}

	received := 0
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		for range listener.Events() {
			received++
			if received == 128 {
				return
			}
		}
	}()

	require.NoError(t, g.Wait())

	select {
	case <-drained:
	case <-time.After(time.Second):
		t.Fatalf("received %d of 128 events", received)
	}
	assert.Equal(t, 128, received)
}
