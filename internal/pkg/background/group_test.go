package background_test

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"bloomify/internal/pkg/background"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ctxKey struct{}

func newGroup() *background.Group {
	return background.NewGroup(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestGroup_TaskOutlivesCallerContext(t *testing.T) {
	g := newGroup()
	ctx, cancel := context.WithCancel(context.WithValue(t.Context(), ctxKey{}, "req-1"))

	release := make(chan struct{})
	var sawCancel atomic.Bool
	var sawValue atomic.Value

	g.Go(ctx, "test", func(ctx context.Context) {
		<-release
		sawCancel.Store(ctx.Err() != nil)
		sawValue.Store(ctx.Value(ctxKey{}))
	})

	cancel()
	close(release)
	g.Wait()

	assert.False(t, sawCancel.Load())
	assert.Equal(t, "req-1", sawValue.Load())
	assert.Equal(t, int64(0), g.Running())
}

func TestGroup_PanicIsContained(t *testing.T) {
	g := newGroup()

	g.Go(t.Context(), "boom", func(context.Context) {
		panic("transport exploded")
	})
	g.Wait()

	assert.Equal(t, int64(0), g.Running())
}

func TestGroup_Shutdown(t *testing.T) {
	t.Run("returns when tasks finish", func(t *testing.T) {
		g := newGroup()
		g.Go(t.Context(), "quick", func(context.Context) {})

		ctx, cancel := context.WithTimeout(t.Context(), time.Second)
		defer cancel()

		require.NoError(t, g.Shutdown(ctx))
	})

	t.Run("gives up when the budget runs out", func(t *testing.T) {
		g := newGroup()
		release := make(chan struct{})
		defer close(release)
		g.Go(t.Context(), "slow", func(context.Context) { <-release })

		ctx, cancel := context.WithTimeout(t.Context(), 20*time.Millisecond)
		defer cancel()

		err := g.Shutdown(ctx)
		require.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Equal(t, int64(1), g.Running())
	})
}
