// Package background runs fire-and-forget work that must outlive the request
// that started it, while still letting the process wait for it on shutdown.
package background

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
)

// Group tracks detached goroutines.
type Group struct {
	wg      sync.WaitGroup
	running atomic.Int64
	logger  *slog.Logger
}

// NewGroup creates an empty group. Panics inside tasks are logged to logger.
func NewGroup(logger *slog.Logger) *Group {
	return &Group{
		logger: logger.With("component", "background"),
	}
}

// Go starts fn in its own goroutine. The context handed to fn keeps the values of
// ctx but is never cancelled with it, so a finished HTTP request does not abort
// the task.
func (g *Group) Go(ctx context.Context, name string, fn func(ctx context.Context)) {
	detached := context.WithoutCancel(ctx)

	g.wg.Add(1)
	g.running.Add(1)
	go func() {
		defer g.wg.Done()
		defer g.running.Add(-1)
		defer func() {
			if r := recover(); r != nil {
				g.logger.ErrorContext(detached, "Background task panicked", "task", name, "panic", r)
			}
		}()

		fn(detached)
	}()
}

// Running returns the number of tasks that have not finished yet.
func (g *Group) Running() int64 {
	return g.running.Load()
}

// Wait blocks until every started task has returned.
func (g *Group) Wait() {
	g.wg.Wait()
}

// Shutdown waits for running tasks until ctx is done.
func (g *Group) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		g.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		g.logger.WarnContext(ctx, "Background tasks still running at shutdown", "running", g.Running())
		return ctx.Err()
	}
}
