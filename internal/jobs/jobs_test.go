package jobs_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"bloomify/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHub struct {
	calls   int
	dropped int
}

func (f *fakeHub) Heartbeat(context.Context) (int, int) {
	f.calls++
	return 3, f.dropped
}

type fakeTasks int64

func (f fakeTasks) Running() int64 { return int64(f) }

func TestHeartbeatJob_Run(t *testing.T) {
	// Arrange
	var logs bytes.Buffer
	hub := &fakeHub{dropped: 1}
	job := jobs.NewHeartbeatJob(hub, "", slog.New(slog.NewJSONHandler(&logs, nil)))

	// Act
	job.Run(t.Context())

	// Assert
	assert.Equal(t, 1, hub.calls)
	assert.Contains(t, logs.String(), "Heartbeat dropped subscribers")
}

func TestHeartbeatJob_StartRejectsInvalidSchedule(t *testing.T) {
	job := jobs.NewHeartbeatJob(&fakeHub{}, "every now and then", slog.New(slog.NewTextHandler(io.Discard, nil)))

	require.Error(t, job.Start())
}

func TestNotificationBacklogJob_Run(t *testing.T) {
	t.Run("warns when notifications are pending", func(t *testing.T) {
		var logs bytes.Buffer
		job := jobs.NewNotificationBacklogJob(fakeTasks(2), slog.New(slog.NewJSONHandler(&logs, nil)))

		job.Run(t.Context())

		assert.Contains(t, logs.String(), "Notifications still in flight")
	})

	t.Run("silent when idle", func(t *testing.T) {
		var logs bytes.Buffer
		job := jobs.NewNotificationBacklogJob(fakeTasks(0), slog.New(slog.NewJSONHandler(&logs, nil)))

		job.Run(t.Context())

		assert.Empty(t, logs.String())
	})
}

func TestJobManager_StartAndStop(t *testing.T) {
	manager := jobs.NewJobManager(&fakeHub{}, "@every 1h", fakeTasks(0), slog.New(slog.NewTextHandler(io.Discard, nil)))

	require.NoError(t, manager.StartAll())
	manager.StopAll()
}

func TestJobManager_InvalidHeartbeatSchedule(t *testing.T) {
	manager := jobs.NewJobManager(&fakeHub{}, "not a schedule", fakeTasks(0), slog.New(slog.NewTextHandler(io.Discard, nil)))

	require.Error(t, manager.StartAll())
}
