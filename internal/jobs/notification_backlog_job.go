package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

const notificationBacklogSchedule = "@every 1m"

// TaskCounter reports detached tasks that have not finished.
type TaskCounter interface {
	Running() int64
}

// NotificationBacklogJob reports notifications that are still in flight, which
// usually means the mail server is slow or hanging.
type NotificationBacklogJob struct {
	tasks  TaskCounter
	cron   *cron.Cron
	logger *slog.Logger
}

// NewNotificationBacklogJob creates the backlog reporter.
func NewNotificationBacklogJob(tasks TaskCounter, logger *slog.Logger) *NotificationBacklogJob {
	return &NotificationBacklogJob{
		tasks:  tasks,
		cron:   cron.New(cron.WithSeconds()),
		logger: logger.With("component", "notification_backlog_job"),
	}
}

// Start begins reporting once a minute.
func (j *NotificationBacklogJob) Start() error {
	if _, err := j.cron.AddFunc(notificationBacklogSchedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Notification backlog job started")
	return nil
}

// Run logs the current backlog when there is one.
func (j *NotificationBacklogJob) Run(ctx context.Context) {
	if running := j.tasks.Running(); running > 0 {
		j.logger.WarnContext(ctx, "Notifications still in flight", "running", running)
	}
}

// Stop stops the backlog job.
func (j *NotificationBacklogJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Notification backlog job stopped")
}
