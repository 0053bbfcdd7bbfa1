package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// DefaultHeartbeatSchedule pings subscribers often enough to keep proxies from
// closing idle websocket connections.
const DefaultHeartbeatSchedule = "@every 25s"

// Heartbeater pings real-time subscribers and forgets the dead ones.
type Heartbeater interface {
	Heartbeat(ctx context.Context) (pinged, dropped int)
}

// HeartbeatJob keeps real-time subscriber connections alive.
type HeartbeatJob struct {
	hub      Heartbeater
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewHeartbeatJob creates a job pinging hub on schedule. The schedule accepts
// six-field cron expressions and descriptors such as "@every 25s".
func NewHeartbeatJob(hub Heartbeater, schedule string, logger *slog.Logger) *HeartbeatJob {
	if schedule == "" {
		schedule = DefaultHeartbeatSchedule
	}
	return &HeartbeatJob{
		hub:      hub,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "heartbeat_job"),
	}
}

// Start schedules the heartbeat.
func (j *HeartbeatJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Heartbeat job started", "schedule", j.schedule)
	return nil
}

// Run performs one heartbeat.
func (j *HeartbeatJob) Run(ctx context.Context) {
	pinged, dropped := j.hub.Heartbeat(ctx)
	if dropped > 0 {
		j.logger.InfoContext(ctx, "Heartbeat dropped subscribers", "pinged", pinged, "dropped", dropped)
		return
	}
	j.logger.DebugContext(ctx, "Heartbeat sent", "pinged", pinged)
}

// Stop stops the heartbeat job.
func (j *HeartbeatJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Heartbeat job stopped")
}
