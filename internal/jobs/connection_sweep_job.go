package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// EverySweepInterval pings live sessions twice a minute, well inside the
// websocket read deadline.
const EverySweepInterval = "*/30 * * * * *"

// Sweeper drops live sessions that no longer answer.
type Sweeper interface {
	Sweep() int
}

// ConnectionSweepJob evicts dead websocket sessions on a schedule.
type ConnectionSweepJob struct {
	sweeper  Sweeper
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewConnectionSweepJob runs sweeper on schedule, a six-field cron expression.
// An empty schedule means EverySweepInterval.
func NewConnectionSweepJob(sweeper Sweeper, schedule string, logger *slog.Logger) *ConnectionSweepJob {
	if schedule == "" {
		schedule = EverySweepInterval
	}
	return &ConnectionSweepJob{
		sweeper:  sweeper,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "connection_sweep_job"),
	}
}

func (j *ConnectionSweepJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Connection sweep job started", "schedule", j.schedule)
	return nil
}

// Stop waits for a running sweep to finish.
func (j *ConnectionSweepJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Connection sweep job stopped")
}

func (j *ConnectionSweepJob) run() {
	if evicted := j.sweeper.Sweep(); evicted > 0 {
		j.logger.DebugContext(context.Background(), "Connection sweep evicted sessions", "evicted", evicted)
	}
}
