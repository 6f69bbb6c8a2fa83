package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	connectionSweepJob *ConnectionSweepJob
}

// NewJobManager creates the job manager. sweepSchedule may be empty for the default schedule.
func NewJobManager(sweeper Sweeper, sweepSchedule string, logger *slog.Logger) *JobManager {
	return &JobManager{
		connectionSweepJob: NewConnectionSweepJob(sweeper, sweepSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.connectionSweepJob.Start(); err != nil {
		return fmt.Errorf("failed to start connection sweep job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.connectionSweepJob.Stop()
}
