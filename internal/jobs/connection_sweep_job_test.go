package jobs

import (
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSweeper struct {
	calls atomic.Int32
}

func (s *countingSweeper) Sweep() int {
	s.calls.Add(1)
	return 1
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestConnectionSweepJob_DefaultSchedule(t *testing.T) {
	job := NewConnectionSweepJob(&countingSweeper{}, "", discardLogger())

	assert.Equal(t, EverySweepInterval, job.schedule)
}

func TestConnectionSweepJob_RunsOnSchedule(t *testing.T) {
	sweeper := &countingSweeper{}
	job := NewConnectionSweepJob(sweeper, "* * * * * *", discardLogger())

	require.NoError(t, job.Start())
	defer job.Stop()

	assert.Eventually(t, func() bool { return sweeper.calls.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
}

func TestConnectionSweepJob_RejectsBadSchedule(t *testing.T) {
	job := NewConnectionSweepJob(&countingSweeper{}, "every now and then", discardLogger())

	assert.Error(t, job.Start())
}

func TestJobManager_StartAndStop(t *testing.T) {
	sweeper := &countingSweeper{}
	jm := NewJobManager(sweeper, "", discardLogger())

	require.NoError(t, jm.StartAll())
	jm.StopAll()

	assert.Zero(t, sweeper.calls.Load())
}
