package jobs

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vikendica/services"
	"vikendica/services/logger"
)

type fakeSweeper struct {
	mu     sync.Mutex
	calls  int
	result services.SweepResult
	err    error
	ctxErr error
}

func (f *fakeSweeper) AutoSweep(ctx context.Context) (services.SweepResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	_, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		f.ctxErr = errors.New("sweep context has no deadline")
	}
	return f.result, f.err
}

func TestSweepJobRunsSweeper(t *testing.T) {
	sweeper := &fakeSweeper{result: services.SweepResult{Completed: 2, Expired: 1}}

	SweepJob(sweeper, logger.NewDiscardLogger())()

	assert.Equal(t, 1, sweeper.calls)
	assert.NoError(t, sweeper.ctxErr)
}

func TestSweepJobSwallowsErrors(t *testing.T) {
	sweeper := &fakeSweeper{err: errors.New("database is down")}

	assert.NotPanics(t, SweepJob(sweeper, logger.NewDiscardLogger()))
	assert.Equal(t, 1, sweeper.calls)
}

func TestInitCronJobsRejectsBadSpec(t *testing.T) {
	c := cron.New()
	defer c.Stop()

	err := InitCronJobs(c, &fakeSweeper{}, "every now and then", logger.NewDiscardLogger())
	assert.Error(t, err)
	assert.Empty(t, c.Entries())
}

func TestInitCronJobsSchedulesSweep(t *testing.T) {
	c := cron.New()
	defer c.Stop()

	require.NoError(t, InitCronJobs(c, &fakeSweeper{}, "@every 5m", logger.NewDiscardLogger()))
	assert.Len(t, c.Entries(), 1)
}
