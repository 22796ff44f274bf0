package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"vikendica/services"
	"vikendica/services/logger"
)

// Sweeper moves reservations whose dates have passed to their final status
type Sweeper interface {
	AutoSweep(ctx context.Context) (services.SweepResult, error)
}

const sweepTimeout = time.Minute

// InitCronJobs schedules the reservation sweep and starts the scheduler
func InitCronJobs(c *cron.Cron, sweeper Sweeper, spec string, log logger.Logger) error {
	_, err := c.AddFunc(spec, SweepJob(sweeper, log))
	if err != nil {
		return err
	}

	c.Start()
	log.Info("cron jobs initialized, reservation sweep %q", spec)
	return nil
}

// SweepJob runs one sweep and logs the outcome. Errors are never propagated.
func SweepJob(sweeper Sweeper, log logger.Logger) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
		defer cancel()

		result, err := sweeper.AutoSweep(ctx)
		if err != nil {
			log.Error("scheduled sweep failed: %v", err)
			return
		}
		log.Debug("scheduled sweep: %d completed, %d expired", result.Completed, result.Expired)
	}
}
