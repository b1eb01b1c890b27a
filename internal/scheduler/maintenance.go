package scheduler

import (
	"context"
	"time"

	"court-scheduler/internal/pkg/config"
	"court-scheduler/internal/usecase/commands"
)

const jobTimeout = 2 * time.Minute

// Job names as they appear in logs.
const (
	JobCompleteElapsed       = "complete_elapsed_reservations"
	JobPurgeIdempotencyKeys  = "purge_expired_idempotency_keys"
	JobDispatchNotifications = "dispatch_notifications"
)

// RegisterMaintenanceJobs schedules the periodic housekeeping commands.
func RegisterMaintenanceJobs(s *Service, cmds commands.MaintenanceCommands, cfg config.JobsConfig) error {
	jobs := []struct {
		name string
		cron string
		run  func(ctx context.Context) (int64, error)
	}{
		{
			name: JobCompleteElapsed,
			cron: cfg.CompleteElapsedCron,
			run: func(ctx context.Context) (int64, error) {
				n, err := cmds.CompleteElapsed(ctx)
				return int64(n), err
			},
		},
		{
			name: JobPurgeIdempotencyKeys,
			cron: cfg.PurgeIdempotencyCron,
			run:  cmds.PurgeExpiredIdempotencyKeys,
		},
		{
			name: JobDispatchNotifications,
			cron: cfg.DispatchCron,
			run: func(ctx context.Context) (int64, error) {
				n, err := cmds.DispatchNotifications(ctx)
				return int64(n), err
			},
		},
	}

	for _, j := range jobs {
		if _, err := s.AddJob(j.name, j.cron, s.runner(j.name, j.run)); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) runner(name string, run func(ctx context.Context) (int64, error)) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		n, err := run(ctx)
		if err != nil {
			s.logger.Error("Scheduler job failed", "job_name", name, "error", err)
			return
		}
		if n > 0 {
			s.logger.Info("Scheduler job processed rows", "job_name", name, "count", n)
		}
	}
}
