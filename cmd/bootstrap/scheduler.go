package bootstrap

import (
	"context"
	"log/slog"

	"court-scheduler/internal/pkg/config"
	"court-scheduler/internal/scheduler"
	"court-scheduler/internal/usecase/commands"

	"go.uber.org/fx"
)

var SchedulerModule = fx.Module("scheduler",
	fx.Provide(
		scheduler.New,
	),
	fx.Invoke(StartScheduler),
)

func StartScheduler(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger, svc *scheduler.Service, cmds commands.MaintenanceCommands) error {
	if !cfg.Jobs.Enabled {
		logger.Info("background jobs disabled")
		return nil
	}
	if err := scheduler.RegisterMaintenanceJobs(svc, cmds, cfg.Jobs); err != nil {
		return err
	}
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			svc.Start()
			return nil
		},
		OnStop: func(_ context.Context) error {
			return svc.Stop()
		},
	})
	return nil
}
