package bootstrap

import (
	"context"
	"log/slog"

	"court-scheduler/internal/infra/notify"
	"court-scheduler/internal/pkg/config"
	"court-scheduler/internal/usecase/shared"

	"go.uber.org/fx"
)

var NotifyModule = fx.Module("notify",
	fx.Provide(
		NewNotifier,
	),
)

// NewNotifier fans events out to every enabled sink, or discards them when none is.
func NewNotifier(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (shared.Notifier, error) {
	var sinks []shared.Notifier

	if cfg.RabbitMQ.Enabled {
		pub, err := notify.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{
			OnStop: func(_ context.Context) error {
				return pub.Close()
			},
		})
		sinks = append(sinks, pub)
		logger.Info("rabbitmq publisher ready", "exchange", cfg.RabbitMQ.Exchange)
	}

	if cfg.Email.Enabled {
		mailer, err := notify.NewSESMailer(context.Background(), cfg.Email.AccessKeyID, cfg.Email.SecretAccessKey, cfg.Email.Region, cfg.Email.Sender)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, mailer)
		logger.Info("ses mailer ready", "region", cfg.Email.Region)
	}

	if len(sinks) == 0 {
		logger.Info("no notification sinks configured, events will be discarded")
		return notify.Nop{}, nil
	}
	return notify.NewMulti(sinks...), nil
}
