package commands

//go:generate mockgen -source=maintenance.go -destination=../../../tests/mock/commands/maintenance.go -package=commandsmock

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"court-scheduler/internal/domain/calendar"
	"court-scheduler/internal/domain/reservation"
	"court-scheduler/internal/pkg/clock"
	"court-scheduler/internal/usecase/shared"
)

const (
	DefaultSweepBatch      = 100
	DefaultDispatchBatch   = 50
	DefaultMaxAttempts     = 5
	DefaultDeliveryTimeout = 10 * time.Second
	retryBackoffStep       = time.Minute
	// leaseSlack keeps a job leased a little past its delivery deadline so
	// the outcome can be recorded before another run may pick it up.
	leaseSlack = 30 * time.Second
)

type MaintenanceCommands interface {
	// CompleteElapsed moves confirmed reservations whose end has passed to completed.
	CompleteElapsed(ctx context.Context) (int, error)
	PurgeExpiredIdempotencyKeys(ctx context.Context) (int64, error)
	// DispatchNotifications delivers due outbox jobs. Delivery failures are
	// recorded on the job and never returned. No transaction is held open
	// while the notifier runs.
	DispatchNotifications(ctx context.Context) (int, error)
}

type MaintenanceOptions struct {
	SweepBatch    int
	DispatchBatch int
	MaxAttempts   int
	// DeliveryTimeout bounds a single Notify call.
	DeliveryTimeout time.Duration
}

type maintenanceUseCaseImpl struct {
	uow      shared.UnitOfWork
	notifier shared.Notifier
	clock    clock.Clock
	loc      *time.Location
	opts     MaintenanceOptions
}

func NewMaintenanceUseCase(uow shared.UnitOfWork, notifier shared.Notifier, clk clock.Clock, loc *time.Location, opts MaintenanceOptions) MaintenanceCommands {
	if opts.SweepBatch <= 0 {
		opts.SweepBatch = DefaultSweepBatch
	}
	if opts.DispatchBatch <= 0 {
		opts.DispatchBatch = DefaultDispatchBatch
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = DefaultMaxAttempts
	}
	if opts.DeliveryTimeout <= 0 {
		opts.DeliveryTimeout = DefaultDeliveryTimeout
	}
	return &maintenanceUseCaseImpl{
		uow:      uow,
		notifier: notifier,
		clock:    clk,
		loc:      loc,
		opts:     opts,
	}
}

func (uc *maintenanceUseCaseImpl) CompleteElapsed(ctx context.Context) (int, error) {
	now := clock.CourtNow(uc.clock, uc.loc)
	today := calendar.DateOf(now)
	nowMinute := now.Hour()*60 + now.Minute()

	completed := 0
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		completed = 0
		elapsed, err := tx.Reservations().ListElapsedConfirmed(ctx, tx.DB(), today, nowMinute, uc.opts.SweepBatch)
		if err != nil {
			return err
		}

		for _, res := range elapsed {
			if !res.HasEnded(now, uc.loc) {
				continue
			}
			if err := res.ChangeStatus(reservation.StatusCompleted, "", now); err != nil {
				return err
			}
			if err := tx.Reservations().UpdateStatus(ctx, tx.DB(), res); err != nil {
				return err
			}
			ev := shared.NewReservationEvent(shared.EventReservationCompleted, res, now)
			if err := shared.EnqueueReservationEvent(ctx, tx, ev); err != nil {
				return err
			}
			completed++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return completed, nil
}

func (uc *maintenanceUseCaseImpl) PurgeExpiredIdempotencyKeys(ctx context.Context) (int64, error) {
	var purged int64
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		n, err := tx.Idempotency().DeleteExpired(ctx, tx.DB(), uc.clock.Now())
		purged = n
		return err
	})
	return purged, err
}

func (uc *maintenanceUseCaseImpl) DispatchNotifications(ctx context.Context) (int, error) {
	now := uc.clock.Now()
	leaseUntil := now.Add(uc.opts.DeliveryTimeout + leaseSlack)

	var jobs []shared.NotificationJob
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		jobs, err = tx.Notifications().LeaseDue(ctx, tx.DB(), now, leaseUntil, uc.opts.DispatchBatch)
		return err
	})
	if err != nil {
		return 0, err
	}

	sent := 0
	var recordErr error
	// an outcome already earned is recorded even if the run is cut short
	recordCtx := context.WithoutCancel(ctx)
	for _, job := range jobs {
		if ctx.Err() != nil {
			// the rest stay leased and come back when the lease runs out
			break
		}
		status, lastErr, retryAt := uc.deliver(ctx, job, now)
		err := uc.uow.Within(recordCtx, func(ctx context.Context, tx shared.Tx) error {
			return tx.Notifications().UpdateJobStatus(ctx, tx.DB(), job.ID, status, lastErr, retryAt)
		})
		if err != nil {
			// the lease runs out and the job is delivered again
			slog.Error("failed to record notification outcome",
				"job_id", job.ID.String(),
				"status", status,
				"error", err)
			if recordErr == nil {
				recordErr = err
			}
			continue
		}
		if status == shared.JobSent {
			sent++
		}
	}
	return sent, recordErr
}

func (uc *maintenanceUseCaseImpl) deliver(ctx context.Context, job shared.NotificationJob, now time.Time) (string, *string, *time.Time) {
	var ev shared.ReservationEvent
	if err := json.Unmarshal(job.Payload, &ev); err != nil {
		msg := "undecodable payload: " + err.Error()
		slog.Error("dropping notification job", "job_id", job.ID.String(), "error", msg)
		return shared.JobFailed, &msg, nil
	}

	deliverCtx, cancel := context.WithTimeout(ctx, uc.opts.DeliveryTimeout)
	defer cancel()

	if err := uc.notifier.Notify(deliverCtx, ev); err != nil {
		msg := err.Error()
		attempts := job.Attempts
		if attempts >= uc.opts.MaxAttempts {
			slog.Error("notification delivery gave up",
				"job_id", job.ID.String(),
				"topic", job.Topic,
				"attempts", attempts,
				"error", msg)
			return shared.JobFailed, &msg, nil
		}
		retryAt := now.Add(time.Duration(attempts) * retryBackoffStep)
		slog.Warn("notification delivery failed",
			"job_id", job.ID.String(),
			"topic", job.Topic,
			"attempts", attempts,
			"retry_at", retryAt,
			"error", msg)
		return shared.JobQueued, &msg, &retryAt
	}
	return shared.JobSent, nil, nil
}
