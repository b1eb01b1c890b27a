package repository

//go:generate mockgen -source=notification.go -destination=../../../tests/mock/repository/notification.go -package=repositorymock

import (
	"context"
	"time"

	"court-scheduler/internal/infra"
	"court-scheduler/internal/infra/query"
	"court-scheduler/internal/pkg/pgconv"
	"court-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
)

type NotificationWriteQueries interface {
	CreateNotificationJob(ctx context.Context, db query.DBTX, arg query.CreateNotificationJobParams) error
	LeaseDueNotificationJobs(ctx context.Context, db query.DBTX, arg query.LeaseDueNotificationJobsParams) ([]query.NotificationJobs, error)
	UpdateNotificationJobStatus(ctx context.Context, db query.DBTX, arg query.UpdateNotificationJobStatusParams) error
}

type NotificationRepository struct {
	queries NotificationWriteQueries
	db      query.DBTX
}

func NewNotificationRepository(queries NotificationWriteQueries, db query.DBTX) *NotificationRepository {
	return &NotificationRepository{
		queries: queries,
		db:      db,
	}
}

func (r *NotificationRepository) CreateJob(ctx context.Context, tx query.DBTX, kind, topic string, payload []byte, runAt time.Time) error {
	// Enqueued in the booking transaction, so the job exists iff the booking commits.
	err := r.queries.CreateNotificationJob(ctx, tx, query.CreateNotificationJobParams{
		Kind:    kind,
		Topic:   topic,
		Payload: payload,
		RunAt:   pgconv.TimeToPgtype(runAt),
		Status:  shared.JobQueued,
	})
	if err != nil {
		return infra.WrapRepoErr("failed to enqueue notification job", err)
	}
	return nil
}

// LeaseDue takes up to limit queued jobs whose run_at has passed, counts the
// attempt and pushes run_at to leaseUntil. Once the transaction commits no
// other dispatcher sees the jobs until the lease runs out or an outcome is
// recorded.
func (r *NotificationRepository) LeaseDue(ctx context.Context, tx query.DBTX, now, leaseUntil time.Time, limit int) ([]shared.NotificationJob, error) {
	rows, err := r.queries.LeaseDueNotificationJobs(ctx, tx, query.LeaseDueNotificationJobsParams{
		Now:        pgconv.TimeToPgtype(now),
		LeaseUntil: pgconv.TimeToPgtype(leaseUntil),
		Limit:      int32(limit),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lease notification jobs", err)
	}

	jobs := make([]shared.NotificationJob, len(rows))
	for i, row := range rows {
		jobs[i] = shared.NotificationJob{
			ID:       row.ID,
			Kind:     row.Kind,
			Topic:    row.Topic,
			Payload:  row.Payload,
			Attempts: int(row.Attempts),
		}
	}
	return jobs, nil
}

// UpdateJobStatus records the outcome of a leased attempt. A non-nil retryAt
// requeues the job for that time.
func (r *NotificationRepository) UpdateJobStatus(ctx context.Context, tx query.DBTX, jobID uuid.UUID, status string, lastError *string, retryAt *time.Time) error {
	err := r.queries.UpdateNotificationJobStatus(ctx, tx, query.UpdateNotificationJobStatusParams{
		ID:        jobID,
		Status:    status,
		LastError: pgconv.StringPtrToPgtype(lastError),
		RunAt:     pgconv.TimePtrToPgtype(retryAt),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to update notification job status", err, infra.KindDBFailure)
	}
	return nil
}
