package shared

import (
	"context"
	"time"

	"court-scheduler/internal/domain/calendar"
	"court-scheduler/internal/domain/reservation"
	"court-scheduler/internal/domain/slot"
	"court-scheduler/internal/infra/query"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db query.DBTX) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db query.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Calendars() CalendarRepository
	Reservations() ReservationRepository
	Idempotency() IdempotencyRepository
	Notifications() NotificationRepository
	Reads() CommandReads
	DB() query.DBTX
}

type CommandReads interface {
	CalendarByCourtID(ctx context.Context, courtID uuid.UUID) (*calendar.CalendarConfig, error)
	IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*IdempotencyRecord, error)
}

type CalendarRepository interface {
	FindForUpdate(ctx context.Context, tx query.DBTX, courtID uuid.UUID) (*calendar.CalendarConfig, error)
	Insert(ctx context.Context, tx query.DBTX, cfg *calendar.CalendarConfig) (bool, error)
	Update(ctx context.Context, tx query.DBTX, cfg *calendar.CalendarConfig) error
}

type ReservationRepository interface {
	LockCourtDay(ctx context.Context, tx query.DBTX, courtID uuid.UUID, date calendar.Date) error
	ListBlocking(ctx context.Context, tx query.DBTX, courtID uuid.UUID, date calendar.Date) ([]slot.Booking, error)
	Create(ctx context.Context, tx query.DBTX, res *reservation.Reservation) (uuid.UUID, error)
	FindForUpdate(ctx context.Context, tx query.DBTX, id uuid.UUID) (*reservation.Reservation, error)
	UpdateStatus(ctx context.Context, tx query.DBTX, res *reservation.Reservation) error
	ListElapsedConfirmed(ctx context.Context, tx query.DBTX, today calendar.Date, nowMinute, limit int) ([]*reservation.Reservation, error)
}

type IdempotencyRepository interface {
	TryInsert(ctx context.Context, tx query.DBTX, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error)
	UpdateStatusCompleted(ctx context.Context, tx query.DBTX, key, userID uuid.UUID, resultHash string, reservationID uuid.UUID) error
	Release(ctx context.Context, tx query.DBTX, key, userID uuid.UUID) error
	ClaimExpired(ctx context.Context, tx query.DBTX, key, userID uuid.UUID, requestHash string, expiresAt time.Time) (bool, error)
	DeleteExpired(ctx context.Context, tx query.DBTX, now time.Time) (int64, error)
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, tx query.DBTX, kind, topic string, payload []byte, runAt time.Time) error
	LeaseDue(ctx context.Context, tx query.DBTX, now, leaseUntil time.Time, limit int) ([]NotificationJob, error)
	UpdateJobStatus(ctx context.Context, tx query.DBTX, jobID uuid.UUID, status string, lastError *string, retryAt *time.Time) error
}
