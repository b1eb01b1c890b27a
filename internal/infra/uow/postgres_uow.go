package uow

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"

	"court-scheduler/internal/domain/calendar"
	"court-scheduler/internal/infra/query"
	"court-scheduler/internal/infra/readstore"
	"court-scheduler/internal/infra/repository"
	"court-scheduler/internal/pkg/errs"
	"court-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

// retryPolicy re-runs a booking transaction that lost a serialization or
// deadlock race. Attempts counts the first run.
type retryPolicy struct {
	attempts int
	base     time.Duration
}

var defaultRetryPolicy = retryPolicy{attempts: 4, base: 100 * time.Millisecond}

// delay doubles per retry with up to 20% jitter.
func (p retryPolicy) delay(retry int) time.Duration {
	d := p.base << retry
	return d + rand.N(d/5+1)
}

type PostgresUoW struct {
	pool      *pgxpool.Pool
	q         *query.Queries
	txTimeout time.Duration
	retry     retryPolicy
}

// NewPostgresUoW bounds every write attempt by txTimeout; zero disables the bound.
func NewPostgresUoW(pool *pgxpool.Pool, q *query.Queries, txTimeout time.Duration) shared.UnitOfWork {
	return &PostgresUoW{
		pool:      pool,
		q:         q,
		txTimeout: txTimeout,
		retry:     defaultRetryPolicy,
	}
}

// Within runs fn at READ COMMITTED. Overlap safety comes from the court-day
// advisory lock plus the exclusion constraint, not from isolation.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	opts := pgx.TxOptions{IsoLevel: pgx.ReadCommitted}

	var err error
	for attempt := range u.retry.attempts {
		if attempt > 0 {
			wait := u.retry.delay(attempt - 1)
			slog.WarnContext(ctx, "Retrying transaction",
				"attempt", attempt+1,
				"wait_ms", wait.Milliseconds(),
				"error", err)
			if werr := sleepContext(ctx, wait); werr != nil {
				return werr
			}
		}

		err = u.attempt(ctx, opts, fn)
		if err == nil || !isRetryableError(err) {
			return err
		}
	}

	slog.ErrorContext(ctx, "Transaction failed after max retries",
		"attempts", u.retry.attempts,
		"error", err)
	return errs.Mark(err, errMaxRetriesExceeded)
}

func (u *PostgresUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db query.DBTX) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly})
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}
	defer rollbackQuietly(ctx, pgxTx, "read-only")

	if err := fn(ctx, pgxTx); err != nil {
		return err
	}
	return pgxTx.Commit(ctx)
}

func (u *PostgresUoW) WithDB(ctx context.Context, fn func(ctx context.Context, db query.DBTX) error) error {
	return fn(ctx, u.pool)
}

func (u *PostgresUoW) CommandReads() shared.CommandReads {
	return &commandReads{uow: u, dbtx: u.pool}
}

// attempt runs fn in one transaction. A timed-out attempt is rolled back, so it
// leaves nothing behind.
func (u *PostgresUoW) attempt(ctx context.Context, opts pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	if u.txTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, u.txTimeout)
		defer cancel()
	}

	pgxTx, err := u.pool.BeginTx(ctx, opts)
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}

	if err = fn(ctx, &pgTx{dbtx: pgxTx, uow: u}); err == nil {
		if err = pgxTx.Commit(ctx); err == nil {
			return nil
		}
		err = errs.Mark(err, errTransactionCommit)
	}

	// Rollback must outlive a cancelled attempt context.
	rollbackQuietly(context.WithoutCancel(ctx), pgxTx, "write")
	return err
}

func rollbackQuietly(ctx context.Context, tx pgx.Tx, kind string) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		slog.WarnContext(ctx, "Rollback failed", "tx", kind, "error", err)
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgErrCodeSerializationFailure || pgErr.Code == pgErrCodeDeadlockDetected
}

type pgTx struct {
	dbtx query.DBTX
	uow  *PostgresUoW

	// Lazy-initialized repositories
	calendarRepo     shared.CalendarRepository
	reservationRepo  shared.ReservationRepository
	idempotencyRepo  shared.IdempotencyRepository
	notificationRepo shared.NotificationRepository
	commandReads     shared.CommandReads
}

func (t *pgTx) DB() query.DBTX {
	return t.dbtx
}

func (t *pgTx) Calendars() shared.CalendarRepository {
	if t.calendarRepo == nil {
		t.calendarRepo = repository.NewCalendarRepository(t.uow.q, t.dbtx)
	}
	return t.calendarRepo
}

func (t *pgTx) Reservations() shared.ReservationRepository {
	if t.reservationRepo == nil {
		t.reservationRepo = repository.NewReservationRepository(t.uow.q, t.dbtx)
	}
	return t.reservationRepo
}

func (t *pgTx) Idempotency() shared.IdempotencyRepository {
	if t.idempotencyRepo == nil {
		t.idempotencyRepo = repository.NewIdempotencyRepository(t.uow.q, t.dbtx)
	}
	return t.idempotencyRepo
}

func (t *pgTx) Notifications() shared.NotificationRepository {
	if t.notificationRepo == nil {
		t.notificationRepo = repository.NewNotificationRepository(t.uow.q, t.dbtx)
	}
	return t.notificationRepo
}

func (t *pgTx) Reads() shared.CommandReads {
	if t.commandReads == nil {
		t.commandReads = &commandReads{
			uow:  t.uow,
			dbtx: t.dbtx,
		}
	}
	return t.commandReads
}

type commandReads struct {
	uow  *PostgresUoW
	dbtx query.DBTX

	// Lazy-initialized readstores
	calendarStore    *readstore.CalendarReadStore
	idempotencyStore *readstore.IdempotencyReadStore
}

func (r *commandReads) CalendarByCourtID(ctx context.Context, courtID uuid.UUID) (*calendar.CalendarConfig, error) {
	if r.calendarStore == nil {
		r.calendarStore = readstore.NewCalendarReadStore(r.uow.q, r.dbtx)
	}
	return r.calendarStore.FindByCourtIDTx(ctx, r.dbtx, courtID)
}

func (r *commandReads) IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	if r.idempotencyStore == nil {
		r.idempotencyStore = readstore.NewIdempotencyReadStore(r.uow.q)
	}
	return r.idempotencyStore.Get(ctx, r.dbtx, key, userID)
}
