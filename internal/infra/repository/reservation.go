package repository

//go:generate mockgen -source=reservation.go -destination=../../../tests/mock/repository/reservation.go -package=repositorymock

import (
	"context"

	"court-scheduler/internal/domain/calendar"
	"court-scheduler/internal/domain/reservation"
	"court-scheduler/internal/domain/slot"
	"court-scheduler/internal/infra"
	"court-scheduler/internal/infra/query"
	"court-scheduler/internal/infra/repository/converter"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ReservationWriteQueries interface {
	LockCourtDay(ctx context.Context, db query.DBTX, lockKey string) error
	ListBlockingIntervals(ctx context.Context, db query.DBTX, courtID uuid.UUID, date pgtype.Date) ([]query.ListBlockingIntervalsRow, error)
	CreateReservation(ctx context.Context, db query.DBTX, arg query.CreateReservationParams) (uuid.UUID, error)
	GetReservationByIDForUpdate(ctx context.Context, db query.DBTX, id uuid.UUID) (query.Reservations, error)
	UpdateReservationStatus(ctx context.Context, db query.DBTX, arg query.UpdateReservationStatusParams) (int64, error)
	ListElapsedConfirmedForUpdate(ctx context.Context, db query.DBTX, arg query.ListElapsedConfirmedForUpdateParams) ([]query.Reservations, error)
}

type ReservationRepository struct {
	queries ReservationWriteQueries
	db      query.DBTX
}

func NewReservationRepository(queries ReservationWriteQueries, db query.DBTX) *ReservationRepository {
	return &ReservationRepository{
		queries: queries,
		db:      db,
	}
}

// LockCourtDay must be taken before reading blocking intervals for a create.
func (r *ReservationRepository) LockCourtDay(ctx context.Context, tx query.DBTX, courtID uuid.UUID, date calendar.Date) error {
	if err := r.queries.LockCourtDay(ctx, tx, converter.CourtDayLockKey(courtID, date)); err != nil {
		return infra.WrapRepoErr("failed to lock court day", err)
	}
	return nil
}

func (r *ReservationRepository) ListBlocking(ctx context.Context, tx query.DBTX, courtID uuid.UUID, date calendar.Date) ([]slot.Booking, error) {
	rows, err := r.queries.ListBlockingIntervals(ctx, tx, courtID, converter.DateToInfra(date))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list blocking reservations", err)
	}

	bookings := make([]slot.Booking, len(rows))
	for i, row := range rows {
		bookings[i] = slot.Booking{
			Start:    calendar.ClockTime(row.StartMinute),
			End:      calendar.ClockTime(row.EndMinute),
			Blocking: true,
		}
	}
	return bookings, nil
}

func (r *ReservationRepository) Create(ctx context.Context, tx query.DBTX, res *reservation.Reservation) (uuid.UUID, error) {
	params := converter.ReservationToInfra(res)

	resultID, err := r.queries.CreateReservation(ctx, tx, params)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create reservation", err)
	}

	return resultID, nil
}

func (r *ReservationRepository) FindForUpdate(ctx context.Context, tx query.DBTX, id uuid.UUID) (*reservation.Reservation, error) {
	row, err := r.queries.GetReservationByIDForUpdate(ctx, tx, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock reservation", err)
	}
	return converter.ReservationFromInfra(row), nil
}

func (r *ReservationRepository) UpdateStatus(ctx context.Context, tx query.DBTX, res *reservation.Reservation) error {
	updated, err := r.queries.UpdateReservationStatus(ctx, tx, converter.ReservationStatusToInfra(res))
	if err != nil {
		return infra.WrapRepoErr("failed to update reservation status", err)
	}
	if updated == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}

// ListElapsedConfirmed locks confirmed reservations whose end is at or before
// (today, nowMinute). Rows held by another sweeper are skipped.
func (r *ReservationRepository) ListElapsedConfirmed(ctx context.Context, tx query.DBTX, today calendar.Date, nowMinute, limit int) ([]*reservation.Reservation, error) {
	rows, err := r.queries.ListElapsedConfirmedForUpdate(ctx, tx, query.ListElapsedConfirmedForUpdateParams{
		Today:     converter.DateToInfra(today),
		NowMinute: int32(nowMinute),
		Limit:     int32(limit),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list elapsed reservations", err)
	}

	out := make([]*reservation.Reservation, len(rows))
	for i, row := range rows {
		out[i] = converter.ReservationFromInfra(row)
	}
	return out, nil
}
