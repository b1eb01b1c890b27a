package readstore

//go:generate mockgen -source=reservation.go -destination=../../../tests/mock/readstore/reservation.go -package=readstoremock

import (
	"context"
	"encoding/json"
	"time"

	"court-scheduler/internal/domain/calendar"
	"court-scheduler/internal/domain/slot"
	"court-scheduler/internal/infra"
	"court-scheduler/internal/infra/query"
	"court-scheduler/internal/infra/repository/converter"
	"court-scheduler/internal/pkg/pgconv"
	"court-scheduler/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ReservationViewQueries interface {
	GetReservationByID(ctx context.Context, db query.DBTX, id uuid.UUID) (query.Reservations, error)
	ListReservationsByCourtDate(ctx context.Context, db query.DBTX, arg query.ListReservationsByCourtDateParams) ([]query.Reservations, error)
	ListReservationsBySubjectDate(ctx context.Context, db query.DBTX, subjectID uuid.UUID, date pgtype.Date) ([]query.Reservations, error)
	ListReservationsBySubjectFirstPage(ctx context.Context, db query.DBTX, subjectID uuid.UUID, limit int32) ([]query.Reservations, error)
	ListReservationsBySubjectKeyset(ctx context.Context, db query.DBTX, arg query.ListReservationsBySubjectKeysetParams) ([]query.Reservations, error)
	ListBlockingIntervals(ctx context.Context, db query.DBTX, courtID uuid.UUID, date pgtype.Date) ([]query.ListBlockingIntervalsRow, error)
}

type ReservationReadStore struct {
	queries ReservationViewQueries
	db      query.DBTX
}

func NewReservationReadStore(queries ReservationViewQueries, db query.DBTX) *ReservationReadStore {
	return &ReservationReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	return r.FindByIDTx(ctx, r.db, id)
}

func (r *ReservationReadStore) FindByIDTx(ctx context.Context, db query.DBTX, id uuid.UUID) (*queries.ReservationView, error) {
	row, err := r.queries.GetReservationByID(ctx, db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}

	return rowToReservationView(row), nil
}

func (r *ReservationReadStore) ListByCourtDate(ctx context.Context, courtID uuid.UUID, date calendar.Date, status *string) ([]*queries.ReservationView, error) {
	rows, err := r.queries.ListReservationsByCourtDate(ctx, r.db, query.ListReservationsByCourtDateParams{
		CourtID: courtID,
		Date:    converter.DateToInfra(date),
		Status:  pgconv.StringPtrToPgtype(status),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list court reservations", err)
	}
	return rowsToReservationViews(rows), nil
}

func (r *ReservationReadStore) ListBySubjectDate(ctx context.Context, subjectID uuid.UUID, date calendar.Date) ([]*queries.ReservationView, error) {
	rows, err := r.queries.ListReservationsBySubjectDate(ctx, r.db, subjectID, converter.DateToInfra(date))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list subject reservations", err)
	}
	return rowsToReservationViews(rows), nil
}

func (r *ReservationReadStore) FindBySubjectFirstPage(ctx context.Context, subjectID uuid.UUID, limit int32) ([]*queries.ReservationView, error) {
	rows, err := r.queries.ListReservationsBySubjectFirstPage(ctx, r.db, subjectID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find reservations first page", err)
	}
	return rowsToReservationViews(rows), nil
}

func (r *ReservationReadStore) FindBySubjectKeyset(ctx context.Context, subjectID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.ReservationView, error) {
	params := query.ListReservationsBySubjectKeysetParams{
		SubjectID: subjectID,
		CreatedAt: pgconv.TimeToPgtype(lastCreatedAt),
		ID:        lastID,
		Limit:     limit,
	}

	rows, err := r.queries.ListReservationsBySubjectKeyset(ctx, r.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find reservations keyset", err)
	}
	return rowsToReservationViews(rows), nil
}

// ListBlocking reads outside any lock; the create path re-reads under the court-day lock.
func (r *ReservationReadStore) ListBlocking(ctx context.Context, courtID uuid.UUID, date calendar.Date) ([]slot.Booking, error) {
	rows, err := r.queries.ListBlockingIntervals(ctx, r.db, courtID, converter.DateToInfra(date))
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

func rowsToReservationViews(rows []query.Reservations) []*queries.ReservationView {
	result := make([]*queries.ReservationView, len(rows))
	for i, row := range rows {
		result[i] = rowToReservationView(row)
	}
	return result
}

func rowToReservationView(row query.Reservations) *queries.ReservationView {
	return &queries.ReservationView{
		ID:                 row.ID,
		CourtID:            row.CourtID,
		SubjectID:          row.SubjectID,
		SubjectKind:        row.SubjectKind,
		TeamSize:           int(row.TeamSize),
		Date:               converter.DateFromInfra(row.Date).String(),
		StartTime:          calendar.ClockTime(row.StartMinute).String(),
		EndTime:            calendar.ClockTime(row.EndMinute).String(),
		Duration:           int(row.DurationMinutes),
		Status:             row.Status,
		PriceCents:         row.PriceCents,
		PricePerHourCents:  row.PricePerHourCents,
		Notes:              pgconv.StringPtrFromPgtype(row.Notes),
		CancellationReason: pgconv.StringPtrFromPgtype(row.CancellationReason),
		ContactEmail:       pgconv.StringPtrFromPgtype(row.ContactEmail),
		CourtSnapshot:      json.RawMessage(row.CourtSnapshot),
		CompanySnapshot:    json.RawMessage(row.CompanySnapshot),
		SubjectSnapshot:    json.RawMessage(row.SubjectSnapshot),
		CreatedAt:          pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:          pgconv.TimeFromPgtype(row.UpdatedAt),
		CancelledAt:        pgconv.TimePtrFromPgtype(row.CancelledAt),
	}
}
