package queries

//go:generate mockgen -source=reservation.go -destination=../../../tests/mock/queries/reservation.go -package=queriesmock

import (
	"context"
	"time"

	"court-scheduler/internal/domain/calendar"
	"court-scheduler/internal/domain/reservation"
	"court-scheduler/internal/infra"

	"github.com/google/uuid"
)

type ReservationReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	ListByCourtDate(ctx context.Context, courtID uuid.UUID, date calendar.Date, status *string) ([]*ReservationView, error)
	ListBySubjectDate(ctx context.Context, subjectID uuid.UUID, date calendar.Date) ([]*ReservationView, error)
	FindBySubjectFirstPage(ctx context.Context, subjectID uuid.UUID, limit int32) ([]*ReservationView, error)
	FindBySubjectKeyset(ctx context.Context, subjectID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*ReservationView, error)
}

type ReservationQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	ListByCourtDate(ctx context.Context, courtID uuid.UUID, date calendar.Date, status *string) ([]*ReservationView, error)
	ListBySubject(ctx context.Context, subjectID uuid.UUID, date *calendar.Date, cursor *Cursor, limit int) ([]*ReservationView, *Cursor, error)
}

type reservationQueriesImpl struct {
	repo ReservationReadStore
}

func NewReservationQueries(repo ReservationReadStore) ReservationQueries {
	return &reservationQueriesImpl{repo: repo}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	rv, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, reservation.ErrNotFound
		}
		return nil, err
	}
	return rv, nil
}

func (q *reservationQueriesImpl) ListByCourtDate(ctx context.Context, courtID uuid.UUID, date calendar.Date, status *string) ([]*ReservationView, error) {
	if status != nil {
		if _, err := reservation.ParseStatus(*status); err != nil {
			return nil, err
		}
	}
	return q.repo.ListByCourtDate(ctx, courtID, date, status)
}

// ListBySubject returns the subject's bookings for one date, or every booking
// newest first in keyset pages when date is nil.
func (q *reservationQueriesImpl) ListBySubject(ctx context.Context, subjectID uuid.UUID, date *calendar.Date, cursor *Cursor, limit int) ([]*ReservationView, *Cursor, error) {
	if date != nil {
		rows, err := q.repo.ListBySubjectDate(ctx, subjectID, *date)
		return rows, nil, err
	}

	limit = ValidateLimit(limit)
	var rows []*ReservationView
	var err error
	if cursor == nil || cursor.After == "" {
		rows, err = q.repo.FindBySubjectFirstPage(ctx, subjectID, int32(limit+1))
	} else {
		lastCreatedAt, lastID, derr := DecodeAfterCursor(cursor.After)
		if derr != nil {
			return nil, nil, ErrInvalidCursor
		}
		rows, err = q.repo.FindBySubjectKeyset(ctx, subjectID, lastCreatedAt, lastID, int32(limit+1))
	}
	if err != nil {
		return nil, nil, err
	}
	var next *Cursor
	if len(rows) > limit {
		last := rows[limit-1]
		next = &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}
		rows = rows[:limit]
	}
	return rows, next, nil
}
