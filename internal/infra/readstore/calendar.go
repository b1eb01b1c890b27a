package readstore

import (
	"context"

	"court-scheduler/internal/domain/calendar"
	"court-scheduler/internal/infra"
	"court-scheduler/internal/infra/query"
	"court-scheduler/internal/infra/repository/converter"

	"github.com/google/uuid"
)

type CalendarViewQueries interface {
	GetCourtCalendar(ctx context.Context, db query.DBTX, courtID uuid.UUID) (query.CourtCalendars, error)
	ListBlockedDates(ctx context.Context, db query.DBTX, courtID uuid.UUID) ([]query.CourtBlockedDates, error)
}

type CalendarReadStore struct {
	queries CalendarViewQueries
	db      query.DBTX
}

func NewCalendarReadStore(queries CalendarViewQueries, db query.DBTX) *CalendarReadStore {
	return &CalendarReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *CalendarReadStore) FindByCourtID(ctx context.Context, courtID uuid.UUID) (*calendar.CalendarConfig, error) {
	return r.FindByCourtIDTx(ctx, r.db, courtID)
}

// FindByCourtIDTx reads through the given handle so a command can see its own transaction.
func (r *CalendarReadStore) FindByCourtIDTx(ctx context.Context, db query.DBTX, courtID uuid.UUID) (*calendar.CalendarConfig, error) {
	row, err := r.queries.GetCourtCalendar(ctx, db, courtID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find court calendar", err)
	}

	blocked, err := r.queries.ListBlockedDates(ctx, db, courtID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list blocked dates", err)
	}

	cfg, err := converter.CalendarFromInfra(row, blocked)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode court calendar", err)
	}
	return cfg, nil
}
