package repository

import (
	"context"

	"court-scheduler/internal/domain/calendar"
	"court-scheduler/internal/infra"
	"court-scheduler/internal/infra/query"
	"court-scheduler/internal/infra/repository/converter"

	"github.com/google/uuid"
)

type CalendarWriteQueries interface {
	GetCourtCalendarForUpdate(ctx context.Context, db query.DBTX, courtID uuid.UUID) (query.CourtCalendars, error)
	InsertCourtCalendar(ctx context.Context, db query.DBTX, arg query.InsertCourtCalendarParams) (int64, error)
	UpdateCourtCalendar(ctx context.Context, db query.DBTX, arg query.UpdateCourtCalendarParams) (int64, error)
	ListBlockedDates(ctx context.Context, db query.DBTX, courtID uuid.UUID) ([]query.CourtBlockedDates, error)
	DeleteBlockedDates(ctx context.Context, db query.DBTX, courtID uuid.UUID) error
	InsertBlockedDate(ctx context.Context, db query.DBTX, arg query.InsertBlockedDateParams) error
}

type CalendarRepository struct {
	queries CalendarWriteQueries
	db      query.DBTX
}

func NewCalendarRepository(queries CalendarWriteQueries, db query.DBTX) *CalendarRepository {
	return &CalendarRepository{
		queries: queries,
		db:      db,
	}
}

// FindForUpdate row-locks the calendar so concurrent edits of one court apply in order.
func (r *CalendarRepository) FindForUpdate(ctx context.Context, tx query.DBTX, courtID uuid.UUID) (*calendar.CalendarConfig, error) {
	row, err := r.queries.GetCourtCalendarForUpdate(ctx, tx, courtID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock court calendar", err)
	}

	blocked, err := r.queries.ListBlockedDates(ctx, tx, courtID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list blocked dates", err)
	}

	cfg, err := converter.CalendarFromInfra(row, blocked)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode court calendar", err)
	}
	return cfg, nil
}

// Insert returns false when the court already has a calendar.
func (r *CalendarRepository) Insert(ctx context.Context, tx query.DBTX, cfg *calendar.CalendarConfig) (bool, error) {
	params, err := converter.CalendarToInfra(cfg)
	if err != nil {
		return false, infra.WrapRepoErr("failed to encode court calendar", err)
	}

	inserted, err := r.queries.InsertCourtCalendar(ctx, tx, params)
	if err != nil {
		return false, infra.WrapRepoErr("failed to insert court calendar", err)
	}
	if inserted == 0 {
		return false, nil
	}

	if err := r.insertBlocked(ctx, tx, cfg); err != nil {
		return false, err
	}
	return true, nil
}

// Update overwrites the calendar row and replaces its blocked dates.
func (r *CalendarRepository) Update(ctx context.Context, tx query.DBTX, cfg *calendar.CalendarConfig) error {
	params, err := converter.CalendarToInfra(cfg)
	if err != nil {
		return infra.WrapRepoErr("failed to encode court calendar", err)
	}

	updated, err := r.queries.UpdateCourtCalendar(ctx, tx, query.UpdateCourtCalendarParams(params))
	if err != nil {
		return infra.WrapRepoErr("failed to update court calendar", err)
	}
	if updated == 0 {
		return infra.WrapRepoErr("court calendar not found", nil, infra.KindNotFound)
	}

	if err := r.queries.DeleteBlockedDates(ctx, tx, cfg.CourtID()); err != nil {
		return infra.WrapRepoErr("failed to clear blocked dates", err)
	}
	return r.insertBlocked(ctx, tx, cfg)
}

func (r *CalendarRepository) insertBlocked(ctx context.Context, tx query.DBTX, cfg *calendar.CalendarConfig) error {
	for _, row := range converter.BlockedDatesToInfra(cfg) {
		if err := r.queries.InsertBlockedDate(ctx, tx, row); err != nil {
			return infra.WrapRepoErr("failed to insert blocked date", err)
		}
	}
	return nil
}
