package commands

//go:generate mockgen -source=calendar.go -destination=../../../tests/mock/commands/calendar.go -package=commandsmock

import (
	"context"

	"court-scheduler/internal/domain/calendar"
	"court-scheduler/internal/infra"
	"court-scheduler/internal/pkg/clock"
	"court-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
)

type CalendarCommands interface {
	// EnsureCalendar creates the default calendar on first call and reports
	// whether it did. Later calls leave the stored calendar untouched.
	EnsureCalendar(ctx context.Context, meta calendar.CourtMeta) (bool, error)
	UpdateCalendar(ctx context.Context, courtID uuid.UUID, patch calendar.Patch) error
	BlockDate(ctx context.Context, courtID uuid.UUID, date calendar.Date, reason string) error
	UnblockDate(ctx context.Context, courtID uuid.UUID, date calendar.Date) error
	// ImportCalendar replaces a court's calendar wholesale, creating it when absent.
	ImportCalendar(ctx context.Context, meta calendar.CourtMeta, patch calendar.Patch) error
}

type calendarUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewCalendarUseCase(uow shared.UnitOfWork, clk clock.Clock) CalendarCommands {
	return &calendarUseCaseImpl{uow: uow, clock: clk}
}

func (uc *calendarUseCaseImpl) EnsureCalendar(ctx context.Context, meta calendar.CourtMeta) (bool, error) {
	cfg, err := calendar.NewDefaultConfig(meta, uc.clock.Now())
	if err != nil {
		return false, err
	}

	var created bool
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		inserted, err := tx.Calendars().Insert(ctx, tx.DB(), cfg)
		if err != nil {
			return err
		}
		created = inserted
		return nil
	})
	return created, err
}

func (uc *calendarUseCaseImpl) UpdateCalendar(ctx context.Context, courtID uuid.UUID, patch calendar.Patch) error {
	return uc.modify(ctx, courtID, func(cfg *calendar.CalendarConfig) (*calendar.CalendarConfig, error) {
		return cfg.Apply(patch, uc.clock.Now())
	})
}

func (uc *calendarUseCaseImpl) BlockDate(ctx context.Context, courtID uuid.UUID, date calendar.Date, reason string) error {
	return uc.modify(ctx, courtID, func(cfg *calendar.CalendarConfig) (*calendar.CalendarConfig, error) {
		return cfg.BlockDate(date, reason, uc.clock.Now())
	})
}

func (uc *calendarUseCaseImpl) UnblockDate(ctx context.Context, courtID uuid.UUID, date calendar.Date) error {
	return uc.modify(ctx, courtID, func(cfg *calendar.CalendarConfig) (*calendar.CalendarConfig, error) {
		return cfg.UnblockDate(date, uc.clock.Now())
	})
}

func (uc *calendarUseCaseImpl) ImportCalendar(ctx context.Context, meta calendar.CourtMeta, patch calendar.Patch) error {
	if _, err := uc.EnsureCalendar(ctx, meta); err != nil {
		return err
	}
	return uc.UpdateCalendar(ctx, meta.CourtID, patch)
}

// modify locks the calendar row, applies change and stores the result.
// An invalid result is rejected before anything is written.
func (uc *calendarUseCaseImpl) modify(ctx context.Context, courtID uuid.UUID, change func(*calendar.CalendarConfig) (*calendar.CalendarConfig, error)) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		cfg, err := tx.Calendars().FindForUpdate(ctx, tx.DB(), courtID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return calendar.ErrNotFound
			}
			return err
		}

		next, err := change(cfg)
		if err != nil {
			return err
		}
		return tx.Calendars().Update(ctx, tx.DB(), next)
	})
}
