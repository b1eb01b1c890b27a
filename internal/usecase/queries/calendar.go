package queries

//go:generate mockgen -source=calendar.go -destination=../../../tests/mock/queries/calendar.go -package=queriesmock

import (
	"context"
	"time"

	"court-scheduler/internal/domain/calendar"
	"court-scheduler/internal/infra"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type CalendarQueries interface {
	Get(ctx context.Context, courtID uuid.UUID) (*CalendarView, error)
}

type calendarQueriesImpl struct {
	store CalendarReadStore
}

func NewCalendarQueries(store CalendarReadStore) CalendarQueries {
	return &calendarQueriesImpl{store: store}
}

func (q *calendarQueriesImpl) Get(ctx context.Context, courtID uuid.UUID) (*CalendarView, error) {
	cfg, err := q.store.FindByCourtID(ctx, courtID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, calendar.ErrNotFound
		}
		return nil, err
	}
	return NewCalendarView(cfg)
}

// NewCalendarView flattens a configuration for presentation. Fields with matching
// names are copied; weekly hours and blocked dates are rendered as strings.
func NewCalendarView(cfg *calendar.CalendarConfig) (*CalendarView, error) {
	snap := cfg.Snapshot()

	var view CalendarView
	if err := copier.CopyWithOption(&view, &snap, copier.Option{DeepCopy: true}); err != nil {
		return nil, err
	}

	view.Weekly = make(map[string]DayHoursView, 7)
	for day := time.Sunday; day <= time.Saturday; day++ {
		view.Weekly[calendar.WeekdayKey(day)] = dayHoursView(snap.WorkingHours.For(day))
	}

	view.Blocked = make([]BlockedDateView, len(snap.BlockedDates))
	for i, b := range snap.BlockedDates {
		view.Blocked[i] = BlockedDateView{Date: b.Date.String(), Reason: b.Reason}
	}
	return &view, nil
}
