package queries

//go:generate mockgen -source=availability.go -destination=../../../tests/mock/queries/availability.go -package=queriesmock

import (
	"context"
	"time"

	"court-scheduler/internal/domain/calendar"
	"court-scheduler/internal/domain/reservation"
	"court-scheduler/internal/domain/slot"
	"court-scheduler/internal/infra"
	"court-scheduler/internal/pkg/clock"

	"github.com/google/uuid"
)

type CalendarReadStore interface {
	FindByCourtID(ctx context.Context, courtID uuid.UUID) (*calendar.CalendarConfig, error)
}

type BookingReadStore interface {
	ListBlocking(ctx context.Context, courtID uuid.UUID, date calendar.Date) ([]slot.Booking, error)
}

type AvailabilityQueries interface {
	GetAvailability(ctx context.Context, courtID uuid.UUID, date calendar.Date) (*AvailabilityView, error)
}

type availabilityQueriesImpl struct {
	calendars CalendarReadStore
	bookings  BookingReadStore
	pricing   reservation.PriceCalculator
	clock     clock.Clock
	loc       *time.Location
}

func NewAvailabilityQueries(calendars CalendarReadStore, bookings BookingReadStore, pricing reservation.PriceCalculator, clk clock.Clock, loc *time.Location) AvailabilityQueries {
	return &availabilityQueriesImpl{
		calendars: calendars,
		bookings:  bookings,
		pricing:   pricing,
		clock:     clk,
		loc:       loc,
	}
}

// GetAvailability runs the same generator and resolver the create path uses.
// Dates that cannot be booked still list their slots, all unavailable.
func (q *availabilityQueriesImpl) GetAvailability(ctx context.Context, courtID uuid.UUID, date calendar.Date) (*AvailabilityView, error) {
	cfg, err := q.calendars.FindByCourtID(ctx, courtID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, calendar.ErrNotFound
		}
		return nil, err
	}

	now := clock.CourtNow(q.clock, q.loc)
	today := calendar.DateOf(now)
	hours := cfg.WorkingHours().For(date.Weekday())
	duration := cfg.MatchDuration()

	view := &AvailabilityView{
		CourtID:       courtID,
		Date:          date.String(),
		Bookable:      hours.IsOpen,
		WorkingHours:  dayHoursView(hours),
		MatchDuration: duration,
		Slots:         []SlotView{},
	}
	if !hours.IsOpen {
		return view, nil
	}

	candidates := slot.Generate(hours, duration, now, date.Equal(today))

	var reason string
	switch {
	case date.Before(today):
		reason = reservation.ErrDateInPast.Message
	case date.After(today.AddDays(cfg.AdvanceBookingDays())):
		reason = reservation.ErrBeyondBookingWindow.Message
	default:
		if blockedReason, blocked := cfg.BlockedReason(date); blocked {
			reason = blockedReason
		}
	}

	if reason != "" {
		view.Bookable = false
		view.BlockedReason = &reason
		for i := range candidates {
			candidates[i].Available = false
		}
	} else {
		existing, err := q.bookings.ListBlocking(ctx, courtID, date)
		if err != nil {
			return nil, err
		}
		candidates = slot.Resolve(candidates, existing)
	}

	price := q.pricing.CalculatePriceCents(cfg.Pricing(), today, date, duration)
	for _, c := range candidates {
		view.Slots = append(view.Slots, SlotView{
			StartTime:  c.Start.String(),
			EndTime:    c.End.String(),
			Duration:   c.Duration,
			PriceCents: price,
			Available:  c.Available,
		})
	}
	return view, nil
}

func dayHoursView(h calendar.DayHours) DayHoursView {
	if !h.IsOpen {
		return DayHoursView{IsOpen: false}
	}
	return DayHoursView{IsOpen: true, Start: h.Start.String(), End: h.End.String()}
}
