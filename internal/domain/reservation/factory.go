package reservation

import (
	"strings"
	"time"

	"court-scheduler/internal/domain/calendar"
	"court-scheduler/internal/domain/slot"
	"court-scheduler/internal/pkg/clock"

	"github.com/google/uuid"
)

type Factory struct {
	Clock           clock.Clock
	PriceCalculator PriceCalculator
	Location        *time.Location
}

func NewFactory(clock clock.Clock, priceCalculator PriceCalculator, loc *time.Location) *Factory {
	return &Factory{
		Clock:           clock,
		PriceCalculator: priceCalculator,
		Location:        loc,
	}
}

type CreateParams struct {
	CourtID      uuid.UUID
	SubjectID    uuid.UUID
	SubjectKind  SubjectKind
	TeamSize     int
	Date         calendar.Date
	StartTime    calendar.ClockTime
	Notes        string
	ContactEmail string
	Snapshots    Snapshots
}

// CreateReservation validates a booking request against the court's calendar and
// the reservations already holding time that day. Rules run in a fixed order and
// the first failure is returned.
func (f *Factory) CreateReservation(cfg *calendar.CalendarConfig, p CreateParams, existing []slot.Booking) (*Reservation, error) {
	if cfg.CourtID() != p.CourtID {
		return nil, ErrCourtMismatch
	}
	if p.SubjectID == uuid.Nil {
		return nil, ErrSubjectRequired
	}
	kind := p.SubjectKind
	if kind == "" {
		kind = SubjectIndividual
	}
	if !kind.IsValid() {
		return nil, ErrInvalidSubjectKind
	}
	teamSize := p.TeamSize
	if teamSize == 0 {
		teamSize = MinTeamSize
	}
	if teamSize < MinTeamSize || teamSize > MaxTeamSize {
		return nil, ErrInvalidTeamSize
	}
	notes, err := NewNotes(p.Notes)
	if err != nil {
		return nil, err
	}

	now := clock.CourtNow(f.Clock, f.Location)
	today := calendar.DateOf(now)

	if p.Date.Before(today) {
		return nil, ErrDateInPast.With("%s", p.Date)
	}
	if p.Date.After(today.AddDays(cfg.AdvanceBookingDays())) {
		return nil, ErrBeyondBookingWindow.With("bookings open %d days ahead", cfg.AdvanceBookingDays())
	}
	if reason, blocked := cfg.BlockedReason(p.Date); blocked {
		return nil, ErrDateBlocked.With("%s", reason)
	}
	hours := cfg.WorkingHours().For(p.Date.Weekday())
	if !hours.IsOpen {
		return nil, ErrCourtClosed.With("%s", calendar.WeekdayKey(p.Date.Weekday()))
	}

	duration := cfg.MatchDuration()
	end := p.StartTime.AddMinutes(duration)
	if p.StartTime < hours.Start || end > hours.End {
		return nil, ErrOutsideWorkingHours.With("%s-%s is not within %s-%s", p.StartTime, end, hours.Start, hours.End)
	}
	if p.Date.Equal(today) && p.Date.At(p.StartTime, f.Location).Before(now.Add(slot.LeadBuffer)) {
		return nil, ErrInsufficientLeadTime.With("same-day bookings must start at least %d minutes from now", int(slot.LeadBuffer.Minutes()))
	}

	requested := slot.Interval{Start: p.StartTime, End: end}
	if taken, found := slot.FirstConflict(requested, existing); found {
		return nil, ErrSlotConflict.With("%s-%s is taken", taken.Start, taken.End)
	}

	pricing := cfg.Pricing()
	price := f.PriceCalculator.CalculatePriceCents(pricing, today, p.Date, duration)

	status := StatusPending
	if cfg.AutoConfirmBookings() {
		status = StatusConfirmed
	}

	return &Reservation{
		id:                uuid.New(),
		courtID:           p.CourtID,
		subjectID:         p.SubjectID,
		subjectKind:       kind,
		teamSize:          teamSize,
		date:              p.Date,
		startTime:         p.StartTime,
		endTime:           end,
		duration:          duration,
		status:            status,
		priceCents:        price,
		pricePerHourCents: pricing.BasePricePerHourCents,
		notes:             notes,
		contactEmail:      strings.TrimSpace(p.ContactEmail),
		snapshots:         p.Snapshots,
		createdAt:         now,
		updatedAt:         now,
	}, nil
}
