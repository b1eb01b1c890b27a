//go:build unit || e2e

package builder

import (
	"time"

	"court-scheduler/internal/domain/calendar"
	"court-scheduler/internal/domain/reservation"
	"court-scheduler/internal/domain/slot"
	"court-scheduler/internal/pkg/clock"

	"github.com/google/uuid"
)

type ReservationBuilder struct {
	Calendar     *CalendarBuilder
	SubjectID    uuid.UUID
	SubjectKind  reservation.SubjectKind
	TeamSize     int
	Date         calendar.Date
	StartTime    calendar.ClockTime
	Notes        string
	ContactEmail string
	Existing     []slot.Booking
	Now          time.Time
	Location     *time.Location
}

func NewReservationBuilder() *ReservationBuilder {
	return &ReservationBuilder{
		Calendar:     NewCalendarBuilder(),
		SubjectID:    uuid.New(),
		SubjectKind:  reservation.SubjectIndividual,
		TeamSize:     1,
		Date:         calendar.DateOf(FixedNow).AddDays(1),
		StartTime:    calendar.MustParseClockTime("14:00"),
		Notes:        "Friendly match",
		ContactEmail: "player@example.com",
		Now:          FixedNow,
		Location:     time.UTC,
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *ReservationBuilder) Factory() *reservation.Factory {
	return reservation.NewFactory(clock.NewMockClock(b.Now), reservation.NewDefaultPriceCalculator(), b.Location)
}

func (b *ReservationBuilder) BuildParams() reservation.CreateParams {
	return reservation.CreateParams{
		CourtID:      b.Calendar.CourtID,
		SubjectID:    b.SubjectID,
		SubjectKind:  b.SubjectKind,
		TeamSize:     b.TeamSize,
		Date:         b.Date,
		StartTime:    b.StartTime,
		Notes:        b.Notes,
		ContactEmail: b.ContactEmail,
	}
}

func (b *ReservationBuilder) BuildDomain() (*reservation.Reservation, error) {
	cfg, err := b.Calendar.BuildDomain()
	if err != nil {
		return nil, err
	}
	return b.Factory().CreateReservation(cfg, b.BuildParams(), b.Existing)
}

// BuildStored returns a persisted reservation in the given status without running creation rules.
func (b *ReservationBuilder) BuildStored(status reservation.Status) *reservation.Reservation {
	end := b.StartTime.AddMinutes(b.Calendar.MatchDuration)
	return reservation.Reconstruct(reservation.Record{
		ID:                uuid.New(),
		CourtID:           b.Calendar.CourtID,
		SubjectID:         b.SubjectID,
		SubjectKind:       b.SubjectKind,
		TeamSize:          b.TeamSize,
		Date:              b.Date,
		StartTime:         b.StartTime,
		EndTime:           end,
		Duration:          b.Calendar.MatchDuration,
		Status:            status,
		PriceCents:        (b.Calendar.BasePriceCents*int64(b.Calendar.MatchDuration) + 30) / 60,
		PricePerHourCents: b.Calendar.BasePriceCents,
		Notes:             b.Notes,
		ContactEmail:      b.ContactEmail,
		CreatedAt:         b.Now,
		UpdatedAt:         b.Now,
	})
}

// Fluent builder methods
func (b *ReservationBuilder) WithDate(date string) *ReservationBuilder {
	b.Date = calendar.MustParseDate(date)
	return b
}

func (b *ReservationBuilder) WithDaysAhead(days int) *ReservationBuilder {
	b.Date = calendar.DateOf(b.Now.In(b.Location)).AddDays(days)
	return b
}

func (b *ReservationBuilder) WithStart(hhmm string) *ReservationBuilder {
	b.StartTime = calendar.MustParseClockTime(hhmm)
	return b
}

func (b *ReservationBuilder) WithNow(now time.Time) *ReservationBuilder {
	b.Now = now
	return b
}

func (b *ReservationBuilder) WithExisting(start, end string, status reservation.Status) *ReservationBuilder {
	b.Existing = append(b.Existing, slot.Booking{
		Start:    calendar.MustParseClockTime(start),
		End:      calendar.MustParseClockTime(end),
		Blocking: status.Blocking(),
	})
	return b
}

func (b *ReservationBuilder) WithSubjectID(id uuid.UUID) *ReservationBuilder {
	b.SubjectID = id
	return b
}

func (b *ReservationBuilder) AsTeam(size int) *ReservationBuilder {
	b.SubjectKind = reservation.SubjectTeam
	b.TeamSize = size
	return b
}
