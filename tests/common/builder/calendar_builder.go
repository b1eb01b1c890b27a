//go:build unit || e2e

package builder

import (
	"time"

	"court-scheduler/internal/domain/calendar"

	"github.com/google/uuid"
)

// FixedNow is a Monday morning; every builder anchors to it unless told otherwise.
var FixedNow = time.Date(2025, time.June, 2, 10, 0, 0, 0, time.UTC)

type CalendarBuilder struct {
	CourtID              uuid.UUID
	CompanyID            uuid.UUID
	WorkingHours         calendar.WorkingHours
	MatchDuration        int
	BasePriceCents       int64
	AdvancePriceCents    *int64
	AdvanceThresholdDays int
	AdvanceBookingDays   int
	BlockedDates         []calendar.BlockedDate
	AllowCancellation    bool
	DeadlineHours        int
	AutoConfirm          bool
	Now                  time.Time
}

func NewCalendarBuilder() *CalendarBuilder {
	advance := int64(calendar.DefaultAdvanceBookingPriceCents)
	return &CalendarBuilder{
		CourtID:              uuid.New(),
		CompanyID:            uuid.New(),
		WorkingHours:         calendar.UniformWorkingHours(calendar.DefaultOpen, calendar.DefaultClose),
		MatchDuration:        calendar.DefaultMatchDuration,
		BasePriceCents:       calendar.DefaultPricePerHourCents,
		AdvancePriceCents:    &advance,
		AdvanceThresholdDays: calendar.DefaultAdvanceThresholdDays,
		AdvanceBookingDays:   calendar.DefaultAdvanceBookingDays,
		AllowCancellation:    true,
		DeadlineHours:        calendar.DefaultCancellationDeadline,
		AutoConfirm:          true,
		Now:                  FixedNow,
	}
}

func (b *CalendarBuilder) With(mutate func(*CalendarBuilder)) *CalendarBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *CalendarBuilder) BuildSnapshot() calendar.Snapshot {
	return calendar.Snapshot{
		CourtID:       b.CourtID,
		CompanyID:     b.CompanyID,
		WorkingHours:  b.WorkingHours,
		MatchDuration: b.MatchDuration,
		Pricing: calendar.Pricing{
			BasePricePerHourCents:    b.BasePriceCents,
			AdvanceBookingPriceCents: b.AdvancePriceCents,
			AdvanceThresholdDays:     b.AdvanceThresholdDays,
		},
		AdvanceBookingDays: b.AdvanceBookingDays,
		BlockedDates:       b.BlockedDates,
		Cancellation: calendar.CancellationPolicy{
			AllowCancellation: b.AllowCancellation,
			DeadlineHours:     b.DeadlineHours,
		},
		AutoConfirmBookings: b.AutoConfirm,
		CreatedAt:           b.Now,
		UpdatedAt:           b.Now,
	}
}

func (b *CalendarBuilder) BuildDomain() (*calendar.CalendarConfig, error) {
	cfg := calendar.Reconstruct(b.BuildSnapshot())
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (b *CalendarBuilder) MustBuildDomain() *calendar.CalendarConfig {
	cfg, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Fluent builder methods
func (b *CalendarBuilder) WithCourtID(id uuid.UUID) *CalendarBuilder {
	b.CourtID = id
	return b
}

func (b *CalendarBuilder) WithHours(open, close string) *CalendarBuilder {
	b.WorkingHours = calendar.UniformWorkingHours(calendar.MustParseClockTime(open), calendar.MustParseClockTime(close))
	return b
}

func (b *CalendarBuilder) WithClosedOn(day time.Weekday) *CalendarBuilder {
	b.WorkingHours = b.WorkingHours.With(day, calendar.DayHours{IsOpen: false})
	return b
}

func (b *CalendarBuilder) WithMatchDuration(minutes int) *CalendarBuilder {
	b.MatchDuration = minutes
	return b
}

func (b *CalendarBuilder) WithBasePrice(cents int64) *CalendarBuilder {
	b.BasePriceCents = cents
	return b
}

func (b *CalendarBuilder) WithAdvancePrice(cents *int64, thresholdDays int) *CalendarBuilder {
	b.AdvancePriceCents = cents
	b.AdvanceThresholdDays = thresholdDays
	return b
}

func (b *CalendarBuilder) WithAdvanceBookingDays(days int) *CalendarBuilder {
	b.AdvanceBookingDays = days
	return b
}

func (b *CalendarBuilder) WithBlockedDate(date, reason string) *CalendarBuilder {
	b.BlockedDates = append(b.BlockedDates, calendar.BlockedDate{Date: calendar.MustParseDate(date), Reason: reason})
	return b
}

func (b *CalendarBuilder) WithCancellation(allow bool, deadlineHours int) *CalendarBuilder {
	b.AllowCancellation = allow
	b.DeadlineHours = deadlineHours
	return b
}

func (b *CalendarBuilder) WithAutoConfirm(auto bool) *CalendarBuilder {
	b.AutoConfirm = auto
	return b
}
