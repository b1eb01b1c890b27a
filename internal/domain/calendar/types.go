package calendar

import (
	"time"

	"court-scheduler/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidConfig    = errs.NewRule(errs.ErrValidation, "INVALID_CONFIG", "invalid calendar configuration")
	ErrInvalidClockTime = errs.NewRule(errs.ErrValidation, "INVALID_TIME", "time must be HH:MM")
	ErrInvalidDate      = errs.NewRule(errs.ErrValidation, "INVALID_DATE", "date must be YYYY-MM-DD")
	ErrNotFound         = errs.NewRule(errs.ErrNotFound, "CALENDAR_NOT_FOUND", "court has no calendar")
)

const (
	MinMatchDuration    = 1
	MaxMatchDuration    = MinutesPerDay
	MaxBlockedReasonLen = 200
)

// Defaults applied when a court gets its first calendar.
const (
	DefaultMatchDuration            = 90
	DefaultPricePerHourCents        = 1500
	DefaultAdvanceBookingPriceCents = 20000
	DefaultAdvanceThresholdDays     = 30
	DefaultAdvanceBookingDays       = 30
	DefaultCancellationDeadline     = 24
	DefaultBlockedReason            = "Unavailable"
)

var (
	DefaultOpen  = MustParseClockTime("08:00")
	DefaultClose = MustParseClockTime("22:00")
)

type Pricing struct {
	BasePricePerHourCents int64
	// Flat price for bookings made far enough ahead; nil disables it
	AdvanceBookingPriceCents *int64
	AdvanceThresholdDays     int
}

type CancellationPolicy struct {
	AllowCancellation bool
	DeadlineHours     int
}

type BlockedDate struct {
	Date   Date
	Reason string
}

// CourtMeta is what the court catalogue tells us when a calendar is first created.
type CourtMeta struct {
	CourtID           uuid.UUID
	CompanyID         uuid.UUID
	PricePerHourCents *int64
}

// Snapshot is the flat persisted form of a CalendarConfig.
type Snapshot struct {
	CourtID             uuid.UUID
	CompanyID           uuid.UUID
	WorkingHours        WorkingHours
	MatchDuration       int
	Pricing             Pricing
	AdvanceBookingDays  int
	BlockedDates        []BlockedDate
	Cancellation        CancellationPolicy
	AutoConfirmBookings bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
