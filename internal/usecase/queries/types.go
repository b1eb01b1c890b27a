package queries

import (
	"encoding/json"
	"time"

	"court-scheduler/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrInvalidCursor = errs.NewRule(errs.ErrValidation, "INVALID_CURSOR", "invalid pagination cursor")

// ReservationView represents read-optimized reservation data
type ReservationView struct {
	ID                 uuid.UUID       `json:"id"`
	CourtID            uuid.UUID       `json:"court_id"`
	SubjectID          uuid.UUID       `json:"subject_id"`
	SubjectKind        string          `json:"subject_kind"`
	TeamSize           int             `json:"team_size"`
	Date               string          `json:"date"`
	StartTime          string          `json:"start_time"`
	EndTime            string          `json:"end_time"`
	Duration           int             `json:"duration"`
	Status             string          `json:"status"`
	PriceCents         int64           `json:"price_cents"`
	PricePerHourCents  int64           `json:"price_per_hour_cents"`
	Notes              *string         `json:"notes,omitempty"`
	CancellationReason *string         `json:"cancellation_reason,omitempty"`
	ContactEmail       *string         `json:"contact_email,omitempty"`
	CourtSnapshot      json.RawMessage `json:"court_snapshot,omitempty"`
	CompanySnapshot    json.RawMessage `json:"company_snapshot,omitempty"`
	SubjectSnapshot    json.RawMessage `json:"subject_snapshot,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
	CancelledAt        *time.Time      `json:"cancelled_at,omitempty"`
}

type DayHoursView struct {
	IsOpen bool   `json:"is_open"`
	Start  string `json:"start"`
	End    string `json:"end"`
}

type SlotView struct {
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	Duration   int    `json:"duration"`
	PriceCents int64  `json:"price_cents"`
	Available  bool   `json:"available"`
}

// AvailabilityView is one court day as a booker sees it.
type AvailabilityView struct {
	CourtID       uuid.UUID    `json:"court_id"`
	Date          string       `json:"date"`
	Bookable      bool         `json:"bookable"`
	BlockedReason *string      `json:"blocked_reason,omitempty"`
	WorkingHours  DayHoursView `json:"working_hours"`
	MatchDuration int          `json:"match_duration"`
	Slots         []SlotView   `json:"slots"`
}

type PricingView struct {
	BasePricePerHourCents    int64  `json:"base_price_per_hour_cents"`
	AdvanceBookingPriceCents *int64 `json:"advance_booking_price_cents,omitempty"`
	AdvanceThresholdDays     int    `json:"advance_threshold_days"`
}

type CancellationView struct {
	AllowCancellation bool `json:"allow_cancellation"`
	DeadlineHours     int  `json:"deadline_hours"`
}

type BlockedDateView struct {
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

// CalendarView represents read-optimized calendar configuration
type CalendarView struct {
	CourtID             uuid.UUID               `json:"court_id"`
	CompanyID           uuid.UUID               `json:"company_id"`
	Weekly              map[string]DayHoursView `json:"working_hours"`
	MatchDuration       int                     `json:"match_duration"`
	Pricing             PricingView             `json:"pricing"`
	AdvanceBookingDays  int                     `json:"advance_booking_days"`
	Blocked             []BlockedDateView       `json:"blocked_dates"`
	Cancellation        CancellationView        `json:"cancellation_policy"`
	AutoConfirmBookings bool                    `json:"auto_confirm_bookings"`
	CreatedAt           time.Time               `json:"created_at"`
	UpdatedAt           time.Time               `json:"updated_at"`
}
