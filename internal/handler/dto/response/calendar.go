package response

import (
	"time"

	"court-scheduler/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type DayHoursResponse struct {
	IsOpen bool   `json:"isOpen"`
	Start  string `json:"start"`
	End    string `json:"end"`
}

type SlotResponse struct {
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
	Duration   int    `json:"duration"`
	PriceCents int64  `json:"priceCents"`
	Available  bool   `json:"available"`
}

type AvailabilityResponse struct {
	CourtID       uuid.UUID        `json:"courtId"`
	Date          string           `json:"date"`
	Bookable      bool             `json:"bookable"`
	BlockedReason *string          `json:"blockedReason,omitempty"`
	WorkingHours  DayHoursResponse `json:"workingHours"`
	MatchDuration int              `json:"matchDuration"`
	Slots         []SlotResponse   `json:"slots"`
}

type PricingResponse struct {
	BasePricePerHourCents    int64  `json:"basePricePerHourCents"`
	AdvanceBookingPriceCents *int64 `json:"advanceBookingPriceCents,omitempty"`
	AdvanceThresholdDays     int    `json:"advanceThresholdDays"`
}

type CancellationPolicyResponse struct {
	AllowCancellation bool `json:"allowCancellation"`
	DeadlineHours     int  `json:"deadlineHours"`
}

type BlockedDateResponse struct {
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

type CalendarResponse struct {
	CourtID             uuid.UUID                   `json:"courtId"`
	CompanyID           uuid.UUID                   `json:"companyId"`
	Weekly              map[string]DayHoursResponse `json:"workingHours"`
	MatchDuration       int                         `json:"matchDuration"`
	Pricing             PricingResponse             `json:"pricing"`
	AdvanceBookingDays  int                         `json:"advanceBookingDays"`
	Blocked             []BlockedDateResponse       `json:"blockedDates"`
	Cancellation        CancellationPolicyResponse  `json:"cancellationPolicy"`
	AutoConfirmBookings bool                        `json:"autoConfirmBookings"`
	CreatedAt           time.Time                   `json:"createdAt"`
	UpdatedAt           time.Time                   `json:"updatedAt"`
}

// Field names match the query views one to one, so both are filled by copier.

func FromAvailabilityView(v *queries.AvailabilityView) (*AvailabilityResponse, error) {
	resp := &AvailabilityResponse{}
	if err := copier.CopyWithOption(resp, v, copier.Option{DeepCopy: true}); err != nil {
		return nil, err
	}
	if resp.Slots == nil {
		resp.Slots = []SlotResponse{}
	}
	return resp, nil
}

func FromCalendarView(v *queries.CalendarView) (*CalendarResponse, error) {
	resp := &CalendarResponse{}
	if err := copier.CopyWithOption(resp, v, copier.Option{DeepCopy: true}); err != nil {
		return nil, err
	}
	if resp.Blocked == nil {
		resp.Blocked = []BlockedDateResponse{}
	}
	return resp, nil
}
