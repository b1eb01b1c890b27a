package request

import (
	"time"

	"court-scheduler/internal/domain/calendar"

	"github.com/google/uuid"
)

// EnsureCalendarRequest carries the court catalogue data used for a first calendar.
type EnsureCalendarRequest struct {
	CompanyID         *uuid.UUID `json:"companyId,omitempty"`
	PricePerHourCents *int64     `json:"pricePerHourCents,omitempty" binding:"omitempty,min=0"`
}

func (r EnsureCalendarRequest) ToMeta(courtID uuid.UUID) calendar.CourtMeta {
	meta := calendar.CourtMeta{CourtID: courtID, PricePerHourCents: r.PricePerHourCents}
	if r.CompanyID != nil {
		meta.CompanyID = *r.CompanyID
	}
	return meta
}

type DayHoursRequest struct {
	IsOpen bool   `json:"isOpen" yaml:"isOpen"`
	Start  string `json:"start,omitempty" yaml:"start,omitempty"`
	End    string `json:"end,omitempty" yaml:"end,omitempty"`
}

type PricingPatchRequest struct {
	BasePricePerHourCents    *int64 `json:"basePricePerHourCents,omitempty" yaml:"basePricePerHourCents,omitempty"`
	AdvanceBookingPriceCents *int64 `json:"advanceBookingPriceCents,omitempty" yaml:"advanceBookingPriceCents,omitempty"`
	// Removes the flat advance price when true
	ClearAdvanceBookingPrice bool `json:"clearAdvanceBookingPrice,omitempty" yaml:"clearAdvanceBookingPrice,omitempty"`
	AdvanceThresholdDays     *int `json:"advanceThresholdDays,omitempty" yaml:"advanceThresholdDays,omitempty"`
}

type CancellationPatchRequest struct {
	AllowCancellation *bool `json:"allowCancellation,omitempty" yaml:"allowCancellation,omitempty"`
	DeadlineHours     *int  `json:"deadlineHours,omitempty" yaml:"deadlineHours,omitempty"`
}

type BlockedDateRequest struct {
	Date   string `json:"date" yaml:"date" binding:"required"`
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// UpdateCalendarRequest is a partial update; omitted fields keep their value.
// Working hours are keyed by lower-case weekday name.
type UpdateCalendarRequest struct {
	WorkingHours        map[string]DayHoursRequest `json:"workingHours,omitempty" yaml:"workingHours,omitempty"`
	MatchDuration       *int                       `json:"matchDuration,omitempty" yaml:"matchDuration,omitempty"`
	Pricing             *PricingPatchRequest       `json:"pricing,omitempty" yaml:"pricing,omitempty"`
	AdvanceBookingDays  *int                       `json:"advanceBookingDays,omitempty" yaml:"advanceBookingDays,omitempty"`
	BlockedDates        *[]BlockedDateRequest      `json:"blockedDates,omitempty" yaml:"blockedDates,omitempty"`
	CancellationPolicy  *CancellationPatchRequest  `json:"cancellationPolicy,omitempty" yaml:"cancellationPolicy,omitempty"`
	AutoConfirmBookings *bool                      `json:"autoConfirmBookings,omitempty" yaml:"autoConfirmBookings,omitempty"`
}

func (r UpdateCalendarRequest) ToPatch() (calendar.Patch, error) {
	p := calendar.Patch{
		MatchDuration:       r.MatchDuration,
		AdvanceBookingDays:  r.AdvanceBookingDays,
		AutoConfirmBookings: r.AutoConfirmBookings,
	}

	if len(r.WorkingHours) > 0 {
		p.WorkingHours = make(map[time.Weekday]calendar.DayHours, len(r.WorkingHours))
		for key, h := range r.WorkingHours {
			day, ok := calendar.ParseWeekday(key)
			if !ok {
				return calendar.Patch{}, calendar.ErrInvalidConfig.With("unknown weekday %q", key)
			}
			dh, err := h.toDomain()
			if err != nil {
				return calendar.Patch{}, err
			}
			p.WorkingHours[day] = dh
		}
	}

	if r.Pricing != nil {
		p.BasePricePerHourCents = r.Pricing.BasePricePerHourCents
		p.AdvanceBookingPriceCents = r.Pricing.AdvanceBookingPriceCents
		p.ClearAdvanceBookingPrice = r.Pricing.ClearAdvanceBookingPrice
		p.AdvanceThresholdDays = r.Pricing.AdvanceThresholdDays
	}

	if r.CancellationPolicy != nil {
		p.AllowCancellation = r.CancellationPolicy.AllowCancellation
		p.CancellationDeadlineHours = r.CancellationPolicy.DeadlineHours
	}

	if r.BlockedDates != nil {
		blocked := make([]calendar.BlockedDate, 0, len(*r.BlockedDates))
		for _, b := range *r.BlockedDates {
			d, err := b.ToDomain()
			if err != nil {
				return calendar.Patch{}, err
			}
			blocked = append(blocked, d)
		}
		p.BlockedDates = &blocked
	}
	return p, nil
}

func (h DayHoursRequest) toDomain() (calendar.DayHours, error) {
	if !h.IsOpen {
		return calendar.DayHours{}, nil
	}
	start, err := calendar.ParseClockTime(h.Start)
	if err != nil {
		return calendar.DayHours{}, err
	}
	end, err := calendar.ParseClosingTime(h.End)
	if err != nil {
		return calendar.DayHours{}, err
	}
	return calendar.DayHours{IsOpen: true, Start: start, End: end}, nil
}

func (b BlockedDateRequest) ToDomain() (calendar.BlockedDate, error) {
	date, err := calendar.ParseDate(b.Date)
	if err != nil {
		return calendar.BlockedDate{}, err
	}
	return calendar.BlockedDate{Date: date, Reason: b.Reason}, nil
}
