package reservation

import (
	"court-scheduler/internal/domain/calendar"
)

type PriceCalculator interface {
	CalculatePriceCents(pricing calendar.Pricing, today, date calendar.Date, durationMinutes int) int64
}

type DefaultPriceCalculator struct{}

func NewDefaultPriceCalculator() *DefaultPriceCalculator {
	return &DefaultPriceCalculator{}
}

// CalculatePriceCents charges the hourly rate pro rata, rounded half up to the cent.
// Bookings made at least AdvanceThresholdDays ahead pay the flat advance price instead.
func (pc *DefaultPriceCalculator) CalculatePriceCents(pricing calendar.Pricing, today, date calendar.Date, durationMinutes int) int64 {
	if pricing.AdvanceBookingPriceCents != nil && today.DaysUntil(date) >= pricing.AdvanceThresholdDays {
		return *pricing.AdvanceBookingPriceCents
	}
	return (pricing.BasePricePerHourCents*int64(durationMinutes) + 30) / 60
}
