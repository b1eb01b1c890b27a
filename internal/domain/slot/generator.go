package slot

import (
	"time"

	"court-scheduler/internal/domain/calendar"
)

// LeadBuffer is how far ahead of now a same-day slot must start to be offered.
const LeadBuffer = 30 * time.Minute

type Slot struct {
	Start      calendar.ClockTime
	End        calendar.ClockTime
	Duration   int
	PriceCents int64
	Available  bool
}

func (s Slot) Interval() Interval {
	return Interval{Start: s.Start, End: s.End}
}

// Generate lays back-to-back slots of matchDuration minutes across the day's window.
// A slot is emitted only if it ends at or before closing. When isToday is set,
// slots starting earlier than now+LeadBuffer are dropped; now must be expressed
// in the court's location.
func Generate(hours calendar.DayHours, matchDuration int, now time.Time, isToday bool) []Slot {
	if !hours.IsOpen || matchDuration <= 0 {
		return []Slot{}
	}

	cutoff := now.Add(LeadBuffer)
	today := calendar.DateOf(now)

	slots := make([]Slot, 0, hours.WindowMinutes()/matchDuration)
	for start := hours.Start; start.AddMinutes(matchDuration) <= hours.End; start = start.AddMinutes(matchDuration) {
		if isToday && today.At(start, now.Location()).Before(cutoff) {
			continue
		}
		slots = append(slots, Slot{
			Start:     start,
			End:       start.AddMinutes(matchDuration),
			Duration:  matchDuration,
			Available: true,
		})
	}
	return slots
}
