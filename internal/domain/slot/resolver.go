package slot

import (
	"court-scheduler/internal/domain/calendar"
)

// Interval is a half-open [Start, End) range on one day.
type Interval struct {
	Start calendar.ClockTime
	End   calendar.ClockTime
}

// Overlaps treats touching endpoints as free: 10:00-11:00 and 11:00-12:00 do not overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start < other.End && i.End > other.Start
}

// Occupant is anything already holding time on a court for the day.
type Occupant interface {
	Interval() Interval
	Blocks() bool
}

// Booking is the minimal occupant read back from storage.
type Booking struct {
	Start    calendar.ClockTime
	End      calendar.ClockTime
	Blocking bool
}

func (b Booking) Interval() Interval { return Interval{Start: b.Start, End: b.End} }
func (b Booking) Blocks() bool       { return b.Blocking }

// Resolve returns a copy of candidates with Available cleared on every slot
// that overlaps a blocking occupant. Candidate order is preserved.
func Resolve[O Occupant](candidates []Slot, existing []O) []Slot {
	out := make([]Slot, len(candidates))
	for i, c := range candidates {
		c.Available = c.Available && !conflicts(c.Interval(), existing)
		out[i] = c
	}
	return out
}

// FirstConflict returns the first blocking occupant overlapping candidate.
func FirstConflict[O Occupant](candidate Interval, existing []O) (Interval, bool) {
	for _, e := range existing {
		if e.Blocks() && candidate.Overlaps(e.Interval()) {
			return e.Interval(), true
		}
	}
	return Interval{}, false
}

func conflicts[O Occupant](candidate Interval, existing []O) bool {
	_, found := FirstConflict(candidate, existing)
	return found
}
