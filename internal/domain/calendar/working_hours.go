package calendar

import (
	"strings"
	"time"
)

type DayHours struct {
	IsOpen bool
	Start  ClockTime
	End    ClockTime
}

func (h DayHours) WindowMinutes() int {
	if !h.IsOpen {
		return 0
	}
	return int(h.End - h.Start)
}

func (h DayHours) validate(day time.Weekday, matchDuration int) error {
	if !h.IsOpen {
		return nil
	}
	if h.Start >= h.End {
		return ErrInvalidConfig.With("%s: start %s must be before end %s", strings.ToLower(day.String()), h.Start, h.End)
	}
	if h.End > MinutesPerDay {
		return ErrInvalidConfig.With("%s: end %s crosses midnight", strings.ToLower(day.String()), h.End)
	}
	if h.WindowMinutes() < matchDuration {
		return ErrInvalidConfig.With("%s: window %s-%s is shorter than match duration %d", strings.ToLower(day.String()), h.Start, h.End, matchDuration)
	}
	return nil
}

// WorkingHours is indexed by time.Weekday (Sunday = 0).
type WorkingHours [7]DayHours

func (w WorkingHours) For(day time.Weekday) DayHours {
	return w[day]
}

func (w WorkingHours) With(day time.Weekday, h DayHours) WorkingHours {
	w[day] = h
	return w
}

func UniformWorkingHours(start, end ClockTime) WorkingHours {
	var w WorkingHours
	for i := range w {
		w[i] = DayHours{IsOpen: true, Start: start, End: end}
	}
	return w
}

// ParseWeekday accepts lower-case English names such as "monday".
func ParseWeekday(s string) (time.Weekday, bool) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(d.String(), s) {
			return d, true
		}
	}
	return 0, false
}

func WeekdayKey(d time.Weekday) string {
	return strings.ToLower(d.String())
}
