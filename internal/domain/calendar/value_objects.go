package calendar

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const MinutesPerDay = 24 * 60

var clockTimePattern = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)

// ClockTime is a wall-clock time of day in whole minutes since midnight.
type ClockTime int

func NewClockTime(hour, minute int) (ClockTime, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, ErrInvalidClockTime.With("%02d:%02d", hour, minute)
	}
	return ClockTime(hour*60 + minute), nil
}

// ParseClockTime accepts "H:MM" or "HH:MM" in 24h notation.
func ParseClockTime(s string) (ClockTime, error) {
	if !clockTimePattern.MatchString(s) {
		return 0, ErrInvalidClockTime.With("%q", s)
	}
	h, m, _ := strings.Cut(s, ":")
	hh, _ := strconv.Atoi(h)
	mm, _ := strconv.Atoi(m)
	return ClockTime(hh*60 + mm), nil
}

// ParseClosingTime is ParseClockTime that also accepts "24:00" as end of day.
func ParseClosingTime(s string) (ClockTime, error) {
	if s == "24:00" {
		return ClockTime(MinutesPerDay), nil
	}
	return ParseClockTime(s)
}

func MustParseClockTime(s string) ClockTime {
	t, err := ParseClockTime(s)
	if err != nil {
		panic(err)
	}
	return t
}

func (t ClockTime) Minutes() int {
	return int(t)
}

// AddMinutes may return a value past midnight; callers check against MinutesPerDay.
func (t ClockTime) AddMinutes(m int) ClockTime {
	return t + ClockTime(m)
}

func (t ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// Date is a calendar day without time-of-day or location.
type Date struct {
	t time.Time
}

const dateLayout = "2006-01-02"

func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, ErrInvalidDate.With("%q", s)
	}
	return Date{t: t}, nil
}

func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// DateOf strips the time of day from t as observed in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

func (d Date) Year() int             { return d.t.Year() }
func (d Date) Month() time.Month     { return d.t.Month() }
func (d Date) Day() int              { return d.t.Day() }
func (d Date) Weekday() time.Weekday { return d.t.Weekday() }
func (d Date) IsZero() bool          { return d.t.IsZero() }

func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

// DaysUntil returns the number of whole days from d to other; negative when other is earlier.
func (d Date) DaysUntil(other Date) int {
	return int(other.t.Sub(d.t).Hours() / 24)
}

func (d Date) Before(other Date) bool { return d.t.Before(other.t) }
func (d Date) After(other Date) bool  { return d.t.After(other.t) }
func (d Date) Equal(other Date) bool  { return d.t.Equal(other.t) }

// At resolves a wall-clock time on this day in loc.
func (d Date) At(clock ClockTime, loc *time.Location) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, int(clock), 0, 0, loc)
}

func (d Date) String() string {
	return d.t.Format(dateLayout)
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
