package converter

import (
	"encoding/json"
	"fmt"
	"time"

	"court-scheduler/internal/domain/calendar"
	"court-scheduler/internal/infra/query"
	"court-scheduler/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type dayHoursJSON struct {
	IsOpen bool   `json:"isOpen"`
	Start  string `json:"start"`
	End    string `json:"end"`
}

// WorkingHoursToJSON stores hours keyed by lower-case weekday name.
func WorkingHoursToJSON(w calendar.WorkingHours) ([]byte, error) {
	m := make(map[string]dayHoursJSON, len(w))
	for day := time.Sunday; day <= time.Saturday; day++ {
		h := w.For(day)
		m[calendar.WeekdayKey(day)] = dayHoursJSON{IsOpen: h.IsOpen, Start: h.Start.String(), End: h.End.String()}
	}
	return json.Marshal(m)
}

func WorkingHoursFromJSON(b []byte) (calendar.WorkingHours, error) {
	var w calendar.WorkingHours
	var m map[string]dayHoursJSON
	if err := json.Unmarshal(b, &m); err != nil {
		return w, fmt.Errorf("decode working hours: %w", err)
	}
	for key, h := range m {
		day, ok := calendar.ParseWeekday(key)
		if !ok {
			return w, fmt.Errorf("decode working hours: unknown weekday %q", key)
		}
		dh := calendar.DayHours{IsOpen: h.IsOpen}
		if h.Start != "" {
			start, err := calendar.ParseClockTime(h.Start)
			if err != nil {
				return w, err
			}
			dh.Start = start
		}
		if h.End != "" {
			end, err := calendar.ParseClosingTime(h.End)
			if err != nil {
				return w, err
			}
			dh.End = end
		}
		w = w.With(day, dh)
	}
	return w, nil
}

func CalendarToInfra(cfg *calendar.CalendarConfig) (query.InsertCourtCalendarParams, error) {
	hours, err := WorkingHoursToJSON(cfg.WorkingHours())
	if err != nil {
		return query.InsertCourtCalendarParams{}, err
	}

	pricing := cfg.Pricing()
	policy := cfg.CancellationPolicy()

	companyID := pgtype.UUID{Valid: false}
	if cfg.CompanyID() != uuid.Nil {
		companyID = pgconv.UUIDToPgtype(cfg.CompanyID())
	}

	return query.InsertCourtCalendarParams{
		CourtID:                   cfg.CourtID(),
		CompanyID:                 companyID,
		WorkingHours:              hours,
		MatchDuration:             int32(cfg.MatchDuration()),
		BasePriceCents:            pricing.BasePricePerHourCents,
		AdvancePriceCents:         pgconv.Int64PtrToPgtype(pricing.AdvanceBookingPriceCents),
		AdvanceThresholdDays:      int32(pricing.AdvanceThresholdDays),
		AdvanceBookingDays:        int32(cfg.AdvanceBookingDays()),
		AllowCancellation:         policy.AllowCancellation,
		CancellationDeadlineHours: int32(policy.DeadlineHours),
		AutoConfirm:               cfg.AutoConfirmBookings(),
		UpdatedAt:                 pgconv.TimeToPgtype(cfg.UpdatedAt()),
	}, nil
}

func BlockedDatesToInfra(cfg *calendar.CalendarConfig) []query.InsertBlockedDateParams {
	blocked := cfg.BlockedDates()
	rows := make([]query.InsertBlockedDateParams, len(blocked))
	for i, b := range blocked {
		rows[i] = query.InsertBlockedDateParams{
			CourtID: cfg.CourtID(),
			Date:    DateToInfra(b.Date),
			Reason:  b.Reason,
		}
	}
	return rows
}

func CalendarSnapshotFromInfra(row query.CourtCalendars, blocked []query.CourtBlockedDates) (calendar.Snapshot, error) {
	hours, err := WorkingHoursFromJSON(row.WorkingHours)
	if err != nil {
		return calendar.Snapshot{}, err
	}

	dates := make([]calendar.BlockedDate, len(blocked))
	for i, b := range blocked {
		dates[i] = calendar.BlockedDate{Date: DateFromInfra(b.Date), Reason: b.Reason}
	}

	var companyID uuid.UUID
	if id := pgconv.UUIDPtrFromPgtype(row.CompanyID); id != nil {
		companyID = *id
	}

	return calendar.Snapshot{
		CourtID:       row.CourtID,
		CompanyID:     companyID,
		WorkingHours:  hours,
		MatchDuration: int(row.MatchDuration),
		Pricing: calendar.Pricing{
			BasePricePerHourCents:    row.BasePriceCents,
			AdvanceBookingPriceCents: pgconv.Int64PtrFromPgtype(row.AdvancePriceCents),
			AdvanceThresholdDays:     int(row.AdvanceThresholdDays),
		},
		AdvanceBookingDays: int(row.AdvanceBookingDays),
		BlockedDates:       dates,
		Cancellation: calendar.CancellationPolicy{
			AllowCancellation: row.AllowCancellation,
			DeadlineHours:     int(row.CancellationDeadlineHours),
		},
		AutoConfirmBookings: row.AutoConfirm,
		CreatedAt:           pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:           pgconv.TimeFromPgtype(row.UpdatedAt),
	}, nil
}

func CalendarFromInfra(row query.CourtCalendars, blocked []query.CourtBlockedDates) (*calendar.CalendarConfig, error) {
	snap, err := CalendarSnapshotFromInfra(row, blocked)
	if err != nil {
		return nil, err
	}
	return calendar.Reconstruct(snap), nil
}

// CourtDayLockKey names the advisory lock that serializes writers for one court day.
func CourtDayLockKey(courtID uuid.UUID, d calendar.Date) string {
	return courtID.String() + "/" + d.String()
}

func DateToInfra(d calendar.Date) pgtype.Date {
	return pgconv.DateToPgtype(d.Year(), d.Month(), d.Day())
}

func DateFromInfra(d pgtype.Date) calendar.Date {
	return calendar.DateOf(d.Time)
}
