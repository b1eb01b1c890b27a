package calendar

import (
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"court-scheduler/internal/pkg/patch"

	"github.com/google/uuid"
)

// CalendarConfig is the scheduling configuration of a single court.
type CalendarConfig struct {
	courtID             uuid.UUID
	companyID           uuid.UUID
	workingHours        WorkingHours
	matchDuration       int
	pricing             Pricing
	advanceBookingDays  int
	blockedDates        []BlockedDate
	cancellation        CancellationPolicy
	autoConfirmBookings bool
	createdAt           time.Time
	updatedAt           time.Time
}

// NewDefaultConfig builds the configuration a court gets before its owner edits anything.
func NewDefaultConfig(meta CourtMeta, now time.Time) (*CalendarConfig, error) {
	if meta.CourtID == uuid.Nil {
		return nil, ErrInvalidConfig.With("court id is required")
	}

	base := int64(DefaultPricePerHourCents)
	if meta.PricePerHourCents != nil {
		base = *meta.PricePerHourCents
	}
	advance := int64(DefaultAdvanceBookingPriceCents)

	cfg := &CalendarConfig{
		courtID:       meta.CourtID,
		companyID:     meta.CompanyID,
		workingHours:  UniformWorkingHours(DefaultOpen, DefaultClose),
		matchDuration: DefaultMatchDuration,
		pricing: Pricing{
			BasePricePerHourCents:    base,
			AdvanceBookingPriceCents: &advance,
			AdvanceThresholdDays:     DefaultAdvanceThresholdDays,
		},
		advanceBookingDays: DefaultAdvanceBookingDays,
		cancellation: CancellationPolicy{
			AllowCancellation: true,
			DeadlineHours:     DefaultCancellationDeadline,
		},
		autoConfirmBookings: true,
		createdAt:           now,
		updatedAt:           now,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Reconstruct(s Snapshot) *CalendarConfig {
	return &CalendarConfig{
		courtID:             s.CourtID,
		companyID:           s.CompanyID,
		workingHours:        s.WorkingHours,
		matchDuration:       s.MatchDuration,
		pricing:             s.Pricing,
		advanceBookingDays:  s.AdvanceBookingDays,
		blockedDates:        normalizeBlocked(s.BlockedDates),
		cancellation:        s.Cancellation,
		autoConfirmBookings: s.AutoConfirmBookings,
		createdAt:           s.CreatedAt,
		updatedAt:           s.UpdatedAt,
	}
}

func (c *CalendarConfig) Snapshot() Snapshot {
	pricing := c.pricing
	pricing.AdvanceBookingPriceCents = patch.Clone(c.pricing.AdvanceBookingPriceCents)
	return Snapshot{
		CourtID:             c.courtID,
		CompanyID:           c.companyID,
		WorkingHours:        c.workingHours,
		MatchDuration:       c.matchDuration,
		Pricing:             pricing,
		AdvanceBookingDays:  c.advanceBookingDays,
		BlockedDates:        slices.Clone(c.blockedDates),
		Cancellation:        c.cancellation,
		AutoConfirmBookings: c.autoConfirmBookings,
		CreatedAt:           c.createdAt,
		UpdatedAt:           c.updatedAt,
	}
}

func (c *CalendarConfig) Validate() error {
	if c.matchDuration < MinMatchDuration || c.matchDuration > MaxMatchDuration {
		return ErrInvalidConfig.With("match duration must be between %d and %d minutes", MinMatchDuration, MaxMatchDuration)
	}
	for day := time.Sunday; day <= time.Saturday; day++ {
		if err := c.workingHours[day].validate(day, c.matchDuration); err != nil {
			return err
		}
	}
	if c.pricing.BasePricePerHourCents < 0 {
		return ErrInvalidConfig.With("base price cannot be negative")
	}
	if c.pricing.AdvanceBookingPriceCents != nil && *c.pricing.AdvanceBookingPriceCents < 0 {
		return ErrInvalidConfig.With("advance booking price cannot be negative")
	}
	if c.pricing.AdvanceThresholdDays < 0 {
		return ErrInvalidConfig.With("advance threshold days cannot be negative")
	}
	if c.advanceBookingDays < 0 {
		return ErrInvalidConfig.With("advance booking days cannot be negative")
	}
	if c.cancellation.DeadlineHours < 0 {
		return ErrInvalidConfig.With("cancellation deadline cannot be negative")
	}
	for i, b := range c.blockedDates {
		if b.Date.IsZero() {
			return ErrInvalidConfig.With("blocked date is required")
		}
		if utf8.RuneCountInString(b.Reason) > MaxBlockedReasonLen {
			return ErrInvalidConfig.With("blocked date reason exceeds %d characters", MaxBlockedReasonLen)
		}
		if i > 0 && c.blockedDates[i-1].Date.Equal(b.Date) {
			return ErrInvalidConfig.With("date %s is blocked twice", b.Date)
		}
	}
	return nil
}

// Patch carries a partial update; nil fields keep their current value.
type Patch struct {
	WorkingHours              map[time.Weekday]DayHours
	MatchDuration             *int
	BasePricePerHourCents     *int64
	AdvanceBookingPriceCents  *int64
	ClearAdvanceBookingPrice  bool
	AdvanceThresholdDays      *int
	AdvanceBookingDays        *int
	BlockedDates              *[]BlockedDate
	AllowCancellation         *bool
	CancellationDeadlineHours *int
	AutoConfirmBookings       *bool
}

// Apply returns the patched configuration. The receiver is never modified,
// so a rejected patch leaves nothing to roll back.
func (c *CalendarConfig) Apply(p Patch, now time.Time) (*CalendarConfig, error) {
	next := Reconstruct(c.Snapshot())

	for day, h := range p.WorkingHours {
		if day < time.Sunday || day > time.Saturday {
			return nil, ErrInvalidConfig.With("unknown weekday %d", int(day))
		}
		next.workingHours[day] = h
	}
	next.matchDuration = patch.Coalesce(p.MatchDuration, c.matchDuration)
	next.pricing.BasePricePerHourCents = patch.Coalesce(p.BasePricePerHourCents, c.pricing.BasePricePerHourCents)
	switch {
	case p.ClearAdvanceBookingPrice:
		next.pricing.AdvanceBookingPriceCents = nil
	case p.AdvanceBookingPriceCents != nil:
		next.pricing.AdvanceBookingPriceCents = patch.Clone(p.AdvanceBookingPriceCents)
	}
	next.pricing.AdvanceThresholdDays = patch.Coalesce(p.AdvanceThresholdDays, c.pricing.AdvanceThresholdDays)
	next.advanceBookingDays = patch.Coalesce(p.AdvanceBookingDays, c.advanceBookingDays)
	if p.BlockedDates != nil {
		next.blockedDates = normalizeBlocked(*p.BlockedDates)
	}
	next.cancellation.AllowCancellation = patch.Coalesce(p.AllowCancellation, c.cancellation.AllowCancellation)
	next.cancellation.DeadlineHours = patch.Coalesce(p.CancellationDeadlineHours, c.cancellation.DeadlineHours)
	next.autoConfirmBookings = patch.Coalesce(p.AutoConfirmBookings, c.autoConfirmBookings)
	next.updatedAt = now

	if err := next.Validate(); err != nil {
		return nil, err
	}
	return next, nil
}

// BlockDate adds or replaces the block on date.
func (c *CalendarConfig) BlockDate(date Date, reason string, now time.Time) (*CalendarConfig, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = DefaultBlockedReason
	}
	blocked := slices.DeleteFunc(slices.Clone(c.blockedDates), func(b BlockedDate) bool {
		return b.Date.Equal(date)
	})
	blocked = append(blocked, BlockedDate{Date: date, Reason: reason})
	return c.Apply(Patch{BlockedDates: &blocked}, now)
}

func (c *CalendarConfig) UnblockDate(date Date, now time.Time) (*CalendarConfig, error) {
	blocked := slices.DeleteFunc(slices.Clone(c.blockedDates), func(b BlockedDate) bool {
		return b.Date.Equal(date)
	})
	return c.Apply(Patch{BlockedDates: &blocked}, now)
}

// BlockedReason reports whether date is blocked and why.
func (c *CalendarConfig) BlockedReason(date Date) (string, bool) {
	for _, b := range c.blockedDates {
		if b.Date.Equal(date) {
			return b.Reason, true
		}
	}
	return "", false
}

func normalizeBlocked(in []BlockedDate) []BlockedDate {
	out := make([]BlockedDate, len(in))
	for i, b := range in {
		out[i] = BlockedDate{Date: b.Date, Reason: strings.TrimSpace(b.Reason)}
		if out[i].Reason == "" {
			out[i].Reason = DefaultBlockedReason
		}
	}
	slices.SortStableFunc(out, func(a, b BlockedDate) int {
		switch {
		case a.Date.Before(b.Date):
			return -1
		case a.Date.After(b.Date):
			return 1
		default:
			return 0
		}
	})
	return out
}

func (c *CalendarConfig) CourtID() uuid.UUID                     { return c.courtID }
func (c *CalendarConfig) CompanyID() uuid.UUID                   { return c.companyID }
func (c *CalendarConfig) WorkingHours() WorkingHours             { return c.workingHours }
func (c *CalendarConfig) MatchDuration() int                     { return c.matchDuration }
func (c *CalendarConfig) Pricing() Pricing                       { return c.pricing }
func (c *CalendarConfig) AdvanceBookingDays() int                { return c.advanceBookingDays }
func (c *CalendarConfig) BlockedDates() []BlockedDate            { return slices.Clone(c.blockedDates) }
func (c *CalendarConfig) CancellationPolicy() CancellationPolicy { return c.cancellation }
func (c *CalendarConfig) AutoConfirmBookings() bool              { return c.autoConfirmBookings }
func (c *CalendarConfig) CreatedAt() time.Time                   { return c.createdAt }
func (c *CalendarConfig) UpdatedAt() time.Time                   { return c.updatedAt }
