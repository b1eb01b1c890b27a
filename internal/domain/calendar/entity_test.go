//go:build unit

package calendar_test

import (
	"testing"
	"time"

	"court-scheduler/internal/domain/calendar"
	"court-scheduler/internal/pkg/errs"
	"court-scheduler/internal/pkg/ptr"
	"court-scheduler/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.CalendarBuilder)
	errIs  error
}

func TestCalendarConfig(t *testing.T) {
	t.Run("default configuration", func(t *testing.T) {
		meta := calendar.CourtMeta{CourtID: uuid.New(), CompanyID: uuid.New()}

		actual, err := calendar.NewDefaultConfig(meta, builder.FixedNow)
		require.NoError(t, err)

		assert.Equal(t, meta.CourtID, actual.CourtID())
		assert.Equal(t, 90, actual.MatchDuration())
		assert.Equal(t, int64(1500), actual.Pricing().BasePricePerHourCents)
		require.NotNil(t, actual.Pricing().AdvanceBookingPriceCents)
		assert.Equal(t, int64(20000), *actual.Pricing().AdvanceBookingPriceCents)
		assert.Equal(t, 30, actual.Pricing().AdvanceThresholdDays)
		assert.Equal(t, 30, actual.AdvanceBookingDays())
		assert.Equal(t, calendar.CancellationPolicy{AllowCancellation: true, DeadlineHours: 24}, actual.CancellationPolicy())
		assert.True(t, actual.AutoConfirmBookings())
		assert.Empty(t, actual.BlockedDates())
		for day := time.Sunday; day <= time.Saturday; day++ {
			h := actual.WorkingHours().For(day)
			assert.True(t, h.IsOpen)
			assert.Equal(t, "08:00", h.Start.String())
			assert.Equal(t, "22:00", h.End.String())
		}
	})

	t.Run("court price overrides default base price", func(t *testing.T) {
		meta := calendar.CourtMeta{CourtID: uuid.New(), PricePerHourCents: ptr.Of(int64(2500))}

		actual, err := calendar.NewDefaultConfig(meta, builder.FixedNow)
		require.NoError(t, err)
		assert.Equal(t, int64(2500), actual.Pricing().BasePricePerHourCents)
	})

	t.Run("court id is required", func(t *testing.T) {
		_, err := calendar.NewDefaultConfig(calendar.CourtMeta{}, builder.FixedNow)
		require.ErrorIs(t, err, calendar.ErrInvalidConfig)
		require.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "default builder is valid",
				mutate: func(b *builder.CalendarBuilder) {},
			},
			{
				name:   "match duration zero",
				mutate: func(b *builder.CalendarBuilder) { b.WithMatchDuration(0) },
				errIs:  calendar.ErrInvalidConfig,
			},
			{
				name:   "match duration of a full day",
				mutate: func(b *builder.CalendarBuilder) { b.WithHours("00:00", "23:59").WithMatchDuration(1439) },
			},
			{
				name:   "match duration above a day",
				mutate: func(b *builder.CalendarBuilder) { b.WithMatchDuration(1441) },
				errIs:  calendar.ErrInvalidConfig,
			},
			{
				name:   "start after end",
				mutate: func(b *builder.CalendarBuilder) { b.WithHours("22:00", "08:00") },
				errIs:  calendar.ErrInvalidConfig,
			},
			{
				name:   "window exactly one match",
				mutate: func(b *builder.CalendarBuilder) { b.WithHours("10:00", "11:30") },
			},
			{
				name:   "window shorter than one match",
				mutate: func(b *builder.CalendarBuilder) { b.WithHours("10:00", "11:29") },
				errIs:  calendar.ErrInvalidConfig,
			},
			{
				name: "closed day ignores its hours",
				mutate: func(b *builder.CalendarBuilder) {
					b.WorkingHours = b.WorkingHours.With(time.Sunday, calendar.DayHours{IsOpen: false, Start: 600, End: 300})
				},
			},
			{
				name:   "negative base price",
				mutate: func(b *builder.CalendarBuilder) { b.WithBasePrice(-1) },
				errIs:  calendar.ErrInvalidConfig,
			},
			{
				name:   "negative booking window",
				mutate: func(b *builder.CalendarBuilder) { b.WithAdvanceBookingDays(-1) },
				errIs:  calendar.ErrInvalidConfig,
			},
			{
				name:   "negative cancellation deadline",
				mutate: func(b *builder.CalendarBuilder) { b.WithCancellation(true, -1) },
				errIs:  calendar.ErrInvalidConfig,
			},
			{
				name: "same date blocked twice",
				mutate: func(b *builder.CalendarBuilder) {
					b.WithBlockedDate("2025-06-10", "Tournament").WithBlockedDate("2025-06-10", "Maintenance")
				},
				errIs: calendar.ErrInvalidConfig,
			},
		})
	})

	t.Run("apply patch returns a new config", func(t *testing.T) {
		original := builder.NewCalendarBuilder().MustBuildDomain()
		later := builder.FixedNow.Add(time.Hour)

		updated, err := original.Apply(calendar.Patch{
			MatchDuration: ptr.Of(60),
			WorkingHours: map[time.Weekday]calendar.DayHours{
				time.Monday: {IsOpen: false},
			},
			ClearAdvanceBookingPrice: true,
		}, later)
		require.NoError(t, err)

		assert.Equal(t, 60, updated.MatchDuration())
		assert.False(t, updated.WorkingHours().For(time.Monday).IsOpen)
		assert.Nil(t, updated.Pricing().AdvanceBookingPriceCents)
		assert.Equal(t, later, updated.UpdatedAt())

		assert.Equal(t, 90, original.MatchDuration())
		assert.True(t, original.WorkingHours().For(time.Monday).IsOpen)
		assert.NotNil(t, original.Pricing().AdvanceBookingPriceCents)
	})

	t.Run("rejected patch leaves config untouched", func(t *testing.T) {
		original := builder.NewCalendarBuilder().MustBuildDomain()

		updated, err := original.Apply(calendar.Patch{MatchDuration: ptr.Of(900)}, builder.FixedNow)
		require.ErrorIs(t, err, calendar.ErrInvalidConfig)
		assert.Nil(t, updated)
		assert.Equal(t, 90, original.MatchDuration())
	})

	t.Run("block and unblock date", func(t *testing.T) {
		cfg := builder.NewCalendarBuilder().MustBuildDomain()
		date := calendar.MustParseDate("2025-06-10")

		blocked, err := cfg.BlockDate(date, "  Tournament  ", builder.FixedNow)
		require.NoError(t, err)
		reason, ok := blocked.BlockedReason(date)
		assert.True(t, ok)
		assert.Equal(t, "Tournament", reason)

		reblocked, err := blocked.BlockDate(date, "", builder.FixedNow)
		require.NoError(t, err)
		require.Len(t, reblocked.BlockedDates(), 1)
		assert.Equal(t, calendar.DefaultBlockedReason, reblocked.BlockedDates()[0].Reason)

		unblocked, err := reblocked.UnblockDate(date, builder.FixedNow)
		require.NoError(t, err)
		_, ok = unblocked.BlockedReason(date)
		assert.False(t, ok)
	})

	t.Run("blocked dates are kept sorted", func(t *testing.T) {
		cfg := builder.NewCalendarBuilder().
			WithBlockedDate("2025-07-01", "b").
			WithBlockedDate("2025-06-15", "a").
			MustBuildDomain()

		dates := cfg.BlockedDates()
		require.Len(t, dates, 2)
		assert.Equal(t, "2025-06-15", dates[0].Date.String())
		assert.Equal(t, "2025-07-01", dates[1].Date.String())
	})

	t.Run("snapshot round trip", func(t *testing.T) {
		cfg := builder.NewCalendarBuilder().WithBlockedDate("2025-06-15", "Holiday").MustBuildDomain()

		again := calendar.Reconstruct(cfg.Snapshot())
		assert.Equal(t, cfg.Snapshot(), again.Snapshot())
	})
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewCalendarBuilder().With(c.mutate).BuildDomain()

			if c.errIs == nil {
				require.NoError(t, err)
				require.NotNil(t, actual)
			} else {
				require.Nil(t, actual)
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}
