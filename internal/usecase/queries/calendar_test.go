//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"court-scheduler/internal/domain/calendar"
	"court-scheduler/internal/infra"
	"court-scheduler/internal/usecase/queries"
	"court-scheduler/tests/common/builder"
	queriesmock "court-scheduler/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestCalendarQueriesGet(t *testing.T) {
	ctx := context.Background()

	t.Run("flattens the configuration", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockCalendarReadStore(ctrl)
		cal := builder.NewCalendarBuilder().
			WithClosedOn(time.Sunday).
			WithBlockedDate("2025-06-10", "Tournament").
			WithBlockedDate("2025-06-05", "")
		store.EXPECT().FindByCourtID(gomock.Any(), cal.CourtID).Return(cal.MustBuildDomain(), nil).Times(1)

		view, err := queries.NewCalendarQueries(store).Get(ctx, cal.CourtID)
		require.NoError(t, err)

		assert.Equal(t, cal.CourtID, view.CourtID)
		assert.Equal(t, cal.CompanyID, view.CompanyID)
		assert.Equal(t, 90, view.MatchDuration)
		assert.Len(t, view.Weekly, 7)
		assert.Equal(t, queries.DayHoursView{IsOpen: false}, view.Weekly["sunday"])
		assert.Equal(t, queries.DayHoursView{IsOpen: true, Start: "08:00", End: "22:00"}, view.Weekly["monday"])

		assert.Equal(t, int64(calendar.DefaultPricePerHourCents), view.Pricing.BasePricePerHourCents)
		require.NotNil(t, view.Pricing.AdvanceBookingPriceCents)
		assert.Equal(t, int64(calendar.DefaultAdvanceBookingPriceCents), *view.Pricing.AdvanceBookingPriceCents)
		assert.Equal(t, queries.CancellationView{AllowCancellation: true, DeadlineHours: 24}, view.Cancellation)
		assert.True(t, view.AutoConfirmBookings)

		assert.Equal(t, []queries.BlockedDateView{
			{Date: "2025-06-05", Reason: calendar.DefaultBlockedReason},
			{Date: "2025-06-10", Reason: "Tournament"},
		}, view.Blocked)
	})

	t.Run("missing calendar", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockCalendarReadStore(ctrl)
		store.EXPECT().FindByCourtID(gomock.Any(), gomock.Any()).
			Return(nil, infra.WrapRepoErr("calendar not found", nil, infra.KindNotFound)).Times(1)

		_, err := queries.NewCalendarQueries(store).Get(ctx, uuid.New())
		require.ErrorIs(t, err, calendar.ErrNotFound)
	})
}
