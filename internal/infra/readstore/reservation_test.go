//go:build unit

package readstore_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"court-scheduler/internal/domain/calendar"
	"court-scheduler/internal/infra"
	"court-scheduler/internal/infra/query"
	"court-scheduler/internal/infra/readstore"
	"court-scheduler/internal/infra/repository/converter"
	"court-scheduler/internal/pkg/pgconv"
	"court-scheduler/internal/pkg/ptr"
	readstoremock "court-scheduler/tests/mock/readstore"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var (
	errDBConnectionLost = errors.New("database connection lost")
	createdAt           = time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
)

type mockDBTX struct {
	query.DBTX
}

func reservationRow(id uuid.UUID) query.Reservations {
	return query.Reservations{
		ID:                id,
		CourtID:           uuid.New(),
		SubjectID:         uuid.New(),
		SubjectKind:       "team",
		TeamSize:          4,
		Date:              pgconv.DateToPgtype(2025, time.June, 3),
		StartMinute:       14 * 60,
		EndMinute:         15*60 + 30,
		DurationMinutes:   90,
		Status:            "cancelled",
		PriceCents:        2250,
		PricePerHourCents: 1500,
		Notes:             pgconv.StringToPgtype("Bring balls"),
		CancellationReason: pgtype.Text{
			String: "Rain",
			Valid:  true,
		},
		CourtSnapshot: []byte(`{"name":"Court 1"}`),
		CreatedAt:     pgconv.TimeToPgtype(createdAt),
		UpdatedAt:     pgconv.TimeToPgtype(createdAt.Add(time.Hour)),
		CancelledAt:   pgconv.TimeToPgtype(createdAt.Add(time.Hour)),
	}
}

// =============================================================================
// FindByID Tests
// =============================================================================

func TestReservationReadStore_FindByID(t *testing.T) {
	ctx := context.Background()
	reservationID := uuid.New()

	testCases := []struct {
		name          string
		setupMock     func(*readstoremock.MockReservationViewQueries, uuid.UUID)
		expectedError bool
		expectKind    infra.RepositoryErrorKind
	}{
		{
			name: "success: reservation found",
			setupMock: func(mock *readstoremock.MockReservationViewQueries, id uuid.UUID) {
				mock.EXPECT().GetReservationByID(ctx, gomock.Any(), id).Return(reservationRow(id), nil)
			},
		},
		{
			name: "error: reservation not found",
			setupMock: func(mock *readstoremock.MockReservationViewQueries, id uuid.UUID) {
				mock.EXPECT().GetReservationByID(ctx, gomock.Any(), id).Return(query.Reservations{}, pgx.ErrNoRows)
			},
			expectedError: true,
			expectKind:    infra.KindNotFound,
		},
		{
			name: "error: database error",
			setupMock: func(mock *readstoremock.MockReservationViewQueries, id uuid.UUID) {
				mock.EXPECT().GetReservationByID(ctx, gomock.Any(), id).Return(query.Reservations{}, errDBConnectionLost)
			},
			expectedError: true,
			expectKind:    infra.KindDBFailure,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockQueries := readstoremock.NewMockReservationViewQueries(ctrl)
			tc.setupMock(mockQueries, reservationID)

			store := readstore.NewReservationReadStore(mockQueries, &mockDBTX{})
			view, err := store.FindByID(ctx, reservationID)

			if tc.expectedError {
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, tc.expectKind))
				assert.Nil(t, view)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, reservationID, view.ID)
			assert.Equal(t, "team", view.SubjectKind)
			assert.Equal(t, 4, view.TeamSize)
			assert.Equal(t, "2025-06-03", view.Date)
			assert.Equal(t, "14:00", view.StartTime)
			assert.Equal(t, "15:30", view.EndTime)
			assert.Equal(t, 90, view.Duration)
			assert.Equal(t, "cancelled", view.Status)
			assert.Equal(t, int64(2250), view.PriceCents)
			assert.Equal(t, ptr.Of("Bring balls"), view.Notes)
			assert.Equal(t, ptr.Of("Rain"), view.CancellationReason)
			assert.Nil(t, view.ContactEmail)
			assert.JSONEq(t, `{"name":"Court 1"}`, string(view.CourtSnapshot))
			assert.Empty(t, view.CompanySnapshot)
			assert.True(t, createdAt.Equal(view.CreatedAt))
			require.NotNil(t, view.CancelledAt)
			assert.True(t, createdAt.Add(time.Hour).Equal(*view.CancelledAt))
		})
	}
}

// =============================================================================
// Listing Tests
// =============================================================================

func TestReservationReadStore_ListByCourtDate(t *testing.T) {
	ctx := context.Background()
	courtID := uuid.New()
	date := calendar.MustParseDate("2025-06-03")

	testCases := []struct {
		name       string
		status     *string
		wantStatus pgtype.Text
	}{
		{name: "without status filter", status: nil, wantStatus: pgtype.Text{}},
		{name: "with status filter", status: ptr.Of("confirmed"), wantStatus: pgtype.Text{String: "confirmed", Valid: true}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockQueries := readstoremock.NewMockReservationViewQueries(ctrl)
			mockQueries.EXPECT().ListReservationsByCourtDate(ctx, gomock.Any(), query.ListReservationsByCourtDateParams{
				CourtID: courtID,
				Date:    converter.DateToInfra(date),
				Status:  tc.wantStatus,
			}).Return([]query.Reservations{reservationRow(uuid.New()), reservationRow(uuid.New())}, nil)

			views, err := readstore.NewReservationReadStore(mockQueries, &mockDBTX{}).ListByCourtDate(ctx, courtID, date, tc.status)
			require.NoError(t, err)
			assert.Len(t, views, 2)
		})
	}
}

func TestReservationReadStore_FindBySubjectKeyset(t *testing.T) {
	ctx := context.Background()
	subjectID := uuid.New()
	lastID := uuid.New()

	t.Run("success: passes the keyset through", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := readstoremock.NewMockReservationViewQueries(ctrl)
		mockQueries.EXPECT().ListReservationsBySubjectKeyset(ctx, gomock.Any(), query.ListReservationsBySubjectKeysetParams{
			SubjectID: subjectID,
			CreatedAt: pgconv.TimeToPgtype(createdAt),
			ID:        lastID,
			Limit:     11,
		}).Return(nil, nil)

		views, err := readstore.NewReservationReadStore(mockQueries, &mockDBTX{}).FindBySubjectKeyset(ctx, subjectID, createdAt, lastID, 11)
		require.NoError(t, err)
		assert.Empty(t, views)
	})

	t.Run("error: database error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := readstoremock.NewMockReservationViewQueries(ctrl)
		mockQueries.EXPECT().ListReservationsBySubjectKeyset(ctx, gomock.Any(), gomock.Any()).Return(nil, errDBConnectionLost)

		_, err := readstore.NewReservationReadStore(mockQueries, &mockDBTX{}).FindBySubjectKeyset(ctx, subjectID, createdAt, lastID, 11)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}

func TestReservationReadStore_ListBlocking(t *testing.T) {
	ctx := context.Background()
	courtID := uuid.New()
	date := calendar.MustParseDate("2025-06-03")

	ctrl := gomock.NewController(t)
	mockQueries := readstoremock.NewMockReservationViewQueries(ctrl)
	mockQueries.EXPECT().ListBlockingIntervals(ctx, gomock.Any(), courtID, converter.DateToInfra(date)).
		Return([]query.ListBlockingIntervalsRow{{StartMinute: 480, EndMinute: 570}, {StartMinute: 780, EndMinute: 870}}, nil)

	bookings, err := readstore.NewReservationReadStore(mockQueries, &mockDBTX{}).ListBlocking(ctx, courtID, date)
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, "08:00", bookings[0].Start.String())
	assert.Equal(t, "14:30", bookings[1].End.String())
	assert.True(t, bookings[1].Blocking)
}
