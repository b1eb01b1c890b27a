//go:build unit

package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"court-scheduler/internal/domain/calendar"
	"court-scheduler/internal/domain/reservation"
	"court-scheduler/internal/infra"
	"court-scheduler/internal/infra/query"
	"court-scheduler/internal/infra/repository"
	"court-scheduler/internal/infra/repository/converter"
	"court-scheduler/tests/common/builder"
	repositorymock "court-scheduler/tests/mock/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type mockDBTX struct {
	query.DBTX
}

func TestReservationRepositoryCreate(t *testing.T) {
	ctx := context.Background()
	tx := &mockDBTX{}

	t.Run("persists the reservation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := repositorymock.NewMockReservationWriteQueries(ctrl)
		res, err := builder.NewReservationBuilder().BuildDomain()
		require.NoError(t, err)

		mockQueries.EXPECT().CreateReservation(gomock.Any(), tx, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ query.DBTX, arg query.CreateReservationParams) (uuid.UUID, error) {
				assert.Equal(t, res.ID(), arg.ID)
				assert.Equal(t, int32(14*60), arg.StartMinute)
				assert.Equal(t, int32(15*60+30), arg.EndMinute)
				assert.Equal(t, "confirmed", arg.Status)
				assert.Equal(t, "Friendly match", arg.Notes.String)
				return arg.ID, nil
			}).Times(1)

		repo := repository.NewReservationRepository(mockQueries, tx)
		id, err := repo.Create(ctx, tx, res)
		require.NoError(t, err)
		assert.Equal(t, res.ID(), id)
	})

	t.Run("exclusion violation is a conflict", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := repositorymock.NewMockReservationWriteQueries(ctrl)
		res, err := builder.NewReservationBuilder().BuildDomain()
		require.NoError(t, err)

		mockQueries.EXPECT().CreateReservation(gomock.Any(), tx, gomock.Any()).
			Return(uuid.Nil, &pgconn.PgError{Code: "23P01", ConstraintName: "reservations_no_overlap"}).Times(1)

		_, err = repository.NewReservationRepository(mockQueries, tx).Create(ctx, tx, res)
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindConflict))
	})
}

func TestReservationRepositoryLockCourtDay(t *testing.T) {
	ctx := context.Background()
	tx := &mockDBTX{}
	courtID := uuid.New()
	date := calendar.MustParseDate("2025-06-03")

	ctrl := gomock.NewController(t)
	mockQueries := repositorymock.NewMockReservationWriteQueries(ctrl)
	mockQueries.EXPECT().LockCourtDay(gomock.Any(), tx, courtID.String()+"/2025-06-03").Return(nil).Times(1)
	mockQueries.EXPECT().LockCourtDay(gomock.Any(), tx, gomock.Any()).Return(pgx.ErrTxClosed).Times(1)

	repo := repository.NewReservationRepository(mockQueries, tx)
	require.NoError(t, repo.LockCourtDay(ctx, tx, courtID, date))

	err := repo.LockCourtDay(ctx, tx, courtID, date)
	require.Error(t, err)
	assert.True(t, infra.IsKind(err, infra.KindDBFailure))
}

func TestReservationRepositoryListBlocking(t *testing.T) {
	ctx := context.Background()
	tx := &mockDBTX{}
	courtID := uuid.New()
	date := calendar.MustParseDate("2025-06-03")

	ctrl := gomock.NewController(t)
	mockQueries := repositorymock.NewMockReservationWriteQueries(ctrl)
	mockQueries.EXPECT().ListBlockingIntervals(gomock.Any(), tx, courtID, converter.DateToInfra(date)).
		Return([]query.ListBlockingIntervalsRow{{StartMinute: 600, EndMinute: 690}}, nil).Times(1)

	bookings, err := repository.NewReservationRepository(mockQueries, tx).ListBlocking(ctx, tx, courtID, date)
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, calendar.MustParseClockTime("10:00"), bookings[0].Start)
	assert.Equal(t, calendar.MustParseClockTime("11:30"), bookings[0].End)
	assert.True(t, bookings[0].Blocking)
}

func TestReservationRepositoryFindForUpdate(t *testing.T) {
	ctx := context.Background()
	tx := &mockDBTX{}

	t.Run("missing row is not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := repositorymock.NewMockReservationWriteQueries(ctrl)
		mockQueries.EXPECT().GetReservationByIDForUpdate(gomock.Any(), tx, gomock.Any()).
			Return(query.Reservations{}, pgx.ErrNoRows).Times(1)

		_, err := repository.NewReservationRepository(mockQueries, tx).FindForUpdate(ctx, tx, uuid.New())
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})

	t.Run("row converts back to the entity", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := repositorymock.NewMockReservationWriteQueries(ctrl)
		stored := builder.NewReservationBuilder().BuildStored(reservation.StatusConfirmed)
		params := converter.ReservationToInfra(stored)

		mockQueries.EXPECT().GetReservationByIDForUpdate(gomock.Any(), tx, stored.ID()).
			Return(query.Reservations{
				ID:                params.ID,
				CourtID:           params.CourtID,
				SubjectID:         params.SubjectID,
				SubjectKind:       params.SubjectKind,
				TeamSize:          params.TeamSize,
				Date:              params.Date,
				StartMinute:       params.StartMinute,
				EndMinute:         params.EndMinute,
				DurationMinutes:   params.DurationMinutes,
				Status:            params.Status,
				PriceCents:        params.PriceCents,
				PricePerHourCents: params.PricePerHourCents,
				Notes:             params.Notes,
				ContactEmail:      params.ContactEmail,
				CreatedAt:         params.CreatedAt,
				UpdatedAt:         params.CreatedAt,
			}, nil).Times(1)

		got, err := repository.NewReservationRepository(mockQueries, tx).FindForUpdate(ctx, tx, stored.ID())
		require.NoError(t, err)
		assert.Equal(t, stored.ID(), got.ID())
		assert.Equal(t, reservation.StatusConfirmed, got.Status())
		assert.Equal(t, stored.Date(), got.Date())
		assert.Equal(t, stored.StartTime(), got.StartTime())
		assert.Equal(t, stored.EndTime(), got.EndTime())
		assert.Equal(t, stored.PriceCents(), got.PriceCents())
		assert.Equal(t, "Friendly match", got.Notes().String())
		assert.Equal(t, "player@example.com", got.ContactEmail())
		assert.Nil(t, got.CancellationReason())
		assert.Nil(t, got.CancelledAt())
	})
}

func TestReservationRepositoryUpdateStatus(t *testing.T) {
	ctx := context.Background()
	tx := &mockDBTX{}
	now := builder.FixedNow.Add(time.Hour)

	cancelled := func(t *testing.T) *reservation.Reservation {
		res := builder.NewReservationBuilder().BuildStored(reservation.StatusConfirmed)
		require.NoError(t, res.ChangeStatus(reservation.StatusCancelled, "Rain", now))
		return res
	}

	t.Run("writes status with reason", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := repositorymock.NewMockReservationWriteQueries(ctrl)
		res := cancelled(t)

		mockQueries.EXPECT().UpdateReservationStatus(gomock.Any(), tx, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ query.DBTX, arg query.UpdateReservationStatusParams) (int64, error) {
				assert.Equal(t, res.ID(), arg.ID)
				assert.Equal(t, "cancelled", arg.Status)
				assert.Equal(t, "Rain", arg.CancellationReason.String)
				assert.True(t, arg.CancelledAt.Valid)
				return 1, nil
			}).Times(1)

		require.NoError(t, repository.NewReservationRepository(mockQueries, tx).UpdateStatus(ctx, tx, res))
	})

	t.Run("no updated rows is not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := repositorymock.NewMockReservationWriteQueries(ctrl)
		mockQueries.EXPECT().UpdateReservationStatus(gomock.Any(), tx, gomock.Any()).Return(int64(0), nil).Times(1)

		err := repository.NewReservationRepository(mockQueries, tx).UpdateStatus(ctx, tx, cancelled(t))
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})

	t.Run("driver failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := repositorymock.NewMockReservationWriteQueries(ctrl)
		mockQueries.EXPECT().UpdateReservationStatus(gomock.Any(), tx, gomock.Any()).
			Return(int64(0), errors.New("connection reset")).Times(1)

		err := repository.NewReservationRepository(mockQueries, tx).UpdateStatus(ctx, tx, cancelled(t))
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}

func TestReservationRepositoryListElapsedConfirmed(t *testing.T) {
	ctx := context.Background()
	tx := &mockDBTX{}
	today := calendar.MustParseDate("2025-06-02")

	ctrl := gomock.NewController(t)
	mockQueries := repositorymock.NewMockReservationWriteQueries(ctrl)
	mockQueries.EXPECT().ListElapsedConfirmedForUpdate(gomock.Any(), tx, query.ListElapsedConfirmedForUpdateParams{
		Today:     converter.DateToInfra(today),
		NowMinute: 600,
		Limit:     100,
	}).Return(nil, nil).Times(1)

	got, err := repository.NewReservationRepository(mockQueries, tx).ListElapsedConfirmed(ctx, tx, today, 600, 100)
	require.NoError(t, err)
	assert.Empty(t, got)
}
