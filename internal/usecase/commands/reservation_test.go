//go:build unit

package commands_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"court-scheduler/internal/domain/calendar"
	"court-scheduler/internal/domain/reservation"
	"court-scheduler/internal/infra"
	"court-scheduler/internal/pkg/clock"
	"court-scheduler/internal/pkg/errs"
	"court-scheduler/internal/usecase/commands"
	"court-scheduler/internal/usecase/shared"
	"court-scheduler/tests/common/builder"
	"court-scheduler/tests/common/uowtest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reservationFixture struct {
	clock *clock.MockClock
	store *uowtest.Store
	cal   *builder.CalendarBuilder
	uc    commands.ReservationCommands
}

func newReservationFixture(t *testing.T, mutate ...func(*builder.CalendarBuilder)) *reservationFixture {
	t.Helper()

	clk := clock.NewMockClock(builder.FixedNow)
	store := uowtest.NewStore(clk)
	cal := builder.NewCalendarBuilder()
	for _, m := range mutate {
		m(cal)
	}
	cfg, err := cal.BuildDomain()
	require.NoError(t, err)
	store.PutCalendar(cfg)

	factory := reservation.NewFactory(clk, reservation.NewDefaultPriceCalculator(), time.UTC)
	return &reservationFixture{
		clock: clk,
		store: store,
		cal:   cal,
		uc:    commands.NewReservationUseCase(uowtest.NewUoW(store), factory, clk, time.UTC),
	}
}

func (f *reservationFixture) input(start string) commands.CreateReservationInput {
	return commands.CreateReservationInput{
		CourtID:      f.cal.CourtID,
		SubjectID:    uuid.New(),
		SubjectKind:  string(reservation.SubjectIndividual),
		TeamSize:     1,
		Date:         calendar.DateOf(builder.FixedNow).AddDays(1),
		StartTime:    calendar.MustParseClockTime(start),
		ContactEmail: "player@example.com",
	}
}

// stored seeds a reservation on tomorrow's 14:00 slot of the fixture court.
func (f *reservationFixture) stored(status reservation.Status) *reservation.Reservation {
	rb := builder.NewReservationBuilder()
	rb.Calendar = f.cal
	res := rb.BuildStored(status)
	f.store.PutReservation(res)
	return res
}

func decodeEvent(t *testing.T, job uowtest.Job) shared.ReservationEvent {
	t.Helper()
	var ev shared.ReservationEvent
	require.NoError(t, json.Unmarshal(job.Payload, &ev))
	return ev
}

func TestCreateReservation(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("success: books the slot and queues a created event", func(t *testing.T) {
		f := newReservationFixture(t)

		result, err := f.uc.CreateReservation(ctx, f.input("14:00"), userID, nil)
		require.NoError(t, err)
		assert.False(t, result.IsReplayed)

		res, ok := f.store.Reservation(result.ReservationID)
		require.True(t, ok)
		assert.Equal(t, reservation.StatusConfirmed, res.Status())
		assert.Equal(t, "15:30", res.EndTime().String())
		assert.Equal(t, int64(2250), res.PriceCents())

		jobs := f.store.Jobs()
		require.Len(t, jobs, 1)
		assert.Equal(t, shared.ReservationEventKind, jobs[0].Kind)
		assert.Equal(t, string(shared.EventReservationCreated), jobs[0].Topic)
		ev := decodeEvent(t, jobs[0])
		assert.Equal(t, result.ReservationID, ev.ReservationID)
		assert.Equal(t, "confirmed", ev.Status)
		assert.Equal(t, "player@example.com", ev.ContactEmail)
	})

	t.Run("success: pending when the court does not auto-confirm", func(t *testing.T) {
		f := newReservationFixture(t, func(b *builder.CalendarBuilder) { b.AutoConfirm = false })

		result, err := f.uc.CreateReservation(ctx, f.input("14:00"), userID, nil)
		require.NoError(t, err)

		res, _ := f.store.Reservation(result.ReservationID)
		assert.Equal(t, reservation.StatusPending, res.Status())
	})

	t.Run("success: a cancelled reservation does not hold its slot", func(t *testing.T) {
		f := newReservationFixture(t)
		f.stored(reservation.StatusCancelled)

		_, err := f.uc.CreateReservation(ctx, f.input("14:00"), userID, nil)
		require.NoError(t, err)
		assert.Equal(t, 2, f.store.ReservationCount())
	})

	t.Run("success: back-to-back bookings share a boundary", func(t *testing.T) {
		f := newReservationFixture(t)
		f.stored(reservation.StatusConfirmed)

		_, err := f.uc.CreateReservation(ctx, f.input("15:30"), userID, nil)
		require.NoError(t, err)
	})

	t.Run("error: overlapping a pending or confirmed reservation", func(t *testing.T) {
		for _, status := range []reservation.Status{reservation.StatusPending, reservation.StatusConfirmed} {
			t.Run(status.String(), func(t *testing.T) {
				f := newReservationFixture(t)
				f.stored(status)

				_, err := f.uc.CreateReservation(ctx, f.input("14:30"), userID, nil)
				require.ErrorIs(t, err, reservation.ErrSlotConflict)
				require.ErrorIs(t, err, errs.ErrConflict)
				assert.Equal(t, 1, f.store.ReservationCount())
				assert.Empty(t, f.store.Jobs())
			})
		}
	})

	t.Run("error: lost race surfaces as a slot conflict", func(t *testing.T) {
		f := newReservationFixture(t)
		f.store.FailOn(uowtest.OpReservationCreate, infra.WrapRepoErr("failed to create reservation", nil, infra.KindConflict))

		_, err := f.uc.CreateReservation(ctx, f.input("14:00"), userID, nil)
		require.ErrorIs(t, err, reservation.ErrSlotConflict)
	})

	t.Run("success: first booking creates the default calendar", func(t *testing.T) {
		f := newReservationFixture(t)
		in := f.input("14:00")
		in.CourtID = uuid.New()

		result, err := f.uc.CreateReservation(ctx, in, userID, nil)
		require.NoError(t, err)

		cfg, ok := f.store.Calendar(in.CourtID)
		require.True(t, ok)
		assert.Equal(t, calendar.DefaultMatchDuration, cfg.MatchDuration())
		assert.True(t, cfg.AutoConfirmBookings())

		res, ok := f.store.Reservation(result.ReservationID)
		require.True(t, ok)
		assert.Equal(t, in.CourtID, res.CourtID())
		assert.Equal(t, reservation.StatusConfirmed, res.Status())
		assert.Equal(t, "15:30", res.EndTime().String())
	})

	t.Run("error: rejected first booking leaves no calendar behind", func(t *testing.T) {
		f := newReservationFixture(t)
		in := f.input("21:00")
		in.CourtID = uuid.New()

		_, err := f.uc.CreateReservation(ctx, in, userID, nil)
		require.ErrorIs(t, err, reservation.ErrOutsideWorkingHours)

		_, ok := f.store.Calendar(in.CourtID)
		assert.False(t, ok)
	})

	t.Run("error: default calendar insert failure aborts the booking", func(t *testing.T) {
		f := newReservationFixture(t)
		f.store.FailOn(uowtest.OpCalendarInsert, infra.WrapRepoErr("failed to create calendar", nil, infra.KindDBFailure))
		in := f.input("14:00")
		in.CourtID = uuid.New()

		_, err := f.uc.CreateReservation(ctx, in, userID, nil)
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
		assert.Empty(t, f.store.Jobs())
	})

	t.Run("error: creation rules are enforced", func(t *testing.T) {
		f := newReservationFixture(t)
		in := f.input("21:00")

		_, err := f.uc.CreateReservation(ctx, in, userID, nil)
		require.ErrorIs(t, err, reservation.ErrOutsideWorkingHours)
		assert.Zero(t, f.store.Commits())
	})

	t.Run("error: outbox failure rolls the booking back", func(t *testing.T) {
		f := newReservationFixture(t)
		f.store.FailOn(uowtest.OpNotificationCreate, errors.New("outbox unavailable"))

		_, err := f.uc.CreateReservation(ctx, f.input("14:00"), userID, nil)
		require.Error(t, err)
		assert.Zero(t, f.store.ReservationCount())
	})
}

func TestCreateReservationIdempotency(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("same key and body replays the first reservation", func(t *testing.T) {
		f := newReservationFixture(t)
		key := uuid.New()
		in := f.input("14:00")

		first, err := f.uc.CreateReservation(ctx, in, userID, &key)
		require.NoError(t, err)
		second, err := f.uc.CreateReservation(ctx, in, userID, &key)
		require.NoError(t, err)

		assert.False(t, first.IsReplayed)
		assert.True(t, second.IsReplayed)
		assert.Equal(t, first.ReservationID, second.ReservationID)
		assert.Equal(t, 1, f.store.ReservationCount())
		assert.Len(t, f.store.Jobs(), 1)

		rec, ok := f.store.Idempotency(key, userID)
		require.True(t, ok)
		assert.Equal(t, shared.IdempotencyCompleted, rec.Status)
		require.NotNil(t, rec.ResultReservationID)
		assert.Equal(t, first.ReservationID, *rec.ResultReservationID)
	})

	t.Run("same key with another body is rejected", func(t *testing.T) {
		f := newReservationFixture(t)
		key := uuid.New()

		_, err := f.uc.CreateReservation(ctx, f.input("14:00"), userID, &key)
		require.NoError(t, err)
		_, err = f.uc.CreateReservation(ctx, f.input("17:00"), userID, &key)
		require.ErrorIs(t, err, commands.ErrIdempotencyKeyReused)
		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Equal(t, 1, f.store.ReservationCount())
	})

	t.Run("keys are scoped per user", func(t *testing.T) {
		f := newReservationFixture(t)
		key := uuid.New()

		_, err := f.uc.CreateReservation(ctx, f.input("14:00"), userID, &key)
		require.NoError(t, err)
		other, err := f.uc.CreateReservation(ctx, f.input("17:00"), uuid.New(), &key)
		require.NoError(t, err)
		assert.False(t, other.IsReplayed)
		assert.Equal(t, 2, f.store.ReservationCount())
	})

	t.Run("failed request releases the key", func(t *testing.T) {
		f := newReservationFixture(t)
		f.stored(reservation.StatusConfirmed)
		key := uuid.New()
		in := f.input("14:00")

		_, err := f.uc.CreateReservation(ctx, in, userID, &key)
		require.ErrorIs(t, err, reservation.ErrSlotConflict)
		_, ok := f.store.Idempotency(key, userID)
		assert.False(t, ok)

		in.StartTime = calendar.MustParseClockTime("17:00")
		result, err := f.uc.CreateReservation(ctx, in, userID, &key)
		require.NoError(t, err)
		assert.False(t, result.IsReplayed)
	})

	t.Run("key still processing", func(t *testing.T) {
		f := newReservationFixture(t)
		key := uuid.New()
		in := f.input("14:00")

		f.store.FailOn(uowtest.OpReservationCreate, errors.New("connection reset"))
		f.store.FailOn(uowtest.OpIdempotencyRelease, errors.New("connection reset"))
		_, err := f.uc.CreateReservation(ctx, in, userID, &key)
		require.Error(t, err)

		f.store.FailOn(uowtest.OpReservationCreate, nil)
		f.store.FailOn(uowtest.OpIdempotencyRelease, nil)
		_, err = f.uc.CreateReservation(ctx, in, userID, &key)
		require.ErrorIs(t, err, commands.ErrIdempotencyInProgress)
		assert.Zero(t, f.store.ReservationCount())
	})

	t.Run("expired key is claimed by a new request", func(t *testing.T) {
		f := newReservationFixture(t)
		key := uuid.New()

		first, err := f.uc.CreateReservation(ctx, f.input("14:00"), userID, &key)
		require.NoError(t, err)

		f.clock.Add(commands.IdempotencyTTL + time.Minute)
		second, err := f.uc.CreateReservation(ctx, f.input("17:00"), userID, &key)
		require.NoError(t, err)
		assert.False(t, second.IsReplayed)
		assert.NotEqual(t, first.ReservationID, second.ReservationID)
	})
}

func TestCancelReservation(t *testing.T) {
	ctx := context.Background()

	t.Run("success: cancels ahead of the deadline", func(t *testing.T) {
		// tomorrow 14:00 is 28 hours away; default deadline is 24
		f := newReservationFixture(t)
		res := f.stored(reservation.StatusConfirmed)

		require.NoError(t, f.uc.CancelReservation(ctx, res.ID(), ""))

		got, _ := f.store.Reservation(res.ID())
		assert.Equal(t, reservation.StatusCancelled, got.Status())
		require.NotNil(t, got.CancellationReason())
		assert.Equal(t, reservation.DefaultCancelReason, *got.CancellationReason())

		jobs := f.store.Jobs()
		require.Len(t, jobs, 1)
		assert.Equal(t, string(shared.EventReservationCancelled), jobs[0].Topic)
		ev := decodeEvent(t, jobs[0])
		require.NotNil(t, ev.Reason)
		assert.Equal(t, reservation.DefaultCancelReason, *ev.Reason)
	})

	t.Run("error: deadline passed", func(t *testing.T) {
		f := newReservationFixture(t, func(b *builder.CalendarBuilder) { b.DeadlineHours = 48 })
		res := f.stored(reservation.StatusConfirmed)

		err := f.uc.CancelReservation(ctx, res.ID(), "Rain")
		require.ErrorIs(t, err, reservation.ErrDeadlinePassed)
		require.ErrorIs(t, err, errs.ErrPolicyViolation)

		got, _ := f.store.Reservation(res.ID())
		assert.Equal(t, reservation.StatusConfirmed, got.Status())
		assert.Empty(t, f.store.Jobs())
	})

	t.Run("error: court disallows cancellation", func(t *testing.T) {
		f := newReservationFixture(t, func(b *builder.CalendarBuilder) { b.AllowCancellation = false })
		res := f.stored(reservation.StatusPending)

		err := f.uc.CancelReservation(ctx, res.ID(), "")
		require.ErrorIs(t, err, reservation.ErrCancellationBlocked)
	})

	t.Run("error: already cancelled", func(t *testing.T) {
		f := newReservationFixture(t)
		res := f.stored(reservation.StatusCancelled)

		err := f.uc.CancelReservation(ctx, res.ID(), "")
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("error: unknown reservation", func(t *testing.T) {
		f := newReservationFixture(t)

		err := f.uc.CancelReservation(ctx, uuid.New(), "")
		require.ErrorIs(t, err, reservation.ErrNotFound)
		require.ErrorIs(t, err, errs.ErrNotFound)
	})
}

func TestUpdateReservationStatus(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		from      reservation.Status
		to        string
		reason    string
		wantErr   error
		wantTopic shared.EventType
	}{
		{name: "pending to confirmed", from: reservation.StatusPending, to: "confirmed", wantTopic: shared.EventReservationConfirmed},
		{name: "confirmed to completed", from: reservation.StatusConfirmed, to: "completed", wantTopic: shared.EventReservationCompleted},
		{name: "operator cancel inside the deadline", from: reservation.StatusConfirmed, to: "cancelled", reason: "Court flooded", wantTopic: shared.EventReservationCancelled},
		{name: "operator cancel needs a reason", from: reservation.StatusConfirmed, to: "cancelled", wantErr: reservation.ErrReasonRequired},
		{name: "completed is terminal", from: reservation.StatusCompleted, to: "confirmed", wantErr: reservation.ErrInvalidTransition},
		{name: "pending cannot complete", from: reservation.StatusPending, to: "completed", wantErr: reservation.ErrInvalidTransition},
		{name: "unknown status", from: reservation.StatusPending, to: "archived", wantErr: reservation.ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newReservationFixture(t, func(b *builder.CalendarBuilder) { b.DeadlineHours = 48 })
			res := f.stored(tt.from)

			err := f.uc.UpdateStatus(ctx, res.ID(), tt.to, tt.reason)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				got, _ := f.store.Reservation(res.ID())
				assert.Equal(t, tt.from, got.Status())
				assert.Empty(t, f.store.Jobs())
				return
			}
			require.NoError(t, err)

			got, _ := f.store.Reservation(res.ID())
			assert.Equal(t, tt.to, got.Status().String())
			jobs := f.store.Jobs()
			require.Len(t, jobs, 1)
			assert.Equal(t, string(tt.wantTopic), jobs[0].Topic)
		})
	}

	t.Run("unknown reservation", func(t *testing.T) {
		f := newReservationFixture(t)
		err := f.uc.UpdateStatus(ctx, uuid.New(), "confirmed", "")
		require.ErrorIs(t, err, reservation.ErrNotFound)
	})
}
