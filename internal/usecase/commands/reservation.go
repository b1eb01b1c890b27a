package commands

//go:generate mockgen -source=reservation.go -destination=../../../tests/mock/commands/reservation.go -package=commandsmock

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"time"

	"court-scheduler/internal/domain/calendar"
	"court-scheduler/internal/domain/reservation"
	"court-scheduler/internal/infra"
	"court-scheduler/internal/pkg/clock"
	"court-scheduler/internal/pkg/errs"
	"court-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	IdempotencyTTL      = 24 * time.Hour
	idempotencyEndpoint = "POST /api/reservations"
)

var (
	ErrIdempotencyKeyReused  = errs.NewRule(errs.ErrConflict, "IDEMPOTENCY_KEY_REUSED", "idempotency key was already used for a different request")
	ErrIdempotencyInProgress = errs.NewRule(errs.ErrConflict, "IDEMPOTENCY_IN_PROGRESS", "a request with this idempotency key is still in progress")
)

type CreateReservationInput struct {
	CourtID      uuid.UUID             `json:"courtId"`
	SubjectID    uuid.UUID             `json:"subjectId"`
	SubjectKind  string                `json:"subjectKind"`
	TeamSize     int                   `json:"teamSize"`
	Date         calendar.Date         `json:"date"`
	StartTime    calendar.ClockTime    `json:"startTime"`
	Notes        string                `json:"notes"`
	ContactEmail string                `json:"contactEmail"`
	Snapshots    reservation.Snapshots `json:"-"`
}

type CreateReservationResult struct {
	ReservationID uuid.UUID
	IsReplayed    bool
}

type ReservationCommands interface {
	CreateReservation(ctx context.Context, in CreateReservationInput, userID uuid.UUID, idempotencyKey *uuid.UUID) (*CreateReservationResult, error)
	CancelReservation(ctx context.Context, id uuid.UUID, reason string) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status, reason string) error
}

type reservationUseCaseImpl struct {
	uow     shared.UnitOfWork
	factory *reservation.Factory
	clock   clock.Clock
	loc     *time.Location
}

func NewReservationUseCase(uow shared.UnitOfWork, factory *reservation.Factory, clk clock.Clock, loc *time.Location) ReservationCommands {
	return &reservationUseCaseImpl{
		uow:     uow,
		factory: factory,
		clock:   clk,
		loc:     loc,
	}
}

// CreateReservation books a slot. With an idempotency key, a repeated request
// returns the reservation created the first time instead of booking again.
func (uc *reservationUseCaseImpl) CreateReservation(ctx context.Context, in CreateReservationInput, userID uuid.UUID, idempotencyKey *uuid.UUID) (*CreateReservationResult, error) {
	if idempotencyKey == nil {
		id, err := uc.create(ctx, in, userID, nil)
		if err != nil {
			return nil, err
		}
		return &CreateReservationResult{ReservationID: id}, nil
	}

	requestHash := calculateRequestHash(in)
	replayID, err := uc.acquireKey(ctx, *idempotencyKey, userID, requestHash)
	if err != nil {
		return nil, err
	}
	if replayID != nil {
		return &CreateReservationResult{ReservationID: *replayID, IsReplayed: true}, nil
	}

	id, err := uc.create(ctx, in, userID, idempotencyKey)
	if err != nil {
		uc.releaseKey(ctx, *idempotencyKey, userID)
		return nil, err
	}
	return &CreateReservationResult{ReservationID: id}, nil
}

// acquireKey claims the key for this request, or returns the reservation a
// completed request with the same body already produced.
func (uc *reservationUseCaseImpl) acquireKey(ctx context.Context, key, userID uuid.UUID, requestHash string) (*uuid.UUID, error) {
	now := uc.clock.Now()
	expiresAt := now.Add(IdempotencyTTL)

	var replayID *uuid.UUID
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		inserted, err := tx.Idempotency().TryInsert(ctx, tx.DB(), key, userID, idempotencyEndpoint, requestHash, expiresAt)
		if err != nil {
			return err
		}
		if inserted {
			return nil
		}

		rec, err := tx.Reads().IdempotencyByKey(ctx, key, userID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				// released by a failing request between our insert and read
				return ErrIdempotencyInProgress
			}
			return err
		}

		if rec.Expired(now) {
			claimed, err := tx.Idempotency().ClaimExpired(ctx, tx.DB(), key, userID, requestHash, expiresAt)
			if err != nil {
				return err
			}
			if !claimed {
				return ErrIdempotencyInProgress
			}
			return nil
		}

		if rec.RequestHash != requestHash {
			return ErrIdempotencyKeyReused
		}
		if rec.Status != shared.IdempotencyCompleted {
			return ErrIdempotencyInProgress
		}
		if rec.ResultReservationID == nil {
			return errs.New("completed idempotency key has no reservation")
		}
		replayID = rec.ResultReservationID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return replayID, nil
}

func (uc *reservationUseCaseImpl) releaseKey(ctx context.Context, key, userID uuid.UUID) {
	ctx = context.WithoutCancel(ctx)
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Idempotency().Release(ctx, tx.DB(), key, userID)
	})
	if err != nil {
		slog.Warn("failed to release idempotency key", "key", key.String(), "error", err.Error())
	}
}

// create validates and inserts under the court-day lock. The exclusion
// constraint backs the lock, so a lost race still surfaces as a slot conflict.
func (uc *reservationUseCaseImpl) create(ctx context.Context, in CreateReservationInput, userID uuid.UUID, idempotencyKey *uuid.UUID) (uuid.UUID, error) {
	var createdID uuid.UUID
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		cfg, err := uc.calendarForBooking(ctx, tx, in.CourtID)
		if err != nil {
			return err
		}

		if err := tx.Reservations().LockCourtDay(ctx, tx.DB(), in.CourtID, in.Date); err != nil {
			return err
		}
		existing, err := tx.Reservations().ListBlocking(ctx, tx.DB(), in.CourtID, in.Date)
		if err != nil {
			return err
		}

		res, err := uc.factory.CreateReservation(cfg, reservation.CreateParams{
			CourtID:      in.CourtID,
			SubjectID:    in.SubjectID,
			SubjectKind:  reservation.SubjectKind(in.SubjectKind),
			TeamSize:     in.TeamSize,
			Date:         in.Date,
			StartTime:    in.StartTime,
			Notes:        in.Notes,
			ContactEmail: in.ContactEmail,
			Snapshots:    in.Snapshots,
		}, existing)
		if err != nil {
			return err
		}

		id, err := tx.Reservations().Create(ctx, tx.DB(), res)
		if err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return reservation.ErrSlotConflict
			}
			return err
		}

		if idempotencyKey != nil {
			if err := tx.Idempotency().UpdateStatusCompleted(ctx, tx.DB(), *idempotencyKey, userID, calculateIDHash(id), id); err != nil {
				return err
			}
		}

		createdID = id
		return shared.EnqueueReservationEvent(ctx, tx, shared.NewReservationEvent(shared.EventReservationCreated, res, res.CreatedAt()))
	})
	if err != nil {
		return uuid.Nil, err
	}
	return createdID, nil
}

// calendarForBooking loads the court's calendar and creates the default one
// on the court's first booking. Insert is a no-op when a concurrent booking
// got there first, so the re-read returns whichever row won.
func (uc *reservationUseCaseImpl) calendarForBooking(ctx context.Context, tx shared.Tx, courtID uuid.UUID) (*calendar.CalendarConfig, error) {
	cfg, err := tx.Reads().CalendarByCourtID(ctx, courtID)
	if err == nil || !infra.IsKind(err, infra.KindNotFound) {
		return cfg, err
	}

	def, err := calendar.NewDefaultConfig(calendar.CourtMeta{CourtID: courtID}, uc.clock.Now())
	if err != nil {
		return nil, err
	}
	if _, err := tx.Calendars().Insert(ctx, tx.DB(), def); err != nil {
		return nil, err
	}

	cfg, err = tx.Reads().CalendarByCourtID(ctx, courtID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, calendar.ErrNotFound
		}
		return nil, err
	}
	return cfg, nil
}

func (uc *reservationUseCaseImpl) CancelReservation(ctx context.Context, id uuid.UUID, reason string) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := uc.lockReservation(ctx, tx, id)
		if err != nil {
			return err
		}

		cfg, err := tx.Reads().CalendarByCourtID(ctx, res.CourtID())
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return calendar.ErrNotFound
			}
			return err
		}

		now := uc.clock.Now()
		if err := res.Cancel(cfg.CancellationPolicy(), reason, now, uc.loc); err != nil {
			return err
		}
		return uc.saveStatus(ctx, tx, res, now)
	})
}

func (uc *reservationUseCaseImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status, reason string) error {
	next, err := reservation.ParseStatus(status)
	if err != nil {
		return err
	}

	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := uc.lockReservation(ctx, tx, id)
		if err != nil {
			return err
		}

		now := uc.clock.Now()
		if err := res.ChangeStatus(next, reason, now); err != nil {
			return err
		}
		return uc.saveStatus(ctx, tx, res, now)
	})
}

func (uc *reservationUseCaseImpl) lockReservation(ctx context.Context, tx shared.Tx, id uuid.UUID) (*reservation.Reservation, error) {
	res, err := tx.Reservations().FindForUpdate(ctx, tx.DB(), id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, reservation.ErrNotFound
		}
		return nil, err
	}
	return res, nil
}

func (uc *reservationUseCaseImpl) saveStatus(ctx context.Context, tx shared.Tx, res *reservation.Reservation, now time.Time) error {
	if err := tx.Reservations().UpdateStatus(ctx, tx.DB(), res); err != nil {
		return err
	}
	ev := shared.NewReservationEvent(shared.EventTypeFor(res.Status()), res, now)
	return shared.EnqueueReservationEvent(ctx, tx, ev)
}

func calculateRequestHash(in CreateReservationInput) string {
	data, _ := json.Marshal(in)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

func calculateIDHash(id uuid.UUID) string {
	hash := sha256.Sum256([]byte(id.String()))
	return hex.EncodeToString(hash[:])
}
