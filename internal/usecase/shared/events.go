package shared

//go:generate mockgen -source=events.go -destination=../../../tests/mock/shared/events.go -package=sharedmock

import (
	"context"
	"encoding/json"
	"time"

	"court-scheduler/internal/domain/reservation"

	"github.com/google/uuid"
)

const ReservationEventKind = "reservation_event"

type EventType string

const (
	EventReservationCreated   EventType = "reservation.created"
	EventReservationCancelled EventType = "reservation.cancelled"
	EventReservationConfirmed EventType = "reservation.confirmed"
	EventReservationCompleted EventType = "reservation.completed"
)

// EventTypeFor names the event emitted when a reservation enters status.
func EventTypeFor(status reservation.Status) EventType {
	switch status {
	case reservation.StatusCancelled:
		return EventReservationCancelled
	case reservation.StatusConfirmed:
		return EventReservationConfirmed
	case reservation.StatusCompleted:
		return EventReservationCompleted
	default:
		return EventReservationCreated
	}
}

type ReservationEvent struct {
	Type          EventType `json:"type"`
	ReservationID uuid.UUID `json:"reservationId"`
	CourtID       uuid.UUID `json:"courtId"`
	SubjectID     uuid.UUID `json:"subjectId"`
	Date          string    `json:"date"`
	StartTime     string    `json:"startTime"`
	EndTime       string    `json:"endTime"`
	Status        string    `json:"status"`
	PriceCents    int64     `json:"priceCents"`
	Reason        *string   `json:"reason,omitempty"`
	ContactEmail  string    `json:"contactEmail,omitempty"`
	OccurredAt    time.Time `json:"occurredAt"`
}

func NewReservationEvent(t EventType, res *reservation.Reservation, at time.Time) ReservationEvent {
	return ReservationEvent{
		Type:          t,
		ReservationID: res.ID(),
		CourtID:       res.CourtID(),
		SubjectID:     res.SubjectID(),
		Date:          res.Date().String(),
		StartTime:     res.StartTime().String(),
		EndTime:       res.EndTime().String(),
		Status:        res.Status().String(),
		PriceCents:    res.PriceCents(),
		Reason:        res.CancellationReason(),
		ContactEmail:  res.ContactEmail(),
		OccurredAt:    at,
	}
}

// Notifier delivers reservation events to the outside world.
type Notifier interface {
	Notify(ctx context.Context, ev ReservationEvent) error
}

// EnqueueReservationEvent writes the event to the outbox inside tx so it is
// only dispatched if the state change commits.
func EnqueueReservationEvent(ctx context.Context, tx Tx, ev ReservationEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return tx.Notifications().CreateJob(ctx, tx.DB(), ReservationEventKind, string(ev.Type), payload, ev.OccurredAt)
}
