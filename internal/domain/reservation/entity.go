package reservation

import (
	"time"

	"court-scheduler/internal/domain/calendar"
	"court-scheduler/internal/domain/slot"

	"github.com/google/uuid"
)

type Reservation struct {
	id                 uuid.UUID
	courtID            uuid.UUID
	subjectID          uuid.UUID
	subjectKind        SubjectKind
	teamSize           int
	date               calendar.Date
	startTime          calendar.ClockTime
	endTime            calendar.ClockTime
	duration           int
	status             Status
	priceCents         int64
	pricePerHourCents  int64
	notes              Notes
	cancellationReason *string
	contactEmail       string
	snapshots          Snapshots
	createdAt          time.Time
	updatedAt          time.Time
	cancelledAt        *time.Time
}

// Record is the persisted shape of a reservation.
type Record struct {
	ID                 uuid.UUID
	CourtID            uuid.UUID
	SubjectID          uuid.UUID
	SubjectKind        SubjectKind
	TeamSize           int
	Date               calendar.Date
	StartTime          calendar.ClockTime
	EndTime            calendar.ClockTime
	Duration           int
	Status             Status
	PriceCents         int64
	PricePerHourCents  int64
	Notes              string
	CancellationReason *string
	ContactEmail       string
	Snapshots          Snapshots
	CreatedAt          time.Time
	UpdatedAt          time.Time
	CancelledAt        *time.Time
}

func Reconstruct(r Record) *Reservation {
	return &Reservation{
		id:                 r.ID,
		courtID:            r.CourtID,
		subjectID:          r.SubjectID,
		subjectKind:        r.SubjectKind,
		teamSize:           r.TeamSize,
		date:               r.Date,
		startTime:          r.StartTime,
		endTime:            r.EndTime,
		duration:           r.Duration,
		status:             r.Status,
		priceCents:         r.PriceCents,
		pricePerHourCents:  r.PricePerHourCents,
		notes:              Notes{value: r.Notes},
		cancellationReason: r.CancellationReason,
		contactEmail:       r.ContactEmail,
		snapshots:          r.Snapshots,
		createdAt:          r.CreatedAt,
		updatedAt:          r.UpdatedAt,
		cancelledAt:        r.CancelledAt,
	}
}

// Cancel applies the court's cancellation policy on behalf of the booker.
// A terminal reservation is rejected before the policy is consulted.
func (r *Reservation) Cancel(policy calendar.CancellationPolicy, reason string, now time.Time, loc *time.Location) error {
	if !r.status.CanTransitionTo(StatusCancelled) {
		return ErrInvalidTransition.With("%s -> %s", r.status, StatusCancelled)
	}
	if !policy.AllowCancellation {
		return ErrCancellationBlocked
	}
	deadline := time.Duration(policy.DeadlineHours) * time.Hour
	if r.StartsAt(loc).Sub(now) <= deadline {
		return ErrDeadlinePassed.With("cancellations close %d hours before start", policy.DeadlineHours)
	}

	reason, err := normalizeReason(reason)
	if err != nil {
		return err
	}
	if reason == "" {
		reason = DefaultCancelReason
	}
	r.markCancelled(reason, now)
	return nil
}

// ChangeStatus is the operator path. It enforces the state machine but not the
// booker's cancellation policy.
func (r *Reservation) ChangeStatus(next Status, reason string, now time.Time) error {
	if !next.IsValid() {
		return ErrInvalidStatus.With("%q", next)
	}
	if !r.status.CanTransitionTo(next) {
		return ErrInvalidTransition.With("%s -> %s", r.status, next)
	}

	if next == StatusCancelled {
		reason, err := normalizeReason(reason)
		if err != nil {
			return err
		}
		if reason == "" {
			return ErrReasonRequired
		}
		r.markCancelled(reason, now)
		return nil
	}

	r.status = next
	r.updatedAt = now
	return nil
}

func (r *Reservation) markCancelled(reason string, now time.Time) {
	r.status = StatusCancelled
	r.cancellationReason = &reason
	r.cancelledAt = &now
	r.updatedAt = now
}

func (r *Reservation) StartsAt(loc *time.Location) time.Time {
	return r.date.At(r.startTime, loc)
}

func (r *Reservation) EndsAt(loc *time.Location) time.Time {
	return r.date.At(r.endTime, loc)
}

func (r *Reservation) HasEnded(now time.Time, loc *time.Location) bool {
	return !now.Before(r.EndsAt(loc))
}

func (r *Reservation) Interval() slot.Interval {
	return slot.Interval{Start: r.startTime, End: r.endTime}
}

func (r *Reservation) Blocks() bool {
	return r.status.Blocking()
}

func (r *Reservation) ID() uuid.UUID                 { return r.id }
func (r *Reservation) CourtID() uuid.UUID            { return r.courtID }
func (r *Reservation) SubjectID() uuid.UUID          { return r.subjectID }
func (r *Reservation) SubjectKind() SubjectKind      { return r.subjectKind }
func (r *Reservation) TeamSize() int                 { return r.teamSize }
func (r *Reservation) Date() calendar.Date           { return r.date }
func (r *Reservation) StartTime() calendar.ClockTime { return r.startTime }
func (r *Reservation) EndTime() calendar.ClockTime   { return r.endTime }
func (r *Reservation) Duration() int                 { return r.duration }
func (r *Reservation) Status() Status                { return r.status }
func (r *Reservation) PriceCents() int64             { return r.priceCents }
func (r *Reservation) PricePerHourCents() int64      { return r.pricePerHourCents }
func (r *Reservation) Notes() Notes                  { return r.notes }
func (r *Reservation) CancellationReason() *string   { return r.cancellationReason }
func (r *Reservation) ContactEmail() string          { return r.contactEmail }
func (r *Reservation) Snapshots() Snapshots          { return r.snapshots }
func (r *Reservation) CreatedAt() time.Time          { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time          { return r.updatedAt }
func (r *Reservation) CancelledAt() *time.Time       { return r.cancelledAt }
