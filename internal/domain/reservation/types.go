package reservation

import (
	"court-scheduler/internal/pkg/errs"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCancelled, StatusCompleted},
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	default:
		return false
	}
}

// Blocking statuses hold their slot against new bookings.
func (s Status) Blocking() bool {
	return s == StatusPending || s == StatusConfirmed
}

func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", ErrInvalidStatus.With("%q", s)
	}
	return st, nil
}

// BlockingStatuses is the set stored as blocking in the reservations table constraint.
func BlockingStatuses() []Status {
	return []Status{StatusPending, StatusConfirmed}
}

type SubjectKind string

const (
	SubjectIndividual SubjectKind = "individual"
	SubjectTeam       SubjectKind = "team"
)

func (k SubjectKind) IsValid() bool {
	return k == SubjectIndividual || k == SubjectTeam
}

const (
	MaxNotesLength  = 500
	MaxReasonLength = 200
	MinTeamSize     = 1
	MaxTeamSize     = 22

	DefaultCancelReason = "Cancelled by user"
)

// Creation rules, checked in declaration order.
var (
	ErrDateInPast           = errs.NewRule(errs.ErrValidation, "DATE_IN_PAST", "reservation date is in the past")
	ErrBeyondBookingWindow  = errs.NewRule(errs.ErrValidation, "BEYOND_BOOKING_WINDOW", "reservation date is beyond the advance booking window")
	ErrDateBlocked          = errs.NewRule(errs.ErrValidation, "DATE_BLOCKED", "date is blocked")
	ErrCourtClosed          = errs.NewRule(errs.ErrValidation, "COURT_CLOSED", "court is closed on this day")
	ErrOutsideWorkingHours  = errs.NewRule(errs.ErrValidation, "OUTSIDE_WORKING_HOURS", "reservation falls outside working hours")
	ErrInsufficientLeadTime = errs.NewRule(errs.ErrValidation, "INSUFFICIENT_LEAD_TIME", "reservation starts too soon")
	ErrSlotConflict         = errs.NewRule(errs.ErrConflict, "SLOT_TAKEN", "requested time overlaps an existing reservation")
)

var (
	ErrSubjectRequired     = errs.NewRule(errs.ErrValidation, "SUBJECT_REQUIRED", "subject id is required")
	ErrInvalidSubjectKind  = errs.NewRule(errs.ErrValidation, "INVALID_SUBJECT_KIND", "subject kind must be individual or team")
	ErrInvalidTeamSize     = errs.NewRule(errs.ErrValidation, "INVALID_TEAM_SIZE", "team size must be between 1 and 22")
	ErrNotesTooLong        = errs.NewRule(errs.ErrValidation, "NOTES_TOO_LONG", "notes exceed 500 characters")
	ErrReasonTooLong       = errs.NewRule(errs.ErrValidation, "REASON_TOO_LONG", "reason exceeds 200 characters")
	ErrReasonRequired      = errs.NewRule(errs.ErrValidation, "REASON_REQUIRED", "a reason is required to cancel")
	ErrInvalidStatus       = errs.NewRule(errs.ErrValidation, "INVALID_STATUS", "unknown reservation status")
	ErrCourtMismatch       = errs.NewRule(errs.ErrValidation, "COURT_MISMATCH", "calendar belongs to another court")
	ErrInvalidTransition   = errs.NewRule(errs.ErrInvalidTransition, "INVALID_TRANSITION", "status transition not allowed")
	ErrCancellationBlocked = errs.NewRule(errs.ErrPolicyViolation, "CANCELLATION_NOT_ALLOWED", "court does not allow cancellations")
	ErrDeadlinePassed      = errs.NewRule(errs.ErrPolicyViolation, "CANCELLATION_DEADLINE_PASSED", "cancellation deadline has passed")
	ErrNotFound            = errs.NewRule(errs.ErrNotFound, "RESERVATION_NOT_FOUND", "reservation not found")
)
