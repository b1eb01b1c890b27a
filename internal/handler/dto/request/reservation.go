package request

import (
	"encoding/json"

	"court-scheduler/internal/domain/calendar"
	"court-scheduler/internal/domain/reservation"
	"court-scheduler/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	CourtID         uuid.UUID       `json:"courtId" binding:"required"`
	SubjectID       uuid.UUID       `json:"subjectId" binding:"required"`
	SubjectKind     string          `json:"subjectKind,omitempty"`
	TeamSize        int             `json:"teamSize,omitempty"`
	Date            string          `json:"date" binding:"required"`
	StartTime       string          `json:"startTime" binding:"required"`
	Notes           string          `json:"notes,omitempty"`
	ContactEmail    string          `json:"contactEmail,omitempty" binding:"omitempty,email"`
	CourtSnapshot   json.RawMessage `json:"courtSnapshot,omitempty" swaggertype:"object"`
	CompanySnapshot json.RawMessage `json:"companySnapshot,omitempty" swaggertype:"object"`
	SubjectSnapshot json.RawMessage `json:"subjectSnapshot,omitempty" swaggertype:"object"`
}

func (r CreateReservationRequest) ToInput() (commands.CreateReservationInput, error) {
	date, err := calendar.ParseDate(r.Date)
	if err != nil {
		return commands.CreateReservationInput{}, err
	}
	start, err := calendar.ParseClockTime(r.StartTime)
	if err != nil {
		return commands.CreateReservationInput{}, err
	}
	return commands.CreateReservationInput{
		CourtID:      r.CourtID,
		SubjectID:    r.SubjectID,
		SubjectKind:  r.SubjectKind,
		TeamSize:     r.TeamSize,
		Date:         date,
		StartTime:    start,
		Notes:        r.Notes,
		ContactEmail: r.ContactEmail,
		Snapshots: reservation.Snapshots{
			Court:   r.CourtSnapshot,
			Company: r.CompanySnapshot,
			Subject: r.SubjectSnapshot,
		},
	}, nil
}

type CancelReservationRequest struct {
	Reason string `json:"reason"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason,omitempty"`
}
