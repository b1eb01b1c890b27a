package response

import (
	"encoding/json"
	"time"

	"court-scheduler/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationResponse struct {
	ID                 uuid.UUID       `json:"id"`
	CourtID            uuid.UUID       `json:"courtId"`
	SubjectID          uuid.UUID       `json:"subjectId"`
	SubjectKind        string          `json:"subjectKind"`
	TeamSize           int             `json:"teamSize"`
	Date               string          `json:"date"`
	StartTime          string          `json:"startTime"`
	EndTime            string          `json:"endTime"`
	Duration           int             `json:"duration"`
	Status             string          `json:"status"`
	PriceCents         int64           `json:"priceCents"`
	PricePerHourCents  int64           `json:"pricePerHourCents"`
	Notes              *string         `json:"notes,omitempty"`
	CancellationReason *string         `json:"cancellationReason,omitempty"`
	ContactEmail       *string         `json:"contactEmail,omitempty"`
	CourtSnapshot      json.RawMessage `json:"courtSnapshot,omitempty" swaggertype:"object"`
	CompanySnapshot    json.RawMessage `json:"companySnapshot,omitempty" swaggertype:"object"`
	SubjectSnapshot    json.RawMessage `json:"subjectSnapshot,omitempty" swaggertype:"object"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
	CancelledAt        *time.Time      `json:"cancelledAt,omitempty"`
}

type ReservationListResponse struct {
	Reservations []*ReservationResponse `json:"reservations"`
	NextCursor   *string                `json:"nextCursor,omitempty"`
}

func FromReservationView(v *queries.ReservationView) *ReservationResponse {
	return &ReservationResponse{
		ID:                 v.ID,
		CourtID:            v.CourtID,
		SubjectID:          v.SubjectID,
		SubjectKind:        v.SubjectKind,
		TeamSize:           v.TeamSize,
		Date:               v.Date,
		StartTime:          v.StartTime,
		EndTime:            v.EndTime,
		Duration:           v.Duration,
		Status:             v.Status,
		PriceCents:         v.PriceCents,
		PricePerHourCents:  v.PricePerHourCents,
		Notes:              v.Notes,
		CancellationReason: v.CancellationReason,
		ContactEmail:       v.ContactEmail,
		CourtSnapshot:      v.CourtSnapshot,
		CompanySnapshot:    v.CompanySnapshot,
		SubjectSnapshot:    v.SubjectSnapshot,
		CreatedAt:          v.CreatedAt,
		UpdatedAt:          v.UpdatedAt,
		CancelledAt:        v.CancelledAt,
	}
}

func FromReservationViews(views []*queries.ReservationView, next *queries.Cursor) *ReservationListResponse {
	items := make([]*ReservationResponse, len(views))
	for i, v := range views {
		items[i] = FromReservationView(v)
	}
	resp := &ReservationListResponse{Reservations: items}
	if next != nil {
		resp.NextCursor = &next.After
	}
	return resp
}
