//go:build e2e

package e2e

import (
	"fmt"
	"net/http"
	"time"

	"court-scheduler/internal/domain/auth"
	resdto "court-scheduler/internal/handler/dto/response"
	"court-scheduler/tests/common/httptest"

	"github.com/google/uuid"
)

// daysAhead is a schedule date relative to today in UTC.
func daysAhead(n int) string {
	return time.Now().UTC().AddDate(0, 0, n).Format("2006-01-02")
}

func (s *SharedSuite) operatorToken() string {
	token, _ := s.JWT.NewToken(s.T(), auth.RoleOperator)
	return token
}

func (s *SharedSuite) viewerToken() (string, uuid.UUID) {
	return s.JWT.NewToken(s.T(), auth.RoleViewer)
}

// createCourt sets up a court calendar with default settings and returns its id.
func (s *SharedSuite) createCourt() uuid.UUID {
	courtID := uuid.New()
	w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost,
		fmt.Sprintf("/api/courts/%s/calendar", courtID),
		map[string]any{"companyId": uuid.New()}, s.operatorToken())
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	return courtID
}

func (s *SharedSuite) reservationBody(courtID uuid.UUID, date, start string) map[string]any {
	return map[string]any{
		"courtId":   courtID,
		"subjectId": uuid.New(),
		"date":      date,
		"startTime": start,
	}
}

func (s *SharedSuite) book(courtID uuid.UUID, date, start, token string) *resdto.ReservationResponse {
	var resp resdto.ReservationResponse
	w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/reservations",
		s.reservationBody(courtID, date, start), token)
	httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &resp)
	return &resp
}
