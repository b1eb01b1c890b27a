//go:build unit

package api_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"court-scheduler/internal/domain/auth"
	"court-scheduler/internal/domain/calendar"
	"court-scheduler/internal/domain/reservation"
	"court-scheduler/internal/handler/api"
	reqdto "court-scheduler/internal/handler/dto/request"
	resdto "court-scheduler/internal/handler/dto/response"
	"court-scheduler/internal/usecase/commands"
	"court-scheduler/internal/usecase/queries"
	"court-scheduler/tests/common/httptest"
	"court-scheduler/tests/common/testutil"
	commandsmock "court-scheduler/tests/mock/commands"
	queriesmock "court-scheduler/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReservationHandlerSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	cmds    *commandsmock.MockReservationCommands
	q       *queriesmock.MockReservationQueries
	router  *gin.Engine
	auth    testAuth
	token   string
	userID  uuid.UUID
	courtID uuid.UUID
}

func TestReservationHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReservationHandlerSuite))
}

func (s *ReservationHandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.cmds = commandsmock.NewMockReservationCommands(s.ctrl)
	s.q = queriesmock.NewMockReservationQueries(s.ctrl)
	s.auth = newTestAuth()
	s.token, s.userID = s.auth.jwt.NewToken(s.T(), auth.RoleViewer)
	s.courtID = uuid.New()

	h := api.NewReservationHandler(s.cmds, s.q)
	s.router = newEngine()
	g := s.router.Group("/api", s.auth.mw.RequireAuth())
	g.POST("/reservations", h.Create)
	g.GET("/reservations/:id", h.Get)
	g.POST("/reservations/:id/cancel", h.Cancel)
	g.PUT("/reservations/:id/status", h.UpdateStatus)
	g.GET("/subjects/:subjectId/reservations", h.ListBySubject)
	g.GET("/courts/:courtId/reservations", h.ListByCourt)
}

func (s *ReservationHandlerSuite) body() map[string]any {
	return map[string]any{
		"courtId":   s.courtID,
		"subjectId": uuid.New(),
		"date":      "2025-06-03",
		"startTime": "14:00",
	}
}

func (s *ReservationHandlerSuite) TestCreate() {
	s.Run("created", func() {
		view := reservationView("confirmed")
		s.cmds.EXPECT().CreateReservation(gomock.Any(), gomock.Any(), s.userID, (*uuid.UUID)(nil)).
			DoAndReturn(func(_ context.Context, in commands.CreateReservationInput, _ uuid.UUID, _ *uuid.UUID) (*commands.CreateReservationResult, error) {
				s.Equal(s.courtID, in.CourtID)
				s.Equal("2025-06-03", in.Date.String())
				s.Equal(calendar.MustParseClockTime("14:00"), in.StartTime)
				return &commands.CreateReservationResult{ReservationID: view.ID}, nil
			}).Times(1)
		s.q.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil).Times(1)

		var resp resdto.ReservationResponse
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/reservations", s.body(), s.token)
		httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &resp)
		httptest.AssertHeaders(s.T(), w, map[string]string{"Location": "/api/reservations/" + view.ID.String()})
		s.Equal(view.ID, resp.ID)
		s.Equal(int64(2250), resp.PriceCents)
	})

	s.Run("replay answers 200", func() {
		view := reservationView("confirmed")
		key := uuid.New()
		s.cmds.EXPECT().CreateReservation(gomock.Any(), gomock.Any(), s.userID, &key).
			Return(&commands.CreateReservationResult{ReservationID: view.ID, IsReplayed: true}, nil).Times(1)
		s.q.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil).Times(1)

		w := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, "/api/reservations", s.body(),
			map[string]string{"Idempotency-Key": key.String()}, s.token)
		s.Equal(http.StatusOK, w.Code, w.Body.String())
	})

	s.Run("malformed idempotency key", func() {
		w := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, "/api/reservations", s.body(),
			map[string]string{"Idempotency-Key": "abc"}, s.token)
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Idempotency-Key")
	})

	base := reqdto.CreateReservationRequest{
		CourtID:   s.courtID,
		SubjectID: uuid.New(),
		Date:      "2025-06-03",
		StartTime: "14:00",
	}
	for _, tc := range []struct {
		name string
		mut  func(map[string]any)
	}{
		{"missing court", testutil.Field("courtId", nil)},
		{"missing date", testutil.Field("date", nil)},
		{"missing start", testutil.Field("startTime", nil)},
		{"bad contact email", testutil.Field("contactEmail", "not-an-email")},
		{"court is not a uuid", testutil.Field("courtId", "court-1")},
	} {
		s.Run(tc.name, func() {
			w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/reservations", testutil.DtoMap(s.T(), base, tc.mut), s.token)
			httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid request")
		})
	}

	s.Run("malformed json", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/reservations", `{"courtId":`, s.token)
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid request")
	})

	s.Run("malformed date", func() {
		body := s.body()
		body["date"] = "03/06/2025"
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/reservations", body, s.token)
		httptest.AssertErrorRule(s.T(), w, http.StatusBadRequest, "INVALID_DATE")
	})

	s.Run("no token", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/reservations", s.body(), "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "Access token required")
	})
}

func (s *ReservationHandlerSuite) TestCreateErrorMapping() {
	cases := []struct {
		err    error
		status int
		rule   string
	}{
		{reservation.ErrSlotConflict.With("14:00-15:30"), http.StatusConflict, "SLOT_TAKEN"},
		{calendar.ErrNotFound, http.StatusNotFound, "CALENDAR_NOT_FOUND"},
		{reservation.ErrDateBlocked.With("Tournament"), http.StatusBadRequest, "DATE_BLOCKED"},
		{commands.ErrIdempotencyKeyReused, http.StatusConflict, "IDEMPOTENCY_KEY_REUSED"},
		{errors.New("connection reset"), http.StatusInternalServerError, ""},
	}
	for _, tc := range cases {
		s.Run(fmt.Sprintf("%d %s", tc.status, tc.rule), func() {
			s.cmds.EXPECT().CreateReservation(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, tc.err).Times(1)

			w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/reservations", s.body(), s.token)
			httptest.AssertErrorRule(s.T(), w, tc.status, tc.rule)
			if tc.status == http.StatusInternalServerError {
				s.NotContains(w.Body.String(), "connection reset")
			}
		})
	}
}

func (s *ReservationHandlerSuite) TestGet() {
	s.Run("found", func() {
		view := reservationView("pending")
		s.q.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil).Times(1)

		var resp resdto.ReservationResponse
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/reservations/"+view.ID.String(), nil, s.token)
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Equal("pending", resp.Status)
	})

	s.Run("not found", func() {
		s.q.EXPECT().GetByID(gomock.Any(), gomock.Any()).Return(nil, reservation.ErrNotFound).Times(1)
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/reservations/"+uuid.NewString(), nil, s.token)
		httptest.AssertErrorRule(s.T(), w, http.StatusNotFound, "RESERVATION_NOT_FOUND")
	})

	s.Run("bad id", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/reservations/42", nil, s.token)
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid reservation id")
	})
}

func (s *ReservationHandlerSuite) TestCancel() {
	s.Run("with reason", func() {
		view := reservationView("cancelled")
		s.cmds.EXPECT().CancelReservation(gomock.Any(), view.ID, "rain").Return(nil).Times(1)
		s.q.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil).Times(1)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost,
			fmt.Sprintf("/api/reservations/%s/cancel", view.ID), map[string]string{"reason": "rain"}, s.token)
		s.Equal(http.StatusOK, w.Code, w.Body.String())
	})

	s.Run("body is optional", func() {
		view := reservationView("cancelled")
		s.cmds.EXPECT().CancelReservation(gomock.Any(), view.ID, "").Return(nil).Times(1)
		s.q.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil).Times(1)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost,
			fmt.Sprintf("/api/reservations/%s/cancel", view.ID), nil, s.token)
		s.Equal(http.StatusOK, w.Code, w.Body.String())
	})

	s.Run("reason in a chunked body", func() {
		view := reservationView("cancelled")
		s.cmds.EXPECT().CancelReservation(gomock.Any(), view.ID, "court flooded").Return(nil).Times(1)
		s.q.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil).Times(1)

		w := httptest.PerformStreamedRequest(s.T(), s.router, http.MethodPost,
			fmt.Sprintf("/api/reservations/%s/cancel", view.ID), map[string]string{"reason": "court flooded"}, s.token)
		s.Equal(http.StatusOK, w.Code, w.Body.String())
	})

	s.Run("empty chunked body", func() {
		view := reservationView("cancelled")
		s.cmds.EXPECT().CancelReservation(gomock.Any(), view.ID, "").Return(nil).Times(1)
		s.q.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil).Times(1)

		w := httptest.PerformStreamedRequest(s.T(), s.router, http.MethodPost,
			fmt.Sprintf("/api/reservations/%s/cancel", view.ID), "", s.token)
		s.Equal(http.StatusOK, w.Code, w.Body.String())
	})

	s.Run("malformed chunked body", func() {
		w := httptest.PerformStreamedRequest(s.T(), s.router, http.MethodPost,
			fmt.Sprintf("/api/reservations/%s/cancel", uuid.New()), "{reason", s.token)
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid request")
	})

	for _, tc := range []struct {
		err    error
		status int
		rule   string
	}{
		{reservation.ErrDeadlinePassed, http.StatusForbidden, "CANCELLATION_DEADLINE_PASSED"},
		{reservation.ErrCancellationBlocked, http.StatusForbidden, "CANCELLATION_NOT_ALLOWED"},
		{reservation.ErrInvalidTransition.With("completed -> cancelled"), http.StatusUnprocessableEntity, "INVALID_TRANSITION"},
		{reservation.ErrNotFound, http.StatusNotFound, "RESERVATION_NOT_FOUND"},
	} {
		s.Run(tc.rule, func() {
			s.cmds.EXPECT().CancelReservation(gomock.Any(), gomock.Any(), gomock.Any()).Return(tc.err).Times(1)
			w := httptest.PerformRequest(s.T(), s.router, http.MethodPost,
				fmt.Sprintf("/api/reservations/%s/cancel", uuid.New()), nil, s.token)
			httptest.AssertErrorRule(s.T(), w, tc.status, tc.rule)
		})
	}
}

func (s *ReservationHandlerSuite) TestUpdateStatus() {
	s.Run("applies the change", func() {
		view := reservationView("completed")
		s.cmds.EXPECT().UpdateStatus(gomock.Any(), view.ID, "completed", "").Return(nil).Times(1)
		s.q.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil).Times(1)

		var resp resdto.ReservationResponse
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPut,
			fmt.Sprintf("/api/reservations/%s/status", view.ID), map[string]string{"status": "completed"}, s.token)
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Equal("completed", resp.Status)
	})

	s.Run("status is required", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPut,
			fmt.Sprintf("/api/reservations/%s/status", uuid.New()), map[string]string{}, s.token)
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid request")
	})

	s.Run("unknown status", func() {
		s.cmds.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), "archived", "").Return(reservation.ErrInvalidStatus).Times(1)
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPut,
			fmt.Sprintf("/api/reservations/%s/status", uuid.New()), map[string]string{"status": "archived"}, s.token)
		httptest.AssertErrorRule(s.T(), w, http.StatusBadRequest, "INVALID_STATUS")
	})
}

func (s *ReservationHandlerSuite) TestListBySubject() {
	subjectID := uuid.New()

	s.Run("paged", func() {
		next := &queries.Cursor{After: "next-page"}
		s.q.EXPECT().ListBySubject(gomock.Any(), subjectID, (*calendar.Date)(nil), &queries.Cursor{After: "abc"}, 5).
			Return([]*queries.ReservationView{reservationView("confirmed")}, next, nil).Times(1)

		var resp resdto.ReservationListResponse
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			fmt.Sprintf("/api/subjects/%s/reservations?limit=5&after=abc", subjectID), nil, s.token)
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Len(resp.Reservations, 1)
		s.Require().NotNil(resp.NextCursor)
		s.Equal("next-page", *resp.NextCursor)
	})

	s.Run("by date", func() {
		date := calendar.MustParseDate("2025-06-03")
		s.q.EXPECT().ListBySubject(gomock.Any(), subjectID, &date, (*queries.Cursor)(nil), queries.DefaultListLimit).
			Return(nil, nil, nil).Times(1)

		var resp resdto.ReservationListResponse
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			fmt.Sprintf("/api/subjects/%s/reservations?date=2025-06-03", subjectID), nil, s.token)
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.NotNil(resp.Reservations)
		s.Empty(resp.Reservations)
	})

	s.Run("bad cursor", func() {
		s.q.EXPECT().ListBySubject(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, nil, queries.ErrInvalidCursor).Times(1)
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			fmt.Sprintf("/api/subjects/%s/reservations?after=zzz", subjectID), nil, s.token)
		httptest.AssertErrorRule(s.T(), w, http.StatusBadRequest, "INVALID_CURSOR")
	})
}

func (s *ReservationHandlerSuite) TestListByCourt() {
	s.Run("with status filter", func() {
		date := calendar.MustParseDate("2025-06-03")
		status := "pending"
		s.q.EXPECT().ListByCourtDate(gomock.Any(), s.courtID, date, &status).
			Return([]*queries.ReservationView{reservationView("pending"), reservationView("pending")}, nil).Times(1)

		var resp resdto.ReservationListResponse
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			fmt.Sprintf("/api/courts/%s/reservations?date=2025-06-03&status=pending", s.courtID), nil, s.token)
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Len(resp.Reservations, 2)
		s.Nil(resp.NextCursor)
	})

	s.Run("date is required", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			fmt.Sprintf("/api/courts/%s/reservations", s.courtID), nil, s.token)
		httptest.AssertErrorRule(s.T(), w, http.StatusBadRequest, "INVALID_DATE")
	})
}
