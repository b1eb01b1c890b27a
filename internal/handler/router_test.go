//go:build unit

package handler_test

import (
	"fmt"
	"net/http"
	"testing"

	"court-scheduler/internal/domain/auth"
	"court-scheduler/internal/handler"
	"court-scheduler/internal/handler/api"
	"court-scheduler/internal/handler/middleware"
	"court-scheduler/internal/pkg/config"
	"court-scheduler/internal/usecase"
	"court-scheduler/internal/usecase/queries"
	"court-scheduler/tests/common/authtest"
	"court-scheduler/tests/common/httptest"
	commandsmock "court-scheduler/tests/mock/commands"
	queriesmock "court-scheduler/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type routerFixture struct {
	engine       *gin.Engine
	jwt          *authtest.JWTHelper
	availability *queriesmock.MockAvailabilityQueries
	calendarQ    *queriesmock.MockCalendarQueries
	reservationQ *queriesmock.MockReservationQueries
	reservationC *commandsmock.MockReservationCommands
	calendarC    *commandsmock.MockCalendarCommands
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	cfg := config.NewTestConfig()

	f := &routerFixture{
		engine:       gin.New(),
		jwt:          authtest.NewJWTHelper(cfg.JWT),
		availability: queriesmock.NewMockAvailabilityQueries(ctrl),
		calendarQ:    queriesmock.NewMockCalendarQueries(ctrl),
		reservationQ: queriesmock.NewMockReservationQueries(ctrl),
		reservationC: commandsmock.NewMockReservationCommands(ctrl),
		calendarC:    commandsmock.NewMockCalendarCommands(ctrl),
	}
	handlers := handler.Handlers{
		Availability: api.NewAvailabilityHandler(f.availability),
		Reservation:  api.NewReservationHandler(f.reservationC, f.reservationQ),
		Calendar:     api.NewCalendarHandler(f.calendarC, f.calendarQ),
	}
	authMW := middleware.NewAuthMiddleware(usecase.NewTokenValidator(f.jwt.Service()))
	handler.NewRouter(f.engine, cfg, handlers, authMW, nil)
	return f
}

func TestRouterHealth(t *testing.T) {
	f := newRouterFixture(t)
	w := httptest.PerformRequest(t, f.engine, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestRouterPublicReads(t *testing.T) {
	f := newRouterFixture(t)
	courtID := uuid.New()

	f.availability.EXPECT().GetAvailability(gomock.Any(), courtID, gomock.Any()).
		Return(&queries.AvailabilityView{CourtID: courtID, Date: "2025-06-03"}, nil).Times(1)
	w := httptest.PerformRequest(t, f.engine, http.MethodGet, fmt.Sprintf("/api/courts/%s/availability?date=2025-06-03", courtID), nil, "")
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	f.calendarQ.EXPECT().Get(gomock.Any(), courtID).Return(&queries.CalendarView{CourtID: courtID}, nil).Times(1)
	w = httptest.PerformRequest(t, f.engine, http.MethodGet, fmt.Sprintf("/api/courts/%s/calendar", courtID), nil, "")
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestRouterAuthentication(t *testing.T) {
	f := newRouterFixture(t)
	id := uuid.New()

	routes := []struct{ method, path string }{
		{http.MethodPost, "/api/reservations"},
		{http.MethodGet, "/api/reservations/" + id.String()},
		{http.MethodPost, "/api/reservations/" + id.String() + "/cancel"},
		{http.MethodPut, "/api/reservations/" + id.String() + "/status"},
		{http.MethodGet, "/api/subjects/" + id.String() + "/reservations"},
		{http.MethodGet, "/api/courts/" + id.String() + "/reservations?date=2025-06-03"},
		{http.MethodPost, "/api/courts/" + id.String() + "/calendar"},
		{http.MethodPatch, "/api/courts/" + id.String() + "/calendar"},
		{http.MethodPost, "/api/courts/" + id.String() + "/calendar/blocked-dates"},
		{http.MethodDelete, "/api/courts/" + id.String() + "/calendar/blocked-dates/2025-06-03"},
	}
	for _, r := range routes {
		t.Run(r.method+" "+r.path, func(t *testing.T) {
			w := httptest.PerformRequest(t, f.engine, r.method, r.path, nil, "")
			httptest.AssertErrorResponse(t, w, http.StatusUnauthorized, "Access token required")
		})
	}

	t.Run("invalid token", func(t *testing.T) {
		w := httptest.PerformRequest(t, f.engine, http.MethodGet, "/api/reservations/"+id.String(), nil, "not-a-jwt")
		httptest.AssertErrorResponse(t, w, http.StatusUnauthorized, "Invalid or expired token")
	})

	t.Run("expired token", func(t *testing.T) {
		token := f.jwt.CreateExpiredToken(t, uuid.New(), auth.RoleAdmin)
		w := httptest.PerformRequest(t, f.engine, http.MethodGet, "/api/reservations/"+id.String(), nil, token)
		httptest.AssertErrorResponse(t, w, http.StatusUnauthorized, "Invalid or expired token")
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		other := authtest.NewJWTHelper(config.JWTConfig{Secret: "another-secret", Issuer: "court-scheduler-test"})
		token, _ := other.NewToken(t, auth.RoleAdmin)
		w := httptest.PerformRequest(t, f.engine, http.MethodGet, "/api/reservations/"+id.String(), nil, token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRouterOperatorRoutes(t *testing.T) {
	id := uuid.New()
	operatorOnly := []struct{ method, path string }{
		{http.MethodPut, "/api/reservations/" + id.String() + "/status"},
		{http.MethodGet, "/api/courts/" + id.String() + "/reservations?date=2025-06-03"},
		{http.MethodPost, "/api/courts/" + id.String() + "/calendar"},
		{http.MethodPatch, "/api/courts/" + id.String() + "/calendar"},
		{http.MethodPost, "/api/courts/" + id.String() + "/calendar/blocked-dates"},
		{http.MethodDelete, "/api/courts/" + id.String() + "/calendar/blocked-dates/2025-06-03"},
	}

	t.Run("viewers are forbidden", func(t *testing.T) {
		f := newRouterFixture(t)
		token, _ := f.jwt.NewToken(t, auth.RoleViewer)
		for _, r := range operatorOnly {
			w := httptest.PerformRequest(t, f.engine, r.method, r.path, nil, token)
			httptest.AssertErrorResponse(t, w, http.StatusForbidden, "Insufficient permissions")
		}
	})

	t.Run("operators and admins pass", func(t *testing.T) {
		for _, role := range []auth.Role{auth.RoleOperator, auth.RoleAdmin} {
			f := newRouterFixture(t)
			token, _ := f.jwt.NewToken(t, role)
			f.reservationQ.EXPECT().ListByCourtDate(gomock.Any(), id, gomock.Any(), (*string)(nil)).Return(nil, nil).Times(1)

			w := httptest.PerformRequest(t, f.engine, http.MethodGet, "/api/courts/"+id.String()+"/reservations?date=2025-06-03", nil, token)
			assert.Equal(t, http.StatusOK, w.Code, "%s: %s", role, w.Body.String())
		}
	})

	t.Run("viewers may book and cancel", func(t *testing.T) {
		f := newRouterFixture(t)
		token, _ := f.jwt.NewToken(t, auth.RoleViewer)
		f.reservationC.EXPECT().CancelReservation(gomock.Any(), id, "").Return(nil).Times(1)
		f.reservationQ.EXPECT().GetByID(gomock.Any(), id).Return(&queries.ReservationView{ID: id, Status: "cancelled"}, nil).Times(1)

		w := httptest.PerformRequest(t, f.engine, http.MethodPost, "/api/reservations/"+id.String()+"/cancel", nil, token)
		assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})
}
