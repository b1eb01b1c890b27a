//go:build unit

package api_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"court-scheduler/internal/domain/auth"
	"court-scheduler/internal/domain/calendar"
	"court-scheduler/internal/handler/api"
	reqdto "court-scheduler/internal/handler/dto/request"
	resdto "court-scheduler/internal/handler/dto/response"
	"court-scheduler/internal/usecase/queries"
	"court-scheduler/tests/common/builder"
	"court-scheduler/tests/common/httptest"
	"court-scheduler/tests/common/testutil"
	commandsmock "court-scheduler/tests/mock/commands"
	queriesmock "court-scheduler/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CalendarHandlerSuite struct {
	suite.Suite
	cmds    *commandsmock.MockCalendarCommands
	q       *queriesmock.MockCalendarQueries
	router  *gin.Engine
	token   string
	courtID uuid.UUID
	path    string
}

func TestCalendarHandlerSuite(t *testing.T) {
	suite.Run(t, new(CalendarHandlerSuite))
}

func (s *CalendarHandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.cmds = commandsmock.NewMockCalendarCommands(ctrl)
	s.q = queriesmock.NewMockCalendarQueries(ctrl)
	ta := newTestAuth()
	s.token, _ = ta.jwt.NewToken(s.T(), auth.RoleOperator)
	s.courtID = uuid.New()
	s.path = fmt.Sprintf("/api/courts/%s/calendar", s.courtID)

	h := api.NewCalendarHandler(s.cmds, s.q)
	s.router = newEngine()
	s.router.GET("/api/courts/:courtId/calendar", h.Get)
	g := s.router.Group("/api", ta.mw.RequireAuth())
	g.POST("/courts/:courtId/calendar", h.Ensure)
	g.PATCH("/courts/:courtId/calendar", h.Update)
	g.POST("/courts/:courtId/calendar/blocked-dates", h.BlockDate)
	g.DELETE("/courts/:courtId/calendar/blocked-dates/:date", h.UnblockDate)
}

func (s *CalendarHandlerSuite) view() *queries.CalendarView {
	weekly := make(map[string]queries.DayHoursView, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		weekly[calendar.WeekdayKey(d)] = queries.DayHoursView{IsOpen: true, Start: "08:00", End: "22:00"}
	}
	advance := int64(calendar.DefaultAdvanceBookingPriceCents)
	return &queries.CalendarView{
		CourtID:       s.courtID,
		CompanyID:     uuid.New(),
		Weekly:        weekly,
		MatchDuration: 90,
		Pricing: queries.PricingView{
			BasePricePerHourCents:    calendar.DefaultPricePerHourCents,
			AdvanceBookingPriceCents: &advance,
			AdvanceThresholdDays:     30,
		},
		AdvanceBookingDays:  30,
		Blocked:             []queries.BlockedDateView{{Date: "2025-06-10", Reason: "Tournament"}},
		Cancellation:        queries.CancellationView{AllowCancellation: true, DeadlineHours: 24},
		AutoConfirmBookings: true,
		CreatedAt:           builder.FixedNow,
		UpdatedAt:           builder.FixedNow,
	}
}

func (s *CalendarHandlerSuite) TestGet() {
	s.Run("copies the view", func() {
		s.q.EXPECT().Get(gomock.Any(), s.courtID).Return(s.view(), nil).Times(1)

		var resp resdto.CalendarResponse
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, s.path, nil, "")
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Equal(s.courtID, resp.CourtID)
		s.Len(resp.Weekly, 7)
		s.Equal(resdto.DayHoursResponse{IsOpen: true, Start: "08:00", End: "22:00"}, resp.Weekly["friday"])
		s.Equal(int64(calendar.DefaultPricePerHourCents), resp.Pricing.BasePricePerHourCents)
		s.Equal([]resdto.BlockedDateResponse{{Date: "2025-06-10", Reason: "Tournament"}}, resp.Blocked)
		s.Equal(24, resp.Cancellation.DeadlineHours)
	})

	s.Run("not found", func() {
		s.q.EXPECT().Get(gomock.Any(), s.courtID).Return(nil, calendar.ErrNotFound).Times(1)
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, s.path, nil, "")
		httptest.AssertErrorRule(s.T(), w, http.StatusNotFound, "CALENDAR_NOT_FOUND")
	})

	s.Run("bad court id", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/courts/x/calendar", nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid court id")
	})
}

func (s *CalendarHandlerSuite) TestEnsure() {
	s.Run("created", func() {
		companyID := uuid.New()
		s.cmds.EXPECT().EnsureCalendar(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, meta calendar.CourtMeta) (bool, error) {
				s.Equal(s.courtID, meta.CourtID)
				s.Equal(companyID, meta.CompanyID)
				s.Require().NotNil(meta.PricePerHourCents)
				s.Equal(int64(1800), *meta.PricePerHourCents)
				return true, nil
			}).Times(1)
		s.q.EXPECT().Get(gomock.Any(), s.courtID).Return(s.view(), nil).Times(1)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, s.path,
			map[string]any{"companyId": companyID, "pricePerHourCents": 1800}, s.token)
		s.Equal(http.StatusCreated, w.Code, w.Body.String())
	})

	s.Run("existing", func() {
		s.cmds.EXPECT().EnsureCalendar(gomock.Any(), calendar.CourtMeta{CourtID: s.courtID}).Return(false, nil).Times(1)
		s.q.EXPECT().Get(gomock.Any(), s.courtID).Return(s.view(), nil).Times(1)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, s.path, nil, s.token)
		s.Equal(http.StatusOK, w.Code, w.Body.String())
	})

	s.Run("negative price", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, s.path,
			map[string]any{"pricePerHourCents": -1}, s.token)
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid request")
	})
}

func (s *CalendarHandlerSuite) TestUpdate() {
	s.Run("maps the patch", func() {
		s.cmds.EXPECT().UpdateCalendar(gomock.Any(), s.courtID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, p calendar.Patch) error {
				s.Require().NotNil(p.MatchDuration)
				s.Equal(60, *p.MatchDuration)
				s.Equal(calendar.DayHours{}, p.WorkingHours[time.Sunday])
				s.Equal(calendar.DayHours{
					IsOpen: true,
					Start:  calendar.MustParseClockTime("10:00"),
					End:    calendar.ClockTime(calendar.MinutesPerDay),
				}, p.WorkingHours[time.Saturday])
				s.True(p.ClearAdvanceBookingPrice)
				s.Require().NotNil(p.AllowCancellation)
				s.False(*p.AllowCancellation)
				s.Nil(p.BlockedDates)
				return nil
			}).Times(1)
		s.q.EXPECT().Get(gomock.Any(), s.courtID).Return(s.view(), nil).Times(1)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, s.path, map[string]any{
			"matchDuration": 60,
			"workingHours": map[string]any{
				"sunday":   map[string]any{"isOpen": false},
				"saturday": map[string]any{"isOpen": true, "start": "10:00", "end": "24:00"},
			},
			"pricing":            map[string]any{"clearAdvanceBookingPrice": true},
			"cancellationPolicy": map[string]any{"allowCancellation": false},
		}, s.token)
		s.Equal(http.StatusOK, w.Code, w.Body.String())
	})

	s.Run("unknown weekday never reaches the use case", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, s.path, map[string]any{
			"workingHours": map[string]any{"someday": map[string]any{"isOpen": false}},
		}, s.token)
		httptest.AssertErrorRule(s.T(), w, http.StatusBadRequest, "INVALID_CONFIG")
	})

	monday := reqdto.UpdateCalendarRequest{
		WorkingHours: map[string]reqdto.DayHoursRequest{"monday": {IsOpen: true, Start: "08:00", End: "22:00"}},
	}
	for _, tc := range []struct {
		name string
		mut  func(map[string]any)
	}{
		{"bad opening time", testutil.Field("workingHours.monday.start", "8")},
		{"bad closing time", testutil.Field("workingHours.monday.end", "25:00")},
	} {
		s.Run(tc.name, func() {
			w := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, s.path, testutil.DtoMap(s.T(), monday, tc.mut), s.token)
			httptest.AssertErrorRule(s.T(), w, http.StatusBadRequest, "INVALID_TIME")
		})
	}

	s.Run("invalid configuration", func() {
		s.cmds.EXPECT().UpdateCalendar(gomock.Any(), s.courtID, gomock.Any()).
			Return(calendar.ErrInvalidConfig.With("match duration must be positive")).Times(1)
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, s.path, map[string]any{"matchDuration": 0}, s.token)
		httptest.AssertErrorRule(s.T(), w, http.StatusBadRequest, "INVALID_CONFIG")
	})
}

func (s *CalendarHandlerSuite) TestBlockedDates() {
	date := calendar.MustParseDate("2025-06-10")

	s.Run("block", func() {
		s.cmds.EXPECT().BlockDate(gomock.Any(), s.courtID, date, "Tournament").Return(nil).Times(1)
		s.q.EXPECT().Get(gomock.Any(), s.courtID).Return(s.view(), nil).Times(1)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, s.path+"/blocked-dates",
			map[string]string{"date": "2025-06-10", "reason": "Tournament"}, s.token)
		s.Equal(http.StatusOK, w.Code, w.Body.String())
	})

	s.Run("block requires a date", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, s.path+"/blocked-dates",
			map[string]string{"reason": "Tournament"}, s.token)
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid request")
	})

	s.Run("unblock", func() {
		s.cmds.EXPECT().UnblockDate(gomock.Any(), s.courtID, date).Return(nil).Times(1)
		s.q.EXPECT().Get(gomock.Any(), s.courtID).Return(s.view(), nil).Times(1)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, s.path+"/blocked-dates/2025-06-10", nil, s.token)
		s.Equal(http.StatusOK, w.Code, w.Body.String())
	})

	s.Run("unblock with a bad date", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, s.path+"/blocked-dates/tomorrow", nil, s.token)
		httptest.AssertErrorRule(s.T(), w, http.StatusBadRequest, "INVALID_DATE")
	})
}
