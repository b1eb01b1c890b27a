package api

import (
	"net/http"

	"court-scheduler/internal/domain/calendar"
	reqdto "court-scheduler/internal/handler/dto/request"
	resdto "court-scheduler/internal/handler/dto/response"
	"court-scheduler/internal/handler/httperr"
	"court-scheduler/internal/usecase/commands"
	"court-scheduler/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CalendarHandler struct {
	cmds commands.CalendarCommands
	q    queries.CalendarQueries
}

func NewCalendarHandler(cmds commands.CalendarCommands, q queries.CalendarQueries) *CalendarHandler {
	return &CalendarHandler{cmds: cmds, q: q}
}

// @Summary Get court calendar
// @Tags calendars
// @Produce json
// @Param courtId path string true "Court ID"
// @Success 200 {object} resdto.CalendarResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /courts/{courtId}/calendar [get]
func (h *CalendarHandler) Get(c *gin.Context) {
	courtID, ok := courtIDParam(c)
	if !ok {
		return
	}
	h.respondWith(c, courtID, http.StatusOK)
}

// @Summary Ensure court calendar
// @Description Creates the default calendar on first call; returns the stored calendar afterwards
// @Tags calendars
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courtId path string true "Court ID"
// @Param request body reqdto.EnsureCalendarRequest false "Court metadata"
// @Success 201 {object} resdto.CalendarResponse
// @Success 200 {object} resdto.CalendarResponse "Already existed"
// @Failure 400 {object} httperr.Response
// @Router /courts/{courtId}/calendar [post]
func (h *CalendarHandler) Ensure(c *gin.Context) {
	courtID, ok := courtIDParam(c)
	if !ok {
		return
	}
	var req reqdto.EnsureCalendarRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
			return
		}
	}

	created, err := h.cmds.EnsureCalendar(c.Request.Context(), req.ToMeta(courtID))
	if err != nil {
		httperr.Respond(c, err, "Create calendar failed")
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	h.respondWith(c, courtID, status)
}

// @Summary Update court calendar
// @Description Partial update; omitted fields keep their value
// @Tags calendars
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courtId path string true "Court ID"
// @Param request body reqdto.UpdateCalendarRequest true "Calendar patch"
// @Success 200 {object} resdto.CalendarResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /courts/{courtId}/calendar [patch]
func (h *CalendarHandler) Update(c *gin.Context) {
	courtID, ok := courtIDParam(c)
	if !ok {
		return
	}
	var req reqdto.UpdateCalendarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	p, err := req.ToPatch()
	if err != nil {
		httperr.Respond(c, err, "Invalid request")
		return
	}
	if err := h.cmds.UpdateCalendar(c.Request.Context(), courtID, p); err != nil {
		httperr.Respond(c, err, "Update calendar failed")
		return
	}
	h.respondWith(c, courtID, http.StatusOK)
}

// @Summary Block a date
// @Tags calendars
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courtId path string true "Court ID"
// @Param request body reqdto.BlockedDateRequest true "Date to block"
// @Success 200 {object} resdto.CalendarResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /courts/{courtId}/calendar/blocked-dates [post]
func (h *CalendarHandler) BlockDate(c *gin.Context) {
	courtID, ok := courtIDParam(c)
	if !ok {
		return
	}
	var req reqdto.BlockedDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	blocked, err := req.ToDomain()
	if err != nil {
		httperr.Respond(c, err, "Invalid request")
		return
	}
	if err := h.cmds.BlockDate(c.Request.Context(), courtID, blocked.Date, blocked.Reason); err != nil {
		httperr.Respond(c, err, "Block date failed")
		return
	}
	h.respondWith(c, courtID, http.StatusOK)
}

// @Summary Unblock a date
// @Tags calendars
// @Produce json
// @Security BearerAuth
// @Param courtId path string true "Court ID"
// @Param date path string true "Blocked day (YYYY-MM-DD)"
// @Success 200 {object} resdto.CalendarResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /courts/{courtId}/calendar/blocked-dates/{date} [delete]
func (h *CalendarHandler) UnblockDate(c *gin.Context) {
	courtID, ok := courtIDParam(c)
	if !ok {
		return
	}
	date, err := calendar.ParseDate(c.Param("date"))
	if err != nil {
		httperr.Respond(c, err, "Invalid date")
		return
	}
	if err := h.cmds.UnblockDate(c.Request.Context(), courtID, date); err != nil {
		httperr.Respond(c, err, "Unblock date failed")
		return
	}
	h.respondWith(c, courtID, http.StatusOK)
}

func (h *CalendarHandler) respondWith(c *gin.Context, courtID uuid.UUID, status int) {
	view, err := h.q.Get(c.Request.Context(), courtID)
	if err != nil {
		httperr.Respond(c, err, "Failed to load calendar")
		return
	}
	resp, err := resdto.FromCalendarView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to build response", nil)
		return
	}
	c.JSON(status, resp)
}

func courtIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("courtId"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid court id", nil)
		return uuid.Nil, false
	}
	return id, true
}
