package api

import (
	"net/http"

	resdto "court-scheduler/internal/handler/dto/response"
	"court-scheduler/internal/handler/httperr"
	"court-scheduler/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AvailabilityHandler struct {
	q queries.AvailabilityQueries
}

func NewAvailabilityHandler(q queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{q: q}
}

// @Summary Court availability
// @Description Slots of one court day with price and availability
// @Tags availability
// @Produce json
// @Param courtId path string true "Court ID"
// @Param date query string true "Day (YYYY-MM-DD)"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /courts/{courtId}/availability [get]
func (h *AvailabilityHandler) Get(c *gin.Context) {
	courtID, err := uuid.Parse(c.Param("courtId"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid court id", nil)
		return
	}
	date, ok := requiredDate(c)
	if !ok {
		return
	}

	view, err := h.q.GetAvailability(c.Request.Context(), courtID, date)
	if err != nil {
		httperr.Respond(c, err, "Failed to load availability")
		return
	}
	resp, err := resdto.FromAvailabilityView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to build response", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}
