package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"court-scheduler/internal/domain/calendar"
	reqdto "court-scheduler/internal/handler/dto/request"
	resdto "court-scheduler/internal/handler/dto/response"
	"court-scheduler/internal/handler/httperr"
	"court-scheduler/internal/handler/middleware"
	"court-scheduler/internal/usecase/commands"
	"court-scheduler/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const idempotencyHeader = "Idempotency-Key"

type ReservationHandler struct {
	cmds commands.ReservationCommands
	q    queries.ReservationQueries
}

func NewReservationHandler(cmds commands.ReservationCommands, q queries.ReservationQueries) *ReservationHandler {
	return &ReservationHandler{cmds: cmds, q: q}
}

// @Summary Create reservation
// @Description Book a slot on a court. A repeated request with the same Idempotency-Key returns the original reservation.
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string false "Idempotency key (UUID)"
// @Param request body reqdto.CreateReservationRequest true "Reservation request"
// @Success 201 {object} resdto.ReservationResponse
// @Success 200 {object} resdto.ReservationResponse "Replayed"
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /reservations [post]
func (h *ReservationHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
		return
	}

	var idempotencyKey *uuid.UUID
	if raw := c.GetHeader(idempotencyHeader); raw != "" {
		key, err := uuid.Parse(raw)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Idempotency-Key must be a UUID", nil)
			return
		}
		idempotencyKey = &key
	}

	var req reqdto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	in, err := req.ToInput()
	if err != nil {
		httperr.Respond(c, err, "Invalid request")
		return
	}

	result, err := h.cmds.CreateReservation(c.Request.Context(), in, userID, idempotencyKey)
	if err != nil {
		httperr.Respond(c, err, "Create reservation failed")
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), result.ReservationID)
	if err != nil {
		slog.Error("reload created reservation failed", "reservation_id", result.ReservationID, "error", err)
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load reservation", nil)
		return
	}

	status := http.StatusCreated
	if result.IsReplayed {
		status = http.StatusOK
	}
	c.Header("Location", "/api/reservations/"+view.ID.String())
	c.JSON(status, resdto.FromReservationView(view))
}

// @Summary Get reservation
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /reservations/{id} [get]
func (h *ReservationHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid reservation id", nil)
		return
	}
	h.respondWith(c, id)
}

// @Summary Cancel reservation
// @Description Cancel on behalf of the booker, subject to the court's cancellation policy
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body reqdto.CancelReservationRequest false "Cancellation reason"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /reservations/{id}/cancel [post]
func (h *ReservationHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid reservation id", nil)
		return
	}
	// the body is optional; a chunked upload reports ContentLength -1
	var req reqdto.CancelReservationRequest
	if c.Request.Body != nil && c.Request.Body != http.NoBody {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
			return
		}
	}
	if err := h.cmds.CancelReservation(c.Request.Context(), id, req.Reason); err != nil {
		httperr.Respond(c, err, "Cancel reservation failed")
		return
	}
	h.respondWith(c, id)
}

// @Summary Update reservation status
// @Description Operator status change; enforces the status state machine only
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body reqdto.UpdateStatusRequest true "New status"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /reservations/{id}/status [put]
func (h *ReservationHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid reservation id", nil)
		return
	}
	var req reqdto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	if err := h.cmds.UpdateStatus(c.Request.Context(), id, req.Status, req.Reason); err != nil {
		httperr.Respond(c, err, "Update status failed")
		return
	}
	h.respondWith(c, id)
}

// @Summary List subject reservations
// @Description Bookings of one player or team. Without date the list is paginated newest first.
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param subjectId path string true "Subject ID"
// @Param date query string false "Day (YYYY-MM-DD)"
// @Param limit query int false "Max items (default 20)"
// @Param after query string false "Cursor for keyset pagination"
// @Success 200 {object} resdto.ReservationListResponse
// @Failure 400 {object} httperr.Response
// @Router /subjects/{subjectId}/reservations [get]
func (h *ReservationHandler) ListBySubject(c *gin.Context) {
	subjectID, err := uuid.Parse(c.Param("subjectId"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid subject id", nil)
		return
	}
	date, ok := optionalDate(c)
	if !ok {
		return
	}
	limit := queries.DefaultListLimit
	if v := c.Query("limit"); v != "" {
		if iv, e := strconv.Atoi(v); e == nil {
			limit = queries.ValidateLimit(iv)
		}
	}
	var cursor *queries.Cursor
	if after := c.Query("after"); after != "" {
		cursor = &queries.Cursor{After: after}
	}

	items, next, err := h.q.ListBySubject(c.Request.Context(), subjectID, date, cursor, limit)
	if err != nil {
		httperr.Respond(c, err, "Internal error")
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationViews(items, next))
}

// @Summary List court reservations
// @Description Owner view of one court day, optionally filtered by status
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param courtId path string true "Court ID"
// @Param date query string true "Day (YYYY-MM-DD)"
// @Param status query string false "pending, confirmed, cancelled or completed"
// @Success 200 {object} resdto.ReservationListResponse
// @Failure 400 {object} httperr.Response
// @Router /courts/{courtId}/reservations [get]
func (h *ReservationHandler) ListByCourt(c *gin.Context) {
	courtID, err := uuid.Parse(c.Param("courtId"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid court id", nil)
		return
	}
	date, ok := requiredDate(c)
	if !ok {
		return
	}
	var status *string
	if v := c.Query("status"); v != "" {
		status = &v
	}

	items, err := h.q.ListByCourtDate(c.Request.Context(), courtID, date, status)
	if err != nil {
		httperr.Respond(c, err, "Internal error")
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationViews(items, nil))
}

func (h *ReservationHandler) respondWith(c *gin.Context, id uuid.UUID) {
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err, "Failed to load reservation")
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

func requiredDate(c *gin.Context) (calendar.Date, bool) {
	raw := c.Query("date")
	if raw == "" {
		httperr.AbortWithError(c, http.StatusBadRequest, calendar.ErrInvalidDate, "date query parameter is required", nil)
		return calendar.Date{}, false
	}
	date, err := calendar.ParseDate(raw)
	if err != nil {
		httperr.Respond(c, err, "Invalid date")
		return calendar.Date{}, false
	}
	return date, true
}

func optionalDate(c *gin.Context) (*calendar.Date, bool) {
	if c.Query("date") == "" {
		return nil, true
	}
	date, ok := requiredDate(c)
	if !ok {
		return nil, false
	}
	return &date, true
}
