package handler

import (
	"log/slog"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"court-scheduler/internal/domain/auth"
	"court-scheduler/internal/handler/api"
	"court-scheduler/internal/handler/middleware"
	"court-scheduler/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	// Mw runs after the group middleware, e.g. a role gate.
	Mw []gin.HandlerFunc
}

type Handlers struct {
	Availability *api.AvailabilityHandler
	Reservation  *api.ReservationHandler
	Calendar     *api.CalendarHandler
}

// NewRouter wires middleware and routes. rdb may be nil, which disables rate limiting.
func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers, authMiddleware *middleware.AuthMiddleware, rdb *redis.Client) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, h, authMiddleware, middleware.NewRateLimiter(cfg.RateLimit, rdb))
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.RequestLogger(slog.Default()))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware, rateLimit gin.HandlerFunc) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	operator := authMiddleware.RequireRoleAtLeast(auth.RoleOperator)

	apiGroup := engine.Group("/api")
	{
		// Rate limiting runs after authentication so callers are keyed by user id.
		public := apiGroup.Group("")
		public.Use(rateLimit)
		addRoutes(public, []route{
			{Method: http.MethodGet, Path: "/courts/:courtId/availability", Handler: h.Availability.Get},
			{Method: http.MethodGet, Path: "/courts/:courtId/calendar", Handler: h.Calendar.Get},
		})

		authed := apiGroup.Group("")
		authed.Use(authMiddleware.RequireAuth(), rateLimit)
		addRoutes(authed, []route{
			{Method: http.MethodPost, Path: "/reservations", Handler: h.Reservation.Create},
			{Method: http.MethodGet, Path: "/reservations/:id", Handler: h.Reservation.Get},
			{Method: http.MethodPost, Path: "/reservations/:id/cancel", Handler: h.Reservation.Cancel},
			{Method: http.MethodPut, Path: "/reservations/:id/status", Handler: h.Reservation.UpdateStatus, Mw: []gin.HandlerFunc{operator}},
			{Method: http.MethodGet, Path: "/subjects/:subjectId/reservations", Handler: h.Reservation.ListBySubject},
			{Method: http.MethodGet, Path: "/courts/:courtId/reservations", Handler: h.Reservation.ListByCourt, Mw: []gin.HandlerFunc{operator}},
			{Method: http.MethodPost, Path: "/courts/:courtId/calendar", Handler: h.Calendar.Ensure, Mw: []gin.HandlerFunc{operator}},
			{Method: http.MethodPatch, Path: "/courts/:courtId/calendar", Handler: h.Calendar.Update, Mw: []gin.HandlerFunc{operator}},
			{Method: http.MethodPost, Path: "/courts/:courtId/calendar/blocked-dates", Handler: h.Calendar.BlockDate, Mw: []gin.HandlerFunc{operator}},
			{Method: http.MethodDelete, Path: "/courts/:courtId/calendar/blocked-dates/:date", Handler: h.Calendar.UnblockDate, Mw: []gin.HandlerFunc{operator}},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

// addRoutes registers each route with its own middleware ahead of the handler.
func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		g.Handle(r.Method, r.Path, slices.Concat(r.Mw, []gin.HandlerFunc{r.Handler})...)
	}
}
