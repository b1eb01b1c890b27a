package components

import (
	"court-scheduler/internal/handler"
	"court-scheduler/internal/handler/api"
	"court-scheduler/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAvailabilityHandler,
		api.NewReservationHandler,
		api.NewCalendarHandler,
		middleware.NewAuthMiddleware,
		func(a *api.AvailabilityHandler, r *api.ReservationHandler, c *api.CalendarHandler) handler.Handlers {
			return handler.Handlers{Availability: a, Reservation: r, Calendar: c}
		},
	),
	fx.Invoke(handler.NewRouter),
)
