//go:build unit

package api_test

import (
	"court-scheduler/internal/handler/middleware"
	"court-scheduler/internal/pkg/config"
	"court-scheduler/internal/usecase"
	"court-scheduler/internal/usecase/queries"
	"court-scheduler/tests/common/authtest"
	"court-scheduler/tests/common/builder"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type testAuth struct {
	jwt *authtest.JWTHelper
	mw  *middleware.AuthMiddleware
}

func newTestAuth() testAuth {
	h := authtest.NewJWTHelper(config.JWTConfig{Secret: authtest.TestSecret, Issuer: "test"})
	return testAuth{jwt: h, mw: middleware.NewAuthMiddleware(usecase.NewTokenValidator(h.Service()))}
}

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(middleware.ErrorHandler())
	return engine
}

func reservationView(status string) *queries.ReservationView {
	return &queries.ReservationView{
		ID:                uuid.New(),
		CourtID:           uuid.New(),
		SubjectID:         uuid.New(),
		SubjectKind:       "individual",
		TeamSize:          1,
		Date:              "2025-06-03",
		StartTime:         "14:00",
		EndTime:           "15:30",
		Duration:          90,
		Status:            status,
		PriceCents:        2250,
		PricePerHourCents: 1500,
		CreatedAt:         builder.FixedNow,
		UpdatedAt:         builder.FixedNow,
	}
}
