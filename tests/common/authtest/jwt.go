//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"court-scheduler/internal/domain/auth"
	"court-scheduler/internal/pkg/config"
	"court-scheduler/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// TestSecret signs tokens in unit tests that do not load a config.
const TestSecret = "test-secret-key-for-unit-tests"

type JWTHelper struct {
	service *jwt.Service
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{service: jwt.NewService(cfg.Secret, cfg.Issuer)}
}

func (h *JWTHelper) Service() *jwt.Service {
	return h.service
}

func (h *JWTHelper) GenerateToken(t *testing.T, userID uuid.UUID, role auth.Role) string {
	t.Helper()
	token, err := h.service.GenerateToken(userID, role.String(), time.Hour)
	require.NoError(t, err)
	return token
}

// NewToken issues a token for a fresh user id and returns both.
func (h *JWTHelper) NewToken(t *testing.T, role auth.Role) (string, uuid.UUID) {
	t.Helper()
	userID := uuid.New()
	return h.GenerateToken(t, userID, role), userID
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, userID uuid.UUID, role auth.Role) string {
	t.Helper()
	token, err := h.service.GenerateToken(userID, role.String(), -time.Minute)
	require.NoError(t, err)
	return token
}
