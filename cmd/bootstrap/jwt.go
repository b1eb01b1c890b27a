package bootstrap

import (
	"log/slog"

	"court-scheduler/internal/pkg/config"
	"court-scheduler/internal/pkg/jwt"
	"court-scheduler/internal/usecase"

	"go.uber.org/fx"
)

// minSecretBytes is the HS256 key size below which brute force becomes practical.
const minSecretBytes = 32

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewJWTService,
		usecase.NewTokenValidator,
	),
)

func NewJWTService(cfg config.Config, logger *slog.Logger) *jwt.Service {
	if len(cfg.JWT.Secret) < minSecretBytes {
		logger.Warn("JWT_SECRET is shorter than recommended", "min_bytes", minSecretBytes)
	}
	if cfg.JWT.Issuer == "" {
		logger.Warn("JWT_ISSUER is empty, tokens from any issuer are accepted")
	}
	return jwt.NewService(cfg.JWT.Secret, cfg.JWT.Issuer)
}
