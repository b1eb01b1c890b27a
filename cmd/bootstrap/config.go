package bootstrap

import (
	"court-scheduler/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		LoadValidatedConfig,
	),
)

// LoadValidatedConfig fails startup on settings that would otherwise only
// surface on the first booking or the first scheduled run.
func LoadValidatedConfig() (config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return config.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
