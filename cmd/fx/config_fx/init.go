package config_fx

import (
	"go.uber.org/fx"

	"wanderplan/internal/config"
	"wanderplan/internal/services"
)

var Module = fx.Provide(
	config.Load,
	ProvideGenerationSettings,
)

func ProvideGenerationSettings(cfg config.AppConfig) services.GenerationSettings {
	return cfg.GenerationSettings()
}
