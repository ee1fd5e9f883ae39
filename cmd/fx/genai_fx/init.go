package genai_fx

import (
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"wanderplan/internal/config"
	"wanderplan/pkg/utils"
)

var Module = fx.Provide(ProvideGenerativeClient)

// ProvideGenerativeClient creates the model backend selected by LLM_PROVIDER
// and closes it when the app stops.
func ProvideGenerativeClient(lc fx.Lifecycle, cfg config.AppConfig, log *zap.Logger) (utils.GenerativeClientInterface, error) {
	log.Info("initializing generative client",
		zap.String("provider", cfg.LLM.Provider),
		zap.String("model", cfg.LLM.Model))

	client, err := utils.NewGenerativeClient(cfg.GenerativeConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", cfg.LLM.Provider, err)
	}

	lc.Append(fx.StopHook(client.Close))
	return client, nil
}
