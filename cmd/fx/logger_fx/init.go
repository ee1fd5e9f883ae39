package logger_fx

import (
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"wanderplan/internal/config"
	"wanderplan/pkg/logger"
)

var Module = fx.Options(
	fx.Provide(ProvideLogger),
	fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
		return &fxevent.ZapLogger{Logger: log.Named("fx")}
	}),
)

func ProvideLogger(lc fx.Lifecycle, cfg config.AppConfig) (*zap.Logger, error) {
	log, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.StopHook(func() {
		_ = log.Sync()
	}))
	return log, nil
}
