package ratelimit_fx

import (
	"context"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"wanderplan/internal/config"
	mem "wanderplan/pkg/memcache"
)

const (
	visitorTTL    = 10 * time.Minute
	sweepInterval = time.Minute
)

var Module = fx.Provide(ProvideVisitorStore)

// ProvideVisitorStore backs the rate limit middleware and runs a janitor that
// evicts idle clients for the lifetime of the app.
func ProvideVisitorStore(lc fx.Lifecycle, cfg config.AppConfig, log *zap.Logger) mem.VisitorStore {
	store := mem.NewVisitors(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, visitorTTL)

	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go sweep(ctx, store, log.Named("ratelimit"))
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
	return store
}

func sweep(ctx context.Context, store mem.VisitorStore, log *zap.Logger) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := store.Sweep(); n > 0 {
				log.Debug("evicted idle visitors", zap.Int("count", n))
			}
		}
	}
}
