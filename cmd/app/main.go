package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"wanderplan/cmd/fx/config_fx"
	"wanderplan/cmd/fx/genai_fx"
	"wanderplan/cmd/fx/itinerary_fx"
	"wanderplan/cmd/fx/logger_fx"
	"wanderplan/cmd/fx/ratelimit_fx"
	"wanderplan/internal/api/controllers"
	"wanderplan/internal/config"
	mem "wanderplan/pkg/memcache"
	"wanderplan/pkg/middleware"
)

func main() {
	app := fx.New(
		config_fx.Module,
		logger_fx.Module,
		genai_fx.Module,
		ratelimit_fx.Module,
		itinerary_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, cfg config.AppConfig, engine *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			log.Info("starting HTTP server", zap.String("addr", srv.Addr))
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("HTTP server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}

func ProvideRouter(
	cfg config.AppConfig,
	log *zap.Logger,
	visitors mem.VisitorStore,
	itineraryController *controllers.ItineraryController,
	healthController *controllers.HealthController,
) *gin.Engine {
	if cfg.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))

	RegisterRoutes(r, middleware.RateLimit(visitors), itineraryController, healthController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	limiter gin.HandlerFunc,
	itineraryController *controllers.ItineraryController,
	healthController *controllers.HealthController) {

	r.GET("/health", healthController.HealthHandler)

	itineraryGroup := r.Group("/api/itinerary", limiter)
	itineraryGroup.POST("/questions", itineraryController.QuestionsHandler)
	itineraryGroup.POST("/generate", itineraryController.GenerateHandler)
}
