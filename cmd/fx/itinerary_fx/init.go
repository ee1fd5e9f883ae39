package itinerary_fx

import (
	"go.uber.org/fx"

	"wanderplan/internal/api/controllers"
	"wanderplan/internal/services"
)

var Module = fx.Options(
	fx.Provide(services.NewClarificationService),
	fx.Provide(services.NewItineraryService),
	fx.Provide(controllers.NewItineraryController),
	fx.Provide(controllers.NewHealthController),
)
