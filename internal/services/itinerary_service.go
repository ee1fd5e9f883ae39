package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"wanderplan/internal/models/request_models"
	"wanderplan/internal/models/response_models"
	"wanderplan/pkg/utils"
)

const itineraryTemperature = 0.8

type ItineraryServiceInterface interface {
	GenerateItinerary(ctx context.Context, brief request_models.TripBrief) (*response_models.ItineraryResult, error)
}

type ItineraryService struct {
	ai       utils.GenerativeClientInterface
	settings GenerationSettings
	log      *zap.Logger
}

func NewItineraryService(
	ai utils.GenerativeClientInterface,
	settings GenerationSettings,
	log *zap.Logger,
) ItineraryServiceInterface {
	return &ItineraryService{
		ai:       ai,
		settings: settings,
		log:      log.Named("itinerary"),
	}
}

// GenerateItinerary makes exactly one backend call. Errors wrap
// utils.ErrBackendInvocation or utils.ErrMalformedOutput.
func (s *ItineraryService) GenerateItinerary(ctx context.Context, brief request_models.TripBrief) (*response_models.ItineraryResult, error) {
	brief = brief.WithDefaults()
	prompt := BuildItineraryPrompt(brief)

	// Unparseable dates are the caller's problem; skip the day count check.
	expectedDays, err := utils.DayCount(brief.StartDate, brief.EndDate)
	if err != nil {
		expectedDays = 0
	}

	startTime := time.Now()
	raw, err := s.generate(ctx, prompt)
	if err != nil {
		s.log.Error("itinerary generation failed",
			zap.String("destination", brief.Destination), zap.Error(err))
		return nil, err
	}

	days, err := decodeItinerary(raw, expectedDays)
	if err != nil {
		s.log.Error("itinerary output rejected", zap.Error(err), zap.String("raw", raw))
		return nil, err
	}

	s.warnUncoveredAnchors(brief.PlaceNames(), days)
	s.log.Info("itinerary generated",
		zap.String("destination", brief.Destination),
		zap.Int("days", len(days)),
		zap.Duration("elapsed", time.Since(startTime)))

	return &response_models.ItineraryResult{
		Itinerary: days,
		Countries: DeriveCountries(days),
	}, nil
}

func (s *ItineraryService) generate(ctx context.Context, prompt string) (string, error) {
	if s.settings.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.settings.Timeout)
		defer cancel()
	}
	return s.ai.GenerateJSON(ctx, utils.GenerationRequest{
		Model:       s.settings.Model,
		Prompt:      prompt,
		Temperature: itineraryTemperature,
		Schema:      itinerarySchema,
	})
}

// warnUncoveredAnchors only logs; anchor allocation is left to the model.
func (s *ItineraryService) warnUncoveredAnchors(places []string, days []response_models.ItineraryDay) {
	for _, place := range UncoveredAnchors(places, days) {
		s.log.Warn("anchor destination not referenced by any activity", zap.String("anchor", place))
	}
}

// UncoveredAnchors returns the places no activity mentions in its title,
// location or description.
func UncoveredAnchors(places []string, days []response_models.ItineraryDay) []string {
	var missing []string
	for _, place := range places {
		needle := strings.ToLower(place)
		found := false
		for _, d := range days {
			for _, a := range d.Activities {
				text := strings.ToLower(a.Title + " " + a.Location + " " + a.Description)
				if strings.Contains(text, needle) {
					found = true
					break
				}
			}
			if found {
				break
			}
		}
		if !found {
			missing = append(missing, place)
		}
	}
	return missing
}
