package services

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"

	"wanderplan/internal/models/response_models"
	"wanderplan/pkg/utils"
)

var questionsSchema = utils.ArrayOf(utils.StringSchema())

var itinerarySchema = utils.ArrayOf(utils.ObjectOf(map[string]*utils.ResponseSchema{
	"day":  utils.IntegerSchema(),
	"date": utils.StringSchema(),
	"activities": utils.ArrayOf(utils.ObjectOf(map[string]*utils.ResponseSchema{
		"time":        utils.StringSchema(),
		"title":       utils.StringSchema(),
		"description": utils.StringSchema(),
		"location":    utils.StringSchema(),
		"country":     utils.StringSchema(),
	})),
}))

type itineraryPayload struct {
	Days []response_models.ItineraryDay `validate:"required,min=1,dive"`
}

// validate is safe for concurrent use and caches struct metadata.
var validate = validator.New(validator.WithRequiredStructEnabled())

func decodeQuestions(raw string) ([]string, error) {
	var questions []string
	if err := json.Unmarshal([]byte(raw), &questions); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrMalformedOutput, err)
	}
	return questions, nil
}

// decodeItinerary parses raw model output and rejects anything that does not
// match the itinerary schema. expectedDays of 0 skips the day count check.
func decodeItinerary(raw string, expectedDays int) ([]response_models.ItineraryDay, error) {
	var days []response_models.ItineraryDay
	if err := json.Unmarshal([]byte(raw), &days); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrMalformedOutput, err)
	}
	if len(days) == 0 {
		return nil, fmt.Errorf("%w: itinerary has no days", utils.ErrMalformedOutput)
	}
	if err := validate.Struct(itineraryPayload{Days: days}); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrMalformedOutput, err)
	}
	for i, d := range days {
		if d.Day != i+1 {
			return nil, fmt.Errorf("%w: day %d found at position %d", utils.ErrMalformedOutput, d.Day, i+1)
		}
	}
	if expectedDays > 0 && len(days) != expectedDays {
		return nil, fmt.Errorf("%w: expected %d days, got %d", utils.ErrMalformedOutput, expectedDays, len(days))
	}
	return days, nil
}

// DeriveCountries returns the distinct non-empty activity countries, sorted.
func DeriveCountries(days []response_models.ItineraryDay) []string {
	seen := make(map[string]struct{})
	countries := []string{}
	for _, d := range days {
		for _, a := range d.Activities {
			if a.Country == "" {
				continue
			}
			if _, ok := seen[a.Country]; ok {
				continue
			}
			seen[a.Country] = struct{}{}
			countries = append(countries, a.Country)
		}
	}
	sort.Strings(countries)
	return countries
}
