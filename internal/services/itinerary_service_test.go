package services

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"go.uber.org/zap"

	"wanderplan/internal/models/request_models"
	"wanderplan/internal/models/response_models"
	"wanderplan/pkg/utils"
)

func newGenerator(ai *stubAI) ItineraryServiceInterface {
	return NewItineraryService(ai, GenerationSettings{Model: "test-model"}, zap.NewNop())
}

func activityJSON(title, location, country string) string {
	return fmt.Sprintf(`{"time":"09:00","title":%q,"description":"Visit %s","location":%q,"country":%q}`,
		title, location, location, country)
}

func dayJSON(day int, date string, activities ...string) string {
	return fmt.Sprintf(`{"day":%d,"date":%q,"activities":[%s]}`, day, date, strings.Join(activities, ","))
}

func kyotoBrief() request_models.TripBrief {
	return request_models.TripBrief{
		Destination: "Kyoto",
		StartDate:   "2025-04-01",
		EndDate:     "2025-04-03",
	}
}

func kyotoResponse() string {
	return "[" + strings.Join([]string{
		dayJSON(1, "2025-04-01", activityJSON("Fushimi Inari", "Fushimi Inari Taisha", "Japan")),
		dayJSON(2, "2025-04-02", activityJSON("Arashiyama", "Arashiyama Bamboo Grove", "Japan")),
		dayJSON(3, "2025-04-03", activityJSON("Kinkaku-ji", "Kinkaku-ji", "Japan")),
	}, ",") + "]"
}

func TestGenerateItinerary_ThreeDayTrip(t *testing.T) {
	ai := &stubAI{response: kyotoResponse()}
	result, err := newGenerator(ai).GenerateItinerary(context.Background(), kyotoBrief())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Itinerary) != 3 {
		t.Fatalf("expected 3 days, got %d", len(result.Itinerary))
	}
	for i, d := range result.Itinerary {
		if d.Day != i+1 {
			t.Errorf("day %d has number %d", i, d.Day)
		}
	}
	if !reflect.DeepEqual(result.Countries, []string{"Japan"}) {
		t.Errorf("expected [Japan], got %v", result.Countries)
	}

	if len(ai.requests) != 1 {
		t.Fatalf("expected exactly 1 backend call, got %d", len(ai.requests))
	}
	req := ai.requests[0]
	if req.Temperature != itineraryTemperature {
		t.Errorf("expected temperature %v, got %v", itineraryTemperature, req.Temperature)
	}
	if req.Schema != itinerarySchema {
		t.Error("expected the itinerary schema to be attached")
	}
	for _, want := range []string{"Kyoto", "2025-04-01", "2025-04-03", "a solo traveler", "USD 5000"} {
		if !strings.Contains(req.Prompt, want) {
			t.Errorf("expected prompt to contain %q", want)
		}
	}
}

func TestGenerateItinerary_SingleDay(t *testing.T) {
	brief := request_models.TripBrief{Destination: "Lisbon", StartDate: "2025-05-10", EndDate: "2025-05-10"}
	ai := &stubAI{response: "[" + dayJSON(1, "2025-05-10", activityJSON("Belem Tower", "Belem", "Portugal")) + "]"}

	result, err := newGenerator(ai).GenerateItinerary(context.Background(), brief)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Itinerary) != 1 {
		t.Fatalf("expected 1 day, got %d", len(result.Itinerary))
	}
}

func TestGenerateItinerary_CountriesAcrossBorders(t *testing.T) {
	brief := request_models.TripBrief{Destination: "Alps", StartDate: "2025-01-01", EndDate: "2025-01-02"}
	ai := &stubAI{response: "[" +
		dayJSON(1, "2025-01-01",
			activityJSON("Zermatt", "Zermatt", "Switzerland"),
			activityJSON("Cervinia", "Breuil-Cervinia", "Italy")) + "," +
		dayJSON(2, "2025-01-02",
			activityJSON("Chamonix", "Chamonix", "France"),
			activityJSON("Lunch", "Zermatt", "Switzerland")) +
		"]"}

	result, err := newGenerator(ai).GenerateItinerary(context.Background(), brief)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"France", "Italy", "Switzerland"}
	if !reflect.DeepEqual(result.Countries, want) {
		t.Errorf("expected %v, got %v", want, result.Countries)
	}
}

func TestGenerateItinerary_RejectsBadOutput(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"not json", "Here is your itinerary!"},
		{"empty array", "[]"},
		{"object root", `{"itinerary":[]}`},
		{"missing activity field", "[" +
			`{"day":1,"date":"2025-04-01","activities":[{"time":"09:00","title":"Temple","description":"Visit","location":"Kyoto"}]},` +
			dayJSON(2, "2025-04-02", activityJSON("A", "B", "Japan")) + "," +
			dayJSON(3, "2025-04-03", activityJSON("A", "B", "Japan")) + "]"},
		{"day without activities", "[" +
			`{"day":1,"date":"2025-04-01","activities":[]},` +
			dayJSON(2, "2025-04-02", activityJSON("A", "B", "Japan")) + "," +
			dayJSON(3, "2025-04-03", activityJSON("A", "B", "Japan")) + "]"},
		{"wrong day count", "[" +
			dayJSON(1, "2025-04-01", activityJSON("A", "B", "Japan")) + "," +
			dayJSON(2, "2025-04-02", activityJSON("A", "B", "Japan")) + "]"},
		{"out of order days", "[" +
			dayJSON(1, "2025-04-01", activityJSON("A", "B", "Japan")) + "," +
			dayJSON(3, "2025-04-03", activityJSON("A", "B", "Japan")) + "," +
			dayJSON(2, "2025-04-02", activityJSON("A", "B", "Japan")) + "]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := newGenerator(&stubAI{response: tt.response}).GenerateItinerary(context.Background(), kyotoBrief())
			if result != nil {
				t.Errorf("expected no result, got %+v", result)
			}
			if !errors.Is(err, utils.ErrMalformedOutput) {
				t.Fatalf("expected ErrMalformedOutput, got %v", err)
			}
		})
	}
}

func TestGenerateItinerary_BackendError(t *testing.T) {
	backendErr := fmt.Errorf("%w: gemini: quota exceeded", utils.ErrBackendInvocation)
	result, err := newGenerator(&stubAI{err: backendErr}).GenerateItinerary(context.Background(), kyotoBrief())
	if result != nil {
		t.Errorf("expected no result, got %+v", result)
	}
	if !errors.Is(err, utils.ErrBackendInvocation) {
		t.Fatalf("expected ErrBackendInvocation, got %v", err)
	}
	if !strings.Contains(err.Error(), "quota exceeded") {
		t.Errorf("expected the backend message to be preserved, got %q", err.Error())
	}
}

func TestGenerateItinerary_AnchorsReachThePrompt(t *testing.T) {
	brief := kyotoBrief()
	brief.SpecificDestinations = []request_models.SpecificDestination{{Name: "Fushimi Inari"}, {Name: ""}}
	brief.ClarifyingAnswers = []request_models.ClarifyingAnswer{
		{Question: "Do you want a relaxed trip?", Answer: "Yes"},
		{Question: "Is nightlife important?", Answer: ""},
	}
	ai := &stubAI{response: kyotoResponse()}

	if _, err := newGenerator(ai).GenerateItinerary(context.Background(), brief); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	prompt := ai.requests[0].Prompt
	if !strings.Contains(prompt, "specifically chose these destinations: Fushimi Inari.") {
		t.Error("expected the anchor clause to list only named places")
	}
	if !strings.Contains(prompt, "- Q: Do you want a relaxed trip? A: Yes") {
		t.Error("expected the answered question in the prompt")
	}
	if strings.Contains(prompt, "Is nightlife important?") {
		t.Error("expected the unanswered question to be dropped")
	}
}

func TestUncoveredAnchors(t *testing.T) {
	days := []response_models.ItineraryDay{{
		Day:  1,
		Date: "2025-04-01",
		Activities: []response_models.Activity{
			{Title: "Morning hike", Location: "fushimi inari taisha", Description: "Climb the torii path"},
		},
	}}
	got := UncoveredAnchors([]string{"Fushimi Inari", "Nara Park"}, days)
	if !reflect.DeepEqual(got, []string{"Nara Park"}) {
		t.Errorf("expected [Nara Park], got %v", got)
	}
}

func TestDeriveCountries_EmptyIsNotNil(t *testing.T) {
	got := DeriveCountries(nil)
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}
