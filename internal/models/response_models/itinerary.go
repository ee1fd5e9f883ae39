package response_models

type ClarifyingQuestion struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type QuestionsResponse struct {
	Questions []ClarifyingQuestion `json:"questions"`
}

type Activity struct {
	Time        string `json:"time" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Location    string `json:"location" validate:"required"`
	Country     string `json:"country" validate:"required"`
}

type ItineraryDay struct {
	Day        int        `json:"day" validate:"gte=1"`
	Date       string     `json:"date" validate:"required"`
	Activities []Activity `json:"activities" validate:"required,min=1,dive"`
}

type ItineraryResult struct {
	Itinerary []ItineraryDay `json:"itinerary"`
	Countries []string       `json:"countries"`
}
