package request_models

const (
	CompanionsSolo    = "solo"
	CompanionsCouple  = "couple"
	CompanionsFamily  = "family"
	CompanionsFriends = "friends"
)

const (
	DefaultCurrency       = "USD"
	DefaultBudgetAmount   = 5000
	DefaultNumberOfPeople = 1
)

type SpecificDestination struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

type ClarifyingAnswer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// TripBrief is the caller supplied description of a trip. ClarifyingAnswers is
// only populated on the second, generate phase.
type TripBrief struct {
	Destination          string                `json:"destination"`
	StartDate            string                `json:"startDate"`
	EndDate              string                `json:"endDate"`
	Currency             string                `json:"currency" binding:"omitempty,len=3"`
	BudgetAmount         *float64              `json:"budgetAmount" binding:"omitempty,gte=0"`
	Companions           string                `json:"companions" binding:"omitempty,oneof=solo couple family friends"`
	NumberOfPeople       int                   `json:"numberOfPeople" binding:"omitempty,gte=1"`
	SpecificDestinations []SpecificDestination `json:"specificDestinations"`
	ClarifyingAnswers    []ClarifyingAnswer    `json:"clarifyingAnswers"`
}

// WithDefaults returns a copy with the optional fields filled in.
func (b TripBrief) WithDefaults() TripBrief {
	if b.Currency == "" {
		b.Currency = DefaultCurrency
	}
	if b.BudgetAmount == nil {
		amount := float64(DefaultBudgetAmount)
		b.BudgetAmount = &amount
	}
	if b.Companions == "" {
		b.Companions = CompanionsSolo
	}
	if b.NumberOfPeople < 1 {
		b.NumberOfPeople = DefaultNumberOfPeople
	}
	return b
}

// PlaceNames lists the named anchor destinations, skipping blank names.
func (b TripBrief) PlaceNames() []string {
	var names []string
	for _, p := range b.SpecificDestinations {
		if p.Name != "" {
			names = append(names, p.Name)
		}
	}
	return names
}

// AnsweredQuestions drops pairs missing either side.
func (b TripBrief) AnsweredQuestions() []ClarifyingAnswer {
	var out []ClarifyingAnswer
	for _, qa := range b.ClarifyingAnswers {
		if qa.Question != "" && qa.Answer != "" {
			out = append(out, qa)
		}
	}
	return out
}
