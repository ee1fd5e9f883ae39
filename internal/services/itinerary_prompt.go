package services

import (
	"fmt"
	"strconv"
	"strings"

	"wanderplan/internal/models/request_models"
)

// QuestionOpeners are the only ways a clarifying question may start.
var QuestionOpeners = []string{"Do you", "Would you", "Are you", "Is", "Will you", "Have you"}

const MaxQuestionWords = 15

// describeCompanions renders the traveler phrase used in itinerary prompts.
func describeCompanions(companions string, people int) string {
	switch companions {
	case request_models.CompanionsCouple:
		return "a couple"
	case request_models.CompanionsFamily:
		return fmt.Sprintf("a family of %d", people)
	case request_models.CompanionsFriends:
		return fmt.Sprintf("a group of %d friends", people)
	default:
		return "a solo traveler"
	}
}

// describeCompanionsForQuestions omits head counts; they never change which
// questions are worth asking.
func describeCompanionsForQuestions(companions string) string {
	switch companions {
	case request_models.CompanionsCouple:
		return "a couple"
	case request_models.CompanionsFamily:
		return "a family"
	case request_models.CompanionsFriends:
		return "a group of friends"
	default:
		return "a solo traveler"
	}
}

func chosenPlacesContext(places []string) string {
	if len(places) == 0 {
		return ""
	}
	return fmt.Sprintf("\nThe traveler specifically chose these destinations: %s.", strings.Join(places, ", "))
}

func questionRules() string {
	var sb strings.Builder
	sb.WriteString("Generate 0-3 STRICTLY yes/no questions that would SIGNIFICANTLY change the resulting itinerary. ")
	sb.WriteString("Rules:\n")
	sb.WriteString("- EVERY question MUST be answerable with ONLY 'Yes' or 'No'. No either/or, no open-ended, no multiple choice.\n")
	sb.WriteString("- Questions MUST start with " + quotedOpeners() + ".\n")
	sb.WriteString("- NEVER ask 'Do you prefer X or Y'; instead split into 'Do you want X?' as a yes/no question.\n")
	sb.WriteString("- Only ask questions whose answers would meaningfully alter the trip plan\n")
	sb.WriteString("- Do NOT ask about things already answered by the form data above\n")
	sb.WriteString(fmt.Sprintf("- Each question must be under %d words\n", MaxQuestionWords))
	sb.WriteString("- Fewer questions is better; zero is perfectly fine for straightforward trips\n")
	sb.WriteString("- Focus on intent and priorities, not assumptions about experience\n")
	sb.WriteString("- GOOD examples: 'Do you want a relaxed, slow-paced trip?', 'Would you like to prioritize food experiences?'\n")
	sb.WriteString("- BAD examples: 'Do you prefer fast-paced or relaxing?', 'What kind of food do you like?', 'Are you an experienced skier?'\n")
	sb.WriteString("- For simple city breaks or straightforward destinations, return an empty array\n\n")
	sb.WriteString("Return a JSON array of question strings. Return [] if no questions are needed.")
	return sb.String()
}

func quotedOpeners() string {
	quoted := make([]string, len(QuestionOpeners))
	for i, o := range QuestionOpeners {
		quoted[i] = "'" + o + "'"
	}
	last := len(quoted) - 1
	return strings.Join(quoted[:last], ", ") + ", or " + quoted[last]
}

// BuildQuestionsPrompt assembles the clarification prompt for a brief.
func BuildQuestionsPrompt(brief request_models.TripBrief) string {
	var sb strings.Builder
	sb.WriteString("You are a travel planning assistant. A traveler is planning a trip with these details:\n")
	sb.WriteString(fmt.Sprintf("- Destination: %s\n", brief.Destination))
	sb.WriteString(fmt.Sprintf("- Dates: %s to %s\n", brief.StartDate, brief.EndDate))
	sb.WriteString(fmt.Sprintf("- Travelers: %s\n", describeCompanionsForQuestions(brief.Companions)))
	sb.WriteString(chosenPlacesContext(brief.PlaceNames()))
	sb.WriteString("\n\n")
	sb.WriteString(questionRules())
	return sb.String()
}

func itineraryIntro() string {
	return "You are an expert travel planner who creates realistic, well-paced itineraries. "
}

func tripClause(brief request_models.TripBrief) string {
	budget := 0.0
	if brief.BudgetAmount != nil {
		budget = *brief.BudgetAmount
	}
	return fmt.Sprintf(
		"Create a detailed day-by-day travel itinerary for %s traveling to %s from %s to %s. "+
			"The budget is %s %s per person. "+
			"Plan 3-5 activities per day with realistic timings.",
		describeCompanions(brief.Companions, brief.NumberOfPeople),
		brief.Destination, brief.StartDate, brief.EndDate,
		brief.Currency, strconv.FormatFloat(budget, 'f', -1, 64),
	)
}

// anchorClause asks the model to build the trip around the places the
// traveler named. Empty when there are none.
func anchorClause(places []string) string {
	if len(places) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("\n\nIMPORTANT - The traveler specifically chose these destinations: %s. ", strings.Join(places, ", ")))
	sb.WriteString("These are the PRIMARY reason for the trip. For each one:\n")
	sb.WriteString("- Deduce what activity the destination is known for (e.g. a ski resort means skiing/snowboarding, ")
	sb.WriteString("a beach means beach activities, a theme park means rides, a national park means hiking).\n")
	sb.WriteString("- Allocate FULL days (not just a few hours) for these destinations proportional to how much ")
	sb.WriteString("time that activity realistically requires. For example, a ski resort deserves 2-3 full days of skiing.\n")
	sb.WriteString("- Schedule supplementary destinations (restaurants, nearby attractions) AROUND these core destinations, not instead of them.\n")
	sb.WriteString("- At least 75% of the trip should revolve around the traveler's chosen destinations.")
	return sb.String()
}

func clarificationClause(answers []request_models.ClarifyingAnswer) string {
	if len(answers) == 0 {
		return ""
	}
	lines := make([]string, len(answers))
	for i, qa := range answers {
		lines[i] = fmt.Sprintf("- Q: %s A: %s", qa.Question, qa.Answer)
	}
	return "\n\nThe traveler provided these additional preferences:\n" +
		strings.Join(lines, "\n") +
		"\nAdjust the itinerary to reflect these preferences."
}

func coreInstructions() string {
	return "\n\nTake the country's culture into consideration. " +
		"Include a mix of sightseeing, food, culture, and leisure. " +
		"Take the proximity of locations from one another into consideration, planning an efficient route " +
		"and ordering consecutive activities so that travel between them stays short. " +
		"Each activity must include the specific location name and the country it's in."
}

func selfReview() string {
	return "\n\nBefore finalizing, review the itinerary and verify that:\n" +
		"1. The traveler's chosen destinations get adequate time (full days, not brief visits).\n" +
		"2. The pacing is realistic with no rushed transitions between distant locations.\n" +
		"3. Activities match what each destination is actually known for."
}

func returnFormat() string {
	return "\n\nReturn a JSON array of days, each containing a day number, date, and list of activities."
}

// BuildItineraryPrompt concatenates the itinerary fragments in a fixed order.
// brief must already carry its defaults.
func BuildItineraryPrompt(brief request_models.TripBrief) string {
	var sb strings.Builder
	sb.WriteString(itineraryIntro())
	sb.WriteString(tripClause(brief))
	sb.WriteString(anchorClause(brief.PlaceNames()))
	sb.WriteString(clarificationClause(brief.AnsweredQuestions()))
	sb.WriteString(coreInstructions())
	sb.WriteString(selfReview())
	sb.WriteString(returnFormat())
	return sb.String()
}
