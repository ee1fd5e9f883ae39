package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"wanderplan/internal/models/request_models"
	"wanderplan/internal/models/response_models"
	"wanderplan/internal/services"
	"wanderplan/pkg/utils"
)

type ItineraryController struct {
	clarificationService services.ClarificationServiceInterface
	itineraryService     services.ItineraryServiceInterface
}

func NewItineraryController(
	clarificationService services.ClarificationServiceInterface,
	itineraryService services.ItineraryServiceInterface,
) *ItineraryController {
	return &ItineraryController{
		clarificationService: clarificationService,
		itineraryService:     itineraryService,
	}
}

// QuestionsHandler godoc
// @Summary Generate 0-3 clarifying yes/no questions before itinerary generation
// @Accept json
// @Produce json
// @Param brief body request_models.TripBrief true "Trip brief"
// @Router /api/itinerary/questions [post]
func (ic *ItineraryController) QuestionsHandler(c *gin.Context) {
	var brief request_models.TripBrief
	if err := c.ShouldBindJSON(&brief); err != nil {
		// Clarification is best effort; a bad body just means no questions.
		utils.RespondSuccess(c, response_models.QuestionsResponse{Questions: []response_models.ClarifyingQuestion{}}, "No questions")
		return
	}

	questions := ic.clarificationService.PlanQuestions(c.Request.Context(), brief)
	utils.RespondSuccess(c, response_models.QuestionsResponse{Questions: questions}, "Questions generated")
}

// GenerateHandler godoc
// @Summary Generate a day-by-day itinerary for a trip
// @Accept json
// @Produce json
// @Param brief body request_models.TripBrief true "Trip brief with optional clarifying answers"
// @Router /api/itinerary/generate [post]
func (ic *ItineraryController) GenerateHandler(c *gin.Context) {
	var brief request_models.TripBrief
	if err := c.ShouldBindJSON(&brief); err != nil {
		if c.Request.ContentLength == 0 {
			utils.RespondError(c, http.StatusBadRequest, "No data provided")
			return
		}
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if msg := validateBrief(brief); msg != "" {
		utils.RespondError(c, http.StatusBadRequest, msg)
		return
	}

	result, err := ic.itineraryService.GenerateItinerary(c.Request.Context(), brief)
	if err != nil {
		utils.HandleServiceError(c, "Failed to generate itinerary: ", err)
		return
	}

	utils.RespondSuccess(c, result, "Itinerary generated successfully")
}

// validateBrief enforces the generator's preconditions and returns a
// user-facing message, or "" when the brief is usable.
func validateBrief(brief request_models.TripBrief) string {
	if strings.TrimSpace(brief.Destination) == "" {
		return "Destination is required"
	}
	if brief.StartDate == "" || brief.EndDate == "" {
		return "Start and end dates are required"
	}
	start, err := utils.ParseDate(brief.StartDate)
	if err != nil {
		return "Dates must be formatted as YYYY-MM-DD"
	}
	end, err := utils.ParseDate(brief.EndDate)
	if err != nil {
		return "Dates must be formatted as YYYY-MM-DD"
	}
	if start.After(end) {
		return "Start date must not be after end date"
	}
	return ""
}
