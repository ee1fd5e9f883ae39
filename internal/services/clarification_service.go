package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"wanderplan/internal/models/request_models"
	"wanderplan/internal/models/response_models"
	"wanderplan/pkg/utils"
)

const (
	MaxClarifyingQuestions = 3
	questionsTemperature   = 0.3
)

// GenerationSettings are shared by both generative services.
type GenerationSettings struct {
	Model   string
	Timeout time.Duration
}

type ClarificationServiceInterface interface {
	// PlanQuestions never fails: any problem yields an empty list so the
	// itinerary flow is never blocked on clarification.
	PlanQuestions(ctx context.Context, brief request_models.TripBrief) []response_models.ClarifyingQuestion
}

type ClarificationService struct {
	ai       utils.GenerativeClientInterface
	settings GenerationSettings
	log      *zap.Logger
}

func NewClarificationService(
	ai utils.GenerativeClientInterface,
	settings GenerationSettings,
	log *zap.Logger,
) ClarificationServiceInterface {
	return &ClarificationService{
		ai:       ai,
		settings: settings,
		log:      log.Named("clarification"),
	}
}

func (s *ClarificationService) PlanQuestions(ctx context.Context, brief request_models.TripBrief) []response_models.ClarifyingQuestion {
	brief = brief.WithDefaults()
	prompt := BuildQuestionsPrompt(brief)

	raw, err := s.generate(ctx, prompt)
	if err != nil {
		s.log.Warn("failed to generate clarifying questions",
			zap.String("destination", brief.Destination), zap.Error(err))
		return []response_models.ClarifyingQuestion{}
	}

	candidates, err := decodeQuestions(raw)
	if err != nil {
		s.log.Warn("failed to parse clarifying questions", zap.Error(err), zap.String("raw", raw))
		return []response_models.ClarifyingQuestion{}
	}

	questions := make([]response_models.ClarifyingQuestion, 0, MaxClarifyingQuestions)
	for _, text := range candidates {
		if len(questions) == MaxClarifyingQuestions {
			break
		}
		text = strings.TrimSpace(text)
		if reason := rejectQuestion(text); reason != "" {
			s.log.Debug("dropping clarifying question", zap.String("text", text), zap.String("reason", reason))
			continue
		}
		questions = append(questions, response_models.ClarifyingQuestion{
			ID:   fmt.Sprintf("q%d", len(questions)),
			Text: text,
		})
	}
	return questions
}

func (s *ClarificationService) generate(ctx context.Context, prompt string) (string, error) {
	if s.settings.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.settings.Timeout)
		defer cancel()
	}
	return s.ai.GenerateJSON(ctx, utils.GenerationRequest{
		Model:       s.settings.Model,
		Prompt:      prompt,
		Temperature: questionsTemperature,
		Schema:      questionsSchema,
	})
}

// rejectQuestion reports why text is not a usable yes/no question, or "" if it is.
func rejectQuestion(text string) string {
	if text == "" {
		return "empty"
	}
	if !hasOpener(text) {
		return "not a yes/no opener"
	}
	if strings.Contains(strings.ToLower(text), " or ") {
		return "disjunction"
	}
	if len(strings.Fields(text)) > MaxQuestionWords {
		return "too long"
	}
	return ""
}

func hasOpener(text string) bool {
	for _, o := range QuestionOpeners {
		if strings.HasPrefix(text, o+" ") {
			return true
		}
	}
	return false
}
