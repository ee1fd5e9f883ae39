package utils

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const DefaultGeminiModel = "gemini-2.5-flash-lite"

// GeminiClient implements GenerativeClientInterface using Google's Gemini models
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("gemini: %w", ErrMissingAPIKey)
	}
	if model == "" {
		model = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		model:  model,
	}, nil
}

func (c *GeminiClient) GenerateJSON(ctx context.Context, req GenerationRequest) (string, error) {
	name := req.Model
	if name == "" {
		name = c.model
	}

	// GenerativeModel carries per-call settings, so build one per request.
	m := c.client.GenerativeModel(name)
	m.ResponseMIMEType = "application/json"
	m.ResponseSchema = req.Schema.toGenai()
	m.SetTemperature(req.Temperature)

	resp, err := m.GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		return "", fmt.Errorf("%w: gemini: %v", ErrBackendInvocation, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("%w: no response candidates from Gemini", ErrMalformedOutput)
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			text.WriteString(string(txt))
		}
	}

	return finishJSON("gemini", text.String())
}

func (c *GeminiClient) Close() error {
	return c.client.Close()
}
