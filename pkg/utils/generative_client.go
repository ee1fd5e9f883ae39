package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
)

// GenerativeClientInterface is the boundary to the generative text backend.
// Every call is schema constrained and must answer with JSON text.
type GenerativeClientInterface interface {
	GenerateJSON(ctx context.Context, req GenerationRequest) (string, error)
	Close() error
}

type GenerationRequest struct {
	Model       string
	Prompt      string
	Temperature float32
	Schema      *ResponseSchema
}

// GenerativeConfig selects and configures one backend.
type GenerativeConfig struct {
	Provider   string
	APIKey     string
	Model      string
	OllamaHost string
}

// NewGenerativeClient builds the client for cfg.Provider.
func NewGenerativeClient(cfg GenerativeConfig) (GenerativeClientInterface, error) {
	var (
		client GenerativeClientInterface
		err    error
	)
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", ProviderGemini:
		client, err = NewGeminiClient(context.Background(), cfg.APIKey, cfg.Model)
	case ProviderOpenAI:
		client, err = NewOpenAIClient(cfg.APIKey, cfg.Model)
	case ProviderOllama:
		client, err = NewOllamaClient(cfg.OllamaHost, cfg.Model)
	default:
		return nil, fmt.Errorf("%w: %s. Use 'gemini', 'openai' or 'ollama'", ErrUnsupportedProvider, cfg.Provider)
	}
	if err != nil {
		return nil, err
	}
	return client, nil
}

// cleanJSONResponse strips markdown fences some models wrap around JSON even
// when JSON mode is on.
func cleanJSONResponse(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}

// finishJSON is the common tail of every backend call.
func finishJSON(backend, content string) (string, error) {
	content = cleanJSONResponse(content)
	if content == "" {
		return "", fmt.Errorf("%w: %s returned no content", ErrMalformedOutput, backend)
	}
	if !json.Valid([]byte(content)) {
		return "", fmt.Errorf("%w: %s returned invalid json", ErrMalformedOutput, backend)
	}
	return content, nil
}
