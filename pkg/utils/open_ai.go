package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
)

const DefaultOpenAIModel = "gpt-4o-mini"

// wrapKey holds array-rooted payloads; strict json_schema output must be an object.
const wrapKey = "result"

type OpenAIClient struct {
	client *openai.Client
	model  string
}

func NewOpenAIClient(apiKey, model string) (*OpenAIClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("openai: %w", ErrMissingAPIKey)
	}
	if model == "" {
		model = DefaultOpenAIModel
	}
	return &OpenAIClient{client: openai.NewClient(apiKey), model: model}, nil
}

func (c *OpenAIClient) GenerateJSON(ctx context.Context, req GenerationRequest) (string, error) {
	name := req.Model
	if name == "" {
		name = c.model
	}

	schema, wrapped := openAISchema(req.Schema)
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       name,
		Temperature: req.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "response",
				Schema: &schema,
				Strict: true,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: openai: %v", ErrBackendInvocation, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: openai returned empty choices", ErrMalformedOutput)
	}

	content, err := finishJSON("openai", resp.Choices[0].Message.Content)
	if err != nil || !wrapped {
		return content, err
	}
	return unwrapResult(content)
}

func (c *OpenAIClient) Close() error { return nil }

func openAISchema(s *ResponseSchema) (jsonschema.Definition, bool) {
	def := s.toOpenAI()
	if s != nil && s.Type == SchemaObject {
		return def, false
	}
	return jsonschema.Definition{
		Type:                 jsonschema.Object,
		Properties:           map[string]jsonschema.Definition{wrapKey: def},
		Required:             []string{wrapKey},
		AdditionalProperties: false,
	}, true
}

func unwrapResult(content string) (string, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal([]byte(content), &envelope); err != nil {
		return "", fmt.Errorf("%w: openai: %v", ErrMalformedOutput, err)
	}
	inner, ok := envelope[wrapKey]
	if !ok {
		return "", fmt.Errorf("%w: openai response missing %q", ErrMalformedOutput, wrapKey)
	}
	return string(inner), nil
}
