package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"
)

const (
	DefaultOllamaModel = "llama3.1"
	defaultOllamaHost  = "http://localhost:11434"
)

// OllamaClient talks to a local Ollama server. Useful for development without
// a hosted API key.
type OllamaClient struct {
	client *api.Client
	model  string
}

func NewOllamaClient(host, model string) (*OllamaClient, error) {
	var c *api.Client
	if strings.TrimSpace(host) == "" {
		fromEnv, err := api.ClientFromEnvironment()
		if err == nil {
			c = fromEnv
		}
		host = defaultOllamaHost
	}
	if c == nil {
		u, err := url.Parse(host)
		if err != nil {
			return nil, fmt.Errorf("ollama: bad host %q: %w", host, err)
		}
		c = api.NewClient(u, nil)
	}
	if model == "" {
		model = DefaultOllamaModel
	}
	return &OllamaClient{client: c, model: model}, nil
}

func (c *OllamaClient) GenerateJSON(ctx context.Context, req GenerationRequest) (string, error) {
	name := req.Model
	if name == "" {
		name = c.model
	}

	format := json.RawMessage(`"json"`)
	if req.Schema != nil {
		b, err := json.Marshal(req.Schema)
		if err != nil {
			return "", fmt.Errorf("ollama marshal schema: %w", err)
		}
		format = b
	}

	stream := false
	var out strings.Builder
	err := c.client.Generate(ctx, &api.GenerateRequest{
		Model:   name,
		Prompt:  req.Prompt,
		Format:  format,
		Stream:  &stream,
		Options: map[string]any{"temperature": req.Temperature},
	}, func(gr api.GenerateResponse) error {
		out.WriteString(gr.Response)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: ollama: %v", ErrBackendInvocation, err)
	}

	return finishJSON("ollama", out.String())
}

func (c *OllamaClient) Close() error { return nil }
