package services

import (
	"context"

	"wanderplan/pkg/utils"
)

// stubAI is a canned GenerativeClientInterface that records each request.
type stubAI struct {
	response string
	err      error
	requests []utils.GenerationRequest
}

func (s *stubAI) GenerateJSON(_ context.Context, req utils.GenerationRequest) (string, error) {
	s.requests = append(s.requests, req)
	return s.response, s.err
}

func (s *stubAI) Close() error { return nil }
