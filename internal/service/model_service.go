package service

import (
	"context"

	"llamachat/internal/llm"
)

// ModelService exposes the models served by the completion endpoint.
type ModelService struct {
	llm llm.CompletionProvider
}

// NewModelService creates a new ModelService.
func NewModelService(provider llm.CompletionProvider) *ModelService {
	return &ModelService{llm: provider}
}

// List returns the models the endpoint reports as available.
func (s *ModelService) List(ctx context.Context) (*llm.ListModelsResponse, error) {
	return s.llm.ListModels(ctx)
}
