package interfaces

import (
	"context"

	"llamachat/internal/llm"
	"llamachat/internal/model"
)

// The API layer depends on these rather than on the concrete services so that
// handlers can be tested against mocks.

// ChatService drives the active conversation.
type ChatService interface {
	State() model.ChatState
	SetDraft(text string) model.ChatState
	Submit(ctx context.Context, text string) (model.ChatState, error)
	StartNewChat(ctx context.Context) (model.ChatState, error)
	SaveCurrent(ctx context.Context) (*model.SavedSession, error)
	LoadSession(ctx context.Context, id int64) (model.ChatState, error)
}

// ArchiveService manages saved sessions.
type ArchiveService interface {
	List() []model.SavedSession
	Get(id int64) (*model.SavedSession, error)
	Delete(ctx context.Context, id int64) error
	Clear(ctx context.Context) error
	Persistent() bool
}

// ModelService lists the models offered by the completion endpoint.
type ModelService interface {
	List(ctx context.Context) (*llm.ListModelsResponse, error)
}
