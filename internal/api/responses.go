package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	app_errors "llamachat/internal/errors"
	"llamachat/internal/model"
	"llamachat/internal/render"
	"llamachat/internal/service"
)

// ErrorResponse defines the standard JSON structure for error messages.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse is returned by operations that have nothing else to report.
type StatusResponse struct {
	Status string `json:"status"`
}

// SubmitMessageRequest carries the text of a new user turn. Blank content is
// accepted and ignored by the controller.
type SubmitMessageRequest struct {
	Content string `json:"content" validate:"max=32000" example:"What is X?"`
}

// UpdateDraftRequest carries the pending input field.
type UpdateDraftRequest struct {
	Text string `json:"text" validate:"max=32000" example:"What is"`
}

// MessageResponse is one turn, with its HTML rendering for the page.
type MessageResponse struct {
	Role    model.Role `json:"role" example:"assistant"`
	Content string     `json:"content" example:"**bold** and *italic*"`
	HTML    string     `json:"html" example:"🤖 <strong>bold</strong> and <em>italic</em>"`
}

// ChatStateResponse is the active conversation as the page displays it.
type ChatStateResponse struct {
	Turns   []MessageResponse `json:"turns"`
	Loading bool              `json:"loading"`
	Draft   string            `json:"draft"`
}

// SessionSummary is one entry of the saved session list.
type SessionSummary struct {
	ID           int64     `json:"id" example:"1718000000000"`
	Title        string    `json:"title" example:"What is the capital of France?"`
	DisplayTitle string    `json:"display_title" example:"What is the capital ..."`
	CreatedAt    time.Time `json:"created_at"`
	TurnCount    int       `json:"turn_count" example:"4"`
}

// SessionResponse is a saved session including its turns.
type SessionResponse struct {
	SessionSummary
	Turns []MessageResponse `json:"turns"`
}

// SessionListResponse wraps the list so the page knows whether it survives reloads.
type SessionListResponse struct {
	Persistent bool             `json:"persistent"`
	Sessions   []SessionSummary `json:"sessions"`
}

func newMessageResponses(turns []model.Message) []MessageResponse {
	out := make([]MessageResponse, len(turns))
	for i, t := range turns {
		out[i] = MessageResponse{Role: t.Role, Content: t.Content, HTML: render.Render(t.Content, t.Role)}
	}
	return out
}

func newChatStateResponse(state model.ChatState) ChatStateResponse {
	return ChatStateResponse{
		Turns:   newMessageResponses(state.Turns),
		Loading: state.Loading,
		Draft:   state.Draft,
	}
}

func newSessionSummary(s *model.SavedSession) SessionSummary {
	return SessionSummary{
		ID:           s.ID,
		Title:        s.Title,
		DisplayTitle: service.DisplayTitle(s.Title),
		CreatedAt:    s.CreatedAt,
		TurnCount:    len(s.Turns),
	}
}

func newSessionResponse(s *model.SavedSession) SessionResponse {
	return SessionResponse{
		SessionSummary: newSessionSummary(s),
		Turns:          newMessageResponses(s.Turns),
	}
}

// respondWithError maps sentinel errors from the service layer to HTTP status
// codes and writes a standard JSON error body.
func respondWithError(w http.ResponseWriter, err error) {
	var statusCode int
	var message string

	switch {
	case errors.Is(err, app_errors.ErrNotFound):
		statusCode = http.StatusNotFound
		message = "The requested resource was not found."
	case errors.Is(err, app_errors.ErrValidation):
		statusCode = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, app_errors.ErrConflict):
		statusCode = http.StatusConflict
		message = "A reply is still being generated for this conversation."
	case errors.Is(err, app_errors.ErrPermission):
		statusCode = http.StatusForbidden
		message = "You do not have permission to perform this action."
	default:
		// Details stay in the log.
		statusCode = http.StatusInternalServerError
		message = "An unexpected internal server error occurred."
	}

	slog.Warn("Responding with error", "status_code", statusCode, "client_message", message, "internal_error", err)

	respondWithJSON(w, statusCode, ErrorResponse{Error: message})
}

// respondWithJSON marshals payload and writes it with the given status code.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Error("Failed to marshal JSON response", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		slog.Error("Failed to write JSON response", "error", err)
	}
}
