package api

import (
	"net/http"

	"llamachat/internal/interfaces"
)

// ChatHandler exposes the active conversation.
type ChatHandler struct {
	service interfaces.ChatService
}

func NewChatHandler(svc interfaces.ChatService) *ChatHandler {
	return &ChatHandler{service: svc}
}

// GetChat godoc
// @Summary      Get the active conversation
// @Description  Returns the turns of the active conversation with their HTML rendering, the loading flag and the draft.
// @Tags         Chat
// @Produce      json
// @Success      200  {object}  ChatStateResponse
// @Router       /v1/chat [get]
func (h *ChatHandler) GetChat(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, newChatStateResponse(h.service.State()))
}

// UpdateDraft godoc
// @Summary      Update the draft
// @Description  Records the text typed into the input field but not yet sent.
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Param        draft  body      UpdateDraftRequest  true  "Draft text"
// @Success      200    {object}  ChatStateResponse
// @Failure      400    {object}  ErrorResponse
// @Router       /v1/chat/draft [put]
func (h *ChatHandler) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	var req UpdateDraftRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, newChatStateResponse(h.service.SetDraft(req.Text)))
}

// SubmitMessage godoc
// @Summary      Send a message
// @Description  Appends a user turn and waits for the assistant reply. Blank content is ignored. A failed exchange still succeeds and carries the error reply as the assistant turn.
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Param        message  body      SubmitMessageRequest  true  "Message content"
// @Success      200      {object}  ChatStateResponse
// @Failure      400      {object}  ErrorResponse
// @Failure      409      {object}  ErrorResponse  "A reply is still pending"
// @Router       /v1/chat/messages [post]
func (h *ChatHandler) SubmitMessage(w http.ResponseWriter, r *http.Request) {
	var req SubmitMessageRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondWithError(w, err)
		return
	}
	state, err := h.service.Submit(r.Context(), req.Content)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, newChatStateResponse(state))
}

// StartNewChat godoc
// @Summary      Start a new chat
// @Description  Resets the active conversation. With auto-archive enabled a non-empty conversation is saved first.
// @Tags         Chat
// @Produce      json
// @Success      200  {object}  ChatStateResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /v1/chat/new [post]
func (h *ChatHandler) StartNewChat(w http.ResponseWriter, r *http.Request) {
	state, err := h.service.StartNewChat(r.Context())
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, newChatStateResponse(state))
}
