package api

import (
	"log/slog"
	"net/http"

	"llamachat/internal/interfaces"
)

// SessionHandler exposes the session archive. Saving and loading go through
// the chat service because they replace the active conversation.
type SessionHandler struct {
	chat    interfaces.ChatService
	archive interfaces.ArchiveService
}

func NewSessionHandler(chat interfaces.ChatService, archive interfaces.ArchiveService) *SessionHandler {
	return &SessionHandler{chat: chat, archive: archive}
}

// SaveSession godoc
// @Summary      Save the active conversation
// @Description  Archives the active conversation and starts a new one. An empty conversation is not saved and 204 is returned.
// @Tags         Sessions
// @Produce      json
// @Success      201  {object}  SessionResponse
// @Success      204  "Nothing to save"
// @Failure      500  {object}  ErrorResponse
// @Router       /v1/sessions [post]
func (h *SessionHandler) SaveSession(w http.ResponseWriter, r *http.Request) {
	saved, err := h.chat.SaveCurrent(r.Context())
	if err != nil {
		respondWithError(w, err)
		return
	}
	if saved == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	respondWithJSON(w, http.StatusCreated, newSessionResponse(saved))
}

// ListSessions godoc
// @Summary      List saved sessions
// @Description  Returns the saved sessions in save order with their display titles.
// @Tags         Sessions
// @Produce      json
// @Success      200  {object}  SessionListResponse
// @Router       /v1/sessions [get]
func (h *SessionHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	sessions := h.archive.List()
	resp := SessionListResponse{
		Persistent: h.archive.Persistent(),
		Sessions:   make([]SessionSummary, len(sessions)),
	}
	for i := range sessions {
		resp.Sessions[i] = newSessionSummary(&sessions[i])
	}
	respondWithJSON(w, http.StatusOK, resp)
}

// GetSession godoc
// @Summary      Get a saved session
// @Tags         Sessions
// @Produce      json
// @Param        sessionID  path      int  true  "Session ID"
// @Success      200        {object}  SessionResponse
// @Failure      400        {object}  ErrorResponse
// @Failure      404        {object}  ErrorResponse
// @Router       /v1/sessions/{sessionID} [get]
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	id, err := sessionIDParam(r)
	if err != nil {
		respondWithError(w, err)
		return
	}
	saved, err := h.archive.Get(id)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, newSessionResponse(saved))
}

// LoadSession godoc
// @Summary      Load a saved session
// @Description  Makes a copy of the saved session the active conversation.
// @Tags         Sessions
// @Produce      json
// @Param        sessionID  path      int  true  "Session ID"
// @Success      200        {object}  ChatStateResponse
// @Failure      400        {object}  ErrorResponse
// @Failure      404        {object}  ErrorResponse
// @Router       /v1/sessions/{sessionID}/load [post]
func (h *SessionHandler) LoadSession(w http.ResponseWriter, r *http.Request) {
	id, err := sessionIDParam(r)
	if err != nil {
		respondWithError(w, err)
		return
	}
	state, err := h.chat.LoadSession(r.Context(), id)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, newChatStateResponse(state))
}

// DeleteSession godoc
// @Summary      Delete a saved session
// @Description  Unknown ids are ignored.
// @Tags         Sessions
// @Produce      json
// @Param        sessionID  path      int  true  "Session ID"
// @Success      200        {object}  StatusResponse
// @Failure      400        {object}  ErrorResponse
// @Failure      500        {object}  ErrorResponse
// @Router       /v1/sessions/{sessionID} [delete]
func (h *SessionHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id, err := sessionIDParam(r)
	if err != nil {
		respondWithError(w, err)
		return
	}
	if err := h.archive.Delete(r.Context(), id); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// ClearSessions godoc
// @Summary      Delete all saved sessions
// @Tags         Sessions
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /v1/sessions [delete]
func (h *SessionHandler) ClearSessions(w http.ResponseWriter, r *http.Request) {
	if err := h.archive.Clear(r.Context()); err != nil {
		respondWithError(w, err)
		return
	}
	slog.Info("Session archive cleared by request")
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}
