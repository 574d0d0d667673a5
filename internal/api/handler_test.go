package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"llamachat/internal/api"
	app_errors "llamachat/internal/errors"
	"llamachat/internal/interfaces/mocks"
	"llamachat/internal/model"
	"llamachat/internal/service"
)

func setupChatHandler(t *testing.T) (*api.ChatHandler, *mocks.MockChatService) {
	mockChatSvc := mocks.NewMockChatService(t)
	return api.NewChatHandler(mockChatSvc), mockChatSvc
}

// addChiURLParams injects URL parameters the way the chi router does.
func addChiURLParams(req *http.Request, params map[string]string) *http.Request {
	chiCtx := chi.NewRouteContext()
	for key, value := range params {
		chiCtx.URLParams.Add(key, value)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, chiCtx))
}

func decodeState(t *testing.T, rr *httptest.ResponseRecorder) api.ChatStateResponse {
	t.Helper()
	var resp api.ChatStateResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func TestChatHandler_GetChat(t *testing.T) {
	handler, mockChatSvc := setupChatHandler(t)
	mockChatSvc.On("State").Return(model.ChatState{
		Turns: []model.Message{
			{Role: model.RoleUser, Content: "hi"},
			{Role: model.RoleAssistant, Content: "**bold** and *italic*\n+ item1\n- item2"},
		},
		Draft: "next",
	}).Once()

	req := httptest.NewRequest(http.MethodGet, "/v1/chat", nil)
	rr := httptest.NewRecorder()
	handler.GetChat(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	resp := decodeState(t, rr)
	require.Len(t, resp.Turns, 2)
	assert.Equal(t, "🧑‍💬 hi", resp.Turns[0].HTML)
	assert.Equal(t, "🤖 <strong>bold</strong> and <em>italic</em><br /><ul><li>✅ item1</li><li>🔹 item2</li></ul>", resp.Turns[1].HTML)
	assert.Equal(t, "next", resp.Draft)
	assert.False(t, resp.Loading)
}

func TestChatHandler_UpdateDraft(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockChatSvc := setupChatHandler(t)
		mockChatSvc.On("SetDraft", "What is").Return(model.ChatState{Draft: "What is"}).Once()

		req := httptest.NewRequest(http.MethodPut, "/v1/chat/draft", strings.NewReader(`{"text":"What is"}`))
		rr := httptest.NewRecorder()
		handler.UpdateDraft(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "What is", decodeState(t, rr).Draft)
	})

	t.Run("Failure - Invalid JSON", func(t *testing.T) {
		handler, _ := setupChatHandler(t)

		req := httptest.NewRequest(http.MethodPut, "/v1/chat/draft", strings.NewReader(`{invalid`))
		rr := httptest.NewRecorder()
		handler.UpdateDraft(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestChatHandler_SubmitMessage(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockChatSvc := setupChatHandler(t)
		mockChatSvc.On("Submit", mock.Anything, "question").Return(model.ChatState{
			Turns: []model.Message{
				{Role: model.RoleUser, Content: "question"},
				{Role: model.RoleAssistant, Content: "answer"},
			},
		}, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/v1/chat/messages", strings.NewReader(`{"content":"question"}`))
		rr := httptest.NewRecorder()
		handler.SubmitMessage(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		resp := decodeState(t, rr)
		require.Len(t, resp.Turns, 2)
		assert.Equal(t, model.RoleAssistant, resp.Turns[1].Role)
		assert.Equal(t, "🤖 answer", resp.Turns[1].HTML)
	})

	t.Run("Failure - Exchange in flight", func(t *testing.T) {
		handler, mockChatSvc := setupChatHandler(t)
		mockChatSvc.On("Submit", mock.Anything, "again").Return(model.ChatState{}, service.ErrExchangeInFlight).Once()

		req := httptest.NewRequest(http.MethodPost, "/v1/chat/messages", strings.NewReader(`{"content":"again"}`))
		rr := httptest.NewRecorder()
		handler.SubmitMessage(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("Failure - Content too long", func(t *testing.T) {
		handler, _ := setupChatHandler(t)
		body, err := json.Marshal(api.SubmitMessageRequest{Content: strings.Repeat("a", 32001)})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/v1/chat/messages", strings.NewReader(string(body)))
		rr := httptest.NewRecorder()
		handler.SubmitMessage(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "Field 'Content' failed on the 'max' tag")
	})
}

func TestChatHandler_StartNewChat(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockChatSvc := setupChatHandler(t)
		mockChatSvc.On("StartNewChat", mock.Anything).Return(model.ChatState{}, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/v1/chat/new", nil)
		rr := httptest.NewRecorder()
		handler.StartNewChat(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Empty(t, decodeState(t, rr).Turns)
	})

	t.Run("Failure - Archive write fails", func(t *testing.T) {
		handler, mockChatSvc := setupChatHandler(t)
		mockChatSvc.On("StartNewChat", mock.Anything).Return(model.ChatState{}, fmt.Errorf("%w: disk full", app_errors.ErrInternal)).Once()

		req := httptest.NewRequest(http.MethodPost, "/v1/chat/new", nil)
		rr := httptest.NewRecorder()
		handler.StartNewChat(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Contains(t, rr.Body.String(), "internal server error")
		assert.NotContains(t, rr.Body.String(), "disk full")
	})

	t.Run("Failure - Unmapped error", func(t *testing.T) {
		handler, mockChatSvc := setupChatHandler(t)
		mockChatSvc.On("StartNewChat", mock.Anything).Return(model.ChatState{}, errors.New("boom")).Once()

		req := httptest.NewRequest(http.MethodPost, "/v1/chat/new", nil)
		rr := httptest.NewRecorder()
		handler.StartNewChat(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}
