package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"llamachat/internal/api"
	app_errors "llamachat/internal/errors"
	"llamachat/internal/interfaces/mocks"
	"llamachat/internal/model"
)

func setupSessionHandler(t *testing.T) (*api.SessionHandler, *mocks.MockChatService, *mocks.MockArchiveService) {
	mockChatSvc := mocks.NewMockChatService(t)
	mockArchiveSvc := mocks.NewMockArchiveService(t)
	return api.NewSessionHandler(mockChatSvc, mockArchiveSvc), mockChatSvc, mockArchiveSvc
}

func savedSession(id int64, title string) *model.SavedSession {
	return &model.SavedSession{
		ID:        id,
		Title:     title,
		CreatedAt: time.UnixMilli(id).UTC(),
		Turns: []model.Message{
			{Role: model.RoleUser, Content: title},
			{Role: model.RoleAssistant, Content: "answer"},
		},
	}
}

func TestSessionHandler_SaveSession(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockChatSvc, _ := setupSessionHandler(t)
		mockChatSvc.On("SaveCurrent", mock.Anything).Return(savedSession(1718000000000, "What is the capital of France?"), nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/v1/sessions", nil)
		rr := httptest.NewRecorder()
		handler.SaveSession(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		var resp api.SessionResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, int64(1718000000000), resp.ID)
		assert.Equal(t, "What is the capital ...", resp.DisplayTitle)
		assert.Equal(t, 2, resp.TurnCount)
		assert.Len(t, resp.Turns, 2)
	})

	t.Run("Empty conversation", func(t *testing.T) {
		handler, mockChatSvc, _ := setupSessionHandler(t)
		mockChatSvc.On("SaveCurrent", mock.Anything).Return(nil, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/v1/sessions", nil)
		rr := httptest.NewRecorder()
		handler.SaveSession(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Empty(t, rr.Body.String())
	})

	t.Run("Failure - Write error", func(t *testing.T) {
		handler, mockChatSvc, _ := setupSessionHandler(t)
		mockChatSvc.On("SaveCurrent", mock.Anything).Return(nil, app_errors.ErrInternal).Once()

		req := httptest.NewRequest(http.MethodPost, "/v1/sessions", nil)
		rr := httptest.NewRecorder()
		handler.SaveSession(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestSessionHandler_ListSessions(t *testing.T) {
	handler, _, mockArchiveSvc := setupSessionHandler(t)
	mockArchiveSvc.On("List").Return([]model.SavedSession{
		*savedSession(1, "short"),
		*savedSession(2, "abcdefghijklmnopqrstuvwxy"),
	}).Once()
	mockArchiveSvc.On("Persistent").Return(true).Once()

	req := httptest.NewRequest(http.MethodGet, "/v1/sessions", nil)
	rr := httptest.NewRecorder()
	handler.ListSessions(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp api.SessionListResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Persistent)
	require.Len(t, resp.Sessions, 2)
	assert.Equal(t, "short", resp.Sessions[0].DisplayTitle)
	assert.Equal(t, "abcdefghijklmnopqrstuvwxy", resp.Sessions[1].Title)
	assert.Equal(t, "abcdefghijklmnopqrst...", resp.Sessions[1].DisplayTitle)
}

func TestSessionHandler_GetSession(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, _, mockArchiveSvc := setupSessionHandler(t)
		mockArchiveSvc.On("Get", int64(42)).Return(savedSession(42, "hello"), nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/v1/sessions/42", nil)
		req = addChiURLParams(req, map[string]string{"sessionID": "42"})
		rr := httptest.NewRecorder()
		handler.GetSession(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp api.SessionResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "🧑‍💬 hello", resp.Turns[0].HTML)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		handler, _, mockArchiveSvc := setupSessionHandler(t)
		mockArchiveSvc.On("Get", int64(7)).Return(nil, app_errors.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/v1/sessions/7", nil)
		req = addChiURLParams(req, map[string]string{"sessionID": "7"})
		rr := httptest.NewRecorder()
		handler.GetSession(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("Failure - Invalid id", func(t *testing.T) {
		handler, _, _ := setupSessionHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/v1/sessions/abc", nil)
		req = addChiURLParams(req, map[string]string{"sessionID": "abc"})
		rr := httptest.NewRecorder()
		handler.GetSession(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "invalid session id")
	})
}

func TestSessionHandler_LoadSession(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockChatSvc, _ := setupSessionHandler(t)
		mockChatSvc.On("LoadSession", mock.Anything, int64(42)).Return(model.ChatState{Turns: savedSession(42, "hello").Turns}, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/v1/sessions/42/load", nil)
		req = addChiURLParams(req, map[string]string{"sessionID": "42"})
		rr := httptest.NewRecorder()
		handler.LoadSession(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Len(t, decodeState(t, rr).Turns, 2)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		handler, mockChatSvc, _ := setupSessionHandler(t)
		mockChatSvc.On("LoadSession", mock.Anything, int64(9)).Return(model.ChatState{}, app_errors.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodPost, "/v1/sessions/9/load", nil)
		req = addChiURLParams(req, map[string]string{"sessionID": "9"})
		rr := httptest.NewRecorder()
		handler.LoadSession(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestSessionHandler_DeleteSession(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, _, mockArchiveSvc := setupSessionHandler(t)
		mockArchiveSvc.On("Delete", mock.Anything, int64(42)).Return(nil).Once()

		req := httptest.NewRequest(http.MethodDelete, "/v1/sessions/42", nil)
		req = addChiURLParams(req, map[string]string{"sessionID": "42"})
		rr := httptest.NewRecorder()
		handler.DeleteSession(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
	})

	t.Run("Failure - Write error", func(t *testing.T) {
		handler, _, mockArchiveSvc := setupSessionHandler(t)
		mockArchiveSvc.On("Delete", mock.Anything, int64(42)).Return(app_errors.ErrInternal).Once()

		req := httptest.NewRequest(http.MethodDelete, "/v1/sessions/42", nil)
		req = addChiURLParams(req, map[string]string{"sessionID": "42"})
		rr := httptest.NewRecorder()
		handler.DeleteSession(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestSessionHandler_ClearSessions(t *testing.T) {
	handler, _, mockArchiveSvc := setupSessionHandler(t)
	mockArchiveSvc.On("Clear", mock.Anything).Return(nil).Once()

	req := httptest.NewRequest(http.MethodDelete, "/v1/sessions", nil)
	rr := httptest.NewRecorder()
	handler.ClearSessions(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}
