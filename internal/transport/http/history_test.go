package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weitseng/rolechat/internal/domain"
)

func TestGetHistoryEndpoint(t *testing.T) {
	e := echo.New()
	h, svc := newTestHandler(t)

	_, err := svc.Chat(context.Background(), domain.ChatRequest{Message: "哈囉", SessionID: "s1"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/v1/sessions/s1/history", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("session_id")
	c.SetParamValues("s1")

	require.NoError(t, h.GetHistory(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp domain.HistoryResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "客服代表", resp.Role.Name)
	require.Len(t, resp.History, 2)
	assert.Equal(t, domain.SpeakerUser, resp.History[0].Speaker)
	assert.Equal(t, "哈囉", resp.History[0].Text)
}

func TestGetHistoryEndpointNotFound(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/sessions/nope/history", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("session_id")
	c.SetParamValues("nope")

	require.NoError(t, h.GetHistory(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestClearHistoryEndpoint(t *testing.T) {
	e := echo.New()
	h, svc := newTestHandler(t)

	_, err := svc.Chat(context.Background(), domain.ChatRequest{Message: "哈囉", SessionID: "s1"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodDelete, "/v1/sessions/s1/history", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("session_id")
	c.SetParamValues("s1")

	require.NoError(t, h.ClearHistory(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	hist, err := svc.GetHistory("s1")
	require.NoError(t, err)
	assert.Empty(t, hist.History)
}

func TestClearHistoryEndpointNotFound(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodDelete, "/v1/sessions/nope/history", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("session_id")
	c.SetParamValues("nope")

	require.NoError(t, h.ClearHistory(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetTranscriptEndpoint(t *testing.T) {
	e := echo.New()
	h, svc := newTestHandler(t)

	_, err := svc.Chat(context.Background(), domain.ChatRequest{Message: "哈囉", SessionID: "s1"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/v1/sessions/s1/transcript", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("session_id")
	c.SetParamValues("s1")

	require.NoError(t, h.GetTranscript(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "哈囉")
}
