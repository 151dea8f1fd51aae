package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tw-agent/agent/internal/core"
	"tw-agent/shared/logger"
)

type echoHandler struct{}

func (echoHandler) HandleMessage(ctx context.Context, msg core.Message, sink core.ReplySink) (bool, error) {
	if msg.Text == "ignore me" {
		return false, nil
	}
	return true, sink.Send(ctx, core.Reply{Text: "echo: " + msg.Text, Action: "ECHO"})
}

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	RegisterRoutes(router, echoHandler{}, logger.NewNop())
	return router
}

func TestHealthEndpoint(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	testRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestStatusEndpoint(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	testRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "uptime")
}

func TestMessageEndpoint(t *testing.T) {
	w := httptest.NewRecorder()
	body := `{"text":"hello","source":"twitter"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/message", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	testRouter().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"handled":true,"replies":[{"text":"echo: hello","action":"ECHO"}]}`, w.Body.String())
}

func TestMessageEndpointUnhandled(t *testing.T) {
	w := httptest.NewRecorder()
	body := `{"text":"ignore me"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/message", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	testRouter().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"handled":false,"replies":[]}`, w.Body.String())
}

func TestMessageEndpointRequiresText(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/message", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	testRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
