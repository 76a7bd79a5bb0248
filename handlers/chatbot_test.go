package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ecohealth/sentinel/internal/chatbot"
	"github.com/ecohealth/sentinel/internal/models"
	"github.com/ecohealth/sentinel/internal/repository"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cannedAdapter struct {
	domain chatbot.Domain
	reply  string
}

func (a cannedAdapter) Domain() chatbot.Domain { return a.domain }
func (a cannedAdapter) Reply(ctx context.Context, msg chatbot.Message) string {
	return a.reply
}

func newChatRouter(t *testing.T, perMinute int) *gin.Engine {
	t.Helper()
	router := chatbot.NewRouter(
		cannedAdapter{chatbot.Agriculture, "Use drip irrigation."},
		cannedAdapter{chatbot.Healthcare, "See a doctor if it persists."},
		cannedAdapter{chatbot.Environment, "Sorry, I couldn't fetch environmental advice at this time."},
	)
	store := repository.For[models.ChatMessage](repository.NewMemoryBackend(), models.ChatMessages)
	r := gin.New()
	NewChatbotHandler(chatbot.NewService(router, store), perMinute).Register(r.Group("/api"))
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func getPath(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func body(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got), w.Body.String())
	return got
}

func TestChat_Success(t *testing.T) {
	r := newChatRouter(t, 20)

	w := postJSON(r, "/api/chatbot", `{"domain":"Agriculture","message":"How do I water tomatoes?","sessionId":"abc"}`)
	require.Equal(t, http.StatusOK, w.Code)
	got := body(t, w)
	assert.Equal(t, "Use drip irrigation.", got["reply"])
	assert.Equal(t, "abc", got["sessionId"])

	// the path segment wins over the body
	w = postJSON(r, "/api/chatbot/healthcare", `{"domain":"agriculture","message":"cough"}`)
	require.Equal(t, http.StatusOK, w.Code)
	got = body(t, w)
	assert.Equal(t, "See a doctor if it persists.", got["reply"])
	assert.NotEmpty(t, got["sessionId"])
}

func TestChat_ApologyIsStillOK(t *testing.T) {
	r := newChatRouter(t, 20)
	w := postJSON(r, "/api/chatbot/environment", `{"message":"AQI?"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Sorry, I couldn't fetch environmental advice at this time.", body(t, w)["reply"])
}

func TestChat_ValidationErrors(t *testing.T) {
	r := newChatRouter(t, 20)

	w := postJSON(r, "/api/chatbot", `{"domain":"finance","message":"hi"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid domain. Must be: agriculture, healthcare, or environment", body(t, w)["error"])

	w = postJSON(r, "/api/chatbot/healthcare", `{"message":"   "}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Message is required", body(t, w)["error"])

	w = postJSON(r, "/api/chatbot/healthcare", `not json`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Message is required", body(t, w)["error"])

	w = postJSON(r, "/api/chatbot/healthcare", `{"message":"`+strings.Repeat("x", 1001)+`"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChat_History(t *testing.T) {
	r := newChatRouter(t, 20)
	require.Equal(t, http.StatusOK, postJSON(r, "/api/chatbot/agriculture", `{"message":"rain?","sessionId":"s-9"}`).Code)

	w := getPath(r, "/api/chatbot/history?sessionId=s-9")
	require.Equal(t, http.StatusOK, w.Code)
	got := body(t, w)
	assert.Equal(t, true, got["success"])
	msgs := got["messages"].([]interface{})
	require.Len(t, msgs, 2)
	assert.Equal(t, "user", msgs[0].(map[string]interface{})["sender"])
	assert.Equal(t, "bot", msgs[1].(map[string]interface{})["sender"])

	require.Equal(t, http.StatusBadRequest, getPath(r, "/api/chatbot/history?domain=finance").Code)
}

func TestChat_RateLimited(t *testing.T) {
	r := newChatRouter(t, 2)
	for i := 0; i < 2; i++ {
		require.Equal(t, http.StatusOK, postJSON(r, "/api/chatbot/healthcare", `{"message":"hi"}`).Code)
	}
	w := postJSON(r, "/api/chatbot/healthcare", `{"message":"hi"}`)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
}
