package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recipebook/go-services/internal/config"
	"github.com/recipebook/go-services/internal/users"
	"github.com/recipebook/go-services/pkg/middleware"
)

func chatRouter(t *testing.T, ai config.AIConfig) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	userSvc := users.NewService(users.NewMemoryRepository(), testSecret)
	_, token, err := userSvc.Register(t.Context(), "Ana", "ana@example.com", "s3cret-pw")
	require.NoError(t, err)

	r := gin.New()
	r.Use(middleware.Identity(testSecret))
	NewChatHandler(ai).Register(r.Group("/"))
	return r, token
}

func postChat(r *gin.Engine, token string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/ai/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestChatRequiresAuthentication(t *testing.T) {
	r, _ := chatRouter(t, config.AIConfig{APIKey: "k", BaseURL: "http://unused", Model: "m"})

	w := postChat(r, "", `{"messages":[{"role":"user","content":"hi"}]}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestChatUnconfiguredIsUnavailable(t *testing.T) {
	r, token := chatRouter(t, config.AIConfig{})

	w := postChat(r, token, `{"messages":[{"role":"user","content":"hi"}]}`)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestChatRejectsEmptyMessages(t *testing.T) {
	r, token := chatRouter(t, config.AIConfig{APIKey: "k", BaseURL: "http://unused", Model: "m"})

	w := postChat(r, token, `{"messages":[]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChatRelaysUpstreamResponse(t *testing.T) {
	var got struct {
		Model    string        `json:"model"`
		Messages []ChatMessage `json:"messages"`
	}
	var gotAuth string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		require.Equal(t, "/chat/completions", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"pong"}}]}`))
	}))
	defer upstream.Close()

	r, token := chatRouter(t, config.AIConfig{APIKey: "test-key", BaseURL: upstream.URL, Model: "gpt-4o-mini"})

	w := postChat(r, token, `{"messages":[{"role":"user","content":"ping"}]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "pong")
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	// model injected server-side, caller messages forwarded verbatim
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "gpt-4o-mini", got.Model)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "ping", got.Messages[0].Content)
}

func TestChatUpstreamErrorIsRelayed(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":"rate limited"}`))
	}))
	defer upstream.Close()

	r, token := chatRouter(t, config.AIConfig{APIKey: "k", BaseURL: upstream.URL, Model: "m"})

	w := postChat(r, token, `{"messages":[{"role":"user","content":"hi"}]}`)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "rate limited")
}
