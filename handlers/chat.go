package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/recipebook/go-services/internal/config"
	"github.com/recipebook/go-services/pkg/logger"
	"github.com/recipebook/go-services/pkg/middleware"
)

// ChatMessage mirrors the chat-completions message shape.
type ChatMessage struct {
	Role    string `json:"role" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// ChatRequest is the payload for /api/ai/chat.
type ChatRequest struct {
	Messages []ChatMessage `json:"messages" binding:"required,min=1"`
}

// ChatHandler forwards chat requests to the configured upstream API. It is a
// pure passthrough: the upstream's status and body are relayed as-is.
type ChatHandler struct {
	ai     config.AIConfig
	client *http.Client
}

func NewChatHandler(ai config.AIConfig) *ChatHandler {
	return &ChatHandler{ai: ai, client: &http.Client{Timeout: 60 * time.Second}}
}

// Register routes under /api/ai
func (h *ChatHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/api/ai", middleware.RequireUser())
	g.POST("/chat", h.Chat)
}

func (h *ChatHandler) Chat(c *gin.Context) {
	if h.ai.APIKey == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "chat is not configured"})
		return
	}
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	body, err := json.Marshal(gin.H{"model": h.ai.Model, "messages": req.Messages})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "chat request failed"})
		return
	}
	upstream, err := http.NewRequestWithContext(c.Request.Context(), http.MethodPost,
		h.ai.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "chat request failed"})
		return
	}
	upstream.Header.Set("Content-Type", "application/json")
	upstream.Header.Set("Authorization", "Bearer "+h.ai.APIKey)

	resp, err := h.client.Do(upstream)
	if err != nil {
		logger.Errorf("chat upstream error: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "chat upstream unavailable"})
		return
	}
	defer resp.Body.Close()

	c.Status(resp.StatusCode)
	c.Header("Content-Type", resp.Header.Get("Content-Type"))
	if _, err := io.Copy(c.Writer, resp.Body); err != nil {
		logger.Errorf("chat relay error: %v", err)
	}
}
