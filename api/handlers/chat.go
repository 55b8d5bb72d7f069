package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/edumetric/edumetric/api/middleware"
	"github.com/edumetric/edumetric/internal/engine"
	"github.com/edumetric/edumetric/internal/events"
	"github.com/edumetric/edumetric/pkg/database/queries"
	"github.com/edumetric/edumetric/pkg/models"
	"github.com/edumetric/edumetric/pkg/validation"
)

type ChatHandler struct {
	engine    *engine.Engine
	chatLog   *queries.ChatLogRepository
	publisher *events.Publisher
}

func NewChatHandler(eng *engine.Engine, chatLog *queries.ChatLogRepository, publisher *events.Publisher) *ChatHandler {
	return &ChatHandler{
		engine:    eng,
		chatLog:   chatLog,
		publisher: publisher,
	}
}

type ChatRequest struct {
	Query string `json:"query" binding:"required"`
}

type ChatResponse struct {
	Query    string                `json:"query"`
	Intent   *models.Intent        `json:"intent"`
	Result   *models.QueryResponse `json:"result"`
	Answered time.Time             `json:"answered"`
}

// Ask answers a free-text analytics question and records the exchange.
func (h *ChatHandler) Ask(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	query := validation.SanitizeString(req.Query)
	if err := validation.ValidateChatQuery(query, models.MaxChatQueryLength); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, parsed := h.engine.Ask(c.Request.Context(), query)

	h.recordExchange(c, query, parsed, result)

	c.JSON(http.StatusOK, ChatResponse{
		Query:    query,
		Intent:   parsed,
		Result:   result,
		Answered: time.Now().UTC(),
	})
}

// History returns the most recent exchanges.
func (h *ChatHandler) History(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	entries, err := h.chatLog.Recent(ctx, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if entries == nil {
		entries = []models.ChatLogEntry{}
	}

	c.JSON(http.StatusOK, gin.H{
		"entries": entries,
		"count":   len(entries),
	})
}

func (h *ChatHandler) recordExchange(c *gin.Context, query string, parsed *models.Intent, result *models.QueryResponse) {
	summary := ""
	if data, err := json.Marshal(result); err == nil && len(data) <= 4096 {
		summary = string(data)
	}

	entry := &models.ChatLogEntry{
		Username: middleware.GetUsername(c),
		Query:    query,
		Action:   string(parsed.Action),
		Response: summary,
	}

	h.publisher.ChatMessage(entry)
}
