package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/arbitrum1984/Arbitron-Systems/internal/advisor"
	"github.com/arbitrum1984/Arbitron-Systems/internal/model"

	"github.com/gin-gonic/gin"
)

type Responder interface {
	Respond(ctx context.Context, sessionID, query string) advisor.Answer
}

type ChatStore interface {
	GetAllSessions() ([]model.ChatSession, error)
	GetHistory(sessionID string) ([]model.ChatMessage, error)
	DeleteSession(sessionID string) error
	GetSessionCount() (int, error)
}

type ChatHandler struct {
	engine Responder
	store  ChatStore
}

func NewChatHandler(engine Responder, store ChatStore) *ChatHandler {
	return &ChatHandler{engine: engine, store: store}
}

// HandleQuery answers one chat query. The engine persists the
// user/assistant message pair itself, so the response here is always a
// well-formed answer object regardless of upstream failures.
func (h *ChatHandler) HandleQuery(c *gin.Context) {
	queryText := c.PostForm("query_text")
	sessionID := c.PostForm("session_id")

	if queryText == "" || sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query_text and session_id are required"})
		return
	}

	answer := h.engine.Respond(c.Request.Context(), sessionID, queryText)

	var ticker *string
	if answer.Ticker != "" {
		ticker = &answer.Ticker
	}

	c.JSON(http.StatusOK, QueryResponse{
		AnswerText: answer.Text,
		Ticker:     ticker,
		Status:     "success",
	})
}

func (h *ChatHandler) GetSessions(c *gin.Context) {
	sessions, err := h.store.GetAllSessions()
	if err != nil {
		slog.Error("error fetching sessions", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	res := make([]SessionResponse, 0, len(sessions))
	for _, s := range sessions {
		res = append(res, SessionResponse{
			ID:        s.ID,
			Title:     s.Title,
			CreatedAt: s.CreatedAt.Format(time.RFC3339),
		})
	}

	c.JSON(http.StatusOK, res)
}

func (h *ChatHandler) GetMessages(c *gin.Context) {
	sessionID := c.Param("id")

	messages, err := h.store.GetHistory(sessionID)
	if err != nil {
		slog.Error("error fetching history", "error", err, "session_id", sessionID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	res := make([]MessageResponse, 0, len(messages))
	for _, m := range messages {
		res = append(res, MessageResponse{
			ID:        m.ID,
			Role:      m.Role,
			Content:   m.Content,
			CreatedAt: m.CreatedAt.Format(time.RFC3339),
		})
	}

	c.JSON(http.StatusOK, res)
}

func (h *ChatHandler) DeleteSession(c *gin.Context) {
	sessionID := c.Param("id")

	if err := h.store.DeleteSession(sessionID); err != nil {
		slog.Error("error deleting session", "error", err, "session_id", sessionID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, StatusResponse{Status: "deleted"})
}

func (h *ChatHandler) GetHealth(c *gin.Context) {
	_, err := h.store.GetSessionCount()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"database": "disconnected",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": "connected",
	})
}
