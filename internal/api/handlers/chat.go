package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"shopchat/internal/logger"
	"shopchat/internal/models"
	"shopchat/internal/services/openai"
	"shopchat/internal/store"
)

const (
	matchLimit      = 5
	chatTemperature = 0.2

	systemPrompt = "You are a helpful shopping assistant. Answer using only the " +
		"product context below. If the context does not contain the answer, say so."
)

type ChatHandler struct {
	store  *store.Store
	ai     *openai.Client
	logger *logger.Logger
}

func NewChatHandler(store *store.Store, ai *openai.Client, logger *logger.Logger) *ChatHandler {
	return &ChatHandler{
		store:  store,
		ai:     ai,
		logger: logger,
	}
}

// Ingest embeds a text chunk and stores it as a searchable document.
func (h *ChatHandler) Ingest(c *gin.Context) {
	var request struct {
		Content  string                 `json:"content" binding:"required"`
		Metadata map[string]interface{} `json:"metadata"`
	}

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}

	embedding, err := h.ai.CreateEmbedding(request.Content)
	if err != nil {
		h.logger.Error("Embedding failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	doc := &models.Document{
		Content:   request.Content,
		Metadata:  request.Metadata,
		Embedding: store.FormatVector(embedding),
	}
	if err := h.store.InsertDocument(doc); err != nil {
		h.logger.Error("Document insert failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "id": doc.ID})
}

// Chat answers a question over the ingested documents: embed the query,
// similarity-search, feed the matches into a completion, log both turns.
func (h *ChatHandler) Chat(c *gin.Context) {
	var request struct {
		Message   string `json:"message" binding:"required"`
		SessionID string `json:"session_id"`
	}

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}

	sessionID := request.SessionID
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	embedding, err := h.ai.CreateEmbedding(request.Message)
	if err != nil {
		h.logger.Error("Embedding failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	matches, err := h.store.MatchDocuments(embedding, matchLimit)
	if err != nil {
		h.logger.Error("Similarity search failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	var context strings.Builder
	for i, m := range matches {
		fmt.Fprintf(&context, "[%d] %s\n", i+1, m.Content)
	}

	reply, err := h.ai.ChatCompletion([]openai.Message{
		{Role: "system", Content: systemPrompt + "\n\nContext:\n" + context.String()},
		{Role: "user", Content: request.Message},
	}, chatTemperature)
	if err != nil {
		h.logger.Error("Chat completion failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	for _, m := range []models.Message{
		{SessionID: sessionID, Role: "user", Content: request.Message},
		{SessionID: sessionID, Role: "assistant", Content: reply},
	} {
		m := m
		if err := h.store.InsertMessage(&m); err != nil {
			h.logger.Error("Failed to log chat message: %v", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":         true,
		"reply":      reply,
		"session_id": sessionID,
		"sources":    matches,
	})
}
