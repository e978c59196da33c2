package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"chatrelay/auth"
	"chatrelay/models"
	"chatrelay/search"
	"chatrelay/sessions"
)

// Searcher is the web-search collaborator. Search returns formatted result
// text and never fails; Enabled reports whether a credential is configured.
type Searcher interface {
	Enabled() bool
	Search(ctx context.Context, query string) string
}

// Chat_Controller serves the chat endpoints. Everything is request-scoped;
// the controller itself holds only collaborators.
type Chat_Controller struct {
	Model   sessions.Model
	Search  Searcher
	Auth    auth.SessionResolver
	Timeout time.Duration
}

// NewChatController wires the chat endpoints. A non-positive timeout falls
// back to the 60s streaming ceiling.
func NewChatController(model sessions.Model, searcher Searcher, resolver auth.SessionResolver, timeout time.Duration) *Chat_Controller {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Chat_Controller{
		Model:   model,
		Search:  searcher,
		Auth:    resolver,
		Timeout: timeout,
	}
}

// RegisterRoutes mounts the chat endpoints on the router.
func (cc *Chat_Controller) RegisterRoutes(r gin.IRouter) {
	r.POST("/api/chat", cc.Chat)
	r.GET("/api/chat/ws", cc.ChatWS)
	r.GET("/health", cc.Health)
}

// Chat handles POST /api/chat: authenticate, parse, optionally augment with
// search results, then stream the completion as SSE message-part events.
func (cc *Chat_Controller) Chat(c *gin.Context) {
	requestID := uuid.NewString()[:8]
	session := sessions.NewHTTPSession(requestID, cc.Model)
	session.Logger.Printf("Chat request received")

	if user := cc.Auth.Resolve(c.Request); user == nil {
		session.Logger.Printf("Unauthenticated request rejected")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.Chat_Request
	if err := c.ShouldBindJSON(&req); err != nil {
		session.Logger.Printf("Error parsing request body: %v", err)
		c.String(http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if len(req.Messages) == 0 {
		session.Logger.Printf("Request contained no messages")
		c.String(http.StatusInternalServerError, "Internal Server Error")
		return
	}
	session.Logger.Printf("Processing %d messages", len(req.Messages))

	ctx, cancel := context.WithTimeout(c.Request.Context(), cc.Timeout)
	defer cancel()

	messages, systemPrompt := cc.prepare(ctx, req.Messages, session.Logger)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	writer := &GinSSEWriter{Context: c}
	if err := session.RunSSEInteraction(ctx, models.Chat_Request{Messages: messages}, systemPrompt, writer); err != nil {
		session.Logger.Printf("Streaming interaction failed: %v", err)
	}
}

// prepare applies search augmentation when the latest user message asks for
// fresh information and a search credential is configured. It returns a
// working copy of the message list (the caller's slice is never mutated) and
// the system prompt to condition the completion on.
func (cc *Chat_Controller) prepare(ctx context.Context, messages []models.Chat_Message, logger *log.Logger) ([]models.Chat_Message, string) {
	last := models.Last(messages)
	if last == nil || last.Role != "user" || !search.Needs_Search(last.Content) || !cc.Search.Enabled() {
		logger.Printf("Plain conversation mode")
		return messages, Plain_System_Prompt
	}

	logger.Printf("Search augmentation triggered")
	results := cc.Search.Search(ctx, last.Content)

	augmented := make([]models.Chat_Message, 0, len(messages)+1)
	augmented = append(augmented, messages...)
	augmented = append(augmented, models.Chat_Message{
		Role:    "assistant",
		Content: Search_Preamble + "\n\n" + results,
	})
	return augmented, Search_System_Prompt
}

// Health is a liveness probe.
func (cc *Chat_Controller) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
