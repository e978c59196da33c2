package controllers

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"chatrelay/models"
	"chatrelay/sessions"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ChatWS handles GET /api/chat/ws: the same pipeline as Chat, delivered as
// JSON frames over a WebSocket. One Chat_Request per incoming frame; the
// connection survives across requests until the client closes it.
func (cc *Chat_Controller) ChatWS(c *gin.Context) {
	if user := cc.Auth.Resolve(c.Request); user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	sessionID := c.Query("session_id")
	if sessionID == "" {
		sessionID = uuid.NewString()[:8]
	}
	session := sessions.NewWSSession(sessionID, conn, cc.Model)

	for {
		var req models.Chat_Request
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				session.Logger.Printf("WebSocket error: %v", err)
			}
			break
		}

		if len(req.Messages) == 0 {
			session.Writer.WriteError("request must contain at least one message")
			continue
		}
		session.Logger.Printf("Processing %d messages", len(req.Messages))

		ctx, cancel := context.WithTimeout(c.Request.Context(), cc.Timeout)
		messages, systemPrompt := cc.prepare(ctx, req.Messages, session.Logger)
		if err := session.RunInteraction(ctx, models.Chat_Request{Messages: messages}, systemPrompt); err != nil {
			session.Logger.Printf("Interaction error: %v", err)
		}
		cancel()
	}

	session.Logger.Printf("WebSocket session ended")
}
