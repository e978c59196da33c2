package sessions

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gorilla/websocket"
)

// NewHTTPSession creates a session for one SSE chat request.
func NewHTTPSession(requestID string, model Model) *HTTP_Session {
	logger := log.New(os.Stdout, fmt.Sprintf("[HTTP %s] ", requestID), log.LstdFlags)

	return &HTTP_Session{
		Model:     model,
		RequestID: requestID,
		Logger:    logger,
	}
}

// NewWSSession creates a session bound to a WebSocket connection.
func NewWSSession(sessionID string, conn *websocket.Conn, model Model) *WS_Session {
	logger := log.New(os.Stdout, fmt.Sprintf("[WS %s] ", sessionID), log.LstdFlags)
	writer := &WebSocketWriter{
		Conn:      conn,
		Logger:    logger,
		StartTime: time.Now(),
	}

	return &WS_Session{
		Model:     model,
		SessionID: sessionID,
		Writer:    writer,
		Logger:    logger,
	}
}
