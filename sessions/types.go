package sessions

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"chatrelay/models"
)

// Stream_Error_Message is the generic user-visible text emitted when streaming
// fails after the response has already been opened. The real error only goes
// to the log.
const Stream_Error_Message = "Oops, an error occurred!"

// Model is the streaming language-model client consumed by chat sessions.
type Model interface {
	Stream_Chat_Request(ctx context.Context, request models.Chat_Request, systemPrompt string) (<-chan models.Message_Part, <-chan error)
}

// SSEWriter handles Server-Sent Events writing
type SSEWriter interface {
	WriteSSE(data string) error
	WriteSSEError(message string) error
	Flush()
}

// HTTP_Session streams one chat completion into an SSE response.
type HTTP_Session struct {
	Model     Model
	RequestID string
	Logger    *log.Logger
}

// WS_Session streams chat completions over a WebSocket connection.
type WS_Session struct {
	Model     Model
	SessionID string
	Writer    *WebSocketWriter
	Logger    *log.Logger
}

// WebSocketWriter handles all WebSocket communication
type WebSocketWriter struct {
	Conn             *websocket.Conn
	Logger           *log.Logger
	StartTime        time.Time
	FirstTokenLogged bool
	mu               sync.Mutex
}

func (w *WebSocketWriter) WriteResponse(resp interface{}) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	// Track time to first token
	if !w.FirstTokenLogged && !w.StartTime.IsZero() {
		w.Logger.Printf("Time to first token: %v", time.Since(w.StartTime))
		w.FirstTokenLogged = true
	}
	return w.Conn.WriteJSON(resp)
}

func (w *WebSocketWriter) WriteError(message string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.Conn.WriteJSON(map[string]string{"error": message})
}

func (w *WebSocketWriter) WriteDone() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.Conn.WriteJSON(map[string]string{"type": "done"})
}
