package controllers

import "github.com/gin-gonic/gin"

// GinSSEWriter implements sessions.SSEWriter for a gin context.
type GinSSEWriter struct {
	Context *gin.Context
}

func (w *GinSSEWriter) WriteSSE(data string) error {
	w.Context.SSEvent("message", data)
	w.Context.Writer.Flush()
	return nil
}

func (w *GinSSEWriter) WriteSSEError(message string) error {
	w.Context.SSEvent("error", message)
	w.Context.Writer.Flush()
	return nil
}

func (w *GinSSEWriter) Flush() {
	w.Context.Writer.Flush()
}
