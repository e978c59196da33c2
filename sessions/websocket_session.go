package sessions

import (
	"context"

	"chatrelay/models"
)

// RunInteraction streams one completion over the WebSocket connection: a JSON
// frame per message part, then a done frame. Stream errors become a generic
// error frame; the connection stays open for the next request.
func (ws *WS_Session) RunInteraction(ctx context.Context, request models.Chat_Request, systemPrompt string) error {
	partChan, errChan := ws.Model.Stream_Chat_Request(ctx, request, systemPrompt)

	for {
		select {
		case part, ok := <-partChan:
			if !ok {
				// Keep draining errChan: a fast-failing model may buffer its
				// terminal error and close both channels before we get here.
				partChan = nil
				break
			}
			if err := ws.Writer.WriteResponse(part); err != nil {
				ws.Logger.Printf("Error writing to WebSocket: %v", err)
				return err
			}

		case err, ok := <-errChan:
			if ok && err != nil {
				ws.Logger.Printf("WebSocket stream error: %v", err)
				if writeErr := ws.Writer.WriteError(Stream_Error_Message); writeErr != nil {
					ws.Logger.Printf("Error writing WebSocket error: %v", writeErr)
				}
				return err
			}
			if !ok {
				errChan = nil
			}

		case <-ctx.Done():
			ws.Logger.Printf("WebSocket client disconnected")
			return ctx.Err()
		}

		if partChan == nil && errChan == nil {
			return ws.Writer.WriteDone()
		}
	}
}
