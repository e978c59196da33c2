package sessions

import (
	"context"
	"encoding/json"

	"chatrelay/models"
)

// RunSSEInteraction streams a completion into the writer, one SSE event per
// message part, in the order the model emits them. Errors that occur after the
// stream has opened are logged and surfaced to the client as a generic error
// event; the returned error carries the real cause for the caller's log.
func (s *HTTP_Session) RunSSEInteraction(ctx context.Context, request models.Chat_Request, systemPrompt string, writer SSEWriter) error {
	partChan, errChan := s.Model.Stream_Chat_Request(ctx, request, systemPrompt)

	for {
		select {
		case part, ok := <-partChan:
			if !ok {
				// Keep draining errChan: a fast-failing model may buffer its
				// terminal error and close both channels before we get here.
				partChan = nil
				break
			}

			jsonData, err := json.Marshal(part)
			if err != nil {
				s.Logger.Printf("Error marshalling part: %v", err)
				continue
			}

			if err := writer.WriteSSE(string(jsonData)); err != nil {
				s.Logger.Printf("Error writing to SSE stream: %v", err)
				return err
			}
			writer.Flush()

		case err, ok := <-errChan:
			if ok && err != nil {
				s.Logger.Printf("SSE stream error: %v", err)
				if writeErr := writer.WriteSSEError(Stream_Error_Message); writeErr != nil {
					s.Logger.Printf("Error writing SSE error: %v", writeErr)
				}
				writer.Flush()
				return err
			}
			if !ok {
				errChan = nil
			}

		case <-ctx.Done():
			s.Logger.Printf("SSE client disconnected")
			return ctx.Err()
		}

		if partChan == nil && errChan == nil {
			s.Logger.Printf("SSE stream finished.")
			return nil
		}
	}
}
