package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	models "chatrelay/models"
)

const defaultModel = "gemini-2.0-flash"

// Gemini_Model streams chat completions from the Gemini API. The zero value is
// usable; Model falls back to a default when empty.
type Gemini_Model struct {
	Model string `json:"model"`
	// APIKey overrides the GEMINI_API_KEY environment variable when set.
	APIKey string `json:"-"`
}

// Stream_Chat_Request streams a completion for the conversation. Parts are
// delivered on the first channel in model order; a single error on the second
// channel is terminal. Both channels close when the stream ends.
func (g *Gemini_Model) Stream_Chat_Request(ctx context.Context, request models.Chat_Request, systemPrompt string) (<-chan models.Message_Part, <-chan error) {
	partChan := make(chan models.Message_Part)
	errChan := make(chan error, 1)

	go func() {
		defer close(partChan)
		defer close(errChan)

		contents, system, err := create_gemini_contents(request.Messages, systemPrompt)
		if err != nil {
			errChan <- fmt.Errorf("failed to create gemini request: %w", err)
			return
		}

		var cc *genai.ClientConfig
		if g.APIKey != "" {
			cc = &genai.ClientConfig{APIKey: g.APIKey, Backend: genai.BackendGeminiAPI}
		}
		client, err := genai.NewClient(ctx, cc)
		if err != nil {
			errChan <- fmt.Errorf("failed to create gemini client: %w", err)
			return
		}

		modelToUse := g.Model
		if modelToUse == "" {
			modelToUse = defaultModel
		}

		var config *genai.GenerateContentConfig
		if system != "" {
			config = &genai.GenerateContentConfig{
				SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: system}}},
			}
		}

		for resp, err := range client.Models.GenerateContentStream(ctx, modelToUse, contents, config) {
			if err != nil {
				errChan <- fmt.Errorf("gemini stream error: %w", err)
				return
			}
			for _, candidate := range resp.Candidates {
				if candidate.Content == nil {
					continue
				}
				for _, part := range candidate.Content.Parts {
					if part.Text == "" {
						continue
					}
					select {
					case partChan <- models.Text_Part(part.Text):
					case <-ctx.Done():
						errChan <- ctx.Err()
						return
					}
				}
			}
		}
	}()

	return partChan, errChan
}

// create_gemini_contents converts chat messages into Gemini contents. System
// messages are folded into the system instruction rather than the contents
// list, appended after the caller-supplied prompt.
func create_gemini_contents(messages []models.Chat_Message, systemPrompt string) ([]*genai.Content, string, error) {
	systemParts := []string{}
	if systemPrompt != "" {
		systemParts = append(systemParts, systemPrompt)
	}

	allContents := []*genai.Content{}
	for _, msg := range messages {
		text := message_text(msg)
		if text == "" {
			continue
		}

		switch msg.Role {
		case "system":
			systemParts = append(systemParts, text)
		case "assistant":
			allContents = append(allContents, genai.NewContentFromText(text, genai.RoleModel))
		case "user":
			allContents = append(allContents, genai.NewContentFromText(text, genai.RoleUser))
		default:
			return nil, "", fmt.Errorf("unknown message role %q", msg.Role)
		}
	}

	if len(allContents) == 0 {
		return nil, "", fmt.Errorf("cannot create gemini request with no content")
	}

	return allContents, strings.Join(systemParts, "\n\n"), nil
}

// message_text extracts the text of a message, falling back to concatenated
// text parts when Content is empty.
func message_text(msg models.Chat_Message) string {
	if msg.Content != "" {
		return msg.Content
	}
	var builder strings.Builder
	for _, part := range msg.Parts {
		if part.Type == models.Part_Text && part.Text != "" {
			builder.WriteString(part.Text)
		}
	}
	return builder.String()
}
