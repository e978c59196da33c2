package models

// Part type discriminators used on the wire. Anything else is preserved and
// rendered through the fallback arm.
const (
	Part_Text           = "text"
	Part_ToolInvocation = "tool-invocation"
	Part_Reasoning      = "reasoning"
	Part_StepStart      = "step-start"
)

// Tool invocation states.
const (
	State_PartialCall = "partial-call"
	State_Call        = "call"
	State_Result      = "result"
)

// Reasoning detail discriminators.
const (
	Detail_Text     = "text"
	Detail_Redacted = "redacted"
)

type Chat_Message struct {
	Role    string         `json:"role"` // "user", "assistant", "system"
	Content string         `json:"content"`
	Parts   []Message_Part `json:"parts,omitempty"`
}

// Message_Part is one discriminated segment of an assistant turn. Type decides
// which of the optional fields is populated; unknown types keep their raw Type
// so downstream renderers can name them.
type Message_Part struct {
	Type           string             `json:"type"`
	Text           string             `json:"text,omitempty"`
	ToolInvocation *Tool_Invocation   `json:"toolInvocation,omitempty"`
	Reasoning      string             `json:"reasoning,omitempty"`
	Details        []Reasoning_Detail `json:"details,omitempty"`
	// Error carries the generic user-visible message on "error" chunks emitted
	// by the streaming pipeline. Never produced by the model itself.
	Error string `json:"error,omitempty"`
}

type Tool_Invocation struct {
	State      string                 `json:"state"` // "partial-call", "call", "result"
	ToolName   string                 `json:"toolName"`
	ToolCallID string                 `json:"toolCallId,omitempty"`
	Args       map[string]interface{} `json:"args,omitempty"`
	Result     interface{}            `json:"result,omitempty"`
}

type Reasoning_Detail struct {
	Type string `json:"type"` // "text", "redacted"
	Text string `json:"text,omitempty"`
	Data string `json:"data,omitempty"`
}

// Text_Part wraps a plain text delta as a streamable part.
func Text_Part(text string) Message_Part {
	return Message_Part{Type: Part_Text, Text: text}
}

// Error_Part wraps a user-visible error message as a streamable part.
func Error_Part(message string) Message_Part {
	return Message_Part{Type: "error", Error: message}
}

// Last returns the final message of a conversation, or nil when empty.
func Last(messages []Chat_Message) *Chat_Message {
	if len(messages) == 0 {
		return nil
	}
	return &messages[len(messages)-1]
}
