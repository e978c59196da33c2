package models

import (
	"encoding/json"
	"testing"
)

func TestMessagePartUnmarshal(t *testing.T) {
	payload := `{
		"role": "assistant",
		"content": "",
		"parts": [
			{"type": "text", "text": "hello"},
			{"type": "tool-invocation", "toolInvocation": {"state": "result", "toolName": "weather", "toolCallId": "c1", "args": {"city": "Tokyo"}, "result": {"temp": 21}}},
			{"type": "reasoning", "reasoning": "thinking", "details": [{"type": "text", "text": "step"}, {"type": "redacted", "data": "opaque"}]},
			{"type": "step-start"},
			{"type": "mystery-part"}
		]
	}`

	var msg Chat_Message
	if err := json.Unmarshal([]byte(payload), &msg); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if len(msg.Parts) != 5 {
		t.Fatalf("expected 5 parts, got %d", len(msg.Parts))
	}

	if msg.Parts[0].Type != Part_Text || msg.Parts[0].Text != "hello" {
		t.Errorf("text part mismatch: %+v", msg.Parts[0])
	}

	inv := msg.Parts[1].ToolInvocation
	if msg.Parts[1].Type != Part_ToolInvocation || inv == nil {
		t.Fatalf("tool invocation part mismatch: %+v", msg.Parts[1])
	}
	if inv.State != State_Result || inv.ToolName != "weather" || inv.ToolCallID != "c1" {
		t.Errorf("tool invocation fields mismatch: %+v", inv)
	}
	if inv.Args["city"] != "Tokyo" {
		t.Errorf("expected args to survive decoding, got %+v", inv.Args)
	}

	if msg.Parts[2].Type != Part_Reasoning || msg.Parts[2].Reasoning != "thinking" {
		t.Errorf("reasoning part mismatch: %+v", msg.Parts[2])
	}
	if len(msg.Parts[2].Details) != 2 || msg.Parts[2].Details[1].Type != Detail_Redacted {
		t.Errorf("reasoning details mismatch: %+v", msg.Parts[2].Details)
	}

	if msg.Parts[3].Type != Part_StepStart {
		t.Errorf("step-start part mismatch: %+v", msg.Parts[3])
	}

	// Unknown discriminators are preserved, not rejected.
	if msg.Parts[4].Type != "mystery-part" {
		t.Errorf("unknown part type should survive decoding, got %+v", msg.Parts[4])
	}
}

func TestTextPart(t *testing.T) {
	p := Text_Part("chunk")
	if p.Type != Part_Text || p.Text != "chunk" {
		t.Errorf("unexpected part: %+v", p)
	}
}

func TestErrorPart(t *testing.T) {
	p := Error_Part("boom")
	if p.Type != "error" || p.Error != "boom" {
		t.Errorf("unexpected part: %+v", p)
	}

	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != `{"type":"error","error":"boom"}` {
		t.Errorf("unexpected wire shape: %s", data)
	}
}

func TestLast(t *testing.T) {
	if Last(nil) != nil {
		t.Error("expected nil for empty conversation")
	}

	messages := []Chat_Message{
		{Role: "user", Content: "first"},
		{Role: "assistant", Content: "second"},
	}
	last := Last(messages)
	if last == nil || last.Content != "second" {
		t.Fatalf("expected last message, got %+v", last)
	}

	// Last returns a pointer into the slice, not a copy.
	last.Content = "edited"
	if messages[1].Content != "edited" {
		t.Error("expected Last to alias the underlying slice")
	}
}
