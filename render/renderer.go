// Package render turns assistant message parts into styled terminal blocks.
package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"chatrelay/models"
)

const noContentPlaceholder = "No content available"

var (
	toolPanelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)

	reasoningPanelStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderLeft(true).
				BorderForeground(lipgloss.Color("212")).
				PaddingLeft(1)

	panelLabelStyle = lipgloss.NewStyle().Bold(true)
	markerStyle     = lipgloss.NewStyle().Faint(true).Italic(true)
	fallbackStyle   = lipgloss.NewStyle().Faint(true)
)

// Renderer renders message parts for terminal display. Rendering is purely
// presentational and idempotent: the same input always yields the same output.
type Renderer struct {
	width int
	md    *glamour.TermRenderer
}

// NewRenderer creates a renderer wrapping a glamour markdown renderer at the
// given width. A nil markdown renderer (glamour init failure) degrades every
// markdown block to raw text rather than failing.
func NewRenderer(width int) *Renderer {
	if width <= 0 {
		width = 80
	}
	md, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		md = nil
	}
	return &Renderer{width: width, md: md}
}

// RenderMessage renders a full message, one block per part, joined by
// newlines. With no parts the raw content goes through the markdown
// transform; with neither, a placeholder is shown.
func (r *Renderer) RenderMessage(msg models.Chat_Message) string {
	return strings.Join(r.RenderParts(msg), "\n")
}

// RenderParts returns one visual block per part, in original order.
func (r *Renderer) RenderParts(msg models.Chat_Message) []string {
	if len(msg.Parts) == 0 {
		if msg.Content != "" {
			return []string{r.Markdown(msg.Content)}
		}
		return []string{markerStyle.Render(noContentPlaceholder)}
	}

	blocks := make([]string, 0, len(msg.Parts))
	for _, part := range msg.Parts {
		blocks = append(blocks, r.RenderPart(part))
	}
	return blocks
}

// RenderPart renders a single part by discriminator. Unknown types get a
// fallback line naming the type; this arm guarantees forward compatibility.
func (r *Renderer) RenderPart(part models.Message_Part) string {
	switch part.Type {
	case models.Part_Text:
		return r.Markdown(part.Text)
	case models.Part_ToolInvocation:
		return r.renderToolInvocation(part.ToolInvocation)
	case models.Part_Reasoning:
		return r.renderReasoning(part)
	case models.Part_StepStart:
		return markerStyle.Render("Starting new step")
	default:
		return fallbackStyle.Render(fmt.Sprintf("Unknown part type: %s", part.Type))
	}
}

func (r *Renderer) renderToolInvocation(inv *models.Tool_Invocation) string {
	if inv == nil {
		return fallbackStyle.Render("Unknown part type: tool-invocation (missing payload)")
	}

	label := "Tool Called"
	switch inv.State {
	case models.State_PartialCall:
		label = "Calling"
	case models.State_Result:
		label = "Tool Result"
	}

	var body strings.Builder
	body.WriteString(panelLabelStyle.Render(label) + ": " + inv.ToolName)

	if inv.State == models.State_Result {
		if dump := prettyJSON(inv.Result); dump != "" {
			body.WriteString("\n" + dump)
		}
	} else if dump := prettyJSON(inv.Args); dump != "" {
		body.WriteString("\n" + dump)
	}

	return toolPanelStyle.Width(r.width - 2).Render(body.String())
}

func (r *Renderer) renderReasoning(part models.Message_Part) string {
	var body strings.Builder
	body.WriteString(panelLabelStyle.Render("Reasoning"))
	if part.Reasoning != "" {
		body.WriteString("\n" + part.Reasoning)
	}
	for _, detail := range part.Details {
		body.WriteString("\n")
		switch detail.Type {
		case models.Detail_Text:
			body.WriteString(detail.Text)
		case models.Detail_Redacted:
			body.WriteString("[redacted reasoning data]")
		default:
			body.WriteString("Unknown detail type")
		}
	}
	return reasoningPanelStyle.Render(body.String())
}

// Markdown renders markdown content for terminal display. Returns the
// original content if rendering fails or the renderer is unavailable.
func (r *Renderer) Markdown(content string) string {
	if r.md == nil {
		return content
	}
	rendered, err := r.md.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(rendered, "\n")
}

func prettyJSON(v interface{}) string {
	if v == nil {
		return ""
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}
