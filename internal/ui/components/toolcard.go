// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/quill-tui/internal/session"
	"github.com/jeranaias/quill-tui/internal/toolcall"
	"github.com/jeranaias/quill-tui/internal/ui/styles"
)

// =============================================================================
// TOOL CARD
// =============================================================================

// maxResultLines caps how much tool output a result card shows. The
// full text still reaches the model; only the display is clipped.
const maxResultLines = 10

// ToolCard renders the bordered blocks for tool activity: a pending
// invocation awaiting approval, an executed result, or a denial. The
// border color tracks the tool, and the approval hint appears only on
// the card the arrow keys currently act on.
type ToolCard struct {
	turn   *session.Turn
	width  int
	active bool

	theme *styles.Theme
}

// NewToolCard creates a tool card renderer.
func NewToolCard(theme *styles.Theme) *ToolCard {
	return &ToolCard{theme: theme}
}

// SetTurn sets the history entry to render.
func (c *ToolCard) SetTurn(turn *session.Turn) {
	c.turn = turn
}

// SetWidth sets the display width.
func (c *ToolCard) SetWidth(width int) {
	c.width = width
}

// SetActive marks this card as the one awaiting a decision.
func (c *ToolCard) SetActive(active bool) {
	c.active = active
}

// View renders the card for the turn's kind. Turns that are not tool
// activity render as nothing.
func (c *ToolCard) View() string {
	if c.turn == nil {
		return ""
	}

	switch c.turn.Kind {
	case session.TurnPendingTool:
		return c.renderPending()
	case session.TurnToolResult:
		return c.renderResult()
	case session.TurnToolDenied:
		return c.renderDenied()
	default:
		return ""
	}
}

// renderPending renders the approval card.
func (c *ToolCard) renderPending() string {
	call := c.turn.Call
	if call == nil {
		return ""
	}

	title := c.theme.CardTitleFile
	desc := c.theme.CardTitleFile
	card := c.theme.CardPendingFile
	if call.Tool == toolcall.ReadDirectory {
		title = c.theme.CardTitleDir
		desc = c.theme.CardTitleDir
		card = c.theme.CardPendingDir
	}

	var builder strings.Builder
	builder.WriteString(title.Render("Pending Tool Call"))
	builder.WriteString("\n")
	builder.WriteString(desc.Render("[TOOL CALL] " + call.Tool.String() + ": " + call.Path))
	builder.WriteString("\n")
	builder.WriteString(c.theme.ToolEcho.Render("[tool_call: " + c.turn.Invocation + "]"))

	if c.active {
		builder.WriteString("\n")
		builder.WriteString(c.theme.ApproveHint.Render("→ Accept   ← Deny"))
	}

	return c.applyWidth(card).Render(builder.String())
}

// renderResult renders executed tool output.
func (c *ToolCard) renderResult() string {
	var builder strings.Builder
	builder.WriteString(c.theme.CardTitleResult.Render("Tool Result"))
	builder.WriteString("\n")
	builder.WriteString(c.theme.TurnBody.Render(c.clipContent()))
	builder.WriteString("\n")
	builder.WriteString(c.theme.TurnMeta.Render(c.turn.Timestamp.Format("15:04")))

	return c.applyWidth(c.theme.CardResult).Render(builder.String())
}

// renderDenied renders a refused invocation.
func (c *ToolCard) renderDenied() string {
	call := c.turn.Call
	if call == nil {
		return ""
	}

	var builder strings.Builder
	builder.WriteString(c.theme.CardTitleDenied.Render("Tool Call Denied"))
	builder.WriteString("\n")
	builder.WriteString(c.theme.CardTitleDenied.Render("[TOOL CALL DENIED] " + call.Tool.String() + ": " + call.Path))
	builder.WriteString("\n")
	builder.WriteString(c.theme.ToolEcho.Render("[tool_call: " + c.turn.Invocation + "]"))
	builder.WriteString("\n")
	builder.WriteString(c.theme.TurnMeta.Render(c.turn.Timestamp.Format("15:04")))

	return c.applyWidth(c.theme.CardDenied).Render(builder.String())
}

// clipContent returns the result text capped at maxResultLines.
func (c *ToolCard) clipContent() string {
	lines := strings.Split(c.turn.Content, "\n")
	if len(lines) <= maxResultLines {
		return c.turn.Content
	}

	remaining := len(lines) - maxResultLines
	clipped := append(lines[:maxResultLines:maxResultLines],
		"... ("+strconv.Itoa(remaining)+" more lines)")
	return strings.Join(clipped, "\n")
}

// applyWidth constrains the card style to the display width.
func (c *ToolCard) applyWidth(card lipgloss.Style) lipgloss.Style {
	if c.width > 4 {
		return card.Width(c.width - 2)
	}
	return card
}
