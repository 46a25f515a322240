// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/quill-tui/internal/session"
	"github.com/jeranaias/quill-tui/internal/ui/components"
	"github.com/jeranaias/quill-tui/internal/util"
)

// =============================================================================
// FRAME
// =============================================================================

// View assembles the frame top to bottom: model bar, title art,
// conversation viewport, input box, status bar.
func (m *Model) View() string {
	if !m.ready {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.modelBar.View())
	b.WriteString("\n")

	if m.artVisible() {
		b.WriteString(m.titleArt.View())
		b.WriteString("\n\n")
	}

	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.renderInputBox())
	b.WriteString("\n")
	b.WriteString(m.statusBar.View())

	return b.String()
}

// artVisible reports whether the banner is drawn. Short terminals give
// its rows back to the conversation.
func (m *Model) artVisible() bool {
	return m.showTitleArt && m.height >= 20
}

// conversationHeight is the viewport row budget once the fixed chrome
// has been laid out.
func (m *Model) conversationHeight() int {
	h := m.height
	h-- // model bar
	if m.artVisible() {
		h -= m.titleArt.Height() + 1
	}
	h -= 4 // input title plus bordered box
	h--    // status bar
	if h < 3 {
		return 3
	}
	return h
}

// contentWidth is the wrap width for turn bodies. Bounded by the
// configured word wrap so ultrawide terminals stay readable.
func (m *Model) contentWidth() int {
	w := m.width - 2
	if w > m.wordWrap {
		w = m.wordWrap
	}
	if w < 20 {
		w = 20
	}
	return w
}

// =============================================================================
// INPUT BOX
// =============================================================================

func (m *Model) renderInputBox() string {
	v := m.engine.View()

	title := "Input (Enter to send, Ctrl+C to quit)"
	titleStyle := m.theme.InputTitleIdle
	boxStyle := m.theme.InputIdle
	if v.Loading {
		title = "Input (processing...) - Enter to send, Ctrl+C to quit"
		titleStyle = m.theme.InputTitleBusy
		boxStyle = m.theme.InputBusy
	}

	box := boxStyle.Width(m.width - 2).Render(m.input.View())
	return titleStyle.Render(title) + "\n" + box
}

// =============================================================================
// CONVERSATION
// =============================================================================

// renderConversation turns the engine snapshot into viewport content.
// The trailing pending card is the only interactive one; earlier cards
// render without the approval hint.
func (m *Model) renderConversation() string {
	v := m.engine.View()

	sections := make([]string, 0, len(v.Turns)+2)
	for i, turn := range v.Turns {
		switch turn.Kind {
		case session.TurnUser:
			sections = append(sections, m.renderUserTurn(turn))
		case session.TurnAssistant:
			sections = append(sections, m.renderAssistantTurn(turn))
		case session.TurnPendingTool, session.TurnToolResult, session.TurnToolDenied:
			m.toolCard.SetTurn(turn)
			m.toolCard.SetActive(i == len(v.Turns)-1 &&
				turn.Kind == session.TurnPendingTool &&
				v.State == session.StateAwaitingApproval)
			if card := m.toolCard.View(); card != "" {
				sections = append(sections, card)
			}
		}
	}

	if v.Loading {
		sections = append(sections, m.renderStreaming(v.InProgress))
	}
	if v.Err != "" {
		sections = append(sections, m.renderError(v.Err))
	}

	return strings.Join(sections, "\n\n")
}

// renderUserTurn draws the author's message right-aligned with the
// timestamp line above it.
func (m *Model) renderUserTurn(turn *session.Turn) string {
	meta := m.theme.TurnMeta.Render("USER " + turn.Timestamp.Format("15:04"))
	body := m.theme.UserPrefix.Render(">") + " " + m.theme.TurnBody.Render(turn.Content)

	return lipgloss.NewStyle().
		Width(m.width - 2).
		Align(lipgloss.Right).
		Render(meta + "\n" + body)
}

// renderAssistantTurn draws a committed reply. Fenced code gets the
// full block treatment; otherwise only inline spans are styled.
func (m *Model) renderAssistantTurn(turn *session.Turn) string {
	meta := m.theme.TurnMeta.Render("ASSISTANT " + turn.Timestamp.Format("15:04"))

	content := turn.Content
	if strings.Contains(content, "```") {
		content = components.ParseCodeBlocks(content, m.contentWidth())
	} else {
		content = components.ParseInlineCode(content)
	}

	body := m.theme.AssistantPrefix.Render("<") + " " + m.theme.TurnBody.Render(content)
	wrapped := lipgloss.NewStyle().Width(m.contentWidth()).Render(body)
	return meta + "\n" + wrapped
}

// renderStreaming draws the partial reply with the typing marker and
// block cursor. The text is NFC-normalized for display only; the
// transcript keeps the bytes the server sent.
func (m *Model) renderStreaming(inProgress string) string {
	meta := m.theme.TurnMeta.Render("ASSISTANT (typing...)") + " " +
		m.spinner.View()

	body := m.theme.AssistantPrefix.Render("<") + " " +
		m.theme.TurnBody.Render(util.NormalizeDisplay(inProgress)) +
		m.theme.StreamCursor.Render("▋")
	wrapped := lipgloss.NewStyle().Width(m.contentWidth()).Render(body)
	return meta + "\n" + wrapped
}

// renderError centers the failure text across the conversation area.
func (m *Model) renderError(errText string) string {
	return lipgloss.NewStyle().
		Width(m.width - 2).
		Align(lipgloss.Center).
		Render(m.theme.ErrorText.Render(errText))
}
