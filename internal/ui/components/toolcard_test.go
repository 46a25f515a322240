// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"github.com/jeranaias/quill-tui/internal/session"
	"github.com/jeranaias/quill-tui/internal/toolcall"
	"github.com/jeranaias/quill-tui/internal/ui/styles"
)

// =============================================================================
// PENDING CARD TESTS
// =============================================================================

func TestToolCardPendingFile(t *testing.T) {
	card := NewToolCard(styles.NewTheme())
	turn := session.NewPendingToolTurn(toolcall.Call{Tool: toolcall.ReadFile, Path: "notes.txt"})
	card.SetTurn(turn)
	card.SetActive(true)

	view := card.View()

	wants := []string{
		"Pending Tool Call",
		"[TOOL CALL] read_file: notes.txt",
		`[tool_call: read_file("notes.txt")]`,
		"→ Accept   ← Deny",
	}
	for _, want := range wants {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestToolCardPendingDirectory(t *testing.T) {
	card := NewToolCard(styles.NewTheme())
	turn := session.NewPendingToolTurn(toolcall.Call{Tool: toolcall.ReadDirectory, Path: "src"})
	card.SetTurn(turn)
	card.SetActive(true)

	view := card.View()

	if !strings.Contains(view, "[TOOL CALL] read_directory: src") {
		t.Errorf("View() = %q, missing directory description", view)
	}
}

func TestToolCardInactiveHidesApprovalHint(t *testing.T) {
	card := NewToolCard(styles.NewTheme())
	turn := session.NewPendingToolTurn(toolcall.Call{Tool: toolcall.ReadFile, Path: "a.txt"})
	card.SetTurn(turn)
	card.SetActive(false)

	if strings.Contains(card.View(), "Accept") {
		t.Error("View() shows approval hint on an inactive card")
	}
}

// =============================================================================
// RESULT CARD TESTS
// =============================================================================

func TestToolCardResult(t *testing.T) {
	card := NewToolCard(styles.NewTheme())
	card.SetTurn(session.NewToolResultTurn("first line\nsecond line"))

	view := card.View()

	if !strings.Contains(view, "Tool Result") {
		t.Error("View() missing result title")
	}
	if !strings.Contains(view, "first line") {
		t.Error("View() missing result content")
	}
}

func TestToolCardResultClipsLongOutput(t *testing.T) {
	lines := make([]string, 15)
	for i := range lines {
		lines[i] = "row"
	}

	card := NewToolCard(styles.NewTheme())
	card.SetTurn(session.NewToolResultTurn(strings.Join(lines, "\n")))

	view := card.View()

	if !strings.Contains(view, "... (5 more lines)") {
		t.Errorf("View() = %q, want clipped-output marker", view)
	}
}

// =============================================================================
// DENIED CARD TESTS
// =============================================================================

func TestToolCardDenied(t *testing.T) {
	call := toolcall.Call{Tool: toolcall.ReadFile, Path: "secret.txt"}
	turn := session.NewToolDeniedTurn(call, call.Invocation())

	card := NewToolCard(styles.NewTheme())
	card.SetTurn(turn)

	view := card.View()

	wants := []string{
		"Tool Call Denied",
		"[TOOL CALL DENIED] read_file: secret.txt",
		`[tool_call: read_file("secret.txt")]`,
	}
	for _, want := range wants {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

// =============================================================================
// DISPATCH TESTS
// =============================================================================

func TestToolCardIgnoresConversationTurns(t *testing.T) {
	card := NewToolCard(styles.NewTheme())

	card.SetTurn(session.NewUserTurn("hello"))
	if card.View() != "" {
		t.Error("View() should render nothing for user turns")
	}

	card.SetTurn(session.NewAssistantTurn("hi"))
	if card.View() != "" {
		t.Error("View() should render nothing for assistant turns")
	}
}

func TestToolCardNilTurn(t *testing.T) {
	card := NewToolCard(styles.NewTheme())

	if card.View() != "" {
		t.Error("View() without a turn should render nothing")
	}
}
