// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session contains the conversation engine and its data model.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/jeranaias/quill-tui/internal/toolcall"
)

// =============================================================================
// TURN KIND
// =============================================================================

// TurnKind tags the variant of a history entry.
type TurnKind string

const (
	// TurnUser is text the human typed.
	TurnUser TurnKind = "user"
	// TurnAssistant is a committed model reply.
	TurnAssistant TurnKind = "assistant"
	// TurnPendingTool is a detected invocation awaiting approval.
	TurnPendingTool TurnKind = "pending_tool"
	// TurnToolResult is executed tool output fed back to the model.
	// It rides the transcript as a user entry but is shown distinctly.
	TurnToolResult TurnKind = "tool_result"
	// TurnToolDenied records a refusal; the backend is never contacted.
	TurnToolDenied TurnKind = "tool_denied"
)

// String returns the string representation of the kind.
func (k TurnKind) String() string {
	return string(k)
}

// DisplayName returns a human-readable label for the kind.
func (k TurnKind) DisplayName() string {
	switch k {
	case TurnUser:
		return "You"
	case TurnAssistant:
		return "Quill"
	case TurnPendingTool:
		return "Tool Request"
	case TurnToolResult:
		return "Tool Result"
	case TurnToolDenied:
		return "Tool Denied"
	default:
		return string(k)
	}
}

// =============================================================================
// TURN TYPE
// =============================================================================

// Turn is one immutable entry in the visible conversation history.
// Which fields are meaningful depends on Kind: user, assistant, and
// tool-result turns carry Content; pending and denied turns carry the
// structured Call plus its normalized Invocation text.
type Turn struct {
	ID        string    `json:"id"`
	Kind      TurnKind  `json:"kind"`
	Timestamp time.Time `json:"timestamp"`

	Content string `json:"content,omitempty"`

	Call       *toolcall.Call `json:"call,omitempty"`
	Invocation string         `json:"invocation,omitempty"`
}

// NewUserTurn creates a turn for text the human submitted.
func NewUserTurn(content string) *Turn {
	return &Turn{
		ID:        generateTurnID(),
		Kind:      TurnUser,
		Timestamp: time.Now(),
		Content:   content,
	}
}

// NewAssistantTurn creates a turn for a finalized model reply.
func NewAssistantTurn(content string) *Turn {
	return &Turn{
		ID:        generateTurnID(),
		Kind:      TurnAssistant,
		Timestamp: time.Now(),
		Content:   content,
	}
}

// NewPendingToolTurn creates the awaiting-approval entry for a
// detected invocation.
func NewPendingToolTurn(call toolcall.Call) *Turn {
	c := call
	return &Turn{
		ID:         generateTurnID(),
		Kind:       TurnPendingTool,
		Timestamp:  time.Now(),
		Call:       &c,
		Invocation: call.Invocation(),
	}
}

// NewToolResultTurn creates the entry carrying executed tool output.
func NewToolResultTurn(result string) *Turn {
	return &Turn{
		ID:        generateTurnID(),
		Kind:      TurnToolResult,
		Timestamp: time.Now(),
		Content:   result,
	}
}

// NewToolDeniedTurn records a refused invocation. The invocation text
// is taken from the pending entry it replaces, preserved verbatim.
func NewToolDeniedTurn(call toolcall.Call, invocation string) *Turn {
	c := call
	return &Turn{
		ID:         generateTurnID(),
		Kind:       TurnToolDenied,
		Timestamp:  time.Now(),
		Call:       &c,
		Invocation: invocation,
	}
}

// =============================================================================
// TURN METHODS
// =============================================================================

// IsPendingTool reports whether this turn awaits approval.
func (t *Turn) IsPendingTool() bool {
	return t.Kind == TurnPendingTool
}

// Preview returns a truncated, single-purpose summary of the turn.
// Uses rune-based truncation to handle Unicode correctly.
func (t *Turn) Preview(maxLen int) string {
	content := t.Content
	if t.Kind == TurnPendingTool || t.Kind == TurnToolDenied {
		content = t.Invocation
	}
	runes := []rune(content)
	if len(runes) <= maxLen {
		return content
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// generateTurnID creates a unique turn ID.
func generateTurnID() string {
	bytes := make([]byte, 8)
	rand.Read(bytes)
	return "turn_" + hex.EncodeToString(bytes)
}
