// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
)

// =============================================================================
// FENCED BLOCK TESTS
// =============================================================================

func TestParseCodeBlocksPlainTextUnchanged(t *testing.T) {
	text := "no code here\njust prose"

	if got := ParseCodeBlocks(text, 80); got != text {
		t.Errorf("ParseCodeBlocks() = %q, want unchanged input", got)
	}
}

func TestParseCodeBlocksReplacesFence(t *testing.T) {
	text := "before\n```go\nx := 1\n```\nafter"

	got := ParseCodeBlocks(text, 80)

	if strings.Contains(got, "```") {
		t.Error("ParseCodeBlocks() left fence markers in output")
	}
	if !strings.Contains(got, "before") || !strings.Contains(got, "after") {
		t.Error("ParseCodeBlocks() lost surrounding prose")
	}
	if !strings.Contains(got, "╭") {
		t.Error("ParseCodeBlocks() output missing block border")
	}
}

func TestParseCodeBlocksUnclosedFence(t *testing.T) {
	text := "reply starts\n```python\nprint(1)"

	got := ParseCodeBlocks(text, 80)

	if strings.Contains(got, "```") {
		t.Error("ParseCodeBlocks() left an unclosed fence unrendered")
	}
	if !strings.Contains(got, "╭") {
		t.Error("ParseCodeBlocks() missing border for unclosed block")
	}
}

// =============================================================================
// CODE BLOCK RENDER TESTS
// =============================================================================

func TestCodeBlockLineNumbers(t *testing.T) {
	cb := NewCodeBlock("", "alpha\nbeta")

	got := cb.Render()

	if !strings.Contains(got, "   1") {
		t.Error("Render() missing line number 1")
	}
	if !strings.Contains(got, "   2") {
		t.Error("Render() missing line number 2")
	}
}

func TestCodeBlockLanguageBadge(t *testing.T) {
	cb := NewCodeBlock("python", "x = 1")

	if !strings.Contains(cb.Render(), "python") {
		t.Error("Render() missing language badge")
	}
}

func TestCodeBlockMinimumWidth(t *testing.T) {
	cb := NewCodeBlock("", "x")
	cb.SetMaxWidth(5)

	// Must not panic on absurdly small widths.
	if cb.Render() == "" {
		t.Error("Render() returned empty output")
	}
}

// =============================================================================
// INLINE CODE TESTS
// =============================================================================

func TestParseInlineCode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no backticks", "plain text", "plain text"},
		{"unclosed backtick", "a `b", "a `b"},
	}

	for _, tc := range tests {
		if got := ParseInlineCode(tc.in); got != tc.want {
			t.Errorf("%s: ParseInlineCode(%q) = %q, want %q", tc.name, tc.in, got, tc.want)
		}
	}
}

func TestParseInlineCodeStylesSpan(t *testing.T) {
	got := ParseInlineCode("run `ls` now")

	if strings.Contains(got, "`") {
		t.Errorf("ParseInlineCode() = %q, backticks should be consumed", got)
	}
	if !strings.Contains(got, "ls") {
		t.Errorf("ParseInlineCode() = %q, span content lost", got)
	}
}
