// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions for the quill application.
package util

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/unicode/norm"
)

// UNICODE: Width-aware truncation preserves multi-byte characters.
// All display math goes through go-runewidth so CJK and fullwidth
// characters never corrupt the layout.

// TruncateWidth truncates a string to a maximum display width,
// appending "..." when anything was cut. Safe for UTF-8 input.
func TruncateWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, "...")
}

// TruncateRunes truncates a string to a maximum number of runes
// (characters, not bytes), appending "..." when anything was cut.
func TruncateRunes(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	if maxRunes <= 3 {
		return string(runes[:maxRunes])
	}
	return string(runes[:maxRunes-3]) + "..."
}

// PadRight pads a string with spaces to the given display width.
// Strings already at or beyond the width are returned unchanged.
func PadRight(s string, width int) string {
	gap := width - runewidth.StringWidth(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}

// StringWidth returns the display width of a string in terminal cells.
// Double-width characters (CJK, fullwidth forms) count as 2 columns.
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// NormalizeDisplay returns s in Unicode NFC form for terminal rendering.
// Decomposed sequences from model output render inconsistently across
// terminals; normalization applies to display only. Transcript content
// and tool results are passed through verbatim.
func NormalizeDisplay(s string) string {
	if norm.NFC.IsNormalString(s) {
		return s
	}
	return norm.NFC.String(s)
}

// FirstLine returns the text before the first newline.
func FirstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
