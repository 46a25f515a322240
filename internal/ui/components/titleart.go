// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/quill-tui/internal/ui/styles"
)

// =============================================================================
// TITLE ART
// =============================================================================

// titleArt spells QUILL in block glyphs, one gradient color per line.
var titleArt = [6]string{
	" ██████╗ ██╗   ██╗██╗██╗     ██╗     ",
	"██╔═══██╗██║   ██║██║██║     ██║     ",
	"██║   ██║██║   ██║██║██║     ██║     ",
	"██║▄▄ ██║██║   ██║██║██║     ██║     ",
	"╚██████╔╝╚██████╔╝██║███████╗███████╗",
	" ╚══▀▀═╝  ╚═════╝ ╚═╝╚══════╝╚══════╝",
}

// titleArtWidth is the display width of each art line.
const titleArtWidth = 37

// TitleArt renders the banner above the conversation. On terminals too
// narrow for the block art it falls back to a plain wordmark line.
type TitleArt struct {
	width int
}

// NewTitleArt creates a banner sized for a default terminal.
func NewTitleArt() *TitleArt {
	return &TitleArt{width: 80}
}

// SetWidth updates the available width.
func (a *TitleArt) SetWidth(width int) {
	a.width = width
}

// Height returns the number of lines the banner occupies at the
// current width.
func (a *TitleArt) Height() int {
	return lipgloss.Height(a.View())
}

// View renders the banner centered in the available width.
func (a *TitleArt) View() string {
	width := a.width
	if width <= 0 {
		width = 80
	}

	if width < titleArtWidth+2 {
		return a.renderWordmark(width)
	}

	lines := make([]string, len(titleArt))
	for i, line := range titleArt {
		color := styles.TitleGradient[i%len(styles.TitleGradient)]
		lines[i] = lipgloss.NewStyle().
			Foreground(color).
			Bold(true).
			Render(line)
	}

	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

// renderWordmark renders the single-line fallback for narrow terminals.
func (a *TitleArt) renderWordmark(width int) string {
	mark := lipgloss.NewStyle().
		Foreground(styles.Aqua).
		Bold(true).
		Render("quill")

	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(mark)
}
