// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/quill-tui/internal/ui/styles"
)

// =============================================================================
// MODEL BAR
// =============================================================================

// ModelBar is the selector strip at the top of the screen. Every
// installed model is listed; the active one is shown inverted. Up and
// down cycle the selection while the session is idle.
type ModelBar struct {
	models   []string
	selected int
	fallback bool
	width    int

	theme *styles.Theme
}

// NewModelBar creates an empty model bar.
func NewModelBar(theme *styles.Theme) *ModelBar {
	return &ModelBar{
		theme: theme,
		width: 80,
	}
}

// SetModels replaces the model list.
func (b *ModelBar) SetModels(models []string) {
	b.models = models
}

// SetSelected sets the index of the active model.
func (b *ModelBar) SetSelected(index int) {
	b.selected = index
}

// SetFallback marks that the list is a placeholder because the model
// listing could not be fetched.
func (b *ModelBar) SetFallback(fallback bool) {
	b.fallback = fallback
}

// SetWidth updates the available width.
func (b *ModelBar) SetWidth(width int) {
	b.width = width
}

// View renders the bar. Narrow terminals get only the active model;
// anything wider lists them all.
func (b *ModelBar) View() string {
	label := b.theme.ModelBarLabel.Render("Model:")

	if len(b.models) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(styles.TextMuted).
			Italic(true).
			Render(" no models")
		return label + empty
	}

	var parts []string
	parts = append(parts, label)

	if b.width < 60 {
		parts = append(parts, b.renderModel(b.selected))
	} else {
		for i := range b.models {
			parts = append(parts, b.renderModel(i))
		}
	}

	if b.fallback {
		parts = append(parts, b.theme.ModelBarFallback.Render("(fallback)"))
	}

	bar := strings.Join(parts, " ")
	if b.width > 0 {
		bar = lipgloss.NewStyle().MaxWidth(b.width).Render(bar)
	}
	return bar
}

// renderModel renders one entry, inverted when it is the selection.
func (b *ModelBar) renderModel(index int) string {
	if index < 0 || index >= len(b.models) {
		return ""
	}
	if index == b.selected {
		return b.theme.ModelBarSelected.Render(b.models[index])
	}
	return b.theme.ModelBarItem.Render(b.models[index])
}
