// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"github.com/jeranaias/quill-tui/internal/ui/styles"
)

// =============================================================================
// MODEL BAR TESTS
// =============================================================================

func TestNewModelBar(t *testing.T) {
	bar := NewModelBar(styles.NewTheme())

	if bar == nil {
		t.Fatal("NewModelBar() returned nil")
	}
	if bar.width != 80 {
		t.Errorf("NewModelBar() width = %d, want 80", bar.width)
	}
}

func TestModelBarListsAllModels(t *testing.T) {
	bar := NewModelBar(styles.NewTheme())
	bar.SetModels([]string{"alpha", "beta", "gamma"})
	bar.SetSelected(1)
	bar.SetWidth(80)

	view := bar.View()

	if !strings.Contains(view, "Model:") {
		t.Error("View() missing Model: label")
	}
	for _, name := range []string{"alpha", "beta", "gamma"} {
		if !strings.Contains(view, name) {
			t.Errorf("View() missing model %q", name)
		}
	}
}

func TestModelBarNarrowShowsSelectionOnly(t *testing.T) {
	bar := NewModelBar(styles.NewTheme())
	bar.SetModels([]string{"alpha", "beta", "gamma"})
	bar.SetSelected(1)
	bar.SetWidth(40)

	view := bar.View()

	if !strings.Contains(view, "beta") {
		t.Error("View() missing selected model at narrow width")
	}
	if strings.Contains(view, "alpha") || strings.Contains(view, "gamma") {
		t.Errorf("View() = %q, narrow width should list only the selection", view)
	}
}

func TestModelBarFallbackMarker(t *testing.T) {
	bar := NewModelBar(styles.NewTheme())
	bar.SetModels([]string{"llama2"})
	bar.SetWidth(80)

	if strings.Contains(bar.View(), "(fallback)") {
		t.Error("View() shows fallback marker without fallback set")
	}

	bar.SetFallback(true)
	if !strings.Contains(bar.View(), "(fallback)") {
		t.Error("View() missing fallback marker")
	}
}

func TestModelBarEmpty(t *testing.T) {
	bar := NewModelBar(styles.NewTheme())
	bar.SetWidth(80)

	view := bar.View()

	if !strings.Contains(view, "no models") {
		t.Errorf("View() = %q, want no-models notice", view)
	}
}

func TestModelBarSelectionOutOfRange(t *testing.T) {
	bar := NewModelBar(styles.NewTheme())
	bar.SetModels([]string{"alpha"})
	bar.SetSelected(5)
	bar.SetWidth(40)

	// Must not panic; the entry simply renders as nothing.
	_ = bar.View()
}
