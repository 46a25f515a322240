// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// PALETTE TESTS
// =============================================================================

func TestAdaptiveColorsDefined(t *testing.T) {
	tests := []struct {
		name  string
		color lipgloss.AdaptiveColor
	}{
		{"Aqua", Aqua},
		{"AquaBright", AquaBright},
		{"Pink", Pink},
		{"PinkBright", PinkBright},
		{"Emerald", Emerald},
		{"Blue", Blue},
		{"Amber", Amber},
		{"Rose", Rose},
		{"Surface", Surface},
		{"SurfaceAlt", SurfaceAlt},
		{"Overlay", Overlay},
		{"TextPrimary", TextPrimary},
		{"TextMuted", TextMuted},
		{"TextFaint", TextFaint},
	}

	for _, tc := range tests {
		if tc.color.Light == "" {
			t.Errorf("%s.Light is empty", tc.name)
		}
		if tc.color.Dark == "" {
			t.Errorf("%s.Dark is empty", tc.name)
		}
		if !strings.HasPrefix(tc.color.Light, "#") {
			t.Errorf("%s.Light = %q, want hex value", tc.name, tc.color.Light)
		}
		if !strings.HasPrefix(tc.color.Dark, "#") {
			t.Errorf("%s.Dark = %q, want hex value", tc.name, tc.color.Dark)
		}
	}
}

func TestRoleAccents(t *testing.T) {
	if UserAccent != Aqua {
		t.Error("UserAccent should be Aqua")
	}
	if AssistantAccent != Pink {
		t.Error("AssistantAccent should be Pink")
	}
	if ToolFileAccent != Emerald {
		t.Error("ToolFileAccent should be Emerald")
	}
	if ToolDirAccent != Blue {
		t.Error("ToolDirAccent should be Blue")
	}
	if DeniedAccent != Rose {
		t.Error("DeniedAccent should be Rose")
	}
}

// =============================================================================
// GRADIENT TESTS
// =============================================================================

func TestTitleGradient(t *testing.T) {
	if len(TitleGradient) != 6 {
		t.Fatalf("len(TitleGradient) = %d, want 6", len(TitleGradient))
	}

	// The cycle runs aqua out through pink and back to aqua, so the
	// first pair repeats as the last pair.
	if TitleGradient[0] != TitleGradient[4] {
		t.Error("TitleGradient[0] and TitleGradient[4] should match")
	}
	if TitleGradient[1] != TitleGradient[5] {
		t.Error("TitleGradient[1] and TitleGradient[5] should match")
	}
	if TitleGradient[0] != Aqua {
		t.Error("TitleGradient should start with Aqua")
	}
	if TitleGradient[2] != Pink {
		t.Error("TitleGradient[2] should be Pink")
	}
}

// =============================================================================
// RENDER HELPER TESTS
// =============================================================================

func TestRenderHelpers(t *testing.T) {
	tests := []struct {
		name   string
		render func(string) string
	}{
		{"RenderError", RenderError},
		{"RenderSuccess", RenderSuccess},
		{"RenderWarning", RenderWarning},
		{"RenderInfo", RenderInfo},
		{"RenderMuted", RenderMuted},
	}

	for _, tc := range tests {
		got := tc.render("message")
		if !strings.Contains(got, "message") {
			t.Errorf("%s(\"message\") = %q, content lost", tc.name, got)
		}
	}
}
