// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// BRAND COLORS
// =============================================================================

// Aqua is the primary brand color, used for user content and idle chrome.
var Aqua = lipgloss.AdaptiveColor{
	Light: "#0891B2",
	Dark:  "#22D3EE",
}

// AquaBright is the lighter aqua used in the title gradient.
var AquaBright = lipgloss.AdaptiveColor{
	Light: "#06B6D4",
	Dark:  "#67E8F9",
}

// Pink is the secondary brand color, used for assistant content.
var Pink = lipgloss.AdaptiveColor{
	Light: "#C026D3",
	Dark:  "#E879F9",
}

// PinkBright is the lighter pink used in the title gradient.
var PinkBright = lipgloss.AdaptiveColor{
	Light: "#D946EF",
	Dark:  "#F0ABFC",
}

// =============================================================================
// SEMANTIC COLORS
// =============================================================================

// Emerald marks successful tool results and file reads.
var Emerald = lipgloss.AdaptiveColor{
	Light: "#059669",
	Dark:  "#34D399",
}

// Blue marks directory listings.
var Blue = lipgloss.AdaptiveColor{
	Light: "#2563EB",
	Dark:  "#60A5FA",
}

// Amber marks pending work: approval hints, the busy input border,
// and the streaming cursor.
var Amber = lipgloss.AdaptiveColor{
	Light: "#D97706",
	Dark:  "#FBBF24",
}

// Rose marks errors and denied tool calls.
var Rose = lipgloss.AdaptiveColor{
	Light: "#E11D48",
	Dark:  "#FB7185",
}

// =============================================================================
// SURFACE COLORS
// =============================================================================

// Surface is the base background for inverted elements.
var Surface = lipgloss.AdaptiveColor{
	Light: "#FFFFFF",
	Dark:  "#1E1E2E",
}

// SurfaceAlt is a slightly raised background for bars and badges.
var SurfaceAlt = lipgloss.AdaptiveColor{
	Light: "#F4F4F5",
	Dark:  "#27273A",
}

// Overlay is the border color for neutral panels.
var Overlay = lipgloss.AdaptiveColor{
	Light: "#D4D4D8",
	Dark:  "#45475A",
}

// =============================================================================
// TEXT COLORS
// =============================================================================

// TextPrimary is the default foreground.
var TextPrimary = lipgloss.AdaptiveColor{
	Light: "#18181B",
	Dark:  "#E4E4E7",
}

// TextMuted is used for metadata lines and secondary labels.
var TextMuted = lipgloss.AdaptiveColor{
	Light: "#71717A",
	Dark:  "#7F849C",
}

// TextFaint is used for placeholder and echo text.
var TextFaint = lipgloss.AdaptiveColor{
	Light: "#A1A1AA",
	Dark:  "#585B70",
}

// =============================================================================
// ROLE ACCENTS
// =============================================================================

// Accents keyed by what the content is, not where it renders. The turn
// list, the status bar, and the plain-terminal chat mode all pull from
// the same set so a role reads the same everywhere.
var (
	// UserAccent colors the ">" marker and user-authored text.
	UserAccent = Aqua

	// AssistantAccent colors the "<" marker and model-authored text.
	AssistantAccent = Pink

	// ToolFileAccent outlines file-read tool cards.
	ToolFileAccent = Emerald

	// ToolDirAccent outlines directory-listing tool cards.
	ToolDirAccent = Blue

	// DeniedAccent outlines denied tool cards.
	DeniedAccent = Rose
)

// TitleGradient is the color cycle applied line by line to the banner
// art, aqua fading through pink and back.
var TitleGradient = []lipgloss.AdaptiveColor{
	Aqua,
	AquaBright,
	Pink,
	PinkBright,
	Aqua,
	AquaBright,
}

// =============================================================================
// RENDER HELPERS
// =============================================================================

// RenderError formats an error message in rose.
func RenderError(text string) string {
	return lipgloss.NewStyle().
		Foreground(Rose).
		Render(text)
}

// RenderSuccess formats a success message in emerald.
func RenderSuccess(text string) string {
	return lipgloss.NewStyle().
		Foreground(Emerald).
		Render(text)
}

// RenderWarning formats a warning message in amber.
func RenderWarning(text string) string {
	return lipgloss.NewStyle().
		Foreground(Amber).
		Render(text)
}

// RenderInfo formats an informational message in aqua.
func RenderInfo(text string) string {
	return lipgloss.NewStyle().
		Foreground(Aqua).
		Render(text)
}

// RenderMuted formats secondary text in the muted foreground.
func RenderMuted(text string) string {
	return lipgloss.NewStyle().
		Foreground(TextMuted).
		Render(text)
}
