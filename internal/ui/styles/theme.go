// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// LayoutMode describes how much horizontal room the terminal offers.
type LayoutMode int

const (
	// LayoutNarrow is for terminals under 60 columns.
	LayoutNarrow LayoutMode = iota
	// LayoutMedium is for terminals between 60 and 99 columns.
	LayoutMedium
	// LayoutWide is for terminals at 100 columns or more.
	LayoutWide
)

// Theme carries the terminal capabilities detected at startup and the
// prebuilt styles every view renders with. Build one with NewTheme and
// share it; styles are value types and safe to copy.
type Theme struct {
	// Terminal capabilities.
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Current terminal dimensions, updated on resize.
	Width  int
	Height int

	// Banner.
	TitleArt lipgloss.Style

	// Model bar.
	ModelBarLabel    lipgloss.Style
	ModelBarSelected lipgloss.Style
	ModelBarItem     lipgloss.Style
	ModelBarFallback lipgloss.Style

	// Conversation turns.
	TurnMeta        lipgloss.Style
	UserPrefix      lipgloss.Style
	AssistantPrefix lipgloss.Style
	TurnBody        lipgloss.Style
	StreamCursor    lipgloss.Style

	// Tool call cards.
	CardPendingFile lipgloss.Style
	CardPendingDir  lipgloss.Style
	CardResult      lipgloss.Style
	CardDenied      lipgloss.Style
	CardTitleFile   lipgloss.Style
	CardTitleDir    lipgloss.Style
	CardTitleResult lipgloss.Style
	CardTitleDenied lipgloss.Style
	ToolEcho        lipgloss.Style
	ApproveHint     lipgloss.Style

	// Input box.
	InputIdle      lipgloss.Style
	InputBusy      lipgloss.Style
	InputTitleIdle lipgloss.Style
	InputTitleBusy lipgloss.Style

	// Status and errors.
	ErrorText lipgloss.Style
	Spinner   lipgloss.Style
	HelpKey   lipgloss.Style
	HelpDesc  lipgloss.Style
}

// NewTheme probes the terminal for color support and background
// darkness and returns a fully initialized theme.
func NewTheme() *Theme {
	profile := termenv.ColorProfile()

	t := &Theme{
		IsDark:       termenv.HasDarkBackground(),
		HasTrueColor: profile == termenv.TrueColor,
		ColorProfile: profile,
		Width:        80,
		Height:       24,
	}
	t.initStyles()
	return t
}

// NewThemeWithBackground builds a theme for an explicitly configured
// background instead of probing the terminal. Adaptive colors resolve
// against the given darkness for the rest of the process.
func NewThemeWithBackground(dark bool) *Theme {
	profile := termenv.ColorProfile()
	lipgloss.SetHasDarkBackground(dark)

	t := &Theme{
		IsDark:       dark,
		HasTrueColor: profile == termenv.TrueColor,
		ColorProfile: profile,
		Width:        80,
		Height:       24,
	}
	t.initStyles()
	return t
}

// initStyles builds every style from the package palette.
func (t *Theme) initStyles() {
	// Banner. The gradient colors are applied per line on top of this.
	t.TitleArt = lipgloss.NewStyle().
		Bold(true)

	// Model bar. The selected model inverts onto the aqua accent the
	// way a classic highlight bar does.
	t.ModelBarLabel = lipgloss.NewStyle().
		Foreground(Aqua).
		Bold(true)
	t.ModelBarSelected = lipgloss.NewStyle().
		Foreground(Surface).
		Background(Aqua).
		Bold(true).
		Padding(0, 1)
	t.ModelBarItem = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Padding(0, 1)
	t.ModelBarFallback = lipgloss.NewStyle().
		Foreground(Amber).
		Italic(true)

	// Turns. Metadata lines sit under the content in muted italics.
	t.TurnMeta = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)
	t.UserPrefix = lipgloss.NewStyle().
		Foreground(UserAccent).
		Bold(true)
	t.AssistantPrefix = lipgloss.NewStyle().
		Foreground(AssistantAccent).
		Bold(true)
	t.TurnBody = lipgloss.NewStyle().
		Foreground(TextPrimary)
	t.StreamCursor = lipgloss.NewStyle().
		Foreground(Amber)

	// Tool call cards. Border color tracks the tool that is asking.
	t.CardPendingFile = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ToolFileAccent).
		Padding(0, 1)
	t.CardPendingDir = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ToolDirAccent).
		Padding(0, 1)
	t.CardResult = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Emerald).
		Padding(0, 1)
	t.CardDenied = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(DeniedAccent).
		Padding(0, 1)
	t.CardTitleFile = lipgloss.NewStyle().
		Foreground(ToolFileAccent).
		Bold(true)
	t.CardTitleDir = lipgloss.NewStyle().
		Foreground(ToolDirAccent).
		Bold(true)
	t.CardTitleResult = lipgloss.NewStyle().
		Foreground(Emerald).
		Bold(true)
	t.CardTitleDenied = lipgloss.NewStyle().
		Foreground(DeniedAccent).
		Bold(true)
	t.ToolEcho = lipgloss.NewStyle().
		Foreground(TextFaint)
	t.ApproveHint = lipgloss.NewStyle().
		Foreground(Amber).
		Bold(true)

	// Input box. The border flips to amber while a request is in
	// flight so the locked state is visible at a glance.
	t.InputIdle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Aqua).
		Padding(0, 1)
	t.InputBusy = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Amber).
		Padding(0, 1)
	t.InputTitleIdle = lipgloss.NewStyle().
		Foreground(Aqua)
	t.InputTitleBusy = lipgloss.NewStyle().
		Foreground(Amber)

	// Status and errors.
	t.ErrorText = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)
	t.Spinner = lipgloss.NewStyle().
		Foreground(Amber)
	t.HelpKey = lipgloss.NewStyle().
		Foreground(Aqua).
		Bold(true)
	t.HelpDesc = lipgloss.NewStyle().
		Foreground(TextMuted)
}

// SetSize records the current terminal dimensions.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode maps the current width onto a layout bucket.
func (t *Theme) GetLayoutMode() LayoutMode {
	switch {
	case t.Width < 60:
		return LayoutNarrow
	case t.Width < 100:
		return LayoutMedium
	default:
		return LayoutWide
	}
}
