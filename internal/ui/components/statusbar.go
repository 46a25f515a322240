// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/quill-tui/internal/ui/styles"
	"github.com/jeranaias/quill-tui/internal/util"
)

// =============================================================================
// STATUS
// =============================================================================

// Status is the session state shown at the bottom of the screen.
type Status int

const (
	StatusReady Status = iota
	StatusStreaming
	StatusAwaitingApproval
	StatusError
)

// String returns the display string for the status.
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "Ready"
	case StatusStreaming:
		return "Streaming..."
	case StatusAwaitingApproval:
		return "Awaiting Approval"
	case StatusError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Icon returns an ASCII shape for the status, distinct per state so
// the bar still reads on monochrome terminals.
func (s Status) Icon() string {
	switch s {
	case StatusReady:
		return "+"
	case StatusStreaming:
		return "~"
	case StatusAwaitingApproval:
		return "?"
	case StatusError:
		return "x"
	default:
		return "-"
	}
}

// =============================================================================
// STATUS BAR
// =============================================================================

// StatusBar is the bottom strip: session state on the left, the active
// model in the middle, key hints on the right. Hints follow the state,
// so the approval keys appear only while a call is waiting.
type StatusBar struct {
	Status     Status
	ModelName  string
	Fallback   bool
	BackendUp  bool
	WorkingDir string
	Width      int

	theme *styles.Theme
}

// NewStatusBar creates a status bar in the ready state.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{
		Status:    StatusReady,
		BackendUp: true,
		Width:     80,
		theme:     theme,
	}
}

// SetWidth updates the bar width.
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// SetStatus updates the session state.
func (s *StatusBar) SetStatus(status Status) {
	s.Status = status
}

// SetModel updates the active model display.
func (s *StatusBar) SetModel(name string, fallback bool) {
	s.ModelName = name
	s.Fallback = fallback
}

// SetBackendUp records the latest reachability probe result.
func (s *StatusBar) SetBackendUp(up bool) {
	s.BackendUp = up
}

// SetWorkingDir sets the directory tool paths resolve against.
func (s *StatusBar) SetWorkingDir(dir string) {
	s.WorkingDir = dir
}

// View renders the bar for the current width.
func (s *StatusBar) View() string {
	if s.Width < 60 {
		return s.viewNarrow()
	}
	if s.Width < 100 {
		return s.viewMedium()
	}
	return s.viewWide()
}

// viewNarrow renders icon, model, and backend state only.
func (s *StatusBar) viewNarrow() string {
	parts := []string{
		s.statusStyle().Render(s.Status.Icon()),
		s.renderModel(16),
		s.renderBackend(true),
	}

	return s.barStyle().Render(strings.Join(parts, " "))
}

// viewMedium adds the status text and the contextual key hint.
func (s *StatusBar) viewMedium() string {
	sep := lipgloss.NewStyle().Foreground(styles.Overlay).Render(" | ")

	parts := []string{
		s.statusStyle().Render(s.Status.Icon() + " " + s.Status.String()),
		s.renderModel(20),
		s.renderBackend(false),
		s.renderHints(),
	}

	return s.barStyle().Render(strings.Join(parts, sep))
}

// viewWide spreads status and model left, working dir center, hints
// right.
func (s *StatusBar) viewWide() string {
	sep := lipgloss.NewStyle().Foreground(styles.Overlay).Render(" | ")

	left := strings.Join([]string{
		s.statusStyle().Render(s.Status.Icon() + " " + s.Status.String()),
		s.renderModel(30),
		s.renderBackend(false),
	}, sep)

	center := ""
	if s.WorkingDir != "" {
		center = lipgloss.NewStyle().
			Foreground(styles.TextMuted).
			Render(util.TruncateWidth(s.WorkingDir, 40))
	}

	right := s.renderHints()

	leftWidth := lipgloss.Width(left)
	centerWidth := lipgloss.Width(center)
	rightWidth := lipgloss.Width(right)

	gap := s.Width - leftWidth - centerWidth - rightWidth - 4
	if gap < 2 {
		gap = 2
	}
	pad := strings.Repeat(" ", gap/2)

	return s.barStyle().Render(left + pad + center + pad + right)
}

// renderModel renders the model name, marked when it is the fallback.
func (s *StatusBar) renderModel(maxWidth int) string {
	name := s.ModelName
	if name == "" {
		name = "-"
	}
	name = util.TruncateRunes(name, maxWidth)

	rendered := lipgloss.NewStyle().
		Foreground(styles.Aqua).
		Bold(true).
		Render(name)

	if s.Fallback {
		rendered += " " + s.theme.ModelBarFallback.Render("(fallback)")
	}
	return rendered
}

// renderBackend renders the Ollama reachability indicator.
func (s *StatusBar) renderBackend(compact bool) string {
	if s.BackendUp {
		if compact {
			return styles.RenderSuccess("up")
		}
		return styles.RenderSuccess("ollama up")
	}
	if compact {
		return styles.RenderError("down")
	}
	return styles.RenderError("ollama down")
}

// renderHints renders the key hints for the current state.
func (s *StatusBar) renderHints() string {
	key := s.theme.HelpKey
	desc := s.theme.HelpDesc

	switch s.Status {
	case StatusAwaitingApproval:
		return key.Render("→") + desc.Render(" accept ") +
			key.Render("←") + desc.Render(" deny")
	case StatusStreaming:
		return key.Render("ctrl+c") + desc.Render(" quit")
	default:
		return key.Render("enter") + desc.Render(" send ") +
			key.Render("↑↓") + desc.Render(" model ") +
			key.Render("ctrl+c") + desc.Render(" quit")
	}
}

// statusStyle returns the color for the current status.
func (s *StatusBar) statusStyle() lipgloss.Style {
	switch s.Status {
	case StatusStreaming:
		return lipgloss.NewStyle().Foreground(styles.Amber).Bold(true)
	case StatusAwaitingApproval:
		return lipgloss.NewStyle().Foreground(styles.Amber).Bold(true)
	case StatusError:
		return lipgloss.NewStyle().Foreground(styles.Rose).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(styles.Emerald).Bold(true)
	}
}

// barStyle returns the background strip style.
func (s *StatusBar) barStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Background(styles.SurfaceAlt).
		Foreground(styles.TextPrimary).
		Padding(0, 1).
		Width(s.Width)
}
