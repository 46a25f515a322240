// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/time/rate"

	"github.com/jeranaias/quill-tui/internal/config"
	"github.com/jeranaias/quill-tui/internal/session"
	"github.com/jeranaias/quill-tui/internal/ui/components"
	"github.com/jeranaias/quill-tui/internal/ui/styles"
)

// =============================================================================
// PROBER
// =============================================================================

// Prober checks whether the Ollama server is reachable. It feeds the
// status bar indicator and nothing else; the session engine does its
// own error surfacing.
type Prober interface {
	CheckRunning(ctx context.Context) error
}

// =============================================================================
// CHAT MODEL
// =============================================================================

const (
	// probeInterval is how often reachability is rechecked.
	probeInterval = 5 * time.Second
	// probeTimeout bounds one reachability request.
	probeTimeout = 2 * time.Second
)

// Model is the root Bubble Tea model. It owns the engine and drives it
// synchronously: key events and advance ticks mutate the session right
// here in Update, then the viewport re-renders from a fresh snapshot.
type Model struct {
	engine *session.Engine
	prober Prober
	theme  *styles.Theme
	keys   KeyMap

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model

	titleArt  *components.TitleArt
	modelBar  *components.ModelBar
	statusBar *components.StatusBar
	toolCard  *components.ToolCard

	limiter *rate.Limiter

	advanceEvery time.Duration

	width  int
	height int
	ready  bool

	showTitleArt bool
	wordWrap     int
}

// New builds the chat model around a loaded engine. LoadModels must
// have run already; the bar renders whatever the engine knows.
func New(engine *session.Engine, prober Prober, theme *styles.Theme, cfg *config.Config) *Model {
	input := textinput.New()
	input.Placeholder = "Type your message..."
	input.Prompt = "> "
	input.CharLimit = 4096
	input.Focus()

	vp := viewport.New(80, 20)

	sp := spinner.New()
	sp.Spinner = spinner.Spinner{
		Frames: []string{"|", "/", "-", "\\"},
		FPS:    time.Second / 10,
	}
	sp.Style = theme.Spinner

	m := &Model{
		engine:       engine,
		prober:       prober,
		theme:        theme,
		keys:         DefaultKeyMap(),
		input:        input,
		viewport:     vp,
		spinner:      sp,
		titleArt:     components.NewTitleArt(),
		modelBar:     components.NewModelBar(theme),
		statusBar:    components.NewStatusBar(theme),
		toolCard:     components.NewToolCard(theme),
		limiter:      rate.NewLimiter(rate.Every(2*time.Second), 1),
		advanceEvery: cfg.StreamPoll(),
		width:        80,
		height:       24,
		showTitleArt: cfg.UI.ShowTitleArt,
		wordWrap:     cfg.UI.WordWrap,
	}

	m.statusBar.SetWorkingDir(cfg.ResolveWorkingDir())
	m.syncModelBar()
	m.syncStatus()
	m.refreshConversation()

	return m
}

// Init starts the cursor blink and the first reachability probe.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		probeCmd(m.prober, m.limiter, probeTimeout),
		probeTickCmd(probeInterval),
	)
}

// =============================================================================
// SNAPSHOT SYNC
// =============================================================================

// syncModelBar mirrors the engine's model list into the bar.
func (m *Model) syncModelBar() {
	models := m.engine.Models()
	names := make([]string, len(models))
	selected := 0
	current := m.engine.CurrentModel()
	for i, info := range models {
		names[i] = info.Name
		if info.Name == current {
			selected = i
		}
	}
	m.modelBar.SetModels(names)
	m.modelBar.SetSelected(selected)
	m.modelBar.SetFallback(m.engine.UsedFallbackModel())
}

// syncStatus mirrors the engine state into the status bar.
func (m *Model) syncStatus() {
	v := m.engine.View()

	status := components.StatusReady
	switch {
	case v.Err != "":
		status = components.StatusError
	case v.State == session.StateStreaming:
		status = components.StatusStreaming
	case v.State == session.StateAwaitingApproval:
		status = components.StatusAwaitingApproval
	}

	m.statusBar.SetStatus(status)
	m.statusBar.SetModel(v.Model, v.UsedFallback)
}

// refreshConversation re-renders the viewport from the current
// snapshot and follows the tail.
func (m *Model) refreshConversation() {
	m.viewport.SetContent(m.renderConversation())
	m.viewport.GotoBottom()
}
