// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/quill-tui/internal/config"
	"github.com/jeranaias/quill-tui/internal/session"
)

// =============================================================================
// UPDATE
// =============================================================================

// Update is the single mutation point for the whole program. The
// engine is only ever touched from here, which is what lets it stay
// free of locks.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case advanceTickMsg:
		return m.handleAdvanceTick()

	case probeTickMsg:
		return m, tea.Batch(
			probeCmd(m.prober, m.limiter, probeTimeout),
			probeTickCmd(probeInterval),
		)

	case probeResultMsg:
		m.statusBar.SetBackendUp(msg.up)
		return m, nil

	case spinner.TickMsg:
		// The spinner only animates alongside an active stream; not
		// forwarding the tick stops the chain.
		if m.engine.State() != session.StateStreaming {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.refreshConversation()
		return m, cmd

	case ConfigReloadedMsg:
		m.applyConfig(msg.Config)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// applyConfig picks up settings that can change mid-session: word
// wrap, the title banner, and the tool working directory label.
// Theme changes still need a restart because every component bakes
// its styles at construction.
func (m *Model) applyConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}

	m.wordWrap = cfg.UI.WordWrap
	m.showTitleArt = cfg.UI.ShowTitleArt
	m.statusBar.SetWorkingDir(cfg.ResolveWorkingDir())

	if m.ready {
		m.resize(m.width, m.height)
	}
}

// resize lays the chrome out for a new terminal size.
func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.ready = true

	m.theme.SetSize(width, height)
	m.titleArt.SetWidth(width)
	m.modelBar.SetWidth(width)
	m.statusBar.SetWidth(width)
	m.toolCard.SetWidth(m.contentWidth())

	m.input.Width = width - 8

	m.viewport.Width = width
	m.viewport.Height = m.conversationHeight()

	m.refreshConversation()
}

// handleAdvanceTick drives the active stream one budget slice and
// reschedules itself while the reply is still flowing.
func (m *Model) handleAdvanceTick() (tea.Model, tea.Cmd) {
	if m.engine.State() != session.StateStreaming {
		return m, nil
	}

	m.engine.Advance(m.advanceEvery)

	m.refreshConversation()
	m.syncStatus()

	if m.engine.State() == session.StateStreaming {
		return m, advanceTickCmd(m.advanceEvery)
	}
	return m, nil
}

// =============================================================================
// KEY ROUTING
// =============================================================================

// handleKeyPress routes keys by session state. Quit always works;
// everything else depends on what the engine is doing.
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.engine.Close()
		return m, tea.Quit
	}

	switch m.engine.State() {
	case session.StateStreaming:
		// A reply is in flight; the input is locked.
		return m, nil
	case session.StateAwaitingApproval:
		return m.handleApprovalKey(msg)
	default:
		return m.handleIdleKey(msg)
	}
}

// handleApprovalKey accepts only the approval decision. Every other
// key is swallowed until the pending call is resolved.
func (m *Model) handleApprovalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Approve):
		m.engine.Approve(context.Background())
		m.refreshConversation()
		m.syncStatus()
		if m.engine.State() == session.StateStreaming {
			return m, tea.Batch(advanceTickCmd(m.advanceEvery), m.spinner.Tick)
		}
		return m, nil

	case key.Matches(msg, m.keys.Deny):
		m.engine.Deny()
		m.refreshConversation()
		m.syncStatus()
		return m, nil
	}

	return m, nil
}

// handleIdleKey handles the full binding set available while idle.
func (m *Model) handleIdleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		return m.submitInput()

	case key.Matches(msg, m.keys.ModelPrev):
		m.engine.PrevModel()
		m.syncModelBar()
		m.syncStatus()
		return m, nil

	case key.Matches(msg, m.keys.ModelNext):
		m.engine.NextModel()
		m.syncModelBar()
		m.syncStatus()
		return m, nil

	case key.Matches(msg, m.keys.ScrollUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keys.ScrollDown):
		m.viewport.HalfViewDown()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submitInput sends the typed text to the model. The handshake blocks
// right here; once it returns the stream is live and ticks take over.
func (m *Model) submitInput() (tea.Model, tea.Cmd) {
	text := m.input.Value()
	if strings.TrimSpace(text) == "" {
		return m, nil
	}

	m.input.Reset()
	err := m.engine.Submit(context.Background(), text)

	m.refreshConversation()
	m.syncStatus()

	if err == nil && m.engine.State() == session.StateStreaming {
		return m, tea.Batch(advanceTickCmd(m.advanceEvery), m.spinner.Tick)
	}
	return m, nil
}
