// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/time/rate"

	"github.com/jeranaias/quill-tui/internal/config"
)

// Message catalog for the chat program.
//
// Categories:
//   - Pacing:  advanceTickMsg drives the active stream forward
//   - Probing: probeTickMsg schedules a reachability check,
//     probeResultMsg carries its outcome
//   - Config:  ConfigReloadedMsg carries a fresh config from the
//     file watcher
//
// All session mutation happens synchronously inside Update; these
// messages only pace it.

// =============================================================================
// PACING MESSAGES
// =============================================================================

// advanceTickMsg tells the model to advance the active stream by one
// budget slice. Ticks reschedule themselves for as long as the engine
// stays in the streaming state.
type advanceTickMsg struct{}

// advanceTickCmd schedules the next stream advance.
func advanceTickCmd(every time.Duration) tea.Cmd {
	return tea.Tick(every, func(time.Time) tea.Msg {
		return advanceTickMsg{}
	})
}

// =============================================================================
// PROBE MESSAGES
// =============================================================================

// probeTickMsg fires when it is time to check Ollama reachability.
type probeTickMsg struct{}

// probeResultMsg carries the outcome of a reachability check.
type probeResultMsg struct {
	up bool
}

// probeTickCmd schedules the next reachability check.
func probeTickCmd(every time.Duration) tea.Cmd {
	return tea.Tick(every, func(time.Time) tea.Msg {
		return probeTickMsg{}
	})
}

// probeCmd performs one reachability check off the Update goroutine.
// The limiter drops the check entirely when probes would outpace their
// budget, e.g. after a burst of resize-triggered redraws.
func probeCmd(prober Prober, limiter *rate.Limiter, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		if !limiter.Allow() {
			return nil
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return probeResultMsg{up: prober.CheckRunning(ctx) == nil}
	}
}

// =============================================================================
// CONFIG MESSAGES
// =============================================================================

// ConfigReloadedMsg carries a freshly loaded config after the file on
// disk changed. It originates outside the program, delivered through
// Program.Send by the config watcher callback.
type ConfigReloadedMsg struct {
	Config *config.Config
}
