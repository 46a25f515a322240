// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import "github.com/charmbracelet/bubbles/key"

// =============================================================================
// KEY MAP
// =============================================================================

// KeyMap defines the keyboard bindings. Which bindings are honored
// depends on the session state: approval keys only matter while a tool
// call waits, model keys only while idle, and during streaming
// everything but quit is swallowed.
type KeyMap struct {
	Submit     key.Binding
	Approve    key.Binding
	Deny       key.Binding
	ModelPrev  key.Binding
	ModelNext  key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "send message"),
		),
		Approve: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "accept tool call"),
		),
		Deny: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "deny tool call"),
		),
		ModelPrev: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "previous model"),
		),
		ModelNext: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "next model"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "scroll up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("pgdn", "scroll down"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+q"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// ShortHelp returns the bindings for the compact help line.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.ModelPrev, k.ModelNext, k.Quit}
}

// FullHelp returns the bindings grouped for the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Quit},
		{k.Approve, k.Deny},
		{k.ModelPrev, k.ModelNext},
		{k.ScrollUp, k.ScrollDown},
	}
}
