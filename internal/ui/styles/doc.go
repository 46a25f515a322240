// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles defines the quill color palette and the shared theme.
//
// Colors are lipgloss adaptive pairs that resolve against the detected
// terminal background. The Theme groups every prebuilt style the TUI
// renders with, plus the capability flags and dimensions views need to
// pick a layout.
package styles
