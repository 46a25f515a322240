// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual building blocks of the quill
// TUI: the banner, the model bar, tool call cards, highlighted code
// blocks, and the status bar. Components hold display state only; the
// conversation itself lives in the session engine.
package components
