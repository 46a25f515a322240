// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat is the Bubble Tea program for the quill TUI. The Model
// here is the program root: it owns the text input, the conversation
// viewport, and the chrome components, and it drives the session
// engine synchronously from Update so the engine never sees two
// goroutines. Streams progress on a fixed tick; the only asynchronous
// work is the rate-limited Ollama reachability probe.
package chat
