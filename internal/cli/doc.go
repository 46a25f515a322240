// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli parses command-line arguments and implements the
// plain-terminal command surface: the chat REPL, the model listing,
// and version/help output. The TUI itself lives under internal/ui;
// this package only decides which surface runs and with what
// overrides.
package cli
