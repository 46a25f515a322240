// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// terminal.go - TTY detection for the quill CLI.
//
// The TUI and the chat REPL both require a real terminal; piped
// invocations get plain output or a clear refusal instead of a
// corrupted alternate screen.

package cli

import (
	"os"

	"golang.org/x/term"
)

// IsTTY returns true if stdin is a terminal. Interactive prompts
// require this.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// IsStdoutTTY returns true if stdout is a terminal. Markdown and
// colored output are gated on this so piped output stays clean.
func IsStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

const (
	// defaultTerminalWidth is the fallback when detection fails.
	defaultTerminalWidth = 80

	// minTerminalWidth is the narrowest width used for layout.
	minTerminalWidth = 40
)

// GetTerminalWidth returns the current terminal width, defaulting to
// 80 when stdout is not a terminal or the size cannot be read.
func GetTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return defaultTerminalWidth
	}
	if width < minTerminalWidth {
		return minTerminalWidth
	}
	return width
}

// RequiresTTY returns an error if stdin is not a terminal. Commands
// that read interactive input call this before doing anything.
func RequiresTTY(operation string) error {
	if !IsTTY() {
		return &TTYRequiredError{Operation: operation}
	}
	return nil
}

// TTYRequiredError is returned when an operation needs a terminal but
// stdin is a pipe or file.
type TTYRequiredError struct {
	Operation string
}

func (e *TTYRequiredError) Error() string {
	if e.Operation != "" {
		return "stdin is not a terminal; cannot " + e.Operation + " interactively"
	}
	return "stdin is not a terminal; interactive input not available"
}
