// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tools executes approved filesystem tool calls.
package tools

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/jeranaias/quill-tui/internal/toolcall"
)

// =============================================================================
// EXECUTOR
// =============================================================================

// Executor resolves tool paths against one fixed working directory and
// performs the requested read.
//
// Every outcome, filesystem failures included, is returned as a
// formatted text block: tool results are conversation content the
// model must be able to react to, so a missing file is data, not a
// fault. The only sandboxing is the path join itself: a caller-
// supplied absolute path escapes the working directory entirely. That
// is a known limitation, not a guarantee.
type Executor struct {
	workDir string
}

// NewExecutor captures the working-directory root all relative tool
// paths resolve against. The root is made absolute once, at session
// start, so later chdir calls cannot move the sandbox.
func NewExecutor(workDir string) *Executor {
	abs, err := filepath.Abs(workDir)
	if err != nil {
		abs = workDir
	}
	return &Executor{workDir: abs}
}

// WorkDir returns the fixed root.
func (e *Executor) WorkDir() string {
	return e.workDir
}

// Run executes one call and formats the outcome.
func (e *Executor) Run(call toolcall.Call) string {
	resolved := e.resolve(call.Path)

	switch call.Tool {
	case toolcall.ReadFile:
		return e.readFile(resolved)
	case toolcall.ReadDirectory:
		return e.readDirectory(resolved)
	default:
		return errorBlock(call.Tool, resolved, "unsupported tool")
	}
}

// resolve joins a tool path onto the working directory. An absolute
// path replaces the root rather than nesting under it.
func (e *Executor) resolve(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(e.workDir, path)
}

// =============================================================================
// FILE READ
// =============================================================================

// readFile reads the whole file as text.
func (e *Executor) readFile(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return errorBlock(toolcall.ReadFile, path, describe(err))
	}
	if !utf8.Valid(data) {
		return errorBlock(toolcall.ReadFile, path, "file does not contain valid UTF-8")
	}
	return resultBlock(toolcall.ReadFile, path, string(data))
}

// =============================================================================
// DIRECTORY READ
// =============================================================================

// readDirectory lists immediate entries, one per line, each labeled
// [DIR], [FILE], or [?] when the entry type cannot be determined.
// Entries stay in the order the filesystem returned them; sorting
// would change the literal text the model sees, so it is left alone.
func (e *Executor) readDirectory(path string) string {
	dir, err := os.Open(path)
	if err != nil {
		return errorBlock(toolcall.ReadDirectory, path, describe(err))
	}
	defer dir.Close()

	entries, err := dir.ReadDir(-1)
	if err != nil {
		return errorBlock(toolcall.ReadDirectory, path, describe(err))
	}

	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		kind := "[?]"
		if info, err := entry.Info(); err == nil {
			if info.IsDir() {
				kind = "[DIR]"
			} else {
				kind = "[FILE]"
			}
		}
		lines = append(lines, kind+" "+entry.Name())
	}
	return resultBlock(toolcall.ReadDirectory, path, strings.Join(lines, "\n"))
}

// =============================================================================
// RESULT FORMATTING
// =============================================================================

// resultBlock formats a successful read for the conversation.
func resultBlock(tool toolcall.Name, path, body string) string {
	return "[TOOL RESULT: " + string(tool) + "]\nPath: " + path + "\n---\n" + body
}

// errorBlock formats a failed read for the conversation.
func errorBlock(tool toolcall.Name, path, reason string) string {
	return "[TOOL ERROR: " + string(tool) + "]\nPath: " + path + "\nError: " + reason
}

// describe strips the path repetition from os errors; the block
// already carries the resolved path on its own line.
func describe(err error) string {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err.Error()
	}
	return err.Error()
}
