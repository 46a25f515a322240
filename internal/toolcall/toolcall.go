// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package toolcall defines the tool invocation vocabulary and the
// extractor that detects invocations in assistant replies.
package toolcall

// =============================================================================
// TOOL NAMES
// =============================================================================

// Name identifies one of the supported filesystem tools.
type Name string

const (
	ReadFile      Name = "read_file"
	ReadDirectory Name = "read_directory"
)

// String returns the wire form of the tool name.
func (n Name) String() string {
	return string(n)
}

// DisplayName returns a human-readable name for the tool.
func (n Name) DisplayName() string {
	switch n {
	case ReadFile:
		return "Read File"
	case ReadDirectory:
		return "Read Directory"
	default:
		return string(n)
	}
}

// IsValid reports whether the name is a supported tool.
func (n Name) IsValid() bool {
	return n == ReadFile || n == ReadDirectory
}

// =============================================================================
// CALL TYPE
// =============================================================================

// Call is one structured tool invocation: which tool, and the path
// argument exactly as the model supplied it (trimmed, unresolved).
type Call struct {
	Tool Name
	Path string
}

// Invocation returns the normalized re-serialization of the call,
// always double-quoted regardless of how the model quoted the path.
// This is the form shown in approval prompts and denial records.
func (c Call) Invocation() string {
	return string(c.Tool) + "(\"" + c.Path + "\")"
}
