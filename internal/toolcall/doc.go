// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package toolcall defines the tool invocation vocabulary shared by the
// session engine, the executor, and the UI, plus the extractor that
// detects invocations embedded in assistant replies.
//
// # Grammar
//
// An invocation is a bracketed directive inside ordinary prose:
//
//	[tool_call: read_file('notes.txt')]
//	[tool_call: read_directory(path="src")]
//
// Tool names are case-sensitive. The path argument is quoted with
// either quote character and may carry an optional "path=" prefix.
// Only the first complete invocation in a reply is extracted; a model
// may only have one call awaiting approval at a time.
//
// # Key Types
//
//   - Name: supported tool identifier (read_file, read_directory)
//   - Call: one structured invocation with its path argument
//
// # Normalization
//
// Call.Invocation re-serializes a call as NAME("PATH") regardless of
// the original quoting. Approval prompts and denial records show this
// normalized form, never the raw matched text.
package toolcall
