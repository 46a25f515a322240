// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tools executes approved filesystem tool calls and formats
// their outcomes as conversation text.
//
// # Supported Tools
//
//   - read_file: read one file fully as UTF-8 text
//   - read_directory: list a directory's immediate entries
//
// # Output Blocks
//
// Success:
//
//	[TOOL RESULT: read_file]
//	Path: /work/notes.txt
//	---
//	<contents>
//
// Failure:
//
//	[TOOL ERROR: read_file]
//	Path: /work/notes.txt
//	Error: no such file or directory
//
// Failures are ordinary return values, never errors: the block is fed
// back to the model as conversation content so it can react.
//
// # Sandboxing
//
// Relative paths are joined under a working-directory root fixed at
// construction. Absolute paths replace the root. There is no traversal
// restriction beyond the join itself.
package tools
