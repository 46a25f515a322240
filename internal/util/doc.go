// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions for the quill application.
//
// This package contains common helper functions used throughout the
// application for width-aware string manipulation and display-safe
// Unicode normalization.
//
// # Key Functions
//
// String Utilities:
//   - TruncateWidth: display-width truncation with ellipsis (runewidth)
//   - TruncateRunes: UTF-8 safe rune-count truncation
//   - PadRight: space padding to a display width
//
// Unicode:
//   - NormalizeDisplay: NFC normalization for terminal rendering
//
// # Usage
//
//	// Truncate long strings safely for a status bar cell
//	display := util.TruncateWidth(longText, 50)
//
//	// Normalize streamed model output before rendering
//	shown := util.NormalizeDisplay(chunk)
package util
