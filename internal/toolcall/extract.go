// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package toolcall

import "strings"

// The extractor recognizes a small fixed grammar inside free-form
// assistant prose:
//
//	[tool_call: NAME(ARG)]
//
// where NAME is read_file or read_directory (case-sensitive), and ARG
// is a quoted path, optionally prefixed by "path=". The opening and
// closing quote may each independently be single or double. The path
// may not span lines. Whitespace is allowed after the colon and around
// the "=" of the path prefix, nowhere else.
//
// It is a dedicated scanner rather than a regular expression so every
// tolerance (quote mixing, the optional prefix, candidate recovery) is
// explicit and individually testable.

// marker opens every candidate invocation.
const marker = "[tool_call:"

// =============================================================================
// EXTRACTION
// =============================================================================

// Extract scans text for the first complete tool invocation and
// returns its structured form. Candidates that open with the marker
// but fail the grammar are skipped, and scanning resumes after them;
// matches past the first complete one are deliberately ignored, since
// only one call can await approval at a time. ok is false when the
// text contains no complete invocation.
func Extract(text string) (call Call, ok bool) {
	for start := 0; start < len(text); {
		idx := strings.Index(text[start:], marker)
		if idx < 0 {
			return Call{}, false
		}
		at := start + idx
		if call, ok := parseAt(text, at+len(marker)); ok {
			return call, true
		}
		start = at + 1
	}
	return Call{}, false
}

// parseAt attempts the grammar immediately after the marker.
func parseAt(text string, i int) (Call, bool) {
	i = skipSpace(text, i)

	var tool Name
	switch {
	case strings.HasPrefix(text[i:], string(ReadFile)):
		tool = ReadFile
		i += len(ReadFile)
	case strings.HasPrefix(text[i:], string(ReadDirectory)):
		tool = ReadDirectory
		i += len(ReadDirectory)
	default:
		return Call{}, false
	}

	if i >= len(text) || text[i] != '(' {
		return Call{}, false
	}
	i++

	// Optional "path=" prefix. It only applies when the full form,
	// opening quote included, is present; otherwise the bytes must
	// themselves be the quoted argument.
	if strings.HasPrefix(text[i:], "path") {
		j := skipSpace(text, i+len("path"))
		if j < len(text) && text[j] == '=' {
			j = skipSpace(text, j+1)
			if j < len(text) && isQuote(text[j]) {
				i = j
			}
		}
	}

	if i >= len(text) || !isQuote(text[i]) {
		return Call{}, false
	}
	i++

	// The argument ends at the earliest quote that is immediately
	// followed by ")]". Quote characters before that point belong to
	// the path itself. A newline ends the candidate.
	for k := i; k < len(text); k++ {
		c := text[k]
		if c == '\n' {
			return Call{}, false
		}
		if isQuote(c) && strings.HasPrefix(text[k+1:], ")]") {
			return Call{Tool: tool, Path: strings.TrimSpace(text[i:k])}, true
		}
	}
	return Call{}, false
}

// =============================================================================
// SCANNER HELPERS
// =============================================================================

// skipSpace advances past ASCII whitespace, newlines included.
func skipSpace(text string, i int) int {
	for i < len(text) {
		switch text[i] {
		case ' ', '\t', '\n', '\r', '\f', '\v':
			i++
		default:
			return i
		}
	}
	return i
}

// isQuote reports whether c can open or close a path argument.
func isQuote(c byte) bool {
	return c == '\'' || c == '"'
}
