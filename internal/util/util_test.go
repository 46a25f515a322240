// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"strings"
	"testing"
)

// =============================================================================
// TRUNCATION TESTS
// =============================================================================

func TestTruncateWidth(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		want     string
	}{
		{"empty string", "", 10, ""},
		{"shorter than max", "hello", 10, "hello"},
		{"exactly max", "hello", 5, "hello"},
		{"needs truncation", "hello world", 8, "hello..."},
		{"zero width", "hello", 0, ""},
		{"negative width", "hello", -1, ""},
		{"tiny width keeps no ellipsis", "hello", 2, "he"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateWidth(tt.input, tt.maxWidth)
			if got != tt.want {
				t.Errorf("TruncateWidth(%q, %d) = %q, want %q", tt.input, tt.maxWidth, got, tt.want)
			}
		})
	}
}

func TestTruncateWidthCJK(t *testing.T) {
	// Each CJK ideograph occupies two columns.
	got := TruncateWidth("日本語テスト", 6)
	if StringWidth(got) > 6 {
		t.Errorf("TruncateWidth CJK result width = %d, want <= 6", StringWidth(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("TruncateWidth CJK result = %q, want ellipsis suffix", got)
	}
}

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxRunes int
		want     string
	}{
		{"no truncation", "abc", 5, "abc"},
		{"truncated", "abcdefgh", 6, "abc..."},
		{"multibyte preserved", "héllo wörld", 8, "héllo..."},
		{"zero", "abc", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateRunes(tt.input, tt.maxRunes)
			if got != tt.want {
				t.Errorf("TruncateRunes(%q, %d) = %q, want %q", tt.input, tt.maxRunes, got, tt.want)
			}
		})
	}
}

// =============================================================================
// PADDING AND WIDTH TESTS
// =============================================================================

func TestPadRight(t *testing.T) {
	if got := PadRight("ab", 5); got != "ab   " {
		t.Errorf("PadRight(\"ab\", 5) = %q, want 'ab   '", got)
	}
	if got := PadRight("abcdef", 3); got != "abcdef" {
		t.Errorf("PadRight should not shrink: got %q", got)
	}
	// CJK padding accounts for double-width cells
	if got := PadRight("日", 4); StringWidth(got) != 4 {
		t.Errorf("PadRight CJK width = %d, want 4", StringWidth(got))
	}
}

func TestStringWidth(t *testing.T) {
	if got := StringWidth("hello"); got != 5 {
		t.Errorf("StringWidth(\"hello\") = %d, want 5", got)
	}
	if got := StringWidth("日本"); got != 4 {
		t.Errorf("StringWidth(\"日本\") = %d, want 4", got)
	}
}

// =============================================================================
// NORMALIZATION TESTS
// =============================================================================

func TestNormalizeDisplay(t *testing.T) {
	// "e" + combining acute accent should compose to U+00E9.
	decomposed := "é"
	got := NormalizeDisplay(decomposed)
	if got != "é" {
		t.Errorf("NormalizeDisplay(%q) = %q, want %q", decomposed, got, "é")
	}

	// Already-normalized text is returned unchanged.
	if got := NormalizeDisplay("plain ascii"); got != "plain ascii" {
		t.Errorf("NormalizeDisplay changed plain text: %q", got)
	}
}

func TestFirstLine(t *testing.T) {
	if got := FirstLine("one\ntwo\nthree"); got != "one" {
		t.Errorf("FirstLine = %q, want 'one'", got)
	}
	if got := FirstLine("single"); got != "single" {
		t.Errorf("FirstLine = %q, want 'single'", got)
	}
}

// =============================================================================
// BENCHMARKS
// =============================================================================

func BenchmarkTruncateWidth(b *testing.B) {
	s := strings.Repeat("lorem ipsum ", 50)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		TruncateWidth(s, 80)
	}
}

func BenchmarkNormalizeDisplayASCII(b *testing.B) {
	s := strings.Repeat("plain ascii text ", 64)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		NormalizeDisplay(s)
	}
}
