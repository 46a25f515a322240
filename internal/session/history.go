// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"strings"

	"github.com/jeranaias/quill-tui/internal/ollama"
)

// DefaultDisplayCap is the display history size used when the caller
// does not configure one.
const DefaultDisplayCap = 50

// =============================================================================
// DISPLAY HISTORY
// =============================================================================

// DisplayHistory is the bounded, time-ascending sequence of turns that
// gets rendered. Every append is subject to the cap: when it would be
// exceeded the oldest turn is evicted. Pending and denied tool entries
// live here and only here; they are never part of the transcript.
type DisplayHistory struct {
	cap   int
	turns []*Turn
}

// NewDisplayHistory creates a history bounded to cap entries.
// Non-positive caps fall back to DefaultDisplayCap.
func NewDisplayHistory(cap int) *DisplayHistory {
	if cap <= 0 {
		cap = DefaultDisplayCap
	}
	return &DisplayHistory{
		cap:   cap,
		turns: make([]*Turn, 0, cap),
	}
}

// Push appends a turn, evicting the oldest entry on overflow.
func (h *DisplayHistory) Push(t *Turn) {
	h.turns = append(h.turns, t)
	if len(h.turns) > h.cap {
		n := copy(h.turns, h.turns[1:])
		h.turns[n] = nil
		h.turns = h.turns[:n]
	}
}

// PopTail removes and returns the newest turn, or nil if empty.
func (h *DisplayHistory) PopTail() *Turn {
	if len(h.turns) == 0 {
		return nil
	}
	last := h.turns[len(h.turns)-1]
	h.turns[len(h.turns)-1] = nil
	h.turns = h.turns[:len(h.turns)-1]
	return last
}

// Tail returns the newest turn without removing it, or nil if empty.
func (h *DisplayHistory) Tail() *Turn {
	if len(h.turns) == 0 {
		return nil
	}
	return h.turns[len(h.turns)-1]
}

// Turns returns a copy of the entries, oldest first.
func (h *DisplayHistory) Turns() []*Turn {
	out := make([]*Turn, len(h.turns))
	copy(out, h.turns)
	return out
}

// Len returns the number of entries.
func (h *DisplayHistory) Len() int {
	return len(h.turns)
}

// Cap returns the configured bound.
func (h *DisplayHistory) Cap() int {
	return h.cap
}

// =============================================================================
// TRANSCRIPT
// =============================================================================

// Transcript is the unbounded role/content sequence sent to the
// backend on every request. It is seeded with exactly one system entry
// and afterwards only grows by user and assistant records; tool
// approval traffic never appears here in its own role.
//
// Nothing caps it, so a very long session grows its request payloads
// without bound. Entries and EntryCount exist so callers can watch
// that growth.
type Transcript struct {
	entries []ollama.Message
}

// NewTranscript seeds the transcript with the session's system prompt.
func NewTranscript(systemPrompt string) *Transcript {
	return &Transcript{
		entries: []ollama.Message{ollama.NewSystemMessage(systemPrompt)},
	}
}

// RecordUser commits a user entry.
func (t *Transcript) RecordUser(text string) {
	t.entries = append(t.entries, ollama.NewUserMessage(text))
}

// RecordAssistant commits an assistant entry.
func (t *Transcript) RecordAssistant(text string) {
	t.entries = append(t.entries, ollama.NewAssistantMessage(text))
}

// BuildRequest returns the stored entries plus one trailing user entry
// holding pendingUserText, without mutating the transcript. Every
// backend request is formed this way; the pending text is only
// recorded once the submit path commits it.
func (t *Transcript) BuildRequest(pendingUserText string) []ollama.Message {
	out := make([]ollama.Message, 0, len(t.entries)+1)
	out = append(out, t.entries...)
	out = append(out, ollama.NewUserMessage(pendingUserText))
	return out
}

// Entries returns a copy of the committed sequence.
func (t *Transcript) Entries() []ollama.Message {
	out := make([]ollama.Message, len(t.entries))
	copy(out, t.entries)
	return out
}

// EntryCount returns the number of committed entries, seed included.
func (t *Transcript) EntryCount() int {
	return len(t.entries)
}

// =============================================================================
// MEMORY LOG
// =============================================================================

// Exchange is one completed prompt/reply pair.
type Exchange struct {
	Prompt string
	Reply  string
}

// MemoryLog accumulates one Exchange per committed assistant turn. It
// feeds the single-string prompt builder, an alternate request shape
// kept alongside the primary streaming path.
type MemoryLog struct {
	exchanges []Exchange
}

// Append records one completed exchange.
func (m *MemoryLog) Append(prompt, reply string) {
	m.exchanges = append(m.exchanges, Exchange{Prompt: prompt, Reply: reply})
}

// Exchanges returns a copy of the recorded pairs.
func (m *MemoryLog) Exchanges() []Exchange {
	out := make([]Exchange, len(m.exchanges))
	copy(out, m.exchanges)
	return out
}

// Len returns the number of recorded pairs.
func (m *MemoryLog) Len() int {
	return len(m.exchanges)
}

// BuildPrompt inlines the system prompt, every recorded exchange, and
// the next user message into one flat prompt string, ending on an
// open assistant cue.
func (m *MemoryLog) BuildPrompt(systemPrompt, userMessage string) string {
	var b strings.Builder
	b.WriteString(systemPrompt)
	b.WriteString("\n\n")
	for _, ex := range m.exchanges {
		b.WriteString("USER: ")
		b.WriteString(ex.Prompt)
		b.WriteString("\nASSISTANT: ")
		b.WriteString(ex.Reply)
		b.WriteString("\n")
	}
	b.WriteString("USER: ")
	b.WriteString(userMessage)
	b.WriteString("\nASSISTANT:")
	return b.String()
}
