// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/jeranaias/quill-tui/internal/ollama"
)

// =============================================================================
// STEP TYPE
// =============================================================================

// StepKind is the outcome of one assembler advance.
type StepKind int

const (
	// StepProgressed means the stream is still open; text may or may
	// not have accumulated. Poll again.
	StepProgressed StepKind = iota
	// StepCompleted means the backend signaled done.
	StepCompleted
	// StepStreamEnded means the fragment source ended without a done
	// signal. Not an error; the accumulated text stands.
	StepStreamEnded
	// StepStreamError means the source failed mid-reply. The
	// accumulated text still stands; the error is non-fatal.
	StepStreamError
)

// String returns a human-readable name for the step kind.
func (k StepKind) String() string {
	switch k {
	case StepProgressed:
		return "progressed"
	case StepCompleted:
		return "completed"
	case StepStreamEnded:
		return "stream ended"
	case StepStreamError:
		return "stream error"
	default:
		return "unknown"
	}
}

// Step is one assembler advance outcome. Err is set only for
// StepStreamError.
type Step struct {
	Kind StepKind
	Err  error
}

// =============================================================================
// FRAGMENT SOURCE
// =============================================================================

// FragmentSource is the assembler's view of one open reply stream.
// *ollama.Stream satisfies it; tests substitute scripted sources.
type FragmentSource interface {
	Poll(budget time.Duration) (string, ollama.PollStatus, error)
	Close()
}

// =============================================================================
// ASSEMBLER
// =============================================================================

// replyLine is the per-line wire shape. Chat responses carry the text
// under message.content, generate responses under response; either may
// carry the terminating done flag.
type replyLine struct {
	Message struct {
		Content string `json:"content"`
	} `json:"message"`
	Response string `json:"response"`
	Done     *bool  `json:"done"`
}

// Assembler converts one stream of raw fragments into accumulated
// visible text and a completion signal. Fragments may split a JSON
// object anywhere, so a partial trailing line is carried between
// advances; every complete line is independently parseable or it is
// ignored. One bad line never fails the turn.
type Assembler struct {
	source    FragmentSource
	buf       strings.Builder
	remainder string
	done      bool
	taken     bool
}

// NewAssembler wraps one open fragment source.
func NewAssembler(source FragmentSource) *Assembler {
	return &Assembler{source: source}
}

// Advance polls the source once, bounded by budget, and folds whatever
// arrived into the reply buffer.
func (a *Assembler) Advance(budget time.Duration) Step {
	if a.done {
		return Step{Kind: StepStreamEnded}
	}

	fragment, status, err := a.source.Poll(budget)
	switch status {
	case ollama.PollFragment:
		if a.ingest(fragment) {
			a.done = true
			return Step{Kind: StepCompleted}
		}
		return Step{Kind: StepProgressed}
	case ollama.PollTimeout:
		return Step{Kind: StepProgressed}
	case ollama.PollEnded:
		a.consumeLine(a.remainder)
		a.remainder = ""
		a.done = true
		return Step{Kind: StepStreamEnded}
	default:
		a.done = true
		return Step{Kind: StepStreamError, Err: err}
	}
}

// ingest folds one fragment into the buffer, reporting whether the
// done marker was seen. Lines after the marker are discarded.
func (a *Assembler) ingest(fragment string) bool {
	data := a.remainder + fragment
	lines := strings.Split(data, "\n")
	a.remainder = lines[len(lines)-1]
	for _, line := range lines[:len(lines)-1] {
		if a.consumeLine(line) {
			return true
		}
	}
	return false
}

// consumeLine parses one complete line, appending any reply text and
// reporting whether it carried done=true. Blank and malformed lines
// are skipped.
func (a *Assembler) consumeLine(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	var parsed replyLine
	if err := json.Unmarshal([]byte(line), &parsed); err != nil {
		return false
	}

	if parsed.Message.Content != "" {
		a.buf.WriteString(parsed.Message.Content)
	} else if parsed.Response != "" {
		a.buf.WriteString(parsed.Response)
	}

	return parsed.Done != nil && *parsed.Done
}

// Text returns the text accumulated so far; rendered while streaming.
func (a *Assembler) Text() string {
	return a.buf.String()
}

// Take yields the accumulated text exactly once. Later calls return
// ok=false, which is what makes finalization idempotent: whichever of
// completion, stream end, or stream error fires first gets the text,
// anything after gets nothing to commit.
func (a *Assembler) Take() (string, bool) {
	if a.taken {
		return "", false
	}
	a.taken = true
	text := a.buf.String()
	a.buf.Reset()
	return text, true
}

// Close releases the underlying stream.
func (a *Assembler) Close() {
	if a.source != nil {
		a.source.Close()
	}
}
