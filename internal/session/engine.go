// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/quill-tui/internal/ollama"
	"github.com/jeranaias/quill-tui/internal/toolcall"
)

// =============================================================================
// STATE TYPE
// =============================================================================

// State is the engine's top-level mode.
type State int

const (
	// StateIdle accepts text submission and model selection.
	StateIdle State = iota
	// StateAwaitingApproval means a pending tool call is the tail of
	// the display history; only approve and deny are accepted.
	StateAwaitingApproval
	// StateStreaming means a reply is in flight; only advance ticks
	// are accepted.
	StateStreaming
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingApproval:
		return "awaiting approval"
	case StateStreaming:
		return "streaming"
	default:
		return "unknown"
	}
}

// =============================================================================
// COLLABORATOR CONTRACTS
// =============================================================================

// Backend is the engine's view of the model server.
type Backend interface {
	// ListModelsWithFallback never fails: when the server is
	// unreachable or lists nothing it substitutes a single synthetic
	// default model and reports that it did.
	ListModelsWithFallback(ctx context.Context) ([]ollama.ModelInfo, bool)

	// OpenChatStream performs the blocking request handshake and
	// returns the open reply stream. It fails only before the first
	// fragment is produced.
	OpenChatStream(ctx context.Context, model string, transcript []ollama.Message) (FragmentSource, error)
}

// ToolRunner executes one approved call and formats the outcome as
// conversation text.
type ToolRunner interface {
	Run(call toolcall.Call) string
}

// ollamaBackend adapts *ollama.Client to the Backend contract.
type ollamaBackend struct {
	client *ollama.Client
}

// NewOllamaBackend wraps an Ollama client as the engine's backend.
func NewOllamaBackend(client *ollama.Client) Backend {
	return ollamaBackend{client: client}
}

func (b ollamaBackend) ListModelsWithFallback(ctx context.Context) ([]ollama.ModelInfo, bool) {
	return b.client.ListModelsWithFallback(ctx)
}

func (b ollamaBackend) OpenChatStream(ctx context.Context, model string, transcript []ollama.Message) (FragmentSource, error) {
	stream, err := b.client.OpenChatStream(ctx, model, transcript)
	if err != nil {
		return nil, err
	}
	return stream, nil
}

// =============================================================================
// ENGINE
// =============================================================================

// Options configures a new engine.
type Options struct {
	// SystemPrompt seeds the transcript. Required.
	SystemPrompt string
	// DisplayCap bounds the display history; zero means the default.
	DisplayCap int
	// Model is the preferred model name; selection falls back to the
	// first listed model when it is absent.
	Model string
}

// Engine is the session state machine. It owns every piece of mutable
// session state and is driven from exactly one goroutine: the caller
// alternates input delivery with Advance ticks, and nothing here is
// safe for concurrent use.
type Engine struct {
	id      string
	backend Backend
	runner  ToolRunner

	systemPrompt string
	display      *DisplayHistory
	transcript   *Transcript
	memory       *MemoryLog

	state   State
	asm     *Assembler
	pending *toolcall.Call

	models       []ollama.ModelInfo
	modelIdx     int
	preferred    string
	usedFallback bool

	lastErr string
	prompt  string
}

// NewEngine creates an idle engine. It performs no IO; call LoadModels
// before the first submit to populate model selection.
func NewEngine(backend Backend, runner ToolRunner, opts Options) *Engine {
	return &Engine{
		id:           uuid.New().String(),
		backend:      backend,
		runner:       runner,
		systemPrompt: opts.SystemPrompt,
		display:      NewDisplayHistory(opts.DisplayCap),
		transcript:   NewTranscript(opts.SystemPrompt),
		memory:       &MemoryLog{},
		state:        StateIdle,
		preferred:    opts.Model,
	}
}

// ID returns the session identifier.
func (e *Engine) ID() string {
	return e.id
}

// State returns the current mode.
func (e *Engine) State() State {
	return e.state
}

// LastError returns the most recent visible error, or "".
func (e *Engine) LastError() string {
	return e.lastErr
}

// ClearError drops the visible error.
func (e *Engine) ClearError() {
	e.lastErr = ""
}

// SystemPrompt returns the prompt the transcript was seeded with.
func (e *Engine) SystemPrompt() string {
	return e.systemPrompt
}

// Memory returns the exchange log for the alternate prompt builder.
func (e *Engine) Memory() *MemoryLog {
	return e.memory
}

// TranscriptEntries returns a copy of the committed wire transcript.
func (e *Engine) TranscriptEntries() []ollama.Message {
	return e.transcript.Entries()
}

// =============================================================================
// MODEL SELECTION
// =============================================================================

// LoadModels fetches the installed model list, falling back to a
// single synthetic default when the server is unreachable, and selects
// the preferred model when present.
func (e *Engine) LoadModels(ctx context.Context) {
	e.models, e.usedFallback = e.backend.ListModelsWithFallback(ctx)
	e.modelIdx = 0
	if e.preferred == "" {
		return
	}
	for i, m := range e.models {
		if m.Name == e.preferred {
			e.modelIdx = i
			return
		}
	}
}

// Models returns the selectable models.
func (e *Engine) Models() []ollama.ModelInfo {
	out := make([]ollama.ModelInfo, len(e.models))
	copy(out, e.models)
	return out
}

// UsedFallbackModel reports whether startup substituted the synthetic
// default because the server was unreachable.
func (e *Engine) UsedFallbackModel() bool {
	return e.usedFallback
}

// CurrentModel returns the selected model name, or the preferred name
// before LoadModels has run.
func (e *Engine) CurrentModel() string {
	if e.modelIdx >= 0 && e.modelIdx < len(e.models) {
		return e.models[e.modelIdx].Name
	}
	return e.preferred
}

// NextModel selects the next model. Only honored while idle.
func (e *Engine) NextModel() {
	if e.state != StateIdle || len(e.models) == 0 {
		return
	}
	e.modelIdx = (e.modelIdx + 1) % len(e.models)
}

// PrevModel selects the previous model. Only honored while idle.
func (e *Engine) PrevModel() {
	if e.state != StateIdle || len(e.models) == 0 {
		return
	}
	e.modelIdx = (e.modelIdx - 1 + len(e.models)) % len(e.models)
}

// SelectModel selects a model by name, reporting whether it is listed.
// Only honored while idle.
func (e *Engine) SelectModel(name string) bool {
	if e.state != StateIdle {
		return false
	}
	for i, m := range e.models {
		if m.Name == name {
			e.modelIdx = i
			return true
		}
	}
	return false
}

// =============================================================================
// SUBMIT
// =============================================================================

// Submit sends user text to the model and enters streaming. Blank
// input is rejected quietly, and anything submitted while a reply is
// in flight or a tool call awaits approval is ignored. When the
// request handshake itself fails the error becomes visible, the user
// turn stays in history, and the engine remains idle.
func (e *Engine) Submit(ctx context.Context, text string) error {
	if e.state != StateIdle {
		return nil
	}
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return e.send(ctx, NewUserTurn(text), text)
}

// send is the shared submit path for user text and tool results: show
// the turn, form the request from the committed transcript plus the
// pending text, commit the text as a user entry, then open the stream.
func (e *Engine) send(ctx context.Context, turn *Turn, text string) error {
	e.lastErr = ""
	e.display.Push(turn)

	wire := e.transcript.BuildRequest(text)
	e.transcript.RecordUser(text)

	stream, err := e.backend.OpenChatStream(ctx, e.CurrentModel(), wire)
	if err != nil {
		e.lastErr = err.Error()
		e.state = StateIdle
		return err
	}

	e.asm = NewAssembler(stream)
	e.prompt = text
	e.state = StateStreaming
	return nil
}

// =============================================================================
// ADVANCE
// =============================================================================

// Advance drives the active stream one step, bounded by budget. It is
// a no-op outside streaming. On completion, stream end, or stream
// error it finalizes the reply and leaves streaming.
func (e *Engine) Advance(budget time.Duration) {
	if e.state != StateStreaming || e.asm == nil {
		return
	}

	step := e.asm.Advance(budget)
	switch step.Kind {
	case StepProgressed:
		// Still listening.
	case StepCompleted, StepStreamEnded:
		e.finalize(nil)
	case StepStreamError:
		e.finalize(step.Err)
	}
}

// finalize commits the streamed reply exactly once: the assembler
// yields its text only on the first take, so a second completion
// signal for the same stream commits nothing.
func (e *Engine) finalize(streamErr error) {
	if e.asm == nil {
		return
	}

	text, ok := e.asm.Take()
	e.asm.Close()
	e.asm = nil
	e.state = StateIdle

	if streamErr != nil {
		e.lastErr = streamErr.Error()
	}

	prompt := e.prompt
	e.prompt = ""

	if !ok || strings.TrimSpace(text) == "" {
		return
	}

	e.display.Push(NewAssistantTurn(text))
	e.transcript.RecordAssistant(text)
	e.memory.Append(prompt, text)

	if call, found := toolcall.Extract(text); found {
		e.pending = &call
		e.display.Push(NewPendingToolTurn(call))
		e.state = StateAwaitingApproval
	}
}

// =============================================================================
// APPROVE / DENY
// =============================================================================

// Approve executes the pending tool call synchronously and feeds its
// textual outcome back to the model through the ordinary submit path,
// shown distinctly as a tool-result turn. Outside awaiting-approval it
// is a no-op.
func (e *Engine) Approve(ctx context.Context) error {
	if e.state != StateAwaitingApproval || e.pending == nil {
		return nil
	}
	tail := e.display.Tail()
	if tail == nil || tail.Kind != TurnPendingTool {
		// The pending entry must be the newest turn; if it is not,
		// recover to idle rather than execute against stale state.
		e.pending = nil
		e.state = StateIdle
		return nil
	}

	call := *e.pending
	e.display.PopTail()
	e.pending = nil
	e.state = StateIdle

	result := e.runner.Run(call)
	return e.send(ctx, NewToolResultTurn(result), result)
}

// Deny refuses the pending tool call without contacting the backend.
// The denial entry preserves the invocation text verbatim. Outside
// awaiting-approval it is a no-op.
func (e *Engine) Deny() {
	if e.state != StateAwaitingApproval || e.pending == nil {
		return
	}
	tail := e.display.Tail()
	if tail == nil || tail.Kind != TurnPendingTool {
		e.pending = nil
		e.state = StateIdle
		return
	}

	popped := e.display.PopTail()
	e.display.Push(NewToolDeniedTurn(*popped.Call, popped.Invocation))
	e.pending = nil
	e.state = StateIdle
}

// =============================================================================
// VIEW
// =============================================================================

// View is a read-only snapshot for rendering.
type View struct {
	SessionID    string
	State        State
	Turns        []*Turn
	InProgress   string
	Loading      bool
	Err          string
	Model        string
	UsedFallback bool
}

// View snapshots the current display state.
func (e *Engine) View() View {
	v := View{
		SessionID:    e.id,
		State:        e.state,
		Turns:        e.display.Turns(),
		Loading:      e.state == StateStreaming,
		Err:          e.lastErr,
		Model:        e.CurrentModel(),
		UsedFallback: e.usedFallback,
	}
	if e.asm != nil {
		v.InProgress = e.asm.Text()
	}
	return v
}

// PendingCall returns the call awaiting approval, or nil.
func (e *Engine) PendingCall() *toolcall.Call {
	if e.pending == nil {
		return nil
	}
	c := *e.pending
	return &c
}

// Close tears the session down, releasing any open stream.
func (e *Engine) Close() {
	if e.asm != nil {
		e.asm.Close()
		e.asm = nil
	}
	e.state = StateIdle
}
