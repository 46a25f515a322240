// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/quill-tui/internal/config"
	"github.com/jeranaias/quill-tui/internal/ollama"
	"github.com/jeranaias/quill-tui/internal/session"
	"github.com/jeranaias/quill-tui/internal/toolcall"
	"github.com/jeranaias/quill-tui/internal/ui/styles"
)

// =============================================================================
// FAKES
// =============================================================================

type fakeStream struct {
	fragments []string
	closed    bool
}

func (s *fakeStream) Poll(budget time.Duration) (string, ollama.PollStatus, error) {
	if len(s.fragments) > 0 {
		f := s.fragments[0]
		s.fragments = s.fragments[1:]
		return f, ollama.PollFragment, nil
	}
	return "", ollama.PollEnded, nil
}

func (s *fakeStream) Close() { s.closed = true }

// replyStream scripts one complete assistant reply.
func replyStream(text string) *fakeStream {
	return &fakeStream{fragments: []string{
		"{\"message\":{\"content\":\"" + text + "\"}}\n{\"done\":true}\n",
	}}
}

// toolCallStream scripts a reply carrying an invocation.
func toolCallStream() *fakeStream {
	return &fakeStream{fragments: []string{
		"{\"message\":{\"content\":\"Let me check. [tool_call: read_file('notes.txt')]\"}}\n{\"done\":true}\n",
	}}
}

type fakeBackend struct {
	models  []ollama.ModelInfo
	streams []*fakeStream
	openErr error
	opens   int
}

func (b *fakeBackend) ListModelsWithFallback(ctx context.Context) ([]ollama.ModelInfo, bool) {
	return b.models, false
}

func (b *fakeBackend) OpenChatStream(ctx context.Context, model string, transcript []ollama.Message) (session.FragmentSource, error) {
	b.opens++
	if b.openErr != nil {
		return nil, b.openErr
	}
	if len(b.streams) == 0 {
		return &fakeStream{}, nil
	}
	src := b.streams[0]
	b.streams = b.streams[1:]
	return src, nil
}

type fakeRunner struct {
	result string
	runs   int
}

func (r *fakeRunner) Run(call toolcall.Call) string {
	r.runs++
	return r.result
}

type fakeProber struct {
	err error
}

func (p *fakeProber) CheckRunning(ctx context.Context) error { return p.err }

// =============================================================================
// HARNESS
// =============================================================================

func newTestModel(t *testing.T, backend *fakeBackend) *Model {
	t.Helper()
	if backend.models == nil {
		backend.models = []ollama.ModelInfo{{Name: "llama2"}, {Name: "mistral"}}
	}

	engine := session.NewEngine(backend, &fakeRunner{result: "contents"}, session.Options{
		SystemPrompt: "sys",
		Model:        "llama2",
	})
	engine.LoadModels(context.Background())

	m := New(engine, &fakeProber{}, styles.NewThemeWithBackground(true), config.Default())
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m
}

// typeText feeds the input through the real key path.
func typeText(m *Model, text string) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

// pressKey sends one special key.
func pressKey(m *Model, kt tea.KeyType) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: kt})
	return cmd
}

// drainStream ticks the model until the engine leaves streaming.
func drainStream(t *testing.T, m *Model) {
	t.Helper()
	for i := 0; i < 1000; i++ {
		if m.engine.State() != session.StateStreaming {
			return
		}
		m.Update(advanceTickMsg{})
	}
	t.Fatal("engine never left streaming")
}

// =============================================================================
// SUBMIT
// =============================================================================

func TestSubmitStartsStream(t *testing.T) {
	backend := &fakeBackend{streams: []*fakeStream{replyStream("Hello!")}}
	m := newTestModel(t, backend)

	typeText(m, "hi there")
	cmd := pressKey(m, tea.KeyEnter)

	if m.engine.State() != session.StateStreaming {
		t.Errorf("State() = %v, want %v", m.engine.State(), session.StateStreaming)
	}
	if got := m.input.Value(); got != "" {
		t.Errorf("input.Value() = %q, want empty after submit", got)
	}
	if cmd == nil {
		t.Error("submit returned nil cmd, want advance tick")
	}
}

func TestSubmitBlankInputIsNoop(t *testing.T) {
	backend := &fakeBackend{}
	m := newTestModel(t, backend)

	typeText(m, "   ")
	pressKey(m, tea.KeyEnter)

	if m.engine.State() != session.StateIdle {
		t.Errorf("State() = %v, want %v", m.engine.State(), session.StateIdle)
	}
	if got := len(m.engine.View().Turns); got != 0 {
		t.Errorf("len(Turns) = %d, want 0", got)
	}
	if backend.opens != 0 {
		t.Errorf("opens = %d, want 0", backend.opens)
	}
}

func TestSubmitFailureSurfacesError(t *testing.T) {
	backend := &fakeBackend{openErr: errors.New("connection refused")}
	m := newTestModel(t, backend)

	typeText(m, "hi")
	pressKey(m, tea.KeyEnter)

	v := m.engine.View()
	if v.Err != "connection refused" {
		t.Errorf("Err = %q, want %q", v.Err, "connection refused")
	}
	if m.engine.State() != session.StateIdle {
		t.Errorf("State() = %v, want %v", m.engine.State(), session.StateIdle)
	}
}

// =============================================================================
// ADVANCE TICKS
// =============================================================================

func TestAdvanceTickCompletesReply(t *testing.T) {
	backend := &fakeBackend{streams: []*fakeStream{replyStream("Hello!")}}
	m := newTestModel(t, backend)

	typeText(m, "hi")
	pressKey(m, tea.KeyEnter)
	drainStream(t, m)

	v := m.engine.View()
	if len(v.Turns) != 2 {
		t.Fatalf("len(Turns) = %d, want 2", len(v.Turns))
	}
	last := v.Turns[len(v.Turns)-1]
	if last.Kind != session.TurnAssistant {
		t.Errorf("tail Kind = %v, want %v", last.Kind, session.TurnAssistant)
	}
	if last.Content != "Hello!" {
		t.Errorf("tail Content = %q, want %q", last.Content, "Hello!")
	}
}

func TestAdvanceTickReschedulesWhileStreaming(t *testing.T) {
	backend := &fakeBackend{streams: []*fakeStream{
		{fragments: []string{
			"{\"message\":{\"content\":\"Hel\"}}\n",
			"{\"message\":{\"content\":\"lo\"}}\n{\"done\":true}\n",
		}},
	}}
	m := newTestModel(t, backend)

	typeText(m, "hi")
	pressKey(m, tea.KeyEnter)

	_, cmd := m.Update(advanceTickMsg{})
	if cmd == nil {
		t.Error("tick during stream returned nil cmd, want reschedule")
	}

	drainStream(t, m)
	_, cmd = m.Update(advanceTickMsg{})
	if cmd != nil {
		t.Error("tick while idle returned a cmd, want nil")
	}
}

// =============================================================================
// KEY ROUTING BY STATE
// =============================================================================

func TestStreamingLocksInput(t *testing.T) {
	backend := &fakeBackend{streams: []*fakeStream{replyStream("Hello!")}}
	m := newTestModel(t, backend)

	typeText(m, "hi")
	pressKey(m, tea.KeyEnter)

	typeText(m, "interrupting")
	if got := m.input.Value(); got != "" {
		t.Errorf("input.Value() = %q, want empty while streaming", got)
	}

	turns := len(m.engine.View().Turns)
	pressKey(m, tea.KeyEnter)
	if got := len(m.engine.View().Turns); got != turns {
		t.Errorf("len(Turns) = %d, want %d (enter must be ignored)", got, turns)
	}
}

func TestModelCycleKeys(t *testing.T) {
	backend := &fakeBackend{}
	m := newTestModel(t, backend)

	pressKey(m, tea.KeyDown)
	if got := m.engine.CurrentModel(); got != "mistral" {
		t.Errorf("CurrentModel() after down = %q, want %q", got, "mistral")
	}

	pressKey(m, tea.KeyUp)
	if got := m.engine.CurrentModel(); got != "llama2" {
		t.Errorf("CurrentModel() after up = %q, want %q", got, "llama2")
	}
}

func TestModelCycleIgnoredWhileStreaming(t *testing.T) {
	backend := &fakeBackend{streams: []*fakeStream{replyStream("Hello!")}}
	m := newTestModel(t, backend)

	typeText(m, "hi")
	pressKey(m, tea.KeyEnter)

	pressKey(m, tea.KeyDown)
	if got := m.engine.CurrentModel(); got != "llama2" {
		t.Errorf("CurrentModel() = %q, want %q (cycle locked mid-stream)", got, "llama2")
	}
}

func TestQuitClosesEngineFromAnyState(t *testing.T) {
	backend := &fakeBackend{streams: []*fakeStream{replyStream("Hello!")}}
	m := newTestModel(t, backend)

	typeText(m, "hi")
	pressKey(m, tea.KeyEnter)

	cmd := pressKey(m, tea.KeyCtrlC)
	if cmd == nil {
		t.Fatal("ctrl+c returned nil cmd, want quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("ctrl+c cmd produced %T, want tea.QuitMsg", cmd())
	}
}

// =============================================================================
// APPROVAL FLOW
// =============================================================================

// awaitApproval drives a scripted tool-call reply to the approval gate.
func awaitApproval(t *testing.T, backend *fakeBackend) *Model {
	t.Helper()
	m := newTestModel(t, backend)

	typeText(m, "read my notes")
	pressKey(m, tea.KeyEnter)
	drainStream(t, m)

	if m.engine.State() != session.StateAwaitingApproval {
		t.Fatalf("State() = %v, want %v", m.engine.State(), session.StateAwaitingApproval)
	}
	return m
}

func TestApproveRunsToolAndResumes(t *testing.T) {
	backend := &fakeBackend{streams: []*fakeStream{
		toolCallStream(),
		replyStream("Your notes say hi."),
	}}
	m := awaitApproval(t, backend)

	cmd := pressKey(m, tea.KeyRight)
	if m.engine.State() != session.StateStreaming {
		t.Errorf("State() = %v, want %v after approve", m.engine.State(), session.StateStreaming)
	}
	if cmd == nil {
		t.Error("approve returned nil cmd, want advance tick")
	}

	drainStream(t, m)
	v := m.engine.View()
	last := v.Turns[len(v.Turns)-1]
	if last.Content != "Your notes say hi." {
		t.Errorf("tail Content = %q, want %q", last.Content, "Your notes say hi.")
	}
}

func TestDenyRecordsDenialAndIdles(t *testing.T) {
	backend := &fakeBackend{streams: []*fakeStream{toolCallStream()}}
	m := awaitApproval(t, backend)
	opens := backend.opens

	pressKey(m, tea.KeyLeft)

	if m.engine.State() != session.StateIdle {
		t.Errorf("State() = %v, want %v after deny", m.engine.State(), session.StateIdle)
	}
	v := m.engine.View()
	last := v.Turns[len(v.Turns)-1]
	if last.Kind != session.TurnToolDenied {
		t.Errorf("tail Kind = %v, want %v", last.Kind, session.TurnToolDenied)
	}
	if backend.opens != opens {
		t.Errorf("opens = %d, want %d (deny must not contact backend)", backend.opens, opens)
	}
}

func TestApprovalSwallowsOtherKeys(t *testing.T) {
	backend := &fakeBackend{streams: []*fakeStream{toolCallStream()}}
	m := awaitApproval(t, backend)

	typeText(m, "stray keys")
	pressKey(m, tea.KeyEnter)
	pressKey(m, tea.KeyDown)

	if m.engine.State() != session.StateAwaitingApproval {
		t.Errorf("State() = %v, want %v", m.engine.State(), session.StateAwaitingApproval)
	}
	if got := m.input.Value(); got != "" {
		t.Errorf("input.Value() = %q, want empty during approval", got)
	}
	if got := m.engine.CurrentModel(); got != "llama2" {
		t.Errorf("CurrentModel() = %q, want %q", got, "llama2")
	}
}

// =============================================================================
// PROBES AND RESIZE
// =============================================================================

func TestProbeResultUpdatesStatusBar(t *testing.T) {
	backend := &fakeBackend{}
	m := newTestModel(t, backend)

	m.Update(probeResultMsg{up: false})
	if got := m.statusBar.View(); !strings.Contains(got, "down") {
		t.Errorf("status bar = %q, want backend-down marker", got)
	}

	m.Update(probeResultMsg{up: true})
	if got := m.statusBar.View(); !strings.Contains(got, "up") {
		t.Errorf("status bar = %q, want backend-up marker", got)
	}
}

func TestProbeTickSchedulesProbe(t *testing.T) {
	backend := &fakeBackend{}
	m := newTestModel(t, backend)

	_, cmd := m.Update(probeTickMsg{})
	if cmd == nil {
		t.Error("probe tick returned nil cmd, want probe batch")
	}
}

func TestWindowSizeMakesViewReady(t *testing.T) {
	backend := &fakeBackend{}
	engine := session.NewEngine(backend, &fakeRunner{}, session.Options{Model: "llama2"})
	backend.models = []ollama.ModelInfo{{Name: "llama2"}}
	engine.LoadModels(context.Background())
	m := New(engine, &fakeProber{}, styles.NewThemeWithBackground(true), config.Default())

	if got := m.View(); got != "" {
		t.Errorf("View() before sizing = %q, want empty", got)
	}

	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	if m.View() == "" {
		t.Error("View() after sizing is empty, want frame")
	}
}

func TestResizeKeepsViewportUsable(t *testing.T) {
	backend := &fakeBackend{}
	m := newTestModel(t, backend)

	tests := []struct {
		width, height int
	}{
		{100, 30},
		{80, 24},
		{60, 20},
		{40, 10},
		{20, 5},
	}
	for _, tt := range tests {
		m.Update(tea.WindowSizeMsg{Width: tt.width, Height: tt.height})
		if m.viewport.Height < 3 {
			t.Errorf("viewport.Height at %dx%d = %d, want >= 3",
				tt.width, tt.height, m.viewport.Height)
		}
	}
}

// =============================================================================
// CONFIG RELOAD
// =============================================================================

func TestConfigReloadAppliesDisplaySettings(t *testing.T) {
	backend := &fakeBackend{}
	m := newTestModel(t, backend)

	if !m.showTitleArt {
		t.Fatal("title art should start enabled")
	}

	updated := config.Default()
	updated.UI.ShowTitleArt = false
	updated.UI.WordWrap = 60
	m.Update(ConfigReloadedMsg{Config: updated})

	if m.showTitleArt {
		t.Error("showTitleArt should be false after reload")
	}
	if m.wordWrap != 60 {
		t.Errorf("wordWrap = %d, want 60", m.wordWrap)
	}
	if got := m.View(); strings.Contains(got, "██") {
		t.Error("banner still rendered after reload disabled it")
	}
}

func TestConfigReloadIgnoresNil(t *testing.T) {
	backend := &fakeBackend{}
	m := newTestModel(t, backend)

	wrap := m.wordWrap
	m.Update(ConfigReloadedMsg{Config: nil})
	if m.wordWrap != wrap {
		t.Errorf("wordWrap changed on nil config: %d -> %d", wrap, m.wordWrap)
	}
}

// =============================================================================
// SPINNER
// =============================================================================

func TestSpinnerTicksOnlyWhileStreaming(t *testing.T) {
	backend := &fakeBackend{streams: []*fakeStream{replyStream("Hi")}}
	m := newTestModel(t, backend)

	if _, cmd := m.Update(m.spinner.Tick()); cmd != nil {
		t.Error("spinner tick while idle should not reschedule")
	}

	typeText(m, "hello")
	pressKey(m, tea.KeyEnter)
	if _, cmd := m.Update(m.spinner.Tick()); cmd == nil {
		t.Error("spinner tick while streaming should reschedule")
	}
	drainStream(t, m)
}
