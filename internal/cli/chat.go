// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - interactive chat REPL for quill.
//
// HandleChat drives the session engine from a line-based prompt for
// people who want the conversation without the full-screen TUI.
// Replies stream to stdout, tool calls are confirmed with a y/N
// prompt, and slash commands cover model switching and session
// introspection.

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/peterh/liner"

	"github.com/jeranaias/quill-tui/internal/config"
	"github.com/jeranaias/quill-tui/internal/ollama"
	"github.com/jeranaias/quill-tui/internal/session"
	"github.com/jeranaias/quill-tui/internal/tools"
	"github.com/jeranaias/quill-tui/internal/ui/styles"
	"github.com/jeranaias/quill-tui/internal/util"
)

// =============================================================================
// OUTPUT STYLES
// =============================================================================

var (
	promptStyle  = lipgloss.NewStyle().Foreground(styles.Aqua).Bold(true)
	welcomeStyle = lipgloss.NewStyle().Foreground(styles.Pink).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(styles.TextMuted)
	commandStyle = lipgloss.NewStyle().Foreground(styles.Emerald)
	warningStyle = lipgloss.NewStyle().Foreground(styles.Amber)
	errorStyle   = lipgloss.NewStyle().Foreground(styles.Rose).Bold(true)
	headerStyle  = lipgloss.NewStyle().Foreground(styles.Aqua).Bold(true)
)

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// markdownRenderer renders committed replies when stdout is a
// terminal. Nil when initialization fails; replies then print as
// plain text.
var markdownRenderer *glamour.TermRenderer

func init() {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err == nil {
		markdownRenderer = renderer
	}
}

func renderMarkdown(content string) string {
	if markdownRenderer == nil {
		return content
	}
	rendered, err := markdownRenderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// displayReply prints a committed assistant reply with a guaranteed
// trailing newline.
func displayReply(reply string) {
	out := renderMarkdown(reply)
	fmt.Print(out)
	if !strings.HasSuffix(out, "\n") {
		fmt.Println()
	}
}

// =============================================================================
// LINE INPUT
// =============================================================================

// ChatCLI wraps liner for prompt input. History lives only for the
// current run; nothing is written to disk.
type ChatCLI struct {
	line *liner.State
}

// NewChatCLI creates the line editor. Ctrl+C at the prompt aborts the
// read instead of killing the process.
func NewChatCLI() *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	return &ChatCLI{line: line}
}

// ReadInput prompts for a line and records non-blank entries in the
// in-memory history.
func (c *ChatCLI) ReadInput(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

// ReadConfirm prompts for a one-off answer without touching history.
func (c *ChatCLI) ReadConfirm(prompt string) (string, error) {
	return c.line.Prompt(prompt)
}

// Close restores the terminal mode.
func (c *ChatCLI) Close() {
	c.line.Close()
}

// =============================================================================
// CHAT SESSION
// =============================================================================

// ChatSession holds the live state of one quill chat run.
type ChatSession struct {
	Engine     *session.Engine
	Client     *ollama.Client
	Config     *config.Config
	Quiet      bool
	StartTime  time.Time
	Queries    int
	CancelFunc context.CancelFunc
	InputCLI   *ChatCLI
}

// newChatEngine builds a session engine rooted at the configured
// working directory and loads the model list.
func newChatEngine(client *ollama.Client, cfg *config.Config, model string) *session.Engine {
	workDir := cfg.ResolveWorkingDir()
	engine := session.NewEngine(
		session.NewOllamaBackend(client),
		tools.NewExecutor(workDir),
		session.Options{
			SystemPrompt: session.DefaultSystemPrompt(workDir),
			DisplayCap:   cfg.Session.DisplayCap,
			Model:        model,
		},
	)
	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout())
	defer cancel()
	engine.LoadModels(ctx)
	return engine
}

// HandleChat runs the interactive chat REPL.
func HandleChat(args Args) error {
	if err := RequiresTTY("chat"); err != nil {
		return err
	}

	cfg := config.Global()
	args.ApplyTo(cfg)

	client := ollama.NewClientWithConfig(&ollama.ClientConfig{
		BaseURL:      cfg.Ollama.BaseURL,
		Timeout:      cfg.RequestTimeout(),
		DefaultModel: cfg.Ollama.DefaultModel,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout())
	err := client.CheckRunning(ctx)
	cancel()
	if err != nil {
		return fmt.Errorf("cannot reach Ollama at %s: %w\nStart it with: ollama serve", cfg.Ollama.BaseURL, err)
	}

	sess := &ChatSession{
		Engine:    newChatEngine(client, cfg, cfg.Ollama.DefaultModel),
		Client:    client,
		Config:    cfg,
		Quiet:     args.Quiet,
		StartTime: time.Now(),
		InputCLI:  NewChatCLI(),
	}
	defer sess.InputCLI.Close()
	// /clear swaps the engine, so close whichever one is current.
	defer func() { sess.Engine.Close() }()

	if !sess.Quiet {
		sess.printWelcome()
	}

	// Ctrl+C during generation cancels the in-flight stream. At the
	// prompt liner owns the terminal and no signal is delivered.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		for range sigChan {
			if sess.CancelFunc != nil {
				sess.CancelFunc()
				sess.CancelFunc = nil
				fmt.Fprintln(os.Stderr, warningStyle.Render("\n[Cancelled]"))
			}
		}
	}()

	return sess.repl()
}

// repl reads lines until the user exits.
func (s *ChatSession) repl() error {
	for {
		input, err := s.InputCLI.ReadInput(promptStyle.Render("quill> "))
		if err != nil {
			// Ctrl+C at the prompt or Ctrl+D both end the session.
			fmt.Println()
			s.printExitSummary()
			return nil
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, "/") {
			keepGoing, err := s.handleSlashCommand(input)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s %v\n", errorStyle.Render("[Error]"), err)
			}
			if !keepGoing {
				s.printExitSummary()
				return nil
			}
			continue
		}

		if strings.EqualFold(input, "exit") || strings.EqualFold(input, "quit") {
			s.printExitSummary()
			return nil
		}

		if err := s.processPrompt(input); err != nil {
			fmt.Fprintf(os.Stderr, "%s %v\n", errorStyle.Render("[Error]"), err)
		}
	}
}

// processPrompt submits one user prompt and pumps the engine until it
// settles back to idle.
func (s *ChatSession) processPrompt(input string) error {
	ctx, cancel := context.WithCancel(context.Background())
	s.CancelFunc = cancel
	defer func() {
		s.CancelFunc = nil
		cancel()
	}()

	start := time.Now()
	if err := s.Engine.Submit(ctx, input); err != nil {
		return err
	}
	s.Queries++
	fmt.Println()

	if err := s.pump(ctx); err != nil {
		if ctx.Err() != nil {
			// User-initiated cancel. The partial reply is already
			// committed to the transcript.
			s.Engine.ClearError()
			return nil
		}
		return err
	}

	if !s.Quiet {
		s.showBriefStats(s.Engine.CurrentModel(), time.Since(start))
	}
	return nil
}

// pump drives the engine until it returns to idle. When stdout is a
// terminal the reply renders as markdown once committed; otherwise
// tokens are written raw as they arrive.
func (s *ChatSession) pump(ctx context.Context) error {
	useMarkdown := IsStdoutTTY()
	printed := 0
	var lastReplyID string

	for {
		switch s.Engine.State() {
		case session.StateStreaming:
			s.Engine.Advance(s.Config.StreamPoll())
			if !useMarkdown {
				v := s.Engine.View()
				if len(v.InProgress) > printed {
					fmt.Print(v.InProgress[printed:])
					printed = len(v.InProgress)
				}
			}

		case session.StateAwaitingApproval:
			if useMarkdown {
				s.printNewReply(&lastReplyID)
			}
			printed = 0
			s.confirmPendingCall(ctx)

		default:
			if useMarkdown {
				s.printNewReply(&lastReplyID)
			} else {
				fmt.Println()
			}
			v := s.Engine.View()
			if v.Err != "" {
				return errors.New(v.Err)
			}
			return nil
		}
	}
}

// printNewReply renders the newest committed assistant turn if it has
// not been shown yet. A denied tool call returns the engine to idle
// without a fresh reply, so the ID check prevents reprinting.
func (s *ChatSession) printNewReply(lastID *string) {
	v := s.Engine.View()
	for i := len(v.Turns) - 1; i >= 0; i-- {
		turn := v.Turns[i]
		if turn.Kind != session.TurnAssistant {
			continue
		}
		if turn.ID != *lastID {
			displayReply(turn.Content)
			*lastID = turn.ID
		}
		return
	}
}

// confirmPendingCall prompts for approval of the pending tool call
// and feeds the decision to the engine.
func (s *ChatSession) confirmPendingCall(ctx context.Context) {
	call := s.Engine.PendingCall()
	if call == nil {
		return
	}

	fmt.Println()
	fmt.Printf("%s %s\n", warningStyle.Render("[Tool Call]"), commandStyle.Render(call.Invocation()))

	answer, err := s.InputCLI.ReadConfirm(warningStyle.Render("Approve? [y/N] "))
	if err != nil {
		s.Engine.Deny()
		fmt.Println(errorStyle.Render("[Denied]"))
		fmt.Println()
		return
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		// Approve failures land in the view error and are reported
		// when the pump settles.
		_ = s.Engine.Approve(ctx)
		fmt.Println(commandStyle.Render("[Approved]"))
	default:
		s.Engine.Deny()
		fmt.Println(errorStyle.Render("[Denied]"))
	}
	fmt.Println()
}

// =============================================================================
// SLASH COMMANDS
// =============================================================================

// handleSlashCommand dispatches a /command. The returned bool reports
// whether the REPL should keep running.
func (s *ChatSession) handleSlashCommand(cmd string) (bool, error) {
	parts := strings.Fields(cmd)
	command := strings.ToLower(parts[0])

	switch command {
	case "/help", "/h", "/?":
		s.printHelp()
	case "/clear", "/c":
		model := s.Engine.CurrentModel()
		s.Engine.Close()
		s.Engine = newChatEngine(s.Client, s.Config, model)
		fmt.Println(commandStyle.Render("[Conversation cleared]"))
	case "/model", "/m":
		return true, s.handleModelCommand(parts[1:])
	case "/models":
		s.printModels()
	case "/status", "/s":
		s.printStatus()
	case "/history":
		s.printHistory()
	case "/quit", "/q", "/exit":
		return false, nil
	case "/":
		s.printHelp()
	default:
		return true, fmt.Errorf("unknown command: %s (type /help for commands)", command)
	}
	return true, nil
}

func (s *ChatSession) handleModelCommand(args []string) error {
	if len(args) == 0 {
		fmt.Printf("%s Current model: %s\n",
			infoStyle.Render("[Model]"),
			commandStyle.Render(s.Engine.CurrentModel()))
		return nil
	}

	name := args[0]
	if !s.Engine.SelectModel(name) {
		models := s.Engine.Models()
		names := make([]string, 0, len(models))
		for _, m := range models {
			names = append(names, m.Name)
		}
		return fmt.Errorf("unknown model %q (available: %s)", name, strings.Join(names, ", "))
	}
	fmt.Printf("%s Switched to model: %s\n",
		commandStyle.Render("[OK]"),
		commandStyle.Render(name))
	return nil
}

func (s *ChatSession) printModels() {
	models := s.Engine.Models()
	if len(models) == 0 {
		fmt.Println(infoStyle.Render("No models available."))
		return
	}

	current := s.Engine.CurrentModel()
	fmt.Println(headerStyle.Render("Available Models"))
	fmt.Println(infoStyle.Render(strings.Repeat("─", 20)))
	for _, m := range models {
		marker := " "
		name := m.Name
		if m.Name == current {
			marker = "*"
			name = commandStyle.Render(name)
		}
		fmt.Printf("  %s %s\n", marker, name)
	}
	if s.Engine.UsedFallbackModel() {
		fmt.Println(warningStyle.Render("  (fallback: server listing unavailable)"))
	}
}

func (s *ChatSession) printStatus() {
	v := s.Engine.View()
	fmt.Println(headerStyle.Render("Session Status"))
	fmt.Println(infoStyle.Render(strings.Repeat("─", 20)))
	fmt.Printf("  Session:  %s\n", v.SessionID)
	fmt.Printf("  Model:    %s\n", v.Model)
	fmt.Printf("  State:    %s\n", v.State)
	fmt.Printf("  Duration: %s\n", time.Since(s.StartTime).Round(time.Second))
	fmt.Printf("  Turns:    %d shown, %d in transcript\n", len(v.Turns), len(s.Engine.TranscriptEntries()))
	fmt.Printf("  Queries:  %d\n", s.Queries)
}

func (s *ChatSession) printHistory() {
	v := s.Engine.View()
	if len(v.Turns) == 0 {
		fmt.Println(infoStyle.Render("No conversation yet."))
		return
	}

	fmt.Println(headerStyle.Render("Conversation History"))
	fmt.Println(infoStyle.Render(strings.Repeat("─", 25)))
	for i, turn := range v.Turns {
		label := turn.Kind.DisplayName()
		switch turn.Kind {
		case session.TurnUser:
			label = promptStyle.Render(label)
		case session.TurnAssistant:
			label = welcomeStyle.Render(label)
		default:
			label = warningStyle.Render(label)
		}
		content := turn.Content
		if content == "" {
			content = turn.Invocation
		}
		content = strings.ReplaceAll(content, "\n", " ")
		fmt.Printf("  %d. %s: %s\n", i+1, label, util.TruncateRunes(content, 100))
	}
}

// =============================================================================
// SESSION OUTPUT
// =============================================================================

func (s *ChatSession) printWelcome() {
	fmt.Println(welcomeStyle.Render("quill interactive chat"))
	fmt.Println(infoStyle.Render(strings.Repeat("─", 30)))
	fmt.Printf("%s %s\n", infoStyle.Render("Model:"), commandStyle.Render(s.Engine.CurrentModel()))
	if s.Engine.UsedFallbackModel() {
		fmt.Println(warningStyle.Render("Note: model list unavailable, using fallback"))
	}
	fmt.Printf("%s %s\n", infoStyle.Render("Working dir:"), s.Config.ResolveWorkingDir())
	fmt.Println()
	fmt.Println(infoStyle.Render("Type your message and press Enter. Commands: /help, /quit"))
	fmt.Println()
}

func (s *ChatSession) printHelp() {
	fmt.Println(headerStyle.Render("Available Commands"))
	fmt.Println(infoStyle.Render(strings.Repeat("─", 20)))
	commands := []struct {
		cmd  string
		desc string
	}{
		{"/help, /h", "Show this help"},
		{"/clear, /c", "Clear the conversation"},
		{"/model [name]", "Show or switch the active model"},
		{"/models", "List available models"},
		{"/status, /s", "Show session status"},
		{"/history", "Show the conversation so far"},
		{"/quit, /q", "Exit the chat"},
	}
	for _, c := range commands {
		fmt.Printf("  %s %s\n",
			commandStyle.Render(fmt.Sprintf("%-15s", c.cmd)),
			infoStyle.Render(c.desc))
	}
	fmt.Println()
	fmt.Println(infoStyle.Render("Ctrl+C cancels the current generation, Ctrl+D exits."))
}

func (s *ChatSession) printExitSummary() {
	if s.Queries == 0 {
		fmt.Println(infoStyle.Render("Goodbye!"))
		return
	}

	fmt.Println()
	fmt.Println(headerStyle.Render("Session Summary"))
	fmt.Println(infoStyle.Render(strings.Repeat("─", 15)))
	fmt.Printf("  Queries:  %d\n", s.Queries)
	fmt.Printf("  Turns:    %d\n", len(s.Engine.View().Turns))
	fmt.Printf("  Duration: %s\n", time.Since(s.StartTime).Round(time.Second))
	fmt.Println()
	fmt.Println(infoStyle.Render("Goodbye!"))
}

// showBriefStats writes a one-line timing note to stderr so piped
// stdout stays clean.
func (s *ChatSession) showBriefStats(model string, elapsed time.Duration) {
	fmt.Fprintf(os.Stderr, "%s %s | %s\n",
		infoStyle.Render("[Stats]"),
		commandStyle.Render(model),
		elapsed.Round(time.Millisecond))
}
