// quill - a terminal client for local Ollama models.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/quill-tui/internal/cli"
	"github.com/jeranaias/quill-tui/internal/config"
	"github.com/jeranaias/quill-tui/internal/ollama"
	"github.com/jeranaias/quill-tui/internal/session"
	"github.com/jeranaias/quill-tui/internal/tools"
	"github.com/jeranaias/quill-tui/internal/ui/chat"
	"github.com/jeranaias/quill-tui/internal/ui/styles"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdVersion:
		cli.PrintVersion()

	case cli.CmdHelp:
		cli.PrintUsage()

	case cli.CmdUnknown:
		fmt.Fprintf(os.Stderr, "quill: unknown command %q\n\n", args.Raw[0])
		cli.PrintUsage()
		os.Exit(1)

	case cli.CmdModels:
		if err := cli.HandleModels(args); err != nil {
			fmt.Fprintf(os.Stderr, "quill: %v\n", err)
			os.Exit(1)
		}

	case cli.CmdChat:
		if err := cli.HandleChat(args); err != nil {
			fmt.Fprintf(os.Stderr, "quill: %v\n", err)
			os.Exit(1)
		}

	default:
		runTUI(args)
	}
}

// runTUI wires the config, client, and session engine together and
// hands the chat model to Bubble Tea.
func runTUI(args cli.Args) {
	if !cli.IsTTY() || !cli.IsStdoutTTY() {
		fmt.Fprintln(os.Stderr, "quill: the TUI needs a terminal on stdin and stdout")
		fmt.Fprintln(os.Stderr, "Use `quill chat` for piped sessions, or `quill help` for options.")
		os.Exit(1)
	}

	cfg := config.Global()
	args.ApplyTo(cfg)

	theme := buildTheme(cfg)

	client := ollama.NewClientWithConfig(&ollama.ClientConfig{
		BaseURL:      cfg.Ollama.BaseURL,
		Timeout:      cfg.RequestTimeout(),
		DefaultModel: cfg.Ollama.DefaultModel,
	})

	workDir := cfg.ResolveWorkingDir()
	engine := session.NewEngine(
		session.NewOllamaBackend(client),
		tools.NewExecutor(workDir),
		session.Options{
			SystemPrompt: session.DefaultSystemPrompt(workDir),
			DisplayCap:   cfg.Session.DisplayCap,
			Model:        cfg.Ollama.DefaultModel,
		},
	)

	// Load the model list before the first frame so the model bar
	// never renders empty. Falls back to the configured default when
	// the server is unreachable.
	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout())
	engine.LoadModels(ctx)
	cancel()

	if logPath := os.Getenv("QUILL_DEBUG"); logPath != "" {
		f, err := tea.LogToFile(logPath, "quill")
		if err != nil {
			fmt.Fprintf(os.Stderr, "quill: cannot open debug log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
	}

	m := chat.New(engine, client, theme, cfg)
	p := tea.NewProgram(m, tea.WithAltScreen())

	// Hot-reload: config file edits land in the running program as
	// messages. Best effort; the session works fine without it.
	watcher, err := config.NewWatcher(0, func(updated *config.Config) {
		p.Send(chat.ConfigReloadedMsg{Config: updated})
	})
	if err == nil && watcher.Watch() == nil {
		defer watcher.Close()
	}

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "quill: %v\n", err)
		os.Exit(1)
	}
}

// buildTheme resolves the configured theme name. "auto" probes the
// terminal background; anything else forces dark or light.
func buildTheme(cfg *config.Config) *styles.Theme {
	switch cfg.UI.Theme {
	case "auto":
		return styles.NewTheme()
	case "light":
		return styles.NewThemeWithBackground(false)
	default:
		return styles.NewThemeWithBackground(true)
	}
}
