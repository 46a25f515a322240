// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - argument parsing and command dispatch for quill.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/jeranaias/quill-tui/internal/config"
)

// Version information (can be overridden at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command selects the top-level action.
type Command int

const (
	CmdTUI Command = iota
	CmdChat
	CmdModels
	CmdVersion
	CmdHelp
	CmdUnknown
)

// Args holds parsed command-line arguments. Flag values take
// precedence over both the config file and QUILL_* environment
// variables.
type Args struct {
	Model string // --model: initial model selection
	URL   string // --url: Ollama server URL
	Dir   string // --dir: working directory for file tools
	NoArt bool   // --no-art: suppress the title banner
	Quiet bool   // -q/--quiet: minimal chrome on CLI paths

	// Raw holds whatever followed the command name.
	Raw []string
}

// ApplyTo overlays explicit flag values onto the loaded config.
func (a Args) ApplyTo(cfg *config.Config) {
	if a.Model != "" {
		cfg.Ollama.DefaultModel = a.Model
	}
	if a.URL != "" {
		cfg.Ollama.BaseURL = a.URL
	}
	if a.Dir != "" {
		cfg.Session.WorkingDir = a.Dir
	}
	if a.NoArt {
		cfg.UI.ShowTitleArt = false
	}
}

const usageText = `quill %s - terminal client for local Ollama models

Quill talks to a locally running Ollama server. Replies stream in
live, and the model can ask to read files or directories; nothing
runs until you approve it.

Usage:
  quill                      Start the TUI (default)
  quill chat                 Interactive chat in plain terminal mode
  quill models               List models available on the server
  quill version              Show version information
  quill help                 Show this help

Flags:
      --model NAME           Model to select at startup
      --url URL              Ollama server URL (default http://127.0.0.1:11434)
      --dir PATH             Working directory for file tools
      --no-art               Skip the title banner
  -q, --quiet                Minimal output on CLI paths

Environment:
  QUILL_OLLAMA_URL           Overrides ollama.base_url
  QUILL_MODEL                Overrides ollama.default_model
  QUILL_WORKDIR              Overrides session.working_dir
  QUILL_DEBUG                Write a TUI debug log to the given path

Interactive commands (quill chat):
  /help                      Show available commands
  /model [name]              Show or switch model
  /models                    List models
  /status                    Show session statistics
  /history                   Show conversation so far
  /clear                     Start a fresh conversation
  /quit                      Exit chat
  Ctrl+C, Ctrl+D             Exit

Config file: ~/.config/quill/quill.toml
`

// PrintUsage prints the usage text.
func PrintUsage() {
	fmt.Printf(usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Printf("quill version %s\n", Version)
	fmt.Printf("  Git commit: %s\n", GitCommit)
	fmt.Printf("  Build date: %s\n", BuildDate)
}

// Parse parses os.Args and returns the command and flags.
func Parse() (Command, Args) {
	return parseArgs(os.Args[1:])
}

// parseArgs is the testable core of Parse.
func parseArgs(argv []string) (Command, Args) {
	remaining, args := parseFlags(argv)

	// Bare invocation starts the TUI.
	if len(remaining) == 0 {
		return CmdTUI, args
	}

	cmd := strings.ToLower(remaining[0])
	args.Raw = remaining[1:]

	switch cmd {
	case "tui":
		return CmdTUI, args
	case "chat":
		return CmdChat, args
	case "models", "list":
		return CmdModels, args
	case "version", "--version", "-v":
		return CmdVersion, args
	case "help", "--help", "-h":
		return CmdHelp, args
	default:
		// Unknown commands are reported rather than silently starting
		// the TUI; the typo stays visible in Raw for the caller.
		args.Raw = remaining
		return CmdUnknown, args
	}
}

// parseFlags strips global flags from argv, returning what is left.
// Both "--flag value" and "--flag=value" forms are accepted.
func parseFlags(argv []string) ([]string, Args) {
	var remaining []string
	var args Args

	i := 0
	for i < len(argv) {
		arg := argv[i]

		switch arg {
		case "-q", "--quiet":
			args.Quiet = true
		case "--no-art":
			args.NoArt = true
		case "-m", "--model":
			if i+1 < len(argv) {
				i++
				args.Model = argv[i]
			}
		case "--url":
			if i+1 < len(argv) {
				i++
				args.URL = argv[i]
			}
		case "--dir":
			if i+1 < len(argv) {
				i++
				args.Dir = argv[i]
			}
		default:
			switch {
			case strings.HasPrefix(arg, "--model="):
				args.Model = strings.TrimPrefix(arg, "--model=")
			case strings.HasPrefix(arg, "--url="):
				args.URL = strings.TrimPrefix(arg, "--url=")
			case strings.HasPrefix(arg, "--dir="):
				args.Dir = strings.TrimPrefix(arg, "--dir=")
			default:
				remaining = append(remaining, arg)
			}
		}
		i++
	}

	return remaining, args
}
