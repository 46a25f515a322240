// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration management for quill.
//
// Configuration is stored as TOML at ~/.config/quill/quill.toml and
// covers three sections: the Ollama backend connection, the
// conversation session engine, and the terminal interface.
//
// # Precedence
//
// Values are resolved in order: defaults, then the config file, then
// QUILL_* environment variables, then command-line flags (applied by
// the CLI layer).
//
// # Usage
//
//	cfg := config.Global()
//	client := ollama.NewClient(cfg.Ollama.BaseURL)
//
// A Watcher can hot-reload the file so UI settings apply to a running
// session:
//
//	w, _ := config.NewWatcher(0, func(cfg *config.Config) { ... })
//	_ = w.Watch()
//	defer w.Close()
package config
