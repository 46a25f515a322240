// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// models.go - the quill models command.

package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/quill-tui/internal/config"
	"github.com/jeranaias/quill-tui/internal/ollama"
	"github.com/jeranaias/quill-tui/internal/util"
)

var tableHeaderStyle = lipgloss.NewStyle().Bold(true)

// HandleModels lists the models the Ollama server reports. With
// --quiet the output is one bare name per line for scripting; the
// default is a table with size and modification date.
func HandleModels(args Args) error {
	cfg := config.Global()
	args.ApplyTo(cfg)

	client := ollama.NewClientWithConfig(&ollama.ClientConfig{
		BaseURL:      cfg.Ollama.BaseURL,
		Timeout:      cfg.RequestTimeout(),
		DefaultModel: cfg.Ollama.DefaultModel,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout())
	defer cancel()
	models, usedFallback := client.ListModelsWithFallback(ctx)

	if args.Quiet {
		for _, m := range models {
			fmt.Println(m.Name)
		}
		return nil
	}

	// Give the name column whatever the terminal leaves after the
	// fixed-width size and date columns.
	nameWidth := GetTerminalWidth() - 26
	if nameWidth < 12 {
		nameWidth = 12
	}
	if nameWidth > 48 {
		nameWidth = 48
	}

	fmt.Printf("%s  %s  %s\n",
		tableHeaderStyle.Render(util.PadRight("NAME", nameWidth)),
		tableHeaderStyle.Render(util.PadRight("SIZE", 10)),
		tableHeaderStyle.Render("MODIFIED"))

	for _, m := range models {
		name := util.TruncateRunes(m.Name, nameWidth)
		modified := ""
		if !m.ModifiedAt.IsZero() {
			modified = m.ModifiedAt.Format("2006-01-02")
		}
		fmt.Printf("%s  %s  %s\n",
			util.PadRight(name, nameWidth),
			util.PadRight(formatBytes(m.Size), 10),
			modified)
	}

	if usedFallback {
		fmt.Println()
		fmt.Println(warningStyle.Render(
			fmt.Sprintf("Server at %s unreachable; showing the configured fallback model.", cfg.Ollama.BaseURL)))
	}
	return nil
}

// formatBytes renders a byte count the way ollama list does.
func formatBytes(n int64) string {
	const (
		kb = 1 << 10
		mb = 1 << 20
		gb = 1 << 30
	)
	switch {
	case n >= gb:
		return fmt.Sprintf("%.1f GB", float64(n)/gb)
	case n >= mb:
		return fmt.Sprintf("%.1f MB", float64(n)/mb)
	case n >= kb:
		return fmt.Sprintf("%.1f KB", float64(n)/kb)
	case n > 0:
		return fmt.Sprintf("%d B", n)
	default:
		return "-"
	}
}
