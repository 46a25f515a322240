// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/quill-tui/internal/ui/styles"
)

// =============================================================================
// CODE BLOCK
// =============================================================================

// CodeBlock is one fenced code block from a model reply, rendered with
// syntax highlighting and line numbers.
type CodeBlock struct {
	Language string
	Code     string
	MaxWidth int
}

// NewCodeBlock creates a code block.
func NewCodeBlock(language, code string) CodeBlock {
	return CodeBlock{
		Language: language,
		Code:     code,
		MaxWidth: 80,
	}
}

// SetMaxWidth sets the maximum render width.
func (c *CodeBlock) SetMaxWidth(width int) {
	c.MaxWidth = width
}

// Render returns the block boxed, highlighted, and numbered. When no
// language was given on the fence, chroma's analyser takes a guess.
func (c CodeBlock) Render() string {
	code := strings.TrimSpace(c.Code)

	language := c.Language
	if language == "" {
		language = detectLanguage(code)
	}

	highlighted := highlightCode(code, language)
	lines := strings.Split(highlighted, "\n")

	numStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Width(4).
		Align(lipgloss.Right).
		MarginRight(1)

	numbered := make([]string, len(lines))
	for i, line := range lines {
		numbered[i] = numStyle.Render(strconv.Itoa(i+1)) + line
	}

	content := strings.Join(numbered, "\n")

	var header string
	if c.Language != "" {
		header = lipgloss.NewStyle().
			Foreground(styles.TextMuted).
			Background(styles.SurfaceAlt).
			Padding(0, 1).
			Bold(true).
			Render(c.Language) + "\n"
	}

	maxWidth := c.MaxWidth - 4
	if maxWidth < 20 {
		maxWidth = 20
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Overlay).
		Padding(0, 1).
		MaxWidth(maxWidth).
		Render(header + content)
}

// =============================================================================
// FENCED BLOCK PARSER
// =============================================================================

// ParseCodeBlocks replaces fenced code blocks in markdown-ish text with
// rendered boxes. An unclosed fence at the end of the text is treated
// as if it were closed, which matters for replies a model stopped
// writing mid-block.
func ParseCodeBlocks(text string, maxWidth int) string {
	lines := strings.Split(text, "\n")
	var result []string
	var codeLines []string
	var language string
	inBlock := false

	for _, line := range lines {
		if strings.HasPrefix(line, "```") {
			if inBlock {
				cb := NewCodeBlock(language, strings.Join(codeLines, "\n"))
				cb.SetMaxWidth(maxWidth)
				result = append(result, cb.Render())
				codeLines = nil
				language = ""
				inBlock = false
			} else {
				language = strings.TrimSpace(strings.TrimPrefix(line, "```"))
				inBlock = true
			}
			continue
		}

		if inBlock {
			codeLines = append(codeLines, line)
		} else {
			result = append(result, line)
		}
	}

	if inBlock && len(codeLines) > 0 {
		cb := NewCodeBlock(language, strings.Join(codeLines, "\n"))
		cb.SetMaxWidth(maxWidth)
		result = append(result, cb.Render())
	}

	return strings.Join(result, "\n")
}

// =============================================================================
// INLINE CODE
// =============================================================================

// RenderInlineCode styles a backtick span.
func RenderInlineCode(code string) string {
	return lipgloss.NewStyle().
		Background(styles.SurfaceAlt).
		Foreground(styles.Aqua).
		Padding(0, 1).
		Render(code)
}

// ParseInlineCode replaces `spans` in text with styled inline code. An
// unclosed backtick is left verbatim.
func ParseInlineCode(text string) string {
	var result strings.Builder
	var code strings.Builder
	inCode := false

	for _, r := range text {
		switch {
		case r == '`' && inCode:
			result.WriteString(RenderInlineCode(code.String()))
			code.Reset()
			inCode = false
		case r == '`':
			inCode = true
		case inCode:
			code.WriteRune(r)
		default:
			result.WriteRune(r)
		}
	}

	if inCode {
		result.WriteString("`")
		result.WriteString(code.String())
	}

	return result.String()
}

// =============================================================================
// SYNTAX HIGHLIGHTING
// =============================================================================

// highlightCode runs code through chroma for 256-color terminal
// output. Any failure falls back to the plain text.
func highlightCode(code, language string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := chromaStyles.Get("monokai")
	if style == nil {
		style = chromaStyles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf strings.Builder
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}

	return buf.String()
}

// detectLanguage guesses the language of unlabeled code.
func detectLanguage(code string) string {
	lexer := lexers.Analyse(code)
	if lexer != nil {
		return lexer.Config().Name
	}
	return ""
}
