// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schematree

package schematree

import (
	"html"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

var (
	descriptionPolicyOnce sync.Once
	descriptionPolicy     *bluemonday.Policy
)

// sanitizeDescription strips HTML markup from description text, keeping markdown intact.
func sanitizeDescription(text string) string {
	if !strings.ContainsRune(text, '<') {
		return text
	}

	descriptionPolicyOnce.Do(func() {
		descriptionPolicy = bluemonday.StrictPolicy()
	})

	// Policy output is HTML-escaped; markdown wants the literal characters back.
	return html.UnescapeString(descriptionPolicy.Sanitize(text))
}

// orNone renders empty metadata values as explicit (none) marker.
func orNone(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "(none)"
	}

	return value
}

// sanitizeText trims and squashes repeated whitespace in plain text fields.
func sanitizeText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// normalizeWrapWidth validates wrap width and falls back to default.
func normalizeWrapWidth(value int) int {
	if value <= 0 {
		return defaultWrapWidth
	}

	return value
}

// normalizeListMarker validates list marker and falls back to default.
func normalizeListMarker(value string) string {
	switch marker := strings.TrimSpace(value); marker {
	case "*", "-":
		return marker
	default:
		return defaultListMarker
	}
}

// descriptionFormatter accumulates normalized description lines.
type descriptionFormatter struct {
	out        []string
	paragraph  []string
	wrapWidth  int
	listMarker string
}

// formatDescriptionMarkdown wraps plain paragraphs and preserves markdown structures.
func formatDescriptionMarkdown(text string, wrapWidth int, listMarker string) string {
	text = strings.TrimSpace(normalizeLineEndings(text))
	if text == "" {
		return ""
	}

	formatter := descriptionFormatter{
		wrapWidth:  wrapWidth,
		listMarker: normalizeListMarker(listMarker),
	}

	inFence := false
	for _, rawLine := range strings.Split(text, "\n") {
		line := strings.TrimRight(rawLine, " \t")
		trimmed := strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(trimmed, "```"):
			formatter.flush()
			formatter.out = append(formatter.out, line)
			inFence = !inFence
		case inFence:
			formatter.out = append(formatter.out, line)
		case trimmed == "":
			formatter.flush()
			formatter.blank()
		case isMarkdownStructuredLine(line):
			formatter.flush()
			formatter.structured(line)
		default:
			formatter.paragraph = append(formatter.paragraph, trimmed)
		}
	}

	formatter.flush()
	return strings.Join(formatter.out, "\n")
}

// flush wraps pending paragraph lines into output.
func (formatter *descriptionFormatter) flush() {
	if len(formatter.paragraph) == 0 {
		return
	}

	formatter.out = append(formatter.out, wrapParagraph(strings.Join(formatter.paragraph, " "), formatter.wrapWidth)...)
	formatter.paragraph = formatter.paragraph[:0]
}

// blank appends a single separator line.
func (formatter *descriptionFormatter) blank() {
	if len(formatter.out) == 0 || formatter.out[len(formatter.out)-1] == "" {
		return
	}

	formatter.out = append(formatter.out, "")
}

// structured appends markdown structure line, separating lists from preceding paragraph text.
func (formatter *descriptionFormatter) structured(line string) {
	normalized := normalizeListLine(line, formatter.listMarker)
	if isListLine(normalized) && len(formatter.out) > 0 {
		previous := formatter.out[len(formatter.out)-1]
		if strings.TrimSpace(previous) != "" && !isMarkdownStructuredLine(previous) {
			formatter.blank()
		}
	}

	formatter.out = append(formatter.out, normalized)
}

// isListLine reports whether line is unordered or ordered markdown list item.
func isListLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if _, _, ok := unorderedListItem(trimmed); ok {
		return true
	}

	_, ok := orderedListMarker(trimmed)
	return ok
}

// isMarkdownStructuredLine reports whether line must bypass normal paragraph wrapping.
func isMarkdownStructuredLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}

	if isIndentedCodeLine(line) {
		return true
	}

	for _, prefix := range []string{"#", ">", "- ", "* ", "+ ", "|", "```", "---", "***", "___"} {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}

	_, ok := orderedListMarker(trimmed)
	return ok
}

// isIndentedCodeLine reports whether line starts with markdown code indentation.
func isIndentedCodeLine(line string) bool {
	return strings.HasPrefix(line, "    ") || strings.HasPrefix(line, "\t")
}

// normalizeListLine rewrites list marker and nesting indentation; other lines pass through.
func normalizeListLine(line, listMarker string) string {
	if isIndentedCodeLine(line) {
		return line
	}

	trimmed := strings.TrimSpace(line)
	indent := strings.Repeat("  ", listIndentLevel(leadingIndentColumns(line)))

	if _, content, ok := unorderedListItem(trimmed); ok {
		if content == "" {
			return indent + listMarker
		}

		return indent + listMarker + " " + content
	}

	if marker, ok := orderedListMarker(trimmed); ok {
		return indent + marker + " " + strings.TrimSpace(trimmed[len(marker):])
	}

	return line
}

// unorderedListItem splits "- item" style line into marker and content.
func unorderedListItem(trimmed string) (byte, string, bool) {
	if len(trimmed) < 2 {
		return 0, "", false
	}

	marker := trimmed[0]
	if marker != '-' && marker != '*' && marker != '+' {
		return 0, "", false
	}

	if trimmed[1] != ' ' && trimmed[1] != '\t' {
		return 0, "", false
	}

	return marker, strings.TrimSpace(trimmed[1:]), true
}

// orderedListMarker returns "1." or "1)" prefix of ordered list line.
func orderedListMarker(trimmed string) (string, bool) {
	index := 0
	for index < len(trimmed) && trimmed[index] >= '0' && trimmed[index] <= '9' {
		index++
	}

	if index == 0 || index+1 >= len(trimmed) {
		return "", false
	}

	if trimmed[index] != '.' && trimmed[index] != ')' {
		return "", false
	}

	if trimmed[index+1] != ' ' && trimmed[index+1] != '\t' {
		return "", false
	}

	return trimmed[:index+1], true
}

// leadingIndentColumns returns visual indentation width for leading spaces and tabs.
func leadingIndentColumns(line string) int {
	columns := 0
	for _, r := range line {
		switch r {
		case ' ':
			columns++
		case '\t':
			columns += 4
		default:
			return columns
		}
	}

	return columns
}

// listIndentLevel maps raw indentation width to normalized markdown list nesting level.
func listIndentLevel(columns int) int {
	if columns <= 1 {
		return 0
	}

	return columns / 2
}

// wrapParagraph wraps one plain paragraph to max rune width.
func wrapParagraph(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	if width <= 0 {
		return []string{strings.Join(words, " ")}
	}

	out := make([]string, 0, 2)
	current := words[0]
	currentLen := utf8.RuneCountInString(current)

	for _, word := range words[1:] {
		wordLen := utf8.RuneCountInString(word)
		if currentLen+1+wordLen <= width {
			current += " " + word
			currentLen += 1 + wordLen
			continue
		}

		out = append(out, current)
		current = word
		currentLen = wordLen
	}

	return append(out, current)
}

// normalizeLineEndings converts CRLF/CR to LF.
func normalizeLineEndings(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

// normalizeMarkdownOutput collapses extra blank lines outside fenced blocks.
func normalizeMarkdownOutput(text string) string {
	lines := strings.Split(normalizeLineEndings(text), "\n")
	out := make([]string, 0, len(lines))

	inFence := false
	previousBlank := false
	for _, rawLine := range lines {
		line := strings.TrimRight(rawLine, " \t")
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "```") {
			inFence = !inFence
			out = append(out, line)
			previousBlank = false
			continue
		}

		if !inFence && trimmed == "" {
			if !previousBlank {
				out = append(out, "")
			}

			previousBlank = true
			continue
		}

		previousBlank = false
		out = append(out, line)
	}

	return strings.TrimRight(strings.Join(out, "\n"), "\n")
}

// escapeInline escapes backticks in inline code markdown segments.
func escapeInline(value string) string {
	return strings.ReplaceAll(value, "`", "\\`")
}

// ensureTrailingNewline guarantees exactly one trailing newline in output.
func ensureTrailingNewline(value string) string {
	return strings.TrimRight(value, "\n") + "\n"
}
