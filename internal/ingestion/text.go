package ingestion

import (
	"regexp"
	"strings"
)

var (
	innerSpacePattern = regexp.MustCompile(`[ \t\x{00a0}]+`)
	blankRunPattern   = regexp.MustCompile(`\n{3,}`)
)

// CleanText normalizes extracted text while keeping its line structure:
// line endings become LF, runs of spaces collapse, bullet and heading lines
// keep their marker, and no more than one blank line separates blocks.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = strings.ReplaceAll(content, "\f", "\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	result := blankRunPattern.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine trims a line and collapses inner whitespace. Indentation in
// front of a bullet is kept so nested lists stay nested.
func cleanLine(line string) string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return ""
	}
	body := innerSpacePattern.ReplaceAllString(trimmed, " ")

	if isBulletLine(trimmed) {
		indent := len(line) - len(strings.TrimLeft(line, " \t"))
		return strings.Repeat(" ", indent) + body
	}
	return body
}

// isBulletLine checks if a line starts with a list marker
func isBulletLine(line string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	for _, marker := range []string{"- ", "* ", "• ", "· ", "▪ ", "◦ "} {
		if strings.HasPrefix(trimmed, marker) {
			return true
		}
	}
	return false
}

// trimLines trims every line and drops leading indentation left by markup
func trimLines(text string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	return strings.Join(lines, "\n")
}
