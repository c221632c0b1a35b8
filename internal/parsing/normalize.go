package parsing

import (
	"regexp"
	"strings"
	"unicode"
)

// bulletPattern matches the list marker at the start of a line
var bulletPattern = regexp.MustCompile(`^\s*(?:[•▪◦●‣*\-–]\s*|\d{1,2}[.)]\s+)`)

// labelPattern matches a leading "Label:" on a skills line
var labelPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z &/-]{0,30}:\s*`)

// splitLines normalizes line endings and splits text into lines
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}

// isBullet reports whether the line starts with a list marker
func isBullet(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	return bulletPattern.MatchString(trimmed) && strings.TrimSpace(bulletPattern.ReplaceAllString(trimmed, "")) != ""
}

// stripBullet removes the list marker and surrounding whitespace
func stripBullet(line string) string {
	return strings.TrimSpace(bulletPattern.ReplaceAllString(strings.TrimSpace(line), ""))
}

// bulletItems returns the text of every bullet line, in order
func bulletItems(lines []string) []string {
	items := make([]string, 0)
	for _, l := range lines {
		if isBullet(l) {
			items = append(items, stripBullet(l))
		}
	}
	return items
}

// splitList splits a list body on commas, semicolons, pipes, bullet markers
// and newlines. Separators inside parentheses are kept so that
// "Python (Expert)" or "CKA (CNCF, 2022)" stay whole.
func splitList(lines []string) []string {
	items := make([]string, 0)
	for _, l := range lines {
		l = stripBullet(l)
		l = labelPattern.ReplaceAllString(l, "")

		depth := 0
		var cur strings.Builder
		flush := func() {
			if s := strings.TrimSpace(cur.String()); s != "" {
				items = append(items, s)
			}
			cur.Reset()
		}
		for _, r := range l {
			switch {
			case r == '(':
				depth++
			case r == ')' && depth > 0:
				depth--
			case depth == 0 && (r == ',' || r == ';' || r == '|' || r == '•' || r == '·'):
				flush()
				continue
			}
			cur.WriteRune(r)
		}
		flush()
	}
	return items
}

// firstField returns the text of line before the first comma or pipe
func firstField(line string) string {
	if i := strings.IndexAny(line, ",|"); i >= 0 {
		line = line[:i]
	}
	return strings.TrimSpace(line)
}

// cleanHeader strips markdown emphasis, heading marks and a trailing colon
func cleanHeader(line string) string {
	t := strings.TrimSpace(line)
	t = strings.Trim(t, "#*_ \t")
	t = strings.TrimSuffix(t, ":")
	return strings.TrimSpace(t)
}

// isAllCaps reports whether line reads as an all-caps heading such as "VOLUNTEER WORK"
func isAllCaps(line string) bool {
	t := strings.TrimSpace(line)
	if t == "" || isBullet(t) || len([]rune(t)) > 50 {
		return false
	}
	letters := 0
	for _, r := range t {
		switch {
		case unicode.IsLower(r), unicode.IsDigit(r), r == ',' || r == '@':
			return false
		case unicode.IsLetter(r):
			letters++
		}
	}
	return letters >= 2
}

// trimPunct removes separators left at the edges of an extracted field
func trimPunct(s string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(s), "-–—|(,;:"))
}
