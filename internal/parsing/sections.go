package parsing

import "strings"

// headerSet matches lines against a fixed set of header synonyms, ignoring case
type headerSet map[string]bool

func newHeaderSet(groups ...[]string) headerSet {
	hs := make(headerSet)
	for _, g := range groups {
		for _, h := range g {
			hs[strings.ToLower(h)] = true
		}
	}
	return hs
}

func (hs headerSet) matches(line string) bool {
	return hs[strings.ToLower(cleanHeader(line))]
}

// findHeader returns the index of the first line that is one of headers, or -1
func findHeader(lines []string, headers []string) int {
	want := newHeaderSet(headers)
	for i, l := range lines {
		if want.matches(l) {
			return i
		}
	}
	return -1
}

// resumeBody returns the lines after the header at index start. The body ends
// at the next known header, or at a blank line followed by an all-caps line.
func resumeBody(lines []string, start int, known headerSet) []string {
	end := len(lines)
	for i := start + 1; i < len(lines); i++ {
		l := strings.TrimSpace(lines[i])
		if known.matches(l) {
			end = i
			break
		}
		if l == "" {
			if next := nextNonBlank(lines, i+1); next >= 0 && isAllCaps(lines[next]) && !known.matches(lines[next]) {
				end = i
				break
			}
		}
	}
	return trimBlank(lines[start+1 : end])
}

// jobBody returns the lines after the header at index start, up to the next
// blank line or known header. Blank lines directly under the header are skipped.
func jobBody(lines []string, start int, known headerSet) []string {
	i := start + 1
	for i < len(lines) && strings.TrimSpace(lines[i]) == "" {
		i++
	}
	body := make([]string, 0)
	for ; i < len(lines); i++ {
		l := strings.TrimSpace(lines[i])
		if l == "" || known.matches(l) {
			break
		}
		body = append(body, l)
	}
	return body
}

func nextNonBlank(lines []string, from int) int {
	for i := from; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) != "" {
			return i
		}
	}
	return -1
}

// trimBlank drops leading and trailing blank lines and trims every line
func trimBlank(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		out = append(out, strings.TrimSpace(l))
	}
	for len(out) > 0 && out[0] == "" {
		out = out[1:]
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return out
}

// joinText joins non-blank lines with a single space
func joinText(lines []string) string {
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			parts = append(parts, l)
		}
	}
	return strings.Join(parts, " ")
}
