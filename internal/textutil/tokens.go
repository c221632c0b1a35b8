// Package textutil provides the tokenization, frequency ranking and string
// matching helpers shared by the analysis components.
package textutil

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}]+(?:['’][\p{L}]+)?`)

// Tokenize lowercases text and splits it into word tokens.
// Apostrophe contractions stay attached ("don't" is one token).
func Tokenize(text string) []string {
	matches := tokenPattern.FindAllString(strings.ToLower(text), -1)
	tokens := make([]string, 0, len(matches))
	for _, m := range matches {
		tokens = append(tokens, strings.ReplaceAll(m, "’", "'"))
	}
	return tokens
}

// IsAlpha reports whether token is non-empty and made only of letters.
func IsAlpha(token string) bool {
	if token == "" {
		return false
	}
	for _, r := range token {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// StopWordChecker reports whether a lowercase token should be ignored
type StopWordChecker interface {
	IsStopWord(token string) bool
}

// SignificantTokens tokenizes text and keeps alphabetic tokens that are not
// stop words and are longer than minLen characters.
func SignificantTokens(text string, stop StopWordChecker, minLen int) []string {
	tokens := Tokenize(text)
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if !IsAlpha(tok) {
			continue
		}
		if len([]rune(tok)) <= minLen {
			continue
		}
		if stop != nil && stop.IsStopWord(tok) {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// TermCount is a term and the number of times it occurred
type TermCount struct {
	Term  string
	Count int
}

// CountTerms counts terms and returns them ranked by count descending.
// Ties keep first-occurrence order.
func CountTerms(terms []string) []TermCount {
	index := make(map[string]int, len(terms))
	counts := make([]TermCount, 0, len(terms))
	for _, term := range terms {
		if i, ok := index[term]; ok {
			counts[i].Count++
			continue
		}
		index[term] = len(counts)
		counts = append(counts, TermCount{Term: term, Count: 1})
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts
}

// TopTerms returns at most n terms ranked by frequency, ties by first occurrence.
func TopTerms(terms []string, n int) []string {
	counts := CountTerms(terms)
	if n >= 0 && len(counts) > n {
		counts = counts[:n]
	}
	out := make([]string, 0, len(counts))
	for _, tc := range counts {
		out = append(out, tc.Term)
	}
	return out
}

// Dedupe removes exact duplicates and empty strings, keeping first occurrences.
func Dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}

// WordCount counts whitespace-separated words.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
