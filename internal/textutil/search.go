package textutil

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pmezard/go-difflib/difflib"
)

// PatternCacheSize bounds the compiled patterns kept for ad hoc terms
const PatternCacheSize = 4096

// patternCache holds recently used whole-word patterns keyed by term.
// Dictionary terms are compiled once into a TermSet and never pass through it.
var patternCache = mustPatternCache(PatternCacheSize)

func mustPatternCache(size int) *lru.Cache[string, *regexp.Regexp] {
	c, err := lru.New[string, *regexp.Regexp](size)
	if err != nil {
		panic(err)
	}
	return c
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// CompileWordPattern returns a case-insensitive regexp matching term as a
// whole word. Word boundaries are only asserted at edges that are word
// characters, so terms such as "C++" or "C#" can still match.
func CompileWordPattern(term string) *regexp.Regexp {
	var sb strings.Builder
	sb.WriteString("(?i)")
	first, _ := utf8.DecodeRuneInString(term)
	last, _ := utf8.DecodeLastRuneInString(term)
	if isWordRune(first) {
		sb.WriteString(`\b`)
	}
	sb.WriteString(regexp.QuoteMeta(term))
	if isWordRune(last) {
		sb.WriteString(`\b`)
	}
	return regexp.MustCompile(sb.String())
}

// WordPattern is CompileWordPattern backed by a bounded LRU cache.
func WordPattern(term string) *regexp.Regexp {
	if re, ok := patternCache.Get(term); ok {
		return re
	}
	re := CompileWordPattern(term)
	patternCache.Add(term, re)
	return re
}

// ContainsWord reports whether term occurs in text as a whole word, ignoring case.
func ContainsWord(text, term string) bool {
	if term == "" {
		return false
	}
	return WordPattern(term).MatchString(text)
}

// TermSet is a list of dictionary terms with their whole-word patterns
// compiled up front. It is immutable and safe for concurrent use.
type TermSet struct {
	terms    []string
	patterns []*regexp.Regexp
}

// NewTermSet compiles terms, skipping empty entries and keeping order.
func NewTermSet(terms []string) *TermSet {
	ts := &TermSet{
		terms:    make([]string, 0, len(terms)),
		patterns: make([]*regexp.Regexp, 0, len(terms)),
	}
	for _, term := range terms {
		if term == "" {
			continue
		}
		ts.terms = append(ts.terms, term)
		ts.patterns = append(ts.patterns, CompileWordPattern(term))
	}
	return ts
}

// Len returns the number of terms in the set.
func (ts *TermSet) Len() int {
	return len(ts.terms)
}

// Find returns the terms that occur in text as whole words, in set order.
func (ts *TermSet) Find(text string) []string {
	found := make([]string, 0)
	for i, re := range ts.patterns {
		if re.MatchString(text) {
			found = append(found, ts.terms[i])
		}
	}
	return found
}

// Earliest returns the term that occurs first in text, preferring the longer
// term when two start at the same position. It returns "" when none occurs.
func (ts *TermSet) Earliest(text string) string {
	best, bestAt := "", -1
	for i, re := range ts.patterns {
		loc := re.FindStringIndex(text)
		if loc == nil {
			continue
		}
		term := ts.terms[i]
		if bestAt < 0 || loc[0] < bestAt || (loc[0] == bestAt && len(term) > len(best)) {
			best, bestAt = term, loc[0]
		}
	}
	return best
}

// FindWords returns the dictionary terms that occur in text as whole words,
// in dictionary order. Callers matching the same dictionary repeatedly
// should build a TermSet once instead.
func FindWords(text string, dictionary []string) []string {
	return NewTermSet(dictionary).Find(text)
}

// WordContext returns the first whole-word occurrence of term together with up
// to radius characters on either side, not crossing line breaks.
// It returns "" when term does not occur.
func WordContext(text, term string, radius int) string {
	if term == "" {
		return ""
	}
	loc := WordPattern(term).FindStringIndex(text)
	if loc == nil {
		return ""
	}

	start := loc[0]
	for n := 0; n < radius && start > 0; n++ {
		r, size := utf8.DecodeLastRuneInString(text[:start])
		if r == '\n' {
			break
		}
		start -= size
	}

	end := loc[1]
	for n := 0; n < radius && end < len(text); n++ {
		r, size := utf8.DecodeRuneInString(text[end:])
		if r == '\n' {
			break
		}
		end += size
	}

	return text[start:end]
}

// Similarity returns the ratio of matching characters between a and b,
// compared case-insensitively, in the range 0..1.
func Similarity(a, b string) float64 {
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	if a == "" && b == "" {
		return 1.0
	}
	m := difflib.NewMatcher(splitRunes(a), splitRunes(b))
	return m.Ratio()
}

func splitRunes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
