package textutil

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stopSet map[string]bool

func (s stopSet) IsStopWord(tok string) bool { return s[tok] }

func TestTokenize(t *testing.T) {
	tokens := Tokenize("Built REST APIs in Go; don't stop. 5+ years, Node.js!")
	assert.Equal(t, []string{"built", "rest", "apis", "in", "go", "don't", "stop", "5", "years", "node", "js"}, tokens)
}

func TestIsAlpha(t *testing.T) {
	assert.True(t, IsAlpha("python"))
	assert.False(t, IsAlpha("don't"))
	assert.False(t, IsAlpha("k8s"))
	assert.False(t, IsAlpha(""))
}

func TestSignificantTokens(t *testing.T) {
	stop := stopSet{"the": true, "and": true}
	got := SignificantTokens("The API and the go service in 2024", stop, 2)
	assert.Equal(t, []string{"api", "service"}, got)

	got = SignificantTokens("The API and the go service", stop, 0)
	assert.Equal(t, []string{"api", "go", "service"}, got)
}

func TestTopTerms_TiesByFirstOccurrence(t *testing.T) {
	terms := []string{"go", "sql", "docker", "sql", "go", "aws", "docker"}
	// go, sql and docker each occur twice; order is first occurrence
	assert.Equal(t, []string{"go", "sql", "docker", "aws"}, TopTerms(terms, 10))
	assert.Equal(t, []string{"go", "sql"}, TopTerms(terms, 2))
	assert.Empty(t, TopTerms(nil, 5))
}

func TestCountTerms(t *testing.T) {
	counts := CountTerms([]string{"b", "a", "a", "c", "a", "b"})
	assert.Equal(t, []TermCount{{"a", 3}, {"b", 2}, {"c", 1}}, counts)
}

func TestDedupe(t *testing.T) {
	assert.Equal(t, []string{"Go", "go", "SQL"}, Dedupe([]string{"Go", "go", "", "SQL", "Go"}))
}

func TestContainsWord(t *testing.T) {
	tests := []struct {
		name string
		text string
		term string
		want bool
	}{
		{name: "case insensitive", text: "Experienced in PYTHON", term: "Python", want: true},
		{name: "whole word only", text: "javascripting", term: "JavaScript", want: false},
		{name: "go is not good", text: "good engineer", term: "Go", want: false},
		{name: "symbol suffix", text: "Modern C++ and C# code", term: "C++", want: true},
		{name: "hash suffix", text: "Modern C# code", term: "C#", want: true},
		{name: "dotted", text: "backend in Node.js and Go", term: "Node.js", want: true},
		{name: "multi word", text: "applied machine learning models", term: "Machine Learning", want: true},
		{name: "empty term", text: "anything", term: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ContainsWord(tt.text, tt.term))
		})
	}
}

func TestFindWords_DictionaryOrder(t *testing.T) {
	dict := []string{"Python", "Go", "Docker", "AWS"}
	assert.Equal(t, []string{"Python", "Docker"}, FindWords("docker images for python apps", dict))
	assert.Empty(t, FindWords("nothing here", dict))
}

func TestTermSet_Find(t *testing.T) {
	ts := NewTermSet([]string{"Python", "", "C++", "Docker"})
	require.Equal(t, 3, ts.Len())
	assert.Equal(t, []string{"C++", "Docker"}, ts.Find("Docker tooling written in c++"))
	assert.NotNil(t, ts.Find("nothing here"))
	assert.Empty(t, ts.Find("nothing here"))
}

func TestTermSet_Earliest(t *testing.T) {
	ts := NewTermSet([]string{"Kubernetes", "Go", "Machine Learning", "Machine"})
	tests := []struct {
		name string
		text string
		want string
	}{
		{"first occurrence wins", "Strong knowledge of Kubernetes and Go", "Kubernetes"},
		{"longer term on tie", "machine learning pipelines", "Machine Learning"},
		{"no term", "excellent communication", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ts.Earliest(tt.text))
		})
	}
}

func TestWordPattern_CacheStaysBounded(t *testing.T) {
	for i := 0; i < PatternCacheSize+500; i++ {
		ContainsWord("requirement text", fmt.Sprintf("term%d", i))
	}
	assert.LessOrEqual(t, patternCache.Len(), PatternCacheSize)

	first := WordPattern("kubernetes")
	assert.Same(t, first, WordPattern("kubernetes"))
}

func TestWordContext(t *testing.T) {
	text := "aaaa bbbb Kubernetes cccc dddd"
	assert.Equal(t, "bbbb Kubernetes cccc", WordContext(text, "kubernetes", 5))
	assert.Equal(t, text, WordContext(text, "Kubernetes", 50))
	assert.Equal(t, "", WordContext(text, "Terraform", 50))

	multi := "first line\nuses Docker daily\nlast line"
	assert.Equal(t, "uses Docker daily", WordContext(multi, "docker", 50))
}

func TestSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, Similarity("Javascript", "JavaScript"), 1e-9)
	assert.InDelta(t, 1.0, Similarity("", ""), 1e-9)
	assert.Equal(t, 0.0, Similarity("abc", "xyz"))

	// "postgres" vs "postgresql": 2*8/18
	assert.InDelta(t, 16.0/18.0, Similarity("Postgres", "PostgreSQL"), 1e-9)
	assert.Less(t, Similarity("Java", "JavaScript"), 0.8)
}

func TestWordCount(t *testing.T) {
	assert.Equal(t, 4, WordCount("  one two\nthree\tfour "))
	assert.Equal(t, 0, WordCount(""))
}
