// Package keywords derives categorized keyword sets and density statistics
// from parsed resumes, job postings, or raw text.
package keywords

import (
	"strings"

	"github.com/jonathan/ats-optimizer/internal/dictionary"
	"github.com/jonathan/ats-optimizer/internal/textutil"
	"github.com/jonathan/ats-optimizer/internal/types"
)

const (
	// MaxDensityTerms is the number of tokens reported in keyword_density
	MaxDensityTerms = 20
	// MaxSectionTerms is the number of tokens kept per section
	MaxSectionTerms = 10
	// MaxTopKeywords is the number of keywords in top_keywords
	MaxTopKeywords = 20

	// tokens of this length or shorter are ignored for density
	minTokenLen = 2
)

// Analyst builds keyword profiles against the injected dictionaries
type Analyst struct {
	dict      *dictionary.Dictionaries
	technical *textutil.TermSet
	soft      *textutil.TermSet
	industry  *textutil.TermSet
	verbs     *textutil.TermSet
}

// NewAnalyst creates an Analyst, compiling the dictionary term patterns once.
func NewAnalyst(dict *dictionary.Dictionaries) *Analyst {
	return &Analyst{
		dict:      dict,
		technical: textutil.NewTermSet(dict.TechnicalSkills),
		soft:      textutil.NewTermSet(dict.SoftSkills),
		industry:  textutil.NewTermSet(dict.IndustryTerms),
		verbs:     textutil.NewTermSet(dict.ActionVerbs),
	}
}

// AnalyzeResume profiles a parsed resume. Declared skill names are added to
// the technical skills found in the text.
func (a *Analyst) AnalyzeResume(r types.ParsedResume) types.KeywordProfile {
	text := resumeText(r)

	p := a.categorize(text)
	p.TechnicalSkills = appendMissing(p.TechnicalSkills, r.SkillNames())
	p.KeywordDensity = a.density(text)

	eduParts := make([]string, 0, len(r.Education)*2)
	for _, e := range r.Education {
		eduParts = append(eduParts, e.Description, e.FieldOfStudy)
	}
	p.SectionKeywords = map[string][]string{
		"summary":    a.sectionTerms(r.Summary),
		"experience": a.sectionTerms(r.ExperienceText()),
		"education":  a.sectionTerms(strings.Join(eduParts, " ")),
		"skills":     a.sectionTerms(strings.Join(r.SkillNames(), " ")),
	}

	p.TopKeywords = textutil.TopTerms(concat(p.TechnicalSkills, p.SoftSkills, p.IndustryTerms, p.ActionVerbs), MaxTopKeywords)
	return p
}

// AnalyzeJob profiles a job posting from its raw description and extracted lists.
func (a *Analyst) AnalyzeJob(j types.JobRequirements) types.KeywordProfile {
	text := j.RawDescription

	p := a.categorize(text)
	p.RequiredSkills = nonNil(j.RequiredSkills)
	p.PreferredSkills = nonNil(j.PreferredSkills)
	p.KeywordDensity = a.density(text)

	p.SectionKeywords = map[string][]string{
		"responsibilities": a.sectionTerms(strings.Join(j.Responsibilities, " ")),
		"qualifications":   a.sectionTerms(strings.Join(concat(j.Qualifications.Required, j.Qualifications.Preferred), " ")),
	}
	for name, body := range j.Sections {
		key := strings.ReplaceAll(strings.ToLower(name), " ", "_")
		p.SectionKeywords[key] = a.sectionTerms(body)
	}

	p.TopKeywords = textutil.TopTerms(concat(p.RequiredSkills, p.PreferredSkills, p.TechnicalSkills, p.SoftSkills, p.IndustryTerms), MaxTopKeywords)
	return p
}

// AnalyzeText profiles free text with no section structure.
func (a *Analyst) AnalyzeText(text string) types.KeywordProfile {
	p := a.categorize(text)
	p.KeywordDensity = a.density(text)
	p.SectionKeywords = map[string][]string{}
	p.TopKeywords = textutil.TopTerms(concat(p.TechnicalSkills, p.SoftSkills, p.IndustryTerms, p.ActionVerbs), MaxTopKeywords)
	return p
}

// categorize runs the four dictionary searches
func (a *Analyst) categorize(text string) types.KeywordProfile {
	return types.KeywordProfile{
		TechnicalSkills: a.technical.Find(text),
		SoftSkills:      a.soft.Find(text),
		IndustryTerms:   a.industry.Find(text),
		ActionVerbs:     a.verbs.Find(text),
	}
}

// density reports each of the most frequent significant tokens as a share
// of all significant tokens.
func (a *Analyst) density(text string) []types.KeywordDensity {
	tokens := textutil.SignificantTokens(text, a.dict, minTokenLen)
	out := make([]types.KeywordDensity, 0, MaxDensityTerms)
	if len(tokens) == 0 {
		return out
	}
	total := float64(len(tokens))
	for i, tc := range textutil.CountTerms(tokens) {
		if i == MaxDensityTerms {
			break
		}
		out = append(out, types.KeywordDensity{Keyword: tc.Term, Density: float64(tc.Count) / total})
	}
	return out
}

func (a *Analyst) sectionTerms(text string) []string {
	return textutil.TopTerms(textutil.SignificantTokens(text, a.dict, minTokenLen), MaxSectionTerms)
}

// resumeText concatenates the prose of a resume: summary, descriptions and skill names
func resumeText(r types.ParsedResume) string {
	parts := []string{r.Summary}
	for _, e := range r.Experience {
		parts = append(parts, e.Description...)
	}
	for _, e := range r.Education {
		parts = append(parts, e.Description)
	}
	for _, p := range r.Projects {
		parts = append(parts, p.Description)
	}
	parts = append(parts, r.SkillNames()...)
	return strings.Join(parts, " ")
}

// appendMissing appends the items of extra not already in list, comparing exactly
func appendMissing(list, extra []string) []string {
	seen := make(map[string]bool, len(list)+len(extra))
	for _, s := range list {
		seen[s] = true
	}
	for _, s := range extra {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		list = append(list, s)
	}
	return list
}

func concat(lists ...[]string) []string {
	var out []string
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
