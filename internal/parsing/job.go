package parsing

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/ats-optimizer/internal/dictionary"
	"github.com/jonathan/ats-optimizer/internal/textutil"
	"github.com/jonathan/ats-optimizer/internal/types"
)

// MaxJobKeywords is the number of frequency-ranked keywords kept for a posting
const MaxJobKeywords = 20

var (
	titleLabelPattern   = regexp.MustCompile(`(?:Job Title|Position|Role):\s*([^\n]+)`)
	titleLeadPattern    = regexp.MustCompile(`^([A-Z][a-z]+(?: [A-Z][a-z]+){1,3}(?:\s*-\s*[A-Z][a-z]+(?:\s+[A-Z][a-z]+){0,2})?)`)
	companyLabelPattern = regexp.MustCompile(`(?:Company|Organization|Employer):\s*([^\n]+)`)
	companyAboutPattern = regexp.MustCompile(`About ([A-Z][a-z]*(?: [A-Z][a-z]*){0,3}):`)
	companyHirePattern  = regexp.MustCompile(`([A-Z][A-Za-z0-9]*(?: [A-Z][A-Za-z0-9]*){0,3}) is (?:looking|seeking|hiring)`)
	locationLabel       = regexp.MustCompile(`(?:Location|Place):\s*([^\n]+)`)
	locationInPattern   = regexp.MustCompile(`\b(?:in|at) ([A-Z][a-z]+(?: [A-Z][a-z]+){0,2},\s*[A-Z]{2})\b`)
	locationCityPattern = regexp.MustCompile(`\b([A-Z][a-z]+,\s*[A-Z]{2})\b`)

	yearsPattern       = regexp.MustCompile(`(?i)(\d+)\+?\s*(?:years|yrs)(?:\s*of)?\s*experience`)
	fieldsPattern      = regexp.MustCompile(`(?:degree|education) in\s*((?:[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*(?:,\s*|/|\s+or\s+))*(?:[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*))`)
	fieldSepPattern    = regexp.MustCompile(`,\s*|/|\s+or\s+`)
	capitalizedPattern = regexp.MustCompile(`(?:[A-Z][a-z]+|[A-Z]+)(?:\+\+|#)?`)
)

// levelMatcher is one compiled level group from the dictionaries
type levelMatcher struct {
	level string
	re    *regexp.Regexp
}

// JobAnalyzer extracts JobRequirements from job posting text
type JobAnalyzer struct {
	dict             *dictionary.Dictionaries
	experienceLevels []levelMatcher
	educationLevels  []levelMatcher
	known            headerSet
	commonSkills     *textutil.TermSet
	bulletSkills     *textutil.TermSet
	now              func() time.Time
	newID            func() string
}

// JobOption configures a JobAnalyzer
type JobOption func(*JobAnalyzer)

// WithClock sets the clock used for the requirement timestamp.
func WithClock(now func() time.Time) JobOption {
	return func(a *JobAnalyzer) {
		a.now = now
	}
}

// WithIDGenerator sets the function used to assign requirement IDs.
func WithIDGenerator(newID func() string) JobOption {
	return func(a *JobAnalyzer) {
		a.newID = newID
	}
}

// NewJobAnalyzer compiles the level patterns in dict. It fails with a
// *ParseError when a dictionary pattern is not a valid regular expression.
func NewJobAnalyzer(dict *dictionary.Dictionaries, opts ...JobOption) (*JobAnalyzer, error) {
	a := &JobAnalyzer{
		dict: dict,
		known: newHeaderSet(
			dict.JobSections,
			dict.RequiredSkillHeaders,
			dict.PreferredSkillHeaders,
			dict.ResponsibilityHeaders,
			dict.RequiredQualificationHeaders,
			dict.PreferredQualificationHeaders,
			dict.ExperienceHeaders,
		),
		now:   time.Now,
		newID: uuid.NewString,
	}

	var err error
	if a.experienceLevels, err = compileLevels(dict.ExperienceLevels); err != nil {
		return nil, err
	}
	if a.educationLevels, err = compileLevels(dict.EducationLevels); err != nil {
		return nil, err
	}

	a.commonSkills = textutil.NewTermSet(dict.JobCommonSkills)
	a.bulletSkills = textutil.NewTermSet(textutil.Dedupe(concat(dict.TechnicalSkills, dict.JobCommonSkills, dict.SoftSkills)))

	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

func compileLevels(groups []dictionary.LevelPatterns) ([]levelMatcher, error) {
	out := make([]levelMatcher, 0, len(groups))
	for _, g := range groups {
		if len(g.Patterns) == 0 {
			continue
		}
		re, err := regexp.Compile(`(?i)(?:` + strings.Join(g.Patterns, "|") + `)`)
		if err != nil {
			return nil, &ParseError{
				Message: fmt.Sprintf("invalid pattern for level %q", g.Level),
				Cause:   err,
			}
		}
		out = append(out, levelMatcher{level: g.Level, re: re})
	}
	return out, nil
}

// Analyze extracts the requirements of a job posting. Fields that cannot be
// found keep their empty defaults.
func (a *JobAnalyzer) Analyze(text string) types.JobRequirements {
	lines := splitLines(text)

	job := types.JobRequirements{
		ID:             a.newID(),
		Title:          extractTitle(text),
		Company:        firstSubmatch(text, companyLabelPattern, companyAboutPattern, companyHirePattern),
		Location:       firstSubmatch(text, locationLabel, locationInPattern, locationCityPattern),
		RawDescription: text,
		Timestamp:      a.now().UTC().Format(time.RFC3339),
	}

	required := a.skillBullets(lines, a.dict.RequiredSkillHeaders)
	required = append(required, a.commonSkills.Find(text)...)
	job.RequiredSkills = textutil.Dedupe(required)
	job.PreferredSkills = textutil.Dedupe(a.skillBullets(lines, a.dict.PreferredSkillHeaders))

	job.Responsibilities = a.sectionBullets(lines, a.dict.ResponsibilityHeaders)
	job.Qualifications.Required = a.sectionBullets(lines, a.dict.RequiredQualificationHeaders)
	job.Qualifications.Preferred = a.sectionBullets(lines, a.dict.PreferredQualificationHeaders)

	job.Experience = a.experience(text, lines)
	job.Education = a.education(text)
	job.Keywords = textutil.TopTerms(textutil.SignificantTokens(text, a.dict, 0), MaxJobKeywords)
	job.Sections = a.sections(lines)

	job.Normalize()
	return job
}

func extractTitle(text string) string {
	if m := titleLabelPattern.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	trimmed := strings.TrimSpace(text)
	if m := titleLeadPattern.FindStringSubmatch(trimmed); m != nil {
		return strings.TrimSpace(m[1])
	}
	first := strings.TrimSpace(strings.SplitN(trimmed, "\n", 2)[0])
	if len(first) < 100 {
		return first
	}
	return ""
}

func firstSubmatch(text string, patterns ...*regexp.Regexp) string {
	for _, re := range patterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

// body returns the first section under any of headers, or nil
func (a *JobAnalyzer) body(lines []string, headers []string) []string {
	idx := findHeader(lines, headers)
	if idx < 0 {
		return nil
	}
	return jobBody(lines, idx, a.known)
}

func (a *JobAnalyzer) sectionBullets(lines []string, headers []string) []string {
	return bulletItems(a.body(lines, headers))
}

// skillBullets reduces each bullet under headers to one skill: the earliest
// dictionary skill it mentions, else its first capitalized token, else the
// whole bullet.
func (a *JobAnalyzer) skillBullets(lines []string, headers []string) []string {
	points := a.sectionBullets(lines, headers)
	skills := make([]string, 0, len(points))
	for _, point := range points {
		if term := a.bulletSkills.Earliest(point); term != "" {
			skills = append(skills, term)
			continue
		}
		if m := capitalizedPattern.FindString(point); m != "" {
			skills = append(skills, m)
			continue
		}
		skills = append(skills, point)
	}
	return skills
}

func (a *JobAnalyzer) experience(text string, lines []string) types.ExperienceRequirement {
	var exp types.ExperienceRequirement
	if m := yearsPattern.FindStringSubmatch(text); m != nil {
		if years, err := strconv.Atoi(m[1]); err == nil {
			exp.Years = years
		}
	}
	for _, lm := range a.experienceLevels {
		if lm.re.MatchString(text) {
			exp.Level = types.ExperienceLevel(lm.level)
			break
		}
	}
	exp.Description = strings.Join(a.body(lines, a.dict.ExperienceHeaders), "\n")
	return exp
}

func (a *JobAnalyzer) education(text string) types.EducationRequirement {
	edu := types.EducationRequirement{Fields: []string{}}
	for _, lm := range a.educationLevels {
		if lm.re.MatchString(text) {
			edu.Level = types.EducationLevel(lm.level)
			break
		}
	}
	if m := fieldsPattern.FindStringSubmatch(text); m != nil {
		for _, f := range fieldSepPattern.Split(m[1], -1) {
			if f = strings.TrimSpace(f); f != "" {
				edu.Fields = append(edu.Fields, f)
			}
		}
	}
	return edu
}

// sections maps every generic header found to its body text
func (a *JobAnalyzer) sections(lines []string) map[string]string {
	out := make(map[string]string)
	for _, header := range a.dict.JobSections {
		idx := findHeader(lines, []string{header})
		if idx < 0 {
			continue
		}
		out[header] = strings.Join(jobBody(lines, idx, a.known), "\n")
	}
	return out
}

func concat(lists ...[]string) []string {
	var out []string
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}
