// Package parsing turns raw resume and job posting text into structured records
// using section headers, fixed patterns and the injected dictionaries.
package parsing

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/ats-optimizer/internal/dictionary"
	"github.com/jonathan/ats-optimizer/internal/types"
)

const monthNames = `January|February|March|April|May|June|July|August|September|October|November|December|Jan|Feb|Mar|Apr|Jun|Jul|Aug|Sept|Sep|Oct|Nov|Dec`

var (
	namePattern     = regexp.MustCompile(`^[A-Z][a-z]+(?: [A-Z][a-z]+){1,3}$`)
	emailPattern    = regexp.MustCompile(`[\w.-]+@[\w.-]+\.\w+`)
	phonePattern    = regexp.MustCompile(`(\+\d{1,3}[-.\s]?)?(\(?\d{3}\)?[-.\s]?)?\d{3}[-.\s]?\d{4}`)
	linkedInPattern = regexp.MustCompile(`linkedin\.com/in/[\w-]+`)
	gitHubPattern   = regexp.MustCompile(`github\.com/[\w-]+`)

	degreePattern   = regexp.MustCompile(`(Bachelor|Master|Ph\.D|MBA|B\.S\.|M\.S\.|B\.A\.|M\.A\.|B\.E\.|M\.E\.)[^,\n|]*`)
	fieldInPattern  = regexp.MustCompile(`\bin\s+([^,\n|(\d]+)`)
	fieldOfPattern  = regexp.MustCompile(`\bof\s+([^,\n|(\d]+)`)
	gpaPattern      = regexp.MustCompile(`(?i)GPA:?\s*(\d\.\d+)`)
	positionPattern = regexp.MustCompile(`(Senior|Junior|Lead|Principal|Software|Engineer|Developer|Manager|Director|Analyst|Consultant)[^,\n|]*`)

	monthRangePattern = regexp.MustCompile(`(?i)\b((?:` + monthNames + `)\.?\s+\d{4})\s*(?:-|–|—|to)\s*((?:` + monthNames + `)\.?\s+\d{4}|present|current|now)\b`)
	yearRangePattern  = regexp.MustCompile(`(?i)\b(\d{4})\s*(?:-|–|—|to)\s*(\d{4}|present|current|now)\b`)
	dateTokenPattern  = regexp.MustCompile(`(?i)\b(?:(?:` + monthNames + `)\.?\s+)?\d{4}\b`)

	entryStartPattern = regexp.MustCompile(`^(?:[A-Z][a-z]+ [A-Z][a-z]+|[A-Z]{2,})`)
	techPattern       = regexp.MustCompile(`(?i)^(?:Technologies|Tech Stack|Tools):\s*(.*)$`)
	skillLevelPattern = regexp.MustCompile(`(?i)^(.+?)\s*\((beginner|basic|intermediate|advanced|expert|proficient|familiar|fluent|native)\)$`)
	yearPattern       = regexp.MustCompile(`^\d{4}$`)
)

// ResumeParser extracts a ParsedResume from plain resume text
type ResumeParser struct {
	dict    *dictionary.Dictionaries
	headers map[string][]string
	known   headerSet
}

// NewResumeParser creates a parser that recognizes the section headers in dict.
func NewResumeParser(dict *dictionary.Dictionaries) *ResumeParser {
	p := &ResumeParser{
		dict:    dict,
		headers: make(map[string][]string, len(dict.ResumeSections)),
		known:   make(headerSet),
	}
	for _, s := range dict.ResumeSections {
		p.headers[s.Name] = s.Headers
		for _, h := range s.Headers {
			p.known[strings.ToLower(h)] = true
		}
	}
	return p
}

// Parse extracts every section it can find. Sections that cannot be located
// resolve to empty values; Parse never fails.
func (p *ResumeParser) Parse(text string) types.ParsedResume {
	lines := splitLines(text)
	bodies, firstHeader := p.segment(lines)

	r := types.NewParsedResume()
	contactLines := lines
	if firstHeader >= 0 {
		contactLines = lines[:firstHeader]
	}
	r.ContactInfo = parseContact(contactLines, text)
	r.Summary = joinText(bodies["summary"])
	r.Education = parseEducation(bodies["education"])
	r.Experience = parseExperience(bodies["experience"])
	r.Skills = parseSkills(bodies["skills"])
	r.Projects = parseProjects(bodies["projects"])
	r.Certifications = parseCertifications(bodies["certifications"])
	r.Languages = splitList(bodies["languages"])
	r.Interests = splitList(bodies["interests"])
	r.References = joinText(bodies["references"])
	r.Normalize()
	return r
}

// segment locates each section's header, first match wins, and returns the
// section bodies along with the index of the earliest header found.
func (p *ResumeParser) segment(lines []string) (map[string][]string, int) {
	bodies := make(map[string][]string, len(p.dict.ResumeSections))
	first := -1
	for _, s := range p.dict.ResumeSections {
		idx := findHeader(lines, s.Headers)
		if idx < 0 {
			continue
		}
		if first < 0 || idx < first {
			first = idx
		}
		bodies[s.Name] = resumeBody(lines, idx, p.known)
	}
	return bodies, first
}

func parseContact(head []string, text string) types.ContactInfo {
	var c types.ContactInfo

	seen := 0
	for _, l := range head {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		if namePattern.MatchString(l) {
			c.Name = l
			break
		}
		seen++
		if seen >= 5 {
			break
		}
	}

	c.Email = emailPattern.FindString(text)
	c.Phone = strings.TrimSpace(phonePattern.FindString(strings.Join(head, "\n")))
	if m := linkedInPattern.FindString(text); m != "" {
		c.LinkedIn = "https://www." + m
	}
	if m := gitHubPattern.FindString(text); m != "" {
		c.GitHub = "https://www." + m
	}
	return c
}

// splitEntries groups section lines into entries. A blank line always ends an
// entry. A line opening with a capitalized word pair or an all-caps token
// starts a new entry once the current one has bullets, or when it carries its
// own comma or date after a dated entry. Bullet lines never start an entry.
func splitEntries(body []string) [][]string {
	entries := make([][]string, 0)
	var cur []string
	hasBullet, hasDate := false, false

	flush := func() {
		if len(cur) > 0 {
			entries = append(entries, cur)
		}
		cur = nil
		hasBullet, hasDate = false, false
	}

	for _, raw := range body {
		l := strings.TrimSpace(raw)
		switch {
		case l == "":
			flush()
			continue
		case isBullet(l):
			cur = append(cur, l)
			hasBullet = true
			continue
		}

		if len(cur) > 0 && entryStartPattern.MatchString(l) {
			selfContained := strings.Contains(l, ",") || dateTokenPattern.MatchString(l)
			if hasBullet || (hasDate && selfContained) {
				flush()
			}
		}
		cur = append(cur, l)
		if hasDateRange(l) {
			hasDate = true
		}
	}
	flush()
	return entries
}

// headLines returns the non-bullet lines of an entry
func headLines(entry []string) []string {
	out := make([]string, 0, len(entry))
	for _, l := range entry {
		if !isBullet(l) {
			out = append(out, l)
		}
	}
	return out
}

func hasDateRange(s string) bool {
	return monthRangePattern.MatchString(s) || yearRangePattern.MatchString(s)
}

// parseDateRange returns start, end and whether the range is ongoing
func parseDateRange(s string) (string, string, bool) {
	m := monthRangePattern.FindStringSubmatch(s)
	if m == nil {
		m = yearRangePattern.FindStringSubmatch(s)
	}
	if m == nil {
		return "", "", false
	}
	end := m[2]
	switch strings.ToLower(end) {
	case "present", "current", "now":
		return m[1], "Present", true
	}
	return m[1], end, false
}

// cutAtDate drops anything from the first date token onwards
func cutAtDate(s string) string {
	if loc := dateTokenPattern.FindStringIndex(s); loc != nil {
		s = s[:loc[0]]
	}
	return trimPunct(s)
}

func parseExperience(body []string) []types.ExperienceEntry {
	out := make([]types.ExperienceEntry, 0)
	for _, entry := range splitEntries(body) {
		head := headLines(entry)
		headText := strings.Join(head, "\n")

		var e types.ExperienceEntry
		if len(head) > 0 {
			e.Company = cutAtDate(firstField(head[0]))
		}
		if m := positionPattern.FindString(headText); m != "" {
			e.Position = cutAtDate(m)
		}
		e.StartDate, e.EndDate, e.Current = parseDateRange(headText)
		e.Description = types.Description(bulletItems(entry))
		out = append(out, e)
	}
	return out
}

func parseEducation(body []string) []types.EducationEntry {
	out := make([]types.EducationEntry, 0)
	for _, entry := range splitEntries(body) {
		head := headLines(entry)
		headText := strings.Join(head, "\n")
		entryText := strings.Join(entry, "\n")

		var e types.EducationEntry
		if len(head) > 0 {
			e.Institution = cutAtDate(firstField(head[0]))
		}
		if m := degreePattern.FindString(headText); m != "" {
			e.Degree = cutAtDate(m)
			e.FieldOfStudy = fieldOfStudy(e.Degree)
		}
		e.StartDate, e.EndDate, e.Current = parseDateRange(headText)
		if m := gpaPattern.FindStringSubmatch(entryText); m != nil {
			if gpa, err := strconv.ParseFloat(m[1], 64); err == nil {
				e.GPA = &gpa
			}
		}
		e.Description = strings.Join(bulletItems(entry), " ")
		out = append(out, e)
	}
	return out
}

// fieldOfStudy prefers "in <field>" over "of <field>" so that
// "Bachelor of Science in Physics" yields "Physics".
func fieldOfStudy(degree string) string {
	if m := fieldInPattern.FindStringSubmatch(degree); m != nil {
		return trimPunct(m[1])
	}
	if m := fieldOfPattern.FindStringSubmatch(degree); m != nil {
		return trimPunct(m[1])
	}
	return ""
}

func parseSkills(body []string) []types.Skill {
	out := make([]types.Skill, 0)
	for _, item := range splitList(body) {
		if m := skillLevelPattern.FindStringSubmatch(item); m != nil {
			out = append(out, types.Skill{Name: strings.TrimSpace(m[1]), Level: strings.ToLower(m[2])})
			continue
		}
		out = append(out, types.Skill{Name: item})
	}
	return out
}

func parseProjects(body []string) []types.Project {
	out := make([]types.Project, 0)
	for _, entry := range splitEntries(body) {
		p := types.Project{Technologies: []string{}}
		desc := make([]string, 0)
		for i, l := range entry {
			item := l
			if isBullet(l) {
				item = stripBullet(l)
			}
			if m := techPattern.FindStringSubmatch(item); m != nil {
				for _, t := range strings.Split(m[1], ",") {
					if t = strings.TrimSpace(t); t != "" {
						p.Technologies = append(p.Technologies, t)
					}
				}
				continue
			}
			if i == 0 && !isBullet(l) {
				p.Name = firstField(l)
				continue
			}
			if isBullet(l) {
				desc = append(desc, item)
			}
		}
		p.Description = strings.Join(desc, " ")
		out = append(out, p)
	}
	return out
}

// parseCertifications reads entries such as "CKA (CNCF, 2022)"; the
// parenthetical supplies the issuer and date.
func parseCertifications(body []string) []types.Certification {
	out := make([]types.Certification, 0)
	for _, item := range splitList(body) {
		c := types.Certification{Name: item}
		if open := strings.Index(item, "("); open > 0 && strings.HasSuffix(item, ")") {
			c.Name = strings.TrimSpace(item[:open])
			for _, part := range strings.Split(item[open+1:len(item)-1], ",") {
				part = strings.TrimSpace(part)
				switch {
				case part == "":
				case yearPattern.MatchString(part) || dateTokenPattern.MatchString(part):
					c.Date = part
				case c.Issuer == "":
					c.Issuer = part
				}
			}
		}
		out = append(out, c)
	}
	return out
}
