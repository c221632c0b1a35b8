// Package dictionary provides the vocabulary data used by the analysis components.
// Dictionaries are stored as YAML files, embedded at compile time, and passed
// to each component when it is constructed.
package dictionary

import (
	"embed"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed *.yaml
var dictionaryFiles embed.FS

// SectionHeaders maps a canonical resume section to its header synonyms
type SectionHeaders struct {
	Name    string   `yaml:"name"`
	Headers []string `yaml:"headers"`
}

// LevelPatterns is an ordered group of regular expressions that identify one level
type LevelPatterns struct {
	Level    string   `yaml:"level"`
	Patterns []string `yaml:"patterns"`
}

// DegreeAliases lists the degree words that place a resume entry on one ladder rung
type DegreeAliases struct {
	Level   string   `yaml:"level"`
	Aliases []string `yaml:"aliases"`
}

// Dictionaries is the full vocabulary set. Treat it as read-only once built.
type Dictionaries struct {
	TechnicalSkills   []string `yaml:"technical_skills"`
	SoftSkills        []string `yaml:"soft_skills"`
	IndustryTerms     []string `yaml:"industry_terms"`
	ActionVerbs       []string `yaml:"action_verbs"`
	StrongActionVerbs []string `yaml:"strong_action_verbs"`
	JobCommonSkills   []string `yaml:"job_common_skills"`
	StopWords         []string `yaml:"stop_words"`

	ResumeSections                []SectionHeaders `yaml:"resume_sections"`
	JobSections                   []string         `yaml:"job_sections"`
	RequiredSkillHeaders          []string         `yaml:"required_skill_headers"`
	PreferredSkillHeaders         []string         `yaml:"preferred_skill_headers"`
	ResponsibilityHeaders         []string         `yaml:"responsibility_headers"`
	RequiredQualificationHeaders  []string         `yaml:"required_qualification_headers"`
	PreferredQualificationHeaders []string         `yaml:"preferred_qualification_headers"`
	ExperienceHeaders             []string         `yaml:"experience_headers"`

	ExperienceLevels []LevelPatterns `yaml:"experience_levels"`
	EducationLevels  []LevelPatterns `yaml:"education_levels"`
	DegreeAliases    []DegreeAliases `yaml:"degree_aliases"`

	stopSet map[string]bool
}

var (
	defaultOnce sync.Once
	defaultDict *Dictionaries
	defaultErr  error
)

// Default returns the embedded dictionaries. The result is parsed once and shared.
func Default() (*Dictionaries, error) {
	defaultOnce.Do(func() {
		defaultDict, defaultErr = loadEmbedded()
	})
	return defaultDict, defaultErr
}

// MustDefault returns the embedded dictionaries, panicking if they cannot be parsed.
// The embedded files ship with the binary, so a failure here is a build defect.
func MustDefault() *Dictionaries {
	d, err := Default()
	if err != nil {
		panic(fmt.Sprintf("failed to load dictionaries: %v", err))
	}
	return d
}

// Load parses an override document and merges it over the embedded defaults.
// Keys absent from the override keep their default values.
func Load(r io.Reader) (*Dictionaries, error) {
	base, err := Default()
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read dictionary override: %w", err)
	}

	var override Dictionaries
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("failed to parse dictionary override: %w", err)
	}

	merged := base.merge(&override)
	merged.index()
	return merged, nil
}

// LoadFile reads an override file from disk. An empty path returns the defaults.
func LoadFile(path string) (*Dictionaries, error) {
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dictionary file %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	return Load(f)
}

// IsStopWord reports whether the lowercase token is a stop word.
func (d *Dictionaries) IsStopWord(token string) bool {
	return d.stopSet[token]
}

// ResumeSectionNames returns canonical resume section names in scan order.
func (d *Dictionaries) ResumeSectionNames() []string {
	names := make([]string, 0, len(d.ResumeSections))
	for _, s := range d.ResumeSections {
		names = append(names, s.Name)
	}
	return names
}

// loadEmbedded decodes every embedded YAML file and merges them in name order.
func loadEmbedded() (*Dictionaries, error) {
	entries, err := dictionaryFiles.ReadDir(".")
	if err != nil {
		return nil, fmt.Errorf("failed to list dictionary files: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)

	d := &Dictionaries{}
	for _, name := range names {
		data, err := dictionaryFiles.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read dictionary file %s: %w", name, err)
		}
		var part Dictionaries
		if err := yaml.Unmarshal(data, &part); err != nil {
			return nil, fmt.Errorf("failed to parse dictionary file %s: %w", name, err)
		}
		d = d.merge(&part)
	}

	d.index()
	return d, nil
}

func (d *Dictionaries) index() {
	d.stopSet = make(map[string]bool, len(d.StopWords))
	for _, w := range d.StopWords {
		d.stopSet[w] = true
	}
}

// merge returns a copy of d with every non-empty field of o applied over it.
func (d *Dictionaries) merge(o *Dictionaries) *Dictionaries {
	out := *d
	pick := func(dst *[]string, src []string) {
		if len(src) > 0 {
			*dst = src
		}
	}
	pick(&out.TechnicalSkills, o.TechnicalSkills)
	pick(&out.SoftSkills, o.SoftSkills)
	pick(&out.IndustryTerms, o.IndustryTerms)
	pick(&out.ActionVerbs, o.ActionVerbs)
	pick(&out.StrongActionVerbs, o.StrongActionVerbs)
	pick(&out.JobCommonSkills, o.JobCommonSkills)
	pick(&out.StopWords, o.StopWords)
	pick(&out.JobSections, o.JobSections)
	pick(&out.RequiredSkillHeaders, o.RequiredSkillHeaders)
	pick(&out.PreferredSkillHeaders, o.PreferredSkillHeaders)
	pick(&out.ResponsibilityHeaders, o.ResponsibilityHeaders)
	pick(&out.RequiredQualificationHeaders, o.RequiredQualificationHeaders)
	pick(&out.PreferredQualificationHeaders, o.PreferredQualificationHeaders)
	pick(&out.ExperienceHeaders, o.ExperienceHeaders)

	if len(o.ResumeSections) > 0 {
		out.ResumeSections = o.ResumeSections
	}
	if len(o.ExperienceLevels) > 0 {
		out.ExperienceLevels = o.ExperienceLevels
	}
	if len(o.EducationLevels) > 0 {
		out.EducationLevels = o.EducationLevels
	}
	if len(o.DegreeAliases) > 0 {
		out.DegreeAliases = o.DegreeAliases
	}
	return &out
}
