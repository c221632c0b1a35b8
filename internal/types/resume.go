// Package types provides type definitions for structured data used throughout the ATS analysis system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// ContactInfo holds the contact block found at the top of a resume.
// Every field is optional.
type ContactInfo struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
}

// IsEmpty reports whether no contact field was found.
func (c ContactInfo) IsEmpty() bool {
	return c.Name == "" && c.Email == "" && c.Phone == "" && c.LinkedIn == "" && c.GitHub == ""
}

// EducationEntry is a single degree or school listed in a resume
type EducationEntry struct {
	Institution  string   `json:"institution"`
	Degree       string   `json:"degree"`
	FieldOfStudy string   `json:"field_of_study"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	Current      bool     `json:"current"`
	GPA          *float64 `json:"gpa,omitempty"`
	Description  string   `json:"description,omitempty"`
}

// IsOngoing reports whether the entry is still in progress.
// A current entry is ongoing whatever its stored end date says.
func (e EducationEntry) IsOngoing() bool {
	return e.Current || strings.EqualFold(strings.TrimSpace(e.EndDate), "present")
}

// ExperienceEntry is a single position listed in a resume
type ExperienceEntry struct {
	Company     string      `json:"company"`
	Position    string      `json:"position"`
	StartDate   string      `json:"start_date"`
	EndDate     string      `json:"end_date"`
	Current     bool        `json:"current"`
	Description Description `json:"description"`
}

// IsOngoing reports whether the position is still held.
func (e ExperienceEntry) IsOngoing() bool {
	return e.Current || strings.EqualFold(strings.TrimSpace(e.EndDate), "present")
}

// Skill is a named skill with an optional proficiency level
type Skill struct {
	Name  string `json:"name"`
	Level string `json:"level,omitempty"`
}

// Project is a project entry from the resume
type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
}

// Certification is a certificate listed in the resume
type Certification struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer,omitempty"`
	Date   string `json:"date,omitempty"`
}

// ParsedResume is the structured record produced from raw resume text.
// Every slice is non-nil once built with NewParsedResume or passed through Normalize.
type ParsedResume struct {
	ContactInfo    ContactInfo       `json:"contact_info"`
	Summary        string            `json:"summary"`
	Education      []EducationEntry  `json:"education"`
	Experience     []ExperienceEntry `json:"experience"`
	Skills         []Skill           `json:"skills"`
	Projects       []Project         `json:"projects"`
	Certifications []Certification   `json:"certifications"`
	Languages      []string          `json:"languages"`
	Interests      []string          `json:"interests"`
	References     string            `json:"references"`
}

// NewParsedResume returns an empty resume with every list initialized.
func NewParsedResume() ParsedResume {
	r := ParsedResume{}
	r.Normalize()
	return r
}

// Normalize replaces nil slices with empty ones so the record never
// serializes a list as null.
func (r *ParsedResume) Normalize() {
	if r.Education == nil {
		r.Education = []EducationEntry{}
	}
	if r.Experience == nil {
		r.Experience = []ExperienceEntry{}
	}
	for i := range r.Experience {
		if r.Experience[i].Description == nil {
			r.Experience[i].Description = Description{}
		}
	}
	if r.Skills == nil {
		r.Skills = []Skill{}
	}
	if r.Projects == nil {
		r.Projects = []Project{}
	}
	for i := range r.Projects {
		if r.Projects[i].Technologies == nil {
			r.Projects[i].Technologies = []string{}
		}
	}
	if r.Certifications == nil {
		r.Certifications = []Certification{}
	}
	if r.Languages == nil {
		r.Languages = []string{}
	}
	if r.Interests == nil {
		r.Interests = []string{}
	}
}

// SkillNames returns the names of all listed skills in order.
func (r ParsedResume) SkillNames() []string {
	names := make([]string, 0, len(r.Skills))
	for _, s := range r.Skills {
		names = append(names, s.Name)
	}
	return names
}

// ExperienceText joins every experience statement into one block.
func (r ParsedResume) ExperienceText() string {
	parts := make([]string, 0, len(r.Experience))
	for _, exp := range r.Experience {
		parts = append(parts, exp.Description.Text())
	}
	return strings.Join(parts, " ")
}

// ResumeSection names a section a resume may contain
type ResumeSection string

// Known resume sections
const (
	SectionContact        ResumeSection = "contact"
	SectionSummary        ResumeSection = "summary"
	SectionEducation      ResumeSection = "education"
	SectionExperience     ResumeSection = "experience"
	SectionSkills         ResumeSection = "skills"
	SectionProjects       ResumeSection = "projects"
	SectionCertifications ResumeSection = "certifications"
	SectionLanguages      ResumeSection = "languages"
	SectionInterests      ResumeSection = "interests"
	SectionReferences     ResumeSection = "references"
	SectionCustom         ResumeSection = "custom"
)
