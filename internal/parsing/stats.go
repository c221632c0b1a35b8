package parsing

import (
	"github.com/jonathan/ats-optimizer/internal/textutil"
	"github.com/jonathan/ats-optimizer/internal/types"
)

// SectionsFound lists the sections that hold content, in canonical order.
func SectionsFound(r types.ParsedResume) []types.ResumeSection {
	found := make([]types.ResumeSection, 0, 10)
	add := func(ok bool, s types.ResumeSection) {
		if ok {
			found = append(found, s)
		}
	}
	add(!r.ContactInfo.IsEmpty(), types.SectionContact)
	add(r.Summary != "", types.SectionSummary)
	add(len(r.Education) > 0, types.SectionEducation)
	add(len(r.Experience) > 0, types.SectionExperience)
	add(len(r.Skills) > 0, types.SectionSkills)
	add(len(r.Projects) > 0, types.SectionProjects)
	add(len(r.Certifications) > 0, types.SectionCertifications)
	add(len(r.Languages) > 0, types.SectionLanguages)
	add(len(r.Interests) > 0, types.SectionInterests)
	add(r.References != "", types.SectionReferences)
	return found
}

// WordCount approximates the resume length: words in the summary and in
// every description, plus one per listed skill.
func WordCount(r types.ParsedResume) int {
	n := textutil.WordCount(r.Summary)
	for _, e := range r.Experience {
		n += textutil.WordCount(e.Description.Text())
	}
	for _, e := range r.Education {
		n += textutil.WordCount(e.Description)
	}
	for _, p := range r.Projects {
		n += textutil.WordCount(p.Description)
	}
	return n + len(r.Skills)
}
