package recommend

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/jonathan/ats-optimizer/internal/textutil"
	"github.com/jonathan/ats-optimizer/internal/types"
)

// Section key used for layout advice
const sectionFormat = "format"

var endYearPattern = regexp.MustCompile(`\b(\d{4})\b`)

func (e *Engine) summaryRules(resume types.ParsedResume, job types.JobRequirements, score types.ScoreResult) []types.Recommendation {
	if satisfied(score, types.MatchSectionSummary) {
		return nil
	}

	summary := strings.TrimSpace(resume.Summary)
	if summary == "" {
		title := job.Title
		if title == "" {
			title = "position"
		}
		return []types.Recommendation{{
			Section:                  types.MatchSectionSummary,
			Recommendation:           "Add a professional summary that highlights your qualifications for the role.",
			Impact:                   0.8,
			ImplementationDifficulty: types.DifficultyMedium,
			AfterExample: strPtr(fmt.Sprintf(
				"Experienced professional with expertise in %s seeking a %s role where I can leverage my skills in %s to drive results.",
				strings.Join(window(job.RequiredSkills, 0, 3), ", "),
				title,
				strings.Join(window(job.RequiredSkills, 3, 6), ", "),
			)),
		}}
	}

	var recs []types.Recommendation
	if missing := missingCriticalKeywords(score); len(missing) > 0 {
		recs = append(recs, types.Recommendation{
			Section:                  types.MatchSectionSummary,
			Recommendation:           fmt.Sprintf("Include key job-specific terms in your summary: %s.", strings.Join(window(missing, 0, maxListedTerms), ", ")),
			Impact:                   0.6,
			ImplementationDifficulty: types.DifficultyEasy,
			BeforeExample:            strPtr(preview(summary)),
			AfterExample: strPtr(fmt.Sprintf(
				"Experienced professional with expertise in %s seeking to leverage skills in %s to drive results.",
				strings.Join(window(missing, 0, 3), ", "),
				strings.Join(window(missing, 3, 5), ", "),
			)),
		})
	}
	if textutil.WordCount(summary) < summaryMinWords {
		recs = append(recs, types.Recommendation{
			Section:                  types.MatchSectionSummary,
			Recommendation:           "Expand your summary to better highlight your qualifications and include more relevant keywords.",
			Impact:                   0.5,
			ImplementationDifficulty: types.DifficultyMedium,
			BeforeExample:            strPtr(summary),
		})
	}
	return recs
}

func (e *Engine) experienceRules(resume types.ParsedResume, score types.ScoreResult) []types.Recommendation {
	if satisfied(score, types.MatchSectionExperience) {
		return nil
	}
	if len(resume.Experience) == 0 {
		return []types.Recommendation{{
			Section:                  types.MatchSectionExperience,
			Recommendation:           "Add detailed work experience with bullet points highlighting achievements and responsibilities.",
			Impact:                   0.9,
			ImplementationDifficulty: types.DifficultyHard,
		}}
	}

	var recs []types.Recommendation
	if !e.usesStrongVerbs(resume.Experience) {
		recs = append(recs, types.Recommendation{
			Section:                  types.MatchSectionExperience,
			Recommendation:           "Use strong action verbs to start your bullet points (e.g., Achieved, Implemented, Developed, Led).",
			Impact:                   0.7,
			ImplementationDifficulty: types.DifficultyEasy,
			BeforeExample:            strPtr("Responsible for project management and team coordination."),
			AfterExample:             strPtr("Led cross-functional teams to deliver projects 15% ahead of schedule and under budget."),
		})
	}
	if !quantified(resume.Experience) {
		recs = append(recs, types.Recommendation{
			Section:                  types.MatchSectionExperience,
			Recommendation:           "Add quantifiable achievements with metrics and percentages to demonstrate impact.",
			Impact:                   0.8,
			ImplementationDifficulty: types.DifficultyMedium,
			BeforeExample:            strPtr("Improved team productivity and reduced costs."),
			AfterExample:             strPtr("Improved team productivity by 30% and reduced operational costs by $50,000 annually."),
		})
	}
	if missing := missingCriticalKeywords(score); len(missing) > 0 {
		recs = append(recs, types.Recommendation{
			Section:                  types.MatchSectionExperience,
			Recommendation:           fmt.Sprintf("Incorporate these key job-specific terms in your experience descriptions: %s.", strings.Join(window(missing, 0, maxListedTerms), ", ")),
			Impact:                   0.7,
			ImplementationDifficulty: types.DifficultyMedium,
		})
	}
	return recs
}

func (e *Engine) educationRules(resume types.ParsedResume, score types.ScoreResult) []types.Recommendation {
	if satisfied(score, types.MatchSectionEducation) {
		return nil
	}
	if len(resume.Education) == 0 {
		return []types.Recommendation{{
			Section:                  types.MatchSectionEducation,
			Recommendation:           "Add your educational background, including degrees, institutions, and graduation dates.",
			Impact:                   0.6,
			ImplementationDifficulty: types.DifficultyEasy,
		}}
	}

	var recs []types.Recommendation
	if !score.EducationMatch.LevelMatch {
		recs = append(recs, types.Recommendation{
			Section:                  types.MatchSectionEducation,
			Recommendation:           "Highlight your highest level of education more prominently to meet job requirements.",
			Impact:                   0.5,
			ImplementationDifficulty: types.DifficultyEasy,
		})
	}
	if !score.EducationMatch.FieldMatch {
		recs = append(recs, types.Recommendation{
			Section:                  types.MatchSectionEducation,
			Recommendation:           "Emphasize coursework or projects related to the required field of study.",
			Impact:                   0.4,
			ImplementationDifficulty: types.DifficultyMedium,
		})
	}
	if !hasGPA(resume.Education) && recentGraduate(resume.Education) {
		recs = append(recs, types.Recommendation{
			Section:                  types.MatchSectionEducation,
			Recommendation:           "Include your GPA if it's 3.0 or higher and you've graduated within the last 5 years.",
			Impact:                   0.3,
			ImplementationDifficulty: types.DifficultyEasy,
		})
	}
	return recs
}

func (e *Engine) skillsRules(resume types.ParsedResume, job types.JobRequirements, score types.ScoreResult) []types.Recommendation {
	if satisfied(score, types.MatchSectionSkills) {
		return nil
	}
	if len(resume.Skills) == 0 {
		return []types.Recommendation{{
			Section:                  types.MatchSectionSkills,
			Recommendation:           "Add a dedicated skills section that lists your technical and soft skills.",
			Impact:                   0.8,
			ImplementationDifficulty: types.DifficultyEasy,
		}}
	}

	var recs []types.Recommendation
	missing := score.SectionScores[types.MatchSectionSkills].KeywordsMissing
	if len(missing) > 0 {
		if mentioned := mentionedElsewhere(resume, missing); len(mentioned) > 0 {
			recs = append(recs, types.Recommendation{
				Section:                  types.MatchSectionSkills,
				Recommendation:           fmt.Sprintf("Add these key skills that are mentioned in your resume but not in your skills section: %s.", strings.Join(window(mentioned, 0, maxListedTerms), ", ")),
				Impact:                   0.7,
				ImplementationDifficulty: types.DifficultyEasy,
			})
		}

		var required []string
		for _, s := range missing {
			if containsExact(job.RequiredSkills, s) {
				required = append(required, s)
			}
		}
		if len(required) > 0 {
			recs = append(recs, types.Recommendation{
				Section:                  types.MatchSectionSkills,
				Recommendation:           fmt.Sprintf("If you have these skills, add them to your skills section as they are required for the job: %s.", strings.Join(window(required, 0, maxListedTerms), ", ")),
				Impact:                   0.8,
				ImplementationDifficulty: types.DifficultyMedium,
			})
		}
	}

	if listedAsProse(resume.Skills) {
		recs = append(recs, types.Recommendation{
			Section:                  types.MatchSectionSkills,
			Recommendation:           "Format your skills section as a clear, scannable list rather than paragraph format.",
			Impact:                   0.5,
			ImplementationDifficulty: types.DifficultyEasy,
			BeforeExample:            strPtr("Proficient in Python, Java, and SQL with experience in data analysis and project management."),
			AfterExample:             strPtr("Technical Skills: Python, Java, SQL\nData Skills: Data Analysis, Visualization\nOther: Project Management, Agile Methodology"),
		})
	}
	return recs
}

func formatRules(score types.ScoreResult) []types.Recommendation {
	if score.FormatCompatibilityScore >= formatSatisfiedScore {
		return nil
	}
	return []types.Recommendation{
		{
			Section:                  sectionFormat,
			Recommendation:           "Use a clean, ATS-friendly resume template with standard section headings.",
			Impact:                   0.6,
			ImplementationDifficulty: types.DifficultyMedium,
		},
		{
			Section:                  sectionFormat,
			Recommendation:           "Ensure your contact information is at the top of the resume and includes phone, email, and LinkedIn.",
			Impact:                   0.4,
			ImplementationDifficulty: types.DifficultyEasy,
		},
		{
			Section:                  sectionFormat,
			Recommendation:           "Use standard section headings (e.g., 'Experience' instead of 'Career Journey').",
			Impact:                   0.5,
			ImplementationDifficulty: types.DifficultyEasy,
			BeforeExample:            strPtr("Career Journey"),
			AfterExample:             strPtr("Professional Experience"),
		},
		{
			Section:                  sectionFormat,
			Recommendation:           "Submit your resume as a .docx or .pdf file to ensure compatibility with ATS systems.",
			Impact:                   0.3,
			ImplementationDifficulty: types.DifficultyEasy,
		},
	}
}

// usesStrongVerbs reports whether any description statement contains a strong action verb
func (e *Engine) usesStrongVerbs(entries []types.ExperienceEntry) bool {
	for _, exp := range entries {
		for _, stmt := range exp.Description {
			lower := strings.ToLower(stmt)
			for _, verb := range e.dict.StrongActionVerbs {
				if strings.Contains(lower, strings.ToLower(verb)) {
					return true
				}
			}
		}
	}
	return false
}

func quantified(entries []types.ExperienceEntry) bool {
	for _, exp := range entries {
		for _, stmt := range exp.Description {
			if strings.IndexFunc(stmt, unicode.IsDigit) >= 0 {
				return true
			}
		}
	}
	return false
}

func hasGPA(entries []types.EducationEntry) bool {
	for _, edu := range entries {
		if edu.GPA != nil && *edu.GPA > 0 {
			return true
		}
	}
	return false
}

// recentGraduate reports whether any entry is ongoing or ended in or after 2018
func recentGraduate(entries []types.EducationEntry) bool {
	for _, edu := range entries {
		if edu.IsOngoing() {
			return true
		}
		m := endYearPattern.FindStringSubmatch(edu.EndDate)
		if m == nil {
			continue
		}
		if year, err := strconv.Atoi(m[1]); err == nil && year >= recentGradYear {
			return true
		}
	}
	return false
}

// mentionedElsewhere returns the skills that appear anywhere in the serialized resume
func mentionedElsewhere(resume types.ParsedResume, skills []string) []string {
	data, err := json.Marshal(resume)
	if err != nil {
		return nil
	}
	serialized := strings.ToLower(string(data))

	var out []string
	for _, s := range skills {
		if s != "" && strings.Contains(serialized, strings.ToLower(s)) {
			out = append(out, s)
		}
	}
	return out
}

// listedAsProse reports whether any skill entry reads like a sentence
func listedAsProse(skills []types.Skill) bool {
	for _, s := range skills {
		name := strings.TrimSpace(s.Name)
		if textutil.WordCount(name) > proseSkillWords || strings.HasSuffix(name, ".") {
			return true
		}
	}
	return false
}

func containsExact(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// preview truncates text to summaryPreview runes, marking the cut with "..."
func preview(text string) string {
	runes := []rune(text)
	if len(runes) <= summaryPreview {
		return text
	}
	return string(runes[:summaryPreview]) + "..."
}
