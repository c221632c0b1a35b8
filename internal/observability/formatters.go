// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/ats-optimizer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to a terminal; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to limit runes, ending it with "..." when cut
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}

// writeList writes up to limit bullet items under a heading, with a count of the rest.
func writeList(sb *strings.Builder, heading string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(heading + ":\n")
	for _, item := range items[:min(len(items), limit)] {
		fmt.Fprintf(sb, "  • %s\n", item)
	}
	if len(items) > limit {
		fmt.Fprintf(sb, "  ... and %d more\n", len(items)-limit)
	}
	sb.WriteString("\n")
}

// PrintParsedResume outputs the contact block and section counts of a parsed resume.
func (p *Printer) PrintParsedResume(resume *types.ParsedResume) {
	if resume == nil {
		return
	}

	var sb strings.Builder
	c := resume.ContactInfo
	fmt.Fprintf(&sb, "Name:     %s\n", orDash(c.Name))
	fmt.Fprintf(&sb, "Email:    %s\n", orDash(c.Email))
	fmt.Fprintf(&sb, "Phone:    %s\n", orDash(c.Phone))
	sb.WriteString("\n")

	fmt.Fprintf(&sb, "Summary:        %d words\n", len(strings.Fields(resume.Summary)))
	fmt.Fprintf(&sb, "Experience:     %d entries\n", len(resume.Experience))
	fmt.Fprintf(&sb, "Education:      %d entries\n", len(resume.Education))
	fmt.Fprintf(&sb, "Skills:         %d\n", len(resume.Skills))
	fmt.Fprintf(&sb, "Certifications: %d\n", len(resume.Certifications))
	sb.WriteString("\n")

	positions := make([]string, 0, len(resume.Experience))
	for _, e := range resume.Experience {
		label := e.Position
		if e.Company != "" {
			label += " @ " + e.Company
		}
		positions = append(positions, strings.TrimSpace(label))
	}
	writeList(&sb, "Positions", positions, maxItemsToShow)
	writeList(&sb, "Skills", resume.SkillNames(), maxItemsToShow)

	p.printBox("PARSED RESUME", strings.TrimSuffix(sb.String(), "\n\n"))
}

// PrintJobRequirements outputs a human-readable summary of the analyzed job.
func (p *Printer) PrintJobRequirements(job *types.JobRequirements) {
	if job == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Title:      %s\n", orDash(job.Title))
	fmt.Fprintf(&sb, "Company:    %s\n", orDash(job.Company))
	fmt.Fprintf(&sb, "Location:   %s\n", orDash(job.Location))
	if job.Experience.Years > 0 || job.Experience.Level != "" {
		fmt.Fprintf(&sb, "Experience: %d+ years (%s)\n", job.Experience.Years, orDash(string(job.Experience.Level)))
	}
	if job.Education.Level != "" {
		fmt.Fprintf(&sb, "Education:  %s\n", job.Education.Level)
	}
	sb.WriteString("\n")

	writeList(&sb, "Required Skills", job.RequiredSkills, maxItemsToShow)
	writeList(&sb, "Preferred Skills", job.PreferredSkills, 3)

	p.printBox("JOB REQUIREMENTS", strings.TrimSuffix(sb.String(), "\n\n"))
}

// PrintKeywords outputs the top keywords and skill categories of a profile.
func (p *Printer) PrintKeywords(profile *types.KeywordProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	writeList(&sb, "Top Keywords", profile.TopKeywords, maxItemsToShow)
	writeList(&sb, "Technical Skills", profile.TechnicalSkills, maxItemsToShow)
	writeList(&sb, "Soft Skills", profile.SoftSkills, 3)
	if len(profile.KeywordDensity) > 0 {
		sb.WriteString("Density:\n")
		for _, d := range profile.KeywordDensity[:min(len(profile.KeywordDensity), maxItemsToShow)] {
			fmt.Fprintf(&sb, "  %-20s %5.1f%%\n", d.Keyword, d.Density*100)
		}
	}

	content := strings.TrimSuffix(strings.TrimSuffix(sb.String(), "\n"), "\n")
	if content == "" {
		content = "No keywords found"
	}
	p.printBox("KEYWORDS", content)
}

// PrintMatch outputs the component scores and skill coverage of a match.
func (p *Printer) PrintMatch(match *types.MatchResult) {
	if match == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Overall match:  %5.1f\n", match.OverallMatchScore)
	fmt.Fprintf(&sb, "  Keywords:     %5.1f\n", match.KeywordScore)
	fmt.Fprintf(&sb, "  Skills:       %5.1f\n", match.SkillScore)
	fmt.Fprintf(&sb, "  Experience:   %5.1f\n", match.ExperienceScore)
	fmt.Fprintf(&sb, "  Education:    %5.1f\n", match.EducationScore)
	sb.WriteString("\n")

	writeList(&sb, "Matched Skills", match.SkillMatches.Matched, maxItemsToShow)
	writeList(&sb, "Missing Skills", match.SkillMatches.Missing, maxItemsToShow)

	p.printBox("MATCH RESULT", strings.TrimSuffix(sb.String(), "\n\n"))
}

// PrintScore outputs the ATS score with a bar per section.
func (p *Printer) PrintScore(score *types.ScoreResult) {
	if score == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "ATS SCORE: %.1f / %.0f\n\n", score.OverallScore, types.MaxOverallScore)
	fmt.Fprintf(&sb, "Content match:   %5.1f / %.0f\n", score.ContentMatchScore, types.MaxContentMatchScore)
	fmt.Fprintf(&sb, "Format:          %5.1f / %.0f\n", score.FormatCompatibilityScore, types.MaxFormatScore)
	fmt.Fprintf(&sb, "Section quality: %5.1f / %.0f\n", score.SectionEvaluationScore, types.MaxSectionEvalScore)

	sections := []string{types.MatchSectionSummary, types.MatchSectionExperience, types.MatchSectionEducation, types.MatchSectionSkills}
	if len(score.SectionScores) > 0 {
		sb.WriteString("\n")
	}
	for _, name := range sections {
		sec, ok := score.Section(name)
		if !ok {
			continue
		}
		fmt.Fprintf(&sb, "%-11s %s %4.1f/%-4.0f\n", name, bar(sec.Score, sec.MaxScore, 20), sec.Score, sec.MaxScore)
	}

	p.printBox("ATS SCORE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRecommendations outputs the highest impact recommendations.
func (p *Printer) PrintRecommendations(set *types.RecommendationSet) {
	if set == nil {
		return
	}
	if len(set.Recommendations) == 0 {
		p.printBox("RECOMMENDATIONS", "✅ No changes recommended")
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d recommendations, up to +%.1f points\n\n", len(set.Recommendations), set.PotentialScoreIncrease)

	count := min(len(set.Recommendations), maxItemsToShow)
	for i, rec := range set.Recommendations[:count] {
		fmt.Fprintf(&sb, "[%s] %s\n", rec.Section, rec.ImplementationDifficulty)
		for _, line := range wrap(rec.Recommendation, boxWidth-6) {
			fmt.Fprintf(&sb, "  %s\n", line)
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}
	if len(set.Recommendations) > maxItemsToShow {
		fmt.Fprintf(&sb, "\n... and %d more", len(set.Recommendations)-maxItemsToShow)
	}

	p.printBox("RECOMMENDATIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// RankingRow is one resume in a batch ranking
type RankingRow struct {
	Name  string
	Score float64
	Notes string
	Err   error
}

// PrintRanking outputs batch results in the given order; failed rows are listed last.
func (p *Printer) PrintRanking(jobTitle string, rows []RankingRow) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Job: %s\n\n", orDash(jobTitle))

	rank := 0
	var failed []RankingRow
	for _, row := range rows {
		if row.Err != nil {
			failed = append(failed, row)
			continue
		}
		rank++
		fmt.Fprintf(&sb, "%2d. %-38s %6.1f\n", rank, truncate(row.Name, 38), row.Score)
		for _, line := range wrap(row.Notes, boxWidth-10) {
			fmt.Fprintf(&sb, "    %s\n", line)
		}
	}
	for _, row := range failed {
		fmt.Fprintf(&sb, "  ✗ %s: %v\n", row.Name, row.Err)
	}

	p.printBox("RANKING", strings.TrimSuffix(sb.String(), "\n"))
}

// bar renders value/total as a fixed-width bar
func bar(value, total float64, width int) string {
	filled := 0
	if total > 0 {
		filled = int(value / total * float64(width))
	}
	filled = min(max(filled, 0), width)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// wrap splits text into lines of at most width runes on word boundaries
func wrap(text string, width int) []string {
	var lines []string
	var line strings.Builder
	for _, word := range strings.Fields(text) {
		if line.Len() > 0 && len([]rune(line.String()))+1+len([]rune(word)) > width {
			lines = append(lines, line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteByte(' ')
		}
		line.WriteString(word)
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return lines
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
