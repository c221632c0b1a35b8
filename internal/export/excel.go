// Package export writes analysis reports as Excel workbooks.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jonathan/ats-optimizer/internal/pipeline"
	"github.com/jonathan/ats-optimizer/internal/types"
)

// Sheet names
const (
	SheetSummary         = "Summary"
	SheetSections        = "Sections"
	SheetKeywords        = "Keywords"
	SheetRecommendations = "Recommendations"
	SheetRanking         = "Ranking"
)

// Score bands used for row colouring
const (
	strongScore = 80.0
	fairScore   = 60.0
)

var sectionOrder = []string{
	types.MatchSectionSummary,
	types.MatchSectionExperience,
	types.MatchSectionEducation,
	types.MatchSectionSkills,
}

var thinBorder = []excelize.Border{
	{Type: "left", Color: "000000", Style: 1},
	{Type: "right", Color: "000000", Style: 1},
	{Type: "top", Color: "000000", Style: 1},
	{Type: "bottom", Color: "000000", Style: 1},
}

// styles holds the style IDs shared by every sheet of a workbook
type styles struct {
	title  int
	header int
	label  int
	strong int
	fair   int
	weak   int
}

func newStyles(f *excelize.File) (*styles, error) {
	var s styles
	var err error
	if s.title, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	}); err != nil {
		return nil, err
	}
	if s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorder,
	}); err != nil {
		return nil, err
	}
	if s.label, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err != nil {
		return nil, err
	}
	for _, band := range []struct {
		id    *int
		color string
	}{{&s.strong, "C6EFCE"}, {&s.fair, "FFEB9C"}, {&s.weak, "FFC7CE"}} {
		if *band.id, err = f.NewStyle(&excelize.Style{
			Fill:   excelize.Fill{Type: "pattern", Color: []string{band.color}, Pattern: 1},
			Border: thinBorder,
		}); err != nil {
			return nil, err
		}
	}
	return &s, nil
}

// band returns the row style for a percentage score
func (s *styles) band(percent float64) int {
	switch {
	case percent >= strongScore:
		return s.strong
	case percent >= fairScore:
		return s.fair
	default:
		return s.weak
	}
}

// WriteScoreReport writes a workbook describing one analysis run to w.
func WriteScoreReport(w io.Writer, report pipeline.Report) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	st, err := newStyles(f)
	if err != nil {
		return fmt.Errorf("failed to create styles: %w", err)
	}

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return err
	}
	for _, name := range []string{SheetSections, SheetKeywords, SheetRecommendations} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
	}

	if err := writeSummary(f, st, report); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}
	if err := writeSections(f, st, report.Score); err != nil {
		return fmt.Errorf("failed to create sections sheet: %w", err)
	}
	if err := writeKeywords(f, st, report.Score.KeywordMatches); err != nil {
		return fmt.Errorf("failed to create keywords sheet: %w", err)
	}
	if err := writeRecommendations(f, st, report.Recommendations); err != nil {
		return fmt.Errorf("failed to create recommendations sheet: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// SaveScoreReport writes the workbook for report to path, adding the .xlsx
// extension when missing. It returns the path written.
func SaveScoreReport(path string, report pipeline.Report) (string, error) {
	return save(path, func(w io.Writer) error { return WriteScoreReport(w, report) })
}

// WriteRanking writes a single-sheet workbook ranking several resumes
// against the same job, best score first.
func WriteRanking(w io.Writer, reports []pipeline.Report) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	st, err := newStyles(f)
	if err != nil {
		return fmt.Errorf("failed to create styles: %w", err)
	}
	if err := f.SetSheetName("Sheet1", SheetRanking); err != nil {
		return err
	}

	ranked := make([]pipeline.Report, len(reports))
	copy(ranked, reports)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score.OverallScore > ranked[j].Score.OverallScore
	})

	headers := []string{"Rank", "Candidate", "Job", "Overall", "Content", "Format", "Sections", "Potential Increase"}
	if err := writeHeader(f, st, SheetRanking, headers, []float64{8, 28, 30, 10, 10, 10, 10, 18}); err != nil {
		return err
	}
	for i, r := range ranked {
		row := i + 2
		name := r.Resume.ContactInfo.Name
		if name == "" {
			name = r.ResumeID
		}
		values := []any{
			i + 1,
			name,
			r.Job.Title,
			round2(r.Score.OverallScore),
			round2(r.Score.ContentMatchScore),
			round2(r.Score.FormatCompatibilityScore),
			round2(r.Score.SectionEvaluationScore),
			round2(r.Recommendations.PotentialScoreIncrease),
		}
		if err := setRow(f, SheetRanking, row, values, st.band(r.Score.OverallScore)); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// SaveRanking writes the ranking workbook to path. It returns the path written.
func SaveRanking(path string, reports []pipeline.Report) (string, error) {
	return save(path, func(w io.Writer) error { return WriteRanking(w, reports) })
}

func save(path string, write func(io.Writer) error) (string, error) {
	if !strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		path += ".xlsx"
	}
	path = filepath.Clean(path)

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(file); err != nil {
		_ = file.Close()
		return "", err
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", path, err)
	}
	return path, nil
}

func writeSummary(f *excelize.File, st *styles, report pipeline.Report) error {
	sheet := SheetSummary
	if err := f.SetColWidth(sheet, "A", "A", 30); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "B", "B", 50); err != nil {
		return err
	}

	if err := f.SetCellValue(sheet, "A1", "ATS Score Report"); err != nil {
		return err
	}
	if err := f.MergeCell(sheet, "A1", "B1"); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", "B1", st.title); err != nil {
		return err
	}

	score := report.Score
	rows := [][2]any{
		{"Candidate:", report.Resume.ContactInfo.Name},
		{"Job Title:", report.Job.Title},
		{"Company:", report.Job.Company},
		{"Generated:", report.Timestamp},
		{"Overall Score:", round2(score.OverallScore)},
		{"Content Match (max 40):", round2(score.ContentMatchScore)},
		{"Format Compatibility (max 25):", round2(score.FormatCompatibilityScore)},
		{"Section Evaluation (max 35):", round2(score.SectionEvaluationScore)},
		{"Matched Skills:", strings.Join(report.Match.SkillMatches.Matched, ", ")},
		{"Missing Skills:", strings.Join(report.Match.SkillMatches.Missing, ", ")},
		{"Potential Increase:", round2(report.Recommendations.PotentialScoreIncrease)},
	}
	for i, r := range rows {
		row := i + 3
		label, _ := excelize.CoordinatesToCellName(1, row)
		value, _ := excelize.CoordinatesToCellName(2, row)
		if err := f.SetCellValue(sheet, label, r[0]); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, label, label, st.label); err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, value, r[1]); err != nil {
			return err
		}
	}

	overall, _ := excelize.CoordinatesToCellName(2, 7)
	return f.SetCellStyle(sheet, overall, overall, st.band(score.OverallScore))
}

func writeSections(f *excelize.File, st *styles, score types.ScoreResult) error {
	sheet := SheetSections
	headers := []string{"Section", "Score", "Max Score", "Feedback", "Keywords Found", "Keywords Missing"}
	if err := writeHeader(f, st, sheet, headers, []float64{15, 10, 10, 70, 35, 35}); err != nil {
		return err
	}

	row := 2
	for _, name := range orderedSections(score.SectionScores) {
		sec := score.SectionScores[name]
		percent := 0.0
		if sec.MaxScore > 0 {
			percent = sec.Score / sec.MaxScore * 100
		}
		values := []any{
			name,
			round2(sec.Score),
			round2(sec.MaxScore),
			sec.Feedback,
			strings.Join(sec.KeywordsFound, ", "),
			strings.Join(sec.KeywordsMissing, ", "),
		}
		if err := setRow(f, sheet, row, values, st.band(percent)); err != nil {
			return err
		}
		row++
	}
	return nil
}

func writeKeywords(f *excelize.File, st *styles, matches []types.KeywordMatchRecord) error {
	sheet := SheetKeywords
	headers := []string{"Keyword", "Found", "Importance", "Section", "Context"}
	if err := writeHeader(f, st, sheet, headers, []float64{25, 8, 12, 15, 80}); err != nil {
		return err
	}

	for i, km := range matches {
		found, style := "No", st.weak
		if km.Found {
			found, style = "Yes", st.strong
		}
		values := []any{km.Keyword, found, km.Importance, km.Section, km.Context}
		if err := setRow(f, sheet, i+2, values, style); err != nil {
			return err
		}
	}
	return nil
}

func writeRecommendations(f *excelize.File, st *styles, set types.RecommendationSet) error {
	sheet := SheetRecommendations
	headers := []string{"Section", "Recommendation", "Impact", "Difficulty", "Before", "After"}
	if err := writeHeader(f, st, sheet, headers, []float64{12, 70, 8, 12, 45, 45}); err != nil {
		return err
	}

	for i, rec := range set.Recommendations {
		values := []any{
			rec.Section,
			rec.Recommendation,
			rec.Impact,
			string(rec.ImplementationDifficulty),
			deref(rec.BeforeExample),
			deref(rec.AfterExample),
		}
		if err := setRow(f, sheet, i+2, values, st.band(100-rec.Impact*100)); err != nil {
			return err
		}
	}
	return nil
}

func writeHeader(f *excelize.File, st *styles, sheet string, headers []string, widths []float64) error {
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, st.header); err != nil {
			return err
		}
		if col < len(widths) {
			name, _ := excelize.ColumnNumberToName(col + 1)
			if err := f.SetColWidth(sheet, name, name, widths[col]); err != nil {
				return err
			}
		}
	}
	return f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
}

func setRow(f *excelize.File, sheet string, row int, values []any, style int) error {
	first, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, first, &values); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(values), row)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, first, last, style)
}

// orderedSections lists the known sections first, then any others alphabetically
func orderedSections(scores map[string]types.SectionScore) []string {
	out := make([]string, 0, len(scores))
	known := make(map[string]bool, len(sectionOrder))
	for _, name := range sectionOrder {
		known[name] = true
		if _, ok := scores[name]; ok {
			out = append(out, name)
		}
	}
	var extra []string
	for name := range scores {
		if !known[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return append(out, extra...)
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
