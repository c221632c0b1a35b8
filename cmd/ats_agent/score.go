package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/ats-optimizer/internal/export"
	"github.com/jonathan/ats-optimizer/internal/logger"
	"github.com/jonathan/ats-optimizer/internal/pipeline"
	embedded "github.com/jonathan/ats-optimizer/schemas"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Compare a resume against a job description",
	Long: `Matches resume skills, experience and education against the job's
requirements and prints the per-dimension breakdown.`,
	RunE: runMatch,
}

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a resume against a job description",
	Long: `Runs the full pipeline and prints the ATS score: content match,
format compatibility and section evaluation. Use --xlsx to also save a
spreadsheet report with sections, keywords and recommendations.`,
	RunE: runScore,
}

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Suggest resume improvements for a job description",
	Long: `Runs the full pipeline and prints prioritized recommendations for each
resume section along with the estimated potential score increase.`,
	RunE: runRecommend,
}

var (
	pairResume string
	pairJob    string
	pairOut    string
	scoreXLSX  string
)

func init() {
	for _, c := range []*cobra.Command{matchCmd, scoreCmd, recommendCmd} {
		c.Flags().StringVarP(&pairResume, "resume", "r", "", "Path to the resume file (required)")
		c.Flags().StringVarP(&pairJob, "job", "j", "", "Path to the job description file (required)")
		c.Flags().StringVarP(&pairOut, "out", "o", "", "Path to write JSON output (default stdout)")
		_ = c.MarkFlagRequired("resume")
		_ = c.MarkFlagRequired("job")
		rootCmd.AddCommand(c)
	}
	scoreCmd.Flags().StringVar(&scoreXLSX, "xlsx", "", "Also save an Excel report to this path")
}

// runPair reads both documents and runs the pipeline on them
func runPair(cmd *cobra.Command) (*pipeline.Report, error) {
	ctx := cmd.Context()
	resumeText, err := readDocument(ctx, pairResume, "resume")
	if err != nil {
		return nil, err
	}
	jobText, err := readDocument(ctx, pairJob, "job")
	if err != nil {
		return nil, err
	}

	analyzer, release, err := newAnalyzer(ctx, settings, nil)
	if err != nil {
		return nil, err
	}
	defer release()

	return analyzer.Run(ctx, pipeline.RunOptions{
		ResumeText: resumeText,
		JobText:    jobText,
		OnProgress: func(e pipeline.ProgressEvent) {
			logger.Debug().Str("run_id", e.RunID).Str("step", e.Step).Msg(e.Message)
		},
	})
}

func runMatch(cmd *cobra.Command, _ []string) error {
	report, err := runPair(cmd)
	if err != nil {
		return err
	}
	if p, ok := summaryPrinter(cmd); ok {
		p.PrintMatch(&report.Match)
	}
	return writeResult(cmd.OutOrStdout(), pairOut, "", report.Match)
}

func runScore(cmd *cobra.Command, _ []string) error {
	report, err := runPair(cmd)
	if err != nil {
		return err
	}
	if p, ok := summaryPrinter(cmd); ok {
		p.PrintScore(&report.Score)
	}

	if scoreXLSX != "" {
		path, err := export.SaveScoreReport(scoreXLSX, *report)
		if err != nil {
			return err
		}
		logger.Info().Str("path", path).Msg("score report saved")
	}
	return writeResult(cmd.OutOrStdout(), pairOut, embedded.ScoreResult, report.Score)
}

func runRecommend(cmd *cobra.Command, _ []string) error {
	report, err := runPair(cmd)
	if err != nil {
		return err
	}
	if p, ok := summaryPrinter(cmd); ok {
		p.PrintRecommendations(&report.Recommendations)
	}
	return writeResult(cmd.OutOrStdout(), pairOut, embedded.RecommendationSet, report.Recommendations)
}
