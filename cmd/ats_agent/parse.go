package main

import (
	"github.com/spf13/cobra"

	embedded "github.com/jonathan/ats-optimizer/schemas"
)

var parseResumeCmd = &cobra.Command{
	Use:   "parse-resume",
	Short: "Parse a resume into structured sections",
	Long: `Extracts the text of a resume (txt, md, html, pdf or docx) and parses it
into contact information, summary, experience, education, skills and
certifications. Output is validated against the parsed_resume schema.`,
	RunE: runParseResume,
}

var analyzeJobCmd = &cobra.Command{
	Use:   "analyze-job",
	Short: "Extract requirements from a job description",
	Long: `Reads a job description and extracts its title, required and preferred
skills, experience and education requirements and responsibilities.
Output is validated against the job_requirements schema.`,
	RunE: runAnalyzeJob,
}

var (
	parseResumeIn  string
	parseResumeOut string
	analyzeJobIn   string
	analyzeJobOut  string
)

func init() {
	parseResumeCmd.Flags().StringVarP(&parseResumeIn, "in", "i", "", "Path to the resume file (required)")
	parseResumeCmd.Flags().StringVarP(&parseResumeOut, "out", "o", "", "Path to write JSON output (default stdout)")
	_ = parseResumeCmd.MarkFlagRequired("in")

	analyzeJobCmd.Flags().StringVarP(&analyzeJobIn, "in", "i", "", "Path to the job description file (required)")
	analyzeJobCmd.Flags().StringVarP(&analyzeJobOut, "out", "o", "", "Path to write JSON output (default stdout)")
	_ = analyzeJobCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(parseResumeCmd)
	rootCmd.AddCommand(analyzeJobCmd)
}

func runParseResume(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	text, err := readDocument(ctx, parseResumeIn, "in")
	if err != nil {
		return err
	}

	analyzer, release, err := newAnalyzer(ctx, settings, nil)
	if err != nil {
		return err
	}
	defer release()

	resume := analyzer.ParseResume(text)
	if p, ok := summaryPrinter(cmd); ok {
		p.PrintParsedResume(&resume)
	}
	return writeResult(cmd.OutOrStdout(), parseResumeOut, embedded.ParsedResume, resume)
}

func runAnalyzeJob(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	text, err := readDocument(ctx, analyzeJobIn, "in")
	if err != nil {
		return err
	}

	analyzer, release, err := newAnalyzer(ctx, settings, nil)
	if err != nil {
		return err
	}
	defer release()

	job := analyzer.AnalyzeJob(text)
	if p, ok := summaryPrinter(cmd); ok {
		p.PrintJobRequirements(&job)
	}
	return writeResult(cmd.OutOrStdout(), analyzeJobOut, embedded.JobRequirements, job)
}
