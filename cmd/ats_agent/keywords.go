package main

import (
	"github.com/spf13/cobra"
)

var keywordsCmd = &cobra.Command{
	Use:   "keywords",
	Short: "Extract keywords from a resume or job description",
	Long: `Builds a keyword profile (top keywords, skills, n-grams and term
frequencies). By default the input is parsed as a resume; pass --job to
treat it as a job description.`,
	RunE: runKeywords,
}

var (
	keywordsIn  string
	keywordsOut string
	keywordsJob bool
)

func init() {
	keywordsCmd.Flags().StringVarP(&keywordsIn, "in", "i", "", "Path to the input file (required)")
	keywordsCmd.Flags().StringVarP(&keywordsOut, "out", "o", "", "Path to write JSON output (default stdout)")
	keywordsCmd.Flags().BoolVar(&keywordsJob, "job", false, "Treat the input as a job description")
	_ = keywordsCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(keywordsCmd)
}

func runKeywords(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	text, err := readDocument(ctx, keywordsIn, "in")
	if err != nil {
		return err
	}

	analyzer, release, err := newAnalyzer(ctx, settings, nil)
	if err != nil {
		return err
	}
	defer release()

	var profile = analyzer.ResumeKeywords(analyzer.ParseResume(text))
	if keywordsJob {
		profile = analyzer.JobKeywords(analyzer.AnalyzeJob(text))
	}

	if p, ok := summaryPrinter(cmd); ok {
		p.PrintKeywords(&profile)
	}
	return writeResult(cmd.OutOrStdout(), keywordsOut, "", profile)
}
