package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/ats-optimizer/internal/export"
	"github.com/jonathan/ats-optimizer/internal/ingestion"
	"github.com/jonathan/ats-optimizer/internal/logger"
	"github.com/jonathan/ats-optimizer/internal/observability"
	"github.com/jonathan/ats-optimizer/internal/pipeline"
	"github.com/jonathan/ats-optimizer/internal/ranking"
)

// DefaultBatchConcurrency bounds the resumes scored at once
const DefaultBatchConcurrency = 4

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Rank every resume in a directory against one job",
	Long: `Scores each supported file (txt, md, html, pdf, docx) in --resumes
against the job description and prints a ranking, best match first.
Files that cannot be read are reported after the ranking. Use --xlsx to
save the ranking as a spreadsheet.`,
	RunE: runBatch,
}

var (
	batchJob         string
	batchDir         string
	batchXLSX        string
	batchConcurrency int
)

func init() {
	batchCmd.Flags().StringVarP(&batchJob, "job", "j", "", "Path to the job description file (required)")
	batchCmd.Flags().StringVarP(&batchDir, "resumes", "d", "", "Directory of resume files (required)")
	batchCmd.Flags().StringVar(&batchXLSX, "xlsx", "", "Also save the ranking as an Excel workbook")
	batchCmd.Flags().IntVarP(&batchConcurrency, "concurrency", "c", DefaultBatchConcurrency, "Resumes to score in parallel")
	_ = batchCmd.MarkFlagRequired("job")
	_ = batchCmd.MarkFlagRequired("resumes")

	rootCmd.AddCommand(batchCmd)
}

type batchResult struct {
	name   string
	report *pipeline.Report
	err    error
}

func runBatch(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if batchConcurrency < 1 {
		return fmt.Errorf("--concurrency must be at least 1")
	}

	files, err := resumeFiles(batchDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no resume files found in %s", batchDir)
	}

	jobText, err := readDocument(ctx, batchJob, "job")
	if err != nil {
		return err
	}

	analyzer, release, err := newAnalyzer(ctx, settings, nil)
	if err != nil {
		return err
	}
	defer release()

	results := make([]batchResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchConcurrency)
	for i, path := range files {
		g.Go(func() error {
			results[i] = scoreFile(gctx, analyzer, path, jobText)
			if errors.Is(results[i].err, context.Canceled) {
				return results[i].err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	candidates := make([]ranking.Candidate, 0, len(results))
	for _, r := range results {
		if r.err != nil {
			logger.Warn().Str("file", r.name).Err(r.err).Msg("resume skipped")
		}
		candidates = append(candidates, ranking.Candidate{Name: r.name, Report: r.report, Err: r.err})
	}
	ranked := ranking.Rank(candidates)

	rows := make([]observability.RankingRow, 0, len(ranked))
	for _, r := range ranked {
		rows = append(rows, observability.RankingRow{Name: r.Name, Score: r.Score(), Notes: r.Notes, Err: r.Err})
	}
	reports := ranking.Reports(ranked)

	observability.NewPrinter(cmd.OutOrStdout()).PrintRanking(analyzer.AnalyzeJob(jobText).Title, rows)

	if len(reports) == 0 {
		return fmt.Errorf("none of the %d resumes could be analyzed", len(files))
	}
	if batchXLSX != "" {
		path, err := export.SaveRanking(batchXLSX, reports)
		if err != nil {
			return err
		}
		logger.Info().Str("path", path).Int("resumes", len(reports)).Msg("ranking saved")
	}
	return nil
}

func scoreFile(ctx context.Context, analyzer *pipeline.Analyzer, path, jobText string) batchResult {
	result := batchResult{name: filepath.Base(path)}
	text, err := ingestion.ReadFile(ctx, path)
	if err != nil {
		result.err = err
		return result
	}
	result.report, result.err = analyzer.Run(ctx, pipeline.RunOptions{ResumeText: text, JobText: jobText})
	return result
}

// resumeFiles lists the regular files in dir with a supported extension, sorted by name
func resumeFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read resume directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".txt", ".md", ".text", ".html", ".htm", ".pdf", ".docx":
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	return files, nil
}
