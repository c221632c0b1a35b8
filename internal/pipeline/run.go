// Package pipeline provides the high-level orchestration of resume and job analysis.
package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/ats-optimizer/internal/cache"
	"github.com/jonathan/ats-optimizer/internal/dictionary"
	"github.com/jonathan/ats-optimizer/internal/keywords"
	"github.com/jonathan/ats-optimizer/internal/logger"
	"github.com/jonathan/ats-optimizer/internal/matching"
	"github.com/jonathan/ats-optimizer/internal/parsing"
	"github.com/jonathan/ats-optimizer/internal/pipeline/steps"
	"github.com/jonathan/ats-optimizer/internal/recommend"
	"github.com/jonathan/ats-optimizer/internal/scoring"
	"github.com/jonathan/ats-optimizer/internal/types"
)

// CacheKeyPrefix prefixes every cached analysis report
const CacheKeyPrefix = "ats:analysis:"

// ErrEmptyInput is returned when the resume or job text is blank
var ErrEmptyInput = errors.New("input text is empty")

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	RunID    string `json:"run_id,omitempty"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// RunOptions holds the inputs of one analysis run
type RunOptions struct {
	ResumeText string
	JobText    string
	OnProgress ProgressCallback
}

// Report is the full output of one analysis run
type Report struct {
	RunID           string                  `json:"run_id"`
	ResumeID        string                  `json:"resume_id"`
	Resume          types.ParsedResume      `json:"resume"`
	Job             types.JobRequirements   `json:"job"`
	ResumeKeywords  types.KeywordProfile    `json:"resume_keywords"`
	JobKeywords     types.KeywordProfile    `json:"job_keywords"`
	Match           types.MatchResult       `json:"match"`
	Score           types.ScoreResult       `json:"score"`
	Recommendations types.RecommendationSet `json:"recommendations"`
	Cached          bool                    `json:"cached"`
	Timestamp       string                  `json:"timestamp"`
}

// Analyzer wires the analysis stages together. It is safe for concurrent use.
type Analyzer struct {
	resumes     *parsing.ResumeParser
	jobs        *parsing.JobAnalyzer
	keywords    *keywords.Analyst
	matcher     *matching.Engine
	scorer      *scoring.Engine
	recommender *recommend.Engine

	cache    cache.Cache
	cacheTTL time.Duration
	now      func() time.Time
	newID    func() string

	matchOpts []matching.Option
	scoreOpts []scoring.Option
}

// Option configures an Analyzer
type Option func(*Analyzer)

// WithCache stores finished reports in c for ttl.
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(a *Analyzer) {
		a.cache = c
		a.cacheTTL = ttl
	}
}

// WithClock sets the clock used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) {
		a.now = now
	}
}

// WithIDGenerator sets the generator used for run, resume and job IDs.
func WithIDGenerator(newID func() string) Option {
	return func(a *Analyzer) {
		a.newID = newID
	}
}

// WithMatchOptions passes options to the matching engine.
func WithMatchOptions(opts ...matching.Option) Option {
	return func(a *Analyzer) {
		a.matchOpts = append(a.matchOpts, opts...)
	}
}

// WithScoreOptions passes options to the scoring engine.
func WithScoreOptions(opts ...scoring.Option) Option {
	return func(a *Analyzer) {
		a.scoreOpts = append(a.scoreOpts, opts...)
	}
}

// NewAnalyzer builds every stage from dict.
func NewAnalyzer(dict *dictionary.Dictionaries, opts ...Option) (*Analyzer, error) {
	a := &Analyzer{
		cache: cache.Noop{},
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(a)
	}

	jobs, err := parsing.NewJobAnalyzer(dict, parsing.WithClock(a.now), parsing.WithIDGenerator(a.newID))
	if err != nil {
		return nil, fmt.Errorf("failed to build job analyzer: %w", err)
	}

	a.resumes = parsing.NewResumeParser(dict)
	a.jobs = jobs
	a.keywords = keywords.NewAnalyst(dict)
	a.matcher = matching.NewEngine(dict, a.matchOpts...)
	a.scorer = scoring.NewEngine(a.scoreOpts...)
	a.recommender = recommend.NewEngine(dict)
	return a, nil
}

// NewID returns a fresh identifier from the configured generator.
func (a *Analyzer) NewID() string {
	return a.newID()
}

// Timestamp returns the current time in RFC3339.
func (a *Analyzer) Timestamp() string {
	return a.now().UTC().Format(time.RFC3339)
}

// ParseResume parses raw resume text.
func (a *Analyzer) ParseResume(text string) types.ParsedResume {
	return a.resumes.Parse(text)
}

// AnalyzeJob parses a raw job posting.
func (a *Analyzer) AnalyzeJob(text string) types.JobRequirements {
	return a.jobs.Analyze(text)
}

// ResumeKeywords builds the keyword profile of a parsed resume.
func (a *Analyzer) ResumeKeywords(r types.ParsedResume) types.KeywordProfile {
	return a.keywords.AnalyzeResume(r)
}

// JobKeywords builds the keyword profile of parsed job requirements.
func (a *Analyzer) JobKeywords(j types.JobRequirements) types.KeywordProfile {
	return a.keywords.AnalyzeJob(j)
}

// TextKeywords builds the keyword profile of free text.
func (a *Analyzer) TextKeywords(text string) types.KeywordProfile {
	return a.keywords.AnalyzeText(text)
}

// Match compares a resume against a job.
func (a *Analyzer) Match(r types.ParsedResume, j types.JobRequirements) types.MatchResult {
	return a.matcher.Compare(r, j)
}

// ScoreFor matches and scores a stored resume against a job, stamping IDs and time.
func (a *Analyzer) ScoreFor(resumeID string, r types.ParsedResume, j types.JobRequirements) (types.MatchResult, types.ScoreResult) {
	match := a.matcher.Compare(r, j)
	score := a.scorer.Score(match)
	score.ResumeID = resumeID
	score.JobID = j.ID
	score.Timestamp = a.Timestamp()
	return match, score
}

// RecommendFor generates recommendations for a scored resume, stamping IDs and time.
func (a *Analyzer) RecommendFor(resumeID string, r types.ParsedResume, j types.JobRequirements, score types.ScoreResult) types.RecommendationSet {
	set := a.recommender.Recommend(r, j, score)
	set.ResumeID = resumeID
	set.JobID = j.ID
	set.Timestamp = a.Timestamp()
	return set
}

// ReportFor assembles a report from already parsed records without touching the cache.
func (a *Analyzer) ReportFor(resumeID string, r types.ParsedResume, j types.JobRequirements) Report {
	match, score := a.ScoreFor(resumeID, r, j)
	return Report{
		RunID:           a.newID(),
		ResumeID:        resumeID,
		Resume:          r,
		Job:             j,
		ResumeKeywords:  a.keywords.AnalyzeResume(r),
		JobKeywords:     a.keywords.AnalyzeJob(j),
		Match:           match,
		Score:           score,
		Recommendations: a.RecommendFor(resumeID, r, j, score),
		Timestamp:       a.Timestamp(),
	}
}

// Analyze builds the stored record of an uploaded resume.
func (a *Analyzer) Analyze(text string, filename, contentType string, size int) types.ResumeAnalysis {
	parsed := a.resumes.Parse(text)
	return types.ResumeAnalysis{
		ResumeID:      a.newID(),
		Filename:      filename,
		ContentType:   contentType,
		FileSize:      size,
		UploadTime:    a.Timestamp(),
		ContentHash:   hashText(text),
		SectionsFound: parsing.SectionsFound(parsed),
		WordCount:     parsing.WordCount(parsed),
		ParsedContent: parsed,
	}
}

// CacheKey derives the cache key of a resume/job text pair.
func CacheKey(resumeText, jobText string) string {
	return CacheKeyPrefix + hashText(resumeText) + ":" + hashText(jobText)
}

func hashText(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// Run executes every stage on a resume/job text pair. The two parsers run
// concurrently; the remaining stages run in dependency order and stop early
// when ctx is cancelled.
func (a *Analyzer) Run(ctx context.Context, opts RunOptions) (*Report, error) {
	if strings.TrimSpace(opts.ResumeText) == "" {
		return nil, fmt.Errorf("resume: %w", ErrEmptyInput)
	}
	if strings.TrimSpace(opts.JobText) == "" {
		return nil, fmt.Errorf("job: %w", ErrEmptyInput)
	}

	log := logger.Ctx(ctx)
	key := CacheKey(opts.ResumeText, opts.JobText)

	var cached Report
	hit, err := a.cache.Get(ctx, key, &cached)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache lookup failed")
	}
	if hit {
		cached.Cached = true
		emitProgress(opts, ProgressEvent{Step: "cache", Category: steps.CategoryAnalysis, Message: "Loaded analysis from cache", RunID: cached.RunID})
		return &cached, nil
	}

	r := &run{
		opts:      opts,
		completed: make(map[string]bool),
		report:    &Report{RunID: a.newID(), ResumeID: a.newID()},
	}

	// Parsing leaves are independent
	g, gCtx := errgroup.WithContext(ctx)
	var resume types.ParsedResume
	var job types.JobRequirements
	g.Go(func() error {
		if err := gCtx.Err(); err != nil {
			return err
		}
		resume = a.resumes.Parse(opts.ResumeText)
		return nil
	})
	g.Go(func() error {
		if err := gCtx.Err(); err != nil {
			return err
		}
		job = a.jobs.Analyze(opts.JobText)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("parsing failed: %w", err)
	}

	r.report.Resume = resume
	r.report.Job = job
	r.done(steps.ParseResume, fmt.Sprintf("Parsed resume: %d sections", len(parsing.SectionsFound(resume))), resume)
	r.done(steps.AnalyzeJob, fmt.Sprintf("Analyzed job: %s", job.Title), job)

	stages := []struct {
		name string
		fn   func(*Report) string
	}{
		{steps.Keywords, func(rep *Report) string {
			rep.ResumeKeywords = a.keywords.AnalyzeResume(rep.Resume)
			rep.JobKeywords = a.keywords.AnalyzeJob(rep.Job)
			return fmt.Sprintf("Extracted %d resume and %d job keywords", len(rep.ResumeKeywords.TopKeywords), len(rep.JobKeywords.TopKeywords))
		}},
		{steps.Match, func(rep *Report) string {
			rep.Match = a.matcher.Compare(rep.Resume, rep.Job)
			return fmt.Sprintf("Match score %.1f", rep.Match.OverallMatchScore)
		}},
		{steps.Score, func(rep *Report) string {
			rep.Score = a.scorer.Score(rep.Match)
			rep.Score.ResumeID = rep.ResumeID
			rep.Score.JobID = rep.Job.ID
			rep.Score.Timestamp = a.Timestamp()
			return fmt.Sprintf("ATS score %.1f", rep.Score.OverallScore)
		}},
		{steps.Recommend, func(rep *Report) string {
			rep.Recommendations = a.RecommendFor(rep.ResumeID, rep.Resume, rep.Job, rep.Score)
			return fmt.Sprintf("Generated %d recommendations", len(rep.Recommendations.Recommendations))
		}},
	}

	for _, stage := range stages {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%s cancelled: %w", stage.name, err)
		}
		if err := steps.ValidateDependencies(r.completed, stage.name); err != nil {
			return nil, err
		}
		start := time.Now()
		msg := stage.fn(r.report)
		log.Debug().Str("step", stage.name).Dur("elapsed", time.Since(start)).Msg(msg)
		r.done(stage.name, msg, nil)
	}

	r.report.Timestamp = a.Timestamp()
	if err := a.cache.Set(ctx, key, r.report, a.cacheTTL); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache store failed")
	}
	return r.report, nil
}

// run tracks the progress of a single Run call
type run struct {
	opts      RunOptions
	completed map[string]bool
	report    *Report
}

func (r *run) done(step, message string, content any) {
	r.completed[step] = true
	category := ""
	if def, err := steps.Get(step); err == nil {
		category = def.Category
	}
	emitProgress(r.opts, ProgressEvent{
		Step:     step,
		Category: category,
		Message:  message,
		RunID:    r.report.RunID,
		Content:  content,
	})
}

// emitProgress calls the progress callback if configured
func emitProgress(opts RunOptions, event ProgressEvent) {
	if opts.OnProgress != nil {
		opts.OnProgress(event)
	}
}
