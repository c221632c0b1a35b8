package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/jonathan/ats-optimizer/internal/db"
	"github.com/jonathan/ats-optimizer/internal/ingestion"
	"github.com/jonathan/ats-optimizer/internal/logger"
	"github.com/jonathan/ats-optimizer/internal/pipeline"
	"github.com/jonathan/ats-optimizer/internal/pipeline/steps"
	"github.com/jonathan/ats-optimizer/internal/types"
)

// ScoreResponse is a stored score and its ID
type ScoreResponse struct {
	ScoreID string `json:"score_id"`
	types.ScoreResult
}

// fail writes err with the status HTTPStatus maps it to. Internal errors are
// logged and replaced with a generic message.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		logger.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		s.errorResponse(w, status, "internal server error")
		return
	}
	s.errorResponse(w, status, err.Error())
}

// decodeJSON reads a size-limited JSON body into dst and runs its validator.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{ Validate() error }) error {
	body := http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			return &ErrPayloadTooLarge{Limit: s.maxUpload}
		}
		return &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
	}
	if err := dst.Validate(); err != nil {
		return validationError(err)
	}
	return nil
}

// handleAnalyzeResume extracts, parses and stores an uploaded resume
func (s *Server) handleAnalyzeResume(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > s.maxUpload {
		s.fail(w, r, &ErrPayloadTooLarge{Limit: s.maxUpload})
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			s.fail(w, r, &ErrPayloadTooLarge{Limit: s.maxUpload})
			return
		}
		s.fail(w, r, &ErrValidation{Field: "file", Message: "multipart form expected"})
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		s.fail(w, r, &ErrValidation{Field: "file", Message: "is required"})
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	contentType := header.Header.Get("Content-Type")
	text, err := ingestion.Extract(r.Context(), ingestion.Document{
		Filename:    header.Filename,
		ContentType: contentType,
		Data:        data,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}

	analysis := s.analyzer.Analyze(text, header.Filename, contentType, len(data))
	if err := s.store.SaveResume(r.Context(), &analysis); err != nil {
		s.fail(w, r, err)
		return
	}

	logger.Ctx(r.Context()).Info().
		Str("resume_id", analysis.ResumeID).
		Int("words", analysis.WordCount).
		Msg("resume analyzed")
	s.jsonResponse(w, http.StatusCreated, analysis)
}

// handleProcessJob parses and stores a job description
func (s *Server) handleProcessJob(w http.ResponseWriter, r *http.Request) {
	var req types.JobDescriptionRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	job := s.analyzer.AnalyzeJob(req.Description)
	if err := s.store.SaveJob(r.Context(), &job); err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, job)
}

// handleKeywords profiles raw text, a stored resume or a stored job
func (s *Server) handleKeywords(w http.ResponseWriter, r *http.Request) {
	var req types.KeywordsRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	ctx := r.Context()
	switch {
	case req.Text != "":
		s.jsonResponse(w, http.StatusOK, s.analyzer.TextKeywords(req.Text))
	case req.ResumeID != "":
		resume, err := s.loadResume(ctx, req.ResumeID)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		s.jsonResponse(w, http.StatusOK, s.analyzer.ResumeKeywords(resume.ParsedContent))
	default:
		job, err := s.loadJob(ctx, req.JobID)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		s.jsonResponse(w, http.StatusOK, s.analyzer.JobKeywords(*job))
	}
}

// handleCalculateScore scores a stored resume against a stored job
func (s *Server) handleCalculateScore(w http.ResponseWriter, r *http.Request) {
	var req types.ScoreRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	resume, job, err := s.loadPair(r.Context(), req.ResumeID, req.JobID)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	_, score := s.analyzer.ScoreFor(resume.ResumeID, resume.ParsedContent, *job)
	id, err := s.store.SaveScore(r.Context(), &score)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, ScoreResponse{ScoreID: id, ScoreResult: score})
}

// handleRecommendations builds advice from the stored score, scoring first when none exists
func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	var req types.ScoreRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	ctx := r.Context()
	resume, job, err := s.loadPair(ctx, req.ResumeID, req.JobID)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	score, err := s.store.GetScoreFor(ctx, resume.ResumeID, job.ID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if score == nil {
		_, fresh := s.analyzer.ScoreFor(resume.ResumeID, resume.ParsedContent, *job)
		if _, err := s.store.SaveScore(ctx, &fresh); err != nil {
			s.fail(w, r, err)
			return
		}
		score = &fresh
	}

	set := s.analyzer.RecommendFor(resume.ResumeID, resume.ParsedContent, *job, *score)
	if err := s.store.SaveRecommendations(ctx, &set); err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, set)
}

// handleAnalyze runs the whole pipeline on raw resume and job text
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req types.AnalyzeRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	report, err := s.analyzer.Run(r.Context(), pipeline.RunOptions{
		ResumeText: req.ResumeText,
		JobText:    req.JobText,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.persistRun(r.Context(), report)
	s.jsonResponse(w, http.StatusOK, report)
}

// handleAnalyzeStream runs the pipeline and streams each finished step via SSE
func (s *Server) handleAnalyzeStream(w http.ResponseWriter, r *http.Request) {
	var req types.AnalyzeRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	log := logger.Ctx(r.Context())
	report, err := s.analyzer.Run(r.Context(), pipeline.RunOptions{
		ResumeText: req.ResumeText,
		JobText:    req.JobText,
		OnProgress: func(event pipeline.ProgressEvent) {
			if err := sse.WriteEvent("step", event); err != nil {
				log.Warn().Err(err).Str("step", event.Step).Msg("failed to write SSE event")
			}
		},
	})
	if err != nil {
		log.Warn().Err(err).Msg("streaming analysis failed")
		sse.WriteError(err.Error())
		return
	}

	s.persistRun(r.Context(), report)
	if err := sse.WriteEvent("report", report); err != nil {
		log.Warn().Err(err).Msg("failed to write SSE report")
		return
	}
	sse.WriteComplete(report.RunID, "completed")
}

// persistRun stores the run summary and one artifact per step. Failures are
// logged; the caller still gets the report.
func (s *Server) persistRun(ctx context.Context, report *pipeline.Report) {
	log := logger.Ctx(ctx).With().Str("run_id", report.RunID).Logger()

	run := &db.Run{
		ID:           report.RunID,
		ResumeID:     report.ResumeID,
		JobID:        report.Job.ID,
		JobTitle:     report.Job.Title,
		OverallScore: report.Score.OverallScore,
		Cached:       report.Cached,
	}
	if err := s.store.SaveRun(ctx, run); err != nil {
		log.Error().Err(err).Msg("failed to save run")
		return
	}

	for _, a := range reportArtifacts(report) {
		category := ""
		if def, err := steps.Get(a.step); err == nil {
			category = def.Category
		}
		if err := s.store.SaveArtifact(ctx, run.ID, a.step, category, a.content); err != nil {
			log.Error().Err(err).Str("step", a.step).Msg("failed to save artifact")
		}
	}
}

type stepArtifact struct {
	step    string
	content any
}

func reportArtifacts(report *pipeline.Report) []stepArtifact {
	return []stepArtifact{
		{steps.ParseResume, report.Resume},
		{steps.AnalyzeJob, report.Job},
		{steps.Keywords, map[string]types.KeywordProfile{"resume": report.ResumeKeywords, "job": report.JobKeywords}},
		{steps.Match, report.Match},
		{steps.Score, report.Score},
		{steps.Recommend, report.Recommendations},
	}
}

func (s *Server) loadResume(ctx context.Context, id string) (*types.ResumeAnalysis, error) {
	resume, err := s.store.GetResume(ctx, id)
	if err != nil {
		return nil, err
	}
	if resume == nil {
		return nil, &ErrNotFound{Resource: "resume", ID: id}
	}
	return resume, nil
}

func (s *Server) loadJob(ctx context.Context, id string) (*types.JobRequirements, error) {
	job, err := s.store.GetJob(ctx, id)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, &ErrNotFound{Resource: "job", ID: id}
	}
	return job, nil
}

func (s *Server) loadPair(ctx context.Context, resumeID, jobID string) (*types.ResumeAnalysis, *types.JobRequirements, error) {
	resume, err := s.loadResume(ctx, resumeID)
	if err != nil {
		return nil, nil, err
	}
	job, err := s.loadJob(ctx, jobID)
	if err != nil {
		return nil, nil, err
	}
	return resume, job, nil
}
