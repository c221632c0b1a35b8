package server

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/jonathan/ats-optimizer/internal/db"
	"github.com/jonathan/ats-optimizer/internal/export"
	"github.com/jonathan/ats-optimizer/internal/pipeline/steps"
	"github.com/jonathan/ats-optimizer/internal/types"
)

// ContentTypeXLSX is the media type of exported workbooks
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// RunResponse is a stored run with the list of its artifacts
type RunResponse struct {
	db.Run
	Artifacts []db.ArtifactSummary `json:"artifacts"`
}

// ListRunsResponse wraps a page of runs
type ListRunsResponse struct {
	Runs  []db.Run `json:"runs"`
	Count int      `json:"count"`
}

// ListScoresResponse wraps the scores of one resume
type ListScoresResponse struct {
	ResumeID string              `json:"resume_id"`
	Scores   []types.ScoreResult `json:"scores"`
	Count    int                 `json:"count"`
}

func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	resume, err := s.loadResume(r.Context(), r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, resume)
}

// handleListResumeScores returns every job score of a resume, best first
func (s *Server) handleListResumeScores(w http.ResponseWriter, r *http.Request) {
	resume, err := s.loadResume(r.Context(), r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	scores, err := s.store.ListScoresByResume(r.Context(), resume.ResumeID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, ListScoresResponse{ResumeID: resume.ResumeID, Scores: scores, Count: len(scores)})
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	job, err := s.loadJob(r.Context(), r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, job)
}

func (s *Server) handleGetScore(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	score, err := s.store.GetScore(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if score == nil {
		s.fail(w, r, &ErrNotFound{Resource: "score", ID: id})
		return
	}
	s.jsonResponse(w, http.StatusOK, ScoreResponse{ScoreID: id, ScoreResult: *score})
}

// handleListRuns lists recent runs; ?limit= caps the page
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := db.DefaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			s.fail(w, r, &ErrValidation{Field: "limit", Message: "must be a positive integer"})
			return
		}
		limit = n
	}

	runs, err := s.store.ListRuns(r.Context(), limit)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, ListRunsResponse{Runs: runs, Count: len(runs)})
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	run, err := s.store.GetRun(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if run == nil {
		s.fail(w, r, &ErrNotFound{Resource: "run", ID: id})
		return
	}

	artifacts, err := s.store.ListArtifacts(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, RunResponse{Run: *run, Artifacts: artifacts})
}

func (s *Server) handleDeleteRun(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	run, err := s.store.GetRun(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if run == nil {
		s.fail(w, r, &ErrNotFound{Resource: "run", ID: id})
		return
	}
	if err := s.store.DeleteRun(r.Context(), id); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleGetArtifact returns the stored JSON output of one step of a run
func (s *Server) handleGetArtifact(w http.ResponseWriter, r *http.Request) {
	id, step := r.PathValue("id"), r.PathValue("step")
	if _, err := steps.Get(step); err != nil {
		s.fail(w, r, err)
		return
	}

	content, err := s.store.GetArtifact(r.Context(), id, step)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if content == nil {
		s.fail(w, r, &ErrNotFound{Resource: "artifact", ID: id + "/" + step})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(content)
}

// handleReport renders the score report of a stored resume and job as a workbook
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	resume, job, err := s.loadPair(r.Context(), r.PathValue("resume_id"), r.PathValue("job_id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	report := s.analyzer.ReportFor(resume.ResumeID, resume.ParsedContent, *job)

	var buf bytes.Buffer
	if err := export.WriteScoreReport(&buf, report); err != nil {
		s.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", ContentTypeXLSX)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="ats-report-%s-%s.xlsx"`, resume.ResumeID, job.ID))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
