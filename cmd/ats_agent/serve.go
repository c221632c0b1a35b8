package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/ats-optimizer/internal/cache"
	"github.com/jonathan/ats-optimizer/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Starts an HTTP server exposing the analysis pipeline.

Analyses are persisted to PostgreSQL when DATABASE_URL is set and kept in
memory otherwise. Results are cached in Redis when REDIS_URL is set.

Endpoints:
  GET    /health                          Health check
  POST   /analyze-resume                  Upload and parse a resume (multipart "file")
  POST   /process-job-description         Analyze a job description
  POST   /keywords                        Extract keywords from text or a stored record
  POST   /calculate-score                 Score a stored resume against a stored job
  POST   /recommendations                 Recommendations for a stored pair
  POST   /analyze                         Run the full pipeline on raw text
  POST   /analyze/stream                  Same as /analyze with SSE progress events
  GET    /resumes/{id}                    Get a parsed resume
  GET    /resumes/{id}/scores             List scores for a resume
  GET    /jobs/{id}                       Get job requirements
  GET    /scores/{id}                     Get a score
  GET    /runs                            List analysis runs
  GET    /runs/{id}                       Get a run with its artifacts
  DELETE /runs/{id}                       Delete a run
  GET    /runs/{id}/artifacts/{step}      Get one step's artifact
  GET    /reports/{resume_id}/{job_id}    Download an Excel score report`,
	RunE: runServe,
}

var servePort int

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (default from config, 8000)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg := settings
	if servePort != 0 {
		cfg.Port = servePort
	}

	store, err := server.OpenStore(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}

	analyzer, release, err := newAnalyzer(ctx, cfg, cache.NewMemory())
	if err != nil {
		store.Close()
		return err
	}
	defer release()

	srv, err := server.New(server.Config{Port: cfg.Port, MaxUploadSize: cfg.MaxUploadSize}, analyzer, store)
	if err != nil {
		store.Close()
		return err
	}
	return srv.Start()
}
