package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/ats-optimizer/internal/cache"
	"github.com/jonathan/ats-optimizer/internal/config"
	"github.com/jonathan/ats-optimizer/internal/dictionary"
	"github.com/jonathan/ats-optimizer/internal/ingestion"
	"github.com/jonathan/ats-optimizer/internal/logger"
	"github.com/jonathan/ats-optimizer/internal/observability"
	"github.com/jonathan/ats-optimizer/internal/pipeline"
	"github.com/jonathan/ats-optimizer/internal/schemas"
)

// newAnalyzer builds an analyzer from cfg. Results are cached in Redis when
// cfg.RedisURL is set, otherwise in fallback (which may be nil). The returned
// func releases the cache connection.
func newAnalyzer(ctx context.Context, cfg config.Config, fallback cache.Cache) (*pipeline.Analyzer, func(), error) {
	dict, err := dictionary.LoadFile(cfg.DictionaryPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load dictionaries: %w", err)
	}

	ttl, err := cfg.CacheDuration()
	if err != nil {
		return nil, nil, err
	}

	release := func() {}
	store := fallback
	if cfg.RedisURL != "" {
		rc, err := cache.NewRedis(ctx, cfg.RedisURL)
		if err != nil {
			logger.Warn().Err(err).Msg("redis unavailable, continuing without shared cache")
		} else {
			store = rc
			release = func() { _ = rc.Close() }
		}
	}

	var opts []pipeline.Option
	if store != nil {
		opts = append(opts, pipeline.WithCache(store, ttl))
	}

	analyzer, err := pipeline.NewAnalyzer(dict, opts...)
	if err != nil {
		release()
		return nil, nil, err
	}
	return analyzer, release, nil
}

// readDocument extracts the text of the file named by the given flag.
func readDocument(ctx context.Context, path, flag string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("--%s is required", flag)
	}
	text, err := ingestion.ReadFile(ctx, path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	logger.Debug().Str("path", path).Int("chars", len(text)).Msg("document loaded")
	return text, nil
}

// writeResult validates v against schemaName (when set) and writes it as
// indented JSON to outPath, or to w when outPath is empty.
func writeResult(w io.Writer, outPath, schemaName string, v any) error {
	if schemaName != "" {
		if err := schemas.ValidateDocument(schemaName, v); err != nil {
			return fmt.Errorf("output failed schema validation: %w", err)
		}
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	data = append(data, '\n')

	if outPath == "" {
		_, err := w.Write(data)
		return err
	}
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	logger.Info().Str("path", outPath).Msg("output written")
	return nil
}

// summaryPrinter returns a printer on stderr when verbose output is on.
func summaryPrinter(cmd *cobra.Command) (*observability.Printer, bool) {
	if !settings.Verbose {
		return nil, false
	}
	return observability.NewPrinter(cmd.ErrOrStderr()), true
}
