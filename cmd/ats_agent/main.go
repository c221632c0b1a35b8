// Package main provides the ats_agent command line interface.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonathan/ats-optimizer/internal/config"
	"github.com/jonathan/ats-optimizer/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "ats_agent",
	Short: "ATS resume analysis and scoring",
	Long: `ats_agent parses resumes and job descriptions, extracts keywords,
scores how well a resume matches a job and suggests improvements.

Every command can run offline. The serve command exposes the same
pipeline over HTTP.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

var (
	configPath     string
	verbose        bool
	dictionaryPath string
	logLevel       string
)

// settings holds the resolved configuration for the running command
var settings config.Config

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config.json (env vars and flags override its values)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print formatted summaries to stderr")
	rootCmd.PersistentFlags().StringVar(&dictionaryPath, "dictionaries", "", "YAML file extending the built-in dictionaries")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
}

func setup(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath, flagOverrides(os.Getenv))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if verbose {
		cfg.Verbose = true
	}

	logger.Init(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	settings = cfg
	return nil
}

// flagOverrides layers the persistent flags over getenv so they are
// validated with the rest of the configuration.
func flagOverrides(getenv func(string) string) func(string) string {
	return func(key string) string {
		switch {
		case key == "LOG_LEVEL" && logLevel != "":
			return logLevel
		case key == "DICTIONARY_PATH" && dictionaryPath != "":
			return dictionaryPath
		}
		return getenv(key)
	}
}

func main() {
	// Load .env if present; a missing file is fine.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
